package solver

import "github.com/matzehuels/gamesolver/pkg/arena"

// WeakParity solves a weak parity game, in which the winner is decided by
// the largest priority visited at all rather than visited infinitely often.
//
// Priorities are processed from the largest down. At each priority k the
// player k mod 2 attracts the remaining nodes of priority k; the attractor is
// won by that player and removed before the next priority. Strategies are
// merged in processing order: the attracting player's moves from the
// attractor and the other player's moves that avoid it, later steps
// overriding earlier ones.
func WeakParity(a *arena.Arena, opts ...Option) (*arena.Solution, error) {
	g, err := newConfig(opts).prepare(a)
	if err != nil {
		return nil, err
	}

	sol := &arena.Solution{}
	var strategy [2]map[int]int
	v := g.View()
	top, ok := v.MaxPriority(0)
	for k := top; ok && k >= 0 && !v.Empty(); k-- {
		target := v.WithPriority(0, k)
		if len(target) == 0 {
			continue
		}
		pl := arena.ForPriority(k)
		at := attract(v, target, pl, true)
		sol.Stats.Attractors++

		sol.Regions[pl] = append(sol.Regions[pl], toIDs(g, at.order)...)
		strategy[pl] = overlay(strategy[pl], at.strategy)
		strategy[pl.Opponent()] = overlay(strategy[pl.Opponent()], escape(v, at, pl.Opponent()))
		v = v.Without(at.order)
	}

	for p := range strategy {
		sol.Strategies[p] = toStrategy(g, strategy[p])
		if sol.Strategies[p] == nil {
			sol.Strategies[p] = arena.Strategy{}
		}
	}
	return sol, nil
}
