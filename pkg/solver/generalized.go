package solver

import (
	"github.com/matzehuels/gamesolver/pkg/arena"
	gerr "github.com/matzehuels/gamesolver/pkg/errors"
)

// GeneralizedParity solves a generalized parity game: every node carries one
// priority per objective, and player 0 wins a play when, for every priority
// function, the largest priority seen infinitely often is even. Player 1
// wins when some function has an odd maximum. Only regions are returned,
// since player 0 may need memory to win.
//
// For arenas with a single priority function the regions coincide with
// [StrongParity].
func GeneralizedParity(a *arena.Arena, opts ...Option) (*arena.Solution, error) {
	if a.Len() > 0 && a.Arity() < 1 {
		return nil, gerr.Wrap(gerr.ErrCodeInvalidPriority, arena.ErrNoPriority, "generalized parity needs at least one priority function")
	}
	g, err := newConfig(opts).prepare(a)
	if err != nil {
		return nil, err
	}

	// After complementing, player 0 needs an odd maximum in every function
	// and player 1 an even maximum in some function.
	s := &generalized{arity: g.Arity()}
	g = g.Complement()
	r := s.solve(g.View())

	sol := &arena.Solution{Stats: s.stats}
	sol.Regions[0] = toIDs(g, r[0])
	sol.Regions[1] = toIDs(g, r[1])
	return sol, nil
}

type generalized struct {
	arity int
	stats arena.Stats
}

// solve returns the regions of player 0 and player 1 on v, with priorities
// already complemented. Each recursive call works on a strictly smaller view.
// The maximum of every function is re-derived from the live nodes on each
// call rather than tracked across calls.
func (s *generalized) solve(v *arena.View) [2][]int {
	s.stats.Calls++
	if v.Empty() {
		return [2][]int{}
	}

	maxes := make([]int, s.arity)
	for i := range maxes {
		maxes[i], _ = v.MaxPriority(i)
	}

	// Player 1 can win through a function whose maximum is even.
	for i, e := range maxes {
		if e%2 != 0 {
			continue
		}
		top := s.attract(v, v.WithPriority(i, e), arena.Player1)
		sub := s.solve(v.Without(top.order))
		if len(sub[0]) == 0 {
			return [2][]int{nil, v.Indices()}
		}
		lost := s.attract(v, sub[0], arena.Player0)
		rest := s.solve(v.Without(lost.order))
		return [2][]int{append(rest[0], lost.order...), rest[1]}
	}

	// Every maximum is odd. For each function, look for a region where
	// player 1 avoids its maximum and wins with the next even priority.
	for i, o := range maxes {
		g1 := v.Without(s.attract(v, v.WithPriority(i, o), arena.Player0).order)
		for !g1.Empty() {
			even := s.attract(g1, g1.WithPriority(i, o-1), arena.Player1)
			h := s.solve(g1.Without(even.order))
			if len(h[0]) == 0 {
				won := s.attract(v, g1.Indices(), arena.Player1)
				rest := s.solve(v.Without(won.order))
				return [2][]int{rest[0], append(rest[1], won.order...)}
			}
			g1 = g1.Without(s.attract(g1, h[0], arena.Player0).order)
		}
	}
	return [2][]int{v.Indices(), nil}
}

func (s *generalized) attract(v *arena.View, target []int, j arena.Player) attraction {
	s.stats.Attractors++
	return attract(v, target, j, false)
}
