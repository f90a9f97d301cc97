package solver

import (
	"slices"

	"github.com/matzehuels/gamesolver/pkg/arena"
)

// parityResult holds regions and strategies in dense indices.
type parityResult struct {
	regions  [2][]int
	strategy [2]map[int]int
}

// frame is one level of the recursive algorithm. Stage 0 has not started,
// stage 1 waits for the subgame without the top-priority attractor, stage 2
// waits for the subgame without the opponent's attractor.
type frame struct {
	view  *arena.View
	stage int
	j     arena.Player
	top   attraction
	first parityResult
	opp   attraction
}

// StrongParity solves the parity game on a with Zielonka's recursive
// algorithm and returns both winning regions with memoryless winning
// strategies. Player 0 wins a play when the largest priority seen infinitely
// often is even.
//
// The recursion runs on an explicit frame stack, so its depth is limited by
// memory rather than by the goroutine stack.
func StrongParity(a *arena.Arena, opts ...Option) (*arena.Solution, error) {
	return strongParity(a, true, opts)
}

// StrongParityRegions is StrongParity without strategy bookkeeping. The
// returned solution has nil strategies.
func StrongParityRegions(a *arena.Arena, opts ...Option) (*arena.Solution, error) {
	return strongParity(a, false, opts)
}

func strongParity(a *arena.Arena, withStrategy bool, opts []Option) (*arena.Solution, error) {
	g, err := newConfig(opts).prepare(a)
	if err != nil {
		return nil, err
	}
	sol := &arena.Solution{}
	r := zielonka(g.View(), withStrategy, &sol.Stats)
	for p := range r.regions {
		sol.Regions[p] = toIDs(g, r.regions[p])
		if withStrategy {
			sol.Strategies[p] = toStrategy(g, r.strategy[p])
			if sol.Strategies[p] == nil {
				sol.Strategies[p] = arena.Strategy{}
			}
		}
	}
	return sol, nil
}

// zielonka runs the recursive algorithm on root:
//
//  1. i is the top priority, j = i mod 2, A = Attr_j(nodes of priority i).
//  2. Solve V\A. If the opponent wins nothing there, j wins everything.
//  3. Otherwise B = Attr_opp(W1_opp); solve V\B. The opponent wins
//     W2_opp ∪ B and j wins W2_j.
//
// Strategies merge as τ ⊕ σ1_j in step 2 and ν ⊕ σ2_opp ⊕ σ1_opp in step 3,
// later maps winning on conflicts.
func zielonka(root *arena.View, withStrategy bool, stats *arena.Stats) parityResult {
	stack := []*frame{{view: root}}
	stats.Calls = 1
	var ret parityResult

	push := func(v *arena.View) {
		stack = append(stack, &frame{view: v})
		stats.Calls++
	}
	pop := func(r parityResult) {
		ret = r
		stack = stack[:len(stack)-1]
	}

	for len(stack) > 0 {
		stats.MaxDepth = max(stats.MaxDepth, len(stack))
		f := stack[len(stack)-1]

		switch f.stage {
		case 0:
			top, ok := f.view.MaxPriority(0)
			if !ok {
				pop(parityResult{})
				continue
			}
			f.j = arena.ForPriority(top)
			f.top = attract(f.view, f.view.WithPriority(0, top), f.j, withStrategy)
			stats.Attractors++
			f.stage = 1
			push(f.view.Without(f.top.order))

		case 1:
			f.first = ret
			opp := f.j.Opponent()
			if len(f.first.regions[opp]) == 0 {
				var r parityResult
				r.regions[f.j] = append(slices.Clone(f.top.order), f.first.regions[f.j]...)
				if withStrategy {
					r.strategy[f.j] = overlay(f.top.strategy, f.first.strategy[f.j])
				}
				pop(r)
				continue
			}
			f.opp = attract(f.view, f.first.regions[opp], opp, withStrategy)
			stats.Attractors++
			f.stage = 2
			push(f.view.Without(f.opp.order))

		case 2:
			second := ret
			opp := f.j.Opponent()
			var r parityResult
			r.regions[f.j] = second.regions[f.j]
			r.regions[opp] = append(slices.Clone(second.regions[opp]), f.opp.order...)
			if withStrategy {
				r.strategy[f.j] = second.strategy[f.j]
				r.strategy[opp] = overlay(f.opp.strategy, second.strategy[opp], f.first.strategy[opp])
			}
			pop(r)
		}
	}
	return ret
}
