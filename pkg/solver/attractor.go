package solver

import (
	"github.com/bits-and-blooms/bitset"

	"github.com/matzehuels/gamesolver/pkg/arena"
	gerr "github.com/matzehuels/gamesolver/pkg/errors"
)

// attraction is the result of one attractor computation on a view, in dense
// indices.
type attraction struct {
	in       *bitset.BitSet // membership of the attractor
	order    []int          // attractor in discovery order, targets first
	strategy map[int]int    // moves of the attracting player, nil if not requested
}

// attract computes the attractor of target for player j inside v.
//
// Nodes owned by j join as soon as one successor is in the attractor;
// nodes owned by the opponent join only when every live successor is. Each
// live edge is examined at most once. Targets that are not live are ignored.
func attract(v *arena.View, target []int, j arena.Player, withStrategy bool) attraction {
	a := v.Arena()
	in := bitset.New(uint(a.Len()))
	queue := make([]int, 0, len(target))
	for _, t := range target {
		if !v.Has(t) || in.Test(uint(t)) {
			continue
		}
		in.Set(uint(t))
		queue = append(queue, t)
	}
	seeds := len(queue)

	var strategy map[int]int
	if withStrategy {
		strategy = make(map[int]int)
	}
	// remaining[p] counts live successors of opponent node p not yet in the
	// attractor. Zero means not yet counted: a counted node that reaches zero
	// joins the attractor and is never visited again.
	remaining := make([]int, a.Len())

	for head := 0; head < len(queue); head++ {
		s := queue[head]
		for _, p := range a.Pred(s) {
			if !v.Has(p) || in.Test(uint(p)) {
				continue
			}
			if a.PlayerAt(p) == j {
				in.Set(uint(p))
				queue = append(queue, p)
				if withStrategy {
					strategy[p] = s
				}
				continue
			}
			if remaining[p] == 0 {
				remaining[p] = v.OutDegree(p)
			}
			remaining[p]--
			if remaining[p] == 0 {
				in.Set(uint(p))
				queue = append(queue, p)
			}
		}
	}

	if withStrategy {
		for _, t := range queue[:seeds] {
			if a.PlayerAt(t) != j {
				continue
			}
			if to, ok := firstSuccessor(v, t, func(s int) bool { return in.Test(uint(s)) }); ok {
				strategy[t] = to
			} else if to, ok := firstSuccessor(v, t, nil); ok {
				strategy[t] = to
			}
		}
	}
	return attraction{in: in, order: queue, strategy: strategy}
}

// firstSuccessor returns the first live successor of i accepted by keep, or
// any live successor if keep is nil.
func firstSuccessor(v *arena.View, i int, keep func(int) bool) (int, bool) {
	for _, s := range v.Arena().Succ(i) {
		if v.Has(s) && (keep == nil || keep(s)) {
			return s, true
		}
	}
	return 0, false
}

// escape returns the moves of player opp on its live nodes outside the
// attraction: the first live successor that stays outside.
func escape(v *arena.View, at attraction, opp arena.Player) map[int]int {
	a := v.Arena()
	strategy := make(map[int]int)
	outside := func(s int) bool { return !at.in.Test(uint(s)) }
	for _, i := range v.Indices() {
		if at.in.Test(uint(i)) || a.PlayerAt(i) != opp {
			continue
		}
		if to, ok := firstSuccessor(v, i, outside); ok {
			strategy[i] = to
		}
	}
	return strategy
}

// complementOf returns the live indices of v outside the attraction, in
// ascending order.
func complementOf(v *arena.View, at attraction) []int {
	out := make([]int, 0, v.Len()-len(at.order))
	for _, i := range v.Indices() {
		if !at.in.Test(uint(i)) {
			out = append(out, i)
		}
	}
	return out
}

// resolveTargets maps target IDs to dense indices.
func resolveTargets(a *arena.Arena, target []arena.NodeID) ([]int, error) {
	out := make([]int, 0, len(target))
	for _, id := range target {
		i, ok := a.Index(id)
		if !ok {
			return nil, gerr.Wrap(gerr.ErrCodeInvalidInput, arena.ErrUnknownNode, "target node %d", id)
		}
		out = append(out, i)
	}
	return out, nil
}

// Attractor returns the nodes from which player j can force the play into
// target, and the remaining nodes. The attractor is listed in discovery
// order, targets first; the complement in arena order. An empty target
// yields an empty attractor.
func Attractor(a *arena.Arena, target []arena.NodeID, j arena.Player) (w, complement []arena.NodeID, err error) {
	if err := a.Validate(); err != nil {
		return nil, nil, err
	}
	idx, err := resolveTargets(a, target)
	if err != nil {
		return nil, nil, err
	}
	v := a.View()
	at := attract(v, idx, j, false)
	return toIDs(a, at.order), toIDs(a, complementOf(v, at)), nil
}

// Reachability solves the reachability game in which player j tries to
// reach target. Regions[j] is the attractor of target, in discovery order;
// the opponent wins the rest.
//
// Strategies[j] moves every node of the attractor owned by j one step
// closer to target; targets owned by j move to a successor inside the
// attractor. Strategies[1-j] keeps every opponent node outside the
// attractor out of it.
func Reachability(a *arena.Arena, target []arena.NodeID, j arena.Player) (*arena.Solution, error) {
	if err := a.Validate(); err != nil {
		return nil, err
	}
	idx, err := resolveTargets(a, target)
	if err != nil {
		return nil, err
	}
	v := a.View()
	at := attract(v, idx, j, true)
	opp := j.Opponent()

	sol := &arena.Solution{}
	sol.Regions[j] = toIDs(a, at.order)
	sol.Regions[opp] = toIDs(a, complementOf(v, at))
	sol.Strategies[j] = toStrategy(a, at.strategy)
	sol.Strategies[opp] = toStrategy(a, escape(v, at, opp))
	sol.Stats.Attractors = 1
	return sol, nil
}

func toIDs(a *arena.Arena, idx []int) []arena.NodeID {
	out := make([]arena.NodeID, len(idx))
	for k, i := range idx {
		out[k] = a.ID(i)
	}
	return out
}

func toStrategy(a *arena.Arena, m map[int]int) arena.Strategy {
	if m == nil {
		return nil
	}
	out := make(arena.Strategy, len(m))
	for from, to := range m {
		out[a.ID(from)] = a.ID(to)
	}
	return out
}

// overlay returns a fresh map holding base overlaid by each of overs in
// order; later maps win on key conflicts.
func overlay(base map[int]int, overs ...map[int]int) map[int]int {
	n := len(base)
	for _, o := range overs {
		n += len(o)
	}
	out := make(map[int]int, n)
	for k, v := range base {
		out[k] = v
	}
	for _, o := range overs {
		for k, v := range o {
			out[k] = v
		}
	}
	return out
}
