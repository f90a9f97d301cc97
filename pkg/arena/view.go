package arena

import "github.com/bits-and-blooms/bitset"

// View is an arena restricted to a set of live nodes. It is the masked
// counterpart of [Arena.Subgame]: restriction copies the live mask instead of
// rebuilding adjacency lists, so recursive solvers can hand each call its own
// view without sharing mutable state with the caller.
//
// Views never mutate the underlying arena or their own mask once created.
// Every method takes and returns dense node indices.
type View struct {
	a    *Arena
	live *bitset.BitSet
	n    int
}

// View returns a view in which every node is live.
func (a *Arena) View() *View {
	live := bitset.New(uint(a.Len()))
	if a.Len() > 0 {
		live.FlipRange(0, uint(a.Len()))
	}
	return &View{a: a, live: live, n: a.Len()}
}

// Arena returns the underlying arena.
func (v *View) Arena() *Arena { return v.a }

// Len returns the number of live nodes.
func (v *View) Len() int { return v.n }

// Empty reports whether no node is live.
func (v *View) Empty() bool { return v.n == 0 }

// Has reports whether the node at dense index i is live.
func (v *View) Has(i int) bool { return v.live.Test(uint(i)) }

// Indices returns the live dense indices in ascending order.
func (v *View) Indices() []int {
	out := make([]int, 0, v.n)
	for i, ok := v.live.NextSet(0); ok; i, ok = v.live.NextSet(i + 1) {
		out = append(out, int(i))
	}
	return out
}

// IDs returns the live node IDs in ascending dense order.
func (v *View) IDs() []NodeID {
	out := make([]NodeID, 0, v.n)
	for i, ok := v.live.NextSet(0); ok; i, ok = v.live.NextSet(i + 1) {
		out = append(out, v.a.ids[i])
	}
	return out
}

// Without returns a new view with the given indices removed.
func (v *View) Without(idx []int) *View {
	live := v.live.Clone()
	for _, i := range idx {
		live.Clear(uint(i))
	}
	return &View{a: v.a, live: live, n: int(live.Count())}
}

// OutDegree returns the number of edges from i to live nodes, counting
// parallel edges.
func (v *View) OutDegree(i int) int {
	d := 0
	for _, j := range v.a.succ[i] {
		if v.live.Test(uint(j)) {
			d++
		}
	}
	return d
}

// MaxPriority returns the largest value of priority component k among live
// nodes and true, or false if the view is empty.
func (v *View) MaxPriority(k int) (int, bool) {
	best, found := 0, false
	for i, ok := v.live.NextSet(0); ok; i, ok = v.live.NextSet(i + 1) {
		if p := v.a.nodes[i].Priorities[k]; !found || p > best {
			best, found = p, true
		}
	}
	return best, found
}

// WithPriority returns the live indices whose priority component k equals p.
func (v *View) WithPriority(k, p int) []int {
	var out []int
	for i, ok := v.live.NextSet(0); ok; i, ok = v.live.NextSet(i + 1) {
		if v.a.nodes[i].Priorities[k] == p {
			out = append(out, int(i))
		}
	}
	return out
}

// Subgame materializes the view as a standalone arena.
func (v *View) Subgame() *Arena {
	return v.a.induced(v.Indices(), v.Has)
}
