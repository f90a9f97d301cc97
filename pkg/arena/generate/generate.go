// Package generate builds synthetic arenas for tests, benchmarks and the
// CLI's generate command.
//
// The deterministic families are the classic stress inputs: [CompleteGraph]
// and [ReachabilityChain] maximise the edges an attractor must examine, and
// [WorstCase] drives the recursive parity solver to exponentially many
// calls. [Random] draws arenas from a seeded generator so that
// failures are reproducible.
package generate

import (
	"fmt"
	"math/rand/v2"
	"slices"
	"sort"

	"github.com/matzehuels/gamesolver/pkg/arena"
)

// Family builds an arena of size parameter n. Deterministic families ignore
// seed.
type Family func(n int, seed uint64) *arena.Arena

var families = map[string]Family{
	"random":     func(n int, seed uint64) *arena.Arena { return Random(seed, n, n, 1, max(1, n/2)) },
	"complete":   func(n int, _ uint64) *arena.Arena { return CompleteGraph(n) },
	"chain":      func(n int, _ uint64) *arena.Arena { return ReachabilityChain(n) },
	"line":       func(n int, _ uint64) *arena.Arena { return ReachabilityLine(n) },
	"worst-case": func(n int, _ uint64) *arena.Arena { return WorstCase(n) },
}

// Lookup returns the family registered under name.
func Lookup(name string) (Family, error) {
	f, ok := families[name]
	if !ok {
		return nil, fmt.Errorf("unknown family %q (expected one of %v)", name, Names())
	}
	return f, nil
}

// Names returns the registered family names in sorted order.
func Names() []string {
	names := make([]string, 0, len(families))
	for name := range families {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func newRNG(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0xdeadbeef))
}

func mustAdd(a *arena.Arena, n arena.Node) {
	if err := a.AddNode(n); err != nil {
		panic(err)
	}
}

func mustEdge(a *arena.Arena, from, to arena.NodeID) {
	if err := a.AddEdge(from, to); err != nil {
		panic(err)
	}
}

// Random returns an arena with nodes 1..n, each owned by a random player,
// carrying a random priority in [0, maxPrio] and between minOut and maxOut
// distinct successors (clamped to [1, n]).
func Random(seed uint64, n, maxPrio, minOut, maxOut int) *arena.Arena {
	return RandomGeneralized(seed, n, 1, maxPrio, minOut, maxOut)
}

// RandomGeneralized is [Random] with k priority functions per node.
func RandomGeneralized(seed uint64, n, k, maxPrio, minOut, maxOut int) *arena.Arena {
	rng := newRNG(seed)
	a := arena.New()
	for id := 1; id <= n; id++ {
		prios := make([]int, k)
		for i := range prios {
			prios[i] = rng.IntN(maxPrio + 1)
		}
		mustAdd(a, arena.Node{ID: arena.NodeID(id), Player: arena.Player(rng.IntN(2)), Priorities: prios})
	}
	lo := min(max(minOut, 1), n)
	hi := min(max(maxOut, lo), n)
	for id := 1; id <= n; id++ {
		d := lo + rng.IntN(hi-lo+1)
		succ := rng.Perm(n)[:d]
		slices.Sort(succ)
		for _, s := range succ {
			mustEdge(a, arena.NodeID(id), arena.NodeID(s+1))
		}
	}
	return a
}

// CompleteGraph returns the complete arena on nodes 1..n, self-loops
// included. Node 1 belongs to player 0 and every other node to player 1;
// all priorities are 0.
func CompleteGraph(n int) *arena.Arena {
	a := arena.New()
	for id := 1; id <= n; id++ {
		owner := arena.Player1
		if id == 1 {
			owner = arena.Player0
		}
		mustAdd(a, arena.Node{ID: arena.NodeID(id), Player: owner, Priorities: []int{0}})
	}
	for u := 1; u <= n; u++ {
		for v := 1; v <= n; v++ {
			mustEdge(a, arena.NodeID(u), arena.NodeID(v))
		}
	}
	return a
}

// ReachabilityChain returns nodes 1..n owned by player 1 with priority 0.
// Node 1 has every node as successor and node k > 1 has successors k-1
// down to 1, for n(n+1)/2 edges in total.
func ReachabilityChain(n int) *arena.Arena {
	a := arena.New()
	for id := 1; id <= n; id++ {
		mustAdd(a, arena.Node{ID: arena.NodeID(id), Player: arena.Player1, Priorities: []int{0}})
	}
	for v := n; v >= 1; v-- {
		mustEdge(a, 1, arena.NodeID(v))
	}
	for k := 2; k <= n; k++ {
		for v := k - 1; v >= 1; v-- {
			mustEdge(a, arena.NodeID(k), arena.NodeID(v))
		}
	}
	return a
}

// ReachabilityLine returns nodes 0..n-1 owned by player 0 with priority 0,
// each with a self-loop and an edge to its successor on the line.
func ReachabilityLine(n int) *arena.Arena {
	a := arena.New()
	for i := 0; i < n; i++ {
		mustAdd(a, arena.Node{ID: arena.NodeID(i), Player: arena.Player0, Priorities: []int{0}})
	}
	for i := 0; i < n; i++ {
		mustEdge(a, arena.NodeID(i), arena.NodeID(i))
		if i != n-1 {
			mustEdge(a, arena.NodeID(i), arena.NodeID(i+1))
		}
	}
	return a
}

// WorstCase returns a ladder of n levels on which the recursive parity
// solver makes 11·2^(n-1) - 5 calls. Every node's priority equals its ID.
// Level i holds four nodes:
//
//	4i    player 0, self-loop
//	4i+1  player 1, edges to 4i+2 and to 4i-2 (the latter for i > 0)
//	4i+2  player 0, self-loop
//	4i+3  player 0, self-loop and an edge to 4i+5 (for i < n-1)
//
// Player 1 wins only the top node 4n-1. Solving the ladder of n levels
// solves the ladder of n-1 levels twice: once whole, and once without its
// top node, which player 1 wins there.
func WorstCase(n int) *arena.Arena {
	a := arena.New()
	for id := 0; id < 4*n; id++ {
		owner := arena.Player0
		if id%4 == 1 {
			owner = arena.Player1
		}
		mustAdd(a, arena.Node{ID: arena.NodeID(id), Player: owner, Priorities: []int{id}})
	}
	for i := 0; i < n; i++ {
		base := arena.NodeID(4 * i)
		mustEdge(a, base, base)
		mustEdge(a, base+1, base+2)
		if i > 0 {
			mustEdge(a, base+1, base-2)
		}
		mustEdge(a, base+2, base+2)
		mustEdge(a, base+3, base+3)
		if i < n-1 {
			mustEdge(a, base+3, base+5)
		}
	}
	return a
}
