package solver

import (
	"slices"
	"testing"

	"github.com/matzehuels/gamesolver/pkg/arena"
	"github.com/matzehuels/gamesolver/pkg/arena/arenatest"
	"github.com/matzehuels/gamesolver/pkg/arena/generate"
)

func TestGeneralizedParityFixtures(t *testing.T) {
	tests := []struct {
		name   string
		a      *arena.Arena
		winner arena.Player
	}{
		{"complementary", arenatest.Complementary(), arena.Player1},
		{"simple", arenatest.SimpleGeneralized(), arena.Player0},
		{"alternating owned by player 0", arenatest.Alternating(arena.Player0), arena.Player0},
		{"alternating owned by player 1", arenatest.Alternating(arena.Player1), arena.Player1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sol, err := GeneralizedParity(tt.a)
			if err != nil {
				t.Fatalf("GeneralizedParity() = %v", err)
			}
			if !arenatest.SameIDs(sol.Regions[tt.winner], tt.a.IDs()) {
				t.Errorf("%s wins %v, want every node", tt.winner, sol.Regions[tt.winner])
			}
			if sol.HasStrategies() {
				t.Error("generalized parity should not report strategies")
			}
			if sol.Stats.Calls == 0 {
				t.Error("Calls not recorded")
			}
		})
	}
}

func TestGeneralizedParityMatchesStrong(t *testing.T) {
	for seed := uint64(1); seed <= 30; seed++ {
		a := generate.Random(seed, 25, 7, 1, 3)
		gen, err := GeneralizedParity(a)
		if err != nil {
			t.Fatalf("seed %d: %v", seed, err)
		}
		strong, err := StrongParityRegions(a)
		if err != nil {
			t.Fatalf("seed %d: %v", seed, err)
		}
		if !arenatest.SameIDs(gen.Regions[0], strong.Regions[0]) {
			t.Errorf("seed %d: W0 generalized %v, strong %v", seed, gen.Sorted(0), strong.Sorted(0))
		}
	}
}

func TestGeneralizedParityRandomPartition(t *testing.T) {
	for seed := uint64(1); seed <= 20; seed++ {
		a := generate.RandomGeneralized(seed, 20, 3, 5, 1, 3)
		sol, err := GeneralizedParity(a, WithCompression())
		if err != nil {
			t.Fatalf("seed %d: %v", seed, err)
		}
		if err := sol.CheckPartition(a); err != nil {
			t.Errorf("seed %d: %v", seed, err)
		}
		for _, pl := range []arena.Player{arena.Player0, arena.Player1} {
			if err := checkTrap(a, sol.Regions[pl], pl); err != nil {
				t.Errorf("seed %d: %v", seed, err)
			}
		}
	}
}

func TestGeneralizedParityAgainstStrategyEnumeration(t *testing.T) {
	for k := 2; k <= 3; k++ {
		for seed := uint64(1); seed <= 150; seed++ {
			a := generate.RandomGeneralized(seed, 8, k, 5, 1, 3)
			sol, err := GeneralizedParity(a)
			if err != nil {
				t.Fatalf("k=%d seed %d: %v", k, seed, err)
			}
			want := generalizedWinners(a)
			for _, id := range a.IDs() {
				if got := sol.Winner(id) == arena.RegionOf(arena.Player0); got != want[id] {
					t.Errorf("k=%d seed %d: node %d won by player 0 = %v, want %v", k, seed, id, got, want[id])
				}
			}
		}
	}
}

// generalizedWinners returns the nodes from which player 0 wins, by brute
// force. Player 1's objective is a disjunction of parity conditions, so
// memoryless strategies suffice for player 1: player 0 wins from v iff it
// wins against every memoryless strategy of player 1, and in the resulting
// one-player graph that means reaching a cycle whose maximum is even in
// every priority function.
func generalizedWinners(a *arena.Arena) map[arena.NodeID]bool {
	ids := a.IDs()
	var opp []arena.NodeID
	for _, id := range ids {
		if n, _ := a.Node(id); n.Player == arena.Player1 {
			opp = append(opp, id)
		}
	}

	win := make(map[arena.NodeID]bool, len(ids))
	for _, id := range ids {
		win[id] = true
	}
	choice := make([]int, len(opp))
	for {
		succ := make(map[arena.NodeID][]arena.NodeID, len(ids))
		for _, id := range ids {
			succ[id] = a.Successors(id)
		}
		for i, id := range opp {
			succ[id] = succ[id][choice[i] : choice[i]+1]
		}

		good := make(map[arena.NodeID]bool)
		for _, id := range goodCycleNodes(a, ids, succ) {
			good[id] = true
		}
		for _, id := range ids {
			if win[id] && !reaches(id, good, succ) {
				win[id] = false
			}
		}

		// Advance to player 1's next memoryless strategy.
		i := 0
		for ; i < len(opp); i++ {
			choice[i]++
			if choice[i] < len(a.Successors(opp[i])) {
				break
			}
			choice[i] = 0
		}
		if i == len(opp) {
			return win
		}
	}
}

// goodCycleNodes returns the nodes of nodes that lie on a cycle whose maximum
// is even in every priority function. A component with an odd maximum m in
// some function cannot use a node of priority m there, so those nodes are
// dropped and the rest is decomposed again.
func goodCycleNodes(a *arena.Arena, nodes []arena.NodeID, succ map[arena.NodeID][]arena.NodeID) []arena.NodeID {
	var out []arena.NodeID
	for _, comp := range components(nodes, succ) {
		if !cyclic(comp, succ) {
			continue
		}
		bad, top := -1, 0
		for f := 0; f < a.Arity() && bad < 0; f++ {
			m := -1
			for _, id := range comp {
				n, _ := a.Node(id)
				m = max(m, n.Priorities[f])
			}
			if m%2 == 1 {
				bad, top = f, m
			}
		}
		if bad < 0 {
			out = append(out, comp...)
			continue
		}
		var rest []arena.NodeID
		for _, id := range comp {
			if n, _ := a.Node(id); n.Priorities[bad] != top {
				rest = append(rest, id)
			}
		}
		out = append(out, goodCycleNodes(a, rest, succ)...)
	}
	return out
}

// components splits nodes into the strongly connected components of the
// graph they induce.
func components(nodes []arena.NodeID, succ map[arena.NodeID][]arena.NodeID) [][]arena.NodeID {
	in := make(map[arena.NodeID]bool, len(nodes))
	for _, id := range nodes {
		in[id] = true
	}
	reach := make(map[arena.NodeID]map[arena.NodeID]bool, len(nodes))
	for _, id := range nodes {
		seen := map[arena.NodeID]bool{id: true}
		stack := []arena.NodeID{id}
		for len(stack) > 0 {
			v := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			for _, s := range succ[v] {
				if in[s] && !seen[s] {
					seen[s] = true
					stack = append(stack, s)
				}
			}
		}
		reach[id] = seen
	}

	done := make(map[arena.NodeID]bool, len(nodes))
	var comps [][]arena.NodeID
	for _, id := range nodes {
		if done[id] {
			continue
		}
		var comp []arena.NodeID
		for _, other := range nodes {
			if reach[id][other] && reach[other][id] {
				comp = append(comp, other)
				done[other] = true
			}
		}
		comps = append(comps, comp)
	}
	return comps
}

// cyclic reports whether comp contains an edge, that is a cycle.
func cyclic(comp []arena.NodeID, succ map[arena.NodeID][]arena.NodeID) bool {
	for _, id := range comp {
		for _, s := range succ[id] {
			if slices.Contains(comp, s) {
				return true
			}
		}
	}
	return false
}

func reaches(from arena.NodeID, target map[arena.NodeID]bool, succ map[arena.NodeID][]arena.NodeID) bool {
	seen := map[arena.NodeID]bool{from: true}
	stack := []arena.NodeID{from}
	for len(stack) > 0 {
		v := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if target[v] {
			return true
		}
		for _, s := range succ[v] {
			if !seen[s] {
				seen[s] = true
				stack = append(stack, s)
			}
		}
	}
	return false
}
