// Package arenatest provides fixture arenas and checks shared by the solver
// test suites.
//
// Every fixture comes with its hand-verified solution so that solvers can be
// tested against known answers as well as against each other.
package arenatest

import (
	"fmt"
	"slices"

	"github.com/matzehuels/gamesolver/pkg/arena"
)

// Fixture describes one node and its successors.
type Fixture struct {
	ID     arena.NodeID
	Player arena.Player
	Prio   []int
	Succ   []arena.NodeID
}

// Build creates an arena from fixture nodes, adding all nodes before any edge.
// It panics on invalid input, since fixtures are static.
func Build(nodes []Fixture) *arena.Arena {
	a := arena.New()
	for _, s := range nodes {
		if err := a.AddNode(arena.Node{ID: s.ID, Player: s.Player, Priorities: s.Prio}); err != nil {
			panic(fmt.Sprintf("arenatest: %v", err))
		}
	}
	for _, s := range nodes {
		for _, to := range s.Succ {
			if err := a.AddEdge(s.ID, to); err != nil {
				panic(fmt.Sprintf("arenatest: %v", err))
			}
		}
	}
	return a
}

func p(v ...int) []int { return v }

// Example3 is a seven-node parity game. Player 0 wins {1, 2, 3, 4} and player 1
// wins {5, 6, 7}. The recursive solver yields the strategies
// {1:2, 3:1, 4:4} for player 0 and {5:6, 6:6, 7:6} for player 1.
func Example3() *arena.Arena {
	return Build([]Fixture{
		{1, arena.Player0, p(2), []arena.NodeID{2, 3}},
		{2, arena.Player1, p(1), []arena.NodeID{1, 4}},
		{3, arena.Player0, p(1), []arena.NodeID{1}},
		{4, arena.Player0, p(4), []arena.NodeID{4}},
		{5, arena.Player1, p(3), []arena.NodeID{6, 2}},
		{6, arena.Player1, p(5), []arena.NodeID{6}},
		{7, arena.Player1, p(3), []arena.NodeID{6, 7}},
	})
}

// Figure32 is a reachability game. With target {1} for player 0 the
// attractor is [1 2 3 5] in discovery order with strategy {1:1, 2:1, 5:2};
// player 1 keeps {4, 6} with strategy {4:6, 6:4}.
func Figure32() *arena.Arena {
	return Build([]Fixture{
		{1, arena.Player0, p(0), []arena.NodeID{1}},
		{2, arena.Player0, p(0), []arena.NodeID{1, 4}},
		{3, arena.Player1, p(0), []arena.NodeID{1, 2}},
		{4, arena.Player1, p(0), []arena.NodeID{3, 6}},
		{5, arena.Player0, p(0), []arena.NodeID{4, 2}},
		{6, arena.Player1, p(0), []arena.NodeID{4}},
	})
}

// BoundaryEven is a cycle a(1) -> b(1) -> c(2) -> a. The counter of
// priority 1 reaches its bound of 2 exactly once per lap without
// overflowing; player 0 wins every node.
func BoundaryEven() *arena.Arena {
	return Build([]Fixture{
		{1, arena.Player0, p(1), []arena.NodeID{2}},
		{2, arena.Player1, p(1), []arena.NodeID{3}},
		{3, arena.Player0, p(2), []arena.NodeID{1}},
	})
}

// BoundaryOdd is a cycle a(1) -> b(1) -> a. The counter of priority 1
// overflows on the third visit; player 1 wins every node.
func BoundaryOdd() *arena.Arena {
	return Build([]Fixture{
		{1, arena.Player0, p(1), []arena.NodeID{2}},
		{2, arena.Player1, p(1), []arena.NodeID{1}},
	})
}

// ResetBelow has a cycle through priorities 3 and 2. The even priority only
// dominates smaller odd priorities, so player 1 wins every node.
func ResetBelow() *arena.Arena {
	return Build([]Fixture{
		{1, arena.Player0, p(3), []arena.NodeID{2}},
		{2, arena.Player0, p(2), []arena.NodeID{1}},
	})
}

// =============================================================================
// Generalized parity fixtures
// =============================================================================

// Complementary has three player-0 nodes, fully connected with self-loops,
// whose two priority functions are never both even on a cycle. Player 1
// wins every node.
func Complementary() *arena.Arena {
	all := []arena.NodeID{1, 2, 3}
	return Build([]Fixture{
		{1, arena.Player0, p(0, 1), all},
		{2, arena.Player0, p(1, 0), all},
		{3, arena.Player0, p(1, 1), all},
	})
}

// SimpleGeneralized is won by player 0 everywhere: every cycle passes node 1,
// whose priorities are even in both functions and maximal.
func SimpleGeneralized() *arena.Arena {
	return Build([]Fixture{
		{1, arena.Player1, p(2, 2), []arena.NodeID{1, 2}},
		{2, arena.Player1, p(1, 1), []arena.NodeID{1}},
	})
}

// Alternating lets the owner of node 1 choose between a cycle that is even
// only in the first function and one that is even only in the second.
// When owner is player 0, alternating satisfies both and player 0 wins every
// node; when owner is player 1, sticking to one cycle wins every node for
// player 1.
func Alternating(owner arena.Player) *arena.Arena {
	return Build([]Fixture{
		{1, owner, p(0, 0), []arena.NodeID{2, 3}},
		{2, arena.Player1, p(2, 1), []arena.NodeID{1}},
		{3, arena.Player1, p(1, 2), []arena.NodeID{1}},
	})
}

// =============================================================================
// Checks
// =============================================================================

// SameIDs reports whether a and b contain the same IDs, ignoring order.
func SameIDs(a, b []arena.NodeID) bool {
	if len(a) != len(b) {
		return false
	}
	x := slices.Sorted(slices.Values(a))
	y := slices.Sorted(slices.Values(b))
	return slices.Equal(x, y)
}

// IDs is shorthand for building an ID slice in tests.
func IDs(v ...int) []arena.NodeID {
	out := make([]arena.NodeID, len(v))
	for i, x := range v {
		out[i] = arena.NodeID(x)
	}
	return out
}

// CheckStrategy verifies that player pl's strategy is defined on every node
// of its region it owns, names an actual successor, and keeps play inside
// the region. Nodes listed in skip are exempt from the stay-inside check.
func CheckStrategy(a *arena.Arena, sol *arena.Solution, pl arena.Player, skip ...arena.NodeID) error {
	region := make(map[arena.NodeID]bool, len(sol.Regions[pl]))
	for _, id := range sol.Regions[pl] {
		region[id] = true
	}
	for _, id := range sol.Regions[pl] {
		n, _ := a.Node(id)
		if n.Player != pl {
			continue
		}
		to, ok := sol.Strategies[pl].Move(id)
		if !ok {
			return fmt.Errorf("%s has no move at %d", pl, id)
		}
		if !slices.Contains(a.Successors(id), to) {
			return fmt.Errorf("%s moves %d -> %d, which is not an edge", pl, id, to)
		}
		if !region[to] && !slices.Contains(skip, id) {
			return fmt.Errorf("%s leaves its region via %d -> %d", pl, id, to)
		}
	}
	return nil
}
