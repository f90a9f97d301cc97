package arena

import (
	"fmt"
	"slices"

	gerr "github.com/matzehuels/gamesolver/pkg/errors"
)

// Strategy maps nodes owned by a player to the successor that player moves
// to. A node absent from the map has no recorded move.
type Strategy map[NodeID]NodeID

// Move returns the successor chosen at id, if any.
func (s Strategy) Move(id NodeID) (NodeID, bool) {
	to, ok := s[id]
	return to, ok
}

// Stats records work performed by a solver. Fields that do not apply to a
// solver are left zero.
type Stats struct {
	Calls      int `json:"calls,omitempty" yaml:"calls,omitempty"`           // recursive solver invocations
	MaxDepth   int `json:"max_depth,omitempty" yaml:"max_depth,omitempty"`   // deepest recursion frame
	Attractors int `json:"attractors,omitempty" yaml:"attractors,omitempty"` // attractor computations
	States     int `json:"states,omitempty" yaml:"states,omitempty"`         // safety-encoding states
	Iterations int `json:"iterations,omitempty" yaml:"iterations,omitempty"` // symbolic fixpoint rounds
}

// Solution is the result of solving an arena: the winning region of each
// player and, for solvers that produce them, memoryless winning strategies.
//
// Regions[p] lists the nodes won by player p in the order the solver
// discovered them. Strategies[p] may contain entries on nodes outside
// Regions[p]; those are moves recorded during intermediate steps and are
// kept as produced.
type Solution struct {
	Regions    [2][]NodeID
	Strategies [2]Strategy
	Stats      Stats
}

// Partition returns the winner of every node listed in the solution.
func (s *Solution) Partition() map[NodeID]Region {
	out := make(map[NodeID]Region, len(s.Regions[0])+len(s.Regions[1]))
	for p := range s.Regions {
		for _, id := range s.Regions[p] {
			out[id] = RegionOf(Player(p))
		}
	}
	return out
}

// Winner returns the region containing id, or Unassigned.
func (s *Solution) Winner(id NodeID) Region {
	for p := range s.Regions {
		if slices.Contains(s.Regions[p], id) {
			return RegionOf(Player(p))
		}
	}
	return Unassigned
}

// Sorted returns the region of p in ascending ID order.
func (s *Solution) Sorted(p Player) []NodeID {
	return slices.Sorted(slices.Values(s.Regions[p]))
}

// HasStrategies reports whether the solver recorded any strategy.
func (s *Solution) HasStrategies() bool {
	return s.Strategies[0] != nil || s.Strategies[1] != nil
}

// CheckPartition verifies that the two regions are disjoint, contain no
// duplicates and together cover exactly the nodes of a. Returns an
// INTERNAL_ERROR describing the first violation.
func (s *Solution) CheckPartition(a *Arena) error {
	seen := make(map[NodeID]Region, a.Len())
	for p := range s.Regions {
		for _, id := range s.Regions[p] {
			if !a.Has(id) {
				return gerr.New(gerr.ErrCodeInternal, "node %d in %s is not in the arena", id, RegionOf(Player(p)))
			}
			if prev, dup := seen[id]; dup {
				return gerr.New(gerr.ErrCodeInternal, "node %d assigned to %s and %s", id, prev, RegionOf(Player(p)))
			}
			seen[id] = RegionOf(Player(p))
		}
	}
	if len(seen) != a.Len() {
		for _, id := range a.ids {
			if _, ok := seen[id]; !ok {
				return gerr.New(gerr.ErrCodeInternal, "node %d is unassigned", id)
			}
		}
	}
	return nil
}

// String returns a compact summary such as "W0=3 W1=4".
func (s *Solution) String() string {
	return fmt.Sprintf("W0=%d W1=%d", len(s.Regions[0]), len(s.Regions[1]))
}
