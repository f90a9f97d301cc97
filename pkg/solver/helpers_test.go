package solver

import (
	"fmt"
	"slices"

	"github.com/matzehuels/gamesolver/pkg/arena"
)

// checkTrap verifies that region of pl cannot be left by the opponent:
// every opponent node in it has all successors inside, and every node of pl
// has at least one.
func checkTrap(a *arena.Arena, region []arena.NodeID, pl arena.Player) error {
	in := make(map[arena.NodeID]bool, len(region))
	for _, id := range region {
		in[id] = true
	}
	for _, id := range region {
		n, _ := a.Node(id)
		succ := a.Successors(id)
		if n.Player == pl {
			if !slices.ContainsFunc(succ, func(s arena.NodeID) bool { return in[s] }) {
				return fmt.Errorf("%s cannot stay in its region at %d", pl, id)
			}
			continue
		}
		for _, s := range succ {
			if !in[s] {
				return fmt.Errorf("%s escapes the region of %s via %d -> %d", n.Player, pl, id, s)
			}
		}
	}
	return nil
}
