// Package safety solves parity games by reduction to a safety game.
//
// Each odd priority gets a counter bounded by the number of nodes carrying
// it. Visiting an odd priority increments its counter and visiting an even
// priority resets the counters of all smaller odd priorities. Player 1 wins
// exactly when it can force some counter past its bound, so the parity game
// reduces to an attractor computation towards a single overflow sink on the
// enlarged arena built by [Encode].
//
// The encoding is exponential in the number of distinct odd priorities; use
// [WithMaxStates] to bound it.
package safety

import (
	"github.com/matzehuels/gamesolver/pkg/arena"
	"github.com/matzehuels/gamesolver/pkg/solver"
)

// Solve decides the parity game on a through its safety encoding. Node v is
// won by player 0 iff its initial state (v, 0..0) is outside the player 1
// attractor of the overflow sink. Only regions are returned: positional
// strategies of the encoding carry counters and do not project to
// memoryless strategies on a.
func Solve(a *arena.Arena, opts ...Option) (*arena.Solution, error) {
	enc, err := Encode(a, opts...)
	if err != nil {
		return nil, err
	}
	lost, _, err := solver.Attractor(enc.Arena, []arena.NodeID{enc.Overflow}, arena.Player1)
	if err != nil {
		return nil, err
	}
	attracted := make(map[arena.NodeID]bool, len(lost))
	for _, id := range lost {
		attracted[id] = true
	}

	sol := &arena.Solution{Stats: arena.Stats{States: len(enc.States), Attractors: 1}}
	for _, v := range a.IDs() {
		s, _ := enc.Start(v)
		if attracted[s] {
			sol.Regions[1] = append(sol.Regions[1], v)
		} else {
			sol.Regions[0] = append(sol.Regions[0], v)
		}
	}
	return sol, nil
}
