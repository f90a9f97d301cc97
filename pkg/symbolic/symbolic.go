// Package symbolic adapts external decision procedures for parity games.
//
// A [Backend] receives the game as flat arrays over nodes 0..n-1, one
// AddEdge call per edge, and answers with one label per node: 1 if player 0
// wins the node, 0 if player 1 does. [Solve] translates between that wire
// shape and an [arena.Arena] whose IDs are contiguous from a chosen origin.
//
// The antichain subpackage provides a native backend.
package symbolic

import (
	"context"

	"github.com/matzehuels/gamesolver/pkg/arena"
	gerr "github.com/matzehuels/gamesolver/pkg/errors"
)

// Backend creates game handles.
type Backend interface {
	// NewGame allocates a game with n nodes. priorities[i] and players[i]
	// describe node i.
	NewGame(n int, priorities, players []int) (Handle, error)
}

// Handle is one game inside a backend.
type Handle interface {
	AddEdge(u, v int) error
	// WinningRegions runs the decision procedure and returns n labels.
	WinningRegions(ctx context.Context) ([]int, error)
	Close() error
}

// IterationReporter is implemented by handles that count fixpoint rounds.
type IterationReporter interface {
	Iterations() int
}

// Solve decides the parity game on a with backend b. The node IDs of a must
// be exactly origin..origin+n-1, where origin is 0 or 1. Only regions are
// returned, in ascending ID order.
func Solve(ctx context.Context, b Backend, a *arena.Arena, origin int) (*arena.Solution, error) {
	if origin != 0 && origin != 1 {
		return nil, gerr.New(gerr.ErrCodeInvalidInput, "index origin must be 0 or 1, got %d", origin)
	}
	if a.Arity() > 1 {
		return nil, gerr.New(gerr.ErrCodeUnsupported, "symbolic backends take a single priority function, arena has %d", a.Arity())
	}
	if err := a.Validate(); err != nil {
		return nil, err
	}

	n := a.Len()
	priorities := make([]int, n)
	players := make([]int, n)
	for _, node := range a.Nodes() {
		i := int(node.ID) - origin
		if i < 0 || i >= n {
			return nil, gerr.New(gerr.ErrCodeMalformedArena, "node %d outside %d..%d", node.ID, origin, origin+n-1)
		}
		priorities[i] = node.Priority()
		players[i] = int(node.Player)
	}

	h, err := b.NewGame(n, priorities, players)
	if err != nil {
		return nil, gerr.Wrap(gerr.ErrCodeBackend, err, "create game")
	}
	defer h.Close()

	var edgeErr error
	a.EachEdge(func(from, to arena.NodeID) {
		if edgeErr == nil {
			edgeErr = h.AddEdge(int(from)-origin, int(to)-origin)
		}
	})
	if edgeErr != nil {
		return nil, gerr.Wrap(gerr.ErrCodeBackend, edgeErr, "add edge")
	}

	labels, err := h.WinningRegions(ctx)
	if err != nil {
		return nil, gerr.Wrap(gerr.ErrCodeBackend, err, "winning regions")
	}
	if len(labels) != n {
		return nil, gerr.New(gerr.ErrCodeBackend, "backend returned %d labels for %d nodes", len(labels), n)
	}

	sol := &arena.Solution{}
	for i, l := range labels {
		id := arena.NodeID(i + origin)
		switch l {
		case 1:
			sol.Regions[0] = append(sol.Regions[0], id)
		case 0:
			sol.Regions[1] = append(sol.Regions[1], id)
		default:
			return nil, gerr.New(gerr.ErrCodeBackend, "label %d for node %d", l, id)
		}
	}
	if r, ok := h.(IterationReporter); ok {
		sol.Stats.Iterations = r.Iterations()
	}
	return sol, nil
}
