package solver

import (
	"errors"
	"slices"
	"testing"

	"github.com/matzehuels/gamesolver/pkg/arena"
	"github.com/matzehuels/gamesolver/pkg/arena/arenatest"
	"github.com/matzehuels/gamesolver/pkg/arena/generate"
	gerr "github.com/matzehuels/gamesolver/pkg/errors"
)

func TestReachabilityFigure32(t *testing.T) {
	a := arenatest.Figure32()
	sol, err := Reachability(a, arenatest.IDs(1), arena.Player0)
	if err != nil {
		t.Fatalf("Reachability() = %v", err)
	}

	if want := arenatest.IDs(1, 2, 3, 5); !slices.Equal(sol.Regions[0], want) {
		t.Errorf("W0 = %v, want %v", sol.Regions[0], want)
	}
	if want := arenatest.IDs(4, 6); !slices.Equal(sol.Regions[1], want) {
		t.Errorf("W1 = %v, want %v", sol.Regions[1], want)
	}

	wantS0 := arena.Strategy{1: 1, 2: 1, 5: 2}
	wantS1 := arena.Strategy{4: 6, 6: 4}
	if !mapsEqual(sol.Strategies[0], wantS0) {
		t.Errorf("σ0 = %v, want %v", sol.Strategies[0], wantS0)
	}
	if !mapsEqual(sol.Strategies[1], wantS1) {
		t.Errorf("σ1 = %v, want %v", sol.Strategies[1], wantS1)
	}
	if sol.Stats.Attractors != 1 {
		t.Errorf("Attractors = %d, want 1", sol.Stats.Attractors)
	}
}

func TestAttractorFigure32(t *testing.T) {
	a := arenatest.Figure32()
	w, rest, err := Attractor(a, arenatest.IDs(1), arena.Player0)
	if err != nil {
		t.Fatalf("Attractor() = %v", err)
	}
	if !slices.Equal(w, arenatest.IDs(1, 2, 3, 5)) {
		t.Errorf("attractor = %v", w)
	}
	if !slices.Equal(rest, arenatest.IDs(4, 6)) {
		t.Errorf("complement = %v", rest)
	}

	// Player 1 attracting to {6}: 4 can move to 6 and 6 returns to 4.
	w, rest, err = Attractor(a, arenatest.IDs(6), arena.Player1)
	if err != nil {
		t.Fatalf("Attractor() = %v", err)
	}
	if !arenatest.SameIDs(w, arenatest.IDs(4, 6)) {
		t.Errorf("attractor = %v, want [4 6]", w)
	}
	if !arenatest.SameIDs(rest, arenatest.IDs(1, 2, 3, 5)) {
		t.Errorf("complement = %v", rest)
	}
}

func TestAttractorEdgeCases(t *testing.T) {
	a := arenatest.Figure32()

	t.Run("empty target", func(t *testing.T) {
		w, rest, err := Attractor(a, nil, arena.Player0)
		if err != nil {
			t.Fatalf("Attractor() = %v", err)
		}
		if len(w) != 0 || len(rest) != a.Len() {
			t.Errorf("got %v / %v", w, rest)
		}
	})

	t.Run("duplicate target", func(t *testing.T) {
		w, _, err := Attractor(a, arenatest.IDs(1, 1), arena.Player0)
		if err != nil {
			t.Fatalf("Attractor() = %v", err)
		}
		if !slices.Equal(w, arenatest.IDs(1, 2, 3, 5)) {
			t.Errorf("attractor = %v", w)
		}
	})

	t.Run("unknown target", func(t *testing.T) {
		_, _, err := Attractor(a, arenatest.IDs(99), arena.Player0)
		if !gerr.Is(err, gerr.ErrCodeInvalidInput) {
			t.Errorf("error = %v, want INVALID_INPUT", err)
		}
		if !errors.Is(err, arena.ErrUnknownNode) {
			t.Errorf("error = %v, want ErrUnknownNode", err)
		}
	})

	t.Run("dead end", func(t *testing.T) {
		b := arena.New()
		_ = b.AddNode(arena.Node{ID: 1, Player: arena.Player0, Priorities: []int{0}})
		_, err := Reachability(b, arenatest.IDs(1), arena.Player0)
		if !gerr.Is(err, gerr.ErrCodeMalformedArena) {
			t.Errorf("error = %v, want MALFORMED_ARENA", err)
		}
	})
}

func TestReachabilityLine(t *testing.T) {
	// Player 0 can always walk right, so every node reaches the last one.
	a := generate.ReachabilityLine(6)
	sol, err := Reachability(a, arenatest.IDs(5), arena.Player0)
	if err != nil {
		t.Fatalf("Reachability() = %v", err)
	}
	if want := arenatest.IDs(5, 4, 3, 2, 1, 0); !slices.Equal(sol.Regions[0], want) {
		t.Errorf("W0 = %v, want %v", sol.Regions[0], want)
	}
	for i := 0; i < 5; i++ {
		if to, _ := sol.Strategies[0].Move(arena.NodeID(i)); to != arena.NodeID(i+1) {
			t.Errorf("σ0(%d) = %d, want %d", i, to, i+1)
		}
	}
}

func TestReachabilityChain(t *testing.T) {
	// Node k only moves to lower nodes, so by induction every node of the
	// chain is forced into node 1 even though player 1 owns all of them.
	a := generate.ReachabilityChain(5)
	sol, err := Reachability(a, arenatest.IDs(1), arena.Player0)
	if err != nil {
		t.Fatalf("Reachability() = %v", err)
	}
	if !arenatest.SameIDs(sol.Regions[0], arenatest.IDs(1, 2, 3, 4, 5)) {
		t.Errorf("W0 = %v, want all nodes", sol.Regions[0])
	}
	if len(sol.Regions[1]) != 0 {
		t.Errorf("W1 = %v, want empty", sol.Regions[1])
	}
	if err := sol.CheckPartition(a); err != nil {
		t.Error(err)
	}
}

func TestReachabilityRandomClosure(t *testing.T) {
	for seed := uint64(1); seed <= 25; seed++ {
		a := generate.Random(seed, 40, 4, 1, 4)
		for _, j := range []arena.Player{arena.Player0, arena.Player1} {
			sol, err := Reachability(a, arenatest.IDs(1, 2, 3), j)
			if err != nil {
				t.Fatalf("seed %d: %v", seed, err)
			}
			if err := sol.CheckPartition(a); err != nil {
				t.Fatalf("seed %d: %v", seed, err)
			}
			// The complement is a trap for j: the opponent can stay there.
			if err := checkTrap(a, sol.Regions[j.Opponent()], j.Opponent()); err != nil {
				t.Errorf("seed %d, %s: %v", seed, j, err)
			}
			if err := arenatest.CheckStrategy(a, sol, j.Opponent()); err != nil {
				t.Errorf("seed %d, %s: %v", seed, j, err)
			}
			// Targets may fall back to any successor; every other node of j
			// in the attractor moves inside it.
			if err := arenatest.CheckStrategy(a, sol, j, arenatest.IDs(1, 2, 3)...); err != nil {
				t.Errorf("seed %d, %s: %v", seed, j, err)
			}
		}
	}
}

func mapsEqual(a, b arena.Strategy) bool {
	if len(a) != len(b) {
		return false
	}
	for k, v := range a {
		if w, ok := b[k]; !ok || w != v {
			return false
		}
	}
	return true
}
