package solver

import (
	"testing"

	"github.com/matzehuels/gamesolver/pkg/arena"
	"github.com/matzehuels/gamesolver/pkg/arena/arenatest"
	"github.com/matzehuels/gamesolver/pkg/arena/generate"
	gerr "github.com/matzehuels/gamesolver/pkg/errors"
)

func TestStrongParityExample3(t *testing.T) {
	a := arenatest.Example3()
	sol, err := StrongParity(a)
	if err != nil {
		t.Fatalf("StrongParity() = %v", err)
	}

	if !arenatest.SameIDs(sol.Regions[0], arenatest.IDs(1, 2, 3, 4)) {
		t.Errorf("W0 = %v, want {1 2 3 4}", sol.Regions[0])
	}
	if !arenatest.SameIDs(sol.Regions[1], arenatest.IDs(5, 6, 7)) {
		t.Errorf("W1 = %v, want {5 6 7}", sol.Regions[1])
	}
	if want := (arena.Strategy{1: 2, 3: 1, 4: 4}); !mapsEqual(sol.Strategies[0], want) {
		t.Errorf("σ0 = %v, want %v", sol.Strategies[0], want)
	}
	if want := (arena.Strategy{5: 6, 6: 6, 7: 6}); !mapsEqual(sol.Strategies[1], want) {
		t.Errorf("σ1 = %v, want %v", sol.Strategies[1], want)
	}
	if sol.Stats.Calls != 6 {
		t.Errorf("Calls = %d, want 6", sol.Stats.Calls)
	}
}

func TestStrongParityFixtures(t *testing.T) {
	tests := []struct {
		name   string
		a      *arena.Arena
		winner arena.Player
	}{
		{"boundary even", arenatest.BoundaryEven(), arena.Player0},
		{"boundary odd", arenatest.BoundaryOdd(), arena.Player1},
		{"reset below", arenatest.ResetBelow(), arena.Player1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sol, err := StrongParity(tt.a)
			if err != nil {
				t.Fatalf("StrongParity() = %v", err)
			}
			if !arenatest.SameIDs(sol.Regions[tt.winner], tt.a.IDs()) {
				t.Errorf("%s wins %v, want every node", tt.winner, sol.Regions[tt.winner])
			}
			if err := arenatest.CheckStrategy(tt.a, sol, tt.winner); err != nil {
				t.Error(err)
			}
		})
	}
}

func TestStrongParityEmpty(t *testing.T) {
	sol, err := StrongParity(arena.New())
	if err != nil {
		t.Fatalf("StrongParity() = %v", err)
	}
	if len(sol.Regions[0])+len(sol.Regions[1]) != 0 {
		t.Errorf("regions = %v", sol.Regions)
	}
	if sol.Strategies[0] == nil || sol.Strategies[1] == nil {
		t.Error("strategies should be empty, not nil")
	}
	if sol.Stats.Calls != 1 {
		t.Errorf("Calls = %d, want 1", sol.Stats.Calls)
	}
}

func TestStrongParityDeadEnd(t *testing.T) {
	a := arena.New()
	_ = a.AddNode(arena.Node{ID: 1, Player: arena.Player0, Priorities: []int{0}})
	_ = a.AddNode(arena.Node{ID: 2, Player: arena.Player0, Priorities: []int{0}})
	_ = a.AddEdge(1, 2)
	if _, err := StrongParity(a); !gerr.Is(err, gerr.ErrCodeMalformedArena) {
		t.Errorf("error = %v, want MALFORMED_ARENA", err)
	}
}

func TestStrongParityWorstCase(t *testing.T) {
	prev := 0
	for n := 1; n <= 10; n++ {
		a := generate.WorstCase(n)
		sol, err := StrongParityRegions(a)
		if err != nil {
			t.Fatalf("n=%d: %v", n, err)
		}
		calls := sol.Stats.Calls
		if want := 11<<(n-1) - 5; calls != want {
			t.Errorf("n=%d: Calls = %d, want %d", n, calls, want)
		}
		if calls < 2*prev {
			t.Errorf("n=%d: Calls = %d, less than twice the %d at n=%d", n, calls, prev, n-1)
		}
		prev = calls

		top := arena.NodeID(4*n - 1)
		if !arenatest.SameIDs(sol.Regions[1], []arena.NodeID{top}) {
			t.Errorf("n=%d: W1 = %v, want {%d}", n, sol.Regions[1], top)
		}
	}
}

func TestStrongParityRandomSoundness(t *testing.T) {
	for seed := uint64(1); seed <= 40; seed++ {
		a := generate.Random(seed, 30, 8, 1, 3)
		sol, err := StrongParity(a)
		if err != nil {
			t.Fatalf("seed %d: %v", seed, err)
		}
		if err := sol.CheckPartition(a); err != nil {
			t.Fatalf("seed %d: %v", seed, err)
		}
		for _, pl := range []arena.Player{arena.Player0, arena.Player1} {
			if err := checkTrap(a, sol.Regions[pl], pl); err != nil {
				t.Errorf("seed %d: %v", seed, err)
			}
			if err := arenatest.CheckStrategy(a, sol, pl); err != nil {
				t.Errorf("seed %d: %v", seed, err)
			}
		}

		bare, err := StrongParityRegions(a)
		if err != nil {
			t.Fatalf("seed %d: %v", seed, err)
		}
		if bare.HasStrategies() {
			t.Errorf("seed %d: StrongParityRegions recorded strategies", seed)
		}
		compressed, err := StrongParity(a, WithCompression())
		if err != nil {
			t.Fatalf("seed %d: %v", seed, err)
		}
		for p := range sol.Regions {
			if !arenatest.SameIDs(sol.Regions[p], bare.Regions[p]) {
				t.Errorf("seed %d: W%d differs without strategies", seed, p)
			}
			if !arenatest.SameIDs(sol.Regions[p], compressed.Regions[p]) {
				t.Errorf("seed %d: W%d differs after compression", seed, p)
			}
		}
	}
}

func TestStrongParityShiftInvariance(t *testing.T) {
	// Adding the same even constant to every priority changes nothing.
	for seed := uint64(100); seed < 110; seed++ {
		a := generate.Random(seed, 25, 5, 1, 3)
		shifted := a.MapPriorities(func(_, p int) int { return p + 4 })
		x, err := StrongParityRegions(a)
		if err != nil {
			t.Fatal(err)
		}
		y, err := StrongParityRegions(shifted)
		if err != nil {
			t.Fatal(err)
		}
		if !arenatest.SameIDs(x.Regions[0], y.Regions[0]) {
			t.Errorf("seed %d: W0 %v vs %v", seed, x.Sorted(0), y.Sorted(0))
		}
	}
}

func BenchmarkStrongParityWorstCase(b *testing.B) {
	a := generate.WorstCase(12)
	for i := 0; i < b.N; i++ {
		if _, err := StrongParity(a); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkStrongParityRandom(b *testing.B) {
	a := generate.Random(1, 500, 20, 1, 5)
	for i := 0; i < b.N; i++ {
		if _, err := StrongParity(a); err != nil {
			b.Fatal(err)
		}
	}
}
