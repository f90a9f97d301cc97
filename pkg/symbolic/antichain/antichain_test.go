package antichain

import (
	"context"
	"testing"

	"github.com/matzehuels/gamesolver/pkg/arena"
	"github.com/matzehuels/gamesolver/pkg/arena/arenatest"
	"github.com/matzehuels/gamesolver/pkg/arena/generate"
	"github.com/matzehuels/gamesolver/pkg/safety"
	"github.com/matzehuels/gamesolver/pkg/solver"
	"github.com/matzehuels/gamesolver/pkg/symbolic"
)

func TestAntichainInsert(t *testing.T) {
	var a antichain
	a = a.insert([]int{1, 2})
	a = a.insert([]int{2, 1})
	a = a.insert([]int{1, 1}) // dominated
	if len(a) != 2 {
		t.Fatalf("antichain = %v, want two elements", a)
	}
	a = a.insert([]int{2, 2}) // dominates both
	if len(a) != 1 || a[0][0] != 2 || a[0][1] != 2 {
		t.Errorf("antichain = %v, want [[2 2]]", a)
	}
}

func TestAntichainMeet(t *testing.T) {
	a := antichain{{3, 0}, {0, 3}}
	b := antichain{{2, 2}}
	got := a.meet(b)
	want := antichain{{2, 0}, {0, 2}}
	if !got.equal(want) {
		t.Errorf("meet = %v, want %v", got, want)
	}
	if got := a.meet(nil); len(got) != 0 {
		t.Errorf("meet with empty = %v", got)
	}
}

func TestOmega(t *testing.T) {
	g := &game{bounds: safety.Bounds{2, 1}}
	tests := []struct {
		name string
		d    []int
		p    int
		want []int
		ok   bool
	}{
		{"odd decrements", []int{2, 1}, 1, []int{1, 1}, true},
		{"odd at zero", []int{0, 1}, 1, nil, false},
		{"even restores lower buckets", []int{0, 0}, 2, []int{2, 0}, true},
		{"even zero keeps all", []int{0, 1}, 0, []int{0, 1}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := g.omega(tt.d, tt.p)
			if ok != tt.ok {
				t.Fatalf("omega ok = %v, want %v", ok, tt.ok)
			}
			if ok && !antichain([][]int{got}).equal(antichain{tt.want}) {
				t.Errorf("omega(%v, %d) = %v, want %v", tt.d, tt.p, got, tt.want)
			}
		})
	}
}

func TestSolveFixtures(t *testing.T) {
	tests := []struct {
		name   string
		a      *arena.Arena
		origin int
		w0     []arena.NodeID
	}{
		{"example3", arenatest.Example3(), 1, arenatest.IDs(1, 2, 3, 4)},
		{"boundary even", arenatest.BoundaryEven(), 1, arenatest.IDs(1, 2, 3)},
		{"boundary odd", arenatest.BoundaryOdd(), 1, nil},
		{"reset below", arenatest.ResetBelow(), 1, nil},
		{"worst case", generate.WorstCase(2), 0, arenatest.IDs(0, 1, 2, 3, 4, 5, 6)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sol, err := symbolic.Solve(context.Background(), New(), tt.a, tt.origin)
			if err != nil {
				t.Fatalf("Solve() = %v", err)
			}
			if !arenatest.SameIDs(sol.Regions[0], tt.w0) {
				t.Errorf("W0 = %v, want %v", sol.Regions[0], tt.w0)
			}
			if err := sol.CheckPartition(tt.a); err != nil {
				t.Error(err)
			}
			if sol.Stats.Iterations == 0 {
				t.Error("Iterations not reported")
			}
		})
	}
}

func TestSolveMatchesOtherSolvers(t *testing.T) {
	ctx := context.Background()
	for seed := uint64(1); seed <= 40; seed++ {
		a := generate.Random(seed, 12, 6, 1, 3)
		got, err := symbolic.Solve(ctx, New(), a, 1)
		if err != nil {
			t.Fatalf("seed %d: %v", seed, err)
		}
		recursive, err := solver.StrongParityRegions(a)
		if err != nil {
			t.Fatalf("seed %d: %v", seed, err)
		}
		reduced, err := safety.Solve(a)
		if err != nil {
			t.Fatalf("seed %d: %v", seed, err)
		}
		if !arenatest.SameIDs(got.Regions[0], recursive.Regions[0]) {
			t.Errorf("seed %d: W0 antichain %v, recursive %v", seed, got.Regions[0], recursive.Sorted(0))
		}
		if !arenatest.SameIDs(got.Regions[0], reduced.Regions[0]) {
			t.Errorf("seed %d: W0 antichain %v, safety %v", seed, got.Regions[0], reduced.Sorted(0))
		}
	}
}

func TestWinningRegionsCancelled(t *testing.T) {
	h, err := New().NewGame(1, []int{1}, []int{0})
	if err != nil {
		t.Fatal(err)
	}
	if err := h.AddEdge(0, 0); err != nil {
		t.Fatal(err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := h.WinningRegions(ctx); err == nil {
		t.Error("WinningRegions() succeeded on a cancelled context")
	}
}

func TestHandleErrors(t *testing.T) {
	if _, err := New().NewGame(2, []int{0}, []int{0, 1}); err == nil {
		t.Error("NewGame accepted mismatched arrays")
	}
	if _, err := New().NewGame(1, []int{0}, []int{2}); err == nil {
		t.Error("NewGame accepted player 2")
	}
	h, _ := New().NewGame(1, []int{0}, []int{0})
	if err := h.AddEdge(0, 1); err == nil {
		t.Error("AddEdge accepted an out-of-range node")
	}
	_ = h.Close()
	if err := h.AddEdge(0, 0); err == nil {
		t.Error("AddEdge accepted an edge after Close")
	}
}
