package pipeline

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/gamesolver/pkg/arena"
	"github.com/matzehuels/gamesolver/pkg/arena/arenatest"
	"github.com/matzehuels/gamesolver/pkg/arena/generate"
	"github.com/matzehuels/gamesolver/pkg/cache"
	gerr "github.com/matzehuels/gamesolver/pkg/errors"
	gio "github.com/matzehuels/gamesolver/pkg/io"
	"github.com/matzehuels/gamesolver/pkg/observability"
	"github.com/matzehuels/gamesolver/pkg/store"
)

func quietLogger() *log.Logger {
	return log.NewWithOptions(&bytes.Buffer{}, log.Options{})
}

func TestValidateFormat(t *testing.T) {
	tests := []struct {
		format  string
		wantErr bool
	}{
		{"json", false},
		{"yaml", false},
		{"dot", false},
		{"svg", false},
		{"png", false},
		{"pdf", false},
		{"invalid", true},
		{"SVG", true}, // case-sensitive
		{"", true},
	}

	for _, tt := range tests {
		err := ValidateFormat(tt.format)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateFormat(%q) error = %v, wantErr %v", tt.format, err, tt.wantErr)
		}
	}
}

func TestValidateAndSetDefaults(t *testing.T) {
	var o Options
	if err := o.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("zero options: %v", err)
	}
	if o.Solver != DefaultSolver || o.Logger == nil {
		t.Errorf("defaults not applied: %+v", o)
	}

	tests := []struct {
		name string
		opts Options
		code gerr.Code
	}{
		{"unknown solver", Options{Solver: "magic"}, gerr.ErrCodeInvalidSolver},
		{"bad player", Options{Solver: SolverReachability, Player: 2}, gerr.ErrCodeInvalidInput},
		{"target without reachability", Options{Solver: SolverZielonka, Target: arenatest.IDs(1)}, gerr.ErrCodeInvalidInput},
		{"bad format", Options{Formats: []string{"gif"}}, gerr.ErrCodeInvalidInput},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.opts.ValidateAndSetDefaults()
			if !gerr.Is(err, tt.code) {
				t.Errorf("error = %v, want code %s", err, tt.code)
			}
		})
	}
}

func TestSolverNameNormalized(t *testing.T) {
	o := Options{Solver: " Weak "}
	if err := o.ValidateAndSetDefaults(); err != nil {
		t.Fatal(err)
	}
	if o.Solver != SolverWeak {
		t.Errorf("solver = %q, want %q", o.Solver, SolverWeak)
	}
}

func TestSolverNames(t *testing.T) {
	names := SolverNames()
	if len(names) != 7 {
		t.Errorf("SolverNames() = %v", names)
	}
	if !slices.IsSorted(names) {
		t.Errorf("SolverNames() not sorted: %v", names)
	}
	for _, n := range names {
		if _, err := LookupSolver(n); err != nil {
			t.Errorf("LookupSolver(%q) = %v", n, err)
		}
	}
}

func TestExecuteSolversAgree(t *testing.T) {
	ctx := context.Background()
	r := NewRunner(nil, nil, quietLogger())

	for _, name := range []string{SolverZielonka, SolverZielonkaRegions, SolverSafety, SolverAntichain, SolverGeneralized} {
		t.Run(name, func(t *testing.T) {
			res, err := r.Execute(ctx, arenatest.Example3(), Options{Solver: name})
			if err != nil {
				t.Fatalf("Execute: %v", err)
			}
			if !arenatest.SameIDs(res.Solution.Regions[0], arenatest.IDs(1, 2, 3, 4)) {
				t.Errorf("W0 = %v", res.Solution.Regions[0])
			}
			if !arenatest.SameIDs(res.Solution.Regions[1], arenatest.IDs(5, 6, 7)) {
				t.Errorf("W1 = %v", res.Solution.Regions[1])
			}
			if res.Stats.NodeCount != 7 || res.ArenaHash == "" {
				t.Errorf("stats = %+v, hash %q", res.Stats, res.ArenaHash)
			}
		})
	}
}

func TestExecuteReachability(t *testing.T) {
	r := NewRunner(nil, nil, quietLogger())
	res, err := r.Execute(context.Background(), arenatest.Figure32(), Options{
		Solver: SolverReachability,
		Target: arenatest.IDs(1),
	})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if !slices.Equal(res.Solution.Regions[0], arenatest.IDs(1, 2, 3, 5)) {
		t.Errorf("W0 = %v, want [1 2 3 5]", res.Solution.Regions[0])
	}
}

func TestExecuteInvalidArena(t *testing.T) {
	a := arena.New()
	_ = a.AddNode(arena.Node{ID: 1, Priorities: []int{0}})
	r := NewRunner(nil, nil, quietLogger())
	_, err := r.Execute(context.Background(), a, Options{})
	if !gerr.Is(err, gerr.ErrCodeMalformedArena) {
		t.Errorf("dead end: %v", err)
	}
}

func TestExecuteCaching(t *testing.T) {
	ctx := context.Background()
	c, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	r := NewRunner(c, nil, quietLogger())
	defer r.Close()

	first, err := r.Execute(ctx, arenatest.Example3(), Options{})
	if err != nil {
		t.Fatal(err)
	}
	if first.CacheInfo.SolveHit {
		t.Error("first solve should miss the cache")
	}

	second, err := r.Execute(ctx, arenatest.Example3(), Options{})
	if err != nil {
		t.Fatal(err)
	}
	if !second.CacheInfo.SolveHit {
		t.Error("second solve should hit the cache")
	}
	if !slices.Equal(first.Solution.Regions[0], second.Solution.Regions[0]) {
		t.Errorf("cached W0 = %v, want %v", second.Solution.Regions[0], first.Solution.Regions[0])
	}
	if to, _ := second.Solution.Strategies[0].Move(1); to != 2 {
		t.Errorf("cached σ0(1) = %d, want 2", to)
	}

	// Different options use a different key.
	other, _ := r.Execute(ctx, arenatest.Example3(), Options{Compress: true})
	if other.CacheInfo.SolveHit {
		t.Error("compressed solve should not reuse the plain entry")
	}

	refreshed, _ := r.Execute(ctx, arenatest.Example3(), Options{Refresh: true})
	if refreshed.CacheInfo.SolveHit {
		t.Error("refresh should bypass the cache")
	}
}

func TestSolveHonoursDeadline(t *testing.T) {
	ctx, cancel := context.WithDeadline(context.Background(), time.Now().Add(-time.Second))
	defer cancel()
	r := NewRunner(nil, nil, quietLogger())

	// The recursive solver never polls ctx, so the runner has to give up on it.
	_, err := r.Solve(ctx, generate.Random(3, 5000, 20, 1, 3), Options{Solver: SolverZielonka})
	if !gerr.Is(err, gerr.ErrCodeTimeout) {
		t.Errorf("error = %v, want TIMEOUT", err)
	}

	ctx, cancel = context.WithCancel(context.Background())
	cancel()
	if _, err := r.Solve(ctx, generate.Random(3, 5000, 20, 1, 3), Options{}); !errors.Is(err, context.Canceled) {
		t.Errorf("cancelled: error = %v, want context.Canceled", err)
	}
}

func TestExecuteRecords(t *testing.T) {
	ctx := context.Background()
	s, err := store.NewFileStore(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	r := NewRunner(nil, nil, quietLogger())
	r.Store = s

	res, err := r.Execute(ctx, arenatest.Example3(), Options{Solver: SolverSafety})
	if err != nil {
		t.Fatal(err)
	}
	if res.RecordID == "" {
		t.Fatal("no record stored")
	}
	rec, err := s.Get(ctx, res.RecordID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if rec.Solver != SolverSafety || rec.ArenaHash != res.ArenaHash || rec.W0 != 4 || rec.W1 != 3 {
		t.Errorf("record = %+v", rec)
	}
}

func TestExecuteArtifacts(t *testing.T) {
	r := NewRunner(nil, nil, quietLogger())
	res, err := r.Execute(context.Background(), arenatest.Example3(), Options{
		Formats: []string{FormatJSON, FormatYAML, FormatDOT},
		Title:   "example",
	})
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Artifacts) != 3 {
		t.Fatalf("artifacts = %d, want 3", len(res.Artifacts))
	}
	solverName, sol, err := gio.ReadSolutionJSON(bytes.NewReader(res.Artifacts[FormatJSON]))
	if err != nil {
		t.Fatalf("ReadSolutionJSON: %v", err)
	}
	if solverName != SolverZielonka || len(sol.Regions[0]) != 4 {
		t.Errorf("json artifact: %s %v", solverName, sol)
	}
	if !strings.Contains(string(res.Artifacts[FormatYAML]), "w0:") {
		t.Errorf("yaml artifact: %s", res.Artifacts[FormatYAML])
	}
	if !strings.HasPrefix(string(res.Artifacts[FormatDOT]), "digraph") {
		t.Errorf("dot artifact: %s", res.Artifacts[FormatDOT])
	}
	if res.CacheInfo.RenderHit {
		t.Error("text formats are never served from cache")
	}
}

func TestRenderCacheKeyedByTitle(t *testing.T) {
	ctx := context.Background()
	c, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	r := NewRunner(c, nil, quietLogger())
	defer r.Close()

	render := func(title string) *Result {
		t.Helper()
		res, err := r.Execute(ctx, arenatest.Example3(), Options{Formats: []string{FormatSVG}, Title: title})
		if err != nil {
			t.Fatalf("Execute(%q): %v", title, err)
		}
		return res
	}

	first := render("FIRSTTITLE")
	if !bytes.Contains(first.Artifacts[FormatSVG], []byte("FIRSTTITLE")) {
		t.Fatal("first svg is missing its title")
	}
	second := render("SECONDTITLE")
	if second.CacheInfo.RenderHit {
		t.Error("a new title should miss the render cache")
	}
	svg := second.Artifacts[FormatSVG]
	if !bytes.Contains(svg, []byte("SECONDTITLE")) || bytes.Contains(svg, []byte("FIRSTTITLE")) {
		t.Errorf("second svg carries the wrong title:\n%s", svg)
	}
	if again := render("SECONDTITLE"); !again.CacheInfo.RenderHit {
		t.Error("repeating a title should hit the render cache")
	}
}

type countingHooks struct {
	observability.NoopSolverHooks
	starts, done, cached int
}

func (h *countingHooks) OnSolveStart(context.Context, string, int) { h.starts++ }
func (h *countingHooks) OnSolveComplete(_ context.Context, _ string, s observability.SolveStats, _ error) {
	h.done++
	if s.Cached {
		h.cached++
	}
}

func TestSolveFiresHooks(t *testing.T) {
	h := &countingHooks{}
	observability.SetSolverHooks(h)
	defer observability.Reset()

	c, _ := cache.NewFileCache(t.TempDir())
	r := NewRunner(c, nil, quietLogger())
	for range 2 {
		if _, err := r.Solve(context.Background(), arenatest.Example3(), Options{}); err != nil {
			t.Fatal(err)
		}
	}
	if h.starts != 2 || h.done != 2 || h.cached != 1 {
		t.Errorf("hooks = %+v", h)
	}
}

func TestBench(t *testing.T) {
	var seen []int
	points, err := Bench(context.Background(), BenchOptions{
		Solver: SolverZielonka,
		Family: "worst-case",
		Max:    6,
		Step:   2,
		Reps:   2,
	}, func(p BenchPoint) { seen = append(seen, p.Size) })
	if err != nil {
		t.Fatalf("Bench: %v", err)
	}
	if !slices.Equal(seen, []int{2, 4, 6}) || len(points) != 3 {
		t.Fatalf("sizes = %v", seen)
	}
	for _, p := range points {
		if p.Nodes != 4*p.Size || p.Stats.Calls == 0 {
			t.Errorf("point = %+v", p)
		}
	}
	if points[2].Stats.Calls < 4*points[0].Stats.Calls {
		t.Errorf("calls should double per level: %d at 2, %d at 6", points[0].Stats.Calls, points[2].Stats.Calls)
	}
}

func TestBenchErrors(t *testing.T) {
	ctx := context.Background()
	tests := []struct {
		name string
		opts BenchOptions
		code gerr.Code
	}{
		{"unknown family", BenchOptions{Solver: SolverZielonka, Family: "nope", Max: 3}, gerr.ErrCodeInvalidInput},
		{"unknown solver", BenchOptions{Solver: "nope", Family: "chain", Max: 3}, gerr.ErrCodeInvalidSolver},
		{"max below step", BenchOptions{Solver: SolverZielonka, Family: "chain", Max: 1, Step: 2}, gerr.ErrCodeInvalidInput},
	}
	for _, tt := range tests {
		if _, err := Bench(ctx, tt.opts, nil); !gerr.Is(err, tt.code) {
			t.Errorf("%s: error = %v, want %s", tt.name, err, tt.code)
		}
	}

	cancelled, cancel := context.WithCancel(ctx)
	cancel()
	if _, err := Bench(cancelled, BenchOptions{Solver: SolverZielonka, Family: "chain", Max: 3}, nil); err != context.Canceled {
		t.Errorf("cancelled: %v", err)
	}
}

func TestLoadArena(t *testing.T) {
	dir := t.TempDir()

	text := filepath.Join(dir, "game.txt")
	if err := gio.ExportArena(arenatest.Example3(), text); err != nil {
		t.Fatal(err)
	}
	a, err := LoadArena(text)
	if err != nil || a.Len() != 7 {
		t.Fatalf("LoadArena(text) = %v, %v", a, err)
	}

	var buf bytes.Buffer
	if err := gio.WriteArenaJSON(arenatest.Example3(), &buf); err != nil {
		t.Fatal(err)
	}
	js := filepath.Join(dir, "game.json")
	_ = os.WriteFile(js, buf.Bytes(), 0644)
	b, err := LoadArena(js)
	if err != nil || b.EdgeCount() != 11 {
		t.Fatalf("LoadArena(json) = %v, %v", b, err)
	}

	ha, _ := HashArena(a)
	hb, _ := HashArena(b)
	if ha != hb {
		t.Error("text and JSON copies of one arena should hash alike")
	}

	for _, missing := range []string{"missing.txt", "missing.json"} {
		if _, err := LoadArena(filepath.Join(dir, missing)); !gerr.Is(err, gerr.ErrCodeFileNotFound) {
			t.Errorf("LoadArena(%s) = %v", missing, err)
		}
	}
}

func TestDecodeArena(t *testing.T) {
	a, err := DecodeArena([]byte("2\n1 0 0 2\n2 1 1 1\n"))
	if err != nil || a.Len() != 2 {
		t.Fatalf("text: %v, %v", a, err)
	}

	var buf bytes.Buffer
	_ = gio.WriteArenaJSON(a, &buf)
	b, err := DecodeArena(append([]byte("  \n"), buf.Bytes()...))
	if err != nil || b.Len() != 2 {
		t.Fatalf("json: %v, %v", b, err)
	}

	if _, err := DecodeArena([]byte("{not json")); !gerr.Is(err, gerr.ErrCodeInvalidFormat) {
		t.Errorf("bad json: %v", err)
	}
}
