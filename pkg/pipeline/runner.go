package pipeline

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/gamesolver/pkg/arena"
	"github.com/matzehuels/gamesolver/pkg/cache"
	gerr "github.com/matzehuels/gamesolver/pkg/errors"
	gio "github.com/matzehuels/gamesolver/pkg/io"
	"github.com/matzehuels/gamesolver/pkg/observability"
	"github.com/matzehuels/gamesolver/pkg/store"
)

// Runner encapsulates pipeline execution with caching.
// Both CLI and API use this to avoid duplicating caching logic.
//
// The Runner is stateless except for the cache, store and logger. Multiple
// goroutines can safely use the same Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger

	// Store receives one record per solve. Nil disables records.
	Store store.Store
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Execute runs the validate → solve → render pipeline on a with caching.
func (r *Runner) Execute(ctx context.Context, a *arena.Arena, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	// Stage 1: Validate
	if err := a.Validate(); err != nil {
		return nil, fmt.Errorf("validate: %w", err)
	}
	hash, err := HashArena(a)
	if err != nil {
		return nil, fmt.Errorf("hash arena: %w", err)
	}
	result := &Result{
		Arena:     a,
		ArenaHash: hash,
		Artifacts: make(map[string][]byte),
	}
	result.Stats.NodeCount = a.Len()
	result.Stats.EdgeCount = a.EdgeCount()

	// Stage 2: Solve
	solveStart := time.Now()
	sol, hit, err := r.SolveWithCacheInfo(ctx, a, hash, opts)
	if err != nil {
		return nil, fmt.Errorf("solve: %w", err)
	}
	result.Solution = sol
	result.Stats.SolveTime = time.Since(solveStart)
	result.CacheInfo.SolveHit = hit

	r.Logger.Info("solved game",
		"solver", opts.Solver,
		"nodes", a.Len(),
		"w0", len(sol.Regions[0]),
		"w1", len(sol.Regions[1]),
		"cached", hit,
		"duration", result.Stats.SolveTime)

	if r.Store != nil {
		rec := store.NewRecord(opts.Solver, hash, a, sol, result.Stats.SolveTime)
		rec.Cached = hit
		err := cache.DefaultBackoff.Do(ctx, func() error { return r.Store.Put(ctx, rec) })
		if err != nil {
			r.Logger.Warn("store record", "err", err)
		} else {
			result.RecordID = rec.ID
		}
	}

	// Stage 3: Render
	if len(opts.Formats) == 0 {
		return result, nil
	}
	renderStart := time.Now()
	artifacts, renderHit, err := r.RenderWithCacheInfo(ctx, a, hash, sol, opts)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	result.Artifacts = artifacts
	result.Stats.RenderTime = time.Since(renderStart)
	result.CacheInfo.RenderHit = renderHit

	r.Logger.Info("rendered outputs",
		"formats", opts.Formats,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// SolveWithCacheInfo solves a with caching and returns cache hit info.
// arenaHash must be the [HashArena] of a.
func (r *Runner) SolveWithCacheInfo(ctx context.Context, a *arena.Arena, arenaHash string, opts Options) (*arena.Solution, bool, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, false, err
	}
	fn, err := LookupSolver(opts.Solver)
	if err != nil {
		return nil, false, err
	}
	hooks := observability.Solver()
	hooks.OnSolveStart(ctx, opts.Solver, a.Len())

	cacheKey := r.Keyer.SolutionKey(arenaHash, opts.SolutionKeyOpts())

	// Try cache first (unless refresh requested)
	if !opts.Refresh {
		if sol, ok := r.cachedSolution(ctx, cacheKey); ok {
			hooks.OnSolveComplete(ctx, opts.Solver, solveStats(a, sol, 0, true), nil)
			return sol, true, nil
		}
	}

	start := time.Now()
	sol, err := solveWithin(ctx, fn, a, opts)
	elapsed := time.Since(start)
	if err != nil {
		hooks.OnSolveComplete(ctx, opts.Solver, observability.SolveStats{Nodes: a.Len(), Duration: elapsed}, err)
		return nil, false, err
	}
	hooks.OnSolveComplete(ctx, opts.Solver, solveStats(a, sol, elapsed, false), nil)

	var buf bytes.Buffer
	if err := gio.WriteSolutionJSON(opts.Solver, sol, &buf); err == nil {
		if err := r.Cache.Set(ctx, cacheKey, buf.Bytes(), cache.SolutionTTL); err != nil {
			r.Logger.Debug("cache set failed", "key", cacheKey, "err", err)
		} else {
			observability.Cache().OnCacheSet(ctx, "solution", buf.Len())
		}
	}
	return sol, false, nil
}

// solveWithin runs fn and gives up once ctx is done. Only some solvers poll
// ctx; the others keep running in the background until they finish and their
// result is dropped.
func solveWithin(ctx context.Context, fn SolveFunc, a *arena.Arena, opts Options) (*arena.Solution, error) {
	type outcome struct {
		sol *arena.Solution
		err error
	}
	done := make(chan outcome, 1)
	go func() {
		defer func() {
			if p := recover(); p != nil {
				done <- outcome{err: gerr.New(gerr.ErrCodeInternal, "solver %s panicked: %v", opts.Solver, p)}
			}
		}()
		sol, err := fn(ctx, a, opts)
		done <- outcome{sol, err}
	}()

	select {
	case o := <-done:
		return o.sol, o.err
	case <-ctx.Done():
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return nil, gerr.Wrap(gerr.ErrCodeTimeout, ctx.Err(), "solver %s did not finish in time", opts.Solver)
		}
		return nil, ctx.Err()
	}
}

func (r *Runner) cachedSolution(ctx context.Context, key string) (*arena.Solution, bool) {
	var data []byte
	var hit bool
	err := cache.DefaultBackoff.Do(ctx, func() error {
		var err error
		data, hit, err = r.Cache.Get(ctx, key)
		return err
	})
	if err != nil {
		r.Logger.Debug("cache get failed", "key", key, "err", err)
	}
	if err != nil || !hit {
		observability.Cache().OnCacheMiss(ctx, "solution")
		return nil, false
	}
	_, sol, err := gio.ReadSolutionJSON(bytes.NewReader(data))
	if err != nil {
		// Unreadable entries fall through to a fresh solve.
		observability.Cache().OnCacheMiss(ctx, "solution")
		return nil, false
	}
	observability.Cache().OnCacheHit(ctx, "solution")
	return sol, true
}

func solveStats(a *arena.Arena, sol *arena.Solution, d time.Duration, cached bool) observability.SolveStats {
	return observability.SolveStats{
		Nodes:      a.Len(),
		Edges:      a.EdgeCount(),
		Won0:       len(sol.Regions[0]),
		Won1:       len(sol.Regions[1]),
		Calls:      sol.Stats.Calls,
		Attractors: sol.Stats.Attractors,
		States:     sol.Stats.States,
		Iterations: sol.Stats.Iterations,
		Duration:   d,
		Cached:     cached,
	}
}

// Solve is a convenience wrapper that hashes a, calls SolveWithCacheInfo
// and discards the cache hit info.
func (r *Runner) Solve(ctx context.Context, a *arena.Arena, opts Options) (*arena.Solution, error) {
	if err := a.Validate(); err != nil {
		return nil, err
	}
	hash, err := HashArena(a)
	if err != nil {
		return nil, err
	}
	sol, _, err := r.SolveWithCacheInfo(ctx, a, hash, opts)
	return sol, err
}

// RenderWithCacheInfo renders artifacts with caching and returns cache hit
// info. Only graphviz outputs are cached; JSON, YAML and DOT are cheap to
// regenerate.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, a *arena.Arena, arenaHash string, sol *arena.Solution, opts Options) (map[string][]byte, bool, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, false, err
	}

	var solData bytes.Buffer
	if err := gio.WriteSolutionJSON(opts.Solver, sol, &solData); err != nil {
		return nil, false, fmt.Errorf("serialize solution for cache key: %w", err)
	}
	solutionHash := cache.Hash([]byte(arenaHash), solData.Bytes())

	artifacts := make(map[string][]byte, len(opts.Formats))
	var missing []string
	for _, format := range opts.Formats {
		if graphviz(format) {
			key := r.Keyer.RenderKey(solutionHash, opts.RenderKeyOpts(format))
			if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
				observability.Cache().OnCacheHit(ctx, "render")
				artifacts[format] = data
				continue
			}
			observability.Cache().OnCacheMiss(ctx, "render")
		}
		missing = append(missing, format)
	}
	if len(missing) == 0 {
		return artifacts, true, nil
	}

	sub := opts
	sub.Formats = missing
	rendered, err := Render(ctx, a, sol, sub)
	if err != nil {
		return nil, false, err
	}
	for format, data := range rendered {
		artifacts[format] = data
		if graphviz(format) {
			key := r.Keyer.RenderKey(solutionHash, opts.RenderKeyOpts(format))
			if err := r.Cache.Set(ctx, key, data, cache.RenderTTL); err == nil {
				observability.Cache().OnCacheSet(ctx, "render", len(data))
			}
		}
	}
	return artifacts, false, nil
}

func graphviz(format string) bool {
	return format == FormatSVG || format == FormatPNG || format == FormatPDF
}

// Close releases resources held by the runner.
func (r *Runner) Close() error {
	var err error
	if r.Cache != nil {
		err = r.Cache.Close()
	}
	if r.Store != nil {
		if serr := r.Store.Close(); err == nil {
			err = serr
		}
	}
	return err
}
