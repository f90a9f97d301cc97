package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/matzehuels/gamesolver/pkg/arena"
	"github.com/matzehuels/gamesolver/pkg/arena/generate"
	gerr "github.com/matzehuels/gamesolver/pkg/errors"
)

// BenchOptions configures a benchmark run.
type BenchOptions struct {
	Solver string
	Family string // generator family, see generate.Names
	Max    int    // largest size
	Step   int    // size increment, default 1
	Reps   int    // repetitions per size, default 1
	Seed   uint64 // base seed for random families

	// Solve holds solver settings such as Compress or Target. Solver is
	// taken from the field above.
	Solve Options
}

// BenchPoint is the timing for one size.
type BenchPoint struct {
	Size  int
	Nodes int
	Edges int
	Min   time.Duration
	Stats arena.Stats
}

// Bench times a solver over a generator family for sizes Step, 2*Step, ...
// up to Max, reporting the minimum over Reps runs. Caching is bypassed.
// progress, if non-nil, is called after each size.
func Bench(ctx context.Context, opts BenchOptions, progress func(BenchPoint)) ([]BenchPoint, error) {
	if opts.Step <= 0 {
		opts.Step = 1
	}
	if opts.Reps <= 0 {
		opts.Reps = 1
	}
	if opts.Max < opts.Step {
		return nil, gerr.New(gerr.ErrCodeInvalidInput, "max size %d is below step %d", opts.Max, opts.Step)
	}
	family, err := generate.Lookup(opts.Family)
	if err != nil {
		return nil, gerr.Wrap(gerr.ErrCodeInvalidInput, err, "generator")
	}
	solveOpts := opts.Solve
	solveOpts.Solver = opts.Solver
	solveOpts.Formats = nil
	if err := solveOpts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	fn, err := LookupSolver(solveOpts.Solver)
	if err != nil {
		return nil, err
	}

	var points []BenchPoint
	for size := opts.Step; size <= opts.Max; size += opts.Step {
		a := family(size, opts.Seed+uint64(size))
		p := BenchPoint{Size: size, Nodes: a.Len(), Edges: a.EdgeCount()}
		for rep := 0; rep < opts.Reps; rep++ {
			if err := ctx.Err(); err != nil {
				return points, err
			}
			start := time.Now()
			sol, err := fn(ctx, a, solveOpts)
			d := time.Since(start)
			if err != nil {
				return points, fmt.Errorf("size %d: %w", size, err)
			}
			if rep == 0 || d < p.Min {
				p.Min = d
				p.Stats = sol.Stats
			}
		}
		points = append(points, p)
		if progress != nil {
			progress(p)
		}
	}
	return points, nil
}
