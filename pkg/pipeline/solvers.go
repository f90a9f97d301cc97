package pipeline

import (
	"context"
	"sort"
	"strings"

	"github.com/matzehuels/gamesolver/pkg/arena"
	gerr "github.com/matzehuels/gamesolver/pkg/errors"
	"github.com/matzehuels/gamesolver/pkg/safety"
	"github.com/matzehuels/gamesolver/pkg/solver"
	"github.com/matzehuels/gamesolver/pkg/symbolic"
	"github.com/matzehuels/gamesolver/pkg/symbolic/antichain"
)

// Solver names accepted by Options.Solver.
const (
	SolverReachability    = "reachability"
	SolverZielonka        = "zielonka"
	SolverZielonkaRegions = "zielonka-regions"
	SolverWeak            = "weak"
	SolverSafety          = "safety"
	SolverAntichain       = "antichain"
	SolverGeneralized     = "generalized"
)

// SolveFunc runs one solver on a validated arena.
type SolveFunc func(ctx context.Context, a *arena.Arena, opts Options) (*arena.Solution, error)

var solvers = map[string]SolveFunc{
	SolverReachability: func(_ context.Context, a *arena.Arena, o Options) (*arena.Solution, error) {
		return solver.Reachability(a, o.Target, arena.Player(o.Player))
	},
	SolverZielonka: func(_ context.Context, a *arena.Arena, o Options) (*arena.Solution, error) {
		return solver.StrongParity(a, parityOpts(o)...)
	},
	SolverZielonkaRegions: func(_ context.Context, a *arena.Arena, o Options) (*arena.Solution, error) {
		return solver.StrongParityRegions(a, parityOpts(o)...)
	},
	SolverWeak: func(_ context.Context, a *arena.Arena, o Options) (*arena.Solution, error) {
		return solver.WeakParity(a, parityOpts(o)...)
	},
	SolverGeneralized: func(_ context.Context, a *arena.Arena, o Options) (*arena.Solution, error) {
		return solver.GeneralizedParity(a, parityOpts(o)...)
	},
	SolverSafety: func(_ context.Context, a *arena.Arena, o Options) (*arena.Solution, error) {
		if o.Compress {
			a = a.CompressPriorities()
		}
		var opts []safety.Option
		if o.MaxStates != 0 {
			opts = append(opts, safety.WithMaxStates(o.MaxStates))
		}
		return safety.Solve(a, opts...)
	},
	SolverAntichain: func(ctx context.Context, a *arena.Arena, o Options) (*arena.Solution, error) {
		if o.Compress {
			a = a.CompressPriorities()
		}
		return symbolic.Solve(ctx, antichain.New(), a, indexOrigin(a))
	},
}

func parityOpts(o Options) []solver.Option {
	if o.Compress {
		return []solver.Option{solver.WithCompression()}
	}
	return nil
}

// indexOrigin guesses whether a numbers its nodes from 0 or from 1.
func indexOrigin(a *arena.Arena) int {
	if a.Len() > 0 && !a.Has(0) {
		return 1
	}
	return 0
}

// LookupSolver returns the solver registered under name.
func LookupSolver(name string) (SolveFunc, error) {
	fn, ok := solvers[name]
	if !ok {
		return nil, gerr.New(gerr.ErrCodeInvalidSolver,
			"unknown solver %q (must be one of: %s)", name, strings.Join(SolverNames(), ", "))
	}
	return fn, nil
}

// SolverNames returns the registered solver names in sorted order.
func SolverNames() []string {
	names := make([]string, 0, len(solvers))
	for name := range solvers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
