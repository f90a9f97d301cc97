// Package pkg provides the libraries behind gamesolver, a solver for
// two-player games played on finite directed graphs.
//
// # Overview
//
// A game is an [arena]: nodes owned by player 0 or player 1, each carrying
// one or more priorities, and a total edge relation. Solving a game splits
// the nodes into the winning regions of both players and, where the
// algorithm supports it, produces memoryless winning strategies. The pkg
// directory is organized into three areas:
//
//  1. Solvers: [arena], [solver], [safety], [symbolic]
//  2. Formats: [io] for the text, JSON and YAML formats, [render] for DOT
//     and graphviz output
//  3. Infrastructure: [pipeline], [cache], [store], [server], [observability]
//
// # Architecture
//
// The typical data flow:
//
//	text / JSON arena
//	       ↓
//	   io.ReadArena        parse and build the arena
//	       ↓
//	   arena.Validate      every node needs a successor
//	       ↓
//	   pipeline.Runner     cache lookup, solve, record, render
//	       ↓
//	   Solution            W0, W1, σ0, σ1, stats
//
// # Solvers
//
//   - reachability: attractor of a target set
//   - zielonka, zielonka-regions: recursive strong parity, with or without
//     strategies
//   - weak: weak parity by descending attractors
//   - safety: reduction of strong parity to a safety game over bounded
//     odd-priority counters
//   - antichain: the same reduction solved symbolically over antichains
//   - generalized: conjunctive generalized parity
//
// # Quick Start
//
//	import (
//	    gio "github.com/matzehuels/gamesolver/pkg/io"
//	    "github.com/matzehuels/gamesolver/pkg/solver"
//	)
//
//	a, _ := gio.ImportArena("game.txt")
//	sol, err := solver.StrongParity(a)
//	if err != nil {
//	    return err
//	}
//	fmt.Println(sol.Regions[0], sol.Strategies[0])
//
// [arena]: https://pkg.go.dev/github.com/matzehuels/gamesolver/pkg/arena
// [solver]: https://pkg.go.dev/github.com/matzehuels/gamesolver/pkg/solver
// [safety]: https://pkg.go.dev/github.com/matzehuels/gamesolver/pkg/safety
// [symbolic]: https://pkg.go.dev/github.com/matzehuels/gamesolver/pkg/symbolic
// [io]: https://pkg.go.dev/github.com/matzehuels/gamesolver/pkg/io
// [render]: https://pkg.go.dev/github.com/matzehuels/gamesolver/pkg/render
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/gamesolver/pkg/pipeline
// [cache]: https://pkg.go.dev/github.com/matzehuels/gamesolver/pkg/cache
// [store]: https://pkg.go.dev/github.com/matzehuels/gamesolver/pkg/store
// [server]: https://pkg.go.dev/github.com/matzehuels/gamesolver/pkg/server
// [observability]: https://pkg.go.dev/github.com/matzehuels/gamesolver/pkg/observability
package pkg
