// Package cli implements the gamesolver command-line interface.
//
// The commands solve games read from text or JSON arena files, draw them
// with graphviz, generate benchmark families, time solvers, browse stored
// solve records and run the HTTP API. Settings come from an optional TOML
// file; flags override it.
//
// # Commands
//
//   - solve: Solve a game and print the winning regions and strategies
//   - render: Draw a game coloured by winner as DOT, SVG, PNG or PDF
//   - generate: Write a game from a built-in family
//   - bench: Time a solver over growing generated games
//   - records: List, show, delete or interactively browse stored solve records
//   - cache: Clear the solution cache or print its directory
//   - serve: Run the HTTP API with Prometheus metrics
//   - solvers: List the registered solvers
//   - completion: Shell completion scripts
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging. Loggers are
// passed through context.Context.
package cli

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"
)

// newLogger returns a charm logger writing to w with short wall-clock
// timestamps such as "14:32:01.45".
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// progress logs the duration of one step, e.g.
// "Generated worst-case game with 40 nodes (3ms)". Not safe for concurrent use.
type progress struct {
	logger *log.Logger
	start  time.Time
}

func newProgress(l *log.Logger) *progress {
	return &progress{logger: l, start: time.Now()}
}

func (p *progress) done(msg string) {
	p.logger.Infof("%s (%s)", msg, time.Since(p.start).Round(time.Millisecond))
}

type ctxKey struct{}

// withLogger attaches l to ctx for loggerFromContext.
func withLogger(ctx context.Context, l *log.Logger) context.Context {
	return context.WithValue(ctx, ctxKey{}, l)
}

// loggerFromContext returns the logger attached by withLogger, or
// log.Default() so library calls never receive nil.
func loggerFromContext(ctx context.Context) *log.Logger {
	if l, ok := ctx.Value(ctxKey{}).(*log.Logger); ok {
		return l
	}
	return log.Default()
}
