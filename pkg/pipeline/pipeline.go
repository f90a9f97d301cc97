// Package pipeline runs games from input to output.
//
// This package implements the load → validate → solve → render pipeline that
// the CLI and the HTTP server share, so both entry points cache, record and
// report solves the same way.
//
// # Architecture
//
// The pipeline consists of four stages:
//
//  1. Load: read an arena from the text or JSON format
//  2. Validate: check totality once, before any solver runs
//  3. Solve: run the named solver, consulting the solution cache first
//  4. Render: produce JSON, YAML, DOT, SVG, PNG or PDF artifacts
//
// Each stage can be run independently or as part of the complete pipeline.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	a, err := pipeline.LoadArena("game.txt")
//	if err != nil {
//	    return err
//	}
//	result, err := runner.Execute(ctx, a, pipeline.Options{
//	    Solver:  "zielonka",
//	    Formats: []string{"json", "svg"},
//	})
//	svg := result.Artifacts["svg"]
package pipeline

import (
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/gamesolver/pkg/arena"
	"github.com/matzehuels/gamesolver/pkg/cache"
	gerr "github.com/matzehuels/gamesolver/pkg/errors"
)

// =============================================================================
// Default Values
// =============================================================================

// DefaultSolver is used when Options.Solver is empty.
const DefaultSolver = SolverZielonka

// Format constants for output formats.
const (
	FormatJSON = "json"
	FormatYAML = "yaml"
	FormatDOT  = "dot"
	FormatSVG  = "svg"
	FormatPNG  = "png"
	FormatPDF  = "pdf"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatJSON: true,
	FormatYAML: true,
	FormatDOT:  true,
	FormatSVG:  true,
	FormatPNG:  true,
	FormatPDF:  true,
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for one pipeline run.
// This struct supports JSON serialization for API requests.
type Options struct {
	// Solve options
	Solver    string         `json:"solver,omitempty"`
	Target    []arena.NodeID `json:"target,omitempty"` // reachability only
	Player    int            `json:"player,omitempty"` // reachability only
	Compress  bool           `json:"compress,omitempty"`
	MaxStates int            `json:"max_states,omitempty"` // safety only
	Refresh   bool           `json:"refresh,omitempty"`

	// Render options
	Formats        []string `json:"formats,omitempty"`
	Title          string   `json:"title,omitempty"`
	HideStrategies bool     `json:"hide_strategies,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Arena is the solved arena.
	Arena *arena.Arena

	// ArenaHash is the content hash of the arena in the text format.
	ArenaHash string

	// Solution is the solver output.
	Solution *arena.Solution

	// RecordID is the ID of the stored solve record, if a store is set.
	RecordID string

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	NodeCount  int
	EdgeCount  int
	SolveTime  time.Duration
	RenderTime time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	SolveHit  bool // Whether the solution came from cache
	RenderHit bool // Whether all artifacts came from cache
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return gerr.New(gerr.ErrCodeInvalidInput,
			"invalid format: %q (must be one of: json, yaml, dot, svg, png, pdf)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks the options and fills in defaults.
// It is idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.Solver == "" {
		o.Solver = DefaultSolver
	}
	if err := gerr.ValidateSolverName(o.Solver, SolverNames()); err != nil {
		return err
	}
	o.Solver = strings.ToLower(strings.TrimSpace(o.Solver))
	if o.Player != 0 && o.Player != 1 {
		return gerr.New(gerr.ErrCodeInvalidInput, "player must be 0 or 1, got %d", o.Player)
	}
	if o.Solver != SolverReachability && len(o.Target) > 0 {
		return gerr.New(gerr.ErrCodeInvalidInput, "target is only used by the %s solver", SolverReachability)
	}
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return nil
}

// SolutionKeyOpts returns cache key options for the solve stage. Only
// options that change the solver output are included.
func (o *Options) SolutionKeyOpts() cache.SolutionKeyOpts {
	k := cache.SolutionKeyOpts{Solver: o.Solver, Compress: o.Compress}
	switch o.Solver {
	case SolverReachability:
		target := make([]int, len(o.Target))
		for i, id := range o.Target {
			target[i] = int(id)
		}
		k.Target = target
		k.Player = o.Player
	case SolverSafety:
		k.MaxStates = o.MaxStates
	}
	return k
}

// RenderKeyOpts returns cache key options for a rendered format.
func (o *Options) RenderKeyOpts(format string) cache.RenderKeyOpts {
	return cache.RenderKeyOpts{Format: format, Title: o.Title, HideStrategies: o.HideStrategies}
}
