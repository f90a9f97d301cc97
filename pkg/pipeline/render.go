package pipeline

import (
	"bytes"
	"context"
	"fmt"

	"github.com/matzehuels/gamesolver/pkg/arena"
	gio "github.com/matzehuels/gamesolver/pkg/io"
	"github.com/matzehuels/gamesolver/pkg/render/dot"
)

// Render produces the requested artifacts for a solved arena. Formats that
// go through graphviz share one DOT source.
func Render(ctx context.Context, a *arena.Arena, sol *arena.Solution, opts Options) (map[string][]byte, error) {
	src := dot.FromSolution(a, sol, dot.Options{
		Title:          opts.Title,
		HideStrategies: opts.HideStrategies,
	})

	artifacts := make(map[string][]byte, len(opts.Formats))
	for _, format := range opts.Formats {
		var data []byte
		var err error

		switch format {
		case FormatJSON:
			var buf bytes.Buffer
			err = gio.WriteSolutionJSON(opts.Solver, sol, &buf)
			data = buf.Bytes()
		case FormatYAML:
			var buf bytes.Buffer
			err = gio.WriteSolutionYAML(opts.Solver, sol, &buf)
			data = buf.Bytes()
		case FormatDOT:
			data = []byte(src)
		case FormatSVG:
			data, err = dot.RenderSVG(ctx, src)
		case FormatPNG:
			data, err = dot.RenderPNG(ctx, src, 2.0)
		case FormatPDF:
			data, err = dot.RenderPDF(ctx, src)
		default:
			return nil, ValidateFormat(format)
		}

		if err != nil {
			return nil, fmt.Errorf("render %s: %w", format, err)
		}
		artifacts[format] = data
	}

	return artifacts, nil
}
