// Package render turns solved arenas into pictures.
//
// The [dot] subpackage builds Graphviz DOT source for an arena and its
// solution and renders it to SVG in-process. [ToPDF] and [ToPNG] convert
// that SVG further using the external rsvg-convert tool (from librsvg).
//
//	src := dot.FromSolution(a, sol, dot.Options{})
//	svg, err := dot.RenderSVG(ctx, src)
//	pdf, err := render.ToPDF(ctx, svg)
//
// [dot]: github.com/matzehuels/gamesolver/pkg/render/dot
package render
