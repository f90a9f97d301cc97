// Package dot renders arenas and their solutions as Graphviz diagrams.
//
// Player 0 nodes are circles and player 1 nodes are squares. In a solution
// diagram, nodes won by player 0 are drawn in blue3 and nodes won by
// player 1 in forestgreen; each strategy edge is bold and takes the colour
// of the player who chose it. Labels read "id (priority)", with all
// priority components for generalized arenas.
package dot

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/gamesolver/pkg/arena"
	"github.com/matzehuels/gamesolver/pkg/render"
)

// Colours of the two winning regions.
const (
	Color0 = "blue3"
	Color1 = "forestgreen"
)

// Options configures diagram generation.
type Options struct {
	// Title is drawn above the graph when set.
	Title string
	// HideStrategies draws every edge plainly even if the solution has
	// strategies.
	HideStrategies bool
}

// FromArena converts an unsolved arena to DOT.
func FromArena(a *arena.Arena) string {
	return build(a, nil, Options{})
}

// FromSolution converts a solved arena to DOT. Nodes absent from both
// regions keep the default colour.
func FromSolution(a *arena.Arena, sol *arena.Solution, opts Options) string {
	return build(a, sol, opts)
}

func build(a *arena.Arena, sol *arena.Solution, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  splines=true;\n")
	buf.WriteString("  sep=\"+10,10\";\n")
	buf.WriteString("  overlap=scale;\n")
	buf.WriteString("  nodesep=0.6;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	if opts.Title != "" {
		fmt.Fprintf(&buf, "  label=%q;\n  labelloc=t;\n", opts.Title)
	}
	buf.WriteString("\n")

	var winner map[arena.NodeID]arena.Region
	if sol != nil {
		winner = sol.Partition()
	}
	for _, n := range a.Nodes() {
		attrs := []string{fmt.Sprintf("label=%q", label(n)), "shape=" + shape(n.Player)}
		if c := regionColor(winner[n.ID]); c != "" {
			attrs = append(attrs, "color="+c, "fontcolor="+c)
		}
		fmt.Fprintf(&buf, "  %d [%s];\n", n.ID, strings.Join(attrs, ", "))
	}

	buf.WriteString("\n")
	a.EachEdge(func(from, to arena.NodeID) {
		if sol != nil && !opts.HideStrategies {
			for p, s := range sol.Strategies {
				if m, ok := s.Move(from); ok && m == to && owner(a, from) == arena.Player(p) {
					fmt.Fprintf(&buf, "  %d -> %d [color=%s, penwidth=2.5];\n", from, to, playerColor(arena.Player(p)))
					return
				}
			}
		}
		fmt.Fprintf(&buf, "  %d -> %d;\n", from, to)
	})

	buf.WriteString("}\n")
	return buf.String()
}

func label(n arena.Node) string {
	parts := make([]string, len(n.Priorities))
	for i, p := range n.Priorities {
		parts[i] = strconv.Itoa(p)
	}
	return fmt.Sprintf("%d (%s)", n.ID, strings.Join(parts, ","))
}

func shape(p arena.Player) string {
	if p == arena.Player0 {
		return "circle"
	}
	return "square"
}

func owner(a *arena.Arena, id arena.NodeID) arena.Player {
	n, _ := a.Node(id)
	return n.Player
}

func playerColor(p arena.Player) string {
	if p == arena.Player0 {
		return Color0
	}
	return Color1
}

func regionColor(r arena.Region) string {
	if p, ok := r.Player(); ok {
		return playerColor(p)
	}
	return ""
}

// RenderSVG renders DOT source to SVG using Graphviz.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

// RenderPDF renders DOT source as PDF via SVG conversion.
func RenderPDF(ctx context.Context, dot string) ([]byte, error) {
	svg, err := RenderSVG(ctx, dot)
	if err != nil {
		return nil, err
	}
	return render.ToPDF(ctx, svg)
}

// RenderPNG renders DOT source as PNG via SVG conversion.
func RenderPNG(ctx context.Context, dot string, scale float64) ([]byte, error) {
	svg, err := RenderSVG(ctx, dot)
	if err != nil {
		return nil, err
	}
	return render.ToPNG(ctx, svg, scale)
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox replaces Graphviz's pt-sized root element with one that
// scales with its container.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}
	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}
	root := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`, w, h, w, h)
	return svgTagRe.ReplaceAll(svg, []byte(root))
}
