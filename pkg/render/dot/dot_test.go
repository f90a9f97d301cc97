package dot

import (
	"strings"
	"testing"

	"github.com/matzehuels/gamesolver/pkg/arena"
	"github.com/matzehuels/gamesolver/pkg/arena/arenatest"
)

func TestFromArena(t *testing.T) {
	out := FromArena(arenatest.Figure32())
	for _, want := range []string{
		"digraph G {",
		`1 [label="1 (0)", shape=circle];`,
		`3 [label="3 (0)", shape=square];`,
		"2 -> 4;",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("missing %q in:\n%s", want, out)
		}
	}
	if strings.Contains(out, "color=") {
		t.Error("unsolved arena should not be coloured")
	}
}

func TestFromSolution(t *testing.T) {
	a := arenatest.Figure32()
	sol := &arena.Solution{
		Regions:    [2][]arena.NodeID{arenatest.IDs(1, 2, 3, 5), arenatest.IDs(4, 6)},
		Strategies: [2]arena.Strategy{{1: 1, 2: 1, 5: 2}, {4: 6, 6: 4}},
	}
	out := FromSolution(a, sol, Options{Title: "figure 3.2"})
	for _, want := range []string{
		`label="figure 3.2";`,
		`2 [label="2 (0)", shape=circle, color=blue3, fontcolor=blue3];`,
		`6 [label="6 (0)", shape=square, color=forestgreen, fontcolor=forestgreen];`,
		"2 -> 1 [color=blue3, penwidth=2.5];",
		"4 -> 6 [color=forestgreen, penwidth=2.5];",
		"2 -> 4;",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("missing %q in:\n%s", want, out)
		}
	}

	plain := FromSolution(a, sol, Options{HideStrategies: true})
	if strings.Contains(plain, "penwidth") {
		t.Error("HideStrategies still drew strategy edges")
	}
}

func TestStrategyOfWrongOwnerIgnored(t *testing.T) {
	// Node 3 belongs to player 1; an entry in player 0's strategy must not
	// be drawn as a move.
	a := arenatest.Figure32()
	sol := &arena.Solution{Strategies: [2]arena.Strategy{{3: 1}, nil}}
	if out := FromSolution(a, sol, Options{}); strings.Contains(out, "3 -> 1 [") {
		t.Errorf("drew a move for the wrong owner:\n%s", out)
	}
}

func TestGeneralizedLabel(t *testing.T) {
	out := FromArena(arenatest.Complementary())
	if !strings.Contains(out, `label="1 (0,1)"`) {
		t.Errorf("missing vector label in:\n%s", out)
	}
}

func TestNormalizeViewBox(t *testing.T) {
	in := []byte(`<svg width="62pt" height="44pt" viewBox="0.00 0.00 62.00 44.00" xmlns="http://www.w3.org/2000/svg"><g/></svg>`)
	out := string(normalizeViewBox(in))
	if !strings.Contains(out, `viewBox="0 0 62.00 44.00" width="62" height="44"`) {
		t.Errorf("normalizeViewBox() = %s", out)
	}
	if got := normalizeViewBox([]byte("<svg/>")); string(got) != "<svg/>" {
		t.Errorf("input without viewBox changed: %s", got)
	}
}
