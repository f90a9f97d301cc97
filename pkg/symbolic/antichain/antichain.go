// Package antichain is a native symbolic backend. It solves the safety
// encoding of a parity game without enumerating counter states: the set of
// states from which player 0 avoids overflow is downward closed in the
// counters, so each node keeps only its maximal counter vectors.
package antichain

import (
	"context"
	"fmt"
	"slices"

	"github.com/matzehuels/gamesolver/pkg/safety"
	"github.com/matzehuels/gamesolver/pkg/symbolic"
)

// Backend implements [symbolic.Backend].
type Backend struct{}

// New returns the antichain backend.
func New() Backend { return Backend{} }

// NewGame implements [symbolic.Backend].
func (Backend) NewGame(n int, priorities, players []int) (symbolic.Handle, error) {
	if len(priorities) != n || len(players) != n {
		return nil, fmt.Errorf("antichain: %d nodes but %d priorities and %d players", n, len(priorities), len(players))
	}
	for i := 0; i < n; i++ {
		if priorities[i] < 0 {
			return nil, fmt.Errorf("antichain: node %d has negative priority %d", i, priorities[i])
		}
		if players[i] != 0 && players[i] != 1 {
			return nil, fmt.Errorf("antichain: node %d has player %d", i, players[i])
		}
	}
	return &game{
		n:      n,
		prio:   slices.Clone(priorities),
		player: slices.Clone(players),
		succ:   make([][]int, n),
		bounds: safety.BoundsFor(priorities),
	}, nil
}

type game struct {
	n      int
	prio   []int
	player []int
	succ   [][]int
	bounds safety.Bounds
	rounds int
	closed bool
}

func (g *game) AddEdge(u, v int) error {
	if g.closed {
		return fmt.Errorf("antichain: game is closed")
	}
	if u < 0 || u >= g.n || v < 0 || v >= g.n {
		return fmt.Errorf("antichain: edge (%d, %d) outside 0..%d", u, v, g.n-1)
	}
	g.succ[u] = append(g.succ[u], v)
	return nil
}

func (g *game) Close() error {
	g.closed = true
	return nil
}

func (g *game) Iterations() int { return g.rounds }

// WinningRegions computes the greatest fixpoint
//
//	X = X ∩ (CPre0(X) ∪ CPre1(X))
//
// starting from every node with counters at their bounds, where CPre0 is
// the existential predecessor on player 0 nodes and CPre1 the universal one
// on player 1 nodes. A node is won by player 0 iff it keeps an element.
func (g *game) WinningRegions(ctx context.Context) ([]int, error) {
	if g.closed {
		return nil, fmt.Errorf("antichain: game is closed")
	}
	x := make([]antichain, g.n)
	for v := range x {
		x[v] = antichain{g.bounds.Max()}
	}

	for changed := true; changed; {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		g.rounds++
		changed = false
		for v := 0; v < g.n; v++ {
			if len(x[v]) == 0 {
				continue
			}
			next := x[v].meet(g.cpre(x, v))
			if !next.equal(x[v]) {
				x[v] = next
				changed = true
			}
		}
	}

	labels := make([]int, g.n)
	for v := range x {
		if len(x[v]) > 0 {
			labels[v] = 1
		}
	}
	return labels, nil
}

// cpre returns the maximal counters at v from which the owner of v can
// (player 0) or must (player 1) move into x without overflowing.
func (g *game) cpre(x []antichain, v int) antichain {
	p := g.prio[v]
	pre := func(w int) antichain {
		var out antichain
		for _, d := range x[w] {
			if c, ok := g.omega(d, p); ok {
				out = out.insert(c)
			}
		}
		return out
	}

	if g.player[v] == 0 {
		var out antichain
		for _, w := range g.succ[v] {
			for _, c := range pre(w) {
				out = out.insert(c)
			}
		}
		return out
	}
	var out antichain
	for k, w := range g.succ[v] {
		if k == 0 {
			out = pre(w)
		} else {
			out = out.meet(pre(w))
		}
		if len(out) == 0 {
			break
		}
	}
	return out
}

// omega returns the largest counters c with Up(c, p) <= d, or false if
// every such move overflows.
func (g *game) omega(d []int, p int) ([]int, bool) {
	c := slices.Clone(d)
	if p%2 == 1 {
		k := p / 2
		if c[k] == 0 {
			return nil, false
		}
		c[k]--
		return c, true
	}
	for k := 0; k < min(p/2, len(c)); k++ {
		c[k] = g.bounds[k]
	}
	return c, true
}

// antichain is a set of pairwise incomparable counter vectors standing for
// their downward closure.
type antichain [][]int

// insert adds c unless it is dominated and drops elements c dominates.
func (a antichain) insert(c []int) antichain {
	for _, x := range a {
		if safety.Leq(c, x) {
			return a
		}
	}
	out := a[:0:0]
	for _, x := range a {
		if !safety.Leq(x, c) {
			out = append(out, x)
		}
	}
	return append(out, c)
}

// meet intersects the downward closures of a and b.
func (a antichain) meet(b antichain) antichain {
	var out antichain
	for _, x := range a {
		for _, y := range b {
			m := make([]int, len(x))
			for k := range m {
				m[k] = min(x[k], y[k])
			}
			out = out.insert(m)
		}
	}
	return out
}

func (a antichain) equal(b antichain) bool {
	if len(a) != len(b) {
		return false
	}
	for _, x := range a {
		if !slices.ContainsFunc(b, func(y []int) bool { return slices.Equal(x, y) }) {
			return false
		}
	}
	return true
}
