package safety

import (
	"slices"

	"github.com/matzehuels/gamesolver/pkg/arena"
	gerr "github.com/matzehuels/gamesolver/pkg/errors"
)

// Bounds holds one counter bound per odd priority: Bounds[b] is the number
// of nodes carrying priority 2b+1. Buckets run from priority 1 up to the
// largest odd priority not exceeding the arena's maximum.
type Bounds []int

// BoundsOf computes the counter bounds of a from its first priority
// component. An arena without odd priorities has no buckets.
func BoundsOf(a *arena.Arena) Bounds {
	prios := make([]int, a.Len())
	for i := range prios {
		prios[i] = a.PriorityAt(i, 0)
	}
	return BoundsFor(prios)
}

// BoundsFor computes the counter bounds for nodes with the given
// priorities.
func BoundsFor(prios []int) Bounds {
	top := -1
	for _, p := range prios {
		top = max(top, p)
	}
	if top < 1 {
		return Bounds{}
	}
	maxOdd := top
	if maxOdd%2 == 0 {
		maxOdd--
	}
	b := make(Bounds, maxOdd/2+1)
	for _, p := range prios {
		if p%2 == 1 {
			b[p/2]++
		}
	}
	return b
}

// Zero returns the all-zero counter vector.
func (b Bounds) Zero() []int { return make([]int, len(b)) }

// Max returns a copy of the bounds, the largest counter vector.
func (b Bounds) Max() []int { return slices.Clone([]int(b)) }

// Up returns the counters after leaving a node of priority p.
//
// An even p resets the buckets of every odd priority below p. An odd p
// increments its bucket; if that bucket already sits at its bound the move
// overflows and next is nil. A counter found above its bound means the
// bounds were computed for a different arena and yields COUNTER_OVERFLOW.
func (b Bounds) Up(c []int, p int) (next []int, overflow bool, err error) {
	if len(c) != len(b) {
		return nil, false, gerr.New(gerr.ErrCodeCounterOverflow, "counter vector has %d buckets, want %d", len(c), len(b))
	}
	next = slices.Clone(c)
	if p%2 == 0 {
		for k := 0; k < min(p/2, len(next)); k++ {
			next[k] = 0
		}
		return next, false, nil
	}
	k := p / 2
	if k >= len(b) {
		return nil, false, gerr.New(gerr.ErrCodeCounterOverflow, "priority %d has no bucket", p)
	}
	switch {
	case c[k] > b[k]:
		return nil, false, gerr.New(gerr.ErrCodeCounterOverflow, "bucket %d holds %d, bound is %d", k, c[k], b[k])
	case c[k] == b[k]:
		return nil, true, nil
	}
	next[k]++
	return next, false, nil
}

// Leq reports whether x is componentwise at most y.
func Leq(x, y []int) bool {
	for k := range x {
		if x[k] > y[k] {
			return false
		}
	}
	return true
}
