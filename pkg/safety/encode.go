package safety

import (
	"fmt"
	"math/bits"

	"github.com/matzehuels/gamesolver/pkg/arena"
	gerr "github.com/matzehuels/gamesolver/pkg/errors"
)

// DefaultMaxStates caps the number of states Encode enumerates unless
// overridden with WithMaxStates.
const DefaultMaxStates = 1 << 22

// Option configures the encoder.
type Option func(*config)

type config struct {
	maxStates int
}

// WithMaxStates sets the largest number of counter states Encode may
// enumerate before failing with STATE_SPACE_EXCEEDED. Non-positive values
// remove the limit.
func WithMaxStates(n int) Option {
	return func(c *config) { c.maxStates = n }
}

// State is one node of the safety arena: an original node together with
// the counters accumulated on the way to it.
type State struct {
	Node     arena.NodeID
	Counters []int
}

func (s State) String() string {
	return fmt.Sprintf("(%d, %v)", s.Node, s.Counters)
}

// Encoding is the safety game built from a parity arena.
//
// Arena holds one node per reachable state, with IDs 0..len(States)-1 in
// discovery order, plus the overflow sink. Every state keeps the owner and
// priority of its original node. The sink belongs to player 1, carries
// priority 1 and loops on itself.
type Encoding struct {
	Arena    *arena.Arena
	States   []State
	Overflow arena.NodeID
	Bounds   Bounds

	start map[arena.NodeID]arena.NodeID
}

// Start returns the state (v, 0..0) of original node v.
func (e *Encoding) Start(v arena.NodeID) (arena.NodeID, bool) {
	id, ok := e.start[v]
	return id, ok
}

// State returns the state behind a safety-arena node. The sink has none.
func (e *Encoding) State(id arena.NodeID) (State, bool) {
	if id < 0 || int(id) >= len(e.States) {
		return State{}, false
	}
	return e.States[id], true
}

// keyer packs (node, counters) into a single integer, mixed radix with
// radix bound+1 per bucket.
type keyer struct {
	radix []uint64
	span  uint64 // product of all radices
}

func newKeyer(b Bounds, nodes int) (keyer, error) {
	k := keyer{radix: make([]uint64, len(b)), span: 1}
	for i, bound := range b {
		k.radix[i] = uint64(bound) + 1
		hi, lo := bits.Mul64(k.span, k.radix[i])
		if hi != 0 {
			return keyer{}, gerr.New(gerr.ErrCodeStateSpaceExceeded, "counter space does not fit in 64 bits")
		}
		k.span = lo
	}
	if hi, _ := bits.Mul64(k.span, uint64(max(nodes, 1))); hi != 0 {
		return keyer{}, gerr.New(gerr.ErrCodeStateSpaceExceeded, "state space does not fit in 64 bits")
	}
	return k, nil
}

func (k keyer) key(node int, c []int) uint64 {
	var x uint64
	for i := len(c) - 1; i >= 0; i-- {
		x = x*k.radix[i] + uint64(c[i])
	}
	return uint64(node)*k.span + x
}

// Encode builds the safety arena of a by breadth-first expansion from
// (v, 0..0) for every node v, in arena order. An edge u -> w of the parity
// arena becomes (u, c) -> (w, Up(c, prio(u))), or an edge to the overflow
// sink when Up overflows.
//
// The arena must be total. At most |V| * Π(bound+1) states exist; Encode
// fails with STATE_SPACE_EXCEEDED once the configured limit is passed.
func Encode(a *arena.Arena, opts ...Option) (*Encoding, error) {
	if err := a.Validate(); err != nil {
		return nil, err
	}
	cfg := config{maxStates: DefaultMaxStates}
	for _, o := range opts {
		o(&cfg)
	}

	bounds := BoundsOf(a)
	k, err := newKeyer(bounds, a.Len())
	if err != nil {
		return nil, err
	}

	type raw struct {
		node     int
		counters []int
	}
	var (
		states []raw
		ids    = make(map[uint64]int)
		edges  [][2]int // -1 marks the sink
	)
	intern := func(node int, c []int) (int, error) {
		key := k.key(node, c)
		if id, ok := ids[key]; ok {
			return id, nil
		}
		if cfg.maxStates > 0 && len(states) >= cfg.maxStates {
			return 0, gerr.New(gerr.ErrCodeStateSpaceExceeded, "more than %d counter states", cfg.maxStates)
		}
		ids[key] = len(states)
		states = append(states, raw{node: node, counters: c})
		return len(states) - 1, nil
	}

	for i := 0; i < a.Len(); i++ {
		if _, err := intern(i, bounds.Zero()); err != nil {
			return nil, err
		}
	}
	for s := 0; s < len(states); s++ {
		u := states[s].node
		next, overflow, err := bounds.Up(states[s].counters, a.PriorityAt(u, 0))
		if err != nil {
			return nil, err
		}
		for _, w := range a.Succ(u) {
			if overflow {
				edges = append(edges, [2]int{s, -1})
				continue
			}
			t, err := intern(w, next)
			if err != nil {
				return nil, err
			}
			edges = append(edges, [2]int{s, t})
		}
	}

	enc := &Encoding{
		Arena:    arena.New(),
		States:   make([]State, len(states)),
		Overflow: arena.NodeID(len(states)),
		Bounds:   bounds,
		start:    make(map[arena.NodeID]arena.NodeID, a.Len()),
	}
	for s, st := range states {
		enc.States[s] = State{Node: a.ID(st.node), Counters: st.counters}
		if err := enc.Arena.AddNode(arena.Node{
			ID:         arena.NodeID(s),
			Player:     a.PlayerAt(st.node),
			Priorities: []int{a.PriorityAt(st.node, 0)},
		}); err != nil {
			return nil, gerr.Wrap(gerr.ErrCodeInternal, err, "safety state %d", s)
		}
	}
	// Initial states were interned first, in arena order.
	for i := 0; i < a.Len(); i++ {
		enc.start[a.ID(i)] = arena.NodeID(i)
	}
	if err := enc.Arena.AddNode(arena.Node{ID: enc.Overflow, Player: arena.Player1, Priorities: []int{1}}); err != nil {
		return nil, gerr.Wrap(gerr.ErrCodeInternal, err, "overflow sink")
	}
	edges = append(edges, [2]int{-1, -1})
	for _, e := range edges {
		from, to := enc.Overflow, enc.Overflow
		if e[0] >= 0 {
			from = arena.NodeID(e[0])
		}
		if e[1] >= 0 {
			to = arena.NodeID(e[1])
		}
		if err := enc.Arena.AddEdge(from, to); err != nil {
			return nil, gerr.Wrap(gerr.ErrCodeInternal, err, "safety edge")
		}
	}
	return enc, nil
}
