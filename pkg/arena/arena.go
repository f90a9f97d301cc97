package arena

import (
	"errors"
	"slices"

	gerr "github.com/matzehuels/gamesolver/pkg/errors"
)

var (
	// ErrDuplicateNode is returned by [Arena.AddNode] when a node with the
	// same ID already exists. Node IDs must be unique.
	ErrDuplicateNode = errors.New("duplicate node ID")

	// ErrUnknownNode is returned by [Arena.AddEdge] and [Arena.Subgame] when
	// an endpoint is not part of the arena.
	ErrUnknownNode = errors.New("unknown node")

	// ErrDeadEnd is returned by [Arena.Validate] when a node has no
	// successors. Arenas must be total: strategies are successor choices.
	ErrDeadEnd = errors.New("node has no successors")

	// ErrInvalidPlayer is returned by [Arena.AddNode] for a player other
	// than 0 or 1.
	ErrInvalidPlayer = errors.New("player must be 0 or 1")

	// ErrNoPriority is returned by [Arena.AddNode] for an empty priority vector.
	ErrNoPriority = errors.New("node must carry at least one priority")

	// ErrNegativePriority is returned by [Arena.AddNode] when any priority
	// component is negative.
	ErrNegativePriority = errors.New("priorities must be non-negative")

	// ErrArityMismatch is returned by [Arena.AddNode] when the node's priority
	// vector length differs from the nodes already in the arena. The arity is
	// fixed by the first node added.
	ErrArityMismatch = errors.New("inconsistent number of priority functions")
)

// NodeID is the caller-visible identifier of a node. IDs need not be dense
// or start at zero; solvers report results keyed by these IDs.
type NodeID int

// Node describes a vertex of the arena: its owner and its priority vector.
// Ordinary parity games use a single priority; generalized parity games use
// one priority per parity objective.
type Node struct {
	ID         NodeID
	Player     Player
	Priorities []int
}

// Priority returns the first priority component, the one used by every
// single-objective solver.
func (n Node) Priority() int { return n.Priorities[0] }

// Arena is a finite directed graph whose nodes are owned by one of two
// players and labeled with priorities.
//
// Nodes are stored densely in insertion order; the dense index of a node is
// stable for the lifetime of the arena and is what [View] masks and the
// solver packages operate on. Successor and predecessor lists are kept
// mutually consistent, including edge multiplicity.
//
// The zero value is not usable - use New. An Arena is not safe for
// concurrent mutation, but any number of goroutines may solve the same
// arena once it is fully built, since solvers never mutate it.
type Arena struct {
	ids   []NodeID
	index map[NodeID]int
	nodes []Node
	succ  [][]int
	pred  [][]int
	edges int
	arity int
}

// New creates an empty arena.
func New() *Arena {
	return &Arena{index: make(map[NodeID]int)}
}

// AddNode adds a node. The priority slice is copied.
//
// Returns a MALFORMED_ARENA error wrapping ErrDuplicateNode or
// ErrInvalidPlayer, or an INVALID_PRIORITY error wrapping ErrNoPriority,
// ErrNegativePriority or ErrArityMismatch.
func (a *Arena) AddNode(n Node) error {
	if _, exists := a.index[n.ID]; exists {
		return gerr.Wrap(gerr.ErrCodeMalformedArena, ErrDuplicateNode, "node %d", n.ID)
	}
	if n.Player != Player0 && n.Player != Player1 {
		return gerr.Wrap(gerr.ErrCodeMalformedArena, ErrInvalidPlayer, "node %d has player %d", n.ID, n.Player)
	}
	if len(n.Priorities) == 0 {
		return gerr.Wrap(gerr.ErrCodeInvalidPriority, ErrNoPriority, "node %d", n.ID)
	}
	for _, p := range n.Priorities {
		if p < 0 {
			return gerr.Wrap(gerr.ErrCodeInvalidPriority, ErrNegativePriority, "node %d has priority %d", n.ID, p)
		}
	}
	if a.arity == 0 {
		a.arity = len(n.Priorities)
	} else if len(n.Priorities) != a.arity {
		return gerr.Wrap(gerr.ErrCodeInvalidPriority, ErrArityMismatch,
			"node %d has %d priorities, arena has %d", n.ID, len(n.Priorities), a.arity)
	}

	n.Priorities = slices.Clone(n.Priorities)
	a.index[n.ID] = len(a.ids)
	a.ids = append(a.ids, n.ID)
	a.nodes = append(a.nodes, n)
	a.succ = append(a.succ, nil)
	a.pred = append(a.pred, nil)
	return nil
}

// AddEdge adds the directed edge from→to, updating both adjacency
// directions. Both endpoints must already exist. Parallel edges are kept.
func (a *Arena) AddEdge(from, to NodeID) error {
	u, ok := a.index[from]
	if !ok {
		return gerr.Wrap(gerr.ErrCodeMalformedArena, ErrUnknownNode, "edge %d -> %d: source", from, to)
	}
	v, ok := a.index[to]
	if !ok {
		return gerr.Wrap(gerr.ErrCodeMalformedArena, ErrUnknownNode, "edge %d -> %d: successor", from, to)
	}
	a.addEdgeIdx(u, v)
	return nil
}

func (a *Arena) addEdgeIdx(u, v int) {
	a.succ[u] = append(a.succ[u], v)
	a.pred[v] = append(a.pred[v], u)
	a.edges++
}

// Len returns the number of nodes.
func (a *Arena) Len() int { return len(a.ids) }

// EdgeCount returns the number of edges, counting parallel edges.
func (a *Arena) EdgeCount() int { return a.edges }

// Arity returns the length of every node's priority vector, or 0 for an
// empty arena.
func (a *Arena) Arity() int { return a.arity }

// IDs returns node IDs in insertion order.
func (a *Arena) IDs() []NodeID { return slices.Clone(a.ids) }

// Nodes returns a copy of all nodes in insertion order.
func (a *Arena) Nodes() []Node {
	out := make([]Node, len(a.nodes))
	for i, n := range a.nodes {
		n.Priorities = slices.Clone(n.Priorities)
		out[i] = n
	}
	return out
}

// Node returns the node with the given ID and true, or false if not found.
func (a *Arena) Node(id NodeID) (Node, bool) {
	i, ok := a.index[id]
	if !ok {
		return Node{}, false
	}
	n := a.nodes[i]
	n.Priorities = slices.Clone(n.Priorities)
	return n, true
}

// Has reports whether id is a node of the arena.
func (a *Arena) Has(id NodeID) bool {
	_, ok := a.index[id]
	return ok
}

// Successors returns the successors of id in edge insertion order, or nil if
// id is unknown.
func (a *Arena) Successors(id NodeID) []NodeID {
	i, ok := a.index[id]
	if !ok {
		return nil
	}
	return a.toIDs(a.succ[i])
}

// Predecessors returns the predecessors of id in edge insertion order, or
// nil if id is unknown.
func (a *Arena) Predecessors(id NodeID) []NodeID {
	i, ok := a.index[id]
	if !ok {
		return nil
	}
	return a.toIDs(a.pred[i])
}

func (a *Arena) toIDs(idx []int) []NodeID {
	out := make([]NodeID, len(idx))
	for k, i := range idx {
		out[k] = a.ids[i]
	}
	return out
}

// EachEdge calls fn for every edge, grouped by source in insertion order.
func (a *Arena) EachEdge(fn func(from, to NodeID)) {
	for u, vs := range a.succ {
		for _, v := range vs {
			fn(a.ids[u], a.ids[v])
		}
	}
}

// MaxPriority returns the largest value of priority component k, or -1 for
// an empty arena.
func (a *Arena) MaxPriority(k int) int {
	best := -1
	for _, n := range a.nodes {
		best = max(best, n.Priorities[k])
	}
	return best
}

// Validate checks that every node has at least one successor. Edge
// endpoints and priority vectors are already checked on insertion.
// Returns a MALFORMED_ARENA error wrapping ErrDeadEnd.
func (a *Arena) Validate() error {
	for i, vs := range a.succ {
		if len(vs) == 0 {
			return gerr.Wrap(gerr.ErrCodeMalformedArena, ErrDeadEnd, "node %d", a.ids[i])
		}
	}
	return nil
}

// =============================================================================
// Dense access
// =============================================================================

// Index returns the dense index of id.
func (a *Arena) Index(id NodeID) (int, bool) {
	i, ok := a.index[id]
	return i, ok
}

// ID returns the node ID at dense index i.
func (a *Arena) ID(i int) NodeID { return a.ids[i] }

// PlayerAt returns the owner of the node at dense index i.
func (a *Arena) PlayerAt(i int) Player { return a.nodes[i].Player }

// PriorityAt returns priority component k of the node at dense index i.
func (a *Arena) PriorityAt(i, k int) int { return a.nodes[i].Priorities[k] }

// Succ returns the dense successors of index i. The slice is shared with
// the arena and must not be modified.
func (a *Arena) Succ(i int) []int { return a.succ[i] }

// Pred returns the dense predecessors of index i. The slice is shared with
// the arena and must not be modified.
func (a *Arena) Pred(i int) []int { return a.pred[i] }

// =============================================================================
// Derived arenas
// =============================================================================

// Subgame returns the arena induced by ids: exactly those nodes, in the
// order of their first occurrence in ids, and the parent's edges whose
// endpoints are both in ids. Runs in O(|ids| + edges incident to ids). The
// parent is not modified.
//
// The result is a total arena only if ids is closed under the moves of the
// player who cannot leave it; callers are responsible for that.
func (a *Arena) Subgame(ids []NodeID) (*Arena, error) {
	keep := make(map[int]struct{}, len(ids))
	order := make([]int, 0, len(ids))
	for _, id := range ids {
		i, ok := a.index[id]
		if !ok {
			return nil, gerr.Wrap(gerr.ErrCodeMalformedArena, ErrUnknownNode, "subgame node %d", id)
		}
		if _, dup := keep[i]; !dup {
			keep[i] = struct{}{}
			order = append(order, i)
		}
	}
	return a.induced(order, func(i int) bool { _, ok := keep[i]; return ok }), nil
}

// induced builds the arena on the distinct dense indices in order, keeping
// edges whose target satisfies in. Successor lists keep the parent's order.
func (a *Arena) induced(order []int, in func(int) bool) *Arena {
	sub := New()
	sub.arity = a.arity
	local := make(map[int]int, len(order))
	for _, i := range order {
		local[i] = len(sub.ids)
		n := a.nodes[i]
		n.Priorities = slices.Clone(n.Priorities)
		sub.index[n.ID] = len(sub.ids)
		sub.ids = append(sub.ids, n.ID)
		sub.nodes = append(sub.nodes, n)
		sub.succ = append(sub.succ, nil)
		sub.pred = append(sub.pred, nil)
	}
	for _, i := range order {
		for _, j := range a.succ[i] {
			if in(j) {
				sub.addEdgeIdx(local[i], local[j])
			}
		}
	}
	return sub
}

// MapPriorities returns a copy of the arena with every priority component
// k of every node replaced by fn(k, p). Structure and IDs are unchanged.
func (a *Arena) MapPriorities(fn func(k, p int) int) *Arena {
	out := &Arena{
		ids:   slices.Clone(a.ids),
		index: make(map[NodeID]int, len(a.index)),
		nodes: make([]Node, len(a.nodes)),
		succ:  make([][]int, len(a.succ)),
		pred:  make([][]int, len(a.pred)),
		edges: a.edges,
		arity: a.arity,
	}
	for id, i := range a.index {
		out.index[id] = i
	}
	for i, n := range a.nodes {
		prios := make([]int, len(n.Priorities))
		for k, p := range n.Priorities {
			prios[k] = fn(k, p)
		}
		n.Priorities = prios
		out.nodes[i] = n
		out.succ[i] = slices.Clone(a.succ[i])
		out.pred[i] = slices.Clone(a.pred[i])
	}
	return out
}

// Complement returns a copy with every priority component increased by one,
// which flips the parity of every priority while preserving their order.
func (a *Arena) Complement() *Arena {
	return a.MapPriorities(func(_, p int) int { return p + 1 })
}
