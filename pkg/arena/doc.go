// Package arena provides the game graph shared by every solver: a finite
// directed graph whose nodes are owned by one of two players and labeled
// with one or more priorities.
//
// # Overview
//
// A two-player game is played by moving a token along the edges of an
// arena. The owner of the current node picks the successor. Plays are
// infinite, so every node must have at least one successor; [Arena.Validate]
// rejects arenas with dead ends.
//
// Single-objective solvers read the first priority component. Generalized
// parity games give every node a vector of priorities, one per objective, and
// the arena enforces that all vectors have the same length (its arity).
//
// # Basic Usage
//
// Create an arena with [New], add nodes with [Arena.AddNode] and edges with
// [Arena.AddEdge]. Nodes are referenced by caller-chosen [NodeID] values:
//
//	a := arena.New()
//	a.AddNode(arena.Node{ID: 1, Player: arena.Player0, Priorities: []int{2}})
//	a.AddNode(arena.Node{ID: 2, Player: arena.Player1, Priorities: []int{1}})
//	a.AddEdge(1, 2)
//	a.AddEdge(2, 1)
//
// # Dense Indices and Views
//
// Internally nodes are stored densely in insertion order. Solvers work on
// dense indices through [View], an immutable live-node mask over the arena.
// Restricting a view ([View.Without], [View.Only]) copies the mask, so a
// recursive solver can give each call its own subgame without rebuilding
// adjacency lists and without sharing mutable state between calls.
// [Arena.Subgame] and [View.Subgame] materialize a standalone arena when one
// is needed.
//
// # Results
//
// Solvers return a [Solution]: the winning [Region] of each player and,
// where the winning condition admits them, memoryless [Strategy] maps. The
// [Region] type is a tagged label whose zero value is [Unassigned].
//
// # Priority Compression
//
// [Arena.CompressPriorities] renumbers priorities to a dense range that
// preserves order and parity. It never changes who wins but reduces the
// number of recursion levels of the parity solvers.
//
// # Concurrency
//
// An Arena must not be mutated concurrently. Once built, it can be read and
// solved from many goroutines at once: solvers and views never modify it.
package arena
