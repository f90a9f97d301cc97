package arena_test

import (
	"fmt"

	"github.com/matzehuels/gamesolver/pkg/arena"
)

func ExampleArena_basic() {
	// A two-node arena: player 0 at node 1 (priority 2), player 1 at node 2
	// (priority 1), each able to move to the other.
	a := arena.New()
	_ = a.AddNode(arena.Node{ID: 1, Player: arena.Player0, Priorities: []int{2}})
	_ = a.AddNode(arena.Node{ID: 2, Player: arena.Player1, Priorities: []int{1}})
	_ = a.AddEdge(1, 2)
	_ = a.AddEdge(2, 1)
	_ = a.AddEdge(2, 2)

	fmt.Println("Nodes:", a.Len())
	fmt.Println("Edges:", a.EdgeCount())
	fmt.Println("Successors of 2:", a.Successors(2))
	fmt.Println("Valid:", a.Validate() == nil)
	// Output:
	// Nodes: 2
	// Edges: 3
	// Successors of 2: [1 2]
	// Valid: true
}

func ExampleArena_Subgame() {
	a := arena.New()
	for i := 1; i <= 3; i++ {
		_ = a.AddNode(arena.Node{ID: arena.NodeID(i), Priorities: []int{i}})
	}
	_ = a.AddEdge(1, 2)
	_ = a.AddEdge(2, 3)
	_ = a.AddEdge(3, 1)
	_ = a.AddEdge(3, 3)

	sub, _ := a.Subgame([]arena.NodeID{1, 3})
	fmt.Println("Nodes:", sub.IDs())
	fmt.Println("Successors of 3:", sub.Successors(3))
	// Output:
	// Nodes: [1 3]
	// Successors of 3: [1 3]
}

func ExampleArena_CompressPriorities() {
	a := arena.New()
	for i, p := range []int{2, 4, 5, 7, 8} {
		_ = a.AddNode(arena.Node{ID: arena.NodeID(i), Priorities: []int{p}})
	}
	c := a.CompressPriorities()
	var prios []int
	for _, n := range c.Nodes() {
		prios = append(prios, n.Priority())
	}
	fmt.Println(prios)
	// Output:
	// [0 0 1 1 2]
}
