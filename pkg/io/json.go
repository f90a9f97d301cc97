package io

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/matzehuels/gamesolver/pkg/arena"
	gerr "github.com/matzehuels/gamesolver/pkg/errors"
)

type graph struct {
	Nodes []node `json:"nodes"`
	Edges []edge `json:"edges"`
}

type node struct {
	ID         arena.NodeID `json:"id"`
	Player     int          `json:"player"`
	Priorities []int        `json:"priorities"`
}

type edge struct {
	From arena.NodeID `json:"from"`
	To   arena.NodeID `json:"to"`
}

// WriteArenaJSON encodes a as a JSON object with "nodes" and "edges" arrays.
// The output can be read back with [ReadArenaJSON].
func WriteArenaJSON(a *arena.Arena, w io.Writer) error {
	out := graph{
		Nodes: make([]node, 0, a.Len()),
		Edges: make([]edge, 0, a.EdgeCount()),
	}
	for _, n := range a.Nodes() {
		out.Nodes = append(out.Nodes, node{ID: n.ID, Player: int(n.Player), Priorities: n.Priorities})
	}
	a.EachEdge(func(from, to arena.NodeID) {
		out.Edges = append(out.Edges, edge{From: from, To: to})
	})

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// ReadArenaJSON decodes an arena written by [WriteArenaJSON]:
//
//	{
//	  "nodes": [{"id": 1, "player": 0, "priorities": [2]}],
//	  "edges": [{"from": 1, "to": 1}]
//	}
//
// Errors name the node or edge that caused them.
func ReadArenaJSON(r io.Reader) (*arena.Arena, error) {
	var data graph
	if err := json.NewDecoder(r).Decode(&data); err != nil {
		return nil, gerr.Wrap(gerr.ErrCodeInvalidFormat, err, "decode arena")
	}

	a := arena.New()
	for _, n := range data.Nodes {
		if n.Player != 0 && n.Player != 1 {
			return nil, gerr.New(gerr.ErrCodeInvalidFormat, "node %d: player must be 0 or 1, got %d", n.ID, n.Player)
		}
		if err := a.AddNode(arena.Node{ID: n.ID, Player: arena.Player(n.Player), Priorities: n.Priorities}); err != nil {
			return nil, fmt.Errorf("node %d: %w", n.ID, err)
		}
	}
	for _, e := range data.Edges {
		if err := a.AddEdge(e.From, e.To); err != nil {
			return nil, fmt.Errorf("edge %d->%d: %w", e.From, e.To, err)
		}
	}
	return a, nil
}
