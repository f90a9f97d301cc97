package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/matzehuels/gamesolver/pkg/arena"
	gerr "github.com/matzehuels/gamesolver/pkg/errors"
)

// SolutionDoc is the serialized form of an [arena.Solution]. Strategies
// are lists of moves sorted by node so that output is stable.
type SolutionDoc struct {
	Solver     string         `json:"solver,omitempty" yaml:"solver,omitempty"`
	W0         []arena.NodeID `json:"w0" yaml:"w0"`
	W1         []arena.NodeID `json:"w1" yaml:"w1"`
	Strategy0  []Move         `json:"strategy0,omitempty" yaml:"strategy0,omitempty"`
	Strategy1  []Move         `json:"strategy1,omitempty" yaml:"strategy1,omitempty"`
	Strategies bool           `json:"strategies" yaml:"strategies"`
	Stats      arena.Stats    `json:"stats" yaml:"stats"`
}

// Move is one strategy entry.
type Move struct {
	From arena.NodeID `json:"from" yaml:"from"`
	To   arena.NodeID `json:"to" yaml:"to"`
}

// NewSolutionDoc converts sol. Regions keep the solver's discovery order.
func NewSolutionDoc(solver string, sol *arena.Solution) SolutionDoc {
	doc := SolutionDoc{
		Solver:     solver,
		W0:         nonNil(sol.Regions[0]),
		W1:         nonNil(sol.Regions[1]),
		Strategies: sol.HasStrategies(),
		Stats:      sol.Stats,
	}
	doc.Strategy0 = moves(sol.Strategies[0])
	doc.Strategy1 = moves(sol.Strategies[1])
	return doc
}

// Solution converts the document back. Strategies are nil unless the
// document recorded them.
func (d SolutionDoc) Solution() *arena.Solution {
	sol := &arena.Solution{Stats: d.Stats}
	sol.Regions[0] = d.W0
	sol.Regions[1] = d.W1
	if d.Strategies {
		for p, ms := range [2][]Move{d.Strategy0, d.Strategy1} {
			sol.Strategies[p] = make(arena.Strategy, len(ms))
			for _, m := range ms {
				sol.Strategies[p][m.From] = m.To
			}
		}
	}
	return sol
}

func nonNil(ids []arena.NodeID) []arena.NodeID {
	if ids == nil {
		return []arena.NodeID{}
	}
	return ids
}

func moves(s arena.Strategy) []Move {
	if len(s) == 0 {
		return nil
	}
	out := make([]Move, 0, len(s))
	for from, to := range s {
		out = append(out, Move{From: from, To: to})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].From < out[j].From })
	return out
}

// WriteSolutionJSON writes sol as indented JSON.
func WriteSolutionJSON(solver string, sol *arena.Solution, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(NewSolutionDoc(solver, sol)); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// WriteSolutionYAML writes sol as YAML.
func WriteSolutionYAML(solver string, sol *arena.Solution, w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(NewSolutionDoc(solver, sol)); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return enc.Close()
}

// ReadSolutionJSON decodes a solution written by [WriteSolutionJSON] and
// returns it with the solver name it was recorded under.
func ReadSolutionJSON(r io.Reader) (string, *arena.Solution, error) {
	var doc SolutionDoc
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return "", nil, gerr.Wrap(gerr.ErrCodeInvalidFormat, err, "decode solution")
	}
	return doc.Solver, doc.Solution(), nil
}

// ExportSolution writes sol to path, choosing YAML for .yaml and .yml
// extensions and JSON otherwise.
func ExportSolution(solver string, sol *arena.Solution, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return WriteSolutionYAML(solver, sol, f)
	default:
		return WriteSolutionJSON(solver, sol, f)
	}
}
