package io

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/matzehuels/gamesolver/pkg/arena"
	gerr "github.com/matzehuels/gamesolver/pkg/errors"
)

// edgeList holds the successors of one node until every node is known.
type edgeList struct {
	line int
	from arena.NodeID
	to   []arena.NodeID
}

// ReadArena parses an arena in the text format described in the package
// documentation. Nodes are added in file order; edges are added once every
// node is known, so successors may refer to nodes declared later.
//
// Syntax errors are INVALID_FORMAT errors naming the line. Construction
// errors from [arena.Arena.AddNode] and [arena.Arena.AddEdge] are wrapped
// with the line they came from. ReadArena does not check totality; call
// [arena.Arena.Validate] or hand the arena to a solver.
func ReadArena(r io.Reader) (*arena.Arena, error) {
	a := arena.New()
	var pending []edgeList

	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), 16*1024*1024)
	lineNo := 0
	header := false
	for sc.Scan() {
		lineNo++
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if !header {
			header = true
			if isHeader(line) {
				continue
			}
		}

		node, succ, err := parseNodeLine(line)
		if err != nil {
			return nil, gerr.Wrap(gerr.ErrCodeInvalidFormat, err, "line %d", lineNo)
		}
		if err := a.AddNode(node); err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNo, err)
		}
		pending = append(pending, edgeList{line: lineNo, from: node.ID, to: succ})
	}
	if err := sc.Err(); err != nil {
		return nil, gerr.Wrap(gerr.ErrCodeInvalidFormat, err, "read arena")
	}

	for _, e := range pending {
		for _, to := range e.to {
			if err := a.AddEdge(e.from, to); err != nil {
				return nil, fmt.Errorf("line %d: %w", e.line, err)
			}
		}
	}
	return a, nil
}

// ParseArena parses an arena from a string.
func ParseArena(s string) (*arena.Arena, error) {
	return ReadArena(strings.NewReader(s))
}

// ImportArena reads an arena from the file at path.
func ImportArena(path string) (*arena.Arena, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, gerr.Wrap(gerr.ErrCodeFileNotFound, err, "open %s", path)
		}
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ReadArena(f)
}

// isHeader reports whether line is a bare node count or a PGSolver
// "parity N;" header.
func isHeader(line string) bool {
	line = strings.TrimSuffix(line, ";")
	if rest, ok := strings.CutPrefix(line, "parity"); ok {
		_, err := strconv.Atoi(strings.TrimSpace(rest))
		return err == nil
	}
	_, err := strconv.Atoi(line)
	return err == nil
}

// parseNodeLine parses "<id> <prio[,prio...]> <player> [<succ,succ,...>]"
// with an optional quoted name and trailing semicolon.
func parseNodeLine(line string) (arena.Node, []arena.NodeID, error) {
	line = strings.TrimSpace(strings.TrimSuffix(line, ";"))
	if i := strings.IndexByte(line, '"'); i >= 0 {
		line = strings.TrimSpace(line[:i])
	}
	fields := strings.Fields(line)
	if len(fields) != 3 && len(fields) != 4 {
		return arena.Node{}, nil, fmt.Errorf("want 3 or 4 fields, got %d", len(fields))
	}

	id, err := strconv.Atoi(fields[0])
	if err != nil {
		return arena.Node{}, nil, fmt.Errorf("node id %q: %w", fields[0], err)
	}
	prios, err := parseInts(fields[1])
	if err != nil {
		return arena.Node{}, nil, fmt.Errorf("priorities: %w", err)
	}
	player, err := strconv.Atoi(fields[2])
	if err != nil {
		return arena.Node{}, nil, fmt.Errorf("player %q: %w", fields[2], err)
	}
	if player != 0 && player != 1 {
		return arena.Node{}, nil, fmt.Errorf("player must be 0 or 1, got %d", player)
	}
	node := arena.Node{ID: arena.NodeID(id), Player: arena.Player(player), Priorities: prios}
	if len(fields) == 3 {
		return node, nil, nil
	}

	succ, err := parseInts(fields[3])
	if err != nil {
		return arena.Node{}, nil, fmt.Errorf("successors: %w", err)
	}
	ids := make([]arena.NodeID, len(succ))
	for i, s := range succ {
		ids[i] = arena.NodeID(s)
	}
	return node, ids, nil
}

func parseInts(s string) ([]int, error) {
	parts := strings.Split(s, ",")
	out := make([]int, len(parts))
	for i, p := range parts {
		v, err := strconv.Atoi(p)
		if err != nil {
			return nil, fmt.Errorf("%q is not an integer", p)
		}
		out[i] = v
	}
	return out, nil
}

// WriteArena writes a in the text format: a node-count header followed by
// one line per node in arena order. Nodes without successors get no
// successor field.
func WriteArena(a *arena.Arena, w io.Writer) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "%d\n", a.Len())
	for _, n := range a.Nodes() {
		fmt.Fprintf(bw, "%d %s %d", n.ID, joinInts(n.Priorities), n.Player)
		if succ := a.Successors(n.ID); len(succ) > 0 {
			fmt.Fprintf(bw, " %s", joinIDs(succ))
		}
		bw.WriteByte('\n')
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("write arena: %w", err)
	}
	return nil
}

// ExportArena writes a to a file at path.
func ExportArena(a *arena.Arena, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := WriteArena(a, f); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close %s: %w", path, err)
	}
	return nil
}

func joinInts(v []int) string {
	s := make([]string, len(v))
	for i, x := range v {
		s[i] = strconv.Itoa(x)
	}
	return strings.Join(s, ",")
}

func joinIDs(v []arena.NodeID) string {
	s := make([]string, len(v))
	for i, x := range v {
		s[i] = strconv.Itoa(int(x))
	}
	return strings.Join(s, ",")
}
