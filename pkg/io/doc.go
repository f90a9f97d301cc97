// Package io reads and writes arenas and solutions.
//
// # Text Format
//
// Arenas use the line format of PGSolver-style benchmark files:
//
//	parity 3;
//	1 2 0 2,3 "start";
//	2 1 1 1,4;
//	3 1 0 1;
//	4 4 0 4;
//
// The first line is a header, either a bare node count or "parity N;". It
// is optional and its value is not checked. Every other line describes one
// node:
//
//	<id> <priority[,priority...]> <player> <successor[,successor...]>
//
// followed by an optional quoted name and an optional semicolon, both
// ignored. A node without moves omits the successor list; such an arena
// reads fine but fails [arena.Arena.Validate]. Generalized parity arenas list several comma-separated
// priorities per node. Blank lines and lines starting with '#' are
// skipped.
//
// Use [ReadArena], [ParseArena] or [ImportArena] to read, and [WriteArena]
// or [ExportArena] to write. The writer emits a bare node count header and
// no names, so its output reads back to an identical arena.
//
// # JSON
//
// [WriteArenaJSON] and [ReadArenaJSON] use an object with "nodes" and
// "edges" arrays, the shape accepted by the HTTP API.
//
// # Solutions
//
// [WriteSolutionJSON] and [WriteSolutionYAML] serialize a solution through
// [SolutionDoc]: both regions in discovery order, strategies as move lists
// sorted by node, and solver statistics. [ReadSolutionJSON] reverses the
// JSON form; cached solutions are stored this way.
package io
