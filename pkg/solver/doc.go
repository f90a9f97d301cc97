// Package solver decides two-player games on an [arena.Arena].
//
// # Solvers
//
//   - [Attractor] and [Reachability]: the set of nodes from which a player
//     can force a visit to a target set, in time linear in the number of
//     edges.
//   - [StrongParity]: Zielonka's recursive algorithm with memoryless
//     strategies for both players. [StrongParityRegions] skips strategy
//     bookkeeping.
//   - [WeakParity]: the largest priority visited at all decides the winner.
//   - [GeneralizedParity]: a conjunction of parity objectives for player 0
//     against a disjunction for player 1, one per priority function.
//
// All solvers validate the arena first and fail with a MALFORMED_ARENA
// error on dead ends. None of them mutate the arena, so one arena may be
// solved concurrently from several goroutines.
//
// # Internals
//
// Recursive solvers work on [arena.View] values over dense node indices
// and only translate back to [arena.NodeID] when building the result.
// Regions are reported in discovery order; use [arena.Solution.Sorted]
// for a stable presentation.
//
// Stats on the returned solution count recursive calls and attractor
// computations. The worst-case family in package generate doubles
// StrongParity's call count with every level, which is a convenient
// regression check for the recursion structure.
package solver
