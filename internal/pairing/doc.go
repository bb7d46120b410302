// Package pairing computes Swiss-system pairings for the next round.
//
// The engine is a pure function over two inputs fetched from storage:
//
//   - Standings: players ordered by descending win count, ties in
//     registration order.
//   - Opponents: for each player, the set of players already faced.
//
// Each unpaired player, walking the standings from the top, is matched with
// the nearest-ranked unpaired player they have not met yet. Two strategies
// are available:
//
//   - StrategyGreedy: a single forward pass. If any player is stranded the
//     call fails with NO_VALID_PAIRING and no partial list is returned.
//   - StrategyBacktrack: the same candidate order, but a stranded branch
//     backs up to the last choice and tries the next-nearest candidate.
//     Whenever the greedy pass succeeds both strategies agree.
//
// The engine never mutates its inputs and holds no state between calls, so
// identical inputs always yield identical pairings.
package pairing
