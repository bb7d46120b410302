// Package store provides SQLite-backed storage for a Swiss tournament.
//
// The store keeps two append-only tables and derives everything else:
//   - Players: registered players, IDs assigned on insert
//   - Match results: (winner, loser) pairs, immutable once recorded
//
// Two views are computed from them:
//   - player_standings: wins and matches played per player
//   - players_played_with: the played-against relation, both directions
//
// Standings are always read ORDER BY wins DESC, id ASC so that ties keep
// registration order.
//
// # Database Configuration
//
//   - WAL mode: Concurrent reads during writes
//   - synchronous=NORMAL: Balance durability/performance
//   - busy_timeout=5000: Wait for locks up to 5 seconds
//   - foreign_keys=ON: Deleting players cascades to their matches
//
// Every error returned by this package is a *StorageError.
package store
