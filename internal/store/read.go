package store

import (
	"context"
	"fmt"
)

// Standing is one row of the player_standings view.
type Standing struct {
	PlayerID int64  `json:"id"`
	Name     string `json:"name"`
	Wins     int    `json:"wins"`
	Matches  int    `json:"matches"`
}

// OpponentPair is one row of the players_played_with view.
type OpponentPair struct {
	PlayerID   int64 `json:"player_id"`
	OpponentID int64 `json:"opponent_id"`
}

// Snapshot is a consistent view of standings and match history, read in a
// single transaction.
type Snapshot struct {
	Standings []Standing
	Opponents []OpponentPair
}

// Standings returns every player ordered by wins, most first. Ties keep
// registration order.
func (s *Store) Standings(ctx context.Context) ([]Standing, error) {
	standings, err := readStandings(ctx, s.db)
	if err != nil {
		return nil, wrap("read standings", err)
	}
	return standings, nil
}

// OpponentPairs returns the played-against relation. Each match appears
// once per direction.
func (s *Store) OpponentPairs(ctx context.Context) ([]OpponentPair, error) {
	pairs, err := readOpponentPairs(ctx, s.db)
	if err != nil {
		return nil, wrap("read opponents", err)
	}
	return pairs, nil
}

// Snapshot reads standings and opponent pairs inside one transaction so a
// match reported concurrently can't appear in one and not the other.
func (s *Store) Snapshot(ctx context.Context) (Snapshot, error) {
	const op = "read snapshot"

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return Snapshot{}, wrap(op, fmt.Errorf("begin tx: %w", err))
	}
	defer tx.Rollback() // Read-only; nothing to commit

	standings, err := readStandings(ctx, tx)
	if err != nil {
		return Snapshot{}, wrap(op, err)
	}
	pairs, err := readOpponentPairs(ctx, tx)
	if err != nil {
		return Snapshot{}, wrap(op, err)
	}

	return Snapshot{Standings: standings, Opponents: pairs}, nil
}

func readStandings(ctx context.Context, q queryer) ([]Standing, error) {
	rows, err := q.QueryContext(ctx, `
		SELECT id, name, wins, matches
		FROM player_standings
		ORDER BY wins DESC, id ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("query standings: %w", err)
	}
	defer rows.Close()

	standings := []Standing{}
	for rows.Next() {
		var st Standing
		if err := rows.Scan(&st.PlayerID, &st.Name, &st.Wins, &st.Matches); err != nil {
			return nil, fmt.Errorf("scan standing: %w", err)
		}
		standings = append(standings, st)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate standings: %w", err)
	}

	return standings, nil
}

func readOpponentPairs(ctx context.Context, q queryer) ([]OpponentPair, error) {
	rows, err := q.QueryContext(ctx, `
		SELECT player_id, opponent_id
		FROM players_played_with
		ORDER BY player_id ASC, opponent_id ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("query opponents: %w", err)
	}
	defer rows.Close()

	pairs := []OpponentPair{}
	for rows.Next() {
		var p OpponentPair
		if err := rows.Scan(&p.PlayerID, &p.OpponentID); err != nil {
			return nil, fmt.Errorf("scan opponent pair: %w", err)
		}
		pairs = append(pairs, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate opponents: %w", err)
	}

	return pairs, nil
}
