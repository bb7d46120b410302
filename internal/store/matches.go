package store

import (
	"context"
	"fmt"
	"time"
)

// MatchResult records the outcome of one match.
type MatchResult struct {
	ID       int64     `json:"id"`
	WinnerID int64     `json:"winner_id"`
	LoserID  int64     `json:"loser_id"`
	PlayedAt time.Time `json:"played_at"`
}

// ReportMatch records that winnerID beat loserID. A zero playedAt means now.
//
// Both players must be registered. Reporting the same two players again is
// allowed; the pairing engine is what keeps rematches out of new rounds.
func (s *Store) ReportMatch(ctx context.Context, winnerID, loserID int64, playedAt time.Time) (MatchResult, error) {
	const op = "report match"
	if winnerID == loserID {
		return MatchResult{}, wrap(op, ErrSamePlayer)
	}
	if playedAt.IsZero() {
		playedAt = s.now()
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return MatchResult{}, wrap(op, fmt.Errorf("begin tx: %w", err))
	}
	defer tx.Rollback() // No-op if committed

	var known int
	err = tx.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM players WHERE id IN (?, ?)`,
		winnerID, loserID,
	).Scan(&known)
	if err != nil {
		return MatchResult{}, wrap(op, fmt.Errorf("check players: %w", err))
	}
	if known != 2 {
		return MatchResult{}, wrap(op, fmt.Errorf("%w: winner=%d loser=%d", ErrUnknownPlayer, winnerID, loserID))
	}

	res, err := tx.ExecContext(ctx,
		`INSERT INTO match_results (winner_id, loser_id, played_at) VALUES (?, ?, ?)`,
		winnerID, loserID, formatTime(playedAt),
	)
	if err != nil {
		return MatchResult{}, wrap(op, fmt.Errorf("insert: %w", err))
	}
	id, err := res.LastInsertId()
	if err != nil {
		return MatchResult{}, wrap(op, fmt.Errorf("last insert id: %w", err))
	}

	if err := tx.Commit(); err != nil {
		return MatchResult{}, wrap(op, fmt.Errorf("commit: %w", err))
	}

	return MatchResult{
		ID:       id,
		WinnerID: winnerID,
		LoserID:  loserID,
		PlayedAt: playedAt.UTC(),
	}, nil
}

// DeleteMatches removes every match result. Players stay registered.
func (s *Store) DeleteMatches(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM match_results`); err != nil {
		return wrap("delete matches", err)
	}
	return nil
}

// Matches returns every match result in the order it was reported.
// Returns an empty slice (not nil) if none exist.
func (s *Store) Matches(ctx context.Context) ([]MatchResult, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, winner_id, loser_id, played_at
		FROM match_results
		ORDER BY id ASC
	`)
	if err != nil {
		return nil, wrap("list matches", err)
	}
	defer rows.Close()

	matches := []MatchResult{}
	for rows.Next() {
		var (
			m      MatchResult
			played string
		)
		if err := rows.Scan(&m.ID, &m.WinnerID, &m.LoserID, &played); err != nil {
			return nil, wrap("list matches", fmt.Errorf("scan: %w", err))
		}
		if m.PlayedAt, err = parseTime(played); err != nil {
			return nil, wrap("list matches", err)
		}
		matches = append(matches, m)
	}
	if err := rows.Err(); err != nil {
		return nil, wrap("list matches", fmt.Errorf("iterate: %w", err))
	}

	return matches, nil
}
