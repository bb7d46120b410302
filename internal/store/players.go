package store

import (
	"context"
	"fmt"
	"strings"
	"time"

	"golang.org/x/text/unicode/norm"
)

// Player is a registered tournament player.
type Player struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// NormalizeName trims and collapses whitespace and applies Unicode NFC, so
// names typed with different composition forms display identically.
func NormalizeName(name string) string {
	return norm.NFC.String(strings.Join(strings.Fields(name), " "))
}

// RegisterPlayer adds a player and returns it with its assigned ID.
// Names need not be unique.
func (s *Store) RegisterPlayer(ctx context.Context, name string) (Player, error) {
	players, err := s.RegisterPlayers(ctx, []string{name})
	if err != nil {
		return Player{}, err
	}
	return players[0], nil
}

// RegisterPlayers adds players in order within one transaction. If any name
// is empty after normalisation nothing is registered.
func (s *Store) RegisterPlayers(ctx context.Context, names []string) ([]Player, error) {
	const op = "register player"

	normalized := make([]string, len(names))
	for i, name := range names {
		normalized[i] = NormalizeName(name)
		if normalized[i] == "" {
			return nil, wrap(op, fmt.Errorf("%w: names[%d]", ErrEmptyName, i))
		}
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, wrap(op, fmt.Errorf("begin tx: %w", err))
	}
	defer tx.Rollback() // No-op if committed

	players := make([]Player, 0, len(normalized))
	for _, name := range normalized {
		created := s.now()
		res, err := tx.ExecContext(ctx,
			`INSERT INTO players (name, created_at) VALUES (?, ?)`,
			name, formatTime(created),
		)
		if err != nil {
			return nil, wrap(op, err)
		}

		id, err := res.LastInsertId()
		if err != nil {
			return nil, wrap(op, fmt.Errorf("last insert id: %w", err))
		}
		players = append(players, Player{ID: id, Name: name, CreatedAt: created.UTC()})
	}

	if err := tx.Commit(); err != nil {
		return nil, wrap(op, fmt.Errorf("commit: %w", err))
	}
	return players, nil
}

// DeletePlayers removes every player. Their match results go with them.
func (s *Store) DeletePlayers(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM players`); err != nil {
		return wrap("delete players", err)
	}
	return nil
}

// CountPlayers returns the number of registered players.
func (s *Store) CountPlayers(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM players`).Scan(&n); err != nil {
		return 0, wrap("count players", err)
	}
	return n, nil
}

// Players returns every registered player in registration order.
// Returns an empty slice (not nil) if nobody is registered.
func (s *Store) Players(ctx context.Context) ([]Player, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, created_at
		FROM players
		ORDER BY id ASC
	`)
	if err != nil {
		return nil, wrap("list players", err)
	}
	defer rows.Close()

	players := []Player{}
	for rows.Next() {
		var (
			p       Player
			created string
		)
		if err := rows.Scan(&p.ID, &p.Name, &created); err != nil {
			return nil, wrap("list players", fmt.Errorf("scan: %w", err))
		}
		if p.CreatedAt, err = parseTime(created); err != nil {
			return nil, wrap("list players", err)
		}
		players = append(players, p)
	}
	if err := rows.Err(); err != nil {
		return nil, wrap("list players", fmt.Errorf("iterate: %w", err))
	}

	return players, nil
}
