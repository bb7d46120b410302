// Package tournament connects the store to the pairing engine.
package tournament

import (
	"context"
	"log/slog"

	"github.com/roach88/swiss/internal/pairing"
	"github.com/roach88/swiss/internal/store"
)

// Storage is the read side the service needs from the store.
type Storage interface {
	Snapshot(ctx context.Context) (store.Snapshot, error)
}

// Service computes pairings for the next round.
type Service struct {
	storage Storage
	opts    pairing.Options
	log     *slog.Logger
}

// NewService creates a Service. A nil logger uses slog.Default().
func NewService(storage Storage, opts pairing.Options, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{storage: storage, opts: opts, log: logger}
}

// SwissPairings returns the pairings for the next round.
//
// Standings and history are read from one snapshot. Storage failures come
// back as *store.StorageError and engine failures as *pairing.PairingError;
// nothing is written either way, so a failed call can be retried as is.
func (s *Service) SwissPairings(ctx context.Context) ([]pairing.Pairing, error) {
	snap, err := s.storage.Snapshot(ctx)
	if err != nil {
		s.log.Error("failed to read tournament snapshot", "error", err)
		return nil, err
	}

	standings, opponents := EngineInput(snap)
	s.log.Debug("computing pairings",
		"players", len(standings),
		"opponent_rows", len(snap.Opponents),
		"strategy", s.opts.Strategy,
	)

	pairings, err := pairing.ComputeWithOptions(standings, opponents, s.opts)
	if err != nil {
		s.log.Warn("pairing failed", "error", err)
		return nil, err
	}

	s.log.Info("pairings computed", "boards", len(pairings))
	return pairings, nil
}

// EngineInput converts a store snapshot into the engine's input types.
func EngineInput(snap store.Snapshot) ([]pairing.StandingsEntry, pairing.Opponents) {
	standings := make([]pairing.StandingsEntry, len(snap.Standings))
	for i, st := range snap.Standings {
		standings[i] = pairing.StandingsEntry{
			PlayerID: pairing.PlayerID(st.PlayerID),
			Name:     st.Name,
			Wins:     st.Wins,
			Matches:  st.Matches,
		}
	}

	pairs := make([]pairing.OpponentPair, len(snap.Opponents))
	for i, op := range snap.Opponents {
		pairs[i] = pairing.OpponentPair{
			PlayerID:   pairing.PlayerID(op.PlayerID),
			OpponentID: pairing.PlayerID(op.OpponentID),
		}
	}

	return standings, pairing.NewOpponents(pairs)
}
