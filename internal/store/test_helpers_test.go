package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"
)

var testClock = time.Date(2024, 3, 5, 19, 0, 0, 0, time.UTC)

// createTestStore creates a new file-backed store with a fixed clock.
func createTestStore(t *testing.T) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.db")
	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	s.now = func() time.Time { return testClock }
	t.Cleanup(func() { s.Close() })
	return s
}

// registerTestPlayers registers names in order and returns their IDs.
func registerTestPlayers(t *testing.T, s *Store, names ...string) []int64 {
	t.Helper()
	ids := make([]int64, len(names))
	for i, name := range names {
		p, err := s.RegisterPlayer(context.Background(), name)
		if err != nil {
			t.Fatalf("RegisterPlayer(%q) failed: %v", name, err)
		}
		ids[i] = p.ID
	}
	return ids
}

// reportTestMatch records a match and fails the test on error.
func reportTestMatch(t *testing.T, s *Store, winner, loser int64) {
	t.Helper()
	if _, err := s.ReportMatch(context.Background(), winner, loser, time.Time{}); err != nil {
		t.Fatalf("ReportMatch(%d, %d) failed: %v", winner, loser, err)
	}
}
