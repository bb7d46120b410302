package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/swiss/internal/testutil"
)

func TestReportMatch_Basic(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()
	ids := registerTestPlayers(t, s, "Ada", "Bo")

	played := time.Date(2024, 1, 2, 3, 4, 5, 0, time.FixedZone("EST", -5*3600))
	m, err := s.ReportMatch(ctx, ids[0], ids[1], played)
	require.NoError(t, err)

	assert.NotZero(t, m.ID)
	assert.Equal(t, ids[0], m.WinnerID)
	assert.Equal(t, ids[1], m.LoserID)
	assert.True(t, played.Equal(m.PlayedAt))

	matches, err := s.Matches(ctx)
	require.NoError(t, err)
	require.Len(t, matches, 1)
	assert.Equal(t, m, matches[0])
}

func TestReportMatch_DefaultsToNow(t *testing.T) {
	s := createTestStore(t)
	ids := registerTestPlayers(t, s, "Ada", "Bo")

	m, err := s.ReportMatch(context.Background(), ids[0], ids[1], time.Time{})
	require.NoError(t, err)
	assert.Equal(t, testClock, m.PlayedAt)
}

func TestReportMatch_SamePlayer(t *testing.T) {
	s := createTestStore(t)
	ids := registerTestPlayers(t, s, "Ada")

	_, err := s.ReportMatch(context.Background(), ids[0], ids[0], time.Time{})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrSamePlayer)
	assert.True(t, IsStorageError(err))
}

func TestReportMatch_UnknownPlayer(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()
	ids := registerTestPlayers(t, s, "Ada")

	_, err := s.ReportMatch(ctx, ids[0], 999, time.Time{})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnknownPlayer)

	matches, err := s.Matches(ctx)
	require.NoError(t, err)
	assert.Empty(t, matches, "failed report must not leave a row behind")
}

func TestReportMatch_RematchAllowed(t *testing.T) {
	s := createTestStore(t)
	ids := registerTestPlayers(t, s, "Ada", "Bo")

	reportTestMatch(t, s, ids[0], ids[1])
	reportTestMatch(t, s, ids[1], ids[0])

	matches, err := s.Matches(context.Background())
	require.NoError(t, err)
	assert.Len(t, matches, 2)
}

func TestDeleteMatches_KeepsPlayers(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()
	ids := registerTestPlayers(t, s, "Ada", "Bo")
	reportTestMatch(t, s, ids[0], ids[1])

	require.NoError(t, s.DeleteMatches(ctx))

	matches, err := s.Matches(ctx)
	require.NoError(t, err)
	assert.Empty(t, matches)

	n, err := s.CountPlayers(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}

func TestSetClock_StampsPlayersAndMatches(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()
	start := time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC)
	s.SetClock(testutil.NewStepClock(start, time.Minute).Now)

	ids := registerTestPlayers(t, s, "Ada", "Bo")
	m, err := s.ReportMatch(ctx, ids[0], ids[1], time.Time{})
	require.NoError(t, err)

	players, err := s.Players(ctx)
	require.NoError(t, err)
	require.Len(t, players, 2)
	assert.Equal(t, start, players[0].CreatedAt)
	assert.Equal(t, start.Add(time.Minute), players[1].CreatedAt)
	assert.Equal(t, start.Add(2*time.Minute), m.PlayedAt)
}
