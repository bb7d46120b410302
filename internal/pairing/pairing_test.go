package pairing

import (
	"fmt"
	"math/rand"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// freshStandings returns n players named P1..Pn with no matches played.
func freshStandings(n int) []StandingsEntry {
	standings := make([]StandingsEntry, n)
	for i := range standings {
		standings[i] = StandingsEntry{PlayerID: PlayerID(i + 1), Name: fmt.Sprintf("P%d", i+1)}
	}
	return standings
}

func TestCompute_FreshPlayersPairAdjacentRanks(t *testing.T) {
	got, err := Compute(freshStandings(4), Opponents{})
	require.NoError(t, err)

	assert.Equal(t, []Pairing{
		{PlayerID1: 1, Name1: "P1", PlayerID2: 2, Name2: "P2"},
		{PlayerID1: 3, Name1: "P3", PlayerID2: 4, Name2: "P4"},
	}, got)
}

func TestCompute_NilOpponentsTreatedAsEmpty(t *testing.T) {
	got, err := Compute(freshStandings(2), nil)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, PlayerID(1), got[0].PlayerID1)
	assert.Equal(t, PlayerID(2), got[0].PlayerID2)
}

func TestCompute_EmptyStandings(t *testing.T) {
	got, err := Compute(nil, nil)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestCompute_SkipsPreviousOpponent(t *testing.T) {
	standings := []StandingsEntry{
		{PlayerID: 1, Name: "A", Wins: 2, Matches: 2},
		{PlayerID: 2, Name: "B", Wins: 2, Matches: 2},
		{PlayerID: 3, Name: "C", Wins: 1, Matches: 2},
		{PlayerID: 4, Name: "D", Wins: 0, Matches: 2},
	}
	opponents := Opponents{
		1: {3: {}},
		2: {4: {}},
		3: {1: {}},
		4: {2: {}},
	}

	got, err := Compute(standings, opponents)
	require.NoError(t, err)
	assert.Equal(t, []Pairing{
		{PlayerID1: 1, Name1: "A", PlayerID2: 2, Name2: "B"},
		{PlayerID1: 3, Name1: "C", PlayerID2: 4, Name2: "D"},
	}, got)
}

func TestCompute_NearestAvailableOpponent(t *testing.T) {
	standings := freshStandings(6)
	opponents := NewOpponents([]OpponentPair{{PlayerID: 1, OpponentID: 2}, {PlayerID: 1, OpponentID: 3}})

	got, err := Compute(standings, opponents)
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, PlayerID(1), got[0].PlayerID1)
	assert.Equal(t, PlayerID(4), got[0].PlayerID2)
	assert.Equal(t, PlayerID(2), got[1].PlayerID1)
	assert.Equal(t, PlayerID(3), got[1].PlayerID2)
	assert.Equal(t, PlayerID(5), got[2].PlayerID1)
	assert.Equal(t, PlayerID(6), got[2].PlayerID2)
}

func TestCompute_OneSidedOpponentsStillBlockRematch(t *testing.T) {
	// Only 2 -> 1 is recorded; 1 must still not be paired with 2.
	opponents := Opponents{2: {1: {}}}

	got, err := Compute(freshStandings(4), opponents)
	require.NoError(t, err)
	assert.Equal(t, PlayerID(1), got[0].PlayerID1)
	assert.Equal(t, PlayerID(3), got[0].PlayerID2)
}

func TestCompute_InvalidInput(t *testing.T) {
	tests := []struct {
		name      string
		standings []StandingsEntry
		opponents Opponents
		player    PlayerID
	}{
		{
			name:      "odd player count",
			standings: freshStandings(3),
		},
		{
			name: "duplicate player",
			standings: []StandingsEntry{
				{PlayerID: 1, Name: "A"},
				{PlayerID: 1, Name: "A"},
			},
			player: 1,
		},
		{
			name: "not sorted by wins",
			standings: []StandingsEntry{
				{PlayerID: 1, Name: "A", Wins: 0, Matches: 1},
				{PlayerID: 2, Name: "B", Wins: 1, Matches: 1},
			},
			player: 2,
		},
		{
			name:      "unknown opponents key",
			standings: freshStandings(2),
			opponents: Opponents{9: {1: {}}},
			player:    9,
		},
		{
			name:      "unknown opponent value",
			standings: freshStandings(2),
			opponents: Opponents{1: {7: {}}},
			player:    7,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Compute(tt.standings, tt.opponents)
			require.Error(t, err)
			assert.Nil(t, got, "no partial pairing list on error")
			assert.True(t, IsInvalidInput(err), "got %v", err)
			assert.False(t, IsNoValidPairing(err))

			var pe *PairingError
			require.ErrorAs(t, err, &pe)
			assert.Equal(t, tt.player, pe.PlayerID)
		})
	}
}

func TestComputeWithOptions_UnknownStrategy(t *testing.T) {
	_, err := ComputeWithOptions(freshStandings(2), nil, Options{Strategy: "random"})
	require.Error(t, err)
	assert.True(t, IsInvalidInput(err))
}

// strandedThird has players 3 and 4 already met, so a greedy 1-2 board
// leaves 3 with nobody.
func strandedThird() ([]StandingsEntry, Opponents) {
	return freshStandings(4), NewOpponents([]OpponentPair{{PlayerID: 3, OpponentID: 4}})
}

func TestCompute_GreedyFailsLoudlyWhenStranded(t *testing.T) {
	standings, opponents := strandedThird()

	got, err := Compute(standings, opponents)
	require.Error(t, err)
	assert.Nil(t, got)
	assert.True(t, IsNoValidPairing(err))

	var pe *PairingError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, PlayerID(3), pe.PlayerID)
	assert.Equal(t, "3", pe.Details["position"])
	assert.Equal(t, "greedy", pe.Details["strategy"])
}

func TestCompute_BacktrackRecoversStrandedPlayer(t *testing.T) {
	standings, opponents := strandedThird()

	got, err := ComputeWithOptions(standings, opponents, Options{Strategy: StrategyBacktrack})
	require.NoError(t, err)
	assert.Equal(t, []Pairing{
		{PlayerID1: 1, Name1: "P1", PlayerID2: 3, Name2: "P3"},
		{PlayerID1: 2, Name1: "P2", PlayerID2: 4, Name2: "P4"},
	}, got)
}

func TestCompute_BacktrackStepLimit(t *testing.T) {
	standings, opponents := strandedThird()

	_, err := ComputeWithOptions(standings, opponents, Options{Strategy: StrategyBacktrack, MaxSteps: 1})
	require.Error(t, err)
	assert.True(t, IsNoValidPairing(err))

	var pe *PairingError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, "search step limit reached", pe.Details["reason"])
	assert.Equal(t, "1", pe.Details["max_steps"])
}

func TestCompute_NoRematchFreePairingExists(t *testing.T) {
	// Player 1 has met everybody else.
	opponents := NewOpponents([]OpponentPair{
		{PlayerID: 1, OpponentID: 2},
		{PlayerID: 1, OpponentID: 3},
		{PlayerID: 1, OpponentID: 4},
	})

	for _, strategy := range Strategies {
		t.Run(string(strategy), func(t *testing.T) {
			got, err := ComputeWithOptions(freshStandings(4), opponents, Options{Strategy: strategy})
			require.Error(t, err)
			assert.Nil(t, got)
			assert.True(t, IsNoValidPairing(err))

			var pe *PairingError
			require.ErrorAs(t, err, &pe)
			assert.Equal(t, PlayerID(1), pe.PlayerID)
		})
	}
}

func TestCompute_DoesNotMutateInputs(t *testing.T) {
	standings := freshStandings(6)
	opponents := NewOpponents([]OpponentPair{{PlayerID: 1, OpponentID: 2}, {PlayerID: 5, OpponentID: 6}})
	before := append([]StandingsEntry(nil), standings...)

	_, err := ComputeWithOptions(standings, opponents, Options{Strategy: StrategyBacktrack})
	require.NoError(t, err)

	assert.Equal(t, before, standings)
	assert.Len(t, opponents, 4)
	assert.Equal(t, []PlayerID{2}, opponents.Of(1))
}

// randomTournament builds standings and history for n players after the
// given number of random matches. Players may meet more than once.
func randomTournament(r *rand.Rand, n, matches int) ([]StandingsEntry, Opponents) {
	standings := freshStandings(n)
	opponents := Opponents{}
	for k := 0; k < matches; k++ {
		w := r.Intn(n)
		l := r.Intn(n)
		if w == l {
			continue
		}
		standings[w].Wins++
		standings[w].Matches++
		standings[l].Matches++
		opponents.Add(standings[w].PlayerID, standings[l].PlayerID)
	}
	sort.SliceStable(standings, func(i, j int) bool {
		return standings[i].Wins > standings[j].Wins
	})
	return standings, opponents
}

func assertValidPairings(t *testing.T, standings []StandingsEntry, opponents Opponents, got []Pairing) {
	t.Helper()
	require.Len(t, got, len(standings)/2)

	seen := map[PlayerID]int{}
	names := map[PlayerID]string{}
	for _, e := range standings {
		names[e.PlayerID] = e.Name
	}
	for _, p := range got {
		seen[p.PlayerID1]++
		seen[p.PlayerID2]++
		assert.False(t, opponents.Played(p.PlayerID1, p.PlayerID2), "rematch %d vs %d", p.PlayerID1, p.PlayerID2)
		assert.Equal(t, names[p.PlayerID1], p.Name1)
		assert.Equal(t, names[p.PlayerID2], p.Name2)
	}
	for _, e := range standings {
		assert.Equal(t, 1, seen[e.PlayerID], "player %d paired %d times", e.PlayerID, seen[e.PlayerID])
	}
}

// assertGreedyProximity checks that each board pairs the top unpaired player
// with the highest-ranked unpaired player they have not met.
func assertGreedyProximity(t *testing.T, standings []StandingsEntry, opponents Opponents, got []Pairing) {
	t.Helper()
	paired := map[PlayerID]bool{}
	for _, p := range got {
		var top StandingsEntry
		for _, e := range standings {
			if !paired[e.PlayerID] {
				top = e
				break
			}
		}
		require.Equal(t, top.PlayerID, p.PlayerID1)
		paired[top.PlayerID] = true

		var want PlayerID
		for _, e := range standings {
			if !paired[e.PlayerID] && !opponents.Played(top.PlayerID, e.PlayerID) {
				want = e.PlayerID
				break
			}
		}
		require.Equal(t, want, p.PlayerID2)
		paired[want] = true
	}
}

func TestCompute_RandomizedProperties(t *testing.T) {
	r := rand.New(rand.NewSource(42))

	for iter := 0; iter < 500; iter++ {
		n := 2 * (1 + r.Intn(6))
		standings, opponents := randomTournament(r, n, r.Intn(3*n))

		greedyOut, greedyErr := Compute(standings, opponents)
		backOut, backErr := ComputeWithOptions(standings, opponents, Options{Strategy: StrategyBacktrack})

		if greedyErr == nil {
			assertValidPairings(t, standings, opponents, greedyOut)
			assertGreedyProximity(t, standings, opponents, greedyOut)
			require.NoError(t, backErr)
			assert.Equal(t, greedyOut, backOut, "strategies must agree when greedy succeeds")
		} else {
			require.True(t, IsNoValidPairing(greedyErr), "unexpected error %v", greedyErr)
		}

		if backErr == nil {
			assertValidPairings(t, standings, opponents, backOut)
		} else {
			require.True(t, IsNoValidPairing(backErr), "unexpected error %v", backErr)
			assert.Error(t, greedyErr, "greedy cannot succeed where the full search fails")
		}

		again, againErr := ComputeWithOptions(standings, opponents, Options{Strategy: StrategyBacktrack})
		assert.Equal(t, backOut, again)
		assert.Equal(t, backErr, againErr)
	}
}

func TestParseStrategy(t *testing.T) {
	s, err := ParseStrategy("")
	require.NoError(t, err)
	assert.Equal(t, StrategyGreedy, s)

	s, err = ParseStrategy("backtrack")
	require.NoError(t, err)
	assert.Equal(t, StrategyBacktrack, s)

	_, err = ParseStrategy("blossom")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown pairing strategy")
}
