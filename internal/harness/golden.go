package harness

import (
	"encoding/json"
	"testing"

	"github.com/sebdah/goldie/v2"
)

// goldenSnapshot is the stable, ID-free form of a Result written to golden
// files. Player IDs are left out so files survive schema changes.
type goldenSnapshot struct {
	Scenario  string           `json:"scenario"`
	Standings []goldenStanding `json:"standings"`
	Pairings  [][2]string      `json:"pairings"`
	Error     string           `json:"error,omitempty"`
}

type goldenStanding struct {
	Name    string `json:"name"`
	Wins    int    `json:"wins"`
	Matches int    `json:"matches"`
}

// MarshalGolden renders a result in golden-file form.
func MarshalGolden(result *Result) ([]byte, error) {
	snap := goldenSnapshot{
		Scenario:  result.Name,
		Standings: make([]goldenStanding, len(result.Standings)),
		Pairings:  result.PairingNames(),
		Error:     result.ErrorCode,
	}
	for i, st := range result.Standings {
		snap.Standings[i] = goldenStanding{Name: st.Name, Wins: st.Wins, Matches: st.Matches}
	}

	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}

// AssertGolden compares a result against testdata/golden/{name}.golden.
//
// To regenerate golden files, run:
//
//	go test ./internal/harness -update
func AssertGolden(t *testing.T, result *Result) {
	t.Helper()

	data, err := MarshalGolden(result)
	if err != nil {
		t.Fatalf("marshal golden %s: %v", result.Name, err)
	}

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, result.Name, data)
}
