package harness

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/roach88/swiss/internal/pairing"
	"github.com/roach88/swiss/internal/store"
)

// Scenario defines a tournament state and the pairings expected from it.
type Scenario struct {
	// Name uniquely identifies this scenario.
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description"`

	// Strategy selects the pairing strategy. Empty means greedy.
	Strategy string `yaml:"strategy,omitempty"`

	// MaxSteps caps backtracking. Zero means the engine default.
	MaxSteps int `yaml:"max_steps,omitempty"`

	// Players are registered in this order, which also breaks ties.
	Players []string `yaml:"players"`

	// Matches are reported in order after registration.
	Matches []MatchStep `yaml:"matches,omitempty"`

	// Expect describes the expected engine output.
	Expect Expectation `yaml:"expect"`
}

// MatchStep is one reported match, players referenced by name.
type MatchStep struct {
	Winner string `yaml:"winner"`
	Loser  string `yaml:"loser"`
}

// Expectation is either a pairing list or an error code.
type Expectation struct {
	// Pairings lists [player1, player2] in the order boards are formed.
	Pairings [][]string `yaml:"pairings,omitempty"`

	// Error is the expected pairing error code.
	Error string `yaml:"error,omitempty"`
}

// LoadScenario reads and parses a scenario YAML file.
// Returns an error if the file doesn't exist, is malformed,
// contains unknown fields (typos), or fails validation.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}
	return ParseScenario(data)
}

// ParseScenario parses and validates scenario YAML.
func ParseScenario(data []byte) (*Scenario, error) {
	// Strict fields catch typos like "match:" vs "matches:"
	var scenario Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := validateScenario(&scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}

	return &scenario, nil
}

// validateScenario checks that required fields are present and consistent.
// Player names are normalised the way the store saves them, so scenarios
// and results compare equal.
func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}
	if s.Description == "" {
		return fmt.Errorf("description is required")
	}
	if _, err := pairing.ParseStrategy(s.Strategy); err != nil {
		return err
	}
	if s.MaxSteps < 0 {
		return fmt.Errorf("max_steps must be non-negative")
	}

	known := make(map[string]bool, len(s.Players))
	for i := range s.Players {
		s.Players[i] = store.NormalizeName(s.Players[i])
		name := s.Players[i]
		if name == "" {
			return fmt.Errorf("players[%d]: name is required", i)
		}
		if known[name] {
			return fmt.Errorf("players[%d]: duplicate name %q", i, name)
		}
		known[name] = true
	}

	for i := range s.Matches {
		m := &s.Matches[i]
		m.Winner = store.NormalizeName(m.Winner)
		m.Loser = store.NormalizeName(m.Loser)
		if !known[m.Winner] {
			return fmt.Errorf("matches[%d]: unknown winner %q", i, m.Winner)
		}
		if !known[m.Loser] {
			return fmt.Errorf("matches[%d]: unknown loser %q", i, m.Loser)
		}
		if m.Winner == m.Loser {
			return fmt.Errorf("matches[%d]: %q cannot play themselves", i, m.Winner)
		}
	}

	hasPairings := len(s.Expect.Pairings) > 0
	hasError := s.Expect.Error != ""
	if hasPairings == hasError {
		return fmt.Errorf("expect: exactly one of pairings or error is required")
	}
	if hasError {
		switch pairing.ErrorCode(s.Expect.Error) {
		case pairing.ErrCodeInvalidInput, pairing.ErrCodeNoValidPairing:
		default:
			return fmt.Errorf("expect.error: unknown error code %q", s.Expect.Error)
		}
	}
	for i, pair := range s.Expect.Pairings {
		if len(pair) != 2 {
			return fmt.Errorf("expect.pairings[%d]: want 2 players, got %d", i, len(pair))
		}
		for j := range pair {
			pair[j] = store.NormalizeName(pair[j])
			name := pair[j]
			if !known[name] {
				return fmt.Errorf("expect.pairings[%d]: unknown player %q", i, name)
			}
		}
	}

	return nil
}
