// Package harness replays tournament scenarios and checks the pairings the
// engine produces for the next round.
//
// # Scenario Format
//
// Scenarios are YAML files:
//
//	name: bottom_pair_rematch
//	description: "The last two players already met"
//	strategy: backtrack        # optional, greedy by default
//	max_steps: 1000            # optional
//	players: [A, B, C, D, E, F]
//	matches:
//	  - { winner: A, loser: B }
//	  - { winner: E, loser: F }
//	expect:
//	  pairings:
//	    - [A, C]
//	    - [B, E]
//	    - [D, F]
//
// Players are registered in the listed order and referenced by name, so
// names must be unique within a scenario. Names are compared after the same
// whitespace and NFC normalisation the store applies. Instead of pairings,
// expect may name an error code (INVALID_INPUT or NO_VALID_PAIRING).
//
// Each scenario runs against its own in-memory store. Results can be
// compared to golden files under testdata/golden with AssertGolden.
package harness
