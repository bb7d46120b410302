package pairing

import (
	"fmt"
	"sort"
	"strconv"
)

// Strategy selects how the engine handles a player who runs out of
// candidates.
type Strategy string

const (
	// StrategyGreedy walks the standings once and fails on a stranded player.
	StrategyGreedy Strategy = "greedy"

	// StrategyBacktrack revisits earlier choices before giving up.
	StrategyBacktrack Strategy = "backtrack"
)

// DefaultMaxSteps bounds the candidate attempts of the backtracking search.
const DefaultMaxSteps = 100000

// Strategies lists the accepted strategy names.
var Strategies = []Strategy{StrategyGreedy, StrategyBacktrack}

// ParseStrategy converts a strategy name to a Strategy.
// The empty string selects StrategyGreedy.
func ParseStrategy(s string) (Strategy, error) {
	if s == "" {
		return StrategyGreedy, nil
	}
	for _, st := range Strategies {
		if string(st) == s {
			return st, nil
		}
	}
	return "", fmt.Errorf("unknown pairing strategy %q: must be one of %v", s, Strategies)
}

// Options tunes a pairing computation. The zero value is the greedy engine.
type Options struct {
	Strategy Strategy

	// MaxSteps caps backtracking candidate attempts. Zero means DefaultMaxSteps.
	MaxSteps int
}

func (o Options) strategy() Strategy {
	if o.Strategy == "" {
		return StrategyGreedy
	}
	return o.Strategy
}

func (o Options) maxSteps() int {
	if o.MaxSteps <= 0 {
		return DefaultMaxSteps
	}
	return o.MaxSteps
}

// Compute returns next-round pairings using the greedy strategy.
//
// standings must hold an even number of distinct players sorted by
// descending wins. Pairings are returned in the order they were formed.
// No returned pair has met before according to opponents.
func Compute(standings []StandingsEntry, opponents Opponents) ([]Pairing, error) {
	return ComputeWithOptions(standings, opponents, Options{})
}

// ComputeWithOptions is Compute with an explicit strategy.
// On error the returned slice is always nil.
func ComputeWithOptions(standings []StandingsEntry, opponents Opponents, opts Options) ([]Pairing, error) {
	if err := validate(standings, opponents); err != nil {
		return nil, err
	}

	switch opts.strategy() {
	case StrategyGreedy:
		return greedy(standings, opponents)
	case StrategyBacktrack:
		return backtrack(standings, opponents, opts.maxSteps())
	default:
		return nil, invalidInput(0, "unknown pairing strategy %q", opts.Strategy)
	}
}

// validate checks the engine's preconditions on its two inputs.
func validate(standings []StandingsEntry, opponents Opponents) error {
	if len(standings)%2 != 0 {
		return invalidInput(0, "standings has %d players, an even count is required", len(standings))
	}

	known := make(map[PlayerID]struct{}, len(standings))
	for i, e := range standings {
		if _, dup := known[e.PlayerID]; dup {
			return invalidInput(e.PlayerID, "player appears more than once in standings")
		}
		known[e.PlayerID] = struct{}{}
		if i > 0 && e.Wins > standings[i-1].Wins {
			return invalidInput(e.PlayerID, "standings not sorted by descending wins at position %d", i+1)
		}
	}

	// Sorted so the reported player does not depend on map order.
	ids := make([]PlayerID, 0, len(opponents))
	for id := range opponents {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	for _, id := range ids {
		if _, ok := known[id]; !ok {
			return invalidInput(id, "opponents references a player not in standings")
		}
		for _, opp := range opponents.Of(id) {
			if _, ok := known[opp]; !ok {
				return invalidInput(opp, "opponents references a player not in standings")
			}
		}
	}
	return nil
}

func pairOf(a, b StandingsEntry) Pairing {
	return Pairing{
		PlayerID1: a.PlayerID,
		Name1:     a.Name,
		PlayerID2: b.PlayerID,
		Name2:     b.Name,
	}
}

func greedy(standings []StandingsEntry, opponents Opponents) ([]Pairing, error) {
	n := len(standings)
	paired := make([]bool, n)
	pairings := make([]Pairing, 0, n/2)

	for i := 0; i < n; i++ {
		if paired[i] {
			continue
		}
		p := standings[i]
		found := false
		for j := i + 1; j < n; j++ {
			q := standings[j]
			if paired[j] || opponents.Played(p.PlayerID, q.PlayerID) {
				continue
			}
			paired[i], paired[j] = true, true
			pairings = append(pairings, pairOf(p, q))
			found = true
			break
		}
		// Candidates only come from below, so a player skipped here can
		// never be picked up later in the walk.
		if !found {
			return nil, noValidPairing(p.PlayerID, StrategyGreedy, map[string]string{
				"position": strconv.Itoa(i + 1),
			})
		}
	}
	return pairings, nil
}

// search holds the state of one backtracking run.
type search struct {
	standings []StandingsEntry
	opponents Opponents
	paired    []bool
	chosen    []int // index pairs in formation order
	steps     int
	maxSteps  int
	stranded  int // first player found with no candidate, -1 if none
}

func backtrack(standings []StandingsEntry, opponents Opponents, maxSteps int) ([]Pairing, error) {
	s := &search{
		standings: standings,
		opponents: opponents,
		paired:    make([]bool, len(standings)),
		chosen:    make([]int, 0, len(standings)),
		maxSteps:  maxSteps,
		stranded:  -1,
	}

	ok, limited := s.solve(0)
	if !ok {
		details := map[string]string{"steps": strconv.Itoa(s.steps)}
		if limited {
			details["reason"] = "search step limit reached"
			details["max_steps"] = strconv.Itoa(maxSteps)
		} else {
			details["reason"] = "no rematch-free pairing exists"
		}
		var id PlayerID
		if s.stranded >= 0 {
			id = standings[s.stranded].PlayerID
			details["position"] = strconv.Itoa(s.stranded + 1)
		}
		return nil, noValidPairing(id, StrategyBacktrack, details)
	}

	pairings := make([]Pairing, 0, len(s.chosen)/2)
	for k := 0; k < len(s.chosen); k += 2 {
		pairings = append(pairings, pairOf(standings[s.chosen[k]], standings[s.chosen[k+1]]))
	}
	return pairings, nil
}

// solve pairs the highest unpaired player at or after from, trying the
// nearest candidates first. It reports whether every player got paired.
func (s *search) solve(from int) (ok, limited bool) {
	n := len(s.standings)
	i := from
	for i < n && s.paired[i] {
		i++
	}
	if i == n {
		return true, false
	}

	p := s.standings[i]
	s.paired[i] = true
	tried := false
	for j := i + 1; j < n; j++ {
		if s.paired[j] || s.opponents.Played(p.PlayerID, s.standings[j].PlayerID) {
			continue
		}
		tried = true
		s.steps++
		if s.steps > s.maxSteps {
			return false, true
		}

		s.paired[j] = true
		s.chosen = append(s.chosen, i, j)
		if ok, limited = s.solve(i + 1); ok || limited {
			return ok, limited
		}
		s.chosen = s.chosen[:len(s.chosen)-2]
		s.paired[j] = false
	}
	s.paired[i] = false

	if !tried && s.stranded < 0 {
		s.stranded = i
	}
	return false, false
}
