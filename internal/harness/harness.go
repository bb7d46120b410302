package harness

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/roach88/swiss/internal/pairing"
	"github.com/roach88/swiss/internal/store"
	"github.com/roach88/swiss/internal/testutil"
	"github.com/roach88/swiss/internal/tournament"
)

// scenarioEpoch is where every scenario's clock starts.
var scenarioEpoch = time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC)

// Run executes a scenario and returns the result.
//
// Each scenario runs in a fresh in-memory database for isolation.
// A pairing error is recorded in the result; a storage error aborts the
// run and is returned.
func Run(ctx context.Context, scenario *Scenario) (*Result, error) {
	st, err := store.Open(store.MemoryPath)
	if err != nil {
		return nil, fmt.Errorf("failed to create in-memory store: %w", err)
	}
	defer st.Close()
	st.SetClock(testutil.NewStepClock(scenarioEpoch, time.Minute).Now)

	ids := make(map[string]int64, len(scenario.Players))
	for _, name := range scenario.Players {
		p, err := st.RegisterPlayer(ctx, name)
		if err != nil {
			return nil, fmt.Errorf("register %q: %w", name, err)
		}
		ids[name] = p.ID
	}

	for i, m := range scenario.Matches {
		if _, err := st.ReportMatch(ctx, ids[m.Winner], ids[m.Loser], time.Time{}); err != nil {
			return nil, fmt.Errorf("matches[%d]: %w", i, err)
		}
	}

	strategy, err := pairing.ParseStrategy(scenario.Strategy)
	if err != nil {
		return nil, err
	}
	opts := pairing.Options{Strategy: strategy, MaxSteps: scenario.MaxSteps}

	result := NewResult(scenario.Name)
	if result.Standings, err = st.Standings(ctx); err != nil {
		return nil, err
	}

	// Suppress logs in scenario runs
	svc := tournament.NewService(st, opts, slog.New(slog.NewTextHandler(io.Discard, nil)))
	pairings, err := svc.SwissPairings(ctx)
	if err != nil {
		var pe *pairing.PairingError
		if !errors.As(err, &pe) {
			return nil, err
		}
		result.ErrorCode = string(pe.Code)
	} else {
		result.Pairings = pairings
	}

	checkExpectations(scenario, result)
	return result, nil
}

// RunAll executes scenarios concurrently, at most jobs at a time.
// Results keep the order of scenarios. The first execution error cancels
// the remaining runs.
func RunAll(ctx context.Context, scenarios []*Scenario, jobs int) ([]*Result, error) {
	if jobs < 1 {
		jobs = 1
	}
	results := make([]*Result, len(scenarios))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(jobs)
	for i, sc := range scenarios {
		i, sc := i, sc
		g.Go(func() error {
			res, err := Run(ctx, sc)
			if err != nil {
				return fmt.Errorf("scenario %s: %w", sc.Name, err)
			}
			results[i] = res
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// checkExpectations compares the engine output with scenario.Expect.
func checkExpectations(scenario *Scenario, result *Result) {
	want := scenario.Expect

	if want.Error != "" {
		if result.ErrorCode != want.Error {
			got := result.ErrorCode
			if got == "" {
				got = "no error"
			}
			result.AddError(fmt.Sprintf("expected error %s, got %s", want.Error, got))
		}
		return
	}

	if result.ErrorCode != "" {
		result.AddError(fmt.Sprintf("unexpected error %s", result.ErrorCode))
		return
	}

	got := result.PairingNames()
	if len(got) != len(want.Pairings) {
		result.AddError(fmt.Sprintf("expected %d boards, got %d", len(want.Pairings), len(got)))
	}
	for i := 0; i < len(got) && i < len(want.Pairings); i++ {
		w := want.Pairings[i]
		if got[i][0] != w[0] || got[i][1] != w[1] {
			result.AddError(fmt.Sprintf("board %d: expected %s vs %s, got %s vs %s",
				i+1, w[0], w[1], got[i][0], got[i][1]))
		}
	}
}
