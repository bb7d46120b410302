// Package testutil holds helpers for reproducible tournament runs.
package testutil

import (
	"sync"
	"time"
)

// StepClock is a wall clock that advances by a fixed step on every read.
//
// A store driven by a StepClock stamps players and matches with the same
// times on every run, so scenario replays are reproducible.
//
// Safe for concurrent use.
type StepClock struct {
	mu    sync.Mutex
	start time.Time
	step  time.Duration
	reads int64
}

// NewStepClock creates a clock whose first Now() returns start.
func NewStepClock(start time.Time, step time.Duration) *StepClock {
	return &StepClock{start: start.UTC(), step: step}
}

// Now returns the current time and advances the clock by one step.
func (c *StepClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	t := c.start.Add(time.Duration(c.reads) * c.step)
	c.reads++
	return t
}
