package core

import "time"

// Clock is the wall-clock source for the simulation. The synchronizer and
// the physics engine never read time.Now directly so that tests can drive
// them with simulated time.
type Clock interface {
	Now() time.Time
}

// SystemClock reads the real wall clock.
type SystemClock struct{}

// Now returns the current time.
func (SystemClock) Now() time.Time { return time.Now() }

// ManualClock is a settable clock for deterministic tests.
type ManualClock struct {
	t time.Time
}

// NewManualClock creates a manual clock starting at the given instant.
func NewManualClock(start time.Time) *ManualClock {
	return &ManualClock{t: start}
}

// Now returns the clock's current instant.
func (c *ManualClock) Now() time.Time { return c.t }

// Advance moves the clock forward by d.
func (c *ManualClock) Advance(d time.Duration) { c.t = c.t.Add(d) }

// Set jumps the clock to the given instant.
func (c *ManualClock) Set(t time.Time) { c.t = t }
