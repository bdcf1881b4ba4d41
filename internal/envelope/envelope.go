// Package envelope provides the loudness envelope sampled every frame to
// drive the audio-reactive visualizer.
package envelope

import "sort"

// Curve is a time series of normalized loudness samples produced by the
// analyzer. Times are strictly increasing seconds; Values are in [0, 1].
// A Curve is immutable once built.
type Curve struct {
	Times  []float64
	Values []float64
}

// Valid reports whether the curve has matching, non-empty sample arrays.
func (c Curve) Valid() bool {
	return len(c.Times) > 0 && len(c.Times) == len(c.Values)
}

// Sample returns the interpolated loudness at time t.
//
// Queries before the first sample return the first value; queries after the
// last sample return the last value; in between, the bracketing pair is
// located by binary search and blended linearly. A malformed or empty curve
// samples as a constant 0 rather than failing, so callers can invoke this
// every frame unconditionally.
func (c Curve) Sample(t float64) float64 {
	if !c.Valid() {
		return 0
	}

	n := len(c.Times)
	if t <= c.Times[0] {
		return c.Values[0]
	}
	if t >= c.Times[n-1] {
		return c.Values[n-1]
	}

	// Index of the first sample time > t; the bracket is [hi-1, hi].
	hi := sort.SearchFloat64s(c.Times, t)
	if c.Times[hi] == t {
		return c.Values[hi]
	}
	lo := hi - 1

	span := c.Times[hi] - c.Times[lo]
	if span <= 0 {
		// Degenerate bracket: equal timestamps, take the later value.
		return c.Values[hi]
	}
	frac := (t - c.Times[lo]) / span
	return c.Values[lo] + (c.Values[hi]-c.Values[lo])*frac
}
