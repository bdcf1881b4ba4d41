package audio

import (
	"time"

	"beatdash/internal/core"
)

// Silent is a transport that produces no sound but honors the same
// play/pause/elapsed contract, timed off an injectable clock. Used for
// --no-audio runs on machines without an audio device, and by tests that
// need a deterministic transport.
type Silent struct {
	clock    core.Clock
	duration float64

	playing   bool
	paused    bool
	startedAt time.Time
	elapsed   float64 // accumulated play time at the last pause
}

// NewSilent creates a silent transport for a track of the given length.
func NewSilent(clock core.Clock, duration float64) *Silent {
	return &Silent{clock: clock, duration: duration}
}

// Play starts (or restarts) the silent clock from zero.
func (s *Silent) Play() error {
	s.playing = true
	s.paused = false
	s.elapsed = 0
	s.startedAt = s.clock.Now()
	return nil
}

// Pause freezes the elapsed counter.
func (s *Silent) Pause() {
	if !s.playing || s.paused {
		return
	}
	s.elapsed = s.Elapsed()
	s.paused = true
}

// Resume continues from the frozen elapsed value.
func (s *Silent) Resume() {
	if !s.playing || !s.paused {
		return
	}
	s.startedAt = s.clock.Now()
	s.paused = false
}

// Stop ends playback.
func (s *Silent) Stop() {
	s.playing = false
}

// IsPlaying reports whether the silent track is still running.
func (s *Silent) IsPlaying() bool {
	return s.playing && s.Elapsed() < s.duration
}

// Elapsed returns seconds since Play, excluding paused spans.
func (s *Silent) Elapsed() float64 {
	if !s.playing {
		return 0
	}
	if s.paused {
		return s.elapsed
	}
	e := s.elapsed + s.clock.Now().Sub(s.startedAt).Seconds()
	if e > s.duration {
		return s.duration
	}
	return e
}
