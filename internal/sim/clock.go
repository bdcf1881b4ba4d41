package sim

import (
	"time"

	"beatdash/internal/core"
)

// Synchronizer reconciles the render-loop clock with the audio device
// clock and produces the single authoritative song time every component
// reads. Song time is negative during the pre-roll, hits zero the instant
// audio playback starts, and freezes across pause/resume with no
// discontinuity.
type Synchronizer struct {
	clock      core.Clock
	transport  Transport
	startDelay float64

	renderRef    time.Time // run start on the render clock
	audioRef     time.Time // render-clock instant playback began
	audioStarted bool

	paused        bool
	pausedElapsed float64 // song time captured at pause

	last float64 // most recent song time handed out
}

// StartDelay computes the pre-roll before audio starts: a small number of
// beat periods when the tempo is known, a fixed fallback otherwise.
func StartDelay(tempoBPM, prerollBeats, fallback float64) float64 {
	if tempoBPM <= 0 {
		return fallback
	}
	return prerollBeats * 60.0 / tempoBPM
}

// NewSynchronizer starts a run's clock. The render reference is taken
// immediately; audio stays silent until the start delay elapses.
func NewSynchronizer(clock core.Clock, transport Transport, startDelay float64) *Synchronizer {
	s := &Synchronizer{
		clock:      clock,
		transport:  transport,
		startDelay: startDelay,
	}
	s.renderRef = clock.Now()
	s.last = -startDelay
	return s
}

// SongTime advances the synchronizer one frame and returns the current
// song time. Crossing the end of the pre-roll commands the transport to
// start playing; a transport failure is returned to the caller and the
// run cannot proceed.
func (s *Synchronizer) SongTime() (float64, error) {
	if s.paused {
		return s.pausedElapsed, nil
	}

	now := s.clock.Now()

	if !s.audioStarted {
		gameElapsed := now.Sub(s.renderRef).Seconds()
		if gameElapsed < s.startDelay {
			s.last = gameElapsed - s.startDelay
			return s.last, nil
		}
		if err := s.transport.Play(); err != nil {
			return s.last, err
		}
		s.audioStarted = true
		s.audioRef = now
	}

	s.last = now.Sub(s.audioRef).Seconds()
	return s.last, nil
}

// Pause freezes song time at its current value and suspends the transport.
func (s *Synchronizer) Pause() {
	if s.paused {
		return
	}
	s.pausedElapsed = s.last
	s.paused = true
	if s.audioStarted {
		s.transport.Pause()
	}
}

// Resume rebases the audio reference so the next frame computes exactly
// the frozen song time, then lets the transport continue. The rebase
// absorbs however long the pause lasted in the real world.
func (s *Synchronizer) Resume() {
	if !s.paused {
		return
	}
	now := s.clock.Now()
	if s.audioStarted {
		s.audioRef = now.Add(-secondsToDuration(s.pausedElapsed))
		s.transport.Resume()
	} else {
		// Paused during pre-roll: continue the countdown where it stopped.
		s.renderRef = now.Add(-secondsToDuration(s.pausedElapsed + s.startDelay))
	}
	s.paused = false
}

// Paused reports whether song time is currently frozen.
func (s *Synchronizer) Paused() bool { return s.paused }

// AudioStarted reports whether the pre-roll has elapsed and playback began.
func (s *Synchronizer) AudioStarted() bool { return s.audioStarted }

// TrackFinished reports that the audio device ran out of track. Only
// meaningful after playback started and while not paused.
func (s *Synchronizer) TrackFinished() bool {
	return s.audioStarted && !s.paused && !s.transport.IsPlaying()
}

func secondsToDuration(sec float64) time.Duration {
	return time.Duration(sec * float64(time.Second))
}
