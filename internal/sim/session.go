package sim

import (
	"beatdash/internal/config"
	"beatdash/internal/core"
	"beatdash/internal/envelope"
	"beatdash/internal/level"
)

// World-unit viewport. The presentation layer maps this onto however many
// terminal cells it has; the simulation never sees screen coordinates.
const (
	WorldWidth  = 1280.0
	WorldHeight = 600.0
	GroundY     = 480.0
)

// Outcome is how a run ended.
type Outcome int

const (
	OutcomeNone             Outcome = iota
	OutcomeQuit                     // user closed the application
	OutcomeAbandoned                // user went back to the menu
	OutcomeChangeDifficulty         // died, wants a different tier
	OutcomeRestart                  // died, wants the same level again
	OutcomeCompleted                // the track played to the end
	OutcomeAudioFailed              // the transport refused to start
)

// String returns the storage/display name of the outcome.
func (o Outcome) String() string {
	switch o {
	case OutcomeQuit:
		return "quit"
	case OutcomeAbandoned:
		return "abandoned"
	case OutcomeChangeDifficulty:
		return "change-difficulty"
	case OutcomeRestart:
		return "restart"
	case OutcomeCompleted:
		return "completed"
	case OutcomeAudioFailed:
		return "audio-failed"
	default:
		return "none"
	}
}

// Result is what a finished run reports back to the caller. The session
// only computes these values; persisting them is the caller's business.
type Result struct {
	Outcome           Outcome
	CompletionPercent float64
	Jumps             int
}

// Session drives one run: it advances the clock synchronizer, the physics
// world, and the bar driver once per tick, and turns user actions into a
// final Result. A Session is single-owner state, created for a run and
// discarded when it ends.
type Session struct {
	cfg   config.Config
	sync  *Synchronizer
	world *World
	bars  *Bars

	duration   float64
	songTime   float64
	completion float64

	outcome Outcome
	done    bool
}

// NewSession prepares a run over an already-built level. The pre-roll is
// derived from the track tempo, falling back to a fixed delay when the
// analyzer could not estimate one.
func NewSession(cfg config.Config, rt core.RuntimeConfig, clock core.Clock, transport Transport,
	lvl level.Level, env envelope.Curve, duration, tempoBPM float64) *Session {

	delay := StartDelay(tempoBPM, cfg.Timing.PrerollBeats, cfg.Timing.PrerollFixed)
	s := &Session{
		cfg:      cfg,
		sync:     NewSynchronizer(clock, transport, delay),
		world:    NewWorld(cfg, lvl, GroundY),
		bars:     NewBars(cfg.Visuals, env, rt.Seed),
		duration: duration,
		songTime: -delay,
	}
	return s
}

// Tick advances the session by one frame, applying this frame's input.
// It returns true while the run is still going; once it returns false the
// Result is final.
func (s *Session) Tick(in core.InputFrame) bool {
	if s.done {
		return false
	}

	// Cooperative cancellation and end-of-run decisions, checked once per
	// tick before anything else moves.
	switch {
	case in.Has(core.ActionQuit):
		return s.finish(OutcomeQuit)
	case in.Has(core.ActionBack):
		return s.finish(OutcomeAbandoned)
	case s.world.GameOver() && in.Has(core.ActionRestart):
		return s.finish(OutcomeRestart)
	case s.world.GameOver() && in.Has(core.ActionChangeDiff):
		return s.finish(OutcomeChangeDifficulty)
	}

	if in.Has(core.ActionPause) && !s.world.GameOver() {
		if s.sync.Paused() {
			s.sync.Resume()
		} else {
			s.sync.Pause()
		}
	}

	st, err := s.sync.SongTime()
	if err != nil {
		s.finish(OutcomeAudioFailed)
		return false
	}
	s.songTime = st

	if in.Has(core.ActionJump) && !s.sync.Paused() {
		s.world.RequestJump(st)
	}

	if !s.sync.Paused() {
		s.world.Step(st)
		s.bars.Update(st)
	}

	if s.duration > 0 {
		s.completion = core.ClampF(st/s.duration, 0, 1) * 100
	}

	// The track running out ends the run, unless the player already died
	// and is sitting on the game-over screen.
	if !s.world.GameOver() && s.sync.TrackFinished() {
		s.completion = 100
		return s.finish(OutcomeCompleted)
	}

	return true
}

func (s *Session) finish(o Outcome) bool {
	s.outcome = o
	s.done = true
	return false
}

// Result returns the run's outcome with the last computed completion
// percentage and the jump count.
func (s *Session) Result() Result {
	return Result{
		Outcome:           s.outcome,
		CompletionPercent: s.completion,
		Jumps:             s.world.Jumps(),
	}
}

// SongTime returns the current authoritative song time.
func (s *Session) SongTime() float64 { return s.songTime }

// Completion returns the current completion percentage.
func (s *Session) Completion() float64 { return s.completion }

// Paused reports whether the run is paused.
func (s *Session) Paused() bool { return s.sync.Paused() }

// GameOver reports whether the player has died this run.
func (s *Session) GameOver() bool { return s.world.GameOver() }

// World exposes the physics state for rendering.
func (s *Session) World() *World { return s.world }

// BarHeights returns the visualizer bar heights for the current frame.
func (s *Session) BarHeights() []float64 { return s.bars.Heights(s.songTime) }

// ScrollSpeed returns the world scroll speed in units per second.
func (s *Session) ScrollSpeed() float64 { return s.cfg.Physics.ScrollSpeed }
