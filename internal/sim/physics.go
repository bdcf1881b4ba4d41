package sim

import (
	"beatdash/internal/config"
	"beatdash/internal/core"
	"beatdash/internal/level"
)

// landingTolerance is how far the player's bottom may sink past a platform
// top and still count as standing on it rather than hitting its face.
const landingTolerance = 2.0

// PlayerState is the single simulated body: vertical position and
// velocity, grounded flag, and the pending buffered jump request.
type PlayerState struct {
	Y        float64 // top edge, world units, y grows downward
	VY       float64 // world units per tick, positive = falling
	Grounded bool

	jumpRequestedAt float64
	hasJumpRequest  bool
}

// World advances the player against the obstacle course. It owns the
// level, trimming obstacles as they scroll off-screen, and enters a
// frozen game-over state on a fatal collision.
type World struct {
	cfg     config.Config
	lvl     level.Level
	groundY float64

	player   PlayerState
	gameOver bool
	jumps    int
}

// NewWorld creates a world with the player resting on the baseline ground.
func NewWorld(cfg config.Config, lvl level.Level, groundY float64) *World {
	return &World{
		cfg:     cfg,
		lvl:     lvl,
		groundY: groundY,
		player: PlayerState{
			Y:        groundY - cfg.Player.Height,
			Grounded: true,
		},
	}
}

// RequestJump records a jump input at the given song time. The request
// fires immediately if the player is grounded on the next step; otherwise
// it stays buffered until the jump-buffer window expires, so a slightly
// early press still registers on landing.
func (w *World) RequestJump(songTime float64) {
	if w.gameOver {
		return
	}
	w.player.jumpRequestedAt = songTime
	w.player.hasJumpRequest = true
}

// Step advances the world by one frame at the given song time. After a
// fatal collision the world freezes: obstacles stop being recomputed and
// the player stays at the moment of death until the caller decides what
// to do next.
func (w *World) Step(songTime float64) {
	if w.gameOver {
		return
	}

	speed := w.cfg.Physics.ScrollSpeed

	// Consume or expire the buffered jump before integrating, using the
	// grounded state the player landed in last frame.
	if w.player.hasJumpRequest {
		if songTime-w.player.jumpRequestedAt > w.cfg.Timing.JumpBuffer {
			w.player.hasJumpRequest = false
		} else if w.player.Grounded {
			w.player.VY = w.cfg.Physics.JumpImpulse
			w.player.Grounded = false
			w.player.hasJumpRequest = false
			w.jumps++
		}
	}

	// Explicit Euler, once per rendered frame.
	prevBottom := w.player.Y + w.cfg.Player.Height
	w.player.VY += w.cfg.Physics.Gravity
	w.player.Y += w.player.VY
	newBottom := w.player.Y + w.cfg.Player.Height

	// Obstacles fully past the left edge are gone for good.
	w.lvl.TrimBefore(songTime, speed, -w.cfg.Timing.OffscreenPad)

	// Platform tops catch a falling player whose bottom crossed them this
	// frame. First match wins, in obstacle order (earliest first).
	effectiveGround := w.groundY
	playerRect := w.playerRect()
	if w.player.VY >= 0 {
		for _, o := range w.lvl.Obstacles {
			if o.Kind != level.Platform {
				continue
			}
			rect := o.HitRect(songTime, speed, w.groundY)
			if prevBottom <= rect.Y && rect.Y <= newBottom &&
				playerRect.Right() > rect.X && playerRect.X < rect.Right() {
				w.player.Y = rect.Y - w.cfg.Player.Height
				w.player.VY = 0
				effectiveGround = rect.Y
				break
			}
		}
	}

	// Baseline ground (or the platform top that caught us).
	if w.player.Y+w.cfg.Player.Height >= effectiveGround {
		w.player.Y = effectiveGround - w.cfg.Player.Height
		w.player.VY = 0
		w.player.Grounded = true
	} else {
		w.player.Grounded = false
	}

	// Collision resolution. Spike overlap is always fatal; platform
	// overlap is fatal unless the player is cleanly on top.
	playerRect = w.playerRect()
	for _, o := range w.lvl.Obstacles {
		rect := o.HitRect(songTime, speed, w.groundY)
		if !playerRect.Intersects(rect) {
			continue
		}
		if o.Kind == level.Platform {
			if playerRect.Bottom() <= rect.Y+landingTolerance {
				continue // standing safely on top
			}
		}
		w.gameOver = true
		return
	}
}

// playerRect returns the player's bounding box at its fixed horizontal
// position.
func (w *World) playerRect() core.Rect {
	return core.NewRect(level.SpawnOffset, w.player.Y, w.cfg.Player.Width, w.cfg.Player.Height)
}

// PlayerRect returns the player's current bounding box.
func (w *World) PlayerRect() core.Rect { return w.playerRect() }

// Player returns a copy of the current player state.
func (w *World) Player() PlayerState { return w.player }

// Obstacles returns the obstacles still in play.
func (w *World) Obstacles() []level.Obstacle { return w.lvl.Obstacles }

// GroundY returns the baseline ground height in world units.
func (w *World) GroundY() float64 { return w.groundY }

// GameOver reports whether a fatal collision has happened.
func (w *World) GameOver() bool { return w.gameOver }

// Jumps returns the number of jumps fired this run.
func (w *World) Jumps() int { return w.jumps }
