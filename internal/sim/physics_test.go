package sim

import (
	"testing"

	"beatdash/internal/config"
	"beatdash/internal/level"
)

const testGroundY = 480.0

func newTestWorld(obstacles ...level.Obstacle) *World {
	return NewWorld(config.Default(), level.Level{Obstacles: obstacles}, testGroundY)
}

// settle runs steps at a fixed song time until the player touches down
// again. Fails the test if the arc never ends.
func settle(t *testing.T, w *World, songTime float64) {
	t.Helper()
	for i := 0; i < 500; i++ {
		w.Step(songTime)
		if w.Player().Grounded {
			return
		}
	}
	t.Fatalf("player never landed")
}

func TestJumpFiresWhenGrounded(t *testing.T) {
	w := newTestWorld()

	w.RequestJump(0)
	w.Step(0)

	p := w.Player()
	if p.Grounded {
		t.Errorf("player still grounded after jump")
	}
	if p.VY >= 0 {
		t.Errorf("VY = %v, want upward (negative)", p.VY)
	}
	if w.Jumps() != 1 {
		t.Errorf("Jumps() = %d, want 1", w.Jumps())
	}
}

func TestJumpBufferFiresOnLanding(t *testing.T) {
	w := newTestWorld()

	w.RequestJump(0)
	w.Step(0)
	if w.Player().Grounded {
		t.Fatalf("player should be airborne")
	}

	// Pressed again mid-air, well inside the buffer window.
	w.RequestJump(0.2)
	settle(t, w, 0.2)

	// The buffered press fires on the first grounded step.
	w.Step(0.2)
	if w.Jumps() != 2 {
		t.Errorf("Jumps() = %d, want 2", w.Jumps())
	}
	if w.Player().Grounded {
		t.Errorf("player should be airborne after the buffered jump fired")
	}
}

func TestJumpBufferExpires(t *testing.T) {
	w := newTestWorld()

	w.RequestJump(0)
	w.Step(0)

	w.RequestJump(0.1)
	// More than the buffer window passes before the next step.
	w.Step(0.7)
	settle(t, w, 0.7)

	w.Step(0.7)
	if w.Jumps() != 1 {
		t.Errorf("Jumps() = %d, want 1 (stale press must be discarded)", w.Jumps())
	}
	if !w.Player().Grounded {
		t.Errorf("player should stay grounded after a discarded press")
	}
}

func TestGroundSpikeFatal(t *testing.T) {
	w := newTestWorld(level.Obstacle{Kind: level.SpikeGround, CollisionTime: 0})

	// At its collision time the spike sits exactly at the player column.
	w.Step(0)
	if !w.GameOver() {
		t.Fatalf("expected fatal collision with ground spike")
	}
}

func TestOverheadSpikeSafeWhenGrounded(t *testing.T) {
	w := newTestWorld(level.Obstacle{Kind: level.SpikeOverhead, CollisionTime: 0})

	w.Step(0)
	if w.GameOver() {
		t.Fatalf("grounded player must pass under an overhead spike")
	}
}

func TestPlatformLanding(t *testing.T) {
	ct := 5.0
	w := newTestWorld(level.Obstacle{Kind: level.Platform, CollisionTime: ct})

	// Jump while the platform is still off to the right, then hold song
	// time at the collision time so the platform is parked under the
	// player for the descent.
	w.RequestJump(ct - 1)
	w.Step(ct - 1)
	for i := 0; i < 500 && w.Player().VY < 0; i++ {
		w.Step(ct - 1)
	}
	settle(t, w, ct)

	if w.GameOver() {
		t.Fatalf("landing on a platform top must not be fatal")
	}
	p := w.Player()
	wantY := testGroundY - level.PlatformHeight - config.Default().Player.Height
	if p.Y != wantY {
		t.Errorf("player Y = %v, want %v (snapped to platform top)", p.Y, wantY)
	}
	if p.VY != 0 {
		t.Errorf("VY = %v, want 0 after landing", p.VY)
	}
}

func TestPlatformFaceFatal(t *testing.T) {
	w := newTestWorld(level.Obstacle{Kind: level.Platform, CollisionTime: 0})

	// Grounded player runs into the platform side instead of landing on it.
	w.Step(0)
	if !w.GameOver() {
		t.Fatalf("expected fatal collision with platform face")
	}
}

func TestGameOverFreezesWorld(t *testing.T) {
	w := newTestWorld(level.Obstacle{Kind: level.SpikeGround, CollisionTime: 0})

	w.Step(0)
	if !w.GameOver() {
		t.Fatalf("setup: expected game over")
	}

	before := w.Player()
	jumps := w.Jumps()

	w.RequestJump(1)
	w.Step(1)
	w.Step(2)

	if w.Player() != before {
		t.Errorf("player state changed after game over: %+v -> %+v", before, w.Player())
	}
	if w.Jumps() != jumps {
		t.Errorf("jump count changed after game over")
	}
}

func TestObstaclesTrimmedOffscreen(t *testing.T) {
	w := newTestWorld(
		level.Obstacle{Kind: level.SpikeGround, CollisionTime: 0},
		level.Obstacle{Kind: level.SpikeGround, CollisionTime: 100},
	)

	// Long after the first spike scrolled past the left edge.
	w.Step(50)
	if got := len(w.Obstacles()); got != 1 {
		t.Errorf("obstacles in play = %d, want 1", got)
	}
}
