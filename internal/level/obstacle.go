// Package level builds the obstacle course for a run from the beat
// timestamps detected in a track. Level construction is deterministic:
// the same jump beats always produce the same course.
package level

import "beatdash/internal/core"

// World-unit geometry, matching the classic pixel scale of the game.
const (
	SpawnOffset = 250.0 // player's fixed horizontal position

	SpikeWidth  = 45.0
	SpikeHeight = 50.0

	PlatformWidth  = 120.0
	PlatformHeight = 60.0 // one body height, flush with the ground

	// Overhead spikes hang one body height above the baseline so the
	// player passes underneath while grounded.
	OverheadClearance = 60.0
)

// Kind discriminates the closed set of obstacle variants.
type Kind int

const (
	SpikeGround   Kind = iota // rises from the floor, jump over it
	SpikeOverhead             // hangs above the path, stay under it
	Platform                  // land on top or die on its face
)

// String returns a human-readable name for the obstacle kind.
func (k Kind) String() string {
	switch k {
	case SpikeGround:
		return "ground spike"
	case SpikeOverhead:
		return "overhead spike"
	case Platform:
		return "platform"
	default:
		return "unknown"
	}
}

// Obstacle is a single course element. CollisionTime is the song time at
// which the obstacle crosses the player's fixed horizontal position; that
// instant is exactly when it must be jumped over, passed under, or landed on.
type Obstacle struct {
	Kind          Kind
	CollisionTime float64
}

// X returns the obstacle's left edge at song time now, scrolling right to
// left at the given speed (world units per second). X equals SpawnOffset
// exactly when now == CollisionTime.
func (o Obstacle) X(now, speed float64) float64 {
	return (o.CollisionTime-now)*speed + SpawnOffset
}

// HitRect returns the obstacle's collision rectangle at song time now,
// with groundY as the baseline the world stands on.
func (o Obstacle) HitRect(now, speed, groundY float64) core.Rect {
	x := o.X(now, speed)
	switch o.Kind {
	case SpikeGround:
		return core.NewRect(x, groundY-SpikeHeight, SpikeWidth, SpikeHeight)
	case SpikeOverhead:
		bottom := groundY - OverheadClearance
		return core.NewRect(x, bottom-SpikeHeight, SpikeWidth, SpikeHeight)
	case Platform:
		return core.NewRect(x, groundY-PlatformHeight, PlatformWidth, PlatformHeight)
	default:
		return core.Rect{}
	}
}

// Width returns the obstacle's horizontal extent in world units.
func (o Obstacle) Width() float64 {
	if o.Kind == Platform {
		return PlatformWidth
	}
	return SpikeWidth
}
