// Package config provides YAML-based configuration loading for the game.
package config

// Config contains all tunable parameters for a run.
type Config struct {
	Physics Physics `yaml:"physics"`
	Timing  Timing  `yaml:"timing"`
	Player  Player  `yaml:"player"`
	Visuals Visuals `yaml:"visuals"`
}

// Physics defines the per-tick integration constants. The values are the
// classic pixel-scale constants of the game tuned for a 120 Hz tick.
type Physics struct {
	Gravity     float64 `yaml:"gravity"`      // world units per tick^2
	JumpImpulse float64 `yaml:"jump_impulse"` // world units per tick, negative = up
	ScrollSpeed float64 `yaml:"scroll_speed"` // world units per second
}

// Timing defines the beat-to-obstacle timing rules.
type Timing struct {
	LeadTime     float64 `yaml:"lead_time"`      // beat -> collision offset, seconds
	JumpBuffer   float64 `yaml:"jump_buffer"`    // early-press forgiveness window, seconds
	PrerollBeats float64 `yaml:"preroll_beats"`  // pre-roll length in beat periods
	PrerollFixed float64 `yaml:"preroll_fixed"`  // fallback pre-roll when tempo is unknown, seconds
	OffscreenPad float64 `yaml:"offscreen_left"` // world units past the left edge before trimming
}

// Player defines the player body dimensions in world units.
type Player struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// Visuals defines the audio-reactive bar bank.
type Visuals struct {
	BarCount          int     `yaml:"bar_count"`
	RandomizeInterval float64 `yaml:"randomize_interval"` // seconds of song time per target reroll
	MorphDuration     float64 `yaml:"morph_duration"`     // seconds to blend start -> target
	MinFactor         float64 `yaml:"min_factor"`         // random target factor range
	MaxFactor         float64 `yaml:"max_factor"`
	MaxHeight         float64 `yaml:"max_height"` // tallest bar in world units
}
