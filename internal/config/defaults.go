package config

import (
	_ "embed"
)

//go:embed defaults/beatdash.yaml
var defaultYAML []byte

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Physics: Physics{
			Gravity:     0.38,
			JumpImpulse: -11,
			ScrollSpeed: 330,
		},
		Timing: Timing{
			LeadTime:     0.25,
			JumpBuffer:   0.5,
			PrerollBeats: 4,
			PrerollFixed: 2.0,
			OffscreenPad: 140,
		},
		Player: Player{
			Width:  50,
			Height: 50,
		},
		Visuals: Visuals{
			BarCount:          24,
			RandomizeInterval: 0.5,
			MorphDuration:     0.5,
			MinFactor:         0.15,
			MaxFactor:         1.0,
			MaxHeight:         260,
		},
	}
}
