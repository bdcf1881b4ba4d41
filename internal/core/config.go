package core

// RuntimeConfig contains configuration passed to the simulation and the
// presentation layer at startup.
type RuntimeConfig struct {
	ScreenW  int   // Screen width in characters
	ScreenH  int   // Screen height in characters
	TickRate int   // Simulation ticks per second (default 120)
	Seed     int64 // RNG seed for the visualizer bars (0 = use current time)
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 120,
		Seed:     0,
	}
}
