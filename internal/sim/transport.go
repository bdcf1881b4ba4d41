// Package sim contains the beat-synchronized simulation engine: the dual
// clock synchronizer, the physics and collision state machine, the
// audio-reactive bar driver, and the per-run session that orchestrates
// them once per tick.
package sim

// Transport is the audio playback surface the simulation depends on.
// The engine treats it as a black-box clock source: it never assumes
// sample-accurate timing and re-derives its own song time reference on
// every pause and resume to absorb whatever drift or latency the device
// introduces.
type Transport interface {
	Play() error
	Pause()
	Resume()
	Stop()
	IsPlaying() bool
	Elapsed() float64
}
