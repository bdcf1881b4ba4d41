package sim

import (
	"math/rand"

	"beatdash/internal/config"
	"beatdash/internal/core"
	"beatdash/internal/envelope"
)

// Bars morphs a fixed bank of scale factors to drive the audio-reactive
// visualizer. Every randomize interval of song time the current targets
// become the new start set and fresh random targets are drawn; displayed
// heights blend linearly between the two and are scaled by the loudness
// envelope, so the bars move smoothly instead of jumping every interval.
type Bars struct {
	cfg config.Visuals
	env envelope.Curve
	rng *rand.Rand

	start      []float64
	target     []float64
	morphStart float64
	nextRoll   float64
	primed     bool
}

// NewBars creates a bar bank with a seeded RNG so runs are reproducible
// under a fixed seed.
func NewBars(cfg config.Visuals, env envelope.Curve, seed int64) *Bars {
	b := &Bars{
		cfg:    cfg,
		env:    env,
		rng:    rand.New(rand.NewSource(seed)),
		start:  make([]float64, cfg.BarCount),
		target: make([]float64, cfg.BarCount),
	}
	return b
}

// Update rolls new targets when the randomize interval has elapsed.
func (b *Bars) Update(songTime float64) {
	if !b.primed {
		b.roll()
		copy(b.start, b.target)
		b.morphStart = songTime
		b.nextRoll = songTime + b.cfg.RandomizeInterval
		b.primed = true
		return
	}
	if songTime >= b.nextRoll {
		copy(b.start, b.target)
		b.roll()
		b.morphStart = songTime
		b.nextRoll = songTime + b.cfg.RandomizeInterval
	}
}

func (b *Bars) roll() {
	span := b.cfg.MaxFactor - b.cfg.MinFactor
	for i := range b.target {
		b.target[i] = b.cfg.MinFactor + b.rng.Float64()*span
	}
}

// Heights returns the displayed bar heights in world units at the given
// song time: the morph-blended factor per bar, scaled by the envelope
// level and the configured maximum height.
func (b *Bars) Heights(songTime float64) []float64 {
	loudness := b.env.Sample(songTime)

	progress := 1.0
	if b.cfg.MorphDuration > 0 {
		progress = core.ClampF((songTime-b.morphStart)/b.cfg.MorphDuration, 0, 1)
	}

	out := make([]float64, len(b.target))
	for i := range out {
		factor := b.start[i] + (b.target[i]-b.start[i])*progress
		out[i] = factor * loudness * b.cfg.MaxHeight
	}
	return out
}
