package level

// Tier is a named difficulty level selecting how many of the detected
// beats become jump beats.
type Tier string

const (
	TierEasy   Tier = "easy"   // every 3rd beat
	TierNormal Tier = "normal" // every 2nd beat
	TierHard   Tier = "hard"   // every beat
)

// Tiers lists the selectable difficulty tiers in ascending order.
func Tiers() []Tier {
	return []Tier{TierEasy, TierNormal, TierHard}
}

// Stride returns the beat subsampling stride for the tier.
// Unknown tiers play like normal.
func (t Tier) Stride() int {
	switch t {
	case TierEasy:
		return 3
	case TierHard:
		return 1
	default:
		return 2
	}
}

// Title returns a display name for menus.
func (t Tier) Title() string {
	switch t {
	case TierEasy:
		return "Easy (every 3rd beat)"
	case TierNormal:
		return "Normal (every 2nd beat)"
	case TierHard:
		return "Hard (every beat)"
	default:
		return string(t)
	}
}

// Filter subsamples the full beat timeline down to the beats the player
// must jump on. The first beat is always kept and ordering is preserved.
// If subsampling would somehow produce nothing, the full timeline is
// returned so a run is always playable.
func Filter(beats []float64, tier Tier) []float64 {
	stride := tier.Stride()
	if stride <= 1 {
		return beats
	}

	out := make([]float64, 0, (len(beats)+stride-1)/stride)
	for i := 0; i < len(beats); i += stride {
		out = append(out, beats[i])
	}
	if len(out) == 0 {
		return beats
	}
	return out
}
