package level

// DefaultLeadTime is the fixed offset between a jump beat and the instant
// the resulting obstacle crosses the player. Pressing jump on the beat puts
// the player at the apex of the arc when the obstacle arrives.
const DefaultLeadTime = 0.25

// Level is the ordered obstacle course for one run. It is built once from
// the jump beats and only ever shrinks, as obstacles scroll off-screen.
type Level struct {
	Obstacles []Obstacle
}

// Build produces a Level from jump beats. For beat index i the obstacle
// collides at beat+leadTime, and its kind follows a fixed pattern:
//
//	i mod 6 in {2, 5}  -> platform
//	i mod 8 == 4       -> overhead spike
//	otherwise          -> ground spike
//
// The pattern is evaluated in that priority order, so an index matching
// both rules becomes a platform. Empty input yields an empty level; the
// run then ends only with the track.
func Build(jumpBeats []float64, leadTime float64) Level {
	obstacles := make([]Obstacle, 0, len(jumpBeats))

	for i, b := range jumpBeats {
		ct := b + leadTime

		var kind Kind
		switch {
		case i%6 == 2 || i%6 == 5:
			kind = Platform
		case i%8 == 4:
			kind = SpikeOverhead
		default:
			kind = SpikeGround
		}

		obstacles = append(obstacles, Obstacle{Kind: kind, CollisionTime: ct})
	}

	return Level{Obstacles: obstacles}
}

// TrimBefore drops obstacles that have scrolled fully past the given left
// edge (world units) at song time now. Obstacles are ordered by collision
// time, so trimming stops at the first survivor. This bounds memory over
// the course of a long track.
func (l *Level) TrimBefore(now, speed, leftEdge float64) {
	i := 0
	for i < len(l.Obstacles) {
		o := l.Obstacles[i]
		if o.X(now, speed)+o.Width() > leftEdge {
			break
		}
		i++
	}
	if i > 0 {
		l.Obstacles = l.Obstacles[i:]
	}
}
