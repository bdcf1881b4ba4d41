// Package analysis extracts the per-track data the engine runs on: beat
// onset timestamps, a normalized loudness envelope, the track duration,
// and a tempo estimate.
package analysis

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/mp3"
	"github.com/gopxl/beep/v2/wav"
	"github.com/pkg/errors"

	"beatdash/internal/envelope"
)

const (
	// hopSize is the analysis window in frames. At 44.1kHz one hop is
	// about 23ms, fine enough for the envelope and the onset grid.
	hopSize = 1024

	// Onset detection: a hop counts as a beat when its energy clears the
	// noise floor, exceeds the recent average by this ratio, and enough
	// time has passed since the previous onset.
	energyFloor    = 0.01
	energyRatio    = 1.5
	historyHops    = 8
	minOnsetGap    = 0.25
	minTempoOnsets = 4

	// Tempo estimates are folded into this range by octave doubling or
	// halving before being reported.
	tempoFoldLow  = 70.0
	tempoFoldHigh = 180.0
)

// Result is everything the engine needs to know about one track.
type Result struct {
	Beats    []float64      // onset timestamps, seconds, non-decreasing
	Duration float64        // track length in seconds
	Envelope envelope.Curve // normalized loudness, values in [0, 1]
	Tempo    float64        // estimated BPM, 0 when unknown
}

// AnalyzeFile decodes an audio file and analyzes its waveform. WAV and
// MP3 are recognized by extension; anything else is tried as WAV.
func AnalyzeFile(path string) (Result, error) {
	f, err := os.Open(path)
	if err != nil {
		return Result{}, errors.Wrap(err, "open track")
	}
	defer f.Close()

	var (
		streamer beep.StreamSeekCloser
		format   beep.Format
	)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".mp3":
		streamer, format, err = mp3.Decode(f)
	default:
		streamer, format, err = wav.Decode(f)
	}
	if err != nil {
		return Result{}, errors.Wrapf(err, "decode %s", filepath.Base(path))
	}
	defer streamer.Close()

	return Analyze(streamer, format)
}

// Analyze consumes a decoded stream hop by hop, mixing it down to mono,
// and derives the beat timeline, loudness envelope, and tempo estimate.
func Analyze(s beep.Streamer, format beep.Format) (Result, error) {
	sr := float64(format.SampleRate)
	if sr <= 0 {
		return Result{}, fmt.Errorf("invalid sample rate %v", format.SampleRate)
	}

	buf := make([][2]float64, hopSize)
	var (
		times  []float64
		energy []float64
		frames int
	)
	for {
		n, ok := s.Stream(buf)
		if n > 0 {
			times = append(times, float64(frames)/sr)
			energy = append(energy, rms(buf[:n]))
			frames += n
		}
		if !ok {
			break
		}
	}
	if frames == 0 {
		return Result{}, fmt.Errorf("empty audio stream")
	}

	beats := detectOnsets(times, energy)
	res := Result{
		Beats:    beats,
		Duration: float64(frames) / sr,
		Envelope: envelope.Curve{Times: times, Values: normalize(energy)},
		Tempo:    estimateTempo(beats),
	}
	return res, nil
}

// rms is the root-mean-square energy of a mono mixdown of the hop.
func rms(buf [][2]float64) float64 {
	if len(buf) == 0 {
		return 0
	}
	var sum float64
	for _, frame := range buf {
		mono := (frame[0] + frame[1]) / 2
		sum += mono * mono
	}
	return math.Sqrt(sum / float64(len(buf)))
}

// normalize scales values so the loudest hop is 1. A silent track comes
// back as all zeros.
func normalize(values []float64) []float64 {
	var peak float64
	for _, v := range values {
		if v > peak {
			peak = v
		}
	}
	out := make([]float64, len(values))
	if peak == 0 {
		return out
	}
	for i, v := range values {
		out[i] = v / peak
	}
	return out
}

// detectOnsets marks hops whose energy spikes above the recent average.
// The minimum gap keeps a single drum hit from registering twice.
func detectOnsets(times, energy []float64) []float64 {
	var beats []float64
	lastOnset := math.Inf(-1)
	for i, e := range energy {
		if e < energyFloor {
			continue
		}
		lo := i - historyHops
		if lo < 0 {
			lo = 0
		}
		var avg float64
		if i > lo {
			for _, h := range energy[lo:i] {
				avg += h
			}
			avg /= float64(i - lo)
		}
		if avg > 0 && e/avg < energyRatio {
			continue
		}
		if times[i]-lastOnset < minOnsetGap {
			continue
		}
		beats = append(beats, times[i])
		lastOnset = times[i]
	}
	return beats
}

// estimateTempo derives BPM from the median inter-onset interval. The
// median shrugs off the occasional missed or doubled beat; the result is
// folded into a plausible dance-tempo octave. Too few onsets means no
// estimate, reported as 0 so callers fall back to a fixed pre-roll.
func estimateTempo(beats []float64) float64 {
	if len(beats) < minTempoOnsets {
		return 0
	}
	gaps := make([]float64, 0, len(beats)-1)
	for i := 1; i < len(beats); i++ {
		if d := beats[i] - beats[i-1]; d > 0 {
			gaps = append(gaps, d)
		}
	}
	if len(gaps) == 0 {
		return 0
	}
	sort.Float64s(gaps)
	median := gaps[len(gaps)/2]
	if len(gaps)%2 == 0 {
		median = (gaps[len(gaps)/2-1] + gaps[len(gaps)/2]) / 2
	}

	bpm := 60.0 / median
	for bpm < tempoFoldLow {
		bpm *= 2
	}
	for bpm >= tempoFoldHigh {
		bpm /= 2
	}
	return bpm
}
