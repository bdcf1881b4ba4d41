package analysis

import (
	"math"
	"testing"

	"github.com/gopxl/beep/v2"
)

type memStreamer struct {
	samples [][2]float64
	pos     int
}

func (m *memStreamer) Stream(buf [][2]float64) (int, bool) {
	if m.pos >= len(m.samples) {
		return 0, false
	}
	n := copy(buf, m.samples[m.pos:])
	m.pos += n
	return n, true
}

func (m *memStreamer) Err() error { return nil }

func testFormat() beep.Format {
	return beep.Format{SampleRate: 44100, NumChannels: 2, Precision: 2}
}

// clickTrack synthesizes silence with short loud bursts at the given
// times, the simplest waveform with unambiguous onsets.
func clickTrack(duration float64, clickTimes []float64) *memStreamer {
	const sr = 44100
	samples := make([][2]float64, int(duration*sr))
	for _, ct := range clickTimes {
		start := int(ct * sr)
		for i := start; i < start+hopSize && i < len(samples); i++ {
			samples[i] = [2]float64{0.8, 0.8}
		}
	}
	return &memStreamer{samples: samples}
}

func TestAnalyzeClickTrack(t *testing.T) {
	clicks := []float64{0.25, 0.75, 1.25, 1.75, 2.25, 2.75, 3.25, 3.75}
	res, err := Analyze(clickTrack(4.0, clicks), testFormat())
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}

	if len(res.Beats) != len(clicks) {
		t.Fatalf("detected %d onsets, want %d: %v", len(res.Beats), len(clicks), res.Beats)
	}
	for i, want := range clicks {
		if math.Abs(res.Beats[i]-want) > 0.03 {
			t.Errorf("onset %d at %v, want within 30ms of %v", i, res.Beats[i], want)
		}
	}

	// Clicks every half second is 120 BPM.
	if res.Tempo < 115 || res.Tempo > 125 {
		t.Errorf("tempo = %v, want ~120", res.Tempo)
	}

	if math.Abs(res.Duration-4.0) > 0.05 {
		t.Errorf("duration = %v, want ~4.0", res.Duration)
	}

	if got := res.Envelope.Sample(0.26); got < 0.5 {
		t.Errorf("envelope at a click = %v, want loud", got)
	}
	if got := res.Envelope.Sample(0.15); got > 0.1 {
		t.Errorf("envelope in silence = %v, want quiet", got)
	}
}

func TestAnalyzeSilence(t *testing.T) {
	silence := &memStreamer{samples: make([][2]float64, 44100)}
	res, err := Analyze(silence, testFormat())
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if len(res.Beats) != 0 {
		t.Errorf("found %d onsets in silence", len(res.Beats))
	}
	if res.Tempo != 0 {
		t.Errorf("tempo = %v for silence, want 0", res.Tempo)
	}
	if math.Abs(res.Duration-1.0) > 1e-9 {
		t.Errorf("duration = %v, want 1.0", res.Duration)
	}
	if got := res.Envelope.Sample(0.5); got != 0 {
		t.Errorf("envelope of silence = %v, want 0", got)
	}
}

func TestAnalyzeEmptyStream(t *testing.T) {
	if _, err := Analyze(&memStreamer{}, testFormat()); err == nil {
		t.Fatalf("expected error for an empty stream")
	}
}

func TestEstimateTempoFoldsIntoRange(t *testing.T) {
	tests := []struct {
		name string
		gap  float64
		want float64
	}{
		{"already in range", 0.5, 120},
		{"slow track doubles up", 2.0, 120},
		{"rapid onsets halve down", 0.15, 100},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			beats := make([]float64, 8)
			for i := range beats {
				beats[i] = float64(i) * tt.gap
			}
			got := estimateTempo(beats)
			if math.Abs(got-tt.want) > 0.5 {
				t.Errorf("estimateTempo(gap=%v) = %v, want %v", tt.gap, got, tt.want)
			}
		})
	}
}

func TestEstimateTempoNeedsEnoughOnsets(t *testing.T) {
	if got := estimateTempo([]float64{0, 0.5, 1.0}); got != 0 {
		t.Errorf("tempo from 3 onsets = %v, want 0", got)
	}
}

func TestNormalize(t *testing.T) {
	got := normalize([]float64{0, 1, 4, 2})
	want := []float64{0, 0.25, 1, 0.5}
	for i := range want {
		if math.Abs(got[i]-want[i]) > 1e-9 {
			t.Errorf("normalize[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}
