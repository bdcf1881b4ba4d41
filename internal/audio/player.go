// Package audio wraps gopxl/beep speaker playback behind the small
// transport surface the simulation depends on: start, pause, resume, stop,
// and the non-blocking is-playing / elapsed queries. The simulation treats
// this as a free-running black-box clock and re-derives its own song time
// on every pause and resume, so nothing here needs to be sample-accurate.
package audio

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"time"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/mp3"
	"github.com/gopxl/beep/v2/speaker"
	"github.com/gopxl/beep/v2/wav"
)

// speakerBuffer is the speaker's internal buffer length. Short enough that
// pause takes effect promptly, long enough to survive a slow frame.
const speakerBuffer = 100 * time.Millisecond

// Player plays one decoded track through the system speaker.
type Player struct {
	streamer beep.StreamSeekCloser
	format   beep.Format
	ctrl     *beep.Ctrl
	started  atomic.Bool
	finished atomic.Bool
}

// Load opens and decodes the track at path. WAV and MP3 are supported;
// anything else must be converted before it reaches the engine.
func Load(path string) (*Player, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("audio: cannot open %s: %w", path, err)
	}

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
		f.Close()
		return nil, fmt.Errorf("audio: cannot decode %s: %w", path, err)
	}

	if err := speaker.Init(format.SampleRate, format.SampleRate.N(speakerBuffer)); err != nil {
		streamer.Close()
		return nil, fmt.Errorf("audio: cannot open speaker: %w", err)
	}

	p := &Player{
		streamer: streamer,
		format:   format,
	}
	p.ctrl = &beep.Ctrl{Streamer: streamer}
	return p, nil
}

// Play starts playback from the beginning of the track.
func (p *Player) Play() error {
	if p.started.Load() {
		// Restart: rewind and play again.
		speaker.Clear()
		p.finished.Store(false)
		speaker.Lock()
		err := p.streamer.Seek(0)
		p.ctrl.Paused = false
		speaker.Unlock()
		if err != nil {
			return fmt.Errorf("audio: cannot rewind: %w", err)
		}
	}
	p.started.Store(true)
	speaker.Play(beep.Seq(p.ctrl, beep.Callback(func() {
		p.finished.Store(true)
	})))
	return nil
}

// Pause suspends playback; Elapsed freezes until Resume.
func (p *Player) Pause() {
	speaker.Lock()
	p.ctrl.Paused = true
	speaker.Unlock()
}

// Resume continues playback after a Pause.
func (p *Player) Resume() {
	speaker.Lock()
	p.ctrl.Paused = false
	speaker.Unlock()
}

// Stop halts playback and releases the decoder.
func (p *Player) Stop() {
	speaker.Clear()
	p.finished.Store(true)
	p.streamer.Close()
}

// IsPlaying reports whether the track has started and not yet run out.
// A paused track still counts as playing; only reaching the end of the
// stream (or Stop) flips this to false.
func (p *Player) IsPlaying() bool {
	return p.started.Load() && !p.finished.Load()
}

// Elapsed returns seconds of audio consumed since the start of the track.
func (p *Player) Elapsed() float64 {
	speaker.Lock()
	pos := p.streamer.Position()
	speaker.Unlock()
	return p.format.SampleRate.D(pos).Seconds()
}

// Duration returns the track length in seconds.
func (p *Player) Duration() float64 {
	return p.format.SampleRate.D(p.streamer.Len()).Seconds()
}
