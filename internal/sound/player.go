// Package sound plays short audio cues when notifications appear.
package sound

import (
	"math"
	"sync"
	"time"

	"github.com/faiface/beep"
	"github.com/faiface/beep/effects"
	"github.com/faiface/beep/speaker"

	"github.com/iburimskiy/neuroforge/internal/config"
	"github.com/iburimskiy/neuroforge/internal/log"
	"github.com/iburimskiy/neuroforge/internal/notify"
)

const (
	tapRingSize = 2048
	levelWindow = 512
	levelStale  = 100 * time.Millisecond
)

// Format is the format every cue is rendered in.
var Format = beep.Format{SampleRate: config.SampleRate, NumChannels: 2, Precision: 2}

// Player plays one cue per notification severity. A muted Player accepts
// every call and does nothing.
type Player struct {
	muted  bool
	volume float64
	cues   map[notify.Severity]*beep.Buffer
	logger *log.Logger

	mu  sync.Mutex
	tap *levelTap
}

func defaultCues() map[notify.Severity]*beep.Buffer {
	return map[notify.Severity]*beep.Buffer{
		notify.Info: synth(Format, note{660, 120 * time.Millisecond, waveSine}),
		notify.Success: synth(Format,
			note{660, 90 * time.Millisecond, waveTriangle},
			note{990, 160 * time.Millisecond, waveTriangle}),
		notify.Error: synth(Format,
			note{220, 120 * time.Millisecond, waveSquare},
			note{185, 180 * time.Millisecond, waveSquare}),
	}
}

// Muted returns a player that never touches the speaker.
func Muted() *Player {
	return &Player{muted: true}
}

// NewPlayer initializes the speaker and renders the cues. When audio is
// disabled, or the speaker cannot be opened, it returns a muted player.
// cfg.CuePath, if set, replaces the success cue.
func NewPlayer(cfg *config.Config, logger *log.Logger) *Player {
	if !cfg.AudioEnabled {
		return Muted()
	}

	if err := speaker.Init(Format.SampleRate, Format.SampleRate.N(time.Second/20)); err != nil {
		logger.Warnf("[SOUND] speaker unavailable, continuing without audio: %v", err)
		return Muted()
	}

	p := &Player{
		volume: cfg.Volume,
		cues:   defaultCues(),
		logger: logger,
	}
	if cfg.CuePath != "" {
		buf, err := LoadCue(cfg.CuePath, Format)
		if err != nil {
			logger.Warnf("[SOUND] cannot load cue %s: %v", cfg.CuePath, err)
		} else {
			p.cues[notify.Success] = buf
		}
	}
	return p
}

// Play starts the cue for sev, cutting off whatever cue was playing.
func (p *Player) Play(sev notify.Severity) {
	if p.muted || p.volume <= 0 {
		return
	}
	buf, ok := p.cues[sev]
	if !ok || buf.Len() == 0 {
		return
	}

	vol := &effects.Volume{
		Streamer: buf.Streamer(0, buf.Len()),
		Base:     2,
		Volume:   math.Log2(p.volume),
	}
	t := newLevelTap(vol, tapRingSize)

	p.mu.Lock()
	p.tap = t
	p.mu.Unlock()

	// Clear and Play take the speaker lock themselves.
	speaker.Clear()
	speaker.Play(t)
}

// Level is the loudness of the cue currently playing, roughly 0..1.
func (p *Player) Level() float64 {
	p.mu.Lock()
	t := p.tap
	p.mu.Unlock()
	if t == nil {
		return 0
	}
	return t.level(levelWindow, levelStale)
}

// Close stops playback.
func (p *Player) Close() {
	if p.muted {
		return
	}
	speaker.Clear()
}
