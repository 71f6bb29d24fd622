package sound

import (
	"math"
	"sync"
	"time"

	"github.com/faiface/beep"
)

// levelTap wraps a beep.Streamer and records the last N samples into a ring
// buffer so the renderer can pulse the newest toast with the playing cue.
type levelTap struct {
	Source    beep.Streamer
	buffer    [][2]float64
	nextIndex int
	filled    int
	lastRead  time.Time
	mu        sync.RWMutex
}

func newLevelTap(src beep.Streamer, ringSize int) *levelTap {
	return &levelTap{
		Source: src,
		buffer: make([][2]float64, ringSize),
	}
}

func (t *levelTap) Stream(samples [][2]float64) (int, bool) {
	n, ok := t.Source.Stream(samples)
	if n > 0 {
		t.mu.Lock()
		for i := 0; i < n; i++ {
			t.buffer[t.nextIndex] = samples[i]
			t.nextIndex++
			if t.nextIndex >= len(t.buffer) {
				t.nextIndex = 0
			}
		}
		t.filled = min(t.filled+n, len(t.buffer))
		t.lastRead = time.Now()
		t.mu.Unlock()
	}
	return n, ok
}

func (t *levelTap) Err() error { return t.Source.Err() }

// level returns the RMS of the last n recorded samples (mono mix), or 0 if
// nothing was streamed within stale.
func (t *levelTap) level(n int, stale time.Duration) float64 {
	t.mu.RLock()
	defer t.mu.RUnlock()

	if t.filled == 0 || time.Since(t.lastRead) > stale {
		return 0
	}
	n = min(n, t.filled)

	// Walk backwards from nextIndex - 1
	idx := t.nextIndex - 1
	var sum float64
	for i := 0; i < n; i++ {
		if idx < 0 {
			idx = len(t.buffer) - 1
		}
		mono := (t.buffer[idx][0] + t.buffer[idx][1]) * 0.5
		sum += mono * mono
		idx--
	}
	return math.Sqrt(sum / float64(n))
}
