package sound

import (
	"math"
	"time"

	"github.com/faiface/beep"
)

type waveType int

const (
	waveSine waveType = iota
	waveSquare
	waveTriangle
)

// oscillator produces a fixed-length tone.
type oscillator struct {
	freq     float64
	phase    float64
	length   int
	position int
	wave     waveType
	rate     beep.SampleRate
}

func newOscillator(freq float64, d time.Duration, wave waveType, rate beep.SampleRate) *oscillator {
	return &oscillator{freq: freq, length: rate.N(d), wave: wave, rate: rate}
}

func (o *oscillator) Stream(samples [][2]float64) (n int, ok bool) {
	if o.position >= o.length {
		return 0, false
	}
	for i := range samples {
		if o.position >= o.length {
			return i, true
		}

		var val float64
		switch o.wave {
		case waveSquare:
			if o.phase < 0.5 {
				val = 1
			} else {
				val = -1
			}
		case waveTriangle:
			val = 4*math.Abs(o.phase-0.5) - 1
		default:
			val = math.Sin(2 * math.Pi * o.phase)
		}
		samples[i][0] = val
		samples[i][1] = val

		o.phase += o.freq / float64(o.rate)
		o.phase -= math.Floor(o.phase)
		o.position++
	}
	return len(samples), true
}

func (o *oscillator) Err() error { return nil }

// envelope applies a linear attack and release to a finite stream of
// total samples.
type envelope struct {
	streamer beep.Streamer
	position int
	attack   int
	release  int
	total    int
}

func newEnvelope(s beep.Streamer, total, attack, release time.Duration, rate beep.SampleRate) *envelope {
	return &envelope{
		streamer: s,
		attack:   rate.N(attack),
		release:  rate.N(release),
		total:    rate.N(total),
	}
}

func (e *envelope) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = e.streamer.Stream(samples)
	for i := 0; i < n; i++ {
		gain := 1.0
		switch {
		case e.attack > 0 && e.position < e.attack:
			gain = float64(e.position) / float64(e.attack)
		case e.release > 0 && e.position >= e.total-e.release:
			gain = float64(e.total-e.position) / float64(e.release)
		}
		if gain < 0 {
			gain = 0
		}
		samples[i][0] *= gain
		samples[i][1] *= gain
		e.position++
	}
	return n, ok
}

func (e *envelope) Err() error { return e.streamer.Err() }

type note struct {
	freq float64
	dur  time.Duration
	wave waveType
}

// synth renders notes one after another into a buffer.
func synth(format beep.Format, notes ...note) *beep.Buffer {
	buf := beep.NewBuffer(format)
	for _, n := range notes {
		osc := newOscillator(n.freq, n.dur, n.wave, format.SampleRate)
		buf.Append(newEnvelope(osc, n.dur, 5*time.Millisecond, n.dur/2, format.SampleRate))
	}
	return buf
}
