package audio

import (
	"math"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"

	"github.com/vovakirdan/office-runner/internal/core"
)

// Wave is an oscillator shape.
type Wave int

const (
	WaveSine Wave = iota
	WaveSquare
	WaveSaw
	WaveTriangle
)

// sweep is an oscillator whose frequency glides linearly from `from` to
// `to` over its duration. A constant tone has from == to.
type sweep struct {
	from, to float64
	wave     Wave
	rate     beep.SampleRate
	phase    float64
	pos      int
	total    int
}

// NewTone creates a fixed-frequency oscillator.
func NewTone(freq float64, d time.Duration, wave Wave, rate beep.SampleRate) beep.Streamer {
	return NewSweep(freq, freq, d, wave, rate)
}

// NewSweep creates an oscillator gliding between two frequencies.
func NewSweep(from, to float64, d time.Duration, wave Wave, rate beep.SampleRate) beep.Streamer {
	return &sweep{from: from, to: to, wave: wave, rate: rate, total: rate.N(d)}
}

func (s *sweep) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if s.pos >= s.total {
			return i, i > 0
		}

		var val float64
		switch s.wave {
		case WaveSine:
			val = math.Sin(2 * math.Pi * s.phase)
		case WaveSquare:
			val = 1
			if s.phase >= 0.5 {
				val = -1
			}
		case WaveSaw:
			val = 2 * (s.phase - 0.5)
		case WaveTriangle:
			val = 1 - 4*math.Abs(s.phase-0.5)
		}
		samples[i][0] = val
		samples[i][1] = val

		freq := s.from + (s.to-s.from)*float64(s.pos)/float64(s.total)
		s.phase += freq / float64(s.rate)
		s.phase -= math.Floor(s.phase)
		s.pos++
	}
	return len(samples), true
}

func (s *sweep) Err() error { return nil }

// envelope shapes a stream with a linear attack and release.
type envelope struct {
	streamer beep.Streamer
	pos      int
	attack   int
	release  int
	total    int
}

// NewEnvelope wraps s with attack and release ramps over duration d.
func NewEnvelope(s beep.Streamer, d, attack, release time.Duration, rate beep.SampleRate) beep.Streamer {
	return &envelope{
		streamer: s,
		attack:   rate.N(attack),
		release:  rate.N(release),
		total:    rate.N(d),
	}
}

func (e *envelope) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = e.streamer.Stream(samples)
	for i := range n {
		if e.pos >= e.total {
			return i, i > 0
		}

		vol := 1.0
		if e.attack > 0 && e.pos < e.attack {
			vol = float64(e.pos) / float64(e.attack)
		}
		if start := e.total - e.release; e.release > 0 && e.pos >= start {
			vol = math.Max(0, float64(e.total-e.pos)/float64(e.release))
		}

		samples[i][0] *= vol
		samples[i][1] *= vol
		e.pos++
	}
	return n, ok
}

func (e *envelope) Err() error { return e.streamer.Err() }

// newVolume scales a stream linearly; 0 or less is silent.
func newVolume(s beep.Streamer, vol float64) *effects.Volume {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol)}
}

// note is a shaped tone of the given length.
func note(from, to float64, d time.Duration, wave Wave, rate beep.SampleRate) beep.Streamer {
	return NewEnvelope(NewSweep(from, to, d, wave, rate), d, 5*time.Millisecond, d/2, rate)
}

// NewEffect synthesizes a one-shot sound effect. Returns nil for unknown sounds.
func NewEffect(s core.Sound, rate beep.SampleRate) beep.Streamer {
	switch s {
	case core.SoundJump:
		// Quick upward chirp
		return newVolume(note(300, 700, 120*time.Millisecond, WaveSquare, rate), 0.4)
	case core.SoundCollect:
		// Two-note chime
		return beep.Seq(
			note(880, 880, 70*time.Millisecond, WaveSine, rate),
			note(1320, 1320, 140*time.Millisecond, WaveSine, rate),
		)
	case core.SoundGameOver:
		// Descending groan
		return newVolume(note(440, 110, 700*time.Millisecond, WaveSaw, rate), 0.6)
	default:
		return nil
	}
}

// musicNotes is the looping office-muzak bass line, one note per beat.
var musicNotes = []float64{110, 138.59, 164.81, 138.59, 98, 123.47, 146.83, 123.47}

// NewMusic returns an endless background loop.
func NewMusic(rate beep.SampleRate) beep.Streamer {
	const beat = 300 * time.Millisecond
	return beep.Iterate(func() func() beep.Streamer {
		i := 0
		return func() beep.Streamer {
			f := musicNotes[i%len(musicNotes)]
			i++
			return NewEnvelope(NewTone(f, beat, WaveTriangle, rate), beat, 10*time.Millisecond, beat/3, rate)
		}
	}())
}
