// Package audio synthesizes the game's sound cues with beep and plays them
// through the system speaker.
package audio

import (
	"math"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
)

// Cue is a sound effect.
type Cue int

const (
	CueShoot Cue = iota
	CueExplosion
	CuePickup
	CueDeath
)

func (c Cue) String() string {
	switch c {
	case CueShoot:
		return "shoot"
	case CueExplosion:
		return "explosion"
	case CuePickup:
		return "pickup"
	case CueDeath:
		return "death"
	default:
		return "unknown"
	}
}

// Wave is an oscillator shape.
type Wave int

const (
	WaveSine Wave = iota
	WaveSquare
	WaveSaw
	WaveNoise
)

type tone struct {
	freq  float64
	phase float64
	left  int
	wave  Wave
	rate  beep.SampleRate
	noise uint32
}

// Tone streams d worth of a wave at freq Hz, in [-1, 1].
func Tone(freq float64, d time.Duration, wave Wave, rate beep.SampleRate) beep.Streamer {
	return &tone{freq: freq, left: rate.N(d), wave: wave, rate: rate, noise: 0x9e3779b9}
}

func (t *tone) Stream(samples [][2]float64) (int, bool) {
	if t.left <= 0 {
		return 0, false
	}
	n := min(len(samples), t.left)
	for i := 0; i < n; i++ {
		var v float64
		switch t.wave {
		case WaveSine:
			v = math.Sin(2 * math.Pi * t.phase)
		case WaveSquare:
			v = 1
			if t.phase >= 0.5 {
				v = -1
			}
		case WaveSaw:
			v = 2*t.phase - 1
		case WaveNoise:
			// xorshift keeps noise deterministic per cue.
			t.noise ^= t.noise << 13
			t.noise ^= t.noise >> 17
			t.noise ^= t.noise << 5
			v = float64(t.noise)/math.MaxUint32*2 - 1
		}
		samples[i][0], samples[i][1] = v, v
		t.phase += t.freq / float64(t.rate)
		t.phase -= math.Floor(t.phase)
	}
	t.left -= n
	return n, true
}

func (t *tone) Err() error { return nil }

type fade struct {
	s          beep.Streamer
	pos, total int
	attack     int
}

// Fade shapes s with a linear attack and a linear decay to silence at d.
func Fade(s beep.Streamer, d, attack time.Duration, rate beep.SampleRate) beep.Streamer {
	return &fade{s: s, total: rate.N(d), attack: rate.N(attack)}
}

func (f *fade) Stream(samples [][2]float64) (int, bool) {
	n, ok := f.s.Stream(samples)
	for i := 0; i < n; i++ {
		if f.pos >= f.total {
			return i, i > 0
		}
		g := float64(f.total-f.pos) / float64(f.total)
		if f.pos < f.attack {
			g = math.Min(g, float64(f.pos)/float64(f.attack))
		}
		samples[i][0] *= g
		samples[i][1] *= g
		f.pos++
	}
	return n, ok
}

func (f *fade) Err() error { return f.s.Err() }

// Gain scales s linearly. Zero or negative gain is silent.
func Gain(s beep.Streamer, gain float64) beep.Streamer {
	if gain <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(gain)}
}

// Streamer builds a fresh streamer for c. Streamers are single use.
func Streamer(c Cue, rate beep.SampleRate) beep.Streamer {
	switch c {
	case CueShoot:
		d := 60 * time.Millisecond
		return Gain(Fade(Tone(1320, d, WaveSquare, rate), d, 2*time.Millisecond, rate), 0.25)
	case CueExplosion:
		d := 350 * time.Millisecond
		return Gain(beep.Mix(
			Fade(Tone(0, d, WaveNoise, rate), d, 5*time.Millisecond, rate),
			Gain(Fade(Tone(70, d, WaveSine, rate), d, 5*time.Millisecond, rate), 0.8),
		), 0.4)
	case CuePickup:
		d := 80 * time.Millisecond
		return Gain(beep.Seq(
			Fade(Tone(988, d, WaveSine, rate), d, 5*time.Millisecond, rate),
			Fade(Tone(1319, 2*d, WaveSine, rate), 2*d, 5*time.Millisecond, rate),
		), 0.5)
	case CueDeath:
		d := 120 * time.Millisecond
		return Gain(beep.Seq(
			Fade(Tone(440, d, WaveSaw, rate), d, 5*time.Millisecond, rate),
			Fade(Tone(330, d, WaveSaw, rate), d, 5*time.Millisecond, rate),
			Fade(Tone(220, 2*d, WaveSaw, rate), 2*d, 5*time.Millisecond, rate),
		), 0.4)
	default:
		return nil
	}
}
