package audio

import (
	"fmt"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
)

// SampleRate is the speaker rate all cues are synthesized at.
const SampleRate = beep.SampleRate(44100)

// Player mixes cues into the speaker. A muted or uninitialized Player drops
// every cue, so callers never need to check.
type Player struct {
	mu      sync.Mutex
	mixer   *beep.Mixer
	volume  float64
	muted   bool
	started bool
	played  int
}

func NewPlayer(volume float64, muted bool) *Player {
	return &Player{mixer: &beep.Mixer{}, volume: volume, muted: muted}
}

// Init opens the speaker with a 100ms buffer. It is a no-op when muted.
func (p *Player) Init() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.muted || p.started {
		return nil
	}
	if err := speaker.Init(SampleRate, SampleRate.N(100*time.Millisecond)); err != nil {
		return fmt.Errorf("init speaker: %w", err)
	}
	speaker.Play(p.mixer)
	p.started = true
	return nil
}

// Play queues c and returns immediately.
func (p *Player) Play(c Cue) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.started {
		return
	}
	s := Streamer(c, SampleRate)
	if s == nil {
		return
	}
	speaker.Lock()
	p.mixer.Add(Gain(s, p.volume))
	speaker.Unlock()
	p.played++
}

// Played is the number of cues handed to the speaker.
func (p *Player) Played() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.played
}

func (p *Player) Enabled() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.started
}

// Close silences the mixer and releases the speaker.
func (p *Player) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.started {
		return
	}
	speaker.Lock()
	p.mixer.Clear()
	speaker.Unlock()
	speaker.Close()
	p.started = false
}
