// Package audio plays the short damage beep of local play.
package audio

import (
	"fmt"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"
)

const (
	sampleRate   = beep.SampleRate(44100)
	beepFreq     = 880.0
	beepDuration = 80 * time.Millisecond
	beepVolume   = -1.5 // Base 2 exponent, so roughly a third of full scale
)

// player is the part of the speaker a Beeper uses.
type player interface {
	Play(s ...beep.Streamer)
}

type speakerPlayer struct{}

func (speakerPlayer) Play(s ...beep.Streamer) { speaker.Play(s...) }

// Beeper plays a sine beep on every Flash. A Beeper without a working
// speaker is silent. Safe for concurrent use.
type Beeper struct {
	mu  sync.Mutex
	out player
}

// NewBeeper opens the default audio device. On failure it returns a silent
// beeper together with the error, so callers can log it and go on.
func NewBeeper() (*Beeper, error) {
	if err := speaker.Init(sampleRate, sampleRate.N(time.Second/10)); err != nil {
		return &Beeper{}, fmt.Errorf("audio init: %w", err)
	}
	return &Beeper{out: speakerPlayer{}}, nil
}

// Flash plays the damage beep.
func (b *Beeper) Flash() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.out == nil {
		return
	}
	s, err := tone()
	if err != nil {
		return
	}
	b.out.Play(s)
}

// Close releases the audio device.
func (b *Beeper) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if _, ok := b.out.(speakerPlayer); ok {
		speaker.Close()
	}
	b.out = nil
}

// tone builds one damage beep.
func tone() (beep.Streamer, error) {
	sine, err := generators.SineTone(sampleRate, beepFreq)
	if err != nil {
		return nil, err
	}
	return &effects.Volume{
		Streamer: beep.Take(sampleRate.N(beepDuration), sine),
		Base:     2,
		Volume:   beepVolume,
	}, nil
}
