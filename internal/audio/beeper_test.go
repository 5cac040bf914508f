package audio

import (
	"testing"

	"github.com/gopxl/beep"
)

type recordingPlayer struct{ played []beep.Streamer }

func (p *recordingPlayer) Play(s ...beep.Streamer) { p.played = append(p.played, s...) }

func TestToneLastsBeepDuration(t *testing.T) {
	s, err := tone()
	if err != nil {
		t.Fatalf("tone: %v", err)
	}

	buf := make([][2]float64, 512)
	total := 0
	for {
		n, ok := s.Stream(buf)
		total += n
		if !ok {
			break
		}
	}
	if want := sampleRate.N(beepDuration); total != want {
		t.Errorf("Expected %d samples, got %d", want, total)
	}
}

func TestToneIsAudible(t *testing.T) {
	s, _ := tone()
	buf := make([][2]float64, 256)
	s.Stream(buf)

	peak := 0.0
	for _, frame := range buf {
		peak = max(peak, frame[0], -frame[0])
	}
	if peak <= 0 || peak > 1 {
		t.Errorf("Expected a peak in (0, 1], got %v", peak)
	}
}

func TestFlashPlaysOneBeep(t *testing.T) {
	rec := &recordingPlayer{}
	b := &Beeper{out: rec}

	b.Flash()
	b.Flash()
	if len(rec.played) != 2 {
		t.Errorf("Expected 2 beeps, got %d", len(rec.played))
	}
}

func TestSilentBeeperIgnoresFlash(t *testing.T) {
	b := &Beeper{}
	b.Flash()
	b.Close()
	b.Flash()
}
