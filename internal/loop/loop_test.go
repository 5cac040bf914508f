package loop

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/tomz197/campus-invaders/internal/input"
	"github.com/tomz197/campus-invaders/internal/loop/config"
)

// scriptedInput presses start once, then quits as soon as a result is shown.
type scriptedInput struct {
	rec     *recorder
	samples int
	started bool
}

func (s *scriptedInput) Sample() input.Input {
	s.samples++
	if !s.started {
		s.started = true
		return input.Input{Start: true}
	}
	if len(s.rec.results) > 0 {
		return input.Input{Quit: true}
	}
	return input.Input{}
}

func fastRules() config.Rules {
	r := config.Default()
	r.TickRate = 1000
	r.SpawnInterval = time.Hour
	r.CountdownInterval = 5 * time.Millisecond
	r.GameSeconds = 3
	return r
}

func TestSessionPlaysUntilTimeRunsOut(t *testing.T) {
	rec := &recorder{}
	in := &scriptedInput{rec: rec}
	s := NewSession(fastRules(), rec, rec, in, SessionOptions{
		Rand:         &seqRand{},
		IdleInterval: time.Millisecond,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := s.Run(ctx); err != nil {
		t.Fatalf("Expected nil error, got %v", err)
	}
	if ctx.Err() != nil {
		t.Fatal("Expected the session to quit before the deadline")
	}

	if len(rec.results) != 1 {
		t.Fatalf("Expected one result, got %d", len(rec.results))
	}
	if got := rec.results[0]; got.Reason != EndTime || got.Title != "Berozgari" {
		t.Errorf("Expected a timed-out lowest-tier result, got %+v", got)
	}
	if s.World().Phase() != PhaseEnded {
		t.Errorf("Expected ended world, got %v", s.World().Phase())
	}
	if !rec.startEnabled {
		t.Error("Expected start control re-enabled")
	}
	if rec.presents < 2 {
		t.Errorf("Expected frames to be presented, got %d", rec.presents)
	}
}

func TestSessionReturnsNilOnCancel(t *testing.T) {
	rec := &recorder{}
	s := NewSession(config.Default(), rec, rec, idleInput{}, SessionOptions{IdleInterval: time.Millisecond})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Run(ctx) }()

	time.Sleep(10 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Expected nil error on cancel, got %v", err)
		}
	case <-time.After(time.Second):
		t.Fatal("Expected Run to return after cancel")
	}
}

func TestSessionStopsOnPresentError(t *testing.T) {
	fe := &failingDisplay{err: errors.New("broken pipe")}
	s := NewSession(config.Default(), &recorder{}, fe, idleInput{}, SessionOptions{IdleInterval: time.Millisecond})

	err := s.Run(context.Background())
	if !errors.Is(err, fe.err) {
		t.Errorf("Expected present error, got %v", err)
	}
}

type idleInput struct{}

func (idleInput) Sample() input.Input { return input.Input{} }

type failingDisplay struct {
	DiscardFrontend
	err error
}

func (f *failingDisplay) Present() error { return f.err }
