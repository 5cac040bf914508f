package tui

import (
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/tomz197/campus-invaders/internal/draw"
	"github.com/tomz197/campus-invaders/internal/input"
)

func newTestScreen(t *testing.T) (*Screen, tcell.SimulationScreen) {
	t.Helper()
	sim := tcell.NewSimulationScreen("UTF-8")
	if err := sim.Init(); err != nil {
		t.Fatalf("Failed to init screen: %v", err)
	}
	sim.SetSize(80, 24)
	return New(sim, 0), sim
}

// waitFor reads until cond holds or a second passes.
func waitFor(s *Screen, cond func(input.Input) bool) (input.Input, bool) {
	deadline := time.Now().Add(time.Second)
	for time.Now().Before(deadline) {
		if in := s.Read(); cond(in) {
			return in, true
		}
		time.Sleep(time.Millisecond)
	}
	return input.Input{}, false
}

func TestScreenSize(t *testing.T) {
	s, sim := newTestScreen(t)
	defer sim.Fini()

	cols, rows, err := s.Size()
	if err != nil || cols != 80 || rows != 24 {
		t.Errorf("Expected 80x24, got %dx%d (%v)", cols, rows, err)
	}
}

func TestWriteAtIsOneBased(t *testing.T) {
	s, sim := newTestScreen(t)
	defer sim.Fini()

	s.WriteAt(3, 2, "Hi", draw.Gold)
	s.Flush()

	mainc, _, style, _ := sim.GetContent(2, 1)
	if mainc != 'H' {
		t.Errorf("Expected 'H' at (2,1), got %q", mainc)
	}
	fg, _, _ := style.Decompose()
	if fg != rgb(draw.Gold) {
		t.Errorf("Expected gold foreground, got %v", fg)
	}
	if r, _, _, _ := sim.GetContent(3, 1); r != 'i' {
		t.Errorf("Expected 'i' at (3,1), got %q", r)
	}
}

func TestDrawCanvasCopiesCells(t *testing.T) {
	s, sim := newTestScreen(t)
	defer sim.Fini()

	c := draw.NewScaledCanvas(10, 5, 10, 10)
	c.SetOffset(4, 2)
	c.FillRect(0, 0, 1, 2, draw.Red) // Column 0, both halves of row 0
	s.DrawCanvas(c)
	s.Flush()

	mainc, _, style, _ := sim.GetContent(4, 2)
	if mainc != draw.BlockFull {
		t.Errorf("Expected a full block at the canvas origin, got %q", mainc)
	}
	fg, _, _ := style.Decompose()
	if fg != rgb(draw.Red) {
		t.Errorf("Expected red foreground, got %v", fg)
	}
	if r, _, _, _ := sim.GetContent(5, 2); r != draw.BlockEmpty {
		t.Errorf("Expected an empty cell next to the rectangle, got %q", r)
	}
}

func TestDrawBorderFramesCenteredArea(t *testing.T) {
	s, sim := newTestScreen(t)
	defer sim.Fini()

	c := draw.NewScaledCanvas(10, 5, 10, 10)
	c.SetOffset(4, 3)
	s.DrawBorder(c, draw.Gray)
	s.Flush()

	tests := []struct {
		x, y int
		want rune
	}{
		{3, 3, '│'},
		{14, 3, '│'},
		{3, 8, '└'},
		{14, 8, '┘'},
		{4, 8, '─'},
	}
	for _, tt := range tests {
		if r, _, _, _ := sim.GetContent(tt.x, tt.y); r != tt.want {
			t.Errorf("At (%d,%d): expected %q, got %q", tt.x, tt.y, tt.want, r)
		}
	}
}

func TestReadMapsKeys(t *testing.T) {
	tests := []struct {
		name string
		ev   *tcell.EventKey
		held func(input.Input) bool
	}{
		{"left arrow", tcell.NewEventKey(tcell.KeyLeft, 0, tcell.ModNone), func(in input.Input) bool { return in.Left }},
		{"d", tcell.NewEventKey(tcell.KeyRune, 'd', tcell.ModNone), func(in input.Input) bool { return in.Right }},
		{"up arrow", tcell.NewEventKey(tcell.KeyUp, 0, tcell.ModNone), func(in input.Input) bool { return in.Fire }},
		{"space", tcell.NewEventKey(tcell.KeyRune, ' ', tcell.ModNone), func(in input.Input) bool { return in.Fire }},
		{"enter", tcell.NewEventKey(tcell.KeyEnter, '\r', tcell.ModNone), func(in input.Input) bool { return in.Start }},
		{"q", tcell.NewEventKey(tcell.KeyRune, 'q', tcell.ModNone), func(in input.Input) bool { return in.Quit }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, sim := newTestScreen(t)
			s.Begin()
			defer s.End()

			if err := sim.PostEvent(tt.ev); err != nil {
				t.Fatalf("PostEvent: %v", err)
			}
			in, ok := waitFor(s, tt.held)
			if !ok {
				t.Fatal("Expected the key to be held")
			}
			if len(in.Pressed) == 0 {
				t.Error("Expected the press to count as activity")
			}
		})
	}
}

func TestResetForgetsHeldKeys(t *testing.T) {
	s, sim := newTestScreen(t)
	s.Begin()
	defer s.End()

	sim.PostEvent(tcell.NewEventKey(tcell.KeyRight, 0, tcell.ModNone))
	if _, ok := waitFor(s, func(in input.Input) bool { return in.Right }); !ok {
		t.Fatal("Expected right to be held")
	}

	s.Reset()
	if s.Read().Right {
		t.Error("Expected right to be released after Reset")
	}
}
