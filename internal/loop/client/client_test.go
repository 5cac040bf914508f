package client

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/tomz197/campus-invaders/internal/draw"
	"github.com/tomz197/campus-invaders/internal/input"
	"github.com/tomz197/campus-invaders/internal/loop"
	"github.com/tomz197/campus-invaders/internal/loop/config"
	"github.com/tomz197/campus-invaders/internal/loop/server"
)

// fakeTerminal records what was written in the last frame.
type fakeTerminal struct {
	cols, rows int
	texts      []string
	borders    []draw.Color
	clears     int
	frames     int
	begun      bool
	ended      bool
}

func (t *fakeTerminal) Size() (int, int, error) { return t.cols, t.rows, nil }
func (t *fakeTerminal) Begin()                  { t.begun = true }
func (t *fakeTerminal) End()                    { t.ended = true }
func (t *fakeTerminal) Clear()                  { t.clears++ }
func (t *fakeTerminal) DrawCanvas(*draw.Canvas) {}

func (t *fakeTerminal) DrawBorder(_ *draw.Canvas, col draw.Color) {
	t.borders = append(t.borders, col)
}

func (t *fakeTerminal) WriteAt(col, row int, s string, fg draw.Color) {
	t.texts = append(t.texts, s)
}

func (t *fakeTerminal) Flush() error {
	t.frames++
	return nil
}

// frame returns everything written since the last call.
func (t *fakeTerminal) frame() string {
	s := strings.Join(t.texts, "\n")
	t.texts = t.texts[:0]
	return s
}

// fakeKeys returns queued inputs, then nothing.
type fakeKeys struct {
	queue  []input.Input
	resets int
}

func (k *fakeKeys) Read() input.Input {
	if len(k.queue) == 0 {
		return input.Input{}
	}
	in := k.queue[0]
	k.queue = k.queue[1:]
	return in
}

func (k *fakeKeys) Reset() { k.resets++ }

type fakeClock struct{ t time.Time }

func (c *fakeClock) now() time.Time          { return c.t }
func (c *fakeClock) advance(d time.Duration) { c.t = c.t.Add(d) }

type countingCue struct{ n int }

func (c *countingCue) Flash() { c.n++ }

func newTestClient(opts ClientOptions) (*Client, *fakeTerminal, *fakeKeys, *fakeClock) {
	clock := &fakeClock{t: time.Unix(1_000_000, 0)}
	term := &fakeTerminal{cols: 100, rows: 30}
	keys := &fakeKeys{}
	opts.Now = clock.now
	return NewClient(term, keys, opts), term, keys, clock
}

func TestClientCanvasFitsTerminal(t *testing.T) {
	c, _, _, _ := newTestClient(ClientOptions{})
	cv := c.Canvas()

	if cv.TerminalWidth() != 100 || cv.TerminalHeight() != 29 {
		t.Errorf("Expected a 100x29 render area, got %dx%d", cv.TerminalWidth(), cv.TerminalHeight())
	}
	if cv.OffsetRow() != 1 {
		t.Errorf("Expected one HUD row above the canvas, got offset %d", cv.OffsetRow())
	}
	if cv.Width() != config.CanvasWidth || cv.Height() != config.CanvasHeight {
		t.Errorf("Expected logical size %vx%v, got %vx%v", config.CanvasWidth, config.CanvasHeight, cv.Width(), cv.Height())
	}
}

func TestPresentShowsHUDAndScreens(t *testing.T) {
	c, term, _, _ := newTestClient(ClientOptions{Username: "student"})

	c.SetStartEnabled(true)
	if err := c.Present(); err != nil {
		t.Fatalf("Present: %v", err)
	}
	title := term.frame()
	if !strings.Contains(title, "Controls") || !strings.Contains(title, "Welcome, student") {
		t.Errorf("Expected the title screen, got:\n%s", title)
	}

	c.SetStartEnabled(false)
	c.HideResult()
	c.SetScore(42)
	c.SetTime(17)
	c.SetLives(2)
	c.Present()
	hud := term.frame()
	for _, want := range []string{"Score: 42", "Time: 17s", "Lives: 2"} {
		if !strings.Contains(hud, want) {
			t.Errorf("Expected HUD to contain %q, got:\n%s", want, hud)
		}
	}
	if strings.Contains(hud, "Controls") {
		t.Error("Expected the title screen to be gone while playing")
	}

	c.SetStartEnabled(true)
	c.ShowResult(loop.Result{Title: "ORACLE", Message: "Score: 350. Badhai ho aapko", Score: 350, Reason: loop.EndTime})
	c.Present()
	result := term.frame()
	if !strings.Contains(result, "ORACLE") || !strings.Contains(result, "Badhai ho aapko") {
		t.Errorf("Expected the result panel, got:\n%s", result)
	}
	if !strings.Contains(result, "Time's up!") {
		t.Errorf("Expected the end reason, got:\n%s", result)
	}

	if term.clears < 2 {
		t.Errorf("Expected a clear on each screen change, got %d", term.clears)
	}
}

func TestFlashClearsItselfAfterDuration(t *testing.T) {
	cue := &countingCue{}
	c, term, _, clock := newTestClient(ClientOptions{Cue: cue})

	c.Flash()
	if !c.Flashing() {
		t.Fatal("Expected the damage frame right after a hit")
	}
	c.Present()
	if got := term.borders[len(term.borders)-1]; got != flashColor {
		t.Errorf("Expected a red border while flashing, got %v", got)
	}
	if cue.n != 1 {
		t.Errorf("Expected the extra cue to play once, got %d", cue.n)
	}

	clock.advance(FlashDuration)
	if c.Flashing() {
		t.Error("Expected the damage frame to clear after 300ms")
	}
	c.Present()
	if got := term.borders[len(term.borders)-1]; got != borderColor {
		t.Errorf("Expected the normal border after the flash, got %v", got)
	}
}

func TestSampleGatesStartAndResetsKeys(t *testing.T) {
	c, _, keys, _ := newTestClient(ClientOptions{})
	keys.queue = []input.Input{{Start: true, Pressed: []byte{'\r'}}, {Start: true, Pressed: []byte{'r'}}}

	c.SetStartEnabled(false)
	if c.Sample().Start {
		t.Error("Expected start to be ignored while disabled")
	}
	if keys.resets != 1 {
		t.Errorf("Expected held keys reset when start is disabled, got %d", keys.resets)
	}

	c.SetStartEnabled(true)
	if !c.Sample().Start {
		t.Error("Expected start while enabled")
	}
}

func TestSampleQuitsAfterInactivity(t *testing.T) {
	c, term, _, clock := newTestClient(ClientOptions{
		InactivityWarn:       time.Minute,
		InactivityDisconnect: 2 * time.Minute,
	})

	clock.advance(61 * time.Second)
	if c.Sample().Quit {
		t.Fatal("Expected only a warning after a minute")
	}
	c.Present()
	if !strings.Contains(term.frame(), "INACTIVITY WARNING") {
		t.Error("Expected the inactivity warning")
	}

	clock.advance(time.Minute)
	if !c.Sample().Quit {
		t.Error("Expected a quit after two idle minutes")
	}
}

func TestShutdownSwitchesScreenAndDisconnects(t *testing.T) {
	lobby := server.NewLobby(3)
	c, term, _, clock := newTestClient(ClientOptions{
		Username:      "ivan",
		Lobby:         lobby,
		ShutdownGrace: 5 * time.Second,
	})
	if lobby.Active() != 1 {
		t.Fatalf("Expected the client to join the lobby, got %d", lobby.Active())
	}

	go lobby.Shutdown(10 * time.Millisecond)
	deadline := time.Now().Add(time.Second)
	for c.State().Screen != ScreenShutdown && time.Now().Before(deadline) {
		c.Sample()
		time.Sleep(time.Millisecond)
	}
	if c.State().Screen != ScreenShutdown {
		t.Fatal("Expected the shutdown screen")
	}
	c.Present()
	if !strings.Contains(term.frame(), "SERVER SHUTTING DOWN") {
		t.Error("Expected the shutdown banner")
	}

	clock.advance(5 * time.Second)
	if !c.Sample().Quit {
		t.Error("Expected a quit once the grace period is over")
	}
}

func TestResultRecordsScoreInLobby(t *testing.T) {
	lobby := server.NewLobby(3)
	c, term, _, _ := newTestClient(ClientOptions{Username: "judy", Lobby: lobby})

	c.SetStartEnabled(true)
	c.ShowResult(loop.ResultFor(150))

	top := lobby.TopScores()
	if len(top) != 1 || top[0].Username != "judy" || top[0].Score != 150 {
		t.Fatalf("Expected judy=150 on the board, got %+v", top)
	}
	c.Present()
	if !strings.Contains(term.frame(), "Top scores") {
		t.Error("Expected the leaderboard on the result panel")
	}
}

func TestBurstSpawnsDebrisThatExpires(t *testing.T) {
	c, _, _, _ := newTestClient(ClientOptions{})
	c.Burst(300, 200, draw.Red)

	if len(c.particles) == 0 {
		t.Fatal("Expected debris particles")
	}
	for i := 0; i < 100; i++ {
		c.Present()
	}
	if len(c.particles) != 0 {
		t.Errorf("Expected all debris to expire, %d left", len(c.particles))
	}
}

func TestRunPlaysAndQuits(t *testing.T) {
	lobby := server.NewLobby(3)
	c, term, keys, _ := newTestClient(ClientOptions{Username: "kim", Lobby: lobby})
	keys.queue = []input.Input{{Quit: true, Pressed: []byte{'q'}}}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := c.Run(ctx, config.Default(), nil); err != nil {
		t.Fatalf("Expected nil error, got %v", err)
	}
	if !term.begun || !term.ended {
		t.Error("Expected the terminal to be set up and restored")
	}
	if lobby.Active() != 0 {
		t.Errorf("Expected the client to leave the lobby, %d remain", lobby.Active())
	}
}

func TestRunFitsCanvasToRules(t *testing.T) {
	tests := []struct {
		name          string
		width, height float64
	}{
		{"default field", config.CanvasWidth, config.CanvasHeight},
		{"wide field", 900, 600},
		{"small field", 300, 200},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _, keys, _ := newTestClient(ClientOptions{})
			keys.queue = []input.Input{{Quit: true, Pressed: []byte{'q'}}}
			rules := config.Default()
			rules.CanvasWidth, rules.CanvasHeight = tt.width, tt.height

			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := c.Run(ctx, rules, nil); err != nil {
				t.Fatalf("Expected nil error, got %v", err)
			}

			cv := c.Canvas()
			if cv.Width() != tt.width || cv.Height() != tt.height {
				t.Errorf("Expected logical size %vx%v, got %vx%v", tt.width, tt.height, cv.Width(), cv.Height())
			}
			if cv.TerminalWidth() > 100 || cv.TerminalHeight() > 29 || cv.OffsetRow() != 1 {
				t.Errorf("Expected the canvas inside the 100x29 play area, got %dx%d at row %d",
					cv.TerminalWidth(), cv.TerminalHeight(), cv.OffsetRow())
			}
		})
	}
}
