package client

import (
	"time"

	"github.com/tomz197/campus-invaders/internal/loop"
)

// Screen is what the client currently shows above the canvas.
type Screen int

const (
	ScreenTitle    Screen = iota // Title screen, before the first game
	ScreenPlaying                // Active gameplay
	ScreenResult                 // Game over, result panel shown
	ScreenShutdown               // Server is shutting down
)

// ClientState holds what the front end was last told by the world, plus
// its own timers. It is only touched from the session goroutine.
type ClientState struct {
	Screen       Screen
	prevScreen   Screen
	Score        int
	TimeLeft     int
	Lives        int
	Result       loop.Result
	StartEnabled bool
	Running      bool // False once the client must disconnect

	flashUntil  time.Time // Damage cue visible until then
	shutdownAt  time.Time // Auto-disconnect deadline on shutdown
	lastInput   time.Time
	isInactive  bool // Whether the client is in inactive warning state
	wasInactive bool
}

// NewClientState creates a new initialized client state.
func NewClientState(now time.Time) *ClientState {
	return &ClientState{
		Screen:     ScreenTitle,
		prevScreen: ScreenTitle,
		Running:    true,
		lastInput:  now,
	}
}
