// Package client is the terminal front end of one player: it draws the world's
// canvas, the HUD and the screens, and feeds held keys back to the session.
package client

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/tomz197/campus-invaders/internal/draw"
	"github.com/tomz197/campus-invaders/internal/input"
	"github.com/tomz197/campus-invaders/internal/loop"
	"github.com/tomz197/campus-invaders/internal/loop/config"
	"github.com/tomz197/campus-invaders/internal/loop/server"
	"github.com/tomz197/campus-invaders/internal/object"
)

// FlashDuration is how long the damage frame stays visible.
const FlashDuration = 300 * time.Millisecond

// Default render limits.
const (
	MaxTermWidth  = 120
	MaxTermHeight = 40
)

// Client handles rendering and input for a single player.
type Client struct {
	term      Terminal
	keys      KeySource
	canvas    *draw.Canvas
	limits    draw.Limits
	state     *ClientState
	particles []*object.Particle
	rng       object.Rand

	lobby  *server.Lobby
	handle *server.ClientHandle

	opts        ClientOptions
	gameSeconds int // Shown on the title screen
	now         func() time.Time
}

// ClientOptions configures the client.
type ClientOptions struct {
	Username string
	// Lobby is shared by all clients of a server. Nil for local play.
	Lobby *server.Lobby
	// Cue plays alongside the red frame on every hit, e.g. a beep.
	Cue loop.DamageCue

	MaxCols, MaxRows int // Render area limits; 0 uses the defaults

	// Zero disables the inactivity warning or disconnect.
	InactivityWarn       time.Duration
	InactivityDisconnect time.Duration
	// ShutdownGrace is how long the shutdown screen shows before disconnecting.
	ShutdownGrace time.Duration

	// Canvas logical size. Zero uses the default canvas.
	CanvasWidth, CanvasHeight float64

	Rand object.Rand       // Debris randomness
	Now  func() time.Time // Clock, for tests
}

// Ensure Client satisfies what the session needs.
var (
	_ loop.Display     = (*Client)(nil)
	_ loop.InputSource = (*Client)(nil)
	_ loop.EffectSink  = (*Client)(nil)
	_ object.Spawner   = (*Client)(nil)
)

// NewClient creates a client rendering to term and reading from keys.
func NewClient(term Terminal, keys KeySource, opts ClientOptions) *Client {
	if opts.MaxCols <= 0 {
		opts.MaxCols = MaxTermWidth
	}
	if opts.MaxRows <= 0 {
		opts.MaxRows = MaxTermHeight
	}
	if opts.CanvasWidth <= 0 || opts.CanvasHeight <= 0 {
		opts.CanvasWidth, opts.CanvasHeight = config.CanvasWidth, config.CanvasHeight
	}
	if opts.ShutdownGrace <= 0 {
		opts.ShutdownGrace = time.Duration(config.ShutdownDisplaySeconds * float64(time.Second))
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	rng := opts.Rand
	if rng == nil {
		rng = rand.New(rand.NewSource(now().UnixNano()))
	}

	limits := draw.Limits{MaxCols: opts.MaxCols, MaxRows: opts.MaxRows, HUDRows: 1}
	cols, rows, err := term.Size()
	if err != nil {
		cols, rows = 80, 24
	}
	canvas := draw.NewScaledCanvas(1, 1, opts.CanvasWidth, opts.CanvasHeight)
	draw.Fit(cols, rows, limits).Apply(canvas)

	c := &Client{
		term:   term,
		keys:   keys,
		canvas: canvas,
		limits: limits,
		state:  NewClientState(now()),
		rng:    rng,
		lobby:  opts.Lobby,
		opts:   opts,
		now:    now,

		gameSeconds: config.GameSeconds,
	}
	if c.lobby != nil {
		c.handle = c.lobby.RegisterClient(opts.Username)
	}
	return c
}

// Canvas is the surface the world draws on.
func (c *Client) Canvas() *draw.Canvas {
	return c.canvas
}

// State returns the client's view of the game.
func (c *Client) State() *ClientState {
	return c.state
}

// ID returns the lobby session ID, or uuid.Nil for local play.
func (c *Client) ID() uuid.UUID {
	if c.handle == nil {
		return uuid.Nil
	}
	return c.handle.ID
}

// Run plays games until the player quits, the connection fails or ctx is
// cancelled. Blocks until then.
func (c *Client) Run(ctx context.Context, rules config.Rules, logger *log.Logger) error {
	if logger == nil {
		logger = log.Default()
	}
	if c.handle != nil {
		logger = logger.With("session", c.handle.ID.String())
		defer c.lobby.UnregisterClient(c.handle.ID)
	}

	c.gameSeconds = rules.GameSeconds
	c.fitCanvas(rules.CanvasWidth, rules.CanvasHeight)
	c.term.Begin()
	defer c.term.End()

	session := loop.NewSession(rules, c.canvas, c, c, loop.SessionOptions{Logger: logger})
	if err := session.Run(ctx); err != nil {
		return fmt.Errorf("client %s: %w", c.opts.Username, err)
	}
	return nil
}

// fitCanvas replaces the canvas when the play field differs from its
// logical size, so the whole field is drawn.
func (c *Client) fitCanvas(width, height float64) {
	if width <= 0 || height <= 0 || (width == c.canvas.Width() && height == c.canvas.Height()) {
		return
	}
	c.canvas = draw.NewScaledCanvas(1, 1, width, height)
	cols, rows, err := c.term.Size()
	if err != nil {
		cols, rows = 80, 24
	}
	draw.Fit(cols, rows, c.limits).Apply(c.canvas)
}

// Sample reads the held keys for this tick. It also turns inactivity,
// shutdown and a closed lobby into a quit.
func (c *Client) Sample() input.Input {
	c.processServerEvents()

	in := c.keys.Read()
	now := c.now()
	idle := now.Sub(c.state.lastInput)

	if len(in.Pressed) > 0 {
		c.state.lastInput = now
		c.state.isInactive = false
	} else if c.opts.InactivityDisconnect > 0 && idle > c.opts.InactivityDisconnect {
		c.state.Running = false
	} else if c.opts.InactivityWarn > 0 && idle > c.opts.InactivityWarn {
		c.state.isInactive = true
	}

	if c.state.Screen == ScreenShutdown && !now.Before(c.state.shutdownAt) {
		c.state.Running = false
	}
	if !c.state.StartEnabled || c.state.Screen == ScreenShutdown {
		in.Start = false
	}
	if in.Quit {
		c.state.Running = false
	}
	if !c.state.Running {
		in.Quit = true
	}
	return in
}

// processServerEvents handles events from the lobby.
func (c *Client) processServerEvents() {
	if c.handle == nil {
		return
	}
	for {
		select {
		case event, ok := <-c.handle.EventsCh:
			if !ok {
				// Lobby closed the channel
				c.state.Running = false
				return
			}
			switch event.Type {
			case server.EventServerShutdown:
				if c.state.Screen != ScreenShutdown {
					c.state.Screen = ScreenShutdown
					c.state.shutdownAt = c.now().Add(c.opts.ShutdownGrace)
				}
			}
		default:
			return
		}
	}
}

func (c *Client) SetScore(score int) {
	c.state.Score = score
}

func (c *Client) SetTime(seconds int) {
	c.state.TimeLeft = seconds
}

func (c *Client) SetLives(lives int) {
	c.state.Lives = lives
}

// ShowResult switches to the result panel and records the score in the lobby.
func (c *Client) ShowResult(r loop.Result) {
	c.state.Result = r
	if c.state.Screen != ScreenShutdown {
		c.state.Screen = ScreenResult
	}
	if c.handle != nil {
		c.lobby.RecordScore(c.handle.ID, r.Score)
	}
}

// HideResult switches to the playing screen.
func (c *Client) HideResult() {
	c.state.Result = loop.Result{}
	if c.state.Screen != ScreenShutdown {
		c.state.Screen = ScreenPlaying
	}
}

// Flash shows the red damage frame for FlashDuration.
func (c *Client) Flash() {
	c.state.flashUntil = c.now().Add(FlashDuration)
	if c.opts.Cue != nil {
		c.opts.Cue.Flash()
	}
}

// Flashing reports whether the damage frame is visible.
func (c *Client) Flashing() bool {
	return c.now().Before(c.state.flashUntil)
}

// SetStartEnabled enables or disables the start action. Disabling it also
// forgets held keys, so the key that started a game does not act in it.
func (c *Client) SetStartEnabled(enabled bool) {
	c.state.StartEnabled = enabled
	if !enabled {
		c.keys.Reset()
	}
}

// Burst throws debris out of a destroyed enemy.
func (c *Client) Burst(x, y float64, col draw.Color) {
	object.SpawnDebris(x, y, object.DebrisCount, col, c.rng, c)
}

// Spawn adds a debris particle.
// Implements object.Spawner interface.
func (c *Client) Spawn(obj object.Object) {
	if p, ok := obj.(*object.Particle); ok {
		c.particles = append(c.particles, p)
	}
}
