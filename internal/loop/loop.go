// Package loop provides the game world, its tick driver and the session that
// schedules the periodic activities of a game.
package loop

import (
	"context"
	"io"
	"math/rand"
	"time"

	"github.com/charmbracelet/log"

	"github.com/tomz197/campus-invaders/internal/draw"
	"github.com/tomz197/campus-invaders/internal/loop/config"
	"github.com/tomz197/campus-invaders/internal/object"
)

// activityKind names one of the three periodic activities of a running game.
type activityKind int

const (
	activityTick activityKind = iota
	activitySpawn
	activityCountdown
)

func (k activityKind) String() string {
	switch k {
	case activityTick:
		return "tick"
	case activitySpawn:
		return "spawn"
	case activityCountdown:
		return "countdown"
	}
	return "unknown"
}

// activity is a timer firing. gen identifies the game that scheduled it.
type activity struct {
	kind activityKind
	gen  uint64
}

// SessionOptions are optional collaborators of a Session.
type SessionOptions struct {
	Logger *log.Logger
	// Rand overrides the random source. Defaults to one seeded from Rules.Seed.
	Rand object.Rand
	// IdleInterval is the frame interval while no game runs.
	// Defaults to config.ClientTargetFrameTime.
	IdleInterval time.Duration
}

// Session runs games for one player: it owns the world and the single
// goroutine every world mutation happens on.
type Session struct {
	rules   config.Rules
	world   *World
	display Display
	input   InputSource
	logger  *log.Logger
	idle    time.Duration

	events chan activity
	gen    uint64
	stop   context.CancelFunc // Cancels the running game's timers
}

// NewSession creates a session. Call Run to start it.
func NewSession(rules config.Rules, surface draw.Surface, display Display, in InputSource, opts SessionOptions) *Session {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	rng := opts.Rand
	if rng == nil {
		seed := rules.Seed
		if seed == 0 {
			seed = time.Now().UnixNano()
		}
		rng = rand.New(rand.NewSource(seed))
	}
	idle := opts.IdleInterval
	if idle <= 0 {
		idle = config.ClientTargetFrameTime
	}

	return &Session{
		rules:   rules,
		world:   NewWorld(rules, surface, display, rng),
		display: display,
		input:   in,
		logger:  logger,
		idle:    idle,
		events:  make(chan activity, 8),
	}
}

// World returns the session's world. Only touch it from the session goroutine.
func (s *Session) World() *World {
	return s.world
}

// Run drives the session until the player quits, ctx is cancelled, or
// presenting a frame fails. Quitting and cancellation return nil.
func (s *Session) Run(ctx context.Context) error {
	idle := time.NewTicker(s.idle)
	defer idle.Stop()
	defer s.stopGame()

	s.display.SetStartEnabled(true)
	if err := s.display.Present(); err != nil {
		return err
	}

	for {
		// Idle frames only run between games; a running game is driven by its ticks.
		var idleC <-chan time.Time
		if s.world.Phase() != PhaseRunning {
			idleC = idle.C
		}

		select {
		case <-ctx.Done():
			return nil

		case <-idleC:
			in := s.input.Sample()
			if in.Quit {
				return nil
			}
			if in.Start {
				s.startGame(ctx)
			}
			// Redraw the frozen world so front-end overlays start from a clean frame.
			s.world.Render()
			if err := s.display.Present(); err != nil {
				return err
			}

		case ev := <-s.events:
			if ev.gen != s.gen || s.world.Phase() != PhaseRunning {
				s.logger.Debug("dropped stale activity", "activity", ev.kind, "gen", ev.gen, "current", s.gen)
				continue
			}
			if quit := s.handle(ev.kind); quit {
				return nil
			}
			if s.world.Phase() == PhaseEnded {
				s.endGame()
			}
			if ev.kind == activityTick || s.world.Phase() == PhaseEnded {
				if err := s.display.Present(); err != nil {
					return err
				}
			}
		}
	}
}

// handle runs one activity on the world. Returns true if the player quit.
func (s *Session) handle(kind activityKind) bool {
	switch kind {
	case activityTick:
		in := s.input.Sample()
		if in.Quit {
			return true
		}
		s.world.Tick(in)
	case activitySpawn:
		s.world.SpawnEnemy()
	case activityCountdown:
		s.world.Countdown()
	}
	return false
}

// startGame resets the world and schedules the three activities of a new game.
func (s *Session) startGame(ctx context.Context) {
	s.stopGame()
	s.gen++
	s.world.Start()

	gameCtx, cancel := context.WithCancel(ctx)
	s.stop = cancel
	go s.every(gameCtx, s.rules.TickInterval(), activityTick, s.gen)
	go s.every(gameCtx, s.rules.SpawnInterval, activitySpawn, s.gen)
	go s.every(gameCtx, s.rules.CountdownInterval, activityCountdown, s.gen)

	s.logger.Info("game started", "gen", s.gen, "lives", s.rules.InitialLives, "time_left", s.world.TimeLeft)
}

// endGame cancels the activities of the game that just ended.
func (s *Session) endGame() {
	s.stopGame()
	w := s.world
	lives := 0
	if w.Player != nil {
		lives = w.Player.Lives
	}
	s.logger.Info("game ended", "score", w.Score, "reason", w.Reason(), "lives", lives, "time_left", w.TimeLeft)
}

func (s *Session) stopGame() {
	if s.stop != nil {
		s.stop()
		s.stop = nil
	}
}

// every signals kind on s.events at each interval until ctx is done.
// It never touches the world.
func (s *Session) every(ctx context.Context, interval time.Duration, kind activityKind, gen uint64) {
	t := time.NewTicker(interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			select {
			case s.events <- activity{kind: kind, gen: gen}:
			case <-ctx.Done():
				return
			}
		}
	}
}
