package loop

import (
	"github.com/tomz197/campus-invaders/internal/draw"
	"github.com/tomz197/campus-invaders/internal/loop/config"
	"github.com/tomz197/campus-invaders/internal/object"
)

// Phase is the lifecycle state of a world.
type Phase int

const (
	PhaseIdle    Phase = iota // Before the first game
	PhaseRunning              // Game in progress
	PhaseEnded                // Result shown, waiting for restart
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseRunning:
		return "running"
	case PhaseEnded:
		return "ended"
	}
	return "unknown"
}

// World holds the state of one game. It is not safe for concurrent use:
// every method must be called from the goroutine that drives it.
type World struct {
	rules   config.Rules
	bounds  object.Bounds
	surface draw.Surface
	fe      Frontend
	effects EffectSink // nil if fe has none
	rng     object.Rand
	spawner *object.EnemySpawner

	Player       *object.Player
	Bullets      []*object.Bullet
	Enemies      []*object.Enemy
	EnemyBullets []*object.EnemyBullet
	Score        int
	TimeLeft     int // Seconds

	phase  Phase
	reason EndReason
	// Set when the game ended during the current callback; the result is
	// shown once the callback is done.
	pendingResult bool
	result        Result
}

// NewWorld creates an idle world drawing on surface and reporting to fe.
func NewWorld(rules config.Rules, surface draw.Surface, fe Frontend, rng object.Rand) *World {
	if fe == nil {
		fe = DiscardFrontend{}
	}
	w := &World{
		rules:   rules,
		bounds:  rules.Bounds(),
		surface: surface,
		fe:      fe,
		rng:     rng,
		spawner: object.NewEnemySpawner(rules.Subjects, rng),
		phase:   PhaseIdle,
	}
	if es, ok := fe.(EffectSink); ok {
		w.effects = es
	}
	return w
}

// Phase returns the current lifecycle state.
func (w *World) Phase() Phase {
	return w.phase
}

// Reason returns why the last game ended.
func (w *World) Reason() EndReason {
	return w.reason
}

// Result returns the last shown result.
func (w *World) Result() Result {
	return w.result
}

// Bounds returns the play field size.
func (w *World) Bounds() object.Bounds {
	return w.bounds
}

// Start resets the world and begins a new game.
func (w *World) Start() {
	w.Player = object.NewPlayer(w.bounds, w.rules.InitialLives)
	w.Bullets = w.Bullets[:0]
	w.Enemies = w.Enemies[:0]
	w.EnemyBullets = w.EnemyBullets[:0]
	w.Score = 0
	w.TimeLeft = w.rules.GameSeconds
	w.phase = PhaseRunning
	w.reason = EndNone
	w.pendingResult = false
	w.result = Result{}

	w.fe.HideResult()
	w.fe.SetStartEnabled(false)
	w.refreshStats()
}

// Spawn adds a projectile fired during an update.
// Implements object.Spawner interface.
func (w *World) Spawn(obj object.Object) {
	switch o := obj.(type) {
	case *object.Bullet:
		w.Bullets = append(w.Bullets, o)
	case *object.EnemyBullet:
		w.EnemyBullets = append(w.EnemyBullets, o)
	case *object.Enemy:
		w.Enemies = append(w.Enemies, o)
	}
}

// SpawnEnemy adds one enemy at the top of the field.
func (w *World) SpawnEnemy() {
	if w.phase != PhaseRunning {
		return
	}
	w.Enemies = append(w.Enemies, w.spawner.Next(w.bounds))
}

// Countdown takes one second off the clock and ends the game at zero.
func (w *World) Countdown() {
	if w.phase != PhaseRunning {
		return
	}
	w.TimeLeft--
	w.fe.SetTime(max(w.TimeLeft, 0))
	if w.TimeLeft <= 0 {
		w.end(EndTime)
	}
	w.finish()
}

// end stops the game. Calling it again, or outside a game, does nothing.
func (w *World) end(reason EndReason) {
	if w.phase != PhaseRunning {
		return
	}
	w.phase = PhaseEnded
	w.reason = reason
	w.pendingResult = true
}

// finish shows the result of a game that ended during the current callback.
func (w *World) finish() {
	if !w.pendingResult {
		return
	}
	w.pendingResult = false
	w.result = ResultFor(w.Score)
	w.result.Reason = w.reason
	w.fe.SetStartEnabled(true)
	w.fe.ShowResult(w.result)
}

func (w *World) refreshStats() {
	w.fe.SetScore(w.Score)
	w.fe.SetTime(max(w.TimeLeft, 0))
	lives := 0
	if w.Player != nil {
		lives = w.Player.Lives
	}
	w.fe.SetLives(lives)
}

// addScore changes the score, never going below zero.
func (w *World) addScore(delta int) {
	w.Score = max(w.Score+delta, 0)
	w.fe.SetScore(w.Score)
}

// Render clears the surface and draws every entity, back to front.
func (w *World) Render() {
	if w.surface == nil {
		return
	}
	w.surface.Clear()
	if w.Player != nil {
		w.Player.Draw(w.surface)
	}
	for _, b := range w.Bullets {
		b.Draw(w.surface)
	}
	for _, e := range w.Enemies {
		e.Draw(w.surface)
	}
	for _, b := range w.EnemyBullets {
		b.Draw(w.surface)
	}
}
