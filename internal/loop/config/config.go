// Package config centralizes all tunable game parameters.
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/tomz197/campus-invaders/internal/object"
)

// Canvas - the logical play field. Rendering scales it to the terminal.
const (
	CanvasWidth  = 600
	CanvasHeight = 400
)

// Timing
const (
	TickRate          = 60 // Hz
	SpawnInterval     = 900 * time.Millisecond
	CountdownInterval = time.Second
	GameSeconds       = 60
)

// Player
const (
	InitialLives      = 3
	MaxUsernameLength = 16 // Maximum display length for player usernames
)

// Scoring
const (
	EnemyCollisionPenalty = 15
	EnemyBulletPenalty    = 8
)

// Shutdown
const (
	ShutdownDisplaySeconds = 10.0 // Seconds to show shutdown message before auto-disconnect
)

// Inactivity
const (
	InactivityWarnUser       = 90  // Seconds
	InactivityDisconnectUser = 120 // Seconds
)

// Client rendering
const (
	ClientTargetFPS       = 30 // Idle and result screens only
	ClientTargetFrameTime = time.Second / ClientTargetFPS
)

// Rules are the per-game tunables. The zero value is not usable; start from Default.
type Rules struct {
	CanvasWidth       float64       `mapstructure:"canvas_width"`
	CanvasHeight      float64       `mapstructure:"canvas_height"`
	TickRate          int           `mapstructure:"tick_rate"`
	SpawnInterval     time.Duration `mapstructure:"spawn_interval"`
	CountdownInterval time.Duration `mapstructure:"countdown_interval"`
	GameSeconds       int           `mapstructure:"game_seconds"`
	InitialLives      int           `mapstructure:"lives"`

	EnemyCollisionPenalty int `mapstructure:"enemy_collision_penalty"`
	EnemyBulletPenalty    int `mapstructure:"enemy_bullet_penalty"`

	Subjects []string `mapstructure:"subjects"`
	// Seed for the random source. 0 seeds from the clock.
	Seed int64 `mapstructure:"seed"`
}

// Default returns the standard rules.
func Default() Rules {
	return Rules{
		CanvasWidth:           CanvasWidth,
		CanvasHeight:          CanvasHeight,
		TickRate:              TickRate,
		SpawnInterval:         SpawnInterval,
		CountdownInterval:     CountdownInterval,
		GameSeconds:           GameSeconds,
		InitialLives:          InitialLives,
		EnemyCollisionPenalty: EnemyCollisionPenalty,
		EnemyBulletPenalty:    EnemyBulletPenalty,
		Subjects:              append([]string(nil), object.DefaultSubjects...),
	}
}

// TickInterval is the time between two ticks of the world.
func (r Rules) TickInterval() time.Duration {
	return time.Second / time.Duration(r.TickRate)
}

// Bounds returns the play field size.
func (r Rules) Bounds() object.Bounds {
	return object.Bounds{Width: r.CanvasWidth, Height: r.CanvasHeight}
}

// Validate reports every rule that cannot run a game.
func (r Rules) Validate() error {
	var errs []error
	if r.CanvasWidth < object.PlayerWidth || r.CanvasWidth < object.EnemyWidth {
		errs = append(errs, fmt.Errorf("game.canvas_width must be at least the player and enemy width (%v)", object.PlayerWidth))
	}
	if r.CanvasHeight < object.PlayerHeight*2 {
		errs = append(errs, fmt.Errorf("game.canvas_height must be at least %v", object.PlayerHeight*2))
	}
	if r.TickRate <= 0 {
		errs = append(errs, errors.New("game.tick_rate must be positive"))
	}
	if r.SpawnInterval <= 0 {
		errs = append(errs, errors.New("game.spawn_interval must be positive"))
	}
	if r.CountdownInterval <= 0 {
		errs = append(errs, errors.New("game.countdown_interval must be positive"))
	}
	if r.GameSeconds <= 0 {
		errs = append(errs, errors.New("game.game_seconds must be positive"))
	}
	if r.InitialLives <= 0 {
		errs = append(errs, errors.New("game.lives must be positive"))
	}
	if r.EnemyCollisionPenalty < 0 || r.EnemyBulletPenalty < 0 {
		errs = append(errs, errors.New("game penalties must not be negative"))
	}
	if len(r.Subjects) == 0 {
		errs = append(errs, errors.New("game.subjects must not be empty"))
	}
	return errors.Join(errs...)
}
