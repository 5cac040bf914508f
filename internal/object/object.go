// Package object defines the game entities and how each one moves and draws.
//
// All motion is measured in ticks: one call to Update is one tick of the
// world, and speeds are logical units per tick.
package object

import (
	"github.com/tomz197/campus-invaders/internal/draw"
	"github.com/tomz197/campus-invaders/internal/input"
)

// Input is an alias for the input package's Input type.
type Input = input.Input

// Rand is the source of randomness entities draw from.
// *rand.Rand satisfies it; tests inject scripted sequences.
type Rand interface {
	// Float64 returns a number in [0, 1).
	Float64() float64
	// Intn returns a number in [0, n).
	Intn(n int) int
}

// Spawner allows objects to spawn new objects during update.
type Spawner interface {
	Spawn(obj Object)
}

// Bounds are the logical dimensions of the play field.
type Bounds struct {
	Width  float64
	Height float64
}

// UpdateContext provides all the information an object needs during update.
type UpdateContext struct {
	Input   Input   // Held keys, sampled once per tick
	Bounds  Bounds  // Play field size
	Spawner Spawner // Receives projectiles fired during the update
	Player  *Player // Target for enemy fire; nil outside a game
	Rand    Rand    // Jitter for projectile speed and cooldowns
}

// Object is a drawable game entity.
type Object interface {
	Draw(s draw.Surface)
}

// ShouldRenderBlink returns true if an object with the given remaining
// protection ticks should be drawn this tick. Protected objects alternate
// between hidden and shown every period ticks, starting hidden.
// Returns true always if remaining <= 0 (no protection).
func ShouldRenderBlink(remaining, period int) bool {
	if remaining <= 0 || period <= 0 {
		return true
	}
	return (remaining/period)%2 != 0
}
