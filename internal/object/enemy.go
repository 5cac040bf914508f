package object

import (
	"math"

	"github.com/tomz197/campus-invaders/internal/draw"
	"github.com/tomz197/campus-invaders/internal/physics"
)

// Enemy tuning.
const (
	EnemyWidth  = 40.0
	EnemyHeight = 40.0

	// Points per unit of speed; faster enemies are worth more.
	EnemyPointsPerSpeed = 12

	// EnemyFireRate is the base interval between enemy shots in ticks.
	EnemyFireRate = 30
	// EnemyFireJitter is the random extra on top of EnemyFireRate.
	EnemyFireJitter = 60

	// EnemyAimTolerance plus half the enemy width is how far apart the
	// enemy and player centres may be for the enemy to fire.
	EnemyAimTolerance = 25.0
)

// Enemy colours, picked at random on spawn.
var EnemyColors = []draw.Color{
	draw.Hex(0xff5050),
	draw.Hex(0xff9933),
	draw.Hex(0x33ff33),
	draw.Hex(0x66ccff),
}

// Enemy is a descending subject block that fires when lined up with the player.
type Enemy struct {
	X, Y          float64 // Top-left corner
	Width, Height float64
	Speed         float64 // Units per tick, downward
	Points        int
	Subject       string
	Color         draw.Color

	FireRate     int // Base ticks between shots
	FireCooldown int // Ticks until the next shot
}

// EnemyPoints returns the score awarded for destroying an enemy with the given speed.
func EnemyPoints(speed float64) int {
	return int(math.Floor(speed * EnemyPointsPerSpeed))
}

// NewEnemy creates an enemy with its top-left corner at (x, y).
func NewEnemy(x, y, speed float64, subject string, color draw.Color, fireCooldown int) *Enemy {
	return &Enemy{
		X:            x,
		Y:            y,
		Width:        EnemyWidth,
		Height:       EnemyHeight,
		Speed:        speed,
		Points:       EnemyPoints(speed),
		Subject:      subject,
		Color:        color,
		FireRate:     EnemyFireRate,
		FireCooldown: fireCooldown,
	}
}

// Box returns the enemy's bounding box.
func (e *Enemy) Box() physics.Rect {
	return physics.Rect{X: e.X, Y: e.Y, Width: e.Width, Height: e.Height}
}

// CenterX returns the horizontal centre of the enemy.
func (e *Enemy) CenterX() float64 {
	return e.X + e.Width/2
}

// Aligned reports whether the enemy is lined up with and above the player.
func (e *Enemy) Aligned(p *Player) bool {
	if p == nil {
		return false
	}
	return math.Abs(p.CenterX()-e.CenterX()) <= EnemyAimTolerance+e.Width/2 && e.Y < p.Y
}

// Update descends one tick and fires at most one bullet through ctx.Spawner.
func (e *Enemy) Update(ctx UpdateContext) {
	e.Y += e.Speed

	if e.FireCooldown > 0 {
		e.FireCooldown--
	}
	if e.FireCooldown > 0 || !e.Aligned(ctx.Player) {
		return
	}

	if ctx.Spawner != nil {
		ctx.Spawner.Spawn(NewEnemyBullet(e.CenterX(), e.Y+e.Height, ctx.Rand))
	}
	e.FireCooldown = e.FireRate
	if ctx.Rand != nil {
		e.FireCooldown += ctx.Rand.Intn(EnemyFireJitter)
	}
}

// Offscreen reports whether the enemy has fully passed the bottom edge.
func (e *Enemy) Offscreen(b Bounds) bool {
	return e.Y-e.Height > b.Height
}

func (e *Enemy) Draw(s draw.Surface) {
	s.FillRect(e.X, e.Y, e.Width, e.Height, e.Color)
	s.DrawText(e.CenterX(), e.Y+e.Height/2, e.Subject, draw.White)
}
