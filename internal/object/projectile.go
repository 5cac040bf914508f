package object

import (
	"github.com/tomz197/campus-invaders/internal/draw"
	"github.com/tomz197/campus-invaders/internal/physics"
)

// Projectile tuning.
const (
	BulletRadius = 5.0
	BulletSpeed  = 9.0 // Units per tick, upward

	EnemyBulletRadius    = 5.0
	EnemyBulletMinSpeed  = 4.0 // Units per tick, downward
	EnemyBulletSpeedSpan = 1.5
)

var (
	bulletColor      = draw.Hex(0xffff66)
	enemyBulletColor = draw.Hex(0xff77aa)
)

// Bullet is a projectile fired upward by the player.
type Bullet struct {
	X, Y   float64 // Centre
	Radius float64
	Speed  float64
}

// NewBullet creates a bullet centred at (x, y).
func NewBullet(x, y float64) *Bullet {
	return &Bullet{X: x, Y: y, Radius: BulletRadius, Speed: BulletSpeed}
}

// Update moves the bullet up by one tick.
func (b *Bullet) Update() {
	b.Y -= b.Speed
}

// Offscreen reports whether the bullet has fully left through the top edge.
func (b *Bullet) Offscreen() bool {
	return b.Y+b.Radius < 0
}

// Circle returns the bullet's collision circle.
func (b *Bullet) Circle() physics.Circle {
	return physics.Circle{X: b.X, Y: b.Y, Radius: b.Radius}
}

func (b *Bullet) Draw(s draw.Surface) {
	s.FillCircle(b.X, b.Y, b.Radius, bulletColor)
}

// EnemyBullet is a projectile fired downward by an enemy.
type EnemyBullet struct {
	X, Y   float64 // Centre
	Radius float64
	Speed  float64
}

// NewEnemyBullet creates an enemy bullet centred at (x, y) with a speed in
// [EnemyBulletMinSpeed, EnemyBulletMinSpeed+EnemyBulletSpeedSpan).
func NewEnemyBullet(x, y float64, rng Rand) *EnemyBullet {
	speed := EnemyBulletMinSpeed
	if rng != nil {
		speed += rng.Float64() * EnemyBulletSpeedSpan
	}
	return &EnemyBullet{X: x, Y: y, Radius: EnemyBulletRadius, Speed: speed}
}

// Update moves the bullet down by one tick.
func (b *EnemyBullet) Update() {
	b.Y += b.Speed
}

// Offscreen reports whether the bullet has fully left through the bottom edge.
func (b *EnemyBullet) Offscreen(bounds Bounds) bool {
	return b.Y-b.Radius > bounds.Height
}

// Circle returns the bullet's collision circle.
func (b *EnemyBullet) Circle() physics.Circle {
	return physics.Circle{X: b.X, Y: b.Y, Radius: b.Radius}
}

func (b *EnemyBullet) Draw(s draw.Surface) {
	s.FillCircle(b.X, b.Y, b.Radius, enemyBulletColor)
}
