package object

import (
	"math"
	"sync"

	"github.com/tomz197/campus-invaders/internal/draw"
)

// particlePool is a sync.Pool for reusing Particle objects to reduce allocations.
var particlePool = sync.Pool{
	New: func() any {
		return &Particle{}
	},
}

// Debris tuning.
const (
	DebrisCount    = 10
	DebrisSpeed    = 3.0 // Units per tick
	DebrisLifetime = 24  // Ticks
	DebrisRadius   = 3.0
)

// Particle is a short-lived visual effect.
type Particle struct {
	X, Y        float64 // Position
	VX, VY      float64 // Velocity in units per tick
	Lifetime    int     // Ticks remaining
	MaxLifetime int     // Initial lifetime (for fade calculation)
	Drag        float64 // Velocity decay per tick (1.0 = no drag)
	Radius      float64
	Color       draw.Color
}

// NewParticle creates a single particle from the pool.
func NewParticle(x, y, vx, vy float64, lifetime int, color draw.Color) *Particle {
	p := particlePool.Get().(*Particle)
	p.X = x
	p.Y = y
	p.VX = vx
	p.VY = vy
	p.Lifetime = lifetime
	p.MaxLifetime = lifetime
	p.Drag = 0.92
	p.Radius = DebrisRadius
	p.Color = color
	return p
}

// Release returns the particle to the pool for reuse.
// Should be called when the particle is removed.
func (p *Particle) Release() {
	particlePool.Put(p)
}

// SpawnDebris sends count particles flying out of (x, y) in a ring.
func SpawnDebris(x, y float64, count int, color draw.Color, rng Rand, spawner Spawner) {
	if spawner == nil || rng == nil {
		return
	}

	for i := 0; i < count; i++ {
		angle := rng.Float64() * 2 * math.Pi
		// Speed varies from 50% to 150%
		spd := DebrisSpeed * (0.5 + rng.Float64())
		// Lifetime varies from 50% to 100%
		life := DebrisLifetime/2 + rng.Intn(DebrisLifetime/2+1)

		spawner.Spawn(NewParticle(x, y, math.Cos(angle)*spd, math.Sin(angle)*spd, life, color))
	}
}

// Update moves the particle one tick. Returns true once it has expired.
func (p *Particle) Update() bool {
	p.Lifetime--
	if p.Lifetime <= 0 {
		return true
	}

	p.VX *= p.Drag
	p.VY *= p.Drag
	p.X += p.VX
	p.Y += p.VY
	return false
}

// Draw renders the particle, shrinking it over the last half of its life.
func (p *Particle) Draw(s draw.Surface) {
	r := p.Radius
	if p.MaxLifetime > 0 {
		if frac := float64(p.Lifetime) / float64(p.MaxLifetime); frac < 0.5 {
			r *= 0.5 + frac
		}
	}
	s.FillCircle(p.X, p.Y, r, p.Color)
}
