package object

import (
	"github.com/tomz197/campus-invaders/internal/draw"
	"github.com/tomz197/campus-invaders/internal/physics"
)

// Player tuning.
const (
	PlayerWidth       = 40.0
	PlayerHeight      = 40.0
	PlayerSpeed       = 5.5 // Units per tick
	PlayerFireRate    = 12  // Ticks between shots
	PlayerInvulTicks  = 60  // Ticks of immunity after a hit (~1s)
	PlayerBlinkPeriod = 6   // Ticks per blink phase while immune
	playerBottomGap   = 10.0
)

var (
	playerColor    = draw.Hex(0x00ffcc)
	playerEyeColor = draw.Hex(0x000033)
)

// Player is the ship at the bottom of the field.
type Player struct {
	X, Y          float64 // Top-left corner
	Width, Height float64
	Speed         float64

	FireRate     int // Ticks between shots
	fireCooldown int // Ticks until the next shot is allowed

	Lives      int
	InvulTicks int // Remaining ticks of immunity
}

// NewPlayer creates a player centred horizontally near the bottom of the field.
func NewPlayer(b Bounds, lives int) *Player {
	return &Player{
		X:        b.Width/2 - PlayerWidth/2,
		Y:        b.Height - PlayerHeight - playerBottomGap,
		Width:    PlayerWidth,
		Height:   PlayerHeight,
		Speed:    PlayerSpeed,
		FireRate: PlayerFireRate,
		Lives:    max(lives, 0),
	}
}

// Box returns the player's bounding box.
func (p *Player) Box() physics.Rect {
	return physics.Rect{X: p.X, Y: p.Y, Width: p.Width, Height: p.Height}
}

// CenterX returns the horizontal centre of the player.
func (p *Player) CenterX() float64 {
	return p.X + p.Width/2
}

// MoveLeft shifts the player left, stopping at the left edge.
func (p *Player) MoveLeft() {
	p.X = max(0, p.X-p.Speed)
}

// MoveRight shifts the player right, stopping at the right edge.
func (p *Player) MoveRight(b Bounds) {
	p.X = min(b.Width-p.Width, p.X+p.Speed)
}

// CanShoot reports whether the fire cooldown has elapsed.
func (p *Player) CanShoot() bool {
	return p.fireCooldown <= 0
}

// Shoot fires a bullet from the top centre of the player if the cooldown allows.
// Returns false if no bullet was fired.
func (p *Player) Shoot(spawner Spawner) bool {
	if !p.CanShoot() || spawner == nil {
		return false
	}
	spawner.Spawn(NewBullet(p.CenterX(), p.Y))
	p.fireCooldown = p.FireRate
	return true
}

// Invulnerable reports whether hits are currently ignored.
func (p *Player) Invulnerable() bool {
	return p.InvulTicks > 0
}

// Update ticks the cooldowns down, then applies the held keys.
func (p *Player) Update(ctx UpdateContext) {
	if p.fireCooldown > 0 {
		p.fireCooldown--
	}
	if p.InvulTicks > 0 {
		p.InvulTicks--
	}

	if ctx.Input.Left {
		p.MoveLeft()
	}
	if ctx.Input.Right {
		p.MoveRight(ctx.Bounds)
	}
	if ctx.Input.Fire && p.CanShoot() {
		p.Shoot(ctx.Spawner)
	}
}

// Damage takes one life and starts the immunity window.
// Returns false without effect while the player is immune.
func (p *Player) Damage() bool {
	if p.Invulnerable() {
		return false
	}
	p.Lives = max(p.Lives-1, 0)
	p.InvulTicks = PlayerInvulTicks
	return true
}

// Draw renders the player as a square with two eyes. Blinks while immune.
func (p *Player) Draw(s draw.Surface) {
	if !ShouldRenderBlink(p.InvulTicks, PlayerBlinkPeriod) {
		return
	}
	s.FillRect(p.X, p.Y, p.Width, p.Height, playerColor)
	s.FillRect(p.X+8, p.Y+8, 5, 5, playerEyeColor)
	s.FillRect(p.X+27, p.Y+8, 5, 5, playerEyeColor)
}
