package loop

import (
	"slices"

	"github.com/tomz197/campus-invaders/internal/input"
	"github.com/tomz197/campus-invaders/internal/object"
)

// Tick advances the running game by one step and redraws it.
// Order: player, player bullets, enemies, enemy bullets, render.
func (w *World) Tick(in input.Input) {
	if w.phase != PhaseRunning {
		return
	}

	ctx := object.UpdateContext{
		Input:   in,
		Bounds:  w.bounds,
		Spawner: w,
		Player:  w.Player,
		Rand:    w.rng,
	}

	w.Player.Update(ctx)
	w.updateBullets()
	w.updateEnemies(ctx)
	w.updateEnemyBullets()
	w.Render()

	w.finish()
}

// updateBullets moves player bullets and resolves hits on enemies.
// A bullet destroys at most one enemy.
func (w *World) updateBullets() {
	kept := w.Bullets[:0] // reuse backing array
	for _, b := range w.Bullets {
		b.Update()
		if b.Offscreen() {
			continue
		}
		if i := firstEnemyHit(b, w.Enemies); i >= 0 {
			e := w.Enemies[i]
			w.Enemies = slices.Delete(w.Enemies, i, i+1)
			w.addScore(e.Points)
			if w.effects != nil {
				w.effects.Burst(e.CenterX(), e.Y+e.Height/2, e.Color)
			}
			continue
		}
		kept = append(kept, b)
	}
	clear(w.Bullets[len(kept):])
	w.Bullets = kept
}

// updateEnemies moves enemies, lets them fire, and resolves contact with the player.
func (w *World) updateEnemies(ctx object.UpdateContext) {
	// Enemies may fire into w.EnemyBullets while we iterate; that slice is
	// separate from the one being filtered.
	kept := w.Enemies[:0]
	for _, e := range w.Enemies {
		e.Update(ctx)
		if e.Offscreen(w.bounds) {
			continue
		}
		if enemyTouchesPlayer(e, w.Player) && !w.Player.Invulnerable() {
			w.damagePlayer()
			w.addScore(-w.rules.EnemyCollisionPenalty)
			continue
		}
		kept = append(kept, e)
	}
	clear(w.Enemies[len(kept):])
	w.Enemies = kept
}

// updateEnemyBullets moves enemy bullets and resolves hits on the player.
// The penalty applies on every hit, even when the damage itself is ignored.
func (w *World) updateEnemyBullets() {
	kept := w.EnemyBullets[:0]
	for _, b := range w.EnemyBullets {
		b.Update()
		if b.Offscreen(w.bounds) {
			continue
		}
		if enemyBulletHitsPlayer(b, w.Player) {
			w.damagePlayer()
			w.addScore(-w.rules.EnemyBulletPenalty)
			continue
		}
		kept = append(kept, b)
	}
	clear(w.EnemyBullets[len(kept):])
	w.EnemyBullets = kept
}

// damagePlayer applies one hit. Losing the last life ends the game.
func (w *World) damagePlayer() {
	if !w.Player.Damage() {
		return
	}
	w.fe.Flash()
	w.fe.SetLives(w.Player.Lives)
	if w.Player.Lives <= 0 {
		w.end(EndLives)
	}
}
