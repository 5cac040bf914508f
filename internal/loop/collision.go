package loop

import (
	"github.com/tomz197/campus-invaders/internal/object"
	"github.com/tomz197/campus-invaders/internal/physics"
)

// firstEnemyHit returns the index of the enemy the bullet overlaps, or -1.
// Enemies are scanned newest first, so of two overlapping enemies the one
// spawned last is hit.
func firstEnemyHit(b *object.Bullet, enemies []*object.Enemy) int {
	c := b.Circle()
	for i := len(enemies) - 1; i >= 0; i-- {
		if physics.RectCircle(enemies[i].Box(), c) {
			return i
		}
	}
	return -1
}

// enemyTouchesPlayer reports whether an enemy's box overlaps the player's.
func enemyTouchesPlayer(e *object.Enemy, p *object.Player) bool {
	return physics.RectsOverlap(e.Box(), p.Box())
}

// enemyBulletHitsPlayer reports whether an enemy bullet overlaps the player.
func enemyBulletHitsPlayer(b *object.EnemyBullet, p *object.Player) bool {
	return physics.RectCircle(p.Box(), b.Circle())
}
