package sim

import (
	"github.com/tomz197/dodger/internal/loop/config"
	"github.com/tomz197/dodger/internal/object"
)

// updateEnemies steers every enemy and resolves player contact.
// Survivors are compacted in place; each enemy is visited exactly once.
// Once the game ends the remaining enemies are kept untouched.
func (s *Session) updateEnemies(ctx object.UpdateContext) {
	kept := s.enemies[:0]
	for _, e := range s.enemies {
		if s.phase != PhasePlaying {
			kept = append(kept, e)
			continue
		}

		e.Update(ctx)

		if object.Overlaps(s.player, e) {
			if s.shieldTimer > 0 {
				object.SpawnBurst(e.Pos, s.tuning.ParticleCountCollision, config.ColorShield, s)
				e.MarkDestroyed()
				continue
			}
			object.SpawnBurst(s.player.Pos, s.tuning.ParticleCountCollision*2, config.ColorEnemy, s)
			s.gameOver()
		}
		kept = append(kept, e)
	}
	clear(s.enemies[len(kept):])
	s.enemies = kept
}

// updatePowerUps ages power-ups, drops expired ones and applies pickups.
func (s *Session) updatePowerUps(ctx object.UpdateContext) {
	kept := s.powerUps[:0]
	for _, p := range s.powerUps {
		if p.Update(ctx) {
			continue
		}
		if object.Overlaps(s.player, p) {
			s.applyPowerUp(p)
			continue
		}
		kept = append(kept, p)
	}
	clear(s.powerUps[len(kept):])
	s.powerUps = kept
}

// applyPowerUp resets the matching timer to its full duration. Durations
// never stack.
func (s *Session) applyPowerUp(p *object.PowerUp) {
	switch p.Kind {
	case object.PowerUpShield:
		s.shieldTimer = s.tuning.ShieldDuration
	case object.PowerUpSlow:
		s.slowTimer = s.tuning.SlowDuration
	default:
		return
	}
	object.SpawnBurst(p.Pos, s.tuning.ParticleCountPowerUp, p.Kind.Color(), s)
}

// updateParticles moves particles and releases expired ones.
func (s *Session) updateParticles(ctx object.UpdateContext) {
	kept := s.particles[:0]
	for _, p := range s.particles {
		if p.Update(ctx) {
			p.Release()
			continue
		}
		kept = append(kept, p)
	}
	clear(s.particles[len(kept):])
	s.particles = kept
}
