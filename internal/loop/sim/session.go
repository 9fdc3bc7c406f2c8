package sim

import (
	"time"

	"github.com/tomz197/dodger/internal/object"
)

// Start begins a fresh game from the start or game-over phase.
// Everything is re-initialized; nothing carries over from a previous game.
func (s *Session) Start() error {
	if s.phase == PhasePlaying {
		return ErrAlreadyPlaying
	}

	for _, p := range s.particles {
		p.Release()
	}
	s.enemies = nil
	s.powerUps = nil
	s.particles = nil

	s.player = object.NewPlayer(s.field.Center(), s.tuning.PlayerRadius)
	s.elapsed = 0
	s.startedAt = time.Now()
	s.shieldTimer = 0
	s.slowTimer = 0
	s.difficulty = NewDifficulty(&s.tuning)

	s.phase = PhasePlaying
	return nil
}

// Resize updates the field bounds and re-centers the player.
func (s *Session) Resize(field object.Field) {
	s.field = field
	if s.player != nil {
		s.player.MoveTo(field.Center())
		s.player.Clamp(field)
	}
}

// Step advances the simulation by one tick of dt. It does nothing outside
// the playing phase, so a finished game stays frozen.
func (s *Session) Step(dt time.Duration, in object.Input) {
	if s.phase != PhasePlaying {
		return
	}

	s.elapsed += dt

	ctx := object.UpdateContext{
		Delta:  dt,
		Input:  in,
		Field:  s.field,
		Tuning: &s.tuning,
	}
	s.player.Update(ctx)

	s.shieldTimer = max(0, s.shieldTimer-dt)
	s.slowTimer = max(0, s.slowTimer-dt)

	ctx.PlayerPos = s.player.Pos
	ctx.Slowed = s.slowTimer > 0

	s.updateEnemies(ctx)
	if s.phase != PhasePlaying {
		return
	}
	s.updatePowerUps(ctx)
	s.updateParticles(ctx)

	s.spawnEnemies(dt)
	s.spawnPowerUps()
}

// AddEnemy places an enemy into the running game.
func (s *Session) AddEnemy(e *object.Enemy) {
	s.enemies = append(s.enemies, e)
}

// AddPowerUp places a power-up into the running game. Invalid kinds are ignored.
func (s *Session) AddPowerUp(p *object.PowerUp) {
	if !p.Kind.Valid() {
		return
	}
	s.powerUps = append(s.powerUps, p)
}

// gameOver freezes the session. Only the first call has an effect.
func (s *Session) gameOver() {
	if s.phase != PhasePlaying {
		return
	}
	s.phase = PhaseGameOver
}
