package sim

import (
	"math"
	"math/rand"
	"time"

	"github.com/tomz197/dodger/internal/loop/config"
	"github.com/tomz197/dodger/internal/object"
)

// Difficulty is the spawn controller. SpawnInterval only shrinks and
// EnemySpeed only grows over a game, both clamped by the tuning.
type Difficulty struct {
	SpawnInterval time.Duration
	EnemySpeed    float64

	sinceSpawn time.Duration
	tuning     *config.Tuning
}

// NewDifficulty creates a controller at the starting values.
func NewDifficulty(t *config.Tuning) Difficulty {
	return Difficulty{
		SpawnInterval: t.SpawnInterval,
		EnemySpeed:    t.EnemyBaseSpeed,
		tuning:        t,
	}
}

// Due advances the spawn clock by dt and reports whether an enemy should
// spawn now. When it returns true the clock is reset and the ramp applied.
func (d *Difficulty) Due(dt time.Duration, live int) bool {
	d.sinceSpawn += dt
	if d.sinceSpawn <= d.SpawnInterval || live >= d.tuning.MaxEnemies {
		return false
	}

	d.sinceSpawn = 0
	next := time.Duration(float64(d.SpawnInterval) * d.tuning.DifficultyFactor)
	d.SpawnInterval = max(d.tuning.MinSpawnInterval, next)
	d.EnemySpeed = math.Min(d.tuning.EnemyMaxSpeed, d.EnemySpeed+d.tuning.EnemySpeedStep)
	return true
}

// spawnEnemies adds at most one enemy per tick and pushes the ramped speed
// to every live enemy.
func (s *Session) spawnEnemies(dt time.Duration) {
	if !s.difficulty.Due(dt, len(s.enemies)) {
		return
	}

	speed := s.difficulty.EnemySpeed
	s.enemies = append(s.enemies, object.NewEnemyAtEdge(s.field, s.tuning.EnemyRadius, speed))
	for _, e := range s.enemies {
		e.SetSpeed(speed)
	}
}

// spawnPowerUps rolls the per-tick power-up chance.
func (s *Session) spawnPowerUps() {
	if len(s.powerUps) >= s.tuning.MaxPowerUps || rand.Float64() >= s.tuning.PowerUpSpawnChance {
		return
	}

	kind := object.PowerUpShield
	if rand.Float64() < 0.5 {
		kind = object.PowerUpSlow
	}
	s.powerUps = append(s.powerUps, object.NewPowerUp(kind, s.field, s.tuning.PowerUpRadius, s.tuning.PowerUpLife))
}
