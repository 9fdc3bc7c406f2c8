package sim

import (
	"time"

	"github.com/tomz197/dodger/internal/object"
	"github.com/tomz197/dodger/internal/physics"
)

// Body is a drawable circle.
type Body struct {
	Pos    physics.Vec
	Radius float64
}

// EnemyView is an enemy as seen by renderers.
type EnemyView struct {
	Body
	Vel physics.Vec
}

// PowerUpView is a power-up as seen by renderers.
type PowerUpView struct {
	Body
	Kind object.PowerUpKind
	Life time.Duration
}

// ParticleView is a particle with its fade already resolved.
type ParticleView struct {
	Body
	Color uint32
	Alpha float64
}

// Snapshot is an immutable copy of the session for rendering and reporting.
type Snapshot struct {
	Phase     Phase
	Field     object.Field
	HasPlayer bool
	Player    Body
	Enemies   []EnemyView
	PowerUps  []PowerUpView
	Particles []ParticleView

	Elapsed     time.Duration
	Score       int // Tenths of a second
	ShieldTimer time.Duration
	SlowTimer   time.Duration

	SpawnInterval time.Duration
	EnemySpeed    float64
}

// ScoreText is the survived time formatted for display and submission.
func (s *Snapshot) ScoreText() string {
	return FormatScore(s.Score)
}

// Snapshot copies the current state.
func (s *Session) Snapshot() *Snapshot {
	snap := &Snapshot{
		Phase:         s.phase,
		Field:         s.field,
		Enemies:       make([]EnemyView, len(s.enemies)),
		PowerUps:      make([]PowerUpView, len(s.powerUps)),
		Particles:     make([]ParticleView, len(s.particles)),
		Elapsed:       s.elapsed,
		Score:         s.Score(),
		ShieldTimer:   s.shieldTimer,
		SlowTimer:     s.slowTimer,
		SpawnInterval: s.difficulty.SpawnInterval,
		EnemySpeed:    s.difficulty.EnemySpeed,
	}

	if s.player != nil {
		snap.HasPlayer = true
		snap.Player = Body{Pos: s.player.Pos, Radius: s.player.Radius}
	}
	for i, e := range s.enemies {
		snap.Enemies[i] = EnemyView{Body: Body{Pos: e.Pos, Radius: e.Radius}, Vel: e.Vel}
	}
	for i, p := range s.powerUps {
		snap.PowerUps[i] = PowerUpView{Body: Body{Pos: p.Pos, Radius: p.Radius}, Kind: p.Kind, Life: p.Life}
	}
	for i, p := range s.particles {
		snap.Particles[i] = ParticleView{Body: Body{Pos: p.Pos, Radius: p.Radius}, Color: p.Color, Alpha: p.Alpha()}
	}
	return snap
}
