package sim

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/tomz197/dodger/internal/loop/config"
	"github.com/tomz197/dodger/internal/object"
	"github.com/tomz197/dodger/internal/physics"
)

var testField = object.Field{Width: 800, Height: 600}

func newTestSession(t *testing.T) *Session {
	t.Helper()
	tu := config.DefaultTuning()
	tu.PowerUpSpawnChance = 0
	s := NewSession(tu, testField)
	if err := s.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	return s
}

func enemyAt(pos physics.Vec) *object.Enemy {
	return &object.Enemy{Pos: pos, Vel: physics.Vec{X: 1.5}, Radius: 10, Speed: 1.5}
}

func TestNewSessionIsIdle(t *testing.T) {
	s := NewSession(config.DefaultTuning(), testField)
	if s.Phase() != PhaseStart {
		t.Fatalf("phase = %s, want start", s.Phase())
	}
	s.Step(time.Second, object.Input{})
	if s.Elapsed() != 0 {
		t.Fatalf("idle session advanced to %s", s.Elapsed())
	}
}

func TestStartResetsEverything(t *testing.T) {
	s := newTestSession(t)
	if s.Player() == nil || s.Player().Pos != testField.Center() {
		t.Fatalf("player not at field center")
	}
	if s.StartedAt().IsZero() {
		t.Error("start timestamp not captured")
	}

	s.AddEnemy(enemyAt(s.Player().Pos))
	s.Step(config.TickTime, object.Input{})
	if s.Phase() != PhaseGameOver {
		t.Fatalf("phase = %s, want game over", s.Phase())
	}

	if err := s.Start(); err != nil {
		t.Fatalf("restart: %v", err)
	}
	if len(s.Enemies()) != 0 || len(s.PowerUps()) != 0 || len(s.Particles()) != 0 {
		t.Errorf("collections not cleared: %d enemies, %d power-ups, %d particles",
			len(s.Enemies()), len(s.PowerUps()), len(s.Particles()))
	}
	if s.Elapsed() != 0 || s.ShieldTimer() != 0 || s.SlowTimer() != 0 {
		t.Errorf("timers not reset")
	}
	d := s.Difficulty()
	if d.SpawnInterval != s.tuning.SpawnInterval || d.EnemySpeed != s.tuning.EnemyBaseSpeed {
		t.Errorf("difficulty not reset: %+v", d)
	}
	if err := s.Start(); !errors.Is(err, ErrAlreadyPlaying) {
		t.Errorf("Start while playing = %v, want ErrAlreadyPlaying", err)
	}
}

func TestUnshieldedHitEndsGameOnce(t *testing.T) {
	s := newTestSession(t)
	s.Step(config.TickTime, object.Input{})
	s.AddEnemy(enemyAt(s.Player().Pos))
	s.AddEnemy(enemyAt(physics.Vec{X: 10, Y: 10}))

	s.Step(config.TickTime, object.Input{})
	if s.Phase() != PhaseGameOver {
		t.Fatalf("phase = %s, want game over", s.Phase())
	}
	if got := len(s.Particles()); got != 2*s.tuning.ParticleCountCollision {
		t.Errorf("death burst = %d particles, want %d", got, 2*s.tuning.ParticleCountCollision)
	}
	if len(s.Enemies()) != 2 {
		t.Errorf("enemies = %d, want both kept", len(s.Enemies()))
	}

	frozen := s.Snapshot()
	for i := 0; i < 10; i++ {
		s.Step(config.TickTime, object.Input{Right: true})
	}
	after := s.Snapshot()
	if after.Elapsed != frozen.Elapsed || after.Score != frozen.Score {
		t.Errorf("survived time moved after game over: %s -> %s", frozen.Elapsed, after.Elapsed)
	}
	for i := range frozen.Enemies {
		if after.Enemies[i].Pos != frozen.Enemies[i].Pos {
			t.Errorf("enemy %d moved after game over", i)
		}
	}
	if after.Player.Pos != frozen.Player.Pos {
		t.Error("player moved after game over")
	}
	if len(after.Particles) != len(frozen.Particles) {
		t.Error("particles changed after game over")
	}
}

func TestShieldedHitDestroysEnemy(t *testing.T) {
	s := newTestSession(t)
	s.shieldTimer = s.tuning.ShieldDuration

	s.AddEnemy(enemyAt(s.Player().Pos))
	s.Step(config.TickTime, object.Input{})

	if s.Phase() != PhasePlaying {
		t.Fatalf("phase = %s, want playing", s.Phase())
	}
	if len(s.Enemies()) != 0 {
		t.Errorf("enemies = %d, want 0", len(s.Enemies()))
	}
	if got := len(s.Particles()); got != s.tuning.ParticleCountCollision {
		t.Errorf("burst = %d particles, want %d", got, s.tuning.ParticleCountCollision)
	}
}

func TestRemovalVisitsEveryEnemyOnce(t *testing.T) {
	s := newTestSession(t)
	s.shieldTimer = s.tuning.ShieldDuration

	center := s.Player().Pos
	s.AddEnemy(enemyAt(center))
	s.AddEnemy(enemyAt(center))
	far := enemyAt(physics.Vec{X: 20, Y: 20})
	s.AddEnemy(far)
	s.AddEnemy(enemyAt(center))

	s.Step(config.TickTime, object.Input{})

	if len(s.Enemies()) != 1 || s.Enemies()[0] != far {
		t.Fatalf("expected only the far enemy to survive, got %d enemies", len(s.Enemies()))
	}
	if got := len(s.Particles()); got != 3*s.tuning.ParticleCountCollision {
		t.Errorf("bursts = %d particles, want %d", got, 3*s.tuning.ParticleCountCollision)
	}
	if far.Pos == (physics.Vec{X: 20, Y: 20}) {
		t.Error("far enemy was not updated")
	}
}

func TestPowerUpPickupResetsTimer(t *testing.T) {
	tests := []struct {
		name  string
		kind  object.PowerUpKind
		timer func(*Session) time.Duration
		set   func(*Session, time.Duration)
		full  func(config.Tuning) time.Duration
	}{
		{
			name:  "shield",
			kind:  object.PowerUpShield,
			timer: (*Session).ShieldTimer,
			set:   func(s *Session, d time.Duration) { s.shieldTimer = d },
			full:  func(tu config.Tuning) time.Duration { return tu.ShieldDuration },
		},
		{
			name:  "slow",
			kind:  object.PowerUpSlow,
			timer: (*Session).SlowTimer,
			set:   func(s *Session, d time.Duration) { s.slowTimer = d },
			full:  func(tu config.Tuning) time.Duration { return tu.SlowDuration },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestSession(t)

			p := object.NewPowerUpAt(tt.kind, s.Player().Pos, s.tuning.PowerUpRadius, s.tuning.PowerUpLife)
			s.AddPowerUp(p)
			s.Step(config.TickTime, object.Input{})

			if got := tt.timer(s); got != tt.full(s.tuning) {
				t.Fatalf("timer = %s, want %s", got, tt.full(s.tuning))
			}
			if len(s.PowerUps()) != 0 {
				t.Fatal("picked-up power-up still live")
			}
			if got := len(s.Particles()); got != s.tuning.ParticleCountPowerUp {
				t.Errorf("pickup burst = %d particles, want %d", got, s.tuning.ParticleCountPowerUp)
			}

			// A second pickup with 3s left resets, it does not stack.
			tt.set(s, 3*time.Second)
			s.AddPowerUp(object.NewPowerUpAt(tt.kind, s.Player().Pos, s.tuning.PowerUpRadius, s.tuning.PowerUpLife))
			s.Step(config.TickTime, object.Input{})
			if got := tt.timer(s); got != tt.full(s.tuning) {
				t.Fatalf("timer after second pickup = %s, want %s", got, tt.full(s.tuning))
			}
		})
	}
}

func TestExpiredPowerUpRemoved(t *testing.T) {
	s := newTestSession(t)
	s.AddPowerUp(object.NewPowerUpAt(object.PowerUpSlow, physics.Vec{X: 30, Y: 30}, 12, 20*time.Millisecond))
	s.AddPowerUp(object.NewPowerUpAt(object.PowerUpShield, physics.Vec{X: 60, Y: 30}, 12, time.Second))
	s.AddPowerUp(object.NewPowerUpAt(0, physics.Vec{X: 90, Y: 30}, 12, time.Second))

	if len(s.PowerUps()) != 2 {
		t.Fatalf("invalid kind accepted: %d power-ups", len(s.PowerUps()))
	}

	s.Step(30*time.Millisecond, object.Input{})
	if len(s.PowerUps()) != 1 || s.PowerUps()[0].Kind != object.PowerUpShield {
		t.Fatalf("expected only the shield power-up to remain")
	}
	if s.SlowTimer() != 0 {
		t.Error("expired power-up must not apply its effect")
	}
}

func TestTimersCountDown(t *testing.T) {
	s := newTestSession(t)
	s.shieldTimer = 50 * time.Millisecond
	s.slowTimer = time.Second

	s.Step(100*time.Millisecond, object.Input{})
	if s.ShieldTimer() != 0 {
		t.Errorf("shield timer = %s, want clamped to 0", s.ShieldTimer())
	}
	if s.SlowTimer() != 900*time.Millisecond {
		t.Errorf("slow timer = %s, want 900ms", s.SlowTimer())
	}
}

func TestNoDriftWithoutInput(t *testing.T) {
	s := newTestSession(t)
	start := s.Player().Pos
	for i := 0; i < 80; i++ {
		s.Step(config.TickTime, object.Input{})
	}
	if s.Phase() != PhasePlaying {
		t.Fatalf("phase = %s, want playing", s.Phase())
	}
	if s.Player().Pos != start {
		t.Fatalf("player drifted from %v to %v", start, s.Player().Pos)
	}
}

func TestEnemySpeedInvariantAcrossSteps(t *testing.T) {
	tu := config.DefaultTuning()
	tu.PowerUpSpawnChance = 0
	tu.SpawnInterval = 20 * time.Millisecond
	tu.MinSpawnInterval = 10 * time.Millisecond
	tu.EnemySpeedStep = 0.05
	s := NewSession(tu, testField)
	if err := s.Start(); err != nil {
		t.Fatal(err)
	}
	s.shieldTimer = time.Hour

	for tick := 0; tick < 600; tick++ {
		s.Step(config.TickTime, object.Input{Left: tick%200 < 100, Right: tick%200 >= 100})
		for i, e := range s.Enemies() {
			if math.Abs(e.Vel.Len()-e.Speed) > 1e-6 {
				t.Fatalf("tick %d enemy %d: |vel| = %f, speed = %f", tick, i, e.Vel.Len(), e.Speed)
			}
			if e.Speed != s.Difficulty().EnemySpeed {
				t.Fatalf("tick %d enemy %d: speed %f not synced with base %f", tick, i, e.Speed, s.Difficulty().EnemySpeed)
			}
		}
	}
	if len(s.Enemies()) == 0 && len(s.Particles()) == 0 {
		t.Fatal("expected enemies to have spawned")
	}
}

func TestMaxEnemiesCap(t *testing.T) {
	tu := config.DefaultTuning()
	tu.PowerUpSpawnChance = 0
	tu.MaxEnemies = 3
	tu.SpawnInterval = time.Millisecond
	tu.MinSpawnInterval = time.Millisecond
	s := NewSession(tu, object.Field{Width: 4000, Height: 4000})
	if err := s.Start(); err != nil {
		t.Fatal(err)
	}

	for i := 0; i < 20; i++ {
		s.Step(config.TickTime, object.Input{})
	}
	if got := len(s.Enemies()); got != 3 {
		t.Fatalf("enemies = %d, want cap 3", got)
	}
}

func TestParticleCapEvictsOldest(t *testing.T) {
	s := newTestSession(t)
	max := s.tuning.MaxParticles
	for i := 0; i < max+50; i++ {
		s.Emit(object.NewParticle(physics.Vec{}, physics.Vec{}, uint32(i), 1, time.Second))
		if len(s.Particles()) > max {
			t.Fatalf("particles = %d exceeds cap %d", len(s.Particles()), max)
		}
	}
	ps := s.Particles()
	if ps[0].Color != 50 || ps[len(ps)-1].Color != uint32(max+49) {
		t.Fatalf("oldest-first eviction broken: first=%d last=%d", ps[0].Color, ps[len(ps)-1].Color)
	}
}

func TestResizeRecentersAndClamps(t *testing.T) {
	s := newTestSession(t)
	s.Resize(object.Field{Width: 200, Height: 100})
	if s.Player().Pos != (physics.Vec{X: 100, Y: 50}) {
		t.Fatalf("player at %v, want re-centered", s.Player().Pos)
	}
	s.Step(config.TickTime, object.Input{Pointer: physics.Vec{X: 1000, Y: 1000}, HasPointer: true})
	for i := 0; i < 100; i++ {
		s.Step(config.TickTime, object.Input{})
	}
	p := s.Player()
	if p.Pos.X > 200-p.Radius || p.Pos.Y > 100-p.Radius {
		t.Fatalf("player escaped resized field: %v", p.Pos)
	}
}

func TestSnapshotIsACopy(t *testing.T) {
	s := newTestSession(t)
	s.AddEnemy(enemyAt(physics.Vec{X: 20, Y: 20}))
	s.Emit(object.NewParticle(physics.Vec{X: 5}, physics.Vec{X: 1}, config.ColorShield, 2, time.Second))

	snap := s.Snapshot()
	s.Step(config.TickTime, object.Input{})

	if snap.Enemies[0].Pos != (physics.Vec{X: 20, Y: 20}) {
		t.Error("snapshot enemy changed with the session")
	}
	if snap.Particles[0].Alpha != 1 || snap.Particles[0].Pos.X != 5 {
		t.Error("snapshot particle changed with the session")
	}
	if !snap.HasPlayer || snap.Phase != PhasePlaying {
		t.Error("snapshot missing player or phase")
	}
}

func TestScoreFormatting(t *testing.T) {
	if got := ScoreTenths(12345 * time.Millisecond); got != 123 {
		t.Errorf("ScoreTenths = %d, want 123", got)
	}
	if got := FormatScore(123); got != "12.3" {
		t.Errorf("FormatScore = %q, want 12.3", got)
	}
	if got := FormatScore(0); got != "0.0" {
		t.Errorf("FormatScore(0) = %q, want 0.0", got)
	}
}
