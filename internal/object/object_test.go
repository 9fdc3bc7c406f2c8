package object

import (
	"math"
	"math/rand"
	"testing"
	"time"

	"github.com/tomz197/dodger/internal/loop/config"
	"github.com/tomz197/dodger/internal/physics"
)

const eps = 1e-9

var testField = Field{Width: 800, Height: 600}

func testCtx(in Input) UpdateContext {
	tu := config.DefaultTuning()
	return UpdateContext{
		Delta:  config.TickTime,
		Input:  in,
		Field:  testField,
		Tuning: &tu,
	}
}

type collector struct {
	particles []*Particle
}

func (c *collector) Emit(p *Particle) {
	c.particles = append(c.particles, p)
}

func TestPlayerNoDriftWithoutInput(t *testing.T) {
	p := NewPlayer(physics.Vec{X: 400, Y: 300}, 15)
	ctx := testCtx(Input{})
	for i := 0; i < 120; i++ {
		p.Update(ctx)
	}
	if p.Pos != (physics.Vec{X: 400, Y: 300}) {
		t.Fatalf("player drifted to %v", p.Pos)
	}
}

func TestPlayerKeyboardMovement(t *testing.T) {
	p := NewPlayer(physics.Vec{X: 400, Y: 300}, 15)
	p.Update(testCtx(Input{Up: true, Right: true}))

	moved := p.Pos.Sub(physics.Vec{X: 400, Y: 300})
	if math.Abs(moved.Len()-4) > eps {
		t.Errorf("diagonal step length = %f, want keyboard speed 4", moved.Len())
	}
	if moved.X <= 0 || moved.Y >= 0 {
		t.Errorf("expected up-right movement, got %v", moved)
	}
	if p.Target != p.Pos {
		t.Errorf("pointer target %v should follow keyboard position %v", p.Target, p.Pos)
	}

	// Releasing the keys must not snap back.
	before := p.Pos
	p.Update(testCtx(Input{}))
	if p.Pos != before {
		t.Errorf("player moved after key release: %v -> %v", before, p.Pos)
	}
}

func TestPlayerOpposingKeysCancel(t *testing.T) {
	p := NewPlayer(physics.Vec{X: 400, Y: 300}, 15)
	p.Update(testCtx(Input{Left: true, Right: true}))
	if p.Pos != (physics.Vec{X: 400, Y: 300}) {
		t.Fatalf("opposing keys moved player to %v", p.Pos)
	}
}

func TestPlayerPointerFollow(t *testing.T) {
	p := NewPlayer(physics.Vec{X: 100, Y: 100}, 15)
	p.Update(testCtx(Input{Pointer: physics.Vec{X: 200, Y: 100}, HasPointer: true}))
	if math.Abs(p.Pos.X-120) > eps || p.Pos.Y != 100 {
		t.Fatalf("after one follow tick pos = %v, want {120 100}", p.Pos)
	}

	// Target persists without new pointer samples.
	p.Update(testCtx(Input{}))
	if math.Abs(p.Pos.X-136) > eps {
		t.Fatalf("after second follow tick x = %f, want 136", p.Pos.X)
	}
}

func TestPlayerAlwaysClamped(t *testing.T) {
	inputs := []Input{
		{Up: true}, {Down: true}, {Left: true}, {Right: true},
		{Up: true, Left: true}, {Down: true, Right: true},
		{Pointer: physics.Vec{X: -5000, Y: -5000}, HasPointer: true},
		{Pointer: physics.Vec{X: 5000, Y: 5000}, HasPointer: true},
	}
	for _, in := range inputs {
		p := NewPlayer(testField.Center(), 15)
		for i := 0; i < 500; i++ {
			p.Update(testCtx(in))
			if p.Pos.X < 15 || p.Pos.X > testField.Width-15 || p.Pos.Y < 15 || p.Pos.Y > testField.Height-15 {
				t.Fatalf("input %+v: player escaped to %v", in, p.Pos)
			}
		}
	}
}

func TestEnemySpeedInvariant(t *testing.T) {
	for i := 0; i < 50; i++ {
		e := NewEnemyAtEdge(testField, 10, 1.5)
		ctx := testCtx(Input{})
		ctx.PlayerPos = physics.Vec{X: rand.Float64() * testField.Width, Y: rand.Float64() * testField.Height}
		for tick := 0; tick < 200; tick++ {
			if tick == 100 {
				e.Speed = 3.25 // difficulty ramp mid-flight
			}
			e.Update(ctx)
			if math.Abs(e.Vel.Len()-e.Speed) > 1e-6 {
				t.Fatalf("tick %d: |vel| = %f, want %f", tick, e.Vel.Len(), e.Speed)
			}
		}
	}
}

func TestEnemySetSpeedKeepsHeading(t *testing.T) {
	e := &Enemy{Vel: physics.Vec{X: 3, Y: 4}, Speed: 5}
	e.SetSpeed(10)
	if e.Speed != 10 || math.Abs(e.Vel.X-6) > eps || math.Abs(e.Vel.Y-8) > eps {
		t.Fatalf("SetSpeed gave speed %f vel %v", e.Speed, e.Vel)
	}

	still := &Enemy{}
	still.SetSpeed(2)
	if math.Abs(still.Vel.Len()-2) > eps {
		t.Fatalf("stationary enemy |vel| = %f after SetSpeed", still.Vel.Len())
	}
}

func TestEnemyAtPlayerKeepsSpeed(t *testing.T) {
	e := &Enemy{Pos: physics.Vec{X: 50, Y: 50}, Radius: 10, Speed: 2}
	ctx := testCtx(Input{})
	ctx.Tuning.HomingNoiseFactor = 0
	ctx.PlayerPos = e.Pos
	e.Update(ctx)
	if math.Abs(e.Vel.Len()-2) > eps {
		t.Fatalf("degenerate steering produced |vel| = %f", e.Vel.Len())
	}
}

func TestEnemySlowHalvesDisplacementOnly(t *testing.T) {
	start := physics.Vec{X: 100, Y: 100}
	fast := &Enemy{Pos: start, Vel: physics.Vec{X: 2}, Radius: 10, Speed: 2}
	slow := &Enemy{Pos: start, Vel: physics.Vec{X: 2}, Radius: 10, Speed: 2}

	ctx := testCtx(Input{})
	ctx.Tuning.HomingNoiseFactor = 0
	ctx.PlayerPos = physics.Vec{X: 500, Y: 100}

	fast.Update(ctx)
	ctx.Slowed = true
	slow.Update(ctx)

	if math.Abs(fast.Pos.X-102) > eps {
		t.Errorf("unslowed x = %f, want 102", fast.Pos.X)
	}
	if math.Abs(slow.Pos.X-101) > eps {
		t.Errorf("slowed x = %f, want 101", slow.Pos.X)
	}
	if math.Abs(slow.Vel.Len()-2) > eps {
		t.Errorf("slow changed velocity magnitude to %f", slow.Vel.Len())
	}
}

func TestNewEnemyAtEdge(t *testing.T) {
	tests := []struct {
		edge    Edge
		outside func(physics.Vec) bool
	}{
		{EdgeTop, func(p physics.Vec) bool { return p.Y == -10 && p.X >= 0 && p.X <= 800 }},
		{EdgeRight, func(p physics.Vec) bool { return p.X == 810 && p.Y >= 0 && p.Y <= 600 }},
		{EdgeBottom, func(p physics.Vec) bool { return p.Y == 610 && p.X >= 0 && p.X <= 800 }},
		{EdgeLeft, func(p physics.Vec) bool { return p.X == -10 && p.Y >= 0 && p.Y <= 600 }},
	}
	for _, tt := range tests {
		e := NewEnemyAt(tt.edge, testField, 10, 1.5)
		if !tt.outside(e.Pos) {
			t.Errorf("edge %d: unexpected spawn position %v", tt.edge, e.Pos)
		}
		toCenter := physics.Normalize(testField.Center().Sub(e.Pos))
		heading := physics.Normalize(e.Vel)
		if math.Abs(toCenter.X-heading.X) > eps || math.Abs(toCenter.Y-heading.Y) > eps {
			t.Errorf("edge %d: heading %v not aimed at center %v", tt.edge, heading, toCenter)
		}
		if math.Abs(e.Vel.Len()-1.5) > eps {
			t.Errorf("edge %d: initial speed %f, want 1.5", tt.edge, e.Vel.Len())
		}
	}
}

func TestPowerUpKind(t *testing.T) {
	if PowerUpKind(0).Valid() {
		t.Error("zero kind must be invalid")
	}
	if !PowerUpShield.Valid() || !PowerUpSlow.Valid() {
		t.Error("defined kinds must be valid")
	}
	if PowerUpShield.Label() != 'I' || PowerUpSlow.Label() != 'S' {
		t.Error("unexpected labels")
	}
	if PowerUpSlow.Color() != config.ColorSlow || PowerUpShield.Color() != config.ColorShield {
		t.Error("unexpected colors")
	}
}

func TestPowerUpLifetime(t *testing.T) {
	p := NewPowerUp(PowerUpSlow, testField, 12, 100*time.Millisecond)
	if p.Pos.X < 12 || p.Pos.X > 788 || p.Pos.Y < 12 || p.Pos.Y > 588 {
		t.Fatalf("power-up spawned outside field: %v", p.Pos)
	}
	ctx := testCtx(Input{})
	ctx.Delta = 60 * time.Millisecond
	if p.Update(ctx) {
		t.Fatal("expired too early")
	}
	if !p.Update(ctx) {
		t.Fatalf("expected expiry, life = %s", p.Life)
	}
}

func TestParticleUpdate(t *testing.T) {
	p := NewParticle(physics.Vec{}, physics.Vec{X: 1}, config.ColorEnemy, 2, time.Second)
	defer p.Release()

	ctx := testCtx(Input{})
	ctx.Delta = 250 * time.Millisecond
	if p.Update(ctx) {
		t.Fatal("particle expired early")
	}
	if p.Pos.X != 1 {
		t.Errorf("x = %f, want 1", p.Pos.X)
	}
	if math.Abs(p.Vel.X-0.98) > eps {
		t.Errorf("vx = %f, want 0.98 after drag", p.Vel.X)
	}
	if math.Abs(p.Alpha()-0.75) > eps {
		t.Errorf("alpha = %f, want 0.75", p.Alpha())
	}

	for !p.Update(ctx) {
	}
	if p.Alpha() != 0 {
		t.Errorf("expired alpha = %f, want 0", p.Alpha())
	}
}

func TestSpawnBurst(t *testing.T) {
	c := &collector{}
	SpawnBurst(physics.Vec{X: 10, Y: 20}, 20, config.ColorShield, c)
	if len(c.particles) != 20 {
		t.Fatalf("burst emitted %d particles, want 20", len(c.particles))
	}
	for _, p := range c.particles {
		if p.Pos != (physics.Vec{X: 10, Y: 20}) {
			t.Errorf("particle origin %v", p.Pos)
		}
		speed := p.Vel.Len()
		if speed < 1-eps || speed > 4+eps {
			t.Errorf("particle speed %f outside [1,4]", speed)
		}
		if p.Life < 500*time.Millisecond || p.Life > 1500*time.Millisecond {
			t.Errorf("particle life %s outside [500ms,1.5s]", p.Life)
		}
		if p.Radius < 1 || p.Radius > 3 {
			t.Errorf("particle radius %f outside [1,3]", p.Radius)
		}
		if p.Color != config.ColorShield {
			t.Errorf("particle color %06x", p.Color)
		}
	}

	SpawnBurst(physics.Vec{}, 5, 0, nil) // nil emitter is a no-op
}

func TestOverlaps(t *testing.T) {
	p := NewPlayer(physics.Vec{X: 100, Y: 100}, 15)
	near := &Enemy{Pos: physics.Vec{X: 120, Y: 100}, Radius: 10}
	far := &Enemy{Pos: physics.Vec{X: 125, Y: 100}, Radius: 10}
	if !Overlaps(p, near) {
		t.Error("expected overlap at distance 20 < 25")
	}
	if Overlaps(p, far) {
		t.Error("distance equal to radius sum must not overlap")
	}
}
