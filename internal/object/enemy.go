package object

import (
	"math/rand"

	"github.com/tomz197/dodger/internal/physics"
)

// Edge identifies the field side an enemy enters from.
type Edge int

const (
	EdgeTop Edge = iota
	EdgeRight
	EdgeBottom
	EdgeLeft
)

// Enemy is a homing chaser. Speed is shared across all enemies and set by
// the difficulty controller.
type Enemy struct {
	Pos       physics.Vec
	Vel       physics.Vec
	Radius    float64
	Speed     float64
	Destroyed bool // Mark for removal
}

// NewEnemyAtEdge creates an enemy just outside a random field edge,
// heading for the field center.
func NewEnemyAtEdge(field Field, radius, speed float64) *Enemy {
	return NewEnemyAt(Edge(physics.RandomInRange(0, 3)), field, radius, speed)
}

// NewEnemyAt creates an enemy just outside the given edge.
func NewEnemyAt(edge Edge, field Field, radius, speed float64) *Enemy {
	w := int(field.Width)
	h := int(field.Height)

	var pos physics.Vec
	switch edge {
	case EdgeTop:
		pos = physics.Vec{X: float64(physics.RandomInRange(0, w)), Y: -radius}
	case EdgeRight:
		pos = physics.Vec{X: field.Width + radius, Y: float64(physics.RandomInRange(0, h))}
	case EdgeBottom:
		pos = physics.Vec{X: float64(physics.RandomInRange(0, w)), Y: field.Height + radius}
	default:
		pos = physics.Vec{X: -radius, Y: float64(physics.RandomInRange(0, h))}
	}

	dir := physics.Normalize(field.Center().Sub(pos))
	return &Enemy{
		Pos:    pos,
		Vel:    dir.Scale(speed),
		Radius: radius,
		Speed:  speed,
	}
}

// Update steers toward the player with noise and inertia, then moves.
// After Update the velocity magnitude equals Speed.
func (e *Enemy) Update(ctx UpdateContext) {
	t := ctx.Tuning

	target := physics.Normalize(ctx.PlayerPos.Sub(e.Pos))
	target.X += (rand.Float64() - 0.5) * t.HomingNoiseFactor
	target.Y += (rand.Float64() - 0.5) * t.HomingNoiseFactor
	target = physics.Normalize(target)

	blended := physics.Lerp(e.Vel, target.Scale(e.Speed), t.HomingStrength)
	e.Vel = e.heading(blended, target).Scale(e.Speed)

	mult := 1.0
	if ctx.Slowed {
		mult = t.SlowFactor
	}
	e.Pos = e.Pos.Add(e.Vel.Scale(mult))
}

// heading picks the first non-degenerate direction so the speed invariant
// survives a blend that cancels out.
func (e *Enemy) heading(candidates ...physics.Vec) physics.Vec {
	for _, c := range candidates {
		if dir := physics.Normalize(c); !dir.IsZero() {
			return dir
		}
	}
	if dir := physics.Normalize(e.Vel); !dir.IsZero() {
		return dir
	}
	return physics.Vec{X: 1}
}

// SetSpeed changes the enemy's speed, keeping its heading.
func (e *Enemy) SetSpeed(speed float64) {
	e.Speed = speed
	e.Vel = e.heading(e.Vel).Scale(speed)
}

// MarkDestroyed marks the enemy for removal.
func (e *Enemy) MarkDestroyed() {
	e.Destroyed = true
}

// IsDestroyed returns true if the enemy is marked for destruction.
func (e *Enemy) IsDestroyed() bool {
	return e.Destroyed
}

// GetPosition returns the enemy's center position.
func (e *Enemy) GetPosition() (float64, float64) {
	return e.Pos.X, e.Pos.Y
}

// GetRadius returns the enemy's collision radius.
func (e *Enemy) GetRadius() float64 {
	return e.Radius
}
