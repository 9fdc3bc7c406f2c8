package object

import (
	"time"

	"github.com/tomz197/dodger/internal/loop/config"
	"github.com/tomz197/dodger/internal/physics"
)

// Input is the per-tick control state sampled by the player.
type Input struct {
	Up, Down, Left, Right bool

	// Pointer is the latest pointer target in field coordinates.
	// Only applied when HasPointer is set; otherwise the previous target stays.
	Pointer    physics.Vec
	HasPointer bool
}

// Moving reports whether any direction key is held.
func (in Input) Moving() bool {
	return in.Up || in.Down || in.Left || in.Right
}

// Field is the playable area in logical units. It may change between ticks.
type Field struct {
	Width  float64
	Height float64
}

// Center returns the middle of the field.
func (f Field) Center() physics.Vec {
	return physics.Vec{X: f.Width / 2, Y: f.Height / 2}
}

// Emitter receives particles produced during an update.
type Emitter interface {
	Emit(p *Particle)
}

// UpdateContext provides all the information an entity needs during update.
type UpdateContext struct {
	Delta     time.Duration
	Input     Input
	Field     Field
	PlayerPos physics.Vec // Homing target for enemies
	Slowed    bool        // Slow effect active this tick
	Tuning    *config.Tuning
}

// Collider is anything with a circular hit area.
type Collider interface {
	GetPosition() (float64, float64)
	GetRadius() float64
}

// Overlaps reports whether two colliders are closer than the sum of their radii.
func Overlaps(a, b Collider) bool {
	ax, ay := a.GetPosition()
	bx, by := b.GetPosition()
	return physics.CirclesOverlap(ax, ay, a.GetRadius(), bx, by, b.GetRadius())
}
