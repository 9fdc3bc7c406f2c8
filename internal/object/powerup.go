package object

import (
	"time"

	"github.com/tomz197/dodger/internal/loop/config"
	"github.com/tomz197/dodger/internal/physics"
)

// PowerUpKind is the buff a power-up grants. The zero value is invalid.
type PowerUpKind uint8

const (
	PowerUpShield PowerUpKind = iota + 1
	PowerUpSlow
)

// String returns the kind's name.
func (k PowerUpKind) String() string {
	switch k {
	case PowerUpShield:
		return "shield"
	case PowerUpSlow:
		return "slow"
	default:
		return "unknown"
	}
}

// Valid reports whether k is one of the defined kinds.
func (k PowerUpKind) Valid() bool {
	return k == PowerUpShield || k == PowerUpSlow
}

// Color returns the RGB color for the kind's marker and pickup burst.
func (k PowerUpKind) Color() uint32 {
	if k == PowerUpSlow {
		return config.ColorSlow
	}
	return config.ColorShield
}

// Label returns the single-character marker drawn on the power-up.
func (k PowerUpKind) Label() rune {
	if k == PowerUpSlow {
		return 'S'
	}
	return 'I'
}

// PowerUp is a temporary pickup that despawns when its life runs out.
type PowerUp struct {
	Pos    physics.Vec
	Radius float64
	Kind   PowerUpKind
	Life   time.Duration // Remaining time before despawn
}

// NewPowerUp creates a power-up at a random position fully inside the field.
func NewPowerUp(kind PowerUpKind, field Field, radius float64, life time.Duration) *PowerUp {
	r := int(radius)
	pos := physics.Vec{
		X: float64(physics.RandomInRange(r, int(field.Width)-r)),
		Y: float64(physics.RandomInRange(r, int(field.Height)-r)),
	}
	return NewPowerUpAt(kind, pos, radius, life)
}

// NewPowerUpAt creates a power-up at a fixed position.
func NewPowerUpAt(kind PowerUpKind, pos physics.Vec, radius float64, life time.Duration) *PowerUp {
	return &PowerUp{
		Pos:    pos,
		Radius: radius,
		Kind:   kind,
		Life:   life,
	}
}

// Update counts down the remaining life. Returns true once expired.
func (p *PowerUp) Update(ctx UpdateContext) bool {
	p.Life -= ctx.Delta
	return p.Expired()
}

// Expired reports whether the power-up should be removed.
func (p *PowerUp) Expired() bool {
	return p.Life <= 0
}

// GetPosition returns the power-up's center position.
func (p *PowerUp) GetPosition() (float64, float64) {
	return p.Pos.X, p.Pos.Y
}

// GetRadius returns the power-up's pickup radius.
func (p *PowerUp) GetRadius() float64 {
	return p.Radius
}
