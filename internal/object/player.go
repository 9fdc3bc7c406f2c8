package object

import (
	"github.com/tomz197/dodger/internal/physics"
)

// Player is the avatar. Its position is driven directly by input.
type Player struct {
	Pos    physics.Vec
	Radius float64

	// Target is the pointer-follow destination. Keyboard movement drags it
	// along so releasing the keys does not snap back.
	Target physics.Vec
}

// NewPlayer creates a player at pos that stays put until input arrives.
func NewPlayer(pos physics.Vec, radius float64) *Player {
	return &Player{
		Pos:    pos,
		Radius: radius,
		Target: pos,
	}
}

// Update moves the player by keyboard or pointer and clamps it to the field.
func (p *Player) Update(ctx UpdateContext) {
	in := ctx.Input
	if in.HasPointer {
		p.Target = in.Pointer
	}

	if in.Moving() {
		var d physics.Vec
		if in.Up {
			d.Y--
		}
		if in.Down {
			d.Y++
		}
		if in.Left {
			d.X--
		}
		if in.Right {
			d.X++
		}
		dir := physics.Normalize(d)
		p.Pos = p.Pos.Add(dir.Scale(ctx.Tuning.KeyboardSpeed))
		p.Target = p.Pos
	} else {
		p.Pos = p.Pos.Add(p.Target.Sub(p.Pos).Scale(ctx.Tuning.FollowFactor))
	}

	p.Clamp(ctx.Field)
}

// Clamp keeps the whole player disc inside the field.
func (p *Player) Clamp(f Field) {
	p.Pos.X = physics.Clamp(p.Pos.X, p.Radius, f.Width-p.Radius)
	p.Pos.Y = physics.Clamp(p.Pos.Y, p.Radius, f.Height-p.Radius)
}

// MoveTo places the player and its follow target at pos.
func (p *Player) MoveTo(pos physics.Vec) {
	p.Pos = pos
	p.Target = pos
}

// GetPosition returns the player's center position.
func (p *Player) GetPosition() (float64, float64) {
	return p.Pos.X, p.Pos.Y
}

// GetRadius returns the player's collision radius.
func (p *Player) GetRadius() float64 {
	return p.Radius
}
