package object

import (
	"math"
	"math/rand"
	"sync"
	"time"

	"github.com/tomz197/dodger/internal/physics"
)

// particlePool is a sync.Pool for reusing Particle objects to reduce allocations.
var particlePool = sync.Pool{
	New: func() any {
		return &Particle{}
	},
}

// Burst shape.
const (
	burstMinSpeed = 1.0
	burstSpread   = 3.0
	burstMinLife  = 500  // ms
	burstMaxLife  = 1500 // ms
	burstMinSize  = 1
	burstMaxSize  = 3
)

// Particle is a short-lived decorative dot.
type Particle struct {
	Pos         physics.Vec
	Vel         physics.Vec
	Color       uint32
	Radius      float64
	Life        time.Duration // Time remaining
	InitialLife time.Duration // For fade calculation
}

// NewParticle creates a single particle from the pool.
func NewParticle(pos, vel physics.Vec, color uint32, radius float64, life time.Duration) *Particle {
	p := particlePool.Get().(*Particle)
	p.Pos = pos
	p.Vel = vel
	p.Color = color
	p.Radius = radius
	p.Life = life
	p.InitialLife = life
	return p
}

// Release returns the particle to the pool for reuse.
// Should be called when the particle is removed from the game.
func (p *Particle) Release() {
	particlePool.Put(p)
}

// SpawnBurst emits count particles radiating from pos in random directions.
func SpawnBurst(pos physics.Vec, count int, color uint32, emitter Emitter) {
	if emitter == nil {
		return
	}

	for i := 0; i < count; i++ {
		angle := rand.Float64() * 2 * math.Pi
		speed := rand.Float64()*burstSpread + burstMinSpeed
		vel := physics.Vec{X: math.Cos(angle) * speed, Y: math.Sin(angle) * speed}
		life := time.Duration(physics.RandomInRange(burstMinLife, burstMaxLife)) * time.Millisecond
		radius := float64(physics.RandomInRange(burstMinSize, burstMaxSize))

		emitter.Emit(NewParticle(pos, vel, color, radius, life))
	}
}

// Update moves the particle, ages it and applies drag.
// Returns true once the particle has expired.
func (p *Particle) Update(ctx UpdateContext) bool {
	p.Pos = p.Pos.Add(p.Vel)
	p.Life -= ctx.Delta
	p.Vel = p.Vel.Scale(ctx.Tuning.ParticleDrag)
	return p.Life <= 0
}

// Alpha is the remaining life fraction, used for fading.
func (p *Particle) Alpha() float64 {
	if p.InitialLife <= 0 {
		return 0
	}
	return physics.Clamp(float64(p.Life)/float64(p.InitialLife), 0, 1)
}
