// Package physics provides vector math, collision detection and distance utilities.
package physics

import (
	"math"
	"math/rand"
)

// Vec is a 2D vector in arena coordinates.
type Vec struct {
	X, Y float64
}

// Add returns v + o.
func (v Vec) Add(o Vec) Vec {
	return Vec{X: v.X + o.X, Y: v.Y + o.Y}
}

// Sub returns v - o.
func (v Vec) Sub(o Vec) Vec {
	return Vec{X: v.X - o.X, Y: v.Y - o.Y}
}

// Scale returns v multiplied by s.
func (v Vec) Scale(s float64) Vec {
	return Vec{X: v.X * s, Y: v.Y * s}
}

// Len returns the magnitude of v.
func (v Vec) Len() float64 {
	return math.Sqrt(v.X*v.X + v.Y*v.Y)
}

// IsZero reports whether both components are exactly zero.
func (v Vec) IsZero() bool {
	return v.X == 0 && v.Y == 0
}

// Normalize returns the unit vector in v's direction.
// The zero vector normalizes to the zero vector.
func Normalize(v Vec) Vec {
	mag := v.Len()
	if mag == 0 {
		return Vec{}
	}
	return Vec{X: v.X / mag, Y: v.Y / mag}
}

// Lerp blends a toward b by t (0 = a, 1 = b).
func Lerp(a, b Vec, t float64) Vec {
	return Vec{
		X: a.X*(1-t) + b.X*t,
		Y: a.Y*(1-t) + b.Y*t,
	}
}

// Clamp limits v to the range [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

// RandomInRange returns a uniform integer in the inclusive range [min, max].
// Returns min when max < min.
func RandomInRange(min, max int) int {
	if max <= min {
		return min
	}
	return min + rand.Intn(max-min+1)
}

// Distance calculates the Euclidean distance between two points.
func Distance(x1, y1, x2, y2 float64) float64 {
	dx := x2 - x1
	dy := y2 - y1
	return math.Sqrt(dx*dx + dy*dy)
}

// CirclesOverlap reports whether the distance between two circle centers is
// strictly less than the sum of their radii.
func CirclesOverlap(x1, y1, r1, x2, y2, r2 float64) bool {
	return Distance(x1, y1, x2, y2) < r1+r2
}
