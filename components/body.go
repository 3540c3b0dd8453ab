package components

import "gonum.org/v1/gonum/spatial/r3"

// Body holds rigid body state integrated by the physics system.
type Body struct {
	Mass        float64
	UseGravity  bool
	Force       r3.Vec    // accumulated continuous force, cleared after each step
	HalfExtents r3.Vec    // collision box half size
	CollideMask LayerMask // layers of solid colliders the body is pushed out of
}

// InverseMass returns 1/Mass, or zero for a massless body.
func (b *Body) InverseMass() float64 {
	if b.Mass <= 0 {
		return 0
	}
	return 1 / b.Mass
}

// Bounds returns the body's box at the given center.
func (b *Body) Bounds(center r3.Vec) AABB {
	return BoxAt(center, b.HalfExtents)
}
