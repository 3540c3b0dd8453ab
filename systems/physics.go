package systems

import (
	"github.com/mlange-42/ark/ecs"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/pthm-cable/momentum/components"
)

// contactSkin shrinks overlap tests so bodies resting on a face are not re-resolved.
const contactSkin = 1e-7

// PhysicsSystem integrates rigid bodies and resolves them against solid colliders.
type PhysicsSystem struct {
	filter    ecs.Filter3[components.Position, components.Velocity, components.Body]
	colliders *Colliders
	gravity   r3.Vec
}

// NewPhysicsSystem creates a new physics system.
func NewPhysicsSystem(w *ecs.World, colliders *Colliders, gravity r3.Vec) *PhysicsSystem {
	return &PhysicsSystem{
		filter:    *ecs.NewFilter3[components.Position, components.Velocity, components.Body](w),
		colliders: colliders,
		gravity:   gravity,
	}
}

// Update advances every body by one fixed step of dt seconds.
// Accumulated forces are applied once and cleared.
func (s *PhysicsSystem) Update(w *ecs.World, dt float64) {
	query := s.filter.Query()
	for query.Next() {
		pos, vel, body := query.Get()

		accel := r3.Scale(body.InverseMass(), body.Force)
		if body.UseGravity {
			accel = r3.Add(accel, s.gravity)
		}
		vel.Vec = r3.Add(vel.Vec, r3.Scale(dt, accel))
		body.Force = r3.Vec{}

		s.move(pos, vel, body, dt)
	}
}

// move advances the body one axis at a time, vertical first, pushing it out
// of any solid collider it enters and cancelling velocity into the contact.
func (s *PhysicsSystem) move(pos *components.Position, vel *components.Velocity, body *components.Body, dt float64) {
	for _, axis := range [3]int{1, 0, 2} {
		delta := component(vel.Vec, axis) * dt
		if delta == 0 {
			continue
		}
		pos.Vec = setComponent(pos.Vec, axis, component(pos.Vec, axis)+delta)
		if s.colliders == nil {
			continue
		}

		bounds := body.Bounds(pos.Vec)
		for _, i := range s.colliders.near(bounds) {
			c := s.colliders.entries[i].c
			if !c.Solid || !body.CollideMask.Has(c.Layer) {
				continue
			}
			if !penetrates(body.Bounds(pos.Vec), c.Box) {
				continue
			}
			half := component(body.HalfExtents, axis)
			if delta > 0 {
				pos.Vec = setComponent(pos.Vec, axis, component(c.Box.Min, axis)-half)
			} else {
				pos.Vec = setComponent(pos.Vec, axis, component(c.Box.Max, axis)+half)
			}
			vel.Vec = setComponent(vel.Vec, axis, 0)
		}
	}
}

func penetrates(a, b components.AABB) bool {
	return a.Min.X < b.Max.X-contactSkin && a.Max.X > b.Min.X+contactSkin &&
		a.Min.Y < b.Max.Y-contactSkin && a.Max.Y > b.Min.Y+contactSkin &&
		a.Min.Z < b.Max.Z-contactSkin && a.Max.Z > b.Min.Z+contactSkin
}

func component(v r3.Vec, axis int) float64 {
	switch axis {
	case 0:
		return v.X
	case 1:
		return v.Y
	default:
		return v.Z
	}
}

func setComponent(v r3.Vec, axis int, x float64) r3.Vec {
	switch axis {
	case 0:
		v.X = x
	case 1:
		v.Y = x
	default:
		v.Z = x
	}
	return v
}
