package systems

import (
	"github.com/mlange-42/ark/ecs"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/pthm-cable/momentum/components"
	"github.com/pthm-cable/momentum/config"
)

// RigidBody is a handle onto a body entity's components.
// It satisfies the controller's rigid body contract without owning the entity.
type RigidBody struct {
	entity ecs.Entity
	posMap *ecs.Map[components.Position]
	velMap *ecs.Map[components.Velocity]
	rotMap *ecs.Map[components.Rotation]
	body   *ecs.Map[components.Body]
}

// NewRigidBody wraps an existing entity that has Position, Velocity, Rotation and Body.
func NewRigidBody(w *ecs.World, e ecs.Entity) *RigidBody {
	return &RigidBody{
		entity: e,
		posMap: ecs.NewMap[components.Position](w),
		velMap: ecs.NewMap[components.Velocity](w),
		rotMap: ecs.NewMap[components.Rotation](w),
		body:   ecs.NewMap[components.Body](w),
	}
}

// SpawnPlayer creates the player body entity from config at spawn and returns its handle.
func SpawnPlayer(w *ecs.World, cfg *config.Config, spawn r3.Vec, yaw float64) *RigidBody {
	mapper := ecs.NewMap4[components.Position, components.Velocity, components.Rotation, components.Body](w)

	pos := components.Position{Vec: spawn}
	vel := components.Velocity{}
	rot := components.Rotation{Yaw: yaw}
	body := components.Body{
		Mass:        cfg.Player.Mass,
		UseGravity:  true,
		HalfExtents: cfg.Player.HalfExtents.R3(),
		CollideMask: components.MaskOf(components.LayerDefault, components.LayerGround, components.LayerWall),
	}
	e := mapper.NewEntity(&pos, &vel, &rot, &body)
	return NewRigidBody(w, e)
}

// Position returns the body center.
func (rb *RigidBody) Position() r3.Vec { return rb.posMap.Get(rb.entity).Vec }

// SetPosition teleports the body.
func (rb *RigidBody) SetPosition(p r3.Vec) { rb.posMap.Get(rb.entity).Vec = p }

// Yaw returns the heading in degrees.
func (rb *RigidBody) Yaw() float64 { return rb.rotMap.Get(rb.entity).Yaw }

// SetYaw sets the heading in degrees.
func (rb *RigidBody) SetYaw(deg float64) { rb.rotMap.Get(rb.entity).Yaw = deg }

// Velocity returns the linear velocity.
func (rb *RigidBody) Velocity() r3.Vec { return rb.velMap.Get(rb.entity).Vec }

// SetVelocity replaces the linear velocity.
func (rb *RigidBody) SetVelocity(v r3.Vec) { rb.velMap.Get(rb.entity).Vec = v }

// AddForce accumulates a continuous force applied over the next physics step.
func (rb *RigidBody) AddForce(f r3.Vec) {
	b := rb.body.Get(rb.entity)
	b.Force = r3.Add(b.Force, f)
}

// AddImpulse changes velocity instantly by j / mass.
func (rb *RigidBody) AddImpulse(j r3.Vec) {
	inv := rb.body.Get(rb.entity).InverseMass()
	v := rb.velMap.Get(rb.entity)
	v.Vec = r3.Add(v.Vec, r3.Scale(inv, j))
}

// UseGravity reports whether gravity acts on the body.
func (rb *RigidBody) UseGravity() bool { return rb.body.Get(rb.entity).UseGravity }

// SetUseGravity toggles gravity.
func (rb *RigidBody) SetUseGravity(on bool) { rb.body.Get(rb.entity).UseGravity = on }

// ClearForce drops any force accumulated since the last physics step.
func (rb *RigidBody) ClearForce() { rb.body.Get(rb.entity).Force = r3.Vec{} }
