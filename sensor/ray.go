package sensor

import (
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/pthm-cable/momentum/components"
)

// RayOptions configures a Ray.
type RayOptions struct {
	Offset          r3.Vec // origin offset from the frame position
	Direction       r3.Vec // body-local when RotateWithFrame, world otherwise
	Length          float64
	RotateWithFrame bool
	Mask            components.LayerMask
}

// Ray touches when a collider on its mask lies within Length along its direction.
// The last contact normal and distance are kept after contact is lost.
type Ray struct {
	notifier
	caster Caster
	frame  Frame
	opts   RayOptions
}

// NewRay creates a ray sensor.
func NewRay(caster Caster, frame Frame, opts RayOptions) *Ray {
	return &Ray{caster: caster, frame: frame, opts: opts}
}

// Cast returns the ray origin and the world direction scaled to its length.
func (r *Ray) Cast() (origin, dir r3.Vec) {
	offset, d := r.opts.Offset, r.opts.Direction
	if r.opts.RotateWithFrame {
		yaw := r.frame.Yaw()
		offset = components.LocalToWorld(yaw, offset)
		d = components.LocalToWorld(yaw, d)
	}
	if n := r3.Norm(d); n > 0 {
		d = r3.Scale(r.opts.Length/n, d)
	}
	return r3.Add(r.frame.Position(), offset), d
}

// Poll casts the ray and updates the state.
func (r *Ray) Poll() State {
	origin, d := r.Cast()
	s := r.state
	hit, ok := r.caster.Raycast(origin, d, r.opts.Length, r.opts.Mask)
	s.Touching = ok
	if ok {
		s.Normal = hit.Normal
		s.Distance = hit.Distance
	}
	r.set(s)
	return s
}
