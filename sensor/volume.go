package sensor

import (
	"github.com/mlange-42/ark/ecs"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/pthm-cable/momentum/components"
)

// VolumeOptions configures a Volume.
type VolumeOptions struct {
	Offset          r3.Vec
	HalfExtents     r3.Vec
	RotateWithFrame bool // rotates the offset only, the box stays axis aligned
	Mask            components.LayerMask
}

// Volume is a trigger box that latches on enter and exit events.
// Every collider leaving the box is an exit and clears Touching, even if
// another collider is still inside; every collider arriving is an enter and
// sets it. Exits are applied before enters within one poll.
type Volume struct {
	notifier
	overlapper Overlapper
	frame      Frame
	opts       VolumeOptions

	inside  map[ecs.Entity]struct{}
	next    map[ecs.Entity]struct{}
	scratch []ecs.Entity
}

// NewVolume creates a volume sensor.
func NewVolume(overlapper Overlapper, frame Frame, opts VolumeOptions) *Volume {
	return &Volume{
		overlapper: overlapper,
		frame:      frame,
		opts:       opts,
		inside:     make(map[ecs.Entity]struct{}),
		next:       make(map[ecs.Entity]struct{}),
	}
}

// Box returns the world space trigger box.
func (v *Volume) Box() components.AABB {
	offset := v.opts.Offset
	if v.opts.RotateWithFrame {
		offset = components.LocalToWorld(v.frame.Yaw(), offset)
	}
	return components.BoxAt(r3.Add(v.frame.Position(), offset), v.opts.HalfExtents)
}

// Poll diffs the overlapping colliders against the previous poll and updates the state.
func (v *Volume) Poll() State {
	v.scratch = v.overlapper.Overlapping(v.Box(), v.opts.Mask, v.scratch[:0])

	clear(v.next)
	entered := false
	for _, e := range v.scratch {
		v.next[e] = struct{}{}
		if _, ok := v.inside[e]; !ok {
			entered = true
		}
	}
	exited := false
	for e := range v.inside {
		if _, ok := v.next[e]; !ok {
			exited = true
			break
		}
	}
	v.inside, v.next = v.next, v.inside

	s := v.state
	if exited {
		s.Touching = false
	}
	if entered {
		s.Touching = true
	}
	v.set(s)
	return s
}
