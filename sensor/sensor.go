// Package sensor implements contact sensors that report whether a body is
// touching ground or walls. Sensors are polled once per physics step and
// notify listeners only when the touching state flips.
package sensor

import (
	"fmt"

	"github.com/mlange-42/ark/ecs"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/pthm-cable/momentum/components"
	"github.com/pthm-cable/momentum/config"
	"github.com/pthm-cable/momentum/systems"
)

// State is the result of the most recent poll.
type State struct {
	Touching bool
	Normal   r3.Vec  // contact normal, zero for volumes
	Distance float64 // distance to the contact along the ray, zero for volumes
}

// Sensor is a polled contact detector.
type Sensor interface {
	// Poll recomputes the state against the world and returns it.
	Poll() State
	// State returns the result of the last poll.
	State() State
	// OnChange registers a callback fired when Touching flips.
	OnChange(fn func(touching bool))
}

// Frame is the moving reference a sensor is attached to.
type Frame interface {
	Position() r3.Vec
	Yaw() float64
}

// Caster answers ray queries.
type Caster interface {
	Raycast(origin, dir r3.Vec, length float64, mask components.LayerMask) (systems.Hit, bool)
}

// Overlapper answers box overlap queries.
type Overlapper interface {
	Overlapping(box components.AABB, mask components.LayerMask, dst []ecs.Entity) []ecs.Entity
}

// World answers both kinds of query.
type World interface {
	Caster
	Overlapper
}

// notifier holds the latest state and fans out flips to listeners.
type notifier struct {
	state     State
	listeners []func(bool)
}

func (n *notifier) State() State { return n.state }

func (n *notifier) OnChange(fn func(touching bool)) {
	if fn != nil {
		n.listeners = append(n.listeners, fn)
	}
}

func (n *notifier) set(s State) {
	flipped := s.Touching != n.state.Touching
	n.state = s
	if !flipped {
		return
	}
	for _, fn := range n.listeners {
		fn(s.Touching)
	}
}

// New builds a sensor from config attached to frame.
func New(cfg config.SensorConfig, world World, frame Frame) (Sensor, error) {
	mask, err := components.ParseMask(cfg.Layers)
	if err != nil {
		return nil, fmt.Errorf("building %s sensor: %w", cfg.Kind, err)
	}
	switch cfg.Kind {
	case "ray":
		return NewRay(world, frame, RayOptions{
			Offset:          cfg.Offset.R3(),
			Direction:       cfg.Direction.R3(),
			Length:          cfg.Length,
			RotateWithFrame: cfg.RotateWithFrame,
			Mask:            mask,
		}), nil
	case "volume":
		return NewVolume(world, frame, VolumeOptions{
			Offset:          cfg.Offset.R3(),
			HalfExtents:     cfg.HalfExtents.R3(),
			RotateWithFrame: cfg.RotateWithFrame,
			Mask:            mask,
		}), nil
	default:
		return nil, fmt.Errorf("building sensor: unknown kind %q", cfg.Kind)
	}
}
