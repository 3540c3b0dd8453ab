package locomotion

import (
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/pthm-cable/momentum/config"
)

// Slide runs the slide sub-state: entry with a speed boost, per-step
// dampening until the keep threshold, and steering from mouse yaw.
type Slide struct {
	cfg     config.SlideConfig
	fixedDT float64
}

// NewSlide creates a slide controller.
func NewSlide(cfg config.SlideConfig, fixedDT float64) Slide {
	return Slide{cfg: cfg, fixedDT: fixedDT}
}

// Boost returns the entry boost for a body moving at speed. It grows from the
// flat added speed up to three times it as speed approaches the reference speed.
func (sl Slide) Boost(speed float64) float64 {
	add := sl.cfg.AddedSpeed
	ref := sl.cfg.BoostReferenceSpeed
	t := 1.0
	if ref > 0 {
		t = clamp(speed/ref, 0, 1)
	}
	return add + lerp(0, add*2, t)
}

// CanStart reports whether a slide may begin at the current velocity.
func (sl Slide) CanStart(st *State, v r3.Vec) bool {
	return st.grounded && st.mode == ModeDefault && horizontalSpeed(v) >= sl.cfg.SpeedThreshold
}

// Step runs one physics step. The slide latch is only consumed on a grounded
// step, so a press made in the air starts the slide on landing.
func (sl Slide) Step(st *State, body RigidBody, latch *Latch, dt float64) {
	if latch.Pending() && st.grounded {
		latch.Consume()
		v := body.Velocity()
		if sl.CanStart(st, v) {
			speed := r3.Norm(v)
			body.SetVelocity(r3.Scale(speed+sl.Boost(speed), unitOrZero(v)))
			st.startSlide()
		}
	}

	if st.mode != ModeSliding {
		return
	}
	nv := r3.Scale(perStep(sl.cfg.Dampening, dt, sl.fixedDT), body.Velocity())
	if r3.Norm(nv) > sl.cfg.KeepSlidingThreshold {
		body.SetVelocity(nv)
	} else {
		st.stopSlide()
	}
}

// Steer turns the sliding velocity by a share of the body's yaw change in degrees.
func (sl Slide) Steer(st *State, body RigidBody, yawDelta float64) {
	if st.mode != ModeSliding || yawDelta == 0 {
		return
	}
	body.SetVelocity(turnRight(body.Velocity(), yawDelta*sl.cfg.SteeringPower))
}
