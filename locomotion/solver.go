package locomotion

import (
	"gonum.org/v1/gonum/spatial/r2"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/pthm-cable/momentum/components"
	"github.com/pthm-cable/momentum/config"
)

// Solver applies base run movement each physics step.
type Solver struct {
	cfg     config.MovementConfig
	fixedDT float64
}

// NewSolver creates a movement solver.
func NewSolver(cfg config.MovementConfig, fixedDT float64) Solver {
	return Solver{cfg: cfg, fixedDT: fixedDT}
}

// moveDirection maps strafe/forward axes onto the flat body frame.
func moveDirection(yaw float64, x, y float64) r3.Vec {
	return flat(r3.Add(r3.Scale(x, components.Right(yaw)), r3.Scale(y, components.Forward(yaw))))
}

// speedToApply picks the run speed: the current horizontal speed floored at
// base speed on the ground, the takeoff speed in the air, decayed once when
// strictly above base speed.
func (sv Solver) speedToApply(st *State, hs, dt float64) float64 {
	speed := max(sv.cfg.BaseSpeed, hs)
	if !st.grounded {
		speed = st.lastSpeedBeforeTakeoff
	}
	if speed > sv.cfg.BaseSpeed {
		decay := sv.cfg.AirDecay
		if st.grounded {
			decay = sv.cfg.GroundDecay
		}
		speed *= perStep(decay, dt, sv.fixedDT)
	}
	return speed
}

// Step runs one physics step of base movement. It yields to sliding and wall running.
func (sv Solver) Step(st *State, body RigidBody, move r2.Vec, dt float64) {
	moveDir := moveDirection(body.Yaw(), move.X, move.Y)

	if st.mode != ModeDefault {
		return
	}

	if moveDir == (r3.Vec{}) {
		if st.grounded {
			body.SetVelocity(r3.Scale(perStep(sv.cfg.StopDamping, dt, sv.fixedDT), body.Velocity()))
		}
		return
	}

	v := body.Velocity()
	hs := horizontalSpeed(v)
	speed := sv.speedToApply(st, hs, dt)
	dir := unitOrZero(moveDir)

	if st.grounded {
		nv := r3.Scale(speed, dir)
		nv.Y = v.Y
		body.SetVelocity(nv)
	} else {
		body.AddForce(r3.Scale(speed, dir))
	}

	if !st.grounded && hs > sv.cfg.BaseSpeed {
		v = body.Velocity()
		f := perStep(sv.cfg.AirHorizontalDecay, dt, sv.fixedDT)
		body.SetVelocity(r3.Vec{X: v.X * f, Y: v.Y, Z: v.Z * f})
	}
}
