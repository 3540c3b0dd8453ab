package locomotion

import (
	"gonum.org/v1/gonum/spatial/r2"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/pthm-cable/momentum/components"
	"github.com/pthm-cable/momentum/config"
)

// WallRun runs the wall-run sub-state: attach on an airborne jump next to a
// wall, constant speed travel along it, and a launch on a second jump.
type WallRun struct {
	cfg       config.WallRunConfig
	jumpForce float64
}

// NewWallRun creates a wall-run controller.
func NewWallRun(cfg config.WallRunConfig, jumpForce float64) WallRun {
	return WallRun{cfg: cfg, jumpForce: jumpForce}
}

// LaunchDirection returns the scaled launch direction off a wall on side with
// the given away-from-wall normal. Up always contributes; forward contributes
// when moving forward; the normal contributes when strafing away from the wall.
// Each extra contribution adds LaunchStep to the unit length.
func (wr WallRun) LaunchDirection(side Side, forward, normal r3.Vec, move r2.Vec) r3.Vec {
	dir := components.Up
	n := 1
	if move.Y > 0 {
		dir = r3.Add(dir, forward)
		n++
	}
	if (move.X < 0 && side == SideRight) || (move.X > 0 && side == SideLeft) {
		dir = r3.Add(dir, normal)
		n++
	}
	return r3.Scale(1+wr.cfg.LaunchStep*float64(n-1), unitOrZero(dir))
}

// wallForward returns the travel direction along a wall with the given
// normal, oriented toward the body's facing.
func wallForward(normal, facing r3.Vec) r3.Vec {
	wf := r3.Cross(normal, components.Up)
	if r3.Dot(facing, wf) < 0 {
		wf = r3.Scale(-1, wf)
	}
	return wf
}

// Step runs one physics step. The jump latch is only consumed while airborne.
func (wr WallRun) Step(st *State, body RigidBody, sensors Sensors, jump *Latch, move r2.Vec) {
	left, right := sensors.Left.State(), sensors.Right.State()

	if jump.Pending() && !st.grounded {
		jump.Consume()
		if st.mode == ModeWallRunning {
			normal := left.Normal
			if st.side == SideRight {
				normal = right.Normal
			}
			dir := wr.LaunchDirection(st.side, components.Forward(body.Yaw()), normal, move)
			body.AddImpulse(r3.Scale(wr.jumpForce, dir))
			st.stopWallRun(body)
		} else if left.Touching {
			st.startWallRun(SideLeft, r3.Norm(body.Velocity()), body, wr.cfg.FallWhileWallRunning)
		} else if right.Touching {
			st.startWallRun(SideRight, r3.Norm(body.Velocity()), body, wr.cfg.FallWhileWallRunning)
		}
	}

	if st.mode != ModeWallRunning {
		return
	}
	if st.grounded || (!left.Touching && !right.Touching) {
		st.stopWallRun(body)
		return
	}

	side, contact := SideLeft, left
	if right.Touching {
		side, contact = SideRight, right
	}
	st.setWallSide(side)

	wf := wallForward(contact.Normal, components.Forward(body.Yaw()))
	if wf == (r3.Vec{}) {
		return
	}

	ySpeed := body.Velocity().Y
	v := r3.Scale(st.wallRunStartingSpeed, wf)
	body.SetVelocity(v)
	if r3.Norm(v) < wr.cfg.KeepThreshold {
		st.stopWallRun(body)
		return
	}
	if wr.cfg.FallWhileWallRunning && ySpeed < 0 {
		v.Y += ySpeed * wr.cfg.FallBlend
		body.SetVelocity(v)
	}
	body.AddForce(r3.Scale(-wr.cfg.PressForce, contact.Normal))
}
