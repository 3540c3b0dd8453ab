package locomotion

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/spatial/r2"
	"gonum.org/v1/gonum/spatial/r3"
)

func TestSolverGroundedNoInputDampens(t *testing.T) {
	cfg := loadConfig(t)
	sv := NewSolver(cfg.Movement, cfg.Physics.DT)

	tests := []struct {
		name string
		vel  r3.Vec
	}{
		{"running", r3.Vec{X: 3, Z: 7}},
		{"falling onto ground", r3.Vec{Y: -2, Z: 1}},
		{"fast", r3.Vec{X: 40}},
		{"tiny", r3.Vec{Z: 1e-6}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			st := &State{grounded: true}
			body := newFakeBody()
			body.vel = tc.vel
			before := r3.Norm(body.vel)

			for i := 0; i < 10; i++ {
				sv.Step(st, body, r2.Vec{}, cfg.Physics.DT)
				after := r3.Norm(body.vel)
				if after >= before {
					t.Fatalf("step %d: speed %v did not decrease from %v", i, after, before)
				}
				before = after
			}
		})
	}

	t.Run("zero stays zero", func(t *testing.T) {
		st := &State{grounded: true}
		body := newFakeBody()
		sv.Step(st, body, r2.Vec{}, cfg.Physics.DT)
		if body.vel != (r3.Vec{}) {
			t.Errorf("velocity = %v, want zero", body.vel)
		}
	})

	t.Run("airborne keeps velocity", func(t *testing.T) {
		st := &State{}
		body := newFakeBody()
		body.vel = r3.Vec{X: 5, Y: -1}
		sv.Step(st, body, r2.Vec{}, cfg.Physics.DT)
		if body.vel != (r3.Vec{X: 5, Y: -1}) {
			t.Errorf("velocity = %v, want unchanged", body.vel)
		}
	})
}

func TestSolverGrounded(t *testing.T) {
	cfg := loadConfig(t)
	sv := NewSolver(cfg.Movement, cfg.Physics.DT)
	base := cfg.Movement.BaseSpeed

	tests := []struct {
		name      string
		vel       r3.Vec
		move      r2.Vec
		yaw       float64
		wantSpeed float64
	}{
		{"from rest floors at base", r3.Vec{}, r2.Vec{Y: 1}, 0, base},
		{"exactly base is not decayed", r3.Vec{Z: base}, r2.Vec{Y: 1}, 0, base},
		{"above base decays", r3.Vec{Z: 10}, r2.Vec{Y: 1}, 0, 10 * cfg.Movement.GroundDecay},
		{"diagonal input normalized", r3.Vec{}, r2.Vec{X: 1, Y: 1}, 30, base},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			st := &State{grounded: true}
			body := newFakeBody()
			body.vel = tc.vel
			body.vel.Y = -0.5
			body.yaw = tc.yaw

			sv.Step(st, body, tc.move, cfg.Physics.DT)

			if got := horizontalSpeed(body.vel); math.Abs(got-tc.wantSpeed) > eps {
				t.Errorf("horizontal speed = %v, want %v", got, tc.wantSpeed)
			}
			if body.vel.Y != -0.5 {
				t.Errorf("vertical velocity = %v, want preserved -0.5", body.vel.Y)
			}
			want := unitOrZero(moveDirection(tc.yaw, tc.move.X, tc.move.Y))
			if got := unitOrZero(flat(body.vel)); !vecNear(got, want, eps) {
				t.Errorf("direction = %v, want %v", got, want)
			}
			if body.force != (r3.Vec{}) {
				t.Errorf("grounded step applied force %v", body.force)
			}
		})
	}
}

func TestSolverAirborneSpeedFreeze(t *testing.T) {
	cfg := loadConfig(t)
	cfg.Movement.BaseSpeed = 8
	sv := NewSolver(cfg.Movement, cfg.Physics.DT)

	st := &State{lastSpeedBeforeTakeoff: 12}
	body := newFakeBody()
	want := 12 * cfg.Movement.AirDecay

	// Horizontal speed varies while airborne; the applied speed stays pinned to takeoff
	for _, hs := range []float64{2, 8, 20} {
		body.vel = r3.Vec{Y: -3, Z: hs}
		body.force = r3.Vec{}
		sv.Step(st, body, r2.Vec{Y: 1}, cfg.Physics.DT)

		if got := r3.Norm(body.force); math.Abs(got-want) > eps {
			t.Errorf("hs=%v: force magnitude = %v, want %v", hs, got, want)
		}
		if body.force.Y != 0 {
			t.Errorf("hs=%v: force has vertical part %v", hs, body.force.Y)
		}
	}

	if st.LastSpeedBeforeTakeoff() != 12 {
		t.Errorf("takeoff speed changed to %v", st.LastSpeedBeforeTakeoff())
	}
}

func TestSolverAirHorizontalGuard(t *testing.T) {
	cfg := loadConfig(t)
	sv := NewSolver(cfg.Movement, cfg.Physics.DT)

	tests := []struct {
		name string
		vel  r3.Vec
		want r3.Vec
	}{
		{"above base decays horizontal only", r3.Vec{X: 6, Y: -4, Z: 8}, r3.Vec{X: 6 * 0.98, Y: -4, Z: 8 * 0.98}},
		{"at base untouched", r3.Vec{Y: -4, Z: 8}, r3.Vec{Y: -4, Z: 8}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			st := &State{lastSpeedBeforeTakeoff: 8}
			body := newFakeBody()
			body.vel = tc.vel
			sv.Step(st, body, r2.Vec{Y: 1}, cfg.Physics.DT)
			if !vecNear(body.vel, tc.want, eps) {
				t.Errorf("velocity = %v, want %v", body.vel, tc.want)
			}
		})
	}
}

func TestSolverYieldsToSubStates(t *testing.T) {
	cfg := loadConfig(t)
	sv := NewSolver(cfg.Movement, cfg.Physics.DT)

	for _, mode := range []Mode{ModeSliding, ModeWallRunning} {
		t.Run(mode.String(), func(t *testing.T) {
			st := &State{grounded: true, mode: mode}
			body := newFakeBody()
			body.vel = r3.Vec{Z: 12}

			sv.Step(st, body, r2.Vec{}, cfg.Physics.DT)
			sv.Step(st, body, r2.Vec{X: 1}, cfg.Physics.DT)

			if body.setCalls != 0 || body.force != (r3.Vec{}) {
				t.Errorf("solver touched the body in %s", mode)
			}
		})
	}
}
