package systems

import (
	"math"
	"testing"

	"github.com/mlange-42/ark/ecs"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/pthm-cable/momentum/components"
	"github.com/pthm-cable/momentum/config"
)

const eps = 1e-9

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg, err := config.Load("")
	if err != nil {
		t.Fatalf("loading defaults: %v", err)
	}
	return cfg
}

func TestPhysicsGravity(t *testing.T) {
	cfg := testConfig(t)
	w := ecs.NewWorld()
	cs := NewColliders(w)
	phys := NewPhysicsSystem(w, cs, r3.Vec{Y: -10})
	rb := SpawnPlayer(w, cfg, r3.Vec{Y: 10}, 0)

	phys.Update(w, 0.1)

	if got := rb.Velocity().Y; math.Abs(got-(-1)) > eps {
		t.Errorf("velocity.Y = %f, want -1", got)
	}
	if got := rb.Position().Y; math.Abs(got-9.9) > eps {
		t.Errorf("position.Y = %f, want 9.9", got)
	}

	rb.SetUseGravity(false)
	rb.SetVelocity(r3.Vec{})
	phys.Update(w, 0.1)
	if got := rb.Velocity(); got != (r3.Vec{}) {
		t.Errorf("velocity without gravity = %v, want zero", got)
	}
}

func TestPhysicsForceClearedAfterStep(t *testing.T) {
	cfg := testConfig(t)
	w := ecs.NewWorld()
	phys := NewPhysicsSystem(w, NewColliders(w), r3.Vec{})
	rb := SpawnPlayer(w, cfg, r3.Vec{}, 0)
	rb.SetUseGravity(false)

	rb.AddForce(r3.Vec{X: 100})
	phys.Update(w, 0.02)
	if got := rb.Velocity().X; math.Abs(got-2) > eps {
		t.Errorf("velocity.X after force = %f, want 2", got)
	}

	phys.Update(w, 0.02)
	if got := rb.Velocity().X; math.Abs(got-2) > eps {
		t.Errorf("force was applied twice: velocity.X = %f, want 2", got)
	}
}

func TestRigidBodyClearForce(t *testing.T) {
	cfg := testConfig(t)
	w := ecs.NewWorld()
	phys := NewPhysicsSystem(w, NewColliders(w), r3.Vec{})
	rb := SpawnPlayer(w, cfg, r3.Vec{}, 0)

	rb.AddForce(r3.Vec{Z: 100})
	rb.ClearForce()
	phys.Update(w, 0.02)
	if got := rb.Velocity(); got != (r3.Vec{}) {
		t.Errorf("velocity after cleared force = %v, want zero", got)
	}
}

func TestRigidBodyImpulse(t *testing.T) {
	cfg := testConfig(t)
	cfg.Player.Mass = 2
	w := ecs.NewWorld()
	rb := SpawnPlayer(w, cfg, r3.Vec{}, 0)

	rb.AddImpulse(r3.Vec{Y: 10})
	if got := rb.Velocity().Y; math.Abs(got-5) > eps {
		t.Errorf("velocity.Y = %f, want 5", got)
	}
}

func TestPhysicsLandsOnFloor(t *testing.T) {
	cfg := testConfig(t)
	w := ecs.NewWorld()
	cs := NewColliders(w)
	cs.Add(components.Collider{Box: box(-10, -1, -10, 10, 0, 10), Layer: components.LayerGround, Solid: true})
	phys := NewPhysicsSystem(w, cs, r3.Vec{Y: -9.81})

	half := cfg.Player.HalfExtents[1]
	rb := SpawnPlayer(w, cfg, r3.Vec{Y: half + 0.05}, 0)

	for i := 0; i < 50; i++ {
		phys.Update(w, 0.02)
	}

	if got := rb.Position().Y; math.Abs(got-half) > 1e-6 {
		t.Errorf("resting height = %f, want %f", got, half)
	}
	if got := rb.Velocity().Y; got != 0 {
		t.Errorf("resting velocity.Y = %f, want 0", got)
	}

	// Sliding along the floor must not be stopped by the floor itself
	rb.SetVelocity(r3.Vec{X: 5})
	phys.Update(w, 0.02)
	if got := rb.Velocity().X; math.Abs(got-5) > eps {
		t.Errorf("horizontal velocity on floor = %f, want 5", got)
	}
}

func TestPhysicsBlockedByWall(t *testing.T) {
	cfg := testConfig(t)
	w := ecs.NewWorld()
	cs := NewColliders(w)
	cs.Add(components.Collider{Box: box(1, -5, -5, 2, 5, 5), Layer: components.LayerWall, Solid: true})
	cs.Add(components.Collider{Box: box(-1, -5, -5, -0.5, 5, 5), Layer: components.LayerTrigger, Solid: false})
	phys := NewPhysicsSystem(w, cs, r3.Vec{})
	rb := SpawnPlayer(w, cfg, r3.Vec{}, 0)
	rb.SetUseGravity(false)

	rb.SetVelocity(r3.Vec{X: 10, Z: 3})
	phys.Update(w, 0.1)

	halfX := cfg.Player.HalfExtents[0]
	if got := rb.Position().X; math.Abs(got-(1-halfX)) > eps {
		t.Errorf("position.X = %f, want %f", got, 1-halfX)
	}
	v := rb.Velocity()
	if v.X != 0 {
		t.Errorf("velocity.X into wall = %f, want 0", v.X)
	}
	if math.Abs(v.Z-3) > eps {
		t.Errorf("velocity.Z along wall = %f, want 3", v.Z)
	}

	// Non-solid colliders never block
	rb.SetVelocity(r3.Vec{X: -10})
	phys.Update(w, 0.1)
	if got := rb.Velocity().X; got != -10 {
		t.Errorf("velocity.X through trigger = %f, want -10", got)
	}
}
