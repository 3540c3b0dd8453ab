package locomotion

import (
	"fmt"
	"math"
	"testing"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/pthm-cable/momentum/components"
	"github.com/pthm-cable/momentum/config"
	"github.com/pthm-cable/momentum/sensor"
)

const eps = 1e-9

// fakeBody records forces and impulses without integrating them.
type fakeBody struct {
	pos      r3.Vec
	vel      r3.Vec
	yaw      float64
	force    r3.Vec
	impulse  r3.Vec
	gravity  bool
	setCalls int
}

func newFakeBody() *fakeBody { return &fakeBody{gravity: true} }

func (b *fakeBody) Position() r3.Vec      { return b.pos }
func (b *fakeBody) Yaw() float64          { return b.yaw }
func (b *fakeBody) SetYaw(deg float64)    { b.yaw = deg }
func (b *fakeBody) Velocity() r3.Vec      { return b.vel }
func (b *fakeBody) SetVelocity(v r3.Vec)  { b.vel = v; b.setCalls++ }
func (b *fakeBody) AddForce(f r3.Vec)     { b.force = r3.Add(b.force, f) }
func (b *fakeBody) AddImpulse(j r3.Vec)   { b.impulse = r3.Add(b.impulse, j); b.vel = r3.Add(b.vel, j) }
func (b *fakeBody) UseGravity() bool      { return b.gravity }
func (b *fakeBody) SetUseGravity(on bool) { b.gravity = on }

// fakeSensor reports whatever state the test sets.
type fakeSensor struct {
	state sensor.State
	polls int
}

func (s *fakeSensor) Poll() sensor.State  { s.polls++; return s.state }
func (s *fakeSensor) State() sensor.State { return s.state }

func (s *fakeSensor) touch(normal r3.Vec) { s.state = sensor.State{Touching: true, Normal: normal, Distance: 0.4} }
func (s *fakeSensor) release()            { s.state.Touching = false }

// recorder logs observer notifications and effect requests in order.
type recorder struct {
	events []string
}

func (r *recorder) GroundedChanged(g bool)   { r.events = append(r.events, fmt.Sprintf("grounded:%v", g)) }
func (r *recorder) SlidingChanged(s bool)    { r.events = append(r.events, fmt.Sprintf("sliding:%v", s)) }
func (r *recorder) Request(e Effect)         { r.events = append(r.events, fmt.Sprintf("effect:%s:%s", e.Kind, e.Side)) }
func (r *recorder) WallRunningChanged(w bool, side Side) {
	r.events = append(r.events, fmt.Sprintf("wallrun:%v:%s", w, side))
}

func (r *recorder) has(ev string) bool {
	for _, e := range r.events {
		if e == ev {
			return true
		}
	}
	return false
}

func loadConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg, err := config.Load("")
	if err != nil {
		t.Fatalf("loading defaults: %v", err)
	}
	return cfg
}

type rig struct {
	ctrl                *Controller
	body                *fakeBody
	ground, left, right *fakeSensor
	rec                 *recorder
	dt                  float64
}

func newRig(t *testing.T, cfg *config.Config) *rig {
	t.Helper()
	if cfg == nil {
		cfg = loadConfig(t)
	}
	r := &rig{
		body:   newFakeBody(),
		ground: &fakeSensor{},
		left:   &fakeSensor{},
		right:  &fakeSensor{},
		rec:    &recorder{},
		dt:     cfg.Physics.DT,
	}
	r.ctrl = NewController(r.body, Sensors{Ground: r.ground, Left: r.left, Right: r.right}, cfg,
		WithObserver(r.rec), WithEffects(r.rec))
	return r
}

// land puts the rig on the ground and runs one idle step to register it.
func (r *rig) land() {
	r.ground.touch(r3.Vec{Y: 1})
	r.ctrl.FixedUpdate(r.dt)
}

func (r *rig) step(in Input) {
	r.body.force = r3.Vec{}
	r.body.impulse = r3.Vec{}
	r.ctrl.Update(in, r.dt)
	r.ctrl.FixedUpdate(r.dt)
}

func vecNear(a, b r3.Vec, tol float64) bool {
	return math.Abs(a.X-b.X) <= tol && math.Abs(a.Y-b.Y) <= tol && math.Abs(a.Z-b.Z) <= tol
}

func forwardAt(yaw float64) r3.Vec { return components.Forward(yaw) }
func rightAt(yaw float64) r3.Vec   { return components.Right(yaw) }
