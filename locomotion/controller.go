// Package locomotion implements the first-person momentum movement state
// machine: running, jumping, sliding and wall running over a rigid body.
//
// A Controller is driven by two ticks. Update runs once per rendered frame
// and handles look and input latching. FixedUpdate runs once per physics step
// and mutates velocity in a fixed order: sensors, wall run, movement, jump,
// slide, then the grounded refresh.
package locomotion

import (
	"log/slog"

	"gonum.org/v1/gonum/spatial/r2"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/pthm-cable/momentum/components"
	"github.com/pthm-cable/momentum/config"
	"github.com/pthm-cable/momentum/sensor"
)

// Phase names reported to the phase hook during FixedUpdate.
const (
	PhaseSensors  = "sensors"
	PhaseWallRun  = "wall_run"
	PhaseMove     = "move"
	PhaseJump     = "jump"
	PhaseSlide    = "slide"
	PhaseGrounded = "grounded"
)

// RigidBody is the physics body the controller drives. It is owned by the
// physics world; the controller only reads and mutates it during ticks.
type RigidBody interface {
	Position() r3.Vec
	Yaw() float64
	SetYaw(deg float64)
	Velocity() r3.Vec
	SetVelocity(v r3.Vec)
	AddForce(f r3.Vec)
	AddImpulse(j r3.Vec)
	UseGravity() bool
	SetUseGravity(on bool)
}

// ContactSensor is the polled view of a sensor the controller needs.
type ContactSensor interface {
	Poll() sensor.State
	State() sensor.State
}

// Sensors bundles the ground and wall sensors. Nil sensors never touch.
type Sensors struct {
	Ground ContactSensor
	Left   ContactSensor
	Right  ContactSensor
}

type noContact struct{}

func (noContact) Poll() sensor.State  { return sensor.State{} }
func (noContact) State() sensor.State { return sensor.State{} }

// Input is one frame of sampled input.
type Input struct {
	Move  r2.Vec // X strafes right, Y moves forward
	Jump  bool   // pressed this frame
	Slide bool   // pressed this frame
	Mouse r2.Vec // X turns right, Y looks up
}

// Controller is the movement controller for one body.
type Controller struct {
	body    RigidBody
	sensors Sensors
	cfg     *config.Config

	state   State
	solver  Solver
	slide   Slide
	wallRun WallRun
	look    *Look

	jumpLatch  Latch
	slideLatch Latch
	move       r2.Vec

	phaseHook func(phase string)
}

// Option configures a Controller.
type Option func(*Controller)

// WithObserver sets the state change observer.
func WithObserver(o Observer) Option {
	return func(c *Controller) { c.state.observer = o }
}

// WithEffects sets the cosmetic effect sink.
func WithEffects(s EffectSink) Option {
	return func(c *Controller) { c.state.effects = s }
}

// WithLogger sets the logger used for transition debug logs.
func WithLogger(l *slog.Logger) Option {
	return func(c *Controller) { c.state.logger = l }
}

// WithPhaseHook sets a function called at the start of each FixedUpdate phase.
func WithPhaseHook(fn func(phase string)) Option {
	return func(c *Controller) { c.phaseHook = fn }
}

// NewController creates a controller for body.
func NewController(body RigidBody, sensors Sensors, cfg *config.Config, opts ...Option) *Controller {
	if sensors.Ground == nil {
		sensors.Ground = noContact{}
	}
	if sensors.Left == nil {
		sensors.Left = noContact{}
	}
	if sensors.Right == nil {
		sensors.Right = noContact{}
	}

	c := &Controller{
		body:    body,
		sensors: sensors,
		cfg:     cfg,
		solver:  NewSolver(cfg.Movement, cfg.Physics.DT),
		slide:   NewSlide(cfg.Slide, cfg.Physics.DT),
		wallRun: NewWallRun(cfg.WallRun, cfg.Movement.JumpForce),
		look:    NewLook(cfg.Look),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Update handles a rendered frame: latches presses, stores the move axes,
// turns the body and steers an active slide.
func (c *Controller) Update(in Input, dt float64) {
	if in.Jump {
		c.jumpLatch.Press()
	}
	if in.Slide {
		c.slideLatch.Press()
	}
	c.move = in.Move

	yawDelta := c.look.Apply(c.body, in.Mouse, dt)
	c.slide.Steer(&c.state, c.body, yawDelta)
}

// FixedUpdate runs one physics step of dt seconds.
func (c *Controller) FixedUpdate(dt float64) {
	c.phase(PhaseSensors)
	ground := c.sensors.Ground.Poll()
	c.sensors.Left.Poll()
	c.sensors.Right.Poll()

	c.phase(PhaseWallRun)
	c.wallRun.Step(&c.state, c.body, c.sensors, &c.jumpLatch, c.move)

	c.phase(PhaseMove)
	c.solver.Step(&c.state, c.body, c.move, dt)

	c.phase(PhaseJump)
	c.jump()

	c.phase(PhaseSlide)
	c.slide.Step(&c.state, c.body, &c.slideLatch, dt)

	c.phase(PhaseGrounded)
	c.state.setGrounded(ground.Touching, c.body)
}

// jump consumes the jump latch and takes off when grounded.
func (c *Controller) jump() {
	if !c.jumpLatch.Consume() || !c.state.grounded {
		return
	}
	v := c.body.Velocity()
	c.state.recordTakeoff(r3.Norm(v))
	c.body.SetVelocity(r3.Add(v, r3.Scale(c.cfg.Movement.JumpForce, components.Up)))
}

// Reset drops the current mode, pending presses and view pitch so the body
// starts over as if just spawned. Gravity is back on afterwards.
func (c *Controller) Reset() {
	c.state.reset(c.body)
	c.body.SetUseGravity(true)
	c.jumpLatch.Consume()
	c.slideLatch.Consume()
	c.move = r2.Vec{}
	c.look.Level()
}

func (c *Controller) phase(name string) {
	if c.phaseHook != nil {
		c.phaseHook(name)
	}
}

// State returns the live locomotion state. Callers must not retain it across ticks.
func (c *Controller) State() *State { return &c.state }

// Snapshot returns a copy of the observable state with the current velocity.
func (c *Controller) Snapshot() Snapshot {
	return Snapshot{
		Grounded:               c.state.grounded,
		Mode:                   c.state.mode,
		Side:                   c.state.side,
		LastSpeedBeforeTakeoff: c.state.lastSpeedBeforeTakeoff,
		WallRunStartingSpeed:   c.state.wallRunStartingSpeed,
		Velocity:               c.body.Velocity(),
	}
}

// Pitch returns the view pitch in degrees.
func (c *Controller) Pitch() float64 { return c.look.Pitch() }

// Body returns the driven body.
func (c *Controller) Body() RigidBody { return c.body }

// SetMouseSensitivity changes look sensitivity at runtime.
func (c *Controller) SetMouseSensitivity(s float64) { c.look.cfg.MouseSensitivity = s }

// MouseSensitivity returns the current look sensitivity.
func (c *Controller) MouseSensitivity() float64 { return c.look.cfg.MouseSensitivity }
