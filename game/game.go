// Package game wires the controller, physics and presentation into a runnable loop.
package game

import (
	"fmt"
	"log/slog"

	"github.com/mlange-42/ark/ecs"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/pthm-cable/momentum/camera"
	"github.com/pthm-cable/momentum/components"
	"github.com/pthm-cable/momentum/config"
	"github.com/pthm-cable/momentum/locomotion"
	"github.com/pthm-cable/momentum/scenario"
	"github.com/pthm-cable/momentum/sensor"
	"github.com/pthm-cable/momentum/systems"
	"github.com/pthm-cable/momentum/telemetry"
	"github.com/pthm-cable/momentum/ui"
)

// Game holds the complete run state.
type Game struct {
	cfg  *config.Config
	opts Options

	world      *ecs.World
	colliders  *systems.Colliders
	physics    *systems.PhysicsSystem
	body       *systems.RigidBody
	controller *locomotion.Controller

	ground, left, right sensor.Sensor
	trigger             *sensor.Volume

	course *scenario.Scenario
	script *scenario.Script

	// Presentation
	rig       *camera.Rig
	hud       *ui.HUD
	controls  *ui.ControlsPanel
	chaseView bool

	// Telemetry
	collector     *telemetry.Collector
	recorder      *telemetry.Recorder
	perfCollector *telemetry.PerfCollector
	outputManager *telemetry.OutputManager

	// State
	tick        int32
	accumulator float64
	done        bool
	triggers    int

	screenWidth, screenHeight int32
}

// NewGameWithOptions builds the world, the player and every collaborator.
func NewGameWithOptions(cfg *config.Config, opts Options) (*Game, error) {
	course, err := scenario.Load(opts.ScenarioPath)
	if err != nil {
		return nil, fmt.Errorf("loading scenario: %w", err)
	}

	g := &Game{
		cfg:          cfg,
		opts:         opts,
		world:        ecs.NewWorld(),
		course:       course,
		screenWidth:  int32(cfg.Screen.Width),
		screenHeight: int32(cfg.Screen.Height),
	}

	g.colliders = systems.NewColliders(g.world)
	if err := course.Build(g.colliders); err != nil {
		return nil, fmt.Errorf("building course: %w", err)
	}
	g.physics = systems.NewPhysicsSystem(g.world, g.colliders, cfg.Physics.Gravity.R3())
	g.body = systems.SpawnPlayer(g.world, cfg, course.Spawn.R3(), g.spawnYaw())

	if g.ground, err = sensor.New(cfg.Sensors.Ground, g.colliders, g.body); err != nil {
		return nil, fmt.Errorf("ground: %w", err)
	}
	if g.left, err = sensor.New(cfg.Sensors.Left, g.colliders, g.body); err != nil {
		return nil, fmt.Errorf("left wall: %w", err)
	}
	if g.right, err = sensor.New(cfg.Sensors.Right, g.colliders, g.body); err != nil {
		return nil, fmt.Errorf("right wall: %w", err)
	}
	g.trigger = sensor.NewVolume(g.colliders, g.body, sensor.VolumeOptions{
		HalfExtents: cfg.Player.HalfExtents.R3(),
		Mask:        components.MaskOf(components.LayerTrigger),
	})
	g.trigger.OnChange(func(inside bool) {
		if inside {
			g.triggers++
			slog.Info("trigger entered", "tick", g.tick, "position", g.body.Position())
		}
	})

	g.rig = camera.New(cfg)
	g.hud = ui.NewHUD(cfg.Telemetry.HUDRefresh)
	g.controls = ui.NewControlsPanel(10, 200, 260)

	if err := g.initTelemetry(); err != nil {
		return nil, err
	}

	g.controller = locomotion.NewController(g.body,
		locomotion.Sensors{Ground: g.ground, Left: g.left, Right: g.right},
		cfg,
		locomotion.WithObserver(locomotion.Observers{g.hud, g.collector, g.recorder}),
		locomotion.WithEffects(g.rig),
		locomotion.WithLogger(slog.Default().With("component", "locomotion")),
		locomotion.WithPhaseHook(g.perfCollector.StartPhase),
	)

	if opts.Headless {
		if g.script, err = course.Player(); err != nil {
			return nil, fmt.Errorf("scenario %q: %w", course.Name, err)
		}
	}

	slog.Info("game initialized",
		"scenario", course.Name,
		"colliders", g.colliders.Len(),
		"headless", opts.Headless,
		"output_dir", g.outputManager.Dir(),
	)

	return g, nil
}

func (g *Game) spawnYaw() float64 {
	return g.course.Yaw + g.cfg.Player.SpawnYaw
}

// initTelemetry sets up stats collection and optional CSV output.
func (g *Game) initTelemetry() error {
	window := g.cfg.Telemetry.StatsWindow
	if g.opts.StatsWindowSec > 0 {
		window = g.opts.StatsWindowSec
	}
	g.collector = telemetry.NewCollector(window, g.cfg.Physics.DT)
	g.perfCollector = telemetry.NewPerfCollector(g.cfg.Telemetry.PerfWindow)

	om, err := telemetry.NewOutputManager(g.opts.OutputDir)
	if err != nil {
		return fmt.Errorf("creating output: %w", err)
	}
	g.outputManager = om
	if err := om.WriteConfig(g.cfg); err != nil {
		return fmt.Errorf("writing config snapshot: %w", err)
	}

	g.recorder = telemetry.NewRecorder(g.cfg.Physics.DT, g.horizontalSpeed, om.WriteTransition)
	return nil
}

func (g *Game) horizontalSpeed() float64 {
	v := g.body.Velocity()
	return r3.Norm(r3.Vec{X: v.X, Z: v.Z})
}

// step runs one fixed physics step: controller, physics, triggers, telemetry.
func (g *Game) step() {
	dt := g.cfg.Physics.DT

	g.tick++
	g.perfCollector.StartTick()
	g.recorder.SetTick(g.tick)

	g.controller.FixedUpdate(dt)

	g.perfCollector.StartPhase(telemetry.PhasePhysics)
	g.physics.Update(g.world, dt)
	g.trigger.Poll()

	g.perfCollector.StartPhase(telemetry.PhaseTelemetry)
	g.recordTick()
	g.flushTelemetry()

	g.perfCollector.EndTick()
}

// advance adds frame time to the accumulator and runs the fixed steps that fit.
func (g *Game) advance(frameDT float64) int {
	steps, rest := fixedSteps(g.accumulator+frameDT, g.cfg.Physics.DT, g.cfg.Physics.MaxStepsPerFrame)
	g.accumulator = rest
	for i := 0; i < steps; i++ {
		g.step()
	}
	return steps
}

// fixedSteps splits accumulated time into whole steps of dt, capped at maxSteps.
// Time beyond the cap is dropped so a long stall does not snowball.
func fixedSteps(acc, dt float64, maxSteps int) (int, float64) {
	n := int(acc / dt)
	if n > maxSteps {
		return maxSteps, 0
	}
	return n, acc - float64(n)*dt
}

// UpdateHeadless replays one scripted tick. It does nothing once the script is done.
func (g *Game) UpdateHeadless() {
	if g.done {
		return
	}
	in, ok := g.script.Next()
	if !ok {
		g.done = true
		g.finish()
		return
	}

	dt := g.cfg.Physics.DT
	g.controller.Update(in, dt)
	g.rig.Update(dt)
	g.step()
	g.hud.Tick(g.body.Velocity(), dt)
}

// Reset puts the player back at the spawn point at rest.
func (g *Game) Reset() {
	g.body.SetPosition(g.course.Spawn.R3())
	g.body.SetVelocity(r3.Vec{})
	g.body.SetYaw(g.spawnYaw())
	g.body.ClearForce()
	g.controller.Reset()
	g.rig.Reset()
	g.accumulator = 0
	slog.Info("player reset", "tick", g.tick)
}

// finish flushes the partial stats window and logs a summary.
func (g *Game) finish() {
	if g.collector.Pending() > 0 {
		g.writeStats(g.collector.Flush(g.tick))
	}
	slog.Info("run finished",
		"tick", g.tick,
		"position", g.body.Position(),
		"speed", g.horizontalSpeed(),
		"triggers", g.triggers,
	)
}

// Tick returns the number of fixed steps run.
func (g *Game) Tick() int32 { return g.tick }

// Done reports whether the headless script has finished.
func (g *Game) Done() bool { return g.done }

// Controller returns the player's movement controller.
func (g *Game) Controller() *locomotion.Controller { return g.controller }

// Body returns the player's rigid body.
func (g *Game) Body() *systems.RigidBody { return g.body }

// Triggers returns how many times the player entered a trigger volume.
func (g *Game) Triggers() int { return g.triggers }

// Unload closes output files.
func (g *Game) Unload() {
	if err := g.outputManager.Close(); err != nil {
		slog.Error("closing output", "error", err)
	}
}
