// Package config provides configuration loading and access for the movement controller.
package config

import (
	_ "embed"
	"fmt"
	"math"
	"os"

	"gonum.org/v1/gonum/spatial/r3"
	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all controller and runtime configuration parameters.
type Config struct {
	Screen    ScreenConfig    `yaml:"screen"`
	Physics   PhysicsConfig   `yaml:"physics"`
	Player    PlayerConfig    `yaml:"player"`
	Movement  MovementConfig  `yaml:"movement"`
	Look      LookConfig      `yaml:"look"`
	Slide     SlideConfig     `yaml:"slide"`
	WallRun   WallRunConfig   `yaml:"wall_run"`
	Sensors   SensorsConfig   `yaml:"sensors"`
	Effects   EffectsConfig   `yaml:"effects"`
	Telemetry TelemetryConfig `yaml:"telemetry"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// Vec3 is a YAML-friendly three component vector, written as [x, y, z].
type Vec3 [3]float64

// R3 converts the vector for use with gonum spatial math.
func (v Vec3) R3() r3.Vec {
	return r3.Vec{X: v[0], Y: v[1], Z: v[2]}
}

// ScreenConfig holds display settings.
type ScreenConfig struct {
	Width     int     `yaml:"width"`
	Height    int     `yaml:"height"`
	TargetFPS int     `yaml:"target_fps"`
	FOV       float64 `yaml:"fov"` // Vertical field of view in degrees
}

// PhysicsConfig holds fixed-step integration parameters.
type PhysicsConfig struct {
	DT               float64 `yaml:"dt"`                  // Fixed physics step in seconds
	Gravity          Vec3    `yaml:"gravity"`             // World gravity acceleration
	MaxStepsPerFrame int     `yaml:"max_steps_per_frame"` // Cap on catch-up steps per rendered frame
}

// PlayerConfig holds the player rigid body parameters.
type PlayerConfig struct {
	Mass        float64 `yaml:"mass"`
	HalfExtents Vec3    `yaml:"half_extents"` // Collision box half size
	EyeHeight   float64 `yaml:"eye_height"`   // Camera height above the body center
	SpawnYaw    float64 `yaml:"spawn_yaw"`    // Degrees, positive turns right
}

// MovementConfig holds base locomotion tuning.
// Multiplicative factors are per fixed physics step.
type MovementConfig struct {
	BaseSpeed          float64 `yaml:"base_speed"`
	JumpForce          float64 `yaml:"jump_force"`
	StopDamping        float64 `yaml:"stop_damping"`         // Applied when grounded with no input
	GroundDecay        float64 `yaml:"ground_decay"`         // Bleed toward base speed while grounded
	AirDecay           float64 `yaml:"air_decay"`            // Bleed toward base speed while airborne
	AirHorizontalDecay float64 `yaml:"air_horizontal_decay"` // Airborne horizontal guard above base speed
}

// LookConfig holds mouse look parameters.
type LookConfig struct {
	MouseSensitivity float64 `yaml:"mouse_sensitivity"` // Degrees per unit of mouse delta per second
	VerticalClamp    float64 `yaml:"vertical_clamp"`    // Max pitch magnitude in degrees
	HorizontalClamp  float64 `yaml:"horizontal_clamp"`  // Max yaw magnitude in degrees (0 = unlimited)
}

// SlideConfig holds slide tuning.
type SlideConfig struct {
	SpeedThreshold       float64 `yaml:"speed_threshold"`        // Minimum horizontal speed to begin sliding
	AddedSpeed           float64 `yaml:"added_speed"`            // Flat boost on entry
	BoostReferenceSpeed  float64 `yaml:"boost_reference_speed"`  // Speed at which the scaled boost saturates
	Dampening            float64 `yaml:"dampening"`              // Per-step velocity multiplier while sliding
	KeepSlidingThreshold float64 `yaml:"keep_sliding_threshold"` // Slide ends at or below this speed
	SteeringPower        float64 `yaml:"steering_power"`         // Fraction of mouse yaw applied to velocity
}

// WallRunConfig holds wall-run tuning.
type WallRunConfig struct {
	FallWhileWallRunning bool    `yaml:"fall_while_wall_running"` // Keep gravity and blend falling speed in
	KeepThreshold        float64 `yaml:"keep_threshold"`          // Wall run ends below this speed
	FallBlend            float64 `yaml:"fall_blend"`              // Fraction of negative vertical speed kept
	PressForce           float64 `yaml:"press_force"`             // Force pushing the body into the wall
	LaunchStep           float64 `yaml:"launch_step"`             // Extra launch magnitude per added direction
}

// SensorConfig describes one contact sensor.
type SensorConfig struct {
	Kind            string   `yaml:"kind"`              // "ray" or "volume"
	Offset          Vec3     `yaml:"offset"`            // Local offset from the body center
	Direction       Vec3     `yaml:"direction"`         // Ray direction (local when rotate_with_frame)
	Length          float64  `yaml:"length"`            // Ray length
	RotateWithFrame bool     `yaml:"rotate_with_frame"` // Rotate offset and direction by body yaw
	HalfExtents     Vec3     `yaml:"half_extents"`      // Volume half size
	Layers          []string `yaml:"layers"`            // Detection layer names
}

// SensorsConfig holds the ground and wall sensors.
type SensorsConfig struct {
	Ground SensorConfig `yaml:"ground"`
	Left   SensorConfig `yaml:"left"`
	Right  SensorConfig `yaml:"right"`
}

// EffectsConfig holds cosmetic tween parameters.
type EffectsConfig struct {
	SlideCameraDrop  float64 `yaml:"slide_camera_drop"`  // Camera height drop while sliding
	SlideVisualPitch float64 `yaml:"slide_visual_pitch"` // Degrees the body visual leans back
	WallLeanAngle    float64 `yaml:"wall_lean_angle"`    // Camera roll in degrees while wall running
	Duration         float64 `yaml:"duration"`           // Seconds per tween
}

// TelemetryConfig holds telemetry parameters.
type TelemetryConfig struct {
	StatsWindow float64 `yaml:"stats_window"` // Seconds per stats window
	PerfWindow  int     `yaml:"perf_window"`  // Ticks averaged by the perf collector
	HUDRefresh  float64 `yaml:"hud_refresh"`  // Seconds between HUD readout refreshes
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	StepsPerSecond   int // 1 / Physics.DT rounded
	StatsWindowTicks int // Telemetry.StatsWindow in fixed steps
}

// global holds the loaded configuration.
var global *Config

// Init loads configuration from the given path, or uses embedded defaults if path is empty.
// Must be called before Cfg().
func Init(path string) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	global = cfg
	return nil
}

// MustInit is like Init but panics on error.
func MustInit(path string) {
	if err := Init(path); err != nil {
		panic(fmt.Sprintf("config: failed to initialize: %v", err))
	}
}

// Cfg returns the global configuration. Panics if Init was not called.
func Cfg() *Config {
	if global == nil {
		panic("config: Cfg() called before Init()")
	}
	return global
}

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Unmarshal into same struct - only overwrites fields present in file
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	cfg.computeDerived()

	return cfg, nil
}

// validate rejects values that would make the fixed-step math meaningless.
func (c *Config) validate() error {
	if c.Physics.DT <= 0 {
		return fmt.Errorf("physics.dt must be positive, got %v", c.Physics.DT)
	}
	if c.Player.Mass <= 0 {
		return fmt.Errorf("player.mass must be positive, got %v", c.Player.Mass)
	}
	if c.Slide.Dampening <= 0 || c.Slide.Dampening >= 1 {
		return fmt.Errorf("slide.dampening must be in (0, 1), got %v", c.Slide.Dampening)
	}
	for name, s := range map[string]SensorConfig{"ground": c.Sensors.Ground, "left": c.Sensors.Left, "right": c.Sensors.Right} {
		switch s.Kind {
		case "ray", "volume":
		default:
			return fmt.Errorf("sensors.%s.kind must be ray or volume, got %q", name, s.Kind)
		}
	}
	return nil
}

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() {
	c.Derived.StepsPerSecond = int(math.Round(1 / c.Physics.DT))
	c.Derived.StatsWindowTicks = int(math.Round(c.Telemetry.StatsWindow / c.Physics.DT))
	if c.Derived.StatsWindowTicks < 1 {
		c.Derived.StatsWindowTicks = 1
	}

	if c.Physics.MaxStepsPerFrame < 1 {
		c.Physics.MaxStepsPerFrame = 1
	}
	if c.Telemetry.PerfWindow < 1 {
		c.Telemetry.PerfWindow = c.Derived.StepsPerSecond
	}
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
