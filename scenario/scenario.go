// Package scenario loads course geometry and scripted input timelines.
package scenario

import (
	_ "embed"
	"errors"
	"fmt"
	"os"

	"gonum.org/v1/gonum/spatial/r2"
	"gopkg.in/yaml.v3"

	"github.com/pthm-cable/momentum/components"
	"github.com/pthm-cable/momentum/config"
	"github.com/pthm-cable/momentum/locomotion"
	"github.com/pthm-cable/momentum/systems"
)

//go:embed default.yaml
var defaultYAML []byte

// ErrEmptyScript is returned when a scenario has no scripted ticks.
var ErrEmptyScript = errors.New("scenario script is empty")

// Box is a static collider in the course.
type Box struct {
	Name  string      `yaml:"name"`
	Min   config.Vec3 `yaml:"min"`
	Max   config.Vec3 `yaml:"max"`
	Layer string      `yaml:"layer"`
	Solid bool        `yaml:"solid"`
}

// Step holds input for a run of consecutive physics ticks.
// Jump and Slide are pressed on the first tick of the step only.
type Step struct {
	Ticks int        `yaml:"ticks"`
	Move  [2]float64 `yaml:"move"`
	Mouse [2]float64 `yaml:"mouse"`
	Jump  bool       `yaml:"jump"`
	Slide bool       `yaml:"slide"`
}

// Scenario is a course plus an optional input script.
type Scenario struct {
	Name   string      `yaml:"name"`
	Spawn  config.Vec3 `yaml:"spawn"`
	Yaw    float64     `yaml:"yaw"`
	Boxes  []Box       `yaml:"boxes"`
	Script []Step      `yaml:"script"`
}

// Default returns the embedded demo course.
func Default() (*Scenario, error) {
	s, err := Parse(defaultYAML)
	if err != nil {
		return nil, fmt.Errorf("parsing embedded scenario: %w", err)
	}
	return s, nil
}

// Load reads a scenario file. An empty path returns the embedded default.
func Load(path string) (*Scenario, error) {
	if path == "" {
		return Default()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading scenario file: %w", err)
	}
	s, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parsing scenario file: %w", err)
	}
	return s, nil
}

// Parse decodes and validates scenario YAML.
func Parse(data []byte) (*Scenario, error) {
	s := &Scenario{}
	if err := yaml.Unmarshal(data, s); err != nil {
		return nil, err
	}
	for i, b := range s.Boxes {
		if _, err := components.ParseLayer(b.Layer); err != nil {
			return nil, fmt.Errorf("box %d (%s): %w", i, b.Name, err)
		}
		if b.Min[0] > b.Max[0] || b.Min[1] > b.Max[1] || b.Min[2] > b.Max[2] {
			return nil, fmt.Errorf("box %d (%s): min %v exceeds max %v", i, b.Name, b.Min, b.Max)
		}
	}
	for i, st := range s.Script {
		if st.Ticks < 0 {
			return nil, fmt.Errorf("script step %d: negative ticks %d", i, st.Ticks)
		}
	}
	return s, nil
}

// Build adds the course colliders to the index.
func (s *Scenario) Build(cs *systems.Colliders) error {
	for _, b := range s.Boxes {
		layer, err := components.ParseLayer(b.Layer)
		if err != nil {
			return fmt.Errorf("building box %s: %w", b.Name, err)
		}
		cs.Add(components.Collider{
			Name:  b.Name,
			Box:   components.AABB{Min: b.Min.R3(), Max: b.Max.R3()},
			Layer: layer,
			Solid: b.Solid,
		})
	}
	return nil
}

// TotalTicks returns the scripted length in physics ticks.
func (s *Scenario) TotalTicks() int {
	n := 0
	for _, st := range s.Script {
		n += st.Ticks
	}
	return n
}

// Player returns a script player over the scenario's steps.
func (s *Scenario) Player() (*Script, error) {
	if s.TotalTicks() == 0 {
		return nil, ErrEmptyScript
	}
	return &Script{steps: s.Script}, nil
}

// Script replays scripted input one physics tick at a time.
type Script struct {
	steps []Step
	step  int
	tick  int
}

// Next returns the input for the next tick, or false when the script is done.
func (sc *Script) Next() (locomotion.Input, bool) {
	for sc.step < len(sc.steps) && sc.tick >= sc.steps[sc.step].Ticks {
		sc.step++
		sc.tick = 0
	}
	if sc.step >= len(sc.steps) {
		return locomotion.Input{}, false
	}

	st := sc.steps[sc.step]
	first := sc.tick == 0
	sc.tick++
	return locomotion.Input{
		Move:  r2.Vec{X: st.Move[0], Y: st.Move[1]},
		Mouse: r2.Vec{X: st.Mouse[0], Y: st.Mouse[1]},
		Jump:  st.Jump && first,
		Slide: st.Slide && first,
	}, true
}

// Done reports whether every scripted tick has been replayed.
func (sc *Script) Done() bool {
	for i := sc.step; i < len(sc.steps); i++ {
		rem := sc.steps[i].Ticks
		if i == sc.step {
			rem -= sc.tick
		}
		if rem > 0 {
			return false
		}
	}
	return true
}
