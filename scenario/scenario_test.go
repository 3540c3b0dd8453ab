package scenario

import (
	"errors"
	"testing"

	"github.com/mlange-42/ark/ecs"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/pthm-cable/momentum/components"
	"github.com/pthm-cable/momentum/systems"
)

func TestDefaultScenario(t *testing.T) {
	s, err := Default()
	if err != nil {
		t.Fatalf("Default: %v", err)
	}
	if len(s.Boxes) == 0 {
		t.Fatal("default course has no boxes")
	}
	if s.TotalTicks() == 0 {
		t.Fatal("default course has no script")
	}

	w := ecs.NewWorld()
	cs := systems.NewColliders(w)
	if err := s.Build(cs); err != nil {
		t.Fatalf("Build: %v", err)
	}
	if cs.Len() != len(s.Boxes) {
		t.Errorf("colliders = %d, want %d", cs.Len(), len(s.Boxes))
	}

	// The spawn point stands on ground
	hit, ok := cs.Raycast(s.Spawn.R3(), r3.Vec{Y: -1}, 1, components.MaskOf(components.LayerGround))
	if !ok || hit.Distance > 1 {
		t.Errorf("spawn is not above ground: hit=%v ok=%v", hit, ok)
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		is   error
	}{
		{"unknown layer", "boxes:\n  - {name: x, min: [0,0,0], max: [1,1,1], layer: lava}\n", components.ErrUnknownLayer},
		{"inverted box", "boxes:\n  - {name: x, min: [1,0,0], max: [0,1,1], layer: wall}\n", nil},
		{"negative ticks", "script:\n  - {ticks: -1}\n", nil},
		{"bad yaml", "boxes: {\n", nil},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Parse([]byte(tc.yaml))
			if err == nil {
				t.Fatal("expected error")
			}
			if tc.is != nil && !errors.Is(err, tc.is) {
				t.Errorf("error = %v, want %v", err, tc.is)
			}
		})
	}
}

func TestScriptReplay(t *testing.T) {
	s, err := Parse([]byte(`
script:
  - {ticks: 2, move: [0, 1], jump: true}
  - {ticks: 0, slide: true}
  - {ticks: 1, move: [1, 0], mouse: [4, -2], slide: true}
`))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if s.TotalTicks() != 3 {
		t.Fatalf("TotalTicks = %d, want 3", s.TotalTicks())
	}

	sc, err := s.Player()
	if err != nil {
		t.Fatalf("Player: %v", err)
	}

	in, ok := sc.Next()
	if !ok || !in.Jump || in.Move.Y != 1 {
		t.Errorf("tick 0 = %+v, %v", in, ok)
	}
	in, ok = sc.Next()
	if !ok || in.Jump {
		t.Errorf("tick 1 repeated the jump press: %+v", in)
	}
	if sc.Done() {
		t.Error("Done before last tick")
	}
	in, ok = sc.Next()
	if !ok || !in.Slide || in.Move.X != 1 || in.Mouse.X != 4 || in.Mouse.Y != -2 {
		t.Errorf("tick 2 = %+v, %v", in, ok)
	}
	if !sc.Done() {
		t.Error("not Done after last tick")
	}
	if _, ok := sc.Next(); ok {
		t.Error("Next returned input past the end")
	}
}

func TestEmptyScript(t *testing.T) {
	s, err := Parse([]byte("name: geometry only\n"))
	if err != nil {
		t.Fatal(err)
	}
	if _, err := s.Player(); !errors.Is(err, ErrEmptyScript) {
		t.Errorf("Player error = %v, want ErrEmptyScript", err)
	}
}
