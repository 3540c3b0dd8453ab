package ui

import (
	"testing"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/pthm-cable/momentum/locomotion"
)

func TestHUDReadoutRefresh(t *testing.T) {
	h := NewHUD(0.1)

	// First tick refreshes immediately.
	h.Tick(r3.Vec{X: 3, Z: 4}, 0.02)
	if got := h.Readout(); got.Speed != "5.00" || got.Velocity != "(3.0, 0.0, 4.0)" || !got.Moving {
		t.Fatalf("Readout() = %+v, want speed 5.00 moving", got)
	}

	// Within the interval the readout holds.
	h.Tick(r3.Vec{}, 0.05)
	if got := h.Readout().Speed; got != "5.00" {
		t.Errorf("Speed before refresh = %q, want 5.00", got)
	}

	h.Tick(r3.Vec{}, 0.06)
	if got := h.Readout(); got.Speed != "0.00" || got.Moving {
		t.Errorf("Readout() after refresh = %+v, want stopped", got)
	}
}

func TestHUDMovingThreshold(t *testing.T) {
	tests := []struct {
		name string
		v    r3.Vec
		want bool
	}{
		{"still", r3.Vec{}, false},
		{"at threshold", r3.Vec{X: 0.1}, false},
		{"above threshold", r3.Vec{Y: -0.2}, true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := formatReadout(tc.v).Moving; got != tc.want {
				t.Errorf("Moving = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestHUDFlags(t *testing.T) {
	h := NewHUD(0.1)
	var obs locomotion.Observer = h
	obs.GroundedChanged(true)
	obs.SlidingChanged(true)
	obs.WallRunningChanged(true, locomotion.SideRight)

	flags := h.Flags()
	want := []Flag{
		{Label: "grounded", On: true},
		{Label: "moving", On: false},
		{Label: "sliding", On: true},
		{Label: "wall running (right)", On: true},
	}
	if len(flags) != len(want) {
		t.Fatalf("got %d flags, want %d", len(flags), len(want))
	}
	for i := range want {
		if flags[i] != want[i] {
			t.Errorf("flag %d = %+v, want %+v", i, flags[i], want[i])
		}
	}

	obs.WallRunningChanged(false, locomotion.SideRight)
	if f := h.Flags()[3]; f.On || f.Label != "wall running" {
		t.Errorf("wall flag after stop = %+v", f)
	}

	theme := DefaultTheme()
	if theme.FlagColor(true) != theme.FlagOn || theme.FlagColor(false) != theme.FlagOff {
		t.Error("FlagColor does not follow flag state")
	}
}

func TestClampSensitivity(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{0, MinSensitivity},
		{10, 10},
		{500, MaxSensitivity},
	}
	for _, tc := range tests {
		if got := ClampSensitivity(tc.in); got != tc.want {
			t.Errorf("ClampSensitivity(%v) = %v, want %v", tc.in, got, tc.want)
		}
	}
}
