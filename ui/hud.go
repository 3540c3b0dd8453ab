package ui

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/pthm-cable/momentum/locomotion"
)

// movingThreshold is the speed above which the body counts as moving.
const movingThreshold = 0.1

// HUD shows speed, velocity and colored state flags.
// It is a locomotion.Observer; speed text refreshes on a fixed interval.
type HUD struct {
	renderer *Renderer
	refresh  float64
	timer    float64
	readout  Readout

	grounded    bool
	sliding     bool
	wallRunning bool
	side        locomotion.Side
}

// NewHUD creates a HUD that refreshes its readout every refresh seconds.
func NewHUD(refresh float64) *HUD {
	return &HUD{
		renderer: NewRenderer(),
		refresh:  refresh,
		readout:  formatReadout(r3.Vec{}),
	}
}

// GroundedChanged updates the grounded flag.
func (h *HUD) GroundedChanged(g bool) { h.grounded = g }

// SlidingChanged updates the sliding flag.
func (h *HUD) SlidingChanged(s bool) { h.sliding = s }

// WallRunningChanged updates the wall running flag and side.
func (h *HUD) WallRunningChanged(r bool, side locomotion.Side) {
	h.wallRunning = r
	h.side = side
}

// Tick counts down the refresh timer and updates the readout when it expires.
func (h *HUD) Tick(velocity r3.Vec, dt float64) {
	h.timer -= dt
	if h.timer > 0 {
		return
	}
	h.timer = h.refresh
	h.readout = formatReadout(velocity)
}

// Readout returns the current speed text.
func (h *HUD) Readout() Readout { return h.readout }

// Flags returns the state flags in display order.
func (h *HUD) Flags() []Flag {
	wall := "wall running"
	if h.wallRunning {
		wall = fmt.Sprintf("wall running (%s)", h.side)
	}
	return []Flag{
		{Label: "grounded", On: h.grounded},
		{Label: "moving", On: h.readout.Moving},
		{Label: "sliding", On: h.sliding},
		{Label: wall, On: h.wallRunning},
	}
}

func formatReadout(v r3.Vec) Readout {
	speed := r3.Norm(v)
	return Readout{
		Speed:    fmt.Sprintf("%.2f", speed),
		Velocity: fmt.Sprintf("(%.1f, %.1f, %.1f)", v.X, v.Y, v.Z),
		Moving:   speed > movingThreshold,
	}
}

// Draw renders the HUD panel at the given position and returns the bottom Y.
func (h *HUD) Draw(x, y, width int32) int32 {
	r := h.renderer
	padding := r.Theme.Padding
	flags := h.Flags()
	height := r.Theme.LineHeight*int32(3+len(flags)) + padding*2

	r.DrawPanel(x, y, width, height)

	cy := y + padding
	cy = r.DrawSectionHeader(x+padding, cy, "Player")
	cy = r.DrawLabelValue(x+padding, cy, "speed", h.readout.Speed)
	cy = r.DrawLabelValue(x+padding, cy, "velocity", h.readout.Velocity)
	for _, f := range flags {
		cy = r.DrawFlag(x+padding, cy, f)
	}
	return y + height
}

// DrawControls renders the control legend at the bottom of the screen.
func (h *HUD) DrawControls(screenHeight int32, controls string) {
	rl.DrawText(controls, 10, screenHeight-25, 14, rl.Gray)
}
