package ui

import (
	"fmt"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"
)

// Mouse sensitivity slider bounds.
const (
	MinSensitivity = 1
	MaxSensitivity = 50
)

// ControlsPanel renders the tuning panel with a sensitivity slider and reset button.
type ControlsPanel struct {
	renderer *Renderer
	x, y     int32
	width    int32
	visible  bool
}

// NewControlsPanel creates a new controls panel.
func NewControlsPanel(x, y, width int32) *ControlsPanel {
	return &ControlsPanel{
		renderer: NewRenderer(),
		x:        x,
		y:        y,
		width:    width,
	}
}

// SetPosition updates the panel position.
func (c *ControlsPanel) SetPosition(x, y int32) {
	c.x = x
	c.y = y
}

// IsVisible returns whether the panel is shown.
func (c *ControlsPanel) IsVisible() bool {
	return c.visible
}

// Toggle switches panel visibility.
func (c *ControlsPanel) Toggle() bool {
	c.visible = !c.visible
	return c.visible
}

// Draw renders the panel. It returns the sensitivity picked on the slider
// and whether the reset button was pressed this frame.
func (c *ControlsPanel) Draw(sensitivity float64) (float64, bool) {
	if !c.visible {
		return sensitivity, false
	}

	r := c.renderer
	padding := r.Theme.Padding
	lineHeight := r.Theme.LineHeight
	panelHeight := lineHeight*4 + padding*3 + 30

	r.DrawPanel(c.x, c.y, c.width, panelHeight)

	px := float32(c.x + padding)
	py := c.y + padding
	rl.DrawText("Controls", int32(px), py, r.Theme.HeaderFontSize, rl.White)
	py += lineHeight + 4

	rl.DrawText(fmt.Sprintf("Mouse sensitivity: %.1f", sensitivity), int32(px), py, r.Theme.FontSize, r.Theme.LabelColor)
	py += lineHeight

	picked := gui.SliderBar(
		rl.Rectangle{X: px, Y: float32(py), Width: float32(c.width - padding*2 - 40), Height: 20},
		"", fmt.Sprint(MaxSensitivity),
		float32(sensitivity), MinSensitivity, MaxSensitivity,
	)
	py += 20 + padding

	reset := gui.Button(rl.Rectangle{X: px, Y: float32(py), Width: 120, Height: 30}, "Reset Player")

	return ClampSensitivity(float64(picked)), reset
}

// ClampSensitivity keeps a slider value inside the supported range.
func ClampSensitivity(s float64) float64 {
	if s < MinSensitivity {
		return MinSensitivity
	}
	if s > MaxSensitivity {
		return MaxSensitivity
	}
	return s
}
