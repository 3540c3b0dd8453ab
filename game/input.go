package game

import (
	rl "github.com/gen2brain/raylib-go/raylib"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/momentum/locomotion"
)

// controlsLegend is drawn at the bottom of the screen.
const controlsLegend = "WASD move | Space jump | Shift slide | Tab controls | V chase view | R reset | F11 fullscreen"

// handleInput processes window and debug keys.
func (g *Game) handleInput() {
	// Window resize propagation
	g.handleResize()

	// Fullscreen toggle
	if rl.IsKeyPressed(rl.KeyF11) {
		rl.ToggleFullscreen()
	}

	// Controls panel frees the cursor for the slider
	if rl.IsKeyPressed(rl.KeyTab) {
		if g.controls.Toggle() {
			rl.EnableCursor()
		} else {
			rl.DisableCursor()
		}
	}

	if rl.IsKeyPressed(rl.KeyV) {
		g.chaseView = !g.chaseView
	}

	if rl.IsKeyPressed(rl.KeyR) {
		g.Reset()
	}
}

// handleResize checks for window resize and records the new dimensions.
func (g *Game) handleResize() {
	if !rl.IsWindowResized() {
		return
	}
	g.screenWidth = int32(rl.GetScreenWidth())
	g.screenHeight = int32(rl.GetScreenHeight())
}

// sampleInput reads movement keys and mouse delta for this frame.
// Mouse look is suspended while the controls panel owns the cursor.
func (g *Game) sampleInput() locomotion.Input {
	var in locomotion.Input
	in.Move = moveAxes(
		rl.IsKeyDown(rl.KeyW), rl.IsKeyDown(rl.KeyS),
		rl.IsKeyDown(rl.KeyA), rl.IsKeyDown(rl.KeyD),
	)
	in.Jump = rl.IsKeyPressed(rl.KeySpace)
	in.Slide = rl.IsKeyPressed(rl.KeyLeftShift) || rl.IsKeyPressed(rl.KeyLeftControl)

	if !g.controls.IsVisible() {
		d := rl.GetMouseDelta()
		// Screen Y grows downward; look input is positive up.
		in.Mouse = r2.Vec{X: float64(d.X), Y: -float64(d.Y)}
	}
	return in
}

// moveAxes maps the four movement keys to strafe (X) and forward (Y) axes.
func moveAxes(forward, back, left, right bool) r2.Vec {
	var m r2.Vec
	if forward {
		m.Y++
	}
	if back {
		m.Y--
	}
	if right {
		m.X++
	}
	if left {
		m.X--
	}
	return m
}

// Update runs one rendered frame: input, look, and as many fixed steps as fit.
func (g *Game) Update() {
	g.handleInput()

	frameDT := float64(rl.GetFrameTime())
	g.controller.Update(g.sampleInput(), frameDT)
	g.advance(frameDT)

	g.rig.Update(frameDT)
	g.hud.Tick(g.body.Velocity(), frameDT)
}
