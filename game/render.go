package game

import (
	"fmt"

	"github.com/mlange-42/ark/ecs"
	rl "github.com/gen2brain/raylib-go/raylib"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/pthm-cable/momentum/components"
	"github.com/pthm-cable/momentum/sensor"
)

// Chase view placement relative to the body center.
const (
	chaseDistance = 5.0
	chaseHeight   = 2.5
)

var (
	skyColor    = rl.Color{R: 150, G: 190, B: 230, A: 255}
	groundColor = rl.Color{R: 90, G: 95, B: 100, A: 255}
	wallColor   = rl.Color{R: 70, G: 110, B: 170, A: 255}
	playerColor = rl.Color{R: 230, G: 160, B: 60, A: 255}
)

// Draw renders the course, the sensors and the HUD.
func (g *Game) Draw() {
	rl.BeginDrawing()
	rl.ClearBackground(skyColor)

	pos := g.body.Position()
	yaw := g.body.Yaw()
	cam := g.rig.Camera3D(pos, yaw, g.controller.Pitch())
	if g.chaseView {
		cam = g.rig.Chase(pos, yaw, chaseDistance, chaseHeight)
	}

	rl.BeginMode3D(cam)
	g.colliders.Each(func(_ ecs.Entity, c components.Collider) {
		drawCollider(c)
	})
	if g.chaseView {
		g.drawPlayer(pos, yaw)
	}
	g.drawSensors()
	rl.EndMode3D()

	g.drawUI()
	rl.EndDrawing()
}

// drawCollider draws a box colored by its layer.
func drawCollider(c components.Collider) {
	center := toRL(c.Box.Center())
	size := toRL(r3.Scale(2, c.Box.HalfExtents()))

	switch c.Layer {
	case components.LayerTrigger:
		rl.DrawCubeWiresV(center, size, rl.Green)
		return
	case components.LayerWall:
		rl.DrawCubeV(center, size, wallColor)
	case components.LayerGround:
		rl.DrawCubeV(center, size, groundColor)
	default:
		rl.DrawCubeV(center, size, rl.LightGray)
	}
	rl.DrawCubeWiresV(center, size, rl.DarkGray)
}

// drawPlayer draws the body box turned by yaw and leaned by the rig's visual effects.
func (g *Game) drawPlayer(pos r3.Vec, yaw float64) {
	size := toRL(r3.Scale(2, g.cfg.Player.HalfExtents.R3()))

	rl.PushMatrix()
	rl.Translatef(float32(pos.X), float32(pos.Y), float32(pos.Z))
	rl.Rotatef(float32(-yaw), 0, 1, 0)
	rl.Rotatef(float32(g.rig.BodyPitch()), 1, 0, 0)
	rl.Rotatef(float32(g.rig.Roll()), 0, 0, 1)
	rl.DrawCubeV(rl.Vector3{}, size, playerColor)
	rl.DrawCubeWiresV(rl.Vector3{}, size, rl.Black)
	rl.PopMatrix()
}

// drawSensors draws rays and volumes, green while touching.
func (g *Game) drawSensors() {
	for _, s := range []sensor.Sensor{g.ground, g.left, g.right} {
		color := rl.Red
		if s.State().Touching {
			color = rl.Green
		}
		switch s := s.(type) {
		case *sensor.Ray:
			origin, d := s.Cast()
			rl.DrawLine3D(toRL(origin), toRL(r3.Add(origin, d)), color)
		case *sensor.Volume:
			box := s.Box()
			rl.DrawCubeWiresV(toRL(box.Center()), toRL(r3.Scale(2, box.HalfExtents())), color)
		}
	}
}

// drawUI draws the HUD, the controls panel and the legend.
func (g *Game) drawUI() {
	bottom := g.hud.Draw(10, 10, 260)
	rl.DrawText(fmt.Sprintf("Tick: %d | FPS: %d | Triggers: %d", g.tick, rl.GetFPS(), g.triggers), 10, bottom+6, 14, rl.DarkGray)

	g.controls.SetPosition(10, bottom+30)
	sensitivity, reset := g.controls.Draw(g.controller.MouseSensitivity())
	if sensitivity != g.controller.MouseSensitivity() {
		g.controller.SetMouseSensitivity(sensitivity)
	}
	if reset {
		g.Reset()
	}

	g.hud.DrawControls(g.screenHeight, controlsLegend)
}

func toRL(v r3.Vec) rl.Vector3 {
	return rl.NewVector3(float32(v.X), float32(v.Y), float32(v.Z))
}
