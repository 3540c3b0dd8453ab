// Package camera provides the first-person camera rig and its cosmetic effects.
package camera

import (
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/pthm-cable/momentum/components"
	"github.com/pthm-cable/momentum/config"
	"github.com/pthm-cable/momentum/locomotion"
)

// channel is one tweened scalar. A nil tween means the value is at rest.
type channel struct {
	value float32
	tween *gween.Tween
}

func (c *channel) to(target, duration float32) {
	if duration <= 0 {
		c.value = target
		c.tween = nil
		return
	}
	c.tween = gween.New(c.value, target, duration, ease.OutQuad)
}

func (c *channel) update(dt float32) {
	if c.tween == nil {
		return
	}
	v, done := c.tween.Update(dt)
	c.value = v
	if done {
		c.tween = nil
	}
}

// Rig follows the player body and plays effect requests from the controller.
// It is a locomotion.EffectSink.
type Rig struct {
	cfg       config.EffectsConfig
	eyeHeight float64
	fovy      float32

	// Camera height offset, camera roll and body visual pitch.
	drop, roll, bodyPitch channel
}

// New creates a rig from the effects, player and screen config.
func New(cfg *config.Config) *Rig {
	return &Rig{
		cfg:       cfg.Effects,
		eyeHeight: cfg.Player.EyeHeight,
		fovy:      float32(cfg.Screen.FOV),
	}
}

// Request starts the tween for a cosmetic effect.
func (r *Rig) Request(e locomotion.Effect) {
	d := float32(r.cfg.Duration)
	switch e.Kind {
	case locomotion.EffectSlideStart:
		r.drop.to(float32(-r.cfg.SlideCameraDrop), d)
		r.bodyPitch.to(float32(r.cfg.SlideVisualPitch), d)
	case locomotion.EffectSlideEnd:
		r.drop.to(0, d)
		r.bodyPitch.to(0, d)
	case locomotion.EffectWallLean:
		angle := float32(r.cfg.WallLeanAngle)
		if e.Side == locomotion.SideLeft {
			angle = -angle
		}
		r.roll.to(angle, d)
	case locomotion.EffectWallLeanReset:
		r.roll.to(0, d)
	}
}

// Update advances running tweens by dt seconds of render time.
func (r *Rig) Update(dt float64) {
	step := float32(dt)
	r.drop.update(step)
	r.roll.update(step)
	r.bodyPitch.update(step)
}

// Reset snaps every effect back to rest.
func (r *Rig) Reset() {
	r.drop = channel{}
	r.roll = channel{}
	r.bodyPitch = channel{}
}

// HeightOffset is the current camera drop below eye height.
func (r *Rig) HeightOffset() float64 { return float64(r.drop.value) }

// Roll is the current camera roll in degrees; positive tilts the view's top to the left.
func (r *Rig) Roll() float64 { return float64(r.roll.value) }

// BodyPitch is the current visual lean of the player model in degrees.
func (r *Rig) BodyPitch() float64 { return float64(r.bodyPitch.value) }

// Animating reports whether any tween is still running.
func (r *Rig) Animating() bool {
	return r.drop.tween != nil || r.roll.tween != nil || r.bodyPitch.tween != nil
}

// View returns the eye position, a look target one unit ahead and the up vector
// for a body center, yaw and pitch in degrees.
func (r *Rig) View(center r3.Vec, yaw, pitch float64) (eye, target, up r3.Vec) {
	eye = r3.Add(center, r3.Scale(r.eyeHeight+r.HeightOffset(), components.Up))

	p := pitch * math.Pi / 180
	fwd := components.Forward(yaw)
	look := r3.Add(r3.Scale(math.Cos(p), fwd), r3.Scale(math.Sin(p), components.Up))
	target = r3.Add(eye, look)

	roll := r.Roll() * math.Pi / 180
	right := components.Right(yaw)
	up = r3.Sub(r3.Scale(math.Cos(roll), components.Up), r3.Scale(math.Sin(roll), right))
	return eye, target, up
}

// Camera3D builds the raylib camera for the current view.
func (r *Rig) Camera3D(center r3.Vec, yaw, pitch float64) rl.Camera3D {
	eye, target, up := r.View(center, yaw, pitch)
	return rl.Camera3D{
		Position:   toRL(eye),
		Target:     toRL(target),
		Up:         toRL(up),
		Fovy:       r.fovy,
		Projection: rl.CameraPerspective,
	}
}

// Chase builds a third-person camera behind and above the body, looking at it.
func (r *Rig) Chase(center r3.Vec, yaw, distance, height float64) rl.Camera3D {
	eye := r3.Add(center, r3.Add(r3.Scale(-distance, components.Forward(yaw)), r3.Scale(height, components.Up)))
	return rl.Camera3D{
		Position:   toRL(eye),
		Target:     toRL(center),
		Up:         toRL(components.Up),
		Fovy:       r.fovy,
		Projection: rl.CameraPerspective,
	}
}

func toRL(v r3.Vec) rl.Vector3 {
	return rl.NewVector3(float32(v.X), float32(v.Y), float32(v.Z))
}
