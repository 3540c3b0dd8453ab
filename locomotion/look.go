package locomotion

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/momentum/config"
)

// Look turns the body with horizontal mouse motion and tilts the view pitch
// with vertical motion. Mouse Y is positive upward.
type Look struct {
	cfg   config.LookConfig
	pitch float64
}

// NewLook creates a look controller.
func NewLook(cfg config.LookConfig) *Look {
	return &Look{cfg: cfg}
}

// Pitch returns the view pitch in degrees, positive looking up.
func (l *Look) Pitch() float64 { return l.pitch }

// Level resets the pitch to the horizon.
func (l *Look) Level() { l.pitch = 0 }

// Apply rotates the body for a render frame of dt seconds and returns the
// yaw change in degrees before any horizontal clamp.
func (l *Look) Apply(body RigidBody, mouse r2.Vec, dt float64) float64 {
	mx := mouse.X * l.cfg.MouseSensitivity * dt
	my := mouse.Y * l.cfg.MouseSensitivity * dt

	l.pitch = clamp(l.pitch+my, -l.cfg.VerticalClamp, l.cfg.VerticalClamp)

	if mx == 0 {
		return 0
	}
	yaw := body.Yaw() + mx
	if hc := l.cfg.HorizontalClamp; hc > 0 {
		yaw = clamp(yaw, -hc, hc)
	} else {
		yaw = math.Remainder(yaw, 360)
	}
	body.SetYaw(yaw)
	return mx
}
