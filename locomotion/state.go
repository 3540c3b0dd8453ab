package locomotion

import (
	"log/slog"

	"gonum.org/v1/gonum/spatial/r3"
)

// Mode is the exclusive locomotion mode.
type Mode uint8

const (
	ModeDefault Mode = iota
	ModeSliding
	ModeWallRunning
)

func (m Mode) String() string {
	switch m {
	case ModeDefault:
		return "default"
	case ModeSliding:
		return "sliding"
	case ModeWallRunning:
		return "wall_running"
	default:
		return "unknown"
	}
}

// Side is the wall side while wall running.
type Side uint8

const (
	SideLeft Side = iota
	SideRight
)

func (s Side) String() string {
	if s == SideRight {
		return "right"
	}
	return "left"
}

// State holds the locomotion flags and the speeds that persist across steps.
// It only changes through the transition methods below, each of which
// notifies the observer and requests the matching cosmetic effect.
type State struct {
	grounded               bool
	mode                   Mode
	side                   Side
	lastSpeedBeforeTakeoff float64
	wallRunStartingSpeed   float64
	jumped                 bool // a jump took off since the last landing
	jumpedThisStep         bool

	observer Observer
	effects  EffectSink
	logger   *slog.Logger
}

// Grounded reports whether the body stood on ground at the end of the last step.
func (s *State) Grounded() bool { return s.grounded }

// Mode returns the current mode.
func (s *State) Mode() Mode { return s.mode }

// Sliding reports whether the body is sliding.
func (s *State) Sliding() bool { return s.mode == ModeSliding }

// WallRunning reports whether the body is wall running.
func (s *State) WallRunning() bool { return s.mode == ModeWallRunning }

// Side returns the wall side. Only meaningful while wall running.
func (s *State) Side() Side { return s.side }

// LastSpeedBeforeTakeoff is the speed airborne movement is pinned to.
func (s *State) LastSpeedBeforeTakeoff() float64 { return s.lastSpeedBeforeTakeoff }

// WallRunStartingSpeed is the speed held along the wall.
func (s *State) WallRunStartingSpeed() float64 { return s.wallRunStartingSpeed }

func (s *State) log() *slog.Logger {
	if s.logger == nil {
		return slog.Default()
	}
	return s.logger
}

func (s *State) request(e Effect) {
	if s.effects != nil {
		s.effects.Request(e)
	}
}

// setGrounded refreshes the grounded flag from the ground sensor.
// Landing ends a wall run; leaving the ground ends a slide and, when no jump
// took off, records the walk-off speed as the takeoff speed.
// A jump still on the ground one step later never took off.
func (s *State) setGrounded(grounded bool, body RigidBody) {
	fresh := s.jumpedThisStep
	s.jumpedThisStep = false
	if grounded == s.grounded {
		if grounded && !fresh {
			s.jumped = false
		}
		return
	}
	s.grounded = grounded
	if grounded {
		s.jumped = false
		s.stopWallRun(body)
	} else {
		if !s.jumped {
			s.lastSpeedBeforeTakeoff = horizontalSpeed(body.Velocity())
		}
		s.stopSlide()
	}
	s.log().Debug("grounded changed", "grounded", grounded)
	if s.observer != nil {
		s.observer.GroundedChanged(grounded)
	}
}

// recordTakeoff stores the speed at the moment of a jump.
func (s *State) recordTakeoff(speed float64) {
	s.lastSpeedBeforeTakeoff = speed
	s.jumped = true
	s.jumpedThisStep = true
}

// reset returns to the default mode on the ground-unknown state of a fresh
// spawn, notifying observers of every flag it clears.
func (s *State) reset(body RigidBody) {
	s.stopSlide()
	s.stopWallRun(body)
	if s.grounded {
		s.grounded = false
		if s.observer != nil {
			s.observer.GroundedChanged(false)
		}
	}
	s.lastSpeedBeforeTakeoff = 0
	s.wallRunStartingSpeed = 0
	s.jumped = false
	s.jumpedThisStep = false
}

func (s *State) startSlide() {
	if s.mode != ModeDefault {
		return
	}
	s.mode = ModeSliding
	s.log().Debug("slide started")
	if s.observer != nil {
		s.observer.SlidingChanged(true)
	}
	s.request(Effect{Kind: EffectSlideStart})
}

func (s *State) stopSlide() {
	if s.mode != ModeSliding {
		return
	}
	s.mode = ModeDefault
	s.log().Debug("slide stopped")
	if s.observer != nil {
		s.observer.SlidingChanged(false)
	}
	s.request(Effect{Kind: EffectSlideEnd})
}

// startWallRun enters wall running on side, holding speed along the wall.
func (s *State) startWallRun(side Side, speed float64, body RigidBody, keepGravity bool) {
	if s.mode == ModeWallRunning {
		return
	}
	s.stopSlide()
	s.mode = ModeWallRunning
	s.side = side
	s.wallRunStartingSpeed = speed
	if !keepGravity {
		body.SetUseGravity(false)
	}
	s.log().Debug("wall run started", "side", side, "speed", speed)
	if s.observer != nil {
		s.observer.WallRunningChanged(true, side)
	}
	s.request(Effect{Kind: EffectWallLean, Side: side})
}

// setWallSide switches the active wall while running.
func (s *State) setWallSide(side Side) {
	if s.mode != ModeWallRunning || side == s.side {
		return
	}
	s.side = side
	s.request(Effect{Kind: EffectWallLean, Side: side})
}

func (s *State) stopWallRun(body RigidBody) {
	if s.mode != ModeWallRunning {
		return
	}
	s.mode = ModeDefault
	body.SetUseGravity(true)
	s.log().Debug("wall run stopped", "side", s.side)
	if s.observer != nil {
		s.observer.WallRunningChanged(false, s.side)
	}
	s.request(Effect{Kind: EffectWallLeanReset})
}

// Snapshot is a copy of the observable state for telemetry and display.
type Snapshot struct {
	Grounded               bool
	Mode                   Mode
	Side                   Side
	LastSpeedBeforeTakeoff float64
	WallRunStartingSpeed   float64
	Velocity               r3.Vec
}
