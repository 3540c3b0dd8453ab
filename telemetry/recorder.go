package telemetry

import (
	"log/slog"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/pthm-cable/momentum/locomotion"
)

// Transition kinds recorded in transitions.csv.
const (
	TransitionLanded       = "landed"
	TransitionTakeoff      = "takeoff"
	TransitionSlideStart   = "slide_start"
	TransitionSlideEnd     = "slide_end"
	TransitionWallRunStart = "wall_run_start"
	TransitionWallRunEnd   = "wall_run_end"
)

// Transition is one state change of the controller.
type Transition struct {
	Tick  int32   `csv:"tick"`
	Time  float64 `csv:"time"`
	Kind  string  `csv:"kind"`
	Side  string  `csv:"side"`
	Speed float64 `csv:"speed"` // Horizontal speed when the change happened
}

// TickRecord is one fixed step of controller output.
type TickRecord struct {
	Tick     int32   `csv:"tick"`
	Time     float64 `csv:"time"`
	PosX     float64 `csv:"pos_x"`
	PosY     float64 `csv:"pos_y"`
	PosZ     float64 `csv:"pos_z"`
	VelX     float64 `csv:"vel_x"`
	VelY     float64 `csv:"vel_y"`
	VelZ     float64 `csv:"vel_z"`
	Speed    float64 `csv:"speed"`
	Grounded bool    `csv:"grounded"`
	Mode     string  `csv:"mode"`
	Side     string  `csv:"side"`
}

// NewTickRecord builds a tick row from a controller snapshot and body position.
func NewTickRecord(tick int32, dt float64, snap locomotion.Snapshot, pos r3.Vec) TickRecord {
	side := ""
	if snap.Mode == locomotion.ModeWallRunning {
		side = snap.Side.String()
	}
	return TickRecord{
		Tick:     tick,
		Time:     float64(tick) * dt,
		PosX:     pos.X,
		PosY:     pos.Y,
		PosZ:     pos.Z,
		VelX:     snap.Velocity.X,
		VelY:     snap.Velocity.Y,
		VelZ:     snap.Velocity.Z,
		Speed:    r3.Norm(r3.Vec{X: snap.Velocity.X, Z: snap.Velocity.Z}),
		Grounded: snap.Grounded,
		Mode:     snap.Mode.String(),
		Side:     side,
	}
}

// Recorder turns controller notifications into Transition rows.
// Call SetTick before each fixed step so rows carry the right tick.
type Recorder struct {
	dt     float64
	tick   int32
	speed  func() float64
	out    func(Transition) error
	logger *slog.Logger
}

// NewRecorder creates a recorder. speed reports the current horizontal speed
// and out receives every transition; either may be nil.
func NewRecorder(dt float64, speed func() float64, out func(Transition) error) *Recorder {
	return &Recorder{dt: dt, speed: speed, out: out, logger: slog.Default()}
}

// SetTick sets the tick stamped on subsequent transitions.
func (r *Recorder) SetTick(tick int32) {
	r.tick = tick
}

// GroundedChanged records landings and takeoffs.
func (r *Recorder) GroundedChanged(grounded bool) {
	if grounded {
		r.emit(TransitionLanded, "")
	} else {
		r.emit(TransitionTakeoff, "")
	}
}

// SlidingChanged records slide start and end.
func (r *Recorder) SlidingChanged(sliding bool) {
	if sliding {
		r.emit(TransitionSlideStart, "")
	} else {
		r.emit(TransitionSlideEnd, "")
	}
}

// WallRunningChanged records wall run start and end with the wall side.
func (r *Recorder) WallRunningChanged(running bool, side locomotion.Side) {
	if running {
		r.emit(TransitionWallRunStart, side.String())
	} else {
		r.emit(TransitionWallRunEnd, side.String())
	}
}

func (r *Recorder) emit(kind, side string) {
	tr := Transition{
		Tick: r.tick,
		Time: float64(r.tick) * r.dt,
		Kind: kind,
		Side: side,
	}
	if r.speed != nil {
		tr.Speed = r.speed()
	}
	if r.out == nil {
		return
	}
	if err := r.out(tr); err != nil {
		r.logger.Error("recording transition", "kind", kind, "error", err)
	}
}
