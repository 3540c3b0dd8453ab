package telemetry

import (
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/pthm-cable/momentum/locomotion"
)

// Collector samples movement every tick and counts transitions within time
// windows, producing WindowStats. It is a locomotion.Observer.
type Collector struct {
	windowDurationTicks int32
	dt                  float64

	// Current window tracking
	windowStartTick int32

	speeds      []float64
	grounded    int
	sliding     int
	wallRunning int

	takeoffs int
	landings int
	slides   int
	wallRuns int

	distance float64
	lastPos  r3.Vec
	hasPos   bool
}

// NewCollector creates a new stats collector.
// windowDurationSec: how long each stats window lasts in simulation seconds
// dt: seconds per tick (used for tick-to-time conversion)
func NewCollector(windowDurationSec, dt float64) *Collector {
	ticksPerWindow := int32(windowDurationSec/dt + 0.5)
	if ticksPerWindow < 1 {
		ticksPerWindow = 1
	}
	return &Collector{
		windowDurationTicks: ticksPerWindow,
		dt:                  dt,
		speeds:              make([]float64, 0, ticksPerWindow),
	}
}

// Sample records one tick of movement state.
func (c *Collector) Sample(snap locomotion.Snapshot, pos r3.Vec) {
	c.speeds = append(c.speeds, r3.Norm(r3.Vec{X: snap.Velocity.X, Z: snap.Velocity.Z}))
	if snap.Grounded {
		c.grounded++
	}
	switch snap.Mode {
	case locomotion.ModeSliding:
		c.sliding++
	case locomotion.ModeWallRunning:
		c.wallRunning++
	}
	if c.hasPos {
		c.distance += r3.Norm(r3.Sub(pos, c.lastPos))
	}
	c.lastPos = pos
	c.hasPos = true
}

// GroundedChanged counts landings and takeoffs.
func (c *Collector) GroundedChanged(grounded bool) {
	if grounded {
		c.landings++
	} else {
		c.takeoffs++
	}
}

// SlidingChanged counts slide starts.
func (c *Collector) SlidingChanged(sliding bool) {
	if sliding {
		c.slides++
	}
}

// WallRunningChanged counts wall run starts.
func (c *Collector) WallRunningChanged(running bool, _ locomotion.Side) {
	if running {
		c.wallRuns++
	}
}

// ShouldFlush returns true if enough ticks have passed to flush the window.
func (c *Collector) ShouldFlush(currentTick int32) bool {
	return currentTick-c.windowStartTick >= c.windowDurationTicks
}

// Flush produces a WindowStats and resets counters for the next window.
func (c *Collector) Flush(currentTick int32) WindowStats {
	mean, std, p10, p50, p90, maxSpeed := ComputeSpeedStats(c.speeds)

	var gf, sf, wf float64
	if n := float64(len(c.speeds)); n > 0 {
		gf = float64(c.grounded) / n
		sf = float64(c.sliding) / n
		wf = float64(c.wallRunning) / n
	}

	stats := WindowStats{
		WindowStartTick: c.windowStartTick,
		WindowEndTick:   currentTick,
		SimTimeSec:      float64(currentTick) * c.dt,

		SpeedMean: mean,
		SpeedStd:  std,
		SpeedP10:  p10,
		SpeedP50:  p50,
		SpeedP90:  p90,
		SpeedMax:  maxSpeed,

		GroundedFrac:    gf,
		SlidingFrac:     sf,
		WallRunningFrac: wf,

		Takeoffs: c.takeoffs,
		Landings: c.landings,
		Slides:   c.slides,
		WallRuns: c.wallRuns,

		Distance: c.distance,
	}

	// Reset for next window
	c.windowStartTick = currentTick
	c.speeds = c.speeds[:0]
	c.grounded = 0
	c.sliding = 0
	c.wallRunning = 0
	c.takeoffs = 0
	c.landings = 0
	c.slides = 0
	c.wallRuns = 0
	c.distance = 0

	return stats
}

// Pending returns the number of ticks sampled since the last flush.
func (c *Collector) Pending() int {
	return len(c.speeds)
}

// WindowDurationTicks returns the number of ticks per window.
func (c *Collector) WindowDurationTicks() int32 {
	return c.windowDurationTicks
}
