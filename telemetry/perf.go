package telemetry

import (
	"log/slog"
	"time"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/pthm-cable/momentum/locomotion"
)

// Phase names for the fixed step outside the controller.
// Controller phases use the locomotion.Phase names.
const (
	PhasePhysics   = "physics"
	PhaseTelemetry = "telemetry"
)

// stepPhases lists every phase of a fixed step in execution order.
var stepPhases = []string{
	locomotion.PhaseSensors, locomotion.PhaseWallRun, locomotion.PhaseMove,
	locomotion.PhaseJump, locomotion.PhaseSlide, locomotion.PhaseGrounded,
	PhasePhysics, PhaseTelemetry,
}

// PerfCollector times each fixed step and its phases over the last window steps.
// Durations are stored in microseconds, one ring slot per step.
type PerfCollector struct {
	window int
	steps  []float64
	phases map[string][]float64
	slot   int
	filled int

	stepStart  time.Time
	phaseStart time.Time
	phase      string
	current    map[string]time.Duration
}

// NewPerfCollector creates a collector averaging over window steps.
func NewPerfCollector(window int) *PerfCollector {
	if window < 1 {
		window = 50
	}
	return &PerfCollector{
		window:  window,
		steps:   make([]float64, window),
		phases:  make(map[string][]float64),
		current: make(map[string]time.Duration),
	}
}

// StartTick begins timing a fixed step.
func (p *PerfCollector) StartTick() {
	p.stepStart = time.Now()
	p.phase = ""
	clear(p.current)
}

// StartPhase closes the running phase and opens the named one.
// It matches the controller's phase hook signature.
func (p *PerfCollector) StartPhase(phase string) {
	now := time.Now()
	p.closePhase(now)
	p.phase, p.phaseStart = phase, now
}

func (p *PerfCollector) closePhase(now time.Time) {
	if p.phase != "" {
		p.current[p.phase] += now.Sub(p.phaseStart)
	}
}

// EndTick closes the step and stores it in the window.
func (p *PerfCollector) EndTick() {
	now := time.Now()
	p.closePhase(now)
	p.phase = ""

	p.steps[p.slot] = micros(now.Sub(p.stepStart))
	// Phases skipped this step record zero.
	for name, ring := range p.phases {
		ring[p.slot] = micros(p.current[name])
	}
	for name, d := range p.current {
		if _, ok := p.phases[name]; !ok {
			ring := make([]float64, p.window)
			ring[p.slot] = micros(d)
			p.phases[name] = ring
		}
	}

	p.slot = (p.slot + 1) % p.window
	p.filled = min(p.filled+1, p.window)
}

// PerfStats summarizes step timing over the window.
type PerfStats struct {
	AvgTickDuration time.Duration
	MinTickDuration time.Duration
	MaxTickDuration time.Duration
	TicksPerSecond  float64 // Steps the host could run per second at the average cost

	PhaseAvg map[string]time.Duration
	PhasePct map[string]float64 // Share of the average step, 0-100
}

// Stats computes the window summary.
func (p *PerfCollector) Stats() PerfStats {
	s := PerfStats{
		PhaseAvg: make(map[string]time.Duration),
		PhasePct: make(map[string]float64),
	}
	if p.filled == 0 {
		return s
	}

	steps := p.steps[:p.filled]
	avg := stat.Mean(steps, nil)
	s.AvgTickDuration = fromMicros(avg)
	s.MinTickDuration = fromMicros(floats.Min(steps))
	s.MaxTickDuration = fromMicros(floats.Max(steps))
	if avg > 0 {
		s.TicksPerSecond = 1e6 / avg
	}

	for name, ring := range p.phases {
		m := stat.Mean(ring[:p.filled], nil)
		s.PhaseAvg[name] = fromMicros(m)
		if avg > 0 {
			s.PhasePct[name] = m / avg * 100
		}
	}
	return s
}

func micros(d time.Duration) float64 { return float64(d) / float64(time.Microsecond) }

func fromMicros(us float64) time.Duration { return time.Duration(us * float64(time.Microsecond)) }

// LogStats logs the summary at info level.
func (s PerfStats) LogStats() {
	slog.Info("perf", "stats", s)
}

// LogValue implements slog.LogValuer. Phases are listed in step order.
func (s PerfStats) LogValue() slog.Value {
	attrs := []slog.Attr{
		slog.Int64("avg_tick_us", s.AvgTickDuration.Microseconds()),
		slog.Int64("max_tick_us", s.MaxTickDuration.Microseconds()),
		slog.Int("ticks_per_sec", int(s.TicksPerSecond)),
	}
	for _, phase := range stepPhases {
		if pct := s.PhasePct[phase]; pct > 0.1 {
			attrs = append(attrs, slog.Float64(phase+"_pct", float64(int(pct*10))/10))
		}
	}
	return slog.GroupValue(attrs...)
}

// PerfStatsCSV is one perf.csv row.
type PerfStatsCSV struct {
	WindowEnd    int32   `csv:"window_end"`
	AvgTickUS    int64   `csv:"avg_tick_us"`
	MinTickUS    int64   `csv:"min_tick_us"`
	MaxTickUS    int64   `csv:"max_tick_us"`
	TicksPerSec  float64 `csv:"ticks_per_sec"`
	SensorsPct   float64 `csv:"sensors_pct"`
	WallRunPct   float64 `csv:"wall_run_pct"`
	MovePct      float64 `csv:"move_pct"`
	JumpPct      float64 `csv:"jump_pct"`
	SlidePct     float64 `csv:"slide_pct"`
	GroundedPct  float64 `csv:"grounded_pct"`
	PhysicsPct   float64 `csv:"physics_pct"`
	TelemetryPct float64 `csv:"telemetry_pct"`
}

// ToCSV flattens the summary for a window ending at windowEnd.
func (s PerfStats) ToCSV(windowEnd int32) PerfStatsCSV {
	return PerfStatsCSV{
		WindowEnd:    windowEnd,
		AvgTickUS:    s.AvgTickDuration.Microseconds(),
		MinTickUS:    s.MinTickDuration.Microseconds(),
		MaxTickUS:    s.MaxTickDuration.Microseconds(),
		TicksPerSec:  s.TicksPerSecond,
		SensorsPct:   s.PhasePct[locomotion.PhaseSensors],
		WallRunPct:   s.PhasePct[locomotion.PhaseWallRun],
		MovePct:      s.PhasePct[locomotion.PhaseMove],
		JumpPct:      s.PhasePct[locomotion.PhaseJump],
		SlidePct:     s.PhasePct[locomotion.PhaseSlide],
		GroundedPct:  s.PhasePct[locomotion.PhaseGrounded],
		PhysicsPct:   s.PhasePct[PhasePhysics],
		TelemetryPct: s.PhasePct[PhaseTelemetry],
	}
}
