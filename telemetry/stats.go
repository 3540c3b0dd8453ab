// Package telemetry provides movement tracking, transition logging and step timing.
package telemetry

import (
	"log/slog"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// WindowStats holds aggregated movement statistics for a time window.
type WindowStats struct {
	WindowStartTick int32   `csv:"-"`
	WindowEndTick   int32   `csv:"window_end"`
	SimTimeSec      float64 `csv:"sim_time"`

	// Horizontal speed distribution over the window's ticks
	SpeedMean float64 `csv:"speed_mean"`
	SpeedStd  float64 `csv:"speed_std"`
	SpeedP10  float64 `csv:"speed_p10"`
	SpeedP50  float64 `csv:"speed_p50"`
	SpeedP90  float64 `csv:"speed_p90"`
	SpeedMax  float64 `csv:"speed_max"`

	// Share of ticks spent in each state
	GroundedFrac    float64 `csv:"grounded_frac"`
	SlidingFrac     float64 `csv:"sliding_frac"`
	WallRunningFrac float64 `csv:"wall_running_frac"`

	// Transitions during window
	Takeoffs int `csv:"takeoffs"`
	Landings int `csv:"landings"`
	Slides   int `csv:"slides"`
	WallRuns int `csv:"wall_runs"`

	Distance float64 `csv:"distance"` // Path length travelled
}

// Percentile calculates the p-th percentile of a sorted slice.
// p should be in [0, 1]. Returns 0 if slice is empty.
// Ranks interpolate linearly over the n-1 gaps between samples, a
// convention neither of stat.Quantile's cumulative kinds follows.
func Percentile(sorted []float64, p float64) float64 {
	n := len(sorted)
	if n == 0 {
		return 0
	}
	if p <= 0 {
		return sorted[0]
	}
	if p >= 1 {
		return sorted[n-1]
	}

	// Linear interpolation between closest ranks
	idx := p * float64(n-1)
	lo := int(idx)
	hi := lo + 1
	if hi >= n {
		return sorted[n-1]
	}
	frac := idx - float64(lo)
	return sorted[lo]*(1-frac) + sorted[hi]*frac
}

// ComputeSpeedStats calculates mean, sample std, percentiles and max of speeds.
func ComputeSpeedStats(values []float64) (mean, std, p10, p50, p90, maxSpeed float64) {
	n := len(values)
	if n == 0 {
		return 0, 0, 0, 0, 0, 0
	}

	if n == 1 {
		mean = values[0]
	} else {
		mean, std = stat.MeanStdDev(values, nil)
	}
	maxSpeed = floats.Max(values)

	sorted := make([]float64, n)
	copy(sorted, values)
	sort.Float64s(sorted)

	p10 = Percentile(sorted, 0.10)
	p50 = Percentile(sorted, 0.50)
	p90 = Percentile(sorted, 0.90)

	return mean, std, p10, p50, p90, maxSpeed
}

// LogValue implements slog.LogValuer for structured logging.
func (s WindowStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("window_start", int(s.WindowStartTick)),
		slog.Int("window_end", int(s.WindowEndTick)),
		slog.Float64("sim_time", s.SimTimeSec),
		slog.Float64("speed_mean", s.SpeedMean),
		slog.Float64("speed_std", s.SpeedStd),
		slog.Float64("speed_p50", s.SpeedP50),
		slog.Float64("speed_max", s.SpeedMax),
		slog.Float64("grounded_frac", s.GroundedFrac),
		slog.Float64("sliding_frac", s.SlidingFrac),
		slog.Float64("wall_running_frac", s.WallRunningFrac),
		slog.Int("takeoffs", s.Takeoffs),
		slog.Int("landings", s.Landings),
		slog.Int("slides", s.Slides),
		slog.Int("wall_runs", s.WallRuns),
		slog.Float64("distance", s.Distance),
	)
}

// LogStats logs the window stats using slog.
func (s WindowStats) LogStats() {
	slog.Info("stats",
		"window_end", s.WindowEndTick,
		"sim_time", s.SimTimeSec,
		"speed_mean", s.SpeedMean,
		"speed_max", s.SpeedMax,
		"grounded_frac", s.GroundedFrac,
		"sliding_frac", s.SlidingFrac,
		"wall_running_frac", s.WallRunningFrac,
		"takeoffs", s.Takeoffs,
		"slides", s.Slides,
		"wall_runs", s.WallRuns,
	)
}
