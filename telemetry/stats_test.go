package telemetry

import (
	"math"
	"testing"
)

func TestPercentile(t *testing.T) {
	tests := []struct {
		name   string
		sorted []float64
		p      float64
		want   float64
	}{
		{"empty slice", []float64{}, 0.5, 0},
		{"single element", []float64{5.0}, 0.5, 5.0},
		{"p0", []float64{1, 2, 3, 4, 5}, 0.0, 1.0},
		{"p100", []float64{1, 2, 3, 4, 5}, 1.0, 5.0},
		{"p50 odd", []float64{1, 2, 3, 4, 5}, 0.5, 3.0},
		{"p50 even", []float64{1, 2, 3, 4}, 0.5, 2.5},
		{"p10", []float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}, 0.1, 1.9},
		{"p90", []float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}, 0.9, 9.1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Percentile(tt.sorted, tt.p)
			if math.Abs(got-tt.want) > 0.001 {
				t.Errorf("Percentile(%v, %v) = %v, want %v", tt.sorted, tt.p, got, tt.want)
			}
		})
	}
}

func TestComputeSpeedStats(t *testing.T) {
	// Unsorted on purpose; the input must not be reordered.
	values := []float64{10, 1, 9, 2, 8, 3, 7, 4, 6, 5}
	mean, std, p10, p50, p90, maxSpeed := ComputeSpeedStats(values)

	checks := []struct {
		name      string
		got, want float64
	}{
		{"mean", mean, 5.5},
		{"std", std, math.Sqrt(82.5 / 9)},
		{"p10", p10, 1.9},
		{"p50", p50, 5.5},
		{"p90", p90, 9.1},
		{"max", maxSpeed, 10},
	}
	for _, c := range checks {
		if math.Abs(c.got-c.want) > 0.001 {
			t.Errorf("%s = %v, want %v", c.name, c.got, c.want)
		}
	}
	if values[0] != 10 {
		t.Errorf("input reordered: values[0] = %v", values[0])
	}
}

func TestComputeSpeedStatsSmall(t *testing.T) {
	mean, std, p10, p50, p90, maxSpeed := ComputeSpeedStats([]float64{})
	if mean != 0 || std != 0 || p10 != 0 || p50 != 0 || p90 != 0 || maxSpeed != 0 {
		t.Error("empty slice should return all zeros")
	}

	mean, std, _, p50, _, maxSpeed = ComputeSpeedStats([]float64{4})
	if mean != 4 || std != 0 || p50 != 4 || maxSpeed != 4 {
		t.Errorf("single value: mean=%v std=%v p50=%v max=%v", mean, std, p50, maxSpeed)
	}
}
