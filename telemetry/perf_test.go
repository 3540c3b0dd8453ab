package telemetry

import (
	"testing"
	"time"

	"github.com/pthm-cable/momentum/locomotion"
)

func TestPerfCollector_BasicTiming(t *testing.T) {
	pc := NewPerfCollector(10)

	for i := 0; i < 5; i++ {
		pc.StartTick()
		pc.StartPhase(locomotion.PhaseSensors)
		time.Sleep(100 * time.Microsecond)
		pc.StartPhase(PhasePhysics)
		time.Sleep(200 * time.Microsecond)
		pc.EndTick()
	}

	stats := pc.Stats()

	if stats.AvgTickDuration <= 0 {
		t.Error("expected positive average tick duration")
	}
	if _, ok := stats.PhaseAvg[locomotion.PhaseSensors]; !ok {
		t.Error("expected sensors phase to be tracked")
	}
	if _, ok := stats.PhaseAvg[PhasePhysics]; !ok {
		t.Error("expected physics phase to be tracked")
	}
	if stats.MinTickDuration > stats.MaxTickDuration {
		t.Errorf("min %v > max %v", stats.MinTickDuration, stats.MaxTickDuration)
	}
}

func TestPerfCollector_PhasePercentages(t *testing.T) {
	pc := NewPerfCollector(10)

	for i := 0; i < 5; i++ {
		pc.StartTick()
		pc.StartPhase("fast")
		time.Sleep(10 * time.Microsecond)
		pc.StartPhase("slow")
		time.Sleep(500 * time.Microsecond)
		pc.EndTick()
	}

	stats := pc.Stats()
	if stats.PhasePct["slow"] <= stats.PhasePct["fast"] {
		t.Errorf("expected slow phase (%v%%) > fast phase (%v%%)", stats.PhasePct["slow"], stats.PhasePct["fast"])
	}
}

func TestPerfCollector_EmptyStats(t *testing.T) {
	stats := NewPerfCollector(10).Stats()

	if stats.AvgTickDuration != 0 {
		t.Error("expected zero avg tick duration for empty collector")
	}
	if stats.PhaseAvg == nil || stats.PhasePct == nil {
		t.Error("expected non-nil phase maps")
	}
}

func TestPerfCollector_ControllerHook(t *testing.T) {
	pc := NewPerfCollector(4)
	pc.StartTick()
	for _, phase := range stepPhases {
		pc.StartPhase(phase)
		time.Sleep(20 * time.Microsecond)
	}
	pc.EndTick()

	row := pc.Stats().ToCSV(7)
	if row.WindowEnd != 7 {
		t.Errorf("window end = %d, want 7", row.WindowEnd)
	}
	pcts := []float64{row.SensorsPct, row.WallRunPct, row.MovePct, row.JumpPct, row.SlidePct, row.GroundedPct, row.PhysicsPct, row.TelemetryPct}
	for i, p := range pcts {
		if p <= 0 {
			t.Errorf("phase %s has no share", stepPhases[i])
		}
	}
}

func TestPerfCollector_WindowDropsOldSteps(t *testing.T) {
	pc := NewPerfCollector(2)

	pc.StartTick()
	pc.StartPhase("once")
	time.Sleep(50 * time.Microsecond)
	pc.EndTick()
	if pc.Stats().PhaseAvg["once"] <= 0 {
		t.Fatal("expected the phase to be timed")
	}

	for i := 0; i < 2; i++ {
		pc.StartTick()
		pc.StartPhase(PhasePhysics)
		pc.EndTick()
	}

	stats := pc.Stats()
	if got := stats.PhaseAvg["once"]; got != 0 {
		t.Errorf("phase outside the window averages %v, want 0", got)
	}
	if stats.MinTickDuration > stats.AvgTickDuration || stats.AvgTickDuration > stats.MaxTickDuration {
		t.Errorf("avg %v outside [%v, %v]", stats.AvgTickDuration, stats.MinTickDuration, stats.MaxTickDuration)
	}
}
