package game

import (
	"log/slog"

	"github.com/pthm-cable/momentum/telemetry"
)

// recordTick samples the step into the stats window and ticks.csv.
func (g *Game) recordTick() {
	snap := g.controller.Snapshot()
	pos := g.body.Position()
	g.collector.Sample(snap, pos)

	if err := g.outputManager.WriteTick(telemetry.NewTickRecord(g.tick, g.cfg.Physics.DT, snap, pos)); err != nil {
		slog.Error("failed to write tick", "error", err)
	}
}

// flushTelemetry closes the stats window when it is full.
func (g *Game) flushTelemetry() {
	if !g.collector.ShouldFlush(g.tick) {
		return
	}
	g.writeStats(g.collector.Flush(g.tick))
}

func (g *Game) writeStats(stats telemetry.WindowStats) {
	perfStats := g.perfCollector.Stats()

	// Log stats if enabled (console output)
	if g.opts.LogStats {
		stats.LogStats()
		perfStats.LogStats()
	}

	if err := g.outputManager.WriteStats(stats); err != nil {
		slog.Error("failed to write stats", "error", err)
	}
	if err := g.outputManager.WritePerf(perfStats, stats.WindowEndTick); err != nil {
		slog.Error("failed to write perf", "error", err)
	}
}
