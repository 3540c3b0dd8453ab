package game

// Options holds run settings chosen on the command line.
type Options struct {
	ScenarioPath   string  // Course file (empty = embedded default)
	OutputDir      string  // CSV and config snapshot directory (empty = disabled)
	Headless       bool    // Replay the scenario script without a window
	LogStats       bool    // Log window and perf stats via slog
	StatsWindowSec float64 // Stats window override in seconds (0 = use config)
}
