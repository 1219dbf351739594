package game

import (
	"github.com/pthm-cable/stitchmeat/config"
	"github.com/pthm-cable/stitchmeat/telemetry"
)

// Options configures a game instance.
type Options struct {
	Seed           int64
	LogStats       bool
	StatsWindowSec float64 // 0 uses telemetry.stats_window from config
	OutputDir      string  // empty disables CSV output
	Headless       bool
	StepsPerUpdate int // simulation ticks per Update call

	// Config overrides the global config when set, so several games can
	// run side by side with different parameters.
	Config        *config.Config
	StatsCallback func(telemetry.WindowStats)
}

// DefaultOptions returns options for an interactive session.
func DefaultOptions() Options {
	return Options{
		Seed:           42,
		StepsPerUpdate: 1,
	}
}
