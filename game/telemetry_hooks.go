package game

import (
	"log/slog"

	"github.com/pthm-cable/stitchmeat/telemetry"
)

// flushTelemetry checks if the stats window should be flushed and handles bookmarks.
func (g *Game) flushTelemetry() {
	if !g.collector.ShouldFlush(g.tick) {
		return
	}

	stats := g.collector.Flush(g.tick, g.sample())
	perfStats := g.perfCollector.Stats()

	// Call stats callback if provided
	if g.statsCallback != nil {
		g.statsCallback(stats)
	}

	// Log stats if enabled (console output)
	if g.opts.LogStats {
		stats.LogStats()
		perfStats.LogStats()
		g.logFeedback()
	}

	// Write to CSV if output manager is enabled
	if g.outputManager != nil {
		if err := g.outputManager.WriteTelemetry(stats); err != nil {
			slog.Error("failed to write telemetry", "error", err)
		}
		if err := g.outputManager.WritePerf(perfStats, stats.WindowEndTick); err != nil {
			slog.Error("failed to write perf", "error", err)
		}
	}

	// Check for bookmarks
	for _, bm := range g.bookmarkDetector.Check(stats) {
		if g.opts.LogStats {
			bm.LogBookmark()
		}
		if g.outputManager != nil {
			if err := g.outputManager.WriteBookmark(bm); err != nil {
				slog.Error("failed to write bookmark", "error", err)
			}
		}
	}
}

// sample observes the cloth at the end of a window.
func (g *Game) sample() telemetry.Sample {
	now := g.now()
	cs := g.sim.Constraints()

	s := telemetry.Sample{
		Stats:       g.sim.Stats(),
		Broken:      len(g.sim.Broken()),
		Constraints: cs.Len(),
		TearCount:   g.sim.TearCount(),
		Decals:      g.splatter.Count(),
	}

	for i := 0; i < cs.Len(); i++ {
		c := cs.At(i)
		if !c.Active {
			continue
		}
		s.Active++
		s.Rests = append(s.Rests, c.Rest)
		if c.Scarred {
			s.ScarAges = append(s.ScarAges, c.Age(now))
		}
	}

	return s
}
