// Package telemetry provides windowed cloth statistics, bookmarking and
// CSV output.
package telemetry

import (
	"math"

	"github.com/pthm-cable/stitchmeat/cloth"
)

// Collector turns the simulation's cumulative counters into per-window
// deltas and produces WindowStats.
type Collector struct {
	windowDurationSec   float64
	windowDurationTicks int32
	dt                  float32

	// Current window tracking
	windowStartTick int32

	// Cumulative counters at the start of the current window
	last cloth.Stats
}

// Sample is the cloth state observed at the end of a window.
type Sample struct {
	Stats       cloth.Stats
	Broken      int     // outstanding tear records
	Active      int     // active constraints
	Constraints int     // table length, active or not
	TearCount   float64 // damage counter
	Decals      int

	// Per-constraint values for distribution stats. Ages cover scarred
	// constraints only; rests cover every active constraint.
	ScarAges []float64
	Rests    []float64
}

// NewCollector creates a new stats collector.
// windowDurationSec: how long each stats window lasts in simulation seconds
// dt: seconds per tick (used for tick-to-time conversion)
func NewCollector(windowDurationSec float64, dt float32) *Collector {
	ticksPerWindow := int32(math.Round(windowDurationSec / float64(dt)))
	if ticksPerWindow < 1 {
		ticksPerWindow = 1
	}

	return &Collector{
		windowDurationSec:   windowDurationSec,
		windowDurationTicks: ticksPerWindow,
		dt:                  dt,
	}
}

// ShouldFlush returns true if enough ticks have passed to flush the window.
func (c *Collector) ShouldFlush(currentTick int32) bool {
	return currentTick-c.windowStartTick >= c.windowDurationTicks
}

// Flush produces a WindowStats for the window ending at currentTick and
// starts the next one. The sample slices may be reordered.
func (c *Collector) Flush(currentTick int32, sample Sample) WindowStats {
	d := diff(sample.Stats, c.last)

	var healRate float64
	if d.Tears > 0 {
		healRate = float64(d.Regenerations) / float64(d.Tears)
	}

	ageMean, _, _, ageP50, ageP90 := ComputeDistribution(sample.ScarAges)
	restMean, restStd, restP10, restP50, restP90 := ComputeDistribution(sample.Rests)

	stats := WindowStats{
		WindowStartTick: c.windowStartTick,
		WindowEndTick:   currentTick,
		SimTimeSec:      float64(currentTick) * float64(c.dt),

		Tears:         d.Tears,
		Regenerations: d.Regenerations,
		StretchSkips:  d.StretchSkips,
		Filaments:     d.Filaments,
		Loops:         d.Loops,
		Dropped:       d.Dropped,
		RegenTicks:    d.RegenTicks,
		HealRate:      healRate,

		Broken:      sample.Broken,
		Active:      sample.Active,
		Constraints: sample.Constraints,
		TearCount:   sample.TearCount,
		Decals:      sample.Decals,

		ScarAgeMean: ageMean,
		ScarAgeP50:  ageP50,
		ScarAgeP90:  ageP90,

		RestMean: restMean,
		RestStd:  restStd,
		RestP10:  restP10,
		RestP50:  restP50,
		RestP90:  restP90,
	}

	// Reset for next window
	c.windowStartTick = currentTick
	c.last = sample.Stats

	return stats
}

func diff(now, then cloth.Stats) cloth.Stats {
	return cloth.Stats{
		Tears:         now.Tears - then.Tears,
		Regenerations: now.Regenerations - then.Regenerations,
		StretchSkips:  now.StretchSkips - then.StretchSkips,
		Filaments:     now.Filaments - then.Filaments,
		Loops:         now.Loops - then.Loops,
		Dropped:       now.Dropped - then.Dropped,
		RegenTicks:    now.RegenTicks - then.RegenTicks,
	}
}

// Reset forgets the running baseline, for when the simulation is rebuilt.
func (c *Collector) Reset(currentTick int32) {
	c.windowStartTick = currentTick
	c.last = cloth.Stats{}
}

// WindowDurationTicks returns the number of ticks per window.
func (c *Collector) WindowDurationTicks() int32 {
	return c.windowDurationTicks
}
