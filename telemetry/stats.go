package telemetry

import (
	"log/slog"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// WindowStats holds aggregated statistics for a time window.
type WindowStats struct {
	WindowStartTick int32   `csv:"-"`
	WindowEndTick   int32   `csv:"window_end"`
	SimTimeSec      float64 `csv:"sim_time"`

	// Events during window
	Tears         int     `csv:"tears"`
	Regenerations int     `csv:"regenerations"`
	StretchSkips  int     `csv:"stretch_skips"`
	Filaments     int     `csv:"filaments"`
	Loops         int     `csv:"loops"`
	Dropped       int     `csv:"dropped"`
	RegenTicks    int     `csv:"regen_ticks"`
	HealRate      float64 `csv:"heal_rate"` // regenerations per tear

	// State at window end
	Broken      int     `csv:"broken"`
	Active      int     `csv:"active"`
	Constraints int     `csv:"constraints"`
	TearCount   float64 `csv:"tear_count"`
	Decals      int     `csv:"decals"`

	// Scar age distribution (seconds)
	ScarAgeMean float64 `csv:"scar_age_mean"`
	ScarAgeP50  float64 `csv:"scar_age_p50"`
	ScarAgeP90  float64 `csv:"scar_age_p90"`

	// Rest length distribution over active constraints
	RestMean float64 `csv:"rest_mean"`
	RestStd  float64 `csv:"rest_std"`
	RestP10  float64 `csv:"rest_p10"`
	RestP50  float64 `csv:"rest_p50"`
	RestP90  float64 `csv:"rest_p90"`
}

// Percentile returns the empirical p-quantile of a sorted slice: the
// smallest value at or above fraction p of the samples.
// p is clamped to [0, 1]. Returns 0 if slice is empty.
func Percentile(sorted []float64, p float64) float64 {
	if len(sorted) == 0 {
		return 0
	}
	if p < 0 {
		p = 0
	}
	if p > 1 {
		p = 1
	}
	return stat.Quantile(p, stat.Empirical, sorted, nil)
}

// ComputeDistribution calculates mean, population standard deviation and
// percentiles. values is sorted in place.
func ComputeDistribution(values []float64) (mean, std, p10, p50, p90 float64) {
	if len(values) == 0 {
		return 0, 0, 0, 0, 0
	}

	mean, std = stat.PopMeanStdDev(values, nil)

	sort.Float64s(values)
	p10 = Percentile(values, 0.10)
	p50 = Percentile(values, 0.50)
	p90 = Percentile(values, 0.90)

	return mean, std, p10, p50, p90
}

// CoefficientOfVariation returns the population std/mean of values, or 0
// when values is empty or its mean is zero.
func CoefficientOfVariation(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	mean, std := stat.PopMeanStdDev(values, nil)
	if mean == 0 {
		return 0
	}
	return std / mean
}

// LogValue implements slog.LogValuer for structured logging.
func (s WindowStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("window_start", int(s.WindowStartTick)),
		slog.Int("window_end", int(s.WindowEndTick)),
		slog.Float64("sim_time", s.SimTimeSec),
		slog.Int("tears", s.Tears),
		slog.Int("regenerations", s.Regenerations),
		slog.Int("stretch_skips", s.StretchSkips),
		slog.Int("filaments", s.Filaments),
		slog.Int("loops", s.Loops),
		slog.Int("dropped", s.Dropped),
		slog.Int("regen_ticks", s.RegenTicks),
		slog.Float64("heal_rate", s.HealRate),
		slog.Int("broken", s.Broken),
		slog.Int("active", s.Active),
		slog.Int("constraints", s.Constraints),
		slog.Float64("tear_count", s.TearCount),
		slog.Int("decals", s.Decals),
		slog.Float64("scar_age_mean", s.ScarAgeMean),
		slog.Float64("scar_age_p50", s.ScarAgeP50),
		slog.Float64("scar_age_p90", s.ScarAgeP90),
		slog.Float64("rest_mean", s.RestMean),
		slog.Float64("rest_std", s.RestStd),
		slog.Float64("rest_p10", s.RestP10),
		slog.Float64("rest_p50", s.RestP50),
		slog.Float64("rest_p90", s.RestP90),
	)
}

// LogStats logs the window stats using slog.
func (s WindowStats) LogStats() {
	slog.Info("stats",
		"window_end", s.WindowEndTick,
		"sim_time", s.SimTimeSec,
		"tears", s.Tears,
		"regenerations", s.Regenerations,
		"stretch_skips", s.StretchSkips,
		"filaments", s.Filaments,
		"loops", s.Loops,
		"dropped", s.Dropped,
		"heal_rate", s.HealRate,
		"broken", s.Broken,
		"active", s.Active,
		"constraints", s.Constraints,
		"tear_count", s.TearCount,
		"decals", s.Decals,
		"scar_age_p50", s.ScarAgeP50,
		"rest_mean", s.RestMean,
	)
}
