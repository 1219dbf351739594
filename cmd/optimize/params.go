// Package main provides CMA-ES optimization for cloth healing parameters.
package main

import (
	"math"
	"time"

	"github.com/pthm-cable/stitchmeat/config"
)

// ParamSpec defines a single optimizable parameter.
type ParamSpec struct {
	Name    string  // Human-readable name
	Path    string  // Config path for logging
	Min     float64 // Lower bound
	Max     float64 // Upper bound
	Default float64 // Default value
}

// ParamVector holds the set of all optimizable parameters.
type ParamVector struct {
	Specs []ParamSpec
}

// NewParamVector creates the standard set of optimizable parameters.
// Ranges are expressed as a minimum plus a span so every point in the
// search space is a valid config.
func NewParamVector() *ParamVector {
	return &ParamVector{
		Specs: []ParamSpec{
			// Regeneration timing (seconds)
			{Name: "cooldown_min", Path: "regen.cooldown_min", Min: 0.2, Max: 3.0, Default: 0.8},
			{Name: "cooldown_span", Path: "regen.cooldown_max", Min: 0.0, Max: 2.0, Default: 0.5},
			{Name: "interval_min", Path: "regen.interval_min", Min: 0.02, Max: 0.3, Default: 0.05},
			{Name: "interval_span", Path: "regen.interval_max", Min: 0.0, Max: 0.3, Default: 0.06},
			// batch_min locked at 2
			{Name: "batch_max", Path: "regen.batch_max", Min: 2, Max: 12, Default: 5},
			// Healed rest length as a multiple of spacing
			{Name: "rest_min", Path: "regen.rest_min", Min: 0.3, Max: 1.0, Default: 0.5},
			{Name: "rest_span", Path: "regen.rest_max", Min: 0.1, Max: 2.0, Default: 1.5},
			// Scar growth
			{Name: "clusters_max", Path: "scar.clusters_max", Min: 1, Max: 24, Default: 16},
			{Name: "filaments_max", Path: "scar.filaments_max", Min: 1, Max: 16, Default: 10},
			{Name: "partner_chance", Path: "scar.partner_chance", Min: 0.0, Max: 1.0, Default: 0.95},
			{Name: "loop_chance", Path: "scar.loop_chance", Min: 0.0, Max: 1.0, Default: 0.7},
			{Name: "stiffness_max", Path: "scar.stiffness_max", Min: 0.08, Max: 0.6, Default: 0.27},
		},
	}
}

// Dim returns the number of parameters.
func (pv *ParamVector) Dim() int {
	return len(pv.Specs)
}

// DefaultVector returns the default parameter values as a slice.
func (pv *ParamVector) DefaultVector() []float64 {
	v := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		v[i] = spec.Default
	}
	return v
}

// Normalize converts raw parameter values to [0,1] range.
func (pv *ParamVector) Normalize(raw []float64) []float64 {
	normalized := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		normalized[i] = (raw[i] - spec.Min) / (spec.Max - spec.Min)
	}
	return normalized
}

// Denormalize converts [0,1] values back to raw parameter values.
func (pv *ParamVector) Denormalize(normalized []float64) []float64 {
	raw := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		raw[i] = spec.Min + normalized[i]*(spec.Max-spec.Min)
	}
	return raw
}

// Clamp ensures all values are within bounds.
func (pv *ParamVector) Clamp(v []float64) []float64 {
	clamped := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		val := v[i]
		if val < spec.Min {
			val = spec.Min
		}
		if val > spec.Max {
			val = spec.Max
		}
		clamped[i] = val
	}
	return clamped
}

func seconds(s float64) time.Duration {
	return time.Duration(s * float64(time.Second))
}

// ApplyToConfig applies parameter values to a Config struct.
func (pv *ParamVector) ApplyToConfig(cfg *config.Config, values []float64) {
	// Clamp values to ensure they're within bounds
	clamped := pv.Clamp(values)

	// Order must match Specs order
	i := 0

	cfg.Regen.CooldownMin = seconds(clamped[i]); i++
	cfg.Regen.CooldownMax = cfg.Regen.CooldownMin + seconds(clamped[i]); i++
	cfg.Regen.IntervalMin = seconds(clamped[i]); i++
	cfg.Regen.IntervalMax = cfg.Regen.IntervalMin + seconds(clamped[i]); i++

	cfg.Regen.BatchMin = 2
	cfg.Regen.BatchMax = int(math.Round(clamped[i])); i++

	cfg.Regen.RestMin = clamped[i]; i++
	cfg.Regen.RestMax = cfg.Regen.RestMin + clamped[i]; i++

	cfg.Scar.ClustersMax = int(math.Round(clamped[i])); i++
	if cfg.Scar.ClustersMin > cfg.Scar.ClustersMax {
		cfg.Scar.ClustersMin = cfg.Scar.ClustersMax
	}
	cfg.Scar.FilamentsMax = int(math.Round(clamped[i])); i++
	if cfg.Scar.FilamentsMin > cfg.Scar.FilamentsMax {
		cfg.Scar.FilamentsMin = cfg.Scar.FilamentsMax
	}
	cfg.Scar.PartnerChance = clamped[i]; i++
	cfg.Scar.LoopChance = clamped[i]; i++
	cfg.Scar.StiffnessMax = clamped[i]
	if cfg.Scar.StiffnessMin > cfg.Scar.StiffnessMax {
		cfg.Scar.StiffnessMin = cfg.Scar.StiffnessMax
	}

	cfg.ComputeDerived()
}

// ExtractFromConfig extracts current parameter values from a Config struct.
func (pv *ParamVector) ExtractFromConfig(cfg *config.Config) []float64 {
	return []float64{
		cfg.Regen.CooldownMin.Seconds(),
		(cfg.Regen.CooldownMax - cfg.Regen.CooldownMin).Seconds(),
		cfg.Regen.IntervalMin.Seconds(),
		(cfg.Regen.IntervalMax - cfg.Regen.IntervalMin).Seconds(),
		float64(cfg.Regen.BatchMax),
		cfg.Regen.RestMin,
		cfg.Regen.RestMax - cfg.Regen.RestMin,
		float64(cfg.Scar.ClustersMax),
		float64(cfg.Scar.FilamentsMax),
		cfg.Scar.PartnerChance,
		cfg.Scar.LoopChance,
		cfg.Scar.StiffnessMax,
	}
}
