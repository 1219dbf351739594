// Package feedback maps the cloth's tear counter onto environment
// reactions: key-light flicker and background audio parameters.
package feedback

import (
	"math"

	"github.com/pthm-cable/stitchmeat/config"
)

// Rand is the random source for flicker draws.
type Rand interface {
	Float64() float64
}

// Flicker drives the key light intensity. Checks happen more often and
// succeed more often as the tear count grows.
type Flicker struct {
	cfg config.FeedbackConfig
	rng Rand

	nextCheck float64
	active    bool
	start     float64
	duration  float64
}

// NewFlicker creates an idle flicker.
func NewFlicker(cfg config.FeedbackConfig, rng Rand) *Flicker {
	return &Flicker{cfg: cfg, rng: rng}
}

// Update advances the flicker to elapsed seconds and returns the light
// intensity for the given tear count.
func (f *Flicker) Update(elapsed, count float64) float64 {
	base := f.cfg.BaseIntensity

	if count > 0 && elapsed > f.nextCheck && !f.active {
		p := math.Min(f.cfg.FlickerProbability*count, 1)
		if f.rng.Float64() < p {
			f.active = true
			f.start = elapsed
			f.duration = f.cfg.FlickerMin + f.rng.Float64()*(f.cfg.FlickerMax-f.cfg.FlickerMin)
		}
		f.nextCheck = elapsed + f.rng.Float64()*(f.cfg.FlickerGap/count) + f.cfg.FlickerMinGap/count
	}

	if !f.active {
		return base
	}

	progress := (elapsed - f.start) / f.duration
	if progress >= 1 {
		f.active = false
		return base
	}
	return base * (0.2 + math.Abs(math.Sin(progress*math.Pi)))
}

// Active reports whether a flicker is in progress.
func (f *Flicker) Active() bool {
	return f.active
}

// NextCheck returns the elapsed time after which the next flicker draw happens.
func (f *Flicker) NextCheck() float64 {
	return f.nextCheck
}
