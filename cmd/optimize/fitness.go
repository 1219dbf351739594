package main

import (
	"math"
	"sync"

	"github.com/pthm-cable/stitchmeat/config"
	"github.com/pthm-cable/stitchmeat/game"
	"github.com/pthm-cable/stitchmeat/telemetry"
)

// FitnessEvaluator runs headless simulations and computes fitness.
type FitnessEvaluator struct {
	params      *ParamVector
	maxTicks    int32
	seeds       []int64
	configPath  string
	statsWindow float64

	mu          sync.Mutex
	lastQuality float64 // quality from most recent Evaluate call
}

// NewFitnessEvaluator creates a new evaluator. Every run loads a fresh
// copy of the config at configPath (empty = defaults).
func NewFitnessEvaluator(params *ParamVector, maxTicks int32, seeds []int64, configPath string) *FitnessEvaluator {
	return &FitnessEvaluator{
		params:      params,
		maxTicks:    maxTicks,
		seeds:       seeds,
		configPath:  configPath,
		statsWindow: 5.0,
	}
}

// LastQuality returns the quality score from the most recent evaluation.
func (fe *FitnessEvaluator) LastQuality() float64 {
	fe.mu.Lock()
	defer fe.mu.Unlock()
	return fe.lastQuality
}

// Evaluate computes fitness for a parameter vector (lower = better).
// Fitness is the negated mean quality across seeds.
func (fe *FitnessEvaluator) Evaluate(x []float64) float64 {
	qualities := make([]float64, len(fe.seeds))
	var wg sync.WaitGroup

	for i, seed := range fe.seeds {
		wg.Add(1)
		go func(idx int, s int64) {
			defer wg.Done()
			qualities[idx] = computeQuality(fe.runSimulation(x, s))
		}(i, seed)
	}
	wg.Wait()

	var total float64
	for _, q := range qualities {
		total += q
	}
	mean := total / float64(len(fe.seeds))

	fe.mu.Lock()
	fe.lastQuality = mean
	fe.mu.Unlock()

	return -mean
}

// runSimulation executes a single headless run and returns its windows.
func (fe *FitnessEvaluator) runSimulation(x []float64, seed int64) []telemetry.WindowStats {
	cfg, err := config.Load(fe.configPath)
	if err != nil {
		return nil
	}
	fe.params.ApplyToConfig(cfg, x)

	var windows []telemetry.WindowStats
	g := game.NewGameWithOptions(game.Options{
		Seed:           seed,
		Headless:       true,
		StatsWindowSec: fe.statsWindow,
		StepsPerUpdate: 1,
		Config:         cfg,
		StatsCallback: func(stats telemetry.WindowStats) {
			windows = append(windows, stats)
		},
	})
	defer g.Unload()

	for g.Tick() < fe.maxTicks {
		g.UpdateHeadless()
	}
	return windows
}

// Quality component weights.
const (
	qualityWeightHealing  = 0.40
	qualityWeightHeadroom = 0.25
	qualityWeightRest     = 0.20
	qualityWeightStretch  = 0.15

	qualityWarmupWindows = 1 // skip first N windows (warmup)
)

// computeQuality scores a run in [0, 1]. Good runs close tears quickly,
// never drop growth at the constraint limit, keep healed rest lengths
// steady across windows and rarely leave tears stretched open.
func computeQuality(windows []telemetry.WindowStats) float64 {
	if len(windows) <= qualityWarmupWindows {
		return 0
	}
	valid := windows[qualityWarmupWindows:]

	var healSum, stretchSum float64
	var healCount int
	var dropped int
	restMeans := make([]float64, 0, len(valid))

	for _, w := range valid {
		if w.Tears > 0 {
			healSum += math.Min(w.HealRate, 1)
			healCount++
		}
		if w.Regenerations+w.StretchSkips > 0 {
			stretchSum += float64(w.StretchSkips) / float64(w.Regenerations+w.StretchSkips)
		}
		dropped += w.Dropped
		restMeans = append(restMeans, w.RestMean)
	}

	healScore := 0.0
	if healCount > 0 {
		healScore = healSum / float64(healCount)
	}

	// Open tears left at the end of the run count against healing.
	last := valid[len(valid)-1]
	if last.Constraints > 0 {
		healScore *= 1 - float64(last.Broken)/float64(last.Constraints)
	}

	headroomScore := math.Exp(-float64(dropped) / 500)

	restScore := 0.0
	if len(restMeans) > 0 {
		restScore = math.Exp(-telemetry.CoefficientOfVariation(restMeans) * 10)
	}

	stretchScore := 1 - stretchSum/float64(len(valid))

	quality := qualityWeightHealing*healScore +
		qualityWeightHeadroom*headroomScore +
		qualityWeightRest*restScore +
		qualityWeightStretch*stretchScore

	return clamp01(quality)
}

// clamp01 clamps x to [0, 1].
func clamp01(x float64) float64 {
	if x < 0 {
		return 0
	}
	if x > 1 {
		return 1
	}
	return x
}
