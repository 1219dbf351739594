// Command optimize searches regeneration and scar growth parameters with
// CMA-ES, scoring each candidate on headless runs with scripted tearing.
package main

import (
	"encoding/csv"
	"flag"
	"fmt"
	"log"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"gonum.org/v1/gonum/optimize"

	"github.com/pthm-cable/stitchmeat/config"
)

func main() {
	configPath := flag.String("config", "", "Base config YAML file (empty = use defaults)")
	maxTicks := flag.Int("max-ticks", 3600, "Simulation duration in ticks per run")
	seeds := flag.Int("seeds", 3, "Number of seeds per evaluation")
	maxEvals := flag.Int("max-evals", 200, "Maximum number of evaluations")
	population := flag.Int("population", 0, "CMA-ES population size (0 = auto)")
	outputDir := flag.String("output", "", "Output directory for results")
	flag.Parse()

	if *outputDir == "" {
		log.Fatal("--output is required")
	}
	if err := os.MkdirAll(*outputDir, 0755); err != nil {
		log.Fatalf("failed to create output directory: %v", err)
	}
	// Each run loads its own copy; fail early on a bad file.
	if _, err := config.Load(*configPath); err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	params := NewParamVector()
	evalSeeds := make([]int64, *seeds)
	for i := range evalSeeds {
		evalSeeds[i] = int64(i*1000 + 42)
	}
	evaluator := NewFitnessEvaluator(params, int32(*maxTicks), evalSeeds, *configPath)

	tr, err := newTracker(filepath.Join(*outputDir, "optimize_log.csv"), params, *maxEvals)
	if err != nil {
		log.Fatalf("failed to create log file: %v", err)
	}
	defer tr.close()

	problem := optimize.Problem{
		Func: func(x []float64) float64 {
			raw := params.Denormalize(x)
			fitness := evaluator.Evaluate(raw)
			tr.record(params.Clamp(raw), fitness, evaluator.LastQuality())
			return fitness
		},
	}

	popSize := *population
	if popSize == 0 {
		popSize = 4 + int(3*math.Log(float64(params.Dim())))
	}
	method := &optimize.CmaEsChol{
		InitStepSize: 0.3,
		Population:   popSize,
	}
	settings := &optimize.Settings{FuncEvaluations: *maxEvals}

	fmt.Printf("Starting CMA-ES with %d parameters, population=%d, max_evals=%d\n",
		params.Dim(), popSize, *maxEvals)
	fmt.Printf("Seeds per evaluation: %d, ticks per run: %d\n", *seeds, *maxTicks)

	result, err := optimize.Minimize(problem, params.Normalize(params.DefaultVector()), settings, method)
	if err != nil {
		log.Printf("optimization ended: %v", err)
	}

	best := tr.best
	if best == nil && result != nil {
		best = params.Clamp(params.Denormalize(result.X))
	}
	if best == nil {
		log.Fatal("no evaluations completed")
	}

	fmt.Printf("\nOptimization complete after %d evaluations in %s\n", tr.evals, formatDuration(time.Since(tr.start)))
	fmt.Printf("Best quality: %.3f\n\nBest parameters:\n", -tr.bestFitness)
	for i, spec := range params.Specs {
		fmt.Printf("  %-16s %-22s %.6f\n", spec.Name, spec.Path, best[i])
	}

	if err := writeBest(*configPath, filepath.Join(*outputDir, "best_config.yaml"), params, best); err != nil {
		log.Printf("failed to write best config: %v", err)
	}
}

// writeBest applies the best parameters to a fresh copy of the base config
// and saves it.
func writeBest(basePath, outPath string, params *ParamVector, best []float64) error {
	cfg, err := config.Load(basePath)
	if err != nil {
		return err
	}
	params.ApplyToConfig(cfg, best)
	if err := cfg.WriteYAML(outPath); err != nil {
		return err
	}
	fmt.Printf("\nBest config saved to: %s\n", outPath)
	return nil
}

// tracker logs every evaluation to CSV, keeps the best point and prints progress.
type tracker struct {
	file *os.File
	w    *csv.Writer

	maxEvals    int
	evals       int
	start       time.Time
	best        []float64
	bestFitness float64
}

func newTracker(path string, params *ParamVector, maxEvals int) (*tracker, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, err
	}
	w := csv.NewWriter(f)
	header := []string{"eval", "fitness", "quality"}
	for _, spec := range params.Specs {
		header = append(header, spec.Name)
	}
	if err := w.Write(header); err != nil {
		f.Close()
		return nil, err
	}
	return &tracker{
		file:        f,
		w:           w,
		maxEvals:    maxEvals,
		start:       time.Now(),
		bestFitness: math.Inf(1),
	}, nil
}

// record logs one evaluation of the clamped parameter values.
func (t *tracker) record(values []float64, fitness, quality float64) {
	t.evals++
	if fitness < t.bestFitness {
		t.bestFitness = fitness
		t.best = values
	}

	row := []string{strconv.Itoa(t.evals), strconv.FormatFloat(fitness, 'f', 6, 64), strconv.FormatFloat(quality, 'f', 6, 64)}
	for _, v := range values {
		row = append(row, strconv.FormatFloat(v, 'f', 6, 64))
	}
	if err := t.w.Write(row); err != nil {
		log.Printf("failed to log evaluation: %v", err)
	}
	t.w.Flush()

	elapsed := time.Since(t.start)
	eta := time.Duration(t.maxEvals-t.evals) * (elapsed / time.Duration(t.evals))
	fmt.Printf("Eval %d/%d: quality=%.3f (best=%.3f) | elapsed: %s, ETA: %s\n",
		t.evals, t.maxEvals, quality, -t.bestFitness, formatDuration(elapsed), formatDuration(eta))
}

func (t *tracker) close() {
	t.w.Flush()
	t.file.Close()
}

// formatDuration formats a duration as 1h02m03s, or 2m03s under an hour.
func formatDuration(d time.Duration) string {
	d = d.Round(time.Second)
	h := d / time.Hour
	m := (d % time.Hour) / time.Minute
	s := (d % time.Minute) / time.Second
	if h > 0 {
		return fmt.Sprintf("%dh%02dm%02ds", h, m, s)
	}
	return fmt.Sprintf("%dm%02ds", m, s)
}
