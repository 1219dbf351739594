// Command stitchmeat hangs a tearable, self-healing cloth in a room and
// lets you rip it with the mouse, or runs it headless with scripted drags.
package main

import (
	"flag"
	"log/slog"
	"os"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/stitchmeat/config"
	"github.com/pthm-cable/stitchmeat/game"
)

func main() {
	var (
		configPath     = flag.String("config", "", "Path to config.yaml (empty = use defaults)")
		headless       = flag.Bool("headless", false, "Run without a window, tearing along scripted drags")
		logStats       = flag.Bool("log-stats", false, "Log window stats, perf and feedback via slog")
		statsWindow    = flag.Float64("stats-window", 0, "Stats window in seconds (0 = use config)")
		outputDir      = flag.String("output-dir", "", "Directory for CSV logs and the config snapshot")
		seed           = flag.Int64("seed", 0, "RNG seed (0 = time-based)")
		maxTicks       = flag.Int("max-ticks", 0, "Stop after N ticks (0 = unlimited)")
		stepsPerUpdate = flag.Int("steps-per-update", 1, "Simulation ticks per update call")
	)
	flag.Parse()

	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	if err := config.Init(*configPath); err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	if *seed == 0 {
		*seed = time.Now().UnixNano()
	}

	opts := game.Options{
		Seed:           *seed,
		LogStats:       *logStats,
		StatsWindowSec: *statsWindow,
		OutputDir:      *outputDir,
		Headless:       *headless,
		StepsPerUpdate: *stepsPerUpdate,
	}

	if *headless {
		runHeadless(opts, int32(*maxTicks))
		return
	}
	runWindow(config.Cfg(), opts, int32(*maxTicks))
}

// done reports whether a tick limit is set and reached.
func done(g *game.Game, maxTicks int32) bool {
	return maxTicks > 0 && g.Tick() >= maxTicks
}

// runHeadless steps the simulation without raylib until maxTicks.
func runHeadless(opts game.Options, maxTicks int32) {
	g := game.NewGameWithOptions(opts)
	defer g.Unload()

	slog.Info("starting headless simulation",
		"seed", opts.Seed,
		"max_ticks", maxTicks,
		"steps_per_update", opts.StepsPerUpdate,
	)

	for !done(g, maxTicks) {
		g.UpdateHeadless()
	}
	slog.Info("max ticks reached", "tick", g.Tick())
}

// runWindow opens the window and runs the interactive loop.
func runWindow(cfg *config.Config, opts game.Options, maxTicks int32) {
	rl.SetConfigFlags(rl.FlagWindowResizable | rl.FlagMsaa4xHint)
	rl.InitWindow(int32(cfg.Screen.Width), int32(cfg.Screen.Height), "Stitchmeat")
	defer rl.CloseWindow()
	rl.SetTargetFPS(int32(cfg.Screen.TargetFPS))

	g := game.NewGameWithOptions(opts)
	defer g.Unload()

	for !rl.WindowShouldClose() && !done(g, maxTicks) {
		g.Update()
		g.Draw()
	}
}
