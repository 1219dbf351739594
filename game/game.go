// Package game wires the cloth simulation to the camera, the room's blood
// decals, the light flicker and telemetry, and drives them on a fixed tick.
package game

import (
	"log/slog"
	"math/rand"
	"time"

	"github.com/mlange-42/ark/ecs"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/pthm-cable/stitchmeat/camera"
	"github.com/pthm-cable/stitchmeat/cloth"
	"github.com/pthm-cable/stitchmeat/config"
	"github.com/pthm-cable/stitchmeat/feedback"
	"github.com/pthm-cable/stitchmeat/renderer"
	"github.com/pthm-cable/stitchmeat/systems"
	"github.com/pthm-cable/stitchmeat/telemetry"
	"github.com/pthm-cable/stitchmeat/ui"
)

// Game holds the complete game state.
type Game struct {
	cfg  *config.Config
	opts Options
	rng  *rand.Rand

	world    *ecs.World
	sim      *cloth.Simulation
	camera   *camera.Camera
	splatter *systems.SplatterSystem
	flicker  *feedback.Flicker
	snapshot cloth.Snapshot

	// Telemetry
	collector        *telemetry.Collector
	perfCollector    *telemetry.PerfCollector
	bookmarkDetector *telemetry.BookmarkDetector
	outputManager    *telemetry.OutputManager
	statsCallback    func(telemetry.WindowStats)

	// Rendering and UI (nil in headless mode)
	clothRenderer *renderer.ClothRenderer
	decalRenderer *renderer.DecalRenderer
	roomRenderer  *renderer.RoomRenderer
	hud           *ui.HUD
	controls      *ui.ControlsPanel
	overlays      *ui.OverlayRegistry

	// Headless pointer script
	swipe *swipe

	// State
	tick           int32
	epoch          int32 // tick at which the current simulation was built
	paused         bool
	stepsPerUpdate int
	intensity      float64
	dragging       bool

	screenWidth, screenHeight float32
}

// NewGame creates a game with default options.
func NewGame() *Game {
	return NewGameWithOptions(DefaultOptions())
}

// NewGameWithOptions creates a game. config.Init must have been called
// unless opts.Config is set.
func NewGameWithOptions(opts Options) *Game {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Cfg()
	}

	if opts.StepsPerUpdate < 1 {
		opts.StepsPerUpdate = 1
	}
	statsWindow := opts.StatsWindowSec
	if statsWindow <= 0 {
		statsWindow = cfg.Telemetry.StatsWindow
	}

	g := &Game{
		cfg:            cfg,
		opts:           opts,
		rng:            rand.New(rand.NewSource(opts.Seed)),
		world:          ecs.NewWorld(),
		stepsPerUpdate: opts.StepsPerUpdate,
		screenWidth:    float32(cfg.Screen.Width),
		screenHeight:   float32(cfg.Screen.Height),
		intensity:      cfg.Feedback.BaseIntensity,

		collector:        telemetry.NewCollector(statsWindow, float32(cfg.Physics.DT)),
		perfCollector:    telemetry.NewPerfCollector(cfg.Telemetry.PerfCollectorWindow),
		bookmarkDetector: telemetry.NewBookmarkDetector(5),
		statsCallback:    opts.StatsCallback,
	}

	g.camera = camera.New(cfg.Camera, float64(cfg.Screen.Width), float64(cfg.Screen.Height))
	g.splatter = systems.NewSplatterSystem(g.world, cfg.Splatter, g.rng)
	g.buildSimulation()

	if opts.OutputDir != "" {
		om, err := telemetry.NewOutputManager(opts.OutputDir)
		if err != nil {
			slog.Error("failed to create output manager", "error", err)
		} else {
			g.outputManager = om
			if err := om.WriteConfig(cfg); err != nil {
				slog.Error("failed to write config", "error", err)
			}
		}
	}

	if !opts.Headless {
		g.clothRenderer = renderer.NewClothRenderer(cfg.Telemetry.FadeSeconds)
		g.decalRenderer = renderer.NewDecalRenderer()
		g.roomRenderer = renderer.NewRoomRenderer(cfg.Splatter, cfg.Feedback.BaseIntensity)
		g.hud = ui.NewHUD()
		g.overlays = ui.NewOverlayRegistry()
		g.controls = ui.NewControlsPanel(int32(cfg.Screen.Width)-230, 10, 220)
	}

	return g
}

// buildSimulation creates a fresh cloth and hooks tears to the decal spawner.
func (g *Game) buildSimulation() {
	if g.sim != nil {
		g.sim.Close()
	}
	g.epoch = g.tick
	g.sim = cloth.New(g.cfg, g.rng)
	g.flicker = feedback.NewFlicker(g.cfg.Feedback, g.rng)
	g.intensity = g.cfg.Feedback.BaseIntensity

	g.sim.OnTear(func(r3.Vec) {
		g.splatter.Spawn(g.elapsed())
	})
	g.collector.Reset(g.tick)
}

// Reset discards the current cloth and decals and starts over.
func (g *Game) Reset() {
	g.splatter.Clear()
	g.buildSimulation()
	g.swipe = nil
}

// now returns the simulation clock for the current tick.
func (g *Game) now() time.Duration {
	return time.Duration(g.tick-g.epoch) * g.cfg.Derived.TickDuration
}

// elapsed returns the simulation clock in seconds.
func (g *Game) elapsed() float64 {
	return g.now().Seconds()
}

// SetStatsCallback registers a function called with every flushed window.
func (g *Game) SetStatsCallback(fn func(telemetry.WindowStats)) {
	g.statsCallback = fn
}

// Simulation returns the running cloth.
func (g *Game) Simulation() *cloth.Simulation {
	return g.sim
}

// Tick returns the current tick.
func (g *Game) Tick() int32 {
	return g.tick
}

// Intensity returns the current key light intensity.
func (g *Game) Intensity() float64 {
	return g.intensity
}

// Unload releases resources and closes output files.
func (g *Game) Unload() {
	if g.sim != nil {
		g.sim.Close()
	}
	if err := g.outputManager.Close(); err != nil {
		slog.Error("failed to close output", "error", err)
	}
}
