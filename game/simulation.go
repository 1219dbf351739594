package game

import (
	"github.com/pthm-cable/stitchmeat/cloth"
	"github.com/pthm-cable/stitchmeat/telemetry"
)

// Update runs one frame in graphics mode: keyboard and UI input, then the
// configured number of simulation ticks.
func (g *Game) Update() {
	g.perfCollector.RecordFrame()
	g.handleInput()

	if g.paused {
		return
	}
	for i := 0; i < g.stepsPerUpdate; i++ {
		g.step(g.pointerRay)
	}
}

// UpdateHeadless runs the configured number of ticks with a scripted pointer.
func (g *Game) UpdateHeadless() {
	for i := 0; i < g.stepsPerUpdate; i++ {
		g.step(g.scriptedPointer)
	}
}

// step advances the world by one tick. pointer applies this tick's
// pointer input to the cloth.
func (g *Game) step(pointer func()) {
	g.perfCollector.StartTick()

	g.tick++
	now := g.now()

	// Advance first: pointer tears are stamped with the cloth clock.
	g.perfCollector.StartPhase(telemetry.PhaseRegen)
	g.sim.Advance(now)

	g.perfCollector.StartPhase(telemetry.PhaseInput)
	pointer()

	g.perfCollector.StartPhase(telemetry.PhasePhysics)
	g.snapshot = g.sim.Step(now)

	g.perfCollector.StartPhase(telemetry.PhaseSplatter)
	g.splatter.Update(now.Seconds())

	g.perfCollector.StartPhase(telemetry.PhaseFeedback)
	g.intensity = g.flicker.Update(now.Seconds(), g.sim.TearCount())

	g.perfCollector.StartPhase(telemetry.PhaseTelemetry)
	g.flushTelemetry()

	g.perfCollector.EndTick()
}

// Snapshot returns the most recent frame's segments.
func (g *Game) Snapshot() cloth.Snapshot {
	return g.snapshot
}
