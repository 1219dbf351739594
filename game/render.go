package game

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/stitchmeat/feedback"
	"github.com/pthm-cable/stitchmeat/renderer"
	"github.com/pthm-cable/stitchmeat/ui"
)

// Draw renders the game state.
func (g *Game) Draw() {
	rl.BeginDrawing()
	rl.ClearBackground(g.roomRenderer.Background(g.intensity))

	rl.BeginMode3D(renderer.Camera3D(g.camera))

	g.roomRenderer.Draw(g.intensity)
	if g.overlays.IsEnabled(ui.OverlayDecals) {
		g.decalRenderer.Draw(g.splatter)
	}

	g.clothRenderer.SetScarsOnly(g.overlays.IsEnabled(ui.OverlayScarsOnly))
	g.clothRenderer.Draw(g.snapshot.Segments)

	g.drawDebugOverlays()

	rl.EndMode3D()

	g.drawUI()

	rl.EndDrawing()
}

// drawDebugOverlays renders the enabled debug overlays in world space.
func (g *Game) drawDebugOverlays() {
	if g.overlays.IsEnabled(ui.OverlayPinned) {
		renderer.DrawPinned(g.sim.Particles())
	}
	if g.overlays.IsEnabled(ui.OverlayFrameIndex) {
		b := g.cfg.Spatial.FrameBounds
		renderer.DrawBounds(b.X, b.Y, b.W, b.H, rl.SkyBlue)
		r := g.cfg.Spatial.RegenBounds
		renderer.DrawBounds(r.X, r.Y, r.W, r.H, rl.Orange)
	}
	if g.overlays.IsEnabled(ui.OverlayPointerRay) {
		col := rl.Gray
		if g.sim.PointerActive() {
			col = rl.Red
		}
		renderer.DrawRay(g.sim.LastRay(), 200, col)
	}
}

// drawUI renders the HUD and the controls panel and applies panel actions.
func (g *Game) drawUI() {
	active := 0
	cs := g.sim.Constraints()
	for i := 0; i < cs.Len(); i++ {
		if cs.At(i).Active {
			active++
		}
	}

	audio := feedback.Audio(g.sim.TearCount())
	g.hud.Draw(ui.HUDData{
		Title:       "Stitchmeat",
		Active:      active,
		Constraints: cs.Len(),
		Limit:       cs.Limit(),
		Broken:      len(g.sim.Broken()),
		Decals:      g.splatter.Count(),
		TearCount:   g.sim.TearCount(),
		Damage:      1 - audio.PlaybackRate,
		Light:       g.intensity / g.cfg.Feedback.BaseIntensity,
		Tick:        g.tick,
		FPS:         rl.GetFPS(),
		Paused:      g.paused,
	})
	g.hud.DrawControls(int32(g.screenHeight),
		"Drag: Tear | Space: Pause | Backspace: Reset | Wheel: Zoom | </>: Speed | Tab: Panel")

	action := g.controls.Draw(g.overlays, g.paused, float32(g.cfg.Tear.Radius))
	if action.TogglePause {
		g.paused = !g.paused
	}
	if action.Reset {
		g.Reset()
	}
	g.cfg.Tear.Radius = float64(action.TearRadius)
}
