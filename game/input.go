package game

import (
	"log/slog"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/stitchmeat/cloth"
)

// Minimum camera distance to the cloth target when dollying.
const minCameraDistance = 10

// handleInput processes keyboard and mouse input.
func (g *Game) handleInput() {
	// Window resize propagation
	g.handleResize()

	// Fullscreen toggle
	if rl.IsKeyPressed(rl.KeyF11) {
		rl.ToggleFullscreen()
	}

	if rl.IsKeyPressed(rl.KeySpace) {
		g.paused = !g.paused
	}
	if rl.IsKeyPressed(rl.KeyBackspace) {
		g.Reset()
	}
	if rl.IsKeyPressed(rl.KeyTab) {
		g.controls.Toggle()
	}

	// Steps-per-update control with < > keys (comma and period)
	if rl.IsKeyPressed(rl.KeyComma) && g.stepsPerUpdate > 1 {
		g.stepsPerUpdate--
	}
	if rl.IsKeyPressed(rl.KeyPeriod) && g.stepsPerUpdate < 10 {
		g.stepsPerUpdate++
	}

	// Overlay toggles
	for key := rl.GetKeyPressed(); key != 0; key = rl.GetKeyPressed() {
		if id, on, ok := g.overlays.HandleKeyPress(key); ok {
			slog.Debug("overlay toggled", "overlay", string(id), "enabled", on)
		}
	}

	// Zoom with the mouse wheel
	if wheel := rl.GetMouseWheelMove(); wheel != 0 {
		g.camera.Dolly(float64(wheel)*5, minCameraDistance)
	}

	g.handlePointer()
}

// handlePointer tracks the left mouse button. A drag that starts on the
// controls panel never tears the cloth.
func (g *Game) handlePointer() {
	mouse := rl.GetMousePosition()

	if rl.IsMouseButtonPressed(rl.MouseButtonLeft) && !g.controls.Contains(mouse.X, mouse.Y) {
		g.dragging = true
		g.sim.PointerDown()
	}
	if rl.IsMouseButtonReleased(rl.MouseButtonLeft) && g.dragging {
		g.dragging = false
		g.sim.PointerUp()
	}
}

// pointerRay feeds the mouse ray to the cloth for this tick.
func (g *Game) pointerRay() {
	mouse := rl.GetMousePosition()
	g.sim.PointerMove(g.mouseRay(mouse.X, mouse.Y))
}

func (g *Game) mouseRay(x, y float32) cloth.Ray {
	return g.camera.Ray(float64(x), float64(y))
}

// handleResize checks for window resize and propagates new dimensions.
func (g *Game) handleResize() {
	if !rl.IsWindowResized() {
		return
	}
	w := float32(rl.GetScreenWidth())
	h := float32(rl.GetScreenHeight())
	if w == g.screenWidth && h == g.screenHeight {
		return
	}
	g.screenWidth = w
	g.screenHeight = h

	g.camera.Resize(float64(w), float64(h))
	g.controls.SetPosition(int32(w)-230, 10)
}
