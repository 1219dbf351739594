package ui

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// HUDData is everything the top-left HUD shows.
type HUDData struct {
	Title       string
	Active      int
	Constraints int
	Limit       int
	Broken      int
	Decals      int
	TearCount   float64
	Damage      float64 // [0, 1], follows the audio degradation
	Light       float64 // key light intensity relative to base
	Tick        int32
	FPS         int32
	Paused      bool
}

// HUD draws the status lines and level bars.
type HUD struct {
	r *Renderer
}

// NewHUD creates a HUD with the default theme.
func NewHUD() *HUD {
	return &HUD{r: NewRenderer()}
}

// Draw renders the HUD.
func (h *HUD) Draw(d HUDData) {
	rl.DrawText(d.Title, 10, 10, 20, rl.White)
	rl.DrawText(fmt.Sprintf("Constraints: %d/%d active of %d | Torn: %d | Decals: %d",
		d.Active, d.Constraints, d.Limit, d.Broken, d.Decals), 10, 35, 16, rl.LightGray)
	rl.DrawText(fmt.Sprintf("Tear count: %.3f | Tick: %d | FPS: %d",
		d.TearCount, d.Tick, d.FPS), 10, 55, 16, rl.LightGray)

	y := h.r.DrawLevelBar(10, 80, "Damage", float32(d.Damage), 260)
	y = h.r.DrawLevelBar(10, y, "Light", float32(d.Light), 260)

	if d.Paused {
		rl.DrawText("PAUSED", 10, y+6, 16, rl.Yellow)
	}
}

// DrawControls renders the key legend along the bottom edge.
func (h *HUD) DrawControls(screenHeight int32, legend string) {
	rl.DrawText(legend, 10, screenHeight-25, 14, rl.Gray)
}
