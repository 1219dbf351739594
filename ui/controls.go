package ui

import (
	"fmt"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"
)

// ControlsAction is what the user did on the panel this frame.
type ControlsAction struct {
	TogglePause bool
	Reset       bool
	TearRadius  float32
}

// ControlsPanel is the right-hand panel: pause and reset buttons, a tear
// radius slider and the overlay list.
type ControlsPanel struct {
	r       *Renderer
	x, y, w int32
	h       int32 // height of the last draw
	visible bool
}

// NewControlsPanel creates a visible panel at (x, y).
func NewControlsPanel(x, y, width int32) *ControlsPanel {
	return &ControlsPanel{r: NewRenderer(), x: x, y: y, w: width, visible: true}
}

// SetPosition moves the panel, e.g. after a window resize.
func (c *ControlsPanel) SetPosition(x, y int32) {
	c.x, c.y = x, y
}

// Toggle shows or hides the panel and returns the new visibility.
func (c *ControlsPanel) Toggle() bool {
	c.visible = !c.visible
	return c.visible
}

// Contains reports whether a screen point lies on the visible panel.
func (c *ControlsPanel) Contains(px, py float32) bool {
	if !c.visible {
		return false
	}
	return rl.CheckCollisionPointRec(rl.Vector2{X: px, Y: py}, c.bounds())
}

func (c *ControlsPanel) bounds() rl.Rectangle {
	return rl.Rectangle{X: float32(c.x), Y: float32(c.y), Width: float32(c.w), Height: float32(c.h)}
}

// height sizes the panel for the registry's overlays.
func (c *ControlsPanel) height(overlays *OverlayRegistry) int32 {
	t := c.r.Theme
	rows := int32(0)
	for _, cat := range overlays.Categories() {
		rows += int32(len(overlays.ByCategory(cat))) + 1
	}
	return 3*t.Pad + 30 + 2*t.Line + 4 + rows*t.Line
}

// Draw renders the panel and returns the user's actions.
func (c *ControlsPanel) Draw(overlays *OverlayRegistry, paused bool, tearRadius float32) ControlsAction {
	act := ControlsAction{TearRadius: tearRadius}
	if !c.visible {
		return act
	}

	t := c.r.Theme
	c.h = c.height(overlays)
	c.r.DrawPanel(c.x, c.y, c.w, c.h)

	left := float32(c.x + t.Pad)
	inner := float32(c.w - 2*t.Pad)
	y := c.y + t.Pad

	// Run controls
	half := (inner - float32(t.Pad)) / 2
	label := "Pause"
	if paused {
		label = "Resume"
	}
	act.TogglePause = gui.Button(rl.Rectangle{X: left, Y: float32(y), Width: half, Height: 24}, label)
	act.Reset = gui.Button(rl.Rectangle{X: left + half + float32(t.Pad), Y: float32(y), Width: half, Height: 24}, "Reset")
	y += 30 + t.Pad

	rl.DrawText("Tear radius", int32(left), y, t.Font, t.Text)
	y += t.Line
	act.TearRadius = gui.SliderBar(
		rl.Rectangle{X: left, Y: float32(y), Width: inner - 40, Height: 14},
		"", fmt.Sprintf("%.2f", tearRadius), tearRadius, 0.05, 2,
	)
	y += t.Line + 4

	for _, cat := range overlays.Categories() {
		y = c.r.DrawHeader(int32(left), y, categoryLabel(cat))
		for _, o := range overlays.ByCategory(cat) {
			c.drawToggle(int32(left), y, int32(inner), o, overlays.IsEnabled(o.ID))
			y += t.Line
		}
	}
	return act
}

// drawToggle draws one overlay line: state marker, name and hotkey.
func (c *ControlsPanel) drawToggle(x, y, width int32, o Overlay, on bool) {
	t := c.r.Theme

	marker, name := rl.Color{R: 80, G: 80, B: 80, A: 255}, t.Text
	if on {
		marker, name = t.Hi, rl.White
	}
	rl.DrawRectangle(x, y+2, 8, 8, marker)
	rl.DrawText(o.Name, x+14, y, t.Font, name)

	if o.KeyLabel != "" {
		key := "[" + o.KeyLabel + "]"
		rl.DrawText(key, x+width-rl.MeasureText(key, t.Font), y, t.Font, t.Dim)
	}
}

func categoryLabel(cat string) string {
	switch cat {
	case "visual":
		return "Visual"
	case "debug":
		return "Debug"
	}
	return cat
}
