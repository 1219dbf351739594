// Package ui draws the heads-up display, the controls panel and the
// overlay toggles on top of the cloth.
package ui

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// Theme is the palette and metrics shared by every panel.
type Theme struct {
	Panel, Border rl.Color
	Header        rl.Color
	Text, Dim     rl.Color
	Track         rl.Color
	Low, Mid, Hi  rl.Color // level bar fills

	Pad, Line    int32
	LabelW, BarH int32
	Font, Title  int32
}

// DefaultTheme returns a dark, blood-red theme.
func DefaultTheme() Theme {
	return Theme{
		Panel:  rl.Color{R: 20, G: 12, B: 12, A: 230},
		Border: rl.Color{R: 90, G: 40, B: 40, A: 255},
		Header: rl.Color{R: 220, G: 60, B: 60, A: 255},
		Text:   rl.LightGray,
		Dim:    rl.Color{R: 150, G: 150, B: 150, A: 255},
		Track:  rl.Color{R: 40, G: 40, B: 40, A: 255},
		Low:    rl.Color{R: 100, G: 200, B: 100, A: 255},
		Mid:    rl.Color{R: 200, G: 180, B: 100, A: 255},
		Hi:     rl.Color{R: 200, G: 60, B: 60, A: 255},
		Pad:    10,
		Line:   16,
		LabelW: 90,
		BarH:   12,
		Font:   12,
		Title:  14,
	}
}

// Renderer draws themed widgets. Each draw call returns the y of the next line.
type Renderer struct {
	Theme Theme
}

// NewRenderer creates a renderer with the default theme.
func NewRenderer() *Renderer {
	return &Renderer{Theme: DefaultTheme()}
}

// DrawPanel fills and outlines a panel.
func (r *Renderer) DrawPanel(x, y, w, h int32) {
	rl.DrawRectangle(x, y, w, h, r.Theme.Panel)
	rl.DrawRectangleLines(x, y, w, h, r.Theme.Border)
}

// DrawHeader draws a section title.
func (r *Renderer) DrawHeader(x, y int32, title string) int32 {
	rl.DrawText(title, x, y, r.Theme.Title, r.Theme.Header)
	return y + r.Theme.Line
}

// DrawLevelBar draws label, a bar for a [0, 1] level coloured by how high
// it is, and the value.
func (r *Renderer) DrawLevelBar(x, y int32, label string, level float32, width int32) int32 {
	t := r.Theme
	level = min(max(level, 0), 1)

	fill := t.Low
	switch {
	case level > 0.6:
		fill = t.Hi
	case level > 0.3:
		fill = t.Mid
	}

	barX := x + t.LabelW
	barW := width - t.LabelW - 50
	rl.DrawText(label+":", x, y, t.Font, t.Text)
	rl.DrawRectangle(barX, y+2, barW, t.BarH, t.Track)
	rl.DrawRectangle(barX, y+2, int32(float32(barW)*level), t.BarH, fill)
	rl.DrawText(fmt.Sprintf("%.2f", level), barX+barW+5, y, t.Font, t.Text)

	return y + t.Line + 2
}
