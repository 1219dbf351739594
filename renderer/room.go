package renderer

import (
	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/pthm-cable/stitchmeat/config"
)

// RoomRenderer draws the box the cloth hangs in, lit by a single key light
// whose intensity drives the wall shade.
type RoomRenderer struct {
	cfg  config.SplatterConfig
	base float64
	wall colorful.Color
	dark colorful.Color
}

// NewRoomRenderer creates a room renderer for the configured room bounds.
// base is the key light intensity at rest.
func NewRoomRenderer(cfg config.SplatterConfig, base float64) *RoomRenderer {
	return &RoomRenderer{
		cfg:  cfg,
		base: base,
		wall: colorful.Color{R: 0.32, G: 0.3, B: 0.28},
		dark: colorful.Color{R: 0.02, G: 0.01, B: 0.01},
	}
}

// Shade returns the wall colour for a key light intensity.
func (r *RoomRenderer) Shade(intensity float64) colorful.Color {
	t := 0.0
	if r.base > 0 {
		t = intensity / r.base
	}
	if t > 1 {
		t = 1
	}
	if t < 0 {
		t = 0
	}
	return r.dark.BlendRgb(r.wall, t).Clamped()
}

// Background returns the clear colour for a key light intensity.
func (r *RoomRenderer) Background(intensity float64) rl.Color {
	return toRL(r.Shade(intensity).BlendRgb(r.dark, 0.5), 255)
}

// Draw renders the room walls. Must be called inside BeginMode3D.
func (r *RoomRenderer) Draw(intensity float64) {
	w := float32(r.cfg.RoomHalfWidth)
	floor := float32(r.cfg.FloorY)
	ceil := float32(r.cfg.CeilingY)
	h := ceil - floor
	midY := floor + h/2
	col := toRL(r.Shade(intensity), 255)
	side := toRL(r.Shade(intensity*0.8), 255)

	// Floor and ceiling planes, back wall and side walls as thin cubes
	rl.DrawPlane(rl.Vector3{Y: floor}, rl.Vector2{X: 2 * w, Y: 2 * w}, col)
	rl.DrawCube(rl.Vector3{Y: ceil, Z: 0}, 2*w, 0.02, 2*w, side)
	rl.DrawCube(rl.Vector3{Y: midY, Z: -w}, 2*w, h, 0.02, col)
	rl.DrawCube(rl.Vector3{X: -w, Y: midY}, 0.02, h, 2*w, side)
	rl.DrawCube(rl.Vector3{X: w, Y: midY}, 0.02, h, 2*w, side)
}
