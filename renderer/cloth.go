// Package renderer draws the cloth, its room and the blood decals with raylib.
package renderer

import (
	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/lucasb-eyer/go-colorful"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/pthm-cable/stitchmeat/camera"
	"github.com/pthm-cable/stitchmeat/cloth"
)

// ClothRenderer draws constraint segments as 3D lines.
type ClothRenderer struct {
	fadeSeconds float64
	scarsOnly   bool
}

// NewClothRenderer creates a cloth renderer. Segments reach their final
// colour after fadeSeconds.
func NewClothRenderer(fadeSeconds float64) *ClothRenderer {
	return &ClothRenderer{fadeSeconds: fadeSeconds}
}

// SetScarsOnly hides untouched cloth, leaving healed tears and scars.
func (c *ClothRenderer) SetScarsOnly(on bool) {
	c.scarsOnly = on
}

// SegmentColor returns the displayed colour of a segment given its age.
func (c *ClothRenderer) SegmentColor(seg cloth.Segment) colorful.Color {
	return seg.ColorAt(c.fadeSeconds)
}

// Draw renders all segments. Must be called inside BeginMode3D.
func (c *ClothRenderer) Draw(segments []cloth.Segment) {
	for _, seg := range segments {
		if c.scarsOnly && !seg.Scarred {
			continue
		}
		rl.DrawLine3D(vec3(seg.A), vec3(seg.B), toRL(c.SegmentColor(seg), 255))
	}
}

// DrawPinned marks pinned particles. Must be called inside BeginMode3D.
func DrawPinned(ps *cloth.Particles) {
	for i := 0; i < ps.Len(); i++ {
		if ps.At(i).Pinned {
			rl.DrawCubeV(vec3(ps.Position(i)), rl.Vector3{X: 0.15, Y: 0.15, Z: 0.15}, rl.Yellow)
		}
	}
}

// DrawBounds outlines an axis-aligned box given by its top-left corner,
// width and height on the z=0 plane.
func DrawBounds(x, top, w, h float64, col rl.Color) {
	tl := rl.Vector3{X: float32(x), Y: float32(top)}
	tr := rl.Vector3{X: float32(x + w), Y: float32(top)}
	bl := rl.Vector3{X: float32(x), Y: float32(top - h)}
	br := rl.Vector3{X: float32(x + w), Y: float32(top - h)}
	rl.DrawLine3D(tl, tr, col)
	rl.DrawLine3D(tr, br, col)
	rl.DrawLine3D(br, bl, col)
	rl.DrawLine3D(bl, tl, col)
}

// DrawRay draws the pointer ray out to length.
func DrawRay(ray cloth.Ray, length float64, col rl.Color) {
	end := r3.Add(ray.Origin, r3.Scale(length, ray.Dir))
	rl.DrawLine3D(vec3(ray.Origin), vec3(end), col)
}

// Camera3D converts a camera into raylib's representation.
func Camera3D(cam *camera.Camera) rl.Camera3D {
	return rl.Camera3D{
		Position:   vec3(cam.Position),
		Target:     vec3(cam.Target),
		Up:         vec3(cam.Up),
		Fovy:       float32(cam.FovY),
		Projection: rl.CameraPerspective,
	}
}

func vec3(v r3.Vec) rl.Vector3 {
	return rl.Vector3{X: float32(v.X), Y: float32(v.Y), Z: float32(v.Z)}
}

func toRL(c colorful.Color, alpha uint8) rl.Color {
	r, g, b := c.Clamped().RGB255()
	return rl.Color{R: r, G: g, B: b, A: alpha}
}
