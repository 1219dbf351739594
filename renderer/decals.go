package renderer

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/stitchmeat/components"
	"github.com/pthm-cable/stitchmeat/systems"
)

// DecalRenderer draws blood decals on the room surfaces.
type DecalRenderer struct{}

// NewDecalRenderer creates a decal renderer.
func NewDecalRenderer() *DecalRenderer {
	return &DecalRenderer{}
}

// Draw renders every live decal as an ellipse on its surface plane.
// Must be called inside BeginMode3D.
func (d *DecalRenderer) Draw(s *systems.SplatterSystem) {
	s.Each(func(pos *components.Position, rot *components.Orientation, splat *components.Splat) {
		alpha := uint8(clampUnit(splat.Opacity) * 255)
		col := toRL(splat.Color, alpha)

		rl.PushMatrix()
		rl.Translatef(pos.X, pos.Y, pos.Z)
		rl.Rotatef(rl.Rad2deg*rot.RX, 1, 0, 0)
		rl.Rotatef(rl.Rad2deg*rot.RY, 0, 1, 0)
		rl.Rotatef(rl.Rad2deg*rot.RZ, 0, 0, 1)
		// DrawCircle3D lies in the XY plane; scale it into the decal's footprint.
		rl.Scalef(splat.Width/2, splat.Height/2, 1)
		rl.DrawCircle3D(rl.Vector3{}, 1, rl.Vector3{X: 0, Y: 1, Z: 0}, 0, col)
		rl.PopMatrix()
	})
}

func clampUnit(v float32) float32 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
