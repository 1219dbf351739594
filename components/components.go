// Package components defines ECS components for the room's blood decals.
package components

import "github.com/lucasb-eyer/go-colorful"

// Surface identifies which room plane a decal lies on.
type Surface uint8

const (
	SurfaceBack    Surface = iota // wall behind the cloth
	SurfaceLeft
	SurfaceRight
	SurfaceFloor
	SurfaceCeiling

	SurfaceCount = 5
)

var surfaceNames = [SurfaceCount]string{"back", "left", "right", "floor", "ceiling"}

// String returns the surface name.
func (s Surface) String() string {
	if int(s) < len(surfaceNames) {
		return surfaceNames[s]
	}
	return "unknown"
}

// Normal returns the unit normal pointing into the room.
func (s Surface) Normal() (x, y, z float32) {
	switch s {
	case SurfaceBack:
		return 0, 0, 1
	case SurfaceLeft:
		return 1, 0, 0
	case SurfaceRight:
		return -1, 0, 0
	case SurfaceFloor:
		return 0, 1, 0
	default:
		return 0, -1, 0
	}
}

// Position represents a decal's world position.
type Position struct {
	X, Y, Z float32
}

// Orientation is the decal plane's Euler rotation in radians, applied X then Y then Z.
type Orientation struct {
	Surface    Surface
	RX, RY, RZ float32
}

// Splat holds a decal's size and colour state.
type Splat struct {
	Width, Height float32
	Opacity       float32

	Initial colorful.Color
	Final   colorful.Color
	Color   colorful.Color // current, blended from Initial toward Final

	SpawnedAt float64 // seconds on the game clock
	Seq       uint64  // spawn order, oldest first
}
