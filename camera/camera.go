// Package camera provides the perspective camera that turns pointer
// positions into world-space rays.
package camera

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/pthm-cable/stitchmeat/cloth"
	"github.com/pthm-cable/stitchmeat/config"
)

// Camera is a pinhole perspective camera looking from Position at Target.
type Camera struct {
	Position r3.Vec
	Target   r3.Vec
	Up       r3.Vec

	// Vertical field of view in degrees
	FovY float64

	// Viewport dimensions (screen size)
	ViewportW, ViewportH float64
}

// New creates a camera from the configured pose and viewport size.
func New(cc config.CameraConfig, viewportW, viewportH float64) *Camera {
	return &Camera{
		Position:  vec(cc.Position),
		Target:    vec(cc.Target),
		Up:        vec(cc.Up),
		FovY:      cc.FovY,
		ViewportW: viewportW,
		ViewportH: viewportH,
	}
}

func vec(a [3]float64) r3.Vec {
	return r3.Vec{X: a[0], Y: a[1], Z: a[2]}
}

// Aspect returns the viewport width over height.
func (c *Camera) Aspect() float64 {
	if c.ViewportH <= 0 {
		return 1
	}
	return c.ViewportW / c.ViewportH
}

// basis returns the forward, right and true-up unit vectors.
func (c *Camera) basis() (forward, right, up r3.Vec) {
	forward = r3.Unit(r3.Sub(c.Target, c.Position))
	right = r3.Unit(r3.Cross(forward, c.Up))
	up = r3.Cross(right, forward)
	return forward, right, up
}

func (c *Camera) tanHalfFov() float64 {
	return math.Tan(c.FovY * math.Pi / 360)
}

// Ray returns the world-space ray through screen pixel (sx, sy), with the
// origin at the camera and (0, 0) at the top-left of the viewport.
func (c *Camera) Ray(sx, sy float64) cloth.Ray {
	// Normalized device coordinates, y up
	nx := 2*sx/c.ViewportW - 1
	ny := 1 - 2*sy/c.ViewportH

	forward, right, up := c.basis()
	t := c.tanHalfFov()

	dir := r3.Add(forward, r3.Add(
		r3.Scale(nx*t*c.Aspect(), right),
		r3.Scale(ny*t, up),
	))
	return cloth.NewRay(c.Position, dir)
}

// WorldToScreen projects p into screen pixels.
// Returns false if p is at or behind the camera plane.
func (c *Camera) WorldToScreen(p r3.Vec) (sx, sy float64, ok bool) {
	forward, right, up := c.basis()
	d := r3.Sub(p, c.Position)

	z := r3.Dot(d, forward)
	if z <= 0 {
		return 0, 0, false
	}

	t := c.tanHalfFov()
	nx := r3.Dot(d, right) / (z * t * c.Aspect())
	ny := r3.Dot(d, up) / (z * t)

	sx = (nx + 1) / 2 * c.ViewportW
	sy = (1 - ny) / 2 * c.ViewportH
	return sx, sy, true
}

// Resize updates viewport dimensions.
func (c *Camera) Resize(viewportW, viewportH float64) {
	c.ViewportW = viewportW
	c.ViewportH = viewportH
}

// Dolly moves the camera along its view direction by dist, keeping the
// target. The camera never passes closer than minDist to the target.
func (c *Camera) Dolly(dist, minDist float64) {
	offset := r3.Sub(c.Position, c.Target)
	length := r3.Norm(offset)
	next := clamp(length-dist, minDist, math.MaxFloat64)
	c.Position = r3.Add(c.Target, r3.Scale(next/length, offset))
}

// clamp restricts a value to a range.
func clamp(x, min, max float64) float64 {
	if x < min {
		return min
	}
	if x > max {
		return max
	}
	return x
}
