package cloth

import (
	"fmt"

	"gonum.org/v1/gonum/spatial/r3"
)

// Ray is a half-line with a unit direction.
type Ray struct {
	Origin r3.Vec
	Dir    r3.Vec
}

// NewRay normalizes dir. Panics on a zero direction.
func NewRay(origin, dir r3.Vec) Ray {
	if r3.Norm(dir) == 0 {
		panic(fmt.Sprintf("cloth: zero ray direction from %v", origin))
	}
	return Ray{Origin: origin, Dir: r3.Unit(dir)}
}

// DistanceTo returns the distance from p to the closest point on the ray.
// Points behind the origin measure to the origin itself.
func (r Ray) DistanceTo(p r3.Vec) float64 {
	v := r3.Sub(p, r.Origin)
	t := r3.Dot(v, r.Dir)
	if t < 0 {
		return r3.Norm(v)
	}
	return r3.Norm(r3.Sub(v, r3.Scale(t, r.Dir)))
}
