// Package spatial provides the quadtree used for particle neighbor queries.
package spatial

import "fmt"

// Box is an axis-aligned region in the XY plane. (X, Y) is the top-left
// corner; the box spans [X, X+W] horizontally and [Y-H, Y] vertically.
// Both edges are inclusive.
type Box struct {
	X, Y, W, H float64
}

// BoxAround returns a size×size box centered on (x, y).
func BoxAround(x, y, size float64) Box {
	half := size / 2
	return Box{X: x - half, Y: y + half, W: size, H: size}
}

// Contains reports whether (x, y) lies inside the box.
func (b Box) Contains(x, y float64) bool {
	return x >= b.X && x <= b.X+b.W && y <= b.Y && y >= b.Y-b.H
}

// Intersects reports whether two boxes overlap (touching counts).
func (b Box) Intersects(o Box) bool {
	return !(b.X+b.W < o.X || b.X > o.X+o.W || b.Y-b.H > o.Y || b.Y < o.Y-o.H)
}

type point struct {
	id   int
	x, y float64
}

// Quadtree is a region quadtree over integer IDs with 2D positions.
// It has no delete or move; callers Clear and reinsert when positions change.
type Quadtree struct {
	bounds   Box
	capacity int
	depth    int
	maxDepth int
	points   []point
	children *[4]Quadtree // nw, ne, sw, se
	count    int
}

// NewQuadtree creates an empty tree over bounds. Each node holds up to
// capacity points before subdividing; nodes at maxDepth never subdivide and
// hold any number of points. Panics on non-positive dimensions or capacity.
func NewQuadtree(bounds Box, capacity, maxDepth int) *Quadtree {
	if bounds.W <= 0 || bounds.H <= 0 {
		panic(fmt.Sprintf("spatial: invalid quadtree bounds %+v", bounds))
	}
	if capacity < 1 {
		panic(fmt.Sprintf("spatial: invalid quadtree capacity %d", capacity))
	}
	if maxDepth < 0 {
		maxDepth = 0
	}
	return &Quadtree{
		bounds:   bounds,
		capacity: capacity,
		maxDepth: maxDepth,
		points:   make([]point, 0, capacity),
	}
}

// Bounds returns the region covered by the tree.
func (q *Quadtree) Bounds() Box {
	return q.bounds
}

// Len returns the number of points inserted since the last Clear.
func (q *Quadtree) Len() int {
	return q.count
}

// Clear removes all points and collapses the tree to a single node.
func (q *Quadtree) Clear() {
	q.points = q.points[:0]
	q.children = nil
	q.count = 0
}

// Insert adds id at (x, y). Returns false if the point lies outside the tree.
func (q *Quadtree) Insert(id int, x, y float64) bool {
	if !q.bounds.Contains(x, y) {
		return false
	}
	q.count++

	if len(q.points) < q.capacity || q.depth >= q.maxDepth {
		q.points = append(q.points, point{id: id, x: x, y: y})
		return true
	}

	if q.children == nil {
		q.subdivide()
	}
	for i := range q.children {
		if q.children[i].Insert(id, x, y) {
			return true
		}
	}

	// Unreachable for points inside bounds: the quadrants tile the node.
	q.points = append(q.points, point{id: id, x: x, y: y})
	return true
}

func (q *Quadtree) subdivide() {
	b := q.bounds
	hw, hh := b.W/2, b.H/2
	boxes := [4]Box{
		{X: b.X, Y: b.Y, W: hw, H: hh},
		{X: b.X + hw, Y: b.Y, W: hw, H: hh},
		{X: b.X, Y: b.Y - hh, W: hw, H: hh},
		{X: b.X + hw, Y: b.Y - hh, W: hw, H: hh},
	}

	q.children = &[4]Quadtree{}
	for i, box := range boxes {
		q.children[i] = Quadtree{
			bounds:   box,
			capacity: q.capacity,
			depth:    q.depth + 1,
			maxDepth: q.maxDepth,
		}
	}
}

// Query appends to dst the IDs of every point inside box and returns the
// extended slice. Result order is unspecified.
func (q *Quadtree) Query(box Box, dst []int) []int {
	if !q.bounds.Intersects(box) {
		return dst
	}

	for _, p := range q.points {
		if box.Contains(p.x, p.y) {
			dst = append(dst, p.id)
		}
	}

	if q.children != nil {
		for i := range q.children {
			dst = q.children[i].Query(box, dst)
		}
	}

	return dst
}
