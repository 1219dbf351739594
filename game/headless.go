package game

import (
	"gonum.org/v1/gonum/spatial/r3"
)

// swipe is a scripted pointer drag between two points on the cloth.
type swipe struct {
	from, to r3.Vec
	start    int32 // tick the drag began
	length   int32 // ticks the drag lasts
}

// Ticks between scripted swipes, and swipe duration bounds.
const (
	swipeGapMin    = 90
	swipeGapMax    = 240
	swipeLengthMin = 10
	swipeLengthMax = 40
)

// scriptedPointer drags the pointer across the cloth at random intervals
// so headless runs exercise tearing and regeneration.
func (g *Game) scriptedPointer() {
	if g.swipe == nil {
		g.swipe = g.nextSwipe()
	}
	s := g.swipe

	if g.tick < s.start {
		return
	}
	if g.tick == s.start {
		g.sim.PointerDown()
	}

	t := float64(g.tick-s.start) / float64(s.length)
	target := r3.Add(s.from, r3.Scale(t, r3.Sub(s.to, s.from)))

	// Aim through the camera so the ray matches what a mouse would produce.
	if sx, sy, ok := g.camera.WorldToScreen(target); ok {
		g.sim.PointerMove(g.camera.Ray(sx, sy))
	}

	if g.tick-s.start >= s.length {
		g.sim.PointerUp()
		g.swipe = nil
	}
}

// nextSwipe schedules a drag between two random particles.
func (g *Game) nextSwipe() *swipe {
	ps := g.sim.Particles()
	n := ps.Len()
	return &swipe{
		from:   ps.Position(g.rng.Intn(n)),
		to:     ps.Position(g.rng.Intn(n)),
		start:  g.tick + int32(swipeGapMin+g.rng.Intn(swipeGapMax-swipeGapMin+1)),
		length: int32(swipeLengthMin + g.rng.Intn(swipeLengthMax-swipeLengthMin+1)),
	}
}
