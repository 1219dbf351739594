package cloth

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/spatial/r3"
)

func TestIntegrateVerlet(t *testing.T) {
	ps := NewParticles(1)
	p := ps.At(0)
	p.Pos = r3.Vec{X: 1}
	p.Prev = r3.Vec{X: 0.5}
	p.Damping = 0.5

	ps.ApplyForce(0, r3.Vec{Y: 1})
	ps.Integrate(r3.Vec{Y: -0.25})

	// velocity (0.5,0,0)*0.5 + force (0,0.75,0)
	want := r3.Vec{X: 1.25, Y: 0.75}
	if r3.Norm(r3.Sub(p.Pos, want)) > 1e-12 {
		t.Errorf("Pos = %v, want %v", p.Pos, want)
	}
	if p.Prev != (r3.Vec{X: 1}) {
		t.Errorf("Prev = %v, want pre-step position", p.Prev)
	}
	if p.Force != (r3.Vec{}) {
		t.Errorf("Force not cleared: %v", p.Force)
	}
}

func TestPinnedParticleNeverMoves(t *testing.T) {
	ps := NewParticles(3)
	ps.Place(0, r3.Vec{X: 0, Y: 10}, 0.94)
	ps.Place(1, r3.Vec{X: 1, Y: 10}, 0.94)
	ps.Place(2, r3.Vec{X: 2, Y: 10}, 0.94)
	ps.Pin(0)
	start := ps.Position(0)

	cs := NewConstraints(8)
	cs.Append(Constraint{A: Real(0), B: Real(1), Rest: 0.5, Stiffness: 1, Active: true})
	cs.Append(Constraint{A: Real(1), B: Real(2), Rest: 0.5, Stiffness: 1, Active: true})
	cs.Append(Constraint{A: Real(2), B: Real(0), Rest: 3, Stiffness: 1, Active: true})

	for i := 0; i < 200; i++ {
		ps.ApplyForce(0, r3.Vec{X: 5, Y: -5, Z: 5})
		ps.Integrate(r3.Vec{Y: -0.07})
		cs.Relax(ps, 7, 1e-9)
	}

	if got := ps.Position(0); got != start {
		t.Errorf("pinned particle moved from %v to %v", start, got)
	}
	if ps.Position(1).Y >= 10 {
		t.Error("free particle should have fallen under gravity")
	}
}

func TestPlaceNudgesPrevious(t *testing.T) {
	ps := NewParticles(1)
	ps.Place(0, r3.Vec{X: 3, Y: 4}, 1)
	ps.Integrate(r3.Vec{})

	if got := ps.Position(0).Y; math.Abs(got-3.999) > 1e-12 {
		t.Errorf("first step Y = %v, want 3.999", got)
	}
}

func TestOutOfRangeIndexPanics(t *testing.T) {
	ps := NewParticles(2)
	defer func() {
		if recover() == nil {
			t.Error("expected panic for out-of-range particle")
		}
	}()
	ps.Pin(2)
}
