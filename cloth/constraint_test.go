package cloth

import (
	"math"
	"testing"
	"time"

	"github.com/lucasb-eyer/go-colorful"
	"gonum.org/v1/gonum/spatial/r3"
)

func TestSatisfyFullCorrection(t *testing.T) {
	ps := NewParticles(2)
	ps.At(0).Pos = r3.Vec{}
	ps.At(1).Pos = r3.Vec{X: 2}

	cs := NewConstraints(1)
	cs.Append(Constraint{A: Real(0), B: Real(1), Rest: 1, Stiffness: 1, Active: true})
	cs.Satisfy(0, ps, 1e-9)

	if got := cs.At(0).Length(ps); math.Abs(got-1) > 1e-12 {
		t.Errorf("length after satisfy = %v, want 1", got)
	}
	if got := ps.Position(0).X; math.Abs(got-0.5) > 1e-12 {
		t.Errorf("a.X = %v, want 0.5", got)
	}
	if got := ps.Position(1).X; math.Abs(got-1.5) > 1e-12 {
		t.Errorf("b.X = %v, want 1.5", got)
	}
}

func TestSatisfyStiffnessAndPinning(t *testing.T) {
	tests := []struct {
		name      string
		stiffness float64
		pinA      bool
		wantA     float64
		wantB     float64
	}{
		{"half stiffness", 0.5, false, 0.25, 1.75},
		{"pinned a", 1, true, 0, 1.5},
		{"zero stiffness", 0, false, 0, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ps := NewParticles(2)
			ps.At(1).Pos = r3.Vec{X: 2}
			if tt.pinA {
				ps.Pin(0)
			}
			cs := NewConstraints(1)
			cs.Append(Constraint{A: Real(0), B: Real(1), Rest: 1, Stiffness: tt.stiffness, Active: true})
			cs.Satisfy(0, ps, 1e-9)

			if got := ps.Position(0).X; math.Abs(got-tt.wantA) > 1e-12 {
				t.Errorf("a.X = %v, want %v", got, tt.wantA)
			}
			if got := ps.Position(1).X; math.Abs(got-tt.wantB) > 1e-12 {
				t.Errorf("b.X = %v, want %v", got, tt.wantB)
			}
		})
	}
}

func TestSatisfyZeroLengthIsSkipped(t *testing.T) {
	ps := NewParticles(2)
	ps.At(0).Pos = r3.Vec{X: 1, Y: 1}
	ps.At(1).Pos = r3.Vec{X: 1, Y: 1}

	cs := NewConstraints(1)
	cs.Append(Constraint{A: Real(0), B: Real(1), Rest: 1, Stiffness: 1, Active: true})
	cs.Satisfy(0, ps, 1e-9)

	for i := 0; i < 2; i++ {
		p := ps.Position(i)
		if math.IsNaN(p.X) || math.IsNaN(p.Y) || p != (r3.Vec{X: 1, Y: 1}) {
			t.Errorf("particle %d moved to %v", i, p)
		}
	}
}

func TestSatisfyVirtualEndpointStaysPut(t *testing.T) {
	ps := NewParticles(1)
	tip := r3.Vec{X: 4}

	cs := NewConstraints(1)
	cs.Append(Constraint{A: Real(0), B: Virtual(tip), Rest: 2, Stiffness: 1, Active: true})
	cs.Satisfy(0, ps, 1e-9)

	if got := cs.At(0).B.Position(ps); got != tip {
		t.Errorf("virtual endpoint moved to %v", got)
	}
	if got := ps.Position(0).X; math.Abs(got-1) > 1e-12 {
		t.Errorf("particle X = %v, want 1 (half the error)", got)
	}
}

func TestSatisfyInactiveIsNoop(t *testing.T) {
	ps := NewParticles(2)
	ps.At(1).Pos = r3.Vec{X: 5}

	cs := NewConstraints(1)
	cs.Append(Constraint{A: Real(0), B: Real(1), Rest: 1, Stiffness: 1, Active: true})
	cs.Deactivate(0)
	cs.Relax(ps, 7, 1e-9)

	if got := ps.Position(1).X; got != 5 {
		t.Errorf("inactive constraint moved b to %v", got)
	}
}

func TestAppendRespectsLimit(t *testing.T) {
	cs := NewConstraints(3)
	for i := 0; i < 5; i++ {
		cs.Append(Constraint{A: Real(0), B: Virtual(r3.Vec{X: float64(i)})})
	}

	if cs.Len() != 3 {
		t.Errorf("Len() = %d, want 3", cs.Len())
	}
	if cs.Dropped() != 2 {
		t.Errorf("Dropped() = %d, want 2", cs.Dropped())
	}
}

func TestReactivateStampsConstraint(t *testing.T) {
	cs := NewConstraints(1)
	cs.Append(Constraint{A: Real(0), B: Real(1), Rest: 1, Stiffness: 1, Active: true})
	c := cs.At(0)

	if c.Age(5*time.Second) != 0 {
		t.Error("structural constraint should report age 0")
	}

	cs.Deactivate(0)
	red := colorful.Hsl(0, 1, 0.3)
	cs.Reactivate(0, 0.7, red, 2*time.Second)

	if !c.Active || c.Rest != 0.7 || c.FinalColor() != red {
		t.Errorf("reactivated constraint = %+v", *c)
	}
	if c.Color == red {
		t.Error("reactivated constraint should start at the fresh wound colour")
	}
	if got := c.Age(5 * time.Second); math.Abs(got-3) > 1e-9 {
		t.Errorf("Age = %v, want 3", got)
	}
}
