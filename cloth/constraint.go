package cloth

import (
	"fmt"
	"time"

	"github.com/lucasb-eyer/go-colorful"
	"gonum.org/v1/gonum/spatial/r3"
)

// Endpoint is one end of a constraint: either a particle in the store or a
// fixed virtual point that is never integrated or moved.
type Endpoint struct {
	index   int
	point   r3.Vec
	virtual bool
}

// Real returns an endpoint referring to particle i.
func Real(i int) Endpoint {
	return Endpoint{index: i}
}

// Virtual returns an endpoint fixed at p.
func Virtual(p r3.Vec) Endpoint {
	return Endpoint{index: -1, point: p, virtual: true}
}

// IsVirtual reports whether e is a virtual point.
func (e Endpoint) IsVirtual() bool {
	return e.virtual
}

// Index returns the particle index, or -1 for a virtual point.
func (e Endpoint) Index() int {
	return e.index
}

// Is reports whether e refers to particle i.
func (e Endpoint) Is(i int) bool {
	return !e.virtual && e.index == i
}

// Position resolves e against the particle store.
func (e Endpoint) Position(ps *Particles) r3.Vec {
	if e.virtual {
		return e.point
	}
	return ps.items[e.index].Pos
}

// movable returns the particle behind e, or nil if e cannot be moved.
func (e Endpoint) movable(ps *Particles) *Particle {
	if e.virtual {
		return nil
	}
	p := &ps.items[e.index]
	if p.Pinned {
		return nil
	}
	return p
}

// Constraint keeps two endpoints near a rest distance.
type Constraint struct {
	A, B      Endpoint
	Rest      float64
	Stiffness float64 // 0..1, fraction of the error corrected per pass
	Active    bool
	Color     colorful.Color
	Final     colorful.Color // colour the renderer fades toward with age
	CreatedAt time.Duration
	Scarred   bool // CreatedAt and Final were stamped by regeneration or growth
}

// Age returns seconds since the constraint was stamped, or 0 for an
// unstamped structural constraint.
func (c *Constraint) Age(now time.Duration) float64 {
	if !c.Scarred {
		return 0
	}
	return (now - c.CreatedAt).Seconds()
}

// FinalColor returns the fade target, defaulting to the current colour.
func (c *Constraint) FinalColor() colorful.Color {
	if !c.Scarred {
		return c.Color
	}
	return c.Final
}

// Length returns the current endpoint distance.
func (c *Constraint) Length(ps *Particles) float64 {
	return r3.Norm(r3.Sub(c.B.Position(ps), c.A.Position(ps)))
}

// Midpoint returns the point halfway between the endpoints.
func (c *Constraint) Midpoint(ps *Particles) r3.Vec {
	return r3.Scale(0.5, r3.Add(c.A.Position(ps), c.B.Position(ps)))
}

// Constraints is an append-only table of distance constraints with a hard
// size limit. Entries are never removed, so indices are stable.
type Constraints struct {
	items   []Constraint
	limit   int
	dropped int
}

// NewConstraints creates an empty table holding at most limit entries.
func NewConstraints(limit int) *Constraints {
	if limit < 0 {
		panic(fmt.Sprintf("cloth: negative constraint limit %d", limit))
	}
	return &Constraints{limit: limit}
}

// Len returns the number of constraints, active or not.
func (t *Constraints) Len() int {
	return len(t.items)
}

// Limit returns the maximum table size.
func (t *Constraints) Limit() int {
	return t.limit
}

// Dropped returns how many appends were refused because the table was full.
func (t *Constraints) Dropped() int {
	return t.dropped
}

// At returns constraint i.
func (t *Constraints) At(i int) *Constraint {
	return &t.items[i]
}

// Append adds c if the table is below its limit. A full table drops c
// silently and returns false.
func (t *Constraints) Append(c Constraint) bool {
	if len(t.items) >= t.limit {
		t.dropped++
		return false
	}
	t.items = append(t.items, c)
	return true
}

// Deactivate marks constraint i as torn.
func (t *Constraints) Deactivate(i int) {
	t.items[i].Active = false
}

// Reactivate restores constraint i with a new rest length, stamping it as
// created at now. It starts at the fresh wound colour and darkens to final.
func (t *Constraints) Reactivate(i int, rest float64, final colorful.Color, now time.Duration) {
	c := &t.items[i]
	c.Active = true
	c.Rest = rest
	c.Color = freshColor(final)
	c.Final = final
	c.CreatedAt = now
	c.Scarred = true
}

// Satisfy moves the endpoints of constraint i toward its rest length.
// Endpoints closer than eps are left alone since the correction direction
// is undefined.
func (t *Constraints) Satisfy(i int, ps *Particles, eps float64) {
	c := &t.items[i]
	if !c.Active {
		return
	}

	delta := r3.Sub(c.B.Position(ps), c.A.Position(ps))
	dist := r3.Norm(delta)
	if dist <= eps {
		return
	}

	diff := (dist - c.Rest) / dist
	correction := r3.Scale(0.5*c.Stiffness*diff, delta)

	if p := c.A.movable(ps); p != nil {
		p.Pos = r3.Add(p.Pos, correction)
	}
	if p := c.B.movable(ps); p != nil {
		p.Pos = r3.Sub(p.Pos, correction)
	}
}

// Relax runs Satisfy over every constraint, iterations times.
func (t *Constraints) Relax(ps *Particles, iterations int, eps float64) {
	for iter := 0; iter < iterations; iter++ {
		for i := range t.items {
			t.Satisfy(i, ps, eps)
		}
	}
}
