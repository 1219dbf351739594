package cloth

import "gonum.org/v1/gonum/spatial/r3"

// Particle is a point mass integrated with position Verlet.
type Particle struct {
	Pos     r3.Vec
	Prev    r3.Vec // position before the last integration step
	Force   r3.Vec // accumulated since the last integration step
	Damping float64
	Pinned  bool
}

// Particles is the fixed-size particle store. Indices are stable for the
// life of the store; out-of-range indices panic.
type Particles struct {
	items []Particle
}

// NewParticles allocates n particles at the origin.
func NewParticles(n int) *Particles {
	return &Particles{items: make([]Particle, n)}
}

// Len returns the number of particles.
func (s *Particles) Len() int {
	return len(s.items)
}

// At returns the particle at i for reading or direct placement.
func (s *Particles) At(i int) *Particle {
	return &s.items[i]
}

// Place puts particle i at rest at pos, offset slightly in prev so the
// first step gives it a small downward nudge.
func (s *Particles) Place(i int, pos r3.Vec, damping float64) {
	s.items[i] = Particle{
		Pos:     pos,
		Prev:    r3.Add(pos, r3.Vec{Y: 0.001}),
		Damping: damping,
	}
}

// Position returns the position of particle i.
func (s *Particles) Position(i int) r3.Vec {
	return s.items[i].Pos
}

// ApplyForce accumulates f into particle i until the next Integrate.
func (s *Particles) ApplyForce(i int, f r3.Vec) {
	p := &s.items[i]
	p.Force = r3.Add(p.Force, f)
}

// Pin fixes particle i in place permanently.
func (s *Particles) Pin(i int) {
	s.items[i].Pinned = true
}

// Integrate advances every free particle one step with external added to
// its accumulated force. Pinned particles are not touched.
func (s *Particles) Integrate(external r3.Vec) {
	for i := range s.items {
		p := &s.items[i]
		if p.Pinned {
			continue
		}

		velocity := r3.Scale(p.Damping, r3.Sub(p.Pos, p.Prev))
		force := r3.Add(p.Force, external)

		p.Prev = p.Pos
		p.Pos = r3.Add(r3.Add(p.Pos, velocity), force)
		p.Force = r3.Vec{}
	}
}
