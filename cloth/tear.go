package cloth

import "time"

// Broken records when a constraint was torn. A constraint has at most one
// record; it is dropped when the constraint heals.
type Broken struct {
	Constraint int
	At         time.Duration
}

// PointerDown starts a drag. Moves probe until PointerUp.
func (s *Simulation) PointerDown() {
	s.pointer = true
}

// PointerUp ends a drag.
func (s *Simulation) PointerUp() {
	s.pointer = false
}

// PointerActive reports whether a drag is in progress.
func (s *Simulation) PointerActive() bool {
	return s.pointer
}

// LastRay returns the most recent pointer ray.
func (s *Simulation) LastRay() Ray {
	return s.ray
}

// PointerMove records the latest pointer ray and probes with it while a
// drag is in progress. Returns the number of constraints newly torn.
func (s *Simulation) PointerMove(ray Ray) int {
	s.ray = ray
	if !s.pointer {
		return 0
	}
	return s.Probe(ray)
}

// Probe tears every active constraint whose midpoint lies within the tear
// radius of ray. Each newly broken constraint gets one record stamped with
// the current clock, bumps the tear counter and fires the tear callbacks.
// Returns the number of records created.
func (s *Simulation) Probe(ray Ray) int {
	radius := s.cfg.Tear.Radius
	torn := 0

	for i := 0; i < s.constraints.Len(); i++ {
		c := s.constraints.At(i)
		if !c.Active {
			continue
		}

		mid := c.Midpoint(s.particles)
		if ray.DistanceTo(mid) >= radius {
			continue
		}

		s.constraints.Deactivate(i)
		if _, ok := s.brokenSet[i]; ok {
			continue
		}

		s.broken = append(s.broken, Broken{Constraint: i, At: s.now})
		s.brokenSet[i] = struct{}{}
		s.tearCount += s.cfg.Tear.Increment
		s.stats.Tears++
		torn++

		for _, fn := range s.onTear {
			fn(mid)
		}
	}

	return torn
}

// removeBroken drops the record for constraint i, if any.
func (s *Simulation) removeBroken(i int) bool {
	if _, ok := s.brokenSet[i]; !ok {
		return false
	}
	delete(s.brokenSet, i)

	for k := range s.broken {
		if s.broken[k].Constraint == i {
			last := len(s.broken) - 1
			s.broken[k] = s.broken[last]
			s.broken = s.broken[:last]
			break
		}
	}
	return true
}
