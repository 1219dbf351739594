package cloth

import (
	"log/slog"
	"math"
	"time"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/pthm-cable/stitchmeat/spatial"
)

// Regenerate runs one regeneration pass at now. Tears older than a freshly
// drawn cooldown are eligible; the neighbour index is rebuilt once and a
// small batch is sampled from them with replacement. Each sampled tear that
// is still open and not over-stretched is healed and seeded with scar
// filaments. Returns the number healed.
func (s *Simulation) Regenerate(now time.Duration) int {
	s.advanceClock(now)
	if len(s.broken) == 0 {
		return 0
	}

	rc := s.cfg.Regen
	s.eligible = s.eligible[:0]
	for _, b := range s.broken {
		if now-b.At >= durationBetween(s.rng, rc.CooldownMin, rc.CooldownMax) {
			s.eligible = append(s.eligible, b.Constraint)
		}
	}
	if len(s.eligible) == 0 {
		return 0
	}
	s.stats.RegenTicks++
	s.reindex(s.regenIndex)

	before := s.stats
	healed := 0

	batch := intBetween(s.rng, rc.BatchMin, rc.BatchMax)
	for n := 0; n < batch; n++ {
		ci := s.eligible[s.rng.Intn(len(s.eligible))]
		if !s.IsBroken(ci) {
			// Drawn twice this pass and already healed.
			continue
		}

		if s.constraints.At(ci).Length(s.particles) > s.cfg.Derived.StretchBound {
			s.stats.StretchSkips++
			continue
		}

		s.heal(ci, now)
		healed++
		s.growScar(ci, now)
	}

	slog.Debug("regeneration pass",
		"at", now,
		"healed", healed,
		"filaments", s.stats.Filaments-before.Filaments,
		"loops", s.stats.Loops-before.Loops,
		"skipped_stretch", s.stats.StretchSkips-before.StretchSkips,
		"broken", len(s.broken),
	)

	return healed
}

// heal reactivates constraint ci with a new rest length and palette colour,
// jolts its endpoints and clears its tear record.
func (s *Simulation) heal(ci int, now time.Duration) {
	rc := s.cfg.Regen
	rest := s.cfg.Cloth.Spacing * between(s.rng, rc.RestMin, rc.RestMax)
	s.constraints.Reactivate(ci, rest, healColor(s.rng, rc.ScarChance), now)

	c := s.constraints.At(ci)
	strength := between(s.rng, rc.JitterMin, rc.JitterMax)
	s.jitter(c.A, strength)
	s.jitter(c.B, strength)

	s.removeBroken(ci)
	s.stats.Regenerations++

	for _, fn := range s.onRegenerate {
		fn()
	}
}

func (s *Simulation) jitter(e Endpoint, strength float64) {
	p := e.movable(s.particles)
	if p == nil {
		return
	}
	p.Pos = r3.Add(p.Pos, r3.Vec{
		X: (s.rng.Float64() - 0.5) * strength,
		Y: (s.rng.Float64() - 0.5) * strength,
		Z: (s.rng.Float64() - 0.5) * strength,
	})
}

// growScar anchors clusters of filaments to one endpoint of constraint ci.
// Each filament runs from the anchor to a virtual point scattered around a
// nearby free particle; some also get a loop straight to another neighbour.
func (s *Simulation) growScar(ci int, now time.Duration) {
	sc := s.cfg.Scar
	c := s.constraints.At(ci)

	anchor := c.A
	if s.rng.Float64() >= 0.5 {
		anchor = c.B
	}
	anchorPos := anchor.Position(s.particles)

	s.neighbors = s.regenIndex.Query(spatial.BoxAround(anchorPos.X, anchorPos.Y, sc.QuerySize), s.neighbors[:0])
	if len(s.neighbors) < sc.MinNeighbors {
		s.neighbors = s.regenIndex.Query(spatial.BoxAround(anchorPos.X, anchorPos.Y, sc.WideQuerySize), s.neighbors[:0])
	}
	local := s.neighbors
	if len(local) == 0 {
		return
	}

	clusters := intBetween(s.rng, sc.ClustersMin, sc.ClustersMax)
	for k := 0; k < clusters; k++ {
		if s.rng.Float64() >= sc.PartnerChance {
			continue
		}
		pi := local[s.rng.Intn(len(local))]
		if anchor.Is(pi) {
			continue
		}
		partner := s.particles.At(pi)
		if partner.Pinned {
			continue
		}
		if r3.Norm(r3.Sub(partner.Pos, anchorPos)) > s.cfg.Derived.MaxLink {
			continue
		}

		filaments := intBetween(s.rng, sc.FilamentsMin, sc.FilamentsMax)
		for j := 0; j < filaments; j++ {
			stiffness := s.addFilament(anchor, anchorPos, partner.Pos, now)

			if len(local) > 2 && s.rng.Float64() < sc.LoopChance {
				li := local[s.rng.Intn(len(local))]
				if li != pi && !anchor.Is(li) {
					s.addLoop(anchor, anchorPos, li, stiffness, now)
				}
			}
		}
	}
}

// addFilament appends one anchor-to-virtual-point scar and returns the
// stiffness it drew, which a loop from the same filament reuses.
func (s *Simulation) addFilament(anchor Endpoint, anchorPos, around r3.Vec, now time.Duration) float64 {
	sc := s.cfg.Scar

	angle := s.rng.Float64() * 2 * math.Pi
	radius := between(s.rng, sc.RadiusMin, sc.RadiusMax)
	tip := r3.Add(around, r3.Vec{
		X: math.Cos(angle) * radius,
		Y: math.Sin(angle) * radius,
		Z: (s.rng.Float64() - 0.5) * sc.ZJitter,
	})

	color := filamentColor(s.rng, 0.03, 0.10)
	stiffness := between(s.rng, sc.StiffnessMin, sc.StiffnessMax)

	if s.constraints.Append(Constraint{
		A:         anchor,
		B:         Virtual(tip),
		Rest:      r3.Norm(r3.Sub(tip, anchorPos)),
		Stiffness: stiffness,
		Active:    true,
		Color:     freshColor(color),
		Final:     color,
		CreatedAt: now,
		Scarred:   true,
	}) {
		s.stats.Filaments++
	}

	return stiffness
}

func (s *Simulation) addLoop(anchor Endpoint, anchorPos r3.Vec, li int, stiffness float64, now time.Duration) {
	color := filamentColor(s.rng, 0.05, 0.15)
	if s.constraints.Append(Constraint{
		A:         anchor,
		B:         Real(li),
		Rest:      r3.Norm(r3.Sub(s.particles.Position(li), anchorPos)),
		Stiffness: stiffness,
		Active:    true,
		Color:     freshColor(color),
		Final:     color,
		CreatedAt: now,
		Scarred:   true,
	}) {
		s.stats.Loops++
	}
}
