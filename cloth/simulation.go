// Package cloth implements the tearable cloth: Verlet particles joined by
// distance constraints, a pointer-driven tear detector, and a timed
// regeneration pass that heals tears and grows scar filaments around them.
//
// A Simulation is not safe for concurrent use. The host drives it from one
// goroutine through three entry points that may interleave freely between
// frames: Step (per frame), Probe/PointerMove (per pointer event) and
// Advance (regeneration clock).
package cloth

import (
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/lucasb-eyer/go-colorful"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/pthm-cable/stitchmeat/config"
	"github.com/pthm-cable/stitchmeat/spatial"
)

// Segment is one active constraint as the renderer sees it.
type Segment struct {
	A, B       r3.Vec
	Color      colorful.Color
	FinalColor colorful.Color
	Age        float64 // seconds since the constraint was stamped
	Scarred    bool    // healed tear or grown scar, as opposed to untouched cloth
}

// ColorAt returns the displayed colour: Color blended toward FinalColor as
// Age approaches fadeSeconds.
func (seg Segment) ColorAt(fadeSeconds float64) colorful.Color {
	if !seg.Scarred || fadeSeconds <= 0 {
		return seg.FinalColor
	}
	t := math.Min(seg.Age/fadeSeconds, 1)
	return seg.Color.BlendRgb(seg.FinalColor, t).Clamped()
}

// Snapshot is the render-ready output of a frame. Segments is reused by the
// next Step; copy it to keep it.
type Snapshot struct {
	Time     time.Duration
	Segments []Segment
	Indexed  int // particles inside the frame index bounds
}

// Stats holds cumulative event counters.
type Stats struct {
	Tears         int
	Regenerations int
	StretchSkips  int
	Filaments     int
	Loops         int
	Dropped       int // appends refused by the constraint limit
	RegenTicks    int // regeneration runs that found eligible tears
}

// Simulation owns the particle store, constraint table and tear state.
type Simulation struct {
	cfg     *config.Config
	rng     Rand
	gravity r3.Vec
	now     time.Duration

	particles   *Particles
	constraints *Constraints

	broken    []Broken
	brokenSet map[int]struct{}
	tearCount float64

	pointer bool
	ray     Ray

	frameIndex *spatial.Quadtree
	regenIndex *spatial.Quadtree
	eligible   []int
	neighbors  []int

	regenTask    *Task
	onTear       []func(pos r3.Vec)
	onRegenerate []func()

	segments []Segment
	stats    Stats
}

// New builds the cloth grid described by cfg and starts the regeneration
// clock at time zero. All randomness, including pinning, comes from rng.
func New(cfg *config.Config, rng Rand) *Simulation {
	if rng == nil {
		panic("cloth: nil random source")
	}
	if cfg.Cloth.Width < 1 || cfg.Cloth.Height < 1 {
		panic(fmt.Sprintf("cloth: invalid grid %dx%d", cfg.Cloth.Width, cfg.Cloth.Height))
	}

	s := &Simulation{
		cfg:         cfg,
		rng:         rng,
		gravity:     r3.Vec{X: cfg.Physics.Gravity[0], Y: cfg.Physics.Gravity[1], Z: cfg.Physics.Gravity[2]},
		particles:   NewParticles(cfg.Derived.ParticleCount),
		constraints: NewConstraints(cfg.Scar.MaxConstraints),
		brokenSet:   make(map[int]struct{}),
		frameIndex:  newIndex(cfg.Spatial.FrameBounds, cfg.Spatial),
		regenIndex:  newIndex(cfg.Spatial.RegenBounds, cfg.Spatial),
	}

	pinned := s.buildGrid()
	s.regenTask = NewTask(0, s.regenInterval, func(at time.Duration) {
		s.Regenerate(at)
	})

	slog.Info("cloth built",
		"particles", s.particles.Len(),
		"constraints", s.constraints.Len(),
		"limit", s.constraints.Limit(),
		"pinned", pinned,
	)

	return s
}

func newIndex(b config.Bounds, sc config.SpatialConfig) *spatial.Quadtree {
	return spatial.NewQuadtree(spatial.Box{X: b.X, Y: b.Y, W: b.W, H: b.H}, sc.Capacity, sc.MaxDepth)
}

// buildGrid lays out the tapered particle grid, pins particles near the
// attractors and links grid neighbours. Returns the pinned count.
func (s *Simulation) buildGrid() int {
	cc := s.cfg.Cloth
	w, h := cc.Width, cc.Height
	offsetY := float64(h)*cc.Spacing/2 + cc.OffsetY
	radiusSq := cc.AttractorRadius * cc.AttractorRadius
	pinned := 0

	index := 0
	for y := 0; y <= h; y++ {
		yRatio := float64(y) / float64(h)
		for x := 0; x <= w; x++ {
			xTaper := (float64(x)/float64(w) - 0.5) * cc.Spacing * float64(w)
			pos := r3.Vec{
				X: xTaper * (1 + yRatio*cc.Taper),
				Y: -float64(y)*cc.Spacing + offsetY,
			}
			s.particles.Place(index, pos, cc.Damping)

			for _, a := range cc.Attractors {
				dx := float64(x - a.X)
				dy := float64(y - a.Y)
				distSq := dx*dx + dy*dy
				if distSq < radiusSq && s.rng.Float64() > math.Sqrt(distSq)/cc.AttractorRadius {
					s.particles.Pin(index)
					pinned++
					break
				}
			}

			if x > 0 {
				s.link(index-1, index)
			}
			if y > 0 {
				s.link(index-(w+1), index)
			}
			index++
		}
	}

	return pinned
}

func (s *Simulation) link(a, b int) {
	s.constraints.Append(Constraint{
		A:         Real(a),
		B:         Real(b),
		Rest:      s.cfg.Cloth.Spacing,
		Stiffness: s.cfg.Cloth.Stiffness,
		Active:    true,
	})
}

// OnTear registers fn to be called once per newly torn constraint with the
// constraint's midpoint.
func (s *Simulation) OnTear(fn func(pos r3.Vec)) {
	s.onTear = append(s.onTear, fn)
}

// OnRegenerate registers fn to be called once per healed constraint.
func (s *Simulation) OnRegenerate(fn func()) {
	s.onRegenerate = append(s.onRegenerate, fn)
}

// Step advances one frame: integrate, relax, reindex, then snapshot.
func (s *Simulation) Step(now time.Duration) Snapshot {
	s.advanceClock(now)

	s.particles.Integrate(s.gravity)
	s.constraints.Relax(s.particles, s.cfg.Physics.Iterations, s.cfg.Physics.Epsilon)
	s.reindex(s.frameIndex)

	return s.snapshot()
}

func (s *Simulation) snapshot() Snapshot {
	s.segments = s.segments[:0]
	for i := 0; i < s.constraints.Len(); i++ {
		c := s.constraints.At(i)
		if !c.Active {
			continue
		}
		s.segments = append(s.segments, Segment{
			A:          c.A.Position(s.particles),
			B:          c.B.Position(s.particles),
			Color:      c.Color,
			FinalColor: c.FinalColor(),
			Age:        c.Age(s.now),
			Scarred:    c.Scarred,
		})
	}

	return Snapshot{
		Time:     s.now,
		Segments: s.segments,
		Indexed:  s.frameIndex.Len(),
	}
}

// reindex rebuilds q from the current particle positions.
func (s *Simulation) reindex(q *spatial.Quadtree) {
	q.Clear()
	for i := range s.particles.items {
		p := &s.particles.items[i]
		q.Insert(i, p.Pos.X, p.Pos.Y)
	}
}

// Query appends the particles inside box, as of the last Step, to dst.
func (s *Simulation) Query(box spatial.Box, dst []int) []int {
	return s.frameIndex.Query(box, dst)
}

// Advance runs every regeneration pass due up to now.
func (s *Simulation) Advance(now time.Duration) int {
	runs := s.regenTask.Advance(now)
	s.advanceClock(now)
	return runs
}

// NextRegeneration returns when the next regeneration pass is due.
func (s *Simulation) NextRegeneration() time.Duration {
	return s.regenTask.Next()
}

// Close stops the regeneration clock. Step and Probe keep working.
func (s *Simulation) Close() {
	s.regenTask.Stop()
}

func (s *Simulation) regenInterval() time.Duration {
	return durationBetween(s.rng, s.cfg.Regen.IntervalMin, s.cfg.Regen.IntervalMax)
}

func (s *Simulation) advanceClock(now time.Duration) {
	if now > s.now {
		s.now = now
	}
}

// Now returns the latest time seen by Step, Advance or Regenerate.
func (s *Simulation) Now() time.Duration {
	return s.now
}

// TearCount returns the monotonic damage counter.
func (s *Simulation) TearCount() float64 {
	return s.tearCount
}

// Stats returns the cumulative event counters.
func (s *Simulation) Stats() Stats {
	st := s.stats
	st.Dropped = s.constraints.Dropped()
	return st
}

// Particles returns the particle store.
func (s *Simulation) Particles() *Particles {
	return s.particles
}

// Constraints returns the constraint table.
func (s *Simulation) Constraints() *Constraints {
	return s.constraints
}

// Broken returns the outstanding tear records. The slice is owned by the
// simulation and only valid until the next mutation.
func (s *Simulation) Broken() []Broken {
	return s.broken
}

// IsBroken reports whether constraint i has an outstanding tear record.
func (s *Simulation) IsBroken(i int) bool {
	_, ok := s.brokenSet[i]
	return ok
}
