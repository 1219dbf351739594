// Package systems holds the ECS systems that run alongside the cloth.
package systems

import (
	"math"
	"math/rand"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/stitchmeat/components"
	"github.com/pthm-cable/stitchmeat/config"
)

// SplatterSystem spawns a blood decal on a random room surface for every
// tear and darkens decals as they age. The oldest decal is evicted once
// the configured maximum is reached.
type SplatterSystem struct {
	cfg config.SplatterConfig
	rng *rand.Rand

	world  *ecs.World
	mapper *ecs.Map3[components.Position, components.Orientation, components.Splat]
	filter *ecs.Filter3[components.Position, components.Orientation, components.Splat]

	nextSeq uint64
	count   int
}

// NewSplatterSystem creates a new splatter system.
func NewSplatterSystem(w *ecs.World, cfg config.SplatterConfig, rng *rand.Rand) *SplatterSystem {
	return &SplatterSystem{
		cfg:    cfg,
		rng:    rng,
		world:  w,
		mapper: ecs.NewMap3[components.Position, components.Orientation, components.Splat](w),
		filter: ecs.NewFilter3[components.Position, components.Orientation, components.Splat](w),
	}
}

// Count returns the number of live decals.
func (s *SplatterSystem) Count() int {
	return s.count
}

// Spawn places one decal at game time now and returns its entity.
func (s *SplatterSystem) Spawn(now float64) ecs.Entity {
	if s.cfg.MaxDecals > 0 && s.count >= s.cfg.MaxDecals {
		s.evictOldest()
	}

	pos, rot := s.place(components.Surface(s.rng.Intn(components.SurfaceCount)))

	initial := colorful.Hsl(0, s.randFloat(0.6, 1), s.randFloat(0.4, 0.6))
	size := float32(s.randFloat(s.cfg.MinSize, s.cfg.MaxSize))
	splat := components.Splat{
		Width:     size,
		Height:    size,
		Opacity:   float32(s.randFloat(0.95, 1)),
		Initial:   initial,
		Final:     colorful.Hsl(0, s.randFloat(0.6, 1), s.randFloat(0.05, 0.2)),
		Color:     initial,
		SpawnedAt: now,
		Seq:       s.nextSeq,
	}
	s.nextSeq++

	e := s.mapper.NewEntity(&pos, &rot, &splat)
	s.count++
	return e
}

// place picks a position on surface and the rotation that lays the decal flat on it.
func (s *SplatterSystem) place(surface components.Surface) (components.Position, components.Orientation) {
	cfg := s.cfg
	spread := func() float32 { return float32(s.randFloat(-cfg.Spread/2, cfg.Spread/2)) }
	wallY := func() float32 { return float32(s.randFloat(cfg.WallMinY, cfg.WallMaxY)) }
	half := float32(cfg.RoomHalfWidth)
	bump := float32(cfg.Bump)

	var pos components.Position
	rot := components.Orientation{Surface: surface}

	switch surface {
	case components.SurfaceBack:
		pos = components.Position{X: spread(), Y: wallY(), Z: -half + bump}
	case components.SurfaceLeft:
		pos = components.Position{X: -half + bump, Y: wallY(), Z: spread()}
		rot.RY = math.Pi / 2
	case components.SurfaceRight:
		pos = components.Position{X: half - bump, Y: wallY(), Z: spread()}
		rot.RY = -math.Pi / 2
	case components.SurfaceFloor:
		pos = components.Position{X: spread(), Y: float32(cfg.FloorY) + bump, Z: spread()}
		rot.RX = -math.Pi / 2
	default:
		pos = components.Position{X: spread(), Y: float32(cfg.CeilingY) - bump, Z: spread()}
		rot.RX = math.Pi / 2
	}

	rot.RZ = float32(s.rng.Float64() * 2 * math.Pi)
	rot.RX += float32(s.randFloat(-0.05, 0.05))
	rot.RY += float32(s.randFloat(-0.05, 0.05))
	return pos, rot
}

// Update darkens every decal toward its final colour.
func (s *SplatterSystem) Update(now float64) {
	darken := s.cfg.DarkenSeconds

	query := s.filter.Query()
	for query.Next() {
		_, _, splat := query.Get()

		t := 1.0
		if darken > 0 {
			t = math.Min((now-splat.SpawnedAt)/darken, 1)
		}
		if t < 0 {
			t = 0
		}
		splat.Color = splat.Initial.BlendRgb(splat.Final, t).Clamped()
	}
}

// Each calls fn for every live decal.
func (s *SplatterSystem) Each(fn func(pos *components.Position, rot *components.Orientation, splat *components.Splat)) {
	query := s.filter.Query()
	for query.Next() {
		fn(query.Get())
	}
}

// evictOldest removes the decal with the lowest spawn sequence.
func (s *SplatterSystem) evictOldest() {
	var oldest ecs.Entity
	found := false
	minSeq := uint64(math.MaxUint64)

	query := s.filter.Query()
	for query.Next() {
		_, _, splat := query.Get()
		if splat.Seq < minSeq {
			minSeq = splat.Seq
			oldest = query.Entity()
			found = true
		}
	}

	if found {
		s.world.RemoveEntity(oldest)
		s.count--
	}
}

// Clear removes every decal.
func (s *SplatterSystem) Clear() {
	var toRemove []ecs.Entity
	query := s.filter.Query()
	for query.Next() {
		toRemove = append(toRemove, query.Entity())
	}
	for _, e := range toRemove {
		s.world.RemoveEntity(e)
	}
	s.count = 0
}

func (s *SplatterSystem) randFloat(lo, hi float64) float64 {
	return lo + s.rng.Float64()*(hi-lo)
}
