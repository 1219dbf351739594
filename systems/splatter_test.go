package systems

import (
	"math"
	"math/rand"
	"testing"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/stitchmeat/components"
	"github.com/pthm-cable/stitchmeat/config"
)

func newTestSplatter(max int) (*ecs.World, *SplatterSystem) {
	cfg := config.Default().Splatter
	cfg.MaxDecals = max
	w := ecs.NewWorld()
	return w, NewSplatterSystem(w, cfg, rand.New(rand.NewSource(7)))
}

// ---------- Spawn ----------

func TestSplatter_SpawnPlacesOnSurface(t *testing.T) {
	_, s := newTestSplatter(0)
	cfg := s.cfg
	half := float32(cfg.RoomHalfWidth)
	bump := float32(cfg.Bump)
	const eps = 1e-3

	seen := make(map[components.Surface]bool)
	for i := 0; i < 200; i++ {
		s.Spawn(0)
	}

	s.Each(func(pos *components.Position, rot *components.Orientation, splat *components.Splat) {
		seen[rot.Surface] = true

		var onPlane bool
		switch rot.Surface {
		case components.SurfaceBack:
			onPlane = math.Abs(float64(pos.Z-(-half+bump))) < eps
		case components.SurfaceLeft:
			onPlane = math.Abs(float64(pos.X-(-half+bump))) < eps
		case components.SurfaceRight:
			onPlane = math.Abs(float64(pos.X-(half-bump))) < eps
		case components.SurfaceFloor:
			onPlane = math.Abs(float64(pos.Y-(float32(cfg.FloorY)+bump))) < eps
		case components.SurfaceCeiling:
			onPlane = math.Abs(float64(pos.Y-(float32(cfg.CeilingY)-bump))) < eps
		}
		if !onPlane {
			t.Errorf("decal on %v not on its plane: %+v", rot.Surface, *pos)
		}

		if splat.Width < float32(cfg.MinSize) || splat.Width > float32(cfg.MaxSize) {
			t.Errorf("size %f outside [%f, %f]", splat.Width, cfg.MinSize, cfg.MaxSize)
		}
		if splat.Color != splat.Initial {
			t.Error("fresh decal should show its initial colour")
		}
	})

	if len(seen) != components.SurfaceCount {
		t.Errorf("decals landed on %d surfaces, want %d", len(seen), components.SurfaceCount)
	}
}

func TestSplatter_InitialColourIsBrightRed(t *testing.T) {
	_, s := newTestSplatter(0)
	s.Spawn(0)

	s.Each(func(_ *components.Position, _ *components.Orientation, splat *components.Splat) {
		h, sat, l := splat.Initial.Hsl()
		if h > 1e-6 && h < 360-1e-6 {
			t.Errorf("initial hue = %f, want red", h)
		}
		if sat < 0.6-1e-6 || l < 0.4-1e-6 || l > 0.6+1e-6 {
			t.Errorf("initial hsl = (%f, %f, %f)", h, sat, l)
		}
		if _, _, fl := splat.Final.Hsl(); fl > 0.2+1e-6 {
			t.Errorf("final lightness = %f, want <= 0.2", fl)
		}
	})
}

// ---------- Eviction ----------

func TestSplatter_EvictsOldest(t *testing.T) {
	w, s := newTestSplatter(3)

	first := s.Spawn(0)
	for i := 1; i < 5; i++ {
		s.Spawn(float64(i))
	}

	if s.Count() != 3 {
		t.Fatalf("count = %d, want 3", s.Count())
	}
	if w.Alive(first) {
		t.Error("oldest decal still alive")
	}

	var seqs []uint64
	s.Each(func(_ *components.Position, _ *components.Orientation, splat *components.Splat) {
		seqs = append(seqs, splat.Seq)
	})
	for _, seq := range seqs {
		if seq < 2 {
			t.Errorf("decal %d should have been evicted", seq)
		}
	}
}

func TestSplatter_Clear(t *testing.T) {
	_, s := newTestSplatter(0)
	for i := 0; i < 10; i++ {
		s.Spawn(0)
	}
	s.Clear()

	if s.Count() != 0 {
		t.Errorf("count after clear = %d", s.Count())
	}
	n := 0
	s.Each(func(*components.Position, *components.Orientation, *components.Splat) { n++ })
	if n != 0 {
		t.Errorf("%d decals left after clear", n)
	}
}

// ---------- Darkening ----------

func TestSplatter_Darkens(t *testing.T) {
	_, s := newTestSplatter(0)
	s.Spawn(2)

	tests := []struct {
		name string
		now  float64
		want func(splat *components.Splat) bool
	}{
		{"fresh", 2, func(sp *components.Splat) bool { return closeColor(sp.Color, sp.Initial) }},
		{"halfway", 7, func(sp *components.Splat) bool {
			return closeColor(sp.Color, sp.Initial.BlendRgb(sp.Final, 0.5))
		}},
		{"done", 12, func(sp *components.Splat) bool { return closeColor(sp.Color, sp.Final) }},
		{"past done", 100, func(sp *components.Splat) bool { return closeColor(sp.Color, sp.Final) }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s.Update(tt.now)
			s.Each(func(_ *components.Position, _ *components.Orientation, splat *components.Splat) {
				if !tt.want(splat) {
					t.Errorf("colour at %v = %v", tt.now, splat.Color)
				}
			})
		})
	}
}

func closeColor(a, b interface{ RGB255() (uint8, uint8, uint8) }) bool {
	ar, ag, ab := a.RGB255()
	br, bg, bb := b.RGB255()
	return absDiff(ar, br) <= 1 && absDiff(ag, bg) <= 1 && absDiff(ab, bb) <= 1
}

func absDiff(a, b uint8) uint8 {
	if a > b {
		return a - b
	}
	return b - a
}

// ---------- Surface ----------

func TestSurfaceNormalsPointInward(t *testing.T) {
	tests := []struct {
		surface components.Surface
		x, y, z float32
	}{
		{components.SurfaceBack, 0, 0, 1},
		{components.SurfaceLeft, 1, 0, 0},
		{components.SurfaceRight, -1, 0, 0},
		{components.SurfaceFloor, 0, 1, 0},
		{components.SurfaceCeiling, 0, -1, 0},
	}
	for _, tt := range tests {
		t.Run(tt.surface.String(), func(t *testing.T) {
			x, y, z := tt.surface.Normal()
			if x != tt.x || y != tt.y || z != tt.z {
				t.Errorf("normal = (%v, %v, %v), want (%v, %v, %v)", x, y, z, tt.x, tt.y, tt.z)
			}
		})
	}
}
