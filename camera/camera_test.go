package camera

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/pthm-cable/stitchmeat/config"
)

func testCamera() *Camera {
	return New(config.Default().Camera, 1280, 720)
}

func TestNew(t *testing.T) {
	cam := testCamera()

	if cam.Position != (r3.Vec{X: 0, Y: -5, Z: 100}) {
		t.Errorf("position = %v", cam.Position)
	}
	if math.Abs(cam.Aspect()-1280.0/720.0) > 1e-12 {
		t.Errorf("aspect = %f", cam.Aspect())
	}
}

func TestCenterRayHitsTarget(t *testing.T) {
	cam := testCamera()

	ray := cam.Ray(640, 360)
	if d := ray.DistanceTo(cam.Target); d > 1e-9 {
		t.Errorf("center ray misses target by %g", d)
	}
	if ray.Origin != cam.Position {
		t.Errorf("ray origin = %v, want camera position", ray.Origin)
	}
}

func TestScreenToWorldRoundtrip(t *testing.T) {
	cam := testCamera()

	testCases := []struct{ sx, sy float64 }{
		{640, 360},  // center
		{100, 100},  // top-left
		{1200, 600}, // near bottom-right
		{0, 720},    // corner
	}

	for _, tc := range testCases {
		ray := cam.Ray(tc.sx, tc.sy)
		p := r3.Add(ray.Origin, r3.Scale(80, ray.Dir))

		sx, sy, ok := cam.WorldToScreen(p)
		if !ok {
			t.Fatalf("point along ray (%f,%f) not in front of camera", tc.sx, tc.sy)
		}
		if math.Abs(sx-tc.sx) > 1e-6 || math.Abs(sy-tc.sy) > 1e-6 {
			t.Errorf("roundtrip failed: (%f,%f) -> %v -> (%f,%f)", tc.sx, tc.sy, p, sx, sy)
		}
	}
}

func TestScreenOrientation(t *testing.T) {
	cam := testCamera()

	left := cam.Ray(0, 360).Dir
	right := cam.Ray(1280, 360).Dir
	if left.X >= 0 || right.X <= 0 {
		t.Errorf("expected left ray toward -X and right ray toward +X, got %v and %v", left, right)
	}

	top := cam.Ray(640, 0).Dir
	bottom := cam.Ray(640, 720).Dir
	if top.Y <= bottom.Y {
		t.Errorf("expected top ray above bottom ray, got %v and %v", top, bottom)
	}
}

func TestBehindCamera(t *testing.T) {
	cam := testCamera()
	if _, _, ok := cam.WorldToScreen(r3.Vec{Z: 200}); ok {
		t.Error("point behind camera reported visible")
	}
}

func TestResize(t *testing.T) {
	cam := testCamera()
	cam.Resize(800, 800)

	if cam.Aspect() != 1 {
		t.Errorf("aspect = %f, want 1", cam.Aspect())
	}
	if d := cam.Ray(400, 400).DistanceTo(cam.Target); d > 1e-9 {
		t.Errorf("center ray misses target after resize by %g", d)
	}
}

func TestDolly(t *testing.T) {
	cam := testCamera()
	start := r3.Norm(r3.Sub(cam.Position, cam.Target))

	cam.Dolly(10, 1)
	if got := r3.Norm(r3.Sub(cam.Position, cam.Target)); math.Abs(got-(start-10)) > 1e-9 {
		t.Errorf("distance after dolly = %f, want %f", got, start-10)
	}

	cam.Dolly(1e6, 5)
	if got := r3.Norm(r3.Sub(cam.Position, cam.Target)); math.Abs(got-5) > 1e-9 {
		t.Errorf("distance after clamped dolly = %f, want 5", got)
	}
}
