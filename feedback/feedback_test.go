package feedback

import (
	"math"
	"testing"

	"github.com/pthm-cable/stitchmeat/config"
)

// seqRand returns the queued values in order, then repeats the last one.
type seqRand struct {
	vals []float64
}

func (r *seqRand) Float64() float64 {
	v := r.vals[0]
	if len(r.vals) > 1 {
		r.vals = r.vals[1:]
	}
	return v
}

func TestFlickerIdleWithoutTears(t *testing.T) {
	cfg := config.Default().Feedback
	f := NewFlicker(cfg, &seqRand{vals: []float64{0}})

	for i := 0; i < 100; i++ {
		if got := f.Update(float64(i)*0.1, 0); got != cfg.BaseIntensity {
			t.Fatalf("intensity = %f at tick %d, want base", got, i)
		}
	}
	if f.Active() {
		t.Error("flicker started with zero tears")
	}
}

func TestFlickerCycle(t *testing.T) {
	cfg := config.Default().Feedback
	// start draw, duration draw (0.5 -> 0.2s), gap draw
	f := NewFlicker(cfg, &seqRand{vals: []float64{0, 0.5, 0.5}})
	count := 0.2

	if got := f.Update(1, count); math.Abs(got-cfg.BaseIntensity*0.2) > 1e-9 {
		t.Errorf("intensity at start = %f, want %f", got, cfg.BaseIntensity*0.2)
	}
	if !f.Active() {
		t.Fatal("flicker did not start")
	}

	wantNext := 1 + 0.5*(cfg.FlickerGap/count) + cfg.FlickerMinGap/count
	if math.Abs(f.NextCheck()-wantNext) > 1e-12 {
		t.Errorf("next check = %f, want %f", f.NextCheck(), wantNext)
	}

	// Halfway through the 0.2s flicker the factor peaks at 1.2.
	if got := f.Update(1.1, count); math.Abs(got-cfg.BaseIntensity*1.2) > 1e-9 {
		t.Errorf("intensity mid-flicker = %f, want %f", got, cfg.BaseIntensity*1.2)
	}

	if got := f.Update(1.25, count); got != cfg.BaseIntensity {
		t.Errorf("intensity after flicker = %f, want base", got)
	}
	if f.Active() {
		t.Error("flicker still active after its duration")
	}
}

func TestFlickerProbabilityScalesWithCount(t *testing.T) {
	cfg := config.Default().Feedback

	tests := []struct {
		name   string
		draw   float64
		count  float64
		starts bool
	}{
		{"low count misses", 0.5, 0.2, false},
		{"saturated count hits", 0.99, 100, true},
		{"draw under probability", 0.01, 0.2, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := NewFlicker(cfg, &seqRand{vals: []float64{tt.draw, 0.5}})
			f.Update(1, tt.count)
			if f.Active() != tt.starts {
				t.Errorf("active = %v, want %v", f.Active(), tt.starts)
			}
		})
	}
}

func TestFlickerWaitsForNextCheck(t *testing.T) {
	cfg := config.Default().Feedback
	rng := &seqRand{vals: []float64{0.9, 0.5}}
	f := NewFlicker(cfg, rng)

	f.Update(1, 0.2)
	next := f.NextCheck()

	// A guaranteed hit is ignored until the check time passes.
	rng.vals = []float64{0}
	f.Update(next, 0.2)
	if f.Active() {
		t.Error("flicker drawn before the next check time")
	}
	f.Update(next+0.001, 0.2)
	if !f.Active() {
		t.Error("flicker not drawn after the next check time")
	}
}

func TestAudio(t *testing.T) {
	tests := []struct {
		name  string
		count float64
		want  AudioParams
	}{
		{"clean", 0, AudioParams{Distortion: 0, Delay: 0.05, Cutoff: 22050, Q: 1, PlaybackRate: 1}},
		{"damaged", 2, AudioParams{Distortion: 10, Delay: 0.15, Cutoff: 21650, Q: 1.4, PlaybackRate: 0.8}},
		{"wrecked", 200, AudioParams{Distortion: 1000, Delay: 0.3, Cutoff: 500, Q: 41, PlaybackRate: 0.1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Audio(tt.count)
			pairs := [][2]float64{
				{got.Distortion, tt.want.Distortion},
				{got.Delay, tt.want.Delay},
				{got.Cutoff, tt.want.Cutoff},
				{got.Q, tt.want.Q},
				{got.PlaybackRate, tt.want.PlaybackRate},
			}
			for _, p := range pairs {
				if math.Abs(p[0]-p[1]) > 1e-9 {
					t.Errorf("Audio(%v) = %+v, want %+v", tt.count, got, tt.want)
					break
				}
			}
		})
	}
}

func TestDistortionCurve(t *testing.T) {
	curve := make([]float64, 101)
	DistortionCurve(0, curve)

	if math.Abs(curve[50]) > 1e-12 {
		t.Errorf("curve at zero input = %g, want 0", curve[50])
	}
	if math.Abs(curve[0]+curve[100]) > 1e-12 {
		t.Errorf("curve not odd: %g vs %g", curve[0], curve[100])
	}
	for i := 1; i < len(curve); i++ {
		if curve[i] < curve[i-1] {
			t.Fatalf("curve not monotonic at %d", i)
		}
	}
}
