package feedback

import "math"

// AudioParams are the background track settings for a given tear count.
// They describe the effect chain; producing sound is up to the host.
type AudioParams struct {
	Distortion   float64 // waveshaper amount
	Delay        float64 // seconds
	Cutoff       float64 // low-pass frequency in Hz
	Q            float64
	PlaybackRate float64
}

// Audio maps the tear counter to background track settings. More damage
// means heavier distortion, longer echo, a muffled and slower track.
func Audio(count float64) AudioParams {
	return AudioParams{
		Distortion:   count * 5,
		Delay:        math.Min(0.3, 0.05+count*0.05),
		Cutoff:       math.Max(500, 22050-count*200),
		Q:            1 + count*0.2,
		PlaybackRate: math.Max(0.1, 1-count*0.1),
	}
}

// DistortionCurve fills curve with the waveshaper transfer function for
// amount, sampling inputs evenly over [-1, 1].
func DistortionCurve(amount float64, curve []float64) {
	n := len(curve)
	if n < 2 {
		return
	}
	for i := range curve {
		x := float64(i)*2/float64(n-1) - 1
		curve[i] = (3 + amount) * x * 20 * (math.Pi / 180) / (math.Pi + amount*math.Abs(x))
	}
}
