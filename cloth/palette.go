package cloth

import "github.com/lucasb-eyer/go-colorful"

// hsl builds a colour from hue in turns [0, 1), saturation and lightness.
func hsl(h, s, l float64) colorful.Color {
	return colorful.Hsl(h*360, s, l)
}

// wound is the bright blood red every scar starts from.
var wound = hsl(0, 1, 0.5)

// freshColor is the colour a scar shows when stamped, before it darkens
// toward final.
func freshColor(final colorful.Color) colorful.Color {
	return final.BlendRgb(wound, 0.65).Clamped()
}

// healColor draws the colour of a regenerated constraint: mostly saturated
// dark reds, otherwise a sickly yellow-green.
func healColor(rng Rand, scarChance float64) colorful.Color {
	if rng.Float64() < scarChance {
		return hsl(
			between(rng, 0, 0.03),
			between(rng, 0.85, 1),
			between(rng, 0.2, 0.35),
		)
	}
	return hsl(
		between(rng, 0.11, 0.18),
		between(rng, 0.7, 0.9),
		between(rng, 0.12, 0.27),
	)
}

// filamentColor draws a fully saturated near-black colour of random hue.
func filamentColor(rng Rand, minL, maxL float64) colorful.Color {
	return hsl(rng.Float64(), 1, between(rng, minL, maxL))
}
