package game

import "math"

// Fast trig approximations for the cosmetic animation paths (wiggle,
// nibble wobble). Collision, steering, and placement use the exact math
// package.

// fastSin approximates sin(x) using a parabola. Accurate to ~0.001 for all x.
func fastSin(x float64) float64 {
	x = wrapToPi(x)
	const pi2 = math.Pi * math.Pi
	y := 4 * x * (math.Pi - absf(x)) / pi2
	// Correction term improves accuracy
	return 0.225*(y*absf(y)-y) + y
}

// fastCos approximates cos(x) using fastSin.
func fastCos(x float64) float64 {
	return fastSin(x + math.Pi/2)
}

func absf(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}
