package game

import "math"

// wrapToPi wraps an unbounded phase to [-pi, pi]. Unlike a single-step
// correction this handles animation phases that grow with sim time.
func wrapToPi(a float64) float64 {
	a = math.Mod(a+math.Pi, 2*math.Pi)
	if a < 0 {
		a += 2 * math.Pi
	}
	return a - math.Pi
}
