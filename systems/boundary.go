package systems

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// Crossing describes one inside-to-outside boundary transition.
type Crossing struct {
	Axis    int     // 0 = x, 1 = y, 2 = z
	Sign    float64 // +1 when the positive face was crossed, -1 otherwise
	WallHit r3.Vec  // head position clamped onto the crossed face
	Normal  r3.Vec  // inward-pointing unit normal of the crossed face
}

// Inside reports whether p lies within the cube of the given half-extent.
func Inside(p r3.Vec, half float64) bool {
	return math.Abs(p.X) <= half && math.Abs(p.Y) <= half && math.Abs(p.Z) <= half
}

// CheckCrossing evaluates one head step against the arena boundary. It
// fires only on an inside-to-outside transition between two consecutive
// samples; staying outside, re-entering, or staying inside never fires.
//
// When several axes are violated in the same step the first in x, y, z
// order wins: corner crossings resolve by this priority, not by distance
// to either face.
func CheckCrossing(prev, pos r3.Vec, half float64) (Crossing, bool) {
	if !Inside(prev, half) || Inside(pos, half) {
		return Crossing{}, false
	}

	for axis := 0; axis < 3; axis++ {
		if math.Abs(component(prev, axis)) > half || math.Abs(component(pos, axis)) <= half {
			continue
		}
		sign := 1.0
		if component(pos, axis) < 0 {
			sign = -1.0
		}
		hit := withComponent(pos, axis, sign*half)
		var normal r3.Vec
		normal = withComponent(normal, axis, -sign)
		return Crossing{Axis: axis, Sign: sign, WallHit: hit, Normal: normal}, true
	}

	// prev inside, pos outside, but no single axis flipped: cannot happen
	// for finite positions, guarded for NaN inputs.
	return Crossing{}, false
}

func component(v r3.Vec, axis int) float64 {
	switch axis {
	case 0:
		return v.X
	case 1:
		return v.Y
	default:
		return v.Z
	}
}

func withComponent(v r3.Vec, axis int, value float64) r3.Vec {
	switch axis {
	case 0:
		v.X = value
	case 1:
		v.Y = value
	default:
		v.Z = value
	}
	return v
}
