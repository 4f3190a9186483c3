package systems

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// Clamp functions for common value ranges

// Clamp clamps v between lo and hi.
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Angle normalization

// WrapAngle wraps an angle to [-Pi, Pi].
func WrapAngle(a float64) float64 {
	for a > math.Pi {
		a -= 2 * math.Pi
	}
	for a < -math.Pi {
		a += 2 * math.Pi
	}
	return a
}

// Heading conversions. Yaw rotates about +Y with yaw 0 facing +Z;
// pitch tilts toward +Y. All angles in radians.

// Forward converts a yaw/pitch pair to a unit direction vector.
func Forward(yaw, pitch float64) r3.Vec {
	cp := math.Cos(pitch)
	return r3.Vec{
		X: cp * math.Sin(yaw),
		Y: math.Sin(pitch),
		Z: cp * math.Cos(yaw),
	}
}

// YawOf returns the yaw of a direction vector.
func YawOf(dir r3.Vec) float64 {
	return math.Atan2(dir.X, dir.Z)
}

// PitchOf returns the pitch of a direction vector.
func PitchOf(dir r3.Vec) float64 {
	h := math.Hypot(dir.X, dir.Z)
	return math.Atan2(dir.Y, h)
}

// YawTo returns the yaw of the bearing from one point to another.
func YawTo(from, to r3.Vec) float64 {
	return math.Atan2(to.X-from.X, to.Z-from.Z)
}

// PitchTo returns the pitch of the bearing from one point to another.
func PitchTo(from, to r3.Vec) float64 {
	d := r3.Sub(to, from)
	h := math.Hypot(d.X, d.Z)
	return math.Atan2(d.Y, h)
}

// Distance functions

// Dist returns the Euclidean distance between two points.
func Dist(a, b r3.Vec) float64 {
	return r3.Norm(r3.Sub(a, b))
}

// DistSq returns the squared distance between two points.
func DistSq(a, b r3.Vec) float64 {
	return r3.Norm2(r3.Sub(a, b))
}

// Reflect mirrors direction d across the plane with unit normal n.
func Reflect(d, n r3.Vec) r3.Vec {
	return r3.Sub(d, r3.Scale(2*r3.Dot(d, n), n))
}
