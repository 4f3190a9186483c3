package systems

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// DefaultCurveSamples is the number of polyline samples per control-point
// pair when fitting a curve.
const DefaultCurveSamples = 8

// minKnotStep keeps the centripetal parameterization finite when
// consecutive control points coincide.
const minKnotStep = 1e-9

// Curve is a smooth centerline fitted through a snake's trail with a
// centripetal Catmull-Rom spline, resampled into a polyline so segment
// placement can look up points by arc length from the head.
//
// The fitted buffers are reused across frames; a Curve is owned by one
// snake and never shared.
type Curve struct {
	pts []r3.Vec  // resampled polyline, head first
	cum []float64 // cumulative arc length at each polyline vertex
}

// NewCurve returns an empty curve.
func NewCurve() *Curve {
	return &Curve{}
}

// Fit rebuilds the curve through the given control points (head first).
// samplesPerSegment controls the resample density; values below 1 use
// DefaultCurveSamples. Fewer than two control points produce a
// zero-length curve.
func (c *Curve) Fit(points []r3.Vec, samplesPerSegment int) {
	if samplesPerSegment < 1 {
		samplesPerSegment = DefaultCurveSamples
	}
	c.pts = c.pts[:0]
	c.cum = c.cum[:0]

	if len(points) == 0 {
		return
	}
	if len(points) == 1 {
		c.pts = append(c.pts, points[0])
		c.cum = append(c.cum, 0)
		return
	}

	c.pts = append(c.pts, points[0])
	for i := 0; i < len(points)-1; i++ {
		p0 := points[max(i-1, 0)]
		p1 := points[i]
		p2 := points[i+1]
		p3 := points[min(i+2, len(points)-1)]
		for s := 1; s <= samplesPerSegment; s++ {
			t := float64(s) / float64(samplesPerSegment)
			c.pts = append(c.pts, catmullRom(p0, p1, p2, p3, t))
		}
	}

	c.cum = append(c.cum, 0)
	for i := 1; i < len(c.pts); i++ {
		c.cum = append(c.cum, c.cum[i-1]+Dist(c.pts[i-1], c.pts[i]))
	}
}

// Length returns the total arc length of the fitted curve.
func (c *Curve) Length() float64 {
	if len(c.cum) == 0 {
		return 0
	}
	return c.cum[len(c.cum)-1]
}

// PointAt returns the point at arc length s from the head. s is clamped
// to [0, Length]; a zero-length curve returns its single point, or the
// origin when the curve is empty. Callers needing placement beyond the
// curve must extrapolate themselves.
func (c *Curve) PointAt(s float64) r3.Vec {
	if len(c.pts) == 0 {
		return r3.Vec{}
	}
	if s <= 0 || c.Length() == 0 {
		return c.pts[0]
	}
	if s >= c.Length() {
		return c.pts[len(c.pts)-1]
	}

	// Binary search for the polyline span containing s.
	lo, hi := 0, len(c.cum)-1
	for lo+1 < hi {
		mid := (lo + hi) / 2
		if c.cum[mid] <= s {
			lo = mid
		} else {
			hi = mid
		}
	}

	span := c.cum[hi] - c.cum[lo]
	if span <= 0 {
		return c.pts[lo]
	}
	t := (s - c.cum[lo]) / span
	return r3.Add(c.pts[lo], r3.Scale(t, r3.Sub(c.pts[hi], c.pts[lo])))
}

// catmullRom evaluates the centripetal Catmull-Rom spline (alpha 0.5)
// between p1 and p2 at parameter t in [0, 1], using the Barry-Goldman
// pyramid. Coincident control points are nudged apart in knot space to
// keep the evaluation finite.
func catmullRom(p0, p1, p2, p3 r3.Vec, t float64) r3.Vec {
	t0 := 0.0
	t1 := t0 + knotStep(p0, p1)
	t2 := t1 + knotStep(p1, p2)
	t3 := t2 + knotStep(p2, p3)

	u := t1 + t*(t2-t1)

	a1 := lerpKnot(p0, p1, t0, t1, u)
	a2 := lerpKnot(p1, p2, t1, t2, u)
	a3 := lerpKnot(p2, p3, t2, t3, u)
	b1 := lerpKnot(a1, a2, t0, t2, u)
	b2 := lerpKnot(a2, a3, t1, t3, u)
	return lerpKnot(b1, b2, t1, t2, u)
}

func knotStep(a, b r3.Vec) float64 {
	step := math.Sqrt(Dist(a, b)) // |b-a|^0.5, the centripetal exponent
	if step < minKnotStep {
		return minKnotStep
	}
	return step
}

func lerpKnot(a, b r3.Vec, ta, tb, u float64) r3.Vec {
	w := (u - ta) / (tb - ta)
	return r3.Add(r3.Scale(1-w, a), r3.Scale(w, b))
}
