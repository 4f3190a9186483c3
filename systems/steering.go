package systems

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// MaxPitch keeps steered snakes from flipping over the vertical. Player
// input clamps to the same limit.
const MaxPitch = 1.4

// SteerInput carries everything steering reads for one shadow snake.
// Jitter is pre-drawn by the caller so the computation itself is pure and
// safe to run on a worker.
type SteerInput struct {
	Pos        r3.Vec
	Yaw        float64
	Pitch      float64
	Time       float64 // sim seconds, drives idle wander
	Jitter     float64 // pre-drawn uniform value in [-1, 1]
	Reflecting bool    // still in the post-spawn reflection phase
	TargetDir  r3.Vec  // reflected escape direction, read while Reflecting
}

// SteerParams are the steering gains, read fresh from config each frame.
type SteerParams struct {
	Half            float64 // arena half-extent
	WallBuffer      float64 // safe band inset from each face
	SeekGain        float64 // proportional yaw gain toward a nibble
	PitchGainFactor float64 // pitch gain as a fraction of SeekGain
	WallGain        float64 // yaw/pitch gain toward the inward normal
	JitterScale     float64 // yaw jitter amplitude while seeking
	EatRadius       float64 // nearest nibble closer than this slows the snake
	WanderAmp       float64 // idle yaw oscillation amplitude
	WanderRate      float64 // idle yaw oscillation frequency
}

// SteerOutput is the steering result applied by the orchestrator.
type SteerOutput struct {
	Yaw         float64
	Pitch       float64
	SpeedFactor float64 // 1 at full speed, 0.5 when preparing to eat
	Pos         r3.Vec  // input position, clamped into the wall-safe band
}

// Steer computes one frame of shadow-snake steering: nibble seeking (or
// course-holding during the reflection phase), then wall avoidance. Both
// only nudge orientation, so they compose on the same frame; the new
// heading takes effect at the next frame's advance.
func Steer(in SteerInput, nibbles []r3.Vec, p SteerParams) SteerOutput {
	out := SteerOutput{Yaw: in.Yaw, Pitch: in.Pitch, SpeedFactor: 1, Pos: in.Pos}

	switch {
	case in.Reflecting:
		steerToward(&out, in.TargetDir, p.SeekGain, p.SeekGain*p.PitchGainFactor)

	default:
		idx, dist := NearestNibble(in.Pos, nibbles)
		switch {
		case idx < 0:
			// Nothing to chase: gentle yaw wander at full speed.
			out.Yaw += math.Sin(in.Time*p.WanderRate+in.Jitter*math.Pi) * p.WanderAmp

		case dist <= p.EatRadius:
			// Close enough to eat: hold course and slow down.
			out.SpeedFactor = 0.5

		default:
			target := nibbles[idx]
			out.Yaw += WrapAngle(YawTo(in.Pos, target)-out.Yaw) * p.SeekGain
			out.Yaw += in.Jitter * p.JitterScale
			out.Pitch += (PitchTo(in.Pos, target) - out.Pitch) * p.SeekGain * p.PitchGainFactor
		}
	}

	applyWallAvoidance(&out, p)

	out.Yaw = WrapAngle(out.Yaw)
	out.Pitch = Clamp(out.Pitch, -MaxPitch, MaxPitch)
	return out
}

// steerToward nudges yaw and pitch proportionally toward dir. A pure
// vertical dir has no defined yaw, so only pitch moves in that case.
func steerToward(out *SteerOutput, dir r3.Vec, yawGain, pitchGain float64) {
	if dir.X != 0 || dir.Z != 0 {
		out.Yaw += WrapAngle(YawOf(dir)-out.Yaw) * yawGain
	}
	out.Pitch += (PitchOf(dir) - out.Pitch) * pitchGain
}

// NearestNibble returns the index and distance of the nibble closest to
// pos, or (-1, +Inf) when the set is empty. Linear scan over the full set.
func NearestNibble(pos r3.Vec, nibbles []r3.Vec) (int, float64) {
	best := -1
	bestDist := math.Inf(1)
	for i, n := range nibbles {
		if d := Dist(pos, n); d < bestDist {
			best = i
			bestDist = d
		}
	}
	return best, bestDist
}

// applyWallAvoidance clamps the position into the safe band on every
// violated axis and steers toward the summed inward normal.
func applyWallAvoidance(out *SteerOutput, p SteerParams) {
	band := p.Half - p.WallBuffer
	var inward r3.Vec
	violated := false

	for axis := 0; axis < 3; axis++ {
		v := component(out.Pos, axis)
		if math.Abs(v) <= band {
			continue
		}
		violated = true
		sign := 1.0
		if v < 0 {
			sign = -1.0
		}
		out.Pos = withComponent(out.Pos, axis, sign*band)
		inward = withComponent(inward, axis, component(inward, axis)-sign)
	}
	if !violated {
		return
	}

	// A pure vertical normal has no yaw; leave yaw alone in that case.
	if inward.X != 0 || inward.Z != 0 {
		out.Yaw += WrapAngle(YawOf(inward)-out.Yaw) * p.WallGain
	}
	out.Pitch += (PitchOf(inward) - out.Pitch) * p.WallGain
}
