package systems

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/spatial/r3"
)

func testSteerParams() SteerParams {
	return SteerParams{
		Half:            50,
		WallBuffer:      2.5,
		SeekGain:        0.08,
		PitchGainFactor: 0.5,
		WallGain:        0.12,
		JitterScale:     0.01,
		EatRadius:       2,
		WanderAmp:       0.02,
		WanderRate:      1.5,
	}
}

func TestSteerSeeksNearestNibble(t *testing.T) {
	in := SteerInput{Pos: r3.Vec{}, Yaw: 0, Pitch: 0}
	nibbles := []r3.Vec{{X: 10}, {Z: 30}}

	out := Steer(in, nibbles, testSteerParams())

	// Bearing to (10,0,0) is yaw pi/2; proportional gain 0.08.
	wantYaw := math.Pi / 2 * 0.08
	if math.Abs(out.Yaw-wantYaw) > 1e-6 {
		t.Errorf("Yaw = %v, want %v", out.Yaw, wantYaw)
	}
	if math.Abs(out.Pitch) > 1e-6 {
		t.Errorf("Pitch = %v, want 0", out.Pitch)
	}
	if out.SpeedFactor != 1 {
		t.Errorf("SpeedFactor = %v, want 1", out.SpeedFactor)
	}
}

func TestSteerPitchUsesHalfGain(t *testing.T) {
	in := SteerInput{}
	nibbles := []r3.Vec{{Y: 5, Z: 5}}

	out := Steer(in, nibbles, testSteerParams())

	wantPitch := math.Pi / 4 * 0.08 * 0.5
	if math.Abs(out.Pitch-wantPitch) > 1e-6 {
		t.Errorf("Pitch = %v, want %v", out.Pitch, wantPitch)
	}
}

func TestSteerSlowsNearNibble(t *testing.T) {
	in := SteerInput{Yaw: 0.3, Pitch: -0.1}
	nibbles := []r3.Vec{{Z: 1.5}}

	out := Steer(in, nibbles, testSteerParams())

	if out.SpeedFactor != 0.5 {
		t.Errorf("SpeedFactor = %v, want 0.5", out.SpeedFactor)
	}
	if math.Abs(out.Yaw-0.3) > 1e-9 || math.Abs(out.Pitch-(-0.1)) > 1e-9 {
		t.Errorf("heading changed while eating: yaw %v pitch %v", out.Yaw, out.Pitch)
	}
}

func TestSteerWandersWithoutNibbles(t *testing.T) {
	p := testSteerParams()

	a := Steer(SteerInput{Time: 1.0}, nil, p)
	b := Steer(SteerInput{Time: 2.0}, nil, p)

	if a.SpeedFactor != 1 || b.SpeedFactor != 1 {
		t.Errorf("SpeedFactor = %v, %v, want full speed while wandering", a.SpeedFactor, b.SpeedFactor)
	}
	if math.Abs(a.Yaw) > p.WanderAmp+1e-9 {
		t.Errorf("wander |yaw| = %v exceeds amplitude %v", math.Abs(a.Yaw), p.WanderAmp)
	}
	if a.Yaw == b.Yaw {
		t.Error("wander yaw identical at different times, expected oscillation")
	}
}

func TestSteerWallAvoidance(t *testing.T) {
	p := testSteerParams()
	p.WanderAmp = 0 // isolate the wall response

	tests := []struct {
		name      string
		pos       r3.Vec
		wantPos   r3.Vec
		wantYaw   float64
		wantPitch float64
	}{
		{
			name:    "positive x face",
			pos:     r3.Vec{X: 48.5},
			wantPos: r3.Vec{X: 47.5},
			wantYaw: -math.Pi / 2 * 0.12,
		},
		{
			name:      "top face pitches down without yaw",
			pos:       r3.Vec{Y: 48.5},
			wantPos:   r3.Vec{Y: 47.5},
			wantYaw:   0,
			wantPitch: -math.Pi / 2 * 0.12,
		},
		{
			name:    "corner combines axes",
			pos:     r3.Vec{X: 48.5, Z: 48.5},
			wantPos: r3.Vec{X: 47.5, Z: 47.5},
			wantYaw: -3 * math.Pi / 4 * 0.12,
		},
		{
			name:    "inside the band untouched",
			pos:     r3.Vec{X: 47.0},
			wantPos: r3.Vec{X: 47.0},
			wantYaw: 0,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			out := Steer(SteerInput{Pos: tc.pos}, nil, p)
			if !vecNear(out.Pos, tc.wantPos, 1e-9) {
				t.Errorf("Pos = %v, want %v", out.Pos, tc.wantPos)
			}
			if math.Abs(out.Yaw-tc.wantYaw) > 1e-6 {
				t.Errorf("Yaw = %v, want %v", out.Yaw, tc.wantYaw)
			}
			if math.Abs(out.Pitch-tc.wantPitch) > 1e-6 {
				t.Errorf("Pitch = %v, want %v", out.Pitch, tc.wantPitch)
			}
		})
	}
}

func TestSteerReflectionPhaseIgnoresNibbles(t *testing.T) {
	in := SteerInput{
		Reflecting: true,
		TargetDir:  r3.Vec{X: -1},
	}
	nibbles := []r3.Vec{{X: 30}} // would pull yaw positive if seeking

	out := Steer(in, nibbles, testSteerParams())

	wantYaw := -math.Pi / 2 * 0.08
	if math.Abs(out.Yaw-wantYaw) > 1e-6 {
		t.Errorf("Yaw = %v, want %v (toward reflected direction)", out.Yaw, wantYaw)
	}
}

func TestNearestNibble(t *testing.T) {
	tests := []struct {
		name     string
		pos      r3.Vec
		nibbles  []r3.Vec
		wantIdx  int
		wantDist float64
	}{
		{
			name:    "empty set",
			nibbles: nil,
			wantIdx: -1, wantDist: math.Inf(1),
		},
		{
			name:    "picks closest",
			pos:     r3.Vec{},
			nibbles: []r3.Vec{{X: 5}, {X: 2}, {X: 9}},
			wantIdx: 1, wantDist: 2,
		},
		{
			name:    "tie keeps the first",
			pos:     r3.Vec{},
			nibbles: []r3.Vec{{X: 3}, {X: -3}},
			wantIdx: 0, wantDist: 3,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			idx, dist := NearestNibble(tc.pos, tc.nibbles)
			if idx != tc.wantIdx {
				t.Errorf("idx = %d, want %d", idx, tc.wantIdx)
			}
			if !math.IsInf(tc.wantDist, 1) && math.Abs(dist-tc.wantDist) > 1e-9 {
				t.Errorf("dist = %v, want %v", dist, tc.wantDist)
			}
			if math.IsInf(tc.wantDist, 1) && !math.IsInf(dist, 1) {
				t.Errorf("dist = %v, want +Inf", dist)
			}
		})
	}
}
