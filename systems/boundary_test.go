package systems

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/spatial/r3"
)

func TestCheckCrossing(t *testing.T) {
	const half = 50.0

	tests := []struct {
		name     string
		prev     r3.Vec
		pos      r3.Vec
		want     bool
		wantAxis int
		wantSign float64
		wantHit  r3.Vec
		wantNorm r3.Vec
	}{
		{
			name:     "positive x face",
			prev:     r3.Vec{X: 49},
			pos:      r3.Vec{X: 51},
			want:     true,
			wantAxis: 0,
			wantSign: 1,
			wantHit:  r3.Vec{X: 50},
			wantNorm: r3.Vec{X: -1},
		},
		{
			name:     "negative x face",
			prev:     r3.Vec{X: -49},
			pos:      r3.Vec{X: -51},
			want:     true,
			wantAxis: 0,
			wantSign: -1,
			wantHit:  r3.Vec{X: -50},
			wantNorm: r3.Vec{X: 1},
		},
		{
			name:     "positive y face keeps other coords",
			prev:     r3.Vec{X: 3, Y: 49.5, Z: -7},
			pos:      r3.Vec{X: 3.2, Y: 50.5, Z: -7.1},
			want:     true,
			wantAxis: 1,
			wantSign: 1,
			wantHit:  r3.Vec{X: 3.2, Y: 50, Z: -7.1},
			wantNorm: r3.Vec{Y: -1},
		},
		{
			name:     "negative z face",
			prev:     r3.Vec{Z: -49.9},
			pos:      r3.Vec{Z: -50.1},
			want:     true,
			wantAxis: 2,
			wantSign: -1,
			wantHit:  r3.Vec{Z: -50},
			wantNorm: r3.Vec{Z: 1},
		},
		{
			name:     "corner crossing resolves to x first",
			prev:     r3.Vec{X: 49, Y: 49},
			pos:      r3.Vec{X: 51, Y: 51},
			want:     true,
			wantAxis: 0,
			wantSign: 1,
			wantHit:  r3.Vec{X: 50, Y: 51},
			wantNorm: r3.Vec{X: -1},
		},
		{
			name: "inside to inside never fires",
			prev: r3.Vec{X: 10},
			pos:  r3.Vec{X: 12},
			want: false,
		},
		{
			name: "outside to outside never fires",
			prev: r3.Vec{X: 55},
			pos:  r3.Vec{X: 60},
			want: false,
		},
		{
			name: "outside to inside never fires",
			prev: r3.Vec{X: 55},
			pos:  r3.Vec{X: 45},
			want: false,
		},
		{
			name: "exactly on the face counts as inside",
			prev: r3.Vec{X: 50},
			pos:  r3.Vec{X: 49},
			want: false,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, fired := CheckCrossing(tc.prev, tc.pos, half)
			if fired != tc.want {
				t.Fatalf("CheckCrossing fired = %v, want %v", fired, tc.want)
			}
			if !fired {
				return
			}
			if got.Axis != tc.wantAxis {
				t.Errorf("Axis = %d, want %d", got.Axis, tc.wantAxis)
			}
			if got.Sign != tc.wantSign {
				t.Errorf("Sign = %v, want %v", got.Sign, tc.wantSign)
			}
			if !vecNear(got.WallHit, tc.wantHit, 1e-9) {
				t.Errorf("WallHit = %v, want %v", got.WallHit, tc.wantHit)
			}
			if !vecNear(got.Normal, tc.wantNorm, 1e-9) {
				t.Errorf("Normal = %v, want %v", got.Normal, tc.wantNorm)
			}
		})
	}
}

func TestCheckCrossingEdgeTriggered(t *testing.T) {
	const half = 50.0

	// A trajectory that leaves the arena and stays outside must fire
	// exactly once, on the frame of exit.
	positions := []r3.Vec{
		{X: 48}, {X: 49.5}, {X: 51}, {X: 53}, {X: 56}, {X: 60},
	}

	fired := 0
	for i := 1; i < len(positions); i++ {
		if _, ok := CheckCrossing(positions[i-1], positions[i], half); ok {
			fired++
		}
	}
	if fired != 1 {
		t.Errorf("crossings fired = %d over outbound trajectory, want 1", fired)
	}
}

func vecNear(a, b r3.Vec, tol float64) bool {
	return math.Abs(a.X-b.X) <= tol && math.Abs(a.Y-b.Y) <= tol && math.Abs(a.Z-b.Z) <= tol
}
