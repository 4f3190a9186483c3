package traits

import (
	"math/rand"
	"testing"
)

func TestTraitSetOperations(t *testing.T) {
	var set Trait

	set = set.Add(Greedy).Add(Erratic)
	if !set.Has(Greedy) || !set.Has(Erratic) {
		t.Errorf("set = %v, want Greedy and Erratic present", set)
	}
	if set.Has(Timid) {
		t.Errorf("set = %v, Timid should be absent", set)
	}

	set = set.Remove(Greedy)
	if set.Has(Greedy) {
		t.Errorf("set = %v after Remove, Greedy should be absent", set)
	}
	if !set.Has(Erratic) {
		t.Errorf("set = %v after Remove, Erratic should remain", set)
	}
}

func TestTraitFactors(t *testing.T) {
	tests := []struct {
		name      string
		set       Trait
		wantSeek  float64
		wantWall  float64
		wantJit   float64
		wantSpeed float64
	}{
		{name: "plain", set: 0, wantSeek: 1, wantWall: 1, wantJit: 1, wantSpeed: 1},
		{name: "greedy", set: Greedy, wantSeek: 1.5, wantWall: 1, wantJit: 1, wantSpeed: 1},
		{name: "timid erratic", set: Timid | Erratic, wantSeek: 1, wantWall: 1.6, wantJit: 2.5, wantSpeed: 1},
		{name: "swift", set: Swift, wantSeek: 1, wantWall: 1, wantJit: 1, wantSpeed: 1.25},
		{name: "sluggish", set: Sluggish, wantSeek: 1, wantWall: 1, wantJit: 1, wantSpeed: 0.8},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.set.SeekGainFactor(); got != tc.wantSeek {
				t.Errorf("SeekGainFactor = %v, want %v", got, tc.wantSeek)
			}
			if got := tc.set.WallBufferFactor(); got != tc.wantWall {
				t.Errorf("WallBufferFactor = %v, want %v", got, tc.wantWall)
			}
			if got := tc.set.JitterFactor(); got != tc.wantJit {
				t.Errorf("JitterFactor = %v, want %v", got, tc.wantJit)
			}
			if got := tc.set.SpeedFactor(); got != tc.wantSpeed {
				t.Errorf("SpeedFactor = %v, want %v", got, tc.wantSpeed)
			}
		})
	}
}

func TestDeriveDeterministic(t *testing.T) {
	a := rand.New(rand.NewSource(7))
	b := rand.New(rand.NewSource(7))

	for i := 0; i < 100; i++ {
		if got, want := Derive(a), Derive(b); got != want {
			t.Fatalf("draw %d: Derive = %v, want %v with identical seeds", i, got, want)
		}
	}
}

func TestDeriveSpeedExclusive(t *testing.T) {
	rng := rand.New(rand.NewSource(99))
	for i := 0; i < 1000; i++ {
		set := Derive(rng)
		if set.Has(Swift) && set.Has(Sluggish) {
			t.Fatalf("draw %d: %v has both Swift and Sluggish", i, set)
		}
	}
}

func TestTraitString(t *testing.T) {
	tests := []struct {
		set  Trait
		want string
	}{
		{0, "Plain"},
		{Greedy, "Greedy"},
		{Greedy | Swift, "Greedy+Swift"},
		{Timid | Erratic | Sluggish, "Timid+Erratic+Sluggish"},
	}
	for _, tc := range tests {
		if got := tc.set.String(); got != tc.want {
			t.Errorf("String(%d) = %q, want %q", tc.set, got, tc.want)
		}
	}
}
