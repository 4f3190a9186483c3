package game

import (
	"math"
	"math/rand"
	"testing"

	"github.com/mlange-42/ark/ecs"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/AdrianBisson/YEN/config"
	"github.com/AdrianBisson/YEN/systems"
)

// newTestField builds a standalone nibble field over a fresh world, so
// sampling and pickup order can be tested without a full game.
func newTestField(t *testing.T) (*NibbleField, *config.Config) {
	t.Helper()
	cfg, err := config.Load("")
	if err != nil {
		t.Fatalf("loading embedded defaults: %v", err)
	}
	world := ecs.NewWorld()
	index := systems.NewSpatialIndex(cfg.Arena.CellSize)
	return newNibbleField(world, index, rand.New(rand.NewSource(1))), cfg
}

func TestNibbleSpawnSafety(t *testing.T) {
	nf, cfg := newTestField(t)
	band := cfg.Arena.Half - cfg.Nibbles.SafeWallDistance

	tests := []struct {
		name string
		pos  r3.Vec
		want bool
	}{
		{name: "origin", pos: r3.Vec{}, want: true},
		{name: "near positive x face", pos: r3.Vec{X: 49.9}, want: false},
		{name: "near negative y face", pos: r3.Vec{Y: -49}, want: false},
		{name: "exactly at the safe band", pos: r3.Vec{X: band}, want: true},
		{name: "just past the safe band", pos: r3.Vec{X: band + 0.01}, want: false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := nf.safeAt(tc.pos, cfg); got != tc.want {
				t.Errorf("safeAt(%v) = %v, want %v", tc.pos, got, tc.want)
			}
		})
	}

	t.Run("near a tracked entity", func(t *testing.T) {
		nf.CreateAt(r3.Vec{X: 10}, 0)
		if nf.safeAt(r3.Vec{X: 10.5}, cfg) {
			t.Errorf("safeAt(0.5 from a nibble) = true, want false with safe distance %v",
				cfg.Nibbles.SafeObjectDistance)
		}
		if !nf.safeAt(r3.Vec{X: 10 + cfg.Nibbles.SafeObjectDistance + 1}, cfg) {
			t.Error("safeAt(beyond the safe distance) = false, want true")
		}
	})
}

func TestNibbleSpawnFallback(t *testing.T) {
	nf, cfg := newTestField(t)

	// A safe band wider than the arena rejects every candidate, so the
	// retry loop must run out and accept the last one.
	cfg.Nibbles.SafeWallDistance = cfg.Arena.Half * 2

	nf.Spawn(cfg)

	if got := nf.Count(); got != 1 {
		t.Fatalf("Count() after exhausted retries = %d, want 1", got)
	}
	var pos r3.Vec
	nf.Each(func(p r3.Vec, _ float32, _ bool) { pos = p })
	half := cfg.Arena.Half
	if math.Abs(pos.X) > half || math.Abs(pos.Y) > half || math.Abs(pos.Z) > half {
		t.Errorf("fallback position %v outside the arena half-extent %v", pos, half)
	}
}

func TestNibblePickupOrder(t *testing.T) {
	nf, _ := newTestField(t)

	far := nf.CreateAt(r3.Vec{X: 5}, 0)
	near := nf.CreateAt(r3.Vec{X: 0.3}, 0)

	t.Run("first created wins over nearest", func(t *testing.T) {
		got, ok := nf.FindNearby(r3.Vec{}, 36)
		if !ok {
			t.Fatal("FindNearby(radius covering both) found nothing")
		}
		if got != far {
			t.Errorf("FindNearby returned the nearer nibble, want the first created")
		}
	})

	t.Run("outside radius finds nothing", func(t *testing.T) {
		if _, ok := nf.FindNearby(r3.Vec{}, 0.04); ok {
			t.Error("FindNearby(tiny radius) = ok, want no match")
		}
	})

	t.Run("removal keeps the remaining order", func(t *testing.T) {
		nf.Remove(far)
		got, ok := nf.FindNearby(r3.Vec{}, 36)
		if !ok {
			t.Fatal("FindNearby after removal found nothing")
		}
		if got != near {
			t.Errorf("FindNearby after removing the head of the list did not return the next oldest")
		}
		if nf.Count() != 1 {
			t.Errorf("Count() = %d, want 1", nf.Count())
		}
	})
}

func TestNibblePositionsOrder(t *testing.T) {
	nf, _ := newTestField(t)

	want := []r3.Vec{{X: 5}, {X: 0.3}, {X: -7, Z: 2}}
	for _, p := range want {
		nf.CreateAt(p, 0)
	}

	got := nf.Positions(nil)
	if len(got) != len(want) {
		t.Fatalf("Positions returned %d entries, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Positions[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}
