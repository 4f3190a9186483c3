package telemetry

import (
	"math"
	"testing"
)

func TestCollectorShouldFlush(t *testing.T) {
	// 5 second windows at 1/60 dt = 300 ticks.
	c := NewCollector(5.0, 1.0/60.0)

	if got := c.WindowDurationTicks(); got != 300 {
		t.Fatalf("WindowDurationTicks() = %d, want 300", got)
	}
	if c.ShouldFlush(299) {
		t.Error("ShouldFlush(299) = true, want false")
	}
	if !c.ShouldFlush(300) {
		t.Error("ShouldFlush(300) = false, want true")
	}
}

func TestCollectorFlushCountsAndResets(t *testing.T) {
	c := NewCollector(5.0, 1.0/60.0)

	c.RecordPickup(true)
	c.RecordPickup(true)
	c.RecordPickup(false)
	c.RecordDrops(5)
	c.RecordSpawn()
	c.RecordDissolve(false)
	c.RecordDissolve(true)
	c.RecordCollision()
	c.RecordCollision()
	c.RecordCrossing()
	c.RecordWallClamp()
	c.RecordDistance(12.5)

	stats := c.Flush(300, 8, 2, 14, []float64{5, 7})

	if stats.Pickups != 3 || stats.PlayerPickups != 2 || stats.ShadowPickups != 1 {
		t.Errorf("pickups = %d/%d/%d, want 3/2/1",
			stats.Pickups, stats.PlayerPickups, stats.ShadowPickups)
	}
	if stats.Drops != 5 {
		t.Errorf("Drops = %d, want 5", stats.Drops)
	}
	if stats.Spawns != 1 {
		t.Errorf("Spawns = %d, want 1", stats.Spawns)
	}
	if stats.Dissolves != 2 || stats.PlayerDeaths != 1 {
		t.Errorf("dissolves = %d/%d, want 2/1", stats.Dissolves, stats.PlayerDeaths)
	}
	if stats.Collisions != 2 {
		t.Errorf("Collisions = %d, want 2", stats.Collisions)
	}
	if stats.Crossings != 1 || stats.WallClamps != 1 {
		t.Errorf("crossings/clamps = %d/%d, want 1/1", stats.Crossings, stats.WallClamps)
	}
	if stats.Distance != 12.5 {
		t.Errorf("Distance = %v, want 12.5", stats.Distance)
	}
	if stats.PlayerLength != 8 || stats.ShadowCount != 2 || stats.NibbleCount != 14 {
		t.Errorf("gauges = %d/%d/%d, want 8/2/14",
			stats.PlayerLength, stats.ShadowCount, stats.NibbleCount)
	}
	if stats.ShadowLenMean != 6 {
		t.Errorf("ShadowLenMean = %v, want 6", stats.ShadowLenMean)
	}

	// 3 pickups over 5 sim seconds.
	if math.Abs(stats.PickupsPerSec-0.6) > 0.001 {
		t.Errorf("PickupsPerSec = %v, want 0.6", stats.PickupsPerSec)
	}

	// Second window starts clean.
	next := c.Flush(600, 8, 2, 14, nil)
	if next.Pickups != 0 || next.Drops != 0 || next.Dissolves != 0 || next.Distance != 0 {
		t.Errorf("counters not reset: %+v", next)
	}
	if next.WindowStartTick != 300 {
		t.Errorf("WindowStartTick = %d, want 300", next.WindowStartTick)
	}
}

func TestCollectorMinimumWindow(t *testing.T) {
	// Degenerate window shorter than one tick clamps to 1.
	c := NewCollector(0.001, 1.0/60.0)
	if got := c.WindowDurationTicks(); got != 1 {
		t.Errorf("WindowDurationTicks() = %d, want 1", got)
	}
}
