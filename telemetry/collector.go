package telemetry

// Collector accumulates events within time windows and produces WindowStats.
type Collector struct {
	windowDurationSec   float64
	windowDurationTicks int32
	dt                  float64

	// Current window tracking
	windowStartTick int32

	// Event counters for current window
	playerPickups int
	shadowPickups int
	drops         int
	spawns        int
	dissolves     int
	playerDeaths  int
	collisions    int
	crossings     int
	wallClamps    int
	distance      float64
}

// NewCollector creates a new stats collector.
// windowDurationSec: how long each stats window lasts in simulation seconds
// dt: seconds per tick (used for tick-to-time conversion)
func NewCollector(windowDurationSec float64, dt float64) *Collector {
	ticksPerWindow := int32(windowDurationSec / dt)
	if ticksPerWindow < 1 {
		ticksPerWindow = 1
	}

	return &Collector{
		windowDurationSec:   windowDurationSec,
		windowDurationTicks: ticksPerWindow,
		dt:                  dt,
		windowStartTick:     0,
	}
}

// RecordPickup records a nibble pickup.
func (c *Collector) RecordPickup(player bool) {
	if player {
		c.playerPickups++
	} else {
		c.shadowPickups++
	}
}

// RecordDrops records nibbles created by a dissolution.
func (c *Collector) RecordDrops(count int) {
	c.drops += count
}

// RecordSpawn records a shadow spawn.
func (c *Collector) RecordSpawn() {
	c.spawns++
}

// RecordDissolve records a snake dissolution.
func (c *Collector) RecordDissolve(player bool) {
	c.dissolves++
	if player {
		c.playerDeaths++
	}
}

// RecordCollision records a resolved collision hit.
func (c *Collector) RecordCollision() {
	c.collisions++
}

// RecordCrossing records a boundary crossing.
func (c *Collector) RecordCrossing() {
	c.crossings++
}

// RecordWallClamp records a shadow head clamped back into the safe band.
func (c *Collector) RecordWallClamp() {
	c.wallClamps++
}

// RecordDistance accumulates head travel distance.
func (c *Collector) RecordDistance(d float64) {
	c.distance += d
}

// ShouldFlush returns true if enough ticks have passed to flush the window.
func (c *Collector) ShouldFlush(currentTick int32) bool {
	return currentTick-c.windowStartTick >= c.windowDurationTicks
}

// Flush produces a WindowStats and resets counters for the next window.
// The caller must provide:
// - currentTick: the current simulation tick
// - playerLength, shadowCount, nibbleCount: current gauges
// - shadowLengths: body lengths of living shadows for distribution stats
func (c *Collector) Flush(
	currentTick int32,
	playerLength, shadowCount, nibbleCount int,
	shadowLengths []float64,
) WindowStats {
	windowSec := float64(currentTick-c.windowStartTick) * c.dt
	pickups := c.playerPickups + c.shadowPickups

	var pickupsPerSec float64
	if windowSec > 0 {
		pickupsPerSec = float64(pickups) / windowSec
	}

	lenMean, lenStd, lenP10, lenP50, lenP90 := ComputeLengthStats(shadowLengths)

	stats := WindowStats{
		WindowStartTick: c.windowStartTick,
		WindowEndTick:   currentTick,
		SimTimeSec:      float64(currentTick) * c.dt,

		PlayerLength: playerLength,
		ShadowCount:  shadowCount,
		NibbleCount:  nibbleCount,

		Pickups:       pickups,
		PlayerPickups: c.playerPickups,
		ShadowPickups: c.shadowPickups,
		Drops:         c.drops,
		Spawns:        c.spawns,
		Dissolves:     c.dissolves,
		PlayerDeaths:  c.playerDeaths,
		Collisions:    c.collisions,
		Crossings:     c.crossings,
		WallClamps:    c.wallClamps,

		PickupsPerSec: pickupsPerSec,
		Distance:      c.distance,

		ShadowLenMean: lenMean,
		ShadowLenStd:  lenStd,
		ShadowLenP10:  lenP10,
		ShadowLenP50:  lenP50,
		ShadowLenP90:  lenP90,
	}

	// Reset for next window
	c.windowStartTick = currentTick
	c.playerPickups = 0
	c.shadowPickups = 0
	c.drops = 0
	c.spawns = 0
	c.dissolves = 0
	c.playerDeaths = 0
	c.collisions = 0
	c.crossings = 0
	c.wallClamps = 0
	c.distance = 0

	return stats
}

// WindowDurationTicks returns the number of ticks per window.
func (c *Collector) WindowDurationTicks() int32 {
	return c.windowDurationTicks
}
