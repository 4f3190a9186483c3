package game

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/AdrianBisson/YEN/config"
	"github.com/AdrianBisson/YEN/systems"
	"github.com/AdrianBisson/YEN/telemetry"
)

func TestShadowSpawnGating(t *testing.T) {
	g := newTestGame(t, func(cfg *config.Config) {
		cfg.Nibbles.InitialCount = 0
		cfg.Shadow.MaxShadows = 2
	})
	crossing := systems.Crossing{Axis: 0, Sign: 1, WallHit: r3.Vec{X: g.cfg.Arena.Half}, Normal: r3.Vec{X: -1}}
	delay := g.cfg.Shadow.SpawnDelayMs

	g.trySpawnShadow(crossing, 1000)
	if g.ShadowCount() != 1 {
		t.Fatalf("shadow count = %d after first crossing, want 1", g.ShadowCount())
	}

	// A crossing inside the delay is lost, not queued.
	g.trySpawnShadow(crossing, 1000+delay-1)
	if g.ShadowCount() != 1 {
		t.Errorf("crossing inside the spawn delay produced a shadow")
	}

	g.trySpawnShadow(crossing, 1000+delay)
	if g.ShadowCount() != 2 {
		t.Errorf("shadow count = %d once the delay elapsed, want 2", g.ShadowCount())
	}

	// At the population cap the delay no longer matters.
	g.trySpawnShadow(crossing, 1e12)
	if g.ShadowCount() != 2 {
		t.Errorf("shadow count = %d, spawn ignored the cap", g.ShadowCount())
	}
}

func TestSpawnShadowState(t *testing.T) {
	g := newTestGame(t, func(cfg *config.Config) {
		cfg.Nibbles.InitialCount = 0
	})

	// An oblique outbound course, so the reflection is not trivially
	// axis-aligned.
	g.player.Yaw = math.Pi / 3
	g.player.Pitch = 0.2
	crossing := systems.Crossing{
		Axis:    0,
		Sign:    1,
		WallHit: r3.Vec{X: g.cfg.Arena.Half, Y: 2, Z: 7},
		Normal:  r3.Vec{X: -1},
	}

	const nowMs = 5000.0
	g.spawnShadow(crossing, nowMs)
	sh := g.shadows[0]

	if sh.IsPlayer {
		t.Fatal("spawned shadow flagged as player")
	}
	if sh.HeadPos() != crossing.WallHit {
		t.Errorf("shadow head at %v, want the wall hit %v", sh.HeadPos(), crossing.WallHit)
	}
	if sh.Length() != g.cfg.Shadow.InitialSegments {
		t.Errorf("shadow length = %d, want %d", sh.Length(), g.cfg.Shadow.InitialSegments)
	}

	// The spawn course is the player's heading mirrored off the face.
	want := systems.Reflect(g.player.Forward(), crossing.Normal)
	if d := systems.Dist(sh.TargetDir, want); d > 1e-12 {
		t.Errorf("TargetDir = %v, want reflection %v", sh.TargetDir, want)
	}
	if d := math.Abs(systems.WrapAngle(sh.Yaw - systems.YawOf(want))); d > 1e-12 {
		t.Errorf("spawn yaw off the reflected course by %v", d)
	}
	if d := math.Abs(sh.Pitch - systems.PitchOf(want)); d > 1e-12 {
		t.Errorf("spawn pitch off the reflected course by %v", d)
	}

	if sh.InvulnUntil != nowMs+g.cfg.Shadow.InvulnMs {
		t.Errorf("InvulnUntil = %v, want %v", sh.InvulnUntil, nowMs+g.cfg.Shadow.InvulnMs)
	}
	if sh.ReflectUntil != nowMs+g.cfg.Shadow.ReflectMs {
		t.Errorf("ReflectUntil = %v, want %v", sh.ReflectUntil, nowMs+g.cfg.Shadow.ReflectMs)
	}
	if sh.Speed != g.cfg.Shadow.Speed*sh.Traits.SpeedFactor() {
		t.Errorf("speed = %v ignores the trait factor", sh.Speed)
	}
	if g.lifeTracker.Get(sh.ID) == nil {
		t.Error("shadow not registered with the life tracker")
	}
}

func TestResetStartsFreshRun(t *testing.T) {
	g := newTestGame(t, nil)

	for i := 0; i < 10; i++ {
		g.UpdateHeadless()
	}
	tick := g.Tick()

	g.score = 3
	crossing := systems.Crossing{Axis: 1, Sign: 1, WallHit: r3.Vec{Y: g.cfg.Arena.Half}, Normal: r3.Vec{Y: -1}}
	g.spawnShadow(crossing, g.simTimeMs())

	g.Reset()

	// The tick counter keeps running so telemetry windows stay
	// contiguous across runs.
	if g.Tick() != tick {
		t.Errorf("tick jumped across reset: %d -> %d", tick, g.Tick())
	}
	if g.Score() != 0 {
		t.Errorf("score = %d after reset, want 0", g.Score())
	}
	if g.ShadowCount() != 0 {
		t.Errorf("shadow count = %d after reset, want 0", g.ShadowCount())
	}
	if g.GameOver() {
		t.Error("fresh run flagged as over")
	}
	if g.NibbleCount() != g.cfg.Nibbles.InitialCount {
		t.Errorf("nibble count = %d after reset, want %d", g.NibbleCount(), g.cfg.Nibbles.InitialCount)
	}
	if g.PlayerLength() != g.cfg.Snake.InitialSegments {
		t.Errorf("player length = %d after reset, want %d", g.PlayerLength(), g.cfg.Snake.InitialSegments)
	}

	g.UpdateHeadless()
	if g.Tick() != tick+1 {
		t.Errorf("simulation did not resume after reset")
	}
}

func TestResetAfterGameOver(t *testing.T) {
	g := newTestGame(t, func(cfg *config.Config) {
		cfg.Nibbles.InitialCount = 0
	})

	g.player.NibblesEaten = 1
	g.dissolveSnake(g.player, telemetry.CauseShadow)
	if !g.GameOver() {
		t.Fatal("dissolution did not end the run")
	}

	g.Reset()

	if g.GameOver() {
		t.Error("run still over after reset")
	}
	if g.PlayerLength() != g.cfg.Snake.InitialSegments {
		t.Errorf("player length = %d after reset, want %d", g.PlayerLength(), g.cfg.Snake.InitialSegments)
	}
	if g.NibbleCount() != 0 {
		t.Errorf("stale drops survived the reset: %d", g.NibbleCount())
	}

	// The fresh run must simulate cleanly on the same world.
	for i := 0; i < 10; i++ {
		g.UpdateHeadless()
	}
	if g.GameOver() {
		t.Error("fresh run died immediately")
	}
}

func TestHeadlessAutopilotRun(t *testing.T) {
	var windows int
	cfg, err := config.Load("")
	if err != nil {
		t.Fatalf("loading embedded defaults: %v", err)
	}
	// With spawning off and a skip window the body cannot outgrow,
	// nothing in the arena can end the run.
	cfg.Shadow.MaxShadows = 0
	cfg.Collision.SelfSkip = 100

	g := NewGameWithOptions(Options{
		Seed:          1,
		Headless:      true,
		Config:        cfg,
		StatsCallback: func(telemetry.WindowStats) { windows++ },
	})
	defer g.Unload()

	const ticks = 3600 // one sim minute
	for i := 0; i < ticks; i++ {
		g.UpdateHeadless()
	}

	if g.Tick() != ticks {
		t.Fatalf("tick = %d, want %d", g.Tick(), ticks)
	}
	if g.GameOver() {
		t.Fatal("autopilot run ended with shadows disabled")
	}
	if g.Score() == 0 {
		t.Error("autopilot never reached a nibble in a sim minute")
	}
	if g.PlayerLength() != g.cfg.Snake.InitialSegments+g.Score() {
		t.Errorf("length %d does not match %d pickups on a %d-segment start",
			g.PlayerLength(), g.Score(), g.cfg.Snake.InitialSegments)
	}
	if ls := g.lifeTracker.Get(g.player.ID); ls == nil || ls.Distance <= 0 {
		t.Error("no head travel recorded")
	}
	if windows == 0 {
		t.Error("no stats windows flushed over a sim minute")
	}
}
