package game

import (
	"log/slog"
	"math"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/AdrianBisson/YEN/systems"
	"github.com/AdrianBisson/YEN/telemetry"
	"github.com/AdrianBisson/YEN/traits"
)

// spawnPlayer creates the player snake at the arena center, level and
// facing +Z.
func (g *Game) spawnPlayer() {
	id := g.nextID
	g.nextID++

	sc := g.cfg.Snake
	head := g.newHeadEntity(id, r3.Vec{})
	s := newSnake(id, true, head, r3.Vec{}, 0, 0, sc.Speed, sc.TrailLength, sc.SegmentSpacing)
	s.WigglePhase = g.rng.Float64() * 2 * math.Pi
	s.BornTick = g.tick

	for i := 0; i < sc.InitialSegments; i++ {
		g.growSnake(s)
	}

	g.player = s
	g.lifeTracker.Register(id, g.tick, true, 0)
}

// trySpawnShadow gates shadow creation on the population cap and the
// spawn delay. Crossings that arrive inside the delay are simply lost,
// they do not queue.
func (g *Game) trySpawnShadow(crossing systems.Crossing, nowMs float64) {
	if len(g.shadows) >= g.cfg.Shadow.MaxShadows {
		return
	}
	if nowMs-g.lastShadowSpawnMs < g.cfg.Shadow.SpawnDelayMs {
		return
	}
	g.spawnShadow(crossing, nowMs)
	g.lastShadowSpawnMs = nowMs
}

// spawnShadow materializes a shadow snake at the wall hit point, heading
// along the player's course reflected off that face.
func (g *Game) spawnShadow(crossing systems.Crossing, nowMs float64) {
	id := g.nextID
	g.nextID++

	dir := systems.Reflect(g.player.Forward(), crossing.Normal)
	tr := traits.Derive(g.rng)

	sc := g.cfg.Shadow
	head := g.newHeadEntity(id, crossing.WallHit)
	s := newSnake(id, false, head, crossing.WallHit,
		systems.YawOf(dir), systems.PitchOf(dir),
		sc.Speed*tr.SpeedFactor(),
		g.cfg.Snake.TrailLength, g.cfg.Snake.SegmentSpacing)
	s.WigglePhase = g.rng.Float64() * 2 * math.Pi
	s.Traits = tr
	s.TargetDir = dir
	s.BornTick = g.tick
	s.InvulnUntil = nowMs + sc.InvulnMs
	s.ReflectUntil = nowMs + sc.ReflectMs

	for i := 0; i < sc.InitialSegments; i++ {
		g.growSnake(s)
	}

	g.shadows = append(g.shadows, s)
	g.lifeTracker.Register(id, g.tick, false, tr)
	g.collector.RecordSpawn()
	g.emit(telemetry.NewShadowSpawnEvent(g.tick, id, crossing.WallHit))

	slog.Debug("shadow spawned",
		"id", id,
		"traits", tr.String(),
		"axis", crossing.Axis,
		"shadows", len(g.shadows),
	)
}

// dissolveSnake converts a snake's body into dropped nibbles and retires
// it. Shadows drop one nibble per segment; the player drops only as many
// as it actually ate, so the starting body cannot seed a feast.
func (g *Game) dissolveSnake(s *Snake, cause string) {
	finalLen := s.Length()
	drops := finalLen
	jitter := g.cfg.Nibbles.DropJitter
	if s.IsPlayer {
		if s.NibblesEaten < drops {
			drops = s.NibblesEaten
		}
		jitter = 0
	}
	for i := 0; i < drops; i++ {
		g.nibbles.CreateAt(g.posMap.Get(s.Segments[i]).Vec, jitter)
	}

	g.collector.RecordDrops(drops)
	g.collector.RecordDissolve(s.IsPlayer)
	g.emit(telemetry.NewDissolveEvent(g.tick, s.ID, s.IsPlayer, drops, s.HeadPos()))

	g.retireSnake(s, cause)
	g.releaseSnakeEntities(s)
	s.Segments = nil

	if s.IsPlayer {
		g.gameOver = true
		slog.Info("game over",
			"cause", cause,
			"score", g.score,
			"length", finalLen,
			"tick", g.tick,
		)
	} else {
		for i, sh := range g.shadows {
			if sh == s {
				g.shadows = append(g.shadows[:i], g.shadows[i+1:]...)
				break
			}
		}
		if g.selectedID == s.ID {
			g.selectedID = 0
		}
		slog.Debug("shadow dissolved", "id", s.ID, "cause", cause, "drops", drops)
	}

	if g.cam != nil {
		scale := 0.5
		if s.IsPlayer {
			scale = 1.0
		}
		g.cam.Shake(scale)
	}
}
