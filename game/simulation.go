package game

import (
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/AdrianBisson/YEN/components"
	"github.com/AdrianBisson/YEN/systems"
	"github.com/AdrianBisson/YEN/telemetry"
)

// doomed marks a snake for dissolution at the end of collision
// resolution.
type doomed struct {
	snake *Snake
	cause string
}

// simulationStep advances the world one fixed tick. Phase order is part
// of the game's semantics: pickups run before collision resolution so a
// nibble grabbed on the frame of impact still counts, and boundary
// checks see the head position the player phase just produced.
func (g *Game) simulationStep() {
	g.perfCollector.StartTick()
	dt := g.cfg.Sim.DT
	nowMs := g.simTimeMs()

	// 1. Player movement
	g.perfCollector.StartPhase(telemetry.PhasePlayer)
	g.updatePlayer(dt)

	// 2. Shadow movement and steering
	g.perfCollector.StartPhase(telemetry.PhaseShadows)
	g.updateShadows(dt, nowMs)

	// 3. Nibble idle animation
	g.perfCollector.StartPhase(telemetry.PhaseNibbleAnim)
	g.nibbles.Animate(dt)

	// 4. Boundary crossing
	g.perfCollector.StartPhase(telemetry.PhaseBoundary)
	g.checkBoundary(nowMs)

	// 5. Pickups
	g.perfCollector.StartPhase(telemetry.PhasePickup)
	g.handlePickups()

	// 6. Timed nibble spawn
	g.perfCollector.StartPhase(telemetry.PhaseSpawn)
	g.spawnTimedNibble(nowMs)

	// 7. Collision classification and resolution
	g.perfCollector.StartPhase(telemetry.PhaseCollision)
	g.resolveCollisions(nowMs)

	// Telemetry flush
	g.perfCollector.StartPhase(telemetry.PhaseTelemetry)
	g.updateLifeStats()
	g.flushTelemetry()

	g.perfCollector.EndTick()
	g.tick++
}

// updatePlayer advances the player head one tick. In headless mode an
// autopilot steers first so unattended runs still chase nibbles.
func (g *Game) updatePlayer(dt float64) {
	if g.headless {
		g.autopilot()
	}

	g.prevPlayerPos = g.player.HeadPos()
	g.stepSnake(g.player, dt)

	d := systems.Dist(g.prevPlayerPos, g.player.HeadPos())
	g.lifeTracker.AddDistance(g.player.ID, d)
	g.collector.RecordDistance(d)
}

// autopilot yaws the player toward the nearest nibble at the shadow seek
// gains. It deliberately skips wall avoidance: overshooting a face is
// what triggers boundary crossings, so headless runs exercise shadow
// spawning the way a human player would.
func (g *Game) autopilot() {
	pos := g.player.HeadPos()
	g.nibbleBuf = g.nibbles.Positions(g.nibbleBuf[:0])
	i, _ := systems.NearestNibble(pos, g.nibbleBuf)
	if i < 0 {
		return
	}
	target := g.nibbleBuf[i]
	sc := g.cfg.Shadow

	yawErr := systems.WrapAngle(systems.YawTo(pos, target) - g.player.Yaw)
	g.player.Yaw = systems.WrapAngle(g.player.Yaw + yawErr*sc.SeekGain)

	pitchErr := systems.PitchTo(pos, target) - g.player.Pitch
	g.player.Pitch = clampPitch(g.player.Pitch + pitchErr*sc.SeekGain*sc.PitchGainFactor)
}

// stepSnake advances a snake one tick along its heading, pushes the new
// head sample onto the trail, and refits the body to the updated curve.
func (g *Game) stepSnake(s *Snake, dt float64) {
	step := s.Speed * s.speedFactor * dt * 60
	pos := r3.Add(s.HeadPos(), r3.Scale(step, s.Forward()))
	s.pushTrail(pos)

	// Cosmetic bob. Rendering adds the offset; the index and all
	// collision math use the true position.
	sc := g.cfg.Snake
	s.WiggleOffset = fastSin(float64(g.tick)*dt*sc.WiggleFreq+s.WigglePhase) * sc.WiggleAmp

	g.posMap.Get(s.Head).Vec = pos
	g.index.Insert(s.Head, pos)

	s.refit(sc.CurveSamples)
	g.placeSegments(s)
}

// placeSegments pins each segment to its arc-length station on the body
// curve. Segments re-enter the spatial index here, which is also where a
// just-grown segment first becomes collidable.
func (g *Game) placeSegments(s *Snake) {
	for i := range s.Segments {
		pos := s.segmentTarget(i)
		g.posMap.Get(s.Segments[i]).Vec = pos
		g.index.Insert(s.Segments[i], pos)
	}
}

// updateShadows advances the shadows due this tick, then steers them as
// one batch. Each shadow moves every UpdateStride ticks, staggered by
// its slot, so a crowd spreads its cost across frames; the step below
// scales by the stride so per-second speed is independent of it.
func (g *Game) updateShadows(dt, nowMs float64) {
	stride := g.cfg.Shadow.UpdateStride
	g.dueBuf = g.dueBuf[:0]
	for i, s := range g.shadows {
		if int(g.tick)%stride != i%stride {
			continue
		}
		g.stepSnake(s, dt*float64(stride))
		g.dueBuf = append(g.dueBuf, i)
	}
	if len(g.dueBuf) > 0 {
		g.steerShadows(g.dueBuf, nowMs)
	}
}

// checkBoundary fires when the player head leaves the arena cube. The
// check is edge-triggered on the inside-to-outside transition, so frames
// spent fully outside never refire it.
func (g *Game) checkBoundary(nowMs float64) {
	crossing, ok := systems.CheckCrossing(g.prevPlayerPos, g.player.HeadPos(), g.cfg.Arena.Half)
	if !ok {
		return
	}

	g.collector.RecordCrossing()
	g.lifeTracker.RecordCrossing(g.player.ID)
	g.emit(telemetry.NewBoundaryEvent(g.tick, g.player.ID, true, crossing.Axis, crossing.WallHit))

	g.trySpawnShadow(crossing, nowMs)
}

// handlePickups lets the player grab nibbles every tick and shadows
// every PickupStride ticks. The player goes first: on a contested nibble
// the player wins.
func (g *Game) handlePickups() {
	if !g.gameOver {
		g.tryPickup(g.player)
	}
	if int(g.tick)%g.cfg.Shadow.PickupStride != 0 {
		return
	}
	for _, s := range g.shadows {
		g.tryPickup(s)
	}
}

// tryPickup consumes the first nibble within pickup range of the snake's
// head and grows the snake by one segment.
func (g *Game) tryPickup(s *Snake) {
	e, ok := g.nibbles.FindNearby(s.HeadPos(), g.cfg.Nibbles.PickupRadiusSq)
	if !ok {
		return
	}
	pos := g.posMap.Get(e).Vec
	g.nibbles.Remove(e)

	g.growSnake(s)
	s.NibblesEaten++
	if s.IsPlayer {
		g.score++
	}

	g.collector.RecordPickup(s.IsPlayer)
	g.lifeTracker.RecordNibble(s.ID)
	g.lifeTracker.UpdateLength(s.ID, s.Length())
	g.emit(telemetry.NewPickupEvent(g.tick, s.ID, s.IsPlayer, pos))
}

// spawnTimedNibble tops up the field on a fixed sim-time cadence.
func (g *Game) spawnTimedNibble(nowMs float64) {
	if nowMs-g.lastNibbleSpawnMs < g.cfg.Nibbles.SpawnIntervalMs {
		return
	}
	g.nibbles.Spawn(g.cfg)
	g.lastNibbleSpawnMs = nowMs
}

// resolveCollisions classifies head proximity for every snake and
// dissolves the losers. Classification for all heads completes before
// any dissolution, so two snakes colliding head-on dissolve
// symmetrically on the same tick.
func (g *Game) resolveCollisions(nowMs float64) {
	g.heads = g.heads[:0]
	g.heads = append(g.heads, systems.HeadRef{Entity: g.player.Head, Owner: g.player.ID, Pos: g.player.HeadPos()})
	for _, s := range g.shadows {
		g.heads = append(g.heads, systems.HeadRef{Entity: s.Head, Owner: s.ID, Pos: s.HeadPos()})
	}

	params := systems.CollisionParams{
		Distance:   g.cfg.Collision.Distance,
		SelfSkip:   int32(g.cfg.Collision.SelfSkip),
		QueryScale: g.cfg.Collision.QueryRadiusFactor,
	}
	g.collisionBuf = g.engine.Classify(g.collisionBuf[:0], g.heads, params)

	g.doomedBuf = g.doomedBuf[:0]
	for _, ev := range g.collisionBuf {
		// Proximity to a nibble is not a hit; the pickup phase owns those.
		if ev.TargetKind == components.KindNibble {
			continue
		}

		subject := g.snakeByID(ev.SubjectOwner)
		if subject == nil || g.isDoomed(subject) {
			continue
		}

		// A freshly spawned shadow neither dies nor kills while
		// invulnerable; it materializes at the wall right next to the
		// player's head.
		if !subject.IsPlayer && subject.Invulnerable(nowMs) {
			continue
		}
		if tgt := g.snakeByID(ev.TargetOwner); tgt != nil && !tgt.IsPlayer && tgt.Invulnerable(nowMs) {
			continue
		}

		cause := g.collisionCause(subject, ev)
		g.doomedBuf = append(g.doomedBuf, doomed{snake: subject, cause: cause})
		g.collector.RecordCollision()
		g.emit(telemetry.NewCollisionEvent(g.tick, subject.ID, subject.IsPlayer, ev.TargetOwner, ev.TargetKind, subject.HeadPos()))
	}

	for _, d := range g.doomedBuf {
		g.dissolveSnake(d.snake, d.cause)
	}
}

// collisionCause labels what dissolved the subject: its own body, the
// player's, or another shadow's.
func (g *Game) collisionCause(subject *Snake, ev systems.CollisionEvent) string {
	if ev.TargetOwner == subject.ID {
		return telemetry.CauseSelf
	}
	if tgt := g.snakeByID(ev.TargetOwner); tgt != nil && tgt.IsPlayer {
		return telemetry.CausePlayer
	}
	return telemetry.CauseShadow
}

// snakeByID resolves a snake ID to the live snake, player included.
func (g *Game) snakeByID(id uint32) *Snake {
	if g.player != nil && g.player.ID == id {
		return g.player
	}
	for _, s := range g.shadows {
		if s.ID == id {
			return s
		}
	}
	return nil
}

// isDoomed reports whether a snake was already marked this tick.
func (g *Game) isDoomed(s *Snake) bool {
	for _, d := range g.doomedBuf {
		if d.snake == s {
			return true
		}
	}
	return false
}

// updateLifeStats refreshes the per-life aggregates that change every
// tick without a discrete event. The tracker ignores IDs it no longer
// holds, so snakes dissolved earlier this tick fall through harmlessly.
func (g *Game) updateLifeStats() {
	dt := g.cfg.Sim.DT
	g.lifeTracker.UpdateSurvivalTime(g.player.ID, g.tick, dt)
	g.lifeTracker.UpdateLength(g.player.ID, g.player.Length())
	for _, s := range g.shadows {
		g.lifeTracker.UpdateSurvivalTime(s.ID, g.tick, dt)
		g.lifeTracker.UpdateLength(s.ID, s.Length())
	}
}
