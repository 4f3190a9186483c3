package game

import (
	rl "github.com/gen2brain/raylib-go/raylib"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/AdrianBisson/YEN/telemetry"
	"github.com/AdrianBisson/YEN/ui"
)

const nibbleRadius = 0.4

// Draw renders one frame: backdrop, the 3D scene, then the 2D interface.
func (g *Game) Draw() {
	g.perfCollector.RecordFrame()
	g.background.Init()

	g.ingestFrameEvents()
	frameDT := rl.GetFrameTime()
	g.arena.Update(frameDT)
	g.particles.Update()

	rl.BeginDrawing()
	g.background.Draw()

	rl.BeginMode3D(g.camera3D())
	g.arena.Draw()
	g.drawNibbles()
	g.drawSnakes()
	g.particles.Draw()
	g.drawActiveOverlays()
	rl.EndMode3D()

	g.drawInterface()

	rl.EndDrawing()
}

// ingestFrameEvents turns this frame's simulation events into visual
// effects, then clears the queue.
func (g *Game) ingestFrameEvents() {
	if !g.uiOverlays.IsEnabled(ui.OverlayCues) {
		g.frameEvents = g.frameEvents[:0]
		return
	}
	for _, ev := range g.frameEvents {
		switch ev.Type {
		case telemetry.EventPickup:
			g.particles.EmitPickup(ev.Pos)
		case telemetry.EventDissolve:
			g.particles.EmitDissolve(ev.Pos, ev.Count)
		case telemetry.EventShadowSpawn:
			g.particles.EmitSpawn(ev.Pos)
		case telemetry.EventBoundary:
			g.arena.Flash(ev.Axis, axisSign(ev.Pos, ev.Axis))
		}
	}
	g.frameEvents = g.frameEvents[:0]
}

// axisSign picks the face of the crossed axis an event position sits on.
func axisSign(pos r3.Vec, axis int) float32 {
	v := pos.X
	switch axis {
	case 1:
		v = pos.Y
	case 2:
		v = pos.Z
	}
	if v < 0 {
		return -1
	}
	return 1
}

func (g *Game) drawSnakes() {
	nowMs := g.simTimeMs()
	// Two touching bodies register a hit at exactly the collision
	// distance when each sphere is half of it.
	bodyRadius := float32(g.cfg.Collision.Distance) * 0.5

	if !g.gameOver {
		g.drawSnake(g.player, nowMs, bodyRadius)
	}
	for _, s := range g.shadows {
		g.drawSnake(s, nowMs, bodyRadius)
	}
}

func (g *Game) drawSnake(s *Snake, nowMs float64, bodyRadius float32) {
	col := g.snakeColor(s)

	// Invulnerable shadows blink so the grace window is readable.
	if !s.IsPlayer && s.Invulnerable(nowMs) && fastSin(float64(g.tick)*0.5) > 0 {
		col.A = 80
	}

	head := s.HeadPos()
	head.Y += s.WiggleOffset
	rl.DrawSphere(vec3(head), bodyRadius*1.2, col)

	if s.ID == g.selectedID {
		rl.DrawSphereWires(vec3(head), bodyRadius*1.9, 8, 8, rl.Color{R: 255, G: 255, B: 255, A: 150})
	}

	segCol := col
	segCol.R = uint8(float32(segCol.R) * 0.85)
	segCol.G = uint8(float32(segCol.G) * 0.85)
	segCol.B = uint8(float32(segCol.B) * 0.85)

	n := len(s.Segments)
	for i, e := range s.Segments {
		p := g.posMap.Get(e)
		if p == nil {
			continue
		}
		taper := 1 - 0.45*float32(i+1)/float32(n+1)
		rl.DrawSphere(vec3(p.Vec), bodyRadius*taper, segCol)
	}
}

// snakeColor returns the player's fixed color or a stable per-ID hue
// for shadows.
func (g *Game) snakeColor(s *Snake) rl.Color {
	if s.IsPlayer {
		return rl.Color{R: 120, G: 235, B: 160, A: 255}
	}
	hue := float32((s.ID * 47) % 360)
	return rl.ColorFromHSV(hue, 0.6, 0.95)
}

func (g *Game) drawNibbles() {
	query := g.nibFilter.Query()
	for query.Next() {
		pos, nib := query.Get()
		col := rl.Color{R: 255, G: 200, B: 90, A: 255}
		if nib.FromDrop {
			col = rl.Color{R: 120, G: 210, B: 255, A: 255}
		}
		rl.DrawSphereEx(vec3(pos.Vec), nibbleRadius*nib.Scale, 6, 6, col)
	}
}

// drawInterface renders the 2D layer: HUD, panels, perf readout.
func (g *Game) drawInterface() {
	g.hud.Draw(g.hudData())

	if g.controls.Draw(g.cfg, g.uiOverlays) {
		g.Reset()
	}

	if g.selectedID != 0 {
		if data, ok := g.selectedData(); ok {
			g.inspector.Draw(data)
		} else {
			g.selectedID = 0
		}
	}

	if g.uiOverlays.IsEnabled(ui.OverlayPerf) {
		g.perfPanel.Draw(g.perfCollector.Stats())
	}
}

func (g *Game) hudData() ui.HUDData {
	return ui.HUDData{
		Score:      g.score,
		Length:     g.player.Length(),
		Shadows:    len(g.shadows),
		Nibbles:    g.nibbles.Count(),
		Tick:       g.tick,
		SimTimeSec: g.simTimeMs() / 1000,
		Speed:      g.stepsPerUpdate,
		FPS:        rl.GetFPS(),
		Particles:  g.particles.Count(),
		Paused:     g.paused,
		GameOver:   g.gameOver,

		ScreenWidth:  int32(rl.GetScreenWidth()),
		ScreenHeight: int32(rl.GetScreenHeight()),
	}
}

// camera3D converts the chase camera pose into raylib's camera type.
func (g *Game) camera3D() rl.Camera3D {
	return rl.Camera3D{
		Position:   vec3(g.cam.Eye),
		Target:     vec3(g.cam.Target),
		Up:         rl.Vector3{Y: 1},
		Fovy:       float32(g.cam.FOV),
		Projection: rl.CameraPerspective,
	}
}

// vec3 converts a gonum vector to a raylib vector.
func vec3(v r3.Vec) rl.Vector3 {
	return rl.Vector3{X: float32(v.X), Y: float32(v.Y), Z: float32(v.Z)}
}
