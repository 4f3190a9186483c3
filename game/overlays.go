package game

import (
	rl "github.com/gen2brain/raylib-go/raylib"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/AdrianBisson/YEN/systems"
	"github.com/AdrianBisson/YEN/ui"
)

// drawActiveOverlays renders the enabled 3D debug overlays. Must run
// inside BeginMode3D; the perf panel is 2D and drawn with the interface.
func (g *Game) drawActiveOverlays() {
	for _, id := range g.uiOverlays.EnabledOverlays() {
		switch id {
		case ui.OverlayCellOccupancy:
			g.drawCellOccupancy()
		case ui.OverlayTrails:
			g.drawTrails()
		case ui.OverlayCollisionRadii:
			g.drawCollisionRadii()
		case ui.OverlayHeadings:
			g.drawHeadings()
		}
	}
}

// drawCellOccupancy shades every occupied spatial-hash cell, brighter
// with more entries.
func (g *Game) drawCellOccupancy() {
	cell := g.index.CellSize()
	size := float32(cell)

	g.index.EachCell(func(key systems.CellKey, occupants int) {
		center := rl.Vector3{
			X: (float32(key.X) + 0.5) * size,
			Y: (float32(key.Y) + 0.5) * size,
			Z: (float32(key.Z) + 0.5) * size,
		}
		heat := occupants
		if heat > 8 {
			heat = 8
		}
		col := rl.Color{
			R: uint8(60 + heat*22),
			G: uint8(80 + heat*10),
			B: 160,
			A: 120,
		}
		rl.DrawCubeWires(center, size, size, size, col)
	})
}

// drawTrails draws each snake's head history as a line strip.
func (g *Game) drawTrails() {
	draw := func(s *Snake) {
		col := g.snakeColor(s)
		col.A = 140
		for i := 1; i < len(s.Trail); i++ {
			rl.DrawLine3D(vec3(s.Trail[i-1]), vec3(s.Trail[i]), col)
		}
	}

	if !g.gameOver {
		draw(g.player)
	}
	for _, s := range g.shadows {
		draw(s)
	}
}

// drawCollisionRadii draws the hit distance around every head.
func (g *Game) drawCollisionRadii() {
	radius := float32(g.cfg.Collision.Distance)
	col := rl.Color{R: 235, G: 90, B: 90, A: 160}

	if !g.gameOver {
		rl.DrawSphereWires(vec3(g.player.HeadPos()), radius, 8, 8, col)
	}
	for _, s := range g.shadows {
		rl.DrawSphereWires(vec3(s.HeadPos()), radius, 8, 8, col)
	}
}

// drawHeadings draws forward vectors, plus the reflected spawn course
// for shadows still following it.
func (g *Game) drawHeadings() {
	nowMs := g.simTimeMs()
	const reach = 4.0

	draw := func(s *Snake) {
		head := s.HeadPos()
		tip := r3.Add(head, r3.Scale(reach, s.Forward()))
		rl.DrawLine3D(vec3(head), vec3(tip), rl.Color{R: 255, G: 255, B: 255, A: 200})

		if !s.IsPlayer && s.Reflecting(nowMs) {
			target := r3.Add(head, r3.Scale(reach*1.5, s.TargetDir))
			rl.DrawLine3D(vec3(head), vec3(target), rl.Color{R: 255, G: 170, B: 70, A: 200})
		}
	}

	if !g.gameOver {
		draw(g.player)
	}
	for _, s := range g.shadows {
		draw(s)
	}
}
