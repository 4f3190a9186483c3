package game

import (
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/AdrianBisson/YEN/ui"
)

// handleSelection picks the snake head under a mouse click. Clicking
// empty space clears the selection.
func (g *Game) handleSelection() {
	if !rl.IsMouseButtonPressed(rl.MouseLeftButton) {
		return
	}

	mouse := rl.GetMousePosition()
	if g.controls.Contains(mouse) {
		return // click belongs to the panel
	}

	if id, ok := g.findSnakeAtClick(mouse); ok {
		g.selectedID = id
	} else {
		g.selectedID = 0
	}
}

// findSnakeAtClick casts a ray through the cursor and returns the
// nearest snake whose head sphere it hits. The pick sphere is larger
// than the rendered head so clicking stays forgiving at distance.
func (g *Game) findSnakeAtClick(mouse rl.Vector2) (uint32, bool) {
	ray := rl.GetMouseRay(mouse, g.camera3D())
	pickRadius := float32(g.cfg.Collision.Distance)

	var bestID uint32
	bestDist := float32(math.MaxFloat32)
	found := false

	try := func(s *Snake) {
		hit := rl.GetRayCollisionSphere(ray, vec3(s.HeadPos()), pickRadius)
		if hit.Hit && hit.Distance < bestDist {
			bestDist = hit.Distance
			bestID = s.ID
			found = true
		}
	}

	if !g.gameOver {
		try(g.player)
	}
	for _, s := range g.shadows {
		try(s)
	}
	return bestID, found
}

// selectedData builds the inspector snapshot for the selected snake.
// Returns false when the selection no longer exists.
func (g *Game) selectedData() (ui.InspectorData, bool) {
	s := g.snakeByID(g.selectedID)
	if s == nil || (s.IsPlayer && g.gameOver) {
		return ui.InspectorData{}, false
	}

	nowMs := g.simTimeMs()
	data := ui.InspectorData{
		ID:           s.ID,
		Player:       s.IsPlayer,
		Traits:       s.Traits.String(),
		Speed:        s.Speed * s.speedFactor,
		Yaw:          s.Yaw,
		Pitch:        s.Pitch,
		Length:       s.Length(),
		NibblesEaten: s.NibblesEaten,
	}

	if !s.IsPlayer {
		if ms := g.cfg.Shadow.InvulnMs; ms > 0 && s.InvulnUntil > nowMs {
			data.InvulnFrac = float32((s.InvulnUntil - nowMs) / ms)
		}
		if ms := g.cfg.Shadow.ReflectMs; ms > 0 && s.ReflectUntil > nowMs {
			data.ReflectFrac = float32((s.ReflectUntil - nowMs) / ms)
		}
	}

	if life := g.lifeTracker.Get(s.ID); life != nil {
		data.SurvivalSec = life.SurvivalTimeSec
		data.Distance = life.Distance
		data.WallClamps = life.WallClamps
		data.Crossings = life.Crossings
		data.PeakLength = life.PeakLength
	}
	return data, true
}
