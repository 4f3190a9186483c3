package game

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/AdrianBisson/YEN/systems"
)

// handleInput processes keyboard and mouse input for one frame.
func (g *Game) handleInput() {
	g.handleResize()

	// Fullscreen toggle
	if rl.IsKeyPressed(rl.KeyF11) {
		rl.ToggleFullscreen()
	}

	if rl.IsKeyPressed(rl.KeySpace) {
		g.paused = !g.paused
	}

	// Steps-per-update control with < > keys (comma and period)
	if rl.IsKeyPressed(rl.KeyComma) && g.stepsPerUpdate > 1 {
		g.stepsPerUpdate--
	}
	if rl.IsKeyPressed(rl.KeyPeriod) && g.stepsPerUpdate < 10 {
		g.stepsPerUpdate++
	}

	if rl.IsKeyPressed(rl.KeyTab) {
		g.controls.Toggle()
	}

	// Restart only once the run has ended; accidental R mid-run would
	// throw the whole arena away.
	if rl.IsKeyPressed(rl.KeyR) && g.gameOver {
		g.Reset()
	}

	if rl.IsKeyPressed(rl.KeyHome) {
		g.cam.Reset(g.player.HeadPos(), g.player.Yaw)
	}

	// Overlay hotkeys route through the registry so the bindings live
	// next to the overlay definitions.
	for key := rl.GetKeyPressed(); key != 0; key = rl.GetKeyPressed() {
		g.uiOverlays.HandleKeyPress(key)
	}

	g.handleSelection()
	g.handleSteering()
}

// handleSteering applies held steering keys to the player heading. The
// turn covers the sim time this frame will advance, so turn authority
// per tick stays the same at any speed multiplier.
func (g *Game) handleSteering() {
	if g.paused || g.gameOver {
		return
	}

	dt := g.cfg.Sim.DT * float64(g.stepsPerUpdate)

	yawIn := 0.0
	if rl.IsKeyDown(rl.KeyA) || rl.IsKeyDown(rl.KeyLeft) {
		yawIn++
	}
	if rl.IsKeyDown(rl.KeyD) || rl.IsKeyDown(rl.KeyRight) {
		yawIn--
	}

	pitchIn := 0.0
	if rl.IsKeyDown(rl.KeyW) || rl.IsKeyDown(rl.KeyUp) {
		pitchIn++
	}
	if rl.IsKeyDown(rl.KeyS) || rl.IsKeyDown(rl.KeyDown) {
		pitchIn--
	}

	if yawIn != 0 {
		g.player.Yaw = systems.WrapAngle(g.player.Yaw + yawIn*g.cfg.Snake.YawRate*dt)
	}
	if pitchIn != 0 {
		g.player.Pitch = clampPitch(g.player.Pitch + pitchIn*g.cfg.Snake.PitchRate*dt)
	}
}

// handleResize propagates a changed window size to everything that
// caches dimensions.
func (g *Game) handleResize() {
	if !rl.IsWindowResized() {
		return
	}
	w := int32(rl.GetScreenWidth())
	h := int32(rl.GetScreenHeight())

	g.cam.Resize(float32(w), float32(h))
	g.background.Resize(w, h)
	g.controls.Resize(w)
	g.inspector.Resize(w)
}
