package ui

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/AdrianBisson/YEN/telemetry"
)

// HUDData carries the per-frame values the HUD displays.
type HUDData struct {
	Score      int
	Length     int
	Shadows    int
	Nibbles    int
	Tick       int32
	SimTimeSec float64
	Speed      int // simulation steps per frame
	FPS        int32
	Particles  int
	Paused     bool
	GameOver   bool

	ScreenWidth  int32
	ScreenHeight int32
}

// HUD draws the always-on status readout and state banners.
type HUD struct {
	renderer *Renderer
}

// NewHUD creates the HUD.
func NewHUD() *HUD {
	return &HUD{renderer: NewRenderer()}
}

// Draw renders the HUD for the current frame.
func (h *HUD) Draw(data HUDData) {
	rl.DrawText(fmt.Sprintf("Score %d", data.Score), 10, 10, 30, rl.White)

	line := fmt.Sprintf("length %d   shadows %d   nibbles %d", data.Length, data.Shadows, data.Nibbles)
	rl.DrawText(line, 10, 46, 10, h.renderer.Theme.LabelColor)

	line = fmt.Sprintf("tick %d   t=%.0fs   speed %dx   fps %d", data.Tick, data.SimTimeSec, data.Speed, data.FPS)
	rl.DrawText(line, 10, 60, 10, h.renderer.Theme.LabelColor)

	if data.Particles > 0 {
		rl.DrawText(fmt.Sprintf("particles %d", data.Particles), 10, 74, 10, h.renderer.Theme.BarBg)
	}

	h.drawKeyLegend(data.ScreenWidth, data.ScreenHeight)

	if data.GameOver {
		h.drawBanner(data, "GAME OVER", "press R to restart", rl.Color{R: 235, G: 90, B: 90, A: 255})
	} else if data.Paused {
		h.drawBanner(data, "PAUSED", "press SPACE to resume", rl.Color{R: 255, G: 200, B: 90, A: 255})
	}
}

func (h *HUD) drawBanner(data HUDData, title, hint string, col rl.Color) {
	titleW := rl.MeasureText(title, 40)
	hintW := rl.MeasureText(hint, 10)
	cx := data.ScreenWidth / 2
	cy := data.ScreenHeight / 2

	rl.DrawRectangle(0, cy-46, data.ScreenWidth, 92, rl.Color{R: 6, G: 8, B: 20, A: 190})
	rl.DrawText(title, cx-titleW/2, cy-32, 40, col)
	rl.DrawText(hint, cx-hintW/2, cy+18, 10, h.renderer.Theme.LabelColor)
}

func (h *HUD) drawKeyLegend(screenW, screenH int32) {
	legend := "WASD/arrows steer   SPACE pause   TAB settings   ,/. speed   click inspect   HOME camera"
	w := rl.MeasureText(legend, 10)
	rl.DrawText(legend, screenW/2-w/2, screenH-22, 10, rl.Color{R: 110, G: 118, B: 140, A: 255})
}

// PerfPanel renders per-phase tick timing, fed by the perf overlay.
type PerfPanel struct {
	renderer *Renderer
	x, y     int32
	width    int32
}

// NewPerfPanel creates the panel at a fixed slot under the HUD readout.
func NewPerfPanel() *PerfPanel {
	return &PerfPanel{renderer: NewRenderer(), x: 10, y: 96, width: 230}
}

// phaseOrder fixes the row order so the panel doesn't jitter with map
// iteration.
var phaseOrder = []string{
	telemetry.PhasePlayer,
	telemetry.PhaseShadows,
	telemetry.PhaseNibbleAnim,
	telemetry.PhaseBoundary,
	telemetry.PhasePickup,
	telemetry.PhaseSpawn,
	telemetry.PhaseCollision,
	telemetry.PhaseTelemetry,
}

// Draw renders the perf panel.
func (p *PerfPanel) Draw(stats telemetry.PerfStats) {
	r := p.renderer
	height := r.Theme.Padding*2 + r.Theme.LineHeight*3 + int32(len(phaseOrder))*r.Theme.LineHeight
	p.renderer.DrawPanel(p.x, p.y, p.width, height)

	x := p.x + r.Theme.Padding
	y := p.y + r.Theme.Padding

	y = r.DrawSectionHeader(x, y, "TICK TIMING")
	y = r.DrawLabelValue(x, y, "avg tick", fmt.Sprintf("%.2f ms", float64(stats.AvgTickDuration.Microseconds())/1000))
	y = r.DrawLabelValue(x, y, "throughput", fmt.Sprintf("%.0f tps", stats.TicksPerSecond))

	for _, phase := range phaseOrder {
		avg, ok := stats.PhaseAvg[phase]
		if !ok {
			continue
		}
		val := fmt.Sprintf("%5.0f us  %4.1f%%", float64(avg.Microseconds()), stats.PhasePct[phase])
		y = r.DrawLabelValue(x, y, phase, val)
	}
}
