// Centerline spline preview tool - interactive visualization with sliders.
//
// Shows how the Catmull-Rom centerline fits a head trail and where the
// body segments land along it, for tuning curve_samples and
// segment_spacing without launching the game.
//
// Usage: go run ./cmd/splinepreview
package main

import (
	"fmt"
	"math"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/AdrianBisson/YEN/systems"
)

const (
	windowWidth  = 1000
	windowHeight = 720
	previewSize  = 640
	panelWidth   = windowWidth - previewSize - 30
)

// TrailParams shapes the synthetic head trail being fitted.
type TrailParams struct {
	Points     int     // trail samples
	Step       float32 // distance between trail samples, px
	Turn       float32 // heading change per sample, radians
	WiggleAmp  float32 // lateral wiggle, px
	WiggleFreq float32

	CurveSamples   int     // spline samples per trail segment
	SegmentSpacing float32 // arc length between placed segments, px
}

func defaultParams() TrailParams {
	return TrailParams{
		Points:         18,
		Step:           28,
		Turn:           0.18,
		WiggleAmp:      8,
		WiggleFreq:     0.9,
		CurveSamples:   8,
		SegmentSpacing: 34,
	}
}

func main() {
	rl.InitWindow(windowWidth, windowHeight, "Centerline Preview")
	defer rl.CloseWindow()
	rl.SetTargetFPS(30)

	params := defaultParams()
	curve := systems.NewCurve()

	var trail []r3.Vec
	var segments []r3.Vec
	needsRebuild := true // regenerate the synthetic trail
	needsRefit := false  // refit the curve to the current trail
	dragIndex := -1

	for !rl.WindowShouldClose() {
		// Drag a trail point: click near one, hold to move it. The edit
		// survives curve_samples and spacing changes; trail-shape sliders
		// rebuild the trail and discard it.
		mouse := rl.GetMousePosition()
		if dragIndex < 0 && rl.IsMouseButtonPressed(rl.MouseButtonLeft) {
			dragIndex = trailPointAt(trail, mouse)
		}
		if dragIndex >= 0 {
			if rl.IsMouseButtonDown(rl.MouseButtonLeft) {
				trail[dragIndex] = fromScreen(mouse)
				needsRefit = true
			} else {
				dragIndex = -1
			}
		}

		if needsRebuild {
			trail = buildTrail(params)
			dragIndex = -1
			needsRebuild = false
			needsRefit = true
		}
		if needsRefit {
			curve.Fit(trail, params.CurveSamples)
			segments = placeSegments(curve, params)
			needsRefit = false
		}

		rl.BeginDrawing()
		rl.ClearBackground(rl.Color{R: 12, G: 14, B: 26, A: 255})

		drawPreview(curve, trail, segments, dragIndex)

		// Stats under the preview
		statsY := int32(previewSize + 25)
		rl.DrawText(fmt.Sprintf("arc length: %.1f px   trail: %d pts   segments placed: %d",
			curve.Length(), len(trail), len(segments)), 15, statsY, 16, rl.LightGray)

		// Control panel
		panelX := float32(previewSize + 20)
		panelY := float32(10)

		rl.DrawText("Centerline Parameters", int32(panelX), int32(panelY), 20, rl.RayWhite)
		panelY += 35

		panelY, needsRebuild = intSlider(panelX, panelY, "Trail points", &params.Points, 4, 40, needsRebuild)
		panelY, needsRebuild = floatSlider(panelX, panelY, "Sample step (px)", &params.Step, 8, 60, "%.0f", needsRebuild)
		panelY, needsRebuild = floatSlider(panelX, panelY, "Turn per sample (rad)", &params.Turn, -0.5, 0.5, "%.2f", needsRebuild)
		panelY, needsRebuild = floatSlider(panelX, panelY, "Wiggle amplitude", &params.WiggleAmp, 0, 30, "%.0f", needsRebuild)
		panelY, needsRebuild = floatSlider(panelX, panelY, "Wiggle frequency", &params.WiggleFreq, 0.1, 2.5, "%.2f", needsRebuild)

		// Separator
		rl.DrawLine(int32(panelX), int32(panelY), int32(panelX)+int32(panelWidth)-20, int32(panelY), rl.DarkGray)
		panelY += 15

		rl.DrawText("Game parameters", int32(panelX), int32(panelY), 16, rl.RayWhite)
		panelY += 25

		panelY, needsRefit = intSlider(panelX, panelY, "curve_samples", &params.CurveSamples, 1, 16, needsRefit)
		panelY, needsRefit = floatSlider(panelX, panelY, "segment_spacing (px)", &params.SegmentSpacing, 10, 60, "%.0f", needsRefit)
		panelY += 10

		// Buttons
		if gui.Button(rl.Rectangle{X: panelX, Y: panelY, Width: 120, Height: 30}, "Randomize") {
			params.Turn = float32(rl.GetRandomValue(-40, 40)) / 100
			params.WiggleAmp = float32(rl.GetRandomValue(0, 25))
			params.WiggleFreq = float32(rl.GetRandomValue(20, 200)) / 100
			needsRebuild = true
		}

		if gui.Button(rl.Rectangle{X: panelX + 130, Y: panelY, Width: 120, Height: 30}, "Reset All") {
			params = defaultParams()
			needsRebuild = true
		}
		panelY += 55

		// Output YAML
		rl.DrawText("YAML Config:", int32(panelX), int32(panelY), 16, rl.RayWhite)
		panelY += 25
		yamlLines := []string{
			"snake:",
			fmt.Sprintf("  curve_samples: %d", params.CurveSamples),
			fmt.Sprintf("  segment_spacing: %.1f", worldSpacing(params)),
		}
		for _, line := range yamlLines {
			rl.DrawText(line, int32(panelX), int32(panelY), 14, rl.Gray)
			panelY += 16
		}

		// Instructions
		rl.DrawText("Drag trail points to reshape the path", int32(panelX), int32(windowHeight-48), 12, rl.Gray)
		rl.DrawText("Press C to copy YAML to clipboard", int32(panelX), int32(windowHeight-30), 12, rl.Gray)

		// Copy to clipboard on C key
		if rl.IsKeyPressed(rl.KeyC) {
			yaml := fmt.Sprintf("snake:\n  curve_samples: %d\n  segment_spacing: %.1f",
				params.CurveSamples, worldSpacing(params))
			rl.SetClipboardText(yaml)
		}

		rl.EndDrawing()
	}
}

// worldSpacing converts the pixel spacing into world units, assuming the
// default trail step corresponds to one head advance per tick.
func worldSpacing(p TrailParams) float32 {
	return p.SegmentSpacing / p.Step * 1.8
}

// buildTrail generates a synthetic head trail, newest point first like
// the game's trail buffers.
func buildTrail(p TrailParams) []r3.Vec {
	trail := make([]r3.Vec, p.Points)

	// Walk backward from the head so the path ends center-left.
	x := float64(previewSize) * 0.72
	y := float64(previewSize) * 0.5
	heading := math.Pi // walking toward -X

	for i := 0; i < p.Points; i++ {
		wiggle := float64(p.WiggleAmp) * math.Sin(float64(i)*float64(p.WiggleFreq))

		// Wiggle displaces perpendicular to the heading.
		trail[i] = r3.Vec{
			X: x + math.Cos(heading+math.Pi/2)*wiggle,
			Y: y + math.Sin(heading+math.Pi/2)*wiggle,
		}

		x += math.Cos(heading) * float64(p.Step)
		y += math.Sin(heading) * float64(p.Step)
		heading += float64(p.Turn)
	}
	return trail
}

// placeSegments samples the fitted curve at multiples of the segment
// spacing, the same rule the game uses for body placement.
func placeSegments(curve *systems.Curve, p TrailParams) []r3.Vec {
	var out []r3.Vec
	for i := 1; ; i++ {
		want := float64(i) * float64(p.SegmentSpacing)
		if want > curve.Length() {
			break
		}
		out = append(out, curve.PointAt(want))
	}
	return out
}

func drawPreview(curve *systems.Curve, trail, segments []r3.Vec, dragIndex int) {
	rl.DrawRectangleLines(10, 10, previewSize, previewSize, rl.DarkGray)

	// Fitted centerline as a dense polyline
	steps := 200
	prev := curve.PointAt(0)
	for i := 1; i <= steps; i++ {
		s := curve.Length() * float64(i) / float64(steps)
		pt := curve.PointAt(s)
		rl.DrawLineV(toScreen(prev), toScreen(pt), rl.Color{R: 110, G: 170, B: 255, A: 255})
		prev = pt
	}

	// Raw trail samples
	for i, p := range trail {
		col := rl.Color{R: 120, G: 126, B: 150, A: 255}
		if i == 0 {
			col = rl.Color{R: 120, G: 235, B: 160, A: 255} // head
		}
		rl.DrawCircleV(toScreen(p), 4, col)
		if i == dragIndex {
			rl.DrawCircleLines(int32(toScreen(p).X), int32(toScreen(p).Y), 8, rl.RayWhite)
		}
	}

	// Placed segments
	for _, p := range segments {
		rl.DrawCircleV(toScreen(p), 7, rl.Color{R: 255, G: 200, B: 90, A: 200})
	}
}

func toScreen(p r3.Vec) rl.Vector2 {
	return rl.Vector2{X: float32(p.X) + 10, Y: float32(p.Y) + 10}
}

// fromScreen maps a screen position back into trail space, clamped to
// the preview area.
func fromScreen(v rl.Vector2) r3.Vec {
	return r3.Vec{
		X: systems.Clamp(float64(v.X)-10, 0, previewSize),
		Y: systems.Clamp(float64(v.Y)-10, 0, previewSize),
	}
}

// trailPointAt returns the index of the trail point within grab range
// of the mouse, or -1.
func trailPointAt(trail []r3.Vec, mouse rl.Vector2) int {
	const grabRadius = 10
	best := -1
	bestD := float32(grabRadius * grabRadius)
	for i, p := range trail {
		s := toScreen(p)
		dx, dy := s.X-mouse.X, s.Y-mouse.Y
		if d := dx*dx + dy*dy; d <= bestD {
			best, bestD = i, d
		}
	}
	return best
}

// floatSlider draws one labeled slider row; reports whether it changed.
func floatSlider(x, y float32, label string, value *float32, lo, hi float32, format string, dirty bool) (float32, bool) {
	rl.DrawText(label, int32(x), int32(y), 14, rl.Gray)
	y += 18
	next := gui.SliderBar(
		rl.Rectangle{X: x, Y: y, Width: float32(panelWidth - 80), Height: 20},
		fmt.Sprintf("%.1f", lo), fmt.Sprintf("%.1f", hi),
		*value, lo, hi,
	)
	rl.DrawText(fmt.Sprintf(format, *value), int32(x+float32(panelWidth-70)), int32(y+2), 16, rl.LightGray)
	if next != *value {
		*value = next
		dirty = true
	}
	return y + 35, dirty
}

// intSlider is floatSlider for integer parameters.
func intSlider(x, y float32, label string, value *int, lo, hi int, dirty bool) (float32, bool) {
	rl.DrawText(label, int32(x), int32(y), 14, rl.Gray)
	y += 18
	next := gui.SliderBar(
		rl.Rectangle{X: x, Y: y, Width: float32(panelWidth - 80), Height: 20},
		fmt.Sprintf("%d", lo), fmt.Sprintf("%d", hi),
		float32(*value), float32(lo), float32(hi),
	)
	rl.DrawText(fmt.Sprintf("%d", *value), int32(x+float32(panelWidth-70)), int32(y+2), 16, rl.LightGray)
	if int(next) != *value {
		*value = int(next)
		dirty = true
	}
	return y + 35, dirty
}
