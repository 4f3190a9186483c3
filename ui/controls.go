package ui

import (
	"fmt"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/AdrianBisson/YEN/config"
)

// ControlsPanel is the TAB-toggled settings panel: live-tunable
// parameters up top, overlay switches below. Slider changes write
// straight into the config and take effect on the next tick.
type ControlsPanel struct {
	renderer   *Renderer
	x, y       int32
	width      int32
	lastHeight int32
	visible    bool
}

// NewControlsPanel creates the panel anchored to the right screen edge.
func NewControlsPanel(screenW int32) *ControlsPanel {
	width := int32(280)
	return &ControlsPanel{
		renderer: NewRenderer(),
		x:        screenW - width - 10,
		y:        10,
		width:    width,
	}
}

// Toggle flips panel visibility.
func (c *ControlsPanel) Toggle() { c.visible = !c.visible }

// IsVisible reports whether the panel is shown.
func (c *ControlsPanel) IsVisible() bool { return c.visible }

// Resize re-anchors the panel after a window resize.
func (c *ControlsPanel) Resize(screenW int32) {
	c.x = screenW - c.width - 10
}

// Contains reports whether a screen point falls inside the open panel.
// Selection clicks use this to avoid picking through it.
func (c *ControlsPanel) Contains(p rl.Vector2) bool {
	if !c.visible {
		return false
	}
	return p.X >= float32(c.x) && p.X <= float32(c.x+c.width) &&
		p.Y >= float32(c.y) && p.Y <= float32(c.y+c.lastHeight)
}

// Draw renders the panel and applies slider edits to cfg. Returns true
// when the restart button was clicked.
func (c *ControlsPanel) Draw(cfg *config.Config, overlays *OverlayRegistry) bool {
	if !c.visible {
		return false
	}

	r := c.renderer
	th := r.Theme

	sliderRows := int32(6)
	toggleRows := int32(len(overlays.All()) + len(overlays.Categories()))
	height := th.Padding*2 + th.LineHeight*(2+sliderRows+toggleRows) + th.SectionSpacing*3 + 30
	c.lastHeight = height

	r.DrawPanel(c.x, c.y, c.width, height)

	x := c.x + th.Padding
	y := c.y + th.Padding

	y = r.DrawSectionHeader(x, y, "SETTINGS")

	cfg.Snake.Speed = float64(c.slider(x, y, "player speed", float32(cfg.Snake.Speed), 0.05, 0.8, "%.2f"))
	y += th.LineHeight
	cfg.Shadow.Speed = float64(c.slider(x, y, "shadow speed", float32(cfg.Shadow.Speed), 0.05, 0.8, "%.2f"))
	y += th.LineHeight
	cfg.Shadow.SeekGain = float64(c.slider(x, y, "seek gain", float32(cfg.Shadow.SeekGain), 0.01, 0.3, "%.2f"))
	y += th.LineHeight

	delaySec := c.slider(x, y, "spawn delay", float32(cfg.Shadow.SpawnDelayMs/1000), 0.5, 10, "%.1fs")
	cfg.Shadow.SpawnDelayMs = float64(delaySec) * 1000
	y += th.LineHeight

	nibbleSec := c.slider(x, y, "nibble every", float32(cfg.Nibbles.SpawnIntervalMs/1000), 0.2, 10, "%.1fs")
	cfg.Nibbles.SpawnIntervalMs = float64(nibbleSec) * 1000
	y += th.LineHeight

	maxShadows := c.slider(x, y, "max shadows", float32(cfg.Shadow.MaxShadows), 0, 12, "%.0f")
	cfg.Shadow.MaxShadows = int(maxShadows + 0.5)
	y += th.LineHeight

	y = r.DrawSpacer(y)

	for _, cat := range overlays.Categories() {
		y = r.DrawSectionHeader(x, y, fmt.Sprintf("%s OVERLAYS", categoryTitle(cat)))
		for _, d := range overlays.ByCategory(cat) {
			y = c.drawToggle(x, y, d, overlays)
		}
	}

	y = r.DrawSpacer(y)
	restart := gui.Button(rl.Rectangle{
		X:      float32(x),
		Y:      float32(y),
		Width:  float32(c.width - 2*th.Padding),
		Height: 22,
	}, "Restart Run")

	return restart
}

// slider draws a labeled raygui slider row and returns the new value.
func (c *ControlsPanel) slider(x, y int32, label string, value, lo, hi float32, format string) float32 {
	th := c.renderer.Theme
	c.renderer.DrawLabel(x, y, label)

	bounds := rl.Rectangle{
		X:      float32(x + th.LabelWidth),
		Y:      float32(y + 2),
		Width:  float32(c.width - th.LabelWidth - 2*th.Padding - 46),
		Height: 12,
	}
	return gui.SliderBar(bounds, "", fmt.Sprintf(format, value), value, lo, hi)
}

// drawToggle draws one overlay row: status square, name, key hint.
// Clicking the row toggles the overlay.
func (c *ControlsPanel) drawToggle(x, y int32, d *OverlayDescriptor, overlays *OverlayRegistry) int32 {
	th := c.renderer.Theme

	boxSize := int32(10)
	boxY := y + (th.LineHeight-boxSize)/2 - 1
	if d.Enabled {
		rl.DrawRectangle(x, boxY, boxSize, boxSize, th.AccentColor)
	} else {
		rl.DrawRectangle(x, boxY, boxSize, boxSize, th.BarBg)
	}
	rl.DrawRectangleLines(x, boxY, boxSize, boxSize, th.PanelBorder)

	rl.DrawText(d.Name, x+boxSize+6, y, th.FontSize, th.LabelColor)

	keyHint := fmt.Sprintf("[%c]", rune(d.Key))
	hintW := rl.MeasureText(keyHint, th.FontSize)
	rl.DrawText(keyHint, c.x+c.width-th.Padding-hintW, y, th.FontSize, th.ValueColor)

	rowBounds := rl.Rectangle{
		X:      float32(x),
		Y:      float32(y),
		Width:  float32(c.width - 2*th.Padding),
		Height: float32(th.LineHeight),
	}
	if rl.IsMouseButtonPressed(rl.MouseLeftButton) &&
		rl.CheckCollisionPointRec(rl.GetMousePosition(), rowBounds) {
		overlays.Toggle(d.ID)
	}

	return y + th.LineHeight
}

func categoryTitle(cat string) string {
	switch cat {
	case "debug":
		return "DEBUG"
	case "visual":
		return "VISUAL"
	default:
		return cat
	}
}
