package ui

import (
	"fmt"
	"math"
)

// InspectorData is the snapshot of one snake shown in the inspector.
// The game fills it from the live entity each frame.
type InspectorData struct {
	ID           uint32
	Player       bool
	Traits       string
	Speed        float64
	Yaw          float64
	Pitch        float64
	Length       int
	NibblesEaten int

	// Remaining spawn-phase fractions, 0 when elapsed.
	InvulnFrac  float32
	ReflectFrac float32

	SurvivalSec float64
	Distance    float64
	WallClamps  int
	Crossings   int
	PeakLength  int
}

// InspectorPanel shows details for the clicked snake. Sections are
// declared once as descriptors; Draw walks them against the current
// data snapshot.
type InspectorPanel struct {
	renderer *Renderer
	x, y     int32
	width    int32
	sections []SectionDescriptor
}

// NewInspectorPanel creates the panel anchored to the right screen
// edge, below where the controls panel opens.
func NewInspectorPanel(screenW int32) *InspectorPanel {
	width := int32(250)
	p := &InspectorPanel{
		renderer: NewRenderer(),
		x:        screenW - width - 10,
		y:        430,
		width:    width,
	}
	p.sections = buildInspectorSections()
	return p
}

// Resize re-anchors the panel after a window resize.
func (p *InspectorPanel) Resize(screenW int32) {
	p.x = screenW - p.width - 10
}

// Draw renders the inspector for the given snake.
func (p *InspectorPanel) Draw(data InspectorData) {
	r := p.renderer
	th := r.Theme

	height := p.measure(data)
	r.DrawPanel(p.x, p.y, p.width, height)

	x := p.x + th.Padding
	y := p.y + th.Padding
	for _, section := range p.sections {
		y = r.DrawSection(x, y, section, data)
	}
}

// measure computes panel height by counting the visible rows.
func (p *InspectorPanel) measure(data InspectorData) int32 {
	th := p.renderer.Theme
	height := th.Padding * 2
	for _, section := range p.sections {
		if section.Visible != nil && !section.Visible(data) {
			continue
		}
		height += th.LineHeight + th.SectionSpacing
		for _, field := range section.Fields {
			if field.Visible != nil && !field.Visible(data) {
				continue
			}
			if field.Widget == WidgetSpacer {
				height += th.SectionSpacing
			} else {
				height += th.LineHeight
			}
		}
	}
	return height
}

func buildInspectorSections() []SectionDescriptor {
	return []SectionDescriptor{
		{
			ID:    "snake",
			Title: "SNAKE",
			Fields: []FieldDescriptor{
				{
					ID: "id", Label: "id", Widget: WidgetText,
					TextGetter: func(d any) string {
						data := d.(InspectorData)
						if data.Player {
							return fmt.Sprintf("#%d (player)", data.ID)
						}
						return fmt.Sprintf("#%d (shadow)", data.ID)
					},
				},
				{
					ID: "traits", Label: "traits", Widget: WidgetText,
					Visible:    func(d any) bool { return !d.(InspectorData).Player },
					TextGetter: func(d any) string { return d.(InspectorData).Traits },
				},
				{
					ID: "speed", Label: "speed", Widget: WidgetText, Format: "%.3f",
					Getter: func(d any) float32 { return float32(d.(InspectorData).Speed) },
				},
				{
					ID: "heading", Label: "yaw / pitch", Widget: WidgetText,
					TextGetter: func(d any) string {
						data := d.(InspectorData)
						return fmt.Sprintf("%.0f° / %.0f°",
							data.Yaw*180/math.Pi, data.Pitch*180/math.Pi)
					},
				},
				{
					ID: "length", Label: "length", Widget: WidgetText, Format: "%.0f",
					Getter: func(d any) float32 { return float32(d.(InspectorData).Length) },
				},
				{
					ID: "eaten", Label: "nibbles eaten", Widget: WidgetText, Format: "%.0f",
					Getter: func(d any) float32 { return float32(d.(InspectorData).NibblesEaten) },
				},
			},
		},
		{
			ID:    "spawn_phase",
			Title: "SPAWN PHASE",
			Visible: func(d any) bool {
				data := d.(InspectorData)
				return !data.Player && (data.InvulnFrac > 0 || data.ReflectFrac > 0)
			},
			Fields: []FieldDescriptor{
				{
					ID: "invuln", Label: "invulnerable", Widget: WidgetBar, Range: DefaultRange,
					Getter: func(d any) float32 { return d.(InspectorData).InvulnFrac },
				},
				{
					ID: "reflect", Label: "on reflection", Widget: WidgetBar, Range: DefaultRange,
					Getter: func(d any) float32 { return d.(InspectorData).ReflectFrac },
				},
			},
		},
		{
			ID:    "lifetime",
			Title: "LIFETIME",
			Fields: []FieldDescriptor{
				{
					ID: "survival", Label: "alive", Widget: WidgetText,
					TextGetter: func(d any) string {
						return fmt.Sprintf("%.1fs", d.(InspectorData).SurvivalSec)
					},
				},
				{
					ID: "distance", Label: "distance", Widget: WidgetText, Format: "%.1f",
					Getter: func(d any) float32 { return float32(d.(InspectorData).Distance) },
				},
				{
					ID: "peak", Label: "peak length", Widget: WidgetText, Format: "%.0f",
					Getter: func(d any) float32 { return float32(d.(InspectorData).PeakLength) },
				},
				{
					ID: "clamps", Label: "wall clamps", Widget: WidgetText, Format: "%.0f",
					Visible: func(d any) bool { return !d.(InspectorData).Player },
					Getter:  func(d any) float32 { return float32(d.(InspectorData).WallClamps) },
				},
				{
					ID: "crossings", Label: "crossings", Widget: WidgetText, Format: "%.0f",
					Visible: func(d any) bool { return d.(InspectorData).Player },
					Getter:  func(d any) float32 { return float32(d.(InspectorData).Crossings) },
				},
			},
		},
	}
}
