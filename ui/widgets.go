package ui

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// Renderer draws descriptor-based widgets with a theme.
type Renderer struct {
	Theme Theme
}

// NewRenderer creates a renderer with the default theme.
func NewRenderer() *Renderer {
	return &Renderer{Theme: DefaultTheme()}
}

// DrawPanel draws a panel background with border.
func (r *Renderer) DrawPanel(x, y, width, height int32) {
	rl.DrawRectangle(x, y, width, height, r.Theme.PanelBg)
	rl.DrawRectangleLines(x, y, width, height, r.Theme.PanelBorder)
}

// DrawSectionHeader draws a section title and returns the next y position.
func (r *Renderer) DrawSectionHeader(x, y int32, title string) int32 {
	rl.DrawText(title, x, y, r.Theme.HeaderFontSize, r.Theme.SectionHeader)
	return y + r.Theme.LineHeight
}

// DrawLabel draws a field label.
func (r *Renderer) DrawLabel(x, y int32, label string) {
	rl.DrawText(label, x, y, r.Theme.FontSize, r.Theme.LabelColor)
}

// DrawValue draws a value aligned after the label column.
func (r *Renderer) DrawValue(x, y int32, value string) {
	rl.DrawText(value, x+r.Theme.LabelWidth, y, r.Theme.FontSize, r.Theme.ValueColor)
}

// DrawLabelValue draws a label/value pair and returns the next y position.
func (r *Renderer) DrawLabelValue(x, y int32, label, value string) int32 {
	r.DrawLabel(x, y, label)
	r.DrawValue(x, y, value)
	return y + r.Theme.LineHeight
}

// DrawBar draws a labeled fill bar for a normalized [0,1] value.
func (r *Renderer) DrawBar(x, y int32, label string, frac float32) int32 {
	r.DrawLabel(x, y, label)

	barX := x + r.Theme.LabelWidth
	barY := y + (r.Theme.LineHeight-r.Theme.BarHeight)/2 - 1
	if frac < 0 {
		frac = 0
	}
	if frac > 1 {
		frac = 1
	}

	rl.DrawRectangle(barX, barY, r.Theme.BarWidth, r.Theme.BarHeight, r.Theme.BarBg)
	fillW := int32(float32(r.Theme.BarWidth) * frac)
	if fillW > 0 {
		rl.DrawRectangle(barX, barY, fillW, r.Theme.BarHeight, r.Theme.BarFill)
	}
	rl.DrawRectangleLines(barX, barY, r.Theme.BarWidth, r.Theme.BarHeight, r.Theme.PanelBorder)
	return y + r.Theme.LineHeight
}

// DrawSpacer returns the y position after a vertical gap.
func (r *Renderer) DrawSpacer(y int32) int32 {
	return y + r.Theme.SectionSpacing
}

// DrawField renders one field from its descriptor and returns the next y.
func (r *Renderer) DrawField(x, y int32, field FieldDescriptor, data any) int32 {
	if field.Visible != nil && !field.Visible(data) {
		return y
	}

	switch field.Widget {
	case WidgetSection:
		return r.DrawSectionHeader(x, y, field.Label)

	case WidgetSpacer:
		return r.DrawSpacer(y)

	case WidgetBar:
		val := field.Getter(data)
		span := field.Range.Max - field.Range.Min
		frac := float32(0)
		if span > 0 {
			frac = (val - field.Range.Min) / span
		}
		return r.DrawBar(x, y, field.Label, frac)

	default: // WidgetText
		var text string
		if field.TextGetter != nil {
			text = field.TextGetter(data)
		} else if field.Getter != nil {
			format := field.Format
			if format == "" {
				format = "%.2f"
			}
			text = fmt.Sprintf(format, field.Getter(data))
		}
		return r.DrawLabelValue(x, y, field.Label, text)
	}
}

// DrawSection renders a section header plus its fields, returns the next y.
func (r *Renderer) DrawSection(x, y int32, section SectionDescriptor, data any) int32 {
	if section.Visible != nil && !section.Visible(data) {
		return y
	}

	y = r.DrawSectionHeader(x, y, section.Title)
	for _, field := range section.Fields {
		y = r.DrawField(x, y, field, data)
	}
	return r.DrawSpacer(y)
}
