// Package ui provides the 2D interface layer: HUD, settings panel,
// snake inspector, and the overlay registry. Panels are described with
// field descriptors so layout code stays out of the game loop.
package ui

import rl "github.com/gen2brain/raylib-go/raylib"

// WidgetType selects how a field is rendered.
type WidgetType int

const (
	// WidgetText renders a label with a formatted value.
	WidgetText WidgetType = iota
	// WidgetBar renders a horizontal fill bar for a [0,1] fraction.
	WidgetBar
	// WidgetSection renders a section header.
	WidgetSection
	// WidgetSpacer adds vertical space.
	WidgetSpacer
)

// FieldRange defines the min/max for bar normalization.
type FieldRange struct {
	Min float32
	Max float32
}

// DefaultRange is the standard 0-1 range.
var DefaultRange = FieldRange{Min: 0, Max: 1}

// FieldDescriptor describes a single displayable field.
type FieldDescriptor struct {
	ID     string
	Label  string
	Widget WidgetType
	Format string     // printf format for text values, e.g. "%.2f"
	Range  FieldRange // for bars

	// Getter extracts a numeric value from the data source.
	Getter func(data any) float32

	// TextGetter extracts a string value (used by WidgetText when set,
	// takes priority over Getter+Format).
	TextGetter func(data any) string

	// Visible controls conditional display. Nil means always visible.
	Visible func(data any) bool
}

// SectionDescriptor groups fields under a header.
type SectionDescriptor struct {
	ID      string
	Title   string
	Fields  []FieldDescriptor
	Visible func(data any) bool
}

// Theme holds the visual styling for panels.
type Theme struct {
	PanelBg       rl.Color
	PanelBorder   rl.Color
	SectionHeader rl.Color
	LabelColor    rl.Color
	ValueColor    rl.Color
	AccentColor   rl.Color
	BarBg         rl.Color
	BarFill       rl.Color

	Padding        int32
	LineHeight     int32
	SectionSpacing int32
	BarHeight      int32
	BarWidth       int32
	LabelWidth     int32
	FontSize       int32
	HeaderFontSize int32
}

// DefaultTheme returns the standard dark theme.
func DefaultTheme() Theme {
	return Theme{
		PanelBg:       rl.Color{R: 12, G: 14, B: 26, A: 215},
		PanelBorder:   rl.Color{R: 70, G: 90, B: 140, A: 255},
		SectionHeader: rl.Color{R: 255, G: 200, B: 90, A: 255},
		LabelColor:    rl.Color{R: 170, G: 178, B: 200, A: 255},
		ValueColor:    rl.White,
		AccentColor:   rl.Color{R: 120, G: 235, B: 160, A: 255},
		BarBg:         rl.Color{R: 36, G: 40, B: 60, A: 255},
		BarFill:       rl.Color{R: 110, G: 170, B: 255, A: 255},

		Padding:        10,
		LineHeight:     18,
		SectionSpacing: 8,
		BarHeight:      10,
		BarWidth:       110,
		LabelWidth:     105,
		FontSize:       10,
		HeaderFontSize: 10,
	}
}
