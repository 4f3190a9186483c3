package ui

import rl "github.com/gen2brain/raylib-go/raylib"

// Overlay identifiers.
const (
	OverlayCues           = "cues"
	OverlayCellOccupancy  = "cell_occupancy"
	OverlayTrails         = "trails"
	OverlayCollisionRadii = "collision_radii"
	OverlayHeadings       = "headings"
	OverlayPerf           = "perf"
)

// OverlayDescriptor describes a toggleable debug overlay.
type OverlayDescriptor struct {
	ID          string
	Name        string
	Description string
	Key         int32  // keyboard shortcut
	Category    string // grouping in the controls panel

	// Exclusive lists overlay IDs that get disabled when this one is
	// enabled (overlays that would draw over each other).
	Exclusive []string

	Enabled bool
}

// OverlayRegistry manages the set of available overlays.
type OverlayRegistry struct {
	overlays []*OverlayDescriptor
	byID     map[string]*OverlayDescriptor
}

// NewOverlayRegistry creates a registry with the standard overlays.
func NewOverlayRegistry() *OverlayRegistry {
	r := &OverlayRegistry{byID: make(map[string]*OverlayDescriptor)}

	r.Register(&OverlayDescriptor{
		ID:          OverlayCues,
		Name:        "Effect Cues",
		Description: "Pickup, dissolve, spawn and boundary effects",
		Key:         rl.KeyM,
		Category:    "visual",
		Enabled:     true,
	})
	r.Register(&OverlayDescriptor{
		ID:          OverlayCellOccupancy,
		Name:        "Cell Occupancy",
		Description: "Spatial index cells shaded by entry count",
		Key:         rl.KeyG,
		Category:    "debug",
		Exclusive:   []string{OverlayTrails},
	})
	r.Register(&OverlayDescriptor{
		ID:          OverlayTrails,
		Name:        "Trails",
		Description: "Head trail history for every snake",
		Key:         rl.KeyT,
		Category:    "visual",
		Exclusive:   []string{OverlayCellOccupancy},
	})
	r.Register(&OverlayDescriptor{
		ID:          OverlayCollisionRadii,
		Name:        "Collision Radii",
		Description: "Collision distance spheres around snake heads",
		Key:         rl.KeyB,
		Category:    "debug",
	})
	r.Register(&OverlayDescriptor{
		ID:          OverlayHeadings,
		Name:        "Headings",
		Description: "Forward vectors and shadow reflection targets",
		Key:         rl.KeyV,
		Category:    "visual",
	})
	r.Register(&OverlayDescriptor{
		ID:          OverlayPerf,
		Name:        "Performance",
		Description: "Per-phase tick timing panel",
		Key:         rl.KeyP,
		Category:    "debug",
	})

	return r
}

// Register adds an overlay to the registry.
func (r *OverlayRegistry) Register(d *OverlayDescriptor) {
	r.overlays = append(r.overlays, d)
	r.byID[d.ID] = d
}

// Get returns the descriptor for an overlay ID, or nil.
func (r *OverlayRegistry) Get(id string) *OverlayDescriptor {
	return r.byID[id]
}

// IsEnabled reports whether an overlay is active.
func (r *OverlayRegistry) IsEnabled(id string) bool {
	if d := r.byID[id]; d != nil {
		return d.Enabled
	}
	return false
}

// SetEnabled sets an overlay's state, disabling exclusive peers when
// turning it on.
func (r *OverlayRegistry) SetEnabled(id string, enabled bool) {
	d := r.byID[id]
	if d == nil {
		return
	}
	if enabled {
		for _, other := range d.Exclusive {
			if o := r.byID[other]; o != nil {
				o.Enabled = false
			}
		}
	}
	d.Enabled = enabled
}

// Toggle flips an overlay's state.
func (r *OverlayRegistry) Toggle(id string) {
	if d := r.byID[id]; d != nil {
		r.SetEnabled(id, !d.Enabled)
	}
}

// All returns every registered overlay in registration order.
func (r *OverlayRegistry) All() []*OverlayDescriptor {
	return r.overlays
}

// ByCategory returns the overlays in one category, in registration order.
func (r *OverlayRegistry) ByCategory(category string) []*OverlayDescriptor {
	var out []*OverlayDescriptor
	for _, d := range r.overlays {
		if d.Category == category {
			out = append(out, d)
		}
	}
	return out
}

// Categories returns the distinct categories in first-seen order.
func (r *OverlayRegistry) Categories() []string {
	var out []string
	seen := make(map[string]bool)
	for _, d := range r.overlays {
		if !seen[d.Category] {
			seen[d.Category] = true
			out = append(out, d.Category)
		}
	}
	return out
}

// EnabledOverlays returns the IDs of all active overlays.
func (r *OverlayRegistry) EnabledOverlays() []string {
	var out []string
	for _, d := range r.overlays {
		if d.Enabled {
			out = append(out, d.ID)
		}
	}
	return out
}

// HandleKeyPress toggles the overlay bound to key, returning true if
// one matched.
func (r *OverlayRegistry) HandleKeyPress(key int32) bool {
	for _, d := range r.overlays {
		if d.Key == key {
			r.Toggle(d.ID)
			return true
		}
	}
	return false
}
