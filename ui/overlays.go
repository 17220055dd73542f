package ui

import (
	rl "github.com/gen2brain/raylib-go/raylib"
)

// OverlayID uniquely identifies an overlay.
type OverlayID string

// Standard overlay IDs.
const (
	OverlayBounds   OverlayID = "bounds"
	OverlayRegions  OverlayID = "regions"
	OverlayPoints   OverlayID = "points"
	OverlayMask     OverlayID = "mask"
	OverlayPerf     OverlayID = "perf"
	OverlayControls OverlayID = "controls"
)

// OverlayDescriptor defines an overlay that can be toggled.
type OverlayDescriptor struct {
	ID       OverlayID
	Name     string
	Key      int32  // Keyboard key to toggle (0 = no key)
	KeyLabel string // Key label for display
	Category string // "mine", "map" or "debug"
	Default  bool   // Enabled when registered
}

// OverlayRegistry manages overlay state and metadata.
type OverlayRegistry struct {
	descriptors []OverlayDescriptor
	byID        map[OverlayID]OverlayDescriptor
	enabled     map[OverlayID]bool
}

// NewOverlayRegistry creates a registry with the default overlays.
// showBounds sets the initial state of the bounding box overlay.
func NewOverlayRegistry(showBounds bool) *OverlayRegistry {
	reg := &OverlayRegistry{
		byID:    make(map[OverlayID]OverlayDescriptor),
		enabled: make(map[OverlayID]bool),
	}
	reg.registerDefaults(showBounds)
	return reg
}

func (r *OverlayRegistry) registerDefaults(showBounds bool) {
	r.Register(OverlayDescriptor{ID: OverlayBounds, Name: "Bounding Boxes", Key: rl.KeyF3, KeyLabel: "F3", Category: "debug", Default: showBounds})
	r.Register(OverlayDescriptor{ID: OverlayPerf, Name: "Perf Panel", Key: rl.KeyF4, KeyLabel: "F4", Category: "debug"})
	r.Register(OverlayDescriptor{ID: OverlayControls, Name: "Controls", Key: rl.KeyF1, KeyLabel: "F1", Category: "debug", Default: true})

	r.Register(OverlayDescriptor{ID: OverlayRegions, Name: "Region Boxes", Key: rl.KeyR, KeyLabel: "R", Category: "map", Default: true})
	r.Register(OverlayDescriptor{ID: OverlayPoints, Name: "Sample Points", Key: rl.KeyP, KeyLabel: "P", Category: "map", Default: true})
	r.Register(OverlayDescriptor{ID: OverlayMask, Name: "Mask Image", Key: rl.KeyM, KeyLabel: "M", Category: "map", Default: true})
}

// Register adds an overlay to the registry.
func (r *OverlayRegistry) Register(desc OverlayDescriptor) {
	r.descriptors = append(r.descriptors, desc)
	r.byID[desc.ID] = desc
	r.enabled[desc.ID] = desc.Default
}

// Toggle switches an overlay on/off and returns the new state.
func (r *OverlayRegistry) Toggle(id OverlayID) bool {
	if _, ok := r.byID[id]; !ok {
		return false
	}
	r.enabled[id] = !r.enabled[id]
	return r.enabled[id]
}

// IsEnabled returns whether an overlay is active.
func (r *OverlayRegistry) IsEnabled(id OverlayID) bool {
	return r.enabled[id]
}

// ByCategory returns overlays filtered by category.
func (r *OverlayRegistry) ByCategory(category string) []OverlayDescriptor {
	var result []OverlayDescriptor
	for _, desc := range r.descriptors {
		if desc.Category == category {
			result = append(result, desc)
		}
	}
	return result
}

// Categories returns all unique categories in order.
func (r *OverlayRegistry) Categories() []string {
	seen := make(map[string]bool)
	var cats []string
	for _, desc := range r.descriptors {
		if !seen[desc.Category] {
			seen[desc.Category] = true
			cats = append(cats, desc.Category)
		}
	}
	return cats
}

// HandleKeyPress toggles the overlay bound to key.
// Returns the overlay ID, its new state, and whether a toggle occurred.
func (r *OverlayRegistry) HandleKeyPress(key int32) (OverlayID, bool, bool) {
	for _, desc := range r.descriptors {
		if desc.Key == key {
			return desc.ID, r.Toggle(desc.ID), true
		}
	}
	return "", false, false
}
