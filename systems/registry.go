package systems

// SystemInfo describes a game system for UI display.
type SystemInfo struct {
	ID          string // Internal identifier (used for perf tracking)
	Name        string // Display name
	Description string // What this system does
	Category    string // Grouping (e.g., "core", "mine", "map")
}

// SystemRegistry holds metadata about all systems.
// This centralizes system naming so the UI and perf tracker stay in sync.
type SystemRegistry struct {
	systems []SystemInfo
	byID    map[string]SystemInfo
}

// NewSystemRegistry creates a registry with all known systems.
func NewSystemRegistry() *SystemRegistry {
	reg := &SystemRegistry{
		byID: make(map[string]SystemInfo),
	}
	reg.registerDefaults()
	return reg
}

// registerDefaults adds all known systems to the registry.
// Update this when adding new systems.
func (r *SystemRegistry) registerDefaults() {
	// Input
	r.Register(SystemInfo{ID: "input", Name: "Input", Description: "Reads keys, clicks and camera controls", Category: "core"})
	r.Register(SystemInfo{ID: "click", Name: "Click", Description: "Bounces and mines rocks under the cursor", Category: "mine"})

	// Mine scene
	r.Register(SystemInfo{ID: "bounce", Name: "Bounce", Description: "Advances rock bounce and ore regrowth", Category: "mine"})
	r.Register(SystemInfo{ID: "spin", Name: "Spin", Description: "Rotates the coin", Category: "mine"})

	// Map scene
	r.Register(SystemInfo{ID: "loader", Name: "Loader", Description: "Polls map asset loading", Category: "map"})
	r.Register(SystemInfo{ID: "regions", Name: "Regions", Description: "Extracts mask regions and spawns markers", Category: "map"})

	// Transitions
	r.Register(SystemInfo{ID: "fade", Name: "Fade", Description: "Runs scene fade out and fade in", Category: "core"})

	// Visual
	r.Register(SystemInfo{ID: "draw", Name: "Draw", Description: "Renders the current scene and HUD", Category: "visual"})
}

// Register adds a system to the registry.
func (r *SystemRegistry) Register(info SystemInfo) {
	r.systems = append(r.systems, info)
	r.byID[info.ID] = info
}

// GetName returns the display name for a system ID.
// Falls back to the ID itself if not found.
func (r *SystemRegistry) GetName(id string) string {
	if info, ok := r.byID[id]; ok {
		return info.Name
	}
	return id
}

// All returns all registered systems.
func (r *SystemRegistry) All() []SystemInfo {
	return r.systems
}

// ByCategory returns systems filtered by category.
func (r *SystemRegistry) ByCategory(category string) []SystemInfo {
	var result []SystemInfo
	for _, info := range r.systems {
		if info.Category == category {
			result = append(result, info)
		}
	}
	return result
}

// Categories returns all unique categories.
func (r *SystemRegistry) Categories() []string {
	seen := make(map[string]bool)
	var cats []string
	for _, info := range r.systems {
		if !seen[info.Category] {
			seen[info.Category] = true
			cats = append(cats, info.Category)
		}
	}
	return cats
}

// IDs returns all system IDs in registration order.
func (r *SystemRegistry) IDs() []string {
	ids := make([]string, len(r.systems))
	for i, info := range r.systems {
		ids[i] = info.ID
	}
	return ids
}
