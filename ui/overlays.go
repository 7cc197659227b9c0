package ui

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/trails/renderer"
)

// OverlayID uniquely identifies an overlay.
type OverlayID string

// Standard overlay IDs.
const (
	OverlayFoodTrail OverlayID = "food_trail"
	OverlayBaseTrail OverlayID = "base_trail"
	OverlayGridLines OverlayID = "grid_lines"
	OverlayHeadings  OverlayID = "headings"
	OverlayMemory    OverlayID = "memory"
	OverlayPerf      OverlayID = "perf"
)

// OverlayDescriptor defines an overlay that can be toggled.
type OverlayDescriptor struct {
	ID          OverlayID
	Name        string
	Description string
	Key         int32  // 0 = no key
	KeyLabel    string // e.g. "F"
	Category    string
	Default     bool
}

// OverlayRegistry manages overlay state and metadata.
type OverlayRegistry struct {
	descriptors []OverlayDescriptor
	byID        map[OverlayID]OverlayDescriptor
	enabled     map[OverlayID]bool
}

// NewOverlayRegistry creates a registry with default overlays.
func NewOverlayRegistry() *OverlayRegistry {
	reg := &OverlayRegistry{
		byID:    make(map[OverlayID]OverlayDescriptor),
		enabled: make(map[OverlayID]bool),
	}
	reg.registerDefaults()
	return reg
}

func (r *OverlayRegistry) registerDefaults() {
	r.Register(OverlayDescriptor{
		ID:          OverlayFoodTrail,
		Name:        "Food Trail",
		Description: "Pheromone leading to the sugar",
		Key:         rl.KeyF,
		KeyLabel:    "F",
		Category:    "trails",
		Default:     true,
	})
	r.Register(OverlayDescriptor{
		ID:          OverlayBaseTrail,
		Name:        "Base Trail",
		Description: "Pheromone leading home",
		Key:         rl.KeyB,
		KeyLabel:    "B",
		Category:    "trails",
		Default:     true,
	})
	r.Register(OverlayDescriptor{
		ID:          OverlayGridLines,
		Name:        "Grid",
		Description: "Cell boundaries",
		Key:         rl.KeyG,
		KeyLabel:    "G",
		Category:    "debug",
	})
	r.Register(OverlayDescriptor{
		ID:          OverlayHeadings,
		Name:        "Headings",
		Description: "Direction of each ant's last move",
		Key:         rl.KeyH,
		KeyLabel:    "H",
		Category:    "debug",
	})
	r.Register(OverlayDescriptor{
		ID:          OverlayMemory,
		Name:        "Ant Memory",
		Description: "Recently visited cells of the selected ant",
		Key:         rl.KeyM,
		KeyLabel:    "M",
		Category:    "debug",
		Default:     true,
	})
	r.Register(OverlayDescriptor{
		ID:          OverlayPerf,
		Name:        "Perf",
		Description: "Per-phase tick timings",
		Key:         rl.KeyP,
		KeyLabel:    "P",
		Category:    "debug",
	})
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

// HandleKeys toggles every overlay whose key was pressed this frame.
func (r *OverlayRegistry) HandleKeys() {
	for _, desc := range r.descriptors {
		if desc.Key != 0 && rl.IsKeyPressed(desc.Key) {
			r.Toggle(desc.ID)
		}
	}
}

// Layers converts overlay state into grid renderer layers.
func (r *OverlayRegistry) Layers() renderer.Layers {
	return renderer.Layers{
		FoodTrail: r.enabled[OverlayFoodTrail],
		BaseTrail: r.enabled[OverlayBaseTrail],
		GridLines: r.enabled[OverlayGridLines],
		Headings:  r.enabled[OverlayHeadings],
	}
}
