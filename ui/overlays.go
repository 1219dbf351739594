package ui

import rl "github.com/gen2brain/raylib-go/raylib"

// OverlayID names a toggleable layer.
type OverlayID string

// Overlays drawn over the cloth.
const (
	OverlayDecals     OverlayID = "decals"
	OverlayScarsOnly  OverlayID = "scars_only"
	OverlayPinned     OverlayID = "pinned"
	OverlayFrameIndex OverlayID = "frame_index"
	OverlayPointerRay OverlayID = "pointer_ray"
)

// Overlay describes one toggleable layer and its hotkey.
type Overlay struct {
	ID       OverlayID
	Name     string
	Key      int32 // raylib key code, 0 for none
	KeyLabel string
	Category string
	Default  bool
}

// OverlayRegistry holds overlays in display order with their current state.
type OverlayRegistry struct {
	list []Overlay
	on   map[OverlayID]bool
}

// NewOverlayRegistry creates a registry with the standard overlays.
func NewOverlayRegistry() *OverlayRegistry {
	r := &OverlayRegistry{on: make(map[OverlayID]bool)}
	for _, o := range []Overlay{
		{OverlayDecals, "Blood Decals", rl.KeyB, "B", "visual", true},
		{OverlayScarsOnly, "Scars Only", rl.KeyS, "S", "visual", false},
		{OverlayPinned, "Pinned Particles", rl.KeyP, "P", "debug", false},
		{OverlayFrameIndex, "Index Bounds", rl.KeyQ, "Q", "debug", false},
		{OverlayPointerRay, "Pointer Ray", rl.KeyR, "R", "debug", false},
	} {
		r.Register(o)
	}
	return r
}

// Register appends an overlay in its default state.
func (r *OverlayRegistry) Register(o Overlay) {
	r.list = append(r.list, o)
	r.on[o.ID] = o.Default
}

// Toggle flips an overlay and returns its new state. Unknown IDs stay off.
func (r *OverlayRegistry) Toggle(id OverlayID) bool {
	if _, ok := r.on[id]; !ok {
		return false
	}
	r.on[id] = !r.on[id]
	return r.on[id]
}

// SetEnabled sets an overlay's state. Unknown IDs are ignored.
func (r *OverlayRegistry) SetEnabled(id OverlayID, enabled bool) {
	if _, ok := r.on[id]; ok {
		r.on[id] = enabled
	}
}

// IsEnabled reports whether an overlay is on.
func (r *OverlayRegistry) IsEnabled(id OverlayID) bool {
	return r.on[id]
}

// Categories returns the categories in first-seen order.
func (r *OverlayRegistry) Categories() []string {
	var cats []string
	seen := make(map[string]bool)
	for _, o := range r.list {
		if !seen[o.Category] {
			seen[o.Category] = true
			cats = append(cats, o.Category)
		}
	}
	return cats
}

// ByCategory returns the overlays in a category, in display order.
func (r *OverlayRegistry) ByCategory(category string) []Overlay {
	var out []Overlay
	for _, o := range r.list {
		if o.Category == category {
			out = append(out, o)
		}
	}
	return out
}

// HandleKeyPress toggles the overlay bound to key. ok is false when no
// overlay uses the key.
func (r *OverlayRegistry) HandleKeyPress(key int32) (id OverlayID, enabled, ok bool) {
	for _, o := range r.list {
		if o.Key != 0 && o.Key == key {
			return o.ID, r.Toggle(o.ID), true
		}
	}
	return "", false, false
}
