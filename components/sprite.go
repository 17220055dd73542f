package components

// Anchor selects which point of a sprite sits at its Position.
type Anchor uint8

const (
	AnchorCenter Anchor = iota
	AnchorTopLeft
)

// ParseAnchor maps a config anchor name to an Anchor.
// Unknown names fall back to AnchorCenter.
func ParseAnchor(name string) Anchor {
	if name == "top_left" {
		return AnchorTopLeft
	}
	return AnchorCenter
}

// Sprite references a texture owned by the asset store.
type Sprite struct {
	Texture int     // Index into the loaded texture table
	Width   float32 // Texture size in pixels
	Height  float32
	Anchor  Anchor
}

// Bounds returns the world-space rectangle covered by a sprite at pos with scale.
func (s Sprite) Bounds(pos Position, scale Scale) (minX, minY, maxX, maxY float32) {
	w := s.Width * scale.X
	h := s.Height * scale.Y

	switch s.Anchor {
	case AnchorTopLeft:
		// y is up, so the sprite hangs down from its anchor
		return pos.X, pos.Y - h, pos.X + w, pos.Y
	default:
		return pos.X - w/2, pos.Y - h/2, pos.X + w/2, pos.Y + h/2
	}
}
