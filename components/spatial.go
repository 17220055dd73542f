package components

// Position is an entity's world position. World space has its origin at the screen
// center with y pointing up; Z orders sprites back to front.
type Position struct {
	X, Y, Z float32
}

// Scale is an entity's render scale.
type Scale struct {
	X, Y float32
}

// Spin rotates an entity around its vertical axis.
type Spin struct {
	Angle float32 // radians
	Rate  float32 // radians per second
}
