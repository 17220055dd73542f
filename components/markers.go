package components

import "gonum.org/v1/gonum/spatial/r2"

// RegionMarker is a placeholder drawn over a named mask region on the map.
type RegionMarker struct {
	Name string
	Box  r2.Box // World-space bounds
}

// SamplePoint marks one sampled opaque mask pixel on the map.
type SamplePoint struct {
	Size float32 // Rhombus half-diagonal in world units
}
