// Package mask extracts named regions and sample points from color-coded mask images.
//
// A mask is drawn on top of a map: every fully opaque pixel belongs to a region, and the
// region is identified by the pixel's hue. Only a coarse grid of pixels is sampled. Each
// sampled opaque pixel grows the bounding box of its region and is also reported as a
// sample point. All output is in world coordinates: origin at the image center, y up.
package mask

import (
	"image"
	"image/color"
	"math"
	"sort"

	"gonum.org/v1/gonum/spatial/r2"
)

// Extraction defaults.
const (
	DefaultGridLines    = 100 // Grid lines along the shorter image side
	DefaultHuePrecision = 2   // Decimal digits kept in region names
	MaxHuePrecision     = 6   // Higher precisions are clamped
)

// Options controls grid sampling and region naming.
type Options struct {
	Step         int // Sampling step in pixels (0 = derive from image size)
	GridLines    int // Divisor for the derived step (0 = DefaultGridLines)
	HuePrecision int // Decimal digits of hue kept in names (negative = full float32 precision)
}

// DefaultOptions returns the options used by Extract.
func DefaultOptions() Options {
	return Options{
		GridLines:    DefaultGridLines,
		HuePrecision: DefaultHuePrecision,
	}
}

// StepFor returns the sampling step for a w×h image.
// An explicit Step wins; otherwise the step is min(w, h)/GridLines, never below 1.
func (o Options) StepFor(w, h int) int {
	if o.Step > 0 {
		return o.Step
	}
	lines := o.GridLines
	if lines <= 0 {
		lines = DefaultGridLines
	}
	return max(1, min(w, h)/lines)
}

// Result holds the regions and sample points found in a mask.
type Result struct {
	// Regions maps a hue name to its bounding box in world coordinates.
	Regions map[string]r2.Box
	// Points lists sampled opaque pixels in world coordinates, in scan order
	// (rows top to bottom, columns left to right within a row).
	Points []r2.Vec
}

// Len returns the number of regions.
func (r Result) Len() int {
	return len(r.Regions)
}

// Names returns the region names in ascending order.
func (r Result) Names() []string {
	names := make([]string, 0, len(r.Regions))
	for name := range r.Regions {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Region returns the bounding box for name.
func (r Result) Region(name string) (r2.Box, bool) {
	b, ok := r.Regions[name]
	return b, ok
}

// Extract runs ExtractWithOptions with DefaultOptions.
func Extract(img image.Image) Result {
	return ExtractWithOptions(img, DefaultOptions())
}

// ExtractWithOptions scans img on a grid and returns its regions and sample points.
//
// The grid has W/step columns and H/step rows (integer division), so a trailing partial
// cell on the right or bottom edge is never sampled. Pixels that are not fully opaque are
// ignored entirely. The image is only read.
//
// A zero-size image yields an empty result; callers are expected to reject such images
// before getting here.
func ExtractWithOptions(img image.Image, opts Options) Result {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()

	step := opts.StepFor(w, h)
	xSteps := w / step
	ySteps := h / step

	offset := r2.Vec{X: float64(w / 2), Y: float64(h / 2)}

	acc := make(map[string]*pixelBounds)
	res := Result{Regions: make(map[string]r2.Box)}

	for yi := 0; yi < ySteps; yi++ {
		for xi := 0; xi < xSteps; xi++ {
			x := xi * step
			y := yi * step

			p := image.Point{X: b.Min.X + x, Y: b.Min.Y + y}
			if !p.In(b) {
				continue
			}
			c := img.At(p.X, p.Y)
			if !Opaque(c) {
				continue
			}

			res.Points = append(res.Points, ToWorld(x, y, offset))

			name := HueName(Hue(c), opts.HuePrecision)
			pb, ok := acc[name]
			if !ok {
				acc[name] = &pixelBounds{minX: x, minY: y, maxX: x, maxY: y}
				continue
			}
			pb.include(x, y)
		}
	}

	for name, pb := range acc {
		res.Regions[name] = pb.world(offset)
	}
	return res
}

// Opaque reports whether c has full alpha.
func Opaque(c color.Color) bool {
	_, _, _, a := c.RGBA()
	return a == 0xffff
}

// ToWorld maps pixel (x, y) to world space: subtract offset, then flip y.
func ToWorld(x, y int, offset r2.Vec) r2.Vec {
	v := r2.Sub(r2.Vec{X: float64(x), Y: float64(y)}, offset)
	return r2.Vec{X: v.X, Y: -v.Y}
}

// Center returns the midpoint of b.
func Center(b r2.Box) r2.Vec {
	return r2.Scale(0.5, r2.Add(b.Min, b.Max))
}

// Size returns the extent of b along each axis.
func Size(b r2.Box) r2.Vec {
	return r2.Sub(b.Max, b.Min)
}

// pixelBounds accumulates a region's bounds in pixel-grid coordinates.
type pixelBounds struct {
	minX, minY int
	maxX, maxY int
}

// include grows the bounds to cover (x, y). A coordinate can only be a new minimum or a
// new maximum on a given axis, never both, since min <= max always holds.
func (pb *pixelBounds) include(x, y int) {
	if x < pb.minX {
		pb.minX = x
	} else if x > pb.maxX {
		pb.maxX = x
	}

	if y < pb.minY {
		pb.minY = y
	} else if y > pb.maxY {
		pb.maxY = y
	}
}

// world converts the bounds to world space. The y flip turns the pixel-space minimum into
// the world-space maximum, so both corners are recomputed componentwise.
func (pb *pixelBounds) world(offset r2.Vec) r2.Box {
	a := ToWorld(pb.minX, pb.minY, offset)
	b := ToWorld(pb.maxX, pb.maxY, offset)
	return r2.Box{
		Min: r2.Vec{X: math.Min(a.X, b.X), Y: math.Min(a.Y, b.Y)},
		Max: r2.Vec{X: math.Max(a.X, b.X), Y: math.Max(a.Y, b.Y)},
	}
}
