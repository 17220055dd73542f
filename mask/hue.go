package mask

import (
	"image/color"
	"math"
	"strconv"

	"github.com/lucasb-eyer/go-colorful"
)

// Hue returns the hue of c in degrees, in [0, 360).
// Grays and fully transparent colors have hue 0.
func Hue(c color.Color) float64 {
	cf, ok := colorful.MakeColor(c)
	if !ok {
		return 0
	}
	h, _, _ := cf.Hsv()
	return h
}

// HueName turns a hue into a region name.
//
// The hue is rounded to precision decimal digits and printed in its shortest form, so
// 120 becomes "120" and 33.3333 becomes "33.33" at precision 2. A hue that rounds up to
// 360 wraps to "0". A negative precision skips rounding and prints the hue as a float32,
// which keeps hues that differ only past the sixth or seventh digit apart.
func HueName(hue float64, precision int) string {
	if precision < 0 {
		return strconv.FormatFloat(float64(float32(hue)), 'f', -1, 32)
	}

	p := math.Pow10(min(precision, MaxHuePrecision))
	r := math.Round(hue*p) / p
	if r >= 360 {
		r -= 360
	}
	if r == 0 {
		r = 0 // drop the sign of -0
	}
	return strconv.FormatFloat(r, 'f', -1, 64)
}
