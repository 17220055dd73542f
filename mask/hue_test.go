package mask

import (
	"image/color"
	"math"
	"testing"
)

func TestHue(t *testing.T) {
	tests := []struct {
		name string
		c    color.Color
		want float64
	}{
		{"red", color.NRGBA{R: 255, A: 255}, 0},
		{"yellow", color.NRGBA{R: 255, G: 255, A: 255}, 60},
		{"green", color.NRGBA{G: 255, A: 255}, 120},
		{"blue", color.NRGBA{B: 255, A: 255}, 240},
		{"magenta", color.NRGBA{R: 255, B: 255, A: 255}, 300},
		{"gray", color.NRGBA{R: 90, G: 90, B: 90, A: 255}, 0},
		{"transparent", color.NRGBA{}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Hue(tt.c); math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("expected hue %v, got %v", tt.want, got)
			}
		})
	}
}

func TestHueName(t *testing.T) {
	tests := []struct {
		name      string
		hue       float64
		precision int
		want      string
	}{
		{"integer", 120, 2, "120"},
		{"rounded", 33.333333, 2, "33.33"},
		{"drops extra digits", 10.04, 1, "10"},
		{"zero digits", 59.6, 0, "60"},
		{"wraps at 360", 359.999, 2, "0"},
		{"zero", 0, 2, "0"},
		{"full precision", 12.5, -1, "12.5"},
		{"full precision integer", 240, -1, "240"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := HueName(tt.hue, tt.precision); got != tt.want {
				t.Errorf("expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestHueNameSeparatesNearbyHues(t *testing.T) {
	a := HueName(Hue(color.NRGBA{R: 255, G: 128, A: 255}), DefaultHuePrecision)
	b := HueName(Hue(color.NRGBA{R: 255, G: 130, A: 255}), DefaultHuePrecision)
	if a == b {
		t.Errorf("expected distinct names for distinct hues, both were %q", a)
	}
}

func TestHueNameClampsPrecision(t *testing.T) {
	got := HueName(33.333333333, 400)
	if got != HueName(33.333333333, MaxHuePrecision) {
		t.Errorf("expected precision clamped to %d, got %q", MaxHuePrecision, got)
	}
	if got != "33.333333" {
		t.Errorf("expected \"33.333333\", got %q", got)
	}
}
