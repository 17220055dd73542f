package ui

import "testing"

func TestControlsPanelContains(t *testing.T) {
	c := NewControlsPanel(100, 50, 200, 1)

	if c.Contains(150, 60) {
		t.Error("expected an undrawn panel to cover nothing")
	}

	c.height = 120
	tests := []struct {
		name string
		x, y float32
		want bool
	}{
		{"inside", 150, 60, true},
		{"top left corner", 100, 50, true},
		{"right edge", 300, 60, false},
		{"below", 150, 170, false},
		{"left of panel", 99, 60, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := c.Contains(tt.x, tt.y); got != tt.want {
				t.Errorf("expected %v, got %v", tt.want, got)
			}
		})
	}

	c.SetPosition(0, 0)
	if !c.Contains(10, 10) {
		t.Error("expected panel to follow SetPosition")
	}
}
