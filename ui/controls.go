package ui

import (
	"fmt"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/mine/components"
)

// ControlsResult reports what the user did in the controls panel this frame.
type ControlsResult struct {
	Scene         components.Scene // Requested scene, valid when SceneClicked
	SceneClicked  bool
	Volume        float32
	VolumeChanged bool
}

// ControlsPanel renders scene buttons, a volume slider and the overlay toggles.
type ControlsPanel struct {
	renderer *Renderer
	x, y     int32
	width    int32
	height   int32 // Set by the last Draw
	volume   float32
}

// NewControlsPanel creates a new controls panel.
func NewControlsPanel(x, y, width int32, volume float32) *ControlsPanel {
	return &ControlsPanel{
		renderer: NewRenderer(),
		x:        x,
		y:        y,
		width:    width,
		volume:   volume,
	}
}

// SetPosition updates the panel position.
func (c *ControlsPanel) SetPosition(x, y int32) {
	c.x = x
	c.y = y
}

// Contains reports whether screen point (x, y) lies on the panel as last drawn.
func (c *ControlsPanel) Contains(x, y float32) bool {
	return x >= float32(c.x) && x < float32(c.x+c.width) &&
		y >= float32(c.y) && y < float32(c.y+c.height)
}

// Draw renders the panel and returns the user's actions.
// current is highlighted and disabled; buttons are disabled while busy.
func (c *ControlsPanel) Draw(overlays *OverlayRegistry, current components.Scene, busy bool) ControlsResult {
	var res ControlsResult

	r := c.renderer
	padding := r.Theme.Padding
	lineHeight := r.Theme.LineHeight

	items := 0
	for _, cat := range overlays.Categories() {
		items += len(overlays.ByCategory(cat)) + 1
	}
	panelHeight := int32(items)*lineHeight + padding*4 + 90
	c.height = panelHeight
	r.DrawPanel(c.x, c.y, c.width, panelHeight)

	y := c.y + padding
	rl.DrawText("Scenes", c.x+padding, y, 16, rl.White)
	y += lineHeight + 4

	buttonW := (c.width - padding*2 - 8*int32(len(components.Scenes)-1)) / int32(len(components.Scenes))
	for i, scene := range components.Scenes {
		bx := c.x + padding + int32(i)*(buttonW+8)
		bounds := rl.Rectangle{X: float32(bx), Y: float32(y), Width: float32(buttonW), Height: 24}
		if busy || scene == current {
			gui.Disable()
		}
		if gui.Button(bounds, scene.String()) && !busy && scene != current {
			res.Scene = scene
			res.SceneClicked = true
		}
		gui.Enable()
	}
	y += 32

	rl.DrawText("Volume", c.x+padding, y+4, r.Theme.FontSize, r.Theme.LabelColor)
	slider := rl.Rectangle{X: float32(c.x + padding + 50), Y: float32(y), Width: float32(c.width - padding*2 - 90), Height: 20}
	v := gui.SliderBar(slider, "", fmt.Sprintf("%.2f", c.volume), c.volume, 0, 1)
	if v != c.volume {
		c.volume = v
		res.Volume = v
		res.VolumeChanged = true
	}
	y += 32

	for _, category := range overlays.Categories() {
		rl.DrawText(categoryLabel(category), c.x+padding, y, r.Theme.HeaderFontSize, r.Theme.SectionHeader)
		y += lineHeight
		for _, desc := range overlays.ByCategory(category) {
			c.drawToggle(c.x+padding, y, desc, overlays.IsEnabled(desc.ID), c.width-padding*2)
			y += lineHeight
		}
		y += 4
	}

	return res
}

// drawToggle draws a single overlay toggle line.
func (c *ControlsPanel) drawToggle(x, y int32, desc OverlayDescriptor, enabled bool, width int32) {
	r := c.renderer

	statusColor := rl.Color{R: 80, G: 80, B: 80, A: 255}
	nameColor := r.Theme.LabelColor
	if enabled {
		statusColor = rl.Color{R: 100, G: 200, B: 100, A: 255}
		nameColor = rl.White
	}
	rl.DrawRectangle(x, y+2, 8, 8, statusColor)
	rl.DrawText(desc.Name, x+14, y, r.Theme.FontSize, nameColor)

	if desc.KeyLabel != "" {
		keyText := fmt.Sprintf("[%s]", desc.KeyLabel)
		keyWidth := rl.MeasureText(keyText, r.Theme.FontSize)
		rl.DrawText(keyText, x+width-keyWidth, y, r.Theme.FontSize, rl.Color{R: 150, G: 150, B: 150, A: 255})
	}
}

func categoryLabel(cat string) string {
	switch cat {
	case "mine":
		return "Mine"
	case "map":
		return "Map"
	case "debug":
		return "Debug"
	default:
		return cat
	}
}
