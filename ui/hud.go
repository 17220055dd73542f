package ui

import (
	"fmt"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/mine/components"
	"github.com/pthm-cable/mine/systems"
	"github.com/pthm-cable/mine/telemetry"
)

// HUDData holds all the data needed to render the main HUD.
type HUDData struct {
	Title   string
	Scene   components.Scene
	FPS     int32
	Ore     float32 // Total ore mined this run
	Hits    int     // Total successful clicks
	Reserve float32 // Ore left across all rocks
	Max     float32 // Ore capacity across all rocks

	// Map scene
	Loader  string
	Regions int
	Points  int
	Zoom    float32
}

// HUD renders the main heads-up display.
type HUD struct {
	renderer *Renderer
}

// NewHUD creates a new HUD renderer.
func NewHUD() *HUD {
	return &HUD{renderer: NewRenderer()}
}

// Draw renders the HUD for the current scene.
func (h *HUD) Draw(data HUDData) {
	rl.DrawText(data.Title, 10, 10, 20, rl.White)
	rl.DrawText(fmt.Sprintf("Scene: %s | FPS: %d", data.Scene, data.FPS), 10, 35, 16, rl.LightGray)

	switch data.Scene {
	case components.SceneMine:
		rl.DrawText(fmt.Sprintf("Ore: %.1f | Hits: %d", data.Ore, data.Hits), 10, 55, 16, rl.Gold)
		h.renderer.DrawReserveBar(10, 78, "Reserve", data.Reserve, data.Max, 260)
	case components.SceneMap:
		rl.DrawText(fmt.Sprintf("Mask: %s | Regions: %d | Points: %d | Zoom: %.2fx",
			data.Loader, data.Regions, data.Points, data.Zoom), 10, 55, 16, rl.LightGray)
	}
}

// DrawControls renders the control legend at the bottom of the screen.
func (h *HUD) DrawControls(screenHeight int32, controls string) {
	rl.DrawText(controls, 10, screenHeight-25, 14, rl.Gray)
}

// DrawCentered draws a message in the middle of the screen.
func (h *HUD) DrawCentered(screenWidth, screenHeight int32, text string) {
	width := rl.MeasureText(text, 30)
	rl.DrawText(text, (screenWidth-width)/2, screenHeight/2-15, 30, rl.White)
}

// PerfPanel renders per-phase frame timings.
type PerfPanel struct {
	renderer *Renderer
	registry *systems.SystemRegistry
	x, y     int32
}

// NewPerfPanel creates a new performance panel.
func NewPerfPanel(registry *systems.SystemRegistry, x, y int32) *PerfPanel {
	return &PerfPanel{
		renderer: NewRenderer(),
		registry: registry,
		x:        x,
		y:        y,
	}
}

// SetPosition updates the panel position.
func (p *PerfPanel) SetPosition(x, y int32) {
	p.x = x
	p.y = y
}

// Draw renders the performance panel, one section per system category.
func (p *PerfPanel) Draw(stats telemetry.PerfStats) {
	const width = 250
	r := p.renderer
	cats := p.registry.Categories()
	height := int32(len(p.registry.IDs()))*14 + int32(len(cats))*16 + 56
	r.DrawPanel(p.x, p.y, width, height)

	x := p.x + r.Theme.Padding
	y := p.y + r.Theme.Padding

	rl.DrawText("Frame Timing", x, y, 16, rl.White)
	y += 20
	rl.DrawText(fmt.Sprintf("Avg: %s  Max: %s",
		stats.AvgTickDuration.Round(time.Microsecond), stats.MaxTickDuration.Round(time.Microsecond)),
		x, y, 12, rl.Yellow)
	y += 16

	for _, cat := range cats {
		rl.DrawText(cat, x, y, 12, r.Theme.SectionHeader)
		y += 16
		for _, info := range p.registry.ByCategory(cat) {
			pct := stats.PhasePct[info.ID]
			color := rl.LightGray
			if pct > 20 {
				color = rl.Orange
			}
			if pct > 40 {
				color = rl.Red
			}
			rl.DrawText(
				fmt.Sprintf("%-10s %8s %5.1f%%", info.Name, stats.PhaseAvg[info.ID].Round(time.Microsecond), pct),
				x+8, y, 12, color,
			)
			y += 14
		}
	}
}
