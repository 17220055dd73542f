package game

import (
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/mine/components"
	"github.com/pthm-cable/mine/ui"
)

// handleInput processes keyboard and mouse input and returns this frame's actions.
func (g *Game) handleInput() frameInput {
	var in frameInput

	// Window resize propagation
	g.handleResize()

	// Fullscreen toggle
	if rl.IsKeyPressed(rl.KeyF11) {
		rl.ToggleFullscreen()
	}

	if rl.IsKeyPressed(rl.KeyTab) {
		in.nextScene = true
	}

	// Overlay toggles
	for key := rl.GetKeyPressed(); key != 0; key = rl.GetKeyPressed() {
		g.overlays.HandleKeyPress(key)
	}

	mouse := rl.GetMousePosition()
	overUI := g.overlays.IsEnabled(ui.OverlayControls) && g.controls.Contains(mouse.X, mouse.Y)

	switch g.scene {
	case components.SceneMine:
		if rl.IsMouseButtonPressed(rl.MouseButtonLeft) && !overUI {
			in.click = true
			in.clickX, in.clickY = g.mineCam.ScreenToWorld(mouse.X, mouse.Y)
		}
	case components.SceneMap:
		if rl.IsKeyPressed(rl.KeyF5) {
			g.ReloadMask()
		}
		if !overUI {
			g.handleCameraInput(mouse)
		}
	}

	return in
}

// handleResize checks for window resize and propagates new dimensions.
func (g *Game) handleResize() {
	if !rl.IsWindowResized() {
		return
	}
	w := float32(rl.GetScreenWidth())
	h := float32(rl.GetScreenHeight())
	if w == g.screenWidth && h == g.screenHeight {
		return
	}
	g.screenWidth = w
	g.screenHeight = h

	fit := fitZoom(w, h)
	g.mineCam.Resize(w, h)
	g.mineCam.MinZoom, g.mineCam.MaxZoom = fit, fit
	g.mineCam.SetZoom(fit)
	g.mapCam.Resize(w, h)

	if g.perfUI != nil {
		g.perfUI.SetPosition(int32(w)-260, 10)
	}
	if g.controls != nil {
		g.controls.SetPosition(int32(w)-260, 220)
	}
}

// handleCameraInput pans the map camera with a left drag and zooms it with the wheel.
func (g *Game) handleCameraInput(mouse rl.Vector2) {
	if rl.IsMouseButtonDown(rl.MouseButtonLeft) {
		delta := rl.GetMouseDelta()
		if delta.X != 0 || delta.Y != 0 {
			g.mapCam.Pan(delta.X, delta.Y)
		}
	}

	if wheel := rl.GetMouseWheelMove(); wheel != 0 {
		factor := float32(math.Pow(g.cfg.Camera.ZoomStep, float64(wheel)))
		g.mapCam.ZoomAt(mouse.X, mouse.Y, factor)
	}

	if rl.IsKeyPressed(rl.KeyHome) {
		g.mapCam.Reset()
	}
}
