package game

import (
	"fmt"
	"sort"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/mine/camera"
	"github.com/pthm-cable/mine/components"
	"github.com/pthm-cable/mine/systems"
	"github.com/pthm-cable/mine/telemetry"
	"github.com/pthm-cable/mine/ui"
)

// Marker colors on the map scene.
var (
	regionColor = rl.Color{R: 128, G: 128, B: 84, A: 191}  // (0.5, 0.5, 0.33, 0.75)
	pointColor  = rl.Color{R: 191, G: 191, B: 191, A: 217} // (0.75, 0.75, 0.75, 0.85)
	boundsColor = rl.Color{R: 255, G: 64, B: 64, A: 200}
	tavernColor = rl.Color{R: 40, G: 26, B: 18, A: 255}
)

// coinCamera looks at the origin from the front, matching the 2D layout.
var coinCamera = rl.Camera3D{
	Position:   rl.Vector3{X: 0, Y: 0, Z: 10},
	Target:     rl.Vector3{X: 0, Y: 0, Z: 0},
	Up:         rl.Vector3{X: 0, Y: 1, Z: 0},
	Fovy:       45,
	Projection: rl.CameraPerspective,
}

// drawItem is a sprite queued for depth-sorted drawing.
type drawItem struct {
	pos    components.Position
	scale  components.Scale
	sprite components.Sprite
}

// Draw renders the current frame and finishes its perf sample.
func (g *Game) Draw() {
	g.perfCollector.StartPhase(telemetry.PhaseDraw)

	rl.BeginDrawing()
	rl.ClearBackground(rl.Black)

	switch g.scene {
	case components.SceneMine:
		g.drawSprites(g.mineCam, components.SceneMine)
		if g.overlays.IsEnabled(ui.OverlayBounds) {
			g.drawRockBounds()
		}
		g.drawCoin()
		g.dustUI.Draw(g.mineCam, g.dust.Particles)
	case components.SceneMap:
		g.drawSprites(g.mapCam, components.SceneMap)
		g.drawMarkers()
	case components.SceneTavern:
		rl.ClearBackground(tavernColor)
		g.hud.DrawCentered(int32(g.screenWidth), int32(g.screenHeight), "Tavern")
	}

	g.drawUI()

	if alpha := g.fader.Alpha(); alpha > 0 {
		rl.DrawRectangle(0, 0, int32(g.screenWidth), int32(g.screenHeight), rl.Fade(rl.Black, alpha))
	}

	rl.EndDrawing()

	g.perfCollector.EndTick()
	g.perfCollector.RecordFrame()
	g.tick++
	g.flushTelemetry()
}

// drawSprites draws every sprite of scene back to front.
func (g *Game) drawSprites(cam *camera.Camera, scene components.Scene) {
	showMask := g.overlays.IsEnabled(ui.OverlayMask)

	var items []drawItem
	query := g.spriteFilter.Query()
	for query.Next() {
		pos, scale, sprite, tag := query.Get()
		if tag.Scene != scene {
			continue
		}
		if g.hasMask && query.Entity() == g.maskEntity && !showMask {
			continue
		}
		items = append(items, drawItem{pos: *pos, scale: *scale, sprite: *sprite})
	}

	sort.SliceStable(items, func(i, j int) bool {
		return items[i].pos.Z < items[j].pos.Z
	})

	for _, it := range items {
		g.drawSprite(cam, it)
	}
}

// drawSprite maps a sprite's world bounds to the screen and draws its texture there.
func (g *Game) drawSprite(cam *camera.Camera, it drawItem) {
	tex, ok := g.textures.get(it.sprite.Texture)
	if !ok {
		return
	}

	minX, _, maxX, maxY := it.sprite.Bounds(it.pos, it.scale)
	sx, sy := cam.WorldToScreen(minX, maxY)
	w := cam.Scale(maxX - minX)
	h := cam.Scale(it.sprite.Height * it.scale.Y)

	src := rl.Rectangle{Width: float32(tex.Width), Height: float32(tex.Height)}
	dst := rl.Rectangle{X: sx, Y: sy, Width: w, Height: h}
	rl.DrawTexturePro(tex, src, dst, rl.Vector2{}, 0, rl.White)
}

// drawRockBounds outlines the clickable area of every rock.
func (g *Game) drawRockBounds() {
	query := g.rockFilter.Query()
	for query.Next() {
		pos, scale, sprite, _ := query.Get()
		minX, minY, maxX, maxY := sprite.Bounds(*pos, *scale)
		g.drawWorldRectLines(g.mineCam, minX, minY, maxX, maxY, boundsColor)
	}
}

// drawCoin draws the spinning coin in a 3D pass over the 2D layer.
func (g *Game) drawCoin() {
	if g.coin == nil {
		return
	}

	rl.BeginMode3D(coinCamera)
	query := g.coinFilter.Query()
	for query.Next() {
		pos, spin := query.Get()
		rl.DrawModelEx(
			g.coin.model,
			rl.Vector3{X: pos.X, Y: pos.Y, Z: pos.Z},
			rl.Vector3{X: 0, Y: 1, Z: 0},
			spin.Angle*rl.Rad2deg,
			rl.Vector3{X: 1, Y: 1, Z: 1},
			g.coin.tint,
		)
	}
	rl.EndMode3D()
}

// drawMarkers draws region boxes and sample points on the map.
func (g *Game) drawMarkers() {
	cam := g.mapCam

	if g.overlays.IsEnabled(ui.OverlayPoints) {
		radius := cam.Scale(samplePointSize)
		query := g.pointFilter.Query()
		for query.Next() {
			pos, pt := query.Get()
			if !cam.IsVisible(pos.X, pos.Y, pt.Size) {
				continue
			}
			sx, sy := cam.WorldToScreen(pos.X, pos.Y)
			// Four sides starting at 0 degrees give a rhombus on its corner
			rl.DrawPoly(rl.Vector2{X: sx, Y: sy}, 4, radius, 0, pointColor)
		}
	}

	if g.overlays.IsEnabled(ui.OverlayRegions) {
		showBounds := g.overlays.IsEnabled(ui.OverlayBounds)
		query := g.regionFilter.Query()
		for query.Next() {
			_, marker := query.Get()
			minX, minY := float32(marker.Box.Min.X), float32(marker.Box.Min.Y)
			maxX, maxY := float32(marker.Box.Max.X), float32(marker.Box.Max.Y)

			sx, sy := cam.WorldToScreen(minX, maxY)
			w := cam.Scale(maxX - minX)
			h := cam.Scale(maxY - minY)
			rl.DrawRectangleRec(rl.Rectangle{X: sx, Y: sy, Width: w, Height: h}, regionColor)
			rl.DrawText(marker.Name, int32(sx)+4, int32(sy)+4, 16, rl.White)

			if showBounds {
				g.drawWorldRectLines(cam, minX, minY, maxX, maxY, boundsColor)
			}
		}
	}
}

// drawWorldRectLines outlines a world-space rectangle.
func (g *Game) drawWorldRectLines(cam *camera.Camera, minX, minY, maxX, maxY float32, color rl.Color) {
	sx, sy := cam.WorldToScreen(minX, maxY)
	rl.DrawRectangleLinesEx(rl.Rectangle{
		X:      sx,
		Y:      sy,
		Width:  cam.Scale(maxX - minX),
		Height: cam.Scale(maxY - minY),
	}, 1, color)
}

// drawUI renders the HUD and panels on top of the scene.
func (g *Game) drawUI() {
	current, capacity := g.reserve()
	g.hud.Draw(ui.HUDData{
		Title:   g.cfg.Screen.Title,
		Scene:   g.scene,
		FPS:     rl.GetFPS(),
		Ore:     g.ore,
		Hits:    g.hits,
		Reserve: current,
		Max:     capacity,
		Loader:  g.maskLoader.Poll().String(),
		Regions: g.numRegions,
		Points:  g.numPoints,
		Zoom:    g.mapCam.Zoom,
	})

	if g.overlays.IsEnabled(ui.OverlayPerf) {
		g.perfUI.Draw(g.lastPerf)
	}

	if g.overlays.IsEnabled(ui.OverlayControls) {
		res := g.controls.Draw(g.overlays, g.scene, g.fader.Busy())
		if res.SceneClicked {
			g.pendingScene = res.Scene
			g.hasPending = true
		}
		if res.VolumeChanged && g.audio != nil {
			g.audio.SetMasterVolume(float64(res.Volume))
		}
	}

	g.hud.DrawControls(int32(g.screenHeight), controlsLegend(g.scene, g.fader))
}

// controlsLegend returns the key help for the current scene.
func controlsLegend(scene components.Scene, fader *systems.Fader) string {
	legend := "Tab: next scene | F1: controls | F3: bounds | F4: perf | F11: fullscreen"
	switch scene {
	case components.SceneMine:
		legend = "Click: mine | " + legend
	case components.SceneMap:
		legend = "Drag: pan | Wheel: zoom | Home: reset | F5: reload mask | R/P/M: overlays | " + legend
	}
	if fader.Busy() {
		legend = fmt.Sprintf("[%s -> %s] %s", fader.Phase(), fader.Target(), legend)
	}
	return legend
}
