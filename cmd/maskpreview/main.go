// Mask preview tool - interactive region extraction with sliders.
//
// Usage: go run ./cmd/maskpreview -mask assets/private/mask.png
package main

import (
	"flag"
	"fmt"
	"image"
	"log/slog"
	"math"
	"os"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/mine/assets"
	"github.com/pthm-cable/mine/mask"
	"github.com/pthm-cable/mine/telemetry"
)

const (
	windowWidth  = 1100
	windowHeight = 720
	previewSize  = 640
	panelWidth   = windowWidth - previewSize - 30
)

var (
	regionFill  = rl.Color{R: 128, G: 128, B: 84, A: 120}
	regionEdge  = rl.Color{R: 255, G: 220, B: 120, A: 255}
	pointColor  = rl.Color{R: 191, G: 191, B: 191, A: 217}
	sliderWidth = float32(panelWidth - 80)
)

// previewParams holds the extraction settings edited by the sliders.
type previewParams struct {
	Step       int
	GridLines  int
	Precision  int
	ShowPoints bool
}

func (p previewParams) options() mask.Options {
	return mask.Options{Step: p.Step, GridLines: p.GridLines, HuePrecision: p.Precision}
}

func main() {
	maskPath := flag.String("mask", "assets/private/mask.png", "Path to the mask image")
	outDir := flag.String("out", "results", "Directory for exported CSV")
	flag.Parse()

	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	img, err := assets.DecodeFile(*maskPath)
	if err != nil {
		slog.Error("failed to load mask", "error", err)
		os.Exit(1)
	}
	bounds := img.Bounds()

	rl.InitWindow(windowWidth, windowHeight, "Mask Region Preview")
	defer rl.CloseWindow()
	rl.SetTargetFPS(30)

	texture := rl.LoadTexture(*maskPath)
	defer rl.UnloadTexture(texture)

	params := previewParams{
		GridLines:  mask.DefaultGridLines,
		Precision:  mask.DefaultHuePrecision,
		ShowPoints: true,
	}

	var res mask.Result
	needsRegen := true
	status := ""

	// Fit the mask into the preview square
	scale := float32(previewSize) / float32(max(bounds.Dx(), bounds.Dy()))
	drawW := float32(bounds.Dx()) * scale
	drawH := float32(bounds.Dy()) * scale

	for !rl.WindowShouldClose() {
		if needsRegen {
			res = mask.ExtractWithOptions(img, params.options())
			needsRegen = false
		}

		rl.BeginDrawing()
		rl.ClearBackground(rl.RayWhite)

		// Draw preview
		rl.DrawTexturePro(
			texture,
			rl.Rectangle{X: 0, Y: 0, Width: float32(texture.Width), Height: float32(texture.Height)},
			rl.Rectangle{X: 10, Y: 10, Width: drawW, Height: drawH},
			rl.Vector2{X: 0, Y: 0},
			0,
			rl.White,
		)
		rl.DrawRectangleLines(10, 10, int32(drawW), int32(drawH), rl.DarkGray)
		drawRegions(res, bounds, scale, params.ShowPoints)

		// Draw stats
		statsY := int32(previewSize + 25)
		step := params.options().StepFor(bounds.Dx(), bounds.Dy())
		rl.DrawText(fmt.Sprintf("%dx%d  Step: %d  Regions: %d  Points: %d",
			bounds.Dx(), bounds.Dy(), step, res.Len(), len(res.Points)), 15, statsY, 16, rl.DarkGray)
		rl.DrawText(status, 15, statsY+20, 16, rl.DarkGray)

		// Control panel
		panelX := float32(previewSize + 20)
		panelY := float32(10)

		rl.DrawText("Extraction Parameters", int32(panelX), int32(panelY), 20, rl.DarkGray)
		panelY += 35

		// Step slider
		rl.DrawText("Step (pixels, 0 = derive from grid lines)", int32(panelX), int32(panelY), 14, rl.Gray)
		panelY += 18
		newStep := gui.SliderBar(
			rl.Rectangle{X: panelX, Y: panelY, Width: sliderWidth, Height: 20},
			"0", "50",
			float32(params.Step), 0, 50,
		)
		rl.DrawText(fmt.Sprintf("%d", params.Step), int32(panelX+float32(panelWidth-70)), int32(panelY+2), 16, rl.DarkGray)
		if int(newStep) != params.Step {
			params.Step = int(newStep)
			needsRegen = true
		}
		panelY += 35

		// Grid lines slider
		rl.DrawText("Grid lines (shorter side / step)", int32(panelX), int32(panelY), 14, rl.Gray)
		panelY += 18
		if params.Step > 0 {
			gui.Disable()
		}
		newGrid := gui.SliderBar(
			rl.Rectangle{X: panelX, Y: panelY, Width: sliderWidth, Height: 20},
			"10", "400",
			float32(params.GridLines), 10, 400,
		)
		gui.Enable()
		rl.DrawText(fmt.Sprintf("%d", params.GridLines), int32(panelX+float32(panelWidth-70)), int32(panelY+2), 16, rl.DarkGray)
		if int(newGrid) != params.GridLines && params.Step == 0 {
			params.GridLines = int(newGrid)
			needsRegen = true
		}
		panelY += 35

		// Hue precision slider
		rl.DrawText("Hue precision (digits, -1 = full)", int32(panelX), int32(panelY), 14, rl.Gray)
		panelY += 18
		newPrecision := gui.SliderBar(
			rl.Rectangle{X: panelX, Y: panelY, Width: sliderWidth, Height: 20},
			"-1", "4",
			float32(params.Precision), -1, 4,
		)
		rl.DrawText(fmt.Sprintf("%d", params.Precision), int32(panelX+float32(panelWidth-70)), int32(panelY+2), 16, rl.DarkGray)
		if p := int(math.Round(float64(newPrecision))); p != params.Precision {
			params.Precision = p
			needsRegen = true
		}
		panelY += 45

		// Buttons
		if gui.Button(rl.Rectangle{X: panelX, Y: panelY, Width: 120, Height: 30}, toggleText(params.ShowPoints, "Hide Points", "Show Points")) {
			params.ShowPoints = !params.ShowPoints
		}

		if gui.Button(rl.Rectangle{X: panelX + 130, Y: panelY, Width: 120, Height: 30}, "Export CSV") {
			if err := telemetry.WriteMaskCSV(*outDir, res); err != nil {
				status = fmt.Sprintf("Export failed: %v", err)
				slog.Error("export failed", "error", err)
			} else {
				status = fmt.Sprintf("Exported %d regions to %s", res.Len(), *outDir)
				slog.Info("exported", "dir", *outDir, "regions", res.Len())
			}
		}
		panelY += 45

		// Separator
		rl.DrawLine(int32(panelX), int32(panelY), int32(panelX)+int32(panelWidth)-20, int32(panelY), rl.LightGray)
		panelY += 15

		// Region list
		rl.DrawText("Regions", int32(panelX), int32(panelY), 16, rl.DarkGray)
		panelY += 22
		for _, name := range res.Names() {
			if panelY > windowHeight-20 {
				rl.DrawText("...", int32(panelX), int32(panelY), 14, rl.Gray)
				break
			}
			size := mask.Size(res.Regions[name])
			rl.DrawText(fmt.Sprintf("%-8s %5.0f x %-5.0f", name, size.X, size.Y), int32(panelX), int32(panelY), 14, rl.Gray)
			panelY += 16
		}

		rl.EndDrawing()
	}
}

// drawRegions overlays region boxes and sample points on the preview.
// World space has its origin at the image center with y up.
func drawRegions(res mask.Result, bounds image.Rectangle, scale float32, showPoints bool) {
	halfW := float32(bounds.Dx()) / 2
	halfH := float32(bounds.Dy()) / 2
	toPreview := func(wx, wy float64) (float32, float32) {
		return 10 + (float32(wx)+halfW)*scale, 10 + (halfH-float32(wy))*scale
	}

	if showPoints {
		for _, p := range res.Points {
			x, y := toPreview(p.X, p.Y)
			rl.DrawPoly(rl.Vector2{X: x, Y: y}, 4, 2, 0, pointColor)
		}
	}

	for _, name := range res.Names() {
		box := res.Regions[name]
		x, y := toPreview(box.Min.X, box.Max.Y)
		size := mask.Size(box)
		rect := rl.Rectangle{X: x, Y: y, Width: float32(size.X) * scale, Height: float32(size.Y) * scale}
		rl.DrawRectangleRec(rect, regionFill)
		rl.DrawRectangleLinesEx(rect, 1, regionEdge)
		rl.DrawText(name, int32(x)+2, int32(y)+2, 12, rl.Black)
	}
}

func toggleText(on bool, onText, offText string) string {
	if on {
		return onText
	}
	return offText
}
