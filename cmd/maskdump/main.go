// Mask dump tool - extracts regions from a mask image and writes them as CSV.
//
// Usage: go run ./cmd/maskdump -mask assets/private/mask.png -out results
package main

import (
	"flag"
	"log/slog"
	"os"
	"time"

	"github.com/pthm-cable/mine/assets"
	"github.com/pthm-cable/mine/mask"
	"github.com/pthm-cable/mine/telemetry"
)

func main() {
	maskPath := flag.String("mask", "", "Path to the mask image (required)")
	step := flag.Int("step", 0, "Sampling step in pixels (0 = derive from image size)")
	gridLines := flag.Int("grid-lines", mask.DefaultGridLines, "Grid lines along the shorter side when deriving the step")
	precision := flag.Int("precision", mask.DefaultHuePrecision, "Decimal digits kept in region names (-1 = full)")
	outDir := flag.String("out", "", "Directory for regions.csv and points.csv (empty = log only)")
	flag.Parse()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	if *maskPath == "" {
		slog.Error("missing -mask")
		flag.Usage()
		os.Exit(2)
	}

	start := time.Now()
	img, err := assets.DecodeFile(*maskPath)
	if err != nil {
		slog.Error("failed to load mask", "error", err)
		os.Exit(1)
	}
	decoded := time.Since(start)

	opts := mask.Options{Step: *step, GridLines: *gridLines, HuePrecision: *precision}
	res := mask.ExtractWithOptions(img, opts)

	b := img.Bounds()
	slog.Info("mask extracted",
		"path", *maskPath,
		"width", b.Dx(),
		"height", b.Dy(),
		"step", opts.StepFor(b.Dx(), b.Dy()),
		"regions", res.Len(),
		"points", len(res.Points),
		"decode", decoded,
		"extract", time.Since(start)-decoded,
	)
	for _, name := range res.Names() {
		box := res.Regions[name]
		size := mask.Size(box)
		slog.Info("region",
			"name", name,
			"min_x", box.Min.X, "min_y", box.Min.Y,
			"max_x", box.Max.X, "max_y", box.Max.Y,
			"width", size.X, "height", size.Y,
		)
	}

	if *outDir != "" {
		if err := telemetry.WriteMaskCSV(*outDir, res); err != nil {
			slog.Error("failed to write CSV", "error", err)
			os.Exit(1)
		}
		slog.Info("wrote CSV", "dir", *outDir)
	}
}
