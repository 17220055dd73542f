package telemetry

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/mine/config"
	"github.com/pthm-cable/mine/mask"
)

func sampleResult() mask.Result {
	return mask.Result{
		Regions: map[string]r2.Box{
			"240": {Min: r2.Vec{X: 0, Y: -10}, Max: r2.Vec{X: 4, Y: -2}},
			"0":   {Min: r2.Vec{X: -40, Y: 30}, Max: r2.Vec{X: -40, Y: 30}},
		},
		Points: []r2.Vec{{X: -40, Y: 30}, {X: 0, Y: -10}, {X: 4, Y: -2}},
	}
}

func readLines(t *testing.T, path string) []string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading %s: %v", path, err)
	}
	return strings.Split(strings.TrimSpace(string(data)), "\n")
}

func TestRegionRows(t *testing.T) {
	rows := RegionRows(sampleResult())

	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}
	if rows[0].Name != "0" || rows[1].Name != "240" {
		t.Errorf("expected rows in name order, got %q, %q", rows[0].Name, rows[1].Name)
	}
	if rows[1].Width != 4 || rows[1].Height != 8 {
		t.Errorf("expected 4x8 region, got %vx%v", rows[1].Width, rows[1].Height)
	}
}

func TestOutputManagerWriteMask(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")
	om, err := NewOutputManager(dir)
	if err != nil {
		t.Fatalf("creating output manager: %v", err)
	}
	defer om.Close()

	if err := om.WriteMask(sampleResult()); err != nil {
		t.Fatalf("writing mask: %v", err)
	}

	regions := readLines(t, filepath.Join(dir, "regions.csv"))
	if regions[0] != "name,min_x,min_y,max_x,max_y,width,height" {
		t.Errorf("unexpected regions header %q", regions[0])
	}
	if len(regions) != 3 {
		t.Errorf("expected header and 2 rows, got %d lines", len(regions))
	}

	points := readLines(t, filepath.Join(dir, "points.csv"))
	if points[0] != "index,x,y" {
		t.Errorf("unexpected points header %q", points[0])
	}
	if len(points) != 4 {
		t.Errorf("expected header and 3 rows, got %d lines", len(points))
	}
}

func TestOutputManagerWritePerf(t *testing.T) {
	dir := t.TempDir()
	om, err := NewOutputManager(dir)
	if err != nil {
		t.Fatalf("creating output manager: %v", err)
	}

	for frame := int64(60); frame <= 180; frame += 60 {
		if err := om.WritePerf(PerfStats{}, frame); err != nil {
			t.Fatalf("writing perf: %v", err)
		}
	}
	if err := om.Close(); err != nil {
		t.Fatalf("closing: %v", err)
	}

	lines := readLines(t, filepath.Join(dir, "perf.csv"))
	if len(lines) != 4 {
		t.Fatalf("expected one header and 3 rows, got %d lines", len(lines))
	}
	if !strings.HasPrefix(lines[0], "frame,avg_tick_us") {
		t.Errorf("unexpected perf header %q", lines[0])
	}
	if !strings.HasPrefix(lines[3], "180,") {
		t.Errorf("expected last row for frame 180, got %q", lines[3])
	}
}

func TestOutputManagerWriteConfig(t *testing.T) {
	dir := t.TempDir()
	om, err := NewOutputManager(dir)
	if err != nil {
		t.Fatalf("creating output manager: %v", err)
	}
	defer om.Close()

	cfg, err := config.Load("")
	if err != nil {
		t.Fatalf("loading defaults: %v", err)
	}
	if err := om.WriteConfig(cfg); err != nil {
		t.Fatalf("writing config: %v", err)
	}
	if _, err := config.Load(filepath.Join(dir, "config.yaml")); err != nil {
		t.Errorf("expected snapshot to load back, got %v", err)
	}
}

func TestNilOutputManager(t *testing.T) {
	om, err := NewOutputManager("")
	if err != nil || om != nil {
		t.Fatalf("expected nil manager for empty dir, got %v, %v", om, err)
	}

	if err := om.WriteMask(sampleResult()); err != nil {
		t.Errorf("expected no-op, got %v", err)
	}
	if err := om.WritePerf(PerfStats{}, 1); err != nil {
		t.Errorf("expected no-op, got %v", err)
	}
	if om.Dir() != "" {
		t.Errorf("expected empty dir, got %q", om.Dir())
	}
	if err := om.Close(); err != nil {
		t.Errorf("expected no-op close, got %v", err)
	}
}

func TestWriteMaskCSV(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "dump")
	if err := WriteMaskCSV(dir, sampleResult()); err != nil {
		t.Fatalf("writing CSVs: %v", err)
	}
	for _, name := range []string{"regions.csv", "points.csv"} {
		if _, err := os.Stat(filepath.Join(dir, name)); err != nil {
			t.Errorf("expected %s to exist: %v", name, err)
		}
	}
}
