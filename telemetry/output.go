package telemetry

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gocarina/gocsv"

	"github.com/pthm-cable/mine/config"
	"github.com/pthm-cable/mine/mask"
)

// RegionRow is one row of regions.csv.
type RegionRow struct {
	Name   string  `csv:"name"`
	MinX   float64 `csv:"min_x"`
	MinY   float64 `csv:"min_y"`
	MaxX   float64 `csv:"max_x"`
	MaxY   float64 `csv:"max_y"`
	Width  float64 `csv:"width"`
	Height float64 `csv:"height"`
}

// PointRow is one row of points.csv.
type PointRow struct {
	Index int     `csv:"index"`
	X     float64 `csv:"x"`
	Y     float64 `csv:"y"`
}

// RegionRows flattens a mask result into regions.csv rows, in name order.
func RegionRows(res mask.Result) []RegionRow {
	names := res.Names()
	rows := make([]RegionRow, 0, len(names))
	for _, name := range names {
		b := res.Regions[name]
		size := mask.Size(b)
		rows = append(rows, RegionRow{
			Name: name,
			MinX: b.Min.X, MinY: b.Min.Y,
			MaxX: b.Max.X, MaxY: b.Max.Y,
			Width: size.X, Height: size.Y,
		})
	}
	return rows
}

// PointRows flattens sample points into points.csv rows, in scan order.
func PointRows(res mask.Result) []PointRow {
	rows := make([]PointRow, len(res.Points))
	for i, p := range res.Points {
		rows[i] = PointRow{Index: i, X: p.X, Y: p.Y}
	}
	return rows
}

// OutputManager writes run results into an output directory.
// A nil manager (output disabled) accepts every call and writes nothing.
type OutputManager struct {
	dir      string
	perfFile *os.File

	perfHeaderWritten bool
}

// NewOutputManager creates the output directory and opens perf.csv.
// Returns nil if dir is empty (output disabled).
func NewOutputManager(dir string) (*OutputManager, error) {
	if dir == "" {
		return nil, nil
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	f, err := os.Create(filepath.Join(dir, "perf.csv"))
	if err != nil {
		return nil, fmt.Errorf("creating perf.csv: %w", err)
	}

	return &OutputManager{dir: dir, perfFile: f}, nil
}

// WriteConfig saves the current configuration as YAML.
func (om *OutputManager) WriteConfig(cfg *config.Config) error {
	if om == nil {
		return nil
	}
	return cfg.WriteYAML(filepath.Join(om.dir, "config.yaml"))
}

// WriteMask writes regions.csv and points.csv for an extraction result.
// Both files are replaced on every call.
func (om *OutputManager) WriteMask(res mask.Result) error {
	if om == nil {
		return nil
	}
	return errors.Join(
		writeCSV(filepath.Join(om.dir, "regions.csv"), RegionRows(res)),
		writeCSV(filepath.Join(om.dir, "points.csv"), PointRows(res)),
	)
}

// WritePerf appends a performance stats record to perf.csv.
func (om *OutputManager) WritePerf(stats PerfStats, frame int64) error {
	if om == nil {
		return nil
	}

	records := []PerfStatsCSV{stats.ToCSV(frame)}

	if !om.perfHeaderWritten {
		if err := gocsv.Marshal(records, om.perfFile); err != nil {
			return fmt.Errorf("writing perf: %w", err)
		}
		om.perfHeaderWritten = true
	} else {
		if err := gocsv.MarshalWithoutHeaders(records, om.perfFile); err != nil {
			return fmt.Errorf("writing perf: %w", err)
		}
	}

	return nil
}

// Dir returns the output directory path.
func (om *OutputManager) Dir() string {
	if om == nil {
		return ""
	}
	return om.dir
}

// Close closes perf.csv.
func (om *OutputManager) Close() error {
	if om == nil || om.perfFile == nil {
		return nil
	}
	return om.perfFile.Close()
}

// WriteMaskCSV writes regions.csv and points.csv for res into dir, creating it if needed.
func WriteMaskCSV(dir string, res mask.Result) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}
	om := &OutputManager{dir: dir}
	return om.WriteMask(res)
}

func writeCSV[T any](path string, rows []T) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", filepath.Base(path), err)
	}
	if err := gocsv.MarshalFile(&rows, f); err != nil {
		f.Close()
		return fmt.Errorf("writing %s: %w", filepath.Base(path), err)
	}
	return f.Close()
}
