package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func writeFile(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatalf("writing config: %v", err)
	}
	return path
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("loading defaults: %v", err)
	}

	if cfg.Screen.Width != 1920 || cfg.Screen.Height != 1080 {
		t.Errorf("expected 1920x1080, got %dx%d", cfg.Screen.Width, cfg.Screen.Height)
	}
	if cfg.Bouncer.KickSpeed != 5 || cfg.Bouncer.Gravity != 50 || cfg.Bouncer.MaxSpeed != 10 {
		t.Errorf("unexpected bouncer defaults: %+v", cfg.Bouncer)
	}
	if cfg.Mask.GridLines != 100 || cfg.Mask.HuePrecision != 2 {
		t.Errorf("unexpected mask defaults: %+v", cfg.Mask)
	}
	if len(cfg.Rocks) != 4 {
		t.Errorf("expected 4 rocks, got %d", len(cfg.Rocks))
	}
	if cfg.Derived.FadeOut != 200*time.Millisecond || cfg.Derived.FadeIn != 200*time.Millisecond {
		t.Errorf("expected 200ms fades, got %v / %v", cfg.Derived.FadeOut, cfg.Derived.FadeIn)
	}
}

func TestLoadDerivesRockDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("loading defaults: %v", err)
	}

	for i, r := range cfg.Rocks {
		if r.Anchor == "" {
			t.Errorf("rocks[%d]: expected anchor to be filled in", i)
		}
	}
	if cfg.Rocks[3].Anchor != AnchorTopLeft {
		t.Errorf("expected last rock anchored top-left, got %q", cfg.Rocks[3].Anchor)
	}
}

func TestLoadOverlay(t *testing.T) {
	path := writeFile(t, `
mask:
  step: 4
transition:
  fade_out: 0.5
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("loading overlay: %v", err)
	}

	if cfg.Mask.Step != 4 {
		t.Errorf("expected step 4, got %d", cfg.Mask.Step)
	}
	// Untouched fields keep their defaults
	if cfg.Mask.GridLines != 100 {
		t.Errorf("expected grid_lines default 100, got %d", cfg.Mask.GridLines)
	}
	if cfg.Derived.FadeOut != 500*time.Millisecond {
		t.Errorf("expected 500ms fade out, got %v", cfg.Derived.FadeOut)
	}
}

func TestLoadRejectsInvalid(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"negative step", "mask:\n  step: -1\n", "mask.step"},
		{"bad layer", "rocks:\n  - { layer: 9 }\n", "out of range"},
		{"bad anchor", "rocks:\n  - { layer: 0, anchor: middle }\n", "anchor"},
		{"zero divisor", "bouncer:\n  scale_divisor: 0\n", "scale_divisor"},
		{"inverted zoom", "camera:\n  min_zoom: 2\n  max_zoom: 1\n", "zoom"},
		{"negative particles", "effects:\n  max_particles: -1\n", "max_particles"},
		{"huge precision", "mask:\n  hue_precision: 400\n", "hue_precision"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeFile(t, tt.body))
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("expected error mentioning %q, got %v", tt.want, err)
			}
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestWriteYAMLRoundtrip(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("loading defaults: %v", err)
	}

	path := filepath.Join(t.TempDir(), "snapshot.yaml")
	if err := cfg.WriteYAML(path); err != nil {
		t.Fatalf("writing snapshot: %v", err)
	}

	again, err := Load(path)
	if err != nil {
		t.Fatalf("reloading snapshot: %v", err)
	}
	if again.Screen != cfg.Screen || again.Bouncer != cfg.Bouncer {
		t.Error("expected snapshot to reload to the same values")
	}
}

func TestCfgPanicsBeforeInit(t *testing.T) {
	global = nil
	defer func() {
		if recover() == nil {
			t.Error("expected panic")
		}
	}()
	Cfg()
}

func TestAssetPath(t *testing.T) {
	abs := filepath.Join(t.TempDir(), "map.png")

	tests := []struct {
		name string
		root string
		rel  string
		want string
	}{
		{"relative", "assets", "private/map.png", filepath.Join("assets", "private", "map.png")},
		{"absolute", "assets", abs, abs},
		{"no root", "", "private/map.png", "private/map.png"},
		{"empty", "assets", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{Assets: AssetsConfig{Root: tt.root}}
			if got := cfg.AssetPath(tt.rel); got != tt.want {
				t.Errorf("expected %q, got %q", tt.want, got)
			}
		})
	}
}
