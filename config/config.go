// Package config provides configuration loading and access for the game.
package config

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all game configuration parameters.
type Config struct {
	Screen     ScreenConfig     `yaml:"screen"`
	Assets     AssetsConfig     `yaml:"assets"`
	Mask       MaskConfig       `yaml:"mask"`
	Bouncer    BouncerConfig    `yaml:"bouncer"`
	Rocks      []RockConfig     `yaml:"rocks"`
	Mining     MiningConfig     `yaml:"mining"`
	Coin       CoinConfig       `yaml:"coin"`
	Transition TransitionConfig `yaml:"transition"`
	Camera     CameraConfig     `yaml:"camera"`
	Audio      AudioConfig      `yaml:"audio"`
	Effects    EffectsConfig    `yaml:"effects"`
	Debug      DebugConfig      `yaml:"debug"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// ScreenConfig holds display settings.
type ScreenConfig struct {
	Width     int    `yaml:"width"`
	Height    int    `yaml:"height"`
	TargetFPS int    `yaml:"target_fps"`
	Title     string `yaml:"title"`
}

// AssetsConfig holds asset file locations, relative to Root.
type AssetsConfig struct {
	Root       string   `yaml:"root"`
	Map        string   `yaml:"map"`
	Mask       string   `yaml:"mask"`
	Background string   `yaml:"background"`
	RockLayers []string `yaml:"rock_layers"`
	CoinModel  string   `yaml:"coin_model"`
	Punches    []string `yaml:"punches"`
	Ambient    string   `yaml:"ambient"`
}

// MaskConfig controls region extraction from the map mask.
type MaskConfig struct {
	Step         int `yaml:"step"`          // Sampling step in pixels (0 = derive from image size)
	GridLines    int `yaml:"grid_lines"`    // Step = min(W, H) / grid_lines
	HuePrecision int `yaml:"hue_precision"` // Decimal digits kept in region names (-1 = full)
}

// BouncerConfig holds the rock bounce model.
type BouncerConfig struct {
	KickSpeed    float64 `yaml:"kick_speed"`    // Upward speed applied on a hit
	Gravity      float64 `yaml:"gravity"`       // Deceleration per second
	MaxSpeed     float64 `yaml:"max_speed"`     // Speed cap
	ScaleDivisor float64 `yaml:"scale_divisor"` // Scale = base * (1 + offset / divisor)
}

// RockConfig places one rock layer in the mine scene.
type RockConfig struct {
	Layer  int     `yaml:"layer"` // Index into assets.rock_layers
	X      float64 `yaml:"x"`
	Y      float64 `yaml:"y"`
	Z      float64 `yaml:"z"`
	Scale  float64 `yaml:"scale"`
	Anchor string  `yaml:"anchor"` // "center" or "top_left"
}

// MiningConfig holds the ore reserve of each rock.
type MiningConfig struct {
	Reserve      float64 `yaml:"reserve"`        // Ore per rock
	DamagePerHit float64 `yaml:"damage_per_hit"` // Ore mined per click
	RegenRate    float64 `yaml:"regen_rate"`     // Ore regained per second
}

// CoinConfig holds the spinning coin model settings.
type CoinConfig struct {
	SpinRate float64 `yaml:"spin_rate"` // Radians per second
	Z        float64 `yaml:"z"`
}

// TransitionConfig holds scene fade durations in seconds.
type TransitionConfig struct {
	FadeOut float64 `yaml:"fade_out"`
	Hold    float64 `yaml:"hold"`
	FadeIn  float64 `yaml:"fade_in"`
}

// CameraConfig holds the map camera limits.
type CameraConfig struct {
	MinZoom  float64 `yaml:"min_zoom"`
	MaxZoom  float64 `yaml:"max_zoom"`
	ZoomStep float64 `yaml:"zoom_step"` // Zoom factor per wheel notch
}

// AudioConfig holds audio playback settings.
type AudioConfig struct {
	Enabled       bool    `yaml:"enabled"`
	SampleRate    int     `yaml:"sample_rate"`
	AmbientVolume float64 `yaml:"ambient_volume"` // Linear gain, 1 = unchanged
	SampleVolume  float64 `yaml:"sample_volume"`
}

// EffectsConfig holds click feedback settings.
type EffectsConfig struct {
	Dust         bool `yaml:"dust"`          // Burst of dust on every rock hit
	MaxParticles int  `yaml:"max_particles"` // Dust particle cap
}

// DebugConfig holds debug overlay settings.
type DebugConfig struct {
	Boxes bool `yaml:"boxes"` // Start with bounding boxes visible
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	ScreenW32 float32
	ScreenH32 float32
	FadeOut   time.Duration
	Hold      time.Duration
	FadeIn    time.Duration
}

// global holds the loaded configuration.
var global *Config

// Init loads configuration from the given path, or uses embedded defaults if path is empty.
// Must be called before Cfg().
func Init(path string) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	global = cfg
	return nil
}

// MustInit is like Init but panics on error.
func MustInit(path string) {
	if err := Init(path); err != nil {
		panic(fmt.Sprintf("config: failed to initialize: %v", err))
	}
}

// Cfg returns the global configuration. Panics if Init was not called.
func Cfg() *Config {
	if global == nil {
		panic("config: Cfg() called before Init()")
	}
	return global
}

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Only overwrites fields present in the file
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	cfg.computeDerived()

	return cfg, nil
}

// validate rejects values the game cannot run with.
func (c *Config) validate() error {
	var errs []error
	if c.Screen.Width <= 0 || c.Screen.Height <= 0 {
		errs = append(errs, fmt.Errorf("screen size must be positive, got %dx%d", c.Screen.Width, c.Screen.Height))
	}
	if c.Mask.Step < 0 {
		errs = append(errs, fmt.Errorf("mask.step must not be negative, got %d", c.Mask.Step))
	}
	if c.Mask.HuePrecision > maxHuePrecision {
		errs = append(errs, fmt.Errorf("mask.hue_precision must be at most %d, got %d", maxHuePrecision, c.Mask.HuePrecision))
	}
	if c.Bouncer.ScaleDivisor == 0 {
		errs = append(errs, errors.New("bouncer.scale_divisor must not be zero"))
	}
	if c.Transition.FadeOut < 0 || c.Transition.Hold < 0 || c.Transition.FadeIn < 0 {
		errs = append(errs, errors.New("transition durations must not be negative"))
	}
	if c.Camera.MinZoom <= 0 || c.Camera.MaxZoom < c.Camera.MinZoom {
		errs = append(errs, fmt.Errorf("camera zoom range [%v, %v] is invalid", c.Camera.MinZoom, c.Camera.MaxZoom))
	}
	if c.Effects.MaxParticles < 0 {
		errs = append(errs, fmt.Errorf("effects.max_particles must not be negative, got %d", c.Effects.MaxParticles))
	}
	for i, r := range c.Rocks {
		if r.Layer < 0 || r.Layer >= len(c.Assets.RockLayers) {
			errs = append(errs, fmt.Errorf("rocks[%d].layer %d out of range (have %d layers)", i, r.Layer, len(c.Assets.RockLayers)))
		}
		if r.Anchor != "" && r.Anchor != AnchorCenter && r.Anchor != AnchorTopLeft {
			errs = append(errs, fmt.Errorf("rocks[%d].anchor %q is unknown", i, r.Anchor))
		}
	}
	return errors.Join(errs...)
}

// maxHuePrecision matches mask.MaxHuePrecision. Hues carry no more digits than that.
const maxHuePrecision = 6

// Anchor names accepted in rock placements.
const (
	AnchorCenter  = "center"
	AnchorTopLeft = "top_left"
)

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() {
	c.Derived.ScreenW32 = float32(c.Screen.Width)
	c.Derived.ScreenH32 = float32(c.Screen.Height)
	c.Derived.FadeOut = seconds(c.Transition.FadeOut)
	c.Derived.Hold = seconds(c.Transition.Hold)
	c.Derived.FadeIn = seconds(c.Transition.FadeIn)

	for i := range c.Rocks {
		if c.Rocks[i].Scale == 0 {
			c.Rocks[i].Scale = 1
		}
		if c.Rocks[i].Anchor == "" {
			c.Rocks[i].Anchor = AnchorCenter
		}
	}
}

// AssetPath resolves an asset path relative to assets.root. Absolute paths are kept.
func (c *Config) AssetPath(rel string) string {
	if rel == "" || filepath.IsAbs(rel) || c.Assets.Root == "" {
		return rel
	}
	return filepath.Join(c.Assets.Root, rel)
}

func seconds(s float64) time.Duration {
	return time.Duration(s * float64(time.Second))
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
