// Package game wires the ECS world, scenes, assets and UI into the mining prototype.
package game

import (
	"log/slog"
	"math/rand"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/mine/assets"
	"github.com/pthm-cable/mine/audio"
	"github.com/pthm-cable/mine/camera"
	"github.com/pthm-cable/mine/components"
	"github.com/pthm-cable/mine/config"
	"github.com/pthm-cable/mine/mask"
	"github.com/pthm-cable/mine/renderer"
	"github.com/pthm-cable/mine/systems"
	"github.com/pthm-cable/mine/telemetry"
	"github.com/pthm-cable/mine/ui"
)

// Design size of the mine scene. The mine camera scales it to fit the window.
const (
	DesignWidth  = 1920
	DesignHeight = 1080
)

// Sprite depths.
const (
	BackgroundZ = 0
	MapZ        = 1
	MaskZ       = 10
)

// Options configures a game instance.
type Options struct {
	Config    *config.Config // nil = config.Cfg()
	Seed      int64
	LogStats  bool
	OutputDir string
	Headless  bool
	AutoClick int // Headless only: click a rock every N ticks (0 = never)

	// StatsCallback, if set, receives perf stats at every telemetry flush.
	StatsCallback func(telemetry.PerfStats)
}

// Game holds the complete game state.
type Game struct {
	cfg   *config.Config
	world *ecs.World
	rng   *rand.Rand

	// Entity mappers
	rockMapper *ecs.Map6[
		components.Position,
		components.Scale,
		components.Sprite,
		components.Bouncer,
		components.Rock,
		components.SceneTag,
	]
	spriteMapper *ecs.Map4[components.Position, components.Scale, components.Sprite, components.SceneTag]
	coinMapper   *ecs.Map4[components.Position, components.Spin, components.Coin, components.SceneTag]

	// Filters used by rendering and stats
	spriteFilter *ecs.Filter4[components.Position, components.Scale, components.Sprite, components.SceneTag]
	rockFilter   *ecs.Filter4[components.Position, components.Scale, components.Sprite, components.Rock]
	regionFilter *ecs.Filter2[components.Position, components.RegionMarker]
	pointFilter  *ecs.Filter2[components.Position, components.SamplePoint]
	coinFilter   *ecs.Filter2[components.Position, components.Spin]

	// Systems
	clicker  *systems.ClickSystem
	bouncer  *systems.BounceSystem
	spinner  *systems.SpinSystem
	dust     *systems.DustSystem
	fader    *systems.Fader
	regions  *systems.RegionSpawner
	registry *systems.SystemRegistry

	// Mask
	maskLoader  *assets.Loader
	maskResult  mask.Result
	maskHandled bool
	maskEntity  ecs.Entity
	hasMask     bool
	numRegions  int
	numPoints   int

	// Cameras
	mineCam *camera.Camera
	mapCam  *camera.Camera

	// Scene state
	scene        components.Scene
	pendingScene components.Scene
	hasPending   bool

	// Score
	ore  float32
	hits int

	// Audio (nil when disabled)
	audio *audio.Bank

	// Rendering (nil in headless mode)
	textures *textureStore
	coin     *coinModel
	dustUI   *renderer.DustRenderer
	hud      *ui.HUD
	perfUI   *ui.PerfPanel
	controls *ui.ControlsPanel
	overlays *ui.OverlayRegistry

	// Telemetry
	perfCollector *telemetry.PerfCollector
	outputManager *telemetry.OutputManager
	logStats      bool
	statsCallback func(telemetry.PerfStats)
	lastPerf      telemetry.PerfStats

	// State
	tick      int64
	headless  bool
	autoClick int
	fixedDT   float32

	// Window dimensions
	screenWidth, screenHeight float32
}

// NewGameWithOptions creates a game instance. In windowed mode the raylib window must
// already be open.
func NewGameWithOptions(opts Options) *Game {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Cfg()
	}

	seed := opts.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	world := ecs.NewWorld()

	rng := rand.New(rand.NewSource(seed))

	g := &Game{
		cfg:   cfg,
		world: world,
		rng:   rng,
		rockMapper: ecs.NewMap6[
			components.Position,
			components.Scale,
			components.Sprite,
			components.Bouncer,
			components.Rock,
			components.SceneTag,
		](world),
		spriteMapper: ecs.NewMap4[components.Position, components.Scale, components.Sprite, components.SceneTag](world),
		coinMapper:   ecs.NewMap4[components.Position, components.Spin, components.Coin, components.SceneTag](world),
		spriteFilter: ecs.NewFilter4[components.Position, components.Scale, components.Sprite, components.SceneTag](world),
		rockFilter:   ecs.NewFilter4[components.Position, components.Scale, components.Sprite, components.Rock](world),
		regionFilter: ecs.NewFilter2[components.Position, components.RegionMarker](world),
		pointFilter:  ecs.NewFilter2[components.Position, components.SamplePoint](world),
		coinFilter:   ecs.NewFilter2[components.Position, components.Spin](world),

		clicker: systems.NewClickSystem(world, float32(cfg.Bouncer.KickSpeed), float32(cfg.Mining.DamagePerHit)),
		bouncer: systems.NewBounceSystem(world, systems.BounceParams{
			Kick:         float32(cfg.Bouncer.KickSpeed),
			Gravity:      float32(cfg.Bouncer.Gravity),
			MaxSpeed:     float32(cfg.Bouncer.MaxSpeed),
			ScaleDivisor: float32(cfg.Bouncer.ScaleDivisor),
			RegenRate:    float32(cfg.Mining.RegenRate),
		}),
		spinner:  systems.NewSpinSystem(world),
		dust:     systems.NewDustSystem(cfg.Effects.MaxParticles, rng),
		fader:    systems.NewFader(cfg.Derived.FadeOut, cfg.Derived.Hold, cfg.Derived.FadeIn),
		regions:  systems.NewRegionSpawner(world, samplePointSize),
		registry: systems.NewSystemRegistry(),

		scene:         components.SceneMine,
		perfCollector: telemetry.NewPerfCollector(cfg.Screen.TargetFPS),
		logStats:      opts.LogStats,
		statsCallback: opts.StatsCallback,
		headless:      opts.Headless,
		autoClick:     opts.AutoClick,
		fixedDT:       1 / float32(max(cfg.Screen.TargetFPS, 1)),
		screenWidth:   cfg.Derived.ScreenW32,
		screenHeight:  cfg.Derived.ScreenH32,
	}

	if !g.headless {
		g.screenWidth = float32(rl.GetScreenWidth())
		g.screenHeight = float32(rl.GetScreenHeight())
	}

	fit := fitZoom(g.screenWidth, g.screenHeight)
	g.mineCam = camera.New(g.screenWidth, g.screenHeight, fit, fit)
	g.mineCam.SetZoom(fit)
	g.mapCam = camera.New(g.screenWidth, g.screenHeight, float32(cfg.Camera.MinZoom), float32(cfg.Camera.MaxZoom))

	// The mask decodes in the background from the first frame
	g.maskLoader = assets.Load(cfg.AssetPath(cfg.Assets.Mask))

	if opts.OutputDir != "" {
		om, err := telemetry.NewOutputManager(opts.OutputDir)
		if err != nil {
			slog.Error("failed to create output manager", "error", err)
		} else {
			g.outputManager = om
			if err := om.WriteConfig(cfg); err != nil {
				slog.Error("failed to write config", "error", err)
			}
		}
	}

	if !g.headless {
		g.initRendering()
		g.initAudio()
	}

	g.spawnMineScene()
	g.spawnMapScene()

	slog.Info("game created",
		"seed", seed,
		"headless", g.headless,
		"screen_w", g.screenWidth,
		"screen_h", g.screenHeight,
		"mask", g.maskLoader.Path(),
	)

	return g
}

// initRendering creates the GPU-side stores and UI. Requires an open window.
func (g *Game) initRendering() {
	g.textures = newTextureStore()
	g.coin = loadCoinModel(g.cfg.AssetPath(g.cfg.Assets.CoinModel))
	g.dustUI = renderer.NewDustRenderer()
	g.hud = ui.NewHUD()
	g.overlays = ui.NewOverlayRegistry(g.cfg.Debug.Boxes)
	g.perfUI = ui.NewPerfPanel(g.registry, int32(g.screenWidth)-260, 10)
	g.controls = ui.NewControlsPanel(int32(g.screenWidth)-260, 220, 250, 1)
}

// initAudio loads the punch samples and ambient track and starts playback.
func (g *Game) initAudio() {
	if !g.cfg.Audio.Enabled {
		return
	}

	bank := audio.NewBank(g.cfg.Audio.SampleRate, g.cfg.Audio.SampleVolume, g.cfg.Audio.AmbientVolume)

	paths := make([]string, len(g.cfg.Assets.Punches))
	for i, p := range g.cfg.Assets.Punches {
		paths[i] = g.cfg.AssetPath(p)
	}
	loaded := bank.LoadSamples(paths)

	if err := bank.LoadAmbient(g.cfg.AssetPath(g.cfg.Assets.Ambient)); err != nil {
		slog.Warn("ambient track unavailable", "error", err)
	}

	if err := bank.Init(); err != nil {
		slog.Error("audio disabled", "error", err)
		return
	}
	bank.PlayAmbient()

	slog.Info("audio ready", "samples", loaded, "sample_rate", g.cfg.Audio.SampleRate)
	g.audio = bank
}

// fitZoom returns the zoom that fits the design size inside the viewport.
func fitZoom(w, h float32) float32 {
	zx := w / DesignWidth
	zy := h / DesignHeight
	if zx < zy {
		return zx
	}
	return zy
}

// Update advances one windowed frame. Draw must follow.
func (g *Game) Update() {
	g.perfCollector.StartTick()
	g.perfCollector.StartPhase(telemetry.PhaseInput)

	in := g.handleInput()
	g.step(rl.GetFrameTime(), in)
}

// UpdateHeadless advances one tick without any raylib calls.
func (g *Game) UpdateHeadless() {
	g.perfCollector.StartTick()
	g.perfCollector.StartPhase(telemetry.PhaseInput)

	var in frameInput
	if g.autoClick > 0 && g.tick%int64(g.autoClick) == 0 {
		if x, y, ok := g.autoClickTarget(); ok {
			in.click = true
			in.clickX, in.clickY = x, y
		}
	}

	g.step(g.fixedDT, in)

	g.perfCollector.EndTick()
	g.tick++
	g.flushTelemetry()
}

// frameInput is the input gathered for one frame, in world coordinates.
type frameInput struct {
	click          bool
	clickX, clickY float32
	nextScene      bool
}

// step runs the simulation for one frame.
func (g *Game) step(dt float32, in frameInput) {
	g.perfCollector.StartPhase(telemetry.PhaseClick)
	if in.click && g.scene == components.SceneMine {
		g.Click(in.clickX, in.clickY)
	}
	if in.nextScene {
		g.RequestScene(g.scene.Next())
	}
	if g.hasPending {
		g.RequestScene(g.pendingScene)
		g.hasPending = false
	}

	// Rocks and the coin only move while the mine is on screen
	g.perfCollector.StartPhase(telemetry.PhaseBounce)
	if g.scene == components.SceneMine {
		g.bouncer.Update(dt)
		g.dust.Update(dt)
	}

	g.perfCollector.StartPhase(telemetry.PhaseSpin)
	if g.scene == components.SceneMine {
		g.spinner.Update(dt)
	}

	g.perfCollector.StartPhase(telemetry.PhaseLoader)
	state := g.maskLoader.Poll()

	g.perfCollector.StartPhase(telemetry.PhaseRegions)
	if !g.maskHandled && state != assets.StateStarted {
		g.handleMask(state)
	}

	g.perfCollector.StartPhase(telemetry.PhaseFade)
	if to, switched := g.fader.Update(time.Duration(float64(dt) * float64(time.Second))); switched {
		g.enterScene(to)
	}
}

// Click mines every rock under world point (x, y) and plays a punch.
func (g *Game) Click(x, y float32) systems.ClickResult {
	res := g.clicker.Click(x, y)
	g.ore += res.Ore
	g.hits += res.Hits

	if g.audio != nil {
		g.audio.PlayRandom(g.rng)
	}
	if res.Hits > 0 && g.cfg.Effects.Dust {
		g.dust.EmitHit(x, y, res.Ore)
	}
	if res.Hits > 0 {
		slog.Debug("rock hit", "x", x, "y", y, "hits", res.Hits, "ore", res.Ore)
	}
	return res
}

// RequestScene starts a fade to the given scene. Returns false if a fade is already
// running or the scene is already current.
func (g *Game) RequestScene(to components.Scene) bool {
	if to == g.scene && !g.fader.Busy() {
		return false
	}
	return g.fader.Request(to)
}

// enterScene switches the active scene while the screen is dark.
func (g *Game) enterScene(to components.Scene) {
	from := g.scene
	g.scene = to
	slog.Info("scene changed", "from", from, "to", to, "tick", g.tick)
}

// autoClickTarget picks the center of the next rock in round-robin order.
func (g *Game) autoClickTarget() (x, y float32, ok bool) {
	type target struct{ x, y float32 }
	var targets []target

	query := g.rockFilter.Query()
	for query.Next() {
		pos, scale, sprite, _ := query.Get()
		minX, minY, maxX, maxY := sprite.Bounds(*pos, *scale)
		targets = append(targets, target{(minX + maxX) / 2, (minY + maxY) / 2})
	}
	if len(targets) == 0 {
		return 0, 0, false
	}

	t := targets[int(g.tick/int64(g.autoClick))%len(targets)]
	return t.x, t.y, true
}

// reserve sums the ore left and the ore capacity over all rocks.
func (g *Game) reserve() (current, capacity float32) {
	query := g.rockFilter.Query()
	for query.Next() {
		_, _, _, rock := query.Get()
		current += rock.Reserve
		capacity += rock.MaxReserve
	}
	return current, capacity
}

// Unload releases GPU, audio and output resources.
func (g *Game) Unload() {
	if g.textures != nil {
		g.textures.unload()
	}
	if g.coin != nil {
		g.coin.unload()
	}
	if g.audio != nil {
		g.audio.Close()
	}
	if g.outputManager != nil {
		if err := g.outputManager.Close(); err != nil {
			slog.Error("failed to close output", "error", err)
		}
	}
}

// Tick returns the number of completed frames.
func (g *Game) Tick() int64 {
	return g.tick
}

// Scene returns the active scene.
func (g *Game) Scene() components.Scene {
	return g.scene
}

// Ore returns the ore mined so far.
func (g *Game) Ore() float32 {
	return g.ore
}

// Hits returns the number of rock hits so far.
func (g *Game) Hits() int {
	return g.hits
}

// MaskState returns the state of the background mask load.
func (g *Game) MaskState() assets.State {
	return g.maskLoader.Poll()
}

// MaskResult returns the extracted regions, empty until the mask is ready.
func (g *Game) MaskResult() mask.Result {
	return g.maskResult
}

// Fader exposes the scene transition state.
func (g *Game) Fader() *systems.Fader {
	return g.fader
}
