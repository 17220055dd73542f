package game

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/pthm-cable/mine/assets"
	"github.com/pthm-cable/mine/components"
	"github.com/pthm-cable/mine/config"
	"github.com/pthm-cable/mine/telemetry"
)

func writeImage(t *testing.T, path string, w, h int, paint func(img *image.NRGBA)) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("creating asset dir: %v", err)
	}
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	if paint != nil {
		paint(img)
	}
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("creating %s: %v", path, err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatalf("encoding %s: %v", path, err)
	}
}

// testConfig lays out a small asset tree and returns defaults pointing at it.
// The mask holds one green 10x10 block at pixels [100, 109].
func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg, err := config.Load("")
	if err != nil {
		t.Fatalf("loading defaults: %v", err)
	}

	root := t.TempDir()
	cfg.Assets.Root = root
	cfg.Audio.Enabled = false

	writeImage(t, cfg.AssetPath(cfg.Assets.Background), 192, 108, nil)
	writeImage(t, cfg.AssetPath(cfg.Assets.Map), 200, 200, nil)
	for _, layer := range cfg.Assets.RockLayers {
		writeImage(t, cfg.AssetPath(layer), 100, 80, nil)
	}
	writeImage(t, cfg.AssetPath(cfg.Assets.Mask), 200, 200, func(img *image.NRGBA) {
		for y := 100; y < 110; y++ {
			for x := 100; x < 110; x++ {
				img.Set(x, y, color.NRGBA{G: 255, A: 255})
			}
		}
	})
	return cfg
}

func newTestGame(t *testing.T, cfg *config.Config, opts Options) *Game {
	t.Helper()
	opts.Config = cfg
	opts.Headless = true
	opts.Seed = 1
	g := NewGameWithOptions(opts)
	t.Cleanup(g.Unload)
	return g
}

// waitForMask blocks until the mask is decoded, then runs one tick to spawn regions.
func waitForMask(t *testing.T, g *Game) {
	t.Helper()
	g.maskLoader.Wait()
	g.UpdateHeadless()
	if !g.maskHandled {
		t.Fatal("expected mask to be handled after load")
	}
}

func TestNewGameSpawnsMine(t *testing.T) {
	g := newTestGame(t, testConfig(t), Options{})

	if g.Scene() != components.SceneMine {
		t.Errorf("expected to start in the mine, got %v", g.Scene())
	}

	current, capacity := g.reserve()
	if capacity != 40 || current != 40 {
		t.Errorf("expected 4 rocks with 10 ore each, got %v/%v", current, capacity)
	}

	coins := 0
	query := g.coinFilter.Query()
	for query.Next() {
		coins++
	}
	if coins != 1 {
		t.Errorf("expected 1 coin, got %d", coins)
	}
}

func TestMissingAssetsSkipRocks(t *testing.T) {
	cfg := testConfig(t)
	if err := os.Remove(cfg.AssetPath(cfg.Assets.RockLayers[0])); err != nil {
		t.Fatalf("removing layer: %v", err)
	}

	g := newTestGame(t, cfg, Options{})

	if _, capacity := g.reserve(); capacity != 30 {
		t.Errorf("expected 3 rocks left, got capacity %v", capacity)
	}
}

func TestMaskRegionsSpawn(t *testing.T) {
	g := newTestGame(t, testConfig(t), Options{})
	waitForMask(t, g)

	if g.MaskState() != assets.StateReady {
		t.Fatalf("expected ready mask, got %v", g.MaskState())
	}
	res := g.MaskResult()
	if res.Len() != 1 {
		t.Fatalf("expected 1 region, got %v", res.Names())
	}
	if _, ok := res.Region("120"); !ok {
		t.Errorf("expected region \"120\", got %v", res.Names())
	}
	// Step 2 over a 10x10 block
	if g.numPoints != 25 {
		t.Errorf("expected 25 points, got %d", g.numPoints)
	}
	if g.numRegions != 1 {
		t.Errorf("expected 1 marker, got %d", g.numRegions)
	}
}

func countMarkers(g *Game) (regions, points int) {
	rq := g.regionFilter.Query()
	for rq.Next() {
		regions++
	}
	pq := g.pointFilter.Query()
	for pq.Next() {
		points++
	}
	return regions, points
}

func TestReloadMaskReplacesMarkers(t *testing.T) {
	cfg := testConfig(t)
	g := newTestGame(t, cfg, Options{})
	waitForMask(t, g)

	// Repaint the block red so the reload yields a different region
	writeImage(t, cfg.AssetPath(cfg.Assets.Mask), 200, 200, func(img *image.NRGBA) {
		for y := 100; y < 110; y++ {
			for x := 100; x < 110; x++ {
				img.Set(x, y, color.NRGBA{R: 255, A: 255})
			}
		}
	})

	if !g.ReloadMask() {
		t.Fatal("expected reload to start")
	}
	waitForMask(t, g)

	if _, ok := g.MaskResult().Region("0"); !ok {
		t.Errorf("expected region \"0\" after reload, got %v", g.MaskResult().Names())
	}
	regions, points := countMarkers(g)
	if regions != 1 || points != 25 {
		t.Errorf("expected 1 marker and 25 points after reload, got %d and %d", regions, points)
	}
}

func TestMaskFailureIsHandled(t *testing.T) {
	cfg := testConfig(t)
	if err := os.Remove(cfg.AssetPath(cfg.Assets.Mask)); err != nil {
		t.Fatalf("removing mask: %v", err)
	}

	g := newTestGame(t, cfg, Options{})
	waitForMask(t, g)

	if g.MaskState() != assets.StateFailed {
		t.Errorf("expected failed mask, got %v", g.MaskState())
	}
	if g.MaskResult().Len() != 0 || g.numPoints != 0 {
		t.Error("expected no regions after a failed load")
	}
}

func TestClickMinesRock(t *testing.T) {
	g := newTestGame(t, testConfig(t), Options{})

	// Layer 0 sits at (120, 50) with scale 0.75
	res := g.Click(120, 50)
	if res.Hits != 1 {
		t.Fatalf("expected 1 hit, got %d", res.Hits)
	}
	if g.Ore() != 1 || g.Hits() != 1 {
		t.Errorf("expected 1 ore and 1 hit, got %v and %d", g.Ore(), g.Hits())
	}

	if g.dust.Count() == 0 {
		t.Error("expected dust from a hit")
	}

	miss := g.Click(700, -400)
	if miss.Hits != 0 {
		t.Errorf("expected a miss, got %d hits", miss.Hits)
	}
	if g.Hits() != 1 {
		t.Errorf("expected hits to stay at 1, got %d", g.Hits())
	}
}

func TestRocksFreezeOutsideMine(t *testing.T) {
	g := newTestGame(t, testConfig(t), Options{})
	g.Click(120, 50)
	g.scene = components.SceneMap

	before, _ := g.reserve()
	for i := 0; i < 30; i++ {
		g.UpdateHeadless()
	}
	after, _ := g.reserve()

	if after != before {
		t.Errorf("expected reserve to stay at %v off the mine, got %v", before, after)
	}
}

func TestSceneTransition(t *testing.T) {
	g := newTestGame(t, testConfig(t), Options{})

	if g.RequestScene(components.SceneMine) {
		t.Error("expected request for the current scene to be refused")
	}
	if !g.RequestScene(components.SceneMap) {
		t.Fatal("expected request to start a fade")
	}
	if g.RequestScene(components.SceneTavern) {
		t.Error("expected request during a fade to be dropped")
	}

	// 0.2s out + 0.2s in at 60 fps
	for i := 0; i < 30 && g.Fader().Busy(); i++ {
		g.UpdateHeadless()
	}

	if g.Fader().Busy() {
		t.Fatal("expected fade to finish")
	}
	if g.Scene() != components.SceneMap {
		t.Errorf("expected map scene, got %v", g.Scene())
	}
}

func TestAutoClick(t *testing.T) {
	g := newTestGame(t, testConfig(t), Options{AutoClick: 5})

	for i := 0; i < 20; i++ {
		g.UpdateHeadless()
	}

	// Ticks 0, 5, 10 and 15 click
	if g.Hits() < 4 {
		t.Errorf("expected at least 4 hits, got %d", g.Hits())
	}
	if g.Ore() <= 0 {
		t.Errorf("expected ore to be mined, got %v", g.Ore())
	}
}

func TestTelemetryFlush(t *testing.T) {
	cfg := testConfig(t)
	dir := t.TempDir()

	var flushes int
	g := newTestGame(t, cfg, Options{
		OutputDir:     dir,
		StatsCallback: func(telemetry.PerfStats) { flushes++ },
	})
	waitForMask(t, g)

	for g.Tick() < 120 {
		g.UpdateHeadless()
	}

	if flushes != 2 {
		t.Errorf("expected 2 flushes in 120 ticks, got %d", flushes)
	}
	for _, name := range []string{"config.yaml", "perf.csv", "regions.csv", "points.csv"} {
		if _, err := os.Stat(filepath.Join(dir, name)); err != nil {
			t.Errorf("expected %s to be written: %v", name, err)
		}
	}
}

func TestFitZoom(t *testing.T) {
	tests := []struct {
		name string
		w, h float32
		want float32
	}{
		{"design size", 1920, 1080, 1},
		{"half", 960, 540, 0.5},
		{"wide window", 3840, 1080, 1},
		{"tall window", 960, 1080, 0.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := fitZoom(tt.w, tt.h); got != tt.want {
				t.Errorf("expected %v, got %v", tt.want, got)
			}
		})
	}
}
