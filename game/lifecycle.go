package game

import (
	"log/slog"

	"github.com/pthm-cable/mine/assets"
	"github.com/pthm-cable/mine/components"
	"github.com/pthm-cable/mine/mask"
)

// samplePointSize is the half-diagonal of a sample point rhombus (15x15 overall).
const samplePointSize = 7.5

// missingTexture marks a sprite with no GPU texture (headless or failed load).
const missingTexture = -1

// spawnMineScene creates the background, the rock layers and the coin.
func (g *Game) spawnMineScene() {
	tag := components.SceneTag{Scene: components.SceneMine}

	if bg, ok := g.spriteFor(g.cfg.Assets.Background, components.AnchorCenter); ok {
		pos := components.Position{Z: BackgroundZ}
		// Stretched to the design size regardless of the texture size
		scale := components.Scale{X: DesignWidth / bg.Width, Y: DesignHeight / bg.Height}
		g.spriteMapper.NewEntity(&pos, &scale, &bg, &tag)
	}

	reserve := float32(g.cfg.Mining.Reserve)
	spawned := 0
	for i, rc := range g.cfg.Rocks {
		sprite, ok := g.spriteFor(g.cfg.Assets.RockLayers[rc.Layer], components.ParseAnchor(rc.Anchor))
		if !ok {
			slog.Warn("skipping rock", "index", i, "layer", rc.Layer)
			continue
		}

		base := float32(rc.Scale)
		pos := components.Position{X: float32(rc.X), Y: float32(rc.Y), Z: float32(rc.Z)}
		scale := components.Scale{X: base, Y: base}
		bouncer := components.Bouncer{}
		rock := components.Rock{
			Layer:      rc.Layer,
			BaseScale:  base,
			Reserve:    reserve,
			MaxReserve: reserve,
		}
		g.rockMapper.NewEntity(&pos, &scale, &sprite, &bouncer, &rock, &tag)
		spawned++
	}

	coinPos := components.Position{Z: float32(g.cfg.Coin.Z)}
	spin := components.Spin{Rate: float32(g.cfg.Coin.SpinRate)}
	g.coinMapper.NewEntity(&coinPos, &spin, &components.Coin{}, &tag)

	slog.Info("mine scene spawned", "rocks", spawned)
}

// spawnMapScene creates the map sprite and the mask overlay sprite.
// Region markers follow once the mask has been decoded.
func (g *Game) spawnMapScene() {
	tag := components.SceneTag{Scene: components.SceneMap}
	scale := components.Scale{X: 1, Y: 1}

	if m, ok := g.spriteFor(g.cfg.Assets.Map, components.AnchorCenter); ok {
		pos := components.Position{Z: MapZ}
		g.spriteMapper.NewEntity(&pos, &scale, &m, &tag)
	}

	// GPU copy of the mask; the CPU copy comes from the background loader
	if m, ok := g.spriteFor(g.cfg.Assets.Mask, components.AnchorCenter); ok {
		pos := components.Position{Z: MaskZ}
		g.maskEntity = g.spriteMapper.NewEntity(&pos, &scale, &m, &tag)
		g.hasMask = true
	}
}

// spriteFor builds a sprite for the asset at rel. Sizes come from the image header so
// headless runs lay out the same as windowed ones.
func (g *Game) spriteFor(rel string, anchor components.Anchor) (components.Sprite, bool) {
	path := g.cfg.AssetPath(rel)

	w, h, err := assets.Size(path)
	if err != nil {
		slog.Warn("sprite unavailable", "path", path, "error", err)
		return components.Sprite{}, false
	}
	if w == 0 || h == 0 {
		slog.Warn("sprite has zero size", "path", path)
		return components.Sprite{}, false
	}

	sprite := components.Sprite{
		Texture: missingTexture,
		Width:   float32(w),
		Height:  float32(h),
		Anchor:  anchor,
	}
	if g.textures != nil {
		sprite.Texture = g.textures.load(path)
	}
	return sprite, true
}

// ReloadMask decodes the mask file again. Its markers replace the current ones once the
// decode finishes. Returns false while a load is still running.
func (g *Game) ReloadMask() bool {
	if g.maskLoader.Poll() == assets.StateStarted {
		return false
	}
	g.maskLoader = assets.Load(g.cfg.AssetPath(g.cfg.Assets.Mask))
	g.maskHandled = false
	slog.Info("reloading mask", "path", g.maskLoader.Path())
	return true
}

// handleMask reacts once to the background loader finishing. Markers from an earlier
// load are removed first.
func (g *Game) handleMask(state assets.State) {
	g.maskHandled = true
	g.regions.Clear()
	g.maskResult = mask.Result{}
	g.numRegions, g.numPoints = 0, 0

	if state == assets.StateFailed {
		slog.Error("mask load failed", "path", g.maskLoader.Path(), "error", g.maskLoader.Err())
		return
	}

	opts := mask.Options{
		Step:         g.cfg.Mask.Step,
		GridLines:    g.cfg.Mask.GridLines,
		HuePrecision: g.cfg.Mask.HuePrecision,
	}
	g.maskResult = mask.ExtractWithOptions(g.maskLoader.Image(), opts)
	g.numRegions, g.numPoints = g.regions.Spawn(g.maskResult)

	bounds := g.maskLoader.Image().Bounds()
	slog.Info("mask extracted",
		"path", g.maskLoader.Path(),
		"width", bounds.Dx(),
		"height", bounds.Dy(),
		"step", opts.StepFor(bounds.Dx(), bounds.Dy()),
		"regions", g.numRegions,
		"points", g.numPoints,
	)
	for _, name := range g.maskResult.Names() {
		box := g.maskResult.Regions[name]
		slog.Debug("region",
			"name", name,
			"min_x", box.Min.X, "min_y", box.Min.Y,
			"max_x", box.Max.X, "max_y", box.Max.Y,
		)
	}

	if g.outputManager != nil {
		if err := g.outputManager.WriteMask(g.maskResult); err != nil {
			slog.Error("failed to write mask", "error", err)
		}
	}
}
