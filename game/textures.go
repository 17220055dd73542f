package game

import (
	"log/slog"
	"math"
	"os"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// textureStore owns every GPU texture. Sprites refer to entries by index.
type textureStore struct {
	textures []rl.Texture2D
	byPath   map[string]int
}

func newTextureStore() *textureStore {
	return &textureStore{byPath: make(map[string]int)}
}

// load uploads the image at path once and returns its index, or missingTexture.
func (s *textureStore) load(path string) int {
	if idx, ok := s.byPath[path]; ok {
		return idx
	}

	tex := rl.LoadTexture(path)
	if !rl.IsTextureValid(tex) {
		slog.Warn("failed to load texture", "path", path)
		return missingTexture
	}
	rl.SetTextureFilter(tex, rl.FilterBilinear)

	idx := len(s.textures)
	s.textures = append(s.textures, tex)
	s.byPath[path] = idx
	return idx
}

// get returns the texture at idx.
func (s *textureStore) get(idx int) (rl.Texture2D, bool) {
	if idx < 0 || idx >= len(s.textures) {
		return rl.Texture2D{}, false
	}
	return s.textures[idx], true
}

func (s *textureStore) unload() {
	for _, tex := range s.textures {
		rl.UnloadTexture(tex)
	}
	s.textures = nil
	s.byPath = make(map[string]int)
}

// coinModel is the 3D coin. A flat cylinder stands in when the model file is missing.
type coinModel struct {
	model rl.Model
	tint  rl.Color
}

func loadCoinModel(path string) *coinModel {
	if _, err := os.Stat(path); err == nil {
		model := rl.LoadModel(path)
		if rl.IsModelValid(model) {
			return &coinModel{model: model, tint: rl.White}
		}
		slog.Warn("failed to load coin model", "path", path)
	} else {
		slog.Warn("coin model unavailable, using placeholder", "path", path, "error", err)
	}

	mesh := rl.GenMeshCylinder(1, 0.2, 32)
	model := rl.LoadModelFromMesh(mesh)
	// Stand the disc up to face the camera
	model.Transform = rl.MatrixRotateX(math.Pi / 2)
	return &coinModel{model: model, tint: rl.Gold}
}

func (c *coinModel) unload() {
	rl.UnloadModel(c.model)
}
