// Package renderer draws world-space effects that are not ECS sprites.
package renderer

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/mine/camera"
	"github.com/pthm-cable/mine/systems"
)

// DustRenderer renders click dust.
type DustRenderer struct{}

// NewDustRenderer creates a new dust renderer.
func NewDustRenderer() *DustRenderer {
	return &DustRenderer{}
}

// Draw renders all particles through cam.
func (r *DustRenderer) Draw(cam *camera.Camera, particles []systems.DustParticle) {
	for i := range particles {
		p := &particles[i]
		lifeRatio := p.LifeRatio()

		var color rl.Color
		switch p.Type {
		case systems.DustOre:
			// Gold
			color = rl.Color{R: 255, G: 203, B: 60, A: uint8(lifeRatio * 230)}
		default:
			// Grey/brown
			color = rl.Color{R: 120, G: 100, B: 80, A: uint8(lifeRatio * 200)}
		}

		size := cam.Scale(p.Size * lifeRatio)
		if size < 0.5 {
			size = 0.5
		}
		sx, sy := cam.WorldToScreen(p.X, p.Y)
		rl.DrawCircleV(rl.Vector2{X: sx, Y: sy}, size, color)
	}
}
