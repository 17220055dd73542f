package systems

import (
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/mine/components"
)

// ClickResult summarizes one click on the mine scene.
type ClickResult struct {
	Hits int     // Rocks under the cursor
	Ore  float32 // Ore mined by this click
}

// ClickSystem bounces and mines every rock under a click.
type ClickSystem struct {
	filter ecs.Filter5[
		components.Position,
		components.Scale,
		components.Sprite,
		components.Bouncer,
		components.Rock,
	]
	kick   float32
	damage float32
}

// NewClickSystem creates a click system with the given kick speed and ore per hit.
func NewClickSystem(w *ecs.World, kick, damage float32) *ClickSystem {
	return &ClickSystem{
		filter: *ecs.NewFilter5[
			components.Position,
			components.Scale,
			components.Sprite,
			components.Bouncer,
			components.Rock,
		](w),
		kick:   kick,
		damage: damage,
	}
}

// Click handles a click at world position (x, y).
// Overlapping rocks are all hit.
func (s *ClickSystem) Click(x, y float32) ClickResult {
	var res ClickResult

	query := s.filter.Query()
	for query.Next() {
		pos, scale, sprite, bouncer, rock := query.Get()

		if !Contains(sprite, *pos, *scale, x, y) {
			continue
		}

		bouncer.Bounce(s.kick)
		res.Ore += rock.Mine(s.damage)
		res.Hits++
	}
	return res
}

// Contains reports whether world point (x, y) lies inside the sprite's scaled bounds.
// Edges count as inside. The half size is Width*Scale/2; the scale is applied once, so
// the clickable area always matches the drawn sprite.
func Contains(sprite *components.Sprite, pos components.Position, scale components.Scale, x, y float32) bool {
	minX, minY, maxX, maxY := sprite.Bounds(pos, scale)
	return x >= minX && x <= maxX && y >= minY && y <= maxY
}
