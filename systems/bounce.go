// Package systems contains ECS systems for the game.
package systems

import (
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/mine/components"
)

// BounceParams holds the rock bounce model.
type BounceParams struct {
	Kick         float32 // Speed applied on a hit
	Gravity      float32
	MaxSpeed     float32
	ScaleDivisor float32 // Scale = base * (1 + offset / divisor)
	RegenRate    float32 // Ore regained per second
}

// BounceSystem advances every rock's bouncer and turns its offset into a scale pulse.
type BounceSystem struct {
	filter ecs.Filter3[components.Bouncer, components.Rock, components.Scale]
	params BounceParams
}

// NewBounceSystem creates a new bounce system.
func NewBounceSystem(w *ecs.World, params BounceParams) *BounceSystem {
	return &BounceSystem{
		filter: *ecs.NewFilter3[components.Bouncer, components.Rock, components.Scale](w),
		params: params,
	}
}

// Update runs the bounce system for dt seconds.
func (s *BounceSystem) Update(dt float32) {
	query := s.filter.Query()
	for query.Next() {
		bouncer, rock, scale := query.Get()

		bouncer.Update(dt, s.params.Gravity, s.params.MaxSpeed)

		k := rock.BaseScale * (1 + bouncer.Offset/s.params.ScaleDivisor)
		scale.X = k
		scale.Y = k

		if s.params.RegenRate > 0 {
			rock.Regen(s.params.RegenRate, dt)
		}
	}
}
