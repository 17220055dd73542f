package systems

import (
	"math"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/mine/components"
)

// SpinSystem rotates spinning entities.
type SpinSystem struct {
	filter ecs.Filter1[components.Spin]
}

// NewSpinSystem creates a new spin system.
func NewSpinSystem(w *ecs.World) *SpinSystem {
	return &SpinSystem{
		filter: *ecs.NewFilter1[components.Spin](w),
	}
}

// Update advances all spins by dt seconds, keeping angles in [0, 2π).
func (s *SpinSystem) Update(dt float32) {
	query := s.filter.Query()
	for query.Next() {
		spin := query.Get()
		spin.Angle = float32(math.Mod(float64(spin.Angle+spin.Rate*dt), 2*math.Pi))
		if spin.Angle < 0 {
			spin.Angle += 2 * math.Pi
		}
	}
}
