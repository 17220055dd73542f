package main

import (
	"math"
	"time"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/mine/components"
	"github.com/pthm-cable/mine/config"
	"github.com/pthm-cable/mine/systems"
)

// HopStats describes one simulated hop of a clicked rock.
type HopStats struct {
	Peak     float64       // Highest scale pulse relative to the base scale
	Duration time.Duration // Time from the click until the rock is at rest
	Settled  bool          // False if the rock was still moving at maxTicks
}

// Target is the hop the tuner aims for.
type Target struct {
	Peak     float64
	Duration time.Duration
}

// FitnessEvaluator runs headless hops and scores them against a target.
type FitnessEvaluator struct {
	params     *ParamVector
	baseConfig *config.Config
	target     Target
	maxTicks   int
	fps        int

	last HopStats
}

// NewFitnessEvaluator creates a new evaluator.
func NewFitnessEvaluator(params *ParamVector, baseCfg *config.Config, target Target, maxTicks int) *FitnessEvaluator {
	return &FitnessEvaluator{
		params:     params,
		baseConfig: baseCfg,
		target:     target,
		maxTicks:   maxTicks,
		fps:        max(baseCfg.Screen.TargetFPS, 1),
	}
}

// Last returns the hop from the most recent evaluation.
func (fe *FitnessEvaluator) Last() HopStats {
	return fe.last
}

// Evaluate returns the squared relative error of the hop produced by raw.
// Lower is better; hops that never settle are penalized.
func (fe *FitnessEvaluator) Evaluate(raw []float64) float64 {
	cfg := *fe.baseConfig
	fe.params.ApplyToConfig(&cfg, raw)

	hop := SimulateHop(&cfg, fe.maxTicks)
	fe.last = hop

	peakErr := (hop.Peak - fe.target.Peak) / fe.target.Peak
	durErr := (hop.Duration.Seconds() - fe.target.Duration.Seconds()) / fe.target.Duration.Seconds()
	fitness := peakErr*peakErr + durErr*durErr
	if !hop.Settled {
		fitness += 10
	}
	return fitness
}

// SimulateHop clicks a single rock once and steps the bounce system until it rests.
func SimulateHop(cfg *config.Config, maxTicks int) HopStats {
	w := ecs.NewWorld()
	mapper := ecs.NewMap5[
		components.Position,
		components.Scale,
		components.Sprite,
		components.Bouncer,
		components.Rock,
	](w)
	scales := ecs.NewMap1[components.Scale](w)

	pos := components.Position{}
	scale := components.Scale{X: 1, Y: 1}
	sprite := components.Sprite{Width: 100, Height: 100}
	rock := components.Rock{BaseScale: 1, Reserve: 1, MaxReserve: 1}
	e := mapper.NewEntity(&pos, &scale, &sprite, &components.Bouncer{}, &rock)

	clicker := systems.NewClickSystem(w, float32(cfg.Bouncer.KickSpeed), 0)
	bouncer := systems.NewBounceSystem(w, systems.BounceParams{
		Kick:         float32(cfg.Bouncer.KickSpeed),
		Gravity:      float32(cfg.Bouncer.Gravity),
		MaxSpeed:     float32(cfg.Bouncer.MaxSpeed),
		ScaleDivisor: float32(cfg.Bouncer.ScaleDivisor),
	})

	fps := max(cfg.Screen.TargetFPS, 1)
	dt := 1 / float32(fps)

	clicker.Click(0, 0)

	var hop HopStats
	for tick := 1; tick <= maxTicks; tick++ {
		bouncer.Update(dt)
		s := scales.Get(e)
		hop.Peak = math.Max(hop.Peak, float64(s.X)-1)
		if s.X == 1 {
			hop.Duration = time.Duration(tick) * time.Second / time.Duration(fps)
			hop.Settled = true
			return hop
		}
	}
	hop.Duration = time.Duration(maxTicks) * time.Second / time.Duration(fps)
	return hop
}
