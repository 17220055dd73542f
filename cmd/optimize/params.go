// Package main tunes the rock bounce model with CMA-ES so a hit feels like a target hop.
package main

import (
	"github.com/pthm-cable/mine/config"
)

// ParamSpec defines a single optimizable parameter.
type ParamSpec struct {
	Name    string  // Human-readable name
	Path    string  // Config path for logging
	Min     float64 // Lower bound
	Max     float64 // Upper bound
	Default float64 // Default value
}

// ParamVector holds the set of all optimizable parameters.
type ParamVector struct {
	Specs []ParamSpec
}

// NewParamVector creates the bounce parameters, defaulting to cfg's values.
func NewParamVector(cfg *config.Config) *ParamVector {
	return &ParamVector{
		Specs: []ParamSpec{
			{Name: "kick_speed", Path: "bouncer.kick_speed", Min: 0.5, Max: 30, Default: cfg.Bouncer.KickSpeed},
			{Name: "gravity", Path: "bouncer.gravity", Min: 5, Max: 300, Default: cfg.Bouncer.Gravity},
			{Name: "max_speed", Path: "bouncer.max_speed", Min: 1, Max: 40, Default: cfg.Bouncer.MaxSpeed},
		},
	}
}

// Dim returns the number of parameters.
func (pv *ParamVector) Dim() int {
	return len(pv.Specs)
}

// DefaultVector returns the default parameter values as a slice.
func (pv *ParamVector) DefaultVector() []float64 {
	v := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		v[i] = spec.Default
	}
	return v
}

// Normalize converts raw parameter values to [0,1] range.
func (pv *ParamVector) Normalize(raw []float64) []float64 {
	normalized := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		normalized[i] = (raw[i] - spec.Min) / (spec.Max - spec.Min)
	}
	return normalized
}

// Denormalize converts [0,1] values back to raw parameter values.
func (pv *ParamVector) Denormalize(normalized []float64) []float64 {
	raw := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		raw[i] = spec.Min + normalized[i]*(spec.Max-spec.Min)
	}
	return raw
}

// Clamp restricts raw values to their bounds.
func (pv *ParamVector) Clamp(raw []float64) []float64 {
	clamped := make([]float64, len(raw))
	for i, spec := range pv.Specs {
		clamped[i] = min(max(raw[i], spec.Min), spec.Max)
	}
	return clamped
}

// ApplyToConfig writes clamped raw values into cfg.
func (pv *ParamVector) ApplyToConfig(cfg *config.Config, raw []float64) {
	v := pv.Clamp(raw)
	cfg.Bouncer.KickSpeed = v[0]
	cfg.Bouncer.Gravity = v[1]
	cfg.Bouncer.MaxSpeed = v[2]
}
