package main

import (
	"math"

	"github.com/pthm-cable/trails/config"
)

// ParamSpec defines a single tunable parameter.
type ParamSpec struct {
	Name    string
	Path    string // config path, for logging
	Min     float64
	Max     float64
	Integer bool // rounded before it is applied

	get func(*config.Config) float64
	set func(*config.Config, float64)
}

// ParamVector holds the set of all tunable parameters.
type ParamVector struct {
	Specs []ParamSpec
}

// NewParamVector creates the standard set of tunable parameters.
func NewParamVector() *ParamVector {
	return &ParamVector{
		Specs: []ParamSpec{
			// Pheromone lifecycle
			{
				Name: "decay_rate", Path: "pheromone.decay_rate", Min: 1, Max: 20, Integer: true,
				get: func(c *config.Config) float64 { return float64(c.Pheromone.DecayRate) },
				set: func(c *config.Config, v float64) { c.Pheromone.DecayRate = uint32(v) },
			},
			{
				Name: "diffusion_fraction", Path: "pheromone.diffusion_fraction", Min: 0, Max: 0.8,
				get: func(c *config.Config) float64 { return c.Pheromone.DiffusionFraction },
				set: func(c *config.Config, v float64) { c.Pheromone.DiffusionFraction = v },
			},
			{
				Name: "min_spread_strength", Path: "pheromone.min_spread_strength", Min: 4, Max: 200, Integer: true,
				get: func(c *config.Config) float64 { return float64(c.Pheromone.MinSpreadStrength) },
				set: func(c *config.Config, v float64) { c.Pheromone.MinSpreadStrength = uint32(v) },
			},
			// Release
			{
				Name: "release_ticks", Path: "release.ticks", Min: 1, Max: 60, Integer: true,
				get: func(c *config.Config) float64 { return float64(c.Release.Ticks) },
				set: func(c *config.Config, v float64) { c.Release.Ticks = uint32(v) },
			},
			{
				Name: "source_strength", Path: "release.source_strength", Min: 10, Max: 1000, Integer: true,
				get: func(c *config.Config) float64 { return float64(c.Release.SourceStrength) },
				set: func(c *config.Config, v float64) { c.Release.SourceStrength = uint32(v) },
			},
			{
				Name: "trail_strength", Path: "release.trail_strength", Min: 10, Max: 500, Integer: true,
				get: func(c *config.Config) float64 { return float64(c.Release.TrailStrength) },
				set: func(c *config.Config, v float64) { c.Release.TrailStrength = uint32(v) },
			},
			// Movement
			{
				Name: "turn_sigma", Path: "movement.turn_sigma", Min: 0.05, Max: 1.0,
				get: func(c *config.Config) float64 { return c.Movement.TurnSigma },
				set: func(c *config.Config, v float64) { c.Movement.TurnSigma = v },
			},
			{
				Name: "max_turn_degrees", Path: "movement.max_turn_degrees", Min: 30, Max: 180,
				get: func(c *config.Config) float64 { return c.Movement.MaxTurnDegrees },
				set: func(c *config.Config, v float64) { c.Movement.MaxTurnDegrees = v },
			},
			{
				Name: "memory_capacity", Path: "movement.memory_capacity", Min: 0, Max: 64, Integer: true,
				get: func(c *config.Config) float64 { return float64(c.Movement.MemoryCapacity) },
				set: func(c *config.Config, v float64) { c.Movement.MemoryCapacity = int(v) },
			},
		},
	}
}

// Dim returns the number of parameters.
func (pv *ParamVector) Dim() int {
	return len(pv.Specs)
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

// Clamp bounds every value and rounds integer parameters.
func (pv *ParamVector) Clamp(v []float64) []float64 {
	clamped := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		val := math.Max(spec.Min, math.Min(spec.Max, v[i]))
		if spec.Integer {
			val = math.Round(val)
		}
		clamped[i] = val
	}
	return clamped
}

// ApplyToConfig writes clamped parameter values into cfg.
func (pv *ParamVector) ApplyToConfig(cfg *config.Config, values []float64) {
	for i, val := range pv.Clamp(values) {
		pv.Specs[i].set(cfg, val)
	}
	// The source deposit must stay at least as strong as the trail it starts
	cfg.Release.SourceStrength = max(cfg.Release.SourceStrength, cfg.Release.TrailStrength)
	// MaxTurnRad is derived from max_turn_degrees
	cfg.Refresh()
}

// ExtractFromConfig reads the current parameter values from cfg.
func (pv *ParamVector) ExtractFromConfig(cfg *config.Config) []float64 {
	out := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		out[i] = spec.get(cfg)
	}
	return out
}
