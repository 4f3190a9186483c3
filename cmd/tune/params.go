// Package main provides CMA-ES tuning of the shadow and nibble
// parameters toward the difficulty targets in the tune config section.
package main

import (
	"github.com/AdrianBisson/YEN/config"
)

// ParamSpec defines a single tunable parameter.
type ParamSpec struct {
	Name    string  // Human-readable name
	Path    string  // Config path for logging
	Min     float64 // Lower bound
	Max     float64 // Upper bound
	Default float64 // Default value
}

// ParamVector holds the set of all tunable parameters.
type ParamVector struct {
	Specs []ParamSpec
}

// NewParamVector creates the standard set of tunable parameters.
func NewParamVector() *ParamVector {
	return &ParamVector{
		Specs: []ParamSpec{
			// Shadow movement (update_stride and pickup_stride locked at 2/3)
			{Name: "shadow_speed", Path: "shadow.speed", Min: 0.10, Max: 0.60, Default: 0.30},
			{Name: "seek_gain", Path: "shadow.seek_gain", Min: 0.02, Max: 0.25, Default: 0.08},
			{Name: "wall_avoid_gain", Path: "shadow.wall_avoid_gain", Min: 0.04, Max: 0.40, Default: 0.12},
			{Name: "wall_buffer", Path: "shadow.wall_buffer", Min: 1.0, Max: 6.0, Default: 2.5},
			{Name: "eat_slow_radius", Path: "shadow.eat_slow_radius", Min: 0.5, Max: 5.0, Default: 2.0},
			{Name: "jitter_scale", Path: "shadow.jitter_scale", Min: 0.0, Max: 0.05, Default: 0.01},
			{Name: "wander_amp", Path: "shadow.wander_amp", Min: 0.0, Max: 0.10, Default: 0.02},
			{Name: "wander_rate", Path: "shadow.wander_rate", Min: 0.2, Max: 4.0, Default: 1.5},
			// Shadow lifecycle
			{Name: "spawn_delay_ms", Path: "shadow.spawn_delay_ms", Min: 500, Max: 10000, Default: 3000},
			{Name: "invuln_ms", Path: "shadow.invuln_ms", Min: 500, Max: 8000, Default: 3000},
			{Name: "reflect_ms", Path: "shadow.reflect_ms", Min: 200, Max: 6000, Default: 2000},
			{Name: "max_shadows", Path: "shadow.max_shadows", Min: 1, Max: 12, Default: 6},
			// Nibble economy
			{Name: "nibble_interval_ms", Path: "nibbles.spawn_interval_ms", Min: 500, Max: 8000, Default: 2500},
			{Name: "nibble_initial", Path: "nibbles.initial_count", Min: 4, Max: 30, Default: 12},
			{Name: "drop_jitter", Path: "nibbles.drop_jitter", Min: 0.0, Max: 2.0, Default: 0.8},
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

// Clamp ensures all values are within bounds.
func (pv *ParamVector) Clamp(v []float64) []float64 {
	clamped := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		val := v[i]
		if val < spec.Min {
			val = spec.Min
		}
		if val > spec.Max {
			val = spec.Max
		}
		clamped[i] = val
	}
	return clamped
}

// ApplyToConfig applies parameter values to a Config struct.
func (pv *ParamVector) ApplyToConfig(cfg *config.Config, values []float64) {
	// Clamp values to ensure they're within bounds
	clamped := pv.Clamp(values)

	// Apply each parameter to the config
	// Order must match Specs order
	i := 0

	cfg.Shadow.Speed = clamped[i]
	i++
	cfg.Shadow.SeekGain = clamped[i]
	i++
	cfg.Shadow.WallAvoidGain = clamped[i]
	i++
	cfg.Shadow.WallBuffer = clamped[i]
	i++
	cfg.Shadow.EatSlowRadius = clamped[i]
	i++
	cfg.Shadow.JitterScale = clamped[i]
	i++
	cfg.Shadow.WanderAmp = clamped[i]
	i++
	cfg.Shadow.WanderRate = clamped[i]
	i++

	cfg.Shadow.SpawnDelayMs = clamped[i]
	i++
	cfg.Shadow.InvulnMs = clamped[i]
	i++
	cfg.Shadow.ReflectMs = clamped[i]
	i++
	cfg.Shadow.MaxShadows = int(clamped[i] + 0.5)
	i++

	// Strides locked: tuning them changes the sim's cost profile, not
	// its difficulty.
	cfg.Shadow.UpdateStride = 2
	cfg.Shadow.PickupStride = 3

	cfg.Nibbles.SpawnIntervalMs = clamped[i]
	i++
	cfg.Nibbles.InitialCount = int(clamped[i] + 0.5)
	i++
	cfg.Nibbles.DropJitter = clamped[i]
}

// ExtractFromConfig extracts current parameter values from a Config struct.
func (pv *ParamVector) ExtractFromConfig(cfg *config.Config) []float64 {
	return []float64{
		cfg.Shadow.Speed,
		cfg.Shadow.SeekGain,
		cfg.Shadow.WallAvoidGain,
		cfg.Shadow.WallBuffer,
		cfg.Shadow.EatSlowRadius,
		cfg.Shadow.JitterScale,
		cfg.Shadow.WanderAmp,
		cfg.Shadow.WanderRate,
		cfg.Shadow.SpawnDelayMs,
		cfg.Shadow.InvulnMs,
		cfg.Shadow.ReflectMs,
		float64(cfg.Shadow.MaxShadows),
		cfg.Nibbles.SpawnIntervalMs,
		float64(cfg.Nibbles.InitialCount),
		cfg.Nibbles.DropJitter,
	}
}
