package main

import "github.com/pthm-cable/ripples/config"

// ParamSpec defines a single tunable engine coefficient.
type ParamSpec struct {
	Name    string  // Human-readable name
	Path    string  // Config path for logging
	Min     float64 // Lower bound
	Max     float64 // Upper bound
	Default float64 // Default value
}

// ParamVector holds the set of all tunable coefficients.
type ParamVector struct {
	Specs []ParamSpec
}

// NewParamVector creates the standard set of tunable coefficients.
func NewParamVector() *ParamVector {
	return &ParamVector{
		Specs: []ParamSpec{
			{Name: "gradient_gain", Path: "engine.gradient_gain", Min: 0.005, Max: 0.2, Default: 0.03},
			{Name: "height_gain", Path: "engine.height_gain", Min: 0.1, Max: 1.0, Default: 0.5},
			{Name: "damping", Path: "engine.damping", Min: 0.8, Max: 0.99, Default: 0.95},
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
		clamped[i] = min(spec.Max, max(spec.Min, v[i]))
	}
	return clamped
}

// ApplyToConfig writes clamped parameter values into the engine section.
// Order must match Specs order.
func (pv *ParamVector) ApplyToConfig(cfg *config.EngineConfig, values []float64) {
	clamped := pv.Clamp(values)
	cfg.GradientGain = clamped[0]
	cfg.HeightGain = clamped[1]
	cfg.Damping = clamped[2]
}
