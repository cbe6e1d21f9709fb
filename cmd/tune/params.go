package main

import (
	"math"

	"github.com/pthm-cable/colony/config"
)

// ParamSpec defines a single tunable option.
type ParamSpec struct {
	Name    string  // Human-readable name
	Path    string  // Config path for logging
	Min     float64 // Lower bound
	Max     float64 // Upper bound
	Default float64 // Default value
	Integer bool    // Rounded before use
}

// ParamVector holds the set of all tunable options.
type ParamVector struct {
	Specs []ParamSpec
}

// NewParamVector creates the standard set of tunable options.
func NewParamVector() *ParamVector {
	return &ParamVector{
		Specs: []ParamSpec{
			{Name: "smell", Path: "options.smell", Min: 0.05, Max: 1.0, Default: 0.5},
			{Name: "signal_radius", Path: "options.signal_radius", Min: 0, Max: 8, Default: 2},
			{Name: "propagation", Path: "options.propagation", Min: 0, Max: 10, Default: 3, Integer: true},
			{Name: "decay", Path: "options.decay", Min: 20, Max: 1000, Default: 200, Integer: true},
			{Name: "rage", Path: "options.rage", Min: 1, Max: 60, Default: 10, Integer: true},
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

// Clamp ensures all values are within bounds and integer options are whole.
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

// ApplyToConfig writes parameter values into the options section. Order matches Specs.
func (pv *ParamVector) ApplyToConfig(cfg *config.Config, values []float64) {
	clamped := pv.Clamp(values)
	cfg.Options.Smell = clamped[0]
	cfg.Options.SignalRadius = clamped[1]
	cfg.Options.Propagation = int(clamped[2])
	cfg.Options.Decay = int(clamped[3])
	cfg.Options.Rage = int(clamped[4])
}

// ExtractFromConfig reads current parameter values from a config.
func (pv *ParamVector) ExtractFromConfig(cfg *config.Config) []float64 {
	return []float64{
		cfg.Options.Smell,
		cfg.Options.SignalRadius,
		float64(cfg.Options.Propagation),
		float64(cfg.Options.Decay),
		float64(cfg.Options.Rage),
	}
}
