package game

import (
	"github.com/pthm-cable/colony/components"
	"github.com/pthm-cable/colony/config"
)

// Options are the runtime-tunable engine settings. Replacing them is always whole-value.
type Options struct {
	Smell        float64 // Distance noise spread, in (0, 1]
	StartingFood int     // Food stored in a newly placed hive
	SignalRadius float64 // Broadcast reach in cells
	DirtPenalty  float64 // Distance multiplier from a dirt cell, >= 1
	Speed        int     // Max rounds per presentation frame
	Propagation  int     // Hop budget of signals ants originate, read every tick
	Decay        int     // Pheromone max age in rounds
	Rage         int     // Battle patience in rounds
}

// DefaultOptions returns the built-in option values.
func DefaultOptions() Options {
	return Options{
		Smell:        0.5,
		StartingFood: 10,
		SignalRadius: 2.0,
		DirtPenalty:  1.2,
		Speed:        20,
		Propagation:  3,
		Decay:        200,
		Rage:         10,
	}
}

// OptionsFromConfig converts the options section of a config.
func OptionsFromConfig(cfg *config.Config) Options {
	o := cfg.Options
	return Options{
		Smell:        o.Smell,
		StartingFood: o.StartingFood,
		SignalRadius: o.SignalRadius,
		DirtPenalty:  o.DirtPenalty,
		Speed:        o.Speed,
		Propagation:  o.Propagation,
		Decay:        o.Decay,
		Rage:         o.Rage,
	}.Sanitize()
}

// Sanitize clamps every field into its valid range.
func (o Options) Sanitize() Options {
	if o.Smell <= 0 {
		o.Smell = 0.01
	}
	if o.Smell > 1 {
		o.Smell = 1
	}
	if o.DirtPenalty < 1 {
		o.DirtPenalty = 1
	}
	if o.SignalRadius < 0 {
		o.SignalRadius = 0
	}
	if o.Speed < 1 {
		o.Speed = 1
	}
	o.StartingFood = max(o.StartingFood, 0)
	o.Propagation = max(o.Propagation, 0)
	o.Decay = max(o.Decay, 0)
	o.Rage = max(o.Rage, 0)
	return o
}

// Option field ids.
const (
	OptSmell        = "smell"
	OptStartingFood = "starting_food"
	OptSignalRadius = "signal_radius"
	OptDirtPenalty  = "dirt_penalty"
	OptSpeed        = "speed"
	OptPropagation  = "propagation"
	OptDecay        = "decay"
	OptRage         = "rage"
)

// OptionDescriptors returns slider metadata for every option, in panel order.
func OptionDescriptors() []components.FieldDescriptor {
	return []components.FieldDescriptor{
		{ID: OptSpeed, Label: "Speed", Format: "%.0f", Min: 1, Max: 200, Step: 1, Group: "runner"},
		{ID: OptSmell, Label: "Smell", Format: "%.2f", Min: 0.01, Max: 1, Group: "senses"},
		{ID: OptSignalRadius, Label: "Signal radius", Format: "%.1f", Min: 0, Max: 20, Step: 0.5, Group: "senses"},
		{ID: OptPropagation, Label: "Propagation", Format: "%.0f", Min: 0, Max: 20, Step: 1, Group: "senses"},
		{ID: OptDecay, Label: "Decay", Format: "%.0f", Min: 0, Max: 1000, Step: 1, Group: "trails"},
		{ID: OptDirtPenalty, Label: "Dirt penalty", Format: "%.2f", Min: 1, Max: 5, Group: "trails"},
		{ID: OptRage, Label: "Rage", Format: "%.0f", Min: 0, Max: 100, Step: 1, Group: "combat"},
		{ID: OptStartingFood, Label: "Starting food", Format: "%.0f", Min: 0, Max: 100, Step: 1, Group: "colony"},
	}
}

// Value extracts an option by id.
func (o Options) Value(id string) float32 {
	switch id {
	case OptSmell:
		return float32(o.Smell)
	case OptStartingFood:
		return float32(o.StartingFood)
	case OptSignalRadius:
		return float32(o.SignalRadius)
	case OptDirtPenalty:
		return float32(o.DirtPenalty)
	case OptSpeed:
		return float32(o.Speed)
	case OptPropagation:
		return float32(o.Propagation)
	case OptDecay:
		return float32(o.Decay)
	case OptRage:
		return float32(o.Rage)
	default:
		return 0
	}
}

// With returns a copy with the option id set to v. Unknown ids are ignored.
func (o Options) With(id string, v float32) Options {
	switch id {
	case OptSmell:
		o.Smell = float64(v)
	case OptStartingFood:
		o.StartingFood = int(v + 0.5)
	case OptSignalRadius:
		o.SignalRadius = float64(v)
	case OptDirtPenalty:
		o.DirtPenalty = float64(v)
	case OptSpeed:
		o.Speed = int(v + 0.5)
	case OptPropagation:
		o.Propagation = int(v + 0.5)
	case OptDecay:
		o.Decay = int(v + 0.5)
	case OptRage:
		o.Rage = int(v + 0.5)
	}
	return o.Sanitize()
}
