package game

import (
	"testing"

	"github.com/pthm-cable/colony/config"
)

func TestOptionsFromConfigMatchesDefaults(t *testing.T) {
	if got, want := OptionsFromConfig(config.Cfg()), DefaultOptions(); got != want {
		t.Errorf("OptionsFromConfig(defaults) = %+v, want %+v", got, want)
	}
}

func TestSanitize(t *testing.T) {
	tests := []struct {
		name  string
		in    Options
		check func(Options) bool
	}{
		{"smell clamped high", Options{Smell: 3}, func(o Options) bool { return o.Smell == 1 }},
		{"smell kept positive", Options{Smell: 0}, func(o Options) bool { return o.Smell > 0 }},
		{"dirt penalty at least one", Options{DirtPenalty: 0.5}, func(o Options) bool { return o.DirtPenalty == 1 }},
		{"speed at least one", Options{Speed: 0}, func(o Options) bool { return o.Speed == 1 }},
		{"negative counts zeroed", Options{Propagation: -2, Decay: -1, Rage: -5, StartingFood: -3}, func(o Options) bool {
			return o.Propagation == 0 && o.Decay == 0 && o.Rage == 0 && o.StartingFood == 0
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.in.Sanitize(); !tt.check(got) {
				t.Errorf("Sanitize(%+v) = %+v", tt.in, got)
			}
		})
	}
}

func TestWithAndValueRoundTripDescriptors(t *testing.T) {
	base := DefaultOptions()
	for _, d := range OptionDescriptors() {
		t.Run(d.ID, func(t *testing.T) {
			v := d.Clamp(d.Max)
			got := base.With(d.ID, v).Value(d.ID)
			if diff := got - v; diff > 0.001 || diff < -0.001 {
				t.Errorf("With(%s, %v).Value = %v", d.ID, v, got)
			}
		})
	}

	if got := base.With("unknown", 5); got != base {
		t.Errorf("unknown id changed options: %+v", got)
	}
}
