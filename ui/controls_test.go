package ui

import (
	"testing"

	"github.com/pthm-cable/colony/components"
	"github.com/pthm-cable/colony/game"
)

func descriptor(id string) components.FieldDescriptor {
	for _, fd := range game.OptionDescriptors() {
		if fd.ID == id {
			return fd
		}
	}
	panic("no descriptor " + id)
}

func TestApplySlider(t *testing.T) {
	base := game.DefaultOptions()

	tests := []struct {
		name    string
		id      string
		value   float32
		changed bool
		check   func(game.Options) bool
	}{
		{"unchanged speed", game.OptSpeed, float32(base.Speed), false, func(o game.Options) bool { return o == base }},
		{"speed snaps to step", game.OptSpeed, 41.4, true, func(o game.Options) bool { return o.Speed == 41 }},
		{"rage clamps to max", game.OptRage, 500, true, func(o game.Options) bool { return o.Rage == 100 }},
		{"dirt penalty floor", game.OptDirtPenalty, 0.2, true, func(o game.Options) bool { return o.DirtPenalty == 1 }},
		{"signal radius half steps", game.OptSignalRadius, 3.3, true, func(o game.Options) bool { return o.SignalRadius == 3.5 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, changed := applySlider(base, descriptor(tt.id), tt.value)
			if changed != tt.changed {
				t.Errorf("changed = %v, want %v", changed, tt.changed)
			}
			if !tt.check(got) {
				t.Errorf("unexpected options %+v", got)
			}
		})
	}
}

func TestCategoryLabel(t *testing.T) {
	if categoryLabel("panels") != "Panels" || categoryLabel("other") != "other" {
		t.Error("unexpected category labels")
	}
}
