package inspector

import (
	"testing"

	"github.com/pthm-cable/colony/components"
	"github.com/pthm-cable/colony/game"
	"github.com/pthm-cable/colony/systems"
)

func TestParseTag(t *testing.T) {
	tests := []struct {
		tag    string
		widget Widget
		opts   map[string]string
	}{
		{"", WidgetAuto, map[string]string{}},
		{"bar", WidgetBar, map[string]string{}},
		{"bar,max:200", WidgetBar, map[string]string{"max": "200"}},
		{"label,fmt:%.1f", WidgetLabel, map[string]string{"fmt": "%.1f"}},
		{"skip", WidgetSkip, map[string]string{}},
		{"bogus", WidgetAuto, map[string]string{}},
	}
	for _, tt := range tests {
		t.Run(tt.tag, func(t *testing.T) {
			w, opts := ParseTag(tt.tag)
			if w != tt.widget {
				t.Errorf("widget = %v, want %v", w, tt.widget)
			}
			if len(opts) != len(tt.opts) {
				t.Fatalf("options = %v, want %v", opts, tt.opts)
			}
			for k, v := range tt.opts {
				if opts[k] != v {
					t.Errorf("option %s = %q, want %q", k, opts[k], v)
				}
			}
		})
	}
}

func TestExtractFieldsSkipsTaggedFields(t *testing.T) {
	team := components.Team{ID: 1, Name: "red", Health: 10}
	ant := components.NewAnt(team, 3)

	fields := ExtractFields(&ant)
	names := make(map[string]Field)
	for _, f := range fields {
		names[f.Name] = f
	}

	for _, skipped := range []string{"Team", "State", "Signals"} {
		if _, ok := names[skipped]; ok {
			t.Errorf("field %s should be skipped", skipped)
		}
	}
	health, ok := names["Health"]
	if !ok {
		t.Fatal("missing Health field")
	}
	if health.Widget != WidgetBar || GetMax(health.Options) != 10 {
		t.Errorf("Health rendered as %v max %v, want bar max 10", health.Widget, GetMax(health.Options))
	}
	if budget := names["Budget"]; budget.Value != 3 {
		t.Errorf("Budget = %v, want 3", budget.Value)
	}
}

func TestExtractFieldsAutoDetect(t *testing.T) {
	dirt := components.Dirt{Cleared: true}
	fields := ExtractFields(dirt)
	if len(fields) != 1 || fields[0].Widget != WidgetBool {
		t.Fatalf("fields = %+v, want one bool", fields)
	}
	if ExtractFields(42) != nil {
		t.Error("non-struct should yield no fields")
	}
}

func TestSections(t *testing.T) {
	food := components.NewFood(7)
	info := game.ElementInfo{
		At:   components.Coord{X: 2, Y: 3},
		Kind: components.KindFood,
		Food: &food,
		Pheromones: []systems.Pheromone{
			{Trail: systems.Trail{Team: 0, Foraging: true}, Value: 4, Age: 12},
		},
	}

	secs := Sections(info)
	if len(secs) != 2 {
		t.Fatalf("got %d sections, want 2", len(secs))
	}
	if secs[0].Title != "FOOD" || len(secs[0].Fields) != 2 {
		t.Errorf("food section = %+v", secs[0])
	}
	if secs[1].Fields[0].Name != "T0 forage" || secs[1].Fields[0].Value != "4 (r12)" {
		t.Errorf("pheromone field = %+v", secs[1].Fields[0])
	}
}

func TestRatio(t *testing.T) {
	tests := []struct{ v, max, want float32 }{
		{5, 10, 0.5},
		{20, 10, 1},
		{-1, 10, 0},
		{3, 0, 0},
	}
	for _, tt := range tests {
		if got := Ratio(tt.v, tt.max); got != tt.want {
			t.Errorf("Ratio(%v, %v) = %v, want %v", tt.v, tt.max, got, tt.want)
		}
	}
}
