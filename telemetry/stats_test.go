package telemetry

import (
	"math"
	"testing"
)

func TestComputeHealthStats(t *testing.T) {
	tests := []struct {
		name   string
		values []float64
		mean   float64
		std    float64
		p50    float64
	}{
		{"empty", nil, 0, 0, 0},
		{"single", []float64{3}, 3, 0, 3},
		{"uniform", []float64{2, 2, 2}, 2, 0, 2},
		{"odd spread", []float64{5, 1, 3}, 3, 2, 3},
		{"five values", []float64{1, 2, 3, 4, 10}, 4, math.Sqrt(12.5), 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mean, std, p50 := ComputeHealthStats(tt.values)
			if math.Abs(mean-tt.mean) > 1e-9 {
				t.Errorf("mean = %v, want %v", mean, tt.mean)
			}
			if math.Abs(std-tt.std) > 1e-9 {
				t.Errorf("std = %v, want %v", std, tt.std)
			}
			if math.Abs(p50-tt.p50) > 1e-9 {
				t.Errorf("p50 = %v, want %v", p50, tt.p50)
			}
		})
	}
}

func TestComputeHealthStatsDoesNotSortInput(t *testing.T) {
	values := []float64{3, 1, 2}
	ComputeHealthStats(values)
	if values[0] != 3 || values[1] != 1 || values[2] != 2 {
		t.Errorf("input reordered: %v", values)
	}
}

func TestWindowStatsTeam(t *testing.T) {
	s := WindowStats{Teams: []TeamWindowStats{{TeamID: 4, Team: "red"}, {TeamID: 7, Team: "yellow"}}}
	if row, ok := s.Team(7); !ok || row.Team != "yellow" {
		t.Errorf("Team(7) = %+v, %v", row, ok)
	}
	if _, ok := s.Team(5); ok {
		t.Error("Team(5) should be missing")
	}
}
