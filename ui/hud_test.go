package ui

import (
	"reflect"
	"testing"
	"time"

	"github.com/pthm-cable/colony/telemetry"
)

func TestSortedPhases(t *testing.T) {
	var stats telemetry.PerfStats
	stats.PhaseAvg[telemetry.PhaseDecay] = 3 * time.Millisecond
	stats.PhaseAvg[telemetry.PhaseDecide] = time.Millisecond

	got := SortedPhases(stats)
	want := []telemetry.Phase{telemetry.PhaseDecay, telemetry.PhaseDecide, telemetry.PhaseSweep, telemetry.PhaseTelemetry}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("SortedPhases = %v, want %v", got, want)
	}
}
