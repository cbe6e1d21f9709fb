package telemetry

import (
	"testing"
	"time"
)

func runRounds(pc *PerfCollector, n int, decide, sweep time.Duration) {
	for i := 0; i < n; i++ {
		pc.StartRound()
		pc.StartPhase(PhaseDecide)
		time.Sleep(decide)
		pc.StartPhase(PhaseSweep)
		time.Sleep(sweep)
		pc.EndRound()
	}
}

func TestPerfCollectorPhases(t *testing.T) {
	pc := NewPerfCollector(10)
	runRounds(pc, 5, 300*time.Microsecond, 20*time.Microsecond)

	stats := pc.Stats()
	if stats.Rounds != 5 || stats.AvgRound <= 0 {
		t.Fatalf("rounds = %d, avg = %v", stats.Rounds, stats.AvgRound)
	}
	if stats.PhaseAvg[PhaseDecide] <= 0 || stats.PhaseAvg[PhaseSweep] <= 0 {
		t.Errorf("phases not tracked: %v", stats.PhaseAvg)
	}
	if stats.PhaseAvg[PhaseDecay] != 0 {
		t.Errorf("untouched phase = %v, want 0", stats.PhaseAvg[PhaseDecay])
	}
	if stats.PhasePct[PhaseDecide] <= stats.PhasePct[PhaseSweep] {
		t.Errorf("decide %.1f%% should exceed sweep %.1f%%", stats.PhasePct[PhaseDecide], stats.PhasePct[PhaseSweep])
	}

	row := stats.Row(42)
	if row.WindowEnd != 42 || row.DecidePct != stats.PhasePct[PhaseDecide] {
		t.Errorf("Row = %+v", row)
	}
}

func TestPerfCollectorRollingWindow(t *testing.T) {
	pc := NewPerfCollector(3)
	runRounds(pc, 3, 5*time.Millisecond, 0)
	slow := pc.Stats().AvgRound

	// Three fast rounds fully replace the slow samples.
	runRounds(pc, 3, 50*time.Microsecond, 0)
	fast := pc.Stats()

	if fast.AvgRound >= slow {
		t.Errorf("window did not roll: slow=%v fast=%v", slow, fast.AvgRound)
	}
	if fast.Rounds != 3 {
		t.Errorf("rounds in window = %d, want 3", fast.Rounds)
	}
	if fast.RoundsPerSecond <= 0 {
		t.Error("expected positive rounds per second")
	}
}

func TestPerfCollectorEmpty(t *testing.T) {
	stats := NewPerfCollector(0).Stats()
	if stats.AvgRound != 0 || stats.Rounds != 0 || stats.Frames != 0 {
		t.Errorf("empty collector stats = %+v", stats)
	}
}

func TestPerfCollectorRoundsPerFrame(t *testing.T) {
	tests := []struct {
		name     string
		frames   []frameSample
		wantAvg  float64
		wantCuts int
	}{
		{"full speed", []frameSample{{20, false}, {20, false}}, 20, 0},
		{"budget bound", []frameSample{{20, false}, {5, true}, {8, true}}, 11, 2},
		{"window drops oldest", []frameSample{{1, true}, {4, false}, {4, false}, {4, false}}, 4, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pc := NewPerfCollector(3)
			for _, f := range tt.frames {
				pc.RecordFrame(f.rounds, f.cut)
			}
			stats := pc.Stats()
			if stats.RoundsPerFrame != tt.wantAvg || stats.BudgetCuts != tt.wantCuts {
				t.Errorf("rounds/frame = %v cuts = %d, want %v and %d",
					stats.RoundsPerFrame, stats.BudgetCuts, tt.wantAvg, tt.wantCuts)
			}
		})
	}
}

func TestPhaseNames(t *testing.T) {
	want := []string{"decide", "sweep", "decay", "telemetry"}
	for ph := Phase(0); ph < NumPhases; ph++ {
		if ph.String() != want[ph] {
			t.Errorf("Phase(%d) = %q, want %q", ph, ph, want[ph])
		}
	}
}
