package telemetry

import (
	"log/slog"
	"time"
)

// Phase is one timed step of a simulation round.
type Phase uint8

const (
	PhaseDecide Phase = iota
	PhaseSweep
	PhaseDecay
	PhaseTelemetry
	NumPhases
)

// String returns the phase name used in logs and CSV headers.
func (p Phase) String() string {
	switch p {
	case PhaseDecide:
		return "decide"
	case PhaseSweep:
		return "sweep"
	case PhaseDecay:
		return "decay"
	case PhaseTelemetry:
		return "telemetry"
	}
	return "unknown"
}

// roundSample is the timing of one round.
type roundSample struct {
	total  time.Duration
	phases [NumPhases]time.Duration
}

// frameSample is one presentation frame: how many rounds ran and whether the
// wall-clock budget cut it short of the configured speed.
type frameSample struct {
	rounds int
	cut    bool
}

// PerfCollector keeps rolling windows of round timings and rounds per frame.
// It is not safe for concurrent use; read it from the goroutine that runs the rounds.
type PerfCollector struct {
	rounds ring[roundSample]
	frames ring[frameSample]

	current    roundSample
	roundStart time.Time
	phaseStart time.Time
	phase      Phase
	inPhase    bool
}

// ring is a fixed-size window that overwrites its oldest entry.
type ring[T any] struct {
	items []T
	next  int
	count int
}

func newRing[T any](size int) ring[T] {
	return ring[T]{items: make([]T, size)}
}

func (r *ring[T]) push(v T) {
	r.items[r.next] = v
	r.next = (r.next + 1) % len(r.items)
	if r.count < len(r.items) {
		r.count++
	}
}

// NewPerfCollector averages over the last window rounds and frames.
func NewPerfCollector(window int) *PerfCollector {
	if window < 1 {
		window = 60
	}
	return &PerfCollector{
		rounds: newRing[roundSample](window),
		frames: newRing[frameSample](window),
	}
}

// StartRound begins timing a round.
func (p *PerfCollector) StartRound() {
	p.roundStart = time.Now()
	p.current = roundSample{}
	p.inPhase = false
}

// StartPhase closes the running phase, if any, and starts timing phase.
func (p *PerfCollector) StartPhase(phase Phase) {
	now := time.Now()
	p.closePhase(now)
	p.phase = phase
	p.phaseStart = now
	p.inPhase = true
}

func (p *PerfCollector) closePhase(now time.Time) {
	if p.inPhase {
		p.current.phases[p.phase] += now.Sub(p.phaseStart)
		p.inPhase = false
	}
}

// EndRound closes the last phase and records the round.
func (p *PerfCollector) EndRound() {
	now := time.Now()
	p.closePhase(now)
	p.current.total = now.Sub(p.roundStart)
	p.rounds.push(p.current)
}

// RecordFrame records a presentation frame that ran rounds rounds. cut is true when the
// frame budget ended the frame before the configured speed was reached.
func (p *PerfCollector) RecordFrame(rounds int, cut bool) {
	p.frames.push(frameSample{rounds: rounds, cut: cut})
}

// PerfStats summarizes the current windows.
type PerfStats struct {
	Rounds   int // Rounds in the window
	AvgRound time.Duration
	MinRound time.Duration
	MaxRound time.Duration

	PhaseAvg [NumPhases]time.Duration
	PhasePct [NumPhases]float64 // Share of the average round

	RoundsPerSecond float64 // Simulation throughput, excluding time between rounds

	Frames         int     // Frames in the window
	RoundsPerFrame float64 // Average rounds actually run per frame
	BudgetCuts     int     // Frames stopped by the wall-clock budget
}

// Stats aggregates both windows.
func (p *PerfCollector) Stats() PerfStats {
	var s PerfStats

	s.Frames = p.frames.count
	if s.Frames > 0 {
		total := 0
		for _, f := range p.frames.items[:p.frames.count] {
			total += f.rounds
			if f.cut {
				s.BudgetCuts++
			}
		}
		s.RoundsPerFrame = float64(total) / float64(s.Frames)
	}

	s.Rounds = p.rounds.count
	if s.Rounds == 0 {
		return s
	}

	var sum time.Duration
	var phaseSum [NumPhases]time.Duration
	for i, r := range p.rounds.items[:p.rounds.count] {
		sum += r.total
		if i == 0 || r.total < s.MinRound {
			s.MinRound = r.total
		}
		if r.total > s.MaxRound {
			s.MaxRound = r.total
		}
		for ph, d := range r.phases {
			phaseSum[ph] += d
		}
	}

	n := time.Duration(s.Rounds)
	s.AvgRound = sum / n
	for ph := range phaseSum {
		s.PhaseAvg[ph] = phaseSum[ph] / n
		if s.AvgRound > 0 {
			s.PhasePct[ph] = float64(s.PhaseAvg[ph]) / float64(s.AvgRound) * 100
		}
	}
	if s.AvgRound > 0 {
		s.RoundsPerSecond = float64(time.Second) / float64(s.AvgRound)
	}
	return s
}

// LogStats logs the summary at info level.
func (s PerfStats) LogStats() {
	slog.Info("perf", "stats", s)
}

// LogValue implements slog.LogValuer.
func (s PerfStats) LogValue() slog.Value {
	attrs := []slog.Attr{
		slog.Int64("avg_round_us", s.AvgRound.Microseconds()),
		slog.Int64("max_round_us", s.MaxRound.Microseconds()),
		slog.Int("rounds_per_sec", int(s.RoundsPerSecond)),
	}
	if s.Frames > 0 {
		attrs = append(attrs,
			slog.Float64("rounds_per_frame", s.RoundsPerFrame),
			slog.Int("budget_cuts", s.BudgetCuts),
		)
	}
	for ph := Phase(0); ph < NumPhases; ph++ {
		if s.PhasePct[ph] > 0.1 {
			attrs = append(attrs, slog.Float64(ph.String()+"_pct", s.PhasePct[ph]))
		}
	}
	return slog.GroupValue(attrs...)
}

// PerfRow is one line of perf.csv.
type PerfRow struct {
	WindowEnd      int32   `csv:"window_end"`
	AvgRoundUS     int64   `csv:"avg_round_us"`
	MinRoundUS     int64   `csv:"min_round_us"`
	MaxRoundUS     int64   `csv:"max_round_us"`
	RoundsPerSec   float64 `csv:"rounds_per_sec"`
	RoundsPerFrame float64 `csv:"rounds_per_frame"`
	BudgetCuts     int     `csv:"budget_cuts"`
	DecidePct      float64 `csv:"decide_pct"`
	SweepPct       float64 `csv:"sweep_pct"`
	DecayPct       float64 `csv:"decay_pct"`
	TelemetryPct   float64 `csv:"telemetry_pct"`
}

// Row flattens the summary for CSV output.
func (s PerfStats) Row(windowEnd int32) PerfRow {
	return PerfRow{
		WindowEnd:      windowEnd,
		AvgRoundUS:     s.AvgRound.Microseconds(),
		MinRoundUS:     s.MinRound.Microseconds(),
		MaxRoundUS:     s.MaxRound.Microseconds(),
		RoundsPerSec:   s.RoundsPerSecond,
		RoundsPerFrame: s.RoundsPerFrame,
		BudgetCuts:     s.BudgetCuts,
		DecidePct:      s.PhasePct[PhaseDecide],
		SweepPct:       s.PhasePct[PhaseSweep],
		DecayPct:       s.PhasePct[PhaseDecay],
		TelemetryPct:   s.PhasePct[PhaseTelemetry],
	}
}
