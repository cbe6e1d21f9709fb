package main

import (
	"log/slog"
	"math"
	"sync"

	"gonum.org/v1/gonum/stat"

	"github.com/pthm-cable/colony/config"
	"github.com/pthm-cable/colony/game"
	"github.com/pthm-cable/colony/telemetry"
)

// FitnessEvaluator runs headless simulations and scores an option vector.
type FitnessEvaluator struct {
	params     *ParamVector
	maxRounds  int
	seeds      []int64
	baseConfig *config.Config

	mu          sync.Mutex
	bestFitness float64
	bestWindows []telemetry.WindowStats
	last        Evaluation
}

// Evaluation summarizes one Evaluate call across all seeds.
type Evaluation struct {
	MeanDelivered float64
	StdDelivered  float64
	HiveSurvival  float64 // Fraction of hives alive at the end, averaged over seeds
}

// NewFitnessEvaluator creates a new evaluator.
func NewFitnessEvaluator(params *ParamVector, maxRounds int, seeds []int64, baseCfg *config.Config) *FitnessEvaluator {
	return &FitnessEvaluator{
		params:      params,
		maxRounds:   maxRounds,
		seeds:       seeds,
		baseConfig:  baseCfg,
		bestFitness: math.Inf(1),
	}
}

// Last returns the summary of the most recent evaluation.
func (fe *FitnessEvaluator) Last() Evaluation {
	fe.mu.Lock()
	defer fe.mu.Unlock()
	return fe.last
}

// BestWindows returns the stats windows of the best seed of the best evaluation.
func (fe *FitnessEvaluator) BestWindows() []telemetry.WindowStats {
	fe.mu.Lock()
	defer fe.mu.Unlock()
	return fe.bestWindows
}

// runResult holds the results from a single simulation run.
type runResult struct {
	delivered   float64
	hivesAlive  float64
	windowStats []telemetry.WindowStats
}

// Evaluate computes fitness for a raw parameter vector (lower = better):
// the negative mean food delivered across seeds.
func (fe *FitnessEvaluator) Evaluate(x []float64) float64 {
	cfg := fe.copyConfig()
	fe.params.ApplyToConfig(cfg, x)

	results := make([]runResult, len(fe.seeds))
	var wg sync.WaitGroup
	for i, seed := range fe.seeds {
		wg.Add(1)
		go func(idx int, s int64) {
			defer wg.Done()
			results[idx] = fe.runSimulation(cfg, s)
		}(i, seed)
	}
	wg.Wait()

	delivered := make([]float64, len(results))
	survival := make([]float64, len(results))
	best := 0
	for i, r := range results {
		delivered[i] = r.delivered
		survival[i] = r.hivesAlive
		if r.delivered > results[best].delivered {
			best = i
		}
	}
	mean, std := stat.MeanStdDev(delivered, nil)
	if len(delivered) < 2 {
		std = 0
	}
	fitness := -mean

	fe.mu.Lock()
	fe.last = Evaluation{MeanDelivered: mean, StdDelivered: std, HiveSurvival: stat.Mean(survival, nil)}
	if fitness < fe.bestFitness {
		fe.bestFitness = fitness
		fe.bestWindows = results[best].windowStats
	}
	fe.mu.Unlock()

	return fitness
}

// runSimulation executes one headless run from the configured setup.
func (fe *FitnessEvaluator) runSimulation(cfg *config.Config, seed int64) runResult {
	var result runResult
	g, err := game.NewGameWithSettings(game.Settings{
		Seed:   seed,
		Config: cfg,
		StatsCallback: func(stats telemetry.WindowStats) {
			result.windowStats = append(result.windowStats, stats)
		},
	})
	if err != nil {
		slog.Error("failed to create game", "seed", seed, "error", err)
		return result
	}
	defer g.Close()

	g.Reset()
	g.Run(fe.maxRounds)

	statuses := g.Grid().TeamStatuses()
	alive := 0
	for _, ts := range statuses {
		result.delivered += float64(ts.Delivered)
		if ts.HiveAlive {
			alive++
		}
	}
	if len(statuses) > 0 {
		result.hivesAlive = float64(alive) / float64(len(statuses))
	}
	return result
}

// copyConfig returns a copy of the base config whose options can be changed independently.
// Setup slices are shared read-only.
func (fe *FitnessEvaluator) copyConfig() *config.Config {
	cfg := *fe.baseConfig
	return &cfg
}
