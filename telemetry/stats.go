package telemetry

import (
	"log/slog"
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// TeamWindowStats holds one team's aggregates for a stats window. One CSV row per team per window.
type TeamWindowStats struct {
	WindowEnd int32  `csv:"window_end"`
	TeamID    int    `csv:"team_id"`
	Team      string `csv:"team"`

	// Census at window end
	Ants      int  `csv:"ants"`
	HiveAlive bool `csv:"hive_alive"`
	HiveFood  int  `csv:"hive_food"`
	Foraging  int  `csv:"foraging"`
	Carrying  int  `csv:"carrying"`
	Fighting  int  `csv:"fighting"`

	// Events during window
	Births      int `csv:"births"`
	Deaths      int `csv:"deaths"`
	Deliveries  int `csv:"deliveries"`
	FoodEaten   int `csv:"food_eaten"`
	Attacks     int `csv:"attacks"`
	DirtCleared int `csv:"dirt_cleared"`
	Signals     int `csv:"signals"`

	// Health distribution (sampled at window end)
	HealthMean float64 `csv:"health_mean"`
	HealthStd  float64 `csv:"health_std"`
	HealthP50  float64 `csv:"health_p50"`

	// Mean lifespan in rounds of ants that died during the window
	LifespanMean float64 `csv:"lifespan_mean"`
}

// WindowStats holds aggregated statistics for a window of rounds.
type WindowStats struct {
	WindowStartRound int32 `csv:"-"`
	WindowEndRound   int32 `csv:"window_end"`

	TotalAnts       int `csv:"ants"`
	TotalBirths     int `csv:"births"`
	TotalDeaths     int `csv:"deaths"`
	TotalDeliveries int `csv:"deliveries"`
	TotalAttacks    int `csv:"attacks"`
	LiveHives       int `csv:"hives"`

	// Food on the map at window end
	FoodPiles     int `csv:"food_piles"`
	FoodRemaining int `csv:"food_remaining"`

	Teams []TeamWindowStats `csv:"-"`
}

// Team returns the row for a team id.
func (s WindowStats) Team(id int) (TeamWindowStats, bool) {
	for _, t := range s.Teams {
		if t.TeamID == id {
			return t, true
		}
	}
	return TeamWindowStats{}, false
}

// ComputeHealthStats returns mean, sample standard deviation and median.
func ComputeHealthStats(values []float64) (mean, std, p50 float64) {
	n := len(values)
	if n == 0 {
		return 0, 0, 0
	}
	if n == 1 {
		return values[0], 0, values[0]
	}

	mean, std = stat.MeanStdDev(values, nil)
	if math.IsNaN(std) {
		std = 0
	}

	sorted := make([]float64, n)
	copy(sorted, values)
	sort.Float64s(sorted)
	p50 = stat.Quantile(0.5, stat.Empirical, sorted, nil)

	return mean, std, p50
}

// LogValue implements slog.LogValuer for structured logging.
func (s TeamWindowStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("team", s.Team),
		slog.Int("ants", s.Ants),
		slog.Bool("hive_alive", s.HiveAlive),
		slog.Int("hive_food", s.HiveFood),
		slog.Int("foraging", s.Foraging),
		slog.Int("carrying", s.Carrying),
		slog.Int("fighting", s.Fighting),
		slog.Int("births", s.Births),
		slog.Int("deaths", s.Deaths),
		slog.Int("deliveries", s.Deliveries),
		slog.Int("food_eaten", s.FoodEaten),
		slog.Int("attacks", s.Attacks),
		slog.Int("dirt_cleared", s.DirtCleared),
		slog.Float64("health_mean", s.HealthMean),
		slog.Float64("lifespan_mean", s.LifespanMean),
	)
}

// LogValue implements slog.LogValuer for structured logging.
func (s WindowStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("window_start", int(s.WindowStartRound)),
		slog.Int("window_end", int(s.WindowEndRound)),
		slog.Int("ants", s.TotalAnts),
		slog.Int("births", s.TotalBirths),
		slog.Int("deaths", s.TotalDeaths),
		slog.Int("deliveries", s.TotalDeliveries),
		slog.Int("attacks", s.TotalAttacks),
		slog.Int("hives", s.LiveHives),
		slog.Int("food_piles", s.FoodPiles),
		slog.Int("food_remaining", s.FoodRemaining),
	)
}

// LogStats logs the window totals and one line per team.
func (s WindowStats) LogStats() {
	slog.Info("stats", "window", s)
	for _, t := range s.Teams {
		slog.Info("team_stats", "window_end", s.WindowEndRound, "stats", t)
	}
}
