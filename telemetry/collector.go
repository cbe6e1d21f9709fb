package telemetry

import (
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/pthm-cable/colony/components"
)

// TeamCensus is a team's state sampled when a window is flushed.
type TeamCensus struct {
	TeamID    int
	Name      string
	Ants      int
	HiveAlive bool
	HiveFood  int
	Foraging  int
	Carrying  int
	Fighting  int
	Healths   []float64
}

// FoodCensus is the food left on the map when a window is flushed.
type FoodCensus struct {
	Piles     int
	Remaining int
}

type teamCounters struct {
	births      int
	deaths      int
	deliveries  int
	foodEaten   int
	attacks     int
	dirtCleared int
	signals     int
	lifespans   []float64
}

// Collector accumulates events within windows of rounds and produces WindowStats.
type Collector struct {
	windowRounds     int32
	windowStartRound int32

	teams map[int]*teamCounters
}

// NewCollector creates a new stats collector flushing every windowRounds rounds.
func NewCollector(windowRounds int) *Collector {
	if windowRounds < 1 {
		windowRounds = 1
	}
	return &Collector{
		windowRounds: int32(windowRounds),
		teams:        make(map[int]*teamCounters),
	}
}

func (c *Collector) team(id int) *teamCounters {
	tc := c.teams[id]
	if tc == nil {
		tc = &teamCounters{}
		c.teams[id] = tc
	}
	return tc
}

// Record counts an event against its team. Teamless events are ignored.
func (c *Collector) Record(ev Event) {
	if ev.Team < 0 {
		return
	}
	tc := c.team(ev.Team)
	switch ev.Type {
	case EventSpawn:
		tc.births++
	case EventDeath:
		if ev.Kind == components.KindAnt {
			tc.deaths++
		}
	case EventDelivery:
		tc.deliveries++
	case EventFoodEaten:
		tc.foodEaten++
	case EventAttack:
		tc.attacks++
	case EventDirtCleared:
		tc.dirtCleared++
	case EventSignal:
		tc.signals++
	}
}

// RecordLifespan records how many rounds a dead ant lived.
func (c *Collector) RecordLifespan(team int, rounds int32) {
	tc := c.team(team)
	tc.lifespans = append(tc.lifespans, float64(rounds))
}

// ShouldFlush returns true if enough rounds have passed to flush the window.
func (c *Collector) ShouldFlush(round int32) bool {
	return round-c.windowStartRound >= c.windowRounds
}

// Flush produces a WindowStats and resets counters for the next window.
// Teams appear in census order.
func (c *Collector) Flush(round int32, census []TeamCensus, food FoodCensus) WindowStats {
	stats := WindowStats{
		WindowStartRound: c.windowStartRound,
		WindowEndRound:   round,
		FoodPiles:        food.Piles,
		FoodRemaining:    food.Remaining,
	}

	for _, tc := range census {
		counters := c.team(tc.TeamID)
		mean, std, p50 := ComputeHealthStats(tc.Healths)
		var lifespan float64
		if len(counters.lifespans) > 0 {
			lifespan = stat.Mean(counters.lifespans, nil)
		}

		row := TeamWindowStats{
			WindowEnd:    round,
			TeamID:       tc.TeamID,
			Team:         tc.Name,
			Ants:         tc.Ants,
			HiveAlive:    tc.HiveAlive,
			HiveFood:     tc.HiveFood,
			Foraging:     tc.Foraging,
			Carrying:     tc.Carrying,
			Fighting:     tc.Fighting,
			Births:       counters.births,
			Deaths:       counters.deaths,
			Deliveries:   counters.deliveries,
			FoodEaten:    counters.foodEaten,
			Attacks:      counters.attacks,
			DirtCleared:  counters.dirtCleared,
			Signals:      counters.signals,
			HealthMean:   mean,
			HealthStd:    std,
			HealthP50:    p50,
			LifespanMean: lifespan,
		}
		stats.Teams = append(stats.Teams, row)

		stats.TotalAnts += row.Ants
		stats.TotalBirths += row.Births
		stats.TotalDeaths += row.Deaths
		stats.TotalDeliveries += row.Deliveries
		stats.TotalAttacks += row.Attacks
		if row.HiveAlive {
			stats.LiveHives++
		}
	}

	// Reset for next window
	c.windowStartRound = round
	clear(c.teams)

	return stats
}

// Reset discards the current window, e.g. after the grid is reset.
func (c *Collector) Reset(round int32) {
	c.windowStartRound = round
	clear(c.teams)
}

// WindowRounds returns the number of rounds per window.
func (c *Collector) WindowRounds() int32 {
	return c.windowRounds
}

// TeamIDs returns the ids with counters in the current window, sorted.
func (c *Collector) TeamIDs() []int {
	ids := make([]int, 0, len(c.teams))
	for id := range c.teams {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}
