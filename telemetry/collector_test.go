package telemetry

import (
	"testing"

	"github.com/pthm-cable/colony/components"
)

func TestCollectorFlush(t *testing.T) {
	c := NewCollector(10)
	at := components.Coord{X: 1, Y: 1}

	c.Record(NewSpawnEvent(1, 100, 1, at))
	c.Record(NewSpawnEvent(2, 101, 1, at))
	c.Record(NewDeliveryEvent(3, 100, 1, at))
	c.Record(NewAttackEvent(4, 200, 2, components.Key(components.KindAnt, 1), at))
	c.Record(NewDeathEvent(4, 101, components.Key(components.KindAnt, 1), at))
	c.Record(NewDeathEvent(5, 300, components.FoodElement, at))
	c.RecordLifespan(1, 2)
	c.RecordLifespan(1, 4)

	if c.ShouldFlush(9) {
		t.Error("flush requested before the window ended")
	}
	if !c.ShouldFlush(10) {
		t.Fatal("flush not requested at window end")
	}

	census := []TeamCensus{
		{TeamID: 1, Name: "red", Ants: 1, HiveAlive: true, HiveFood: 3, Healths: []float64{2}},
		{TeamID: 2, Name: "magenta", Ants: 2, Healths: []float64{1, 3}},
	}
	stats := c.Flush(10, census, FoodCensus{Piles: 2, Remaining: 15})

	red, ok := stats.Team(1)
	if !ok {
		t.Fatal("red row missing")
	}
	if red.Births != 2 || red.Deaths != 1 || red.Deliveries != 1 {
		t.Errorf("red counters = %+v", red)
	}
	if red.LifespanMean != 3 {
		t.Errorf("lifespan mean = %v, want 3", red.LifespanMean)
	}
	magenta, _ := stats.Team(2)
	if magenta.Attacks != 1 || magenta.HealthMean != 2 {
		t.Errorf("magenta row = %+v", magenta)
	}

	if stats.TotalAnts != 3 || stats.TotalBirths != 2 || stats.LiveHives != 1 {
		t.Errorf("totals = %+v", stats)
	}
	if stats.FoodPiles != 2 || stats.FoodRemaining != 15 {
		t.Errorf("food census = %d/%d", stats.FoodPiles, stats.FoodRemaining)
	}

	// Counters reset for the next window.
	next := c.Flush(20, census, FoodCensus{})
	if row, _ := next.Team(1); row.Births != 0 || row.LifespanMean != 0 {
		t.Errorf("counters not reset: %+v", row)
	}
	if next.WindowStartRound != 10 {
		t.Errorf("window start = %d, want 10", next.WindowStartRound)
	}
}

func TestLifetimeTracker(t *testing.T) {
	lt := NewLifetimeTracker()
	lt.Register(7, 5, 1)
	lt.Record(NewFoodEatenEvent(6, 7, 1, components.Coord{}))
	lt.Record(NewDeliveryEvent(9, 7, 1, components.Coord{}))
	lt.Record(NewDeliveryEvent(9, 8, 1, components.Coord{})) // unknown id

	s := lt.Remove(7)
	if s == nil || s.FoodEaten != 1 || s.Deliveries != 1 || s.BirthRound != 5 {
		t.Fatalf("stats = %+v", s)
	}
	if lt.Count() != 0 || lt.Get(7) != nil {
		t.Error("record not removed")
	}
}
