package game

import (
	"log/slog"

	"github.com/pthm-cable/colony/components"
	"github.com/pthm-cable/colony/telemetry"
)

// handleEvent feeds the collector and the per-ant lifetime tracker.
func (g *Game) handleEvent(ev telemetry.Event) {
	g.collector.Record(ev)
	switch ev.Type {
	case telemetry.EventSpawn:
		g.lifetime.Register(ev.EntityID, ev.Round, ev.Team)
	case telemetry.EventDeath:
		if ev.Kind != components.KindAnt {
			return
		}
		if s := g.lifetime.Remove(ev.EntityID); s != nil {
			g.collector.RecordLifespan(ev.Team, ev.Round-s.BirthRound)
		}
	default:
		g.lifetime.Record(ev)
	}
}

// flushTelemetry checks if the stats window should be flushed and handles milestones.
func (g *Game) flushTelemetry() {
	round := g.grid.Round()
	if !g.collector.ShouldFlush(round) {
		return
	}

	piles, units := g.grid.CountFood()
	stats := g.collector.Flush(round, g.grid.Census(), telemetry.FoodCensus{Piles: piles, Remaining: units})
	perfStats := g.perf.Stats()
	g.lastStats = stats

	if g.statsCallback != nil {
		g.statsCallback(stats)
	}

	if g.logStats {
		stats.LogStats()
		perfStats.LogStats()
	}

	if g.output != nil {
		if err := g.output.WriteTelemetry(stats); err != nil {
			slog.Error("failed to write telemetry", "error", err)
		}
		if err := g.output.WritePerf(perfStats, stats.WindowEndRound); err != nil {
			slog.Error("failed to write perf", "error", err)
		}
	}

	for _, m := range g.milestones.Check(stats) {
		if g.logStats {
			m.LogMilestone()
		}
		if g.output != nil {
			if err := g.output.WriteMilestone(m); err != nil {
				slog.Error("failed to write milestone", "error", err)
			}
		}
	}
}

// Census samples every registered team: ants per base state, health distribution and hive.
func (ag *AntGrid) Census() []telemetry.TeamCensus {
	census := make([]telemetry.TeamCensus, len(ag.teams))
	slot := make(map[int]int, len(ag.teams))
	for i, t := range ag.teams {
		census[i] = telemetry.TeamCensus{TeamID: t.ID, Name: t.Name}
		slot[t.ID] = i
	}

	query := ag.antFilter.Query()
	for query.Next() {
		_, ant := query.Get()
		i, ok := slot[ant.Team.ID]
		if !ok || ant.Removed() {
			continue
		}
		tc := &census[i]
		tc.Ants++
		tc.Healths = append(tc.Healths, float64(ant.Health))
		switch ant.State.Base().Mode {
		case components.ModeFood:
			tc.Foraging++
		case components.ModeCarrying:
			tc.Carrying++
		case components.ModeBattle:
			tc.Fighting++
		}
	}

	for _, st := range ag.TeamStatuses() {
		i := slot[st.Team.ID]
		census[i].HiveAlive = st.HiveAlive
		census[i].HiveFood = st.HiveFood
	}
	return census
}
