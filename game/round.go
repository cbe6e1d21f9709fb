package game

import (
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/colony/components"
	"github.com/pthm-cable/colony/telemetry"
)

// RunRound advances the simulation by one tick: every mobile element decides in index order,
// removed elements are swept, then expired pheromones are dropped.
func (ag *AntGrid) RunRound() {
	ag.round++

	ag.startPhase(telemetry.PhaseDecide)
	ag.mobile = ag.index.Mobile(ag.mobile[:0])
	for _, e := range ag.mobile {
		if !ag.world.Alive(e) {
			continue
		}
		key := ag.tagMap.Get(e).TeamElement
		if ag.removed(e, key) {
			continue
		}
		switch key.Kind {
		case components.KindAnt:
			ag.decideAnt(e)
		case components.KindHive:
			ag.decideHive(e)
		}
	}

	ag.startPhase(telemetry.PhaseSweep)
	ag.sweep()

	ag.startPhase(telemetry.PhaseDecay)
	ag.grid.DecayPheromones(int(ag.round), ag.opts.Decay)
}

// moveElement relocates e from one cell to another and returns its final position.
// A destination taken earlier in the round wins over the late mover, which stays put.
func (ag *AntGrid) moveElement(e ecs.Entity, from, to components.Coord) components.Coord {
	if from == to || ag.IsOccupied(to) {
		return from
	}
	if occ, ok := ag.grid.Occupant(from); ok && occ == e {
		ag.grid.Get(from).ClearOccupant()
	}
	ag.grid.Get(to).SetOccupant(e)
	ag.posMap.Get(e).Coord = to
	return to
}

// sweep drops every removed element from the index, the grid and the arena.
func (ag *AntGrid) sweep() {
	dead := ag.index.Retain(func(key components.TeamElement, e ecs.Entity) bool {
		return !ag.removed(e, key)
	})
	for _, e := range dead {
		pos := ag.posMap.Get(e).Coord
		key := ag.tagMap.Get(e).TeamElement
		if occ, ok := ag.grid.Occupant(pos); ok && occ == e {
			ag.grid.Get(pos).ClearOccupant()
		}
		ag.emit(telemetry.NewDeathEvent(ag.round, e.ID(), key, pos))
		ag.world.RemoveEntity(e)
	}
}
