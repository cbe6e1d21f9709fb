package game

import (
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/colony/components"
)

// decideHive converts one unit of stored food into an ant on the first free neighbour.
func (ag *AntGrid) decideHive(e ecs.Entity) {
	hive := ag.hiveMap.Get(e)
	if hive.Food <= 0 {
		return
	}
	team := hive.Team
	pos := ag.posMap.Get(e).Coord
	for _, d := range components.Dirs {
		n := pos.Next(d)
		if ag.IsOccupied(n) {
			continue
		}
		if _, ok := ag.PutAnt(n, team); ok {
			// Creating the ant may have moved component storage.
			ag.hiveMap.Get(e).Food--
		}
		return
	}
}
