package game

import (
	"math"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/colony/components"
)

// DoesExist reports whether c lies inside the grid.
func (ag *AntGrid) DoesExist(c components.Coord) bool {
	return ag.grid.DoesExist(c)
}

// IsBlocked reports whether c cannot be entered: out of bounds or holding a body.
// Dirt is an obstruction, not a body, so it does not block.
func (ag *AntGrid) IsBlocked(c components.Coord) bool {
	if !ag.grid.DoesExist(c) {
		return true
	}
	e, ok := ag.grid.Occupant(c)
	if !ok {
		return false
	}
	return ag.tagMap.Get(e).Kind != components.KindDirt
}

// IsOccupied reports whether c is out of bounds or holds any element, Dirt included.
func (ag *AntGrid) IsOccupied(c components.Coord) bool {
	if !ag.grid.DoesExist(c) {
		return true
	}
	_, ok := ag.grid.Occupant(c)
	return ok
}

// occupant returns the live element at c and its key.
func (ag *AntGrid) occupant(c components.Coord) (ecs.Entity, components.TeamElement, bool) {
	if !ag.grid.DoesExist(c) {
		return ecs.Entity{}, components.TeamElement{}, false
	}
	e, ok := ag.grid.Occupant(c)
	if !ok {
		return ecs.Entity{}, components.TeamElement{}, false
	}
	return e, ag.tagMap.Get(e).TeamElement, true
}

func (ag *AntGrid) isKind(c components.Coord, kind components.ElementKind) bool {
	e, key, ok := ag.occupant(c)
	return ok && key.Kind == kind && !ag.removed(e, key)
}

func (ag *AntGrid) isDirt(c components.Coord) bool { return ag.isKind(c, components.KindDirt) }

func (ag *AntGrid) isFood(c components.Coord) bool { return ag.isKind(c, components.KindFood) }

// isEnemy reports whether c holds a live ant or hive of a team other than team.
func (ag *AntGrid) isEnemy(c components.Coord, team int) bool {
	e, key, ok := ag.occupant(c)
	if !ok || !key.Kind.Teamed() || key.Team == team {
		return false
	}
	return !ag.removed(e, key)
}

func (ag *AntGrid) isOwnHive(c components.Coord, team int) bool {
	e, key, ok := ag.occupant(c)
	return ok && key.Kind == components.KindHive && key.Team == team && !ag.removed(e, key)
}

// hasHive reports whether team still has a hive that has not been destroyed.
func (ag *AntGrid) hasHive(team int) bool {
	for _, h := range ag.index.Get(components.Key(components.KindHive, team)) {
		if !ag.hiveMap.Get(h).Removed() {
			return true
		}
	}
	return false
}

// removed dispatches the removal predicate on the element variant.
func (ag *AntGrid) removed(e ecs.Entity, key components.TeamElement) bool {
	switch key.Kind {
	case components.KindAnt:
		return ag.antMap.Get(e).Removed()
	case components.KindFood:
		return ag.foodMap.Get(e).Removed()
	case components.KindHive:
		return ag.hiveMap.Get(e).Removed()
	case components.KindDirt:
		return ag.dirtMap.Get(e).Removed()
	}
	return true
}

// perturb applies the smell noise and the dirt penalty to a raw distance.
func (ag *AntGrid) perturb(d float64, from components.Coord) float64 {
	d *= 1 + ag.opts.Smell*(2*ag.rng.Float64()-1)
	if ag.isDirt(from) {
		d *= ag.opts.DirtPenalty
	}
	return d
}

func (ag *AntGrid) nearest(keys []components.TeamElement, from components.Coord) (float64, bool) {
	best := math.Inf(1)
	found := false
	for _, key := range keys {
		for _, e := range ag.index.Get(key) {
			if ag.removed(e, key) {
				continue
			}
			if d := from.Distance(ag.posMap.Get(e).Coord); d < best {
				best = d
				found = true
			}
		}
	}
	return best, found
}

// DistanceTo returns the noisy distance from from to the nearest live element under key.
// It reports false when from is blocked or nothing matches.
func (ag *AntGrid) DistanceTo(key components.TeamElement, from components.Coord) (float64, bool) {
	if ag.IsBlocked(from) {
		return 0, false
	}
	d, ok := ag.nearest([]components.TeamElement{key}, from)
	if !ok {
		return 0, false
	}
	return ag.perturb(d, from), true
}

// DistanceToEnemy is DistanceTo over every ant and hive not belonging to team.
func (ag *AntGrid) DistanceToEnemy(team int, from components.Coord) (float64, bool) {
	if ag.IsBlocked(from) {
		return 0, false
	}
	var keys []components.TeamElement
	for _, key := range ag.index.Keys() {
		if key.Kind.Teamed() && key.Team != team {
			keys = append(keys, key)
		}
	}
	d, ok := ag.nearest(keys, from)
	if !ok {
		return 0, false
	}
	return ag.perturb(d, from), true
}

// openNeighbours appends the in-bounds, unblocked neighbours of c in direction order.
func (ag *AntGrid) openNeighbours(dst []components.Coord, c components.Coord) []components.Coord {
	for _, d := range components.Dirs {
		n := c.Next(d)
		if !ag.IsBlocked(n) {
			dst = append(dst, n)
		}
	}
	return dst
}

// CountAnts returns the live ants of team.
func (ag *AntGrid) CountAnts(team int) int {
	n := 0
	for _, e := range ag.index.Get(components.Key(components.KindAnt, team)) {
		if !ag.antMap.Get(e).Removed() {
			n++
		}
	}
	return n
}

// CountFood returns the number of food piles and the units they hold.
func (ag *AntGrid) CountFood() (piles, units int) {
	for _, e := range ag.index.Get(components.FoodElement) {
		f := ag.foodMap.Get(e)
		if f.Removed() {
			continue
		}
		piles++
		units += f.Quantity
	}
	return piles, units
}
