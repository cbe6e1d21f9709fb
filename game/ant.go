package game

import (
	"fmt"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/colony/components"
	"github.com/pthm-cable/colony/systems"
	"github.com/pthm-cable/colony/telemetry"
)

// foragingTrail is laid by ants looking for food; its values count steps from home.
func foragingTrail(team int) systems.Trail { return systems.Trail{Team: team, Foraging: true} }

// carryTrail is laid by ants bringing food home; its values count steps from the pile.
func carryTrail(team int) systems.Trail { return systems.Trail{Team: team, Foraging: false} }

// antTurn bundles what one decision needs. The ant pointer stays valid for the whole
// decision because ants never create or remove entities while deciding.
type antTurn struct {
	e    ecs.Entity
	pos  components.Coord
	ant  *components.Ant
	team int
}

// decideAnt runs one tick of the ant state machine and applies the resulting move.
func (ag *AntGrid) decideAnt(e ecs.Entity) {
	t := antTurn{
		e:   e,
		pos: ag.posMap.Get(e).Coord,
		ant: ag.antMap.Get(e),
	}
	t.team = t.ant.Team.ID
	t.ant.Budget = ag.opts.Propagation
	st := &t.ant.State

	// A team without a hive has nothing to forage for.
	if !ag.hasHive(t.team) && !st.Has(components.ModeDirt) && st.Base().Mode != components.ModeBattle {
		st.Replace(components.BattleFrame(ag.opts.Rage))
	}

	sig, hasSig := components.Strongest(t.ant.Signals)
	if hasSig && !st.Has(components.ModeDirt) && st.Base().Mode.Accepts(sig.Kind) {
		ag.follow(&t, sig)
	}

	if st.Mode() == components.ModeDirt {
		st.Pop()
	}

	dest, move := ag.act(&t)

	if move && ag.isDirt(dest) {
		ag.clearDirt(&t, dest)
		move = false
	}
	if move {
		t.pos = ag.moveElement(e, t.pos, dest)
	}

	if base := st.Base(); base.Mode == components.ModeFood || base.Mode == components.ModeCarrying {
		base.Counter++
	}

	t.ant.ClearSignals()
	if hasSig {
		if relay, ok := sig.Relay(t.pos); ok {
			ag.sendSignal(e, t.team, relay)
		}
	}
}

// follow diverts the ant toward a signal source. An existing diversion is only retargeted by
// a signal with a strictly larger budget.
func (ag *AntGrid) follow(t *antTurn, sig components.Signal) {
	st := &t.ant.State
	if f, ok := st.Targeted(); ok {
		if sig.Propagate > f.Propagation {
			f.Target = sig.Coord
			f.Propagation = sig.Propagate
		}
		return
	}
	if sig.Coord == t.pos || sig.Coord.Adjacent(t.pos) {
		return
	}
	st.Push(components.TargetedFrame(sig.Coord, sig.Propagate))
}

// act evaluates the base state and returns the chosen destination. move is false when the
// ant spent its tick on an in-place action or has nowhere to go.
func (ag *AntGrid) act(t *antTurn) (dest components.Coord, move bool) {
	base := t.ant.State.Base()
	switch base.Mode {
	case components.ModeFood:
		ag.deposit(t.pos, foragingTrail(t.team), base.Counter)
		if ag.forage(t) {
			return t.pos, false
		}
		trail := carryTrail(t.team)
		return ag.navigate(t, &trail, func(from components.Coord) (float64, bool) {
			return ag.DistanceTo(components.FoodElement, from)
		})

	case components.ModeCarrying:
		ag.deposit(t.pos, carryTrail(t.team), base.Counter)
		if ag.deliver(t) {
			return t.pos, false
		}
		trail := foragingTrail(t.team)
		hive := components.Key(components.KindHive, t.team)
		return ag.navigate(t, &trail, func(from components.Coord) (float64, bool) {
			return ag.DistanceTo(hive, from)
		})

	case components.ModeBattle:
		return ag.battle(t)
	}
	panic(fmt.Sprintf("game: ant base state %s", base.Mode))
}

// forage looks for an enemy to fight or food to take among the neighbours, in direction order.
func (ag *AntGrid) forage(t *antTurn) bool {
	for _, d := range components.Dirs {
		n := t.pos.Next(d)
		switch {
		case ag.isEnemy(n, t.team):
			t.ant.State.Replace(components.BattleFrame(ag.opts.Rage))
			ag.sendSignal(t.e, t.team, components.Signal{Coord: t.pos, Kind: components.SignalBattle, Propagate: t.ant.Budget})
			ag.attack(t, n)
			return true
		case ag.isFood(n):
			ag.eat(t, n)
			ag.sendSignal(t.e, t.team, components.Signal{Coord: n, Kind: components.SignalFood, Propagate: t.ant.Budget})
			t.ant.State.Replace(components.CarryingFrame())
			return true
		}
	}
	return false
}

// deliver hands one unit of food to an adjacent own hive.
func (ag *AntGrid) deliver(t *antTurn) bool {
	for _, d := range components.Dirs {
		n := t.pos.Next(d)
		if !ag.isOwnHive(n, t.team) {
			continue
		}
		ag.sendSignal(t.e, t.team, components.Signal{Coord: n, Kind: components.SignalDeliver})
		ag.sendSignal(t.e, t.team, components.Signal{Coord: t.pos, Kind: components.SignalCarry, Propagate: t.ant.Budget})
		t.ant.State.Replace(components.FoodFrame())
		return true
	}
	return false
}

// battle fights an adjacent enemy, or hunts and burns rage.
func (ag *AntGrid) battle(t *antTurn) (components.Coord, bool) {
	st := &t.ant.State
	for _, d := range components.Dirs {
		n := t.pos.Next(d)
		if !ag.isEnemy(n, t.team) {
			continue
		}
		st.Unwrap()
		st.Base().Counter = ag.opts.Rage
		ag.sendSignal(t.e, t.team, components.Signal{Coord: t.pos, Kind: components.SignalBattle, Propagate: t.ant.Budget})
		ag.attack(t, n)
		return t.pos, false
	}

	base := st.Base()
	base.Counter--
	if base.Counter <= 0 {
		if ag.hasHive(t.team) {
			st.Replace(components.FoodFrame())
			return ag.act(t)
		}
		base.Counter = ag.opts.Rage
	}

	return ag.navigate(t, nil, func(from components.Coord) (float64, bool) {
		return ag.DistanceToEnemy(t.team, from)
	})
}

// navigate picks the next step: toward a signal target, down a pheromone gradient, toward the
// nearest goal, and finally at random.
func (ag *AntGrid) navigate(t *antTurn, trail *systems.Trail, distance func(components.Coord) (float64, bool)) (components.Coord, bool) {
	var buf [components.NumDirs]components.Coord
	open := ag.openNeighbours(buf[:0], t.pos)
	if len(open) == 0 {
		return t.pos, false
	}

	if dest, ok := ag.towardTarget(t, open); ok {
		return dest, true
	}
	if trail != nil {
		if dest, ok := ag.descend(t.pos, *trail, open); ok {
			return dest, true
		}
	}
	if dest, ok := closest(open, distance); ok {
		return dest, true
	}
	return open[ag.rng.Intn(len(open))], true
}

// towardTarget steps strictly closer to the Targeted destination. The wrapper is dropped on
// arrival or when no neighbour gets closer.
func (ag *AntGrid) towardTarget(t *antTurn, open []components.Coord) (components.Coord, bool) {
	st := &t.ant.State
	f, ok := st.Targeted()
	if !ok {
		return components.Coord{}, false
	}
	if f.Target == t.pos || f.Target.Adjacent(t.pos) {
		st.Unwrap()
		return components.Coord{}, false
	}
	best := t.pos.Distance(f.Target)
	var dest components.Coord
	found := false
	for _, n := range open {
		if d := n.Distance(f.Target); d < best {
			best = d
			dest = n
			found = true
		}
	}
	if !found {
		st.Unwrap()
	}
	return dest, found
}

// descend returns the neighbour with the lowest trail value strictly below the current cell's.
func (ag *AntGrid) descend(pos components.Coord, trail systems.Trail, open []components.Coord) (components.Coord, bool) {
	round, decay := int(ag.round), ag.opts.Decay
	best, ok := ag.grid.Get(pos).Pheromone(trail, round, decay)
	if !ok {
		return components.Coord{}, false
	}
	var dest components.Coord
	found := false
	for _, n := range open {
		if v, ok := ag.grid.Get(n).Pheromone(trail, round, decay); ok && v < best {
			best = v
			dest = n
			found = true
		}
	}
	return dest, found
}

// closest returns the candidate with the smallest distance. Ties keep the earlier candidate.
func closest(open []components.Coord, distance func(components.Coord) (float64, bool)) (components.Coord, bool) {
	var dest components.Coord
	var best float64
	found := false
	for _, n := range open {
		d, ok := distance(n)
		if !ok {
			continue
		}
		if !found || d < best {
			best = d
			dest = n
			found = true
		}
	}
	return dest, found
}

func (ag *AntGrid) deposit(c components.Coord, trail systems.Trail, value int) {
	ag.grid.Get(c).Deposit(trail, value, int(ag.round), ag.opts.Decay)
}

// attack deals one damage to the enemy at target.
func (ag *AntGrid) attack(t *antTurn, target components.Coord) {
	if !ag.isEnemy(target, t.team) {
		panic(fmt.Sprintf("game: attack on non-enemy at %v", target))
	}
	e, key, _ := ag.occupant(target)
	switch key.Kind {
	case components.KindAnt:
		victim := ag.antMap.Get(e)
		victim.Attacked(1)
		if !victim.Removed() && victim.State.Base().Mode == components.ModeFood {
			victim.State.Replace(components.BattleFrame(ag.opts.Rage))
		}
	case components.KindHive:
		ag.hiveMap.Get(e).Attacked(1)
	}
	ag.emit(telemetry.NewAttackEvent(ag.round, t.e.ID(), t.team, key, target))
}

// eat takes one unit from the pile at target.
func (ag *AntGrid) eat(t *antTurn, target components.Coord) {
	if !ag.isFood(target) {
		panic(fmt.Sprintf("game: eat on non-food at %v", target))
	}
	e, _, _ := ag.occupant(target)
	ag.foodMap.Get(e).Attacked(1)
	ag.emit(telemetry.NewFoodEatenEvent(ag.round, t.e.ID(), t.team, target))
}

// clearDirt removes the obstruction at target and holds the ant in place for a tick.
func (ag *AntGrid) clearDirt(t *antTurn, target components.Coord) {
	e, _, _ := ag.occupant(target)
	ag.dirtMap.Get(e).Attacked(1)
	t.ant.State.Push(components.DirtFrame())
	ag.emit(telemetry.NewDirtClearedEvent(ag.round, t.e.ID(), t.team, target))
}
