package game

import (
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/colony/components"
	"github.com/pthm-cable/colony/telemetry"
)

// sendSignal broadcasts sig to the sender's team. Deliver signals reach only the hive standing
// on sig.Coord; every other kind reaches same-team ants strictly closer than the signal radius.
func (ag *AntGrid) sendSignal(sender ecs.Entity, team int, sig components.Signal) {
	ag.emit(telemetry.NewSignalEvent(ag.round, team, sig.Coord))

	if sig.Kind == components.SignalDeliver {
		for _, h := range ag.index.Get(components.Key(components.KindHive, team)) {
			hive := ag.hiveMap.Get(h)
			if hive.Removed() || ag.posMap.Get(h).Coord != sig.Coord {
				continue
			}
			hive.Deliver()
			ag.delivered[team]++
			ag.emit(telemetry.NewDeliveryEvent(ag.round, sender.ID(), team, sig.Coord))
		}
		return
	}

	radius := ag.opts.SignalRadius
	for _, e := range ag.index.Get(components.Key(components.KindAnt, team)) {
		if e == sender {
			continue
		}
		ant := ag.antMap.Get(e)
		if ant.Removed() {
			continue
		}
		if ag.posMap.Get(e).Coord.Distance(sig.Coord) < radius {
			ant.Receive(sig)
		}
	}
}

// Delivered returns the lifetime food deliveries of team.
func (ag *AntGrid) Delivered(team int) int {
	return ag.delivered[team]
}
