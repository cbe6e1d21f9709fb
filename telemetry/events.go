// Package telemetry provides colony health tracking, milestones and CSV output.
package telemetry

import "github.com/pthm-cable/colony/components"

// EventType identifies telemetry events.
type EventType uint8

const (
	EventSpawn EventType = iota
	EventDeath
	EventDelivery
	EventFoodEaten
	EventAttack
	EventDirtCleared
	EventSignal
)

// String returns the event name.
func (t EventType) String() string {
	switch t {
	case EventSpawn:
		return "spawn"
	case EventDeath:
		return "death"
	case EventDelivery:
		return "delivery"
	case EventFoodEaten:
		return "food_eaten"
	case EventAttack:
		return "attack"
	case EventDirtCleared:
		return "dirt_cleared"
	case EventSignal:
		return "signal"
	}
	return "unknown"
}

// Event represents a single telemetry event.
type Event struct {
	Type     EventType
	Round    int32
	EntityID uint32
	Kind     components.ElementKind
	Team     int // components.NoTeam for teamless elements
	At       components.Coord

	// Optional fields depending on event type
	TargetKind components.ElementKind // attack target
	TargetTeam int                    // attack target team
}

// NewSpawnEvent creates an ant spawn event.
func NewSpawnEvent(round int32, antID uint32, team int, at components.Coord) Event {
	return Event{Type: EventSpawn, Round: round, EntityID: antID, Kind: components.KindAnt, Team: team, At: at}
}

// NewDeathEvent creates a removal event for any element.
func NewDeathEvent(round int32, entityID uint32, key components.TeamElement, at components.Coord) Event {
	return Event{Type: EventDeath, Round: round, EntityID: entityID, Kind: key.Kind, Team: key.Team, At: at}
}

// NewDeliveryEvent creates a delivery event at the receiving hive.
func NewDeliveryEvent(round int32, antID uint32, team int, hive components.Coord) Event {
	return Event{Type: EventDelivery, Round: round, EntityID: antID, Kind: components.KindAnt, Team: team, At: hive}
}

// NewFoodEatenEvent creates an event for an ant taking one unit from a pile.
func NewFoodEatenEvent(round int32, antID uint32, team int, pile components.Coord) Event {
	return Event{Type: EventFoodEaten, Round: round, EntityID: antID, Kind: components.KindAnt, Team: team, At: pile}
}

// NewAttackEvent creates an attack event.
func NewAttackEvent(round int32, antID uint32, team int, target components.TeamElement, at components.Coord) Event {
	return Event{
		Type:       EventAttack,
		Round:      round,
		EntityID:   antID,
		Kind:       components.KindAnt,
		Team:       team,
		At:         at,
		TargetKind: target.Kind,
		TargetTeam: target.Team,
	}
}

// NewDirtClearedEvent creates an event for an ant clearing an obstruction.
func NewDirtClearedEvent(round int32, antID uint32, team int, at components.Coord) Event {
	return Event{Type: EventDirtCleared, Round: round, EntityID: antID, Kind: components.KindAnt, Team: team, At: at}
}

// NewSignalEvent creates a signal broadcast event.
func NewSignalEvent(round int32, team int, at components.Coord) Event {
	return Event{Type: EventSignal, Round: round, Team: team, At: at}
}
