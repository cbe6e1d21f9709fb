package telemetry

// LifetimeStats tracks per-ant statistics over its lifetime.
type LifetimeStats struct {
	BirthRound int32
	Team       int

	Attacks     int
	FoodEaten   int
	Deliveries  int
	DirtCleared int
}

// LifetimeTracker manages per-ant lifetime statistics keyed by entity id.
type LifetimeTracker struct {
	stats map[uint32]*LifetimeStats
}

// NewLifetimeTracker creates a new lifetime tracker.
func NewLifetimeTracker() *LifetimeTracker {
	return &LifetimeTracker{
		stats: make(map[uint32]*LifetimeStats),
	}
}

// Register creates lifetime stats for a new ant.
func (lt *LifetimeTracker) Register(entityID uint32, birthRound int32, team int) {
	lt.stats[entityID] = &LifetimeStats{
		BirthRound: birthRound,
		Team:       team,
	}
}

// Get returns the lifetime stats for an ant, or nil if not found.
func (lt *LifetimeTracker) Get(entityID uint32) *LifetimeStats {
	return lt.stats[entityID]
}

// Remove removes an ant's stats and returns them.
func (lt *LifetimeTracker) Remove(entityID uint32) *LifetimeStats {
	stats := lt.stats[entityID]
	delete(lt.stats, entityID)
	return stats
}

// Record updates the per-ant counters for an event. Unknown ids are ignored.
func (lt *LifetimeTracker) Record(ev Event) {
	s := lt.stats[ev.EntityID]
	if s == nil {
		return
	}
	switch ev.Type {
	case EventAttack:
		s.Attacks++
	case EventFoodEaten:
		s.FoodEaten++
	case EventDelivery:
		s.Deliveries++
	case EventDirtCleared:
		s.DirtCleared++
	}
}

// Count returns the number of tracked ants.
func (lt *LifetimeTracker) Count() int {
	return len(lt.stats)
}

// Clear drops every record, e.g. after the grid is reset.
func (lt *LifetimeTracker) Clear() {
	clear(lt.stats)
}
