package components

// Hive is a team's spawner and food sink.
type Hive struct {
	Team      Team `inspect:"skip"`
	Health    int  `inspect:"bar,max:10"`
	Food      int  `inspect:"label"` // Stored food, converted into ants
	Delivered int  `inspect:"label"` // Lifetime deliveries
}

// NewHive returns a hive at full team health holding food units.
func NewHive(team Team, food int) Hive {
	return Hive{Team: team, Health: team.Health, Food: food}
}

// Attacked subtracts n health, saturating at zero.
func (h *Hive) Attacked(n int) {
	h.Health = saturatingSub(h.Health, n)
}

// Removed reports whether the hive has been destroyed.
func (h *Hive) Removed() bool {
	return h.Health <= 0
}

// Deliver stores one unit of food.
func (h *Hive) Deliver() {
	h.Food++
	h.Delivered++
}
