package components

// Ant is the mobile agent component.
type Ant struct {
	Team    Team     `inspect:"skip"`
	Health  int      `inspect:"bar,max:10"`
	State   State    `inspect:"skip"`
	Signals []Signal `inspect:"skip"`  // Inbound queue, cleared every tick
	Budget  int      `inspect:"label"` // Propagation budget for signals this ant originates, refreshed each tick
}

// NewAnt returns a foraging ant at full team health.
func NewAnt(team Team, budget int) Ant {
	return Ant{
		Team:   team,
		Health: team.Health,
		State:  NewState(FoodFrame()),
		Budget: budget,
	}
}

// Attacked subtracts n health, saturating at zero.
func (a *Ant) Attacked(n int) {
	a.Health = saturatingSub(a.Health, n)
}

// Removed reports whether the ant has died.
func (a *Ant) Removed() bool {
	return a.Health <= 0
}

// Receive queues a signal for the next decision.
func (a *Ant) Receive(s Signal) {
	a.Signals = append(a.Signals, s)
}

// ClearSignals empties the inbound queue, keeping its storage.
func (a *Ant) ClearSignals() {
	a.Signals = a.Signals[:0]
}

func saturatingSub(v, n int) int {
	if n <= 0 {
		return v
	}
	if v <= n {
		return 0
	}
	return v - n
}
