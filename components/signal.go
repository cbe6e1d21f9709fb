package components

// SignalKind identifies what a signal announces.
type SignalKind uint8

const (
	SignalFood    SignalKind = iota // Food found at Coord
	SignalCarry                     // Food delivered at Coord
	SignalBattle                    // Fighting at Coord
	SignalDeliver                   // Hive at Coord received one unit of food
)

// String returns the signal kind name.
func (k SignalKind) String() string {
	switch k {
	case SignalFood:
		return "food"
	case SignalCarry:
		return "carry"
	case SignalBattle:
		return "battle"
	case SignalDeliver:
		return "deliver"
	}
	return "unknown"
}

// Signal is a short-lived, team-scoped broadcast. It is a value; recipients copy it.
type Signal struct {
	Coord     Coord
	Kind      SignalKind
	Propagate int // Remaining rebroadcast hops
}

// Accepts reports whether an ant whose base state is m follows signals of kind k.
func (m Mode) Accepts(k SignalKind) bool {
	switch m {
	case ModeFood:
		return k == SignalFood || k == SignalBattle
	case ModeCarrying:
		return k == SignalCarry
	case ModeBattle:
		return k == SignalBattle
	}
	return false
}

// Strongest returns the signal with the maximum propagation budget. Ties go to the last one.
func Strongest(signals []Signal) (Signal, bool) {
	if len(signals) == 0 {
		return Signal{}, false
	}
	best := signals[0]
	for _, s := range signals[1:] {
		if s.Propagate >= best.Propagate {
			best = s
		}
	}
	return best, true
}

// Relay returns the signal to rebroadcast from origin, or false if its budget is spent.
func (s Signal) Relay(origin Coord) (Signal, bool) {
	if s.Propagate <= 0 {
		return Signal{}, false
	}
	return Signal{Coord: origin, Kind: s.Kind, Propagate: s.Propagate - 1}, true
}
