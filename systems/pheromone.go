package systems

// Trail identifies one team's trail of one kind.
// Foraging trails are laid by ants searching for food, the others by ants carrying it home.
type Trail struct {
	Team     int
	Foraging bool
}

// Pheromone is a distance estimate laid on a cell. Lower values are closer to the trail's origin.
type Pheromone struct {
	Trail Trail
	Value int
	Age   int // Round of the last overwrite
}

// Live reports whether the record is still valid at round.
func (p Pheromone) Live(round, decay int) bool {
	return round-p.Age <= decay
}

// Pheromone returns the live value for trail.
func (c *Cell) Pheromone(trail Trail, round, decay int) (int, bool) {
	for _, p := range c.pheromones {
		if p.Trail == trail {
			if !p.Live(round, decay) {
				return 0, false
			}
			return p.Value, true
		}
	}
	return 0, false
}

// Deposit records value for trail. An existing live record is only replaced by a strictly
// smaller value; an expired one is always replaced. Reports whether the cell changed.
func (c *Cell) Deposit(trail Trail, value, round, decay int) bool {
	for i := range c.pheromones {
		p := &c.pheromones[i]
		if p.Trail != trail {
			continue
		}
		if p.Live(round, decay) && value >= p.Value {
			return false
		}
		p.Value = value
		p.Age = round
		return true
	}
	c.pheromones = append(c.pheromones, Pheromone{Trail: trail, Value: value, Age: round})
	return true
}

// Residue returns the first live record, used to tint empty cells.
func (c *Cell) Residue(round, decay int) (Pheromone, bool) {
	for _, p := range c.pheromones {
		if p.Live(round, decay) {
			return p, true
		}
	}
	return Pheromone{}, false
}

// Pheromones returns the raw records, including expired ones not yet swept.
func (c *Cell) Pheromones() []Pheromone {
	return c.pheromones
}

func (c *Cell) decay(round, decay int) int {
	kept := c.pheromones[:0]
	for _, p := range c.pheromones {
		if p.Live(round, decay) {
			kept = append(kept, p)
		}
	}
	dropped := len(c.pheromones) - len(kept)
	c.pheromones = kept
	return dropped
}
