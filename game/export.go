package game

import (
	"image/color"

	"github.com/pthm-cable/colony/components"
	"github.com/pthm-cable/colony/systems"
)

// residueShade darkens a team colour for cells that only hold a trail.
const residueShade = 1.0 / 6.0

// Background is the colour of empty cells.
var Background = color.RGBA{A: 255}

// TeamStatus summarises one team for the presentation side.
type TeamStatus struct {
	Team      components.Team
	Ants      int
	HiveAlive bool
	HiveFood  int
	Delivered int
}

// Snapshot is a fully owned render payload. Colors is row-major: Colors[y][x].
type Snapshot struct {
	Colors [][]color.RGBA
	Rows   int
	Cols   int
	Frame  int32
	Teams  []TeamStatus
}

// At returns the colour of c, or Background when c is outside the snapshot.
func (s *Snapshot) At(c components.Coord) color.RGBA {
	if c.Y < 0 || c.Y >= len(s.Colors) || c.X < 0 || c.X >= len(s.Colors[c.Y]) {
		return Background
	}
	return s.Colors[c.Y][c.X]
}

// Export copies the grid into a colour snapshot without touching simulation state.
func (ag *AntGrid) Export() Snapshot {
	rows, cols := ag.grid.Rows(), ag.grid.Cols()
	snap := Snapshot{
		Colors: make([][]color.RGBA, rows),
		Rows:   rows,
		Cols:   cols,
		Frame:  ag.round,
		Teams:  ag.TeamStatuses(),
	}
	backing := make([]color.RGBA, rows*cols)
	for y := 0; y < rows; y++ {
		snap.Colors[y] = backing[y*cols : (y+1)*cols]
		for x := 0; x < cols; x++ {
			snap.Colors[y][x] = ag.cellColor(components.Coord{X: x, Y: y})
		}
	}
	return snap
}

func (ag *AntGrid) cellColor(c components.Coord) color.RGBA {
	if e, key, ok := ag.occupant(c); ok {
		switch key.Kind {
		case components.KindAnt:
			return ag.antMap.Get(e).Team.Color
		case components.KindHive:
			return ag.hiveMap.Get(e).Team.Color
		case components.KindFood:
			return ag.foodMap.Get(e).Color()
		case components.KindDirt:
			return components.DirtColor
		}
	}
	if p, ok := ag.grid.Get(c).Residue(int(ag.round), ag.opts.Decay); ok {
		if team, known := ag.Team(p.Trail.Team); known {
			return team.Shade(residueShade)
		}
	}
	return Background
}

// TeamStatuses returns one status per registered team in registration order.
func (ag *AntGrid) TeamStatuses() []TeamStatus {
	out := make([]TeamStatus, 0, len(ag.teams))
	for _, team := range ag.teams {
		ts := TeamStatus{
			Team:      team,
			Ants:      ag.CountAnts(team.ID),
			Delivered: ag.delivered[team.ID],
		}
		for _, h := range ag.index.Get(components.Key(components.KindHive, team.ID)) {
			hive := ag.hiveMap.Get(h)
			if hive.Removed() {
				continue
			}
			ts.HiveAlive = true
			ts.HiveFood += hive.Food
		}
		out = append(out, ts)
	}
	return out
}

// ElementInfo is a copy of everything known about one cell, for inspection.
// Exactly one of the element pointers is set when the cell is occupied.
type ElementInfo struct {
	At       components.Coord
	Kind     components.ElementKind
	TeamName string
	State    string

	Ant  *components.Ant
	Food *components.Food
	Hive *components.Hive
	Dirt *components.Dirt

	Pheromones []systems.Pheromone
}

// Inspect describes the cell at c. It reports false when c is outside the grid.
func (ag *AntGrid) Inspect(c components.Coord) (ElementInfo, bool) {
	if !ag.grid.DoesExist(c) {
		return ElementInfo{}, false
	}
	info := ElementInfo{At: c, Kind: components.KindEmpty}
	for _, p := range ag.grid.Get(c).Pheromones() {
		if p.Live(int(ag.round), ag.opts.Decay) {
			info.Pheromones = append(info.Pheromones, p)
		}
	}

	e, key, ok := ag.occupant(c)
	if !ok {
		return info, true
	}
	info.Kind = key.Kind
	switch key.Kind {
	case components.KindAnt:
		ant := *ag.antMap.Get(e)
		ant.Signals = nil
		info.Ant = &ant
		info.TeamName = ant.Team.Name
		info.State = ant.State.String()
	case components.KindHive:
		hive := *ag.hiveMap.Get(e)
		info.Hive = &hive
		info.TeamName = hive.Team.Name
	case components.KindFood:
		food := *ag.foodMap.Get(e)
		info.Food = &food
	case components.KindDirt:
		dirt := *ag.dirtMap.Get(e)
		info.Dirt = &dirt
	}
	return info, true
}
