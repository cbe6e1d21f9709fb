package game

import (
	"log/slog"

	"github.com/pthm-cable/colony/components"
	"github.com/pthm-cable/colony/systems"
	"github.com/pthm-cable/colony/telemetry"
)

// Reset clears the grid and runs the default setup: configured teams with one hive each,
// food piles, initial ants and noise-generated dirt. Team ids keep growing across resets.
func (g *Game) Reset() {
	g.grid.Clear()
	g.collector.Reset(0)
	g.lifetime.Clear()
	g.milestones.Reset()
	g.lastStats = telemetry.WindowStats{}
	g.setup()
	slog.Info("grid reset",
		"rows", g.grid.Rows(),
		"cols", g.grid.Cols(),
		"teams", len(g.grid.Teams()),
	)
}

func (g *Game) setup() {
	setup := g.cfg.Setup
	colors := g.cfg.Derived.TeamColors
	for i, tc := range setup.Teams {
		g.AddTeam(tc.Name, colors[i], tc.Health)
	}
	teams := g.grid.Teams()

	for _, team := range teams {
		if !g.placeRandom(func(c components.Coord) bool {
			_, ok := g.grid.PutHive(c, team)
			return ok
		}) {
			slog.Warn("no room for hive", "team", team.Name)
		}
	}

	for i := 0; i < setup.FoodPiles; i++ {
		g.placeRandom(func(c components.Coord) bool {
			_, ok := g.grid.PutFood(c, setup.FoodQuantity)
			return ok
		})
	}

	if len(teams) > 0 {
		for i := 0; i < setup.InitialAnts; i++ {
			team := teams[g.rng.Intn(len(teams))]
			g.placeRandom(func(c components.Coord) bool {
				_, ok := g.grid.PutAnt(c, team)
				return ok
			})
		}
	}

	// Dirt goes last so it never displaces hives, food or ants.
	field := systems.NewDirtField(g.rng.Int63(), setup.DirtScale, setup.DirtThreshold)
	for _, c := range field.Cells(g.grid.Rows(), g.grid.Cols()) {
		g.grid.PutDirt(c)
	}
}

// placeRandom tries random coordinates until put succeeds, giving up after one attempt per cell.
func (g *Game) placeRandom(put func(components.Coord) bool) bool {
	rows, cols := g.grid.Rows(), g.grid.Cols()
	for attempt := 0; attempt < rows*cols; attempt++ {
		c := components.Coord{X: g.rng.Intn(cols), Y: g.rng.Intn(rows)}
		if put(c) {
			return true
		}
	}
	return false
}
