// Package systems provides the grid storage and lookup structures of the simulation.
package systems

import (
	"fmt"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/colony/components"
)

// Cell is one grid square: at most one occupant plus trail records.
type Cell struct {
	occupant   ecs.Entity
	occupied   bool
	pheromones []Pheromone
}

// Occupant returns the entity in the cell, if any.
func (c *Cell) Occupant() (ecs.Entity, bool) {
	return c.occupant, c.occupied
}

// SetOccupant places e in the cell, replacing any previous occupant.
func (c *Cell) SetOccupant(e ecs.Entity) {
	c.occupant = e
	c.occupied = true
}

// ClearOccupant empties the cell. Trail records are kept.
func (c *Cell) ClearOccupant() {
	c.occupant = ecs.Entity{}
	c.occupied = false
}

// Grid is a fixed rows x cols array of cells, stored row-major.
type Grid struct {
	rows, cols int
	cells      []Cell
}

// NewGrid allocates an empty grid.
func NewGrid(rows, cols int) *Grid {
	if rows <= 0 || cols <= 0 {
		panic(fmt.Sprintf("systems: invalid grid size %dx%d", rows, cols))
	}
	return &Grid{
		rows:  rows,
		cols:  cols,
		cells: make([]Cell, rows*cols),
	}
}

// Rows returns the grid height.
func (g *Grid) Rows() int { return g.rows }

// Cols returns the grid width.
func (g *Grid) Cols() int { return g.cols }

// DoesExist reports whether c lies inside the grid.
func (g *Grid) DoesExist(c components.Coord) bool {
	return c.X >= 0 && c.X < g.cols && c.Y >= 0 && c.Y < g.rows
}

// Get returns the cell at c. Out-of-bounds access panics.
func (g *Grid) Get(c components.Coord) *Cell {
	if !g.DoesExist(c) {
		panic(fmt.Sprintf("systems: cell %v outside %dx%d grid", c, g.cols, g.rows))
	}
	return &g.cells[c.Y*g.cols+c.X]
}

// Occupant returns the entity at c. Out-of-bounds coordinates have no occupant.
func (g *Grid) Occupant(c components.Coord) (ecs.Entity, bool) {
	if !g.DoesExist(c) {
		return ecs.Entity{}, false
	}
	return g.Get(c).Occupant()
}

// Clear empties every cell, dropping occupants and trails.
func (g *Grid) Clear() {
	for i := range g.cells {
		g.cells[i] = Cell{pheromones: g.cells[i].pheromones[:0]}
	}
}

// DecayPheromones drops every record older than decay rounds.
func (g *Grid) DecayPheromones(round, decay int) int {
	dropped := 0
	for i := range g.cells {
		dropped += g.cells[i].decay(round, decay)
	}
	return dropped
}
