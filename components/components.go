// Package components defines ECS components for the colony simulation.
package components

import (
	"fmt"
	"math"
)

// Coord is an integer grid position. Negative values are representable but never exist on a grid.
type Coord struct {
	X, Y int
}

// Distance returns the Euclidean distance between two coordinates.
func (c Coord) Distance(o Coord) float64 {
	dx := float64(c.X - o.X)
	dy := float64(c.Y - o.Y)
	return math.Sqrt(dx*dx + dy*dy)
}

// Next returns the neighbouring coordinate in the given direction.
func (c Coord) Next(d Dir) Coord {
	switch d {
	case Up:
		return Coord{X: c.X, Y: c.Y - 1}
	case Left:
		return Coord{X: c.X - 1, Y: c.Y}
	case Down:
		return Coord{X: c.X, Y: c.Y + 1}
	case Right:
		return Coord{X: c.X + 1, Y: c.Y}
	}
	return c
}

// Adjacent reports whether o is one axis-aligned step away from c.
func (c Coord) Adjacent(o Coord) bool {
	dx := c.X - o.X
	dy := c.Y - o.Y
	return (dx == 0 && (dy == 1 || dy == -1)) || (dy == 0 && (dx == 1 || dx == -1))
}

func (c Coord) String() string {
	return fmt.Sprintf("(%d,%d)", c.X, c.Y)
}

// Dir is one of the four axis-aligned movement directions.
type Dir uint8

const (
	Up Dir = iota
	Left
	Down
	Right
	NumDirs
)

// Dirs lists directions in enumeration order. Movement ties are broken by this order.
var Dirs = [NumDirs]Dir{Up, Left, Down, Right}

// String returns the direction name.
func (d Dir) String() string {
	switch d {
	case Up:
		return "up"
	case Left:
		return "left"
	case Down:
		return "down"
	case Right:
		return "right"
	}
	return "unknown"
}

// Position is the grid cell an element occupies.
// It is only written together with the grid cell that references the element.
type Position struct {
	Coord
}

// Tag classifies an element for the team index.
type Tag struct {
	TeamElement
}
