package components

import "image/color"

// Team identifies a faction. Teams are created once per setup and never mutated.
type Team struct {
	ID     int        // Unique within a run, never reused
	Name   string     // Display name
	Color  color.RGBA // Colour used for ants, hives and trail residue
	Health int        // Starting and maximum health of the team's ants and hive
}

// Equal compares teams by id.
func (t Team) Equal(o Team) bool {
	return t.ID == o.ID
}

// Shade returns the team colour scaled by factor in [0, 1].
func (t Team) Shade(factor float64) color.RGBA {
	return Scale(t.Color, factor)
}

// Scale multiplies the RGB channels of c by factor, clamped to [0, 1]. Alpha is forced opaque.
func Scale(c color.RGBA, factor float64) color.RGBA {
	if factor < 0 {
		factor = 0
	}
	if factor > 1 {
		factor = 1
	}
	return color.RGBA{
		R: uint8(float64(c.R) * factor),
		G: uint8(float64(c.G) * factor),
		B: uint8(float64(c.B) * factor),
		A: 255,
	}
}
