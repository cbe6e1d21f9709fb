package components

import "image/color"

// DirtColor is the colour of dirt cells.
var DirtColor = color.RGBA{R: 139, G: 69, B: 19, A: 255}

// Dirt is a static obstruction cleared by a single hit.
type Dirt struct {
	Cleared bool `inspect:"bool"`
}

// Attacked clears the dirt.
func (d *Dirt) Attacked(n int) {
	if n > 0 {
		d.Cleared = true
	}
}

// Removed reports whether the dirt has been cleared.
func (d *Dirt) Removed() bool {
	return d.Cleared
}
