package systems

import (
	opensimplex "github.com/ojrac/opensimplex-go"

	"github.com/pthm-cable/colony/components"
)

// DirtField decides where terrain dirt is laid on reset.
type DirtField struct {
	noise     opensimplex.Noise
	scale     float64 // Noise frequency per cell
	threshold float64 // Normalized noise above which a cell is dirt
}

// NewDirtField creates a field from a seed.
func NewDirtField(seed int64, scale, threshold float64) *DirtField {
	return &DirtField{
		noise:     opensimplex.NewNormalized(seed),
		scale:     scale,
		threshold: threshold,
	}
}

// Value returns the normalized noise at c, in [0, 1].
func (f *DirtField) Value(c components.Coord) float64 {
	return f.noise.Eval2(float64(c.X)*f.scale, float64(c.Y)*f.scale)
}

// IsDirt reports whether c should start as dirt.
func (f *DirtField) IsDirt(c components.Coord) bool {
	return f.Value(c) > f.threshold
}

// Cells returns every coordinate of a rows x cols grid that should start as dirt, row-major.
func (f *DirtField) Cells(rows, cols int) []components.Coord {
	var out []components.Coord
	for y := 0; y < rows; y++ {
		for x := 0; x < cols; x++ {
			c := components.Coord{X: x, Y: y}
			if f.IsDirt(c) {
				out = append(out, c)
			}
		}
	}
	return out
}
