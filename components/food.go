package components

import "image/color"

// DefaultFoodQuantity is the starting quantity of a food pile.
const DefaultFoodQuantity = 10

// FoodColor is the colour of a full food pile.
var FoodColor = color.RGBA{G: 255, A: 255}

// Food is a depletable resource pile.
type Food struct {
	Quantity int `inspect:"bar,max:10"`
	Initial  int `inspect:"label"`
}

// NewFood returns a pile holding quantity units.
func NewFood(quantity int) Food {
	return Food{Quantity: quantity, Initial: quantity}
}

// Attacked removes n units, saturating at zero.
func (f *Food) Attacked(n int) {
	f.Quantity = saturatingSub(f.Quantity, n)
}

// Removed reports whether the pile is exhausted.
func (f *Food) Removed() bool {
	return f.Quantity <= 0
}

// Color scales green by the remaining fraction, never fully black while food remains.
func (f *Food) Color() color.RGBA {
	if f.Initial <= 0 {
		return FoodColor
	}
	frac := float64(f.Quantity) / float64(f.Initial)
	return Scale(FoodColor, 0.3+0.7*frac)
}
