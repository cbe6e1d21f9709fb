package components

// FieldDescriptor describes a numeric field for UI display and editing.
type FieldDescriptor struct {
	ID     string  // Unique identifier
	Label  string  // Display name
	Format string  // Printf format (e.g., "%.2f")
	Min    float32 // Minimum value (for sliders and bars)
	Max    float32 // Maximum value (for sliders and bars)
	Step   float32 // Rounding applied after editing, 0 for continuous
	Group  string  // Logical grouping
}

// Clamp limits v to the descriptor range and applies its step.
func (fd FieldDescriptor) Clamp(v float32) float32 {
	if v < fd.Min {
		v = fd.Min
	}
	if v > fd.Max {
		v = fd.Max
	}
	if fd.Step > 0 {
		n := int((v-fd.Min)/fd.Step + 0.5)
		v = fd.Min + float32(n)*fd.Step
	}
	return v
}

// PlaceableKinds lists the kinds a user may place, in menu order.
func PlaceableKinds() []ElementKind {
	return []ElementKind{KindFood, KindDirt, KindHive, KindAnt}
}

// PlaceableKindNames returns display names matching PlaceableKinds.
func PlaceableKindNames() []string {
	kinds := PlaceableKinds()
	names := make([]string, len(kinds))
	for i, k := range kinds {
		names[i] = k.String()
	}
	return names
}
