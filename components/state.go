package components

import "fmt"

// Mode identifies a frame of the ant decision state machine.
type Mode uint8

const (
	ModeFood     Mode = iota // Foraging
	ModeCarrying             // Returning home with food
	ModeBattle               // Engaged in combat
	ModeTargeted             // Wrapper: diverted toward a signal source
	ModeDirt                 // Wrapper: stuck for a tick after clearing an obstruction
)

// String returns the mode name.
func (m Mode) String() string {
	switch m {
	case ModeFood:
		return "food"
	case ModeCarrying:
		return "carrying"
	case ModeBattle:
		return "battle"
	case ModeTargeted:
		return "targeted"
	case ModeDirt:
		return "dirt"
	}
	return "unknown"
}

// Wrapper reports whether the mode suspends another frame.
func (m Mode) Wrapper() bool {
	return m == ModeTargeted || m == ModeDirt
}

// Frame is one level of the state stack.
type Frame struct {
	Mode Mode

	// Counter is the pheromone age for Food/Carrying and the rage counter for Battle.
	Counter int

	// Target and Propagation are set for Targeted frames only.
	Target      Coord
	Propagation int
}

// MaxStateDepth bounds the stack: a base frame, a Targeted wrapper and a Dirt wrapper.
const MaxStateDepth = 3

// State is a fixed-capacity stack of frames. The zero value is not valid; use NewState.
type State struct {
	frames [MaxStateDepth]Frame
	depth  int
}

// NewState returns a stack holding a single base frame.
func NewState(base Frame) State {
	if base.Mode.Wrapper() {
		panic(fmt.Sprintf("components: %s cannot be a base state", base.Mode))
	}
	s := State{depth: 1}
	s.frames[0] = base
	return s
}

// FoodFrame returns a foraging base frame.
func FoodFrame() Frame { return Frame{Mode: ModeFood} }

// CarryingFrame returns a carrying base frame.
func CarryingFrame() Frame { return Frame{Mode: ModeCarrying} }

// BattleFrame returns a battle base frame with the given rage.
func BattleFrame(rage int) Frame { return Frame{Mode: ModeBattle, Counter: rage} }

// TargetedFrame returns a Targeted wrapper frame.
func TargetedFrame(target Coord, propagation int) Frame {
	return Frame{Mode: ModeTargeted, Target: target, Propagation: propagation}
}

// DirtFrame returns a Dirt wrapper frame.
func DirtFrame() Frame { return Frame{Mode: ModeDirt} }

// Depth returns the number of frames on the stack.
func (s *State) Depth() int {
	return s.depth
}

// Top returns the outermost frame.
func (s *State) Top() *Frame {
	return &s.frames[s.depth-1]
}

// Base returns the innermost non-wrapper frame.
func (s *State) Base() *Frame {
	return &s.frames[0]
}

// Mode returns the mode of the outermost frame.
func (s *State) Mode() Mode {
	return s.Top().Mode
}

// Has reports whether any frame on the stack has the given mode.
func (s *State) Has(m Mode) bool {
	for i := 0; i < s.depth; i++ {
		if s.frames[i].Mode == m {
			return true
		}
	}
	return false
}

// Targeted returns the Targeted wrapper, if any.
func (s *State) Targeted() (*Frame, bool) {
	for i := s.depth - 1; i > 0; i-- {
		if s.frames[i].Mode == ModeTargeted {
			return &s.frames[i], true
		}
	}
	return nil, false
}

// Push wraps the current state in f. Panics if the stack is full or f is not a wrapper.
func (s *State) Push(f Frame) {
	if !f.Mode.Wrapper() {
		panic(fmt.Sprintf("components: cannot push base mode %s", f.Mode))
	}
	if s.depth >= MaxStateDepth {
		panic(fmt.Sprintf("components: state stack overflow pushing %s onto %s", f.Mode, s))
	}
	s.frames[s.depth] = f
	s.depth++
}

// Pop drops the outermost wrapper and returns it. The base frame is never popped.
func (s *State) Pop() Frame {
	if s.depth <= 1 {
		panic("components: pop of base state")
	}
	s.depth--
	return s.frames[s.depth]
}

// Unwrap drops every wrapper, leaving only the base frame.
func (s *State) Unwrap() {
	s.depth = 1
}

// Replace discards the whole stack and installs a new base frame.
func (s *State) Replace(base Frame) {
	*s = NewState(base)
}

// String renders the stack outermost first, e.g. "dirt{targeted{food}}".
func (s State) String() string {
	out := ""
	for i := s.depth - 1; i >= 0; i-- {
		out += s.frames[i].Mode.String()
		if i > 0 {
			out += "{"
		}
	}
	for i := 1; i < s.depth; i++ {
		out += "}"
	}
	return out
}
