package overlay

// State is the overlay's visibility state.
type State int

const (
	Hidden State = iota
	AnimatingIn
	Visible
	AnimatingOut
)

func (s State) String() string {
	switch s {
	case Hidden:
		return "Hidden"
	case AnimatingIn:
		return "AnimatingIn"
	case Visible:
		return "Visible"
	case AnimatingOut:
		return "AnimatingOut"
	}
	return "Unknown"
}

// Animating reports whether a transition is in flight.
func (s State) Animating() bool { return s == AnimatingIn || s == AnimatingOut }
