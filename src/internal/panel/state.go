package panel

// State is the panel lifecycle state.
type State int

const (
	Idle State = iota
	Loading
	Ready
	Hidden
	Error
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Loading:
		return "loading"
	case Ready:
		return "ready"
	case Hidden:
		return "hidden"
	case Error:
		return "error"
	default:
		return "unknown"
	}
}

// Terminal reports whether no further transition can happen.
func (s State) Terminal() bool { return s == Hidden || s == Error }
