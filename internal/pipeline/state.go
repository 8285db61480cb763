package pipeline

// State is the pipeline lifecycle stage. It only ever moves forward.
type State int32

const (
	// StateRunning accepts connections and processes requests.
	StateRunning State = iota
	// StateDraining refuses new work while goroutines wind down.
	StateDraining
	// StateStopped means every pipeline goroutine has returned.
	StateStopped
)

func (s State) String() string {
	switch s {
	case StateRunning:
		return "running"
	case StateDraining:
		return "draining"
	case StateStopped:
		return "stopped"
	default:
		return "unknown"
	}
}
