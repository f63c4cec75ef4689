package timer

import "fmt"

// State is where an interval is in its lifecycle
type State string

const (
	StateCreated State = "created" // Built, never sampled
	StateStarted State = "started" // Start timestamp recorded
	StateStopped State = "stopped" // Stop timestamp recorded
)

// validTransitions maps from-state to allowed to-states
var validTransitions = map[State]map[State]bool{
	StateCreated: {
		StateStarted: true, // Created → Started (first start)
	},
	StateStarted: {
		StateStarted: true, // Started → Started (restart overwrites start)
		StateStopped: true, // Started → Stopped (normal stop)
	},
	StateStopped: {
		StateStarted: true, // Stopped → Started (reuse the interval)
	},
}

// ValidateTransition checks if a lifecycle transition is in the table
func ValidateTransition(from, to State) error {
	allowed, exists := validTransitions[from]
	if !exists {
		return fmt.Errorf("unknown source state: %s", from)
	}
	if !allowed[to] {
		return fmt.Errorf("invalid transition from %s to %s", from, to)
	}
	return nil
}
