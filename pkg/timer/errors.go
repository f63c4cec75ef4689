package timer

import (
	"errors"
	"fmt"
)

var (
	// ErrClockUnsupported is returned when a clock source cannot be read on
	// this platform or backend.
	ErrClockUnsupported = errors.New("clock not available")
	// ErrInvalidState is returned in strict mode for out-of-order calls.
	ErrInvalidState = errors.New("invalid interval state")
)

// ClockError reports a failed clock read during start or stop
type ClockError struct {
	Op       string // "start" or "stop"
	Interval string
	Clock    ClockSource
	Err      error
}

// Error implements error interface
func (e *ClockError) Error() string {
	return fmt.Sprintf("%s %q: read %s clock: %v", e.Op, e.Interval, e.Clock, e.Err)
}

// Unwrap implements error unwrapping
func (e *ClockError) Unwrap() error {
	return e.Err
}

// StateError reports a lifecycle transition rejected in strict mode
type StateError struct {
	Op       string
	Interval string
	From     State
	To       State
}

// Error implements error interface
func (e *StateError) Error() string {
	return fmt.Sprintf("%s %q: %v: %s -> %s", e.Op, e.Interval, ErrInvalidState, e.From, e.To)
}

// Unwrap implements error unwrapping
func (e *StateError) Unwrap() error {
	return ErrInvalidState
}
