package timer

import (
	"fmt"
	"time"
)

// Sampler reads the current value of a clock source
type Sampler interface {
	Sample(c ClockSource) (Timestamp, error)
}

// Resolver is implemented by samplers that can report clock resolution
type Resolver interface {
	Resolution(c ClockSource) (time.Duration, error)
}

// Backend names a Sampler implementation
type Backend string

const (
	// BackendSystem reads clocks through clock_gettime where available.
	BackendSystem Backend = "system"
	// BackendPortable uses the Go runtime and gopsutil on every platform.
	BackendPortable Backend = "portable"
)

// ParseBackend validates a backend name
func ParseBackend(s string) (Backend, error) {
	switch Backend(s) {
	case BackendSystem, BackendPortable:
		return Backend(s), nil
	case "":
		return BackendSystem, nil
	default:
		return BackendSystem, fmt.Errorf("unknown clock backend %q", s)
	}
}

// NewSampler returns the Sampler for a backend
func NewSampler(b Backend) Sampler {
	if b == BackendPortable {
		return NewPortableSampler()
	}
	return newSystemSampler()
}
