package timer

import (
	"fmt"
	"strings"
)

// ClockSource selects the system clock an interval samples
type ClockSource int

const (
	// Realtime is the settable wall clock. It jumps when the system time is
	// changed and is slewed by NTP.
	Realtime ClockSource = iota
	// RealtimeCoarse is a faster, lower resolution Realtime (Linux only).
	RealtimeCoarse
	// Monotonic cannot be set and counts from an unspecified point. It is
	// slewed by NTP but never jumps.
	Monotonic
	// MonotonicCoarse is a faster, lower resolution Monotonic (Linux only).
	MonotonicCoarse
	// MonotonicRaw is hardware based time not subject to NTP (Linux only).
	MonotonicRaw
	// BootTime is Monotonic plus time spent suspended (Linux only).
	BootTime
	// ProcessCPUTime is CPU time consumed by the whole process.
	ProcessCPUTime
	// ThreadCPUTime is CPU time consumed by the calling OS thread.
	ThreadCPUTime

	clockSourceCount
)

var clockNames = [...]string{
	Realtime:        "realtime",
	RealtimeCoarse:  "realtime_coarse",
	Monotonic:       "monotonic",
	MonotonicCoarse: "monotonic_coarse",
	MonotonicRaw:    "monotonic_raw",
	BootTime:        "boot_time",
	ProcessCPUTime:  "process_cpu_time",
	ThreadCPUTime:   "thread_cpu_time",
}

// ClockSources lists every valid clock source in declaration order
func ClockSources() []ClockSource {
	out := make([]ClockSource, 0, clockSourceCount)
	for c := Realtime; c < clockSourceCount; c++ {
		out = append(out, c)
	}
	return out
}

// Valid reports whether c is a known clock source
func (c ClockSource) Valid() bool {
	return c >= Realtime && c < clockSourceCount
}

func (c ClockSource) String() string {
	if !c.Valid() {
		return fmt.Sprintf("clock(%d)", int(c))
	}
	return clockNames[c]
}

// ParseClockSource maps a clock name to its ClockSource. Dashes and
// underscores are interchangeable.
func ParseClockSource(s string) (ClockSource, error) {
	name := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), "-", "_")
	switch name {
	case "rt":
		return Realtime, nil
	case "mono":
		return Monotonic, nil
	case "boottime", "boot":
		return BootTime, nil
	}
	for i, n := range clockNames {
		if n == name {
			return ClockSource(i), nil
		}
	}
	return Realtime, fmt.Errorf("unknown clock source %q", s)
}
