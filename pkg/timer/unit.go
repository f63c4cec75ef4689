package timer

import (
	"fmt"
	"strings"
)

// Unit is the scale elapsed time is reported in
type Unit int

const (
	Seconds Unit = iota
	Milliseconds
	Microseconds
	Nanoseconds

	unitCount
)

var unitAbbrev = [...]string{
	Seconds:      "s",
	Milliseconds: "ms",
	Microseconds: "us",
	Nanoseconds:  "ns",
}

var unitNames = [...]string{
	Seconds:      "seconds",
	Milliseconds: "milliseconds",
	Microseconds: "microseconds",
	Nanoseconds:  "nanoseconds",
}

// Valid reports whether u is a known unit
func (u Unit) Valid() bool {
	return u >= Seconds && u < unitCount
}

// String returns the abbreviation, or "s" for unknown units
func (u Unit) String() string {
	if !u.Valid() {
		return unitAbbrev[Seconds]
	}
	return unitAbbrev[u]
}

// Name returns the long name of the unit
func (u Unit) Name() string {
	if !u.Valid() {
		return fmt.Sprintf("unit(%d)", int(u))
	}
	return unitNames[u]
}

// ParseUnit accepts long names ("milliseconds") and abbreviations ("ms")
func ParseUnit(s string) (Unit, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for i := range unitNames {
		if name == unitNames[i] || name == unitAbbrev[i] {
			return Unit(i), nil
		}
	}
	switch name {
	case "sec", "second":
		return Seconds, nil
	case "msec", "millisecond":
		return Milliseconds, nil
	case "µs", "usec", "microsecond":
		return Microseconds, nil
	case "nsec", "nanosecond":
		return Nanoseconds, nil
	}
	return Seconds, fmt.Errorf("unknown unit %q", s)
}

// Convert scales a difference timestamp to u. It returns false for an
// unknown unit, in which case the value is in seconds.
func Convert(d Timestamp, u Unit) (float64, bool) {
	sec := float64(d.Sec)
	nsec := float64(d.Nsec)
	switch u {
	case Seconds:
		return sec + nsec/1e9, true
	case Milliseconds:
		return sec*1e3 + nsec/1e6, true
	case Microseconds:
		return sec*1e6 + nsec/1e3, true
	case Nanoseconds:
		return sec*1e9 + nsec, true
	default:
		return sec + nsec/1e9, false
	}
}
