package timer

import (
	"fmt"
	"time"
)

const nanosPerSecond = 1_000_000_000

// Timestamp is an absolute clock reading split into whole seconds and
// nanoseconds, the shape clock_gettime returns.
type Timestamp struct {
	Sec  int64 `json:"sec" yaml:"sec"`
	Nsec int64 `json:"nsec" yaml:"nsec"`
}

// TimestampFromDuration splits d into a normalized Timestamp
func TimestampFromDuration(d time.Duration) Timestamp {
	ns := d.Nanoseconds()
	sec, nsec := ns/nanosPerSecond, ns%nanosPerSecond
	if nsec < 0 {
		sec--
		nsec += nanosPerSecond
	}
	return Timestamp{Sec: sec, Nsec: nsec}
}

// IsZero reports whether the timestamp was never set
func (t Timestamp) IsZero() bool {
	return t.Sec == 0 && t.Nsec == 0
}

// Duration converts t to a time.Duration. Values beyond ~292 years overflow.
func (t Timestamp) Duration() time.Duration {
	return time.Duration(t.Sec)*time.Second + time.Duration(t.Nsec)
}

// String renders t as seconds with nine fractional digits
func (t Timestamp) String() string {
	return fmt.Sprintf("%d.%09d", t.Sec, t.Nsec)
}

// DiffTimestamps returns end - begin.
//
// When end's nanoseconds are smaller, whole seconds are borrowed from begin
// until they are not. When the nanosecond gap exceeds one second (only
// possible with unnormalized inputs) the excess is carried back into begin.
func DiffTimestamps(end, begin Timestamp) Timestamp {
	result := begin
	if end.Nsec < begin.Nsec {
		n := (begin.Nsec-end.Nsec)/nanosPerSecond + 1
		result.Nsec -= nanosPerSecond * n
		result.Sec += n
	}
	if end.Nsec-begin.Nsec > nanosPerSecond {
		n := (end.Nsec - begin.Nsec) / nanosPerSecond
		result.Nsec += nanosPerSecond * n
		result.Sec -= n
	}

	result.Sec = end.Sec - result.Sec
	result.Nsec = end.Nsec - result.Nsec
	return result
}
