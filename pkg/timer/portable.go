package timer

import (
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/shirou/gopsutil/v3/host"
	"github.com/shirou/gopsutil/v3/process"
)

// PortableSampler approximates the clock sources without clock_gettime.
// Realtime comes from time.Now, the monotonic family from the runtime's
// monotonic reading, BootTime and ProcessCPUTime from gopsutil. Coarse and
// raw variants are served by their precise counterparts. ThreadCPUTime is
// not available.
type PortableSampler struct {
	epoch     time.Time
	epochWall Timestamp

	once    sync.Once
	proc    *process.Process
	procErr error
}

// NewPortableSampler anchors the monotonic readings at the current time
func NewPortableSampler() *PortableSampler {
	now := time.Now()
	return &PortableSampler{
		epoch:     now,
		epochWall: TimestampFromDuration(time.Duration(now.UnixNano())),
	}
}

// Sample implements Sampler
func (p *PortableSampler) Sample(c ClockSource) (Timestamp, error) {
	switch c {
	case Realtime, RealtimeCoarse:
		return TimestampFromDuration(time.Duration(time.Now().UnixNano())), nil
	case Monotonic, MonotonicCoarse, MonotonicRaw:
		// Offset by the wall clock at construction so readings look like
		// absolute timestamps rather than small counters.
		since := TimestampFromDuration(time.Since(p.epoch))
		return addTimestamps(p.epochWall, since), nil
	case BootTime:
		return p.bootTime()
	case ProcessCPUTime:
		return p.processCPU()
	case ThreadCPUTime:
		return Timestamp{}, ErrClockUnsupported
	default:
		return Timestamp{}, fmt.Errorf("%w: %s", ErrClockUnsupported, c)
	}
}

// Resolution implements Resolver. Go does not expose clock resolution, so
// the runtime's nanosecond granularity is reported for time based clocks.
func (p *PortableSampler) Resolution(c ClockSource) (time.Duration, error) {
	switch c {
	case Realtime, RealtimeCoarse, Monotonic, MonotonicCoarse, MonotonicRaw, BootTime:
		return time.Nanosecond, nil
	case ProcessCPUTime:
		// gopsutil reports CPU times in clock ticks
		return 10 * time.Millisecond, nil
	default:
		return 0, ErrClockUnsupported
	}
}

func (p *PortableSampler) bootTime() (Timestamp, error) {
	boot, err := host.BootTime()
	if err != nil {
		return Timestamp{}, fmt.Errorf("%w: boot time: %v", ErrClockUnsupported, err)
	}
	now := time.Now()
	return TimestampFromDuration(now.Sub(time.Unix(int64(boot), 0))), nil
}

func (p *PortableSampler) processCPU() (Timestamp, error) {
	p.once.Do(func() {
		p.proc, p.procErr = process.NewProcess(int32(os.Getpid()))
	})
	if p.procErr != nil {
		return Timestamp{}, fmt.Errorf("%w: process: %v", ErrClockUnsupported, p.procErr)
	}
	times, err := p.proc.Times()
	if err != nil {
		return Timestamp{}, fmt.Errorf("%w: cpu times: %v", ErrClockUnsupported, err)
	}
	cpu := time.Duration((times.User + times.System) * float64(time.Second))
	return TimestampFromDuration(cpu), nil
}

func addTimestamps(a, b Timestamp) Timestamp {
	sum := Timestamp{Sec: a.Sec + b.Sec, Nsec: a.Nsec + b.Nsec}
	if sum.Nsec >= nanosPerSecond {
		sum.Sec++
		sum.Nsec -= nanosPerSecond
	}
	return sum
}
