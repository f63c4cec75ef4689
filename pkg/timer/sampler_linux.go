//go:build linux

package timer

import (
	"time"

	"golang.org/x/sys/unix"
)

// SyscallSampler reads clocks with clock_gettime(2)
type SyscallSampler struct{}

func newSystemSampler() Sampler {
	return SyscallSampler{}
}

var clockIDs = [...]int32{
	Realtime:        unix.CLOCK_REALTIME,
	RealtimeCoarse:  unix.CLOCK_REALTIME_COARSE,
	Monotonic:       unix.CLOCK_MONOTONIC,
	MonotonicCoarse: unix.CLOCK_MONOTONIC_COARSE,
	MonotonicRaw:    unix.CLOCK_MONOTONIC_RAW,
	BootTime:        unix.CLOCK_BOOTTIME,
	ProcessCPUTime:  unix.CLOCK_PROCESS_CPUTIME_ID,
	ThreadCPUTime:   unix.CLOCK_THREAD_CPUTIME_ID,
}

// Sample implements Sampler
func (SyscallSampler) Sample(c ClockSource) (Timestamp, error) {
	if !c.Valid() {
		return Timestamp{}, ErrClockUnsupported
	}
	var ts unix.Timespec
	if err := unix.ClockGettime(clockIDs[c], &ts); err != nil {
		return Timestamp{}, err
	}
	sec, nsec := ts.Unix()
	return Timestamp{Sec: sec, Nsec: nsec}, nil
}

// Resolution implements Resolver
func (SyscallSampler) Resolution(c ClockSource) (time.Duration, error) {
	if !c.Valid() {
		return 0, ErrClockUnsupported
	}
	var ts unix.Timespec
	if err := unix.ClockGetres(clockIDs[c], &ts); err != nil {
		return 0, err
	}
	return time.Duration(ts.Nano()), nil
}
