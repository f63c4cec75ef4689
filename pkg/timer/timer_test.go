package timer

import (
	"bytes"
	"errors"
	"testing"
)

// scriptedSampler hands out samples in order and records which clocks were read
type scriptedSampler struct {
	samples []Timestamp
	errs    map[int]error
	calls   []ClockSource
}

func (s *scriptedSampler) Sample(c ClockSource) (Timestamp, error) {
	i := len(s.calls)
	s.calls = append(s.calls, c)
	if err := s.errs[i]; err != nil {
		return Timestamp{}, err
	}
	if i >= len(s.samples) {
		return Timestamp{}, errors.New("scripted sampler exhausted")
	}
	return s.samples[i], nil
}

func newTestTimer(t *testing.T, cfg Config, samples ...Timestamp) (*Timer, *scriptedSampler, *bytes.Buffer) {
	t.Helper()
	s := &scriptedSampler{samples: samples, errs: map[int]error{}}
	var diag bytes.Buffer
	tm := New(cfg, WithSampler(s), WithOutput(&diag))
	return tm, s, &diag
}

func ts(sec, nsec int64) Timestamp {
	return Timestamp{Sec: sec, Nsec: nsec}
}
