package timer

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIntervalStartStopElapsed(t *testing.T) {
	tm, s, diag := newTestTimer(t, DefaultConfig(), ts(100, 250_000_000), ts(101, 750_000_000))
	iv := tm.NewInterval("Test 2", Monotonic, Seconds)
	assert.Equal(t, StateCreated, iv.State())

	require.NoError(t, iv.Start())
	assert.Equal(t, StateStarted, iv.State())
	require.NoError(t, iv.Stop())
	assert.Equal(t, StateStopped, iv.State())

	assert.Equal(t, []ClockSource{Monotonic, Monotonic}, s.calls)
	assert.Equal(t, ts(100, 250_000_000), iv.StartTimestamp())
	assert.Equal(t, ts(101, 750_000_000), iv.StopTimestamp())
	assert.Equal(t, ts(1, 500_000_000), iv.Diff())
	assert.InDelta(t, 1.5, iv.Elapsed(), 1e-12)
	assert.InDelta(t, 1500.0, iv.ElapsedIn(Milliseconds), 1e-9)
	assert.InDelta(t, 1.5e6, iv.ElapsedIn(Microseconds), 1e-6)
	assert.InDelta(t, 1.5e9, iv.ElapsedIn(Nanoseconds), 1e-3)
	assert.Empty(t, diag.String())
}

func TestIntervalRestartOverwritesStart(t *testing.T) {
	tm, _, _ := newTestTimer(t, DefaultConfig(), ts(1, 0), ts(5, 0), ts(6, 0), ts(10, 0), ts(12, 0))
	iv := tm.NewDefaultInterval("again")

	require.NoError(t, iv.Start())
	require.NoError(t, iv.Start())
	require.NoError(t, iv.Stop())
	assert.InDelta(t, 1.0, iv.Elapsed(), 1e-12)

	// Stopped -> Started reuses the interval
	require.NoError(t, iv.Start())
	require.NoError(t, iv.Stop())
	assert.InDelta(t, 2.0, iv.Elapsed(), 1e-12)
}

func TestIntervalClockFailureDoesNotMutate(t *testing.T) {
	tm, s, diag := newTestTimer(t, DefaultConfig(), ts(3, 0), ts(0, 0), ts(4, 0))
	iv := tm.NewInterval("flaky", ThreadCPUTime, Milliseconds)

	require.NoError(t, iv.Start())
	s.errs[1] = ErrClockUnsupported

	err := iv.Stop()
	require.Error(t, err)

	var clockErr *ClockError
	require.True(t, errors.As(err, &clockErr))
	assert.Equal(t, "stop", clockErr.Op)
	assert.Equal(t, ThreadCPUTime, clockErr.Clock)
	assert.ErrorIs(t, err, ErrClockUnsupported)

	assert.Equal(t, StateStarted, iv.State())
	assert.True(t, iv.StopTimestamp().IsZero())
	assert.Contains(t, diag.String(), "Failed to get stop time!")

	err = iv.Start()
	require.NoError(t, err)
	assert.Equal(t, ts(4, 0), iv.StartTimestamp())
}

func TestIntervalStopWithoutStartIsPermissive(t *testing.T) {
	tm, _, diag := newTestTimer(t, DefaultConfig(), ts(7, 250_000_000))
	iv := tm.NewDefaultInterval("unstarted")

	require.NoError(t, iv.Stop())
	assert.Equal(t, StateStopped, iv.State())
	assert.InDelta(t, 7.25, iv.Elapsed(), 1e-12)
	assert.Empty(t, diag.String(), "out-of-order calls are only traced at debug verbosity")
}

func TestIntervalStrictOrderRejectsStopWithoutStart(t *testing.T) {
	cfg := DefaultConfig()
	cfg.StrictOrder = true
	tm, s, diag := newTestTimer(t, cfg, ts(7, 0))
	iv := tm.NewDefaultInterval("strict")

	err := iv.Stop()
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidState)

	var stateErr *StateError
	require.True(t, errors.As(err, &stateErr))
	assert.Equal(t, StateCreated, stateErr.From)
	assert.Equal(t, StateStopped, stateErr.To)

	assert.Empty(t, s.calls, "clock must not be read for a rejected call")
	assert.Equal(t, StateCreated, iv.State())
	assert.Contains(t, diag.String(), "invalid interval state")
}

func TestIntervalInvalidOverrideFallsBack(t *testing.T) {
	tm, _, diag := newTestTimer(t, DefaultConfig(), ts(0, 0), ts(2, 0))
	iv := tm.NewInterval("override", Monotonic, Milliseconds)
	require.NoError(t, iv.Start())
	require.NoError(t, iv.Stop())

	assert.InDelta(t, 2000.0, iv.ElapsedIn(Unit(42)), 1e-9)
	assert.Contains(t, diag.String(), "Invalid UNIT override 42")
	assert.Contains(t, diag.String(), "(interval_test.go:")
}

func TestIntervalInvalidClockFallsBackToRealtime(t *testing.T) {
	tm, s, diag := newTestTimer(t, DefaultConfig(), ts(1, 0))
	iv := tm.NewInterval("bad clock", ClockSource(99), Seconds)

	require.NoError(t, iv.Start())
	assert.Equal(t, []ClockSource{Realtime}, s.calls)
	assert.Equal(t, ClockSource(99), iv.Clock(), "configured clock is not rewritten")
	assert.Contains(t, diag.String(), "Invalid CLOCK value 99, using realtime")
}

func TestIntervalInvalidConfiguredUnit(t *testing.T) {
	tm, _, diag := newTestTimer(t, DefaultConfig(), ts(0, 0), ts(3, 0))
	iv := tm.NewInterval("bad unit", Monotonic, Unit(5))
	require.NoError(t, iv.Start())
	require.NoError(t, iv.Stop())

	assert.InDelta(t, 3.0, iv.Elapsed(), 1e-12)
	assert.Equal(t, "s", tm.FormatUnit(iv.Unit()))
	assert.Contains(t, diag.String(), "Invalid UNIT value 5, using seconds (s)")
}

func TestVerbosityLevels(t *testing.T) {
	t.Run("off", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.Verbosity = VerbosityOff
		tm, _, diag := newTestTimer(t, cfg)
		tm.FormatUnit(Unit(9))
		assert.Empty(t, diag.String())
	})

	t.Run("debug", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.Verbosity = VerbosityDebug
		tm, _, diag := newTestTimer(t, cfg, ts(9, 0))
		iv := tm.NewDefaultInterval("traced")
		require.NoError(t, iv.Stop())

		out := diag.String()
		assert.Contains(t, out, `created interval "traced"`)
		assert.Contains(t, out, "invalid transition from created to stopped")
		assert.Contains(t, out, `stop "traced" at 9.000000000`)
	})
}

func TestValidateTransition(t *testing.T) {
	tests := []struct {
		name    string
		from    State
		to      State
		wantErr bool
	}{
		{"Created to Started", StateCreated, StateStarted, false},
		{"Started to Started", StateStarted, StateStarted, false},
		{"Started to Stopped", StateStarted, StateStopped, false},
		{"Stopped to Started", StateStopped, StateStarted, false},
		{"Created to Stopped", StateCreated, StateStopped, true},
		{"Stopped to Stopped", StateStopped, StateStopped, true},
		{"Unknown source", State("paused"), StateStarted, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateTransition(tt.from, tt.to)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateTransition(%v, %v) error = %v, wantErr %v",
					tt.from, tt.to, err, tt.wantErr)
			}
		})
	}
}

func TestZeroValueIntervalUsesDefaults(t *testing.T) {
	var iv Interval
	assert.Equal(t, StateCreated, iv.State())
	assert.Equal(t, Realtime, iv.Clock())
	assert.Equal(t, Seconds, iv.Unit())

	require.NoError(t, iv.Start())
	require.NoError(t, iv.Stop())
	assert.Equal(t, StateStopped, iv.State())
	assert.GreaterOrEqual(t, iv.Elapsed(), 0.0)

	var buf bytes.Buffer
	require.NoError(t, Report(&buf, []*Interval{&iv}))
	assert.Contains(t, buf.String(), ": ")
	assert.Contains(t, buf.String(), " s\n")
}
