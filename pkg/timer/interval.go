package timer

import (
	"fmt"
	"sync"
)

// Interval is a named measurement between a start and a stop timestamp.
//
// Stop does not require a prior Start unless the Timer is strict: a stop
// alone measures from the zero timestamp, which is meaningless but defined.
//
// Intervals normally come from Timer.NewInterval. The zero value is a
// realtime interval in seconds that uses DefaultConfig.
type Interval struct {
	name  string
	clock ClockSource
	unit  Unit
	start Timestamp
	stop  Timestamp
	state State
	owner *Timer
}

var (
	defaultTimerOnce sync.Once
	defaultTimer     *Timer
)

// timer returns the Timer that created iv, or a shared DefaultConfig Timer
// for zero value intervals
func (iv *Interval) timer() *Timer {
	if iv.owner != nil {
		return iv.owner
	}
	defaultTimerOnce.Do(func() {
		defaultTimer = New(DefaultConfig())
	})
	return defaultTimer
}

// State returns the lifecycle state. The zero value reads as created.
func (iv *Interval) State() State {
	if iv.state == "" {
		return StateCreated
	}
	return iv.state
}

// Name returns the display label
func (iv *Interval) Name() string { return iv.name }

// Clock returns the clock source chosen at creation
func (iv *Interval) Clock() ClockSource { return iv.clock }

// Unit returns the default reporting unit chosen at creation
func (iv *Interval) Unit() Unit { return iv.unit }

// StartTimestamp returns the raw start sample
func (iv *Interval) StartTimestamp() Timestamp { return iv.start }

// StopTimestamp returns the raw stop sample
func (iv *Interval) StopTimestamp() Timestamp { return iv.stop }


// Start records the start timestamp. Calling it again restarts the interval.
func (iv *Interval) Start() error {
	ts, err := iv.sample("start", StateStarted)
	if err != nil {
		return err
	}
	iv.start = ts
	iv.state = StateStarted
	return nil
}

// Stop records the stop timestamp
func (iv *Interval) Stop() error {
	ts, err := iv.sample("stop", StateStopped)
	if err != nil {
		return err
	}
	iv.stop = ts
	iv.state = StateStopped
	return nil
}

// sample reads the interval's clock on behalf of op. Nothing is mutated here
// so a failed read leaves the interval untouched.
func (iv *Interval) sample(op string, to State) (Timestamp, error) {
	owner := iv.timer()
	log := owner.log
	from := iv.State()
	if err := ValidateTransition(from, to); err != nil {
		if owner.cfg.StrictOrder {
			serr := &StateError{Op: op, Interval: iv.name, From: from, To: to}
			log.ErrorDepth(2, serr.Error())
			return Timestamp{}, serr
		}
		log.DebugDepth(2, fmt.Sprintf("%s %q: %v", op, iv.name, err))
	}

	clock := owner.resolveClock(iv.clock)
	ts, err := owner.sampler.Sample(clock)
	if err != nil {
		log.ErrorDepth(2, fmt.Sprintf("Failed to get %s time!", op), map[string]interface{}{
			"interval": iv.name,
			"clock":    clock.String(),
			"error":    err.Error(),
		})
		return Timestamp{}, &ClockError{Op: op, Interval: iv.name, Clock: clock, Err: err}
	}

	log.DebugDepth(2, fmt.Sprintf("%s %q at %s", op, iv.name, ts), map[string]interface{}{
		"clock": clock.String(),
	})
	return ts, nil
}

// Diff returns stop - start as a normalized timestamp
func (iv *Interval) Diff() Timestamp {
	return DiffTimestamps(iv.stop, iv.start)
}

// Elapsed returns stop - start in the interval's own unit
func (iv *Interval) Elapsed() float64 {
	return iv.elapsed(iv.unit)
}

// ElapsedIn returns stop - start in u. An unknown u is reported and the
// interval's own unit is used instead.
func (iv *Interval) ElapsedIn(u Unit) float64 {
	if !u.Valid() {
		iv.timer().log.ErrorDepth(1, fmt.Sprintf("Invalid UNIT override %d for %q, using %s",
			int(u), iv.name, iv.unit))
		u = iv.unit
	}
	return iv.elapsed(u)
}

func (iv *Interval) elapsed(u Unit) float64 {
	log := iv.timer().log
	if iv.State() != StateStopped {
		log.DebugDepth(2, fmt.Sprintf("reading %q in state %s", iv.name, iv.State()))
	}
	v, ok := Convert(iv.Diff(), u)
	if !ok {
		log.ErrorDepth(2, fmt.Sprintf("Invalid UNIT value %d, using seconds (s)", int(u)))
	}
	return v
}
