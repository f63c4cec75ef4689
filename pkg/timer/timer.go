// Package timer measures named intervals against a selectable system clock
// and reports the elapsed time in a chosen unit.
//
// A Timer carries the configuration that the intervals it creates share:
// diagnostic verbosity, the default unit and clock, and the sampling
// backend. Intervals are plain values owned by the caller and must not be
// started or stopped from several goroutines at once.
package timer

import (
	"fmt"
	"io"
	"strings"

	"github.com/psantana5/ivtimer/pkg/logging"
)

// Verbosity controls which diagnostics are written
type Verbosity int

const (
	VerbosityOff    Verbosity = iota // nothing
	VerbosityErrors                  // invalid values and failed clock reads
	VerbosityDebug                   // errors plus lifecycle tracing
)

func (v Verbosity) String() string {
	switch v {
	case VerbosityOff:
		return "off"
	case VerbosityErrors:
		return "errors"
	case VerbosityDebug:
		return "debug"
	default:
		return fmt.Sprintf("verbosity(%d)", int(v))
	}
}

// Level maps verbosity onto a logger level
func (v Verbosity) Level() logging.Level {
	switch v {
	case VerbosityOff:
		return logging.OFF
	case VerbosityDebug:
		return logging.DEBUG
	default:
		return logging.ERROR
	}
}

// ParseVerbosity accepts names ("off", "errors", "debug") and the numeric
// levels 0, 1 and 2.
func ParseVerbosity(s string) (Verbosity, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "off", "0", "none", "quiet":
		return VerbosityOff, nil
	case "errors", "error", "1", "":
		return VerbosityErrors, nil
	case "debug", "2":
		return VerbosityDebug, nil
	default:
		return VerbosityErrors, fmt.Errorf("unknown verbosity %q", s)
	}
}

// Config is shared by every interval a Timer creates
type Config struct {
	Verbosity    Verbosity
	DefaultUnit  Unit
	DefaultClock ClockSource
	Backend      Backend
	// StrictOrder rejects stop before start with a StateError instead of
	// measuring from the zero timestamp.
	StrictOrder bool
	// JSONLogs switches diagnostics to one JSON object per line.
	JSONLogs bool
}

// DefaultConfig returns errors-only diagnostics, seconds, the monotonic clock
// and the system backend.
func DefaultConfig() Config {
	return Config{
		Verbosity:    VerbosityErrors,
		DefaultUnit:  Seconds,
		DefaultClock: Monotonic,
		Backend:      BackendSystem,
	}
}

// Timer creates intervals and owns their diagnostics and clock sampler
type Timer struct {
	cfg     Config
	log     *logging.Logger
	sampler Sampler
}

// Option customizes a Timer
type Option func(*Timer)

// WithLogger replaces the diagnostics logger
func WithLogger(l *logging.Logger) Option {
	return func(t *Timer) {
		t.log = l
	}
}

// WithOutput sends diagnostics to w instead of stderr
func WithOutput(w io.Writer) Option {
	return func(t *Timer) {
		t.log.SetOutput(w)
	}
}

// WithSampler replaces the clock sampler selected by Config.Backend
func WithSampler(s Sampler) Option {
	return func(t *Timer) {
		t.sampler = s
	}
}

// New builds a Timer from cfg
func New(cfg Config, opts ...Option) *Timer {
	log := logging.NewLogger(cfg.Verbosity.Level(), cfg.JSONLogs)
	log.SetComponent("Timer:")

	t := &Timer{
		cfg:     cfg,
		log:     log,
		sampler: NewSampler(cfg.Backend),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Config returns the configuration the Timer was built with
func (t *Timer) Config() Config {
	return t.cfg
}

// Sampler returns the clock sampler in use
func (t *Timer) Sampler() Sampler {
	return t.sampler
}

// Logger returns the diagnostics logger
func (t *Timer) Logger() *logging.Logger {
	return t.log
}

// NewInterval creates an interval bound to clock and reporting in unit.
// Both are fixed for the life of the interval.
func (t *Timer) NewInterval(name string, clock ClockSource, unit Unit) *Interval {
	t.log.DebugDepth(1, fmt.Sprintf("created interval %q", name), map[string]interface{}{
		"clock": clock.String(),
		"unit":  unit.Name(),
	})
	return &Interval{
		name:  name,
		clock: clock,
		unit:  unit,
		state: StateCreated,
		owner: t,
	}
}

// NewDefaultInterval creates an interval with the configured default clock
// and unit.
func (t *Timer) NewDefaultInterval(name string) *Interval {
	return t.NewInterval(name, t.cfg.DefaultClock, t.cfg.DefaultUnit)
}

// FormatUnit returns the abbreviation for u. Unknown units are reported and
// rendered as seconds.
func (t *Timer) FormatUnit(u Unit) string {
	if !u.Valid() {
		t.log.ErrorDepth(1, fmt.Sprintf("Invalid UNIT value %d, using seconds (s)", int(u)))
	}
	return u.String()
}

// resolveClock falls back to Realtime for unknown clock sources
func (t *Timer) resolveClock(c ClockSource) ClockSource {
	if c.Valid() {
		return c
	}
	t.log.ErrorDepth(3, fmt.Sprintf("Invalid CLOCK value %d, using realtime", int(c)))
	return Realtime
}
