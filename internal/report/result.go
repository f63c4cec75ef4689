package report

import (
	"time"

	"github.com/google/uuid"

	"github.com/psantana5/ivtimer/pkg/timer"
)

// Result is one interval frozen for structured output
type Result struct {
	Name           string          `json:"name" yaml:"name"`
	Clock          string          `json:"clock" yaml:"clock"`
	Unit           string          `json:"unit" yaml:"unit"`
	Elapsed        float64         `json:"elapsed" yaml:"elapsed"`
	ElapsedSeconds float64         `json:"elapsed_seconds" yaml:"elapsed_seconds"`
	State          timer.State     `json:"state" yaml:"state"`
	Start          timer.Timestamp `json:"start" yaml:"start"`
	Stop           timer.Timestamp `json:"stop" yaml:"stop"`
}

// NewResult reads iv once. Elapsed is in the interval's own unit.
func NewResult(iv *timer.Interval) Result {
	secs, _ := timer.Convert(iv.Diff(), timer.Seconds)
	return Result{
		Name:           iv.Name(),
		Clock:          iv.Clock().String(),
		Unit:           iv.Unit().String(),
		Elapsed:        iv.Elapsed(),
		ElapsedSeconds: secs,
		State:          iv.State(),
		Start:          iv.StartTimestamp(),
		Stop:           iv.StopTimestamp(),
	}
}

// Snapshot groups the results of one report run
type Snapshot struct {
	RunID       string    `json:"run_id" yaml:"run_id"`
	GeneratedAt time.Time `json:"generated_at" yaml:"generated_at"`
	Intervals   []Result  `json:"intervals" yaml:"intervals"`
}

// NewSnapshot captures intervals in order under a fresh run ID
func NewSnapshot(intervals []*timer.Interval) *Snapshot {
	s := &Snapshot{
		RunID:       uuid.NewString(),
		GeneratedAt: time.Now().UTC(),
		Intervals:   make([]Result, 0, len(intervals)),
	}
	for _, iv := range intervals {
		s.Intervals = append(s.Intervals, NewResult(iv))
	}
	return s
}
