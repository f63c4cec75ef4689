package cmd

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/psantana5/ivtimer/internal/report"
	"github.com/psantana5/ivtimer/pkg/timer"
)

var demoSleeps []time.Duration

var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Time a series of sleeps and report them",
	Long: `Demo creates one interval per sleep duration, named "Test 1", "Test 2"
and so on, using the default clock and unit. Each interval is started, the
command sleeps, and the interval is stopped. The raw timestamps and the
elapsed value are printed next to the expected duration.

With the plain output format the final report is printed both as plain lines
and as CSV.

Example:
  ivtimer demo
  ivtimer demo --unit ms --sleep 250ms,500ms
  ivtimer demo --clock boot_time -o table`,
	Args: cobra.NoArgs,
	RunE: runDemo,
}

func init() {
	rootCmd.AddCommand(demoCmd)

	demoCmd.Flags().DurationSliceVar(&demoSleeps, "sleep",
		[]time.Duration{time.Second, 1500 * time.Millisecond, 2756 * time.Millisecond},
		"sleep durations, one interval each")
}

func runDemo(cmd *cobra.Command, _ []string) error {
	tm, err := newTimer(cmd)
	if err != nil {
		return err
	}
	format, err := outputFormat()
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	out := cmd.OutOrStdout()
	intervals := make([]*timer.Interval, 0, len(demoSleeps))

	for i, d := range demoSleeps {
		iv := tm.NewDefaultInterval(fmt.Sprintf("Test %d", i+1))
		intervals = append(intervals, iv)
		fmt.Fprintf(out, "Running '%s'\n", iv.Name())

		if err := iv.Start(); err != nil {
			return err
		}
		select {
		case <-time.After(d):
		case <-ctx.Done():
			return ctx.Err()
		}
		if err := iv.Stop(); err != nil {
			return err
		}

		fmt.Fprintf(out, "RAW:\n START: %s\n END: %s\n", iv.StartTimestamp(), iv.StopTimestamp())
		fmt.Fprintf(out, "OUT: %.9f %s\n", iv.Elapsed(), tm.FormatUnit(iv.Unit()))
		fmt.Fprintf(out, "EXPECTED: %s sec\n", strconv.FormatFloat(d.Seconds(), 'f', -1, 64))
	}

	fmt.Fprintln(out, "FINAL TEST")
	if format != report.FormatPlain {
		return report.Write(out, format, cfg.Comment, intervals)
	}
	if err := timer.Report(out, intervals); err != nil {
		return err
	}
	return timer.ReportCSV(out, cfg.Comment, intervals)
}
