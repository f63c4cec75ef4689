package cmd

import (
	"errors"
	"fmt"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/psantana5/ivtimer/pkg/timer"
)

var clocksCmd = &cobra.Command{
	Use:   "clocks",
	Short: "List clock sources with resolution and a current reading",
	Args:  cobra.NoArgs,
	RunE:  runClocks,
}

func init() {
	rootCmd.AddCommand(clocksCmd)
}

func runClocks(cmd *cobra.Command, _ []string) error {
	tm, err := newTimer(cmd)
	if err != nil {
		return err
	}

	sampler := tm.Sampler()
	resolver, _ := sampler.(timer.Resolver)

	fmt.Fprintf(cmd.OutOrStdout(), "Backend: %s\n", tm.Config().Backend)

	table := tablewriter.NewWriter(cmd.OutOrStdout())
	table.Header("Clock", "Resolution", "Sample", "Default")

	for _, c := range timer.ClockSources() {
		resolution := "-"
		if resolver != nil {
			if d, err := resolver.Resolution(c); err == nil {
				resolution = d.String()
			}
		}

		sample := "-"
		ts, err := sampler.Sample(c)
		switch {
		case err == nil:
			sample = ts.String()
		case errors.Is(err, timer.ErrClockUnsupported):
			sample = "unsupported"
		default:
			sample = "error: " + err.Error()
		}

		def := ""
		if c == tm.Config().DefaultClock {
			def = "*"
		}
		if err := table.Append(c.String(), resolution, sample, def); err != nil {
			return fmt.Errorf("append row %s: %w", c, err)
		}
	}

	return table.Render()
}
