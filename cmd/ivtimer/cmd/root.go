package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/psantana5/ivtimer/internal/config"
	"github.com/psantana5/ivtimer/internal/report"
	"github.com/psantana5/ivtimer/pkg/timer"
)

var (
	cfgFile string
	cfg     *config.Config
)

// flagKeys maps persistent flags to their config keys
var flagKeys = map[string]string{
	"verbosity":  "verbosity",
	"unit":       "unit",
	"clock":      "clock",
	"backend":    "backend",
	"output":     "output",
	"comment":    "comment",
	"strict":     "strict",
	"log-format": "log_format",
}

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "ivtimer",
	Short: "Measure elapsed time between interval start and stop",
	Long: `ivtimer samples a chosen system clock at the start and stop of named
intervals and reports the elapsed time in seconds, milliseconds, microseconds
or nanoseconds.

Settings come from built-in defaults, a YAML config file, IVTIMER_*
environment variables and flags, each overriding the previous one.`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: loadConfig,
}

// exitError carries a child process exit status up to main
type exitError struct {
	code   int
	signal string
}

func (e *exitError) Error() string {
	if e.signal != "" {
		return fmt.Sprintf("command killed by %s", e.signal)
	}
	return fmt.Sprintf("command exited with status %d", e.code)
}

// Execute runs the root command and returns the process exit code
func Execute() int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err := rootCmd.ExecuteContext(ctx)
	if err == nil {
		return 0
	}

	var exitErr *exitError
	if errors.As(err, &exitErr) {
		return exitErr.code
	}
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	return 1
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "config file (default is $HOME/.ivtimer/config.yaml)")
	flags.String("verbosity", "errors", "diagnostics: off, errors or debug")
	flags.String("unit", "seconds", "default unit: s, ms, us or ns")
	flags.String("clock", "monotonic", "default clock source (see 'ivtimer clocks')")
	flags.String("backend", string(timer.BackendSystem), "clock backend: system or portable")
	flags.StringP("output", "o", string(report.FormatPlain), "output format: plain, csv, table, json, yaml or prometheus")
	flags.String("comment", "#", "comment marker for the CSV header")
	flags.Bool("strict", false, "reject start/stop calls outside the interval lifecycle")
	flags.String("log-format", "text", "diagnostic format: text or json")
}

// loadConfig resolves the effective configuration before any subcommand runs
func loadConfig(cmd *cobra.Command, _ []string) error {
	v := viper.New()
	for flag, key := range flagKeys {
		if err := v.BindPFlag(key, cmd.Root().PersistentFlags().Lookup(flag)); err != nil {
			return fmt.Errorf("bind flag %s: %w", flag, err)
		}
	}

	c, err := config.Load(v, cfgFile)
	if err != nil {
		return err
	}
	cfg = c
	return nil
}

// newTimer builds a timer from the effective configuration. Diagnostics go
// to the command's error stream.
func newTimer(cmd *cobra.Command) (*timer.Timer, error) {
	tc, err := cfg.Timer()
	if err != nil {
		return nil, err
	}
	return timer.New(tc, timer.WithOutput(cmd.ErrOrStderr())), nil
}

// outputFormat returns the configured report format
func outputFormat() (report.Format, error) {
	return report.ParseFormat(cfg.Output)
}
