package cmd

import (
	"github.com/spf13/cobra"

	"github.com/psantana5/ivtimer/internal/observe"
	"github.com/psantana5/ivtimer/internal/report"
	"github.com/psantana5/ivtimer/pkg/timer"
)

var (
	runName string
	workDir string
)

var runCmd = &cobra.Command{
	Use:   "run [flags] -- <command> [args...]",
	Short: "Time a command from spawn to exit",
	Long: `Run starts an interval, spawns the command in its own process group,
waits for it to exit and stops the interval. The report is written after the
command finishes and ivtimer exits with the command's exit status.

Example:
  ivtimer run -- sleep 2
  ivtimer run --name build --unit ms -- make -j8
  ivtimer run --clock process_cpu_time -o json -- ./bench.sh`,
	Args: cobra.MinimumNArgs(1),
	RunE: runCommand,
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringVar(&runName, "name", "", "interval name (default is the command)")
	runCmd.Flags().StringVar(&workDir, "workdir", "", "working directory for the command")
}

func runCommand(cmd *cobra.Command, args []string) error {
	tm, err := newTimer(cmd)
	if err != nil {
		return err
	}
	format, err := outputFormat()
	if err != nil {
		return err
	}

	name := runName
	if name == "" {
		name = args[0]
	}
	iv := tm.NewDefaultInterval(name)

	res, err := observe.Run(cmd.Context(), iv, observe.Command{
		Name:   args[0],
		Args:   args[1:],
		Dir:    workDir,
		Stdin:  cmd.InOrStdin(),
		Stdout: cmd.OutOrStdout(),
		Stderr: cmd.ErrOrStderr(),
	})
	if err != nil {
		return err
	}

	if err := report.Write(cmd.OutOrStdout(), format, cfg.Comment, []*timer.Interval{iv}); err != nil {
		return err
	}

	switch {
	case res.Signal != "":
		tm.Logger().Warn("command killed by signal", map[string]interface{}{"pid": res.PID, "signal": res.Signal})
		return &exitError{code: res.ShellExitCode(), signal: res.Signal}
	case res.ExitCode != 0:
		return &exitError{code: res.ExitCode}
	}
	return nil
}
