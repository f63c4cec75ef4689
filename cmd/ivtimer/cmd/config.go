package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Configuration management",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration as YAML",
	Long: `Show prints the configuration after defaults, the config file, IVTIMER_*
environment variables and flags have been applied. The file that was read,
if any, is printed as a leading comment.`,
	Args: cobra.NoArgs,
	RunE: runConfigShow,
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configShowCmd)
}

func runConfigShow(cmd *cobra.Command, _ []string) error {
	if _, err := cfg.Timer(); err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if cfg.Source != "" {
		fmt.Fprintf(out, "# source: %s\n", cfg.Source)
	}
	return cfg.WriteYAML(out)
}
