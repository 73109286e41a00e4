// Package cmd implements the preflight CLI.
package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/initializ/preflight/config"
	"github.com/initializ/preflight/internal/logging"
	"github.com/initializ/preflight/pipeline"
	"github.com/spf13/cobra"
)

var (
	cfgFile   string
	verbose   bool
	logFormat string
)

var rootCmd = &cobra.Command{
	Use:   "preflight",
	Short: "preflight — run the pre-submission verification gate",
	Long: "Preflight runs the local pre-submission gate: format check, lint check\n" +
		"and the full test suite, in that order, stopping at the first failure.\n" +
		"Its exit status is the first failing stage's own exit status.",
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runGate,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", config.DefaultFile, "pipeline config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", logging.FormatTint, "log format: tint, text or json")
}

// SetVersionInfo sets the version and commit for display.
func SetVersionInfo(version, commit string) {
	rootCmd.Version = version
	rootCmd.SetVersionTemplate(fmt.Sprintf("preflight %s (commit: %s)\n", version, commit))
}

// Execute runs the root command and returns the process exit status: zero if
// and only if every stage passed, otherwise the first failing stage's status.
func Execute() int {
	if err := rootCmd.Execute(); err != nil {
		var stageErr *pipeline.StageError
		if errors.As(err, &stageErr) {
			return stageErr.ExitCode
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}
