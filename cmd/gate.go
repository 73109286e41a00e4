package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/initializ/preflight/config"
	"github.com/initializ/preflight/internal/logging"
	"github.com/initializ/preflight/internal/tui"
	"github.com/initializ/preflight/pipeline"
	"github.com/initializ/preflight/runtime"
	"github.com/spf13/cobra"
)

func runGate(cmd *cobra.Command, args []string) error {
	if err := logging.Setup(logFormat, verbose); err != nil {
		return err
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	stages := cfg.Pipeline()
	slog.Debug("pipeline configured", "stages", len(stages))

	runner := pipeline.NewRunner(runtime.NewSubprocessExecutor())
	color := tui.IsTerminal(os.Stderr)
	runner.Announce = func(index, total int, stage pipeline.Stage) {
		fmt.Fprintln(os.Stderr, tui.StageBanner(index, total, stage.Name, color))
		slog.Debug("stage starting", "stage", stage.Name, "command", strings.Join(stage.Command, " "))
	}

	// An interrupt kills the in-flight stage and the pipeline as a whole;
	// partial runs are never resumed.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	outcome, err := runner.Run(ctx, stages)
	if err != nil {
		if outcome.Failed {
			slog.Error("gate failed", "stage", outcome.FailedStage, "exit", outcome.ExitCode)
		}
		return err
	}

	slog.Debug("all stages passed", "stages", len(stages))
	return nil
}

// loadConfig reads the configured pipeline file. A missing default file
// means the built-in gate; a missing explicit --config path is an error.
func loadConfig() (*config.Config, error) {
	if _, err := os.Stat(cfgFile); err != nil {
		if os.IsNotExist(err) && cfgFile == config.DefaultFile {
			return config.Default(), nil
		}
		return nil, fmt.Errorf("checking config %s: %w", cfgFile, err)
	}
	return config.Load(cfgFile)
}
