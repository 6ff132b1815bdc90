package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/nao1215/dirschema/internal/config"
	"github.com/nao1215/dirschema/internal/history"
	"github.com/nao1215/dirschema/internal/log"
	"github.com/nao1215/dirschema/internal/model"
)

// getVerboseFlag retrieves the verbose flag from the command or its parent.
func getVerboseFlag(cmd *cobra.Command) bool {
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		verbose, err = cmd.Root().PersistentFlags().GetBool("verbose")
		if err != nil {
			return false
		}
	}
	return verbose
}

// getStringFlag retrieves a string flag from the command or its parent.
func getStringFlag(cmd *cobra.Command, name string) string {
	value, err := cmd.Flags().GetString(name)
	if err != nil {
		value, err = cmd.Root().PersistentFlags().GetString(name)
		if err != nil {
			return ""
		}
	}
	return value
}

// loadConfig builds the configuration from defaults and the configuration
// file, then creates the logger. Command flags are applied by the caller.
//
// A path given with --config or $DIRSCHEMA_CONFIG must exist. Without one,
// the usual locations are searched and a missing file is fine.
func loadConfig(cmd *cobra.Command) (*config.Config, *slog.Logger, error) {
	cfg := config.NewConfig()

	explicitPath := getStringFlag(cmd, "config")
	if explicitPath == "" {
		explicitPath = os.Getenv(config.EnvConfigPath)
	}

	configPath := config.FindConfigFile(explicitPath)
	if configPath == "" && explicitPath != "" {
		return nil, nil, fmt.Errorf("%w: %s", config.ErrConfigNotFound, explicitPath)
	}

	if configPath != "" {
		file, err := config.LoadConfigFile(configPath)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
		file.Apply(cfg)
		cfg.ConfigFilePath = configPath
	}

	if getVerboseFlag(cmd) {
		cfg.Verbose = true
	}

	logger := newLogger(cmd, cfg.Verbose)
	if cfg.ConfigFilePath != "" {
		logger.Debug("using configuration file", "path", cfg.ConfigFilePath)
	} else {
		logger.Debug("no configuration file found, using defaults")
	}
	return cfg, logger, nil
}

// newLogger creates the command logger writing to the command's stderr.
func newLogger(cmd *cobra.Command, verbose bool) *slog.Logger {
	jsonLogs, err := cmd.Flags().GetBool("log-json")
	if err != nil {
		jsonLogs, _ = cmd.Root().PersistentFlags().GetBool("log-json") //nolint:errcheck // Missing flag means text logs
	}
	if jsonLogs {
		return log.NewJSONLogger(cmd.ErrOrStderr(), verbose)
	}
	return log.NewLogger(cmd.ErrOrStderr(), verbose)
}

// recordRuns stores runs in the history database when history is enabled.
// History problems are logged and never fail the command.
func recordRuns(ctx context.Context, cfg *config.Config, logger *slog.Logger, runs ...*model.Run) {
	if !cfg.History.Enabled || len(runs) == 0 {
		return
	}

	store, err := history.Open(cfg.History.Dir, history.DefaultOptions())
	if err != nil {
		logger.Warn("failed to open history database", "dir", cfg.History.Dir, "error", err)
		return
	}
	defer store.Close()

	for _, run := range runs {
		if err := store.RecordOutput(ctx, run); err != nil {
			logger.Warn("failed to record run", "tool", run.Tool, "output", run.Output, "error", err)
			continue
		}
		logger.Debug("recorded run", "id", run.ID, "tool", run.Tool, "status", run.Status)
	}
}
