package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

// NewRootCmd creates the root command for dirschema.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dirschema",
		Short: "Print directory trees and extract JSON schemas",
		Long: `dirschema bundles two project utilities.

  tree    writes an indented listing of a directory, skipping directories
          whose names contain an excluded pattern
  schema  replaces every value of a JSON document with a type placeholder
          and writes the resulting structural template

Settings come from built-in defaults, then the configuration file
(see 'dirschema init'), then command-line flags. A .env file in the
current directory is loaded at start-up.`,
		Version:       getVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			return loadDotEnv()
		},
	}

	// Global flags that apply to all commands
	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")
	cmd.PersistentFlags().StringP("config", "c", "",
		"Configuration file path (default: $DIRSCHEMA_CONFIG, ./.dirschema, XDG config or ~/.dirschema)")
	cmd.PersistentFlags().Bool("log-json", false, "Write log lines as JSON")

	// Add subcommands
	cmd.AddCommand(NewTreeCmd())
	cmd.AddCommand(NewSchemaCmd())
	cmd.AddCommand(NewHistoryCmd())
	cmd.AddCommand(NewInitCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// loadDotEnv loads ./.env into the environment when present.
// Variables already set are left untouched.
func loadDotEnv() error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to load .env: %w", err)
	}
	return nil
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
