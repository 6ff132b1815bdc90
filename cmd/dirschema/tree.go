package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/nao1215/dirschema/internal/config"
	"github.com/nao1215/dirschema/internal/history"
	"github.com/nao1215/dirschema/internal/model"
	"github.com/nao1215/dirschema/internal/report"
	"github.com/nao1215/dirschema/internal/tree"
)

// NewTreeCmd creates the tree command.
func NewTreeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tree [root]",
		Short: "Write an indented listing of a directory",
		Long: `Tree walks a directory top-down and writes an indented listing to a file.

Directories whose name contains any excluded pattern are skipped together
with everything below them. Files are never excluded by pattern. The
listing starts with a header naming the root, the generation time and the
excluded patterns.

Examples:
  # List the current directory into directory_structure.txt
  dirschema tree

  # List another directory as Markdown
  dirschema tree ./src -f markdown -o tree.md

  # Replace the default exclusions
  dirschema tree -x node_modules -x dist

  # Also honor the root .gitignore and record the run
  dirschema tree --gitignore --history`,
		Args: cobra.MaximumNArgs(1),
		RunE: runTreeCmd,
	}

	cmd.Flags().StringP("output", "o", config.DefaultTreeOutput,
		"Output file path (replaced if it exists)")
	cmd.Flags().StringArrayP("exclude", "x", nil,
		"Directory name fragment to skip; repeatable, replaces the default set")
	cmd.Flags().StringP("format", "f", config.FormatText,
		"Output format: text or markdown")
	cmd.Flags().Bool("gitignore", false,
		"Also skip paths matched by the root .gitignore")
	cmd.Flags().Bool("history", false,
		"Record this run in the history database")

	return cmd
}

// runTreeCmd executes the tree command.
func runTreeCmd(cmd *cobra.Command, args []string) error {
	cfg, logger, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if err := applyTreeFlags(cmd, args, cfg); err != nil {
		return err
	}
	if err := cfg.Tree.Validate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	run := model.NewRun(model.ToolTree, cfg.Tree.Root, cfg.Tree.Output)
	listing, err := tree.Generate(ctx, cfg.Tree, logger)
	if err != nil {
		run.Status = model.RunFailed
		run.Message = err.Error()
		recordRuns(ctx, cfg, logger, run)
		return err
	}
	run.Source = listing.Root
	// Digest the tree body only; the header holds the generation time.
	run.Digest = history.Digest([]byte(strings.Join(report.TreeLines(listing), "\n")))
	recordRuns(ctx, cfg, logger, run)

	fmt.Fprintf(cmd.OutOrStdout(), "Directory structure has been saved to %s\n", cfg.Tree.Output)
	return nil
}

// applyTreeFlags overrides cfg with the flags the user actually set.
func applyTreeFlags(cmd *cobra.Command, args []string, cfg *config.Config) error {
	flags := cmd.Flags()
	var err error

	if len(args) > 0 {
		cfg.Tree.Root = args[0]
	}
	if flags.Changed("output") {
		if cfg.Tree.Output, err = flags.GetString("output"); err != nil {
			return err
		}
	}
	if flags.Changed("exclude") {
		if cfg.Tree.Exclude, err = flags.GetStringArray("exclude"); err != nil {
			return err
		}
	}
	if flags.Changed("format") {
		if cfg.Tree.Format, err = flags.GetString("format"); err != nil {
			return err
		}
	}
	if flags.Changed("gitignore") {
		if cfg.Tree.RespectGitignore, err = flags.GetBool("gitignore"); err != nil {
			return err
		}
	}
	if flags.Changed("history") {
		if cfg.History.Enabled, err = flags.GetBool("history"); err != nil {
			return err
		}
	}
	return nil
}
