package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nao1215/dirschema/internal/history"
	"github.com/nao1215/dirschema/internal/model"
	"github.com/nao1215/dirschema/internal/report"
)

// defaultHistoryLimit is the number of runs shown when --limit is not set.
const defaultHistoryLimit = 20

// NewHistoryCmd creates the history command.
func NewHistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recorded tree and schema runs",
		Long: `History lists the runs recorded with --history (or history.enabled in
the configuration file), newest first. Each run is compared with the previous
run of the same tool and output: "new" is the first run, "changed" means the
output differs, "unchanged" means it is identical.

Examples:
  # Show the last 20 runs
  dirschema history

  # Show schema runs only, as JSON
  dirschema history -t schema -j

  # Show every run writing directory_structure.txt as Markdown
  dirschema history --output-path directory_structure.txt -n 0 -m`,
		Args: cobra.NoArgs,
		RunE: runHistoryCmd,
	}

	cmd.Flags().StringP("tool", "t", "", "Only show runs of this tool (tree or schema)")
	cmd.Flags().String("output-path", "", "Only show runs writing this output path")
	cmd.Flags().IntP("limit", "n", defaultHistoryLimit, "Maximum number of runs (0 for all)")
	cmd.Flags().BoolP("json", "j", false, "Print the history as JSON")
	cmd.Flags().BoolP("markdown", "m", false, "Print the history as Markdown")
	cmd.MarkFlagsMutuallyExclusive("json", "markdown")

	return cmd
}

// runHistoryCmd executes the history command.
func runHistoryCmd(cmd *cobra.Command, _ []string) error {
	cfg, logger, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	filter, err := historyFilter(cmd)
	if err != nil {
		return err
	}

	entries := []model.HistoryEntry{}
	store, err := history.Open(cfg.History.Dir, history.Options{EnableWAL: true})
	switch {
	case errors.Is(err, history.ErrNotFound):
		logger.Debug("no history database", "dir", cfg.History.Dir)
	case err != nil:
		return fmt.Errorf("failed to open history database: %w", err)
	default:
		defer store.Close()
		if entries, err = store.Entries(cmd.Context(), filter); err != nil {
			return fmt.Errorf("failed to read history: %w", err)
		}
	}

	writer, err := historyWriter(cmd)
	if err != nil {
		return err
	}
	if _, err := writer.WriteHistory(entries); err != nil {
		return fmt.Errorf("failed to write history: %w", err)
	}
	return nil
}

// historyFilter builds the query filter from the command flags.
func historyFilter(cmd *cobra.Command) (history.Filter, error) {
	var filter history.Filter

	tool, err := cmd.Flags().GetString("tool")
	if err != nil {
		return filter, err
	}
	switch model.Tool(tool) {
	case "", model.ToolTree, model.ToolSchema:
		filter.Tool = model.Tool(tool)
	default:
		return filter, fmt.Errorf("unknown tool %q: must be %q or %q", tool, model.ToolTree, model.ToolSchema)
	}

	if filter.Output, err = cmd.Flags().GetString("output-path"); err != nil {
		return filter, err
	}
	if filter.Limit, err = cmd.Flags().GetInt("limit"); err != nil {
		return filter, err
	}
	if filter.Limit < 0 {
		return filter, fmt.Errorf("invalid limit %d: must not be negative", filter.Limit)
	}
	return filter, nil
}

// historyWriter selects the output format from the command flags.
func historyWriter(cmd *cobra.Command) (report.HistoryWriter, error) {
	asJSON, err := cmd.Flags().GetBool("json")
	if err != nil {
		return nil, err
	}
	asMarkdown, err := cmd.Flags().GetBool("markdown")
	if err != nil {
		return nil, err
	}

	out := cmd.OutOrStdout()
	switch {
	case asJSON:
		return report.NewJSONWriter(out, report.WithPrettyPrint()), nil
	case asMarkdown:
		return report.NewMarkdownWriter(out), nil
	default:
		return report.NewTextWriter(out), nil
	}
}
