package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/nao1215/dirschema/internal/batch"
	"github.com/nao1215/dirschema/internal/config"
	"github.com/nao1215/dirschema/internal/model"
	"github.com/nao1215/dirschema/internal/schema"
)

// NewSchemaCmd creates the schema command.
func NewSchemaCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "schema [input...]",
		Short: "Extract the structural template of JSON documents",
		Long: `Schema reads a JSON document and writes a copy in which every value is
replaced by a type placeholder: strings become "string", numbers become 0,
booleans become true and null stays null. Every array keeps only the schema
of its first element. Object keys and their order are preserved.

A missing input or invalid JSON is reported on standard output and does not
change the exit status. No output file is written in that case.

With several inputs, each schema is written to the output directory as
<name>_schema.json (or .yaml), and the inputs are processed concurrently.

Examples:
  # Extract ../characters/beff.json into beff_schema.json
  dirschema schema

  # Extract a specific document
  dirschema schema data/agent.json -o agent_schema.json

  # Extract many documents as YAML, four at a time
  dirschema schema characters/*.json -d schemas -f yaml -b 4`,
		Args: cobra.ArbitraryArgs,
		RunE: runSchemaCmd,
	}

	cmd.Flags().StringP("output", "o", config.DefaultSchemaOutput,
		"Output file path for a single input")
	cmd.Flags().StringP("output-dir", "d", "",
		"Directory receiving <name>_schema.<ext> files (required for several inputs)")
	cmd.Flags().StringP("format", "f", config.FormatJSON,
		"Output format: json or yaml")
	cmd.Flags().IntP("batch", "b", config.DefaultConcurrency,
		"Number of inputs processed concurrently")
	cmd.Flags().Bool("history", false,
		"Record each run in the history database")

	return cmd
}

// runSchemaCmd executes the schema command.
func runSchemaCmd(cmd *cobra.Command, args []string) error {
	cfg, logger, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if err := applySchemaFlags(cmd, cfg); err != nil {
		return err
	}

	inputs, err := cfg.Schema.ForInputs(args)
	if err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}
	for _, in := range inputs {
		if err := in.Validate(); err != nil {
			return fmt.Errorf("configuration error: %w", err)
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var results []batch.Result
	if len(inputs) == 1 {
		err := schema.Process(inputs[0])
		results = []batch.Result{{Options: inputs[0], Status: schema.Status(err), Err: err}}
	} else {
		processor := batch.NewProcessor(
			batch.WithConcurrency(cfg.Schema.Concurrency),
			batch.WithLogger(logger),
		)
		results, err = processor.Run(ctx, inputs)
		if err != nil {
			logger.Warn("schema extraction interrupted", "error", err)
		}
	}

	runs := make([]*model.Run, 0, len(results))
	for _, r := range results {
		printSchemaResult(cmd.OutOrStdout(), r)

		run := model.NewRun(model.ToolSchema, r.Options.Input, r.Options.Output)
		run.Status = r.Status
		if r.Err != nil {
			run.Message = r.Err.Error()
		}
		runs = append(runs, run)
	}
	recordRuns(ctx, cfg, logger, runs...)

	return nil
}

// printSchemaResult writes the user-facing message for one input.
func printSchemaResult(w io.Writer, r batch.Result) {
	switch {
	case r.Err == nil:
		fmt.Fprintf(w, "Schema successfully extracted and saved to %s\n", r.Options.Output)
	case errors.Is(r.Err, schema.ErrFileNotFound):
		fmt.Fprintf(w, "Error: Could not find the input file '%s'\n", r.Options.Input)
	case errors.Is(r.Err, schema.ErrDecode):
		fmt.Fprintf(w, "Error: '%s' contains invalid JSON\n", r.Options.Input)
	default:
		fmt.Fprintf(w, "An unexpected error occurred: %v\n", r.Err)
	}
}

// applySchemaFlags overrides cfg with the flags the user actually set.
func applySchemaFlags(cmd *cobra.Command, cfg *config.Config) error {
	flags := cmd.Flags()
	var err error

	if flags.Changed("output") {
		if cfg.Schema.Output, err = flags.GetString("output"); err != nil {
			return err
		}
	}
	if flags.Changed("output-dir") {
		if cfg.Schema.OutputDir, err = flags.GetString("output-dir"); err != nil {
			return err
		}
	}
	if flags.Changed("format") {
		if cfg.Schema.Format, err = flags.GetString("format"); err != nil {
			return err
		}
	}
	if flags.Changed("batch") {
		if cfg.Schema.Concurrency, err = flags.GetInt("batch"); err != nil {
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
