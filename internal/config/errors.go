package config

import "errors"

// Configuration validation errors.
// These errors are returned by the Validate methods so that callers can use
// errors.Is() for programmatic handling while still printing a readable message.
var (
	// ErrEmptyRoot is returned when the tree printer has no root directory.
	ErrEmptyRoot = errors.New("no root directory specified")

	// ErrEmptyOutput is returned when no output file path is configured.
	ErrEmptyOutput = errors.New("no output file specified")

	// ErrEmptyInput is returned when the schema extractor has no input file.
	ErrEmptyInput = errors.New("no input file specified")

	// ErrUnknownTreeFormat is returned when the tree format is neither text nor markdown.
	ErrUnknownTreeFormat = errors.New("unknown tree format: must be text or markdown")

	// ErrUnknownSchemaFormat is returned when the schema format is neither json nor yaml.
	ErrUnknownSchemaFormat = errors.New("unknown schema format: must be json or yaml")

	// ErrInvalidConcurrency is returned when the batch concurrency is not positive.
	ErrInvalidConcurrency = errors.New("invalid concurrency: must be positive")

	// ErrMissingOutputDir is returned when several schema inputs are given
	// without an output directory to hold the generated files.
	ErrMissingOutputDir = errors.New("multiple inputs require --output-dir")

	// ErrDuplicateOutput is returned when two inputs would write the same
	// schema file, such as a/beff.json and b/beff.json.
	ErrDuplicateOutput = errors.New("inputs map to the same output file")
)
