package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
)

// Output formats.
const (
	// FormatText is the plain text tree listing.
	FormatText = "text"

	// FormatMarkdown wraps the tree listing in a Markdown document.
	FormatMarkdown = "markdown"

	// FormatJSON is the pretty-printed JSON schema output.
	FormatJSON = "json"

	// FormatYAML is the YAML schema output.
	FormatYAML = "yaml"
)

// Default configuration values.
// The paths match the locations the tools have always used when run
// without arguments from a project's scripts directory.
const (
	// AppName is the application name used for XDG directory paths.
	AppName = "dirschema"

	// DefaultTreeRoot is the directory the tree printer walks.
	DefaultTreeRoot = "."

	// DefaultTreeOutput is the file the tree listing is written to.
	DefaultTreeOutput = "directory_structure.txt"

	// DefaultSchemaInput is the JSON document the schema extractor reads.
	DefaultSchemaInput = "../characters/beff.json"

	// DefaultSchemaOutput is the file the extracted schema is written to.
	DefaultSchemaOutput = "beff_schema.json"

	// DefaultConcurrency is the number of schema inputs processed at once
	// when several inputs are given.
	DefaultConcurrency = 4

	// SchemaSuffix is appended to an input's base name to build its output name.
	SchemaSuffix = "_schema"
)

// defaultExcludePatterns are the directory name fragments skipped by the tree printer.
var defaultExcludePatterns = []string{
	"node_modules",
	".git",
	".dfx",
	".azle",
	".turbo",
	"docs",
	".vscode",
}

// DefaultExcludePatterns returns a fresh copy of the default exclusion set.
func DefaultExcludePatterns() []string {
	patterns := make([]string, len(defaultExcludePatterns))
	copy(patterns, defaultExcludePatterns)
	return patterns
}

// TreeOptions configures a single tree printer run.
type TreeOptions struct {
	// Root is the directory to walk.
	Root string

	// Output is the file the listing is written to. It is overwritten.
	Output string

	// Exclude holds substrings; any directory whose name contains one of
	// them is pruned together with its subtree.
	Exclude []string

	// Format is FormatText or FormatMarkdown.
	Format string

	// RespectGitignore additionally prunes paths matched by the root .gitignore.
	RespectGitignore bool
}

// Validate checks the tree options and returns the first problem found.
func (o TreeOptions) Validate() error {
	if strings.TrimSpace(o.Root) == "" {
		return ErrEmptyRoot
	}
	if strings.TrimSpace(o.Output) == "" {
		return ErrEmptyOutput
	}
	switch o.Format {
	case FormatText, FormatMarkdown:
	default:
		return ErrUnknownTreeFormat
	}
	return nil
}

// SchemaOptions configures the schema extractor.
type SchemaOptions struct {
	// Input is the JSON document to read.
	Input string

	// Output is the file the schema is written to.
	// Ignored when OutputDir is set.
	Output string

	// OutputDir, when set, receives one "<stem>_schema.<ext>" file per input.
	OutputDir string

	// Format is FormatJSON or FormatYAML.
	Format string

	// Concurrency bounds the number of inputs processed at the same time.
	Concurrency int
}

// Validate checks the schema options and returns the first problem found.
func (o SchemaOptions) Validate() error {
	if strings.TrimSpace(o.Input) == "" {
		return ErrEmptyInput
	}
	if strings.TrimSpace(o.Output) == "" && strings.TrimSpace(o.OutputDir) == "" {
		return ErrEmptyOutput
	}
	switch o.Format {
	case FormatJSON, FormatYAML:
	default:
		return ErrUnknownSchemaFormat
	}
	if o.Concurrency <= 0 {
		return ErrInvalidConcurrency
	}
	return nil
}

// Extension returns the file extension matching the schema format.
func (o SchemaOptions) Extension() string {
	if o.Format == FormatYAML {
		return ".yaml"
	}
	return ".json"
}

// ForInputs expands the options into one record per input file.
//
// No inputs keeps the configured Input. A single input keeps the configured
// Output unless OutputDir is set. Several inputs require OutputDir, and each
// output is named after its input: "beff.json" becomes "beff_schema.json".
// Two inputs whose outputs collide return ErrDuplicateOutput.
func (o SchemaOptions) ForInputs(inputs []string) ([]SchemaOptions, error) {
	if len(inputs) == 0 {
		inputs = []string{o.Input}
	}
	if len(inputs) > 1 && strings.TrimSpace(o.OutputDir) == "" {
		return nil, ErrMissingOutputDir
	}

	result := make([]SchemaOptions, 0, len(inputs))
	owners := make(map[string]string, len(inputs))
	for _, input := range inputs {
		opt := o
		opt.Input = input
		if opt.OutputDir != "" {
			opt.Output = filepath.Join(opt.OutputDir, OutputName(input, o.Extension()))
		}
		key := filepath.Clean(opt.Output)
		if prev, ok := owners[key]; ok {
			return nil, fmt.Errorf("%w: %s and %s both write %s", ErrDuplicateOutput, prev, input, opt.Output)
		}
		owners[key] = input
		result = append(result, opt)
	}
	return result, nil
}

// OutputName derives the schema file name for an input path.
func OutputName(input, ext string) string {
	base := filepath.Base(input)
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	return stem + SchemaSuffix + ext
}

// HistoryOptions configures the optional run history.
type HistoryOptions struct {
	// Enabled records every tree and schema run in the history database.
	Enabled bool

	// Dir is the directory holding the history database.
	Dir string
}

// Config holds every option dirschema understands.
// It is populated from defaults, then the configuration file, then CLI flags.
type Config struct {
	Tree    TreeOptions
	Schema  SchemaOptions
	History HistoryOptions

	// Verbose enables debug-level logging.
	Verbose bool

	// ConfigFilePath is the configuration file that was applied, if any.
	ConfigFilePath string
}

// NewConfig creates a new Config with default values.
func NewConfig() *Config {
	return &Config{
		Tree: TreeOptions{
			Root:    DefaultTreeRoot,
			Output:  DefaultTreeOutput,
			Exclude: DefaultExcludePatterns(),
			Format:  FormatText,
		},
		Schema: SchemaOptions{
			Input:       DefaultSchemaInput,
			Output:      DefaultSchemaOutput,
			Format:      FormatJSON,
			Concurrency: DefaultConcurrency,
		},
		History: HistoryOptions{
			Dir: XDGDataDir(),
		},
	}
}

// Validate checks both tool configurations.
func (c *Config) Validate() error {
	if err := c.Tree.Validate(); err != nil {
		return err
	}
	return c.Schema.Validate()
}

// XDGDataDir returns the XDG data directory for dirschema.
// On Linux: ~/.local/share/dirschema
// On macOS: ~/Library/Application Support/dirschema
// On Windows: %LOCALAPPDATA%\dirschema
func XDGDataDir() string {
	return filepath.Join(xdg.DataHome, AppName)
}

// XDGConfigDir returns the XDG config directory for dirschema.
// On Linux: ~/.config/dirschema
// On macOS: ~/Library/Application Support/dirschema
// On Windows: %APPDATA%\dirschema
func XDGConfigDir() string {
	return filepath.Join(xdg.ConfigHome, AppName)
}
