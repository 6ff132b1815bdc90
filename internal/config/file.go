package config

// TreeSection is the "tree" section of the configuration file.
// Pointer fields distinguish "not set" from an explicit zero value.
type TreeSection struct {
	Root             string   `yaml:"root,omitempty"`
	Output           string   `yaml:"output,omitempty"`
	Exclude          []string `yaml:"exclude,omitempty"`
	Format           string   `yaml:"format,omitempty"`
	RespectGitignore *bool    `yaml:"respect_gitignore,omitempty"`
}

// SchemaSection is the "schema" section of the configuration file.
type SchemaSection struct {
	Input       string `yaml:"input,omitempty"`
	Output      string `yaml:"output,omitempty"`
	OutputDir   string `yaml:"output_dir,omitempty"`
	Format      string `yaml:"format,omitempty"`
	Concurrency int    `yaml:"concurrency,omitempty"`
}

// HistorySection is the "history" section of the configuration file.
type HistorySection struct {
	Enabled *bool  `yaml:"enabled,omitempty"`
	Dir     string `yaml:"dir,omitempty"`
}

// File represents the structure of the .dirschema configuration file.
type File struct {
	Tree    TreeSection    `yaml:"tree,omitempty"`
	Schema  SchemaSection  `yaml:"schema,omitempty"`
	History HistorySection `yaml:"history,omitempty"`
	Verbose *bool          `yaml:"verbose,omitempty"`
}

// Apply overrides the values in cfg with every value set in the file.
// Unset values leave cfg untouched.
func (f *File) Apply(cfg *Config) {
	if f == nil || cfg == nil {
		return
	}

	if f.Tree.Root != "" {
		cfg.Tree.Root = f.Tree.Root
	}
	if f.Tree.Output != "" {
		cfg.Tree.Output = f.Tree.Output
	}
	if len(f.Tree.Exclude) > 0 {
		cfg.Tree.Exclude = append([]string(nil), f.Tree.Exclude...)
	}
	if f.Tree.Format != "" {
		cfg.Tree.Format = f.Tree.Format
	}
	if f.Tree.RespectGitignore != nil {
		cfg.Tree.RespectGitignore = *f.Tree.RespectGitignore
	}

	if f.Schema.Input != "" {
		cfg.Schema.Input = f.Schema.Input
	}
	if f.Schema.Output != "" {
		cfg.Schema.Output = f.Schema.Output
	}
	if f.Schema.OutputDir != "" {
		cfg.Schema.OutputDir = f.Schema.OutputDir
	}
	if f.Schema.Format != "" {
		cfg.Schema.Format = f.Schema.Format
	}
	if f.Schema.Concurrency != 0 {
		cfg.Schema.Concurrency = f.Schema.Concurrency
	}

	if f.History.Enabled != nil {
		cfg.History.Enabled = *f.History.Enabled
	}
	if f.History.Dir != "" {
		cfg.History.Dir = f.History.Dir
	}

	if f.Verbose != nil {
		cfg.Verbose = *f.Verbose
	}
}
