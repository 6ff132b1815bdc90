// Package config provides configuration structures and utilities for dirschema.
// It defines the option records for the tree printer and the schema extractor,
// the optional run history settings, and the YAML configuration file that can
// override the built-in defaults.
package config
