// Package log provides the dirschema logger, built on top of the standard
// slog package.
//
// This package extends slog to provide:
//   - Rewriting of paths under the user's home directory to "~"
//   - Configurable log levels with verbose mode support
//   - Consistent log formatting across the commands
//
// # Usage
//
//	logger := log.NewLogger(os.Stderr, verbose)
//	logger.Debug("visiting directory", "path", "/home/alice/project/src")
//	// path=~/project/src
//
// The level is Warn by default and Debug in verbose mode.
package log
