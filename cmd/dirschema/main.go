// Package main provides the entry point for the dirschema CLI.
//
// dirschema bundles two small project utilities: a directory tree printer
// and a JSON schema extractor that replaces every value with a type
// placeholder.
//
// Usage:
//
//	dirschema tree [root]
//	dirschema schema [input...]
//
// See --help for all available options.
package main

// main is the entry point for dirschema.
func main() {
	Execute()
}
