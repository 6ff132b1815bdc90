// Package report renders dirschema results.
//
// This package contains writers for different output formats:
//   - TextWriter: the plain tree listing and a tabular run history
//   - MarkdownWriter: the same content as a Markdown document
//   - JSONWriter: run history as JSON for tool integration
//
// Writers for listings implement ListingWriter and writers for run history
// implement HistoryWriter.
package report
