package report

import (
	"fmt"
	"io"

	"github.com/nao1215/dirschema/internal/config"
	"github.com/nao1215/dirschema/internal/model"
)

// ListingWriter renders a directory listing.
type ListingWriter interface {
	// WriteListing outputs the listing to the configured destination.
	// Returns the number of bytes written and any error encountered.
	WriteListing(listing *model.Listing) (int, error)
}

// HistoryWriter renders recorded runs.
type HistoryWriter interface {
	// WriteHistory outputs the entries, newest first.
	WriteHistory(entries []model.HistoryEntry) (int, error)
}

// NewListingWriter returns the listing writer for a tree output format.
func NewListingWriter(format string, output io.Writer) (ListingWriter, error) {
	switch format {
	case config.FormatText, "":
		return NewTextWriter(output), nil
	case config.FormatMarkdown:
		return NewMarkdownWriter(output), nil
	default:
		return nil, fmt.Errorf("%w: %q", config.ErrUnknownTreeFormat, format)
	}
}

// baseWriter provides common functionality for report writers.
type baseWriter struct {
	output io.Writer
}

// newBaseWriter creates a baseWriter with the given output destination.
func newBaseWriter(output io.Writer) baseWriter {
	return baseWriter{output: output}
}
