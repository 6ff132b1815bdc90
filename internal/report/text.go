package report

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/nao1215/dirschema/internal/model"
)

// TextWriter outputs plain text.
// Listings use the classic tree layout and history is a column-aligned table.
type TextWriter struct {
	baseWriter
}

// NewTextWriter creates a TextWriter that outputs to the given writer.
func NewTextWriter(output io.Writer) *TextWriter {
	return &TextWriter{
		baseWriter: newBaseWriter(output),
	}
}

// WriteListing writes the header, a blank line and the tree lines.
func (w *TextWriter) WriteListing(listing *model.Listing) (int, error) {
	var sb strings.Builder

	for _, line := range HeaderLines(listing) {
		sb.WriteString(line)
		sb.WriteString("\n")
	}
	sb.WriteString("\n")

	for _, line := range TreeLines(listing) {
		sb.WriteString(line)
		sb.WriteString("\n")
	}

	return io.WriteString(w.output, sb.String())
}

// WriteHistory writes one row per run.
func (w *TextWriter) WriteHistory(entries []model.HistoryEntry) (int, error) {
	if len(entries) == 0 {
		return io.WriteString(w.output, "No runs recorded.\n")
	}

	var sb strings.Builder
	tw := tabwriter.NewWriter(&sb, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tTIME\tTOOL\tSTATUS\tCHANGE\tSOURCE\tOUTPUT")
	for _, e := range entries {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%s\t%s\n",
			e.Run.ID,
			e.Run.Timestamp.Local().Format(TimeLayout),
			e.Run.Tool,
			e.Run.Status,
			e.Change,
			e.Run.Source,
			e.Run.Output,
		)
	}
	if err := tw.Flush(); err != nil {
		return 0, err
	}

	return io.WriteString(w.output, sb.String())
}
