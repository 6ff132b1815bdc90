package report

import (
	"io"
	"strconv"
	"strings"

	"github.com/nao1215/markdown"
	"github.com/nao1215/markdown/mermaid/piechart"

	"github.com/nao1215/dirschema/internal/model"
)

// MarkdownWriter outputs listings and run history as Markdown documents.
type MarkdownWriter struct {
	baseWriter
}

// NewMarkdownWriter creates a MarkdownWriter that outputs to the given writer.
func NewMarkdownWriter(output io.Writer) *MarkdownWriter {
	return &MarkdownWriter{
		baseWriter: newBaseWriter(output),
	}
}

// WriteListing writes a title, a property table and the tree in a text block.
func (w *MarkdownWriter) WriteListing(listing *model.Listing) (int, error) {
	md := markdown.NewMarkdown(w.output)

	md.H1("Directory Structure")
	md.PlainText("")

	exclude := strings.Join(listing.Exclude, ", ")
	if exclude == "" {
		exclude = "-"
	}
	md.Table(markdown.TableSet{
		Header: []string{"Property", "Value"},
		Rows: [][]string{
			{"Root", "`" + listing.Root + "`"},
			{"Generated on", listing.GeneratedAt.Format(TimeLayout)},
			{"Excluded patterns", exclude},
			{"Directories", strconv.Itoa(len(listing.Nodes))},
			{"Files", strconv.Itoa(listing.FileCount())},
		},
	})
	md.PlainText("")

	lines := TreeLines(listing)
	if len(lines) == 0 {
		md.Note("The root directory matches an excluded pattern; nothing was listed.")
	} else {
		md.CodeBlocks(markdown.SyntaxHighlightText, strings.Join(lines, "\n"))
	}

	return len(md.String()), md.Build()
}

// WriteHistory writes the runs as a table followed by a status chart.
func (w *MarkdownWriter) WriteHistory(entries []model.HistoryEntry) (int, error) {
	md := markdown.NewMarkdown(w.output)

	md.H1("Run History")
	md.PlainText("")

	if len(entries) == 0 {
		md.PlainText("No runs recorded.")
		return len(md.String()), md.Build()
	}

	rows := make([][]string, len(entries))
	for i, e := range entries {
		rows[i] = []string{
			strconv.FormatInt(e.Run.ID, 10),
			e.Run.Timestamp.Local().Format(TimeLayout),
			string(e.Run.Tool),
			e.Run.Status.String(),
			e.Change.String(),
			"`" + e.Run.Source + "`",
			"`" + e.Run.Output + "`",
		}
	}
	md.Table(markdown.TableSet{
		Header: []string{"ID", "Time", "Tool", "Status", "Change", "Source", "Output"},
		Rows:   rows,
	})
	md.PlainText("")

	w.writeStatusChart(md, entries)

	return len(md.String()), md.Build()
}

// writeStatusChart writes a mermaid pie chart of run outcomes.
func (w *MarkdownWriter) writeStatusChart(md *markdown.Markdown, entries []model.HistoryEntry) {
	counts := make(map[model.RunStatus]uint64)
	for _, e := range entries {
		counts[e.Run.Status]++
	}

	chart := piechart.NewPieChart(
		io.Discard,
		piechart.WithTitle("Run Outcomes"),
		piechart.WithShowData(true),
	)
	for _, status := range []model.RunStatus{model.RunSuccess, model.RunNotFound, model.RunDecodeError, model.RunFailed} {
		if counts[status] > 0 {
			chart.LabelAndIntValue(status.String(), counts[status])
		}
	}

	md.CodeBlocks(markdown.SyntaxHighlightMermaid, chart.String())
	md.PlainText("")
}
