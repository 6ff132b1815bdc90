package report

import (
	"strings"

	"github.com/nao1215/dirschema/internal/model"
)

const (
	// TimeLayout formats the listing's generation time.
	TimeLayout = "2006-01-02 15:04:05"

	// separatorWidth is the length of the "=" rule under the header.
	separatorWidth = 50

	branch     = "├── "
	lastBranch = "└── "
	pipe       = "│   "
)

// HeaderLines returns the listing header without the trailing blank line.
func HeaderLines(listing *model.Listing) []string {
	return []string{
		"Directory structure for: " + listing.Root,
		"Generated on: " + listing.GeneratedAt.Format(TimeLayout),
		"Excluded patterns: " + strings.Join(listing.Exclude, ", "),
		strings.Repeat("=", separatorWidth),
	}
}

// TreeLines returns one line per directory and file in traversal order.
//
// A directory at level n > 0 is drawn as n-1 pipes and a branch. Its files
// are drawn one level deeper. The last file gets the closing branch only when
// the directory has no child directories left after exclusion.
func TreeLines(listing *model.Listing) []string {
	var lines []string
	for _, node := range listing.Nodes {
		prefix := ""
		if node.Level > 0 {
			prefix = strings.Repeat(pipe, node.Level-1) + branch
		}
		lines = append(lines, prefix+node.Name+"/")

		indent := strings.Repeat(pipe, node.Level)
		for i, file := range node.Files {
			marker := branch
			if i == len(node.Files)-1 && !node.HasChildDirs() {
				marker = lastBranch
			}
			lines = append(lines, indent+marker+file)
		}
	}
	return lines
}
