package model

import "time"

// DirNode is a single directory visited by the tree walk.
type DirNode struct {
	// Path is the directory path as reached from the walk root.
	Path string `json:"path"`

	// Name is the directory's base name, printed as "<name>/".
	Name string `json:"name"`

	// Level is the number of path components between the root and this
	// directory. The root is level 0.
	Level int `json:"level"`

	// Dirs are the child directory names left after exclusion, sorted.
	Dirs []string `json:"dirs"`

	// Files are the file names in this directory, sorted.
	Files []string `json:"files"`
}

// HasChildDirs reports whether any child directory survived exclusion.
func (n DirNode) HasChildDirs() bool {
	return len(n.Dirs) > 0
}

// Listing is the full result of a tree walk.
type Listing struct {
	// Root is the absolute path of the walked directory.
	Root string `json:"root"`

	// GeneratedAt is when the walk started.
	GeneratedAt time.Time `json:"generated_at"`

	// Exclude holds the exclusion patterns in effect.
	Exclude []string `json:"exclude"`

	// Nodes are the visited directories in top-down traversal order.
	Nodes []DirNode `json:"nodes"`
}

// FileCount returns the number of files listed across all nodes.
func (l *Listing) FileCount() int {
	total := 0
	for _, n := range l.Nodes {
		total += len(n.Files)
	}
	return total
}
