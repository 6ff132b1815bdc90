package tree

import "errors"

var (
	// ErrRootNotFound is returned when the walk root does not exist.
	ErrRootNotFound = errors.New("root directory not found")

	// ErrRootNotDir is returned when the walk root is not a directory.
	ErrRootNotDir = errors.New("root is not a directory")
)
