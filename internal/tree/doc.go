// Package tree walks a directory hierarchy and writes an indented listing.
//
// The walk is top-down. Child directories whose name contains an excluded
// substring are pruned before descent, so excluded subtrees are never opened.
// Symbolic links to directories are listed as directories but never followed.
package tree
