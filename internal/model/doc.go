// Package model defines the data structures shared by the dirschema packages.
//
// This package contains the following main types:
//   - DirNode: One visited directory produced by the tree walk
//   - Listing: The complete result of a tree walk, ready to render
//   - Run: One recorded tree or schema run kept in the history database
//
// The types live in their own package so that the tree walker, the report
// writers and the history store can share them without import cycles.
package model
