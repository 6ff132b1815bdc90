// Package history stores tree and schema runs in a local SQLite database.
//
// History is opt-in. When enabled, every run is recorded together with a
// SHA3-256 digest of the file it wrote, so later listings can tell whether a
// regenerated output actually changed. The database lives in the XDG data
// directory unless configured otherwise and uses modernc.org/sqlite, which
// needs no cgo.
package history
