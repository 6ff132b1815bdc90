// Package schema extracts the structural template of a JSON document.
//
// A document is decoded into Value, a closed sum type whose variants are
// Object, Array, String, Bool, Number and Null. Object keeps its members in
// document order. Extract maps a Value to its schema: every string becomes
// "string", every boolean becomes true, every number becomes 0, null stays
// null, and every non-empty array collapses to a single element built from
// its first item.
//
// Process wraps the pure transform with file I/O. It reports a missing input
// as ErrFileNotFound and malformed JSON as ErrDecode, and it never creates the
// output file when either happens.
package schema
