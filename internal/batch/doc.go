// Package batch runs the schema extractor over many inputs concurrently.
//
// Concurrency is bounded with errgroup.SetLimit. Results come back in input
// order and a failing input never cancels the others; only cancellation of
// the parent context stops the batch early.
package batch
