// Package pipeline scores batches of passwords.
//
// Scoring a single password is pure and fast, so the pipeline is mostly about
// fan-out: the BatchProcessor spreads a list of passwords across a bounded
// number of goroutines using errgroup and gathers the results in input order.
package pipeline
