// Package simerr defines the error kinds surfaced by the replay engine.
// Every kind is fatal: failures are data or logic errors, never transient
// I/O, so the run aborts and the caller fixes the input and reruns.
package simerr

import "errors"

var (
	// ErrConfiguration marks missing or invalid calibration constants,
	// unknown module names and empty initial snapshots.
	ErrConfiguration = errors.New("invalid configuration")

	// ErrNotFound marks operations referencing an unknown courier or
	// order id, which indicates an upstream data or strategy bug.
	ErrNotFound = errors.New("not found")

	// ErrSolver marks a malformed cost matrix (NaN or negative entries)
	// or a matching solver that fails to converge.
	ErrSolver = errors.New("solver failure")
)
