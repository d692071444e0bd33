// Package bperr collects the error taxonomy shared by the bounded array,
// the node arena, and the tree operations that sit on top of them.
//
// Every type here is a concrete struct implementing error, so callers can
// recover the specific failure with xerrors.AsA rather than string-matching
// or a sentinel comparison.
package bperr

import "fmt"

// CapacityExceededError is returned when a bounded-array operation would
// need to grow the array past its fixed capacity.
type CapacityExceededError struct {
	Capacity  int
	Requested int
}

func (e *CapacityExceededError) Error() string {
	return fmt.Sprintf("bptree: capacity exceeded: have %d, requested %d", e.Capacity, e.Requested)
}

// HandleSpaceExhaustedError is returned when the arena would need to mint
// the sentinel INVALID handle to satisfy an allocation.
type HandleSpaceExhaustedError struct {
	Limit uint64
}

func (e *HandleSpaceExhaustedError) Error() string {
	return fmt.Sprintf("bptree: handle space exhausted: limit %d", e.Limit)
}

// OutOfRangeError is returned by a checked accessor given an index at or
// beyond the current size.
type OutOfRangeError struct {
	Index int
	Size  int
}

func (e *OutOfRangeError) Error() string {
	return fmt.Sprintf("bptree: index %d out of range [0, %d)", e.Index, e.Size)
}

// InvalidStateError is returned for caller-visible precondition failures
// that are not pure programming bugs: shrink on a leaf root, a handle
// dereferenced as the wrong node variant, and similar.
type InvalidStateError struct {
	Reason string
}

func (e *InvalidStateError) Error() string {
	return fmt.Sprintf("bptree: invalid state: %s", e.Reason)
}
