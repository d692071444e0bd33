package bptree

import "bptree/internal/debug"

// debugAssert routes ProgrammingError-class invariant violations (wrong-
// variant handle access already guaranteed by traversal, re-recursion
// past the allowed split depth, erasing from an empty leaf, and similar)
// through internal/debug.Assert: a panic in debug builds, a no-op in
// release builds, per the error taxonomy's split between recoverable
// errors and assertions.
func debugAssert(cond bool, format string, args ...any) {
	debug.Assert(cond, format, args...)
}

func debugLog(operation, format string, args ...any) {
	debug.Log(nil, operation, format, args...)
}
