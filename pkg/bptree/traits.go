package bptree

import (
	"math/bits"

	"bptree/pkg/bptree/bperr"
)

// Handle is the constraint on the integer handle type H: a compact
// unsigned integer, the only form of inter-node reference the tree uses.
// Narrower handle types (uint16, uint32) shrink node footprints; widen to
// uint64 only for trees expected to outgrow 2^32 live+deleted nodes.
type Handle interface {
	~uint8 | ~uint16 | ~uint32 | ~uint64 | ~uint
}

// invalidHandle returns H_MAX, the sentinel meaning "no handle" (an
// absent parent, an absent sibling, the root-not-yet-allocated case).
func invalidHandle[H Handle]() H {
	return ^H(0)
}

// traits bundles the construction-time parameters (K, V, H, Oi, Ol) along
// with their derived minima, mirroring the compile-time trait bundle the
// source language expresses with template constants. Go's generics carry
// no integer type parameters, so Oi and Ol arrive as constructor
// arguments (see §9 of the design notes this package implements) and are
// validated, then enforced, at run time instead of compile time.
type traits struct {
	Oi, Ol int // fan-out: max keys per internal / leaf node
	Mi, Ml int // derived minimum fill
}

func newTraits[H Handle](oi, ol int) (traits, error) {
	if oi < 2 {
		return traits{}, &bperr.InvalidStateError{Reason: "internal fan-out Oi must be at least 2"}
	}

	if ol < 1 {
		return traits{}, &bperr.InvalidStateError{Reason: "leaf fan-out Ol must be at least 1"}
	}

	// bits.UintSize (not a fixed 64) matters for the plain `uint` case: on
	// a 32-bit platform a `uint` handle has the same ceiling as uint32,
	// not uint64.
	var hMax uint64
	var h H
	switch any(h).(type) {
	case uint8:
		hMax = uint64(^uint8(0))
	case uint16:
		hMax = uint64(^uint16(0))
	case uint32:
		hMax = uint64(^uint32(0))
	case uint:
		if bits.UintSize == 32 {
			hMax = uint64(^uint32(0))
		} else {
			hMax = ^uint64(0)
		}
	default:
		hMax = ^uint64(0)
	}

	if hMax <= uint64(oi)+2 {
		return traits{}, &bperr.InvalidStateError{Reason: "handle type H too narrow for internal fan-out Oi"}
	}

	if hMax <= uint64(ol)+1 {
		return traits{}, &bperr.InvalidStateError{Reason: "handle type H too narrow for leaf fan-out Ol"}
	}

	mi := oi / 2
	if mi < 1 {
		mi = 1
	}

	ml := ol / 2
	if ml < 1 {
		ml = 1
	}

	return traits{Oi: oi, Ol: ol, Mi: mi, Ml: ml}, nil
}

func mid(lo, hi int) int {
	return lo + (hi-lo)/2
}
