// Package fanout implements the best-order search: given a byte budget and
// the concrete key/value/handle types a tree will be instantiated with, it
// picks the largest internal and leaf fan-out that keep a node's estimated
// footprint at or under that budget.
//
// Node size is estimated rather than measured with unsafe.Sizeof on a real
// node value, because pkg/bptree's nodes hold their keys/children/values in
// a bounded.Array, which is slice-backed: its Go type size is fixed (one
// slice header) regardless of capacity, so sizeof a zero-value node tells
// you nothing about the order it was built with. Estimate instead computes
// the inline footprint order would occupy were it backed by a truly fixed
// array, which is the quantity the budget is meant to bound.
package fanout

import "unsafe"

// sliceHeaderWords is the estimated per-slice-header overhead, in machine
// words: a Go slice header is pointer, length, capacity.
const sliceHeaderWords = 3

var wordSize = unsafe.Sizeof(uintptr(0))

// EstimateInternal returns the approximate byte footprint of an internal
// node holding up to order keys and order+1 child handles, for the given
// key and handle types.
func EstimateInternal[K, H any](order int) uintptr {
	var k K
	var h H

	keySize := unsafe.Sizeof(k)
	handleSize := unsafe.Sizeof(h)

	header := 2 * handleSize // self, parent
	keys := sliceHeaderWords*wordSize + uintptr(order)*keySize
	children := sliceHeaderWords*wordSize + uintptr(order+1)*handleSize

	return header + keys + children
}

// EstimateLeaf returns the approximate byte footprint of a leaf node
// holding up to order keys and the same number of values, for the given
// key, value, and handle types.
func EstimateLeaf[K, V, H any](order int) uintptr {
	var k K
	var v V
	var h H

	keySize := unsafe.Sizeof(k)
	valSize := unsafe.Sizeof(v)
	handleSize := unsafe.Sizeof(h)

	header := 4 * handleSize // self, parent, prev, next
	keys := sliceHeaderWords*wordSize + uintptr(order)*keySize
	values := sliceHeaderWords*wordSize + uintptr(order)*valSize

	return header + keys + values
}

// PickInternal performs a binary search over [low, high] for the largest
// order such that EstimateInternal[K,H](order) <= budget bytes. The search
// terminates when the candidate range narrows to a single order.
//
// PickInternal returns low if even the smallest candidate order exceeds
// the budget; callers are expected to pick a low bound that is always
// affordable (Mi, typically).
func PickInternal[K, H any](budget uintptr, low, high int) int {
	if EstimateInternal[K, H](high) <= budget {
		return high
	}

	for low < high {
		mid := low + (high-low+1)/2

		if EstimateInternal[K, H](mid) <= budget {
			low = mid
		} else {
			high = mid - 1
		}
	}

	return low
}

// PickLeaf is PickInternal's counterpart for leaf nodes.
func PickLeaf[K, V, H any](budget uintptr, low, high int) int {
	if EstimateLeaf[K, V, H](high) <= budget {
		return high
	}

	for low < high {
		mid := low + (high-low+1)/2

		if EstimateLeaf[K, V, H](mid) <= budget {
			low = mid
		} else {
			high = mid - 1
		}
	}

	return low
}
