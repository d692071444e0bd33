package bptree

import (
	"bptree/pkg/bptree/bounded"
	"bptree/pkg/tuple"
)

// kind tags which of the two node variants an arena slot holds. Dispatch
// between them is a switch on this tag, not an interface method call:
// there is no inheritance hierarchy here, just a sum type flattened into
// one struct per slot.
type kind uint8

const (
	kindLeaf kind = iota
	kindInternal
)

// node is the common representation of both B+ tree node variants,
// stored by value in the arena. Exactly one of the leaf-only or
// internal-only field groups is meaningful, selected by kind.
type node[K any, V any, H Handle] struct {
	kind    kind
	deleted bool

	self   H
	parent H
	keys   *bounded.Array[K]

	// internal-only
	children *bounded.Array[H]

	// leaf-only
	values   *bounded.Array[V]
	prev, next H
}

func newInternalNode[K any, V any, H Handle](self, parent H, oi int) *node[K, V, H] {
	return &node[K, V, H]{
		kind:     kindInternal,
		self:     self,
		parent:   parent,
		keys:     bounded.New[K](oi),
		children: bounded.New[H](oi + 1),
	}
}

func newLeafNode[K any, V any, H Handle](self, parent H, ol int) *node[K, V, H] {
	invalid := invalidHandle[H]()

	return &node[K, V, H]{
		kind:   kindLeaf,
		self:   self,
		parent: parent,
		keys:   bounded.New[K](ol),
		values: bounded.New[V](ol),
		prev:   invalid,
		next:   invalid,
	}
}

func (n *node[K, V, H]) isLeaf() bool { return n.kind == kindLeaf }

// size is the node's live key count: the shape invariant (§ global
// invariant 2) is stated in terms of this value for both variants.
func (n *node[K, V, H]) size() int { return n.keys.Len() }

// siblingsOf locates childHandle among n.children (linear scan; the
// handle is asserted present by the caller's traversal invariant) and
// returns the handles of its immediate left and right siblings within
// this same parent, or INVALID at the ends.
func (n *node[K, V, H]) siblingsOf(childHandle H) tuple.Tuple2[H, H] {
	invalid := invalidHandle[H]()
	idx := n.childIndex(childHandle)

	prev := n.children.CheckedGet(idx - 1).UnwrapOr(invalid)
	next := n.children.CheckedGet(idx + 1).UnwrapOr(invalid)

	return tuple.New2(prev, next)
}

// iteratorsFor returns the position of childHandle within n.children and
// whether that position is the leftmost child (index 0), which has no
// preceding router key — the "end of keys" convention adjustParentKey
// relies on to know when a router change must propagate further up.
func (n *node[K, V, H]) iteratorsFor(childHandle H) tuple.Tuple3[int, int, bool] {
	idx := n.childIndex(childHandle)
	return tuple.New3(idx-1, idx, idx == 0)
}

func (n *node[K, V, H]) childIndex(childHandle H) int {
	for i := 0; i < n.children.Len(); i++ {
		if n.children.At(i) == childHandle {
			return i
		}
	}

	panic("bptree: childIndex: handle not found among children")
}

// markDeleted clears a node's contents and detaches it from the tree. Its
// arena slot is retained (never renumbered, never reused) per the node
// lifecycle this package implements.
func (n *node[K, V, H]) markDeleted() {
	invalid := invalidHandle[H]()

	n.keys.Clear()
	n.parent = invalid
	n.deleted = true

	if n.isLeaf() {
		n.values.Clear()
		n.prev = invalid
		n.next = invalid
	} else {
		n.children.Clear()
	}
}
