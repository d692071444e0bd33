package bptree

import "bptree/pkg/bptree/bperr"

// arena is a growable sequence of variant-tagged nodes addressable by
// integer handle. Every inter-node reference in the tree is a handle
// into this sequence; no pointers cross node boundaries. Handles are
// assigned in insertion order and never renumbered — a soft-deleted slot
// keeps its index with cleared contents, per the node lifecycle §4.3
// describes.
type arena[K any, V any, H Handle] struct {
	nodes []*node[K, V, H]
	oi, ol int
}

func newArena[K any, V any, H Handle](oi, ol int) *arena[K, V, H] {
	return &arena[K, V, H]{oi: oi, ol: ol}
}

// appendInternal constructs a new internal node with the given parent at
// the next free index, failing with *bperr.HandleSpaceExhaustedError if
// that index would equal the sentinel INVALID handle.
func (a *arena[K, V, H]) appendInternal(parent H) (H, error) {
	h, err := a.nextHandle()
	if err != nil {
		return h, err
	}

	a.nodes = append(a.nodes, newInternalNode[K, V, H](h, parent, a.oi))

	return h, nil
}

// appendLeaf is appendInternal's leaf counterpart.
func (a *arena[K, V, H]) appendLeaf(parent H) (H, error) {
	h, err := a.nextHandle()
	if err != nil {
		return h, err
	}

	a.nodes = append(a.nodes, newLeafNode[K, V, H](h, parent, a.ol))

	return h, nil
}

func (a *arena[K, V, H]) nextHandle() (H, error) {
	next := H(len(a.nodes))
	if next == invalidHandle[H]() {
		return next, &bperr.HandleSpaceExhaustedError{Limit: uint64(next)}
	}

	return next, nil
}

// at dereferences h to its raw variant node, for visiting or diagnostics.
func (a *arena[K, V, H]) at(h H) (*node[K, V, H], error) {
	if int(h) < 0 || int(h) >= len(a.nodes) {
		return nil, &bperr.OutOfRangeError{Index: int(h), Size: len(a.nodes)}
	}

	return a.nodes[h], nil
}

// leafAt dereferences h and asserts it names a live leaf, surfacing
// *bperr.InvalidStateError on a variant mismatch — a caller-visible
// precondition failure, not an internal programming bug.
func (a *arena[K, V, H]) leafAt(h H) (*node[K, V, H], error) {
	n, err := a.at(h)
	if err != nil {
		return nil, err
	}

	if !n.isLeaf() {
		return nil, &bperr.InvalidStateError{Reason: "handle does not name a leaf"}
	}

	return n, nil
}

// internalAt is leafAt's internal-node counterpart.
func (a *arena[K, V, H]) internalAt(h H) (*node[K, V, H], error) {
	n, err := a.at(h)
	if err != nil {
		return nil, err
	}

	if n.isLeaf() {
		return nil, &bperr.InvalidStateError{Reason: "handle does not name an internal node"}
	}

	return n, nil
}

// mustLeaf and mustInternal are the unchecked counterparts used deep
// inside the tree algorithms, where the handle's variant is already
// guaranteed by the traversal that produced it. A mismatch there is a
// programming error in the tree itself, not a caller precondition, so it
// asserts rather than returning an error.
func (a *arena[K, V, H]) mustLeaf(h H) *node[K, V, H] {
	n := a.nodes[h]
	debugAssert(n.isLeaf(), "mustLeaf: handle %v names a non-leaf node", h)

	return n
}

func (a *arena[K, V, H]) mustInternal(h H) *node[K, V, H] {
	n := a.nodes[h]
	debugAssert(!n.isLeaf(), "mustInternal: handle %v names a non-internal node", h)

	return n
}

// clone deep-copies every node in the arena; handles are preserved since
// the copy is index-for-index.
func (a *arena[K, V, H]) clone() *arena[K, V, H] {
	out := &arena[K, V, H]{oi: a.oi, ol: a.ol, nodes: make([]*node[K, V, H], len(a.nodes))}

	for i, n := range a.nodes {
		cp := *n
		cp.keys = n.keys.Clone()

		if n.isLeaf() {
			cp.values = n.values.Clone()
		} else {
			cp.children = n.children.Clone()
		}

		out.nodes[i] = &cp
	}

	return out
}
