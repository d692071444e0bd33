package bptree

import "bptree/pkg/bptree/bperr"

// grow is called when a split reaches the current root: it allocates a
// fresh internal root with the two post-split nodes as children, and
// reparents both. Depth increases by exactly one.
func (t *Tree[K, V, H]) grow(left, right H, pivotKey K) error {
	invalid := invalidHandle[H]()

	newRoot, err := t.arena.appendInternal(invalid)
	if err != nil {
		return err
	}

	root := t.arena.mustInternal(newRoot)
	if err := root.keys.PushBack(pivotKey); err != nil {
		return err
	}

	if err := root.children.PushBack(left); err != nil {
		return err
	}

	if err := root.children.PushBack(right); err != nil {
		return err
	}

	t.arena.mustInternalOrLeaf(left).parent = newRoot
	t.arena.mustInternalOrLeaf(right).parent = newRoot

	t.root = newRoot

	return nil
}

// shrink is called when the root is an internal node reduced to exactly
// one child: that child is promoted to root and the old root is marked
// deleted. Depth decreases by exactly one. Fails with
// *bperr.InvalidStateError if invoked with a leaf root.
func (t *Tree[K, V, H]) shrink() error {
	old := t.arena.mustInternalOrLeaf(t.root)
	if old.isLeaf() {
		return &bperr.InvalidStateError{Reason: "shrink called with a leaf root"}
	}

	debugAssert(old.children.Len() == 1, "shrink: root has %d children, want 1", old.children.Len())

	onlyChild := old.children.At(0)
	t.arena.mustInternalOrLeaf(onlyChild).parent = invalidHandle[H]()

	old.markDeleted()

	t.root = onlyChild

	return nil
}
