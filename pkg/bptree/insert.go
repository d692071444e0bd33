package bptree

// insert locates the insertion position for key and splices (key, value)
// into the owning leaf, splitting and propagating as needed. It always
// succeeds except on resource exhaustion (handle space, bounded-array
// capacity at every level simultaneously full).
func (t *Tree[K, V, H]) insert(key K, value V) error {
	leaf, pos := t.findInsertPosition(key, t.root)
	return t.insertLeaf(leaf, pos, key, value, true)
}

func (t *Tree[K, V, H]) insertLeaf(leafHandle H, pos int, key K, value V, allowRecurse bool) error {
	n := t.arena.mustLeaf(leafHandle)

	if !n.keys.Full() {
		if err := n.keys.Insert(pos, key); err != nil {
			return err
		}

		return n.values.Insert(pos, value)
	}

	debugAssert(allowRecurse, "insertLeaf: split recursion depth exceeded")

	return t.splitLeaf(leafHandle, pos, key, value)
}

// splitLeaf handles a full leaf: it conceptually inserts (key, value)
// into a copy of the leaf's contents, then divides that Ol+1-sized
// sequence at its midpoint between the existing leaf and a freshly
// allocated right sibling, relinks the leaf chain, and propagates the
// new right leaf's first key to the parent (or grows the tree, if the
// leaf being split is the root).
func (t *Tree[K, V, H]) splitLeaf(leafHandle H, pos int, key K, value V) error {
	old := t.arena.mustLeaf(leafHandle)

	mergedKeys := mergeInsert(old.keys.Slice(), pos, key)
	mergedValues := mergeInsert(old.values.Slice(), pos, value)

	pivot := mid(0, len(mergedKeys))

	newHandle, err := t.arena.appendLeaf(old.parent)
	if err != nil {
		return err
	}

	newLeaf := t.arena.mustLeaf(newHandle)

	old.keys.Clear()
	old.values.Clear()

	for i := 0; i < pivot; i++ {
		_ = old.keys.PushBack(mergedKeys[i])
		_ = old.values.PushBack(mergedValues[i])
	}

	for i := pivot; i < len(mergedKeys); i++ {
		_ = newLeaf.keys.PushBack(mergedKeys[i])
		_ = newLeaf.values.PushBack(mergedValues[i])
	}

	oldNext := old.next
	newLeaf.next = oldNext
	newLeaf.prev = leafHandle
	old.next = newHandle

	if oldNext != invalidHandle[H]() {
		t.arena.mustLeaf(oldNext).prev = newHandle
	}

	pivotKey := newLeaf.keys.At(0)

	if old.parent == invalidHandle[H]() {
		return t.grow(leafHandle, newHandle, pivotKey)
	}

	return t.insertInternal(old.parent, pivotKey, newHandle, true)
}

func (t *Tree[K, V, H]) insertInternal(nodeHandle H, key K, childHandle H, allowRecurse bool) error {
	n := t.arena.mustInternal(nodeHandle)

	if !n.keys.Full() {
		at := upperBound(n.keys.Slice(), key)
		if err := n.keys.Insert(at, key); err != nil {
			return err
		}

		if err := n.children.Insert(at+1, childHandle); err != nil {
			return err
		}

		t.arena.mustInternalOrLeaf(childHandle).parent = nodeHandle

		return nil
	}

	debugAssert(allowRecurse, "insertInternal: split recursion depth exceeded")

	return t.splitInternal(nodeHandle, key, childHandle)
}

// splitInternal handles a full internal node. It merges the new
// (key, child) pair into copies of the node's key/child sequences — the
// merged sequence has Oi+1 keys and Oi+2 children, one more of each than
// the node alone could hold — then promotes the sequence's own midpoint
// key to the parent (it is dropped from both children, per the internal
// node invariant children.size == keys.size+1) and divides the rest
// between the node and a freshly allocated right sibling.
//
// This realizes the same split-then-propagate structure as splitLeaf —
// and the three textual sub-cases (new key left of, right of, or at the
// promoted position) fall out of where `key` lands in the merged
// sequence, rather than needing separate branches.
func (t *Tree[K, V, H]) splitInternal(nodeHandle H, key K, childHandle H) error {
	n := t.arena.mustInternal(nodeHandle)

	at := upperBound(n.keys.Slice(), key)

	mergedKeys := mergeInsert(n.keys.Slice(), at, key)
	mergedChildren := mergeInsert(n.children.Slice(), at+1, childHandle)

	promote := mid(0, len(mergedKeys))

	leftKeys := mergedKeys[:promote]
	rightKeys := mergedKeys[promote+1:]
	leftChildren := mergedChildren[:promote+1]
	rightChildren := mergedChildren[promote+1:]

	newHandle, err := t.arena.appendInternal(n.parent)
	if err != nil {
		return err
	}

	newNode := t.arena.mustInternal(newHandle)

	n.keys.Clear()
	n.children.Clear()

	for _, k := range leftKeys {
		_ = n.keys.PushBack(k)
	}

	for _, c := range leftChildren {
		_ = n.children.PushBack(c)
	}

	for _, k := range rightKeys {
		_ = newNode.keys.PushBack(k)
	}

	for _, c := range rightChildren {
		_ = newNode.children.PushBack(c)
	}

	for i := 0; i < n.children.Len(); i++ {
		t.arena.mustInternalOrLeaf(n.children.At(i)).parent = nodeHandle
	}

	for i := 0; i < newNode.children.Len(); i++ {
		t.arena.mustInternalOrLeaf(newNode.children.At(i)).parent = newHandle
	}

	propagatedKey := t.minKey(newHandle)

	if n.parent == invalidHandle[H]() {
		return t.grow(nodeHandle, newHandle, propagatedKey)
	}

	return t.insertInternal(n.parent, propagatedKey, newHandle, false)
}

// mergeInsert returns a new slice holding src with v inserted at pos,
// without mutating src.
func mergeInsert[T any](src []T, pos int, v T) []T {
	out := make([]T, 0, len(src)+1)
	out = append(out, src[:pos]...)
	out = append(out, v)
	out = append(out, src[pos:]...)

	return out
}
