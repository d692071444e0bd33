package bptree

import "bptree/pkg/opt"

// eraseEntry removes the single entry it points at, rebalancing the
// owning leaf (and propagating merges/shrinks up the tree) as needed to
// restore the minimum-fill invariant.
func (t *Tree[K, V, H]) eraseEntry(it Iterator[K, V, H]) (int, error) {
	n := t.arena.mustLeaf(it.leaf)
	debugAssert(n.size() > 0, "eraseEntry: leaf %v is empty", it.leaf)

	n.keys.Erase(it.pos)
	n.values.Erase(it.pos)

	// A leaf emptied by this erase has no min key to propagate yet. If
	// rebalanceLeaf below merges it into its left sibling, its router is
	// removed along with it; if it survives (refilled by a donation or by
	// absorbing its right sibling), its router is repaired afterwards.
	if it.pos == 0 && n.size() > 0 && n.parent != invalidHandle[H]() {
		t.adjustParentKey(it.leaf)
	}

	emptied := n.size() == 0

	if n.size() < t.traits.Ml {
		if err := t.rebalanceLeaf(it.leaf); err != nil {
			return 0, err
		}
	}

	if emptied && !n.deleted && n.size() > 0 {
		t.adjustParentKey(it.leaf)
	}

	return 1, nil
}

// adjustParentKey repairs the router for child in its parent after
// child's minimum key changes (an erase of its first element, or a
// donation). If child is the leftmost of its parent, there is no router
// slot to overwrite there — the router lives further up the left spine,
// so the fix propagates to the parent.
func (t *Tree[K, V, H]) adjustParentKey(childHandle H) {
	n := t.arena.mustInternalOrLeaf(childHandle)
	if n.parent == invalidHandle[H]() {
		return
	}

	parent := t.arena.mustInternal(n.parent)
	its := parent.iteratorsFor(childHandle)
	keyIdx, _, isLeftmost := its.Unpack()

	if !isLeftmost {
		parent.keys.Set(keyIdx, t.minKey(childHandle))
		return
	}

	t.adjustParentKey(n.parent)
}

// rebalanceLeaf restores minimum fill for an under-min leaf by donating
// from whichever sibling has spare entries, or merging with a sibling
// when neither can spare any.
func (t *Tree[K, V, H]) rebalanceLeaf(leafHandle H) error {
	n := t.arena.mustLeaf(leafHandle)
	if n.parent == invalidHandle[H]() {
		return nil
	}

	parent := t.arena.mustInternal(n.parent)
	prevH, nextH := parent.siblingsOf(leafHandle).Unpack()

	canDonate := func(h H) bool {
		return h != invalidHandle[H]() && t.arena.mustLeaf(h).size() > t.traits.Ml
	}

	donorOpt, donorIsRight := pickDonor(prevH, nextH, canDonate, func(h H) int { return t.arena.mustLeaf(h).size() })
	if donorOpt.IsNone() {
		if nextH != invalidHandle[H]() {
			return t.mergeLeaf(leafHandle, nextH)
		}

		debugAssert(prevH != invalidHandle[H](), "rebalanceLeaf: non-root leaf has no siblings")

		return t.mergeLeaf(prevH, leafHandle)
	}

	donor := donorOpt.Unwrap()
	donorNode := t.arena.mustLeaf(donor)

	// count is how many entries to move, not the receiver's post-donation
	// size: the receiver should come to rest at the midpoint of the pair,
	// so the transfer amount is that midpoint minus what it already has.
	target := mid(0, n.size()+donorNode.size())
	count := target - n.size()

	if count < 1 {
		count = 1
	}

	if donorIsRight {
		for i := 0; i < count; i++ {
			key, _ := donorNode.keys.Get(0)
			val, _ := donorNode.values.Get(0)
			donorNode.keys.Erase(0)
			donorNode.values.Erase(0)
			_ = n.keys.PushBack(key)
			_ = n.values.PushBack(val)
		}

		t.adjustParentKey(donor)

		return nil
	}

	keys := make([]K, count)
	vals := make([]V, count)

	for i := 0; i < count; i++ {
		last := donorNode.size() - 1
		keys[count-1-i] = donorNode.keys.At(last)
		vals[count-1-i] = donorNode.values.At(last)
		donorNode.keys.PopBack()
		donorNode.values.PopBack()
	}

	if err := n.keys.InsertGap(0, count); err != nil {
		return err
	}

	if err := n.values.InsertGap(0, count); err != nil {
		return err
	}

	for i := 0; i < count; i++ {
		n.keys.Set(i, keys[i])
		n.values.Set(i, vals[i])
	}

	t.adjustParentKey(leafHandle)

	return nil
}

// mergeLeaf concatenates right's entries onto left, inherits right's next
// link, removes right from the parent, and marks right deleted.
func (t *Tree[K, V, H]) mergeLeaf(leftH, rightH H) error {
	left := t.arena.mustLeaf(leftH)
	right := t.arena.mustLeaf(rightH)

	for i := 0; i < right.keys.Len(); i++ {
		if err := left.keys.PushBack(right.keys.At(i)); err != nil {
			return err
		}

		if err := left.values.PushBack(right.values.At(i)); err != nil {
			return err
		}
	}

	newNext := right.next
	left.next = newNext

	if newNext != invalidHandle[H]() {
		t.arena.mustLeaf(newNext).prev = leftH
	}

	parent := right.parent
	if err := t.eraseInternal(parent, rightH); err != nil {
		return err
	}

	right.markDeleted()

	return nil
}

// eraseInternal removes childHandle from parent's children along with
// the router key that corresponds to it, rebalancing parent afterward if
// that drops it below minimum fill.
func (t *Tree[K, V, H]) eraseInternal(parentHandle H, childHandle H) error {
	n := t.arena.mustInternal(parentHandle)
	keyIdx, childIdx, isLeftmost := n.iteratorsFor(childHandle).Unpack()

	n.children.Erase(childIdx)

	if isLeftmost {
		debugAssert(n.keys.Len() > 0, "eraseInternal: leftmost removal needs a key to drop")
		n.keys.Erase(0)
	} else {
		n.keys.Erase(keyIdx)
	}

	if n.size() < t.traits.Mi {
		return t.rebalanceInternal(parentHandle)
	}

	return nil
}

// rebalanceInternal restores minimum fill for an under-min internal node,
// or — at the root — shrinks the tree when the root has been reduced to
// a single child.
func (t *Tree[K, V, H]) rebalanceInternal(nodeHandle H) error {
	n := t.arena.mustInternal(nodeHandle)
	if n.parent == invalidHandle[H]() {
		if n.size() == 0 {
			return t.shrink()
		}

		return nil
	}

	parent := t.arena.mustInternal(n.parent)
	prevH, nextH := parent.siblingsOf(nodeHandle).Unpack()

	canDonate := func(h H) bool {
		return h != invalidHandle[H]() && t.arena.mustInternal(h).size() > t.traits.Mi
	}

	donorOpt, donorIsRight := pickDonor(prevH, nextH, canDonate, func(h H) int { return t.arena.mustInternal(h).size() })
	if donorOpt.IsNone() {
		if nextH != invalidHandle[H]() {
			return t.mergeInternal(nodeHandle, nextH)
		}

		debugAssert(prevH != invalidHandle[H](), "rebalanceInternal: non-root internal has no siblings")

		return t.mergeInternal(prevH, nodeHandle)
	}

	donor := donorOpt.Unwrap()
	donorNode := t.arena.mustInternal(donor)

	// target is the receiver's post-donation size, not the transfer
	// count: it should land on the midpoint of the combined pair, so the
	// number of keys/children actually moved is that midpoint minus what
	// the receiver already has.
	target := mid(0, n.size()+donorNode.size())
	count := target - n.size()

	if count < 1 {
		count = 1
	}

	newNodeSize := n.size() + count

	if donorIsRight {
		combinedKeys, combinedChildren, parentHandle, parentKeyIdx := t.combineInternal(nodeHandle, donor)

		t.redistributeInternal(n, donorNode, nodeHandle, donor, combinedKeys, combinedChildren, newNodeSize)
		t.arena.mustInternal(parentHandle).keys.Set(parentKeyIdx, combinedKeys[newNodeSize])

		return nil
	}

	combinedKeys, combinedChildren, parentHandle, parentKeyIdx := t.combineInternal(donor, nodeHandle)

	total := len(combinedKeys)
	newDonorSize := total - 1 - newNodeSize

	t.redistributeInternal(donorNode, n, donor, nodeHandle, combinedKeys, combinedChildren, newDonorSize)
	t.arena.mustInternal(parentHandle).keys.Set(parentKeyIdx, combinedKeys[newDonorSize])

	return nil
}

// mergeInternal concatenates right's keys and children onto left, with
// the router that separated them folded into the merged key list,
// reparents every transferred child to left, removes right from the
// parent, and marks right deleted.
func (t *Tree[K, V, H]) mergeInternal(leftH, rightH H) error {
	left := t.arena.mustInternal(leftH)
	right := t.arena.mustInternal(rightH)

	combinedKeys, combinedChildren, _, _ := t.combineInternal(leftH, rightH)

	left.keys.Clear()
	left.children.Clear()

	for _, k := range combinedKeys {
		if err := left.keys.PushBack(k); err != nil {
			return err
		}
	}

	for _, c := range combinedChildren {
		if err := left.children.PushBack(c); err != nil {
			return err
		}

		t.arena.mustInternalOrLeaf(c).parent = leftH
	}

	parentHandle := right.parent
	if err := t.eraseInternal(parentHandle, rightH); err != nil {
		return err
	}

	right.markDeleted()

	return nil
}

// combineInternal builds the conceptual merged key/child sequence of two
// adjacent siblings plus the router that separates them in their common
// parent, without mutating either node. It returns the parent's handle
// and the index of that router key, so callers can both redistribute the
// combined sequence and write back whichever key ends up as the new
// router.
func (t *Tree[K, V, H]) combineInternal(leftH, rightH H) ([]K, []H, H, int) {
	left := t.arena.mustInternal(leftH)
	right := t.arena.mustInternal(rightH)

	parentHandle := left.parent
	parent := t.arena.mustInternal(parentHandle)

	keyIdx, _, isLeftmost := parent.iteratorsFor(rightH).Unpack()
	debugAssert(!isLeftmost, "combineInternal: right-hand sibling has no router in parent")

	router := parent.keys.At(keyIdx)

	keys := make([]K, 0, left.keys.Len()+1+right.keys.Len())
	keys = append(keys, left.keys.Slice()...)
	keys = append(keys, router)
	keys = append(keys, right.keys.Slice()...)

	children := make([]H, 0, left.children.Len()+right.children.Len())
	children = append(children, left.children.Slice()...)
	children = append(children, right.children.Slice()...)

	return keys, children, parentHandle, keyIdx
}

// redistributeInternal splits a combined key/child sequence (as built by
// combineInternal) back into left and right at newLeftSize keys, dropping
// the key at that boundary (it becomes the new router, written back by
// the caller), and reparents every child to its new owner.
func (t *Tree[K, V, H]) redistributeInternal(left, right *node[K, V, H], leftH, rightH H, keys []K, children []H, newLeftSize int) {
	left.keys.Clear()
	left.children.Clear()
	right.keys.Clear()
	right.children.Clear()

	for i := 0; i < newLeftSize; i++ {
		_ = left.keys.PushBack(keys[i])
	}

	for i := newLeftSize + 1; i < len(keys); i++ {
		_ = right.keys.PushBack(keys[i])
	}

	for i := 0; i <= newLeftSize; i++ {
		_ = left.children.PushBack(children[i])
		t.arena.mustInternalOrLeaf(children[i]).parent = leftH
	}

	for i := newLeftSize + 1; i < len(children); i++ {
		_ = right.children.PushBack(children[i])
		t.arena.mustInternalOrLeaf(children[i]).parent = rightH
	}
}

// pickDonor chooses which of two siblings (if either) should donate
// entries to restore a deficient node's minimum fill: whichever sibling
// both can spare entries and holds more of them. The returned Option is
// None when neither sibling can donate, meaning the caller must merge
// instead.
func pickDonor[H Handle](prevH, nextH H, canDonate func(H) bool, size func(H) int) (donor opt.Option[H], donorIsRight bool) {
	prevCan := canDonate(prevH)
	nextCan := canDonate(nextH)

	switch {
	case prevCan && nextCan:
		if size(prevH) >= size(nextH) {
			return opt.Some(prevH), false
		}

		return opt.Some(nextH), true
	case prevCan:
		return opt.Some(prevH), false
	case nextCan:
		return opt.Some(nextH), true
	default:
		return opt.None[H](), false
	}
}
