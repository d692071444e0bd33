package bptree

import "cmp"

// lowerBound returns the first index in [0, keys.Len()) whose key is not
// less than target, or keys.Len() if no such index exists.
func lowerBound[K cmp.Ordered](keys []K, target K) int {
	lo, hi := 0, len(keys)

	for lo < hi {
		m := mid(lo, hi)

		if keys[m] < target {
			lo = m + 1
		} else {
			hi = m
		}
	}

	return lo
}

// upperBound returns the first index in [0, keys.Len()) whose key is
// strictly greater than target, or keys.Len() if no such index exists.
func upperBound[K cmp.Ordered](keys []K, target K) int {
	lo, hi := 0, len(keys)

	for lo < hi {
		m := mid(lo, hi)

		if target < keys[m] {
			hi = m
		} else {
			lo = m + 1
		}
	}

	return lo
}

// find descends from the root following the first-key-of-right-subtree
// router convention: at an internal node, the child taken is the one
// strictly to the right of key, except when key is present as a router,
// in which case the right child is followed. At the leaf, the position
// is returned only if it actually holds key; otherwise the end iterator.
func (t *Tree[K, V, H]) find(key K) Iterator[K, V, H] {
	h := t.root

	for {
		n := t.arena.mustInternalOrLeaf(h)
		if n.isLeaf() {
			pos := lowerBound(n.keys.Slice(), key)
			if pos < n.keys.Len() && n.keys.At(pos) == key {
				return Iterator[K, V, H]{tree: t, leaf: h, pos: pos}
			}

			return t.End()
		}

		rank := lowerBound(n.keys.Slice(), key)
		if rank < n.keys.Len() && n.keys.At(rank) == key {
			rank++
		}

		h = n.children.At(rank)
	}
}

// findLast descends using upperBound at every internal node, then backs
// up one slot at the leaf; it returns the end iterator when that slot's
// key is strictly less than key (key absent entirely).
func (t *Tree[K, V, H]) findLast(key K) Iterator[K, V, H] {
	h := t.root

	for {
		n := t.arena.mustInternalOrLeaf(h)
		if n.isLeaf() {
			pos := upperBound(n.keys.Slice(), key)
			if pos == 0 {
				return t.End()
			}

			pos--
			if n.keys.At(pos) < key {
				return t.End()
			}

			return Iterator[K, V, H]{tree: t, leaf: h, pos: pos}
		}

		rank := upperBound(n.keys.Slice(), key)
		h = n.children.At(rank)
	}
}

// findInsertPosition descends using upperBound at internal nodes and
// returns the leaf position where key should be spliced to keep keys
// non-decreasing, ordering equal keys after any existing equal keys.
func (t *Tree[K, V, H]) findInsertPosition(key K, start H) (H, int) {
	h := start

	for {
		n := t.arena.mustInternalOrLeaf(h)
		if n.isLeaf() {
			return h, upperBound(n.keys.Slice(), key)
		}

		rank := upperBound(n.keys.Slice(), key)
		h = n.children.At(rank)
	}
}

// minKey recursively follows leftmost children until a leaf, returning
// its first key. Used to recompute propagated split pivots and by
// adjustParentKey when no replacement key is given explicitly.
func (t *Tree[K, V, H]) minKey(h H) K {
	for {
		n := t.arena.mustInternalOrLeaf(h)
		if n.isLeaf() {
			debugAssert(n.keys.Len() > 0, "minKey: leaf %v is empty", h)
			return n.keys.At(0)
		}

		h = n.children.At(0)
	}
}

// mustInternalOrLeaf is a convenience wrapper used by traversal code that
// branches on the variant itself rather than asserting one in advance.
func (a *arena[K, V, H]) mustInternalOrLeaf(h H) *node[K, V, H] {
	return a.nodes[h]
}
