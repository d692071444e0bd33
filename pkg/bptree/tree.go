package bptree

import (
	"cmp"

	"bptree/pkg/opt"
	"bptree/pkg/tuple"
)

// Tree is an in-memory, ordered multimap built on a B+ tree: every
// (key, value) pair lives at a leaf, internal nodes exist only to route
// searches, and leaves are doubly linked so sequential scans in either
// direction never revisit an internal node. Equal keys are permitted and
// kept in insertion order among themselves — this is a multimap, not a
// set.
//
// K, V, H are the construction-time parameters the design notes call
// (K, V, H, Oi, Ol): key type, value type, and the unsigned handle type
// used as the sole form of inter-node reference. Oi and Ol (the fan-outs)
// arrive as constructor arguments rather than type parameters, since Go's
// generics carry no compile-time integers.
type Tree[K cmp.Ordered, V any, H Handle] struct {
	root   H
	arena  *arena[K, V, H]
	traits traits
	count  int
}

// New constructs an empty tree whose internal nodes hold up to oi keys
// (oi+1 children) and whose leaves hold up to ol keys and values. The
// root begins life as a single empty leaf: the root leaf is empty
// exactly when the tree is empty.
func New[K cmp.Ordered, V any, H Handle](oi, ol int) (*Tree[K, V, H], error) {
	tr, err := newTraits[H](oi, ol)
	if err != nil {
		return nil, err
	}

	a := newArena[K, V, H](oi, ol)

	root, err := a.appendLeaf(invalidHandle[H]())
	if err != nil {
		return nil, err
	}

	return &Tree[K, V, H]{root: root, arena: a, traits: tr}, nil
}

// Len returns the number of entries currently stored.
func (t *Tree[K, V, H]) Len() int { return t.count }

// Depth returns the number of levels from the root to the leaves,
// inclusive: 1 for a tree whose root is a leaf, 1+depth(leftmost child)
// for an internal root. All leaves share the same depth (global
// invariant 3), so the leftmost spine is representative of every other.
func (t *Tree[K, V, H]) Depth() int {
	depth := 1
	h := t.root

	for {
		n := t.arena.mustInternalOrLeaf(h)
		if n.isLeaf() {
			return depth
		}

		depth++
		h = n.children.At(0)
	}
}

// Insert splices (key, value) into the tree, splitting and propagating
// as needed to keep every node within its fan-out. It always succeeds
// except on resource exhaustion (arena handle space, or every node along
// the insert path already full at whatever capacity the caller chose).
// Duplicate keys are admitted and ordered after any existing equal keys.
func (t *Tree[K, V, H]) Insert(key K, value V) (bool, error) {
	if err := t.insert(key, value); err != nil {
		return false, err
	}

	t.count++

	return true, nil
}

// Erase removes the single entry it points at, rebalancing ancestors as
// needed to restore minimum fill, and returns the number of entries
// removed (always 1 for a valid, non-end iterator). it is invalidated by
// this call, along with every other outstanding iterator over t.
func (t *Tree[K, V, H]) Erase(it Iterator[K, V, H]) (int, error) {
	n, err := t.eraseEntry(it)
	if err != nil {
		return 0, err
	}

	t.count -= n

	return n, nil
}

// EraseRange removes every entry in [first, last). A range erase is
// declared in the original API this package reimplements but, per its
// design notes, not exercised by any test beyond repeated single-element
// erase — so this is implemented the same way the original's own test
// suite drives it: erase the entry logically at first's position,
// repeated once per entry in the range. Because erasing invalidates
// iterators (merges and donations can retire the very leaf first names),
// the loop re-anchors by rank in the in-order sequence rather than by
// replaying the stale iterator, which stays correct across any
// rebalancing the erases trigger.
func (t *Tree[K, V, H]) EraseRange(first, last Iterator[K, V, H]) (int, error) {
	rank := 0
	for it := t.Begin(); !it.Equal(first); it = it.Next() {
		rank++
	}

	n := 0
	for it := first; !it.Equal(last); it = it.Next() {
		n++
	}

	erased := 0
	for i := 0; i < n; i++ {
		it := t.iteratorAtRank(rank)

		c, err := t.Erase(it)
		if err != nil {
			return erased, err
		}

		erased += c
	}

	return erased, nil
}

// iteratorAtRank walks from Begin() rank steps forward. Used only by
// EraseRange, where re-deriving a position by rank rather than by a
// carried-over iterator is what keeps the loop correct across merges.
func (t *Tree[K, V, H]) iteratorAtRank(rank int) Iterator[K, V, H] {
	it := t.Begin()
	for i := 0; i < rank; i++ {
		it = it.Next()
	}

	return it
}

// Find returns an iterator at key's position, or End() if key is absent.
// When key is also a router key, the search descends to that router's
// right, so Find returns the first duplicate within the leaf it reaches;
// equal keys held in leaves further left are not returned.
func (t *Tree[K, V, H]) Find(key K) Iterator[K, V, H] { return t.find(key) }

// FindLast returns an iterator at the last position holding key, or
// End() if key is absent.
func (t *Tree[K, V, H]) FindLast(key K) Iterator[K, V, H] { return t.findLast(key) }

// Contains reports whether key is present.
func (t *Tree[K, V, H]) Contains(key K) bool { return !t.find(key).atEnd() }

// Begin returns an iterator at the smallest entry, or End() if the tree
// is empty.
func (t *Tree[K, V, H]) Begin() Iterator[K, V, H] {
	leaf := t.firstLeaf()
	n := t.arena.mustLeaf(leaf)

	if n.size() == 0 {
		return t.End()
	}

	return Iterator[K, V, H]{tree: t, leaf: leaf, pos: 0}
}

// End returns the tree's unique end sentinel.
func (t *Tree[K, V, H]) End() Iterator[K, V, H] {
	return Iterator[K, V, H]{tree: t, leaf: invalidHandle[H](), pos: 0}
}

// First returns the smallest (key, value) pair, or opt.None if the tree
// is empty.
func (t *Tree[K, V, H]) First() opt.Option[tuple.Tuple2[K, V]] {
	it := t.Begin()
	if it.atEnd() {
		return opt.None[tuple.Tuple2[K, V]]()
	}

	return opt.Some(tuple.New2(it.Key(), it.Value()))
}

// Last returns the largest (key, value) pair, or opt.None if the tree is
// empty.
func (t *Tree[K, V, H]) Last() opt.Option[tuple.Tuple2[K, V]] {
	leaf := t.lastLeaf()
	n := t.arena.mustLeaf(leaf)

	if n.size() == 0 {
		return opt.None[tuple.Tuple2[K, V]]()
	}

	it := Iterator[K, V, H]{tree: t, leaf: leaf, pos: n.size() - 1}

	return opt.Some(tuple.New2(it.Key(), it.Value()))
}

// firstLeaf follows leftmost children from the root to the first leaf.
func (t *Tree[K, V, H]) firstLeaf() H {
	h := t.root

	for {
		n := t.arena.mustInternalOrLeaf(h)
		if n.isLeaf() {
			return h
		}

		h = n.children.At(0)
	}
}

// lastLeaf follows rightmost children from the root to the last leaf.
func (t *Tree[K, V, H]) lastLeaf() H {
	h := t.root

	for {
		n := t.arena.mustInternalOrLeaf(h)
		if n.isLeaf() {
			return h
		}

		h = n.children.At(n.children.Len() - 1)
	}
}

// Equal reports whether t and other hold the same in-order sequence of
// (key, value) pairs, using eq to compare values. Equality does not
// depend on insertion order for the same multiset of pairs.
func (t *Tree[K, V, H]) Equal(other *Tree[K, V, H], eq func(x, y V) bool) bool {
	return Equal[K, V, H, H](t, other, eq)
}

// Equal is Tree.Equal's free-function form, usable across two trees that
// differ in handle type H (e.g. a tree rebuilt with a narrower handle
// after a bulk load) since the handle type never appears in the in-order
// sequence being compared.
func Equal[K cmp.Ordered, V any, H1, H2 Handle](a *Tree[K, V, H1], b *Tree[K, V, H2], eq func(x, y V) bool) bool {
	ai, bi := a.Begin(), b.Begin()

	for !ai.atEnd() && !bi.atEnd() {
		if ai.Key() != bi.Key() || !eq(ai.Value(), bi.Value()) {
			return false
		}

		ai, bi = ai.Next(), bi.Next()
	}

	return ai.atEnd() && bi.atEnd()
}

// Clone deep-copies the arena and root handle, per the copy semantics
// spelled out alongside the arena's global invariants: the clone shares
// no node storage with t.
func (t *Tree[K, V, H]) Clone() *Tree[K, V, H] {
	return &Tree[K, V, H]{
		root:   t.root,
		arena:  t.arena.clone(),
		traits: t.traits,
		count:  t.count,
	}
}
