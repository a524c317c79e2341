// Package tree implements an ordered multi-way tree that indexes values by a
// sequence of keys. Siblings are kept sorted by key so that every level can be
// binary searched and two trees can be walked side by side in linear time.
package tree

import (
	"iter"
	"slices"
)

// Ordered is implemented by keys that carry a total order.
type Ordered[K any] interface {
	Compare(other K) int
}

// Keyed is implemented by values that know the key they are stored under.
type Keyed[K any] interface {
	Key() K
}

// SubTree is either a Node holding a value or a Branch holding a key and
// the nested Tree beneath it.
type SubTree[K Ordered[K], V Keyed[K]] struct {
	key      K
	value    V
	children *Tree[K, V]
}

// Tree is a non-empty sequence of sub trees with strictly increasing keys.
type Tree[K Ordered[K], V Keyed[K]] struct {
	subs []*SubTree[K, V]
}

// Forest is an optional Tree. The zero value is an empty forest.
type Forest[K Ordered[K], V Keyed[K]] struct {
	root *Tree[K, V]
}

// Combine merges a value into one already stored at the same key.
type Combine[V any] func(existing V) V

func node[K Ordered[K], V Keyed[K]](value V) *SubTree[K, V] {
	return &SubTree[K, V]{key: value.Key(), value: value}
}

func branch[K Ordered[K], V Keyed[K]](key K, children *Tree[K, V]) *SubTree[K, V] {
	return &SubTree[K, V]{key: key, children: children}
}

// build wraps value in one branch per key, deepest key innermost.
func build[K Ordered[K], V Keyed[K]](keys []K, value V) *SubTree[K, V] {
	sub := node[K](value)
	for i := len(keys) - 1; i >= 0; i-- {
		sub = branch(keys[i], &Tree[K, V]{subs: []*SubTree[K, V]{sub}})
	}
	return sub
}

// Key returns the key the sub tree is sorted by.
func (s *SubTree[K, V]) Key() K { return s.key }

// IsNode reports whether s is a leaf.
func (s *SubTree[K, V]) IsNode() bool { return s.children == nil }

// IsBranch reports whether s holds nested children.
func (s *SubTree[K, V]) IsBranch() bool { return s.children != nil }

// Value returns the leaf value. It is the zero value for a branch.
func (s *SubTree[K, V]) Value() V { return s.value }

// Children returns the nested tree of a branch, or nil for a node.
func (s *SubTree[K, V]) Children() *Tree[K, V] { return s.children }

// Forest returns the branch children as a Forest. A node yields an empty one.
func (s *SubTree[K, V]) Forest() Forest[K, V] {
	return Forest[K, V]{root: s.children}
}

func (s *SubTree[K, V]) clone() *SubTree[K, V] {
	c := &SubTree[K, V]{key: s.key, value: s.value}
	if s.children != nil {
		c.children = s.children.clone()
	}
	return c
}

func (s *SubTree[K, V]) maximumBy(cmp func(a, b V) int) V {
	if s.IsNode() {
		return s.value
	}
	return s.children.maximumBy(cmp)
}

func (s *SubTree[K, V]) walk(yield func(V) bool) bool {
	if s.IsNode() {
		return yield(s.value)
	}
	return s.children.walk(yield)
}

// SubTrees returns the siblings in key order.
func (t *Tree[K, V]) SubTrees() []*SubTree[K, V] { return t.subs }

// Len returns the number of siblings.
func (t *Tree[K, V]) Len() int { return len(t.subs) }

func (t *Tree[K, V]) search(key K) (int, bool) {
	return slices.BinarySearchFunc(t.subs, key, func(s *SubTree[K, V], k K) int {
		return s.key.Compare(k)
	})
}

func (t *Tree[K, V]) insert(keys []K, value V, combine Combine[V]) {
	if len(keys) == 0 {
		i, found := t.search(value.Key())
		if !found {
			t.subs = slices.Insert(t.subs, i, node[K](value))
			return
		}
		sub := t.subs[i]
		if sub.IsBranch() {
			// a path ending on a branch adds the node beneath it
			sub.children.insert(nil, value, combine)
			return
		}
		if combine != nil {
			sub.value = combine(sub.value)
		} else {
			sub.value = value
		}
		sub.key = sub.value.Key()
		return
	}

	head, tail := keys[0], keys[1:]
	i, found := t.search(head)
	if !found {
		t.subs = slices.Insert(t.subs, i, build(keys, value))
		return
	}
	sub := t.subs[i]
	if sub.IsNode() {
		// promote the leaf to a branch holding the rest of the path
		t.subs[i] = branch(head, &Tree[K, V]{subs: []*SubTree[K, V]{build(tail, value)}})
		return
	}
	sub.children.insert(tail, value, combine)
}

func (t *Tree[K, V]) find(keys []K) *SubTree[K, V] {
	for {
		i, found := t.search(keys[0])
		if !found {
			return nil
		}
		sub := t.subs[i]
		if len(keys) == 1 {
			return sub
		}
		if sub.IsNode() {
			return nil
		}
		t, keys = sub.children, keys[1:]
	}
}

func (t *Tree[K, V]) maximumBy(cmp func(a, b V) int) V {
	best := t.subs[0].maximumBy(cmp)
	for _, sub := range t.subs[1:] {
		if v := sub.maximumBy(cmp); cmp(v, best) > 0 {
			best = v
		}
	}
	return best
}

func (t *Tree[K, V]) walk(yield func(V) bool) bool {
	for _, sub := range t.subs {
		if !sub.walk(yield) {
			return false
		}
	}
	return true
}

func (t *Tree[K, V]) clone() *Tree[K, V] {
	subs := make([]*SubTree[K, V], len(t.subs))
	for i, sub := range t.subs {
		subs[i] = sub.clone()
	}
	return &Tree[K, V]{subs: subs}
}

// IsEmpty reports whether the forest holds no tree.
func (f *Forest[K, V]) IsEmpty() bool { return f.root == nil }

// Tree returns the underlying tree, or nil when the forest is empty.
func (f *Forest[K, V]) Tree() *Tree[K, V] { return f.root }

// Children returns the top level sub trees in key order.
func (f *Forest[K, V]) Children() []*SubTree[K, V] {
	if f.root == nil {
		return nil
	}
	return f.root.subs
}

// Insert stores value at the position addressed by keys.
//
// keys name the branches leading to the value; the value's own key names
// the leaf. An existing node at that position is replaced. A node met
// before keys are exhausted is promoted to a branch. A path that stops at
// an existing branch inserts the node among that branch's children.
func (f *Forest[K, V]) Insert(keys []K, value V) {
	f.InsertWith(keys, value, nil)
}

// InsertWith behaves like Insert, except that a node already stored at the
// exact position is replaced by combine(existing) instead of value.
func (f *Forest[K, V]) InsertWith(keys []K, value V, combine Combine[V]) {
	if f.root == nil {
		f.root = &Tree[K, V]{subs: []*SubTree[K, V]{build(keys, value)}}
		return
	}
	f.root.insert(keys, value, combine)
}

// Find returns the sub tree at the exact terminal key, or nil if any key
// along the way is missing or a node is reached before keys run out.
// keys must not be empty.
func (f *Forest[K, V]) Find(keys []K) *SubTree[K, V] {
	if len(keys) == 0 {
		panic("tree: Find called with an empty key sequence")
	}
	if f.root == nil {
		return nil
	}
	return f.root.find(keys)
}

// FindNode is Find restricted to leaves.
func (f *Forest[K, V]) FindNode(keys []K) (V, bool) {
	if sub := f.Find(keys); sub != nil && sub.IsNode() {
		return sub.value, true
	}
	var zero V
	return zero, false
}

// FindBranch is Find restricted to branches.
func (f *Forest[K, V]) FindBranch(keys []K) (Forest[K, V], bool) {
	if sub := f.Find(keys); sub != nil && sub.IsBranch() {
		return Forest[K, V]{root: sub.children}, true
	}
	return Forest[K, V]{}, false
}

// MaximumBy returns the greatest leaf value under cmp across the whole
// forest. It reports false only when the forest is empty.
func (f *Forest[K, V]) MaximumBy(cmp func(a, b V) int) (V, bool) {
	if f.root == nil {
		var zero V
		return zero, false
	}
	return f.root.maximumBy(cmp), true
}

// All yields every leaf value in key order, depth first.
func (f *Forest[K, V]) All() iter.Seq[V] {
	return func(yield func(V) bool) {
		if f.root != nil {
			f.root.walk(yield)
		}
	}
}

// Clone returns a deep copy of the forest structure. Values are copied by
// assignment.
func (f *Forest[K, V]) Clone() Forest[K, V] {
	if f.root == nil {
		return Forest[K, V]{}
	}
	return Forest[K, V]{root: f.root.clone()}
}
