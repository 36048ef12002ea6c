// Copyright 2026 The geoindex (Go) Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package packedrtree

import (
	"cmp"
	"fmt"
	"math"
	"slices"
)

const (
	// MinNodeSize is the smallest permitted number of children per
	// node.
	MinNodeSize = 4
	// DefaultNodeSize is the node size callers should use absent a
	// reason to prefer another.
	DefaultNodeSize = 8
)

// RTree is a static R-Tree packed with the Sort-Tile-Recursive
// algorithm. The zero value is not usable; create trees with Pack or
// Unmarshal.
//
// An RTree is immutable, so concurrent searches are safe.
type RTree[T any] struct {
	root       Node[T]
	nodeSize   int
	numEntries int
	height     int
}

// Pack bulk-loads a new RTree from a batch of entries, each node
// holding at most nodeSize children. The entries slice is copied and
// is not modified. Returns an error wrapping ErrInvalidConfiguration
// if nodeSize is less than MinNodeSize.
//
// Pack is deterministic: the same entries in the same order always
// produce the same tree. Entries whose boxes compare equal keep their
// relative input order.
//
// Packing an empty batch produces an empty tree whose searches always
// return no results.
func Pack[T any](entries []Entry[T], nodeSize int) (*RTree[T], error) {
	if nodeSize < MinNodeSize {
		return nil, wrapErr("node size %d is less than %d", ErrInvalidConfiguration, nodeSize, MinNodeSize)
	}

	if len(entries) == 0 {
		return &RTree[T]{root: emptyLeaf[T](), nodeSize: nodeSize, height: 1}, nil
	}

	items := make([]Entry[T], len(entries))
	copy(items, entries)

	// Leaf level.
	groups := tile(items, func(e Entry[T]) Box { return e.Box }, nodeSize)
	level := make([]Node[T], len(groups))
	for i := range groups {
		level[i] = newLeaf(groups[i])
	}
	height := 1

	// Interior levels, until one node can hold the whole level.
	for len(level) > nodeSize {
		groups := tile(level, func(n Node[T]) Box { return n.Bounds() }, nodeSize)
		next := make([]Node[T], len(groups))
		for i := range groups {
			next[i] = newBranch(groups[i])
		}
		level = next
		height++
	}

	return &RTree[T]{
		root:       newBranch(level),
		nodeSize:   nodeSize,
		numEntries: len(entries),
		height:     height + 1,
	}, nil
}

// tile sorts items in place into STR order and partitions them into
// groups of at most nodeSize items, each of which becomes one node of
// the next level up.
//
// With n items, the items are first sorted by XMin and cut into
// ceil(sqrt(ceil(n/nodeSize))) vertical slices; each slice is then
// sorted by YMin and cut into groups. Both sorts are stable.
func tile[I any](items []I, box func(I) Box, nodeSize int) [][]I {
	n := len(items)
	numGroups := (n + nodeSize - 1) / nodeSize
	numSlices := int(math.Ceil(math.Sqrt(float64(numGroups))))
	sliceSize := numSlices * nodeSize

	slices.SortStableFunc(items, func(a, b I) int {
		return cmp.Compare(box(a).XMin, box(b).XMin)
	})

	groups := make([][]I, 0, numGroups)
	for i := 0; i < n; i += sliceSize {
		s := items[i:min(i+sliceSize, n)]
		slices.SortStableFunc(s, func(a, b I) int {
			return cmp.Compare(box(a).YMin, box(b).YMin)
		})
		for j := 0; j < len(s); j += nodeSize {
			k := min(j+nodeSize, len(s))
			groups = append(groups, s[j:k:k])
		}
	}
	return groups
}

// Root returns the root node. A tree with no entries has an empty
// *Leaf root; any other tree has a *Branch root.
func (t *RTree[T]) Root() Node[T] {
	return t.root
}

// Bounds returns the box around all entries in the tree. For an empty
// tree this is the degenerate box at the origin.
func (t *RTree[T]) Bounds() Box {
	return t.root.Bounds()
}

// Len returns the number of entries in the tree.
func (t *RTree[T]) Len() int {
	return t.numEntries
}

// NodeSize returns the maximum number of children per node.
func (t *RTree[T]) NodeSize() int {
	return t.nodeSize
}

// Height returns the number of levels in the tree, counting the leaf
// level and the root. Every leaf is at the same depth.
func (t *RTree[T]) Height() int {
	return t.height
}

// String returns a summary description of the tree.
func (t *RTree[T]) String() string {
	return fmt.Sprintf("RTree{Bounds:%s,Len:%d,NodeSize:%d,Height:%d}", t.Bounds(), t.numEntries, t.nodeSize, t.height)
}

// SearchIntersect returns the values of all entries whose boxes
// intersect q, boundaries included. Results are in depth-first packing
// order. The result is never nil.
func (t *RTree[T]) SearchIntersect(q Box) []T {
	return t.search(q, Box.Intersects)
}

// SearchTouch returns the values of all entries whose boxes touch q
// without overlapping it in a region of positive area. Results are in
// depth-first packing order. The result is never nil.
func (t *RTree[T]) SearchTouch(q Box) []T {
	return t.search(q, Box.Touches)
}

// Visit calls f for every entry in depth-first packing order, the same
// order in which searches report results, stopping early if f returns
// false.
func (t *RTree[T]) Visit(f func(e Entry[T]) bool) {
	bag := ticketBag[T]{t.root}
	for len(bag) > 0 {
		switch n := bag.pop().(type) {
		case *Leaf[T]:
			for i := range n.entries {
				if !f(n.entries[i]) {
					return
				}
			}
		case *Branch[T]:
			for i := len(n.children) - 1; i >= 0; i-- {
				bag.push(n.children[i])
			}
		}
	}
}

// search walks the tree depth-first, pruning every subtree whose box
// does not intersect q, and collects the leaf entries for which
// match(entry, q) holds.
func (t *RTree[T]) search(q Box, match func(Box, Box) bool) []T {
	r := make([]T, 0)
	if !t.root.Bounds().Intersects(q) {
		return r
	}

	bag := ticketBag[T]{t.root}
	for len(bag) > 0 {
		switch n := bag.pop().(type) {
		case *Leaf[T]:
			for i := range n.entries {
				if match(n.entries[i].Box, q) {
					r = append(r, n.entries[i].Value)
				}
			}
		case *Branch[T]:
			// Push in reverse so that children pop in packing order.
			for i := len(n.children) - 1; i >= 0; i-- {
				if n.children[i].Bounds().Intersects(q) {
					bag.push(n.children[i])
				}
			}
		}
	}
	return r
}

// A ticketBag is the stack of nodes pending a visit during a
// depth-first traversal.
type ticketBag[T any] []Node[T]

func (tb *ticketBag[T]) push(n Node[T]) {
	*tb = append(*tb, n)
}

func (tb *ticketBag[T]) pop() Node[T] {
	old := *tb
	k := len(old)
	n := old[k-1]
	old[k-1] = nil
	*tb = old[:k-1]
	return n
}
