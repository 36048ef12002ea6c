// Copyright 2026 The geoindex (Go) Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package packedrtree

import "fmt"

// An Entry is a single item stored in a leaf of an RTree: the bounding
// box of some object plus an opaque payload identifying it. The tree
// never inspects or modifies the payload.
type Entry[T any] struct {
	Box
	Value T
}

// String returns a summary of the Entry.
func (e Entry[T]) String() string {
	return fmt.Sprintf("Entry{%s,Value:%v}", e.Box, e.Value)
}

// A Node is either a *Leaf or a *Branch. The set of Node
// implementations is closed; use a type switch to tell them apart.
//
// Every node's Bounds is exactly the union of the boxes directly
// below it.
type Node[T any] interface {
	Bounds() Box
	node()
}

// A Leaf is a bottom-level node holding entries.
type Leaf[T any] struct {
	box     Box
	entries []Entry[T]
}

func (l *Leaf[T]) Bounds() Box { return l.box }

// Entries returns the leaf's entries in packing order. The returned
// slice belongs to the tree and must not be modified.
func (l *Leaf[T]) Entries() []Entry[T] { return l.entries }

func (l *Leaf[T]) node() {}

// A Branch is an interior node holding child nodes. All children of a
// Branch are at the same height.
type Branch[T any] struct {
	box      Box
	children []Node[T]
}

func (b *Branch[T]) Bounds() Box { return b.box }

// Children returns the branch's child nodes in packing order. The
// returned slice belongs to the tree and must not be modified.
func (b *Branch[T]) Children() []Node[T] { return b.children }

func (b *Branch[T]) node() {}

func newLeaf[T any](entries []Entry[T]) *Leaf[T] {
	box := EmptyBox
	for i := range entries {
		box.Expand(&entries[i].Box)
	}
	return &Leaf[T]{box: box, entries: entries}
}

func newBranch[T any](children []Node[T]) *Branch[T] {
	box := EmptyBox
	for _, c := range children {
		cb := c.Bounds()
		box.Expand(&cb)
	}
	return &Branch[T]{box: box, children: children}
}

// emptyLeaf returns the root of a tree with no entries. Its box is the
// degenerate box at the origin; since the leaf holds no entries, a
// search which reaches it still finds nothing.
func emptyLeaf[T any]() *Leaf[T] {
	return &Leaf[T]{entries: []Entry[T]{}}
}
