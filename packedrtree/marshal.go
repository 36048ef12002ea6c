// Copyright 2026 The geoindex (Go) Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package packedrtree

import (
	"io"
	"math"

	flatbuffers "github.com/google/flatbuffers/go"
)

// A snapshot consists of the magic number followed by one size-prefixed
// FlatBuffers table with the following schema:
//
//	table Entry { xmin:double; ymin:double; xmax:double; ymax:double; payload:[ubyte]; }
//	table Node  { leaf:bool; children:[uint]; }
//	table Index { node_size:uint; num_entries:uint; nodes:[Node]; entries:[Entry]; }
//	root_type Index;
//
// Nodes are listed in depth-first pre-order, so the root is node 0 and
// every child index is greater than its parent's. The children of a
// leaf are indices into entries; the children of any other node are
// indices into nodes. Node boxes are not stored: they are recomputed
// from the entries when a snapshot is loaded.
const (
	entryXMinSlot    = 0
	entryYMinSlot    = 1
	entryXMaxSlot    = 2
	entryYMaxSlot    = 3
	entryPayloadSlot = 4
	numEntrySlots    = 5

	nodeLeafSlot     = 0
	nodeChildrenSlot = 1
	numNodeSlots     = 2

	indexNodeSizeSlot   = 0
	indexNumEntriesSlot = 1
	indexNodesSlot      = 2
	indexEntriesSlot    = 3
	numIndexSlots       = 4
)

type flatNode struct {
	leaf     bool
	children []uint32
}

// flatten lists the tree's nodes in pre-order and its entries in
// depth-first packing order.
func (t *RTree[T]) flatten() ([]flatNode, []Entry[T]) {
	nodes := make([]flatNode, 0, 1+t.numEntries/t.nodeSize)
	entries := make([]Entry[T], 0, t.numEntries)
	var visit func(n Node[T]) uint32
	visit = func(n Node[T]) uint32 {
		idx := uint32(len(nodes))
		nodes = append(nodes, flatNode{})
		switch n := n.(type) {
		case *Leaf[T]:
			children := make([]uint32, len(n.entries))
			for i := range n.entries {
				children[i] = uint32(len(entries))
				entries = append(entries, n.entries[i])
			}
			nodes[idx] = flatNode{leaf: true, children: children}
		case *Branch[T]:
			children := make([]uint32, len(n.children))
			for i := range n.children {
				children[i] = visit(n.children[i])
			}
			nodes[idx] = flatNode{children: children}
		}
		return idx
	}
	visit(t.root)
	return nodes, entries
}

// Marshal serializes the tree to a writer as a snapshot, returning the
// number of bytes written. Each entry's payload is converted to bytes
// with encode.
//
// A snapshot preserves the exact tree structure, so a tree restored
// by Unmarshal returns the same search results in the same order.
func Marshal[T any](w io.Writer, t *RTree[T], encode func(T) ([]byte, error)) (n int, err error) {
	if w == nil {
		textPanic("nil writer")
	} else if encode == nil {
		textPanic("nil encode function")
	}

	if uint64(t.nodeSize) > math.MaxUint32 {
		return 0, wrapErr("node size %d exceeds %d", ErrInvalidConfiguration, t.nodeSize, uint64(math.MaxUint32))
	} else if uint64(t.numEntries) > math.MaxUint32 {
		return 0, fmtErr("entry count %d exceeds %d", t.numEntries, uint64(math.MaxUint32))
	}

	nodes, entries := t.flatten()
	b := flatbuffers.NewBuilder(1024 + 64*len(entries))

	entryOffs := make([]flatbuffers.UOffsetT, len(entries))
	for i := range entries {
		var payload []byte
		if payload, err = encode(entries[i].Value); err != nil {
			return 0, wrapErr("failed to encode payload of entry %d", err, i)
		}
		p := b.CreateByteVector(payload)
		b.StartObject(numEntrySlots)
		b.PrependFloat64Slot(entryXMinSlot, entries[i].XMin, 0)
		b.PrependFloat64Slot(entryYMinSlot, entries[i].YMin, 0)
		b.PrependFloat64Slot(entryXMaxSlot, entries[i].XMax, 0)
		b.PrependFloat64Slot(entryYMaxSlot, entries[i].YMax, 0)
		b.PrependUOffsetTSlot(entryPayloadSlot, p, 0)
		entryOffs[i] = b.EndObject()
	}
	entriesVec := createOffsetVector(b, entryOffs)

	nodeOffs := make([]flatbuffers.UOffsetT, len(nodes))
	for i := range nodes {
		c := createUint32Vector(b, nodes[i].children)
		b.StartObject(numNodeSlots)
		b.PrependBoolSlot(nodeLeafSlot, nodes[i].leaf, false)
		b.PrependUOffsetTSlot(nodeChildrenSlot, c, 0)
		nodeOffs[i] = b.EndObject()
	}
	nodesVec := createOffsetVector(b, nodeOffs)

	b.StartObject(numIndexSlots)
	b.PrependUint32Slot(indexNodeSizeSlot, uint32(t.nodeSize), 0)
	b.PrependUint32Slot(indexNumEntriesSlot, uint32(t.numEntries), 0)
	b.PrependUOffsetTSlot(indexNodesSlot, nodesVec, 0)
	b.PrependUOffsetTSlot(indexEntriesSlot, entriesVec, 0)
	b.FinishSizePrefixed(b.EndObject())

	if n, err = w.Write(magic[:]); err != nil {
		return
	}
	var m int
	m, err = w.Write(b.FinishedBytes())
	n += m
	return
}

// Unmarshal deserializes a snapshot written by Marshal, converting each
// entry's payload bytes back to a value with decode. The byte slice
// passed to decode is only valid for the duration of the call.
//
// Unmarshal validates the structure of the snapshot and returns an
// error, rather than panicking, if it is corrupt.
func Unmarshal[T any](r io.Reader, decode func([]byte) (T, error)) (*RTree[T], error) {
	if r == nil {
		textPanic("nil reader")
	} else if decode == nil {
		textPanic("nil decode function")
	}

	version, err := Magic(r)
	if err != nil {
		return nil, err
	} else if version.Major < MinSnapshotMajorVersion || version.Major > MaxSnapshotMajorVersion {
		return nil, fmtErr("unsupported snapshot version %d.%d", version.Major, version.Patch)
	}

	tbl, err := readSizePrefixedTable(r)
	if err != nil {
		return nil, err
	}

	var t *RTree[T]
	err = safeFlatBuffersInteraction(func() error {
		var err2 error
		t, err2 = unflatten(tbl, decode)
		return err2
	})
	if err != nil {
		return nil, err
	}
	return t, nil
}

func unflatten[T any](tbl fbTable, decode func([]byte) (T, error)) (*RTree[T], error) {
	nodeSize := int(tbl.uint32Slot(indexNodeSizeSlot))
	numEntries := int(tbl.uint32Slot(indexNumEntriesSlot))
	numNodes := tbl.vectorLen(indexNodesSlot)
	maxLen := len(tbl.Bytes) / flatbuffers.SizeUOffsetT
	if nodeSize < MinNodeSize {
		return nil, wrapErr("node size %d is less than %d", ErrInvalidConfiguration, nodeSize, MinNodeSize)
	} else if n := tbl.vectorLen(indexEntriesSlot); n != numEntries {
		return nil, fmtErr("entry count %d does not match header count %d", n, numEntries)
	} else if numEntries > maxLen || numNodes > maxLen {
		return nil, textErr("vector length exceeds snapshot size")
	} else if numNodes == 0 {
		return nil, textErr("snapshot has no root node")
	}

	entries := make([]Entry[T], numEntries)
	for i := range entries {
		e := tbl.tableAt(indexEntriesSlot, i)
		box, err := NewBox(
			e.float64Slot(entryXMinSlot),
			e.float64Slot(entryYMinSlot),
			e.float64Slot(entryXMaxSlot),
			e.float64Slot(entryYMaxSlot),
		)
		if err != nil {
			return nil, wrapErr("entry %d", err, i)
		}
		v, err := decode(e.bytesSlot(entryPayloadSlot))
		if err != nil {
			return nil, wrapErr("failed to decode payload of entry %d", err, i)
		}
		entries[i] = Entry[T]{Box: box, Value: v}
	}

	u := unflattener[T]{
		tbl:        tbl,
		nodeSize:   nodeSize,
		entries:    entries,
		nodeSeen:   make([]bool, numNodes),
		entrySeen:  make([]bool, numEntries),
		numNodes:   numNodes,
		numEntries: numEntries,
	}

	if numEntries == 0 {
		n := tbl.tableAt(indexNodesSlot, 0)
		if numNodes != 1 || !n.boolSlot(nodeLeafSlot) || n.vectorLen(nodeChildrenSlot) != 0 {
			return nil, textErr("empty snapshot must have a single empty leaf")
		}
		return &RTree[T]{root: emptyLeaf[T](), nodeSize: nodeSize, height: 1}, nil
	}

	root, height, err := u.node(0, -1)
	if err != nil {
		return nil, err
	} else if _, ok := root.(*Branch[T]); !ok {
		return nil, textErr("root node must be a branch")
	} else if u.entriesUsed != numEntries {
		return nil, fmtErr("%d of %d entries are unreferenced", numEntries-u.entriesUsed, numEntries)
	}

	return &RTree[T]{
		root:       root,
		nodeSize:   nodeSize,
		numEntries: numEntries,
		height:     height,
	}, nil
}

type unflattener[T any] struct {
	tbl         fbTable
	nodeSize    int
	entries     []Entry[T]
	nodeSeen    []bool
	entrySeen   []bool
	numNodes    int
	numEntries  int
	entriesUsed int
}

// node rebuilds the subtree rooted at node i, returning it with its
// height.
func (u *unflattener[T]) node(i, parent int) (Node[T], int, error) {
	if i <= parent || i >= u.numNodes {
		return nil, 0, fmtErr("node %d has invalid child index %d", parent, i)
	} else if u.nodeSeen[i] {
		return nil, 0, fmtErr("node %d referenced more than once", i)
	}
	u.nodeSeen[i] = true

	n := u.tbl.tableAt(indexNodesSlot, i)
	k := n.vectorLen(nodeChildrenSlot)
	if k == 0 {
		return nil, 0, fmtErr("node %d has no children", i)
	} else if k > u.nodeSize {
		return nil, 0, fmtErr("node %d has %d children, more than node size %d", i, k, u.nodeSize)
	}

	if n.boolSlot(nodeLeafSlot) {
		entries := make([]Entry[T], k)
		for j := range entries {
			c := int(n.uint32At(nodeChildrenSlot, j))
			if c >= u.numEntries {
				return nil, 0, fmtErr("leaf %d has invalid entry index %d", i, c)
			} else if u.entrySeen[c] {
				return nil, 0, fmtErr("entry %d referenced more than once", c)
			}
			u.entrySeen[c] = true
			entries[j] = u.entries[c]
		}
		u.entriesUsed += k
		return newLeaf(entries), 1, nil
	}

	children := make([]Node[T], k)
	height := 0
	for j := range children {
		c, h, err := u.node(int(n.uint32At(nodeChildrenSlot, j)), i)
		if err != nil {
			return nil, 0, err
		} else if j > 0 && h != height {
			return nil, 0, fmtErr("node %d has children of unequal height", i)
		}
		children[j] = c
		height = h
	}
	return newBranch(children), height + 1, nil
}
