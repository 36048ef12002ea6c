// Copyright 2026 The geoindex (Go) Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package packedrtree

import (
	"fmt"
	"io"

	flatbuffers "github.com/google/flatbuffers/go"
)

// safeFlatBuffersInteraction runs a function that interacts with
// FlatBuffers, trapping any panic that occurs and converting it to a
// normal Go error.
//
// This function exists because FlatBuffer's Go code doesn't use
// standard Go error handling, allegedly for performance reasons, and
// consequently any invalid attempt to interact with FlatBuffer data
// may trigger a panic.
func safeFlatBuffersInteraction(f func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: flatbuffers: %v", r)
		}
	}()
	err = f()
	return
}

// readSizePrefixedTable reads a size-prefixed root FlatBuffers table
// from a stream and returns it. The returned table's Bytes include the
// size prefix.
func readSizePrefixedTable(r io.Reader) (fbTable, error) {
	prefix := make([]byte, flatbuffers.SizeUint32)
	if _, err := io.ReadFull(r, prefix); err != nil {
		return fbTable{}, wrapErr("failed to read table size", err)
	}
	size := flatbuffers.GetUint32(prefix)
	if size < flatbuffers.SizeUOffsetT {
		return fbTable{}, fmtErr("table size %d is too small", size)
	} else if size > snapshotMaxLen {
		return fbTable{}, fmtErr("table size %d exceeds limit %d", size, snapshotMaxLen)
	}
	buf := make([]byte, flatbuffers.SizeUint32+int(size))
	copy(buf, prefix)
	if _, err := io.ReadFull(r, buf[flatbuffers.SizeUint32:]); err != nil {
		return fbTable{}, wrapErr("failed to read table", err)
	}
	pos := flatbuffers.GetUOffsetT(buf[flatbuffers.SizeUint32:]) + flatbuffers.SizeUint32
	if int(pos) >= len(buf) {
		return fbTable{}, fmtErr("root table offset %d out of range", pos)
	}
	return fbTable{flatbuffers.Table{Bytes: buf, Pos: pos}}, nil
}

// fbTable adds slot-based accessors to a FlatBuffers table, standing in
// for the accessors flatc would otherwise generate. Slot i refers to
// the i-th field of the table's schema.
type fbTable struct {
	flatbuffers.Table
}

func (t fbTable) offset(slot int) flatbuffers.UOffsetT {
	return flatbuffers.UOffsetT(t.Offset(flatbuffers.VOffsetT(4 + 2*slot)))
}

func (t fbTable) float64Slot(slot int) float64 {
	if o := t.offset(slot); o != 0 {
		return t.GetFloat64(t.Pos + o)
	}
	return 0
}

func (t fbTable) uint32Slot(slot int) uint32 {
	if o := t.offset(slot); o != 0 {
		return t.GetUint32(t.Pos + o)
	}
	return 0
}

func (t fbTable) boolSlot(slot int) bool {
	if o := t.offset(slot); o != 0 {
		return t.GetBool(t.Pos + o)
	}
	return false
}

func (t fbTable) bytesSlot(slot int) []byte {
	if o := t.offset(slot); o != 0 {
		return t.ByteVector(t.Pos + o)
	}
	return nil
}

func (t fbTable) vectorLen(slot int) int {
	if o := t.offset(slot); o != 0 {
		return t.VectorLen(o)
	}
	return 0
}

func (t fbTable) uint32At(slot, j int) uint32 {
	a := t.Vector(t.offset(slot))
	return t.GetUint32(a + flatbuffers.UOffsetT(j*flatbuffers.SizeUint32))
}

func (t fbTable) tableAt(slot, j int) fbTable {
	x := t.Vector(t.offset(slot))
	x += flatbuffers.UOffsetT(j * flatbuffers.SizeUOffsetT)
	x = t.Indirect(x)
	return fbTable{flatbuffers.Table{Bytes: t.Bytes, Pos: x}}
}

// createOffsetVector writes a vector of offsets to previously written
// tables.
func createOffsetVector(b *flatbuffers.Builder, offs []flatbuffers.UOffsetT) flatbuffers.UOffsetT {
	b.StartVector(flatbuffers.SizeUOffsetT, len(offs), flatbuffers.SizeUOffsetT)
	for i := len(offs) - 1; i >= 0; i-- {
		b.PrependUOffsetT(offs[i])
	}
	return b.EndVector(len(offs))
}

func createUint32Vector(b *flatbuffers.Builder, v []uint32) flatbuffers.UOffsetT {
	b.StartVector(flatbuffers.SizeUint32, len(v), flatbuffers.SizeUint32)
	for i := len(v) - 1; i >= 0; i-- {
		b.PrependUint32(v[i])
	}
	return b.EndVector(len(v))
}
