// Copyright 2026 The geoindex (Go) Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package packedrtree

import (
	"io"
)

const (
	// magicLen is the length of the snapshot magic number in bytes.
	magicLen = 8
	// MinSnapshotMajorVersion is the minimum major version of the
	// snapshot format that Unmarshal can read.
	MinSnapshotMajorVersion = 0x01
	// MaxSnapshotMajorVersion is the maximum major version of the
	// snapshot format that Unmarshal can read.
	MaxSnapshotMajorVersion = 0x01
	// snapshotMaxLen is an artificial limit on the size of the
	// FlatBuffers table Unmarshal will read, to prevent corrupted
	// input from causing huge and pointless memory allocations.
	snapshotMaxLen = 1 << 30
)

// magic contains the snapshot magic number.
//
// The fourth byte is the major version of the snapshot format written
// by this package, and the last byte is the patch version.
var magic = [magicLen]byte{0x67, 0x69, 0x78, 0x01, 0x67, 0x69, 0x78, 0x00}

// Version is a version of the snapshot format.
type Version struct {
	// Major is the major version of the snapshot format.
	Major uint8
	// Patch is the patch version of the snapshot format.
	Patch uint8
}

// Magic reads the snapshot magic number from a stream and if it is
// valid, returns the snapshot format version. It does not read beyond
// the magic number.
func Magic(r io.Reader) (Version, error) {
	m := make([]byte, magicLen)
	_, err := io.ReadFull(r, m)
	if err != nil {
		return Version{}, err
	}
	if m[0] == magic[0] &&
		m[1] == magic[1] &&
		m[2] == magic[2] &&
		m[4] == magic[4] &&
		m[5] == magic[5] &&
		m[6] == magic[6] {
		return Version{m[3], m[7]}, nil
	}
	return Version{}, textErr("invalid magic number")
}
