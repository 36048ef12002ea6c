// Copyright 2026 The geoindex (Go) Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// Package packedrtree provides a static, bulk-loaded R-Tree built
// with the Sort-Tile-Recursive (STR) packing algorithm, together with
// the rectangle type and predicates used to search it.
//
// A tree is packed once from a complete batch of entries and is
// read-only afterwards, so a single RTree may be searched from any
// number of goroutines without synchronization. To reflect changed
// data, pack a new tree and swap references to it.
//
// Although designed for GeoJSON feature lookups by map viewport, this
// package has no knowledge of GeoJSON and can index any payload type.
package packedrtree
