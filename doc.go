// Copyright 2026 The geoindex (Go) Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// Package geoindex builds packed R-Tree spatial indexes over GeoJSON
// feature collections and answers map viewport queries against them,
// for example to find which chateaux (data-source partitions) cover
// the visible part of a map.
//
// Each feature's property bag is converted to a typed payload by a
// caller-supplied Decoder, which may also reject the feature. The
// bounding box of every accepted feature is taken from its GeoJSON
// "bbox" member when present and valid, or else computed from its
// geometry. The resulting entries are packed into a
// packedrtree.RTree whose values are Feature structures.
//
// Building is all or nothing: any feature whose bounding box cannot be
// determined aborts the build with an error and no index. Searching a
// built index never fails.
package geoindex
