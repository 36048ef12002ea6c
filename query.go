// Copyright 2026 The geoindex (Go) Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package geoindex

import (
	"github.com/catenarymaps/geoindex/packedrtree"
	"github.com/paulmach/orb"
)

// Query returns the features whose bounding boxes intersect q, in the
// index's traversal order. Boxes which only share an edge or a corner
// with q are included. If touchOnly is true, only those boxes which
// share an edge or corner with q, without overlapping its interior,
// are returned.
//
// A nil tree is treated as empty. The returned slice is never nil.
func Query[T any](t *packedrtree.RTree[Feature[T]], q packedrtree.Box, touchOnly bool) []Feature[T] {
	if t == nil {
		return []Feature[T]{}
	}
	if touchOnly {
		return t.SearchTouch(q)
	}
	return t.SearchIntersect(q)
}

// BoxFromBounds returns the query box for the visible region of a map
// camera, given as its west and east longitudes and its south and
// north latitudes.
func BoxFromBounds(west, south, east, north float64) (packedrtree.Box, error) {
	return packedrtree.NewBox(west, south, east, north)
}

// BoxFromBound converts an orb.Bound into a query box.
func BoxFromBound(b orb.Bound) (packedrtree.Box, error) {
	return packedrtree.NewBox(b.Min[0], b.Min[1], b.Max[0], b.Max[1])
}
