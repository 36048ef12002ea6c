// Copyright 2026 The geoindex (Go) Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package geoindex

import (
	"context"
	"sync/atomic"

	"github.com/catenarymaps/geoindex/packedrtree"
	"github.com/paulmach/orb/geojson"
)

// Index holds the current tree built over a feature collection and
// lets it be replaced while queries are in flight. Readers always see
// either the old tree or the new one in full.
//
// The zero value is not usable; create an Index with NewIndex.
type Index[T any] struct {
	tree      atomic.Pointer[packedrtree.RTree[Feature[T]]]
	dec       Decoder[T]
	nodeSize  int
	chunkSize int
}

// NewIndex returns an empty Index whose rebuilds decode properties
// with dec and pack nodes of nodeSize children. chunkSize is passed to
// BuildParallel.
func NewIndex[T any](dec Decoder[T], nodeSize, chunkSize int) (*Index[T], error) {
	if dec == nil {
		textPanic("nil decoder")
	}
	if nodeSize < packedrtree.MinNodeSize {
		return nil, wrapErr("node size %d is less than %d", ErrInvalidConfiguration, nodeSize, packedrtree.MinNodeSize)
	}
	return &Index[T]{dec: dec, nodeSize: nodeSize, chunkSize: chunkSize}, nil
}

// Load returns the current tree, or nil if none has been stored yet.
func (x *Index[T]) Load() *packedrtree.RTree[Feature[T]] {
	return x.tree.Load()
}

// Store replaces the current tree. Storing nil clears the Index.
func (x *Index[T]) Store(t *packedrtree.RTree[Feature[T]]) {
	x.tree.Store(t)
}

// Rebuild builds a new tree over fc with BuildParallel and stores it.
// If the build fails, the error is returned and the current tree stays
// in place.
func (x *Index[T]) Rebuild(ctx context.Context, fc *geojson.FeatureCollection) error {
	t, err := BuildParallel(ctx, fc, x.dec, x.nodeSize, x.chunkSize)
	if err != nil {
		return err
	}
	x.tree.Store(t)
	return nil
}

// Query runs Query against the current tree. An Index with no tree
// returns no features.
func (x *Index[T]) Query(q packedrtree.Box, touchOnly bool) []Feature[T] {
	return Query(x.tree.Load(), q, touchOnly)
}
