// Copyright 2026 The geoindex (Go) Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package geoindex

import (
	"context"
	"runtime"

	"github.com/catenarymaps/geoindex/packedrtree"
	"github.com/paulmach/orb/geojson"
	"golang.org/x/sync/errgroup"
)

// DefaultChunkSize is the number of features each worker of
// BuildParallel processes at a time, when no chunk size is given.
const DefaultChunkSize = 2000

// Feature is the value stored in an index for each accepted feature.
// Source is shared with the caller's collection and must not be
// modified while the index is in use.
type Feature[T any] struct {
	Source *geojson.Feature
	Box    packedrtree.Box
	Props  T
}

// Build packs an index over the features of fc. Each feature's
// properties are passed to dec; rejected features are skipped. Each
// accepted feature's box is determined by FeatureBound.
//
// The first feature whose box cannot be determined aborts the build.
// The returned error names the feature's position in fc.Features and
// wraps ErrMissingGeometry, ErrUnsupportedGeometry or
// ErrInvalidGeometry. A nodeSize below packedrtree.MinNodeSize is
// rejected with ErrInvalidConfiguration before any feature is decoded.
func Build[T any](fc *geojson.FeatureCollection, dec Decoder[T], nodeSize int) (*packedrtree.RTree[Feature[T]], error) {
	if err := validateArgs(fc, dec, nodeSize); err != nil {
		return nil, err
	}
	entries, err := entriesOf(fc.Features, 0, dec)
	if err != nil {
		return nil, err
	}
	return packedrtree.Pack(entries, nodeSize)
}

// BuildParallel is like Build, but decodes and bounds features
// concurrently, chunkSize features at a time, using at most
// GOMAXPROCS goroutines. A chunkSize of zero or less means
// DefaultChunkSize. Packing itself is sequential, and chunk results
// are joined in their original order, so BuildParallel produces the
// same tree as Build for the same input.
//
// If ctx is canceled before the build completes, BuildParallel returns
// ctx.Err() and no index. If several chunks fail, which of their
// errors is returned is unspecified.
func BuildParallel[T any](ctx context.Context, fc *geojson.FeatureCollection, dec Decoder[T], nodeSize, chunkSize int) (*packedrtree.RTree[Feature[T]], error) {
	if err := validateArgs(fc, dec, nodeSize); err != nil {
		return nil, err
	}
	if chunkSize <= 0 {
		chunkSize = DefaultChunkSize
	}

	features := fc.Features
	numChunks := (len(features) + chunkSize - 1) / chunkSize
	chunks := make([][]packedrtree.Entry[Feature[T]], numChunks)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i := 0; i < numChunks; i++ {
		start := i * chunkSize
		end := min(start+chunkSize, len(features))
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			entries, err := entriesOf(features[start:end], start, dec)
			chunks[i] = entries
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var n int
	for i := range chunks {
		n += len(chunks[i])
	}
	entries := make([]packedrtree.Entry[Feature[T]], 0, n)
	for i := range chunks {
		entries = append(entries, chunks[i]...)
	}
	return packedrtree.Pack(entries, nodeSize)
}

// BuildJSON parses a GeoJSON FeatureCollection document and builds an
// index over it with Build.
func BuildJSON[T any](data []byte, dec Decoder[T], nodeSize int) (*packedrtree.RTree[Feature[T]], error) {
	fc, err := geojson.UnmarshalFeatureCollection(data)
	if err != nil {
		return nil, wrapErr("failed to parse feature collection", err)
	}
	return Build(fc, dec, nodeSize)
}

func validateArgs[T any](fc *geojson.FeatureCollection, dec Decoder[T], nodeSize int) error {
	if fc == nil {
		textPanic("nil feature collection")
	} else if dec == nil {
		textPanic("nil decoder")
	}
	if nodeSize < packedrtree.MinNodeSize {
		return wrapErr("node size %d is less than %d", ErrInvalidConfiguration, nodeSize, packedrtree.MinNodeSize)
	}
	return nil
}

// entriesOf decodes and bounds a run of features. offset is the
// position of features[0] within the whole collection, used in error
// messages.
func entriesOf[T any](features []*geojson.Feature, offset int, dec Decoder[T]) ([]packedrtree.Entry[Feature[T]], error) {
	entries := make([]packedrtree.Entry[Feature[T]], 0, len(features))
	for i, f := range features {
		if f == nil {
			return nil, wrapErr("feature %d", ErrMissingGeometry, offset+i)
		}
		props, ok := dec(f.Properties)
		if !ok {
			continue
		}
		box, err := FeatureBound(f)
		if err != nil {
			return nil, wrapErr("feature %d", err, offset+i)
		}
		entries = append(entries, packedrtree.Entry[Feature[T]]{
			Box:   box,
			Value: Feature[T]{Source: f, Box: box, Props: props},
		})
	}
	return entries, nil
}
