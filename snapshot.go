// Copyright 2026 The geoindex (Go) Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package geoindex

import (
	"io"

	"github.com/catenarymaps/geoindex/packedrtree"
	"github.com/paulmach/orb/geojson"
)

// MarshalIndex writes a snapshot of t to w in packedrtree format. Each
// entry's payload is the GeoJSON encoding of its source feature; the
// decoded properties are not stored, and are rebuilt from the feature
// by UnmarshalIndex.
func MarshalIndex[T any](w io.Writer, t *packedrtree.RTree[Feature[T]]) (int, error) {
	return packedrtree.Marshal(w, t, func(f Feature[T]) ([]byte, error) {
		if f.Source == nil {
			return nil, ErrMissingGeometry
		}
		return f.Source.MarshalJSON()
	})
}

// UnmarshalIndex reads a snapshot written by MarshalIndex. Each stored
// feature is parsed and passed to dec. The snapshot is rejected if dec
// rejects any feature it accepted when the index was built, so the
// restored tree has the same shape as the one which was written.
func UnmarshalIndex[T any](r io.Reader, dec Decoder[T]) (*packedrtree.RTree[Feature[T]], error) {
	if dec == nil {
		textPanic("nil decoder")
	}
	return packedrtree.Unmarshal(r, func(b []byte) (Feature[T], error) {
		f, err := geojson.UnmarshalFeature(b)
		if err != nil {
			return Feature[T]{}, wrapErr("failed to parse stored feature", err)
		}
		props, ok := dec(f.Properties)
		if !ok {
			return Feature[T]{}, errDecoderRejected
		}
		box, err := FeatureBound(f)
		if err != nil {
			return Feature[T]{}, err
		}
		return Feature[T]{Source: f, Box: box, Props: props}, nil
	})
}
