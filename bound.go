// Copyright 2026 The geoindex (Go) Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package geoindex

import (
	"github.com/catenarymaps/geoindex/packedrtree"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

// Bound returns the bounding box of a geometry, computed from all of
// its coordinates. An orb.Bound is returned verbatim. The members of
// an orb.Collection are bounded individually and then merged.
//
// Returns an error wrapping ErrMissingGeometry if g is nil,
// ErrUnsupportedGeometry if g is not one of the orb geometry types,
// and ErrInvalidGeometry if g has no coordinates or is an inverted
// orb.Bound.
func Bound(g orb.Geometry) (packedrtree.Box, error) {
	if bound, ok := g.(orb.Bound); ok {
		return packedrtree.NewBox(bound.Min[0], bound.Min[1], bound.Max[0], bound.Max[1])
	}
	b := packedrtree.EmptyBox
	if err := expand(&b, g); err != nil {
		return packedrtree.Box{}, err
	}
	box, err := packedrtree.NewBox(b.XMin, b.YMin, b.XMax, b.YMax)
	if err != nil {
		return packedrtree.Box{}, wrapErr("%s has no bounds", err, g.GeoJSONType())
	}
	return box, nil
}

func expand(b *packedrtree.Box, g orb.Geometry) error {
	switch g := g.(type) {
	case nil:
		return ErrMissingGeometry
	case orb.Point:
		b.ExpandXY(g[0], g[1])
	case orb.MultiPoint:
		expandPoints(b, g)
	case orb.LineString:
		expandPoints(b, g)
	case orb.Ring:
		expandPoints(b, g)
	case orb.MultiLineString:
		for _, ls := range g {
			expandPoints(b, ls)
		}
	case orb.Polygon:
		for _, r := range g {
			expandPoints(b, r)
		}
	case orb.MultiPolygon:
		for _, p := range g {
			for _, r := range p {
				expandPoints(b, r)
			}
		}
	case orb.Bound:
		b.ExpandXY(g.Min[0], g.Min[1])
		b.ExpandXY(g.Max[0], g.Max[1])
	case orb.Collection:
		for _, member := range g {
			mb := packedrtree.EmptyBox
			if err := expand(&mb, member); err != nil {
				return err
			}
			b.Expand(&mb)
		}
	default:
		return wrapErr("%T", ErrUnsupportedGeometry, g)
	}
	return nil
}

func expandPoints(b *packedrtree.Box, ps []orb.Point) {
	for _, p := range ps {
		b.ExpandXY(p[0], p[1])
	}
}

// FeatureBound returns the bounding box of a feature. If the feature
// has a valid GeoJSON bounding box, it is trusted and returned as is;
// otherwise the box is computed from the feature's geometry by Bound.
// A bounding box is valid if it has an even number of at least four
// values, so both two- and three-dimensional boxes are accepted.
//
// Returns an error wrapping ErrMissingGeometry if the feature has
// neither a valid bounding box nor a geometry.
func FeatureBound(f *geojson.Feature) (packedrtree.Box, error) {
	if f == nil {
		return packedrtree.Box{}, ErrMissingGeometry
	}
	if f.BBox.Valid() {
		bound := f.BBox.Bound()
		return packedrtree.NewBox(bound.Min[0], bound.Min[1], bound.Max[0], bound.Max[1])
	}
	return Bound(f.Geometry)
}
