// Copyright 2026 The geoindex (Go) Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package geoindex

import (
	"testing"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"github.com/stretchr/testify/assert"
)

func TestFeature_String(t *testing.T) {
	testCases := []struct {
		name     string
		f        Feature[chateau]
		expected string
	}{
		{"NilSource", Feature[chateau]{Props: chateau{ID: "bart"}}, "Feature{Geometry:<nil>,Props:{ID:bart Routes:0}}"},
		{"NilGeometry", Feature[chateau]{Source: geojson.NewFeature(nil)}, "Feature{Geometry:<nil>,Props:{ID: Routes:0}}"},
		{"Point", Feature[chateau]{Source: geojson.NewFeature(orb.Point{1.5, -2}), Props: chateau{ID: "mta", Routes: 3}}, "Feature{Geometry:{Type:Point,Bounds:[1.5,-2,1.5,-2]},Props:{ID:mta Routes:3}}"},
		{"Polygon", Feature[chateau]{Source: geojson.NewFeature(square), Props: chateau{ID: "x"}}, "Feature{Geometry:{Type:Polygon,Bounds:[0,0,4,3]},Props:{ID:x Routes:0}}"},
		{"EmptyPolygon", Feature[chateau]{Source: geojson.NewFeature(orb.Polygon{})}, "Feature{Geometry:{Type:Polygon,Bounds:<nil>},Props:{ID: Routes:0}}"},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			assert.Equal(t, testCase.expected, testCase.f.String())
		})
	}
}
