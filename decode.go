// Copyright 2026 The geoindex (Go) Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package geoindex

import (
	"encoding/json"

	"github.com/paulmach/orb/geojson"
)

// A Decoder converts the property bag of a GeoJSON feature into a
// typed payload. If the second return value is false, the feature is
// left out of the index; this is not an error.
//
// A Decoder should be total. A panic inside a Decoder is not recovered
// and aborts the whole build.
type Decoder[T any] func(props geojson.Properties) (T, bool)

// JSONDecoder returns a Decoder which converts the property bag into a
// T by way of its JSON encoding, honoring T's json struct tags. A
// feature whose properties do not fit T is left out of the index.
func JSONDecoder[T any]() Decoder[T] {
	return func(props geojson.Properties) (T, bool) {
		var v T
		b, err := json.Marshal(props)
		if err != nil {
			return v, false
		}
		if err = json.Unmarshal(b, &v); err != nil {
			// Unmarshal may have filled some fields before failing.
			return *new(T), false
		}
		return v, true
	}
}

// StringPropDecoder returns a Decoder whose payload is the string
// property named key. Features for which the property is missing,
// empty or not a string are left out of the index.
func StringPropDecoder(key string) Decoder[string] {
	return func(props geojson.Properties) (string, bool) {
		s, _ := props[key].(string)
		return s, s != ""
	}
}
