// Copyright 2026 The geoindex (Go) Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package geoindex

import (
	"fmt"
	"strings"

	"github.com/catenarymaps/geoindex/packedrtree"
)

// String describes the feature's geometry type and bounds, followed by
// its decoded payload. It is intended for logging and debugging.
func (f Feature[T]) String() string {
	var b strings.Builder
	b.WriteString("Feature{Geometry:")
	f.stringGeom(&b)
	b.WriteString(",Props:")
	_, _ = fmt.Fprintf(&b, "%+v", f.Props)
	b.WriteByte('}')
	return b.String()
}

func (f Feature[T]) stringGeom(b *strings.Builder) {
	if f.Source == nil || f.Source.Geometry == nil {
		b.WriteString("<nil>")
		return
	}
	b.WriteString("{Type:")
	b.WriteString(f.Source.Geometry.GeoJSONType())
	b.WriteString(",Bounds:")
	bounds := packedrtree.EmptyBox
	if err := expand(&bounds, f.Source.Geometry); err != nil || bounds == packedrtree.EmptyBox {
		b.WriteString("<nil>")
	} else {
		b.WriteString(bounds.String())
	}
	b.WriteByte('}')
}
