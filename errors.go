// Copyright 2026 The geoindex (Go) Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package geoindex

import (
	"errors"
	"fmt"

	"github.com/catenarymaps/geoindex/packedrtree"
)

var (
	// ErrUnsupportedGeometry is returned when a geometry has a type for
	// which no bounding box can be derived.
	ErrUnsupportedGeometry = textErr("unsupported geometry")
	// ErrMissingGeometry is returned when a feature has neither a
	// bounding box nor a geometry.
	ErrMissingGeometry = textErr("missing geometry")
	// ErrInvalidGeometry is returned when a bounding box would have a
	// minimum greater than its maximum, or when a geometry has no
	// coordinates. It is the same value as
	// packedrtree.ErrInvalidGeometry.
	ErrInvalidGeometry = packedrtree.ErrInvalidGeometry
	// ErrInvalidConfiguration is returned when an index is requested
	// with a node size below packedrtree.MinNodeSize. It is the same
	// value as packedrtree.ErrInvalidConfiguration.
	ErrInvalidConfiguration = packedrtree.ErrInvalidConfiguration

	errDecoderRejected = textErr("decoder rejected feature")
)

const packageName = "geoindex: "

func textErr(text string) error {
	return errors.New(packageName + text)
}

func wrapErr(text string, err error, a ...interface{}) error {
	return fmt.Errorf(packageName+text+": %w", append(a, err)...)
}

func textPanic(text string) {
	panic(packageName + text)
}
