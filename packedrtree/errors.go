// Copyright 2026 The geoindex (Go) Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package packedrtree

import (
	"errors"
	"fmt"
)

const packageName = "packedrtree: "

var (
	// ErrInvalidGeometry is returned when a rectangle would have a
	// minimum greater than its maximum on either axis.
	ErrInvalidGeometry = textErr("invalid geometry")
	// ErrInvalidConfiguration is returned when a tree is packed with a
	// node size smaller than MinNodeSize.
	ErrInvalidConfiguration = textErr("invalid configuration")
)

func textErr(text string) error {
	return errors.New(packageName + text)
}

func fmtErr(format string, a ...interface{}) error {
	return fmt.Errorf(packageName+format, a...)
}

func wrapErr(text string, err error, a ...interface{}) error {
	return fmt.Errorf(packageName+text+": %w", append(a, err)...)
}

func textPanic(text string) {
	panic(packageName + text)
}
