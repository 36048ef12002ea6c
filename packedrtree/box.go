// Copyright 2026 The geoindex (Go) Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package packedrtree

import (
	"math"
	"strconv"
	"strings"
)

// Box is an axis-aligned rectangle in a two-dimensional plane, for
// example longitude (X) and latitude (Y) in degrees.
//
// A valid Box has XMin <= XMax and YMin <= YMax. Use NewBox to
// construct a Box from untrusted input.
type Box struct {
	XMin float64
	YMin float64
	XMax float64
	YMax float64
}

// EmptyBox is the identity value for Expand and Union: expanding
// EmptyBox by any box yields that box. EmptyBox is not Valid and
// intersects nothing.
var EmptyBox = Box{
	XMin: math.Inf(1),
	YMin: math.Inf(1),
	XMax: math.Inf(-1),
	YMax: math.Inf(-1),
}

// NewBox returns the Box with the given bounds. It returns an error
// wrapping ErrInvalidGeometry if xmin > xmax or ymin > ymax, or if
// any bound is NaN.
func NewBox(xmin, ymin, xmax, ymax float64) (Box, error) {
	b := Box{XMin: xmin, YMin: ymin, XMax: xmax, YMax: ymax}
	if !b.Valid() {
		return Box{}, wrapErr("box %s", ErrInvalidGeometry, b)
	}
	return b, nil
}

// PointBox returns the degenerate Box covering the single point
// (x, y).
func PointBox(x, y float64) Box {
	return Box{XMin: x, YMin: y, XMax: x, YMax: y}
}

// Valid reports whether the minimum of each axis is no greater than
// its maximum.
func (b Box) Valid() bool {
	return b.XMin <= b.XMax && b.YMin <= b.YMax
}

func (b Box) Width() float64 {
	return b.XMax - b.XMin
}

func (b Box) Height() float64 {
	return b.YMax - b.YMin
}

// Expand grows b, in place, to the smallest box containing both b
// and c.
func (b *Box) Expand(c *Box) {
	if c.XMin < b.XMin {
		b.XMin = c.XMin
	}
	if c.YMin < b.YMin {
		b.YMin = c.YMin
	}
	if c.XMax > b.XMax {
		b.XMax = c.XMax
	}
	if c.YMax > b.YMax {
		b.YMax = c.YMax
	}
}

// ExpandXY grows b, in place, to the smallest box containing both b
// and the point (x, y).
func (b *Box) ExpandXY(x, y float64) {
	if x < b.XMin {
		b.XMin = x
	}
	if y < b.YMin {
		b.YMin = y
	}
	if x > b.XMax {
		b.XMax = x
	}
	if y > b.YMax {
		b.YMax = y
	}
}

// Union returns the smallest box containing both a and b.
func Union(a, b Box) Box {
	a.Expand(&b)
	return a
}

// Intersects reports whether b and o share at least one point.
// Boundaries are closed, so boxes which only share an edge or a
// corner intersect.
func (b Box) Intersects(o Box) bool {
	return b.XMin <= o.XMax && b.XMax >= o.XMin &&
		b.YMin <= o.YMax && b.YMax >= o.YMin
}

// Touches reports whether b and o intersect without overlapping in a
// region of positive area, i.e. they share only an edge, a corner, or
// one of them is degenerate along an axis of contact.
//
// Touches compares rectangles only. Two features whose bounding boxes
// touch may not touch each other, and features which do touch may
// have bounding boxes which overlap.
func (b Box) Touches(o Box) bool {
	if !b.Intersects(o) {
		return false
	}
	overlapX := math.Min(b.XMax, o.XMax) - math.Max(b.XMin, o.XMin)
	overlapY := math.Min(b.YMax, o.YMax) - math.Max(b.YMin, o.YMin)
	return !(overlapX > 0 && overlapY > 0)
}

// String returns the box formatted as [XMin,YMin,XMax,YMax].
func (b Box) String() string {
	var sb strings.Builder
	sb.WriteByte('[')
	sb.WriteString(formatFloat(b.XMin))
	sb.WriteByte(',')
	sb.WriteString(formatFloat(b.YMin))
	sb.WriteByte(',')
	sb.WriteString(formatFloat(b.XMax))
	sb.WriteByte(',')
	sb.WriteString(formatFloat(b.YMax))
	sb.WriteByte(']')
	return sb.String()
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}
