// Copyright 2026 The geoindex (Go) Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package packedrtree

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewBox(t *testing.T) {
	t.Run("Valid", func(t *testing.T) {
		testCases := []struct {
			name                   string
			xmin, ymin, xmax, ymax float64
		}{
			{"Zero", 0, 0, 0, 0},
			{"Unit", 0, 0, 1, 1},
			{"VerticalLine", 1, 0, 1, 1},
			{"HorizontalLine", 0, 1, 1, 1},
			{"Negative", -122.5, -45.25, -120, -44},
		}

		for _, testCase := range testCases {
			t.Run(testCase.name, func(t *testing.T) {
				b, err := NewBox(testCase.xmin, testCase.ymin, testCase.xmax, testCase.ymax)

				require.NoError(t, err)
				assert.Equal(t, Box{testCase.xmin, testCase.ymin, testCase.xmax, testCase.ymax}, b)
				assert.True(t, b.Valid())
			})
		}
	})

	t.Run("Invalid", func(t *testing.T) {
		testCases := []struct {
			name                   string
			xmin, ymin, xmax, ymax float64
			expected               string
		}{
			{"XInverted", 2, 0, 1, 1, "packedrtree: box [2,0,1,1]: packedrtree: invalid geometry"},
			{"YInverted", 0, 2, 1, 1, "packedrtree: box [0,2,1,1]: packedrtree: invalid geometry"},
			{"NaN", math.NaN(), 0, 1, 1, "packedrtree: box [NaN,0,1,1]: packedrtree: invalid geometry"},
		}

		for _, testCase := range testCases {
			t.Run(testCase.name, func(t *testing.T) {
				b, err := NewBox(testCase.xmin, testCase.ymin, testCase.xmax, testCase.ymax)

				assert.ErrorIs(t, err, ErrInvalidGeometry)
				assert.EqualError(t, err, testCase.expected)
				assert.Equal(t, Box{}, b)
			})
		}
	})
}

func TestBox_String(t *testing.T) {
	testCases := []struct {
		name     string
		input    Box
		expected string
	}{
		{"Zero", Box{}, "[0,0,0,0]"},
		{"Integers", Box{-1, 2, -3, 4}, "[-1,2,-3,4]"},
		{"Exact", Box{-100.5, -200.25, 1234.125, 5678.0625}, "[-100.5,-200.25,1234.125,5678.0625]"},
		{"Empty", EmptyBox, "[+Inf,+Inf,-Inf,-Inf]"},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			actual := testCase.input.String()

			assert.Equal(t, testCase.expected, actual)
		})
	}
}

func TestBox_Width(t *testing.T) {
	testCases := []struct {
		name     string
		input    Box
		expected float64
	}{
		{"Zero", Box{}, 0},
		{"One", Box{0, 0, 1, 0}, 1},
		{"Two", Box{-1, 0, 1, 0}, 2},
		{"Empty", EmptyBox, math.Inf(-1)},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			actual := testCase.input.Width()

			assert.Equal(t, testCase.expected, actual)
		})
	}
}

func TestBox_Height(t *testing.T) {
	testCases := []struct {
		name     string
		input    Box
		expected float64
	}{
		{"Zero", Box{}, 0},
		{"One", Box{0, 0, 0, 1}, 1},
		{"Two", Box{0, -1, 0, 1}, 2},
		{"Empty", EmptyBox, math.Inf(-1)},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			actual := testCase.input.Height()

			assert.Equal(t, testCase.expected, actual)
		})
	}
}

func TestBox_Expand(t *testing.T) {
	testCases := []struct {
		name           string
		b, c, expected Box
	}{
		{"Zero", Box{}, Box{}, Box{}},
		{"Empty", EmptyBox, EmptyBox, EmptyBox},
		{"ZeroByEmpty", Box{}, EmptyBox, Box{}},
		{"EmptyByZero", EmptyBox, Box{}, Box{}},
		{"EmptyByUnit", EmptyBox, Box{-1, -1, 1, 1}, Box{-1, -1, 1, 1}},
		{"GrowXMin", Box{-1, -1, 1, 1}, Box{-2, -0.5, 0, 0.5}, Box{-2, -1, 1, 1}},
		{"GrowYMin", Box{-1, -1, 1, 1}, Box{-0.5, -2, 0, 0.5}, Box{-1, -2, 1, 1}},
		{"GrowXMax", Box{-1, -1, 1, 1}, Box{-0.5, -0.5, 2, 0.5}, Box{-1, -1, 2, 1}},
		{"GrowYMax", Box{-1, -1, 1, 1}, Box{-0.5, -0.5, 0.5, 2}, Box{-1, -1, 1, 2}},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			b, c := testCase.b, testCase.c

			b.Expand(&c)

			assert.Equal(t, testCase.c, c, "Parameter box must not change.")
			assert.Equal(t, testCase.expected, b)
			assert.Equal(t, testCase.expected, Union(testCase.b, testCase.c))
		})
	}
}

func TestBox_ExpandXY(t *testing.T) {
	testCases := []struct {
		name     string
		b        Box
		x, y     float64
		expected Box
	}{
		{"Zero", Box{}, 0, 0, Box{}},
		{"Empty", EmptyBox, 0, 0, Box{}},
		{"Unchanged", Box{0, 0, 1, 1}, 0.5, 0.5, Box{0, 0, 1, 1}},
		{"Left", Box{-1, -1, 1, 1}, -2, 0, Box{-2, -1, 1, 1}},
		{"Down", Box{-1, -1, 1, 1}, 0, -2, Box{-1, -2, 1, 1}},
		{"Right", Box{-1, -1, 1, 1}, 2, 0, Box{-1, -1, 2, 1}},
		{"Up", Box{-1, -1, 1, 1}, 0, 2, Box{-1, -1, 1, 2}},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			b := testCase.b

			b.ExpandXY(testCase.x, testCase.y)

			assert.Equal(t, testCase.expected, b)
		})
	}
}

func TestUnion(t *testing.T) {
	r := rand.New(rand.NewSource(1))
	for i := 0; i < 1000; i++ {
		a, b, c := randomBox(r, 100, 10), randomBox(r, 100, 10), randomBox(r, 100, 10)

		assert.Equal(t, Union(a, b), Union(b, a), "Union must be commutative")
		assert.Equal(t, Union(Union(a, b), c), Union(a, Union(b, c)), "Union must be associative")
		assert.Equal(t, a, Union(a, a))
		assert.Equal(t, a, Union(a, EmptyBox))
	}
}

func TestBox_Intersects(t *testing.T) {
	testCases := []struct {
		name     string
		b, c     Box
		expected bool
	}{
		{"Zero", Box{}, Box{}, true},
		{"Empty", EmptyBox, EmptyBox, false},
		{"ZeroEmpty", Box{}, EmptyBox, false},
		{"EmptyZero", EmptyBox, Box{}, false},
		{"FullyContained", Box{-2, -2, 2, 2}, Box{-1, -1, 1, 1}, true},
		{"OverlapLeft", Box{-2, -2, 2, 2}, Box{-3, -1, -1, 1}, true},
		{"OverlapDown", Box{-2, -2, 2, 2}, Box{-1, -3, 1, -1}, true},
		{"OverlapRight", Box{-2, -2, 2, 2}, Box{1, -1, 3, 1}, true},
		{"OverlapUp", Box{-2, -2, 2, 2}, Box{-1, 1, 1, 3}, true},
		{"SharedEdge", Box{0, 0, 1, 1}, Box{1, 0, 2, 1}, true},
		{"SharedCorner", Box{0, 0, 1, 1}, Box{1, 1, 2, 2}, true},
		{"PointOnEdge", Box{0, 0, 1, 1}, PointBox(1, 0.5), true},
		{"IsLeftOf", Box{-2, -2, 0, 0}, Box{-100, -2, -50, 0}, false},
		{"IsBelow", Box{-2, -2, 0, 0}, Box{-2, -100, 0, -50}, false},
		{"IsRightOf", Box{-2, -2, 0, 2}, Box{50, -2, 100, 1}, false},
		{"IsAbove", Box{-2, -2, 2, 2}, Box{1, 50, 2, 100}, false},
		{"NearlyTouching", Box{0, 0, 1, 1}, Box{1.0000001, 0, 2, 1}, false},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			assert.Equal(t, testCase.expected, testCase.b.Intersects(testCase.c))
			assert.Equal(t, testCase.expected, testCase.c.Intersects(testCase.b), "Intersects must be symmetric")
		})
	}
}

func TestBox_Touches(t *testing.T) {
	testCases := []struct {
		name     string
		b, c     Box
		expected bool
	}{
		{"Disjoint", Box{0, 0, 1, 1}, Box{2, 2, 3, 3}, false},
		{"SharedEdge", Box{0, 0, 1, 1}, Box{1, 0, 2, 1}, true},
		{"SharedPartialEdge", Box{0, 0, 1, 1}, Box{1, 0.5, 2, 3}, true},
		{"SharedCorner", Box{0, 0, 1, 1}, Box{1, 1, 2, 2}, true},
		{"AreaOverlap", Box{0, 0, 2, 2}, Box{1, 1, 3, 3}, false},
		{"Contained", Box{0, 0, 4, 4}, Box{1, 1, 2, 2}, false},
		{"Identical", Box{0, 0, 1, 1}, Box{0, 0, 1, 1}, false},
		{"VerticalLineOnEdge", Box{0, 0, 1, 1}, Box{1, 0, 1, 1}, true},
		{"VerticalLineInside", Box{0, 0, 2, 2}, Box{1, 0, 1, 2}, true},
		{"PointInside", Box{0, 0, 2, 2}, PointBox(1, 1), true},
		{"PointOutside", Box{0, 0, 2, 2}, PointBox(3, 3), false},
		{"TwoPoints", PointBox(1, 1), PointBox(1, 1), true},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			assert.Equal(t, testCase.expected, testCase.b.Touches(testCase.c))
			assert.Equal(t, testCase.expected, testCase.c.Touches(testCase.b), "Touches must be symmetric")
		})
	}

	t.Run("ImpliesIntersects", func(t *testing.T) {
		r := rand.New(rand.NewSource(2))
		for i := 0; i < 10000; i++ {
			// Snap to a coarse grid so shared edges are common.
			a := snap(randomBox(r, 10, 3))
			b := snap(randomBox(r, 10, 3))
			if a.Touches(b) {
				assert.True(t, a.Intersects(b), "%s touches %s but does not intersect it", a, b)
			}
		}
	})

	t.Run("DegeneratePoint", func(t *testing.T) {
		r := rand.New(rand.NewSource(3))
		for i := 0; i < 10000; i++ {
			p := PointBox(float64(r.Intn(14)), float64(r.Intn(14)))
			b := snap(randomBox(r, 10, 3))
			assert.Equal(t, b.Intersects(p), b.Touches(p), "point %s vs box %s", p, b)
		}
	})
}

func randomBox(r *rand.Rand, maxStart, maxSize float64) Box {
	x := r.Float64() * maxStart
	y := r.Float64() * maxStart
	return Box{XMin: x, YMin: y, XMax: x + r.Float64()*maxSize, YMax: y + r.Float64()*maxSize}
}

func snap(b Box) Box {
	return Box{
		XMin: math.Floor(b.XMin),
		YMin: math.Floor(b.YMin),
		XMax: math.Ceil(b.XMax),
		YMax: math.Ceil(b.YMax),
	}
}
