// Copyright 2026 The geoindex (Go) Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	t.Run("Levels", func(t *testing.T) {
		testCases := []struct {
			level     string
			debug     bool
			info      bool
			warn      bool
			errorLine bool
		}{
			{"", false, true, true, true},
			{"DEBUG", true, true, true, true},
			{"info", false, true, true, true},
			{"warn", false, false, true, true},
			{"error", false, false, false, true},
			{"verbose", false, true, true, true},
		}

		for _, testCase := range testCases {
			t.Run(testCase.level, func(t *testing.T) {
				var b bytes.Buffer
				l := New(&b, testCase.level, "")

				check := func(enabled bool, log func(string, ...any)) {
					b.Reset()
					log("hello")
					assert.Equal(t, enabled, b.Len() > 0)
				}
				check(testCase.debug, l.Debug)
				check(testCase.info, l.Info)
				check(testCase.warn, l.Warn)
				check(testCase.errorLine, l.Error)
			})
		}
	})

	t.Run("JSON", func(t *testing.T) {
		var b bytes.Buffer
		l := New(&b, "info", "JSON")

		l.Info("built index", "entries", 3)

		var m map[string]any
		require.NoError(t, json.Unmarshal(b.Bytes(), &m))
		assert.Equal(t, "built index", m["msg"])
		assert.Equal(t, float64(3), m["entries"])
	})

	t.Run("Text", func(t *testing.T) {
		var b bytes.Buffer
		l := New(&b, "info", "text")

		l.Info("built index", "entries", 3)

		assert.Contains(t, b.String(), "msg=\"built index\" entries=3")
	})
}
