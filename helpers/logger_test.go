package helpers

import (
	"bytes"
	"testing"

	"github.com/go-kit/log/level"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLogger(t *testing.T) {
	t.Run("info_filters_debug", func(t *testing.T) {
		var buf bytes.Buffer
		logger, err := NewLogger(&buf, "")
		require.NoError(t, err)

		level.Debug(logger).Log("msg", "hidden")
		level.Info(logger).Log("msg", "shown")

		out := buf.String()
		assert.NotContains(t, out, "hidden")
		assert.Contains(t, out, "msg=shown")
		assert.Contains(t, out, "level=info")
		assert.Contains(t, out, "ts=")
	})
	t.Run("debug_allows_debug", func(t *testing.T) {
		var buf bytes.Buffer
		logger, err := NewLogger(&buf, "DEBUG")
		require.NoError(t, err)

		level.Debug(logger).Log("msg", "attempt")
		assert.Contains(t, buf.String(), "msg=attempt")
	})
	t.Run("error_filters_warn", func(t *testing.T) {
		var buf bytes.Buffer
		logger, err := NewLogger(&buf, "error")
		require.NoError(t, err)

		level.Warn(logger).Log("msg", "hidden")
		assert.Empty(t, buf.String())
	})
	t.Run("unknown_level", func(t *testing.T) {
		_, err := NewLogger(&bytes.Buffer{}, "verbose")
		require.Error(t, err)
	})
}
