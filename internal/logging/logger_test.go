package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	t.Run("json format emits structured records", func(t *testing.T) {
		var buf bytes.Buffer
		logger := New("info", "json", &buf)

		logger.Info("Graph built", "nodes", 3)

		var rec map[string]any
		require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
		assert.Equal(t, "Graph built", rec["msg"])
		assert.Equal(t, float64(3), rec["nodes"])
	})

	t.Run("text format", func(t *testing.T) {
		var buf bytes.Buffer
		New("info", "text", &buf).Info("hello")

		assert.Contains(t, buf.String(), "msg=hello")
	})

	t.Run("level filters records", func(t *testing.T) {
		var buf bytes.Buffer
		logger := New("warn", "text", &buf)

		assert.False(t, logger.Enabled(context.Background(), slog.LevelInfo))
		assert.True(t, logger.Enabled(context.Background(), slog.LevelWarn))
	})

	t.Run("unknown level falls back to info", func(t *testing.T) {
		logger := New("verbose", "json", &bytes.Buffer{})

		assert.True(t, logger.Enabled(context.Background(), slog.LevelInfo))
		assert.False(t, logger.Enabled(context.Background(), slog.LevelDebug))
	})
}
