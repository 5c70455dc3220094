package logger

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	t.Run("structured output", func(t *testing.T) {
		var buf bytes.Buffer
		l, err := newWithWriter(Config{Level: "info"}, &buf)
		require.NoError(t, err)
		defer l.Close()

		zl := l.Component("test")
		zl.Info().Str("tool", "echo").Msg("hello")

		var entry map[string]any
		require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
		assert.Equal(t, "hello", entry["message"])
		assert.Equal(t, "test", entry["component"])
		assert.Equal(t, "echo", entry["tool"])
		assert.Contains(t, entry, "time")
	})

	t.Run("level filtering", func(t *testing.T) {
		var buf bytes.Buffer
		l, err := newWithWriter(Config{Level: "warn"}, &buf)
		require.NoError(t, err)

		zl := l.Zerolog()
		zl.Info().Msg("dropped")
		assert.Empty(t, buf.String())
		assert.Equal(t, zerolog.WarnLevel, zl.GetLevel())
	})

	t.Run("invalid level falls back to info", func(t *testing.T) {
		l, err := newWithWriter(Config{Level: "loud"}, &bytes.Buffer{})
		require.NoError(t, err)
		assert.Equal(t, zerolog.InfoLevel, l.Zerolog().GetLevel())
	})

	t.Run("file output", func(t *testing.T) {
		logFile := filepath.Join(t.TempDir(), "nested", "server.log")
		l, err := newWithWriter(Config{Level: "debug", File: logFile}, &bytes.Buffer{})
		require.NoError(t, err)

		zl := l.Zerolog()
		zl.Debug().Msg("to file")
		require.NoError(t, l.Close())

		data, err := os.ReadFile(logFile)
		require.NoError(t, err)
		assert.Contains(t, string(data), "to file")
	})
}
