package mylog_test

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/soartravel/soar/internal/mylog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToLogLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, mylog.ToLogLevel("debug"))
	assert.Equal(t, slog.LevelWarn, mylog.ToLogLevel("warn"))
	assert.Equal(t, slog.LevelError, mylog.ToLogLevel("error"))
	assert.Equal(t, slog.LevelInfo, mylog.ToLogLevel("unknown"))
}

func TestNewLoggerWithWriter(t *testing.T) {
	t.Run("json handler", func(t *testing.T) {
		var buf bytes.Buffer
		logger := mylog.NewLoggerWithWriter(&buf, "info", "json")
		logger.Debug("hidden")
		logger.Info("synced", "user_id", "u1")

		var line map[string]any
		require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
		assert.Equal(t, "synced", line["msg"])
		assert.Equal(t, "u1", line["user_id"])
	})

	t.Run("text handler", func(t *testing.T) {
		var buf bytes.Buffer
		logger := mylog.NewLoggerWithWriter(&buf, "debug", "default")
		logger.Debug("classified", "type", "QUERY")
		assert.Contains(t, buf.String(), "classified")
		assert.Contains(t, buf.String(), "type=QUERY")
	})
}
