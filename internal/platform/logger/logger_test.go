package logger_test

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phrazzld/boundq/internal/config"
	"github.com/phrazzld/boundq/internal/platform/logger"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		name   string
		want   slog.Level
		wantOK bool
	}{
		{"debug", slog.LevelDebug, true},
		{"INFO", slog.LevelInfo, true},
		{"Warn", slog.LevelWarn, true},
		{"error", slog.LevelError, true},
		{"verbose", slog.LevelInfo, false},
		{"", slog.LevelInfo, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			level, ok := logger.ParseLevel(tc.name)
			assert.Equal(t, tc.want, level)
			assert.Equal(t, tc.wantOK, ok)
		})
	}
}

func TestSetupWithWriter(t *testing.T) {
	original := slog.Default()
	t.Cleanup(func() { slog.SetDefault(original) })

	t.Run("configured level filters records", func(t *testing.T) {
		buf := &logger.LogBuffer{}
		l, err := logger.SetupWithWriter(config.ServerConfig{LogLevel: "warn"}, buf)
		require.NoError(t, err)
		require.NotNil(t, l)

		l.Info("dropped")
		l.Warn("kept", "queue", "probes")

		entries, err := buf.Entries()
		require.NoError(t, err)
		require.Len(t, entries, 1)
		assert.Equal(t, "kept", entries[0]["msg"])
		assert.Equal(t, "WARN", entries[0]["level"])
		assert.Equal(t, "probes", entries[0]["queue"])
	})

	t.Run("becomes the default logger", func(t *testing.T) {
		buf := &logger.LogBuffer{}
		_, err := logger.SetupWithWriter(config.ServerConfig{LogLevel: "debug"}, buf)
		require.NoError(t, err)

		slog.Debug("via default")
		assert.Contains(t, buf.String(), "via default")
	})

	t.Run("invalid level falls back to info with a warning", func(t *testing.T) {
		buf := &logger.LogBuffer{}
		l, err := logger.SetupWithWriter(config.ServerConfig{LogLevel: "chatty"}, buf)
		require.NoError(t, err)

		l.Debug("dropped")
		entries, err := buf.Entries()
		require.NoError(t, err)
		require.Len(t, entries, 1)
		assert.Equal(t, "invalid log level configured, using default level", entries[0]["msg"])
		assert.Equal(t, "chatty", entries[0]["configured_level"])
	})
}

func TestContextLogger(t *testing.T) {
	l, buf := logger.NewCaptureLogger(slog.LevelInfo)

	ctx := logger.WithLogger(context.Background(), l.With("trace_id", "abc"))
	logger.FromContext(ctx).Info("hello")

	entries, err := buf.Entries()
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "abc", entries[0]["trace_id"])

	assert.Same(t, slog.Default(), logger.FromContext(context.Background()))
	//nolint:staticcheck // nil context is part of the contract
	assert.Same(t, slog.Default(), logger.FromContext(nil))
}
