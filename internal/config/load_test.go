package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phrazzld/boundq/internal/queue"
)

// clearEnv blanks every variable Load reads so the host environment cannot
// leak into a test. Viper treats empty variables as unset.
func clearEnv(t *testing.T) {
	t.Helper()
	for key := range defaults {
		t.Setenv(EnvPrefix+"_"+envSuffix(key), "")
	}
}

func envSuffix(key string) string {
	return strings.ToUpper(strings.ReplaceAll(key, ".", "_"))
}

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

// TestLoadDefaults verifies that Load applies every default when nothing is
// configured.
func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	require.NoError(t, err, "Load() should not return an error with default values")
	require.NotNil(t, cfg)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "info", cfg.Server.LogLevel)
	assert.Equal(t, 4, cfg.Queue.Concurrency)
	assert.True(t, cfg.Queue.AutoStart)
	assert.Equal(t, 100, cfg.Queue.EventHistory)
	assert.Equal(t, "HEAD", cfg.Probe.Method)
	assert.Equal(t, 10*time.Second, cfg.Probe.Timeout())
	assert.Equal(t, "boundq-probe/1.0", cfg.Probe.UserAgent)
	assert.Equal(t, 400, cfg.Probe.ExpectStatusBelow)
	assert.False(t, cfg.Auth.Enabled())
	assert.Equal(t, time.Hour, cfg.Auth.TokenLifetime())
}

// TestLoadFromEnv verifies that Load reads values from environment variables.
func TestLoadFromEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("BOUNDQ_SERVER_PORT", "9090")
	t.Setenv("BOUNDQ_SERVER_LOG_LEVEL", "debug")
	t.Setenv("BOUNDQ_QUEUE_CONCURRENCY", "0")
	t.Setenv("BOUNDQ_QUEUE_AUTO_START", "false")
	t.Setenv("BOUNDQ_PROBE_METHOD", "GET")
	t.Setenv("BOUNDQ_AUTH_JWT_SECRET", "thisisasecretkeythatis32charslong!!")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "debug", cfg.Server.LogLevel)
	assert.Equal(t, 0, cfg.Queue.Concurrency, "concurrency is passed through for the queue to clamp")
	assert.False(t, cfg.Queue.AutoStart)
	assert.Equal(t, "GET", cfg.Probe.Method)
	assert.True(t, cfg.Auth.Enabled())
	assert.Equal(t, queue.Config{Concurrency: 0, AutoStart: false}, cfg.Queue.Options())
}

func TestLoadFile(t *testing.T) {
	path := writeConfigFile(t, `
server:
  port: 7070
  log_level: warn
queue:
  concurrency: 16
  event_history: 10
probe:
  timeout_seconds: 3
  user_agent: custom-agent
`)

	t.Run("file values", func(t *testing.T) {
		clearEnv(t)

		cfg, err := LoadFile(path)
		require.NoError(t, err)
		assert.Equal(t, 7070, cfg.Server.Port)
		assert.Equal(t, "warn", cfg.Server.LogLevel)
		assert.Equal(t, 16, cfg.Queue.Concurrency)
		assert.Equal(t, 10, cfg.Queue.EventHistory)
		assert.Equal(t, 3*time.Second, cfg.Probe.Timeout())
		assert.Equal(t, "custom-agent", cfg.Probe.UserAgent)
		// Keys missing from the file keep their defaults
		assert.True(t, cfg.Queue.AutoStart)
		assert.Equal(t, "HEAD", cfg.Probe.Method)
	})

	t.Run("environment takes precedence", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("BOUNDQ_SERVER_PORT", "6060")
		t.Setenv("BOUNDQ_QUEUE_CONCURRENCY", "2")

		cfg, err := LoadFile(path)
		require.NoError(t, err)
		assert.Equal(t, 6060, cfg.Server.Port)
		assert.Equal(t, 2, cfg.Queue.Concurrency)
		assert.Equal(t, "warn", cfg.Server.LogLevel)
	})

	t.Run("missing file", func(t *testing.T) {
		clearEnv(t)

		_, err := LoadFile(filepath.Join(t.TempDir(), "absent.yaml"))
		assert.Error(t, err)
	})
}

func TestLoadValidation(t *testing.T) {
	tests := []struct {
		name  string
		env   string
		value string
	}{
		{"port out of range", "BOUNDQ_SERVER_PORT", "70000"},
		{"unknown log level", "BOUNDQ_SERVER_LOG_LEVEL", "verbose"},
		{"unsupported probe method", "BOUNDQ_PROBE_METHOD", "POST"},
		{"non-positive timeout", "BOUNDQ_PROBE_TIMEOUT_SECONDS", "-1"},
		{"status threshold too low", "BOUNDQ_PROBE_EXPECT_STATUS_BELOW", "50"},
		{"short jwt secret", "BOUNDQ_AUTH_JWT_SECRET", "tooshort"},
		{"negative event history", "BOUNDQ_QUEUE_EVENT_HISTORY", "-5"},
		{"non-positive token lifetime", "BOUNDQ_AUTH_TOKEN_LIFETIME_MINUTES", "-10"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(tc.env, tc.value)

			cfg, err := Load()
			require.Error(t, err)
			assert.Nil(t, cfg)
			assert.Contains(t, err.Error(), "configuration validation failed")
		})
	}
}
