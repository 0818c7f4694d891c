package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phrazzld/boundq/internal/config"
	"github.com/phrazzld/boundq/internal/service/auth"
)

const testSecret = "thisisasecretkeythatis32charslong!!"

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestRun(t *testing.T) {
	t.Setenv("BOUNDQ_AUTH_JWT_SECRET", "")

	t.Run("mints a valid token", func(t *testing.T) {
		path := writeConfig(t, "auth:\n  jwt_secret: "+testSecret+"\n")

		var stdout, stderr bytes.Buffer
		code := run([]string{"--subject", "ops", "--config", path}, &stdout, &stderr)
		require.Equal(t, 0, code, stderr.String())

		svc, err := auth.NewJWTService(config.AuthConfig{JWTSecret: testSecret, TokenLifetimeMinutes: 60})
		require.NoError(t, err)

		claims, err := svc.ValidateToken(context.Background(), strings.TrimSpace(stdout.String()))
		require.NoError(t, err)
		assert.Equal(t, "ops", claims.Subject)
		assert.Equal(t, auth.OperatorTokenType, claims.TokenType)
	})

	t.Run("subject is required", func(t *testing.T) {
		var stdout, stderr bytes.Buffer
		assert.Equal(t, 2, run(nil, &stdout, &stderr))
		assert.Contains(t, stderr.String(), "--subject is required")
		assert.Empty(t, stdout.String())
	})

	t.Run("unknown flag", func(t *testing.T) {
		var stdout, stderr bytes.Buffer
		assert.Equal(t, 2, run([]string{"--nope"}, &stdout, &stderr))
	})

	t.Run("auth disabled", func(t *testing.T) {
		path := writeConfig(t, "server:\n  port: 8080\n")

		var stdout, stderr bytes.Buffer
		assert.Equal(t, 1, run([]string{"-s", "ops", "-c", path}, &stdout, &stderr))
		assert.Contains(t, stderr.String(), errAuthDisabled.Error())
	})

	t.Run("missing config file", func(t *testing.T) {
		var stdout, stderr bytes.Buffer
		code := run([]string{"-s", "ops", "-c", filepath.Join(t.TempDir(), "absent.yaml")}, &stdout, &stderr)
		assert.Equal(t, 1, code)
		assert.Contains(t, stderr.String(), "error reading config file")
	})
}
