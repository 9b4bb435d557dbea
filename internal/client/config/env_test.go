package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseEnv_OverlaysSetVariables(t *testing.T) {
	t.Setenv("CK_SERVER_URL", "https://api.example.org")
	t.Setenv("CK_REQUEST_TIMEOUT", "15s")
	t.Setenv("CK_LOG_FORMAT", "json")
	t.Setenv("CK_CREDENTIALS_KEY", "hunter2")

	cfg := defaults()
	require.NoError(t, parseEnv(&cfg))

	assert.Equal(t, "https://api.example.org", cfg.ServerBaseURL)
	assert.Equal(t, 15*time.Second, cfg.RequestTimeout)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, "hunter2", cfg.CredentialsKey)
	assert.Equal(t, "campaignkeeper.db", cfg.CredentialsDSN)
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestParseEnv_DotenvFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(path, []byte("CK_CREDENTIALS_DSN=/var/lib/ck/session.db\nCK_LOG_LEVEL=warn\n"), 0o600))

	// Real environment wins over the file.
	t.Setenv("CK_LOG_LEVEL", "error")
	// godotenv sets process variables; register them for cleanup.
	t.Setenv("CK_CREDENTIALS_DSN", "")
	require.NoError(t, os.Unsetenv("CK_CREDENTIALS_DSN"))

	cfg := defaults()
	require.NoError(t, parseEnv(&cfg, path))

	assert.Equal(t, "/var/lib/ck/session.db", cfg.CredentialsDSN)
	assert.Equal(t, "error", cfg.LogLevel)
}

func TestParseEnv_MissingDotenvIgnored(t *testing.T) {
	cfg := defaults()
	require.NoError(t, parseEnv(&cfg, filepath.Join(t.TempDir(), "absent.env")))
	assert.Equal(t, defaults(), cfg)
}

func TestParseEnv_InvalidDuration(t *testing.T) {
	t.Setenv("CK_REQUEST_TIMEOUT", "soon")

	cfg := defaults()
	require.Error(t, parseEnv(&cfg))
}
