package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	for _, k := range []string{"PORT", "DATABASE_URL", "DATA_PATH", "CORS_ORIGINS", "CONFIRMATION_DELAY", "LOG_LEVEL"} {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "8000", cfg.Server.Port)
	assert.Equal(t, []string{"*"}, cfg.Server.CORSOrigins)
	assert.Equal(t, "esamadhan.db", cfg.Database.Path)
	assert.Equal(t, 2*time.Second, cfg.Registration.ConfirmationDelay)
	assert.Equal(t, 15*time.Second, cfg.Live.NotificationInterval)
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("CORS_ORIGINS", "https://a.example, https://b.example,")
	t.Setenv("CONFIRMATION_DELAY", "500ms")
	t.Setenv("SESSION_TTL", "not-a-duration")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.Server.CORSOrigins)
	assert.Equal(t, 500*time.Millisecond, cfg.Registration.ConfirmationDelay)
	assert.Equal(t, 30*time.Minute, cfg.Registration.SessionTTL, "bad durations fall back to the default")
}

func TestValidate(t *testing.T) {
	t.Setenv("PORT", "70000")
	_, err := Load()
	assert.Error(t, err)

	t.Setenv("PORT", "8000")
	t.Setenv("LIVE_INTERVAL", "-1s")
	_, err = Load()
	assert.Error(t, err)
}

func TestLoadEnvFiles(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("ESAMADHAN_TEST_KEY=from-dotenv\n"), 0o600))

	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() {
		os.Chdir(wd)
		os.Unsetenv("ESAMADHAN_TEST_KEY")
	})

	require.NoError(t, LoadEnvFiles())
	assert.Equal(t, "from-dotenv", os.Getenv("ESAMADHAN_TEST_KEY"))
}

func TestLoadEnvFilesMalformed(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("ESAMADHAN_BROKEN=\"unterminated\n"), 0o600))

	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { os.Chdir(wd) })

	err = LoadEnvFiles()
	assert.ErrorContains(t, err, "load .env")
}

func TestLoadEnvFilesMissing(t *testing.T) {
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))
	t.Cleanup(func() { os.Chdir(wd) })

	assert.NoError(t, LoadEnvFiles())
}
