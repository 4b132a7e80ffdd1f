package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("SEEKER_DB_PATH", "/tmp/x.db")
	t.Setenv("SEEKER_LOG_FILE", "/tmp/x.log")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:5001", cfg.APIURL)
	assert.Equal(t, "/ws", cfg.PushPath)
	assert.Equal(t, 30*time.Second, cfg.RequestTimeout)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "/tmp/x.db", cfg.DBPath)
}

func TestLoad_EnvFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.env")
	require.NoError(t, os.WriteFile(path, []byte("SEEKER_API_URL=http://backend:9000\nSEEKER_REQUEST_TIMEOUT=5s\n"), 0o600))
	t.Setenv("SEEKER_DB_PATH", filepath.Join(dir, "s.db"))
	t.Setenv("SEEKER_LOG_FILE", filepath.Join(dir, "s.log"))
	t.Cleanup(func() {
		os.Unsetenv("SEEKER_API_URL")
		os.Unsetenv("SEEKER_REQUEST_TIMEOUT")
	})

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "http://backend:9000", cfg.APIURL)
	assert.Equal(t, 5*time.Second, cfg.RequestTimeout)
}

func TestLoad_Invalid(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("SEEKER_REQUEST_TIMEOUT", "soon")
	_, err := Load("")
	assert.Error(t, err)

	t.Setenv("SEEKER_REQUEST_TIMEOUT", "0s")
	_, err = Load("")
	assert.Error(t, err)

	_, err = Load(filepath.Join(t.TempDir(), "missing.env"))
	assert.Error(t, err)
}
