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
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, StorageMemory, cfg.Storage)
	assert.Equal(t, uint16(8080), cfg.HTTP.Port)
	assert.Equal(t, 2*time.Second, cfg.Traffic.MinInterval)
	assert.Equal(t, "resume", cfg.Traffic.Reconcile)
	assert.False(t, cfg.Traffic.Require2xx)
	assert.Equal(t, "campaigns", cfg.Mongo.Collection)
	assert.Equal(t, "localhost:5432", cfg.Psql.Addr.Host)
}

func TestLoadDotenvDoesNotOverrideEnvironment(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("STORAGE=mongo\nTRAFFIC_MIN_INTERVAL=500ms\nHTTP_PORT=9090\n"), 0o600))
	t.Setenv("HTTP_PORT", "7070")
	// godotenv.Load sets variables process-wide; register them for cleanup.
	t.Setenv("STORAGE", "")
	t.Setenv("TRAFFIC_MIN_INTERVAL", "")
	require.NoError(t, os.Unsetenv("STORAGE"))
	require.NoError(t, os.Unsetenv("TRAFFIC_MIN_INTERVAL"))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, StorageMongo, cfg.Storage)
	assert.Equal(t, 500*time.Millisecond, cfg.Traffic.MinInterval)
	assert.Equal(t, uint16(7070), cfg.HTTP.Port)
}

func TestLoadMissingDotenvIsIgnored(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.env"))
	assert.NoError(t, err)
}

func TestLoadRejectsUnknownStorage(t *testing.T) {
	t.Setenv("STORAGE", "redis")
	_, err := Load()
	assert.Error(t, err)
}
