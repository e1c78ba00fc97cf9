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
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)

	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "8080", cfg.HTTP.Port)
	assert.Equal(t, 5*time.Second, cfg.HTTP.ShutdownTimeout)
	assert.Equal(t, "ucanfire:session:", cfg.Redis.Prefix)
	assert.Equal(t, 24*time.Hour, cfg.Redis.TTL)
	assert.Equal(t, "localhost:6379", cfg.Redis.Addr)
	assert.Equal(t, 4096, cfg.MaxInputSize)
	assert.Equal(t, StoreMemory, cfg.Store)
	assert.Equal(t, ".ucanfire/sessions", cfg.DataDir)
}

func TestLoad_Environment(t *testing.T) {
	t.Setenv("UCANFIRE_LOG_LEVEL", "debug")
	t.Setenv("UCANFIRE_HTTP_PORT", "9090")
	t.Setenv("UCANFIRE_REDIS_ADDR", "redis:6380")
	t.Setenv("UCANFIRE_STORE", "redis")
	t.Setenv("UCANFIRE_REDIS_TTL", "1h")

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "9090", cfg.HTTP.Port)
	assert.Equal(t, "redis:6380", cfg.Redis.Addr)
	assert.Equal(t, StoreRedis, cfg.Store)
	assert.Equal(t, time.Hour, cfg.Redis.TTL)
}

func TestLoad_DotEnvFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.env")
	require.NoError(t, os.WriteFile(path, []byte("UCANFIRE_REDIS_PREFIX=custom:\n"), 0o600))
	t.Cleanup(func() { os.Unsetenv("UCANFIRE_REDIS_PREFIX") })

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "custom:", cfg.Redis.Prefix)
}

func TestLoad_InvalidValue(t *testing.T) {
	t.Setenv("UCANFIRE_REDIS_DB", "not-a-number")

	_, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	assert.Error(t, err)
}

func TestLoad_InvalidStore(t *testing.T) {
	t.Setenv("UCANFIRE_STORE", "postgres")

	_, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	assert.ErrorContains(t, err, `invalid store "postgres"`)
}
