package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_YAML(t *testing.T) {
	path := writeFile(t, "levelance.yaml", `
log_level: debug
strict: true
cache:
  backend: redis
  redis:
    addr: redis:6379
    ttl: 5m
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.True(t, cfg.Strict)
	assert.Equal(t, CacheRedis, cfg.Cache.Backend)
	assert.Equal(t, "redis:6379", cfg.Cache.Redis.Addr)
	assert.Equal(t, 5*time.Minute, cfg.Cache.Redis.TTL)
	// Untouched keys keep their defaults.
	assert.Equal(t, "levelance:decode:", cfg.Cache.Redis.Prefix)
	assert.Equal(t, ":8080", cfg.HTTP.Addr)
}

func TestLoad_TOML(t *testing.T) {
	path := writeFile(t, "levelance.toml", `
log_level = "warn"

[http]
addr = ":9000"
metrics = false

[mcp]
transport = "sse"
port = 9001
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "warn", cfg.LogLevel)
	assert.Equal(t, ":9000", cfg.HTTP.Addr)
	assert.False(t, cfg.HTTP.Metrics)
	assert.Equal(t, "sse", cfg.MCP.Transport)
	assert.Equal(t, 9001, cfg.MCP.Port)
}

func TestLoad_JSON(t *testing.T) {
	path := writeFile(t, "levelance.json", `{"cache": {"backend": "memory", "redis": {"db": 2}}}`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, CacheMemory, cfg.Cache.Backend)
	assert.Equal(t, 2, cfg.Cache.Redis.DB)
}

func TestLoad_MissingDefaultFile(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoad_Errors(t *testing.T) {
	tests := map[string]string{
		"unknown key":       "colour: red\n",
		"bad backend":       "cache:\n  backend: memcached\n",
		"bad transport":     "mcp:\n  transport: carrier-pigeon\n",
		"bad log level":     "log_level: loud\n",
		"malformed yaml":    "log_level: [\n",
		"bad duration type": "cache:\n  redis:\n    ttl: soon\n",
	}

	for name, content := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := Load(writeFile(t, "levelance.yaml", content))
			assert.Error(t, err)
		})
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	path := writeFile(t, "levelance.yaml", "log_level: debug\n")
	t.Setenv("LEVELANCE_LOG_LEVEL", "error")
	t.Setenv("LEVELANCE_STRICT", "true")
	t.Setenv("LEVELANCE_REDIS_TTL", "1h")
	t.Setenv("LEVELANCE_MCP_PORT", "7000")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "error", cfg.LogLevel)
	assert.True(t, cfg.Strict)
	assert.Equal(t, time.Hour, cfg.Cache.Redis.TTL)
	assert.Equal(t, 7000, cfg.MCP.Port)
}
