package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// resetViper clears all viper state between tests to avoid cross-contamination.
func resetViper() {
	viper.Reset()
}

func TestLoad_Defaults(t *testing.T) {
	resetViper()

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, 8080, cfg.HTTP.Port)
	assert.Equal(t, 8081, cfg.MCP.Port)
	assert.Equal(t, CacheMemory, cfg.Cache.Backend)
	assert.Equal(t, "localhost:6379", cfg.Cache.RedisAddr)
	assert.Equal(t, "solliq-curves.db", cfg.Cache.SQLitePath)
	assert.Equal(t, time.Hour, cfg.Cache.TTL)
	assert.Equal(t, 0, cfg.Sample.Workers)
	assert.Empty(t, cfg.Presets)
}

func TestLoad_EnvOverrides(t *testing.T) {
	tests := []struct {
		name   string
		envKey string
		envVal string
		field  func(Config) any
		want   any
	}{
		{"log_level", "SOLLIQ_LOG_LEVEL", "debug", func(c Config) any { return c.LogLevel }, "debug"},
		{"http.port", "SOLLIQ_HTTP_PORT", "9000", func(c Config) any { return c.HTTP.Port }, 9000},
		{"cache.backend", "SOLLIQ_CACHE_BACKEND", "redis", func(c Config) any { return c.Cache.Backend }, "redis"},
		{"cache.sqlite_path", "SOLLIQ_CACHE_SQLITE_PATH", "/tmp/c.db", func(c Config) any { return c.Cache.SQLitePath }, "/tmp/c.db"},
		{"cache.ttl", "SOLLIQ_CACHE_TTL", "5m", func(c Config) any { return c.Cache.TTL }, 5 * time.Minute},
		{"sample.workers", "SOLLIQ_SAMPLE_WORKERS", "4", func(c Config) any { return c.Sample.Workers }, 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resetViper()
			require.NoError(t, Init("", ""))
			t.Setenv(tt.envKey, tt.envVal)

			cfg, err := Load()
			require.NoError(t, err)
			assert.Equal(t, tt.want, tt.field(cfg))
		})
	}
}

func TestInit_ConfigFile(t *testing.T) {
	resetViper()
	path := filepath.Join(t.TempDir(), "solliq.yaml")
	content := []byte("log_level: warn\ncache:\n  backend: none\nsample:\n  workers: 2\npresets: presets.yaml\n")
	require.NoError(t, os.WriteFile(path, content, 0644))

	require.NoError(t, Init(path, ""))
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "warn", cfg.LogLevel)
	assert.Equal(t, CacheNone, cfg.Cache.Backend)
	assert.Equal(t, 2, cfg.Sample.Workers)
	assert.Equal(t, "presets.yaml", cfg.Presets)
}

func TestInit_MissingExplicitFile(t *testing.T) {
	resetViper()
	err := Init(filepath.Join(t.TempDir(), "absent.yaml"), "")
	assert.Error(t, err)
}

func TestLoad_Invalid(t *testing.T) {
	resetViper()
	viper.Set("cache.backend", "memcached")
	_, err := Load()
	assert.ErrorContains(t, err, "cache.backend")

	resetViper()
	viper.Set("sample.workers", -1)
	_, err = Load()
	assert.ErrorContains(t, err, "sample.workers")
}
