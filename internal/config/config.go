package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// EnvPrefix prefixes the environment variables read by Init, e.g. SOLLIQ_LOG_LEVEL.
const EnvPrefix = "SOLLIQ"

// Cache backends.
const (
	CacheMemory = "memory"
	CacheRedis  = "redis"
	CacheSQLite = "sqlite"
	CacheNone   = "none"
)

// HTTPConfig holds configuration for the HTTP API.
type HTTPConfig struct {
	Port int `mapstructure:"port"`
}

// MCPConfig holds configuration for the MCP tool server.
type MCPConfig struct {
	// Port is used by the SSE transport; stdio ignores it.
	Port int `mapstructure:"port"`
}

// CacheConfig selects where sampled curves are kept.
type CacheConfig struct {
	Backend   string `mapstructure:"backend"`
	RedisAddr string `mapstructure:"redis_addr"`
	// SQLitePath is the database file of the sqlite backend.
	SQLitePath string        `mapstructure:"sqlite_path"`
	TTL        time.Duration `mapstructure:"ttl"`
}

// SampleConfig tunes curve sampling.
type SampleConfig struct {
	Workers int `mapstructure:"workers"`
}

// Config holds all runtime configuration.
// Values are populated from .solliq.yaml, SOLLIQ_* env vars, and CLI flags.
type Config struct {
	LogLevel string       `mapstructure:"log_level"`
	HTTP     HTTPConfig   `mapstructure:"http"`
	MCP      MCPConfig    `mapstructure:"mcp"`
	Cache    CacheConfig  `mapstructure:"cache"`
	Sample   SampleConfig `mapstructure:"sample"`
	// Presets is the path of a composition presets file; empty disables presets.
	Presets string `mapstructure:"presets"`
}

// Init points viper at the config file (or .solliq.yaml in the working and
// home directories) and the SOLLIQ_* environment. A missing file is not an error.
func Init(cfgFile string, home string) error {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName(".solliq")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")
		if home != "" {
			viper.AddConfigPath(home)
		}
	}

	viper.SetEnvPrefix(EnvPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile == "" && errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("failed to read config: %w", err)
	}
	return nil
}

// Load reads configuration from viper, applying built-in defaults for any
// values not set by config file, environment, or flags.
func Load() (Config, error) {
	viper.SetDefault("log_level", "info")
	viper.SetDefault("http.port", 8080)
	viper.SetDefault("mcp.port", 8081)
	viper.SetDefault("cache.backend", CacheMemory)
	viper.SetDefault("cache.redis_addr", "localhost:6379")
	viper.SetDefault("cache.sqlite_path", "solliq-curves.db")
	viper.SetDefault("cache.ttl", time.Hour)
	viper.SetDefault("sample.workers", 0)
	viper.SetDefault("presets", "")

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("failed to decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate rejects values no component can work with.
func (c Config) Validate() error {
	switch c.Cache.Backend {
	case CacheMemory, CacheRedis, CacheSQLite, CacheNone:
	default:
		return fmt.Errorf("invalid cache.backend %q (want memory, redis, sqlite or none)", c.Cache.Backend)
	}
	if c.Cache.TTL < 0 {
		return fmt.Errorf("invalid cache.ttl %s", c.Cache.TTL)
	}
	if c.Sample.Workers < 0 {
		return fmt.Errorf("invalid sample.workers %d", c.Sample.Workers)
	}
	return nil
}
