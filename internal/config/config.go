package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"

	"github.com/aretw0/levelance/internal/logging"
)

// DefaultFile is looked up in the working directory when no path is given.
const DefaultFile = "levelance.yaml"

// EnvPrefix prefixes every environment override.
const EnvPrefix = "LEVELANCE_"

// Cache backends.
const (
	CacheNone   = "none"
	CacheMemory = "memory"
	CacheRedis  = "redis"
)

// Config is the application configuration shared by every command.
type Config struct {
	LogLevel string      `mapstructure:"log_level"`
	Strict   bool        `mapstructure:"strict"`
	NoColor  bool        `mapstructure:"no_color"`
	HTTP     HTTPConfig  `mapstructure:"http"`
	MCP      MCPConfig   `mapstructure:"mcp"`
	Cache    CacheConfig `mapstructure:"cache"`
}

// HTTPConfig configures the serve command.
type HTTPConfig struct {
	Addr    string `mapstructure:"addr"`
	Metrics bool   `mapstructure:"metrics"`
}

// MCPConfig configures the mcp command.
type MCPConfig struct {
	Transport string `mapstructure:"transport"`
	Port      int    `mapstructure:"port"`
}

// CacheConfig selects and configures the result cache.
type CacheConfig struct {
	Backend string      `mapstructure:"backend"`
	Redis   RedisConfig `mapstructure:"redis"`
}

// RedisConfig configures the Redis cache backend.
type RedisConfig struct {
	Addr     string        `mapstructure:"addr"`
	Password string        `mapstructure:"password"`
	DB       int           `mapstructure:"db"`
	Prefix   string        `mapstructure:"prefix"`
	TTL      time.Duration `mapstructure:"ttl"`
}

// Default returns the configuration used when no file is present.
func Default() Config {
	return Config{
		LogLevel: "info",
		HTTP: HTTPConfig{
			Addr:    ":8080",
			Metrics: true,
		},
		MCP: MCPConfig{
			Transport: "stdio",
			Port:      8081,
		},
		Cache: CacheConfig{
			Backend: CacheNone,
			Redis: RedisConfig{
				Addr:   "localhost:6379",
				Prefix: "levelance:decode:",
			},
		},
	}
}

// Load reads the configuration file at path (YAML, TOML or JSON by
// extension), applies environment overrides and validates the result.
// An empty path falls back to DefaultFile, which may be absent.
func Load(path string) (Config, error) {
	raw := map[string]any{}

	explicit := path != ""
	if !explicit {
		path = DefaultFile
	}

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		raw, err = parse(path, data)
		if err != nil {
			return Config{}, err
		}
	case errors.Is(err, os.ErrNotExist) && !explicit:
	default:
		return Config{}, fmt.Errorf("failed to read config: %w", err)
	}

	applyEnv(raw, os.Environ())

	cfg := Default()
	if err := decode(raw, &cfg); err != nil {
		return Config{}, fmt.Errorf("invalid config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func parse(path string, data []byte) (map[string]any, error) {
	raw := map[string]any{}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		if err := json.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", path, err)
		}
	case ".toml":
		if err := toml.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", path, err)
		}
	default:
		// Default to YAML
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", path, err)
		}
	}
	return raw, nil
}

func decode(raw map[string]any, cfg *Config) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           cfg,
		WeaklyTypedInput: true,
		ErrorUnused:      true,
		DecodeHook:       mapstructure.StringToTimeDurationHookFunc(),
	})
	if err != nil {
		return err
	}
	return dec.Decode(raw)
}

// envKeys maps environment variables (without EnvPrefix) to config paths.
var envKeys = map[string][]string{
	"LOG_LEVEL":      {"log_level"},
	"STRICT":         {"strict"},
	"NO_COLOR":       {"no_color"},
	"HTTP_ADDR":      {"http", "addr"},
	"HTTP_METRICS":   {"http", "metrics"},
	"MCP_TRANSPORT":  {"mcp", "transport"},
	"MCP_PORT":       {"mcp", "port"},
	"CACHE_BACKEND":  {"cache", "backend"},
	"REDIS_ADDR":     {"cache", "redis", "addr"},
	"REDIS_PASSWORD": {"cache", "redis", "password"},
	"REDIS_DB":       {"cache", "redis", "db"},
	"REDIS_TTL":      {"cache", "redis", "ttl"},
}

func applyEnv(raw map[string]any, environ []string) {
	for _, kv := range environ {
		name, value, ok := strings.Cut(kv, "=")
		if !ok || !strings.HasPrefix(name, EnvPrefix) {
			continue
		}
		keys, known := envKeys[strings.TrimPrefix(name, EnvPrefix)]
		if !known {
			continue
		}
		setPath(raw, keys, value)
	}
}

func setPath(m map[string]any, keys []string, value any) {
	for _, k := range keys[:len(keys)-1] {
		next, ok := m[k].(map[string]any)
		if !ok {
			next = map[string]any{}
			m[k] = next
		}
		m = next
	}
	m[keys[len(keys)-1]] = value
}

// Validate checks enumerated fields.
func (c Config) Validate() error {
	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	switch c.Cache.Backend {
	case "", CacheNone, CacheMemory, CacheRedis:
	default:
		return fmt.Errorf("invalid config: unknown cache backend %q", c.Cache.Backend)
	}
	switch c.MCP.Transport {
	case "stdio", "sse":
	default:
		return fmt.Errorf("invalid config: unknown mcp transport %q", c.MCP.Transport)
	}
	return nil
}
