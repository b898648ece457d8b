package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"runtime"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config holds the mediadex configuration.
type Config struct {
	HTTP       HTTPConfig       `yaml:"http"`
	Redis      RedisConfig      `yaml:"redis"`
	Relational RelationalConfig `yaml:"relational"`
	Cache      CacheConfig      `yaml:"cache"`
	Search     SearchConfig     `yaml:"search"`
	Warmup     WarmupConfig     `yaml:"warmup"`
	Auth       AuthConfig       `yaml:"auth"`
	Logging    LoggingConfig    `yaml:"logging"`
}

// AuthConfig holds the bearer keys of admin callers. Requests without one
// of them only see safe-for-work media.
type AuthConfig struct {
	AdminKeys []string `yaml:"admin_keys"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error (default: determined by env)
}

// HTTPConfig holds HTTP server settings.
type HTTPConfig struct {
	Port            int `yaml:"port"`
	ReadTimeoutSec  int `yaml:"read_timeout_sec"`
	WriteTimeoutSec int `yaml:"write_timeout_sec"`
	ShutdownSec     int `yaml:"shutdown_timeout_sec"`
}

// RedisConfig holds the shared store connection settings.
type RedisConfig struct {
	Addrs            []string `yaml:"addrs"`
	Username         string   `yaml:"username"`
	Password         string   `yaml:"password"`
	DB               int      `yaml:"db"`
	ReadinessTimeout int      `yaml:"readiness_timeout_sec"`
}

// RelationalConfig holds the system of record connection settings.
type RelationalConfig struct {
	Driver       string `yaml:"driver"` // postgres, sqlite3
	DSN          string `yaml:"dsn"`
	MaxOpenConns int    `yaml:"max_open_conns"`
}

// CacheConfig holds cache tier settings.
type CacheConfig struct {
	KeyPrefix   string            `yaml:"key_prefix"`
	EntryTTLSec int               `yaml:"entry_ttl_sec"` // 0 = no expiry
	ProcessTier ProcessTierConfig `yaml:"process_tier"`
}

// ProcessTierConfig holds settings of the optional in-process tier.
type ProcessTierConfig struct {
	Enabled            bool `yaml:"enabled"`
	Capacity           int  `yaml:"capacity"`
	NumShards          int  `yaml:"num_shards"`
	TTLSec             int  `yaml:"ttl_sec"`
	EvictionPercentage int  `yaml:"eviction_percentage"`
}

// SearchConfig holds pagination settings.
type SearchConfig struct {
	DefaultPageSize int `yaml:"default_page_size"`
	MinPageSize     int `yaml:"min_page_size"`
	MaxPageSize     int `yaml:"max_page_size"`
}

// WarmupConfig controls the full refill on boot.
type WarmupConfig struct {
	OnStart bool `yaml:"on_start"`
}

// Load reads configuration from a YAML file by environment name (local, dev, prod).
func Load(env string) (Config, error) {
	configPath := findConfigPath(env)

	data, err := os.ReadFile(filepath.Clean(configPath))
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config %s: %w", configPath, err)
	}

	// Substitute env variables of the form ${VAR}
	data = expandEnvVars(data)

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.ApplyDefaults()

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// MustLoad loads configuration or panics.
func MustLoad(env string) Config {
	cfg, err := Load(env)
	if err != nil {
		panic(err)
	}
	return cfg
}

// GetEnv returns the current environment from the ENV variable, defaulting to "local".
func GetEnv() string {
	if env := os.Getenv("ENV"); env != "" {
		return env
	}
	return "local"
}

// ApplyDefaults fills empty fields with default values.
func (c *Config) ApplyDefaults() {
	if c.HTTP.ReadTimeoutSec <= 0 {
		c.HTTP.ReadTimeoutSec = 10
	}
	if c.HTTP.WriteTimeoutSec <= 0 {
		c.HTTP.WriteTimeoutSec = 10
	}
	if c.HTTP.ShutdownSec <= 0 {
		c.HTTP.ShutdownSec = 10
	}
	if c.Redis.ReadinessTimeout <= 0 {
		c.Redis.ReadinessTimeout = 10
	}
	if c.Relational.Driver == "" {
		c.Relational.Driver = "postgres"
	}
	if c.Cache.KeyPrefix == "" {
		c.Cache.KeyPrefix = "mediadex:"
	}
	if pt := &c.Cache.ProcessTier; pt.Enabled {
		if pt.Capacity <= 0 {
			pt.Capacity = 10000
		}
		if pt.NumShards <= 0 {
			pt.NumShards = 10
		}
		if pt.TTLSec <= 0 {
			pt.TTLSec = 60
		}
		if pt.EvictionPercentage <= 0 {
			pt.EvictionPercentage = 10
		}
	}
	if c.Search.MinPageSize <= 0 {
		c.Search.MinPageSize = 10
	}
	if c.Search.MaxPageSize <= 0 {
		c.Search.MaxPageSize = 100
	}
	if c.Search.DefaultPageSize <= 0 {
		c.Search.DefaultPageSize = c.Search.MinPageSize
	}
}

// Validate checks the configuration for correctness.
func (c *Config) Validate() error {
	if c.HTTP.Port <= 0 || c.HTTP.Port > 65535 {
		return fmt.Errorf("http.port must be between 1 and 65535, got %d", c.HTTP.Port)
	}
	if len(c.Redis.Addrs) == 0 {
		return fmt.Errorf("redis.addrs is required")
	}
	switch c.Relational.Driver {
	case "postgres", "sqlite3":
	default:
		return fmt.Errorf("relational.driver must be \"postgres\" or \"sqlite3\", got %q", c.Relational.Driver)
	}
	if c.Relational.DSN == "" {
		return fmt.Errorf("relational.dsn is required")
	}
	if c.Cache.EntryTTLSec < 0 {
		return fmt.Errorf("cache.entry_ttl_sec must not be negative, got %d", c.Cache.EntryTTLSec)
	}
	if pt := c.Cache.ProcessTier; pt.Enabled {
		if pt.Capacity <= 0 || pt.NumShards <= 0 || pt.TTLSec <= 0 {
			return fmt.Errorf("cache.process_tier: capacity, num_shards and ttl_sec must be positive")
		}
		if pt.EvictionPercentage > 100 {
			return fmt.Errorf("cache.process_tier.eviction_percentage must be at most 100, got %d", pt.EvictionPercentage)
		}
	}
	for i, k := range c.Auth.AdminKeys {
		if strings.TrimSpace(k) == "" {
			return fmt.Errorf("auth.admin_keys[%d] must not be empty", i)
		}
	}
	s := c.Search
	if s.MinPageSize < 1 || s.MinPageSize > s.DefaultPageSize || s.DefaultPageSize > s.MaxPageSize {
		return fmt.Errorf(
			"search page sizes must satisfy 1 <= min <= default <= max, got %d/%d/%d",
			s.MinPageSize, s.DefaultPageSize, s.MaxPageSize,
		)
	}
	return nil
}

// findConfigPath locates the config file.
func findConfigPath(env string) string {
	filename := fmt.Sprintf("%s.yaml", env)

	// 1. Check ./config/
	if path := filepath.Join("config", filename); fileExists(path) {
		return path
	}

	// 2. Check relative to the source file
	_, b, _, _ := runtime.Caller(0)
	projectRoot := filepath.Dir(filepath.Dir(filepath.Dir(b))) // internal/config -> project root
	if path := filepath.Join(projectRoot, "config", filename); fileExists(path) {
		return path
	}

	// 3. Fallback to ./config/
	return filepath.Join("config", filename)
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// expandEnvVars replaces ${VAR} and ${VAR:-default} with environment variable values.
var envVarRegex = regexp.MustCompile(`\$\{([^}]+)\}`)

func expandEnvVars(data []byte) []byte {
	return envVarRegex.ReplaceAllFunc(data, func(match []byte) []byte {
		expr := string(match[2 : len(match)-1]) // strip ${ and }
		varName, defaultVal, hasDefault := strings.Cut(expr, ":-")
		val := os.Getenv(varName)
		if val == "" && hasDefault {
			val = defaultVal
		}
		return []byte(val)
	})
}
