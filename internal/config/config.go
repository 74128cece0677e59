// Package config handles loading and validating the client configuration
// from YAML files with environment variable substitution.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Storage backends.
const (
	BackendFile   = "file"
	BackendMemory = "memory"
	BackendRedis  = "redis"
)

// DefaultBaseURL is the marketplace API used when none is configured.
const DefaultBaseURL = "https://cards-marketplace-api.onrender.com"

// Config is the top-level client configuration.
type Config struct {
	API     APIConfig     `yaml:"api"`
	Storage StorageConfig `yaml:"storage"`
	Cache   CacheConfig   `yaml:"cache"`
	Refresh RefreshConfig `yaml:"refresh"`
	Logging LoggingConfig `yaml:"logging"`
	Google  GoogleConfig  `yaml:"google"`
	Notify  NotifyConfig  `yaml:"notify"`
}

// APIConfig defines how the marketplace API is reached.
type APIConfig struct {
	BaseURL   string          `yaml:"base_url"`
	Timeout   time.Duration   `yaml:"timeout"`
	RateLimit RateLimitConfig `yaml:"rate_limit"`
}

// RateLimitConfig throttles outgoing requests. A zero per_second disables it.
type RateLimitConfig struct {
	PerSecond float64 `yaml:"per_second"`
	Burst     int     `yaml:"burst"`
}

// StorageConfig selects where session, cache, and preference data persist.
type StorageConfig struct {
	Backend string      `yaml:"backend"` // file, memory, redis
	Path    string      `yaml:"path"`
	Redis   RedisConfig `yaml:"redis"`
}

// RedisConfig defines the redis storage backend.
type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
	Prefix   string `yaml:"prefix"`
}

// CacheConfig defines cache lifetimes.
type CacheConfig struct {
	CatalogTTL   time.Duration `yaml:"catalog_ttl"`   // default: 12h
	InventoryTTL time.Duration `yaml:"inventory_ttl"` // default: 5m
}

// RefreshConfig defines the background refresher.
type RefreshConfig struct {
	Interval     time.Duration `yaml:"interval"`
	CatalogPages int           `yaml:"catalog_pages"`
	RPP          int           `yaml:"rpp"`
}

// LoggingConfig defines logging settings.
type LoggingConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // text, json
}

// GoogleConfig defines the identity-provider settings.
type GoogleConfig struct {
	ClientID string `yaml:"client_id"`
}

// NotifyConfig defines where `sync --watch` announces new inventory cards.
type NotifyConfig struct {
	DiscordWebhookURL string `yaml:"discord_webhook_url"`
}

// Default returns a configuration with every default applied.
func Default() *Config {
	cfg := &Config{}
	applyDefaults(cfg)
	return cfg
}

// Load reads and parses a YAML config file, performing environment variable
// substitution and validation.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path) //nolint:gosec // config path from trusted CLI flag
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	// Expand environment variables in the YAML content.
	expanded := os.ExpandEnv(string(data))

	cfg := &Config{}
	if err := yaml.Unmarshal([]byte(expanded), cfg); err != nil {
		return nil, fmt.Errorf("parsing config YAML: %w", err)
	}

	applyDefaults(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

// DefaultStatePath returns the file storage location under the user config
// directory, or a file in the working directory when that is unknown.
func DefaultStatePath() string {
	dir, err := os.UserConfigDir()
	if err != nil || dir == "" {
		return ".cardmarket-state.json"
	}
	return filepath.Join(dir, "cardmarket", "state.json")
}

func applyDefaults(cfg *Config) {
	applyAPIDefaults(&cfg.API)
	applyStorageDefaults(&cfg.Storage)
	applyCacheDefaults(&cfg.Cache)
	applyRefreshDefaults(&cfg.Refresh)
	applyLoggingDefaults(&cfg.Logging)
}

func applyAPIDefaults(a *APIConfig) {
	if a.BaseURL == "" {
		a.BaseURL = DefaultBaseURL
	}
	a.BaseURL = strings.TrimRight(a.BaseURL, "/")
	if a.Timeout == 0 {
		a.Timeout = 30 * time.Second
	}
	if a.RateLimit.PerSecond > 0 && a.RateLimit.Burst == 0 {
		a.RateLimit.Burst = 1
	}
}

func applyStorageDefaults(s *StorageConfig) {
	if s.Backend == "" {
		s.Backend = BackendFile
	}
	if s.Path == "" {
		s.Path = DefaultStatePath()
	}
	if s.Redis.Addr == "" {
		s.Redis.Addr = "localhost:6379"
	}
	if s.Redis.Prefix == "" {
		s.Redis.Prefix = "cardmarket:"
	}
}

func applyCacheDefaults(c *CacheConfig) {
	if c.CatalogTTL == 0 {
		c.CatalogTTL = 12 * time.Hour
	}
	if c.InventoryTTL == 0 {
		c.InventoryTTL = 5 * time.Minute
	}
}

func applyRefreshDefaults(r *RefreshConfig) {
	if r.Interval == 0 {
		r.Interval = 10 * time.Minute
	}
	if r.CatalogPages == 0 {
		r.CatalogPages = 1
	}
	if r.RPP == 0 {
		r.RPP = 12
	}
}

func applyLoggingDefaults(l *LoggingConfig) {
	if l.Level == "" {
		l.Level = "info"
	}
	if l.Format == "" {
		l.Format = "text"
	}
}

// Validate reports every invalid setting at once.
func (cfg *Config) Validate() error {
	var errs []error

	if !strings.HasPrefix(cfg.API.BaseURL, "http://") && !strings.HasPrefix(cfg.API.BaseURL, "https://") {
		errs = append(errs, fmt.Errorf("api.base_url must be an http(s) URL (got %q)", cfg.API.BaseURL))
	}
	if cfg.API.Timeout < 0 {
		errs = append(errs, fmt.Errorf("api.timeout must not be negative"))
	}
	if cfg.API.RateLimit.PerSecond < 0 {
		errs = append(errs, fmt.Errorf("api.rate_limit.per_second must not be negative"))
	}

	switch cfg.Storage.Backend {
	case BackendFile, BackendMemory:
	case BackendRedis:
		if cfg.Storage.Redis.DB < 0 {
			errs = append(errs, fmt.Errorf("storage.redis.db must not be negative"))
		}
	default:
		errs = append(
			errs,
			fmt.Errorf(
				"storage.backend must be one of: file, memory, redis (got %q)",
				cfg.Storage.Backend,
			),
		)
	}

	if cfg.Cache.CatalogTTL < 0 || cfg.Cache.InventoryTTL < 0 {
		errs = append(errs, fmt.Errorf("cache TTLs must not be negative"))
	}
	if cfg.Refresh.Interval < time.Second {
		errs = append(errs, fmt.Errorf("refresh.interval must be at least 1s"))
	}
	if u := cfg.Notify.DiscordWebhookURL; u != "" && !strings.HasPrefix(u, "https://") {
		errs = append(errs, fmt.Errorf("notify.discord_webhook_url must be an https URL"))
	}
	if cfg.Refresh.CatalogPages < 0 || cfg.Refresh.RPP < 0 {
		errs = append(errs, fmt.Errorf("refresh.catalog_pages and refresh.rpp must not be negative"))
	}

	return errors.Join(errs...)
}
