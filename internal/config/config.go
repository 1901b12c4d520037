// Package config loads the inventory console settings from defaults, an
// optional inventory.yaml file and INVENTORY_* environment variables, and
// validates them on startup to fail fast on misconfiguration.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Store drivers.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
	DriverMemory   = "memory"
)

// Config holds all application configuration.
type Config struct {
	Files   FilesConfig   `mapstructure:"files"`
	Store   StoreConfig   `mapstructure:"store"`
	Cache   CacheConfig   `mapstructure:"cache"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// FilesConfig holds the seed and backup CSV paths.
type FilesConfig struct {
	Seed   string `mapstructure:"seed"`
	Backup string `mapstructure:"backup"`
}

// StoreConfig selects and configures the product store.
type StoreConfig struct {
	// Driver is one of sqlite, postgres or memory (default: sqlite)
	Driver string `mapstructure:"driver"`

	// SQLitePath is the database file for the sqlite driver (default: inventory.db)
	SQLitePath string `mapstructure:"sqlite_path"`

	// DatabaseURL is the PostgreSQL connection string, required for the postgres driver.
	// DATABASE_URL is accepted as well.
	DatabaseURL string `mapstructure:"database_url"`

	// QueryTimeout bounds every store call (default: 3s)
	QueryTimeout time.Duration `mapstructure:"query_timeout"`
}

// CacheConfig configures the optional redis read-through cache.
type CacheConfig struct {
	// RedisAddr enables the cache when set, e.g. localhost:6379
	RedisAddr string `mapstructure:"redis_addr"`

	// TTL is how long a cached product lives (default: 5m)
	TTL time.Duration `mapstructure:"ttl"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: debug, info, warn, error (default: warn)
	Level string `mapstructure:"level"`

	// Format is the log format: text or json (default: text)
	Format string `mapstructure:"format"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("files.seed", "inventory.csv")
	v.SetDefault("files.backup", "inventory_backup.csv")
	v.SetDefault("store.driver", DriverSQLite)
	v.SetDefault("store.sqlite_path", "inventory.db")
	v.SetDefault("store.database_url", "")
	v.SetDefault("store.query_timeout", "3s")
	v.SetDefault("cache.redis_addr", "")
	v.SetDefault("cache.ttl", "5m")
	v.SetDefault("logging.level", "warn")
	v.SetDefault("logging.format", "text")
}

// Load reads configuration from the working directory and the environment.
func Load() (*Config, error) {
	return LoadFrom(viper.New(), ".")
}

// LoadFrom reads configuration into v, looking for inventory.yaml in dir.
func LoadFrom(v *viper.Viper, dir string) (*Config, error) {
	setDefaults(v)

	v.SetEnvPrefix("INVENTORY")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	if err := v.BindEnv("store.database_url", "INVENTORY_STORE_DATABASE_URL", "DATABASE_URL"); err != nil {
		return nil, fmt.Errorf("config load: %w", err)
	}

	v.SetConfigName("inventory")
	v.SetConfigType("yaml")
	v.AddConfigPath(dir)
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("config load: %w", err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("config load: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}
	return cfg, nil
}

// Validate checks that the configuration is valid.
// Returns an error describing all validation failures.
func (c *Config) Validate() error {
	var errs []string

	if strings.TrimSpace(c.Files.Seed) == "" {
		errs = append(errs, "files.seed is required")
	}
	if strings.TrimSpace(c.Files.Backup) == "" {
		errs = append(errs, "files.backup is required")
	}

	switch c.Store.Driver {
	case DriverSQLite:
		if c.Store.SQLitePath == "" {
			errs = append(errs, "store.sqlite_path is required for the sqlite driver")
		}
	case DriverPostgres:
		if c.Store.DatabaseURL == "" {
			errs = append(errs, "store.database_url (or DATABASE_URL) is required for the postgres driver")
		}
	case DriverMemory:
	default:
		errs = append(errs, fmt.Sprintf("store.driver (%q) must be one of: sqlite, postgres, memory", c.Store.Driver))
	}
	if c.Store.QueryTimeout <= 0 {
		errs = append(errs, "store.query_timeout must be positive")
	}

	if c.Cache.RedisAddr != "" && c.Cache.TTL <= 0 {
		errs = append(errs, "cache.ttl must be positive when the cache is enabled")
	}

	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[strings.ToLower(c.Logging.Level)] {
		errs = append(errs, fmt.Sprintf("logging.level (%q) must be one of: debug, info, warn, error", c.Logging.Level))
	}
	validFormats := map[string]bool{"text": true, "json": true}
	if !validFormats[strings.ToLower(c.Logging.Format)] {
		errs = append(errs, fmt.Sprintf("logging.format (%q) must be one of: text, json", c.Logging.Format))
	}

	if len(errs) > 0 {
		return fmt.Errorf("validation failed:\n  - %s", strings.Join(errs, "\n  - "))
	}
	return nil
}

// String returns a safe representation of the config for logging.
// The database URL is masked.
func (c *Config) String() string {
	url := ""
	if c.Store.DatabaseURL != "" {
		url = "[MASKED]"
	}
	return fmt.Sprintf("Config{Files: {Seed: %q, Backup: %q}, Store: {Driver: %q, SQLitePath: %q, DatabaseURL: %q, QueryTimeout: %s}, Cache: {RedisAddr: %q, TTL: %s}, Logging: {Level: %q, Format: %q}}",
		c.Files.Seed, c.Files.Backup,
		c.Store.Driver, c.Store.SQLitePath, url, c.Store.QueryTimeout,
		c.Cache.RedisAddr, c.Cache.TTL,
		c.Logging.Level, c.Logging.Format)
}
