package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/comitanigiacomo/kanso-fit/internal/core/progress"
)

const (
	StorageMemory   = "memory"
	StoragePostgres = "postgres"
)

var ErrInvalidConfig = errors.New("invalid config")

type Config struct {
	Environment string `toml:"environment"`
	Port        int    `toml:"port"`
	Timezone    string `toml:"timezone"`

	// logging
	LogLevel      string `toml:"log_level"`
	LogsPath      string `toml:"logs_path"`
	LogToStdout   bool   `toml:"log_to_stdout"`
	LogFormatJSON bool   `toml:"log_format_json"`

	// storage
	Storage            string `toml:"storage"`
	DBHost             string `toml:"db_host"`
	DBPort             string `toml:"db_port"`
	DBUser             string `toml:"db_user"`
	DBPassword         string `toml:"db_password"`
	DBName             string `toml:"db_name"`
	DBSSLMode          string `toml:"db_sslmode"`
	DBMaxOpenConns     int    `toml:"db_max_open_conns"`
	DBMaxIdleConns     int    `toml:"db_max_idle_conns"`
	DBConnMaxLifetimeS int    `toml:"db_conn_max_lifetime_seconds"`

	// caching and rate limiting
	RedisEnabled       bool   `toml:"redis_enabled"`
	RedisHost          string `toml:"redis_host"`
	RedisPort          string `toml:"redis_port"`
	RedisPassword      string `toml:"redis_password"`
	RedisDB            int    `toml:"redis_db"`
	HistoryCacheTTLS   int    `toml:"history_cache_ttl_seconds"`
	LocalCacheSizeMB   int    `toml:"local_cache_size_mb"`
	RateLimitRequests  int    `toml:"rate_limit_requests"`
	RateLimitWindowSec int    `toml:"rate_limit_window_seconds"`

	// auth
	JWTSecret     string `toml:"-"`
	JWTIssuer     string `toml:"jwt_issuer"`
	TokenTTLHours int    `toml:"token_ttl_hours"`

	// progress
	StreakGranularity string `toml:"streak_granularity"`
	CatalogPath       string `toml:"catalog_path"`
	SnapshotQueueSize int    `toml:"snapshot_queue_size"`
	SwaggerEnabled    bool   `toml:"swagger_enabled"`
}

type Toml struct {
	Development *Config
	Production  *Config
}

func (t *Toml) Get(env string) (*Config, error) {
	switch strings.ToLower(env) {
	case "dev", "development":
		return t.Development, nil
	case "prod", "production":
		return t.Production, nil
	default:
		return nil, fmt.Errorf("unknown env: %s", env)
	}
}

// Load reads the section of the TOML file for env, fills defaults and applies
// environment overrides. An empty path yields a defaults-only config.
func Load(env, path string) (*Config, error) {
	cfg := &Config{}

	if path != "" {
		var t Toml
		if _, err := toml.DecodeFile(path, &t); err != nil {
			return nil, fmt.Errorf("decode config %s: %w", path, err)
		}
		section, err := t.Get(env)
		if err != nil {
			return nil, err
		}
		if section == nil {
			return nil, fmt.Errorf("%w: no [%s] section in %s", ErrInvalidConfig, env, path)
		}
		cfg = section
	}

	if cfg.Environment == "" {
		cfg.Environment = env
	}

	cfg.applyDefaults()
	cfg.applyEnv(os.LookupEnv)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyDefaults() {
	setDefault(&c.Port, 8080)
	setDefaultStr(&c.Timezone, "UTC")
	setDefaultStr(&c.LogLevel, "info")
	setDefaultStr(&c.Storage, StoragePostgres)
	setDefaultStr(&c.DBHost, "localhost")
	setDefaultStr(&c.DBPort, "5432")
	setDefaultStr(&c.DBSSLMode, "disable")
	setDefault(&c.DBMaxOpenConns, 25)
	setDefault(&c.DBMaxIdleConns, 25)
	setDefault(&c.DBConnMaxLifetimeS, 300)
	setDefaultStr(&c.RedisHost, "localhost")
	setDefaultStr(&c.RedisPort, "6379")
	setDefault(&c.HistoryCacheTTLS, 1800)
	setDefault(&c.LocalCacheSizeMB, 16)
	setDefault(&c.RateLimitRequests, 100)
	setDefault(&c.RateLimitWindowSec, 60)
	setDefaultStr(&c.JWTIssuer, "kanso-fit")
	setDefault(&c.TokenTTLHours, 72)
	setDefaultStr(&c.StreakGranularity, string(progress.GranularityWeek))
	setDefault(&c.SnapshotQueueSize, 100)
}

func (c *Config) applyEnv(lookup func(string) (string, bool)) {
	str := func(key string, dst *string) {
		if v, ok := lookup(key); ok && v != "" {
			*dst = v
		}
	}

	str("DB_HOST", &c.DBHost)
	str("DB_PORT", &c.DBPort)
	str("DB_USER", &c.DBUser)
	str("DB_PASSWORD", &c.DBPassword)
	str("DB_NAME", &c.DBName)
	str("REDIS_HOST", &c.RedisHost)
	str("REDIS_PORT", &c.RedisPort)
	str("REDIS_PASSWORD", &c.RedisPassword)
	str("JWT_SECRET", &c.JWTSecret)
	str("STORAGE", &c.Storage)
	str("STREAK_GRANULARITY", &c.StreakGranularity)
	str("LOG_LEVEL", &c.LogLevel)

	if v, ok := lookup("PORT"); ok {
		if port, err := strconv.Atoi(v); err == nil {
			c.Port = port
		}
	}
	if v, ok := lookup("REDIS_ENABLED"); ok {
		if enabled, err := strconv.ParseBool(v); err == nil {
			c.RedisEnabled = enabled
		}
	}
}

func (c *Config) Validate() error {
	if _, err := progress.ParseGranularity(c.StreakGranularity); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	switch c.Storage {
	case StorageMemory, StoragePostgres:
	default:
		return fmt.Errorf("%w: storage must be %q or %q, got %q", ErrInvalidConfig, StorageMemory, StoragePostgres, c.Storage)
	}

	if _, err := time.LoadLocation(c.Timezone); err != nil {
		return fmt.Errorf("%w: timezone %q: %v", ErrInvalidConfig, c.Timezone, err)
	}

	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("%w: port %d", ErrInvalidConfig, c.Port)
	}

	return nil
}

func (c *Config) Granularity() progress.Granularity {
	g, _ := progress.ParseGranularity(c.StreakGranularity)
	return g
}

func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

func (c *Config) DSN() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		c.DBUser, c.DBPassword, c.DBHost, c.DBPort, c.DBName, c.DBSSLMode)
}

func (c *Config) ConnMaxLifetime() time.Duration {
	return time.Duration(c.DBConnMaxLifetimeS) * time.Second
}

func (c *Config) HistoryCacheTTL() time.Duration {
	return time.Duration(c.HistoryCacheTTLS) * time.Second
}

func (c *Config) RateLimitWindow() time.Duration {
	return time.Duration(c.RateLimitWindowSec) * time.Second
}

func (c *Config) TokenTTL() time.Duration {
	return time.Duration(c.TokenTTLHours) * time.Hour
}

func setDefault(v *int, def int) {
	if *v == 0 {
		*v = def
	}
}

func setDefaultStr(v *string, def string) {
	if *v == "" {
		*v = def
	}
}
