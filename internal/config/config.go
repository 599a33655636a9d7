// Package config provides configuration loading and validation for the CLI
// and HTTP server.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const (
	// EnvPrefix prefixes every environment variable read by Load.
	EnvPrefix = "MATCHER"
	// DefaultConfigName is searched for in the working directory when no
	// config file is given.
	DefaultConfigName = "resume-matcher"

	DefaultPort     = 8080
	DefaultWorkers  = 4
	DefaultCacheTTL = 10 * time.Minute

	maxWorkers = 64
)

// Config holds settings for the database, cache, worker pool and server.
// All fields are optional; commands that need a database or cache check for
// the corresponding setting themselves.
type Config struct {
	DatabaseURL string        `mapstructure:"database_url" json:"database_url,omitempty"`
	Redis       RedisConfig   `mapstructure:"redis" json:"redis"`
	CacheTTL    time.Duration `mapstructure:"cache_ttl" json:"cache_ttl"`
	Workers     int           `mapstructure:"workers" json:"workers"`
	Port        int           `mapstructure:"port" json:"port"`
	LogJSON     bool          `mapstructure:"log_json" json:"log_json"`
	Debug       bool          `mapstructure:"debug" json:"debug"`
}

// RedisConfig locates the score cache. An empty Addr disables caching.
type RedisConfig struct {
	Addr     string `mapstructure:"addr" json:"addr,omitempty"`
	Password string `mapstructure:"password" json:"-"`
	DB       int    `mapstructure:"db" json:"db"`
}

// Defaults returns the configuration used when nothing is set.
func Defaults() Config {
	return Config{
		CacheTTL: DefaultCacheTTL,
		Workers:  DefaultWorkers,
		Port:     DefaultPort,
	}
}

// Load reads configuration from path (or resume-matcher.{yaml,json,toml} in
// the working directory when path is empty) and MATCHER_* environment
// variables, environment taking precedence. A missing default file is not an
// error; a missing explicit file is. v may carry flag bindings; nil uses a
// fresh instance.
func Load(path string, v *viper.Viper) (*Config, error) {
	if v == nil {
		v = viper.New()
	}
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.AddConfigPath(".")
		v.SetConfigName(DefaultConfigName)
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	d := Defaults()
	v.SetDefault("database_url", d.DatabaseURL)
	v.SetDefault("redis.addr", d.Redis.Addr)
	v.SetDefault("redis.password", d.Redis.Password)
	v.SetDefault("redis.db", d.Redis.DB)
	v.SetDefault("cache_ttl", d.CacheTTL)
	v.SetDefault("workers", d.Workers)
	v.SetDefault("port", d.Port)
	v.SetDefault("log_json", d.LogJSON)
	v.SetDefault("debug", d.Debug)
}

// Validate checks that the configuration has valid values.
func (c *Config) Validate() error {
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("config error: 'port' must be between 1 and 65535, got %d", c.Port)
	}
	if c.Workers < 1 || c.Workers > maxWorkers {
		return fmt.Errorf("config error: 'workers' must be between 1 and %d, got %d", maxWorkers, c.Workers)
	}
	if c.CacheTTL < 0 {
		return fmt.Errorf("config error: 'cache_ttl' must be non-negative")
	}
	if c.Redis.DB < 0 {
		return fmt.Errorf("config error: 'redis.db' must be non-negative")
	}
	return nil
}

// CacheEnabled reports whether a Redis address is configured.
func (c *Config) CacheEnabled() bool {
	return strings.TrimSpace(c.Redis.Addr) != ""
}
