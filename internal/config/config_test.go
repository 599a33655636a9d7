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

func TestLoad_Defaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := Load("", nil)
	require.NoError(t, err)

	assert.Equal(t, DefaultPort, cfg.Port)
	assert.Equal(t, DefaultWorkers, cfg.Workers)
	assert.Equal(t, DefaultCacheTTL, cfg.CacheTTL)
	assert.Empty(t, cfg.DatabaseURL)
	assert.False(t, cfg.CacheEnabled())
}

func TestLoad_YAMLFile(t *testing.T) {
	content := `
database_url: postgres://localhost/matcher
workers: 8
cache_ttl: 2m
redis:
  addr: localhost:6379
  db: 2
`
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := Load(path, nil)
	require.NoError(t, err)

	assert.Equal(t, "postgres://localhost/matcher", cfg.DatabaseURL)
	assert.Equal(t, 8, cfg.Workers)
	assert.Equal(t, 2*time.Minute, cfg.CacheTTL)
	assert.Equal(t, "localhost:6379", cfg.Redis.Addr)
	assert.Equal(t, 2, cfg.Redis.DB)
	assert.Equal(t, DefaultPort, cfg.Port)
	assert.True(t, cfg.CacheEnabled())
}

func TestLoad_DefaultFileInWorkingDirectory(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, DefaultConfigName+".yaml"), []byte("port: 9090\n"), 0644))
	t.Chdir(dir)

	cfg, err := Load("", nil)
	require.NoError(t, err)
	assert.Equal(t, 9090, cfg.Port)
}

func TestLoad_EnvironmentOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("workers: 8\nport: 9000\n"), 0644))

	t.Setenv("MATCHER_WORKERS", "2")
	t.Setenv("MATCHER_REDIS_ADDR", "cache:6379")
	t.Setenv("MATCHER_CACHE_TTL", "30s")

	cfg, err := Load(path, nil)
	require.NoError(t, err)

	assert.Equal(t, 2, cfg.Workers)
	assert.Equal(t, 9000, cfg.Port)
	assert.Equal(t, "cache:6379", cfg.Redis.Addr)
	assert.Equal(t, 30*time.Second, cfg.CacheTTL)
}

func TestLoad_UsesProvidedViper(t *testing.T) {
	t.Chdir(t.TempDir())

	v := viper.New()
	v.Set("port", 7070)

	cfg, err := Load("", v)
	require.NoError(t, err)
	assert.Equal(t, 7070, cfg.Port)
}

func TestLoad_Errors(t *testing.T) {
	t.Run("missing explicit file", func(t *testing.T) {
		cfg, err := Load("/nonexistent/path/config.yaml", nil)
		assert.Error(t, err)
		assert.Nil(t, cfg)
		assert.Contains(t, err.Error(), "failed to read config file")
	})

	t.Run("invalid values", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.yaml")
		require.NoError(t, os.WriteFile(path, []byte("workers: 0\n"), 0644))

		cfg, err := Load(path, nil)
		assert.Error(t, err)
		assert.Nil(t, cfg)
		assert.Contains(t, err.Error(), "workers")
	})
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"defaults", func(*Config) {}, ""},
		{"port zero", func(c *Config) { c.Port = 0 }, "port"},
		{"port too large", func(c *Config) { c.Port = 70000 }, "port"},
		{"too many workers", func(c *Config) { c.Workers = 65 }, "workers"},
		{"negative ttl", func(c *Config) { c.CacheTTL = -time.Second }, "cache_ttl"},
		{"negative redis db", func(c *Config) { c.Redis.DB = -1 }, "redis.db"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Defaults()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
