package main

import (
	"context"
	"fmt"

	"github.com/jonathan/resume-matcher/internal/cache"
	"github.com/jonathan/resume-matcher/internal/config"
	"github.com/jonathan/resume-matcher/internal/db"
	"github.com/jonathan/resume-matcher/internal/ranking"
	"go.uber.org/zap"
)

// openDB connects to the configured database.
func openDB(ctx context.Context, cfg *config.Config) (*db.DB, error) {
	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("database URL is required (set MATCHER_DATABASE_URL or database_url in the config file)")
	}
	database, err := db.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	return database, nil
}

// openCache returns the score cache, or nil when none is configured. An
// unreachable Redis yields a cache that bypasses every call.
func openCache(ctx context.Context, cfg *config.Config, log *zap.Logger) *cache.Redis {
	if !cfg.CacheEnabled() {
		return nil
	}
	return cache.NewRedis(ctx, cfg.Redis, cfg.CacheTTL, log.Named("cache"))
}

// rescorerOptions wires the configured worker count and cache into a Rescorer.
func rescorerOptions(cfg *config.Config, scoreCache *cache.Redis, log *zap.Logger) ranking.RescorerOptions {
	opts := ranking.RescorerOptions{
		Workers:  cfg.Workers,
		CacheTTL: cfg.CacheTTL,
		Logger:   log.Named("rescore"),
	}
	if scoreCache != nil {
		opts.Cache = scoreCache
	}
	return opts
}
