package cache

import (
	"context"
	"testing"
	"time"

	"github.com/jonathan/resume-matcher/internal/config"
	"github.com/jonathan/resume-matcher/internal/ranking"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

var _ ranking.ScoreCache = (*Redis)(nil)

func TestNewRedis_NoAddress(t *testing.T) {
	r := NewRedis(context.Background(), config.RedisConfig{}, 0, nil)
	require.NotNil(t, r)
	assert.False(t, r.Available())
	assert.Equal(t, config.DefaultCacheTTL, r.defaultTTL)
}

func TestNewRedis_UnreachableServer(t *testing.T) {
	core, observed := observer.New(zapcore.WarnLevel)

	r := NewRedis(context.Background(), config.RedisConfig{Addr: "127.0.0.1:1"}, time.Minute, zap.New(core))
	assert.False(t, r.Available())

	entries := observed.FilterMessage("redis unavailable, bypassing cache").All()
	require.Len(t, entries, 1)
	assert.Equal(t, "127.0.0.1:1", entries[0].ContextMap()["addr"])
}

func TestRedis_Bypassed(t *testing.T) {
	ctx := context.Background()
	r := NewRedis(ctx, config.RedisConfig{}, 0, nil)

	var out map[string]any
	found, err := r.GetJSON(ctx, "score:abc", &out)
	assert.NoError(t, err)
	assert.False(t, found)

	assert.NoError(t, r.SetJSON(ctx, "score:abc", map[string]int{"score": 1}, 0))
	assert.NoError(t, r.Delete(ctx, "score:abc"))

	n, err := r.DeleteByPattern(ctx, "score:*")
	assert.NoError(t, err)
	assert.Zero(t, n)

	ok, err := r.SetIfNotExists(ctx, "rescore:lock:1", "run", time.Second)
	assert.ErrorIs(t, err, ErrUnavailable)
	assert.False(t, ok)

	released, err := r.DeleteIfEquals(ctx, "rescore:lock:1", "run")
	assert.NoError(t, err)
	assert.False(t, released)

	assert.ErrorIs(t, r.Ping(ctx), ErrUnavailable)
	assert.NoError(t, r.Close())
}

func TestRedis_NilReceiver(t *testing.T) {
	var r *Redis
	assert.False(t, r.Available())
	found, err := r.GetJSON(context.Background(), "k", &struct{}{})
	assert.NoError(t, err)
	assert.False(t, found)
}
