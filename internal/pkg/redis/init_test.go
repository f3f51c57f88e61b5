package redis

import (
	"Pulse/internal/api/config"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOptions(t *testing.T) {
	cfg := config.Default().Redis
	cfg.Addr = "cache:6379"

	opts := options(cfg)
	assert.Equal(t, "cache:6379", opts.Addr)
	assert.Equal(t, 20, opts.PoolSize)
	assert.Equal(t, 200*time.Millisecond, opts.ReadTimeout)
	assert.Equal(t, 200*time.Millisecond, opts.WriteTimeout)

	assert.Zero(t, options(config.RedisConfig{}).ReadTimeout)
}

func TestInitRedis(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb, err := InitRedis(config.RedisConfig{Addr: mr.Addr()})
	require.NoError(t, err)
	t.Cleanup(func() { _ = rdb.Close() })

	addr := mr.Addr()
	mr.Close()
	_, err = InitRedis(config.RedisConfig{Addr: addr})
	assert.Error(t, err)
}
