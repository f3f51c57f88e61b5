package redis

import (
	"Pulse/internal/api/config"
	"Pulse/internal/pkg/logger"
	"context"
	"fmt"
	log "log/slog"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/redis/go-redis/v9/maintnotifications"
)

func millis(n int) time.Duration {
	return time.Duration(n) * time.Millisecond
}

// options 缓存连接：读写超时要短，超时的请求直接回源而不是排队等 Redis
func options(cfg config.RedisConfig) *redis.Options {
	opts := &redis.Options{
		Addr:         cfg.Addr,
		Password:     cfg.Password,
		DB:           cfg.DB,
		PoolSize:     cfg.PoolSize,
		MinIdleConns: cfg.MinIdleConns,
		ClientName:   "pulse-cache",

		MaintNotificationsConfig: &maintnotifications.Config{
			Mode: maintnotifications.ModeDisabled,
		},
	}
	if cfg.ReadTimeoutMs > 0 {
		opts.ReadTimeout = millis(cfg.ReadTimeoutMs)
	}
	if cfg.WriteTimeoutMs > 0 {
		opts.WriteTimeout = millis(cfg.WriteTimeoutMs)
	}
	return opts
}

// InitRedis 连接缓存与锁使用的 Redis
func InitRedis(cfg config.RedisConfig) (*redis.Client, error) {
	rdb := redis.NewClient(options(cfg))
	rdb.AddHook(logger.NewRedisLogger())

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("ping redis %s: %w", cfg.Addr, err)
	}

	log.Info("Redis initialized", "addr", cfg.Addr, "db", cfg.DB)
	return rdb, nil
}
