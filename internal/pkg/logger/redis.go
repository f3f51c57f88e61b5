package logger

import (
	"context"
	"errors"
	log "log/slog"
	"net"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

const redisSlowThreshold = 50 * time.Millisecond

// RedisLoggerHook 记录 Redis 错误与慢命令；缓存未命中 (redis.Nil) 不算错误
type RedisLoggerHook struct{}

func NewRedisLogger() *RedisLoggerHook {
	return &RedisLoggerHook{}
}

func (s *RedisLoggerHook) DialHook(next redis.DialHook) redis.DialHook {
	return func(ctx context.Context, network, addr string) (net.Conn, error) {
		start := time.Now()
		conn, err := next(ctx, network, addr)
		if err != nil {
			log.ErrorContext(ctx, "Redis Dial Error",
				log.String("addr", addr),
				log.Duration("latency", time.Since(start)),
				log.Any("err", err),
			)
		}
		return conn, err
	}
}

func (s *RedisLoggerHook) ProcessHook(next redis.ProcessHook) redis.ProcessHook {
	return func(ctx context.Context, cmd redis.Cmder) error {
		start := time.Now()
		err := next(ctx, cmd)
		elapsed := time.Since(start)

		name := cmd.Name()
		if err != nil {
			if errors.Is(err, redis.Nil) || (name == "client" && strings.Contains(err.Error(), "setinfo")) {
				return err
			}
			log.ErrorContext(ctx, "Redis Error",
				log.String("command", name),
				log.String("key", firstKey(cmd)),
				log.Duration("latency", elapsed),
				log.Any("err", err),
			)
			return err
		}
		if elapsed > redisSlowThreshold {
			log.WarnContext(ctx, "Redis Slow",
				log.String("command", name),
				log.String("key", firstKey(cmd)),
				log.Duration("latency", elapsed),
			)
		}
		return nil
	}
}

func (s *RedisLoggerHook) ProcessPipelineHook(next redis.ProcessPipelineHook) redis.ProcessPipelineHook {
	return func(ctx context.Context, cmds []redis.Cmder) error {
		start := time.Now()
		err := next(ctx, cmds)
		if err != nil && !errors.Is(err, redis.Nil) {
			log.ErrorContext(ctx, "Redis Pipeline Error",
				log.Int("cmd_count", len(cmds)),
				log.Duration("latency", time.Since(start)),
				log.Any("err", err))
		}
		return err
	}
}

// firstKey 只记录键名，不记录值，缓存内容可能很大
func firstKey(cmd redis.Cmder) string {
	args := cmd.Args()
	if len(args) < 2 {
		return ""
	}
	if name := cmd.Name(); name == "auth" || name == "hello" {
		return "[PROTECTED]"
	}
	if k, ok := args[1].(string); ok {
		return k
	}
	return ""
}
