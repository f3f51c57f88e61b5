package redis

import (
	"context"
	"errors"
	log "log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

const unlockScript = "if redis.call('get', KEYS[1]) == ARGV[1] then return redis.call('del', KEYS[1]) else return 0 end"

// Backend 基于 go-redis 的缓存后端，按字节读写
type Backend struct {
	rdb redis.UniversalClient
}

func NewBackend(rdb redis.UniversalClient) *Backend {
	return &Backend{rdb: rdb}
}

// Get 获取键值，键不存在时 ok 为 false
func (b *Backend) Get(ctx context.Context, key string) ([]byte, bool, error) {
	value, err := b.rdb.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, err
	}
	return value, true, nil
}

// Set 设置键值对并设置过期时间
func (b *Backend) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	return b.rdb.Set(ctx, key, value, ttl).Err()
}

// Remove 删除一个或多个键
func (b *Backend) Remove(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	return b.rdb.Del(ctx, keys...).Err()
}

// Track 将 key 记录到索引集合中，索引的过期时间随每次写入顺延
func (b *Backend) Track(ctx context.Context, indexKey string, key string, ttl time.Duration) error {
	pipe := b.rdb.TxPipeline()
	pipe.SAdd(ctx, indexKey, key)
	pipe.Expire(ctx, indexKey, ttl)
	_, err := pipe.Exec(ctx)
	return err
}

// Members 获取索引集合中的全部键
func (b *Backend) Members(ctx context.Context, indexKey string) ([]string, error) {
	return b.rdb.SMembers(ctx, indexKey).Result()
}

// TryLock 尝试获取锁，retryTimes 为 -1 时一直重试直到 ctx 结束
func (b *Backend) TryLock(ctx context.Context, key string, value string, expiration time.Duration, retryTimes int) (bool, error) {
	for i := 0; i < retryTimes || retryTimes == -1; i++ {
		success, err := b.rdb.SetNX(ctx, key, value, expiration).Result()
		if err != nil {
			return false, err
		}
		if success {
			return true, nil
		}
		select {
		case <-ctx.Done():
			return false, ctx.Err()
		case <-time.After(200 * time.Millisecond):
		}
	}
	return false, nil
}

// UnLock 仅当锁仍属于 value 时释放
func (b *Backend) UnLock(ctx context.Context, key string, value string) {
	err := b.rdb.Eval(ctx, unlockScript, []string{key}, value).Err()
	if err != nil && !errors.Is(err, redis.Nil) {
		// 释放失败时锁会保留到过期
		log.WarnContext(ctx, "redis unlock failed", "key", key, "err", err)
	}
}
