// Package cache 实现指标读取的 cache-aside：先查缓存，未命中时回源并按 TTL 回填，写入后按键失效。
//
// 读写之间的一致性是尽力而为的：写入完成到失效完成之间，并发读取可能拿到旧值。
package cache

import (
	"Pulse/internal/pkg/metrics"
	"context"
	"fmt"
	log "log/slog"
	"time"

	"github.com/goccy/go-json"
	"golang.org/x/sync/singleflight"
)

// Backend 缓存后端，只处理字节
type Backend interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Remove(ctx context.Context, keys ...string) error
}

// KeyIndex 记录区间类键，使失效时能够枚举
type KeyIndex interface {
	Track(ctx context.Context, indexKey string, key string, ttl time.Duration) error
	Members(ctx context.Context, indexKey string) ([]string, error)
}

// IndexBackend 同时支持键索引的后端
type IndexBackend interface {
	Backend
	KeyIndex
}

// Loader 回源函数
type Loader[T any] func(ctx context.Context) (T, error)

type Aside struct {
	backend  Backend
	index    KeyIndex
	indexTTL time.Duration
	sf       singleflight.Group
}

// loadTimeout 共享回源的上限，回源不再跟随任何一个调用方的取消
const loadTimeout = 30 * time.Second

// NewAside indexTTL 应不小于所有区间键的 TTL
func NewAside(backend IndexBackend, indexTTL time.Duration) *Aside {
	return &Aside{
		backend:  backend,
		index:    backend,
		indexTTL: indexTTL,
	}
}

// GetOrPopulate 命中则解码返回；未命中时回源、回填并返回。
// 回源失败直接返回错误且不写缓存；缓存不可用时退化为直接回源。
func GetOrPopulate[T any](ctx context.Context, a *Aside, key string, ttl time.Duration, loader Loader[T]) (T, error) {
	return getOrPopulate(ctx, a, key, "", ttl, loader)
}

// GetOrPopulateTracked 同 GetOrPopulate，回填成功后把 key 记录到 indexKey，供写入方批量失效
func GetOrPopulateTracked[T any](ctx context.Context, a *Aside, key, indexKey string, ttl time.Duration, loader Loader[T]) (T, error) {
	return getOrPopulate(ctx, a, key, indexKey, ttl, loader)
}

func getOrPopulate[T any](ctx context.Context, a *Aside, key, indexKey string, ttl time.Duration, loader Loader[T]) (T, error) {
	var zero T
	kind := KindOf(key)

	if raw, ok := a.lookup(ctx, key); ok {
		var v T
		err := json.Unmarshal(raw, &v)
		if err == nil {
			metrics.CacheHits.WithLabelValues(kind).Inc()
			return v, nil
		}
		log.WarnContext(ctx, "cache payload decode failed, reloading", "key", key, "err", err)
	}
	metrics.CacheMisses.WithLabelValues(kind).Inc()

	// 同一个 key 的并发未命中只回源一次，各调用方各自解码一份，互不共享对象。
	// 每个调用方只等待自己的 ctx，先到者取消不会让其他等待者失败。
	ch := a.sf.DoChan(key, func() (interface{}, error) {
		loadCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), loadTimeout)
		defer cancel()
		v, err := loader(loadCtx)
		if err != nil {
			return nil, err
		}
		raw, err := json.Marshal(v)
		if err != nil {
			return nil, fmt.Errorf("cache encode %s: %w", key, err)
		}
		a.store(loadCtx, key, indexKey, raw, ttl)
		return raw, nil
	})

	select {
	case <-ctx.Done():
		return zero, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return zero, res.Err
		}
		var v T
		if err := json.Unmarshal(res.Val.([]byte), &v); err != nil {
			return zero, fmt.Errorf("cache decode %s: %w", key, err)
		}
		return v, nil
	}
}

func (a *Aside) lookup(ctx context.Context, key string) ([]byte, bool) {
	raw, ok, err := a.backend.Get(ctx, key)
	if err != nil {
		metrics.CacheErrors.WithLabelValues(KindOf(key), "get").Inc()
		log.WarnContext(ctx, "cache unavailable, falling through to store", "key", key, "err", err)
		return nil, false
	}
	return raw, ok
}

func (a *Aside) store(ctx context.Context, key, indexKey string, raw []byte, ttl time.Duration) {
	if err := a.backend.Set(ctx, key, raw, ttl); err != nil {
		metrics.CacheErrors.WithLabelValues(KindOf(key), "set").Inc()
		log.WarnContext(ctx, "cache set failed", "key", key, "err", err)
		return
	}
	if indexKey == "" {
		return
	}
	if err := a.index.Track(ctx, indexKey, key, a.indexTTL); err != nil {
		// 未进索引的键无法被写入方找到，直接删掉
		metrics.CacheErrors.WithLabelValues(KindOf(key), "track").Inc()
		log.WarnContext(ctx, "cache index track failed", "key", key, "index", indexKey, "err", err)
		_ = a.backend.Remove(ctx, key)
	}
}

// Invalidate 删除指定键。失败只记录日志，不影响调用方。
func (a *Aside) Invalidate(ctx context.Context, keys ...string) {
	if len(keys) == 0 {
		return
	}
	for _, k := range keys {
		a.sf.Forget(k)
	}
	if err := a.backend.Remove(ctx, keys...); err != nil {
		metrics.CacheErrors.WithLabelValues(KindOf(keys[0]), "remove").Inc()
		log.WarnContext(ctx, "cache invalidate failed", "keys", keys, "err", err)
	}
}

// InvalidateSet 失效一次写入涉及的全部键，包括索引中记录的区间键及索引本身
func (a *Aside) InvalidateSet(ctx context.Context, ws WriteSet) {
	keys := make([]string, 0, len(ws.Keys)+len(ws.Indexes))
	keys = append(keys, ws.Keys...)
	for _, idx := range ws.Indexes {
		members, err := a.index.Members(ctx, idx)
		if err != nil {
			metrics.CacheErrors.WithLabelValues(KindOf(idx), "members").Inc()
			log.WarnContext(ctx, "cache index read failed", "index", idx, "err", err)
		}
		keys = append(keys, members...)
		keys = append(keys, idx)
	}
	a.Invalidate(ctx, keys...)
}
