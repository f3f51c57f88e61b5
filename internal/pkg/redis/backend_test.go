package redis

import (
	"bytes"
	"context"
	log "log/slog"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupBackend(t *testing.T) (*Backend, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewBackend(client), mr
}

func TestBackend_SetGetRemove(t *testing.T) {
	b, mr := setupBackend(t)
	ctx := context.Background()

	_, ok, err := b.Get(ctx, "missing")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, b.Set(ctx, "k1", []byte(`{"a":1}`), time.Minute))
	require.NoError(t, b.Set(ctx, "k2", []byte(`[]`), time.Minute))

	val, ok, err := b.Get(ctx, "k1")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, `{"a":1}`, string(val))

	require.NoError(t, b.Remove(ctx, "k1", "k2", "never-existed"))
	assert.False(t, mr.Exists("k1"))
	assert.False(t, mr.Exists("k2"))

	require.NoError(t, b.Remove(ctx))
}

func TestBackend_TTLExpiry(t *testing.T) {
	b, mr := setupBackend(t)
	ctx := context.Background()

	require.NoError(t, b.Set(ctx, "k", []byte("v"), 30*time.Second))
	mr.FastForward(31 * time.Second)

	_, ok, err := b.Get(ctx, "k")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestBackend_TrackMembers(t *testing.T) {
	b, mr := setupBackend(t)
	ctx := context.Background()

	require.NoError(t, b.Track(ctx, "idx", "a", time.Minute))
	require.NoError(t, b.Track(ctx, "idx", "b", time.Minute))
	require.NoError(t, b.Track(ctx, "idx", "a", time.Minute))

	members, err := b.Members(ctx, "idx")
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"a", "b"}, members)
	assert.Equal(t, time.Minute, mr.TTL("idx"))

	members, err = b.Members(ctx, "no-such-index")
	require.NoError(t, err)
	assert.Empty(t, members)
}

func TestBackend_Lock(t *testing.T) {
	b, mr := setupBackend(t)
	ctx := context.Background()

	ok, err := b.TryLock(ctx, "lock", "owner-1", time.Minute, 1)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = b.TryLock(ctx, "lock", "owner-2", time.Minute, 1)
	require.NoError(t, err)
	assert.False(t, ok)

	// 非持有者释放无效
	b.UnLock(ctx, "lock", "owner-2")
	assert.True(t, mr.Exists("lock"))

	b.UnLock(ctx, "lock", "owner-1")
	assert.False(t, mr.Exists("lock"))

	ok, err = b.TryLock(ctx, "lock", "owner-2", time.Minute, 1)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestBackend_Unavailable(t *testing.T) {
	b, mr := setupBackend(t)
	mr.Close()

	_, _, err := b.Get(context.Background(), "k")
	assert.Error(t, err)
	assert.Error(t, b.Set(context.Background(), "k", []byte("v"), time.Minute))
}

func TestBackend_UnLockFailureIsLogged(t *testing.T) {
	var buf bytes.Buffer
	prev := log.Default()
	log.SetDefault(log.New(log.NewJSONHandler(&buf, nil)))
	t.Cleanup(func() { log.SetDefault(prev) })

	b, mr := setupBackend(t)
	ctx := context.Background()
	ok, err := b.TryLock(ctx, "lock", "owner-1", time.Minute, 1)
	require.NoError(t, err)
	require.True(t, ok)

	b.UnLock(ctx, "lock", "owner-1")
	assert.Empty(t, buf.String())

	mr.Close()
	b.UnLock(ctx, "lock", "owner-1")
	assert.Contains(t, buf.String(), "redis unlock failed")
	assert.Contains(t, buf.String(), `"key":"lock"`)
}
