package store

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	s, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(s.Close)

	return s, redis.NewClient(&redis.Options{Addr: s.Addr()})
}

func TestDeviceTokenStore_SaveAndGet(t *testing.T) {
	srv, rdb := newTestRedis(t)
	st := NewRedisDeviceTokenStore(rdb)
	ctx := context.Background()

	require.NoError(t, st.Save(ctx, "user-1", "tok-a"))
	require.NoError(t, st.Save(ctx, "user-1", "tok-b"))

	tok, err := st.Get(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, "tok-b", tok)

	assert.Equal(t, "tok-b", mustGet(t, srv, "device:token:user-1"))
	assert.Zero(t, srv.TTL("device:token:user-1"))
}

func mustGet(t *testing.T, srv *miniredis.Miniredis, key string) string {
	v, err := srv.Get(key)
	require.NoError(t, err)
	return v
}

func TestDeviceTokenStore_Missing(t *testing.T) {
	_, rdb := newTestRedis(t)
	st := NewRedisDeviceTokenStore(rdb)

	tok, err := st.Get(context.Background(), "nobody")
	require.NoError(t, err)
	assert.Empty(t, tok)
}

func TestDeviceTokenStore_Ready(t *testing.T) {
	srv, err := miniredis.Run()
	require.NoError(t, err)
	st := NewRedisDeviceTokenStore(redis.NewClient(&redis.Options{Addr: srv.Addr()}))

	assert.NoError(t, st.IsReady(context.Background()))
	srv.Close()
	assert.Error(t, st.IsReady(context.Background()))
}
