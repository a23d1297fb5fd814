package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/places-microservice/internal/config"
)

// getTestRedis подключается к локальному Redis (DB 1) или пропускает тест
func getTestRedis(t *testing.T) *Redis {
	t.Helper()
	r, err := NewRedis(&config.RedisConfig{Host: "localhost", Port: 6379, DB: 1}, zap.NewNop())
	if err != nil {
		t.Skipf("Redis not available for integration tests: %v", err)
	}
	t.Cleanup(func() { r.Close() })
	return r
}

func TestRedisStore_SetGetDelete(t *testing.T) {
	r := getTestRedis(t)
	store := NewRedisStore(r)
	ctx := context.Background()
	key := "test:places:snapshot"
	defer r.Client().Del(ctx, key)

	val, err := store.Get(ctx, key)
	require.NoError(t, err)
	assert.Nil(t, val)

	require.NoError(t, store.Set(ctx, key, []byte("payload"), 0))
	val, err = store.Get(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, []byte("payload"), val)

	ttl, err := r.Client().TTL(ctx, key).Result()
	require.NoError(t, err)
	assert.Equal(t, time.Duration(-1), ttl)

	require.NoError(t, store.Delete(ctx, key))
	val, err = store.Get(ctx, key)
	require.NoError(t, err)
	assert.Nil(t, val)

	assert.NoError(t, store.Health(ctx))
}

func TestRedisStore_TTL(t *testing.T) {
	r := getTestRedis(t)
	store := NewRedisStore(r)
	ctx := context.Background()
	key := "test:brand_image:Q37158"
	defer r.Client().Del(ctx, key)

	require.NoError(t, store.Set(ctx, key, []byte("url"), time.Minute))

	ttl, err := r.Client().TTL(ctx, key).Result()
	require.NoError(t, err)
	assert.True(t, ttl > 0 && ttl <= time.Minute)
}

func TestNewRedis_Unreachable(t *testing.T) {
	started := time.Now()
	_, err := NewRedis(&config.RedisConfig{Host: "127.0.0.1", Port: 1, ConnectTimeout: 200 * time.Millisecond}, zap.NewNop())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "127.0.0.1:1")
	assert.Less(t, time.Since(started), 2*time.Second)
}

func TestRedis_Health(t *testing.T) {
	r := getTestRedis(t)
	assert.NoError(t, NewRedisStore(r).Health(context.Background()))
}
