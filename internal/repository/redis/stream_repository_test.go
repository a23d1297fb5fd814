package redis_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/places-microservice/internal/domain"
	redisRepo "github.com/places-microservice/internal/repository/redis"
)

const (
	testWarmStream  = "test:stream:places:warm"
	testReadyStream = "test:stream:places:ready"
)

func getTestRedisClient(t *testing.T) *redis.Client {
	client := redis.NewClient(&redis.Options{
		Addr: "localhost:6379",
		DB:   1,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		t.Skipf("Redis not available for integration tests: %v", err)
	}

	client.Del(ctx, testWarmStream, testReadyStream)
	t.Cleanup(func() {
		client.Del(context.Background(), testWarmStream, testReadyStream)
		client.Close()
	})
	return client
}

func TestStreamRepository_CreateConsumerGroup(t *testing.T) {
	client := getTestRedisClient(t)
	repo := redisRepo.NewStreamRepository(client, 100*time.Millisecond, zap.NewNop())
	ctx := context.Background()

	require.NoError(t, repo.CreateConsumerGroup(ctx, testWarmStream, "test-group"))

	groups, err := client.XInfoGroups(ctx, testWarmStream).Result()
	require.NoError(t, err)
	require.Len(t, groups, 1)
	assert.Equal(t, "test-group", groups[0].Name)

	// повторное создание не ошибка
	assert.NoError(t, repo.CreateConsumerGroup(ctx, testWarmStream, "test-group"))
}

func TestStreamRepository_PublishToStream(t *testing.T) {
	client := getTestRedisClient(t)
	repo := redisRepo.NewStreamRepository(client, 100*time.Millisecond, zap.NewNop())
	ctx := context.Background()

	event := domain.PlacesReadyEvent{RequestID: uuid.New(), Total: 12, Source: "network"}
	require.NoError(t, repo.PublishToStream(ctx, testReadyStream, event))

	messages, err := client.XRead(ctx, &redis.XReadArgs{
		Streams: []string{testReadyStream, "0"},
		Count:   1,
	}).Result()
	require.NoError(t, err)
	require.Len(t, messages, 1)
	require.Len(t, messages[0].Messages, 1)

	raw, ok := messages[0].Messages[0].Values["data"].(string)
	require.True(t, ok)

	var received domain.PlacesReadyEvent
	require.NoError(t, json.Unmarshal([]byte(raw), &received))
	assert.Equal(t, event, received)
}

func TestStreamRepository_ConsumeAndAck(t *testing.T) {
	client := getTestRedisClient(t)
	repo := redisRepo.NewStreamRepository(client, 100*time.Millisecond, zap.NewNop())
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	group := "test-consume-group"
	require.NoError(t, repo.CreateConsumerGroup(ctx, testWarmStream, group))

	event := domain.PlacesWarmEvent{
		RequestID:    uuid.New(),
		Lat:          37.7749,
		Lon:          -122.4194,
		RadiusMeters: 1000,
		Categories:   []string{"cafe", "library"},
	}
	require.NoError(t, repo.PublishToStream(ctx, testWarmStream, event))

	msgChan, err := repo.ConsumeStream(ctx, testWarmStream, group, "test-consumer")
	require.NoError(t, err)

	select {
	case msg := <-msgChan:
		var received domain.PlacesWarmEvent
		require.NoError(t, json.Unmarshal([]byte(msg.Data), &received))
		assert.Equal(t, event, received)

		pending, err := client.XPending(ctx, testWarmStream, group).Result()
		require.NoError(t, err)
		assert.Equal(t, int64(1), pending.Count)

		require.NoError(t, repo.AckMessage(ctx, testWarmStream, group, msg.ID))

		pending, err = client.XPending(ctx, testWarmStream, group).Result()
		require.NoError(t, err)
		assert.Equal(t, int64(0), pending.Count)
	case <-time.After(3 * time.Second):
		t.Fatal("Timeout waiting for message")
	}
}

func TestStreamRepository_ConsumeStream_ContextCancellation(t *testing.T) {
	client := getTestRedisClient(t)
	repo := redisRepo.NewStreamRepository(client, 100*time.Millisecond, zap.NewNop())
	ctx, cancel := context.WithCancel(context.Background())

	require.NoError(t, repo.CreateConsumerGroup(ctx, testWarmStream, "test-cancel-group"))

	msgChan, err := repo.ConsumeStream(ctx, testWarmStream, "test-cancel-group", "test-consumer")
	require.NoError(t, err)

	time.AfterFunc(100*time.Millisecond, cancel)

	select {
	case _, ok := <-msgChan:
		assert.False(t, ok, "channel should be closed")
	case <-time.After(2 * time.Second):
		t.Fatal("Timeout waiting for channel to close")
	}
}

func TestStreamRepository_LastMessageIDAndReadAfter(t *testing.T) {
	client := getTestRedisClient(t)
	repo := redisRepo.NewStreamRepository(client, 100*time.Millisecond, zap.NewNop())
	ctx := context.Background()

	lastID, err := repo.LastMessageID(ctx, testReadyStream)
	require.NoError(t, err)
	assert.Equal(t, "0-0", lastID)

	first := domain.PlacesReadyEvent{RequestID: uuid.New(), Total: 1}
	require.NoError(t, repo.PublishToStream(ctx, testReadyStream, first))
	lastID, err = repo.LastMessageID(ctx, testReadyStream)
	require.NoError(t, err)
	assert.NotEqual(t, "0-0", lastID)

	second := domain.PlacesReadyEvent{RequestID: uuid.New(), Total: 2}
	require.NoError(t, repo.PublishToStream(ctx, testReadyStream, second))

	msgs, err := repo.ReadAfter(ctx, testReadyStream, lastID)
	require.NoError(t, err)
	require.Len(t, msgs, 1)

	var received domain.PlacesReadyEvent
	require.NoError(t, json.Unmarshal([]byte(msgs[0].Data), &received))
	assert.Equal(t, second, received)

	// после последнего сообщения - пустой ответ по таймауту блокировки
	msgs, err = repo.ReadAfter(ctx, testReadyStream, msgs[0].ID)
	require.NoError(t, err)
	assert.Empty(t, msgs)
}
