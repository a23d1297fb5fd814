package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/places-microservice/internal/domain/repository"
)

type redisStore struct {
	redis  *Redis
	logger *zap.Logger
}

// NewRedisStore возвращает KeyValueStore поверх Redis
func NewRedisStore(r *Redis) repository.KeyValueStore {
	return &redisStore{
		redis:  r,
		logger: r.logger,
	}
}

func (s *redisStore) Get(ctx context.Context, key string) ([]byte, error) {
	val, err := s.redis.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		s.logger.Error("Failed to get from redis", zap.String("key", key), zap.Error(err))
		return nil, fmt.Errorf("redis get error: %w", err)
	}

	s.logger.Debug("Redis hit", zap.String("key", key))
	return val, nil
}

func (s *redisStore) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if err := s.redis.client.Set(ctx, key, value, ttl).Err(); err != nil {
		s.logger.Error("Failed to set redis key", zap.String("key", key), zap.Error(err))
		return fmt.Errorf("redis set error: %w", err)
	}

	s.logger.Debug("Redis set", zap.String("key", key), zap.Duration("ttl", ttl))
	return nil
}

func (s *redisStore) Delete(ctx context.Context, key string) error {
	if err := s.redis.client.Del(ctx, key).Err(); err != nil {
		s.logger.Error("Failed to delete redis key", zap.String("key", key), zap.Error(err))
		return fmt.Errorf("redis delete error: %w", err)
	}

	s.logger.Debug("Redis deleted", zap.String("key", key))
	return nil
}

func (s *redisStore) Health(ctx context.Context) error {
	return s.redis.Health(ctx)
}
