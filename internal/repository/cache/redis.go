package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/places-microservice/internal/config"
)

const defaultConnectTimeout = 5 * time.Second

// Redis - общий пул для снимков, брендов и стримов прогрева
type Redis struct {
	client *redis.Client
	addr   string
	logger *zap.Logger
}

// NewRedis открывает пул и ждет первый PING не дольше cfg.ConnectTimeout
func NewRedis(cfg *config.RedisConfig, logger *zap.Logger) (*Redis, error) {
	timeout := cfg.ConnectTimeout
	if timeout <= 0 {
		timeout = defaultConnectTimeout
	}

	addr := cfg.Addr()
	client := redis.NewClient(&redis.Options{
		Addr:        addr,
		Password:    cfg.Password,
		DB:          cfg.DB,
		DialTimeout: timeout,
	})

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to redis at %s: %w", addr, err)
	}

	logger.Info("Redis connected", zap.String("addr", addr), zap.Int("db", cfg.DB))

	return &Redis{client: client, addr: addr, logger: logger}, nil
}

// Close закрывает пул; статистика пула пишется в лог
func (r *Redis) Close() error {
	stats := r.client.PoolStats()
	r.logger.Info("Closing Redis connection",
		zap.String("addr", r.addr),
		zap.Uint32("hits", stats.Hits),
		zap.Uint32("misses", stats.Misses),
		zap.Uint32("timeouts", stats.Timeouts))
	return r.client.Close()
}

// Health используется /health через KeyValueStore
func (r *Redis) Health(ctx context.Context) error {
	if err := r.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis %s: %w", r.addr, err)
	}
	return nil
}

// Client отдает go-redis клиент для стримов прогрева
func (r *Redis) Client() *redis.Client {
	return r.client
}
