package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/places-microservice/internal/domain"
	"github.com/places-microservice/internal/domain/repository"
	"github.com/places-microservice/internal/pkg/errors"
)

// SnapshotKey - ключ единственного слота снимка в хранилище
const SnapshotKey = "places:snapshot"

// DefaultSnapshotTTL - срок свежести снимка
const DefaultSnapshotTTL = time.Hour

type snapshotRecord struct {
	Provider   domain.ProviderID  `json:"provider"`
	Radius     int                `json:"radius"`
	Categories domain.CategorySet `json:"categories"`
	Center     *domain.Point      `json:"center,omitempty"`
	Timestamp  int64              `json:"timestamp"`
	Data       []placeRecord      `json:"data"`
}

// placeRecord хранит один вариант Place с явным тегом провайдера
type placeRecord struct {
	Provider domain.ProviderID   `json:"provider"`
	OSM      *domain.OSMPlace    `json:"osm,omitempty"`
	Google   *domain.GooglePlace `json:"google,omitempty"`
}

// SnapshotCache хранит последний успешный результат провайдера в KeyValueStore
type SnapshotCache struct {
	store  repository.KeyValueStore
	ttl    time.Duration
	logger *zap.Logger
	now    func() time.Time
}

var _ repository.SnapshotCache = (*SnapshotCache)(nil)

type SnapshotOption func(*SnapshotCache)

// WithClock подменяет источник времени
func WithClock(now func() time.Time) SnapshotOption {
	return func(c *SnapshotCache) {
		c.now = now
	}
}

// NewSnapshotCache создает кеш; ttl <= 0 заменяется на DefaultSnapshotTTL
func NewSnapshotCache(store repository.KeyValueStore, ttl time.Duration, logger *zap.Logger, opts ...SnapshotOption) *SnapshotCache {
	if ttl <= 0 {
		ttl = DefaultSnapshotTTL
	}
	c := &SnapshotCache{
		store:  store,
		ttl:    ttl,
		logger: logger,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *SnapshotCache) TTL() time.Duration {
	return c.ttl
}

func (c *SnapshotCache) Lookup(ctx context.Context, key domain.QueryKey) (*domain.CacheEntry, bool) {
	entry, err := c.load(ctx)
	if err != nil {
		c.logger.Warn("Snapshot cache read failed, treating as miss", zap.Error(err))
		return nil, false
	}
	if entry == nil {
		c.logger.Debug("Snapshot cache empty", zap.String("key", key.String()))
		return nil, false
	}

	if !entry.Key.Equal(key) {
		c.logger.Debug("Snapshot cache key mismatch",
			zap.String("key", key.String()),
			zap.String("cached_key", entry.Key.String()))
		return nil, false
	}

	now := c.now()
	if !entry.Fresh(now, c.ttl) {
		c.logger.Debug("Snapshot cache stale",
			zap.String("key", key.String()),
			zap.Duration("age", entry.Age(now)))
		return nil, false
	}

	c.logger.Debug("Snapshot cache hit",
		zap.String("key", key.String()),
		zap.Int("places", len(entry.Places)),
		zap.Duration("age", entry.Age(now)))
	return entry, true
}

func (c *SnapshotCache) Store(ctx context.Context, key domain.QueryKey, places []domain.Place) {
	data, err := encodeSnapshot(key, places, c.now())
	if err != nil {
		c.logger.Warn("Snapshot cache write skipped",
			zap.Error(&errors.CacheIOError{Op: "encode", Key: SnapshotKey, Err: err}))
		return
	}

	if err := c.store.Set(ctx, SnapshotKey, data, 0); err != nil {
		c.logger.Warn("Snapshot cache write failed",
			zap.Error(&errors.CacheIOError{Op: "write", Key: SnapshotKey, Err: err}))
		return
	}

	c.logger.Debug("Snapshot cache stored",
		zap.String("key", key.String()),
		zap.Int("places", len(places)))
}

func (c *SnapshotCache) Inspect(ctx context.Context) (*domain.CacheEntry, error) {
	return c.load(ctx)
}

func (c *SnapshotCache) Clear(ctx context.Context) error {
	if err := c.store.Delete(ctx, SnapshotKey); err != nil {
		return &errors.CacheIOError{Op: "delete", Key: SnapshotKey, Err: err}
	}
	c.logger.Info("Snapshot cache cleared")
	return nil
}

func (c *SnapshotCache) load(ctx context.Context) (*domain.CacheEntry, error) {
	raw, err := c.store.Get(ctx, SnapshotKey)
	if err != nil {
		return nil, &errors.CacheIOError{Op: "read", Key: SnapshotKey, Err: err}
	}
	if raw == nil {
		return nil, nil
	}

	entry, err := decodeSnapshot(raw)
	if err != nil {
		return nil, &errors.CacheIOError{Op: "decode", Key: SnapshotKey, Err: err}
	}
	return entry, nil
}

func encodeSnapshot(key domain.QueryKey, places []domain.Place, now time.Time) ([]byte, error) {
	rec := snapshotRecord{
		Provider:   key.Provider,
		Radius:     key.RadiusMeters,
		Categories: key.Categories,
		Center:     key.Center,
		Timestamp:  now.UnixMilli(),
		Data:       make([]placeRecord, 0, len(places)),
	}

	for _, p := range places {
		switch v := p.(type) {
		case *domain.OSMPlace:
			rec.Data = append(rec.Data, placeRecord{Provider: domain.ProviderOSM, OSM: v})
		case *domain.GooglePlace:
			rec.Data = append(rec.Data, placeRecord{Provider: domain.ProviderGoogle, Google: v})
		default:
			return nil, fmt.Errorf("unsupported place type %T", p)
		}
	}

	return json.Marshal(rec)
}

func decodeSnapshot(raw []byte) (*domain.CacheEntry, error) {
	var rec snapshotRecord
	if err := json.Unmarshal(raw, &rec); err != nil {
		return nil, fmt.Errorf("unmarshal snapshot: %w", err)
	}

	places := make([]domain.Place, 0, len(rec.Data))
	for i, pr := range rec.Data {
		switch {
		case pr.Provider == domain.ProviderOSM && pr.OSM != nil:
			places = append(places, pr.OSM)
		case pr.Provider == domain.ProviderGoogle && pr.Google != nil:
			places = append(places, pr.Google)
		default:
			return nil, fmt.Errorf("snapshot item %d: invalid place record for provider %q", i, pr.Provider)
		}
	}

	key := domain.NewQueryKey(rec.Provider, rec.Radius, rec.Categories)
	if rec.Center != nil {
		key = key.WithCenter(*rec.Center)
	}

	return &domain.CacheEntry{
		Key:       key,
		Places:    places,
		FetchedAt: time.UnixMilli(rec.Timestamp),
	}, nil
}
