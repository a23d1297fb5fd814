// Package app собирает зависимости сервиса из конфигурации.
// Используется cmd/api, cmd/worker и cmd/placesctl.
package app

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/places-microservice/internal/config"
	"github.com/places-microservice/internal/domain/repository"
	"github.com/places-microservice/internal/infrastructure/googleplaces"
	"github.com/places-microservice/internal/infrastructure/overpass"
	"github.com/places-microservice/internal/infrastructure/wikidata"
	"github.com/places-microservice/internal/repository/cache"
	"github.com/places-microservice/internal/repository/sqlite"
	"github.com/places-microservice/internal/usecase"
)

// Container - собранные хранилище, провайдеры и use case'ы
type Container struct {
	Config *config.Config
	Logger *zap.Logger

	Store repository.KeyValueStore
	// Redis == nil при STORAGE_BACKEND=sqlite
	Redis     *cache.Redis
	Snapshots *cache.SnapshotCache

	Places *usecase.PlacesUseCase
	Brands *usecase.BrandImageUseCase
	Photos *usecase.PhotoUseCase

	closers []func() error
}

// New подключает хранилище и создает провайдеров. При ошибке уже
// открытые ресурсы закрываются.
func New(cfg *config.Config, logger *zap.Logger) (*Container, error) {
	c := &Container{Config: cfg, Logger: logger}

	if err := c.openStorage(); err != nil {
		c.Close()
		return nil, err
	}

	c.Snapshots = cache.NewSnapshotCache(c.Store, cfg.Cache.SnapshotTTL, logger)

	providers := []repository.PlacesProvider{
		overpass.NewOverpassClient(&cfg.Overpass, logger),
	}

	var photos repository.PhotoFetcher
	if cfg.Google.APIKey != "" {
		google, err := googleplaces.NewClient(&cfg.Google, logger)
		if err != nil {
			c.Close()
			return nil, fmt.Errorf("failed to create google places client: %w", err)
		}
		providers = append(providers, google)
		photos = google
	} else {
		logger.Info("GOOGLE_PLACES_API_KEY is empty, google provider disabled")
	}

	c.Places = usecase.NewPlacesUseCase(providers, c.Snapshots, cfg.Places, cfg.Cache.KeyIncludeCenter, logger)
	c.Brands = usecase.NewBrandImageUseCase(
		wikidata.NewWikidataClient(&cfg.Wikidata, cfg.Overpass.UserAgent, logger),
		c.Store,
		cfg.Cache.BrandImageTTL,
		logger,
	)
	c.Photos = usecase.NewPhotoUseCase(photos, logger)

	logger.Info("Dependencies initialized",
		zap.String("storage", cfg.Storage.Backend),
		zap.Any("providers", c.Places.Providers()))

	return c, nil
}

func (c *Container) openStorage() error {
	switch c.Config.Storage.Backend {
	case config.StorageSQLite:
		store, err := sqlite.Open(c.Config.Storage.SQLitePath, c.Logger)
		if err != nil {
			return fmt.Errorf("failed to open sqlite storage: %w", err)
		}
		c.Store = store
		c.closers = append(c.closers, store.Close)
	default:
		redisClient, err := cache.NewRedis(&c.Config.Redis, c.Logger)
		if err != nil {
			return fmt.Errorf("failed to connect to redis: %w", err)
		}
		c.Redis = redisClient
		c.Store = cache.NewRedisStore(redisClient)
		c.closers = append(c.closers, redisClient.Close)
	}
	return nil
}

// Close закрывает хранилище в обратном порядке открытия
func (c *Container) Close() {
	for i := len(c.closers) - 1; i >= 0; i-- {
		if err := c.closers[i](); err != nil {
			c.Logger.Error("Failed to close resource", zap.Error(err))
		}
	}
	c.closers = nil
}
