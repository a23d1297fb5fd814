package usecase

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/places-microservice/internal/config"
	"github.com/places-microservice/internal/domain"
	"github.com/places-microservice/internal/domain/repository"
	"github.com/places-microservice/internal/pkg/errors"
	"github.com/places-microservice/internal/pkg/utils"
	"github.com/places-microservice/internal/usecase/dto"
)

// Source - откуда получены данные
type Source string

const (
	SourceCache   Source = "cache"
	SourceNetwork Source = "network"
)

// LocateResult - результат пайплайна
type LocateResult struct {
	Places    []domain.Place
	Source    Source
	Key       domain.QueryKey
	FetchedAt time.Time
}

// PlacesUseCase - пайплайн выборки мест: кеш, провайдер, фильтр категорий
type PlacesUseCase struct {
	providers       map[domain.ProviderID]repository.PlacesProvider
	cache           repository.SnapshotCache
	defaultProvider domain.ProviderID
	baseline        domain.CategorySet
	defaultRadius   int
	maxResults      int
	fetchTimeout    time.Duration
	includeCenter   bool
	logger          *zap.Logger
}

func NewPlacesUseCase(
	providers []repository.PlacesProvider,
	cache repository.SnapshotCache,
	cfg config.PlacesConfig,
	keyIncludeCenter bool,
	logger *zap.Logger,
) *PlacesUseCase {
	byID := make(map[domain.ProviderID]repository.PlacesProvider, len(providers))
	for _, p := range providers {
		byID[p.ID()] = p
	}

	uc := &PlacesUseCase{
		providers:       byID,
		cache:           cache,
		defaultProvider: cfg.Provider,
		baseline:        cfg.FetchCategories.Without(domain.CategoryOther),
		defaultRadius:   cfg.DefaultRadius,
		maxResults:      cfg.MaxResults,
		fetchTimeout:    cfg.FetchTimeout,
		includeCenter:   keyIncludeCenter,
		logger:          logger,
	}
	if uc.defaultRadius == 0 {
		uc.defaultRadius = 1000
	}
	if uc.maxResults == 0 {
		uc.maxResults = 200
	}
	return uc
}

// FetchSet - категории, которые реально запрашиваются у провайдера
func (uc *PlacesUseCase) FetchSet(selected domain.CategorySet) domain.CategorySet {
	return selected.Without(domain.CategoryOther).Union(uc.baseline)
}

// QueryKey строит ключ кеша для запроса
func (uc *PlacesUseCase) QueryKey(provider domain.ProviderID, center domain.Point, radiusMeters int, selected domain.CategorySet) domain.QueryKey {
	key := domain.NewQueryKey(provider, radiusMeters, uc.FetchSet(selected))
	if uc.includeCenter {
		key = key.WithCenter(center)
	}
	return key
}

// Locate возвращает места выбранных категорий вокруг center.
// Свежий непустой снимок с тем же ключом используется без обращения к сети;
// иначе данные запрашиваются у провайдера и сохраняются в кеш.
func (uc *PlacesUseCase) Locate(
	ctx context.Context,
	providerID domain.ProviderID,
	center domain.Point,
	radiusMeters int,
	selected domain.CategorySet,
) (*LocateResult, error) {
	provider, ok := uc.providers[providerID]
	if !ok {
		return nil, errors.ErrInvalidProvider
	}

	key := uc.QueryKey(providerID, center, radiusMeters, selected)

	if entry, hit := uc.cache.Lookup(ctx, key); hit && len(entry.Places) > 0 {
		uc.logger.Debug("Serving places from snapshot",
			zap.String("key", key.String()),
			zap.Int("cached", len(entry.Places)))
		return &LocateResult{
			Places:    domain.FilterByCategories(entry.Places, selected),
			Source:    SourceCache,
			Key:       key,
			FetchedAt: entry.FetchedAt,
		}, nil
	}

	fetchCtx := ctx
	if uc.fetchTimeout > 0 {
		var cancel context.CancelFunc
		fetchCtx, cancel = context.WithTimeout(ctx, uc.fetchTimeout)
		defer cancel()
	}

	started := time.Now()
	places, err := provider.FetchPlaces(fetchCtx, center, radiusMeters, key.Categories)
	if err != nil {
		uc.logger.Error("Failed to fetch places",
			zap.String("provider", string(providerID)),
			zap.String("key", key.String()),
			zap.Error(err))
		return nil, &errors.LocationsUnavailableError{Err: err}
	}

	uc.logger.Info("Places fetched",
		zap.String("provider", string(providerID)),
		zap.String("key", key.String()),
		zap.Int("count", len(places)),
		zap.Duration("took", time.Since(started)))

	uc.cache.Store(ctx, key, places)

	return &LocateResult{
		Places:    domain.FilterByCategories(places, selected),
		Source:    SourceNetwork,
		Key:       key,
		FetchedAt: time.Now(),
	}, nil
}

// SearchNearby проверяет запрос, подставляет значения по умолчанию
// и возвращает места с расстоянием от центра
func (uc *PlacesUseCase) SearchNearby(ctx context.Context, req dto.NearbyPlacesRequest) (*dto.NearbyPlacesResponse, error) {
	if req.Lat == nil || req.Lon == nil || !utils.ValidateCoordinates(*req.Lat, *req.Lon) {
		return nil, errors.ErrInvalidCoordinates
	}
	center := domain.Point{Lat: *req.Lat, Lon: *req.Lon}

	radius := req.RadiusMeters
	if radius == 0 {
		radius = uc.defaultRadius
	}
	if !utils.ValidateRadius(radius) {
		return nil, errors.ErrInvalidRadius
	}

	selected, err := domain.ParseCategories(req.Categories...)
	if err != nil {
		return nil, errors.ErrInvalidCategory.WithDetails(map[string]interface{}{"categories": err.Error()})
	}
	if len(selected) == 0 {
		selected = domain.NewCategorySet(domain.CategoryCafe)
	}

	providerID := uc.defaultProvider
	if req.Provider != "" {
		providerID = domain.ProviderID(req.Provider)
	}
	if !providerID.Valid() {
		return nil, errors.ErrInvalidProvider
	}

	if req.Limit < 0 {
		return nil, errors.ErrInvalidRequest
	}
	limit := req.Limit
	if limit == 0 || limit > uc.maxResults {
		limit = uc.maxResults
	}

	result, err := uc.Locate(ctx, providerID, center, radius, selected)
	if err != nil {
		return nil, err
	}

	places := result.Places
	if len(places) > limit {
		places = places[:limit]
	}

	return &dto.NearbyPlacesResponse{
		Places:       dto.NewPlaceResponses(places, center),
		Total:        len(result.Places),
		Truncated:    len(places) < len(result.Places),
		Source:       string(result.Source),
		Provider:     string(providerID),
		RadiusMeters: radius,
		Categories:   selected.Strings(),
		FetchedAt:    result.FetchedAt,
	}, nil
}

// Providers возвращает настроенных провайдеров
func (uc *PlacesUseCase) Providers() []domain.ProviderID {
	out := make([]domain.ProviderID, 0, len(uc.providers))
	for _, id := range domain.ValidProviders() {
		if _, ok := uc.providers[id]; ok {
			out = append(out, id)
		}
	}
	return out
}
