package usecase

import (
	"context"
	"encoding/json"
	"regexp"
	"time"

	"go.uber.org/zap"

	"github.com/places-microservice/internal/domain"
	"github.com/places-microservice/internal/domain/repository"
	"github.com/places-microservice/internal/pkg/errors"
)

const brandImageKeyPrefix = "brand_image:"

var wikidataIDPattern = regexp.MustCompile(`^Q[1-9][0-9]*$`)

type brandImageRecord struct {
	URL        string `json:"url"`
	ResolvedAt int64  `json:"resolved_at"`
}

// BrandImageUseCase ищет изображения брендов и кеширует найденные URL
type BrandImageUseCase struct {
	resolver repository.BrandImageResolver
	store    repository.KeyValueStore
	ttl      time.Duration
	logger   *zap.Logger
	now      func() time.Time
}

// NewBrandImageUseCase; ttl == 0 - хранить найденный URL без срока
func NewBrandImageUseCase(
	resolver repository.BrandImageResolver,
	store repository.KeyValueStore,
	ttl time.Duration,
	logger *zap.Logger,
) *BrandImageUseCase {
	return &BrandImageUseCase{
		resolver: resolver,
		store:    store,
		ttl:      ttl,
		logger:   logger,
		now:      time.Now,
	}
}

func (uc *BrandImageUseCase) GetBrandImage(ctx context.Context, wikidataID string) (*domain.BrandImage, error) {
	if !wikidataIDPattern.MatchString(wikidataID) {
		return nil, errors.ErrInvalidRequest.WithDetails(map[string]interface{}{"wikidata_id": "must look like Q123"})
	}

	key := brandImageKeyPrefix + wikidataID

	if cached := uc.cached(ctx, key); cached != nil {
		return &domain.BrandImage{
			WikidataID: wikidataID,
			URL:        cached.URL,
			ResolvedAt: time.UnixMilli(cached.ResolvedAt),
		}, nil
	}

	imageURL, err := uc.resolver.ResolveBrandImage(ctx, wikidataID)
	if err != nil {
		uc.logger.Warn("Brand image lookup failed",
			zap.String("wikidata_id", wikidataID),
			zap.Error(err))
		return nil, errors.ErrBrandImageUnavailable
	}
	if imageURL == "" {
		return nil, errors.ErrBrandImageNotFound
	}

	now := uc.now()
	uc.save(ctx, key, brandImageRecord{URL: imageURL, ResolvedAt: now.UnixMilli()})

	return &domain.BrandImage{
		WikidataID: wikidataID,
		URL:        imageURL,
		ResolvedAt: now,
	}, nil
}

func (uc *BrandImageUseCase) cached(ctx context.Context, key string) *brandImageRecord {
	raw, err := uc.store.Get(ctx, key)
	if err != nil {
		uc.logger.Warn("Brand image cache read failed",
			zap.Error(&errors.CacheIOError{Op: "read", Key: key, Err: err}))
		return nil
	}
	if raw == nil {
		return nil
	}

	var rec brandImageRecord
	if err := json.Unmarshal(raw, &rec); err != nil || rec.URL == "" {
		uc.logger.Warn("Brand image cache entry invalid", zap.String("key", key))
		return nil
	}
	return &rec
}

func (uc *BrandImageUseCase) save(ctx context.Context, key string, rec brandImageRecord) {
	data, err := json.Marshal(rec)
	if err != nil {
		return
	}
	if err := uc.store.Set(ctx, key, data, uc.ttl); err != nil {
		uc.logger.Warn("Brand image cache write failed",
			zap.Error(&errors.CacheIOError{Op: "write", Key: key, Err: err}))
	}
}
