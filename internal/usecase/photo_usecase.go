package usecase

import (
	"context"

	"go.uber.org/zap"

	"github.com/places-microservice/internal/domain/repository"
	"github.com/places-microservice/internal/pkg/errors"
	"github.com/places-microservice/internal/usecase/dto"
)

const defaultPhotoMaxWidth = 400

// Photo - изображение места
type Photo struct {
	Data        []byte
	ContentType string
}

// PhotoUseCase проксирует Google Place Photo, ключ API остается на сервере
type PhotoUseCase struct {
	fetcher repository.PhotoFetcher
	logger  *zap.Logger
}

// NewPhotoUseCase; fetcher может быть nil, если Google не настроен
func NewPhotoUseCase(fetcher repository.PhotoFetcher, logger *zap.Logger) *PhotoUseCase {
	return &PhotoUseCase{fetcher: fetcher, logger: logger}
}

func (uc *PhotoUseCase) GetPhoto(ctx context.Context, req dto.PlacePhotoRequest) (*Photo, error) {
	if uc.fetcher == nil {
		return nil, errors.ErrInvalidProvider
	}
	if req.Reference == "" {
		return nil, errors.ErrInvalidRequest
	}
	if req.MaxWidth == 0 {
		req.MaxWidth = defaultPhotoMaxWidth
	}

	data, contentType, err := uc.fetcher.FetchPhoto(ctx, req.Reference, req.MaxWidth)
	if err != nil {
		uc.logger.Error("Failed to fetch place photo", zap.Error(err))
		return nil, errors.ErrPhotoUnavailable
	}
	if contentType == "" {
		contentType = "image/jpeg"
	}
	return &Photo{Data: data, ContentType: contentType}, nil
}
