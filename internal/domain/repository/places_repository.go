package repository

import (
	"context"

	"github.com/places-microservice/internal/domain"
)

// PlacesProvider определяет удаленный источник данных о местах
type PlacesProvider interface {
	// ID возвращает идентификатор провайдера
	ID() domain.ProviderID

	// FetchPlaces возвращает все места указанных категорий в радиусе от точки.
	// Ошибка любой из категорий означает ошибку всего вызова.
	FetchPlaces(ctx context.Context, center domain.Point, radiusMeters int, categories domain.CategorySet) ([]domain.Place, error)
}

// PhotoFetcher загружает фотографии мест Google
type PhotoFetcher interface {
	// FetchPhoto возвращает изображение и его content type
	FetchPhoto(ctx context.Context, reference string, maxWidth uint) ([]byte, string, error)
}

// BrandImageResolver ищет изображение бренда в Wikidata
type BrandImageResolver interface {
	// ResolveBrandImage возвращает URL изображения или "" если его нет
	ResolveBrandImage(ctx context.Context, wikidataID string) (string, error)
}
