package repository

import (
	"context"
	"time"

	"github.com/places-microservice/internal/domain"
)

// KeyValueStore - локальное персистентное хранилище ключ-значение
type KeyValueStore interface {
	// Get получает значение по ключу; отсутствующий ключ - (nil, nil)
	Get(ctx context.Context, key string) ([]byte, error)

	// Set сохраняет значение; ttl == 0 означает хранение без срока
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// Delete удаляет значение
	Delete(ctx context.Context, key string) error

	// Health проверяет доступность хранилища
	Health(ctx context.Context) error
}

// SnapshotCache - одноместный кеш последнего результата провайдера.
// Ошибки хранилища логируются и не пробрасываются: Lookup сообщает промах,
// Store ничего не делает.
type SnapshotCache interface {
	// Lookup возвращает снимок, если ключ совпадает и снимок не старше TTL
	Lookup(ctx context.Context, key domain.QueryKey) (*domain.CacheEntry, bool)

	// Store перезаписывает снимок текущим временем
	Store(ctx context.Context, key domain.QueryKey, places []domain.Place)

	// Inspect возвращает сохраненный снимок без проверки свежести; (nil, nil) если пусто
	Inspect(ctx context.Context) (*domain.CacheEntry, error)

	// Clear удаляет снимок
	Clear(ctx context.Context) error

	// TTL возвращает срок свежести снимка
	TTL() time.Duration
}
