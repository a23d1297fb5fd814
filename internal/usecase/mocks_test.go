package usecase_test

import (
	"context"
	"sync"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/places-microservice/internal/domain"
)

// MockPlacesProvider is a mock of PlacesProvider
type MockPlacesProvider struct {
	mock.Mock
	id domain.ProviderID
}

func (m *MockPlacesProvider) ID() domain.ProviderID {
	return m.id
}

func (m *MockPlacesProvider) FetchPlaces(ctx context.Context, center domain.Point, radiusMeters int, categories domain.CategorySet) ([]domain.Place, error) {
	args := m.Called(ctx, center, radiusMeters, categories)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Place), args.Error(1)
}

// MockKeyValueStore is a mock of KeyValueStore
type MockKeyValueStore struct {
	mock.Mock
}

func (m *MockKeyValueStore) Get(ctx context.Context, key string) ([]byte, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func (m *MockKeyValueStore) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	return m.Called(ctx, key, value, ttl).Error(0)
}

func (m *MockKeyValueStore) Delete(ctx context.Context, key string) error {
	return m.Called(ctx, key).Error(0)
}

func (m *MockKeyValueStore) Health(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

// MockBrandImageResolver is a mock of BrandImageResolver
type MockBrandImageResolver struct {
	mock.Mock
}

func (m *MockBrandImageResolver) ResolveBrandImage(ctx context.Context, wikidataID string) (string, error) {
	args := m.Called(ctx, wikidataID)
	return args.String(0), args.Error(1)
}

// MockPhotoFetcher is a mock of PhotoFetcher
type MockPhotoFetcher struct {
	mock.Mock
}

func (m *MockPhotoFetcher) FetchPhoto(ctx context.Context, reference string, maxWidth uint) ([]byte, string, error) {
	args := m.Called(ctx, reference, maxWidth)
	if args.Get(0) == nil {
		return nil, args.String(1), args.Error(2)
	}
	return args.Get(0).([]byte), args.String(1), args.Error(2)
}

// memoryStore - KeyValueStore в памяти со счетчиком записей
type memoryStore struct {
	mu   sync.Mutex
	data map[string][]byte
	sets int
}

func newMemoryStore() *memoryStore {
	return &memoryStore{data: make(map[string][]byte)}
}

func (s *memoryStore) Get(_ context.Context, key string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.data[key], nil
}

func (s *memoryStore) Set(_ context.Context, key string, value []byte, _ time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[key] = value
	s.sets++
	return nil
}

func (s *memoryStore) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, key)
	return nil
}

func (s *memoryStore) Health(context.Context) error { return nil }

func (s *memoryStore) Sets() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sets
}

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func ptrFloat64(f float64) *float64 {
	return &f
}
