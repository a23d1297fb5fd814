package domain

import (
	"fmt"
	"time"
)

// QueryKey - составной ключ запроса для кеширования.
// Center по умолчанию не участвует в ключе: запросы с одинаковым
// радиусом и категориями считаются эквивалентными при любом центре.
type QueryKey struct {
	Provider     ProviderID  `json:"provider"`
	RadiusMeters int         `json:"radius"`
	Categories   CategorySet `json:"categories"`
	Center       *Point      `json:"center,omitempty"`
}

func NewQueryKey(provider ProviderID, radiusMeters int, categories CategorySet) QueryKey {
	return QueryKey{
		Provider:     provider,
		RadiusMeters: radiusMeters,
		Categories:   NewCategorySet(categories...),
	}
}

// WithCenter включает центр запроса в ключ
func (k QueryKey) WithCenter(center Point) QueryKey {
	k.Center = &center
	return k
}

func (k QueryKey) Equal(other QueryKey) bool {
	if k.Provider != other.Provider || k.RadiusMeters != other.RadiusMeters {
		return false
	}
	if !k.Categories.Equal(other.Categories) {
		return false
	}
	switch {
	case k.Center == nil && other.Center == nil:
		return true
	case k.Center == nil || other.Center == nil:
		return false
	default:
		return *k.Center == *other.Center
	}
}

func (k QueryKey) String() string {
	s := fmt.Sprintf("%s:%d:%s", k.Provider, k.RadiusMeters, k.Categories)
	if k.Center != nil {
		s += "@" + k.Center.String()
	}
	return s
}

// CacheEntry - снимок последнего успешного запроса
type CacheEntry struct {
	Key       QueryKey
	Places    []Place
	FetchedAt time.Time
}

// Age возвращает возраст снимка относительно now
func (e *CacheEntry) Age(now time.Time) time.Duration {
	return now.Sub(e.FetchedAt)
}

// Fresh reports whether the entry is still within ttl at now.
func (e *CacheEntry) Fresh(now time.Time, ttl time.Duration) bool {
	return e.Age(now) <= ttl
}
