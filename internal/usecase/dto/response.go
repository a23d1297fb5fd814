package dto

import (
	"time"

	"github.com/places-microservice/internal/domain"
)

// NearbyPlacesResponse - ответ на поиск мест.
// Total считается до применения limit, Truncated показывает, что часть мест отброшена.
type NearbyPlacesResponse struct {
	Places       []PlaceResponse `json:"places"`
	Total        int             `json:"total"`
	Truncated    bool            `json:"truncated,omitempty"`
	Source       string          `json:"source"`
	Provider     string          `json:"provider"`
	RadiusMeters int             `json:"radius_m"`
	Categories   []string        `json:"categories"`
	FetchedAt    time.Time       `json:"fetched_at"`
}

// PlaceResponse - место в ответе API
type PlaceResponse struct {
	ID             string   `json:"id"`
	Provider       string   `json:"provider"`
	Name           string   `json:"name,omitempty"`
	Category       string   `json:"category"`
	Categories     []string `json:"categories"`
	Lat            float64  `json:"lat"`
	Lon            float64  `json:"lon"`
	DistanceMeters float64  `json:"distance_m"`
	MapsURL        string   `json:"maps_url"`

	// OSM
	Details *domain.OSMDetails `json:"details,omitempty"`

	// Google
	Vicinity         string   `json:"vicinity,omitempty"`
	Rating           *float64 `json:"rating,omitempty"`
	UserRatingsTotal *int     `json:"user_ratings_total,omitempty"`
	PhotoReference   *string  `json:"photo_reference,omitempty"`
	OpenNow          *bool    `json:"open_now,omitempty"`
}

// CategoryResponse - категория для фильтра
type CategoryResponse struct {
	ID        string `json:"id"`
	Label     string `json:"label"`
	Fetchable bool   `json:"fetchable"`
}

// BrandImageResponse - изображение бренда
type BrandImageResponse struct {
	WikidataID string    `json:"wikidata_id"`
	URL        string    `json:"url"`
	ResolvedAt time.Time `json:"resolved_at"`
}

// HealthResponse - состояние сервиса
type HealthResponse struct {
	Status  string            `json:"status"`
	Storage string            `json:"storage"`
	Checks  map[string]string `json:"checks,omitempty"`
}
