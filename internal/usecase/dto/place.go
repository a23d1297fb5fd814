package dto

import (
	"math"

	"github.com/places-microservice/internal/domain"
	"github.com/places-microservice/internal/pkg/utils"
)

// NewPlaceResponse переводит доменное место в ответ API с расстоянием от center
func NewPlaceResponse(p domain.Place, center domain.Point) PlaceResponse {
	s := p.Summary()
	resp := PlaceResponse{
		ID:         s.ID,
		Provider:   string(p.Provider()),
		Name:       s.Name,
		Category:   string(s.PrimaryCategory()),
		Categories: s.Categories.Strings(),
		Lat:        s.Coordinates.Lat,
		Lon:        s.Coordinates.Lon,
		MapsURL:    domain.MapsURL(p),
	}
	resp.DistanceMeters = math.Round(utils.DistanceMeters(center.Lat, center.Lon, resp.Lat, resp.Lon))

	switch v := p.(type) {
	case *domain.OSMPlace:
		details := v.Details()
		resp.Details = &details
	case *domain.GooglePlace:
		resp.Vicinity = v.Vicinity
		resp.Rating = v.Rating
		resp.UserRatingsTotal = v.UserRatingsTotal
		resp.PhotoReference = v.PhotoReference
		resp.OpenNow = v.OpenNow
	}
	return resp
}

// NewPlaceResponses конвертирует список мест с сохранением порядка
func NewPlaceResponses(places []domain.Place, center domain.Point) []PlaceResponse {
	out := make([]PlaceResponse, 0, len(places))
	for _, p := range places {
		out = append(out, NewPlaceResponse(p, center))
	}
	return out
}

// NewCategoryResponses - список категорий для фильтра
func NewCategoryResponses() []CategoryResponse {
	fetchable := domain.FetchableCategories()
	out := make([]CategoryResponse, 0, len(domain.ValidCategories()))
	for _, c := range domain.ValidCategories() {
		out = append(out, CategoryResponse{
			ID:        string(c),
			Label:     c.Label(),
			Fetchable: fetchable.Contains(c),
		})
	}
	return out
}
