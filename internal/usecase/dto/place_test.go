package dto

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/places-microservice/internal/domain"
)

func TestNewPlaceResponse_OSM(t *testing.T) {
	center := domain.Point{Lat: 37.7749, Lon: -122.4194}
	p := &domain.OSMPlace{ID: 42, Lat: 37.7749, Lon: -122.4194, Tags: map[string]string{
		"amenity":         "library",
		"name":            "Mission Branch",
		"internet_access": "wlan",
	}}

	resp := NewPlaceResponse(p, center)
	assert.Equal(t, "42", resp.ID)
	assert.Equal(t, "osm", resp.Provider)
	assert.Equal(t, "library", resp.Category)
	assert.Equal(t, []string{"library"}, resp.Categories)
	assert.Equal(t, 0.0, resp.DistanceMeters)
	assert.Contains(t, resp.MapsURL, "query=Mission+Branch")
	require.NotNil(t, resp.Details)
	assert.Equal(t, domain.AvailabilityYes, resp.Details.WiFi)
	assert.Nil(t, resp.Rating)
}

func TestNewPlaceResponse_Google(t *testing.T) {
	center := domain.Point{Lat: 37.7749, Lon: -122.4194}
	rating := 4.2
	ref := "photo-ref"
	p := &domain.GooglePlace{
		PlaceID:         "ChIJxyz",
		Name:            "Sightglass",
		Lat:             37.7839,
		Lon:             -122.4194,
		Types:           []string{"cafe"},
		Vicinity:        "270 7th St",
		Rating:          &rating,
		PhotoReference:  &ref,
		MatchedCategory: domain.CategoryCafe,
	}

	resp := NewPlaceResponse(p, center)
	assert.Equal(t, "google", resp.Provider)
	assert.Equal(t, "cafe", resp.Category)
	assert.Nil(t, resp.Details)
	assert.Equal(t, "270 7th St", resp.Vicinity)
	assert.Equal(t, &rating, resp.Rating)
	assert.Equal(t, &ref, resp.PhotoReference)
	// 0.009 градуса широты ~ 1 км
	assert.InDelta(t, 1000, resp.DistanceMeters, 10)
}

func TestNewCategoryResponses(t *testing.T) {
	cats := NewCategoryResponses()
	require.Len(t, cats, 4)
	assert.Equal(t, CategoryResponse{ID: "coworking_space", Label: "coworking space", Fetchable: true}, cats[2])
	assert.False(t, cats[3].Fetchable)
}
