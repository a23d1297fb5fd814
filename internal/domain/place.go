package domain

import "strconv"

// Place - нормализованная запись о заведении.
// Реализуется только *OSMPlace и *GooglePlace; расширенные атрибуты
// читаются через type switch по конкретному варианту.
type Place interface {
	Provider() ProviderID
	Summary() PlaceSummary
	isPlace()
}

// PlaceSummary - общая проекция записи независимо от провайдера
type PlaceSummary struct {
	ID          string      `json:"id"`
	Name        string      `json:"name,omitempty"`
	Coordinates Point       `json:"coordinates"`
	Categories  CategorySet `json:"categories"`
}

// PrimaryCategory возвращает основную категорию записи
func (s PlaceSummary) PrimaryCategory() Category {
	for _, c := range s.Categories {
		if c != CategoryOther {
			return c
		}
	}
	return CategoryOther
}

// OSMPlace - узел OpenStreetMap, полученный из Overpass
type OSMPlace struct {
	ID   int64             `json:"id"`
	Lat  float64           `json:"lat"`
	Lon  float64           `json:"lon"`
	Tags map[string]string `json:"tags,omitempty"`
}

func (p *OSMPlace) Provider() ProviderID { return ProviderOSM }

func (p *OSMPlace) Summary() PlaceSummary {
	return PlaceSummary{
		ID:          strconv.FormatInt(p.ID, 10),
		Name:        p.Tags["name"],
		Coordinates: Point{Lat: p.Lat, Lon: p.Lon},
		Categories:  NewCategorySet(p.Category()),
	}
}

// Category определяет категорию по тегам amenity / office
func (p *OSMPlace) Category() Category {
	switch p.Tags["amenity"] {
	case "cafe":
		return CategoryCafe
	case "library":
		return CategoryLibrary
	case "coworking_space":
		return CategoryCoworkingSpace
	}
	if p.Tags["office"] == "coworking" {
		return CategoryCoworkingSpace
	}
	return CategoryOther
}

func (p *OSMPlace) isPlace() {}

// GooglePlace - результат Google Places Nearby Search
type GooglePlace struct {
	PlaceID          string   `json:"place_id"`
	Name             string   `json:"name,omitempty"`
	Lat              float64  `json:"lat"`
	Lon              float64  `json:"lon"`
	Types            []string `json:"types,omitempty"`
	Vicinity         string   `json:"vicinity,omitempty"`
	Rating           *float64 `json:"rating,omitempty"`
	UserRatingsTotal *int     `json:"user_ratings_total,omitempty"`
	PhotoReference   *string  `json:"photo_reference,omitempty"`
	OpenNow          *bool    `json:"open_now,omitempty"`
	BusinessStatus   string   `json:"business_status,omitempty"`

	// MatchedCategory - категория запроса, который вернул это место
	MatchedCategory Category `json:"matched_category,omitempty"`
}

func (p *GooglePlace) Provider() ProviderID { return ProviderGoogle }

func (p *GooglePlace) Summary() PlaceSummary {
	return PlaceSummary{
		ID:          p.PlaceID,
		Name:        p.Name,
		Coordinates: Point{Lat: p.Lat, Lon: p.Lon},
		Categories:  p.Categories(),
	}
}

// Categories объединяет категорию запроса с категориями из types
func (p *GooglePlace) Categories() CategorySet {
	var cats []Category
	if p.MatchedCategory != "" {
		cats = append(cats, p.MatchedCategory)
	}
	for _, t := range p.Types {
		switch t {
		case "cafe":
			cats = append(cats, CategoryCafe)
		case "library":
			cats = append(cats, CategoryLibrary)
		}
	}
	if len(cats) == 0 {
		cats = append(cats, CategoryOther)
	}
	return NewCategorySet(cats...)
}

func (p *GooglePlace) isPlace() {}
