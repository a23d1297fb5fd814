package dto

// NearbyPlacesRequest - запрос на поиск мест вокруг точки.
// Пустые поля заменяются значениями по умолчанию.
type NearbyPlacesRequest struct {
	Lat          *float64 `json:"lat" validate:"required,min=-90,max=90"`
	Lon          *float64 `json:"lon" validate:"required,min=-180,max=180"`
	RadiusMeters int      `json:"radius_m" validate:"omitempty,min=1,max=50000"`
	Categories   []string `json:"categories,omitempty" validate:"omitempty,dive,place_category"`
	Provider     string   `json:"provider,omitempty" validate:"omitempty,place_provider"`
	Limit        int      `json:"limit" validate:"omitempty,min=1,max=500"`
}

// PlacePhotoRequest - запрос фото места Google
type PlacePhotoRequest struct {
	Reference string `json:"reference" validate:"required,max=1024"`
	MaxWidth  uint   `json:"max_width" validate:"omitempty,min=1,max=1600"`
}
