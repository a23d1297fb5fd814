package utils

import "github.com/umahmood/haversine"

// DistanceMeters - расстояние по большому кругу между двумя точками в метрах
func DistanceMeters(lat1, lon1, lat2, lon2 float64) float64 {
	_, km := haversine.Distance(
		haversine.Coord{Lat: lat1, Lon: lon1},
		haversine.Coord{Lat: lat2, Lon: lon2},
	)
	return km * 1000
}

// ValidateCoordinates проверяет валидность координат
func ValidateCoordinates(lat, lon float64) bool {
	return lat >= -90 && lat <= 90 && lon >= -180 && lon <= 180
}

const (
	MinRadiusMeters = 1
	// MaxRadiusMeters - предел Google Nearby Search
	MaxRadiusMeters = 50000
)

// ValidateRadius проверяет радиус поиска в метрах
func ValidateRadius(radiusMeters int) bool {
	return radiusMeters >= MinRadiusMeters && radiusMeters <= MaxRadiusMeters
}
