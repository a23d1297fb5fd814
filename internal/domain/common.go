package domain

import (
	"fmt"
	"strconv"
)

type Point struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

func (p Point) String() string {
	return fmt.Sprintf("%s,%s",
		strconv.FormatFloat(p.Lat, 'f', -1, 64),
		strconv.FormatFloat(p.Lon, 'f', -1, 64))
}

// ProviderID идентифицирует источник данных о местах.
// Пространства идентификаторов у провайдеров не пересекаются.
type ProviderID string

const (
	ProviderOSM    ProviderID = "osm"
	ProviderGoogle ProviderID = "google"
)

func (p ProviderID) Valid() bool {
	return p == ProviderOSM || p == ProviderGoogle
}

// ValidProviders returns list of supported providers
func ValidProviders() []ProviderID {
	return []ProviderID{ProviderOSM, ProviderGoogle}
}
