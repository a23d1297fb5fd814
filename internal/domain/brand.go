package domain

import "time"

// BrandImage - изображение бренда, найденное через Wikidata
type BrandImage struct {
	WikidataID string    `json:"wikidata_id"`
	URL        string    `json:"url"`
	ResolvedAt time.Time `json:"resolved_at"`
}
