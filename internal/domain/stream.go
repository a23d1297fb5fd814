package domain

import "github.com/google/uuid"

// Stream names
const (
	StreamPlacesWarm  = "stream:places:warm"
	StreamPlacesReady = "stream:places:ready"
)

// PlacesWarmEvent - запрос на прогрев снимка кеша
type PlacesWarmEvent struct {
	RequestID    uuid.UUID `json:"request_id"`
	Lat          float64   `json:"lat"`
	Lon          float64   `json:"lon"`
	RadiusMeters int       `json:"radius_m"`
	Categories   []string  `json:"categories,omitempty"`
	Provider     string    `json:"provider,omitempty"`
}

// PlacesReadyEvent - результат прогрева
type PlacesReadyEvent struct {
	RequestID uuid.UUID `json:"request_id"`
	Total     int       `json:"total"`
	Source    string    `json:"source,omitempty"`
	Error     string    `json:"error,omitempty"`
}

// StreamMessage - сообщение из Redis Stream
type StreamMessage struct {
	ID   string
	Data string
}
