package domain

import (
	"net/url"
	"regexp"
	"strings"
)

// Availability - наличие удобства по данным OSM
type Availability string

const (
	AvailabilityYes     Availability = "yes"
	AvailabilityNo      Availability = "no"
	AvailabilityUnknown Availability = "unknown"
)

// Seating - тип посадочных мест
type Seating string

const (
	SeatingOutdoor Seating = "outdoor"
	SeatingIndoor  Seating = "indoor"
	SeatingNone    Seating = "none"
	SeatingUnknown Seating = "unknown"
)

// OSMDetails - детали заведения, извлеченные из тегов OSM
type OSMDetails struct {
	Amenity       string       `json:"amenity,omitempty"`
	Address       string       `json:"address,omitempty"`
	Phone         string       `json:"phone,omitempty"`
	Website       string       `json:"website,omitempty"`
	WebsiteHost   string       `json:"website_host,omitempty"`
	OpeningHours  []string     `json:"opening_hours,omitempty"`
	WiFi          Availability `json:"wifi"`
	Seating       Seating      `json:"seating"`
	BrandWikidata string       `json:"brand_wikidata,omitempty"`
}

// Details разбирает теги узла
func (p *OSMPlace) Details() OSMDetails {
	t := p.Tags
	return OSMDetails{
		Amenity:       t["amenity"],
		Address:       p.Address(),
		Phone:         t["phone"],
		Website:       t["website"],
		WebsiteHost:   websiteHost(t["website"]),
		OpeningHours:  splitOpeningHours(t["opening_hours"]),
		WiFi:          wifiAvailability(t["internet_access"]),
		Seating:       seating(t["outdoor_seating"], t["indoor_seating"]),
		BrandWikidata: p.BrandWikidataID(),
	}
}

// BrandWikidataID - идентификатор бренда в Wikidata, если есть
func (p *OSMPlace) BrandWikidataID() string {
	return p.Tags["brand:wikidata"]
}

// Address собирает адрес вида "1 Main St, Springfield, CA 94016"
func (p *OSMPlace) Address() string {
	t := p.Tags
	street := joinNonEmpty(" ", t["addr:housenumber"], t["addr:street"])
	region := joinNonEmpty(" ", t["addr:state"], t["addr:postcode"])
	return joinNonEmpty(", ", street, t["addr:city"], region)
}

var websitePrefix = regexp.MustCompile(`^(https?://)?(www\.)?`)

func websiteHost(website string) string {
	if website == "" {
		return ""
	}
	host := websitePrefix.ReplaceAllString(website, "")
	host, _, _ = strings.Cut(host, "/")
	return host
}

func splitOpeningHours(hours string) []string {
	if hours == "" {
		return nil
	}
	parts := strings.Split(hours, ";")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func wifiAvailability(internetAccess string) Availability {
	switch internetAccess {
	case "":
		return AvailabilityUnknown
	case "yes", "wlan":
		return AvailabilityYes
	default:
		return AvailabilityNo
	}
}

func seating(outdoor, indoor string) Seating {
	switch {
	case outdoor == "yes":
		return SeatingOutdoor
	case indoor == "yes":
		return SeatingIndoor
	case outdoor != "" || indoor != "":
		return SeatingNone
	default:
		return SeatingUnknown
	}
}

const googleMapsSearchURL = "https://www.google.com/maps/search/?api=1&query="

// MapsURL строит ссылку на поиск места в Google Maps
func MapsURL(p Place) string {
	var query string
	switch v := p.(type) {
	case *OSMPlace:
		query = joinNonEmpty(", ", v.Tags["name"], v.Address())
	case *GooglePlace:
		query = joinNonEmpty(", ", v.Name, v.Vicinity)
	}
	if query == "" {
		query = p.Summary().Coordinates.String()
	}
	return googleMapsSearchURL + url.QueryEscape(query)
}

func joinNonEmpty(sep string, parts ...string) string {
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return strings.Join(out, sep)
}
