package googleplaces

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"googlemaps.github.io/maps"

	"github.com/places-microservice/internal/config"
	"github.com/places-microservice/internal/domain"
	"github.com/places-microservice/internal/domain/repository"
	"github.com/places-microservice/internal/pkg/errors"
)

// DefaultPhotoMaxWidth - ширина фото по умолчанию, как в карточке места
const DefaultPhotoMaxWidth = 400

// Client - провайдер мест поверх Google Places Nearby Search
type Client struct {
	maps   *maps.Client
	logger *zap.Logger
}

var (
	_ repository.PlacesProvider = (*Client)(nil)
	_ repository.PhotoFetcher   = (*Client)(nil)
)

// NewClient создает клиент Google Places
func NewClient(cfg *config.GooglePlacesConfig, logger *zap.Logger) (*Client, error) {
	httpClient := &http.Client{
		Timeout:   cfg.RequestTimeout,
		Transport: &statusCheckingTransport{next: http.DefaultTransport},
	}

	opts := []maps.ClientOption{
		maps.WithAPIKey(cfg.APIKey),
		maps.WithHTTPClient(httpClient),
	}
	if cfg.BaseURL != "" {
		opts = append(opts, maps.WithBaseURL(cfg.BaseURL))
	}
	if cfg.RateLimit > 0 {
		opts = append(opts, maps.WithRateLimit(cfg.RateLimit))
	}

	mc, err := maps.NewClient(opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create google maps client: %w", err)
	}

	return &Client{maps: mc, logger: logger}, nil
}

func (c *Client) ID() domain.ProviderID {
	return domain.ProviderGoogle
}

// FetchPlaces отправляет по одному запросу на категорию параллельно.
// Результаты склеиваются в порядке категорий без дедупликации;
// ошибка любого запроса отменяет остальные и возвращается целиком.
func (c *Client) FetchPlaces(ctx context.Context, center domain.Point, radiusMeters int, categories domain.CategorySet) ([]domain.Place, error) {
	var requested []domain.Category
	for _, cat := range categories {
		if cat != domain.CategoryOther {
			requested = append(requested, cat)
		}
	}

	results := make([][]domain.Place, len(requested))
	g, gctx := errgroup.WithContext(ctx)

	for i, cat := range requested {
		g.Go(func() error {
			places, err := c.nearby(gctx, center, radiusMeters, cat)
			if err != nil {
				return err
			}
			results[i] = places
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	all := make([]domain.Place, 0)
	for _, r := range results {
		all = append(all, r...)
	}

	c.logger.Debug("Google Places fetch successful",
		zap.String("categories", categories.String()),
		zap.Int("results", len(all)))
	return all, nil
}

// NearbyRequest строит запрос Nearby Search для категории
func NearbyRequest(center domain.Point, radiusMeters int, cat domain.Category) *maps.NearbySearchRequest {
	req := &maps.NearbySearchRequest{
		Location: &maps.LatLng{Lat: center.Lat, Lng: center.Lon},
		Radius:   uint(radiusMeters),
	}
	switch cat {
	case domain.CategoryCafe:
		req.Type = maps.PlaceTypeCafe
	case domain.CategoryLibrary:
		req.Type = maps.PlaceTypeLibrary
	case domain.CategoryCoworkingSpace:
		// отдельного типа у Google нет
		req.Keyword = "coworking space"
	}
	return req
}

func (c *Client) nearby(ctx context.Context, center domain.Point, radiusMeters int, cat domain.Category) ([]domain.Place, error) {
	c.logger.Debug("Calling Google Places Nearby Search",
		zap.String("category", string(cat)),
		zap.Int("radius_m", radiusMeters))

	resp, err := c.maps.NearbySearch(ctx, NearbyRequest(center, radiusMeters, cat))
	if err != nil {
		c.logger.Error("Google Places request failed",
			zap.String("category", string(cat)),
			zap.Error(err))
		return nil, classify(fmt.Errorf("nearby search %s: %w", cat, err))
	}

	places := make([]domain.Place, 0, len(resp.Results))
	for _, r := range resp.Results {
		places = append(places, toPlace(r, cat))
	}
	return places, nil
}

// FetchPhoto загружает фото места по photo_reference
func (c *Client) FetchPhoto(ctx context.Context, reference string, maxWidth uint) ([]byte, string, error) {
	if maxWidth == 0 {
		maxWidth = DefaultPhotoMaxWidth
	}

	resp, err := c.maps.PlacePhoto(ctx, &maps.PlacePhotoRequest{
		PhotoReference: reference,
		MaxWidth:       maxWidth,
	})
	if err != nil {
		return nil, "", classify(fmt.Errorf("place photo: %w", err))
	}
	defer resp.Data.Close()

	data, err := io.ReadAll(resp.Data)
	if err != nil {
		return nil, "", &errors.NetworkError{Provider: string(domain.ProviderGoogle), Err: err}
	}
	return data, resp.ContentType, nil
}

func toPlace(r maps.PlacesSearchResult, cat domain.Category) *domain.GooglePlace {
	p := &domain.GooglePlace{
		PlaceID:         r.PlaceID,
		Name:            r.Name,
		Lat:             r.Geometry.Location.Lat,
		Lon:             r.Geometry.Location.Lng,
		Types:           r.Types,
		Vicinity:        r.Vicinity,
		BusinessStatus:  r.BusinessStatus,
		MatchedCategory: cat,
	}
	if r.Rating > 0 {
		rating := float64(r.Rating)
		p.Rating = &rating
	}
	if r.UserRatingsTotal > 0 {
		total := r.UserRatingsTotal
		p.UserRatingsTotal = &total
	}
	if len(r.Photos) > 0 && r.Photos[0].PhotoReference != "" {
		ref := r.Photos[0].PhotoReference
		p.PhotoReference = &ref
	}
	if r.OpeningHours != nil && r.OpeningHours.OpenNow != nil {
		open := *r.OpeningHours.OpenNow
		p.OpenNow = &open
	}
	return p
}

// classify относит ошибку клиента maps к сетевой или ошибке провайдера
func classify(err error) error {
	provider := string(domain.ProviderGoogle)

	var se *statusError
	if stderrors.As(err, &se) {
		return &errors.NetworkError{Provider: provider, StatusCode: se.StatusCode, Err: err}
	}
	var ue *url.Error
	if stderrors.As(err, &ue) {
		return &errors.NetworkError{Provider: provider, Err: err}
	}
	if stderrors.Is(err, context.DeadlineExceeded) || stderrors.Is(err, context.Canceled) {
		return &errors.NetworkError{Provider: provider, Err: err}
	}
	// REQUEST_DENIED, INVALID_REQUEST, ошибки разбора JSON
	return &errors.ProviderError{Provider: provider, Err: err}
}
