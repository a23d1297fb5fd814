package overpass

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/places-microservice/internal/config"
	"github.com/places-microservice/internal/domain"
	"github.com/places-microservice/internal/domain/repository"
	"github.com/places-microservice/internal/pkg/errors"
)

const interpreterPath = "/api/interpreter"

type client struct {
	httpClient *http.Client
	baseURL    string
	userAgent  string
	logger     *zap.Logger
}

// NewOverpassClient создает провайдер мест поверх Overpass API
func NewOverpassClient(cfg *config.OverpassConfig, logger *zap.Logger) repository.PlacesProvider {
	return &client{
		httpClient: &http.Client{
			Timeout: cfg.RequestTimeout,
		},
		baseURL:   cfg.BaseURL,
		userAgent: cfg.UserAgent,
		logger:    logger,
	}
}

type element struct {
	Type string            `json:"type"`
	ID   int64             `json:"id"`
	Lat  float64           `json:"lat"`
	Lon  float64           `json:"lon"`
	Tags map[string]string `json:"tags"`
}

type response struct {
	Elements []element `json:"elements"`
}

func (c *client) ID() domain.ProviderID {
	return domain.ProviderOSM
}

// FetchPlaces выполняет один комбинированный запрос по всем категориям
func (c *client) FetchPlaces(ctx context.Context, center domain.Point, radiusMeters int, categories domain.CategorySet) ([]domain.Place, error) {
	query := BuildQuery(center, radiusMeters, categories)
	if query == "" {
		return []domain.Place{}, nil
	}

	reqURL := c.baseURL + interpreterPath + "?data=" + url.QueryEscape(query)

	c.logger.Debug("Calling Overpass API",
		zap.String("categories", categories.String()),
		zap.Int("radius_m", radiusMeters),
		zap.String("center", center.String()))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("Overpass request failed", zap.Error(err))
		return nil, &errors.NetworkError{Provider: string(domain.ProviderOSM), Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &errors.NetworkError{Provider: string(domain.ProviderOSM), StatusCode: resp.StatusCode, Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.logger.Error("Overpass API returned error",
			zap.Int("status_code", resp.StatusCode),
			zap.String("body", truncate(body, 512)))
		return nil, &errors.NetworkError{
			Provider:   string(domain.ProviderOSM),
			StatusCode: resp.StatusCode,
			Err:        fmt.Errorf("unexpected status %s", resp.Status),
		}
	}

	if len(bytes.TrimSpace(body)) == 0 {
		c.logger.Debug("Overpass API returned empty body")
		return []domain.Place{}, nil
	}

	var parsed response
	if err := json.Unmarshal(body, &parsed); err != nil {
		c.logger.Error("Failed to decode Overpass response", zap.Error(err))
		return nil, &errors.ProviderError{Provider: string(domain.ProviderOSM), Err: fmt.Errorf("decode response: %w", err)}
	}

	places := make([]domain.Place, 0, len(parsed.Elements))
	for _, e := range parsed.Elements {
		places = append(places, &domain.OSMPlace{
			ID:   e.ID,
			Lat:  e.Lat,
			Lon:  e.Lon,
			Tags: e.Tags,
		})
	}

	c.logger.Debug("Overpass API call successful", zap.Int("elements", len(places)))
	return places, nil
}

// BuildQuery строит Overpass QL запрос; "" если запрашивать нечего
func BuildQuery(center domain.Point, radiusMeters int, categories domain.CategorySet) string {
	around := fmt.Sprintf("(around:%d,%s,%s);",
		radiusMeters,
		strconv.FormatFloat(center.Lat, 'f', -1, 64),
		strconv.FormatFloat(center.Lon, 'f', -1, 64))

	var clauses []string
	for _, cat := range categories {
		if cat == domain.CategoryOther {
			continue
		}
		clauses = append(clauses, fmt.Sprintf(`node["amenity"="%s"]%s`, cat, around))
		if cat == domain.CategoryCoworkingSpace {
			clauses = append(clauses, `node["office"="coworking"]`+around)
		}
	}
	if len(clauses) == 0 {
		return ""
	}

	return "[out:json];\n(\n" + strings.Join(clauses, "\n") + "\n);\nout body;"
}

func truncate(b []byte, n int) string {
	if len(b) <= n {
		return string(b)
	}
	return string(b[:n])
}
