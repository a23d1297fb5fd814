package wikidata

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"go.uber.org/zap"

	"github.com/places-microservice/internal/config"
	"github.com/places-microservice/internal/domain/repository"
	"github.com/places-microservice/internal/pkg/errors"
)

const providerName = "wikidata"

// imageProperties - логотип (P154), иконка (P8972), изображение (P18)
var imageProperties = []string{"P154", "P8972", "P18"}

type client struct {
	httpClient     *http.Client
	baseURL        string
	commonsBaseURL string
	userAgent      string
	logger         *zap.Logger
}

// NewWikidataClient создает резолвер изображений брендов
func NewWikidataClient(cfg *config.WikidataConfig, userAgent string, logger *zap.Logger) repository.BrandImageResolver {
	return &client{
		httpClient: &http.Client{
			Timeout: cfg.RequestTimeout,
		},
		baseURL:        cfg.BaseURL,
		commonsBaseURL: cfg.CommonsBaseURL,
		userAgent:      userAgent,
		logger:         logger,
	}
}

type entityResponse struct {
	Entities map[string]struct {
		Claims map[string][]struct {
			Mainsnak struct {
				Datavalue *struct {
					Value json.RawMessage `json:"value"`
				} `json:"datavalue"`
			} `json:"mainsnak"`
		} `json:"claims"`
	} `json:"entities"`
}

func (c *client) ResolveBrandImage(ctx context.Context, wikidataID string) (string, error) {
	reqURL := fmt.Sprintf("%s/wiki/Special:EntityData/%s.json", c.baseURL, url.PathEscape(wikidataID))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("Wikidata request failed", zap.String("wikidata_id", wikidataID), zap.Error(err))
		return "", &errors.NetworkError{Provider: providerName, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return "", nil
	}
	if resp.StatusCode != http.StatusOK {
		return "", &errors.NetworkError{
			Provider:   providerName,
			StatusCode: resp.StatusCode,
			Err:        fmt.Errorf("unexpected status %s", resp.Status),
		}
	}

	var parsed entityResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", &errors.ProviderError{Provider: providerName, Err: fmt.Errorf("decode entity: %w", err)}
	}

	entity, ok := parsed.Entities[wikidataID]
	if !ok {
		// редирект сущности возвращается под новым id
		for _, e := range parsed.Entities {
			entity = e
			break
		}
	}

	for _, prop := range imageProperties {
		for _, claim := range entity.Claims[prop] {
			if claim.Mainsnak.Datavalue == nil {
				continue
			}
			var fileName string
			if err := json.Unmarshal(claim.Mainsnak.Datavalue.Value, &fileName); err != nil || fileName == "" {
				continue
			}
			imageURL := c.FilePathURL(fileName)
			c.logger.Debug("Brand image resolved",
				zap.String("wikidata_id", wikidataID),
				zap.String("property", prop),
				zap.String("url", imageURL))
			return imageURL, nil
		}
	}

	return "", nil
}

// FilePathURL строит ссылку Commons Special:FilePath для имени файла
func (c *client) FilePathURL(fileName string) string {
	escaped := url.QueryEscape(strings.ReplaceAll(fileName, " ", "_"))
	return c.commonsBaseURL + "/wiki/Special:FilePath/" + escaped
}
