package wikidata

import (
	"context"
	stderrors "errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/places-microservice/internal/config"
	"github.com/places-microservice/internal/pkg/errors"
)

func newTestClient(url string) *client {
	return NewWikidataClient(&config.WikidataConfig{
		BaseURL:        url,
		CommonsBaseURL: "https://commons.wikimedia.org",
		RequestTimeout: 2 * time.Second,
	}, "places-test/1.0", zap.NewNop()).(*client)
}

func entityServer(t *testing.T, id, body string) *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/wiki/Special:EntityData/"+id+".json", r.URL.Path)
		assert.Equal(t, "places-test/1.0", r.Header.Get("User-Agent"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(body))
	}))
}

func TestClient_ResolveBrandImage(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		expected string
	}{
		{
			name: "logo preferred over image",
			body: `{"entities":{"Q37158":{"claims":{
				"P18":[{"mainsnak":{"datavalue":{"value":"Starbucks store.jpg"}}}],
				"P154":[{"mainsnak":{"datavalue":{"value":"Starbucks Corporation Logo 2011.svg"}}}]
			}}}}`,
			expected: "https://commons.wikimedia.org/wiki/Special:FilePath/Starbucks_Corporation_Logo_2011.svg",
		},
		{
			name: "icon when no logo",
			body: `{"entities":{"Q37158":{"claims":{
				"P8972":[{"mainsnak":{"datavalue":{"value":"Brand icon.png"}}}],
				"P18":[{"mainsnak":{"datavalue":{"value":"Store.jpg"}}}]
			}}}}`,
			expected: "https://commons.wikimedia.org/wiki/Special:FilePath/Brand_icon.png",
		},
		{
			name: "image fallback with escaping",
			body: `{"entities":{"Q37158":{"claims":{
				"P18":[{"mainsnak":{"datavalue":{"value":"Café & Co.jpg"}}}]
			}}}}`,
			expected: "https://commons.wikimedia.org/wiki/Special:FilePath/Caf%C3%A9_%26_Co.jpg",
		},
		{
			name: "novalue snak skipped",
			body: `{"entities":{"Q37158":{"claims":{
				"P154":[{"mainsnak":{"snaktype":"novalue"}}],
				"P18":[{"mainsnak":{"datavalue":{"value":"Store.jpg"}}}]
			}}}}`,
			expected: "https://commons.wikimedia.org/wiki/Special:FilePath/Store.jpg",
		},
		{
			name:     "no image claims",
			body:     `{"entities":{"Q37158":{"claims":{"P31":[{"mainsnak":{"datavalue":{"value":{"id":"Q4830453"}}}}]}}}}`,
			expected: "",
		},
		{
			name: "redirected entity",
			body: `{"entities":{"Q999":{"claims":{
				"P154":[{"mainsnak":{"datavalue":{"value":"Logo.svg"}}}]
			}}}}`,
			expected: "https://commons.wikimedia.org/wiki/Special:FilePath/Logo.svg",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := entityServer(t, "Q37158", tt.body)
			defer server.Close()

			got, err := newTestClient(server.URL).ResolveBrandImage(context.Background(), "Q37158")
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestClient_ResolveBrandImage_Errors(t *testing.T) {
	t.Run("not found is empty", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
		}))
		defer server.Close()

		got, err := newTestClient(server.URL).ResolveBrandImage(context.Background(), "Q1")
		require.NoError(t, err)
		assert.Empty(t, got)
	})

	t.Run("server error", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
		}))
		defer server.Close()

		_, err := newTestClient(server.URL).ResolveBrandImage(context.Background(), "Q1")
		var netErr *errors.NetworkError
		require.True(t, stderrors.As(err, &netErr))
		assert.Equal(t, http.StatusBadGateway, netErr.StatusCode)
	})

	t.Run("malformed body", func(t *testing.T) {
		server := entityServer(t, "Q1", `[]`)
		defer server.Close()

		_, err := newTestClient(server.URL).ResolveBrandImage(context.Background(), "Q1")
		var provErr *errors.ProviderError
		assert.True(t, stderrors.As(err, &provErr))
	})
}
