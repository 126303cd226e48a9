package scrape

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KI-IAN/llm-web-scrapper/internal/model"
	"github.com/KI-IAN/llm-web-scrapper/pkg/firecrawl"
)

func newFirecrawlFetcher(t *testing.T, handler http.HandlerFunc) *FirecrawlFetcher {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewFirecrawlFetcher(firecrawl.NewClient("test-key", firecrawl.WithBaseURL(srv.URL)))
}

func TestFirecrawlFetch(t *testing.T) {
	f := newFirecrawlFetcher(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(firecrawl.ScrapeResponse{
			Success: true,
			Data: firecrawl.PageData{
				URL:      "https://example.com/product",
				Markdown: "# Widget\n\nPrice: $9.99",
				Metadata: firecrawl.Metadata{Title: "Widget — Example Shop", StatusCode: 200},
			},
		})
	})

	res, err := f.Fetch(context.Background(), "https://example.com/product")
	require.NoError(t, err)
	assert.Contains(t, res.Content, "$9.99")
	assert.Equal(t, "Widget — Example Shop", res.Title)
}

func TestFirecrawlFetchErrorClassification(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		wantKind model.Kind
	}{
		{"unauthorized is a config problem", http.StatusUnauthorized, model.EUNAVAILABLE},
		{"forbidden is a config problem", http.StatusForbidden, model.EUNAVAILABLE},
		{"server error is upstream", http.StatusInternalServerError, model.EUPSTREAM},
		{"rate limit is upstream", http.StatusTooManyRequests, model.EUPSTREAM},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFirecrawlFetcher(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(`{"error":"nope"}`))
			})

			_, err := f.Fetch(context.Background(), "https://example.com")
			require.Error(t, err)
			assert.Equal(t, tt.wantKind, model.ErrorKind(err))
		})
	}
}

func TestFirecrawlFetchTransportErrorIsNetwork(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	f := NewFirecrawlFetcher(firecrawl.NewClient("test-key", firecrawl.WithBaseURL(url)))
	_, err := f.Fetch(context.Background(), "https://example.com")
	require.Error(t, err)
	assert.Equal(t, model.ENETWORK, model.ErrorKind(err))
}

func TestFirecrawlFetchUnsuccessfulResponse(t *testing.T) {
	f := newFirecrawlFetcher(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(firecrawl.ScrapeResponse{Success: false})
	})

	_, err := f.Fetch(context.Background(), "https://example.com")
	require.Error(t, err)
	assert.Equal(t, model.EUPSTREAM, model.ErrorKind(err))
}

func TestFirecrawlFetchDoesNotLeakKeyInError(t *testing.T) {
	f := newFirecrawlFetcher(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"error":"Unauthorized"}`))
	})

	_, err := f.Fetch(context.Background(), "https://example.com")
	require.Error(t, err)
	assert.NotContains(t, model.ErrorMessage(err), "test-key")
}
