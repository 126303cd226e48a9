package scrape

import (
	"context"
	"errors"
	"net/http"

	"github.com/KI-IAN/llm-web-scrapper/internal/model"
	"github.com/KI-IAN/llm-web-scrapper/pkg/firecrawl"
)

// FirecrawlFetcher adapts a Firecrawl client to the Fetcher interface.
type FirecrawlFetcher struct {
	client firecrawl.Client
}

// NewFirecrawlFetcher creates a FirecrawlFetcher from a Firecrawl client.
func NewFirecrawlFetcher(client firecrawl.Client) *FirecrawlFetcher {
	return &FirecrawlFetcher{client: client}
}

// Fetch scrapes a single URL via Firecrawl's scrape API.
func (f *FirecrawlFetcher) Fetch(ctx context.Context, targetURL string) (*model.ScrapeResult, error) {
	resp, err := f.client.Scrape(ctx, firecrawl.ScrapeRequest{
		URL:     targetURL,
		Formats: []string{"markdown"},
	})
	if err != nil {
		var apiErr *firecrawl.APIError
		if errors.As(err, &apiErr) {
			// Rejected credentials are a configuration problem, not an
			// upstream outage.
			if apiErr.StatusCode == http.StatusUnauthorized || apiErr.StatusCode == http.StatusForbidden {
				return nil, model.WrapError(model.EUNAVAILABLE, err,
					"firecrawl rejected the configured API key")
			}
			return nil, model.WrapError(model.EUPSTREAM, err,
				"firecrawl returned HTTP %d", apiErr.StatusCode)
		}
		return nil, model.WrapError(model.ENETWORK, err, "could not reach firecrawl")
	}

	if !resp.Success {
		return nil, model.Errorf(model.EUPSTREAM, "firecrawl reported an unsuccessful scrape")
	}

	return &model.ScrapeResult{
		Content: resp.Data.Markdown,
		Title:   resp.Data.Metadata.Title,
	}, nil
}
