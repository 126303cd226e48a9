package model

import (
	"net/url"
	"strings"
	"time"
)

// Backend identifies a scraping backend.
type Backend string

const (
	// BackendFirecrawl scrapes through the hosted Firecrawl API.
	BackendFirecrawl Backend = "firecrawl"
	// BackendBrowser renders the page in a local headless browser.
	BackendBrowser Backend = "browser"
)

// Backends lists every supported scraping backend.
func Backends() []Backend {
	return []Backend{BackendBrowser, BackendFirecrawl}
}

// ParseBackend converts a user-supplied string into a Backend.
func ParseBackend(s string) (Backend, error) {
	switch Backend(strings.ToLower(strings.TrimSpace(s))) {
	case BackendFirecrawl:
		return BackendFirecrawl, nil
	case BackendBrowser:
		return BackendBrowser, nil
	}
	return "", Errorf(EINVALID, "unsupported scraper backend %q", s)
}

// Provider identifies an LLM provider.
type Provider string

const (
	ProviderNvidia    Provider = "nvidia"
	ProviderGoogle    Provider = "google"
	ProviderAnthropic Provider = "anthropic"
)

// Providers lists every supported LLM provider.
func Providers() []Provider {
	return []Provider{ProviderGoogle, ProviderNvidia, ProviderAnthropic}
}

// ParseProvider converts a user-supplied string into a Provider.
func ParseProvider(s string) (Provider, error) {
	switch Provider(strings.ToLower(strings.TrimSpace(s))) {
	case ProviderNvidia:
		return ProviderNvidia, nil
	case ProviderGoogle:
		return ProviderGoogle, nil
	case ProviderAnthropic:
		return ProviderAnthropic, nil
	}
	return "", Errorf(EINVALID, "unsupported LLM provider %q", s)
}

// OutputFormat is the structural shape requested for the final answer.
type OutputFormat string

const (
	FormatTable OutputFormat = "table"
	FormatJSON  OutputFormat = "json"
	FormatText  OutputFormat = "text"
)

// Formats lists every supported output format.
func Formats() []OutputFormat {
	return []OutputFormat{FormatTable, FormatJSON, FormatText}
}

// ParseFormat converts a user-supplied string into an OutputFormat.
func ParseFormat(s string) (OutputFormat, error) {
	switch OutputFormat(strings.ToLower(strings.TrimSpace(s))) {
	case FormatTable:
		return FormatTable, nil
	case FormatJSON:
		return FormatJSON, nil
	case FormatText, "":
		return FormatText, nil
	}
	return "", Errorf(EINVALID, "unsupported output format %q", s)
}

// ScrapeRequest asks for the content of a single page.
type ScrapeRequest struct {
	URL     string
	Backend Backend
}

// Validate checks the request before any network call is made.
func (r ScrapeRequest) Validate() error {
	if strings.TrimSpace(r.URL) == "" {
		return Errorf(EINVALID, "url is required")
	}
	u, err := url.Parse(r.URL)
	if err != nil || !u.IsAbs() || u.Host == "" {
		return Errorf(EINVALID, "invalid url %q: must be an absolute http(s) URL", r.URL)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return Errorf(EINVALID, "invalid url scheme %q: only http and https are supported", u.Scheme)
	}
	switch r.Backend {
	case BackendFirecrawl, BackendBrowser:
		return nil
	}
	return Errorf(EINVALID, "unsupported scraper backend %q", string(r.Backend))
}

// ScrapeResult is the normalized page content returned by a backend.
type ScrapeResult struct {
	Content string
	Title   string
	Backend Backend
	Elapsed time.Duration
}

// ExtractionRequest asks an LLM to answer a query using scraped content.
type ExtractionRequest struct {
	Content  string
	Query    string
	Provider Provider
	Model    string
	Format   OutputFormat
}

// Validate checks the request before any provider call is made.
func (r ExtractionRequest) Validate() error {
	if strings.TrimSpace(r.Content) == "" {
		return Errorf(EINVALID, "content is required: scrape a page first")
	}
	if strings.TrimSpace(r.Query) == "" {
		return Errorf(EINVALID, "query is required")
	}
	if strings.TrimSpace(r.Model) == "" {
		return Errorf(EINVALID, "model is required")
	}
	switch r.Provider {
	case ProviderNvidia, ProviderGoogle, ProviderAnthropic:
	default:
		return Errorf(EINVALID, "unsupported LLM provider %q", string(r.Provider))
	}
	switch r.Format {
	case FormatTable, FormatJSON, FormatText:
	default:
		return Errorf(EINVALID, "unsupported output format %q", string(r.Format))
	}
	return nil
}

// TokenUsage tracks token consumption for a single completion.
type TokenUsage struct {
	InputTokens  int64
	OutputTokens int64
}

// ExtractionResult is the LLM's answer, post-processed to the requested format.
type ExtractionResult struct {
	Answer   string
	Provider Provider
	Model    string
	Usage    TokenUsage
	Elapsed  time.Duration
}

// ModelChoice is a supported model/provider combination offered to the UI.
type ModelChoice struct {
	Model    string   `json:"model"`
	Provider Provider `json:"provider"`
}

// DefaultModelChoices is the set of combinations offered by the UI dropdown.
// The first entry is the default selection.
func DefaultModelChoices() []ModelChoice {
	return []ModelChoice{
		{Model: "gemini-2.5-flash-lite", Provider: ProviderGoogle},
		{Model: "gemini-2.5-flash", Provider: ProviderGoogle},
		{Model: "gemini-2.5-pro", Provider: ProviderGoogle},
		{Model: "bytedance/seed-oss-36b-instruct", Provider: ProviderNvidia},
		{Model: "deepseek-ai/deepseek-v3.1", Provider: ProviderNvidia},
		{Model: "qwen/qwen3-next-80b-a3b-instruct", Provider: ProviderNvidia},
		{Model: "claude-haiku-4-5-20251001", Provider: ProviderAnthropic},
		{Model: "claude-sonnet-4-5-20250929", Provider: ProviderAnthropic},
	}
}
