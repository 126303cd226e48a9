// Package langfuse is a minimal client for the Langfuse batch ingestion API.
// It sends trace, span and generation events; observability only, callers are
// expected to treat every failure as non-fatal.
package langfuse

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rotisserie/eris"
)

const defaultBaseURL = "https://cloud.langfuse.com"

// Event types accepted by the ingestion endpoint.
const (
	EventTraceCreate      = "trace-create"
	EventSpanCreate       = "span-create"
	EventGenerationCreate = "generation-create"
)

// Client sends observability events to Langfuse.
type Client interface {
	Ingest(ctx context.Context, events []Event) error
}

// Event is a single envelope in an ingestion batch.
type Event struct {
	ID        string    `json:"id"`
	Type      string    `json:"type"`
	Timestamp time.Time `json:"timestamp"`
	Body      any       `json:"body"`
}

// TraceBody is the payload of a trace-create event.
type TraceBody struct {
	ID        string         `json:"id"`
	Name      string         `json:"name"`
	Timestamp time.Time      `json:"timestamp"`
	Input     any            `json:"input,omitempty"`
	Output    any            `json:"output,omitempty"`
	Metadata  map[string]any `json:"metadata,omitempty"`
}

// SpanBody is the payload of a span-create event.
type SpanBody struct {
	ID            string    `json:"id"`
	TraceID       string    `json:"traceId"`
	Name          string    `json:"name"`
	StartTime     time.Time `json:"startTime"`
	EndTime       time.Time `json:"endTime"`
	Input         any       `json:"input,omitempty"`
	Output        any       `json:"output,omitempty"`
	Level         string    `json:"level,omitempty"`
	StatusMessage string    `json:"statusMessage,omitempty"`
}

// GenerationBody is the payload of a generation-create event.
type GenerationBody struct {
	ID            string         `json:"id"`
	TraceID       string         `json:"traceId"`
	Name          string         `json:"name"`
	StartTime     time.Time      `json:"startTime"`
	EndTime       time.Time      `json:"endTime"`
	Model         string         `json:"model,omitempty"`
	Input         any            `json:"input,omitempty"`
	Output        any            `json:"output,omitempty"`
	Usage         map[string]any `json:"usage,omitempty"`
	Level         string         `json:"level,omitempty"`
	StatusMessage string         `json:"statusMessage,omitempty"`
}

type ingestRequest struct {
	Batch []Event `json:"batch"`
}

// APIError is returned when Langfuse responds with a non-success status.
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("langfuse: HTTP %d: %s", e.StatusCode, e.Body)
}

// Option configures the httpClient.
type Option func(*httpClient)

// WithBaseURL overrides the default host.
func WithBaseURL(url string) Option {
	return func(c *httpClient) {
		c.baseURL = url
	}
}

// WithHTTPClient sets a custom *http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *httpClient) {
		c.http = hc
	}
}

type httpClient struct {
	publicKey string
	secretKey string
	baseURL   string
	http      *http.Client
}

// NewClient creates a Langfuse ingestion client. The public key is the basic
// auth username, the secret key the password.
func NewClient(publicKey, secretKey string, opts ...Option) Client {
	c := &httpClient{
		publicKey: publicKey,
		secretKey: secretKey,
		baseURL:   defaultBaseURL,
		http: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

func (c *httpClient) Ingest(ctx context.Context, events []Event) error {
	if len(events) == 0 {
		return nil
	}

	body, err := json.Marshal(ingestRequest{Batch: events})
	if err != nil {
		return eris.Wrap(err, "langfuse: marshal batch")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/public/ingestion", bytes.NewReader(body))
	if err != nil {
		return eris.Wrap(err, "langfuse: create request")
	}
	req.Header.Set("Content-Type", "application/json")
	req.SetBasicAuth(c.publicKey, c.secretKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return eris.Wrap(err, "langfuse: send request")
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return eris.Wrap(err, "langfuse: read response")
	}

	// The ingestion endpoint answers 207 on partial success; anything in the
	// 2xx range counts as delivered.
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &APIError{StatusCode: resp.StatusCode, Body: string(data)}
	}

	return nil
}
