package telemetry

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KI-IAN/llm-web-scrapper/pkg/langfuse"
)

// captureClient records ingested events in memory.
type captureClient struct {
	mu     sync.Mutex
	events []langfuse.Event
	err    error
}

func (c *captureClient) Ingest(_ context.Context, events []langfuse.Event) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.events = append(c.events, events...)
	return c.err
}

func (c *captureClient) all() []langfuse.Event {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]langfuse.Event(nil), c.events...)
}

func TestTraceEndShipsTraceEvent(t *testing.T) {
	client := &captureClient{}
	tracer := New(client)

	tr := tracer.Start("web-scraping", map[string]any{"url": "https://example.com", "scraper": "firecrawl"})
	assert.NotEmpty(t, tr.ID())
	tr.End(map[string]any{"markdown_char_count": 120}, nil)
	tracer.Close()

	events := client.all()
	require.Len(t, events, 1)
	assert.Equal(t, langfuse.EventTraceCreate, events[0].Type)

	body, ok := events[0].Body.(langfuse.TraceBody)
	require.True(t, ok)
	assert.Equal(t, tr.ID(), body.ID)
	assert.Equal(t, "web-scraping", body.Name)

	out, ok := body.Output.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "Success", out["status"])
	assert.Equal(t, 120, out["markdown_char_count"])
}

func TestTraceEndRecordsFailure(t *testing.T) {
	client := &captureClient{}
	tracer := New(client)

	tr := tracer.Start("web-scraping", nil)
	tr.End(nil, errors.New("upstream returned 500"))
	tracer.Close()

	events := client.all()
	require.Len(t, events, 1)
	body := events[0].Body.(langfuse.TraceBody)
	out := body.Output.(map[string]any)
	assert.Equal(t, "Error", out["status"])
	assert.Equal(t, "upstream returned 500", out["error"])
}

func TestTraceEndGeneration(t *testing.T) {
	client := &captureClient{}
	tracer := New(client)

	tr := tracer.Start("llm-extraction", map[string]any{"query": "price"})
	tr.EndGeneration("gemini-2.5-flash",
		map[string]any{"answer_chars": 64},
		map[string]any{"input": 100, "output": 20},
		nil,
	)
	tracer.Close()

	events := client.all()
	require.Len(t, events, 2)
	assert.Equal(t, langfuse.EventTraceCreate, events[0].Type)
	assert.Equal(t, langfuse.EventGenerationCreate, events[1].Type)

	gen, ok := events[1].Body.(langfuse.GenerationBody)
	require.True(t, ok)
	assert.Equal(t, tr.ID(), gen.TraceID)
	assert.Equal(t, "gemini-2.5-flash", gen.Model)
	assert.False(t, gen.EndTime.IsZero())
}

func TestDisabledTracerIsNoop(t *testing.T) {
	tracer := Disabled()
	assert.False(t, tracer.Enabled())

	// None of this may panic or block.
	tr := tracer.Start("web-scraping", nil)
	tr.End(nil, nil)
	tr.EndGeneration("m", nil, nil, errors.New("x"))
	tracer.Close()

	var nilTracer *Tracer
	assert.False(t, nilTracer.Enabled())
}

func TestDeliveryFailureIsSwallowed(t *testing.T) {
	client := &captureClient{err: errors.New("401 unauthorized")}
	tracer := New(client)

	tr := tracer.Start("web-scraping", nil)
	tr.End(nil, nil) // must not propagate the ingest error
	tracer.Close()

	require.Len(t, client.all(), 1)
}

func TestCloseWaitsForInflightSends(t *testing.T) {
	client := &captureClient{}
	tracer := New(client)

	for i := 0; i < 10; i++ {
		tracer.Start("web-scraping", nil).End(nil, nil)
	}

	done := make(chan struct{})
	go func() {
		tracer.Close()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("Close did not return")
	}
	assert.Len(t, client.all(), 10)
}
