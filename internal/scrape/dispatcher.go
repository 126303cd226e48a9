// Package scrape routes scrape requests to one of the configured backends and
// normalizes their results and failures.
package scrape

import (
	"context"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/KI-IAN/llm-web-scrapper/internal/config"
	"github.com/KI-IAN/llm-web-scrapper/internal/model"
	"github.com/KI-IAN/llm-web-scrapper/internal/telemetry"
)

// Fetcher fetches a single URL and returns its normalized content.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (*model.ScrapeResult, error)
}

// Dispatcher validates scrape requests and routes them to a registered
// backend. A backend whose credential is missing is simply never registered;
// selecting it yields a configuration error, not a network error.
type Dispatcher struct {
	fetchers map[model.Backend]Fetcher
	timeout  time.Duration
	limiter  *rate.Limiter
	tracer   *telemetry.Tracer
}

// NewDispatcher creates a Dispatcher with no backends registered.
func NewDispatcher(cfg config.ScrapeConfig, tracer *telemetry.Tracer) *Dispatcher {
	timeout := time.Duration(cfg.TimeoutSecs) * time.Second
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	perSec := cfg.RatePerSec
	if perSec <= 0 {
		perSec = 1
	}
	return &Dispatcher{
		fetchers: make(map[model.Backend]Fetcher),
		timeout:  timeout,
		limiter:  rate.NewLimiter(rate.Limit(perSec), 1),
		tracer:   tracer,
	}
}

// Register adds a backend. Later registrations for the same backend win.
func (d *Dispatcher) Register(backend model.Backend, f Fetcher) {
	d.fetchers[backend] = f
}

// Available reports which backends are registered.
func (d *Dispatcher) Available() []model.Backend {
	var out []model.Backend
	for _, b := range model.Backends() {
		if _, ok := d.fetchers[b]; ok {
			out = append(out, b)
		}
	}
	return out
}

// Scrape fetches the page for req. A single attempt, bounded by the
// configured timeout; no retry.
func (d *Dispatcher) Scrape(ctx context.Context, req model.ScrapeRequest) (*model.ScrapeResult, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	tr := d.tracer.Start("web-scraping", map[string]any{
		"url":     req.URL,
		"scraper": string(req.Backend),
	})

	result, err := d.scrape(ctx, req)
	if err != nil {
		tr.End(nil, err)
		zap.L().Warn("scrape failed",
			zap.String("url", req.URL),
			zap.String("backend", string(req.Backend)),
			zap.String("kind", string(model.ErrorKind(err))),
			zap.Error(err),
		)
		return nil, err
	}

	tr.End(map[string]any{"markdown_char_count": len(result.Content)}, nil)
	zap.L().Info("scrape complete",
		zap.String("url", req.URL),
		zap.String("backend", string(req.Backend)),
		zap.Int("chars", len(result.Content)),
		zap.Duration("elapsed", result.Elapsed),
	)
	return result, nil
}

func (d *Dispatcher) scrape(ctx context.Context, req model.ScrapeRequest) (*model.ScrapeResult, error) {
	fetcher, ok := d.fetchers[req.Backend]
	if !ok {
		return nil, model.Errorf(model.EUNAVAILABLE,
			"scraper backend %q is not configured: set its API key or install its runtime", string(req.Backend))
	}

	if err := d.limiter.Wait(ctx); err != nil {
		return nil, model.WrapError(model.ENETWORK, err, "scrape canceled while waiting for rate limit")
	}

	ctx, cancel := context.WithTimeout(ctx, d.timeout)
	defer cancel()

	start := time.Now()
	result, err := fetcher.Fetch(ctx, req.URL)
	if err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			return nil, model.WrapError(model.ENETWORK, err,
				"scrape timed out after %s", d.timeout)
		}
		return nil, err
	}

	if result.Content == "" {
		return nil, model.Errorf(model.EUPSTREAM,
			"%s completed but returned no content: the page might be empty or inaccessible", string(req.Backend))
	}

	result.Backend = req.Backend
	result.Elapsed = time.Since(start)
	return result, nil
}
