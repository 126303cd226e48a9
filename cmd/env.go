package main

import (
	"context"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/KI-IAN/llm-web-scrapper/internal/extract"
	"github.com/KI-IAN/llm-web-scrapper/internal/model"
	"github.com/KI-IAN/llm-web-scrapper/internal/scrape"
	"github.com/KI-IAN/llm-web-scrapper/internal/telemetry"
	"github.com/KI-IAN/llm-web-scrapper/pkg/anthropic"
	"github.com/KI-IAN/llm-web-scrapper/pkg/firecrawl"
	"github.com/KI-IAN/llm-web-scrapper/pkg/gemini"
	"github.com/KI-IAN/llm-web-scrapper/pkg/langfuse"
	"github.com/KI-IAN/llm-web-scrapper/pkg/nvidia"
)

// pipelineEnv holds the wired pipeline components for a command run.
// Backends and providers without credentials are simply not registered;
// selecting one fails at request time, not at startup.
type pipelineEnv struct {
	Tracer    *telemetry.Tracer
	Scraper   *scrape.Dispatcher
	Extractor *extract.Service

	browser *scrape.BrowserFetcher
}

func initPipeline(ctx context.Context) (*pipelineEnv, error) {
	tracer := telemetry.Disabled()
	if cfg.Langfuse.Enabled() {
		client := langfuse.NewClient(
			cfg.Langfuse.PublicKey,
			cfg.Langfuse.SecretKey,
			langfuse.WithBaseURL(cfg.Langfuse.Host),
		)
		tracer = telemetry.New(client)
	}

	scraper := scrape.NewDispatcher(cfg.Scrape, tracer)
	if cfg.Firecrawl.Key != "" {
		client := firecrawl.NewClient(cfg.Firecrawl.Key, firecrawl.WithBaseURL(cfg.Firecrawl.BaseURL))
		scraper.Register(model.BackendFirecrawl, scrape.NewFirecrawlFetcher(client))
	}
	browser := scrape.NewBrowserFetcher(cfg.Browser)
	scraper.Register(model.BackendBrowser, browser)

	extractor := extract.NewService(cfg.Extract, tracer)
	if cfg.Nvidia.Key != "" {
		client := nvidia.NewClient(cfg.Nvidia.Key, nvidia.WithBaseURL(cfg.Nvidia.BaseURL))
		extractor.Register(model.ProviderNvidia, extract.NewNvidiaCompleter(client, cfg.Extract.MaxTokens))
	}
	if cfg.Google.Key != "" {
		client, err := gemini.NewClient(ctx, cfg.Google.Key)
		if err != nil {
			return nil, eris.Wrap(err, "create gemini client")
		}
		extractor.Register(model.ProviderGoogle, extract.NewGeminiCompleter(client))
	}
	if cfg.Anthropic.Key != "" {
		client := anthropic.NewClient(cfg.Anthropic.Key)
		extractor.Register(model.ProviderAnthropic, extract.NewAnthropicCompleter(client, cfg.Extract.MaxTokens))
	}

	zap.L().Info("pipeline ready",
		zap.Any("backends", scraper.Available()),
		zap.Int("models", len(extractor.Choices())),
		zap.Bool("tracing", tracer.Enabled()),
	)

	return &pipelineEnv{
		Tracer:    tracer,
		Scraper:   scraper,
		Extractor: extractor,
		browser:   browser,
	}, nil
}

// Close flushes pending telemetry and stops the headless browser if one
// was launched.
func (e *pipelineEnv) Close() {
	if err := e.browser.Close(); err != nil {
		zap.L().Warn("close browser", zap.Error(err))
	}
	e.Tracer.Close()
}
