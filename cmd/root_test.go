package main

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KI-IAN/llm-web-scrapper/internal/config"
	"github.com/KI-IAN/llm-web-scrapper/internal/model"
)

func TestCommandsRegistered(t *testing.T) {
	names := map[string]bool{}
	for _, c := range rootCmd.Commands() {
		names[c.Name()] = true
	}
	for _, want := range []string{"serve", "scrape", "extract", "models"} {
		assert.True(t, names[want], "command %q not registered", want)
	}
}

func TestReadContentFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "page.md")
	require.NoError(t, os.WriteFile(path, []byte("# Page\n\ncontent"), 0o644))

	content, err := readContent(path, nil)
	require.NoError(t, err)
	assert.Equal(t, "# Page\n\ncontent", string(content))
}

func TestReadContentFromStdin(t *testing.T) {
	content, err := readContent("-", strings.NewReader("piped content"))
	require.NoError(t, err)
	assert.Equal(t, "piped content", string(content))
}

func TestReadContentMissingFile(t *testing.T) {
	_, err := readContent(filepath.Join(t.TempDir(), "nope.md"), nil)
	assert.Error(t, err)
}

func TestInitPipelineWithoutCredentials(t *testing.T) {
	prev := cfg
	t.Cleanup(func() { cfg = prev })
	cfg = &config.Config{
		Scrape:  config.ScrapeConfig{TimeoutSecs: 30, RatePerSec: 1},
		Extract: config.ExtractConfig{TimeoutSecs: 120, MaxTokens: 4096},
	}

	env, err := initPipeline(context.Background())
	require.NoError(t, err)
	defer env.Close()

	// The browser backend needs no credentials; Firecrawl does.
	assert.Equal(t, []model.Backend{model.BackendBrowser}, env.Scraper.Available())
	assert.Empty(t, env.Extractor.Choices())
	assert.False(t, env.Tracer.Enabled())
}

func TestInitPipelineWithKeys(t *testing.T) {
	prev := cfg
	t.Cleanup(func() { cfg = prev })
	cfg = &config.Config{
		Firecrawl: config.FirecrawlConfig{Key: "fc-test", BaseURL: "https://api.firecrawl.dev/v1"},
		Nvidia:    config.NvidiaConfig{Key: "nv-test", BaseURL: "https://integrate.api.nvidia.com/v1"},
		Anthropic: config.AnthropicConfig{Key: "sk-ant-test"},
		Scrape:    config.ScrapeConfig{TimeoutSecs: 30, RatePerSec: 1},
		Extract:   config.ExtractConfig{TimeoutSecs: 120, MaxTokens: 4096},
	}

	env, err := initPipeline(context.Background())
	require.NoError(t, err)
	defer env.Close()

	assert.ElementsMatch(t,
		[]model.Backend{model.BackendFirecrawl, model.BackendBrowser},
		env.Scraper.Available())

	providers := map[model.Provider]bool{}
	for _, c := range env.Extractor.Choices() {
		providers[c.Provider] = true
	}
	assert.True(t, providers[model.ProviderNvidia])
	assert.True(t, providers[model.ProviderAnthropic])
	assert.False(t, providers[model.ProviderGoogle])
}
