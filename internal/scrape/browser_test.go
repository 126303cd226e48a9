package scrape

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KI-IAN/llm-web-scrapper/internal/config"
)

func TestBrowserRender(t *testing.T) {
	f := NewBrowserFetcher(config.BrowserConfig{Headless: true})

	html := `<!DOCTYPE html>
<html>
<head><title>Widget — Example Shop</title></head>
<body>
<h1>Widget</h1>
<p>Price: <strong>$9.99</strong></p>
<table>
<tr><th>Field</th><th>Value</th></tr>
<tr><td>Rating</td><td>4.5</td></tr>
</table>
</body>
</html>`

	res, err := f.render(html)
	require.NoError(t, err)

	assert.Equal(t, "Widget — Example Shop", res.Title)
	assert.Contains(t, res.Content, "# Widget")
	assert.Contains(t, res.Content, "$9.99")
	assert.Contains(t, res.Content, "Rating")
}

func TestBrowserRenderNoTitle(t *testing.T) {
	f := NewBrowserFetcher(config.BrowserConfig{Headless: true})

	res, err := f.render("<html><body><p>bare page</p></body></html>")
	require.NoError(t, err)
	assert.Empty(t, res.Title)
	assert.Contains(t, res.Content, "bare page")
}

func TestBrowserCloseWithoutLaunch(t *testing.T) {
	f := NewBrowserFetcher(config.BrowserConfig{Headless: true})
	// Close before any Fetch must not launch or panic.
	require.NoError(t, f.Close())
	require.NoError(t, f.Close())
}
