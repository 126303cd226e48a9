package scrape

import (
	"context"
	"strings"
	"sync"

	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/base"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/commonmark"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/table"
	"github.com/PuerkitoBio/goquery"
	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"

	"github.com/KI-IAN/llm-web-scrapper/internal/config"
	"github.com/KI-IAN/llm-web-scrapper/internal/model"
)

// BrowserFetcher renders pages in a local headless Chrome instance and
// converts the rendered HTML to markdown. The browser is launched on first
// use and kept until Close.
//
// BrowserFetcher is safe for concurrent use.
type BrowserFetcher struct {
	headless bool
	conv     *converter.Converter

	mu       sync.Mutex
	browser  *rod.Browser
	launcher *launcher.Launcher
}

// NewBrowserFetcher creates a BrowserFetcher. No browser process is started
// until the first Fetch.
func NewBrowserFetcher(cfg config.BrowserConfig) *BrowserFetcher {
	return &BrowserFetcher{
		headless: cfg.Headless,
		conv: converter.NewConverter(
			converter.WithPlugins(
				base.NewBasePlugin(),
				commonmark.NewCommonmarkPlugin(),
				table.NewTablePlugin(),
			),
		),
	}
}

// Fetch navigates to the URL, waits for the page to load, and returns the
// rendered content as markdown.
func (f *BrowserFetcher) Fetch(ctx context.Context, url string) (*model.ScrapeResult, error) {
	browser, err := f.ensureBrowser()
	if err != nil {
		return nil, model.WrapError(model.EUNAVAILABLE, err,
			"headless browser is not available: Chrome/Chromium could not be launched")
	}

	page, err := browser.Page(proto.TargetCreateTarget{})
	if err != nil {
		return nil, model.WrapError(model.EUNAVAILABLE, err, "could not open a browser page")
	}
	defer page.Close()

	page = page.Context(ctx)

	if err := page.Navigate(url); err != nil {
		return nil, model.WrapError(model.ENETWORK, err, "could not navigate to %s", url)
	}
	if err := page.WaitLoad(); err != nil {
		return nil, model.WrapError(model.ENETWORK, err, "page did not finish loading")
	}

	html, err := page.HTML()
	if err != nil {
		return nil, model.WrapError(model.ENETWORK, err, "could not read the rendered page")
	}

	return f.render(html)
}

// render extracts the title and converts rendered HTML to markdown.
func (f *BrowserFetcher) render(html string) (*model.ScrapeResult, error) {
	var title string
	if doc, err := goquery.NewDocumentFromReader(strings.NewReader(html)); err == nil {
		title = strings.TrimSpace(doc.Find("title").First().Text())
	}

	markdown, err := f.conv.ConvertString(html)
	if err != nil {
		return nil, model.WrapError(model.EINTERNAL, err, "could not convert the page to markdown")
	}

	return &model.ScrapeResult{
		Content: strings.TrimSpace(markdown),
		Title:   title,
	}, nil
}

// ensureBrowser launches the browser on first use.
func (f *BrowserFetcher) ensureBrowser() (*rod.Browser, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.browser != nil {
		return f.browser, nil
	}

	l := launcher.New().
		Set("disable-dev-shm-usage").
		Leakless(true).
		Headless(f.headless)

	u, err := l.Launch()
	if err != nil {
		return nil, err
	}

	browser := rod.New().ControlURL(u)
	if err := browser.Connect(); err != nil {
		l.Kill()
		return nil, err
	}

	f.browser = browser
	f.launcher = l
	return f.browser, nil
}

// Close shuts down the browser if one was launched. Safe to call multiple times.
func (f *BrowserFetcher) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	var err error
	if f.browser != nil {
		err = f.browser.Close()
		f.browser = nil
	}
	if f.launcher != nil {
		f.launcher.Kill()
		f.launcher = nil
	}
	return err
}
