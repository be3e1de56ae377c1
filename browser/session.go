// Package browser renders pages in headless Chrome and exposes the result
// to the extractors.
package browser

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/chromedp/chromedp"
	"go.uber.org/zap"
)

// ErrNotReady means a page loaded but an awaited element never appeared
// within its budget.
var ErrNotReady = errors.New("page not ready")

const userAgent = "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/122.0.0.0 Safari/537.36"

type Options struct {
	Headless    bool
	PageTimeout time.Duration
}

// Wait is an element a page must show before it is read. XPath selects
// chromedp's search query mode instead of a CSS query.
type Wait struct {
	Selector string
	XPath    bool
}

// Session owns one browser. Every Fetch opens and closes its own tab.
type Session struct {
	browserCtx context.Context
	cancel     func()
	opts       Options
	log        *zap.Logger
}

// NewSession starts Chrome. Close must be called to stop it.
func NewSession(ctx context.Context, opts Options, log *zap.Logger) (*Session, error) {
	allocOpts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", opts.Headless),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.UserAgent(userAgent),
	)
	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, allocOpts...)
	browserCtx, cancelBrowser := chromedp.NewContext(allocCtx, chromedp.WithLogf(func(format string, v ...interface{}) {
		log.Debug(fmt.Sprintf(format, v...))
	}))

	// An empty Run launches the browser.
	if err := chromedp.Run(browserCtx); err != nil {
		cancelBrowser()
		cancelAlloc()
		return nil, fmt.Errorf("starting chrome: %w", err)
	}

	return &Session{
		browserCtx: browserCtx,
		cancel: func() {
			cancelBrowser()
			cancelAlloc()
		},
		opts: opts,
		log:  log,
	}, nil
}

func (s *Session) Close() { s.cancel() }

// Fetch navigates a new tab to url, waits up to budget for every wait and
// returns the rendered HTML.
func (s *Session) Fetch(ctx context.Context, url string, waits []Wait, budget time.Duration) (string, error) {
	tabCtx, cancelTab := chromedp.NewContext(s.browserCtx)
	defer cancelTab()
	stop := context.AfterFunc(ctx, cancelTab)
	defer stop()

	if s.opts.PageTimeout > 0 {
		var cancel context.CancelFunc
		tabCtx, cancel = context.WithTimeout(tabCtx, s.opts.PageTimeout)
		defer cancel()
	}

	start := time.Now()
	if err := chromedp.Run(tabCtx, chromedp.Navigate(url)); err != nil {
		return "", fmt.Errorf("navigate %s: %w", url, err)
	}

	waitCtx, cancelWait := context.WithTimeout(tabCtx, budget)
	defer cancelWait()
	for _, w := range waits {
		by := chromedp.ByQuery
		if w.XPath {
			by = chromedp.BySearch
		}
		if err := chromedp.Run(waitCtx, chromedp.WaitReady(w.Selector, by)); err != nil {
			if ctx.Err() != nil {
				return "", ctx.Err()
			}
			return "", fmt.Errorf("%s: waiting for %q: %w", url, w.Selector, ErrNotReady)
		}
	}

	var html string
	if err := chromedp.Run(tabCtx, chromedp.OuterHTML("html", &html, chromedp.ByQuery)); err != nil {
		return "", fmt.Errorf("reading %s: %w", url, err)
	}
	s.log.Debug("fetched", zap.String("url", url), zap.Duration("took", time.Since(start)), zap.Int("bytes", len(html)))
	return html, nil
}
