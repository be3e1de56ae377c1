package runner

import (
	"context"
	"time"

	"github.com/padraicbc/travscrape/browser"
	"github.com/padraicbc/travscrape/extract"
)

const (
	gridRowSelector = "div[role='row'][data-rowindex]"
	raceHeadingPath = "//h2[starts-with(normalize-space(),'Lopp')]"
)

// BrowserFetcher renders pages in a shared browser session. Start lists
// get their own, longer budget and must also show a race heading.
type BrowserFetcher struct {
	Session       *browser.Session
	Wait          time.Duration
	StartListWait time.Duration
}

func (f BrowserFetcher) Fetch(ctx context.Context, url string, kind Kind) (extract.Page, error) {
	waits := []browser.Wait{{Selector: gridRowSelector}}
	budget := f.Wait
	if kind == KindStartList {
		waits = append(waits, browser.Wait{Selector: raceHeadingPath, XPath: true})
		budget = f.StartListWait
	}

	html, err := f.Session.Fetch(ctx, url, waits, budget)
	if err != nil {
		return nil, err
	}
	return browser.Parse(html)
}
