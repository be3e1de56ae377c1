// Package runner visits planned pages, extracts them and hands the rows to
// a sink.
package runner

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/padraicbc/travscrape/browser"
	"github.com/padraicbc/travscrape/db"
	"github.com/padraicbc/travscrape/extract"
	"github.com/padraicbc/travscrape/models"
	"github.com/padraicbc/travscrape/parse"
	"github.com/padraicbc/travscrape/reconcile"
)

// Fetcher renders one page.
type Fetcher interface {
	Fetch(ctx context.Context, url string, kind Kind) (extract.Page, error)
}

// Sink receives extracted rows. *db.Store is the production sink.
type Sink interface {
	SaveResults(ctx context.Context, rows []models.RaceResult, src reconcile.Source) db.Stats
	SaveStartList(ctx context.Context, rows []models.StartListEntry) db.Stats
	SavePropositions(ctx context.Context, rows []models.Proposition) db.Stats
}

type Options struct {
	Workers  int
	Location *time.Location
}

// Report sums up a run.
type Report struct {
	Pages        int
	Empty        int
	Failed       int
	Results      db.Stats
	StartList    db.Stats
	Seeded       db.Stats
	Propositions db.Stats
}

type Runner struct {
	fetch Fetcher
	sink  Sink
	log   *zap.Logger
	opts  Options
	now   func() time.Time

	mu     sync.Mutex
	report Report
}

func New(fetch Fetcher, sink Sink, log *zap.Logger, opts Options) *Runner {
	if opts.Workers < 1 {
		opts.Workers = 1
	}
	if opts.Location == nil {
		opts.Location = time.Local
	}
	return &Runner{fetch: fetch, sink: sink, log: log, opts: opts, now: time.Now}
}

// Run visits every target. A page that fails is logged and skipped; only
// cancellation of ctx ends the run early.
func (r *Runner) Run(parent context.Context, targets []Target) (Report, error) {
	g, ctx := errgroup.WithContext(parent)
	g.SetLimit(r.opts.Workers)

	for _, t := range targets {
		if ctx.Err() != nil {
			break
		}
		t := t
		g.Go(func() error {
			r.visit(ctx, t)
			return ctx.Err()
		})
	}
	err := g.Wait()
	if err == nil {
		err = parent.Err()
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	return r.report, err
}

func (r *Runner) visit(ctx context.Context, t Target) {
	log := r.log.With(zap.String("kind", string(t.Kind)), zap.Int("id", t.ID))
	log.Info("scraping", zap.String("url", t.URL))

	page, err := r.fetch.Fetch(ctx, t.URL, t.Kind)
	if errors.Is(err, browser.ErrNotReady) {
		log.Info("page not ready", zap.Error(err))
		r.tally(func(rep *Report) { rep.Pages++; rep.Empty++ })
		return
	}
	if err != nil {
		log.Warn("fetch failed", zap.Error(err))
		r.tally(func(rep *Report) { rep.Pages++; rep.Failed++ })
		return
	}

	n, err := r.extractAndSave(ctx, t.Kind, page, log)
	if err != nil {
		log.Error("extraction failed", zap.Error(err))
		r.tally(func(rep *Report) { rep.Pages++; rep.Failed++ })
		return
	}
	if n == 0 {
		log.Info("no rows")
		r.tally(func(rep *Report) { rep.Pages++; rep.Empty++ })
		return
	}
	log.Info("saved", zap.Int("rows", n))
	r.tally(func(rep *Report) { rep.Pages++ })
}

func (r *Runner) extractAndSave(ctx context.Context, kind Kind, page extract.Page, log *zap.Logger) (int, error) {
	switch kind {
	case KindResults:
		rows, err := extract.Results(page)
		if err != nil || len(rows) == 0 {
			return 0, err
		}
		st := r.sink.SaveResults(ctx, rows, reconcile.FromResults)
		r.tally(func(rep *Report) { rep.Results.Add(st) })
		return len(rows), nil

	case KindStartList:
		rows, err := extract.StartList(page)
		if err != nil || len(rows) == 0 {
			return 0, err
		}
		st := r.sink.SaveStartList(ctx, rows)
		r.tally(func(rep *Report) { rep.StartList.Add(st) })

		if seeds := r.seeds(rows); len(seeds) > 0 {
			st := r.sink.SaveResults(ctx, seeds, reconcile.FromStartList)
			r.tally(func(rep *Report) { rep.Seeded.Add(st) })
			log.Debug("seeded results", zap.Int("rows", len(seeds)))
		}
		return len(rows), nil

	case KindPropositions:
		rows, err := extract.Propositions(page)
		if err != nil || len(rows) == 0 {
			return 0, err
		}
		st := r.sink.SavePropositions(ctx, rows)
		r.tally(func(rep *Report) { rep.Propositions.Add(st) })
		return len(rows), nil
	}
	return 0, nil
}

// seeds turns start-list entries for today or later into placeholder
// results. Past race days already have real results.
func (r *Runner) seeds(rows []models.StartListEntry) []models.RaceResult {
	today := parse.DateInt(r.now().In(r.opts.Location))
	var out []models.RaceResult
	for _, e := range rows {
		if e.Date < today {
			continue
		}
		out = append(out, reconcile.SeedResult(e))
	}
	return out
}

func (r *Runner) tally(f func(*Report)) {
	r.mu.Lock()
	f(&r.report)
	r.mu.Unlock()
}
