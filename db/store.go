package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect"
	"go.uber.org/zap"

	"github.com/padraicbc/travscrape/models"
	"github.com/padraicbc/travscrape/parse"
	"github.com/padraicbc/travscrape/reconcile"
)

const (
	maxAttempts = 5
	retryDelay  = 100 * time.Millisecond
)

// Stats counts what a batch save did.
type Stats struct {
	Inserted  int
	Updated   int
	Unchanged int
	Failed    int
}

// Total is the number of rows the batch handled.
func (s Stats) Total() int { return s.Inserted + s.Updated + s.Unchanged + s.Failed }

// Add folds o into s.
func (s *Stats) Add(o Stats) {
	s.Inserted += o.Inserted
	s.Updated += o.Updated
	s.Unchanged += o.Unchanged
	s.Failed += o.Failed
}

func (s *Stats) count(a reconcile.Action, err error) {
	switch {
	case err != nil:
		s.Failed++
	case a == reconcile.Insert:
		s.Inserted++
	case a == reconcile.Update:
		s.Updated++
	default:
		s.Unchanged++
	}
}

// Store writes scraped rows through the reconciler. Each row is read,
// merged and written in its own transaction; on PostgreSQL the transaction
// also holds an advisory lock on the row's natural key, so a start-list
// seed and a results pass for the same horse never interleave.
type Store struct {
	db  *bun.DB
	log *zap.Logger
}

func NewStore(db *bun.DB, log *zap.Logger) *Store {
	return &Store{db: db, log: log}
}

// SaveResults reconciles race results. A failing row is logged and counted;
// it never stops the batch.
func (s *Store) SaveResults(ctx context.Context, rows []models.RaceResult, src reconcile.Source) Stats {
	var st Stats
	for _, r := range rows {
		r.HorseName = parse.Fit(r.HorseName, 50)
		a, err := upsert(ctx, s, r.Key(),
			func(ctx context.Context, idb bun.IDB) (*models.RaceResult, error) {
				var rec models.RaceResult
				err := idb.NewSelect().Model(&rec).
					Where("date = ?", r.Date).
					Where("track_code = ?", r.TrackCode).
					Where("race = ?", r.Race).
					Where("horse_name = ?", r.HorseName).
					Limit(1).
					Scan(ctx)
				return found(&rec, err)
			},
			func(existing *models.RaceResult) (models.RaceResult, reconcile.Decision) {
				return reconcile.Result(r, existing, src)
			},
		)
		st.count(a, err)
	}
	return st
}

// SaveStartList reconciles start-list entries.
func (s *Store) SaveStartList(ctx context.Context, rows []models.StartListEntry) Stats {
	var st Stats
	for _, e := range rows {
		a, err := upsert(ctx, s, e.Key(),
			func(ctx context.Context, idb bun.IDB) (*models.StartListEntry, error) {
				var rec models.StartListEntry
				err := idb.NewSelect().Model(&rec).
					Where("date = ?", e.Date).
					Where("track_code = ?", e.TrackCode).
					Where("race = ?", e.Race).
					Where("start_number = ?", e.StartNumber).
					Limit(1).
					Scan(ctx)
				return found(&rec, err)
			},
			func(existing *models.StartListEntry) (models.StartListEntry, reconcile.Decision) {
				return reconcile.StartList(e, existing)
			},
		)
		st.count(a, err)
	}
	return st
}

// SavePropositions reconciles proposition nominations.
func (s *Store) SavePropositions(ctx context.Context, rows []models.Proposition) Stats {
	var st Stats
	for _, p := range rows {
		p.HorseName = parse.Fit(p.HorseName, 50)
		a, err := upsert(ctx, s, p.Key(),
			func(ctx context.Context, idb bun.IDB) (*models.Proposition, error) {
				var rec models.Proposition
				err := idb.NewSelect().Model(&rec).
					Where("date = ?", p.Date).
					Where("track_code = ?", p.TrackCode).
					Where("horse_name = ?", p.HorseName).
					Where("number = ?", p.Number).
					Limit(1).
					Scan(ctx)
				return found(&rec, err)
			},
			func(existing *models.Proposition) (models.Proposition, reconcile.Decision) {
				return reconcile.Proposition(p, existing)
			},
		)
		st.count(a, err)
	}
	return st
}

// Results returns one race day's results ordered by race and placement.
// Start-list seeds are left out where a results row holds the same start.
func (s *Store) Results(ctx context.Context, date int, track string) ([]models.RaceResult, error) {
	var rows []models.RaceResult
	err := s.db.NewSelect().Model(&rows).
		Where("date = ?", date).
		Where("track_code = ?", track).
		OrderExpr("race ASC, placement ASC NULLS LAST, start_number ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("results %d/%s: %w", date, track, err)
	}
	return dropSeedShadows(rows), nil
}

// isSeed reports whether r only restates a start list: no time, method,
// prize or odds, and a not-run or unplaced placement.
func isSeed(r models.RaceResult) bool {
	placed := r.Placement != nil && *r.Placement != parse.PlaceNotRun && *r.Placement != parse.PlaceUnplaced
	return !placed && r.FinishTime == nil && r.StartMethod == "" && r.Prize == 0 && r.Odds == parse.OddsUnknown
}

// dropSeedShadows removes seeds whose start also has a results row. Seeds
// carry the start-list spelling of the name, so both rows can coexist
// under the natural key.
func dropSeedShadows(rows []models.RaceResult) []models.RaceResult {
	type start struct{ race, number int }
	scraped := map[start]bool{}
	for _, r := range rows {
		if !isSeed(r) {
			scraped[start{r.Race, r.StartNumber}] = true
		}
	}
	out := rows[:0]
	for _, r := range rows {
		if isSeed(r) && scraped[start{r.Race, r.StartNumber}] {
			continue
		}
		out = append(out, r)
	}
	return out
}

func found[T any](rec *T, err error) (*T, error) {
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return rec, nil
}

// upsert retries a row whose insert lost a race against a concurrent writer
// of the same natural key; the retry then sees the other row and merges.
func upsert[T any](
	ctx context.Context,
	s *Store,
	key string,
	find func(context.Context, bun.IDB) (*T, error),
	merge func(*T) (T, reconcile.Decision),
) (reconcile.Action, error) {
	var (
		action  reconcile.Action
		lastErr error
	)
	for attempt := 0; attempt < maxAttempts; attempt++ {
		action, lastErr = upsertOnce(ctx, s, key, find, merge)
		if lastErr == nil || !isConflict(lastErr) {
			break
		}
		s.log.Warn("upsert conflict, retrying",
			zap.String("key", key), zap.Int("attempt", attempt+1), zap.Error(lastErr))
		time.Sleep(retryDelay)
	}
	if lastErr != nil {
		s.log.Error("upsert failed", zap.String("key", key), zap.Error(lastErr))
		return action, lastErr
	}
	s.log.Debug("upsert", zap.String("key", key), zap.Stringer("action", action))
	return action, nil
}

func upsertOnce[T any](
	ctx context.Context,
	s *Store,
	key string,
	find func(context.Context, bun.IDB) (*T, error),
	merge func(*T) (T, reconcile.Decision),
) (reconcile.Action, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return reconcile.NoOp, err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	if s.db.Dialect().Name() == dialect.PG {
		if _, err := tx.ExecContext(ctx, "SELECT pg_advisory_xact_lock(hashtext(?))", key); err != nil {
			return reconcile.NoOp, fmt.Errorf("lock %s: %w", key, err)
		}
	}

	existing, err := find(ctx, tx)
	if err != nil {
		return reconcile.NoOp, fmt.Errorf("load %s: %w", key, err)
	}

	rec, d := merge(existing)
	switch d.Action {
	case reconcile.Insert:
		if _, err := tx.NewInsert().Model(&rec).Exec(ctx); err != nil {
			return d.Action, fmt.Errorf("insert %s: %w", key, err)
		}
	case reconcile.Update:
		if _, err := tx.NewUpdate().Model(&rec).Column(d.Columns...).WherePK().Exec(ctx); err != nil {
			return d.Action, fmt.Errorf("update %s: %w", key, err)
		}
	default:
		return d.Action, nil
	}

	if err := tx.Commit(); err != nil {
		return d.Action, err
	}
	committed = true
	return d.Action, nil
}

func isConflict(err error) bool {
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate key value") || strings.Contains(msg, "unique constraint")
}
