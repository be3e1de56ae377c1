package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"go.uber.org/zap"
	_ "modernc.org/sqlite"

	"github.com/padraicbc/travscrape/models"
	"github.com/padraicbc/travscrape/parse"
	"github.com/padraicbc/travscrape/reconcile"
)

func newTestStore(t *testing.T) (*Store, *bun.DB) {
	t.Helper()
	name := strings.ReplaceAll(t.Name(), "/", "_")
	sqldb, err := sql.Open("sqlite", fmt.Sprintf("file:%s?mode=memory&cache=shared", name))
	require.NoError(t, err)
	sqldb.SetMaxOpenConns(1)

	bdb := bun.NewDB(sqldb, sqlitedialect.New())
	t.Cleanup(func() { _ = bdb.Close() })
	require.NoError(t, CreateTables(context.Background(), bdb))
	return NewStore(bdb, zap.NewNop()), bdb
}

func intp(n int) *int           { return &n }
func floatp(f float64) *float64 { return &f }

func result(race, nr int, name string, placement *int) models.RaceResult {
	return models.RaceResult{
		Date:        20250903,
		TrackCode:   "S",
		Race:        race,
		HorseName:   name,
		StartNumber: nr,
		Distance:    intp(2140),
		Lane:        intp(nr),
		Surface:     "n",
		Placement:   placement,
		FinishTime:  floatp(73.4),
		StartMethod: "a",
		Driver:      "Björn Goop",
		Prize:       25000,
		Odds:        parse.OddsUnknown,
	}
}

func TestSaveResultsIsIdempotent(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()
	rows := []models.RaceResult{
		result(1, 1, "Zeus Zet", intp(2)),
		result(1, 2, "Ava Zet", intp(1)),
	}

	st := store.SaveResults(ctx, rows, reconcile.FromResults)
	require.Equal(t, Stats{Inserted: 2}, st)

	st = store.SaveResults(ctx, rows, reconcile.FromResults)
	require.Equal(t, Stats{Unchanged: 2}, st)

	rows[0].Odds = 45
	rows[0].FinishTime = floatp(72.9)
	st = store.SaveResults(ctx, rows, reconcile.FromResults)
	require.Equal(t, Stats{Updated: 1, Unchanged: 1}, st)

	got, err := store.Results(ctx, 20250903, "S")
	require.NoError(t, err)
	require.Len(t, got, 2)
	require.Equal(t, "Ava Zet", got[0].HorseName)
	require.Equal(t, "Zeus Zet", got[1].HorseName)
	require.Equal(t, 45, got[1].Odds)
	require.InDelta(t, 72.9, *got[1].FinishTime, 1e-9)

	// Odds never go back to unknown.
	rows[0].Odds = parse.OddsUnknown
	st = store.SaveResults(ctx, rows[:1], reconcile.FromResults)
	require.Equal(t, Stats{Unchanged: 1}, st)
}

func TestSeedThenResults(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	entry := models.StartListEntry{
		Date: 20250903, TrackCode: "S", Race: 1, StartNumber: 2,
		HorseName: "AVA ZET", Distance: intp(2140), Lane: intp(2), Driver: "Björn Goop",
	}
	st := store.SaveResults(ctx, []models.RaceResult{reconcile.SeedResult(entry)}, reconcile.FromStartList)
	require.Equal(t, 1, st.Inserted)

	real := result(1, 2, "AVA ZET", intp(1))
	real.Odds = 32
	st = store.SaveResults(ctx, []models.RaceResult{real}, reconcile.FromResults)
	require.Equal(t, 1, st.Updated)

	// A late start-list pass must not undo the result.
	st = store.SaveResults(ctx, []models.RaceResult{reconcile.SeedResult(entry)}, reconcile.FromStartList)
	require.Equal(t, Stats{Unchanged: 1}, st)

	got, err := store.Results(ctx, 20250903, "S")
	require.NoError(t, err)
	require.Len(t, got, 1)
	require.Equal(t, 1, *got[0].Placement)
	require.Equal(t, 25000, got[0].Prize)
	require.Equal(t, 32, got[0].Odds)
}

func TestResultsHidesSeedUnderOtherSpelling(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	seeds := []models.RaceResult{
		reconcile.SeedResult(models.StartListEntry{Date: 20250903, TrackCode: "S", Race: 1, StartNumber: 2, HorseName: "AVA ZET"}),
		reconcile.SeedResult(models.StartListEntry{Date: 20250903, TrackCode: "S", Race: 1, StartNumber: 5, HorseName: "BORGEN", Scratched: true}),
	}
	require.Equal(t, Stats{Inserted: 2}, store.SaveResults(ctx, seeds, reconcile.FromStartList))

	real := result(1, 2, "Ava Zet", intp(1))
	require.Equal(t, Stats{Inserted: 1}, store.SaveResults(ctx, []models.RaceResult{real}, reconcile.FromResults))

	got, err := store.Results(ctx, 20250903, "S")
	require.NoError(t, err)
	require.Len(t, got, 2)
	require.Equal(t, "Ava Zet", got[0].HorseName)
	require.Equal(t, "BORGEN", got[1].HorseName)
}

func TestSaveStartList(t *testing.T) {
	store, bdb := newTestStore(t)
	ctx := context.Background()

	e := models.StartListEntry{
		Date: 20260227, TrackCode: "E", Race: 2, StartNumber: 4,
		HorseName: "STOLETHESHOW", Lane: intp(4), Distance: intp(2140), Driver: "Örjan Kihlström",
	}
	require.Equal(t, Stats{Inserted: 1}, store.SaveStartList(ctx, []models.StartListEntry{e}))

	e.Scratched = true
	require.Equal(t, Stats{Updated: 1}, store.SaveStartList(ctx, []models.StartListEntry{e}))

	var stored models.StartListEntry
	require.NoError(t, bdb.NewSelect().Model(&stored).Where("start_number = ?", 4).Scan(ctx))
	require.True(t, stored.Scratched)
	require.Equal(t, "Örjan Kihlström", stored.Driver)
}

func TestSavePropositions(t *testing.T) {
	store, bdb := newTestStore(t)
	ctx := context.Background()

	p := models.Proposition{Date: 20250901, TrackCode: "F", HorseName: "Zeus Zet", Number: 7}
	require.Equal(t, Stats{Inserted: 1}, store.SavePropositions(ctx, []models.Proposition{p}))
	require.Equal(t, Stats{Unchanged: 1}, store.SavePropositions(ctx, []models.Proposition{p}))

	prefs := "Björn Goop"
	p.DriverPreferences = &prefs
	p.Distance = intp(2140)
	require.Equal(t, Stats{Updated: 1}, store.SavePropositions(ctx, []models.Proposition{p}))

	n, err := bdb.NewSelect().Model((*models.Proposition)(nil)).Count(ctx)
	require.NoError(t, err)
	require.Equal(t, 1, n)
}

func TestIsConflict(t *testing.T) {
	require.True(t, isConflict(errors.New(`ERROR: duplicate key value violates unique constraint "race_results_natural_key"`)))
	require.True(t, isConflict(errors.New("constraint failed: UNIQUE constraint failed: race_results.date")))
	require.False(t, isConflict(errors.New("connection refused")))
}

func TestStatsAdd(t *testing.T) {
	s := Stats{Inserted: 1}
	s.Add(Stats{Updated: 2, Failed: 1})
	require.Equal(t, Stats{Inserted: 1, Updated: 2, Failed: 1}, s)
	require.Equal(t, 4, s.Total())
}
