// cmd/importlegacy/main.go
// Imports the old MySQL Resultat, Startlista and proposition tables into
// PostgreSQL through the same reconciler the scraper uses, so re-runs and
// overlaps with scraped rows are safe.
//
// Usage:
//
//	MYSQL_DSN="user:pass@tcp(host:3306)/trav?parseTime=true" \
//	DB_PASS="pgpass" JWT_SECRET=x \
//	go run ./cmd/importlegacy
package main

import (
	"context"
	"database/sql"
	"log"

	_ "github.com/go-sql-driver/mysql"
	"go.uber.org/zap"

	"github.com/padraicbc/travscrape/config"
	bundb "github.com/padraicbc/travscrape/db"
	"github.com/padraicbc/travscrape/logger"
	"github.com/padraicbc/travscrape/models"
	"github.com/padraicbc/travscrape/reconcile"
)

const batchSize = 500

func main() {
	ctx := context.Background()
	cfg := config.Load()

	zl, flush := logger.Global("importlegacy", cfg.Debug)
	defer flush()

	if cfg.MySQLDSN == "" {
		log.Fatal("MYSQL_DSN required, e.g.: user:pass@tcp(host:3306)/trav?parseTime=true")
	}
	myDB, err := sql.Open("mysql", cfg.MySQLDSN)
	if err != nil {
		zl.Fatal("open mysql", zap.Error(err))
	}
	defer myDB.Close()
	myDB.SetMaxOpenConns(4)
	if err := myDB.PingContext(ctx); err != nil {
		zl.Fatal("ping mysql", zap.Error(err))
	}

	pgDB := bundb.Setup(cfg.PostgresDSN(), cfg.Debug)
	defer pgDB.Close()
	if err := bundb.CreateTables(ctx, pgDB); err != nil {
		zl.Fatal("create tables", zap.Error(err))
	}
	store := bundb.NewStore(pgDB, zl)

	steps := []struct {
		name string
		fn   func() (bundb.Stats, error)
	}{
		{"Resultat", func() (bundb.Stats, error) { return importResults(ctx, myDB, store) }},
		{"Startlista", func() (bundb.Stats, error) { return importStartList(ctx, myDB, store) }},
		{"proposition", func() (bundb.Stats, error) { return importPropositions(ctx, myDB, store) }},
	}

	for _, s := range steps {
		st, err := s.fn()
		if err != nil {
			zl.Fatal("import failed", zap.String("table", s.name), zap.Error(err))
		}
		zl.Info("imported",
			zap.String("table", s.name),
			zap.Int("inserted", st.Inserted),
			zap.Int("updated", st.Updated),
			zap.Int("unchanged", st.Unchanged),
			zap.Int("failed", st.Failed),
		)
	}
	zl.Info("import complete")
}

func nullInt(n sql.NullInt64) *int {
	if !n.Valid {
		return nil
	}
	v := int(n.Int64)
	return &v
}

func nullFloat(n sql.NullFloat64) *float64 {
	if !n.Valid {
		return nil
	}
	return &n.Float64
}

// batches scans rows in chunks of batchSize and hands each chunk to save.
func batches[T any](rows *sql.Rows, scan func(*sql.Rows) (T, error), save func([]T) bundb.Stats) (bundb.Stats, error) {
	defer rows.Close()

	var (
		total bundb.Stats
		batch []T
	)
	for rows.Next() {
		r, err := scan(rows)
		if err != nil {
			return total, err
		}
		batch = append(batch, r)
		if len(batch) >= batchSize {
			total.Add(save(batch))
			batch = batch[:0]
		}
	}
	if len(batch) > 0 {
		total.Add(save(batch))
	}
	return total, rows.Err()
}

func importResults(ctx context.Context, myDB *sql.DB, store *bundb.Store) (bundb.Stats, error) {
	rows, err := myDB.QueryContext(ctx, `
		SELECT Datum, Bankod, Lopp, Nr, Namn, Distans, Spar, Placering, Tid,
		       COALESCE(Startmetod, ''), COALESCE(Galopp, ''), COALESCE(Underlag, ''), COALESCE(Pris, 0)
		FROM Resultat ORDER BY Datum, Bankod, Lopp, Nr`)
	if err != nil {
		return bundb.Stats{}, err
	}
	return batches(rows,
		func(rows *sql.Rows) (models.RaceResult, error) {
			var (
				r                         models.RaceResult
				distance, lane, placement sql.NullInt64
				finish                    sql.NullFloat64
			)
			err := rows.Scan(&r.Date, &r.TrackCode, &r.Race, &r.StartNumber, &r.HorseName,
				&distance, &lane, &placement, &finish,
				&r.StartMethod, &r.Gallop, &r.Surface, &r.Prize)
			r.Distance, r.Lane, r.Placement, r.FinishTime = nullInt(distance), nullInt(lane), nullInt(placement), nullFloat(finish)
			return r, err
		},
		func(batch []models.RaceResult) bundb.Stats {
			return store.SaveResults(ctx, batch, reconcile.FromResults)
		},
	)
}

func importStartList(ctx context.Context, myDB *sql.DB, store *bundb.Store) (bundb.Stats, error) {
	rows, err := myDB.QueryContext(ctx, `
		SELECT Startdatum, Bankod, Lopp, Nr, Namn, Spar, Distans, COALESCE(Kusk, '')
		FROM Startlista ORDER BY Startdatum, Bankod, Lopp, Nr`)
	if err != nil {
		return bundb.Stats{}, err
	}
	return batches(rows,
		func(rows *sql.Rows) (models.StartListEntry, error) {
			var (
				e              models.StartListEntry
				lane, distance sql.NullInt64
			)
			err := rows.Scan(&e.Date, &e.TrackCode, &e.Race, &e.StartNumber, &e.HorseName, &lane, &distance, &e.Driver)
			e.Lane, e.Distance = nullInt(lane), nullInt(distance)
			return e, err
		},
		func(batch []models.StartListEntry) bundb.Stats {
			return store.SaveStartList(ctx, batch)
		},
	)
}

func importPropositions(ctx context.Context, myDB *sql.DB, store *bundb.Store) (bundb.Stats, error) {
	rows, err := myDB.QueryContext(ctx, `
		SELECT startdatum, bankod, namn, proposition, distans, kuskanskemal
		FROM proposition ORDER BY startdatum, bankod, proposition`)
	if err != nil {
		return bundb.Stats{}, err
	}
	return batches(rows,
		func(rows *sql.Rows) (models.Proposition, error) {
			var (
				p        models.Proposition
				distance sql.NullInt64
				prefs    sql.NullString
			)
			err := rows.Scan(&p.Date, &p.TrackCode, &p.HorseName, &p.Number, &distance, &prefs)
			p.Distance = nullInt(distance)
			if prefs.Valid {
				p.DriverPreferences = &prefs.String
			}
			return p, err
		},
		func(batch []models.Proposition) bundb.Stats {
			return store.SavePropositions(ctx, batch)
		},
	)
}
