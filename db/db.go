package db

import (
	"context"
	"database/sql"
	"fmt"
	"log"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"
	"github.com/uptrace/bun/extra/bundebug"

	"github.com/padraicbc/travscrape/models"
)

// Setup opens a PostgreSQL connection for dsn. With debug set every query
// is logged.
func Setup(dsn string, debug bool) *bun.DB {
	sqldb := sql.OpenDB(pgdriver.NewConnector(pgdriver.WithDSN(dsn)))
	db := bun.NewDB(sqldb, pgdialect.New())

	if debug {
		db.AddQueryHook(bundebug.NewQueryHook(bundebug.WithVerbose(true)))
	}

	if err := db.PingContext(context.Background()); err != nil {
		log.Fatal("failed to connect to database:", err)
	}

	return db
}

// CreateTables creates the scraped tables and the API users table. The
// natural-key unique constraints come from the models' unique tags.
func CreateTables(ctx context.Context, db *bun.DB) error {
	tables := []interface{}{
		(*models.User)(nil),
		(*models.RaceResult)(nil),
		(*models.StartListEntry)(nil),
		(*models.Proposition)(nil),
	}

	for _, model := range tables {
		if _, err := db.NewCreateTable().Model(model).IfNotExists().Exec(ctx); err != nil {
			return fmt.Errorf("creating table for %T: %w", model, err)
		}
	}

	indexes := []struct {
		model   interface{}
		name    string
		columns []string
	}{
		{(*models.RaceResult)(nil), "race_results_day_idx", []string{"date", "track_code"}},
		{(*models.StartListEntry)(nil), "start_lists_day_idx", []string{"date", "track_code"}},
		{(*models.Proposition)(nil), "propositions_day_idx", []string{"date", "track_code"}},
	}
	for _, ix := range indexes {
		if _, err := db.NewCreateIndex().Model(ix.model).Index(ix.name).Column(ix.columns...).IfNotExists().Exec(ctx); err != nil {
			log.Printf("index %s: %v", ix.name, err)
		}
	}

	return nil
}
