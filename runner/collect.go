package runner

import (
	"context"
	"sync"

	"github.com/padraicbc/travscrape/db"
	"github.com/padraicbc/travscrape/models"
	"github.com/padraicbc/travscrape/reconcile"
)

// Collector is a Sink that keeps rows in memory for dry runs. Seeded
// results are not kept; they only restate the start list.
type Collector struct {
	mu           sync.Mutex
	Results      []models.RaceResult
	StartList    []models.StartListEntry
	Propositions []models.Proposition
}

func (c *Collector) SaveResults(_ context.Context, rows []models.RaceResult, src reconcile.Source) db.Stats {
	if src != reconcile.FromResults {
		return db.Stats{}
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.Results = append(c.Results, rows...)
	return db.Stats{}
}

func (c *Collector) SaveStartList(_ context.Context, rows []models.StartListEntry) db.Stats {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.StartList = append(c.StartList, rows...)
	return db.Stats{}
}

func (c *Collector) SavePropositions(_ context.Context, rows []models.Proposition) db.Stats {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.Propositions = append(c.Propositions, rows...)
	return db.Stats{}
}
