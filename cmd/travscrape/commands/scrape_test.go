package commands

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/padraicbc/travscrape/config"
	"github.com/padraicbc/travscrape/runner"
)

const base = "https://example.test"

func TestTargetsFromFlags(t *testing.T) {
	cfg := &config.ScraperConfig{BaseURL: base}

	list, err := targets(runner.KindResults, &scrapeFlags{from: 10, to: 12}, cfg)
	require.NoError(t, err)
	require.Len(t, list, 3)
	require.Equal(t, runner.ResultsURL(base, 10), list[0].URL)
	require.Equal(t, 12, list[2].ID)

	list, err = targets(runner.KindStartList, &scrapeFlags{from: 7}, cfg)
	require.NoError(t, err)
	require.Len(t, list, 1)
	require.Equal(t, runner.StartListURL(base, 7), list[0].URL)

	list, err = targets(runner.KindPropositions, &scrapeFlags{from: 5, to: 6, raceDay: 99}, cfg)
	require.NoError(t, err)
	require.Len(t, list, 2)
	require.Equal(t, runner.PropositionURL(base, 99, 6), list[1].URL)
}

func TestTargetsRejectsBadFlags(t *testing.T) {
	cfg := &config.ScraperConfig{BaseURL: base}

	_, err := targets(runner.KindResults, &scrapeFlags{from: 12, to: 10}, cfg)
	require.Error(t, err)

	_, err = targets(runner.KindPropositions, &scrapeFlags{from: 5}, cfg)
	require.Error(t, err)

	_, err = targets(runner.KindResults, &scrapeFlags{}, cfg)
	require.Error(t, err)
}

func TestTargetsFromPlanKeepsKind(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plan.yaml")
	plan := "results:\n  - {from: 1, to: 2}\nstartlist:\n  - {from: 5, to: 5}\n"
	require.NoError(t, os.WriteFile(path, []byte(plan), 0o644))

	cfg := &config.ScraperConfig{BaseURL: base, PlanPath: path}

	list, err := targets(runner.KindStartList, &scrapeFlags{}, cfg)
	require.NoError(t, err)
	require.Len(t, list, 1)
	require.Equal(t, 5, list[0].ID)

	list, err = targets(runner.KindResults, &scrapeFlags{}, cfg)
	require.NoError(t, err)
	require.Len(t, list, 2)

	list, err = targets(runner.KindPropositions, &scrapeFlags{}, cfg)
	require.NoError(t, err)
	require.Empty(t, list)
}
