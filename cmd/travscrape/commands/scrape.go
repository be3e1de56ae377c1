package commands

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/padraicbc/travscrape/browser"
	"github.com/padraicbc/travscrape/config"
	"github.com/padraicbc/travscrape/db"
	"github.com/padraicbc/travscrape/logger"
	"github.com/padraicbc/travscrape/runner"
)

type scrapeFlags struct {
	from, to int
	raceDay  int
	plan     string
	workers  int
	dryRun   bool
}

func init() {
	rootCmd.AddCommand(
		newScrapeCmd(runner.KindResults, "Scrapes race results pages."),
		newScrapeCmd(runner.KindStartList, "Scrapes start lists and seeds results for upcoming race days."),
		newScrapeCmd(runner.KindPropositions, "Scrapes proposition pages of one race day."),
	)
}

func newScrapeCmd(kind runner.Kind, short string) *cobra.Command {
	f := &scrapeFlags{}
	cmd := &cobra.Command{
		Use:   string(kind) + " [--from ID --to ID | --plan plan.yaml]",
		Short: short,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScrape(cmd, kind, f)
		},
	}
	cmd.Flags().IntVar(&f.from, "from", 0, "first page ID")
	cmd.Flags().IntVar(&f.to, "to", 0, "last page ID (defaults to --from)")
	cmd.Flags().StringVar(&f.plan, "plan", "", "YAML plan file (overrides SCRAPE_PLAN)")
	cmd.Flags().IntVar(&f.workers, "workers", 0, "parallel pages (overrides SCRAPE_WORKERS)")
	cmd.Flags().BoolVar(&f.dryRun, "dry-run", false, "print extracted rows instead of saving them")
	if kind == runner.KindPropositions {
		cmd.Flags().IntVar(&f.raceDay, "raceday", 0, "race day ID the propositions belong to")
	}
	return cmd
}

func targets(kind runner.Kind, f *scrapeFlags, cfg *config.ScraperConfig) ([]runner.Target, error) {
	path := f.plan
	if path == "" && f.from == 0 {
		path = cfg.PlanPath
	}

	var plan *runner.Plan
	switch {
	case path != "":
		p, err := runner.LoadPlan(path)
		if err != nil {
			return nil, err
		}
		plan = p
	case f.from > 0:
		to := f.to
		if to == 0 {
			to = f.from
		}
		if to < f.from {
			return nil, fmt.Errorf("--to %d is before --from %d", to, f.from)
		}
		r := runner.Range{From: f.from, To: to}
		plan = &runner.Plan{}
		switch kind {
		case runner.KindResults:
			plan.Results = []runner.Range{r}
		case runner.KindStartList:
			plan.StartList = []runner.Range{r}
		case runner.KindPropositions:
			if f.raceDay <= 0 {
				return nil, errors.New("--raceday is required with --from")
			}
			plan.Propositions = []runner.PropositionRange{{RaceDay: f.raceDay, Range: r}}
		}
	default:
		return nil, errors.New("give --from/--to or a plan")
	}

	var out []runner.Target
	for _, t := range plan.Targets(cfg.BaseURL) {
		if t.Kind == kind {
			out = append(out, t)
		}
	}
	return out, nil
}

func runScrape(cmd *cobra.Command, kind runner.Kind, f *scrapeFlags) error {
	ctx := cmd.Context()
	cfg := config.LoadScraper()
	if f.workers > 0 {
		cfg.Workers = f.workers
	}

	log, flush := logger.Global("travscrape", cfg.Debug)
	defer flush()

	list, err := targets(kind, f, cfg)
	if err != nil {
		return err
	}
	if len(list) == 0 {
		log.Info("nothing to scrape", zap.String("kind", string(kind)))
		return nil
	}

	var (
		sink      runner.Sink
		collector *runner.Collector
	)
	if f.dryRun {
		collector = &runner.Collector{}
		sink = collector
	} else {
		bdb := db.Setup(cfg.PostgresDSN(), cfg.Debug)
		defer bdb.Close()
		if err := db.CreateTables(ctx, bdb); err != nil {
			return err
		}
		sink = db.NewStore(bdb, log)
	}

	session, err := browser.NewSession(ctx, browser.Options{Headless: cfg.Headless, PageTimeout: cfg.PageTimeout}, log)
	if err != nil {
		return err
	}
	defer session.Close()

	fetcher := runner.BrowserFetcher{Session: session, Wait: cfg.WaitBudget, StartListWait: cfg.StartListWait}
	r := runner.New(fetcher, sink, log, runner.Options{Workers: cfg.Workers, Location: cfg.Location})

	log.Info("scrape started", zap.String("kind", string(kind)), zap.Int("pages", len(list)), zap.Int("workers", cfg.Workers))
	rep, err := r.Run(ctx, list)

	out := cmd.OutOrStdout()
	if collector != nil {
		printCollected(out, collector)
	}
	printReport(out, rep)
	return err
}
