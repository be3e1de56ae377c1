package commands

import (
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/padraicbc/travscrape/db"
	"github.com/padraicbc/travscrape/runner"
)

func newTable(out io.Writer) table.Writer {
	t := table.NewWriter()
	t.SetStyle(table.StyleRounded)
	t.SetOutputMirror(out)
	return t
}

func opt[T any](v *T) any {
	if v == nil {
		return "-"
	}
	return *v
}

func printCollected(out io.Writer, c *runner.Collector) {
	if len(c.Results) > 0 {
		t := newTable(out)
		t.AppendHeader(table.Row{"Datum", "Bana", "Lopp", "Nr", "Namn", "Dist", "Spår", "Plac", "Tid", "S", "G", "Kusk", "Pris", "Odds"})
		for _, r := range c.Results {
			t.AppendRow(table.Row{
				r.Date, r.TrackCode, r.Race, r.StartNumber, r.HorseName,
				opt(r.Distance), opt(r.Lane), opt(r.Placement), opt(r.FinishTime),
				r.StartMethod, r.Gallop, r.Driver, r.Prize, r.Odds,
			})
		}
		t.Render()
	}

	if len(c.StartList) > 0 {
		t := newTable(out)
		t.AppendHeader(table.Row{"Datum", "Bana", "Lopp", "Nr", "Namn", "Spår", "Dist", "Kusk", "Struken"})
		for _, e := range c.StartList {
			t.AppendRow(table.Row{
				e.Date, e.TrackCode, e.Race, e.StartNumber, e.HorseName,
				opt(e.Lane), opt(e.Distance), e.Driver, e.Scratched,
			})
		}
		t.Render()
	}

	if len(c.Propositions) > 0 {
		t := newTable(out)
		t.AppendHeader(table.Row{"Datum", "Bana", "Prop", "Namn", "Dist", "Kuskönskemål"})
		for _, p := range c.Propositions {
			t.AppendRow(table.Row{p.Date, p.TrackCode, p.Number, p.HorseName, opt(p.Distance), opt(p.DriverPreferences)})
		}
		t.Render()
	}
}

func printReport(out io.Writer, rep runner.Report) {
	fmt.Fprintf(out, "pages: %d  empty: %d  failed: %d\n", rep.Pages, rep.Empty, rep.Failed)

	t := newTable(out)
	t.AppendHeader(table.Row{"Table", "Inserted", "Updated", "Unchanged", "Failed"})
	for _, s := range []struct {
		name string
		st   db.Stats
	}{
		{"results", rep.Results},
		{"start list", rep.StartList},
		{"seeded results", rep.Seeded},
		{"propositions", rep.Propositions},
	} {
		if s.st.Total() == 0 {
			continue
		}
		t.AppendRow(table.Row{s.name, s.st.Inserted, s.st.Updated, s.st.Unchanged, s.st.Failed})
	}
	t.Render()
}
