package extract

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/padraicbc/travscrape/parse"
)

type fakePage struct {
	nav      []string
	sections []Section
	rows     []Row
	blocks   []string
}

func (p fakePage) NavTexts() []string  { return p.nav }
func (p fakePage) Sections() []Section { return p.sections }
func (p fakePage) Rows() []Row         { return p.rows }

func (p fakePage) Blocks(re *regexp.Regexp) []string {
	var out []string
	for _, b := range p.blocks {
		if re.MatchString(b) {
			out = append(out, b)
		}
	}
	return out
}

func TestHeader(t *testing.T) {
	cases := []struct {
		name  string
		texts []string
		track string
		date  string
		ok    bool
	}{
		{
			name:  "separate spans",
			texts: []string{"Solvalla", "Onsdag 3 September 2025"},
			track: "SOLVALLA", date: "3 SEPTEMBER 2025", ok: true,
		},
		{
			name:  "single line",
			texts: []string{"DAGSRESULTAT", "DAG ESKILSTUNA FREDAG 27 FEBRUARI 2026"},
			track: "DAG ESKILSTUNA", date: "27 FEBRUARI 2026", ok: true,
		},
		{
			name:  "non-month span before the date",
			texts: []string{"1 AUTOSTART 2140", "UMÅKER", "FREDAG 27 FEBRUARI 2026"},
			track: "UMÅKER", date: "27 FEBRUARI 2026", ok: true,
		},
		{
			name:  "misspelled month is still found",
			texts: []string{"Solvalla", "3 Smarch 2025"},
			track: "SOLVALLA", date: "3 SMARCH 2025", ok: true,
		},
		{
			name:  "title only",
			texts: []string{"Startlista"},
		},
		{
			name:  "date without track",
			texts: []string{"STARTLISTA", "27 februari 2026"},
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			track, date, ok := Header(tc.texts)
			require.Equal(t, tc.ok, ok)
			require.Equal(t, tc.track, track)
			require.Equal(t, tc.date, date)
		})
	}
}

func TestRaceNumber(t *testing.T) {
	n, ok := RaceNumber("Lopp 4 - V75-1")
	require.True(t, ok)
	require.Equal(t, 4, n)

	_, ok = RaceNumber("Travtips")
	require.False(t, ok)
}

func resultsPage() fakePage {
	return fakePage{
		nav: []string{"Solvalla", "Onsdag 3 September 2025"},
		sections: []Section{
			{Header: "Travtips"},
			{
				Header: "Lopp 4",
				Info:   "Pris: 100.000-50.000-25.000 kr (3 prisplacerade). Lägst 4.000 kr till alla.",
				Rows: []Row{
					{
						"horse":                    {Text: "3 Don Fanucci Zet (SE)", Number: "3", Name: "Don Fanucci Zet (SE)"},
						"driver":                   {Text: "Örjan Kihlström"},
						"placementDisplay":         {Text: "1"},
						"startPositionAndDistance": {Text: "3/2140n"},
						"time":                     {Text: "1.12,3a"},
						"odds":                     {Text: "2,5"},
					},
					{
						"horse":                    {Text: "5 Hickothepooh"},
						"driver":                   {Text: "Björn Goop"},
						"placementDisplay":         {Text: "k"},
						"startPositionAndDistance": {Text: "2140:5"},
						"time":                     {Text: "dist"},
					},
					{
						"horse": {Text: "Okänd"},
					},
				},
			},
			{Header: "Lopp 5"},
		},
	}
}

func TestResults(t *testing.T) {
	rows, err := Results(resultsPage())
	require.NoError(t, err)
	require.Len(t, rows, 2)

	first := rows[0]
	require.Equal(t, 20250903, first.Date)
	require.Equal(t, "S", first.TrackCode)
	require.Equal(t, 4, first.Race)
	require.Equal(t, 3, first.StartNumber)
	require.Equal(t, "Don Fanucci Zet", first.HorseName)
	require.Equal(t, "Örjan Kihlström", first.Driver)
	require.Equal(t, 1, *first.Placement)
	require.Equal(t, 2140, *first.Distance)
	require.Equal(t, 3, *first.Lane)
	require.Equal(t, "n", first.Surface)
	require.InDelta(t, 72.3, *first.FinishTime, 1e-9)
	require.Equal(t, "a", first.StartMethod)
	require.Equal(t, "", first.Gallop)
	require.Equal(t, 100000, first.Prize)
	require.Equal(t, 25, first.Odds)

	second := rows[1]
	require.Equal(t, 5, second.StartNumber)
	require.Equal(t, "Hickothepooh", second.HorseName)
	require.Equal(t, parse.PlaceUnplaced, *second.Placement)
	require.Equal(t, 5, *second.Lane)
	require.Equal(t, parse.TimeDidNotFinish, *second.FinishTime)
	require.Equal(t, 0, second.Prize)
	require.Equal(t, parse.OddsUnknown, second.Odds)
}

func TestResultsPageLevelFailures(t *testing.T) {
	rows, err := Results(fakePage{nav: []string{"DAGSRESULTAT"}})
	require.NoError(t, err)
	require.Empty(t, rows)

	p := resultsPage()
	p.nav = []string{"Solvalla", "45 maj 2025"}
	rows, err = Results(p)
	require.NoError(t, err)
	require.Empty(t, rows)

	p.sections = nil
	p.nav = []string{"Solvalla", "Onsdag 3 September 2025"}
	rows, err = Results(p)
	require.NoError(t, err)
	require.Empty(t, rows)
}

func TestResultsSkipsNonMonthSpan(t *testing.T) {
	p := resultsPage()
	p.nav = []string{"1 AUTOSTART 2140", "Umåker", "Fredag 27 Februari 2026"}

	rows, err := Results(p)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	require.Equal(t, 20260227, rows[0].Date)
	require.Equal(t, parse.TrackCode("Umåker"), rows[0].TrackCode)
}

func TestUnknownMonthIsAnError(t *testing.T) {
	p := resultsPage()
	p.nav = []string{"Solvalla", "3 Smarch 2025"}

	rows, err := Results(p)
	require.ErrorIs(t, err, parse.ErrUnknownMonth)
	require.Nil(t, rows)

	_, err = StartList(p)
	require.ErrorIs(t, err, parse.ErrUnknownMonth)
}

func TestStartList(t *testing.T) {
	p := fakePage{
		nav: []string{"STARTLISTA", "DAG ESKILSTUNA FREDAG 27 FEBRUARI 2026"},
		sections: []Section{{
			Header: "Lopp 1",
			Rows: []Row{
				{
					"mobilehorse": {Number: "1", Name: "Don Fanucci Zet  SE 5 v*"},
					"horse":       {Number: "9", Name: "ignored"},
					"driver":      {Text: "Örjan Kihlström (Tränare)"},
					"trackName":   {Text: "4/2140"},
				},
				{
					"horse":     {Text: "2 Stoletheshow (US) 8 år h", Struck: true},
					"driver":    {Text: "Björn Goop"},
					"trackName": {Text: "2160:2"},
				},
			},
		}},
	}

	rows, err := StartList(p)
	require.NoError(t, err)
	require.Len(t, rows, 2)

	require.Equal(t, 20260227, rows[0].Date)
	require.Equal(t, "E", rows[0].TrackCode)
	require.Equal(t, 1, rows[0].StartNumber)
	require.Equal(t, "DON FANUCCI ZET", rows[0].HorseName)
	require.Equal(t, "Örjan Kihlström", rows[0].Driver)
	require.Equal(t, 4, *rows[0].Lane)
	require.Equal(t, 2140, *rows[0].Distance)
	require.False(t, rows[0].Scratched)

	require.Equal(t, 2, rows[1].StartNumber)
	require.Equal(t, "STOLETHESHOW", rows[1].HorseName)
	require.Equal(t, 2, *rows[1].Lane)
	require.Equal(t, 2160, *rows[1].Distance)
	require.True(t, rows[1].Scratched)
}

func TestPropositions(t *testing.T) {
	p := fakePage{
		blocks: []string{"Meny", "Färjestad 2025-09-01", "Prop. 12 Färjestads Elitlopp", "2140 m Autostart"},
		rows: []Row{
			{
				"horseName": {Name: "Zeus Zet (SE)"},
				"driver":    {Text: "Björn Goop"},
			},
			{
				"horse":    {Text: "Ava Zet"},
				"distance": {Text: "2640 m"},
			},
			{
				"trainer": {Text: "no horse cell"},
			},
		},
	}

	rows, err := Propositions(p)
	require.NoError(t, err)
	require.Len(t, rows, 2)

	require.Equal(t, 20250901, rows[0].Date)
	require.Equal(t, "F", rows[0].TrackCode)
	require.Equal(t, 12, rows[0].Number)
	require.Equal(t, "Zeus Zet", rows[0].HorseName)
	require.Equal(t, 2140, *rows[0].Distance)
	require.Equal(t, "Björn Goop", *rows[0].DriverPreferences)

	require.Equal(t, "Ava Zet", rows[1].HorseName)
	require.Equal(t, 2640, *rows[1].Distance)
	require.Nil(t, rows[1].DriverPreferences)
}

func TestPropositionsNeedNumber(t *testing.T) {
	p := fakePage{
		nav:  []string{"Färjestad", "1 september 2025"},
		rows: []Row{{"horse": {Text: "Ava Zet"}}},
	}
	rows, err := Propositions(p)
	require.NoError(t, err)
	require.Empty(t, rows)
}
