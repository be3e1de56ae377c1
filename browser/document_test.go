package browser

import (
	"fmt"
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/padraicbc/travscrape/extract"
)

const resultsHTML = `<html><body>
<div class="RaceDayNavigator_title__a1"><span>Solvalla</span><span>Onsdag 3 September 2025</span></div>
<div class="MuiBox-root css-1">
  <h2>Lopp 1</h2>
  <p>Pris: 50.000-25.000 kr (2 prisplacerade). Lägst 2.000 kr.</p>
  <div class="MuiDataGrid-root MuiDataGrid-root--densityStandard">
    <div role="row"><div data-field="horse">Häst</div></div>
    <div role="row" data-rowindex="0">
      <div data-field="horse"><div>1</div><span>Zeus Zet (SE)</span></div>
      <div data-field="driver">Björn Goop</div>
      <div data-field="placementDisplay">2</div>
      <div data-field="startPositionAndDistance">1/2140</div>
      <div data-field="time">1.13,4ag</div>
      <div data-field="odds">12</div>
    </div>
    <div role="row" data-rowindex="1">
      <div data-field="horse"><div>2</div><span class="Horse_linethrough__x">Ava Zet</span></div>
      <div data-field="driver">Erik Adielsson</div>
      <div data-field="placementDisplay">str</div>
      <div data-field="startPositionAndDistance">2/2140</div>
      <div data-field="time"></div>
    </div>
  </div>
</div>
<div class="MuiBox-root css-2">
  <h2>Lopp 2</h2>
  <p>Inga startande.</p>
</div>
</body></html>`

func TestDocumentSections(t *testing.T) {
	doc, err := Parse(resultsHTML)
	require.NoError(t, err)

	require.Equal(t, []string{"Solvalla", "Onsdag 3 September 2025"}, doc.NavTexts())

	secs := doc.Sections()
	require.Len(t, secs, 2)
	require.Equal(t, "Lopp 1", secs[0].Header)
	require.Contains(t, secs[0].Info, "Pris: 50.000-25.000 kr")
	require.Len(t, secs[0].Rows, 2)

	horse := secs[0].Rows[1]["horse"]
	require.Equal(t, "2", horse.Number)
	require.Equal(t, "Ava Zet", horse.Name)
	require.True(t, horse.Struck)
	require.False(t, secs[0].Rows[0]["horse"].Struck)

	require.Equal(t, "Lopp 2", secs[1].Header)
	require.Empty(t, secs[1].Rows)
}

func TestDocumentResults(t *testing.T) {
	doc, err := Parse(resultsHTML)
	require.NoError(t, err)

	rows, err := extract.Results(doc)
	require.NoError(t, err)
	require.Len(t, rows, 2)

	require.Equal(t, "S", rows[0].TrackCode)
	require.Equal(t, 20250903, rows[0].Date)
	require.Equal(t, "Zeus Zet", rows[0].HorseName)
	require.Equal(t, 2, *rows[0].Placement)
	require.Equal(t, 25000, rows[0].Prize)
	require.Equal(t, 12, rows[0].Odds)
	require.InDelta(t, 73.4, *rows[0].FinishTime, 1e-9)
	require.Equal(t, "a", rows[0].StartMethod)
	require.Equal(t, "g", rows[0].Gallop)

	require.Equal(t, 99, *rows[1].Placement)
	require.Nil(t, rows[1].FinishTime)
	require.Equal(t, 0, rows[1].Prize)
}

const propositionHTML = `<html><body>
<div>
  <h1>Färjestad 2025-09-01</h1>
  <div><span>Prop. 7</span> <span>Färjestads Elitlopp</span></div>
  <p>2140 m Autostart</p>
</div>
<div class="MuiDataGrid-root">
  <div role="row" data-rowindex="0">
    <div data-field="horseName"><a href="/horse/1">Zeus Zet (SE)</a></div>
    <div data-field="driver">Björn Goop</div>
  </div>
</div>
</body></html>`

func TestDocumentPropositions(t *testing.T) {
	doc, err := Parse(propositionHTML)
	require.NoError(t, err)

	require.Empty(t, doc.NavTexts())
	require.Equal(t, []string{"Färjestad 2025-09-01"}, doc.Blocks(regexp.MustCompile(`2025-09-01`)))
	require.Contains(t, doc.Blocks(regexp.MustCompile(`Prop\.`)), "Prop. 7 Färjestads Elitlopp")

	rows, err := extract.Propositions(doc)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	require.Equal(t, "F", rows[0].TrackCode)
	require.Equal(t, 20250901, rows[0].Date)
	require.Equal(t, 7, rows[0].Number)
	require.Equal(t, "Zeus Zet", rows[0].HorseName)
	require.Equal(t, 2140, *rows[0].Distance)
	require.Equal(t, "Björn Goop", *rows[0].DriverPreferences)
}

func TestDocumentPropositionsAfterLongMenu(t *testing.T) {
	var b strings.Builder
	b.WriteString("<html><body><nav>")
	for i := 0; i < 300; i++ {
		fmt.Fprintf(&b, "<span>Meny %d</span>", i)
	}
	b.WriteString(`</nav>
<h1>Färjestad 2025-09-01</h1>
<h2>Prop. 7 Färjestads Elitlopp 2140 m</h2>
<div class="MuiDataGrid-root">
  <div role="row" data-rowindex="0">
    <div data-field="horseName"><a href="/horse/1">Zeus Zet (SE)</a></div>
  </div>
</div>
</body></html>`)

	doc, err := Parse(b.String())
	require.NoError(t, err)

	rows, err := extract.Propositions(doc)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	require.Equal(t, 7, rows[0].Number)
	require.Equal(t, 20250901, rows[0].Date)
	require.Equal(t, 2140, *rows[0].Distance)
}
