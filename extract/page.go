// Package extract turns a rendered race-day page into typed rows. It never
// touches a browser; pages are read through the Page interface.
package extract

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/padraicbc/travscrape/parse"
)

// Page is the read side of a rendered page.
type Page interface {
	// NavTexts returns the non-empty navigation header spans.
	NavTexts() []string
	// Sections returns one entry per "Lopp N" heading with its grid rows.
	Sections() []Section
	// Rows returns every grid row on the page, regardless of section.
	Rows() []Row
	// Blocks returns the block-level texts matching re, at most a bounded
	// number of them, for page-wide searches.
	Blocks(re *regexp.Regexp) []string
}

// Section is one race on a race-day page.
type Section struct {
	Header string
	// Info is the text under the heading: purse line, distance, conditions.
	Info string
	Rows []Row
}

// Row maps a grid data-field slot to its cell.
type Row map[string]Cell

// Cell is one grid cell. Number and Name hold the text of the cell's first
// div and first span/link when the cell has them.
type Cell struct {
	Text   string
	Number string
	Name   string
	Struck bool
}

var (
	raceNumber  = regexp.MustCompile(`(?i)Lopp\s+(\d+)`)
	startNumber = regexp.MustCompile(`\d+`)
	shortNumber = regexp.MustCompile(`\b(\d{1,2})\b`)
	leadNumber  = regexp.MustCompile(`^\s*\d+\s*`)
)

// RaceNumber reads N from a "Lopp N" heading.
func RaceNumber(header string) (int, bool) {
	m := raceNumber.FindStringSubmatch(parse.CleanCell(header))
	if m == nil {
		return 0, false
	}
	n, err := strconv.Atoi(m[1])
	return n, err == nil
}

// horse splits a horse cell into start number and raw name. ok is false
// when no start number can be found.
func horse(c Cell) (number int, name string, ok bool) {
	if m := startNumber.FindString(parse.CleanCell(c.Number)); m != "" {
		number, _ = strconv.Atoi(m)
		ok = true
	}
	text := parse.CleanCell(c.Text)
	if !ok {
		m := shortNumber.FindStringSubmatch(text)
		if m == nil {
			return 0, "", false
		}
		number, _ = strconv.Atoi(m[1])
	}
	name = parse.CleanCell(c.Name)
	if name == "" {
		name = strings.TrimSpace(leadNumber.ReplaceAllString(text, ""))
	}
	return number, name, true
}

// slot returns the first slot present in row.
func slot(row Row, names ...string) (Cell, bool) {
	for _, n := range names {
		if c, ok := row[n]; ok {
			return c, true
		}
	}
	return Cell{}, false
}
