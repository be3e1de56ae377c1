package extract

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/padraicbc/travscrape/parse"
)

var monthDate = regexp.MustCompile(`\b(\d{1,2})\s+(` + monthAlternation() + `)\s+(\d{4})\b`)

var (
	// anyDate also takes misspelled months, which then fail date resolution.
	anyDate  = regexp.MustCompile(`\b(\d{1,2})\s+(\p{L}+)\s+(\d{4})\b`)
	weekdays = regexp.MustCompile(`\b(?:MÅNDAG|TISDAG|ONSDAG|TORSDAG|FREDAG|LÖRDAG|SÖNDAG)\b`)
	isoDate  = regexp.MustCompile(`\b(20\d{2}-\d{2}-\d{2})\b`)
	digit    = regexp.MustCompile(`\d`)
)

func monthAlternation() string {
	names := parse.MonthNames()
	for i, n := range names {
		names[i] = regexp.QuoteMeta(n)
	}
	return strings.Join(names, "|")
}

var pageTitles = map[string]bool{
	"STARTLISTA":           true,
	"DAGSRESULTAT":         true,
	"TÄVLINGSDAGSRESULTAT": true,
}

// Header finds the track name and the "<d> <MONTH> <yyyy>" part in a page's
// navigation texts. A span with a known month wins over any other
// "<n> <word> <yyyy>" span. The track is either its own digit-free span or
// what is left of the date span once date and weekday are removed.
func Header(texts []string) (track, date string, ok bool) {
	container, date := findDate(monthDate, texts)
	if date == "" {
		container, date = findDate(anyDate, texts)
	}
	if date == "" {
		return "", "", false
	}

	for _, t := range texts {
		up := strings.ToUpper(parse.CleanCell(t))
		if up == "" || up == container || digit.MatchString(up) || pageTitles[up] {
			continue
		}
		return up, date, true
	}

	rest := strings.Replace(container, date, " ", 1)
	rest = parse.CleanCell(weekdays.ReplaceAllString(rest, " "))
	if rest == "" {
		return "", "", false
	}
	return rest, date, true
}

func findDate(re *regexp.Regexp, texts []string) (container, date string) {
	for _, t := range texts {
		up := strings.ToUpper(parse.CleanCell(t))
		if m := re.FindString(up); m != "" {
			return up, m
		}
	}
	return "", ""
}

// isoHeader finds a "<track> 2025-09-01" block.
func isoHeader(blocks []string) (code string, date int, ok bool) {
	for _, b := range blocks {
		t := parse.CleanCell(b)
		m := isoDate.FindString(t)
		if m == "" {
			continue
		}
		d, err := parse.ISODate(m)
		if err != nil {
			continue
		}
		before, _, _ := strings.Cut(t, m)
		track := strings.Trim(before, " •|-")
		code, found := parse.ExtractTrackCode(track)
		if !found {
			code = parse.TrackCode(track)
		}
		return code, d, true
	}
	return "", 0, false
}

// raceDay resolves a page's track code and date. ok is false when the page
// has no usable header; err is set only for an unknown month.
func raceDay(p Page) (code string, date int, ok bool, err error) {
	track, text, found := Header(p.NavTexts())
	if !found {
		return "", 0, false, nil
	}
	date, err = parse.Date(text)
	if err != nil {
		if isUnknownMonth(err) {
			return "", 0, false, fmt.Errorf("page header: %w", err)
		}
		return "", 0, false, nil
	}
	return parse.TrackCode(track), date, true, nil
}
