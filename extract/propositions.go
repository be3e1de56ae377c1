package extract

import (
	"regexp"
	"strconv"

	"go.uber.org/zap"

	"github.com/padraicbc/travscrape/models"
	"github.com/padraicbc/travscrape/parse"
)

var (
	propNumber   = regexp.MustCompile(`(?i)Prop\.\s*(\d+)`)
	propDistance = regexp.MustCompile(`\b(\d{4})\s*m\b`)
)

// Propositions extracts a proposition page: every nominated horse with the
// proposition number found anywhere on the page.
func Propositions(p Page) ([]models.Proposition, error) {
	code, date, ok, err := raceDay(p)
	if err != nil {
		return nil, err
	}
	if !ok {
		code, date, ok = isoHeader(p.Blocks(isoDate))
	}
	if !ok {
		zap.L().Info("propositions: no track/date found")
		return nil, nil
	}

	number, ok := findInt(propNumber, p.Blocks(propNumber))
	if !ok {
		zap.L().Info("propositions: no proposition number", zap.String("track", code), zap.Int("date", date))
		return nil, nil
	}

	var pageDistance *int
	if d, ok := findInt(propDistance, p.Blocks(propDistance)); ok {
		pageDistance = &d
	}

	var out []models.Proposition
	for _, row := range p.Rows() {
		hc, ok := slot(row, "horseName", "horse")
		if !ok {
			continue
		}
		raw := hc.Name
		if raw == "" {
			raw = hc.Text
		}
		name := parse.Name(raw, parse.HorseName)
		if name == "" {
			continue
		}

		prop := models.Proposition{
			Date:      date,
			TrackCode: code,
			HorseName: name,
			Number:    number,
			Distance:  pageDistance,
		}
		if dc, ok := row["distance"]; ok {
			if d, _, _ := parse.Distance(dc.Text); d != nil {
				prop.Distance = d
			}
		}
		if driver := parse.Name(row["driver"].Text, parse.PropositionDriver); driver != "" {
			prop.DriverPreferences = &driver
		}
		out = append(out, prop)
	}
	return out, nil
}

func findInt(re *regexp.Regexp, blocks []string) (int, bool) {
	for _, b := range blocks {
		if m := re.FindStringSubmatch(parse.CleanCell(b)); m != nil {
			if n, err := strconv.Atoi(m[1]); err == nil {
				return n, true
			}
		}
	}
	return 0, false
}
