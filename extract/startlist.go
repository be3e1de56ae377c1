package extract

import (
	"go.uber.org/zap"

	"github.com/padraicbc/travscrape/models"
	"github.com/padraicbc/travscrape/parse"
)

// StartList extracts a start-list page. The horse cell is the mobile
// layout's slot when present; a struck-through horse cell marks a scratch.
func StartList(p Page) ([]models.StartListEntry, error) {
	code, date, ok, err := raceDay(p)
	if err != nil {
		return nil, err
	}
	if !ok {
		zap.L().Info("startlist: no race-day header", zap.Strings("nav", p.NavTexts()))
		return nil, nil
	}

	var out []models.StartListEntry
	for _, sec := range p.Sections() {
		race, ok := RaceNumber(sec.Header)
		if !ok {
			continue
		}
		if len(sec.Rows) == 0 {
			zap.L().Debug("startlist: race without rows", zap.Int("race", race))
			continue
		}

		for _, row := range sec.Rows {
			hc, ok := slot(row, "mobilehorse", "horse")
			if !ok {
				continue
			}
			nr, rawName, ok := horse(hc)
			if !ok {
				continue
			}

			e := models.StartListEntry{
				Date:        date,
				TrackCode:   code,
				Race:        race,
				StartNumber: nr,
				HorseName:   parse.Name(rawName, parse.StartListHorse),
				Driver:      parse.Name(row["driver"].Text, parse.StartListDriver),
				Scratched:   hc.Struck,
			}
			e.Distance, e.Lane, _ = parse.Distance(row["trackName"].Text)
			out = append(out, e)
		}
	}
	return out, nil
}
