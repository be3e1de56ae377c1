package extract

import (
	"errors"

	"go.uber.org/zap"

	"github.com/padraicbc/travscrape/models"
	"github.com/padraicbc/travscrape/parse"
)

func isUnknownMonth(err error) bool { return errors.Is(err, parse.ErrUnknownMonth) }

// Results extracts a results page. A page without a header or without
// any race section yields no rows and no error.
func Results(p Page) ([]models.RaceResult, error) {
	code, date, ok, err := raceDay(p)
	if err != nil {
		return nil, err
	}
	if !ok {
		zap.L().Info("results: no race-day header", zap.Strings("nav", p.NavTexts()))
		return nil, nil
	}

	var out []models.RaceResult
	for _, sec := range p.Sections() {
		race, ok := RaceNumber(sec.Header)
		if !ok {
			continue
		}
		if len(sec.Rows) == 0 {
			zap.L().Debug("results: race without rows", zap.Int("race", race))
			continue
		}
		purse := parse.Purse(sec.Info)

		for _, row := range sec.Rows {
			hc, ok := slot(row, "horse")
			if !ok {
				continue
			}
			nr, rawName, ok := horse(hc)
			if !ok {
				continue
			}
			name := parse.Name(rawName, parse.HorseName)
			if name == "" {
				continue
			}

			r := models.RaceResult{
				Date:        date,
				TrackCode:   code,
				Race:        race,
				HorseName:   name,
				StartNumber: nr,
				Driver:      parse.Name(row["driver"].Text, parse.ResultDriver),
				Placement:   parse.Placement(row["placementDisplay"].Text),
				Odds:        parse.Odds(row["odds"].Text),
			}
			r.Distance, r.Lane, r.Surface = parse.Distance(row["startPositionAndDistance"].Text)
			r.FinishTime, r.StartMethod, r.Gallop = parse.FinishTime(row["time"].Text)
			r.Prize = purse.ForPlacement(r.Placement)
			out = append(out, r)
		}
	}
	return out, nil
}
