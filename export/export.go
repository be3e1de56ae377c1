// Package export writes stored rows to spreadsheets.
package export

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"

	"github.com/padraicbc/travscrape/models"
)

var resultHeaders = []string{
	"datum", "bankod", "lopp", "nr", "namn", "distans", "spar", "underlag",
	"placering", "tid", "startmetod", "galopp", "kusk", "prissumma", "odds",
}

// Results writes one sheet of race results to path, one row per horse,
// named after the race day.
func Results(rows []models.RaceResult, path string) error {
	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	if len(rows) > 0 {
		name := fmt.Sprintf("%s %d", rows[0].TrackCode, rows[0].Date)
		if err := f.SetSheetName(sheet, name); err != nil {
			return err
		}
		sheet = name
	}

	for i, h := range resultHeaders {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(sheet, cell, h)
	}

	for i, row := range rows {
		r := i + 2
		set := func(col int, value any) {
			cell, _ := excelize.CoordinatesToCellName(col, r)
			_ = f.SetCellValue(sheet, cell, value)
		}

		set(1, row.Date)
		set(2, row.TrackCode)
		set(3, row.Race)
		set(4, row.StartNumber)
		set(5, row.HorseName)
		set(6, derefInt(row.Distance))
		set(7, derefInt(row.Lane))
		set(8, row.Surface)
		set(9, derefInt(row.Placement))
		set(10, derefFloat(row.FinishTime))
		set(11, row.StartMethod)
		set(12, row.Gallop)
		set(13, row.Driver)
		set(14, row.Prize)
		set(15, row.Odds)
	}

	if err := f.SetPanes(sheet, &excelize.Panes{Freeze: true, YSplit: 1, TopLeftCell: "A2", ActivePane: "bottomLeft"}); err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return f.SaveAs(path)
}

func derefFloat(v *float64) any {
	if v == nil {
		return ""
	}
	return *v
}

func derefInt(v *int) any {
	if v == nil {
		return ""
	}
	return *v
}
