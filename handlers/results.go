package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/padraicbc/travscrape/db"
	"github.com/padraicbc/travscrape/models"
)

type resultRunner struct {
	ID          int64    `json:"id"`
	StartNumber int      `json:"startNumber"`
	HorseName   string   `json:"horseName"`
	Placement   *int     `json:"placement,omitempty"`
	FinishTime  *float64 `json:"finishTime,omitempty"`
	StartMethod string   `json:"startMethod,omitempty"`
	Gallop      string   `json:"gallop,omitempty"`
	Lane        *int     `json:"lane,omitempty"`
	Driver      string   `json:"driver"`
	Prize       int      `json:"prize"`
	Odds        int      `json:"odds"`
}

type resultRace struct {
	Date      int            `json:"date"`
	TrackCode string         `json:"trackCode"`
	Race      int            `json:"race"`
	Distance  *int           `json:"distance,omitempty"`
	Surface   string         `json:"surface,omitempty"`
	Runners   []resultRunner `json:"runners"`
}

// Dates returns the most recent race days that have results.
func (h *Handler) Dates(c echo.Context) error {
	var dates []int
	err := h.db.NewSelect().
		Model((*models.RaceResult)(nil)).
		ColumnExpr("DISTINCT date").
		OrderExpr("date DESC").
		Limit(120).
		Scan(c.Request().Context(), &dates)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if dates == nil {
		dates = []int{}
	}
	return c.JSON(http.StatusOK, dates)
}

// Tracks returns the track codes that raced on a date.
func (h *Handler) Tracks(c echo.Context) error {
	raw := c.QueryParam("date")
	if raw == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "missing date param")
	}
	date, err := parseDay(raw)
	if err != nil {
		return err
	}

	var codes []string
	err = h.db.NewSelect().
		Model((*models.RaceResult)(nil)).
		ColumnExpr("DISTINCT track_code").
		Where("date = ?", date).
		OrderExpr("track_code ASC").
		Scan(c.Request().Context(), &codes)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if codes == nil {
		codes = []string{}
	}
	return c.JSON(http.StatusOK, codes)
}

// Results returns one race day's results, grouped by race.
func (h *Handler) Results(c echo.Context) error {
	date, track, err := dayParams(c)
	if err != nil {
		return err
	}

	rows, err := db.NewStore(h.db, zap.L()).Results(c.Request().Context(), date, track)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, groupResultsByRace(rows))
}

// groupResultsByRace converts flat rows into race-grouped slices, keeping
// the order races first appear in.
func groupResultsByRace(rows []models.RaceResult) []resultRace {
	order := []int{}
	races := map[int]*resultRace{}

	for _, row := range rows {
		runner := resultRunner{
			ID:          row.ID,
			StartNumber: row.StartNumber,
			HorseName:   row.HorseName,
			Placement:   row.Placement,
			FinishTime:  row.FinishTime,
			StartMethod: row.StartMethod,
			Gallop:      row.Gallop,
			Lane:        row.Lane,
			Driver:      row.Driver,
			Prize:       row.Prize,
			Odds:        row.Odds,
		}

		race, ok := races[row.Race]
		if !ok {
			order = append(order, row.Race)
			race = &resultRace{
				Date:      row.Date,
				TrackCode: row.TrackCode,
				Race:      row.Race,
				Distance:  row.Distance,
				Surface:   row.Surface,
				Runners:   []resultRunner{},
			}
			races[row.Race] = race
		}
		race.Runners = append(race.Runners, runner)
	}

	out := make([]resultRace, 0, len(order))
	for _, k := range order {
		out = append(out, *races[k])
	}
	return out
}
