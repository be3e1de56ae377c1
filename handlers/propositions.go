package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/padraicbc/travscrape/models"
)

type propositionData struct {
	Number   int                  `json:"number"`
	Distance *int                 `json:"distance,omitempty"`
	Horses   []models.Proposition `json:"horses"`
}

// Propositions returns one race day's nominations grouped by proposition
// number.
func (h *Handler) Propositions(c echo.Context) error {
	date, track, err := dayParams(c)
	if err != nil {
		return err
	}

	var rows []models.Proposition
	err = h.db.NewSelect().
		Model(&rows).
		Where("date = ?", date).
		Where("track_code = ?", track).
		OrderExpr("number ASC, horse_name ASC").
		Scan(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	out := []propositionData{}
	for _, p := range rows {
		if n := len(out); n == 0 || out[n-1].Number != p.Number {
			out = append(out, propositionData{Number: p.Number, Distance: p.Distance})
		}
		last := &out[len(out)-1]
		if last.Distance == nil {
			last.Distance = p.Distance
		}
		last.Horses = append(last.Horses, p)
	}
	return c.JSON(http.StatusOK, out)
}
