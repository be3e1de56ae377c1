package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/padraicbc/travscrape/models"
)

// StartList returns one race day's start list ordered by race and start
// number. Scratched horses are included and flagged.
func (h *Handler) StartList(c echo.Context) error {
	date, track, err := dayParams(c)
	if err != nil {
		return err
	}

	rows := []models.StartListEntry{}
	err = h.db.NewSelect().
		Model(&rows).
		Where("date = ?", date).
		Where("track_code = ?", track).
		OrderExpr("race ASC, start_number ASC").
		Scan(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, rows)
}
