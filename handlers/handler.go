package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/uptrace/bun"

	"github.com/padraicbc/travscrape/parse"
)

// Handler holds shared dependencies used by all route handlers.
type Handler struct {
	db     *bun.DB
	JWTKey []byte
	admins map[string]bool
}

// New creates a Handler. admins lists the usernames allowed to mint
// password hashes.
func New(db *bun.DB, jwtKey []byte, admins []string) *Handler {
	set := make(map[string]bool, len(admins))
	for _, a := range admins {
		if a = strings.ToLower(strings.TrimSpace(a)); a != "" {
			set[a] = true
		}
	}
	return &Handler{db: db, JWTKey: jwtKey, admins: set}
}

// dayParams reads the required date and track query parameters. The date
// is YYYYMMDD or YYYY-MM-DD.
func dayParams(c echo.Context) (int, string, error) {
	raw := c.QueryParam("date")
	track := strings.TrimSpace(c.QueryParam("track"))
	if raw == "" || track == "" {
		return 0, "", echo.NewHTTPError(http.StatusBadRequest, "missing date or track param")
	}
	date, err := parseDay(raw)
	if err != nil {
		return 0, "", err
	}
	return date, track, nil
}

func parseDay(raw string) (int, error) {
	if strings.Contains(raw, "-") {
		d, err := parse.ISODate(raw)
		if err != nil {
			return 0, echo.NewHTTPError(http.StatusBadRequest, "bad date param")
		}
		return d, nil
	}
	d, err := strconv.Atoi(raw)
	if err != nil || d < 10000101 || d > 99991231 {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "bad date param")
	}
	return d, nil
}
