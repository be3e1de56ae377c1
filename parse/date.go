package parse

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ErrUnknownMonth is returned when a date's month token is not a Swedish
// month name. It signals a broken parsing assumption, not a missing page.
var ErrUnknownMonth = errors.New("unknown month name")

var swedishMonths = map[string]int{
	"JANUARI": 1, "FEBRUARI": 2, "MARS": 3, "APRIL": 4, "MAJ": 5, "JUNI": 6,
	"JULI": 7, "AUGUSTI": 8, "SEPTEMBER": 9, "OKTOBER": 10, "NOVEMBER": 11,
	"DECEMBER": 12,
}

// MonthNames lists the month table's keys in calendar order.
func MonthNames() []string {
	out := make([]string, 12)
	for name, m := range swedishMonths {
		out[m-1] = name
	}
	return out
}

// Date converts "27 FEBRUARI 2026" or "FREDAG 27 FEBRUARI 2026" to 20260227.
func Date(text string) (int, error) {
	parts := strings.Fields(strings.ToUpper(CleanCell(text)))
	switch len(parts) {
	case 4:
		parts = parts[1:]
	case 3:
	default:
		return 0, fmt.Errorf("date %q: want 3 or 4 words, got %d", text, len(parts))
	}

	month, ok := swedishMonths[parts[1]]
	if !ok {
		return 0, fmt.Errorf("date %q: %w: %s", text, ErrUnknownMonth, parts[1])
	}
	day, err := strconv.Atoi(parts[0])
	if err != nil || day < 1 || day > 31 {
		return 0, fmt.Errorf("date %q: bad day %q", text, parts[0])
	}
	year, err := strconv.Atoi(parts[2])
	if err != nil || year < 1000 || year > 9999 {
		return 0, fmt.Errorf("date %q: bad year %q", text, parts[2])
	}
	return year*10000 + month*100 + day, nil
}

// ISODate converts "2025-09-01" to 20250901.
func ISODate(text string) (int, error) {
	t, err := time.Parse("2006-01-02", strings.TrimSpace(text))
	if err != nil {
		return 0, fmt.Errorf("iso date %q: %w", text, err)
	}
	return DateInt(t), nil
}

// DateInt returns t's calendar date as YYYYMMDD.
func DateInt(t time.Time) int {
	return t.Year()*10000 + int(t.Month())*100 + t.Day()
}
