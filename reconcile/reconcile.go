// Package reconcile merges freshly scraped rows into stored records without
// letting a later, poorer scrape undo what an earlier one learned.
package reconcile

import (
	"github.com/padraicbc/travscrape/models"
	"github.com/padraicbc/travscrape/parse"
)

// Action is what the store must do with a reconciled row.
type Action int

const (
	NoOp Action = iota
	Insert
	Update
)

func (a Action) String() string {
	switch a {
	case Insert:
		return "insert"
	case Update:
		return "update"
	default:
		return "noop"
	}
}

// Decision describes the write for one row. Columns lists the changed
// columns of an Update and is empty otherwise.
type Decision struct {
	Action  Action
	Columns []string
}

// Source tells Result which pass produced the fresh row.
type Source int

const (
	FromResults Source = iota
	FromStartList
)

// Column widths of the stored tables.
const (
	horseNameLen       = 50
	resultDriverLen    = 80
	startListDriverLen = 120
	driverPrefsLen     = 120
	surfaceLen         = 2
)

// Result reconciles a race result. A start-list seed only fills placement
// while the stored one is unset, 0 or 99, and never touches odds or prize.
// Odds only ever move from OddsUnknown to a concrete value.
func Result(fresh models.RaceResult, existing *models.RaceResult, src Source) (models.RaceResult, Decision) {
	fresh.HorseName = parse.Fit(fresh.HorseName, horseNameLen)
	fresh.Driver = parse.Fit(fresh.Driver, resultDriverLen)
	fresh.Surface = parse.Fit(fresh.Surface, surfaceLen)
	if fresh.Odds == 0 {
		fresh.Odds = parse.OddsUnknown
	}

	if existing == nil {
		return fresh, Decision{Action: Insert}
	}

	rec := *existing
	d := &differ{}
	d.int("start_number", &rec.StartNumber, fresh.StartNumber)
	d.intPtr("distance", &rec.Distance, fresh.Distance)
	d.intPtr("lane", &rec.Lane, fresh.Lane)
	if fresh.Driver != "" {
		d.str("driver", &rec.Driver, fresh.Driver)
	}

	switch src {
	case FromStartList:
		if placementIsSeed(rec.Placement) {
			d.intPtr("placement", &rec.Placement, fresh.Placement)
		}
	default:
		d.str("surface", &rec.Surface, fresh.Surface)
		d.str("start_method", &rec.StartMethod, fresh.StartMethod)
		d.str("gallop", &rec.Gallop, fresh.Gallop)
		d.floatPtr("finish_time", &rec.FinishTime, fresh.FinishTime)
		if fresh.Placement != nil {
			d.intPtr("placement", &rec.Placement, fresh.Placement)
			d.int("prize", &rec.Prize, fresh.Prize)
		}
		if rec.Odds == parse.OddsUnknown && fresh.Odds != parse.OddsUnknown {
			d.int("odds", &rec.Odds, fresh.Odds)
		}
	}
	return rec, d.decision()
}

// SeedResult builds the race result a start-list entry implies for a race
// that has not been run yet.
func SeedResult(e models.StartListEntry) models.RaceResult {
	placement := parse.PlaceNotRun
	if e.Scratched {
		placement = parse.PlaceUnplaced
	}
	return models.RaceResult{
		Date:        e.Date,
		TrackCode:   e.TrackCode,
		Race:        e.Race,
		StartNumber: e.StartNumber,
		HorseName:   e.HorseName,
		Distance:    e.Distance,
		Lane:        e.Lane,
		Placement:   &placement,
		Driver:      parse.Fit(e.Driver, resultDriverLen),
		Odds:        parse.OddsUnknown,
	}
}

// StartList reconciles a start-list entry keyed by start number.
func StartList(fresh models.StartListEntry, existing *models.StartListEntry) (models.StartListEntry, Decision) {
	fresh.HorseName = parse.Fit(fresh.HorseName, horseNameLen)
	fresh.Driver = parse.Fit(fresh.Driver, startListDriverLen)

	if existing == nil {
		return fresh, Decision{Action: Insert}
	}

	rec := *existing
	d := &differ{}
	if fresh.HorseName != "" {
		d.str("horse_name", &rec.HorseName, fresh.HorseName)
	}
	d.intPtr("lane", &rec.Lane, fresh.Lane)
	d.intPtr("distance", &rec.Distance, fresh.Distance)
	if fresh.Driver != "" {
		d.str("driver", &rec.Driver, fresh.Driver)
	}
	if rec.Scratched != fresh.Scratched {
		rec.Scratched = fresh.Scratched
		d.cols = append(d.cols, "scratched")
	}
	return rec, d.decision()
}

// Proposition reconciles a proposition nomination.
func Proposition(fresh models.Proposition, existing *models.Proposition) (models.Proposition, Decision) {
	fresh.HorseName = parse.Fit(fresh.HorseName, horseNameLen)
	if fresh.DriverPreferences != nil {
		prefs := parse.Fit(*fresh.DriverPreferences, driverPrefsLen)
		fresh.DriverPreferences = &prefs
		if prefs == "" {
			fresh.DriverPreferences = nil
		}
	}

	if existing == nil {
		return fresh, Decision{Action: Insert}
	}

	rec := *existing
	d := &differ{}
	d.intPtr("distance", &rec.Distance, fresh.Distance)
	if fresh.DriverPreferences != nil && (rec.DriverPreferences == nil || *rec.DriverPreferences != *fresh.DriverPreferences) {
		rec.DriverPreferences = fresh.DriverPreferences
		d.cols = append(d.cols, "driver_preferences")
	}
	return rec, d.decision()
}

func placementIsSeed(p *int) bool {
	return p == nil || *p == parse.PlaceNotRun || *p == parse.PlaceUnplaced
}

// differ copies changed values into a record and remembers their columns.
// A nil fresh pointer never clears a stored value.
type differ struct {
	cols []string
}

func (d *differ) decision() Decision {
	if len(d.cols) == 0 {
		return Decision{Action: NoOp}
	}
	return Decision{Action: Update, Columns: d.cols}
}

func (d *differ) str(col string, dst *string, v string) {
	if *dst != v {
		*dst = v
		d.cols = append(d.cols, col)
	}
}

func (d *differ) int(col string, dst *int, v int) {
	if *dst != v {
		*dst = v
		d.cols = append(d.cols, col)
	}
}

func (d *differ) intPtr(col string, dst **int, v *int) {
	if v == nil {
		return
	}
	if *dst == nil || **dst != *v {
		n := *v
		*dst = &n
		d.cols = append(d.cols, col)
	}
}

func (d *differ) floatPtr(col string, dst **float64, v *float64) {
	if v == nil {
		return
	}
	if *dst == nil || **dst != *v {
		f := *v
		*dst = &f
		d.cols = append(d.cols, col)
	}
}
