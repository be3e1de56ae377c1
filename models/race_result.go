package models

import (
	"fmt"

	"github.com/uptrace/bun"
)

// RaceResult is one horse's result in one race. Natural key: date,
// track_code, race, horse_name. Start numbers move when horses are scratched,
// so they are not part of it.
type RaceResult struct {
	bun.BaseModel `bun:"table:race_results,alias:rr"`

	ID          int64    `bun:"id,pk,autoincrement" json:"id"`
	Date        int      `bun:"date,notnull,unique:race_results_natural_key" json:"date"`
	TrackCode   string   `bun:"track_code,type:varchar(20),notnull,unique:race_results_natural_key" json:"trackCode"`
	Race        int      `bun:"race,notnull,unique:race_results_natural_key" json:"race"`
	HorseName   string   `bun:"horse_name,type:varchar(50),notnull,unique:race_results_natural_key" json:"horseName"`
	StartNumber int      `bun:"start_number,notnull" json:"startNumber"`
	Distance    *int     `bun:"distance" json:"distance,omitempty"`
	Lane        *int     `bun:"lane" json:"lane,omitempty"`
	Surface     string   `bun:"surface,type:varchar(2),notnull" json:"surface"`
	Placement   *int     `bun:"placement" json:"placement,omitempty"`
	FinishTime  *float64 `bun:"finish_time" json:"finishTime,omitempty"`
	StartMethod string   `bun:"start_method,type:varchar(1),notnull" json:"startMethod"`
	Gallop      string   `bun:"gallop,type:varchar(1),notnull" json:"gallop"`
	Driver      string   `bun:"driver,type:varchar(80),notnull" json:"driver"`
	Prize       int      `bun:"prize,notnull" json:"prize"`
	Odds        int      `bun:"odds,notnull" json:"odds"`
}

// Key renders the natural key for logs and advisory locks.
func (r *RaceResult) Key() string {
	return fmt.Sprintf("result/%d/%s/%d/%s", r.Date, r.TrackCode, r.Race, r.HorseName)
}
