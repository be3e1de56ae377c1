package models

import (
	"fmt"

	"github.com/uptrace/bun"
)

// StartListEntry is one line of a race's start list.
type StartListEntry struct {
	bun.BaseModel `bun:"table:start_lists,alias:sl"`

	ID          int64  `bun:"id,pk,autoincrement" json:"id"`
	Date        int    `bun:"date,notnull,unique:start_lists_natural_key" json:"date"`
	TrackCode   string `bun:"track_code,type:varchar(20),notnull,unique:start_lists_natural_key" json:"trackCode"`
	Race        int    `bun:"race,notnull,unique:start_lists_natural_key" json:"race"`
	StartNumber int    `bun:"start_number,notnull,unique:start_lists_natural_key" json:"startNumber"`
	HorseName   string `bun:"horse_name,type:varchar(50),notnull" json:"horseName"`
	Lane        *int   `bun:"lane" json:"lane,omitempty"`
	Distance    *int   `bun:"distance" json:"distance,omitempty"`
	Driver      string `bun:"driver,type:varchar(120),notnull" json:"driver"`
	Scratched   bool   `bun:"scratched,notnull,default:false" json:"scratched"`
}

func (e *StartListEntry) Key() string {
	return fmt.Sprintf("startlist/%d/%s/%d/%d", e.Date, e.TrackCode, e.Race, e.StartNumber)
}
