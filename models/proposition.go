package models

import (
	"fmt"

	"github.com/uptrace/bun"
)

// Proposition is one horse nominated to a proposition sheet.
type Proposition struct {
	bun.BaseModel `bun:"table:propositions,alias:p"`

	ID                int64   `bun:"id,pk,autoincrement" json:"id"`
	Date              int     `bun:"date,notnull,unique:propositions_natural_key" json:"date"`
	TrackCode         string  `bun:"track_code,type:varchar(20),notnull,unique:propositions_natural_key" json:"trackCode"`
	HorseName         string  `bun:"horse_name,type:varchar(50),notnull,unique:propositions_natural_key" json:"horseName"`
	Number            int     `bun:"number,notnull,unique:propositions_natural_key" json:"number"`
	Distance          *int    `bun:"distance" json:"distance,omitempty"`
	DriverPreferences *string `bun:"driver_preferences,type:varchar(120)" json:"driverPreferences,omitempty"`
}

func (p *Proposition) Key() string {
	return fmt.Sprintf("proposition/%d/%s/%d/%s", p.Date, p.TrackCode, p.Number, p.HorseName)
}
