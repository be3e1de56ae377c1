// Package parse turns cell text scraped from travsport race-day pages into
// typed values. Every function here is pure and safe for concurrent use.
package parse

// Reserved values shared with the persisted tables. They must round-trip
// through storage unchanged.
const (
	// PlaceUnplaced marks a disqualified, scratched or otherwise unplaced horse.
	PlaceUnplaced = 99
	// PlaceRemapped replaces a "0" or "9" placement from the source data.
	PlaceRemapped = 15
	// PlaceNotRun is the placement a start-list pass seeds for a race that has
	// not been run yet.
	PlaceNotRun = 0

	// TimeDidNotFinish marks a distanced, withdrawn or walkover finish.
	TimeDidNotFinish = 99.0

	// OddsUnknown is stored until a concrete odds value has been seen.
	OddsUnknown = 999
)
