package parse

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	purseLine   = regexp.MustCompile(`(?is)pris:\s*(.*?)\s*kr`)
	purseSplit  = regexp.MustCompile(`\s*[-–]\s*`)
	placedCount = regexp.MustCompile(`(?i)\(\s*(\d+)\s+prisplacerade\s*\)`)
	purseFloor  = regexp.MustCompile(`(?is)lägst\s+([\d. ]+?)\s*kr`)
)

// PurseSchedule is the prize money table of one race.
type PurseSchedule struct {
	// Prizes holds the purse per place, first place at index 0.
	Prizes []int
	// Placed is the "(N prisplacerade)" count, when given.
	Placed *int
	// Floor is the "Lägst N kr" amount paid beyond the listed places.
	Floor *int
}

// Purse reads a race's conditions text. The "Pris:" line, the placed count
// and the floor are found independently of each other.
func Purse(text string) PurseSchedule {
	t := hardSpaces.Replace(text)
	var ps PurseSchedule

	if m := purseLine.FindStringSubmatch(t); m != nil {
		for _, part := range purseSplit.Split(strings.TrimSpace(m[1]), -1) {
			if part == "" {
				continue
			}
			ps.Prizes = append(ps.Prizes, amount(part))
		}
	}
	if m := placedCount.FindStringSubmatch(t); m != nil {
		n, _ := strconv.Atoi(m[1])
		ps.Placed = &n
	}
	if m := purseFloor.FindStringSubmatch(t); m != nil {
		if n := amount(m[1]); n > 0 {
			ps.Floor = &n
		}
	}
	return ps
}

// ForPlacement returns the prize a horse earned for placement. Unplaced and
// unknown placements earn nothing; places past the table earn the floor.
func (ps PurseSchedule) ForPlacement(placement *int) int {
	if placement == nil || *placement == PlaceUnplaced || *placement <= 0 {
		return 0
	}
	if i := *placement - 1; i < len(ps.Prizes) {
		return ps.Prizes[i]
	}
	if ps.Floor != nil {
		return *ps.Floor
	}
	return 0
}

// amount parses "100.000" or "100 000" as 100000. Text that is not a
// number counts as 0 so later places keep their index.
func amount(s string) int {
	s = strings.NewReplacer(".", "", " ", "", "\n", "", "\r", "", "\t", "").Replace(s)
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return n
}
