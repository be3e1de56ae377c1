package parse

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"unicode"
)

var (
	laneDistance = regexp.MustCompile(`^(\d{1,2})\s*/\s*(\d[\d, ]*?)\s*([A-Za-z]*)$`)
	distanceLane = regexp.MustCompile(`^(\d[\d, ]*?)\s*:\s*(\d{1,2})$`)
	bareDistance = regexp.MustCompile(`^(\d[\d, ]*?)\s*(?:m)?$`)

	nonPlaceChars = regexp.MustCompile(`[^0-9a-zåäö]`)
	placeWithR    = regexp.MustCompile(`^(\d{1,2})r$`)
	placeDigits   = regexp.MustCompile(`^\d{1,2}$`)

	timeValue = regexp.MustCompile(`(?:(\d+)\.)?(\d{1,2})[,.](\d{1,2})`)
	digitRun  = regexp.MustCompile(`\d+`)

	oddsDecimal = regexp.MustCompile(`^(\d+)[,.](\d+)$`)
	oddsInteger = regexp.MustCompile(`^\d+$`)
)

// unplacedTokens are the placement abbreviations that carry no rank.
var unplacedTokens = map[string]bool{"k": true, "p": true, "str": true, "d": true}

// nonFinishMarkers in a time cell mean the horse has no real finish time.
var nonFinishMarkers = []string{"dist", "kub", "vmk", "u", "d"}

// Distance parses the start position cell. Accepted shapes are "3/2140n"
// (lane, distance, surface), "2140:3" (distance, lane) and a bare "2140",
// which means lane 1. Anything else yields nil, nil, "".
func Distance(text string) (distance, lane *int, surface string) {
	t := CleanCell(text)
	if m := laneDistance.FindStringSubmatch(t); m != nil {
		d, l := number(m[2]), number(m[1])
		if d == nil || l == nil {
			return nil, nil, ""
		}
		return d, l, surfaceCode(m[3])
	}
	if m := distanceLane.FindStringSubmatch(t); m != nil {
		d, l := number(m[1]), number(m[2])
		if d == nil || l == nil {
			return nil, nil, ""
		}
		return d, l, ""
	}
	if m := bareDistance.FindStringSubmatch(t); m != nil {
		if d := number(m[1]); d != nil {
			return d, intPtr(1), ""
		}
	}
	return nil, nil, ""
}

func surfaceCode(s string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(s) {
		if r >= 'a' && r <= 'z' {
			b.WriteRune(r)
		}
	}
	return truncate(b.String(), 2)
}

// Placement maps a placement cell to a rank, PlaceUnplaced or PlaceRemapped.
// Text that is not a placement yields nil.
func Placement(text string) *int {
	fields := strings.Fields(strings.ToLower(CleanCell(text)))
	if len(fields) == 0 {
		return nil
	}
	t := nonPlaceChars.ReplaceAllString(fields[0], "")
	if m := placeWithR.FindStringSubmatch(t); m != nil {
		t = m[1]
	}
	if unplacedTokens[t] {
		return intPtr(PlaceUnplaced)
	}
	if !placeDigits.MatchString(t) {
		return nil
	}
	n, _ := strconv.Atoi(t)
	if n == 0 || n == 9 {
		return intPtr(PlaceRemapped)
	}
	return &n
}

// FinishTime parses a time cell such as "1.14,2a" or "14,5ag" into seconds
// and the auto-start and gallop flags. Non-finish annotations give
// TimeDidNotFinish.
func FinishTime(text string) (seconds *float64, startMethod, gallop string) {
	t := strings.NewReplacer("(", "", ")", "", " ", "").Replace(CleanCell(text))

	var letters strings.Builder
	for _, r := range t {
		if unicode.IsLetter(r) {
			letters.WriteRune(unicode.ToLower(r))
		}
	}
	flags := letters.String()
	if strings.Contains(flags, "a") {
		startMethod = "a"
	}
	if strings.Contains(flags, "g") {
		gallop = "g"
	}

	for _, marker := range nonFinishMarkers {
		if strings.Contains(flags, marker) {
			return floatPtr(TimeDidNotFinish), startMethod, gallop
		}
	}

	if m := timeValue.FindStringSubmatch(t); m != nil {
		secs, _ := strconv.Atoi(m[2])
		if m[1] != "" {
			mins, _ := strconv.Atoi(m[1])
			secs += mins * 60
		}
		v, err := strconv.ParseFloat(fmt.Sprintf("%d.%s", secs, m[3]), 64)
		if err == nil {
			return &v, startMethod, gallop
		}
	}

	if flags != "" {
		for _, run := range digitRun.FindAllString(t, -1) {
			if len(run) <= 2 {
				return floatPtr(TimeDidNotFinish), startMethod, gallop
			}
		}
	}
	return nil, startMethod, gallop
}

// Odds parses an odds cell. "45" stays 45 and "4,5" becomes 45; anything
// else is OddsUnknown.
func Odds(text string) int {
	t := strings.NewReplacer("(", "", ")", "", " ", "").Replace(CleanCell(text))
	if m := oddsDecimal.FindStringSubmatch(t); m != nil {
		v, err := strconv.ParseFloat(m[1]+"."+m[2], 64)
		if err == nil {
			return int(math.Round(v * 10))
		}
	}
	if oddsInteger.MatchString(t) {
		if n, err := strconv.Atoi(t); err == nil {
			return n
		}
	}
	return OddsUnknown
}

// number parses digits, ignoring thousands separators.
func number(s string) *int {
	s = strings.NewReplacer(",", "", " ", "", ".", "").Replace(s)
	n, err := strconv.Atoi(s)
	if err != nil {
		return nil
	}
	return &n
}

func intPtr(n int) *int { return &n }

func floatPtr(f float64) *float64 { return &f }
