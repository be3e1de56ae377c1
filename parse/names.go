package parse

import (
	"regexp"
	"strings"
)

// NameRules configures Name for one column of one pipeline.
type NameRules struct {
	MaxLen int
	// DropSuffix removes that many runes from the end before upper-casing.
	// The start-list rendering appends a fixed-width annotation to the name.
	DropSuffix int
	Upper      bool
	// AllParens strips every parenthetical instead of cutting at the first
	// opening parenthesis.
	AllParens bool
}

var (
	HorseName         = NameRules{MaxLen: 50}
	ResultDriver      = NameRules{MaxLen: 80}
	StartListDriver   = NameRules{MaxLen: 120}
	PropositionDriver = NameRules{MaxLen: 120}
	StartListHorse    = NameRules{MaxLen: 50, DropSuffix: 7, Upper: true, AllParens: true}
)

var (
	nameJunk    = strings.NewReplacer("*", "", "'", "", "’", "")
	parenthesis = regexp.MustCompile(`\([^)]*\)`)
)

// Name cleans a horse or driver name: sire/dam parentheticals, apostrophes
// and asterisks go, whitespace collapses, and the result is cut to
// rules.MaxLen runes.
func Name(text string, rules NameRules) string {
	s := nameJunk.Replace(CleanCell(text))
	if rules.AllParens {
		s = parenthesis.ReplaceAllString(s, "")
	} else if i := strings.Index(s, "("); i >= 0 {
		s = s[:i]
	}
	s = CleanCell(s)

	if rules.DropSuffix > 0 {
		if r := []rune(s); len(r) >= rules.DropSuffix {
			s = strings.TrimRight(string(r[:len(r)-rules.DropSuffix]), " ")
		}
	}
	if rules.Upper {
		s = strings.ToUpper(s)
	}
	return truncate(s, rules.MaxLen)
}

// Fit trims and cuts s to max runes. Unlike Name it is idempotent for every
// column, so it is safe to apply again when merging stored rows.
func Fit(s string, max int) string {
	return truncate(CleanCell(s), max)
}
