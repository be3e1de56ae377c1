package parse

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	spaceRun   = regexp.MustCompile(`\s+`)
	hardSpaces = strings.NewReplacer("\u00a0", " ", "\u202f", " ", "\u2009", " ")
)

// CleanCell turns non-breaking spaces into ordinary ones, collapses runs of
// whitespace and trims the result.
func CleanCell(s string) string {
	s = hardSpaces.Replace(s)
	return strings.TrimSpace(spaceRun.ReplaceAllString(s, " "))
}

// fold strips combining marks after NFKD decomposition, so "ÅMÅL" becomes
// "AMAL". Anything left outside ASCII is dropped.
func fold(s string) string {
	// Chains hold state; build one per call.
	t := transform.Chain(norm.NFKD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		out = s
	}
	return strings.Map(func(r rune) rune {
		if r > unicode.MaxASCII {
			return -1
		}
		return r
	}, out)
}

// truncate cuts s to at most n runes.
func truncate(s string, n int) string {
	if n <= 0 {
		return s
	}
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}

// titleCase upper-cases the first rune and lower-cases the rest.
func titleCase(s string) string {
	r := []rune(strings.ToLower(s))
	if len(r) == 0 {
		return ""
	}
	r[0] = unicode.ToUpper(r[0])
	return string(r)
}
