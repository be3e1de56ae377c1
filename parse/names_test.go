package parse

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestName(t *testing.T) {
	cases := []struct {
		name  string
		in    string
		rules NameRules
		want  string
	}{
		{name: "sire dam", in: "Don Fanucci Zet (Hard Livin - Zeta)", rules: HorseName, want: "Don Fanucci Zet"},
		{name: "apostrophes", in: "Mister O’Neil's*", rules: HorseName, want: "Mister ONeils"},
		{name: "whitespace", in: "  Örjan   Kihlström ", rules: ResultDriver, want: "Örjan Kihlström"},
		{name: "driver max", in: strings.Repeat("a", 100), rules: ResultDriver, want: strings.Repeat("a", 80)},
		{name: "start list driver max", in: strings.Repeat("b", 130), rules: StartListDriver, want: strings.Repeat("b", 120)},
		{name: "start list suffix", in: "Don Fanucci Zet  SE 5 v*", rules: StartListHorse, want: "DON FANUCCI ZET"},
		{name: "start list parens", in: "Stoletheshow (US) 8 år h", rules: StartListHorse, want: "STOLETHESHOW"},
		{name: "start list short", in: "Ola", rules: StartListHorse, want: "OLA"},
		{name: "horse max", in: strings.Repeat("å", 60), rules: HorseName, want: strings.Repeat("å", 50)},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, Name(tc.in, tc.rules))
		})
	}
}

func TestFitIsIdempotent(t *testing.T) {
	in := "  Björn   Goop  "
	once := Fit(in, 5)
	require.Equal(t, "Björn", once)
	require.Equal(t, once, Fit(once, 5))
}
