package parse

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTrackCodeKnownNames(t *testing.T) {
	for name, code := range trackCodes {
		require.Equal(t, code, TrackCode(name), name)
		require.Equal(t, code, TrackCode(fold(name)), "folded %s", name)
	}
}

func TestTrackCode(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{name: "lower case", in: "solvalla", want: "S"},
		{name: "nbsp and padding", in: "  Göteborg Trav ", want: "Gt"},
		{name: "classifier prefix", in: "TÄVLINGSDAG ESKILSTUNA", want: "E"},
		{name: "dag prefix", in: "Dag Umåker", want: "U"},
		{name: "prefix alone is a name", in: "DAG", want: "Da"},
		{name: "ascii fallback", in: "Jagersro", want: "J"},
		{name: "icon noise", in: "🏇 Färjestad • V64", want: "F"},
		{name: "sentence", in: "Travtävling på Åmål idag", want: "Åm"},
		{name: "folded noise", in: "** Ostersund **", want: "Ös"},
		{name: "unknown", in: "Jarlsberg", want: "Ja"},
		{name: "unknown accented", in: "ÆRØ", want: "Ær"},
		{name: "empty", in: "", want: ""},
		{name: "blank", in: " \u00a0 ", want: ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, TrackCode(tc.in))
		})
	}
}

func TestTrackCodeIsDeterministic(t *testing.T) {
	first := TrackCode("Bjerke travbane")
	for i := 0; i < 10; i++ {
		require.Equal(t, first, TrackCode("Bjerke travbane"))
	}
	require.Len(t, []rune(first), 2)
}

func TestExtractTrackCodePrefersLongestName(t *testing.T) {
	code, ok := ExtractTrackCode("GÖTEBORG TRAV 12 MARS")
	require.True(t, ok)
	require.Equal(t, "Gt", code)

	_, ok = ExtractTrackCode("1234 !!")
	require.False(t, ok)
}
