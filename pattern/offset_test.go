package pattern

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/theory/chrono/zone"
)

func TestOffsetFormat(t *testing.T) {
	t.Parallel()
	a := assert.New(t)

	p := GeneralOffset()
	for _, tc := range []struct {
		seconds int
		want    string
	}{
		{0, "Z"},
		{3600, "+01"},
		{18000, "+05"},
		{19800, "+05:30"},
		{19830, "+05:30:30"},
		{-3600, "-01"},
		{-28800, "-08"},
		{-34200, "-09:30"},
	} {
		tc := tc
		a.Equal(tc.want, p.Format(zone.OffsetFromSeconds(tc.seconds)))
	}
}

func TestOffsetParse(t *testing.T) {
	t.Parallel()
	a := assert.New(t)
	r := require.New(t)

	p := GeneralOffset()
	for _, tc := range []struct {
		text string
		want int
	}{
		{"Z", 0},
		{"+00", 0},
		{"+05", 18000},
		{"+05:30", 19800},
		{"+05:30:30", 19830},
		{"+05:30:30.123", 19830}, // fraction consumed, discarded
		{"-08", -28800},
		{"-08:45", -31500},
		{"+18", 64800},
	} {
		tc := tc
		t.Run(tc.text, func(t *testing.T) {
			t.Parallel()
			got, err := p.Parse(tc.text)
			r.NoError(err)
			a.Equal(zone.OffsetFromSeconds(tc.want), got)
		})
	}
}

func TestOffsetParseErrors(t *testing.T) {
	t.Parallel()

	p := GeneralOffset()
	for _, text := range []string{
		"", "5", "+5", "+19", "05:30", "+05x", "+05:30x", "+05:61", "+05:30:30.x",
	} {
		text := text
		t.Run(text, func(t *testing.T) {
			t.Parallel()
			_, err := p.Parse(text)
			require.ErrorIs(t, err, ErrParse)
		})
	}
}

// TestOffsetRoundTrip formats then parses every distinct shape.
func TestOffsetRoundTrip(t *testing.T) {
	t.Parallel()
	a := assert.New(t)
	r := require.New(t)

	p := GeneralOffset()
	for _, seconds := range []int{0, 3600, -3600, 19800, -19800, 19830, 64800, -64800} {
		o := zone.OffsetFromSeconds(seconds)
		got, err := p.Parse(p.Format(o))
		r.NoError(err)
		a.Equal(o, got)
	}
}
