package locale

import (
	"testing"

	"github.com/go-i2p/normtime/lib/normtime"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"
)

var (
	english = MustParse("en-US")
	german  = MustParse("de-DE")
)

func years(t *testing.T, n int64) normtime.Duration {
	t.Helper()
	d, err := normtime.Normyears(n)
	require.NoError(t, err)
	return d
}

func TestSupported(t *testing.T) {
	assert.Equal(t, []string{"en-US", "de-DE"}, Supported())
}

func TestNegotiation(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"", "en-US"},
		{"en-US", "en-US"},
		{"en-GB", "en-US"},
		{"de", "de-DE"},
		{"de-AT", "de-DE"},
		{"fr-CH, de;q=0.8", "de-DE"},
		{"fr", "en-US"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			l, err := Parse(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, l.catalog.Tag)
		})
	}

	l, err := New(language.German)
	require.NoError(t, err)
	assert.Equal(t, "de-DE", l.Tag().String())

	_, err = Parse("not a tag;;")
	assert.ErrorIs(t, err, ErrLocale)
}

func TestUnitName(t *testing.T) {
	assert := assert.New(t)

	assert.Equal("normyears", english.UnitName(normtime.Normyear, 2))
	assert.Equal("seconds", english.UnitName(normtime.Second, 0))
	assert.Equal("Normjahre", german.UnitName(normtime.Normyear, 2))
	assert.Equal("Sekunden", german.UnitName(normtime.Second, 2))
	assert.Equal("Normtag", german.UnitName(normtime.Normday, 1))
	assert.Equal("Stunde", german.UnitName(normtime.Hour, 1))
}

func TestFormatDuration(t *testing.T) {
	assert := assert.New(t)

	assert.Equal("1 second", english.FormatDuration(normtime.Seconds(1)))
	assert.Equal("10 seconds", english.FormatDuration(normtime.Seconds(10)))
	assert.Equal("1 Sekunde", german.FormatDuration(normtime.Seconds(1)))
	assert.Equal("10 Sekunden", german.FormatDuration(normtime.Seconds(10)))

	half, err := normtime.NewDuration(1, 500_000_000)
	require.NoError(t, err)
	assert.Equal("1.5 seconds", english.FormatDuration(half))
	assert.Equal("1,5 Sekunden", german.FormatDuration(half))

	quarter, err := normtime.NewDuration(0, -250_000_000)
	require.NoError(t, err)
	assert.Equal("-0,25 Sekunden", german.FormatDuration(quarter))
}

func TestFormatUnits(t *testing.T) {
	d := normtime.Seconds(90_005_000)
	short := normtime.Seconds(5_000)
	day, hour, minute := normtime.Normday, normtime.Hour, normtime.Minute

	tests := []struct {
		l     *Localizer
		d     normtime.Duration
		units []normtime.Unit
		want  string
	}{
		{english, d, []normtime.Unit{day}, "900 normdays"},
		{english, d, []normtime.Unit{day, hour}, "900 normdays 1 hour"},
		{english, d, []normtime.Unit{day, hour, minute}, "900 normdays 1 hour 23 minutes"},
		{german, d, []normtime.Unit{day}, "900 Normtage"},
		{german, d, []normtime.Unit{day, hour}, "900 Normtage 1 Stunde"},
		{german, d, []normtime.Unit{day, hour, minute}, "900 Normtage 1 Stunde 23 Minuten"},
		{english, short, []normtime.Unit{day, hour}, "1 hour"},
		{german, short, []normtime.Unit{day, hour, minute}, "1 Stunde 23 Minuten"},
		{german, normtime.Seconds(0), []normtime.Unit{day, hour}, "0 Stunden"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.l.FormatUnits(tt.d, tt.units...))
		})
	}

	assert.Equal(t, "900~Normtage 1~Stunde", german.JoinUnits(d, "~", " ", day, hour))
}

func TestRoughly(t *testing.T) {
	tests := []struct {
		years    int64
		specific string
		generic  string
	}{
		{-1, "Ungeboren", "Ungeboren"},
		{0, "Kleinkind", "Sehr jung"},
		{2, "Kleinkind", "Sehr jung"},
		{4, "Kind", "Jung"},
		{12, "Kind", "Jung"},
		{13, "Teenager", "An Reife gewonnen"},
		{19, "Teenager", "An Reife gewonnen"},
		{20, "Anfang 20", "Anfang 20"},
		{24, "Mitte 20", "Mitte 20"},
		{28, "Ende 20", "Ende 20"},
		{32, "Anfang 30", "Anfang 30"},
		{105, "Mitte 100", "Mitte 100"},
	}

	for _, tt := range tests {
		t.Run(tt.specific, func(t *testing.T) {
			d := years(t, tt.years)
			assert.Equal(t, tt.specific, german.Roughly(d, false))
			assert.Equal(t, tt.generic, german.Roughly(d, true))
		})
	}

	assert.Equal(t, "Early 20s", english.Roughly(years(t, 21), false))
	assert.Equal(t, "Late 40s", english.Roughly(years(t, 47), true))
	assert.Equal(t, "Toddler", english.Roughly(normtime.Seconds(-1), false))
}

func TestLabel(t *testing.T) {
	assert.Equal(t, "Normzeit", german.Label("normtime"))
	assert.Equal(t, "Civil", english.Label("civil"))
	assert.Equal(t, "nope", english.Label("nope"))
}

func TestParseCatalog(t *testing.T) {
	_, err := ParseCatalog([]byte("tag: en-US\nunits: {}\n"))
	assert.ErrorIs(t, err, ErrCatalog)

	_, err = ParseCatalog([]byte("tag: [\n"))
	assert.ErrorIs(t, err, ErrCatalog)

	_, err = ParseCatalog([]byte("tag: \"12345\"\n"))
	assert.ErrorIs(t, err, ErrCatalog)
}
