package locale

import (
	"strconv"
	"strings"
	"sync"

	"github.com/go-i2p/normtime/lib/normtime"
	"github.com/samber/oops"
	"golang.org/x/text/language"
)

const fallbackTag = "en-US"

var (
	loadOnce sync.Once
	catalogs []*Catalog
	matcher  language.Matcher
	loadErr  error
)

func load() error {
	loadOnce.Do(func() {
		catalogs, loadErr = loadCatalogs()
		if loadErr != nil {
			return
		}
		tags := make([]language.Tag, len(catalogs))
		for i, c := range catalogs {
			tags[i] = language.MustParse(c.Tag)
		}
		matcher = language.NewMatcher(tags)
	})
	return loadErr
}

// Supported returns the tags of the embedded catalogs, fallback first.
func Supported() []string {
	if load() != nil {
		return nil
	}
	out := make([]string, len(catalogs))
	for i, c := range catalogs {
		out[i] = c.Tag
	}
	return out
}

// Localizer renders Normtime values in one language.
type Localizer struct {
	tag     language.Tag
	catalog *Catalog
}

// New returns the Localizer whose catalog best matches the preferred
// tags. Without a usable match it falls back to en-US.
func New(preferred ...language.Tag) (*Localizer, error) {
	if err := load(); err != nil {
		return nil, err
	}
	_, index, confidence := matcher.Match(preferred...)
	if confidence == language.No {
		index = 0
	}
	c := catalogs[index]
	return &Localizer{tag: language.MustParse(c.Tag), catalog: c}, nil
}

// Parse returns the Localizer for a tag or an Accept-Language style list,
// e.g. "de", "de-AT" or "fr-CH, de;q=0.8".
func Parse(s string) (*Localizer, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return New()
	}
	tags, _, err := language.ParseAcceptLanguage(s)
	if err != nil {
		return nil, oops.Wrapf(ErrLocale, "%q: %v", s, err)
	}
	return New(tags...)
}

// MustParse is Parse for known-good tags. It panics on error.
func MustParse(s string) *Localizer {
	l, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return l
}

// Tag returns the language of the chosen catalog.
func (l *Localizer) Tag() language.Tag {
	return l.tag
}

// Label returns the translated label for key, or key itself when the
// catalog has none.
func (l *Localizer) Label(key string) string {
	if v, ok := l.catalog.Labels[key]; ok {
		return v
	}
	return key
}

// UnitName returns the name of u for a count of n, e.g. "Normtage".
func (l *Localizer) UnitName(u normtime.Unit, n int64) string {
	p, ok := l.catalog.Units[u.String()]
	if !ok {
		return u.Name(n)
	}
	return p.Pick(n)
}

// Number renders the seconds of d as an exact decimal with the
// language's decimal separator, e.g. "1,5".
func (l *Localizer) Number(d normtime.Duration) string {
	return strings.Replace(d.Decimal(), ".", l.catalog.Decimal, 1)
}

// FormatDuration renders d in seconds, e.g. "10 Sekunden".
func (l *Localizer) FormatDuration(d normtime.Duration) string {
	return l.Number(d) + " " + l.UnitName(normtime.Second, secondsCount(d))
}

// FormatUnits renders d in the given units, omitting zero terms:
// "900 Normtage 1 Stunde 23 Minuten".
func (l *Localizer) FormatUnits(d normtime.Duration, units ...normtime.Unit) string {
	return l.JoinUnits(d, " ", " ", units...)
}

// JoinUnits renders the display components of d, putting between inside
// a term and sep between terms.
func (l *Localizer) JoinUnits(d normtime.Duration, between, sep string, units ...normtime.Unit) string {
	cs := d.DisplayComponents(units...)
	parts := make([]string, len(cs))
	for i, c := range cs {
		parts[i] = strconv.FormatInt(c.N, 10) + between + l.UnitName(c.Unit, c.N)
	}
	return strings.Join(parts, sep)
}

// secondsCount is the count that picks the plural form of a second
// count. A fractional span is never singular.
func secondsCount(d normtime.Duration) int64 {
	if d.SubsecNanos() != 0 {
		return 0
	}
	return d.ToSeconds()
}
