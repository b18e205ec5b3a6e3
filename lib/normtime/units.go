package normtime

import (
	"strings"

	"github.com/samber/oops"
)

// Fixed relationships between seconds and the Normtime units.
const (
	SecondsPerMinute    int64 = 60
	SecondsPerHour      int64 = 3_600
	SecondsPerNormday   int64 = 100_000
	SecondsPerNormweek  int64 = 1_000_000
	SecondsPerNormmonth int64 = 3_000_000
	SecondsPerNormyear  int64 = 30_000_000

	// SecondsPerTerrayear is the length of a Julian earth year.
	SecondsPerTerrayear int64 = 31_557_600

	// SecondsPerCivilDay is the length of a Gregorian day without leap seconds.
	SecondsPerCivilDay int64 = 86_400

	// EpochOffset is the number of seconds between the Unix epoch
	// (1970-01-01T00:00:00) and the Normtime epoch (2068-01-01T00:00:00).
	EpochOffset int64 = 3_092_601_600
)

const (
	// MonthsPerNormyear is the number of normmonths in a normyear.
	MonthsPerNormyear = 10

	// NormdaysPerNormmonth is the number of normdays in every normmonth.
	NormdaysPerNormmonth = 30
)

// Unit is a Normtime unit of elapsed time.
type Unit int

const (
	Normyear Unit = iota
	Normmonth
	Normweek
	Normday
	Hour
	Minute
	Second
)

var unitTable = [...]struct {
	seconds  int64
	plural   string
	singular string
	symbol   string
}{
	Normyear:  {SecondsPerNormyear, "normyears", "normyear", "y"},
	Normmonth: {SecondsPerNormmonth, "normmonths", "normmonth", "m"},
	Normweek:  {SecondsPerNormweek, "normweeks", "normweek", "w"},
	Normday:   {SecondsPerNormday, "normdays", "normday", "d"},
	Hour:      {SecondsPerHour, "hours", "hour", "h"},
	Minute:    {SecondsPerMinute, "minutes", "minute", "min"},
	Second:    {1, "seconds", "second", "s"},
}

// Units returns every unit, largest first.
func Units() []Unit {
	return []Unit{Normyear, Normmonth, Normweek, Normday, Hour, Minute, Second}
}

// Valid reports whether u is one of the defined units.
func (u Unit) Valid() bool {
	return u >= Normyear && u <= Second
}

// Seconds returns the length of one u in seconds.
func (u Unit) Seconds() int64 {
	if !u.Valid() {
		return 0
	}
	return unitTable[u].seconds
}

// String returns the plural English name of the unit, e.g. "normyears".
func (u Unit) String() string {
	if !u.Valid() {
		return "unknown"
	}
	return unitTable[u].plural
}

// Singular returns the singular English name of the unit, e.g. "normyear".
func (u Unit) Singular() string {
	if !u.Valid() {
		return "unknown"
	}
	return unitTable[u].singular
}

// Symbol returns the short symbol of the unit, e.g. "y" or "min".
func (u Unit) Symbol() string {
	if !u.Valid() {
		return "?"
	}
	return unitTable[u].symbol
}

// Name returns the singular name when n is 1 and the plural name otherwise.
func (u Unit) Name(n int64) string {
	if n == 1 {
		return u.Singular()
	}
	return u.String()
}

// ParseUnit parses a unit name. Singular and plural forms are accepted, the
// "norm" prefix is optional, symbols are accepted and case is ignored, so
// "Normdays", "normday", "days", "day" and "d" all name Normday.
func ParseUnit(s string) (Unit, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	name = strings.TrimPrefix(name, "norm")
	for u := range unitTable {
		if name == strings.TrimPrefix(unitTable[u].plural, "norm") ||
			name == strings.TrimPrefix(unitTable[u].singular, "norm") ||
			name == unitTable[u].symbol {
			return Unit(u), nil
		}
	}
	switch name {
	case "mins":
		return Minute, nil
	case "sec", "secs":
		return Second, nil
	}
	log.WithField("unit", s).Debug("unknown unit name")
	return 0, oops.Wrapf(ErrParse, "cannot parse %q as unit", s)
}
