package normtime

import (
	"time"

	"github.com/go-i2p/logger"
	"github.com/samber/oops"
)

const (
	daysPerEra = 146_097

	// civilDayShift is the number of days from 0000-03-01 to 1970-01-01.
	civilDayShift = 719_468

	// maxCivilYear bounds the civil years whose day count is computed
	// without overflow.
	maxCivilYear int64 = 25_000_000_000_000_000

	// maxStdYear bounds the years handed to the time package.
	maxStdYear int64 = 1_000_000_000
)

// Civil is a date and time of day in the proleptic Gregorian calendar, UTC.
type Civil struct {
	Year   int64
	Month  time.Month
	Day    int
	Hour   int
	Minute int
	Second int
}

// IsLeapYear reports whether year is a Gregorian leap year.
func IsLeapYear(year int64) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}

var monthDays = [...]int{31, 28, 31, 30, 31, 30, 31, 31, 30, 31, 30, 31}

// DaysInMonth returns the number of days in month of year, or 0 when month
// is not in January..December.
func DaysInMonth(year int64, month time.Month) int {
	if month < time.January || month > time.December {
		return 0
	}
	if month == time.February && IsLeapYear(year) {
		return 29
	}
	return monthDays[month-1]
}

// DaysToCivil converts a day count relative to 1970-01-01 into a Gregorian
// date. It is defined for every int64.
func DaysToCivil(days int64) (year int64, month time.Month, day int) {
	// Split into 400-year eras without multiplying, so MinInt64 is safe.
	era := floorDiv(days, daysPerEra)
	doe := floorMod(days, daysPerEra) + civilDayShift
	era += doe / daysPerEra
	doe %= daysPerEra

	yoe := (doe - doe/1460 + doe/36524 - doe/146096) / 365
	doy := doe - (365*yoe + yoe/4 - yoe/100)
	mp := (5*doy + 2) / 153
	d := doy - (153*mp+2)/5 + 1
	m := mp + 3
	if mp >= 10 {
		m = mp - 9
	}
	y := yoe + era*400
	if m <= 2 {
		y++
	}
	return y, time.Month(m), int(d)
}

// CivilToDays converts a valid Gregorian date into a day count relative to
// 1970-01-01. The result is unspecified for invalid dates or years beyond
// ±2.5e16.
func CivilToDays(year int64, month time.Month, day int) int64 {
	y := year
	m := int64(month)
	if m <= 2 {
		y--
	}
	era := floorDiv(y, 400)
	yoe := y - era*400
	mp := m - 3
	if m <= 2 {
		mp = m + 9
	}
	doy := (153*mp+2)/5 + int64(day) - 1
	doe := yoe*365 + yoe/4 - yoe/100 + doy
	return era*daysPerEra + doe - civilDayShift
}

// Validate reports ErrInvalidDate if c is not a real Gregorian date and
// time of day.
func (c Civil) Validate() error {
	if c.Month < time.January || c.Month > time.December ||
		c.Day < 1 || c.Day > DaysInMonth(c.Year, c.Month) ||
		c.Hour < 0 || c.Hour > 23 ||
		c.Minute < 0 || c.Minute > 59 ||
		c.Second < 0 || c.Second > 59 {
		log.WithFields(logger.Fields{
			"at":     "Civil.Validate",
			"civil":  c.String(),
			"reason": "field out of range",
		}).Debug("invalid civil date")
		return oops.Wrapf(ErrInvalidDate, "civil %s", c.String())
	}
	return nil
}

// String returns c as YYYY-MM-DDTHH:MM:SS.
func (c Civil) String() string {
	b := make([]byte, 0, 24)
	b = appendYear(b, c.Year)
	b = append(b, '-')
	b = appendTwo(b, int64(c.Month))
	b = append(b, '-')
	b = appendTwo(b, int64(c.Day))
	b = append(b, 'T')
	b = appendTwo(b, int64(c.Hour))
	b = append(b, ':')
	b = appendTwo(b, int64(c.Minute))
	b = append(b, ':')
	b = appendTwo(b, int64(c.Second))
	return string(b)
}

// ParseCivil parses YYYY-MM-DDTHH:MM:SS, or YYYY-MM-DD for midnight.
func ParseCivil(s string) (Civil, error) {
	f, err := scanFields(s, 'T')
	if err != nil {
		return Civil{}, err
	}
	c := Civil{
		Year:   f.year,
		Month:  time.Month(f.rest[0]),
		Day:    f.rest[1],
		Hour:   f.rest[2],
		Minute: f.rest[3],
		Second: f.rest[4],
	}
	if err := c.Validate(); err != nil {
		return Civil{}, err
	}
	return c, nil
}

// Time returns c as a UTC time.Time.
func (c Civil) Time() (time.Time, error) {
	if err := c.Validate(); err != nil {
		return time.Time{}, err
	}
	if c.Year > maxStdYear || c.Year < -maxStdYear {
		return time.Time{}, oops.Wrapf(ErrOutOfRange, "civil year %d beyond time.Time range", c.Year)
	}
	return time.Date(int(c.Year), c.Month, c.Day, c.Hour, c.Minute, c.Second, 0, time.UTC), nil
}

// CivilFromTime returns the civil fields of t in UTC. The sub-second part
// is dropped.
func CivilFromTime(t time.Time) Civil {
	t = t.UTC()
	return Civil{
		Year:   int64(t.Year()),
		Month:  t.Month(),
		Day:    t.Day(),
		Hour:   t.Hour(),
		Minute: t.Minute(),
		Second: t.Second(),
	}
}
