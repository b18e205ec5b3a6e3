package normtime

import (
	"cmp"

	"github.com/go-i2p/logger"
	"github.com/samber/oops"
)

// lastHour is the last hour that starts inside a normday.
const lastHour = int(SecondsPerNormday / SecondsPerHour)

// Time is an instant in Normtime: a signed count of whole seconds since
// 2068-01-01T00:00:00 UTC. The zero value is the epoch. Times can be
// compared with ==.
type Time struct {
	secs int64
}

// Fields is the broken-down form of a Time. Month runs 0-9 and Day 0-29.
// Hour, Minute and Second describe the offset into the normday, which is
// always below 100,000 seconds, so Hour tops out at 27.
type Fields struct {
	Year   int64
	Month  int
	Day    int
	Hour   int
	Minute int
	Second int
}

// Date returns the Time for the given Normtime fields. It fails with
// ErrInvalidDate when a field is out of range and with ErrOutOfRange when
// the year is too large for the second count.
func Date(year int64, month, day, hour, min, sec int) (Time, error) {
	if err := validateFields(year, month, day, hour, min, sec); err != nil {
		return Time{}, err
	}
	within := int64(month)*SecondsPerNormmonth +
		int64(day)*SecondsPerNormday +
		int64(hour)*SecondsPerHour +
		int64(min)*SecondsPerMinute +
		int64(sec)
	secs, ok := inYear(year, within)
	if !ok {
		return Time{}, yearOutOfRange(year)
	}
	return Time{secs: secs}, nil
}

// inYear returns the second count of the instant within seconds into
// normyear year. Negative years are measured from the end of the year, so
// the earliest year whose start lies before math.MinInt64 still works.
func inYear(year, within int64) (int64, bool) {
	if year < 0 {
		year++
		within -= SecondsPerNormyear
	}
	base, ok := mulInt64(year, SecondsPerNormyear)
	if !ok {
		return 0, false
	}
	return addInt64(base, within)
}

func validateFields(year int64, month, day, hour, min, sec int) error {
	reason := ""
	switch {
	case month < 0 || month >= MonthsPerNormyear:
		reason = "month outside 0-9"
	case day < 0 || day >= NormdaysPerNormmonth:
		reason = "day outside 0-29"
	case hour < 0 || hour > lastHour:
		reason = "hour outside 0-27"
	case min < 0 || min > 59:
		reason = "minute outside 0-59"
	case sec < 0 || sec > 59:
		reason = "second outside 0-59"
	case int64(hour)*SecondsPerHour+int64(min)*SecondsPerMinute+int64(sec) >= SecondsPerNormday:
		reason = "time of day beyond the normday"
	default:
		return nil
	}
	log.WithFields(logger.Fields{
		"at":     "normtime.Date",
		"year":   year,
		"month":  month,
		"day":    day,
		"hour":   hour,
		"minute": min,
		"second": sec,
		"reason": reason,
	}).Debug("invalid normtime fields")
	return oops.Wrapf(ErrInvalidDate, "%s", reason)
}

func yearOutOfRange(year int64) error {
	log.WithFields(logger.Fields{
		"at":     "normtime.Date",
		"year":   year,
		"reason": "second count overflow",
	}).Debug("normtime year out of range")
	return oops.Wrapf(ErrOutOfRange, "normyear %d does not fit the second count", year)
}

// FromSeconds returns the Time n seconds after the Normtime epoch.
func FromSeconds(n int64) Time {
	return Time{secs: n}
}

// Seconds returns the number of seconds since the Normtime epoch.
func (t Time) Seconds() int64 {
	return t.secs
}

// Fields breaks t down into Normtime fields. Instants before the epoch fall
// into negative years with non-negative month, day and clock fields.
func (t Time) Fields() Fields {
	year := floorDiv(t.secs, SecondsPerNormyear)
	r := floorMod(t.secs, SecondsPerNormyear)
	month := r / SecondsPerNormmonth
	r %= SecondsPerNormmonth
	day := r / SecondsPerNormday
	r %= SecondsPerNormday
	return Fields{
		Year:   year,
		Month:  int(month),
		Day:    int(day),
		Hour:   int(r / SecondsPerHour),
		Minute: int(r % SecondsPerHour / SecondsPerMinute),
		Second: int(r % SecondsPerMinute),
	}
}

// Time rebuilds the instant described by f.
func (f Fields) Time() (Time, error) {
	return Date(f.Year, f.Month, f.Day, f.Hour, f.Minute, f.Second)
}

// Date returns the year, month and day of t.
func (t Time) Date() (year int64, month, day int) {
	f := t.Fields()
	return f.Year, f.Month, f.Day
}

// Clock returns the hour, minute and second within the normday of t.
func (t Time) Clock() (hour, min, sec int) {
	r := floorMod(t.secs, SecondsPerNormday)
	return int(r / SecondsPerHour), int(r % SecondsPerHour / SecondsPerMinute), int(r % SecondsPerMinute)
}

// Year returns the normyear of t.
func (t Time) Year() int64 { return floorDiv(t.secs, SecondsPerNormyear) }

// Month returns the normmonth of t, 0-9.
func (t Time) Month() int { return t.Fields().Month }

// Day returns the normday of the month of t, 0-29.
func (t Time) Day() int { return t.Fields().Day }

// Hour returns the hour within the normday of t, 0-27.
func (t Time) Hour() int {
	h, _, _ := t.Clock()
	return h
}

// Minute returns the minute within the hour of t.
func (t Time) Minute() int {
	_, m, _ := t.Clock()
	return m
}

// Second returns the second within the minute of t.
func (t Time) Second() int {
	_, _, sec := t.Clock()
	return sec
}

// Compare returns -1, 0 or +1 depending on whether t is before, equal to or
// after u.
func (t Time) Compare(u Time) int { return cmp.Compare(t.secs, u.secs) }

// Before reports whether t is before u.
func (t Time) Before(u Time) bool { return t.secs < u.secs }

// After reports whether t is after u.
func (t Time) After(u Time) bool { return t.secs > u.secs }

// Equal reports whether t and u are the same instant.
func (t Time) Equal(u Time) bool { return t.secs == u.secs }

// IsZero reports whether t is the Normtime epoch.
func (t Time) IsZero() bool { return t.secs == 0 }

// AddDuration returns t+d. The sub-second part of d is floored away.
func (t Time) AddDuration(d Duration) (Time, error) {
	secs, ok := addInt64(t.secs, d.secs)
	if !ok {
		return Time{}, t.overflow("AddDuration", d)
	}
	return Time{secs: secs}, nil
}

// SubtractDuration returns t-d.
func (t Time) SubtractDuration(d Duration) (Time, error) {
	n, err := d.Neg()
	if err != nil {
		return Time{}, t.overflow("SubtractDuration", d)
	}
	return t.AddDuration(n)
}

// Difference returns the duration t-u.
func (t Time) Difference(u Time) (Duration, error) {
	secs, ok := subInt64(t.secs, u.secs)
	if !ok {
		log.WithFields(logger.Fields{
			"at":     "Time.Difference",
			"t":      t.secs,
			"u":      u.secs,
			"reason": "second count overflow",
		}).Debug("difference out of range")
		return Duration{}, oops.Wrapf(ErrOutOfRange, "%d - %d", t.secs, u.secs)
	}
	return Seconds(secs), nil
}

func (t Time) overflow(op string, d Duration) error {
	log.WithFields(logger.Fields{
		"at":       "Time." + op,
		"seconds":  t.secs,
		"duration": d.secs,
		"reason":   "second count overflow",
	}).Debug("instant arithmetic out of range")
	return oops.Wrapf(ErrOutOfRange, "%s %v by %v", op, t.secs, d)
}

// WithYear returns t moved to normyear year, keeping its position within
// the year.
func (t Time) WithYear(year int64) (Time, error) {
	secs, ok := inYear(year, floorMod(t.secs, SecondsPerNormyear))
	if !ok {
		return Time{}, yearOutOfRange(year)
	}
	return Time{secs: secs}, nil
}

// AddClock returns t advanced by hour hours, min minutes and sec seconds.
// The values are not limited to clock ranges, so AddClock(30, 0, 0) moves
// into the next normday.
func (t Time) AddClock(hour, min, sec int64) (Time, error) {
	d, err := Hours(hour)
	if err != nil {
		return Time{}, err
	}
	m, err := Minutes(min)
	if err != nil {
		return Time{}, err
	}
	if d, err = d.Add(m); err != nil {
		return Time{}, err
	}
	if d, err = d.Add(Seconds(sec)); err != nil {
		return Time{}, err
	}
	return t.AddDuration(d)
}

// Truncate returns t rounded down to a multiple of u since the epoch. For
// Normday, Normmonth and Normyear this is the start of the enclosing
// normday, normmonth or normyear.
func (t Time) Truncate(u Unit) Time {
	n := u.Seconds()
	if n <= 1 {
		return t
	}
	return Time{secs: t.secs - floorMod(t.secs, n)}
}
