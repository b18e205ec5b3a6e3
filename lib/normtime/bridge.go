package normtime

import (
	"time"

	"github.com/go-i2p/logger"
	"github.com/samber/oops"
)

// Civil returns the proleptic Gregorian date and time of t in UTC. It fails
// with ErrOutOfRange when t is so far out that its Unix second count does
// not fit an int64.
func (t Time) Civil() (Civil, error) {
	unix, err := t.Unix()
	if err != nil {
		return Civil{}, err
	}
	days := floorDiv(unix, SecondsPerCivilDay)
	sod := floorMod(unix, SecondsPerCivilDay)
	y, m, d := DaysToCivil(days)
	return Civil{
		Year:   y,
		Month:  m,
		Day:    d,
		Hour:   int(sod / SecondsPerHour),
		Minute: int(sod % SecondsPerHour / SecondsPerMinute),
		Second: int(sod % SecondsPerMinute),
	}, nil
}

// FromCivil returns the Normtime instant of a civil date and time. It fails
// with ErrInvalidDate for a date that does not exist and ErrOutOfRange when
// the instant does not fit the second count.
func FromCivil(c Civil) (Time, error) {
	if err := c.Validate(); err != nil {
		return Time{}, err
	}
	if c.Year > maxCivilYear || c.Year < -maxCivilYear {
		return Time{}, civilOutOfRange(c)
	}
	days := CivilToDays(c.Year, c.Month, c.Day)
	secs, ok := mulInt64(days, SecondsPerCivilDay)
	if ok {
		secs, ok = addInt64(secs, int64(c.Hour)*SecondsPerHour+int64(c.Minute)*SecondsPerMinute+int64(c.Second))
	}
	if !ok {
		return Time{}, civilOutOfRange(c)
	}
	return FromUnix(secs)
}

func civilOutOfRange(c Civil) error {
	log.WithFields(logger.Fields{
		"at":     "normtime.FromCivil",
		"civil":  c.String(),
		"reason": "second count overflow",
	}).Debug("civil date out of range")
	return oops.Wrapf(ErrOutOfRange, "civil %s", c.String())
}

// FromUnix returns the instant n seconds after 1970-01-01T00:00:00 UTC.
func FromUnix(n int64) (Time, error) {
	secs, ok := subInt64(n, EpochOffset)
	if !ok {
		log.WithFields(logger.Fields{
			"at":     "normtime.FromUnix",
			"unix":   n,
			"reason": "second count overflow",
		}).Debug("unix time out of range")
		return Time{}, oops.Wrapf(ErrOutOfRange, "unix time %d", n)
	}
	return Time{secs: secs}, nil
}

// Unix returns t as seconds since 1970-01-01T00:00:00 UTC.
func (t Time) Unix() (int64, error) {
	unix, ok := addInt64(t.secs, EpochOffset)
	if !ok {
		log.WithFields(logger.Fields{
			"at":      "Time.Unix",
			"seconds": t.secs,
			"reason":  "second count overflow",
		}).Debug("normtime out of unix range")
		return 0, oops.Wrapf(ErrOutOfRange, "normtime %d as unix time", t.secs)
	}
	return unix, nil
}

// FromStdTime returns the instant of st. The sub-second part is floored
// away, so 1.9s after the epoch is the epoch's second 1.
func FromStdTime(st time.Time) (Time, error) {
	return FromUnix(st.Unix())
}

// StdTime returns t as a UTC time.Time.
func (t Time) StdTime() (time.Time, error) {
	c, err := t.Civil()
	if err != nil {
		return time.Time{}, err
	}
	return c.Time()
}
