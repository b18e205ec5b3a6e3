package normtime

import (
	"strconv"
	"strings"

	"github.com/go-i2p/logger"
	"github.com/samber/oops"
)

// Layout is the canonical text form of a Time.
const Layout = "YYYY-MM-DDNHH:MM:SS"

// String returns t in the canonical text form.
func (t Time) String() string {
	return t.Format()
}

// Format renders t as YYYY-MM-DDNHH:MM:SS. The year has at least four
// digits and a leading '-' before the epoch's year 0.
func (t Time) Format() string {
	return string(t.AppendFormat(make([]byte, 0, len(Layout)+2)))
}

// AppendFormat appends the canonical text form of t to b.
func (t Time) AppendFormat(b []byte) []byte {
	b = t.appendDate(b)
	b = append(b, 'N')
	return t.appendClock(b)
}

// YearString returns the year of t padded to four digits, e.g. "0123".
func (t Time) YearString() string {
	return string(appendYear(nil, t.Year()))
}

// DateString returns the date part of t, e.g. "0123-04-05".
func (t Time) DateString() string {
	return string(t.appendDate(nil))
}

// ClockString returns the clock part of t, e.g. "06:07:08".
func (t Time) ClockString() string {
	return string(t.appendClock(nil))
}

func (t Time) appendDate(b []byte) []byte {
	f := t.Fields()
	b = appendYear(b, f.Year)
	b = append(b, '-')
	b = appendTwo(b, int64(f.Month))
	b = append(b, '-')
	return appendTwo(b, int64(f.Day))
}

func (t Time) appendClock(b []byte) []byte {
	h, m, s := t.Clock()
	b = appendTwo(b, int64(h))
	b = append(b, ':')
	b = appendTwo(b, int64(m))
	b = append(b, ':')
	return appendTwo(b, int64(s))
}

// appendYear writes y zero-padded to four digits, signed when negative.
func appendYear(b []byte, y int64) []byte {
	var mag uint64
	if y < 0 {
		b = append(b, '-')
		mag = uint64(-(y + 1)) + 1
	} else {
		mag = uint64(y)
	}
	digits := strconv.FormatUint(mag, 10)
	for i := len(digits); i < 4; i++ {
		b = append(b, '0')
	}
	return append(b, digits...)
}

func appendTwo(b []byte, v int64) []byte {
	if v >= 0 && v < 10 {
		return append(b, '0', byte('0'+v))
	}
	return strconv.AppendInt(b, v, 10)
}

// MarshalText implements encoding.TextMarshaler.
func (t Time) MarshalText() ([]byte, error) {
	return t.AppendFormat(nil), nil
}

// UnmarshalText implements encoding.TextUnmarshaler using Parse.
func (t *Time) UnmarshalText(text []byte) error {
	v, err := Parse(string(text))
	if err != nil {
		return err
	}
	*t = v
	return nil
}

// scanned holds a signed year and the five two-digit fields of a date-time
// in the order month, day, hour, minute, second.
type scanned struct {
	year int64
	rest [5]int
}

// scanFields reads the strict form [+-]YYYY-MM-DD[<sep>HH:MM:SS]. The year
// takes four or more digits, every other field exactly two.
func scanFields(s string, sep byte) (scanned, error) {
	var out scanned
	fail := func(reason string) (scanned, error) {
		log.WithFields(logger.Fields{
			"at":     "normtime.scanFields",
			"input":  s,
			"reason": reason,
		}).Debug("text does not match the date-time layout")
		return scanned{}, oops.Wrapf(ErrParse, "%q: %s", s, reason)
	}

	rest := s
	neg := false
	if len(rest) > 0 && (rest[0] == '-' || rest[0] == '+') {
		neg = rest[0] == '-'
		rest = rest[1:]
	}
	n := digitRun(rest)
	if n < 4 {
		return fail("year needs at least four digits")
	}
	year, err := strconv.ParseUint(rest[:n], 10, 63)
	if err != nil {
		log.WithError(err).Debug("year does not fit")
		return scanned{}, oops.Wrapf(ErrOutOfRange, "%q: year", s)
	}
	if neg && year == 0 {
		return fail("negative zero year")
	}
	out.year = int64(year)
	if neg {
		out.year = -out.year
	}
	rest = rest[n:]

	seps := []byte{'-', '-', sep, ':', ':'}
	for i, want := range seps {
		if len(rest) == 0 && i == 2 {
			return out, nil
		}
		if len(rest) < 3 || rest[0] != want {
			return fail("expected '" + string(want) + "' and two digits")
		}
		if digitRun(rest[1:3]) != 2 {
			return fail("field is not two digits")
		}
		out.rest[i] = int(rest[1]-'0')*10 + int(rest[2]-'0')
		rest = rest[3:]
	}
	if rest != "" {
		return fail("trailing text")
	}
	return out, nil
}

func digitRun(s string) int {
	i := 0
	for i < len(s) && s[i] >= '0' && s[i] <= '9' {
		i++
	}
	return i
}

// Parse reads the canonical form YYYY-MM-DDNHH:MM:SS. The clock part may be
// left out for midnight. Text that does not match the layout fails with
// ErrParse, fields outside their range with ErrInvalidDate.
func Parse(s string) (Time, error) {
	f, err := scanFields(s, 'N')
	if err != nil {
		return Time{}, err
	}
	return Date(f.year, f.rest[0], f.rest[1], f.rest[2], f.rest[3], f.rest[4])
}

// ParseLenient accepts any number of digits per field and an optional sign
// on the year, as in "+12345-6-7N8:9:10" or "0900-03-12". Fields are still
// checked for range.
func ParseLenient(s string) (Time, error) {
	fail := func(reason string) (Time, error) {
		log.WithFields(logger.Fields{
			"at":     "normtime.ParseLenient",
			"input":  s,
			"reason": reason,
		}).Debug("text does not match the lenient layout")
		return Time{}, oops.Wrapf(ErrParse, "%q: %s", s, reason)
	}

	date, clock, hasClock := strings.Cut(s, "N")
	sign := ""
	if len(date) > 0 && (date[0] == '-' || date[0] == '+') {
		sign, date = date[:1], date[1:]
	}
	dparts := strings.Split(date, "-")
	if len(dparts) != 3 {
		return fail("date needs year, month and day")
	}
	var cparts []string
	if hasClock {
		cparts = strings.Split(clock, ":")
		if len(cparts) != 3 {
			return fail("clock needs hour, minute and second")
		}
	}

	fields := make([]string, 0, 6)
	fields = append(fields, dparts...)
	fields = append(fields, cparts...)
	for _, p := range fields {
		if p == "" || digitRun(p) != len(p) {
			return fail("field is not a number")
		}
	}
	year, err := strconv.ParseInt(sign+fields[0], 10, 64)
	if err != nil {
		return Time{}, oops.Wrapf(ErrOutOfRange, "%q: year", s)
	}
	var small [5]int
	for i, p := range fields[1:] {
		v, err := strconv.Atoi(p)
		if err != nil || v > 1_000_000 {
			return fail("field too large")
		}
		small[i] = v
	}
	return Date(year, small[0], small[1], small[2], small[3], small[4])
}
