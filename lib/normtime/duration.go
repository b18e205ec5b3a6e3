package normtime

import (
	"math"
	"math/big"
	"time"

	"github.com/go-i2p/logger"
	"github.com/samber/oops"
)

const nanosPerSecond = 1_000_000_000

// Duration is a signed span of elapsed time: whole seconds plus a
// nanosecond fraction. The value is secs + nanos/1e9 with nanos always in
// [0, 1e9), so -0.25s is stored as -1s + 750,000,000ns. The zero value is
// an empty span.
type Duration struct {
	secs  int64
	nanos int32
}

// Seconds returns a duration of n seconds.
func Seconds(n int64) Duration {
	return Duration{secs: n}
}

// NewDuration returns a duration of secs seconds plus nanos nanoseconds.
// nanos may be negative or exceed one second; it is carried into secs.
func NewDuration(secs int64, nanos int) (Duration, error) {
	n := int64(nanos)
	s, ok := addInt64(secs, floorDiv(n, nanosPerSecond))
	if !ok {
		return Duration{}, durationOverflow("NewDuration", secs, n)
	}
	return Duration{secs: s, nanos: int32(floorMod(n, nanosPerSecond))}, nil
}

// Of returns a duration of n units.
func Of(n int64, u Unit) (Duration, error) {
	if !u.Valid() {
		return Duration{}, oops.Wrapf(ErrOutOfRange, "unknown unit %d", int(u))
	}
	s, ok := mulInt64(n, u.Seconds())
	if !ok {
		return Duration{}, durationOverflow("Of", n, u.Seconds())
	}
	return Duration{secs: s}, nil
}

// Minutes returns a duration of n minutes.
func Minutes(n int64) (Duration, error) { return Of(n, Minute) }

// Hours returns a duration of n hours.
func Hours(n int64) (Duration, error) { return Of(n, Hour) }

// Normdays returns a duration of n normdays.
func Normdays(n int64) (Duration, error) { return Of(n, Normday) }

// Normweeks returns a duration of n normweeks.
func Normweeks(n int64) (Duration, error) { return Of(n, Normweek) }

// Normmonths returns a duration of n normmonths.
func Normmonths(n int64) (Duration, error) { return Of(n, Normmonth) }

// Normyears returns a duration of n normyears.
func Normyears(n int64) (Duration, error) { return Of(n, Normyear) }

// Terrayears returns a duration of n Julian earth years of 365.25 days.
func Terrayears(n int64) (Duration, error) {
	s, ok := mulInt64(n, SecondsPerTerrayear)
	if !ok {
		return Duration{}, durationOverflow("Terrayears", n, SecondsPerTerrayear)
	}
	return Duration{secs: s}, nil
}

func durationOverflow(op string, a, b any) error {
	log.WithFields(logger.Fields{
		"at":     "Duration." + op,
		"a":      a,
		"b":      b,
		"reason": "int64 overflow",
	}).Debug("duration out of range")
	return oops.Wrapf(ErrOutOfRange, "duration %s(%v, %v)", op, a, b)
}

// Add returns d+e.
func (d Duration) Add(e Duration) (Duration, error) {
	nanos := d.nanos + e.nanos
	carry := int64(0)
	if nanos >= nanosPerSecond {
		nanos -= nanosPerSecond
		carry = 1
	}
	s, ok := addInt64(d.secs, e.secs)
	if ok {
		s, ok = addInt64(s, carry)
	}
	if !ok {
		return Duration{}, durationOverflow("Add", d, e)
	}
	return Duration{secs: s, nanos: nanos}, nil
}

// Sub returns d-e.
func (d Duration) Sub(e Duration) (Duration, error) {
	nanos := d.nanos - e.nanos
	borrow := int64(0)
	if nanos < 0 {
		nanos += nanosPerSecond
		borrow = 1
	}
	s, ok := subInt64(d.secs, e.secs)
	if ok {
		s, ok = subInt64(s, borrow)
	}
	if !ok {
		return Duration{}, durationOverflow("Sub", d, e)
	}
	return Duration{secs: s, nanos: nanos}, nil
}

// Neg returns -d. Only the most negative duration has no negation.
func (d Duration) Neg() (Duration, error) {
	if d.nanos == 0 {
		if d.secs == math.MinInt64 {
			return Duration{}, durationOverflow("Neg", d, -1)
		}
		return Duration{secs: -d.secs}, nil
	}
	// -(s + n) = (-s - 1) + (1 - n)
	return Duration{secs: ^d.secs, nanos: nanosPerSecond - d.nanos}, nil
}

// Abs returns the absolute value of d.
func (d Duration) Abs() (Duration, error) {
	if d.secs < 0 {
		return d.Neg()
	}
	return d, nil
}

// Mul returns d multiplied by k.
func (d Duration) Mul(k int64) (Duration, error) {
	p := d.big()
	p.Mul(p, big.NewInt(k))
	r, ok := durationFromBig(p)
	if !ok {
		return Duration{}, durationOverflow("Mul", d, k)
	}
	return r, nil
}

// Div returns d divided by k, truncated toward zero to the nanosecond.
func (d Duration) Div(k int64) (Duration, error) {
	if k == 0 {
		log.WithField("at", "Duration.Div").Debug("division by zero")
		return Duration{}, oops.Wrapf(ErrDivideByZero, "duration %v / 0", d)
	}
	q := d.big()
	q.Quo(q, big.NewInt(k))
	r, ok := durationFromBig(q)
	if !ok {
		return Duration{}, durationOverflow("Div", d, k)
	}
	return r, nil
}

// Sum adds up ds, failing on the first overflow.
func Sum(ds ...Duration) (Duration, error) {
	var total Duration
	for _, d := range ds {
		var err error
		if total, err = total.Add(d); err != nil {
			return Duration{}, err
		}
	}
	return total, nil
}

func (d Duration) big() *big.Int {
	n := big.NewInt(d.secs)
	n.Mul(n, big.NewInt(nanosPerSecond))
	return n.Add(n, big.NewInt(int64(d.nanos)))
}

func durationFromBig(n *big.Int) (Duration, bool) {
	secs, nanos := new(big.Int), new(big.Int)
	secs.DivMod(n, big.NewInt(nanosPerSecond), nanos)
	if !secs.IsInt64() {
		return Duration{}, false
	}
	return Duration{secs: secs.Int64(), nanos: int32(nanos.Int64())}, true
}

// Compare returns -1, 0 or +1 depending on whether d is shorter than, equal
// to or longer than e.
func (d Duration) Compare(e Duration) int {
	switch {
	case d.secs < e.secs:
		return -1
	case d.secs > e.secs:
		return 1
	case d.nanos < e.nanos:
		return -1
	case d.nanos > e.nanos:
		return 1
	}
	return 0
}

// Equal reports whether d and e are the same span.
func (d Duration) Equal(e Duration) bool { return d == e }

// IsZero reports whether d is empty.
func (d Duration) IsZero() bool { return d.secs == 0 && d.nanos == 0 }

// Sign returns -1, 0 or +1 for negative, zero and positive durations.
func (d Duration) Sign() int {
	switch {
	case d.secs < 0:
		return -1
	case d.IsZero():
		return 0
	}
	return 1
}

// ToSeconds returns the whole seconds of d, truncated toward zero.
func (d Duration) ToSeconds() int64 {
	if d.secs < 0 && d.nanos > 0 {
		return d.secs + 1
	}
	return d.secs
}

// SubsecNanos returns the fractional part of d in nanoseconds. It carries
// the sign of d, so ToSeconds()*1e9 + SubsecNanos() is the whole span.
func (d Duration) SubsecNanos() int32 {
	if d.secs < 0 && d.nanos > 0 {
		return d.nanos - nanosPerSecond
	}
	return d.nanos
}

// In returns the number of whole units in d, truncated toward zero.
func (d Duration) In(u Unit) int64 {
	if !u.Valid() {
		return 0
	}
	return d.ToSeconds() / u.Seconds()
}

// Float returns d as a floating count of u. It is meant for display and may
// lose precision.
func (d Duration) Float(u Unit) float64 {
	if !u.Valid() {
		return math.NaN()
	}
	return (float64(d.secs) + float64(d.nanos)/nanosPerSecond) / float64(u.Seconds())
}

// FromFloat returns a duration of f units, rounded to the nanosecond.
func FromFloat(f float64, u Unit) (Duration, error) {
	if !u.Valid() {
		return Duration{}, oops.Wrapf(ErrOutOfRange, "unknown unit %d", int(u))
	}
	total := f * float64(u.Seconds())
	if math.IsNaN(total) || total >= math.MaxInt64 || total < math.MinInt64 {
		return Duration{}, durationOverflow("FromFloat", f, u)
	}
	secs := math.Floor(total)
	nanos := math.Round((total - secs) * nanosPerSecond)
	return NewDuration(int64(secs), int(nanos))
}

// Std converts d to a time.Duration.
func (d Duration) Std() (time.Duration, error) {
	secs, nanos := d.secs, int64(d.nanos)
	// A negative count with a positive fraction may only fit after the
	// fraction is folded into the whole seconds.
	if secs < 0 && nanos > 0 {
		secs, nanos = secs+1, nanos-nanosPerSecond
	}
	n, ok := mulInt64(secs, nanosPerSecond)
	if ok {
		n, ok = addInt64(n, nanos)
	}
	if !ok {
		return 0, durationOverflow("Std", d, "time.Duration")
	}
	return time.Duration(n), nil
}

// FromStd converts a time.Duration. It never fails.
func FromStd(d time.Duration) Duration {
	return Duration{
		secs:  floorDiv(int64(d), nanosPerSecond),
		nanos: int32(floorMod(int64(d), nanosPerSecond)),
	}
}
