package normtime

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func must(d Duration, err error) Duration {
	if err != nil {
		panic(err)
	}
	return d
}

func TestUnitConstructors(t *testing.T) {
	tests := []struct {
		name string
		ctor func(int64) (Duration, error)
		want int64
	}{
		{"minutes", Minutes, 60},
		{"hours", Hours, 3_600},
		{"normdays", Normdays, 100_000},
		{"normweeks", Normweeks, 1_000_000},
		{"normmonths", Normmonths, 3_000_000},
		{"normyears", Normyears, 30_000_000},
		{"terrayears", Terrayears, 31_557_600},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := tt.ctor(1)
			require.NoError(t, err)
			assert.Equal(t, tt.want, d.ToSeconds())

			d, err = tt.ctor(-3)
			require.NoError(t, err)
			assert.Equal(t, -3*tt.want, d.ToSeconds())

			_, err = tt.ctor(math.MaxInt64)
			assert.ErrorIs(t, err, ErrOutOfRange)
		})
	}
}

func TestOf(t *testing.T) {
	assert := assert.New(t)

	for _, u := range Units() {
		d, err := Of(2, u)
		assert.NoError(err)
		assert.Equal(2*u.Seconds(), d.ToSeconds())
		assert.Equal(int64(2), d.In(u))
	}
	_, err := Of(1, Unit(42))
	assert.ErrorIs(err, ErrOutOfRange)
}

func TestNewDuration(t *testing.T) {
	assert := assert.New(t)

	d, err := NewDuration(1, 10)
	assert.NoError(err)
	assert.Equal(int64(1), d.ToSeconds())
	assert.Equal(int32(10), d.SubsecNanos())

	d, err = NewDuration(0, -250_000_000)
	assert.NoError(err)
	assert.Equal(int64(0), d.ToSeconds())
	assert.Equal(int32(-250_000_000), d.SubsecNanos())
	assert.Equal(-1, d.Sign())

	d, err = NewDuration(1, 2_500_000_000)
	assert.NoError(err)
	assert.Equal(int64(3), d.ToSeconds())
	assert.Equal(int32(500_000_000), d.SubsecNanos())

	_, err = NewDuration(math.MaxInt64, nanosPerSecond)
	assert.ErrorIs(err, ErrOutOfRange)
}

func TestDurationAddSub(t *testing.T) {
	assert := assert.New(t)

	sum, err := Seconds(1).Add(Seconds(10))
	assert.NoError(err)
	assert.Equal(Seconds(11), sum)

	half := must(NewDuration(0, 500_000_000))
	one, err := half.Add(half)
	assert.NoError(err)
	assert.Equal(Seconds(1), one)

	diff, err := Seconds(1).Sub(half)
	assert.NoError(err)
	assert.Equal(half, diff)

	negHalf, err := Seconds(0).Sub(half)
	assert.NoError(err)
	assert.Equal(int32(-500_000_000), negHalf.SubsecNanos())
	assert.Equal(int64(0), negHalf.ToSeconds())

	_, err = Seconds(math.MaxInt64).Add(Seconds(1))
	assert.ErrorIs(err, ErrOutOfRange)
	_, err = Seconds(math.MinInt64).Sub(Seconds(1))
	assert.ErrorIs(err, ErrOutOfRange)
	_, err = Seconds(math.MaxInt64).Add(half)
	assert.NoError(err)
	_, err = must(NewDuration(math.MaxInt64, 600_000_000)).Add(half)
	assert.ErrorIs(err, ErrOutOfRange)
}

func TestDurationNegAbs(t *testing.T) {
	assert := assert.New(t)

	n, err := Seconds(5).Neg()
	assert.NoError(err)
	assert.Equal(Seconds(-5), n)

	quarter := must(NewDuration(2, 250_000_000))
	n, err = quarter.Neg()
	assert.NoError(err)
	assert.Equal(int64(-2), n.ToSeconds())
	assert.Equal(int32(-250_000_000), n.SubsecNanos())
	back, err := n.Neg()
	assert.NoError(err)
	assert.Equal(quarter, back)

	a, err := n.Abs()
	assert.NoError(err)
	assert.Equal(quarter, a)

	a, err = must(Normyears(-1)).Abs()
	assert.NoError(err)
	assert.Equal(Seconds(30_000_000), a)

	_, err = Seconds(math.MinInt64).Neg()
	assert.ErrorIs(err, ErrOutOfRange)

	// The most negative span with a fraction still has a negation.
	n, err = must(NewDuration(math.MinInt64, 1)).Neg()
	assert.NoError(err)
	assert.Equal(int64(math.MaxInt64), n.ToSeconds())
}

func TestDurationMulDiv(t *testing.T) {
	assert := assert.New(t)

	d, err := Seconds(7).Mul(3)
	assert.NoError(err)
	assert.Equal(Seconds(21), d)

	d, err = must(NewDuration(1, 500_000_000)).Mul(-3)
	assert.NoError(err)
	assert.Equal(must(NewDuration(-5, 500_000_000)), d)

	_, err = Seconds(math.MaxInt64 / 2).Mul(3)
	assert.ErrorIs(err, ErrOutOfRange)

	d, err = Seconds(7).Div(2)
	assert.NoError(err)
	assert.Equal(must(NewDuration(3, 500_000_000)), d)

	d, err = Seconds(-7).Div(2)
	assert.NoError(err)
	assert.Equal(int64(-3), d.ToSeconds())
	assert.Equal(int32(-500_000_000), d.SubsecNanos())

	d, err = Seconds(1).Div(3)
	assert.NoError(err)
	assert.Equal(int32(333_333_333), d.SubsecNanos())

	_, err = Seconds(1).Div(0)
	assert.ErrorIs(err, ErrDivideByZero)

	_, err = Seconds(math.MinInt64).Div(-1)
	assert.ErrorIs(err, ErrOutOfRange)
}

func TestSum(t *testing.T) {
	assert := assert.New(t)

	total, err := Sum(Seconds(1), Seconds(2), must(Normdays(1)))
	assert.NoError(err)
	assert.Equal(Seconds(100_003), total)

	empty, err := Sum()
	assert.NoError(err)
	assert.True(empty.IsZero())

	_, err = Sum(Seconds(math.MaxInt64), Seconds(1))
	assert.ErrorIs(err, ErrOutOfRange)
}

func TestDurationCompare(t *testing.T) {
	assert := assert.New(t)

	half := must(NewDuration(0, 500_000_000))
	assert.Equal(-1, Seconds(0).Compare(half))
	assert.Equal(1, Seconds(1).Compare(half))
	assert.Equal(0, half.Compare(half))
	assert.Equal(-1, Seconds(-1).Compare(Seconds(0)))
	assert.True(half.Equal(must(NewDuration(1, -500_000_000))))
	assert.Equal(0, Duration{}.Sign())
	assert.Equal(1, half.Sign())
	assert.Equal(-1, Seconds(-3).Sign())
}

func TestDurationIn(t *testing.T) {
	assert := assert.New(t)

	year := must(Normyears(1))
	assert.Equal(int64(500_000), year.In(Minute))
	assert.Equal(int64(8333), year.In(Hour))
	assert.Equal(int64(300), year.In(Normday))
	assert.Equal(int64(30), year.In(Normweek))
	assert.Equal(int64(10), year.In(Normmonth))
	assert.Equal(int64(1), year.In(Normyear))

	assert.Equal(int64(1), Seconds(119).In(Minute))
	assert.Equal(int64(1), Seconds(199_999).In(Normday))
	assert.Equal(int64(2), Seconds(89_000_000).In(Normyear))
	assert.Equal(int64(-1), Seconds(-119).In(Minute))
}

func TestDurationFloat(t *testing.T) {
	assert := assert.New(t)

	assert.InDelta(1.5, Seconds(150_000).Float(Normday), 1e-12)
	assert.InDelta(-0.25, must(NewDuration(0, -250_000_000)).Float(Second), 1e-12)

	d, err := FromFloat(1.5, Normday)
	assert.NoError(err)
	assert.Equal(Seconds(150_000), d)

	d, err = FromFloat(-0.25, Second)
	assert.NoError(err)
	assert.Equal(int32(-250_000_000), d.SubsecNanos())

	_, err = FromFloat(math.Inf(1), Second)
	assert.ErrorIs(err, ErrOutOfRange)
	_, err = FromFloat(math.NaN(), Second)
	assert.ErrorIs(err, ErrOutOfRange)
	_, err = FromFloat(1e12, Normyear)
	assert.ErrorIs(err, ErrOutOfRange)
}

func TestDurationStd(t *testing.T) {
	assert := assert.New(t)

	std, err := must(NewDuration(1, 500_000_000)).Std()
	assert.NoError(err)
	assert.Equal(1500*time.Millisecond, std)

	std, err = must(NewDuration(0, -250_000_000)).Std()
	assert.NoError(err)
	assert.Equal(-250*time.Millisecond, std)

	_, err = must(Normyears(1_000)).Std()
	assert.ErrorIs(err, ErrOutOfRange)

	// -9223372036.5 s is inside the time.Duration range.
	low := must(NewDuration(math.MinInt64/nanosPerSecond-1, 500_000_000))
	std, err = low.Std()
	assert.NoError(err)
	assert.Equal(time.Duration(-9_223_372_036_500_000_000), std)

	_, err = must(NewDuration(math.MinInt64/nanosPerSecond-2, 500_000_000)).Std()
	assert.ErrorIs(err, ErrOutOfRange)

	assert.Equal(must(NewDuration(-1, 500_000_000)), FromStd(-500*time.Millisecond))
	assert.Equal(Seconds(3600), FromStd(time.Hour))
}
