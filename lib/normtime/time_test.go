package normtime

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDate(t *testing.T) {
	assert := assert.New(t)

	tm, err := Date(123, 4, 5, 6, 7, 8)
	assert.NoError(err)
	assert.Equal(int64(3_702_522_028), tm.Seconds())

	epoch, err := Date(0, 0, 0, 0, 0, 0)
	assert.NoError(err)
	assert.True(epoch.IsZero())
	assert.Equal(Time{}, epoch)

	last, err := Date(0, 9, 29, 27, 46, 39)
	assert.NoError(err)
	assert.Equal(SecondsPerNormyear-1, last.Seconds())

	neg, err := Date(-1, 0, 0, 0, 0, 0)
	assert.NoError(err)
	assert.Equal(-SecondsPerNormyear, neg.Seconds())
}

func TestDateInvalid(t *testing.T) {
	tests := []struct {
		name                     string
		month, day, hour, m, sec int
	}{
		{"day 31", 4, 31, 0, 0, 0},
		{"day 30", 4, 30, 0, 0, 0},
		{"negative day", 4, -1, 0, 0, 0},
		{"month 10", 10, 0, 0, 0, 0},
		{"negative month", -1, 0, 0, 0, 0},
		{"hour 28", 0, 0, 28, 0, 0},
		{"negative hour", 0, 0, -1, 0, 0},
		{"minute 60", 0, 0, 0, 60, 0},
		{"second 60", 0, 0, 0, 0, 60},
		{"past end of normday", 0, 0, 27, 46, 40},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Date(123, tt.month, tt.day, tt.hour, tt.m, tt.sec)
			assert.ErrorIs(t, err, ErrInvalidDate)
		})
	}
}

func TestDateOutOfRange(t *testing.T) {
	assert := assert.New(t)

	maxYear := int64(math.MaxInt64 / SecondsPerNormyear)
	_, err := Date(maxYear, 0, 0, 0, 0, 0)
	assert.NoError(err)
	_, err = Date(maxYear, 9, 29, 27, 46, 39)
	assert.ErrorIs(err, ErrOutOfRange)
	_, err = Date(maxYear+1, 0, 0, 0, 0, 0)
	assert.ErrorIs(err, ErrOutOfRange)
	_, err = Date(math.MinInt64, 0, 0, 0, 0, 0)
	assert.ErrorIs(err, ErrOutOfRange)
}

func TestFieldsRoundTrip(t *testing.T) {
	years := []int64{-307_445_734_561, -12345, -1, 0, 1, 123, 2068, 307_445_734_560}
	for _, y := range years {
		for month := 0; month < MonthsPerNormyear; month++ {
			for _, day := range []int{0, 1, 14, 29} {
				for _, clock := range [][3]int{{0, 0, 0}, {6, 7, 8}, {23, 59, 59}, {27, 46, 39}} {
					tm, err := Date(y, month, day, clock[0], clock[1], clock[2])
					require.NoError(t, err)
					want := Fields{y, month, day, clock[0], clock[1], clock[2]}
					require.Equal(t, want, tm.Fields())
					back, err := tm.Fields().Time()
					require.NoError(t, err)
					require.Equal(t, tm, back)
				}
			}
		}
	}
}

func TestFieldsBeforeEpoch(t *testing.T) {
	assert := assert.New(t)

	f := FromSeconds(-1).Fields()
	assert.Equal(Fields{Year: -1, Month: 9, Day: 29, Hour: 27, Minute: 46, Second: 39}, f)

	y, m, d := FromSeconds(-SecondsPerNormday).Date()
	assert.Equal(int64(-1), y)
	assert.Equal(9, m)
	assert.Equal(29, d)

	// Extreme counts decompose without overflow.
	f = FromSeconds(math.MinInt64).Fields()
	assert.Equal(int64(-307_445_734_562), f.Year)
	f = FromSeconds(math.MaxInt64).Fields()
	assert.Equal(int64(307_445_734_561), f.Year)
}

func TestAccessors(t *testing.T) {
	assert := assert.New(t)

	tm, err := Date(123, 4, 5, 6, 7, 8)
	require.NoError(t, err)
	assert.Equal(int64(123), tm.Year())
	assert.Equal(4, tm.Month())
	assert.Equal(5, tm.Day())
	assert.Equal(6, tm.Hour())
	assert.Equal(7, tm.Minute())
	assert.Equal(8, tm.Second())
	h, m, s := tm.Clock()
	assert.Equal([3]int{6, 7, 8}, [3]int{h, m, s})

	for _, secs := range []int64{100_000, -1, 3_702_522_028, -99_999} {
		x := FromSeconds(secs)
		f := x.Fields()
		assert.Equal(f.Hour, x.Hour(), "seconds %d", secs)
		assert.Equal(f.Minute, x.Minute(), "seconds %d", secs)
		assert.Equal(f.Second, x.Second(), "seconds %d", secs)
	}
	assert.Equal(0, FromSeconds(100_000).Second())
	assert.Equal(39, FromSeconds(-1).Second())
}

func TestCompare(t *testing.T) {
	assert := assert.New(t)

	a := FromSeconds(-5)
	b := FromSeconds(10)

	assert.Equal(-1, a.Compare(b))
	assert.Equal(1, b.Compare(a))
	assert.Equal(0, a.Compare(FromSeconds(-5)))
	assert.True(a.Before(b))
	assert.False(b.Before(a))
	assert.True(b.After(a))
	assert.True(a.Equal(FromSeconds(-5)))
	assert.True(a == FromSeconds(-5))
	assert.False(a.IsZero())
}

func TestDurationAlgebra(t *testing.T) {
	instants := []int64{math.MinInt64 / 2, -30_000_001, -1, 0, 1, 3_702_522_028, math.MaxInt64 / 2}
	for _, x := range instants {
		for _, y := range instants {
			a, b := FromSeconds(x), FromSeconds(y)

			ba, err := b.Difference(a)
			require.NoError(t, err)
			back, err := a.AddDuration(ba)
			require.NoError(t, err)
			assert.Equal(t, b, back, "a + (b - a) == b")

			ab, err := a.Difference(b)
			require.NoError(t, err)
			neg, err := ab.Neg()
			require.NoError(t, err)
			assert.Equal(t, ba, neg, "(b - a) == -(a - b)")

			again, err := b.SubtractDuration(ba)
			require.NoError(t, err)
			assert.Equal(t, a, again)
		}
	}
}

func TestNormdayDifference(t *testing.T) {
	a, err := Date(123, 4, 6, 6, 7, 8)
	require.NoError(t, err)
	b, err := Date(123, 4, 5, 6, 7, 8)
	require.NoError(t, err)

	d, err := a.Difference(b)
	require.NoError(t, err)
	assert.Equal(t, Seconds(100_000), d)
	assert.Equal(t, int64(1), d.In(Normday))
}

func TestArithmeticOverflow(t *testing.T) {
	assert := assert.New(t)

	_, err := FromSeconds(math.MaxInt64).AddDuration(Seconds(1))
	assert.ErrorIs(err, ErrOutOfRange)
	_, err = FromSeconds(math.MinInt64).SubtractDuration(Seconds(1))
	assert.ErrorIs(err, ErrOutOfRange)
	_, err = FromSeconds(0).SubtractDuration(Seconds(math.MinInt64))
	assert.ErrorIs(err, ErrOutOfRange)
	_, err = FromSeconds(math.MaxInt64).Difference(FromSeconds(-1))
	assert.ErrorIs(err, ErrOutOfRange)
	_, err = FromSeconds(math.MinInt64).Difference(FromSeconds(1))
	assert.ErrorIs(err, ErrOutOfRange)

	tm, err := FromSeconds(math.MaxInt64 - 1).AddDuration(Seconds(1))
	assert.NoError(err)
	assert.Equal(int64(math.MaxInt64), tm.Seconds())
}

func TestAddDurationFloorsNanos(t *testing.T) {
	assert := assert.New(t)

	d, err := NewDuration(1, 900_000_000)
	require.NoError(t, err)
	tm, err := FromSeconds(10).AddDuration(d)
	assert.NoError(err)
	assert.Equal(int64(11), tm.Seconds())

	d, err = NewDuration(0, -250_000_000)
	require.NoError(t, err)
	tm, err = FromSeconds(10).AddDuration(d)
	assert.NoError(err)
	assert.Equal(int64(9), tm.Seconds())
}

func TestWithYear(t *testing.T) {
	assert := assert.New(t)

	zero := FromSeconds(0)
	for _, y := range []int64{100, 1000, -100, 0} {
		d, err := Normyears(y)
		require.NoError(t, err)
		want, err := zero.AddDuration(d)
		require.NoError(t, err)
		got, err := zero.WithYear(y)
		assert.NoError(err)
		assert.Equal(want, got)
	}

	hundred, err := Date(100, 3, 4, 5, 6, 7)
	require.NoError(t, err)
	moved, err := hundred.WithYear(-100)
	assert.NoError(err)
	assert.Equal(Fields{-100, 3, 4, 5, 6, 7}, moved.Fields())

	same, err := hundred.WithYear(hundred.Year())
	assert.NoError(err)
	assert.Equal(hundred, same)

	_, err = hundred.WithYear(math.MaxInt64)
	assert.ErrorIs(err, ErrOutOfRange)
}

func TestAddClock(t *testing.T) {
	assert := assert.New(t)

	zero := FromSeconds(0)
	tm, err := zero.AddClock(0, 0, 1)
	assert.NoError(err)
	assert.Equal(int64(1), tm.Seconds())

	tm, err = zero.AddClock(30, 0, 0)
	assert.NoError(err)
	assert.Equal(Fields{Day: 1, Hour: 2, Minute: 13, Second: 20}, tm.Fields())

	tm, err = zero.AddClock(1, 90, 75)
	assert.NoError(err)
	assert.Equal(int64(3600+5400+75), tm.Seconds())

	_, err = zero.AddClock(math.MaxInt64, 0, 0)
	assert.ErrorIs(err, ErrOutOfRange)
}

func TestTruncate(t *testing.T) {
	assert := assert.New(t)

	tm, err := Date(123, 4, 5, 6, 7, 8)
	require.NoError(t, err)

	day, _ := Date(123, 4, 5, 0, 0, 0)
	month, _ := Date(123, 4, 0, 0, 0, 0)
	year, _ := Date(123, 0, 0, 0, 0, 0)
	assert.Equal(day, tm.Truncate(Normday))
	assert.Equal(month, tm.Truncate(Normmonth))
	assert.Equal(year, tm.Truncate(Normyear))
	assert.Equal(tm, tm.Truncate(Second))

	before := FromSeconds(-1)
	assert.Equal(FromSeconds(-SecondsPerNormday), before.Truncate(Normday))
	assert.Equal(FromSeconds(-SecondsPerNormyear), before.Truncate(Normyear))
}
