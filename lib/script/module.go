package script

import (
	"time"

	"github.com/go-i2p/normtime/lib/normtime"
	"github.com/samber/oops"
	"go.starlark.net/starlark"
	"go.starlark.net/starlarkstruct"
)

// ModuleName is the name the module is predeclared under.
const ModuleName = "normtime"

// Module is the normtime Starlark module.
var Module = &starlarkstruct.Module{
	Name: ModuleName,
	Members: starlark.StringDict{
		"time":           starlark.NewBuiltin("time", newTime),
		"from_seconds":   starlark.NewBuiltin("from_seconds", fromSeconds),
		"from_unix":      starlark.NewBuiltin("from_unix", fromUnix),
		"from_civil":     starlark.NewBuiltin("from_civil", fromCivil),
		"parse":          starlark.NewBuiltin("parse", parseTime),
		"parse_duration": starlark.NewBuiltin("parse_duration", parseDuration),
		"duration":       starlark.NewBuiltin("duration", newDuration),
		"now":            starlark.NewBuiltin("now", now),

		"epoch":     Time(normtime.Time{}),
		"second":    Duration(normtime.Seconds(1)),
		"minute":    Duration(normtime.Seconds(normtime.SecondsPerMinute)),
		"hour":      Duration(normtime.Seconds(normtime.SecondsPerHour)),
		"normday":   Duration(normtime.Seconds(normtime.SecondsPerNormday)),
		"normweek":  Duration(normtime.Seconds(normtime.SecondsPerNormweek)),
		"normmonth": Duration(normtime.Seconds(normtime.SecondsPerNormmonth)),
		"normyear":  Duration(normtime.Seconds(normtime.SecondsPerNormyear)),
	},
}

// NowFunc returns the current system time. Callers that keep an
// NTP-corrected clock, or need deterministic scripts, replace it.
var NowFunc = time.Now

// Predeclared returns the globals every script starts with.
func Predeclared() starlark.StringDict {
	return starlark.StringDict{ModuleName: Module}
}

func newTime(thread *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var (
		year                          starlark.Int
		month, day, hour, minute, sec int
	)
	if err := starlark.UnpackArgs(b.Name(), args, kwargs,
		"year", &year, "month", &month, "day", &day,
		"hour?", &hour, "minute?", &minute, "second?", &sec); err != nil {
		return nil, err
	}
	y, err := toInt64(year)
	if err != nil {
		return nil, err
	}
	t, err := normtime.Date(y, month, day, hour, minute, sec)
	if err != nil {
		return nil, err
	}
	return Time(t), nil
}

func fromSeconds(thread *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var n starlark.Int
	if err := starlark.UnpackPositionalArgs(b.Name(), args, kwargs, 1, &n); err != nil {
		return nil, err
	}
	secs, err := toInt64(n)
	if err != nil {
		return nil, err
	}
	return Time(normtime.FromSeconds(secs)), nil
}

func fromUnix(thread *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var n starlark.Int
	if err := starlark.UnpackPositionalArgs(b.Name(), args, kwargs, 1, &n); err != nil {
		return nil, err
	}
	secs, err := toInt64(n)
	if err != nil {
		return nil, err
	}
	t, err := normtime.FromUnix(secs)
	if err != nil {
		return nil, err
	}
	return Time(t), nil
}

func fromCivil(thread *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var (
		year                          starlark.Int
		month, day, hour, minute, sec int
	)
	if err := starlark.UnpackArgs(b.Name(), args, kwargs,
		"year", &year, "month", &month, "day", &day,
		"hour?", &hour, "minute?", &minute, "second?", &sec); err != nil {
		return nil, err
	}
	y, err := toInt64(year)
	if err != nil {
		return nil, err
	}
	t, err := normtime.FromCivil(normtime.Civil{
		Year: y, Month: time.Month(month), Day: day,
		Hour: hour, Minute: minute, Second: sec,
	})
	if err != nil {
		return nil, err
	}
	return Time(t), nil
}

func parseTime(thread *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var s string
	if err := starlark.UnpackPositionalArgs(b.Name(), args, kwargs, 1, &s); err != nil {
		return nil, err
	}
	t, err := normtime.ParseLenient(s)
	if err != nil {
		return nil, err
	}
	return Time(t), nil
}

func parseDuration(thread *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var d Duration
	if err := starlark.UnpackPositionalArgs(b.Name(), args, kwargs, 1, &d); err != nil {
		return nil, err
	}
	return d, nil
}

// newDuration builds n units. A float count is rounded to the nanosecond.
func newDuration(thread *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var (
		n    starlark.Value
		unit = "seconds"
	)
	if err := starlark.UnpackArgs(b.Name(), args, kwargs, "n", &n, "unit?", &unit); err != nil {
		return nil, err
	}
	u, err := normtime.ParseUnit(unit)
	if err != nil {
		return nil, err
	}
	var d normtime.Duration
	switch x := n.(type) {
	case starlark.Int:
		i, err := toInt64(x)
		if err != nil {
			return nil, err
		}
		d, err = normtime.Of(i, u)
		if err != nil {
			return nil, err
		}
	case starlark.Float:
		d, err = normtime.FromFloat(float64(x), u)
		if err != nil {
			return nil, err
		}
	default:
		return nil, oops.Errorf("%s: got %s, want int or float", b.Name(), n.Type())
	}
	return Duration(d), nil
}

func now(thread *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	if err := starlark.UnpackPositionalArgs(b.Name(), args, kwargs, 0); err != nil {
		return nil, err
	}
	if NowFunc == nil {
		return nil, oops.Errorf("%s: no clock configured", b.Name())
	}
	t, err := normtime.FromStdTime(NowFunc())
	if err != nil {
		return nil, err
	}
	return Time(t), nil
}

func toInt64(n starlark.Int) (int64, error) {
	i, ok := n.Int64()
	if !ok {
		return 0, oops.Wrapf(normtime.ErrOutOfRange, "int %s does not fit 64 bits", n.String())
	}
	return i, nil
}
