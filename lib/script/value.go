package script

import (
	"sort"

	"github.com/go-i2p/normtime/lib/normtime"
	"github.com/samber/oops"
	"go.starlark.net/starlark"
	"go.starlark.net/syntax"
)

// Time is a normtime.Time as a Starlark value.
type Time normtime.Time

var (
	_ starlark.HasAttrs   = Time{}
	_ starlark.HasBinary  = Time{}
	_ starlark.Comparable = Time{}
)

func (t Time) String() string { return normtime.Time(t).Format() }

// Type returns "normtime.time".
func (t Time) Type() string { return "normtime.time" }

func (t Time) Freeze() {}

func (t Time) Hash() (uint32, error) {
	s := normtime.Time(t).Seconds()
	return uint32(s) ^ uint32(s>>32), nil
}

// Truth is false only for the epoch.
func (t Time) Truth() starlark.Bool { return !starlark.Bool(normtime.Time(t).IsZero()) }

func (t Time) Attr(name string) (starlark.Value, error) {
	nt := normtime.Time(t)
	switch name {
	case "year":
		return starlark.MakeInt64(nt.Year()), nil
	case "month":
		return starlark.MakeInt(nt.Month()), nil
	case "day":
		return starlark.MakeInt(nt.Day()), nil
	case "hour":
		return starlark.MakeInt(nt.Hour()), nil
	case "minute":
		return starlark.MakeInt(nt.Minute()), nil
	case "second":
		return starlark.MakeInt(nt.Second()), nil
	case "seconds":
		return starlark.MakeInt64(nt.Seconds()), nil
	case "unix":
		n, err := nt.Unix()
		if err != nil {
			return nil, err
		}
		return starlark.MakeInt64(n), nil
	case "civil":
		c, err := nt.Civil()
		if err != nil {
			return nil, err
		}
		return starlark.String(c.String()), nil
	}
	return builtinAttr(t, name, timeMethods)
}

func (t Time) AttrNames() []string {
	return append(builtinAttrNames(timeMethods),
		"year", "month", "day", "hour", "minute", "second",
		"seconds", "unix", "civil",
	)
}

func (t Time) CompareSameType(op syntax.Token, y starlark.Value, depth int) (bool, error) {
	return threeway(op, normtime.Time(t).Compare(normtime.Time(y.(Time)))), nil
}

// Binary implements
//
//	time + duration = time
//	time - duration = time
//	time - time = duration
func (t Time) Binary(op syntax.Token, y starlark.Value, side starlark.Side) (starlark.Value, error) {
	nt := normtime.Time(t)
	switch op {
	case syntax.PLUS:
		if d, ok := y.(Duration); ok {
			r, err := nt.AddDuration(normtime.Duration(d))
			if err != nil {
				return nil, err
			}
			return Time(r), nil
		}
	case syntax.MINUS:
		switch y := y.(type) {
		case Duration:
			if side == starlark.Right {
				return nil, nil
			}
			r, err := nt.SubtractDuration(normtime.Duration(y))
			if err != nil {
				return nil, err
			}
			return Time(r), nil
		case Time:
			a, b := nt, normtime.Time(y)
			if side == starlark.Right {
				a, b = b, a
			}
			d, err := a.Difference(b)
			if err != nil {
				return nil, err
			}
			return Duration(d), nil
		}
	}
	return nil, nil
}

var timeMethods = map[string]builtinMethod{
	"truncate": timeTruncate,
	"fields":   timeFields,
}

func timeTruncate(fnname string, recv starlark.Value, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var unit string
	if err := starlark.UnpackPositionalArgs(fnname, args, kwargs, 1, &unit); err != nil {
		return nil, err
	}
	u, err := normtime.ParseUnit(unit)
	if err != nil {
		return nil, err
	}
	return Time(normtime.Time(recv.(Time)).Truncate(u)), nil
}

// timeFields returns (year, month, day, hour, minute, second).
func timeFields(fnname string, recv starlark.Value, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	if err := starlark.UnpackPositionalArgs(fnname, args, kwargs, 0); err != nil {
		return nil, err
	}
	f := normtime.Time(recv.(Time)).Fields()
	return starlark.Tuple{
		starlark.MakeInt64(f.Year), starlark.MakeInt(f.Month), starlark.MakeInt(f.Day),
		starlark.MakeInt(f.Hour), starlark.MakeInt(f.Minute), starlark.MakeInt(f.Second),
	}, nil
}

// Duration is a normtime.Duration as a Starlark value.
type Duration normtime.Duration

var (
	_ starlark.HasAttrs   = Duration{}
	_ starlark.HasBinary  = Duration{}
	_ starlark.HasUnary   = Duration{}
	_ starlark.Comparable = Duration{}
	_ starlark.Unpacker   = (*Duration)(nil)
)

// Unpack accepts a Duration, an int of seconds or a duration string.
func (d *Duration) Unpack(v starlark.Value) error {
	switch x := v.(type) {
	case Duration:
		*d = x
		return nil
	case starlark.Int:
		n, err := toInt64(x)
		if err != nil {
			return err
		}
		*d = Duration(normtime.Seconds(n))
		return nil
	case starlark.String:
		p, err := normtime.ParseDuration(string(x))
		if err != nil {
			return err
		}
		*d = Duration(p)
		return nil
	}
	return oops.Errorf("cannot convert %s to %s", v.Type(), d.Type())
}

func (d Duration) String() string { return normtime.Duration(d).String() }

// Type returns "normtime.duration".
func (d Duration) Type() string { return "normtime.duration" }

func (d Duration) Freeze() {}

func (d Duration) Hash() (uint32, error) {
	nd := normtime.Duration(d)
	s := nd.ToSeconds()
	return uint32(s) ^ uint32(s>>32) ^ uint32(nd.SubsecNanos()), nil
}

func (d Duration) Truth() starlark.Bool { return !starlark.Bool(normtime.Duration(d).IsZero()) }

var durationUnits = map[string]normtime.Unit{
	"seconds":    normtime.Second,
	"minutes":    normtime.Minute,
	"hours":      normtime.Hour,
	"normdays":   normtime.Normday,
	"normweeks":  normtime.Normweek,
	"normmonths": normtime.Normmonth,
	"normyears":  normtime.Normyear,
}

func (d Duration) Attr(name string) (starlark.Value, error) {
	nd := normtime.Duration(d)
	if u, ok := durationUnits[name]; ok {
		return starlark.Float(nd.Float(u)), nil
	}
	switch name {
	case "terrayears":
		return starlark.Float(nd.Float(normtime.Second) / float64(normtime.SecondsPerTerrayear)), nil
	case "whole_seconds":
		return starlark.MakeInt64(nd.ToSeconds()), nil
	case "decimal":
		return starlark.String(nd.Decimal()), nil
	}
	return builtinAttr(d, name, durationMethods)
}

func (d Duration) AttrNames() []string {
	names := append(builtinAttrNames(durationMethods), "terrayears", "whole_seconds", "decimal")
	for name := range durationUnits {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (d Duration) CompareSameType(op syntax.Token, y starlark.Value, depth int) (bool, error) {
	return threeway(op, normtime.Duration(d).Compare(normtime.Duration(y.(Duration)))), nil
}

func (d Duration) Unary(op syntax.Token) (starlark.Value, error) {
	nd := normtime.Duration(d)
	switch op {
	case syntax.MINUS:
		r, err := nd.Neg()
		if err != nil {
			return nil, err
		}
		return Duration(r), nil
	case syntax.PLUS:
		return d, nil
	}
	return nil, nil
}

// Binary implements
//
//	duration + duration = duration
//	duration - duration = duration
//	duration * int = duration
//	int * duration = duration
//	duration // int = duration
func (d Duration) Binary(op syntax.Token, y starlark.Value, side starlark.Side) (starlark.Value, error) {
	nd := normtime.Duration(d)
	var (
		r   normtime.Duration
		err error
	)
	switch op {
	case syntax.PLUS:
		e, ok := y.(Duration)
		if !ok {
			return nil, nil
		}
		r, err = nd.Add(normtime.Duration(e))
	case syntax.MINUS:
		e, ok := y.(Duration)
		if !ok {
			return nil, nil
		}
		if side == starlark.Left {
			r, err = nd.Sub(normtime.Duration(e))
		} else {
			r, err = normtime.Duration(e).Sub(nd)
		}
	case syntax.STAR:
		k, ok := y.(starlark.Int)
		if !ok {
			return nil, nil
		}
		n, err := toInt64(k)
		if err != nil {
			return nil, err
		}
		r, err = nd.Mul(n)
		if err != nil {
			return nil, err
		}
	case syntax.SLASHSLASH:
		k, ok := y.(starlark.Int)
		if !ok || side == starlark.Right {
			return nil, nil
		}
		n, err := toInt64(k)
		if err != nil {
			return nil, err
		}
		r, err = nd.Div(n)
		if err != nil {
			return nil, err
		}
	default:
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return Duration(r), nil
}

var durationMethods = map[string]builtinMethod{
	"format": durationFormat,
}

// durationFormat renders the duration in the named units, e.g.
// d.format("normdays", "hours").
func durationFormat(fnname string, recv starlark.Value, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	if len(kwargs) > 0 {
		return nil, oops.Errorf("%s: unexpected keyword arguments", fnname)
	}
	units := make([]normtime.Unit, 0, len(args))
	for _, a := range args {
		s, ok := starlark.AsString(a)
		if !ok {
			return nil, oops.Errorf("%s: got %s, want unit name", fnname, a.Type())
		}
		u, err := normtime.ParseUnit(s)
		if err != nil {
			return nil, err
		}
		units = append(units, u)
	}
	return starlark.String(normtime.Duration(recv.(Duration)).FormatUnits(units...)), nil
}

type builtinMethod func(fnname string, recv starlark.Value, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error)

func builtinAttr(recv starlark.Value, name string, methods map[string]builtinMethod) (starlark.Value, error) {
	method := methods[name]
	if method == nil {
		return nil, nil
	}
	impl := func(thread *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
		return method(b.Name(), b.Receiver(), args, kwargs)
	}
	return starlark.NewBuiltin(name, impl).BindReceiver(recv), nil
}

func builtinAttrNames(methods map[string]builtinMethod) []string {
	names := make([]string, 0, len(methods))
	for name := range methods {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// threeway interprets a three-way comparison as the boolean result of op.
func threeway(op syntax.Token, cmp int) bool {
	switch op {
	case syntax.EQL:
		return cmp == 0
	case syntax.NEQ:
		return cmp != 0
	case syntax.LE:
		return cmp <= 0
	case syntax.LT:
		return cmp < 0
	case syntax.GE:
		return cmp >= 0
	case syntax.GT:
		return cmp > 0
	}
	panic(op)
}
