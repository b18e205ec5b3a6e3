package normtime

import (
	"errors"
	"slices"
	"strconv"
	"strings"

	"github.com/samber/oops"
)

// Component is one term of a duration split into units, e.g. 900 normdays.
type Component struct {
	N    int64
	Unit Unit
}

// Components splits the whole seconds of d into the given units, largest
// first, each taking as much as it can. The last unit keeps a truncated
// remainder. With no units every unit is used.
func (d Duration) Components(units ...Unit) []Component {
	if len(units) == 0 {
		units = Units()
	}
	rest := d.ToSeconds()
	var out []Component
	for _, u := range Units() {
		if !slices.Contains(units, u) {
			continue
		}
		n := rest / u.Seconds()
		rest -= n * u.Seconds()
		out = append(out, Component{N: n, Unit: u})
	}
	return out
}

// FormatUnits renders d in the given units with English names, omitting
// zero terms: "900 normdays 1 hour 23 minutes". A span with no non-zero
// term renders as zero of its smallest unit.
func (d Duration) FormatUnits(units ...Unit) string {
	return d.joinComponents(" ", units, func(c Component) string {
		return strconv.FormatInt(c.N, 10) + " " + c.Unit.Name(c.N)
	})
}

// FormatSymbols is FormatUnits with unit symbols: "900 d 1 h 23 min".
func (d Duration) FormatSymbols(units ...Unit) string {
	return d.joinComponents(" ", units, func(c Component) string {
		return strconv.FormatInt(c.N, 10) + " " + c.Unit.Symbol()
	})
}

func (d Duration) joinComponents(sep string, units []Unit, term func(Component) string) string {
	cs := d.DisplayComponents(units...)
	parts := make([]string, len(cs))
	for i, c := range cs {
		parts[i] = term(c)
	}
	return strings.Join(parts, sep)
}

// NonZeroComponents is Components without the zero terms.
func (d Duration) NonZeroComponents(units ...Unit) []Component {
	cs := d.Components(units...)
	out := cs[:0]
	for _, c := range cs {
		if c.N != 0 {
			out = append(out, c)
		}
	}
	return out
}

// DisplayComponents returns the terms a renderer prints: the non-zero
// components, or the zero smallest unit when every term is zero. Renderers
// outside this package use it to build their own output.
func (d Duration) DisplayComponents(units ...Unit) []Component {
	cs := d.Components(units...)
	if len(cs) == 0 {
		return nil
	}
	last := cs[len(cs)-1]
	if nz := d.NonZeroComponents(units...); len(nz) > 0 {
		return nz
	}
	return []Component{last}
}

// String renders d in seconds: "1 second", "100 seconds", "1.5 seconds".
func (d Duration) String() string {
	if d.nanos == 0 && d.secs == 1 {
		return "1 second"
	}
	return d.Decimal() + " seconds"
}

// Decimal renders the exact second count of d without trailing zeros:
// "100", "1.5", "-0.25".
func (d Duration) Decimal() string {
	s := strconv.FormatInt(d.ToSeconds(), 10)
	if d.nanos == 0 {
		return s
	}
	frac := int64(d.SubsecNanos())
	if frac < 0 {
		frac = -frac
		if d.ToSeconds() == 0 {
			s = "-" + s
		}
	}
	digits := strconv.FormatInt(frac+nanosPerSecond, 10)[1:]
	return s + "." + strings.TrimRight(digits, "0")
}

// ParseDuration parses a bare second count ("-42") or a sequence of
// "<count> <unit>" pairs ("2 normyears 3 hours", "-5 d"). Each count
// carries its own sign.
func ParseDuration(s string) (Duration, error) {
	s = strings.TrimSpace(s)
	n, err := strconv.ParseInt(s, 10, 64)
	if err == nil {
		return Seconds(n), nil
	}
	if errors.Is(err, strconv.ErrRange) {
		return Duration{}, oops.Wrapf(ErrOutOfRange, "second count %q", s)
	}
	tokens := strings.Fields(s)
	if len(tokens) == 0 || len(tokens)%2 != 0 {
		log.WithField("input", s).Debug("duration has no count/unit pairs")
		return Duration{}, oops.Wrapf(ErrParse, "cannot parse %q as duration", s)
	}
	var total Duration
	for i := 0; i < len(tokens); i += 2 {
		n, err := strconv.ParseInt(tokens[i], 10, 64)
		if err != nil {
			log.WithField("input", s).WithError(err).Debug("bad duration count")
			return Duration{}, oops.Wrapf(ErrParse, "cannot parse %q as duration count", tokens[i])
		}
		u, err := ParseUnit(tokens[i+1])
		if err != nil {
			return Duration{}, err
		}
		term, err := Of(n, u)
		if err != nil {
			return Duration{}, err
		}
		if total, err = total.Add(term); err != nil {
			return Duration{}, err
		}
	}
	return total, nil
}
