package tex

import (
	"strconv"
	"strings"

	"github.com/go-i2p/normtime/lib/locale"
	"github.com/go-i2p/normtime/lib/normtime"
)

// minus is U+2212, the typographic minus sign.
const minus = "−"

var unitCommands = map[normtime.Unit]string{
	normtime.Normyear:  `\normyear`,
	normtime.Normmonth: `\normmonth`,
	normtime.Normweek:  `\normweek`,
	normtime.Normday:   `\normday`,
	normtime.Hour:      `\hour`,
	normtime.Minute:    `\minute`,
	normtime.Second:    `\second`,
}

// Date renders the date part of t, e.g. 0123-04-05\,\uz{}.
func Date(t normtime.Time) string {
	date := t.DateString()
	if strings.HasPrefix(date, "-") {
		date = minus + date[1:]
	}
	return date + `\,\uz{}`
}

// DateTime renders the date and the clock of t, e.g.
// 0123-04-05\,\uz{}~06:07:08.
func DateTime(t normtime.Time) string {
	return Date(t) + "~" + t.ClockString()
}

// UnitSymbol returns the siunitx command of u, e.g. \normyear.
func UnitSymbol(u normtime.Unit) string {
	if cmd, ok := unitCommands[u]; ok {
		return cmd
	}
	return `\second`
}

// Duration renders d in seconds with English words, e.g. 100~seconds.
func Duration(d normtime.Duration) string {
	return d.Decimal() + "~" + normtime.Second.Name(pluralCount(d))
}

// DurationLocale is Duration in the language of l, e.g. 10~Sekunden.
func DurationLocale(d normtime.Duration, l *locale.Localizer) string {
	return l.Number(d) + "~" + l.UnitName(normtime.Second, pluralCount(d))
}

// DurationSymbol renders d as a siunitx quantity, e.g. \qty{100}{\second}.
func DurationSymbol(d normtime.Duration) string {
	return qty(d.Decimal(), normtime.Second)
}

// Units renders d in the given units with English words:
// 900~normdays 1~hour 23~minutes.
func Units(d normtime.Duration, units ...normtime.Unit) string {
	cs := d.DisplayComponents(units...)
	parts := make([]string, len(cs))
	for i, c := range cs {
		parts[i] = strconv.FormatInt(c.N, 10) + "~" + c.Unit.Name(c.N)
	}
	return strings.Join(parts, " ")
}

// UnitsLocale is Units in the language of l: 900~Normtage 1~Stunde.
func UnitsLocale(d normtime.Duration, l *locale.Localizer, units ...normtime.Unit) string {
	return l.JoinUnits(d, "~", " ", units...)
}

// SymbolUnits renders d in the given units as siunitx quantities joined by
// thin spaces: \qty{900}{\normday}\,\qty{1}{\hour}.
func SymbolUnits(d normtime.Duration, units ...normtime.Unit) string {
	cs := d.DisplayComponents(units...)
	parts := make([]string, len(cs))
	for i, c := range cs {
		parts[i] = qty(strconv.FormatInt(c.N, 10), c.Unit)
	}
	return strings.Join(parts, `\,`)
}

func qty(n string, u normtime.Unit) string {
	return `\qty{` + n + `}{` + UnitSymbol(u) + `}`
}

func pluralCount(d normtime.Duration) int64 {
	if d.SubsecNanos() != 0 {
		return 0
	}
	return d.ToSeconds()
}
