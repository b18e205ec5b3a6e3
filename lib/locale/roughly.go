package locale

import (
	"strconv"
	"strings"

	"github.com/go-i2p/normtime/lib/normtime"
)

// Roughly names the age bracket of d counted in whole normyears: "Kind",
// "Teenager", "Anfang 20", "Mitte 20", "Ende 20". With generic set the
// brackets below twenty use words that suit things as well as people.
// Negative spans are unborn.
func (l *Localizer) Roughly(d normtime.Duration, generic bool) string {
	ages := l.catalog.Ages
	pick := func(s Stage) string {
		if generic {
			return s.Generic
		}
		return s.Specific
	}

	years := d.In(normtime.Normyear)
	switch {
	case years < 0:
		return ages.Unborn
	case years <= 2:
		return pick(ages.Infant)
	case years <= 12:
		return pick(ages.Child)
	case years <= 19:
		return pick(ages.Teen)
	}

	var tpl string
	switch years % 10 {
	case 0, 1, 2:
		tpl = ages.Early
	case 3, 4, 5, 6:
		tpl = ages.Mid
	default:
		tpl = ages.Late
	}
	return strings.ReplaceAll(tpl, "{n}", strconv.FormatInt(years/10*10, 10))
}
