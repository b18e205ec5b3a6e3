package cli

import (
	"fmt"
	"strings"

	"github.com/go-i2p/normtime/lib/normtime"
	"github.com/samber/oops"
)

// parseTime reads an instant in the canonical or the lenient layout.
func parseTime(s string) (normtime.Time, error) {
	t, err := normtime.ParseLenient(strings.TrimSpace(s))
	if err != nil {
		return normtime.Time{}, oops.Wrapf(err, "instant %q", s)
	}
	return t, nil
}

// printInstant writes t as Normtime, and when configured as civil and Unix
// time, one labelled line each.
func (a *app) printInstant(t normtime.Time) {
	l := a.settings.Locale
	fmt.Fprintf(a.out, "%s: %s\n", l.Label("normtime"), t.Format())
	if !a.settings.Civil {
		return
	}
	if c, err := t.Civil(); err == nil {
		fmt.Fprintf(a.out, "%s: %s\n", l.Label("civil"), c.String())
	}
	if u, err := t.Unix(); err == nil {
		fmt.Fprintf(a.out, "%s: %d\n", l.Label("unix"), u)
	}
}

// formatDuration renders d in the configured units and locale.
func (a *app) formatDuration(d normtime.Duration) string {
	return a.settings.Locale.FormatUnits(d, a.settings.Units...)
}
