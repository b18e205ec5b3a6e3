// Package normtime implements the Normtime calendar: a uniform, SI-second
// based calendar whose zero point is 2068-01-01T00:00:00 in the proleptic
// Gregorian civil calendar.
//
// Normtime units have fixed lengths:
//
//	1 normday   :=    100,000 s (ca. 1.16 earth days)
//	1 normweek  :=  1,000,000 s (10 normdays)
//	1 normmonth :=  3,000,000 s (30 normdays)
//	1 normyear  := 30,000,000 s (10 normmonths, ca. 347 earth days)
//
// An instant is a Time, a signed count of seconds since the Normtime epoch.
// Fields, civil dates and the text form are derived views of that count.
// Months and days are numbered from zero, so Date(0, 0, 0, 0, 0, 0) is the
// epoch itself and is written 0000-00-00N00:00:00.
//
// Every fallible operation returns an error wrapping one of ErrInvalidDate,
// ErrParse or ErrOutOfRange; use errors.Is to tell them apart. Nothing wraps,
// clamps or saturates silently.
//
// Usage:
//
//	t, err := normtime.Date(123, 4, 5, 6, 7, 8)
//	if err != nil {
//	    return err
//	}
//	fmt.Println(t)          // 0123-04-05N06:07:08
//	c, _ := t.Civil()
//	fmt.Println(c)          // 2185-04-30T06:20:28
//	d, _ := normtime.Normdays(1)
//	later, _ := t.AddDuration(d)
//
// All types are immutable values and safe for concurrent use.
package normtime
