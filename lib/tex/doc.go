// Package tex renders Normtime values as LaTeX for documents that load the
// siunitx package and declare the units \normyear, \normmonth, \normweek
// and \normday next to the SI \hour, \minute and \second.
//
// Dates use a true minus sign before negative years and end in \,\uz{},
// the marker for a Normtime date. Words are joined to their counts by a
// non-breaking space (~).
package tex
