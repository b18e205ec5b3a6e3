// Package cli implements the normtime command line: converting between
// Normtime, Gregorian and Unix time, Normtime arithmetic, LaTeX output, a
// live clock and a Starlark interpreter with the normtime module.
package cli
