// Package script exposes Normtime to Starlark programs.
//
// The predeclared module normtime offers constructors for instants and
// durations. Instants support + and - with durations, - between each
// other and ordering. Durations support + - * and ordering.
//
//	t = normtime.time(123, 4, 5, hour=6)
//	print(t + normtime.duration(3, "normdays"))
//	print((normtime.parse("0124-00-00") - t).normdays)
package script
