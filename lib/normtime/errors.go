package normtime

import (
	"errors"
)

var (
	// ErrInvalidDate is returned when a field-based constructor receives a
	// year/month/day/hour/minute/second combination outside the valid range of
	// its calendar.
	ErrInvalidDate = errors.New("normtime: invalid date")

	// ErrParse is returned when text does not lexically match the expected
	// format.
	ErrParse = errors.New("normtime: parse error")

	// ErrOutOfRange is returned when an arithmetic operation or conversion
	// would overflow the underlying 64-bit representation.
	ErrOutOfRange = errors.New("normtime: value out of range")

	// ErrDivideByZero is returned by Duration.Div for a zero divisor.
	ErrDivideByZero = errors.New("normtime: division by zero")
)
