package interchange

import "errors"

var (
	// ErrUnknownForm is returned for a form name other than text, seconds,
	// fields or civil.
	ErrUnknownForm = errors.New("interchange: unknown form")

	// ErrDecode is returned when a document node has a shape no form uses.
	ErrDecode = errors.New("interchange: cannot decode value")

	// ErrShortBuffer is returned when binary input holds fewer bytes than
	// the encoding needs.
	ErrShortBuffer = errors.New("interchange: data is too short")
)
