// Package interchange encodes Normtime values for structured data and the
// wire.
//
// An Instant wraps a normtime.Time and chooses one of four encodings:
//
//	FormText     "0123-04-05N06:07:08"
//	FormSeconds  3702522028
//	FormFields   {year: 123, month: 4, day: 5, hour: 6, minute: 7, second: 8}
//	FormCivil    "2185-04-30T06:20:28"
//
// Instant implements yaml.Marshaler, yaml.Unmarshaler, json.Marshaler and
// json.Unmarshaler. Decoding accepts every form regardless of Form and
// records the form it saw, so a decoded document re-encodes unchanged.
//
// A Span wraps a normtime.Duration and encodes it as a number of seconds.
// Whole spans are integers; spans with a sub-second part are written as an
// exact decimal ("1.5"). Strings such as "2 normdays 3 hours" are accepted
// on input.
//
// The binary forms are an 8-byte big-endian second count (AppendBinary,
// ReadInstant) and the I2P Date, an 8-byte count of milliseconds since the
// Unix epoch (AppendI2PDate, ReadI2PDate).
package interchange
