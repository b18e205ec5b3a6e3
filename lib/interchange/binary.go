package interchange

import (
	"encoding/binary"

	"github.com/go-i2p/common/data"
	"github.com/go-i2p/logger"
	"github.com/go-i2p/normtime/lib/normtime"
	"github.com/samber/oops"
)

const (
	// InstantSize is the length in bytes of a binary Instant.
	InstantSize = 8

	// I2PDateSize is the length in bytes of an I2P Date.
	I2PDateSize = 8
)

/*
[Binary Instant]

Description
The Normtime second count: seconds since 2068-01-01T00:00:00 UTC.
Negative values are instants before the epoch.

Contents
8 byte big-endian two's complement integer
*/

// AppendBinary appends the 8-byte form of t to b.
func AppendBinary(b []byte, t normtime.Time) []byte {
	return binary.BigEndian.AppendUint64(b, uint64(t.Seconds()))
}

// ReadInstant reads a Time from the first InstantSize bytes of data.
// Any data after InstantSize is returned as a remainder.
func ReadInstant(buf []byte) (t normtime.Time, remainder []byte, err error) {
	if len(buf) < InstantSize {
		log.WithFields(logger.Fields{
			"at":     "ReadInstant",
			"length": len(buf),
		}).Debug("data is too short for an instant")
		err = oops.Wrapf(ErrShortBuffer, "instant needs %d bytes, have %d", InstantSize, len(buf))
		return
	}
	t = normtime.FromSeconds(int64(binary.BigEndian.Uint64(buf[:InstantSize])))
	remainder = buf[InstantSize:]
	log.WithFields(logger.Fields{
		"instant":          t.Seconds(),
		"remainder_length": len(remainder),
	}).Debug("read instant from data")
	return
}

// MarshalBinary implements encoding.BinaryMarshaler. The form is not
// encoded.
func (i Instant) MarshalBinary() ([]byte, error) {
	return AppendBinary(make([]byte, 0, InstantSize), i.Time), nil
}

// UnmarshalBinary implements encoding.BinaryUnmarshaler. It requires
// exactly InstantSize bytes.
func (i *Instant) UnmarshalBinary(buf []byte) error {
	t, rest, err := ReadInstant(buf)
	if err != nil {
		return err
	}
	if len(rest) != 0 {
		return oops.Wrapf(ErrDecode, "%d trailing bytes after instant", len(rest))
	}
	i.Time = t
	return nil
}

/*
[I2P Date]

Description
The number of milliseconds since midnight on January 1, 1970 in the GMT
timezone. Sub-second digits are always zero for a Normtime instant.

Contents
8 byte Integer
*/

// AppendI2PDate appends t as an I2P Date. Instants before 1970 or past the
// range of time.Time fail.
func AppendI2PDate(b []byte, t normtime.Time) ([]byte, error) {
	st, err := t.StdTime()
	if err != nil {
		return b, err
	}
	if st.Unix() < 0 {
		return b, oops.Wrapf(normtime.ErrOutOfRange, "%s is before the I2P date epoch", t)
	}
	date, err := data.DateFromTime(st)
	if err != nil {
		log.WithError(err).WithField("instant", t.String()).Debug("cannot build I2P date")
		return b, oops.Wrapf(err, "converting %s to an I2P date", t)
	}
	return append(b, date[:]...), nil
}

// ReadI2PDate reads an I2P Date from the first I2PDateSize bytes of buf.
// The millisecond part is floored away.
func ReadI2PDate(buf []byte) (t normtime.Time, remainder []byte, err error) {
	if len(buf) < I2PDateSize {
		log.WithFields(logger.Fields{
			"at":     "ReadI2PDate",
			"length": len(buf),
		}).Debug("data is too short for an I2P date")
		err = oops.Wrapf(ErrShortBuffer, "I2P date needs %d bytes, have %d", I2PDateSize, len(buf))
		return
	}
	var date data.Date
	copy(date[:], buf[:I2PDateSize])
	remainder = buf[I2PDateSize:]
	t, err = normtime.FromStdTime(date.Time())
	return
}
