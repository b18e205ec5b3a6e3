package clock

import (
	"time"

	"github.com/beevik/ntp"
	"github.com/go-i2p/logger"
	"github.com/samber/oops"
)

const (
	maxRTT            = 2 * time.Second
	maxClockOffset    = 10 * time.Second
	maxRootDispersion = 1 * time.Second
	maxRootDelay      = 1 * time.Second
	maxStratum        = 15
)

// validateResponse checks an NTP answer against leap state, stratum,
// timing and root metrics.
func validateResponse(server string, r *ntp.Response) error {
	reason := ""
	switch {
	case r.Leap == ntp.LeapNotInSync:
		reason = "server clock not synchronized"
	case r.Stratum == 0 || r.Stratum > maxStratum:
		reason = "stratum out of range"
	case r.RTT < 0 || r.RTT > maxRTT:
		reason = "round-trip delay out of bounds"
	case absDuration(r.ClockOffset) > maxClockOffset:
		reason = "clock offset out of bounds"
	case r.Time.IsZero():
		reason = "zero time"
	case r.RootDispersion > maxRootDispersion:
		reason = "root dispersion too high"
	case r.RootDelay > maxRootDelay:
		reason = "root delay too high"
	default:
		return nil
	}
	log.WithFields(logger.Fields{
		"at":      "clock.validateResponse",
		"server":  server,
		"stratum": r.Stratum,
		"rtt":     r.RTT.String(),
		"offset":  r.ClockOffset.String(),
		"reason":  reason,
	}).Debug("rejecting NTP response")
	return oops.Wrapf(ErrInvalidResponse, "%s: %s", server, reason)
}

func absDuration(d time.Duration) time.Duration {
	if d < 0 {
		return -d
	}
	return d
}
