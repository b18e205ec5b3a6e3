// Package clock tells the current Normtime.
//
// A Clock reads the system time and adds an offset. The offset starts at
// zero and is normally maintained by a Synchronizer, which asks a few
// randomly chosen NTP servers, rejects implausible answers, and stores the
// median correction when the answers agree.
//
// Usage:
//
//	c := clock.New()
//	s := clock.NewSynchronizer(c, &clock.DefaultNTPClient{}, clock.DefaultOptions())
//	if _, err := s.Sync(ctx); err != nil {
//	    log.WithError(err).Warn("using the uncorrected system clock")
//	}
//	now, err := c.Now()
//
// Start runs Sync periodically in the background until Stop is called.
// Sync is rate limited, so callers may invoke it freely.
package clock
