package clock

import "errors"

var (
	// ErrNoServers is returned when no NTP server is configured.
	ErrNoServers = errors.New("clock: no NTP servers configured")

	// ErrInvalidResponse is returned when an NTP answer fails validation.
	ErrInvalidResponse = errors.New("clock: invalid NTP response")

	// ErrInconsistent is returned when the servers disagree by more than
	// the allowed variance.
	ErrInconsistent = errors.New("clock: NTP servers disagree")
)
