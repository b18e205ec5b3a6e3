package config

import (
	"slices"
	"time"

	"github.com/go-i2p/logger"
	"github.com/go-i2p/normtime/lib/clock"
	"github.com/go-i2p/normtime/lib/interchange"
	"github.com/go-i2p/normtime/lib/locale"
	"github.com/go-i2p/normtime/lib/normtime"
)

// ConfigDefaults holds every configuration value. Defaults returns the
// built-in values and Current the ones viper has loaded.
type ConfigDefaults struct {
	Display     DisplayDefaults
	Interchange InterchangeDefaults
	Clock       ClockDefaults
}

// DisplayDefaults controls how instants and durations are printed.
type DisplayDefaults struct {
	// Locale is a language tag or Accept-Language list.
	// Default: en-US
	Locale string

	// Units are the unit names durations are broken into.
	// Default: normdays, hours, minutes
	Units []string

	// Civil prints the Gregorian UTC time next to Normtime.
	// Default: true
	Civil bool
}

// InterchangeDefaults controls the encoding of instants in YAML and JSON.
type InterchangeDefaults struct {
	// Form is one of text, seconds, fields or civil.
	// Default: text
	Form string
}

// ClockDefaults configures the NTP-corrected clock.
type ClockDefaults struct {
	// NTPEnabled turns on synchronization for commands that read the clock.
	// Default: false
	NTPEnabled bool

	// NTPServers are the hosts queried.
	// Default: the four pool.ntp.org servers
	NTPServers []string

	// NTPCountry adds the country and continent pools of an ISO country
	// code in front of NTPServers. "auto" guesses it from the timezone.
	// Default: "" (off)
	NTPCountry string

	// NTPTimeout bounds one query.
	// Default: 5 seconds
	NTPTimeout time.Duration

	// ConcurringServers is how many servers must agree. Clamped to 1-4.
	// Default: 3
	ConcurringServers int

	// QueryInterval is the pause between background synchronizations.
	// Values under 5 minutes are raised to 5 minutes.
	// Default: 11 minutes
	QueryInterval time.Duration
}

// Defaults returns the built-in configuration.
func Defaults() ConfigDefaults {
	ntp := clock.DefaultOptions()
	return ConfigDefaults{
		Display: DisplayDefaults{
			Locale: "en-US",
			Units: []string{
				normtime.Normday.String(),
				normtime.Hour.String(),
				normtime.Minute.String(),
			},
			Civil: true,
		},
		Interchange: InterchangeDefaults{
			Form: interchange.FormText.String(),
		},
		Clock: ClockDefaults{
			NTPEnabled:        false,
			NTPServers:        slices.Clone(ntp.Servers),
			NTPTimeout:        ntp.Timeout,
			ConcurringServers: ntp.Concurring,
			QueryInterval:     ntp.Interval,
		},
	}
}

// Validate checks that every value can be used. It returns the first
// problem found.
func Validate(cfg ConfigDefaults) error {
	log.WithFields(logger.Fields{
		"at":     "config.Validate",
		"reason": "verification_requested",
	}).Debug("validating configuration")
	validators := []func() error{
		func() error { return validateDisplay(cfg.Display) },
		func() error { return validateInterchange(cfg.Interchange) },
		func() error { return validateClock(cfg.Clock) },
	}
	for _, validator := range validators {
		if err := validator(); err != nil {
			log.WithError(err).Error("Configuration validation failed")
			return err
		}
	}
	return nil
}

func validateDisplay(display DisplayDefaults) error {
	if _, err := locale.Parse(display.Locale); err != nil {
		return newValidationError("display.locale: " + err.Error())
	}
	if len(display.Units) == 0 {
		return newValidationError("display.units must name at least one unit")
	}
	if _, err := parseUnits(display.Units); err != nil {
		return newValidationError("display.units: " + err.Error())
	}
	return nil
}

func validateInterchange(ic InterchangeDefaults) error {
	if _, err := interchange.ParseForm(ic.Form); err != nil {
		return newValidationError("interchange.form: " + err.Error())
	}
	return nil
}

func validateClock(c ClockDefaults) error {
	if c.NTPEnabled && len(c.NTPServers) == 0 && c.NTPCountry == "" {
		log.WithFields(logger.Fields{
			"at":     "validateClock",
			"reason": "no_servers",
		}).Error("invalid clock configuration")
		return newValidationError("clock.ntp_servers must not be empty when clock.ntp_enabled is set")
	}
	if c.NTPTimeout <= 0 {
		log.WithField("ntp_timeout", c.NTPTimeout).Error("invalid clock configuration")
		return newValidationError("clock.ntp_timeout must be positive")
	}
	return nil
}

func parseUnits(names []string) ([]normtime.Unit, error) {
	units := make([]normtime.Unit, 0, len(names))
	for _, name := range names {
		u, err := normtime.ParseUnit(name)
		if err != nil {
			return nil, err
		}
		units = append(units, u)
	}
	return units, nil
}

// validationError is returned when configuration validation fails
type validationError struct {
	message string
}

func newValidationError(message string) error {
	return &validationError{message: message}
}

func (e *validationError) Error() string {
	return "configuration validation failed: " + e.message
}
