package config

import (
	"strings"

	"github.com/go-i2p/normtime/lib/clock"
	"github.com/go-i2p/normtime/lib/interchange"
	"github.com/go-i2p/normtime/lib/locale"
	"github.com/go-i2p/normtime/lib/normtime"
	"github.com/spf13/viper"
)

// Settings is the validated, typed configuration.
type Settings struct {
	Locale *locale.Localizer
	Units  []normtime.Unit
	Civil  bool
	Form   interchange.Form

	NTPEnabled bool
	NTP        clock.Options
}

// Current reads the configuration viper has loaded.
func Current() ConfigDefaults {
	return ConfigDefaults{
		Display: DisplayDefaults{
			Locale: viper.GetString("display.locale"),
			Units:  viper.GetStringSlice("display.units"),
			Civil:  viper.GetBool("display.civil"),
		},
		Interchange: InterchangeDefaults{
			Form: viper.GetString("interchange.form"),
		},
		Clock: ClockDefaults{
			NTPEnabled:        viper.GetBool("clock.ntp_enabled"),
			NTPServers:        viper.GetStringSlice("clock.ntp_servers"),
			NTPCountry:        viper.GetString("clock.ntp_country"),
			NTPTimeout:        viper.GetDuration("clock.ntp_timeout"),
			ConcurringServers: viper.GetInt("clock.concurring_servers"),
			QueryInterval:     viper.GetDuration("clock.query_interval"),
		},
	}
}

// NewSettingsFromViper validates the current viper values and converts them.
func NewSettingsFromViper() (*Settings, error) {
	return NewSettings(Current())
}

// NewSettings validates cfg and converts it.
func NewSettings(cfg ConfigDefaults) (*Settings, error) {
	if err := Validate(cfg); err != nil {
		return nil, err
	}
	l, err := locale.Parse(cfg.Display.Locale)
	if err != nil {
		return nil, err
	}
	units, err := parseUnits(cfg.Display.Units)
	if err != nil {
		return nil, err
	}
	form, err := interchange.ParseForm(cfg.Interchange.Form)
	if err != nil {
		return nil, err
	}
	opts := clock.DefaultOptions()
	opts.Servers = append(clock.PriorityServers(ntpCountry(cfg.Clock.NTPCountry)), cfg.Clock.NTPServers...)
	opts.Timeout = cfg.Clock.NTPTimeout
	opts.Concurring = cfg.Clock.ConcurringServers
	opts.Interval = cfg.Clock.QueryInterval
	return &Settings{
		Locale:     l,
		Units:      units,
		Civil:      cfg.Display.Civil,
		Form:       form,
		NTPEnabled: cfg.Clock.NTPEnabled,
		NTP:        opts,
	}, nil
}

func ntpCountry(setting string) string {
	if strings.EqualFold(setting, "auto") {
		return clock.DetectCountry()
	}
	return setting
}
