// Package config loads the normtime settings with viper.
//
// The config file is $HOME/.normtime/config.yaml unless --config names
// another one. A missing default file is written from the built-in
// defaults. Keys:
//
//	display:
//	  locale: en-US                  # language tag or Accept-Language list
//	  units: [normdays, hours, minutes]
//	  civil: true                    # show Gregorian UTC next to Normtime
//	interchange:
//	  form: text                     # text, seconds, fields or civil
//	clock:
//	  ntp_enabled: false
//	  ntp_servers: [0.pool.ntp.org, 1.pool.ntp.org, 2.pool.ntp.org, 3.pool.ntp.org]
//	  ntp_country: ""                # ISO code or auto, adds regional pools
//	  ntp_timeout: 5s
//	  concurring_servers: 3          # clamped to 1-4
//	  query_interval: 11m            # at least 5m
//
// NewSettingsFromViper returns the validated values as typed Settings.
package config
