package config

import (
	"errors"
	"os"
	"path/filepath"

	"github.com/go-i2p/logger"
	"github.com/go-i2p/normtime/lib/util"
	"github.com/samber/oops"
	"github.com/spf13/viper"
)

var (
	CfgFile string
	log     = logger.GetGoI2PLogger()
)

// NORMTIME_BASE_DIR is the directory under the user's home that holds the
// default config file.
const NORMTIME_BASE_DIR = ".normtime"

// StandardDirPermissions is the mode of the config directory.
const StandardDirPermissions = 0o755

// InitConfig points viper at the config file, loads the defaults and reads
// the file. Without --config a missing $HOME/.normtime/config.yaml is
// created from the defaults.
func InitConfig() error {
	if CfgFile != "" {
		viper.SetConfigFile(CfgFile)
	} else {
		viper.AddConfigPath(BuildConfigDirPath())
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
	}

	setDefaults()

	return handleConfigFile()
}

func setDefaults() {
	d := Defaults()

	viper.SetDefault("display.locale", d.Display.Locale)
	viper.SetDefault("display.units", d.Display.Units)
	viper.SetDefault("display.civil", d.Display.Civil)

	viper.SetDefault("interchange.form", d.Interchange.Form)

	viper.SetDefault("clock.ntp_enabled", d.Clock.NTPEnabled)
	viper.SetDefault("clock.ntp_servers", d.Clock.NTPServers)
	viper.SetDefault("clock.ntp_country", d.Clock.NTPCountry)
	viper.SetDefault("clock.ntp_timeout", d.Clock.NTPTimeout)
	viper.SetDefault("clock.concurring_servers", d.Clock.ConcurringServers)
	viper.SetDefault("clock.query_interval", d.Clock.QueryInterval)
}

func createDefaultConfig(defaultConfigDir string) error {
	defaultConfigFile := filepath.Join(defaultConfigDir, "config.yaml")
	if err := os.MkdirAll(defaultConfigDir, StandardDirPermissions); err != nil {
		return oops.Wrapf(err, "could not create config directory %s", defaultConfigDir)
	}
	if err := viper.SafeWriteConfigAs(defaultConfigFile); err != nil {
		return oops.Wrapf(err, "could not write default config file %s", defaultConfigFile)
	}
	log.Debugf("Created default configuration at: %s", defaultConfigFile)
	return nil
}

func handleConfigFile() error {
	err := viper.ReadInConfig()
	if err == nil {
		log.Debugf("Using config file: %s", viper.ConfigFileUsed())
		return nil
	}
	var notFound viper.ConfigFileNotFoundError
	switch {
	case CfgFile != "":
		return oops.Wrapf(err, "reading config file %s", CfgFile)
	case errors.As(err, &notFound):
		return createDefaultConfig(BuildConfigDirPath())
	default:
		return oops.Wrapf(err, "reading config file")
	}
}

// BuildConfigDirPath returns $HOME/.normtime.
func BuildConfigDirPath() string {
	return filepath.Join(util.UserHome(), NORMTIME_BASE_DIR)
}
