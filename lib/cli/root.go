package cli

import (
	"io"

	"github.com/go-i2p/normtime/lib/config"
	"github.com/go-i2p/normtime/lib/interchange"
	"github.com/go-i2p/normtime/lib/util"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// app carries the loaded settings to the commands.
type app struct {
	settings *config.Settings
	out      io.Writer
}

// NewRootCommand returns the normtime command with all subcommands.
func NewRootCommand() *cobra.Command {
	a := &app{}
	var form interchange.Form

	root := &cobra.Command{
		Use:   "normtime",
		Short: "Metric calendar: 100,000-second normdays since 2068-01-01",
		Long: `normtime converts between Normtime, Gregorian UTC and Unix time.

A normyear has 10 normmonths of 30 normdays; a normday is 100,000 seconds.
Instants are written YYYY-MM-DDNHH:MM:SS with 0-based month and day, so the
epoch 2068-01-01T00:00:00 UTC is 0000-00-00N00:00:00.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.load(cmd)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			util.CloseAll()
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&config.CfgFile, "config", "", "config file (default $HOME/.normtime/config.yaml)")
	flags.String("locale", "", "language for names and numbers, e.g. de or \"fr, de;q=0.8\"")
	flags.StringSlice("units", nil, "units durations are broken into, e.g. normdays,hours")
	flags.Var(&form, "form", "interchange form of instants: text, seconds, fields or civil")

	root.AddCommand(
		newNowCommand(a),
		newConvertCommand(a),
		newFieldsCommand(a),
		newAddCommand(a),
		newDiffCommand(a),
		newUnixCommand(a),
		newAgeCommand(a),
		newTexCommand(a),
		newBinaryCommand(a),
		newWatchCommand(a),
		newScriptCommand(a),
		newReplCommand(a),
	)
	return root
}

// load reads the config file, lets the global flags override it and
// validates the result.
func (a *app) load(cmd *cobra.Command) error {
	a.out = cmd.OutOrStdout()
	if err := config.InitConfig(); err != nil {
		return err
	}
	bindings := map[string]string{
		"locale": "display.locale",
		"units":  "display.units",
		"form":   "interchange.form",
	}
	var bindErr error
	// Visit only sees flags set on the command line.
	cmd.Flags().Visit(func(f *pflag.Flag) {
		if key, ok := bindings[f.Name]; ok && bindErr == nil {
			bindErr = viper.BindPFlag(key, f)
		}
	})
	if bindErr != nil {
		return bindErr
	}
	s, err := config.NewSettingsFromViper()
	if err != nil {
		return err
	}
	a.settings = s
	log.WithField("locale", s.Locale.Tag().String()).Debug("settings loaded")
	return nil
}
