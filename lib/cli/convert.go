package cli

import (
	"encoding/hex"
	"fmt"
	"strconv"

	"github.com/go-i2p/normtime/lib/interchange"
	"github.com/go-i2p/normtime/lib/normtime"
	"github.com/go-i2p/normtime/lib/tex"
	"github.com/samber/oops"
	"github.com/spf13/cobra"
)

func newConvertCommand(a *app) *cobra.Command {
	var civil bool
	cmd := &cobra.Command{
		Use:   "convert <normtime> | --civil <YYYY-MM-DDTHH:MM:SS>",
		Short: "Convert between Normtime and Gregorian UTC",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !civil {
				t, err := parseTime(args[0])
				if err != nil {
					return err
				}
				a.printInstant(t)
				return nil
			}
			c, err := normtime.ParseCivil(args[0])
			if err != nil {
				return oops.Wrapf(err, "civil time %q", args[0])
			}
			t, err := normtime.FromCivil(c)
			if err != nil {
				return err
			}
			a.printInstant(t)
			return nil
		},
	}
	cmd.Flags().BoolVar(&civil, "civil", false, "read the argument as Gregorian UTC")
	return cmd
}

func newFieldsCommand(a *app) *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "fields <normtime>",
		Short: "Print every view of an instant as YAML or JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := parseTime(args[0])
			if err != nil {
				return err
			}
			rec := interchange.NewRecord(t, a.settings.Form)
			if asJSON {
				return interchange.EncodeJSON(a.out, rec)
			}
			return interchange.EncodeYAML(a.out, rec)
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "write JSON instead of YAML")
	return cmd
}

func newAddCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "add <normtime> <duration>",
		Short: "Add a duration such as \"3 normdays 4 hours\" to an instant",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := parseTime(args[0])
			if err != nil {
				return err
			}
			d, err := normtime.ParseDuration(args[1])
			if err != nil {
				return err
			}
			r, err := t.AddDuration(d)
			if err != nil {
				return err
			}
			a.printInstant(r)
			return nil
		},
	}
}

func newDiffCommand(a *app) *cobra.Command {
	var seconds bool
	cmd := &cobra.Command{
		Use:   "diff <from> <to>",
		Short: "Print the time from one instant to another",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			from, err := parseTime(args[0])
			if err != nil {
				return err
			}
			to, err := parseTime(args[1])
			if err != nil {
				return err
			}
			d, err := to.Difference(from)
			if err != nil {
				return err
			}
			if seconds {
				fmt.Fprintln(a.out, d.Decimal())
				return nil
			}
			fmt.Fprintln(a.out, a.formatDuration(d))
			return nil
		},
	}
	cmd.Flags().BoolVar(&seconds, "seconds", false, "print a plain second count")
	return cmd
}

func newUnixCommand(a *app) *cobra.Command {
	var to bool
	cmd := &cobra.Command{
		Use:   "unix <seconds> | --to <normtime>",
		Short: "Convert between Unix time and Normtime",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if to {
				t, err := parseTime(args[0])
				if err != nil {
					return err
				}
				u, err := t.Unix()
				if err != nil {
					return err
				}
				fmt.Fprintln(a.out, u)
				return nil
			}
			n, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return oops.Wrapf(normtime.ErrParse, "unix time %q", args[0])
			}
			t, err := normtime.FromUnix(n)
			if err != nil {
				return err
			}
			a.printInstant(t)
			return nil
		},
	}
	cmd.Flags().BoolVar(&to, "to", false, "convert a Normtime instant to Unix time")
	return cmd
}

func newAgeCommand(a *app) *cobra.Command {
	var (
		at      string
		generic bool
	)
	cmd := &cobra.Command{
		Use:   "age <birth>",
		Short: "Describe an age roughly, e.g. \"Mid 20s\"",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			birth, err := parseTime(args[0])
			if err != nil {
				return err
			}
			var now normtime.Time
			if at != "" {
				now, err = parseTime(at)
			} else {
				now, err = a.currentTime(cmd.Context(), false)
			}
			if err != nil {
				return err
			}
			d, err := now.Difference(birth)
			if err != nil {
				return err
			}
			fmt.Fprintln(a.out, a.settings.Locale.Roughly(d, generic))
			return nil
		},
	}
	cmd.Flags().StringVar(&at, "at", "", "reference instant instead of now")
	cmd.Flags().BoolVar(&generic, "generic", false, "use the generic wording for children")
	return cmd
}

func newTexCommand(a *app) *cobra.Command {
	var (
		symbols  bool
		dateOnly bool
	)
	cmd := &cobra.Command{
		Use:   "tex <normtime|duration>",
		Short: "Render an instant or a duration as LaTeX",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if t, err := normtime.ParseLenient(args[0]); err == nil {
				if dateOnly {
					fmt.Fprintln(a.out, tex.Date(t))
				} else {
					fmt.Fprintln(a.out, tex.DateTime(t))
				}
				return nil
			}
			d, err := normtime.ParseDuration(args[0])
			if err != nil {
				return oops.Wrapf(err, "%q is neither an instant nor a duration", args[0])
			}
			if symbols {
				fmt.Fprintln(a.out, tex.SymbolUnits(d, a.settings.Units...))
			} else {
				fmt.Fprintln(a.out, tex.UnitsLocale(d, a.settings.Locale, a.settings.Units...))
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&symbols, "symbols", false, "use siunitx unit macros for durations")
	cmd.Flags().BoolVar(&dateOnly, "date", false, "print only the date of an instant")
	return cmd
}

func newBinaryCommand(a *app) *cobra.Command {
	var i2p bool
	cmd := &cobra.Command{
		Use:   "binary <normtime>",
		Short: "Print the 8-byte big-endian encoding of an instant in hex",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := parseTime(args[0])
			if err != nil {
				return err
			}
			b := interchange.AppendBinary(nil, t)
			if i2p {
				if b, err = interchange.AppendI2PDate(nil, t); err != nil {
					return err
				}
			}
			fmt.Fprintln(a.out, hex.EncodeToString(b))
			return nil
		},
	}
	cmd.Flags().BoolVar(&i2p, "i2p", false, "use the I2P Date encoding (milliseconds since 1970)")
	return cmd
}
