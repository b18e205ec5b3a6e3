package cli

import (
	"github.com/go-i2p/normtime/lib/script"
	"github.com/go-i2p/normtime/lib/util"
	"github.com/samber/oops"
	"github.com/spf13/cobra"
)

func newScriptCommand(a *app) *cobra.Command {
	var ntp bool
	cmd := &cobra.Command{
		Use:   "script <file.star>",
		Short: "Run a Starlark script with the normtime module",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !util.CheckFileExists(args[0]) {
				return oops.Errorf("script %s does not exist", args[0])
			}
			c, _ := a.syncedClock(cmd.Context(), ntp)
			script.NowFunc = c.Std
			_, err := script.Exec(args[0], nil, a.out)
			return err
		},
	}
	cmd.Flags().BoolVar(&ntp, "ntp", false, "correct normtime.now() with NTP")
	return cmd
}

func newReplCommand(a *app) *cobra.Command {
	var ntp bool
	cmd := &cobra.Command{
		Use:   "repl",
		Short: "Start an interactive Starlark session with the normtime module",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			c, _ := a.syncedClock(cmd.Context(), ntp)
			script.NowFunc = c.Std
			script.REPL()
		},
	}
	cmd.Flags().BoolVar(&ntp, "ntp", false, "correct normtime.now() with NTP")
	return cmd
}
