package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/go-i2p/normtime/lib/clock"
	"github.com/go-i2p/normtime/lib/normtime"
	"github.com/spf13/cobra"
)

// newNTPClient is replaced in tests.
var newNTPClient = func() clock.NTPClient { return &clock.DefaultNTPClient{} }

// syncedClock returns a clock corrected by one NTP round when ntp is set
// or enabled in the config. A failed round leaves the system time in use.
func (a *app) syncedClock(ctx context.Context, ntp bool) (*clock.Clock, *clock.Synchronizer) {
	c := clock.New()
	if !ntp && !a.settings.NTPEnabled {
		return c, nil
	}
	s := clock.NewSynchronizer(c, newNTPClient(), a.settings.NTP)
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, cancel := context.WithTimeout(ctx, 2*s.Options().Timeout)
	defer cancel()
	if _, err := s.Sync(ctx); err != nil {
		log.WithError(err).Warn("NTP synchronization failed; using the system clock")
	}
	return c, s
}

func (a *app) currentTime(ctx context.Context, ntp bool) (normtime.Time, error) {
	c, _ := a.syncedClock(ctx, ntp)
	return c.Now()
}

func newNowCommand(a *app) *cobra.Command {
	var ntp bool
	cmd := &cobra.Command{
		Use:   "now",
		Short: "Print the current Normtime",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, s := a.syncedClock(cmd.Context(), ntp)
			t, err := c.Now()
			if err != nil {
				return err
			}
			a.printInstant(t)
			if s != nil && !s.LastSync().IsZero() {
				fmt.Fprintf(a.out, "%s: %s\n", a.settings.Locale.Label("offset"),
					c.Offset().Round(time.Millisecond))
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&ntp, "ntp", false, "correct the system clock with NTP first")
	return cmd
}
