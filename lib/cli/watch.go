package cli

import (
	"context"
	"fmt"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/go-i2p/normtime/lib/clock"
	"github.com/go-i2p/normtime/lib/config"
	"github.com/go-i2p/normtime/lib/normtime"
	"github.com/go-i2p/normtime/lib/util"
	"github.com/go-i2p/normtime/lib/util/signals"
	"github.com/spf13/cobra"
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	clockStyle = lipgloss.NewStyle().Bold(true).Padding(1, 2).
			Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("12"))
	civilStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	helpStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Italic(true)
	errStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
)

type tickMsg time.Time

type syncMsg struct {
	offset time.Duration
}

// watchModel is the bubbletea model of the live clock.
type watchModel struct {
	app    *app
	clock  *clock.Clock
	now    normtime.Time
	offset time.Duration
	err    error
}

func newWatchModel(a *app, c *clock.Clock) watchModel {
	m := watchModel{app: a, clock: c, offset: c.Offset()}
	m.now, m.err = c.Now()
	return m
}

func (m watchModel) tick() tea.Cmd {
	return tea.Tick(m.clock.UntilNextSecond(), func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m watchModel) Init() tea.Cmd {
	return m.tick()
}

func (m watchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			return m, tea.Quit
		}
	case tickMsg:
		m.now, m.err = m.clock.Now()
		return m, m.tick()
	case syncMsg:
		m.offset = msg.offset
	}
	return m, nil
}

func (m watchModel) View() string {
	l := m.app.settings.Locale
	if m.err != nil {
		return errStyle.Render(m.err.Error()) + "\n"
	}
	view := titleStyle.Render(l.Label("normtime")) + "\n" + clockStyle.Render(m.now.Format()) + "\n"
	if m.app.settings.Civil {
		if c, err := m.now.Civil(); err == nil {
			view += civilStyle.Render(fmt.Sprintf("%s: %s UTC", l.Label("civil"), c.String())) + "\n"
		}
	}
	if m.offset != 0 {
		view += civilStyle.Render(fmt.Sprintf("%s: %s", l.Label("offset"), m.offset.Round(time.Millisecond))) + "\n"
	}
	return view + helpStyle.Render("q to quit") + "\n"
}

// syncForwarder passes synchronizations on to the running program.
type syncForwarder struct {
	program *tea.Program
}

func (f syncForwarder) OnSync(now normtime.Time, offset time.Duration) {
	f.program.Send(syncMsg{offset: offset})
}

func newWatchCommand(a *app) *cobra.Command {
	var (
		plain bool
		ntp   bool
		count int
	)
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Show a live Normtime clock",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, s := a.syncedClock(cmd.Context(), ntp)
			if s != nil {
				s.Start()
				util.RegisterCloser(util.CloserFunc(func() error {
					s.Stop()
					return nil
				}))
			}
			if plain {
				return a.watchPlain(cmd.Context(), c, count)
			}
			p := tea.NewProgram(newWatchModel(a, c), tea.WithOutput(a.out), tea.WithAltScreen())
			if s != nil {
				s.AddListener(syncForwarder{program: p})
			}
			_, err := p.Run()
			return err
		},
	}
	cmd.Flags().BoolVar(&plain, "plain", false, "print one line per second instead of a full-screen clock")
	cmd.Flags().BoolVar(&ntp, "ntp", false, "keep the clock corrected with NTP")
	cmd.Flags().IntVar(&count, "count", 0, "with --plain, stop after this many lines")
	return cmd
}

// watchPlain prints the time at every second until interrupted. SIGHUP
// reloads the configuration.
func (a *app) watchPlain(ctx context.Context, c *clock.Clock, count int) error {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var mu sync.Mutex
	interruptID := signals.RegisterInterruptHandler(signals.Handler(cancel))
	reloadID := signals.RegisterReloadHandler(func() {
		if err := config.InitConfig(); err != nil {
			log.WithError(err).Warn("config reload failed")
			return
		}
		s, err := config.NewSettingsFromViper()
		if err != nil {
			log.WithError(err).Warn("config reload failed")
			return
		}
		mu.Lock()
		a.settings = s
		mu.Unlock()
	})
	defer signals.DeregisterInterruptHandler(interruptID)
	defer signals.DeregisterReloadHandler(reloadID)
	go signals.Handle()
	defer signals.StopHandle()

	for printed := 0; count <= 0 || printed < count; printed++ {
		if printed > 0 {
			timer := time.NewTimer(c.UntilNextSecond())
			select {
			case <-ctx.Done():
				timer.Stop()
				return nil
			case <-timer.C:
			}
		}
		t, err := c.Now()
		if err != nil {
			return err
		}
		mu.Lock()
		line := t.Format()
		if a.settings.Civil {
			if cv, err := t.Civil(); err == nil {
				line += "  " + cv.String()
			}
		}
		mu.Unlock()
		fmt.Fprintln(a.out, line)
	}
	return nil
}
