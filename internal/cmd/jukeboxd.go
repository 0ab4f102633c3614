// Package cmd holds jukeboxd's kong command tree: a single Run daemon
// command plus the config subcommand scaffolding, grounded on this
// repo's original signal.NotifyContext shutdown pattern and its
// "config init" template generator (see config.go in this package).
package cmd

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/friendteaminc/jukebox/config"
	"github.com/friendteaminc/jukebox/dispatcher"
	"github.com/friendteaminc/jukebox/internal/log"
	"github.com/friendteaminc/jukebox/supervisor"
	"github.com/friendteaminc/jukebox/telemetry"
	"github.com/friendteaminc/jukebox/tui"
)

// LogConfig groups the logger flags kong embeds under "log." (mirrors the
// teacher's own Log sub-config shape).
type LogConfig struct {
	Level   string `help:"Log level (trace,debug,info,warn,error)" default:"info" env:"JUKEBOXD_LOG_LEVEL"`
	File    string `help:"Optional log file path" env:"JUKEBOXD_LOG_FILE"`
	RawFile string `help:"Optional raw frame trace file path" env:"JUKEBOXD_LOG_RAWFILE"`
}

// CLI is the root kong command tree.
type CLI struct {
	Log    LogConfig     `embed:"" prefix:"log."`
	Run    RunCmd        `cmd:"" help:"Run the JukeBox host daemon" default:"1"`
	Config ConfigCommand `cmd:"" help:"Generate or inspect daemon configuration"`
}

// RunCmd is the daemon's main command: discovers devices, dispatches
// actions, and persists profile config, per spec §4.5/§4.6/§6.
type RunCmd struct {
	ConfigPath string `help:"Profile config path (defaults to the OS config dir)" env:"JUKEBOXD_CONFIG_PATH"`
	TUI        bool   `help:"Launch the terminal operator console" default:"false"`
}

func (r *RunCmd) Run(logger *slog.Logger, rawLogger log.RawLogger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return r.start(ctx, logger, rawLogger)
}

func (r *RunCmd) start(ctx context.Context, logger *slog.Logger, rawLogger log.RawLogger) error {
	store, err := r.loadStore()
	if err != nil {
		return err
	}

	disp := dispatcher.New(store, dispatcher.ReadFileIconLoader)

	var feed tui.Feed
	var sink supervisor.Sink = supervisor.SinkFunc(func(e supervisor.Event) {
		logEvent(e, logger)
	})
	if r.TUI {
		feed = tui.NewFeed()
		sink = supervisor.MultiSink{sink, feed}
	}

	sv := supervisor.New(sink,
		supervisor.WithReactor(disp),
		supervisor.WithSampler(telemetry.GopsutilSampler{}),
		supervisor.WithLogger(logger),
		supervisor.WithRawLogger(rawLogger),
	)

	runDone := make(chan error, 1)
	go func() { runDone <- sv.Run(ctx) }()

	if r.TUI {
		return runWithConsole(feed, runDone)
	}

	logger.Info("jukeboxd started", "devices_known_profiles", store.ProfileNames())
	err = <-runDone
	if err == context.Canceled {
		return nil
	}
	return err
}

func (r *RunCmd) loadStore() (*config.Store, error) {
	if r.ConfigPath != "" {
		return config.Load(r.ConfigPath)
	}
	return config.LoadDefault()
}

// logEvent is the logging-only half of the sink; the dispatcher itself is
// wired in directly as the supervisor's Reactor (see supervisor.WithReactor
// above), so it reaches the live Commander without going through events.
func logEvent(e supervisor.Event, logger *slog.Logger) {
	switch ev := e.(type) {
	case supervisor.ConnectedEvent:
		logger.Info("device connected", "uid", ev.UID, "type", ev.DeviceType.String())
	case supervisor.LostConnectionEvent:
		logger.Warn("device connection lost", "uid", ev.UID)
	case supervisor.DisconnectedEvent:
		logger.Info("device disconnected", "uid", ev.UID)
	}
}

func runWithConsole(feed tui.Feed, runDone chan error) error {
	p := tea.NewProgram(tui.New(feed), tea.WithAltScreen())
	progDone := make(chan error, 1)
	go func() { _, err := p.Run(); progDone <- err }()

	select {
	case err := <-runDone:
		p.Quit()
		<-progDone
		if err == context.Canceled {
			return nil
		}
		return err
	case err := <-progDone:
		return err
	}
}
