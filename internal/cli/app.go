package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/mmcdole/velocidad/internal/addon"
	"github.com/mmcdole/velocidad/internal/clipboard"
	"github.com/mmcdole/velocidad/internal/config"
	"github.com/mmcdole/velocidad/internal/domain"
	"github.com/mmcdole/velocidad/internal/host"
	"github.com/mmcdole/velocidad/internal/logging"
	"github.com/mmcdole/velocidad/internal/speech"
	"github.com/mmcdole/velocidad/internal/tone"
	"golang.org/x/term"
)

// providerLoader resolves the measurement provider. It can be overridden
// in tests.
var providerLoader addon.LoaderFunc

// clipboardWriter is the clipboard used by every command. It can be
// overridden in tests.
var clipboardWriter domain.Clipboard = clipboard.System{}

// appOptions are the parts of the wiring that differ between the
// interactive host and headless commands
type appOptions struct {
	sinks        []domain.Notifier
	presenter    domain.ResultPresenter
	openSettings func()
	gestures     bool
	bell         io.Writer // nil when something else owns the terminal
}

// app is a fully wired host with the speed test add-on active
type app struct {
	store  *config.Store
	cfg    *config.Config
	logger *slog.Logger
	closer io.Closer
	voice  io.Closer

	host  *host.Host
	addon *addon.Addon
}

// loadStore reads the configuration, tolerating a missing file
func loadStore() (*config.Store, *config.Config, error) {
	store := config.NewStore(configDir)
	cfg, err := store.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}
	return store, cfg, nil
}

// newApp wires configuration, logging, result sinks and the add-on
func newApp(ctx context.Context, opts appOptions) (*app, error) {
	store, cfg, err := loadStore()
	if err != nil {
		return nil, err
	}

	// Fall back to null logger if file logging fails
	logger, closer, err := logging.SetupLogger(&cfg.Logging)
	if err != nil {
		logger = logging.NullLogger()
		closer = nopCloser{}
	}
	slog.SetDefault(logger)
	logger.Info("starting velocidad", "version", Version, "config", store.Path())

	a := &app{
		store:  store,
		cfg:    cfg,
		logger: logger,
		closer: closer,
		voice:  nopCloser{},
		host:   host.New(),
	}

	notify := speech.NewAnnouncer(logger, opts.sinks...)
	if cfg.Speech.Enabled {
		speaker, err := speech.NewSpeaker(speech.SpeakerOptions{
			Command: cfg.Speech.Command,
			Args:    cfg.Speech.Args,
			Logger:  logging.Component(logger, "speech"),
		})
		if err != nil {
			logger.Warn("spoken notices disabled", "error", err)
		} else {
			notify.Add(speaker)
			a.voice = speaker
		}
	}

	tones := tone.NewPlayer(tone.PlayerOptions{
		Name:   cfg.Tones.Player,
		Bell:   opts.bell,
		Logger: logging.Component(logger, "tone"),
	})

	addonOpts := addon.Options{
		Settings:        store,
		ProviderEnabled: cfg.Provider.Enabled,
		Loader:          providerLoader,
		Notifier:        notify,
		Clipboard:       clipboardWriter,
		Tones:           tones,
		Presenter:       opts.presenter,
		Loop: tone.LoopConfig{
			Duration: cfg.Tones.Duration,
			Interval: cfg.Tones.Interval,
		},
		OpenSettings: opts.openSettings,
		Logger:       logging.Component(logger, "addon"),
	}
	if opts.gestures {
		addonOpts.StartGesture = "t"
		addonOpts.SettingsGesture = "c"
	}

	a.addon = addon.New(addonOpts)
	if err := a.addon.Activate(ctx, a.host); err != nil {
		_ = a.voice.Close()
		_ = closer.Close()
		return nil, fmt.Errorf("failed to activate speed test: %w", err)
	}

	return a, nil
}

// Close deactivates the add-on, stops speech and flushes the log
func (a *app) Close() {
	a.addon.Deactivate()
	_ = a.voice.Close()
	a.logger.Info("shutting down")
	_ = a.closer.Close()
}

// terminalBell returns stdout when it is a terminal, nil otherwise
func terminalBell() io.Writer {
	if term.IsTerminal(int(os.Stdout.Fd())) {
		return os.Stdout
	}
	return nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
