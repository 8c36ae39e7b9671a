// Package addon is the speed test add-on: it resolves the measurement
// provider, owns the orchestrator, and registers the start command and the
// settings panel with the host for as long as it is active.
package addon

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/mmcdole/velocidad/internal/command"
	"github.com/mmcdole/velocidad/internal/domain"
	"github.com/mmcdole/velocidad/internal/host"
	"github.com/mmcdole/velocidad/internal/notice"
	"github.com/mmcdole/velocidad/internal/provider"
	"github.com/mmcdole/velocidad/internal/service"
	"github.com/mmcdole/velocidad/internal/tone"
)

// Host surface identifiers
const (
	StartCommandID    = "speedtest.start"
	SettingsCommandID = "speedtest.settings"
	SettingsPanelID   = "speedtestConfig"

	feedbackSoundKey   = "feedbackSound"
	resultsInWindowKey = "resultsInWindow"
)

// ErrNoSettings indicates the add-on was configured without a settings store
var ErrNoSettings = errors.New("speed test settings store is required")

// surface is the part of the host an add-on registers with
type surface interface {
	RegisterCommand(cmd command.Command) error
	UnregisterCommand(id string)
	RegisterSettingsPanel(panel host.SettingsPanel) error
	UnregisterSettingsPanel(id string)
}

// settingsStore reads and persists the speed test settings
type settingsStore interface {
	Feedback() domain.FeedbackConfig
	SaveFeedback(cfg domain.FeedbackConfig) error
}

// LoaderFunc resolves the measurement provider
type LoaderFunc func(enabled bool, logger *slog.Logger) (domain.ProviderFactory, error)

// Options configures the add-on
type Options struct {
	Settings        settingsStore // required
	ProviderEnabled bool
	Loader          LoaderFunc // defaults to provider.Load
	Notifier        domain.Notifier
	Clipboard       domain.Clipboard
	Tones           domain.TonePlayer
	Presenter       domain.ResultPresenter
	Loop            tone.LoopConfig
	StartGesture    string // optional key for the start command
	SettingsGesture string // optional key that opens the settings panel
	OpenSettings    func() // host callback showing the settings panel
	Logger          *slog.Logger
}

// Addon is the per-activation context of the speed test
type Addon struct {
	opts   Options
	logger *slog.Logger

	mu      sync.Mutex
	surface surface
	svc     *service.SpeedTestService
}

// New creates an inactive add-on
func New(opts Options) *Addon {
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.Loader == nil {
		opts.Loader = provider.Load
	}
	return &Addon{opts: opts, logger: opts.Logger}
}

// Activate resolves the provider and registers with the host. A provider
// that fails to load is announced once; the command stays registered and
// reports the provider as unavailable on every run.
func (a *Addon) Activate(ctx context.Context, s surface) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.svc != nil {
		return errors.New("add-on already active")
	}
	if a.opts.Settings == nil {
		return ErrNoSettings
	}

	factory, err := a.opts.Loader(a.opts.ProviderEnabled, a.logger)
	if err != nil {
		a.logger.Warn("measurement provider failed to load", "error", err)
		if a.opts.Notifier != nil {
			a.opts.Notifier.Notify(notice.LoadFailed)
		}
		factory = nil
	}

	svc := service.NewSpeedTestService(ctx, service.SpeedTestOptions{
		Factory:   factory,
		Settings:  a.opts.Settings,
		Notifier:  a.opts.Notifier,
		Clipboard: a.opts.Clipboard,
		Tones:     a.opts.Tones,
		Presenter: a.opts.Presenter,
		Loop:      a.opts.Loop,
		Logger:    a.logger,
	})

	if err := s.RegisterCommand(command.Command{
		ID:          StartCommandID,
		Description: notice.CommandDescription,
		Category:    notice.CommandCategory,
		Gesture:     a.opts.StartGesture,
		Run:         a.startTest(svc),
	}); err != nil {
		svc.Close()
		return fmt.Errorf("failed to register start command: %w", err)
	}

	if a.opts.OpenSettings != nil {
		if err := s.RegisterCommand(command.Command{
			ID:          SettingsCommandID,
			Description: notice.SettingsTitle,
			Category:    notice.CommandCategory,
			Gesture:     a.opts.SettingsGesture,
			Run: func() error {
				a.opts.OpenSettings()
				return nil
			},
		}); err != nil {
			s.UnregisterCommand(StartCommandID)
			svc.Close()
			return fmt.Errorf("failed to register settings command: %w", err)
		}
	}

	if err := s.RegisterSettingsPanel(a.settingsPanel()); err != nil {
		s.UnregisterCommand(StartCommandID)
		s.UnregisterCommand(SettingsCommandID)
		svc.Close()
		return fmt.Errorf("failed to register settings panel: %w", err)
	}

	a.surface = s
	a.svc = svc
	a.logger.Info("speed test add-on activated", "provider_available", factory != nil)
	return nil
}

// Deactivate unregisters from the host and stops any in-flight run
func (a *Addon) Deactivate() {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.svc == nil {
		return
	}

	a.surface.UnregisterCommand(StartCommandID)
	a.surface.UnregisterCommand(SettingsCommandID)
	a.surface.UnregisterSettingsPanel(SettingsPanelID)
	a.svc.Close()

	a.svc = nil
	a.surface = nil
	a.logger.Info("speed test add-on deactivated")
}

// Service returns the active orchestrator, nil when inactive
func (a *Addon) Service() *service.SpeedTestService {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.svc
}

// startTest adapts Start to a command handler. A rejected start has
// already been announced and is not a command failure.
func (a *Addon) startTest(svc *service.SpeedTestService) func() error {
	return func() error {
		err := svc.Start()
		if errors.Is(err, domain.ErrRunInProgress) {
			return nil
		}
		return err
	}
}

// settingsPanel exposes the two toggles through the host settings surface
func (a *Addon) settingsPanel() host.SettingsPanel {
	return host.SettingsPanel{
		ID:    SettingsPanelID,
		Title: notice.SettingsTitle,
		Load: func() []host.Toggle {
			return TogglesFrom(a.opts.Settings.Feedback())
		},
		Save: func(toggles []host.Toggle) error {
			cfg := FeedbackFrom(a.opts.Settings.Feedback(), toggles)
			if err := a.opts.Settings.SaveFeedback(cfg); err != nil {
				return err
			}
			a.logger.Info("speed test settings saved",
				"feedback_sound", cfg.FeedbackSound,
				"results_in_window", cfg.ResultsInWindow)
			return nil
		},
	}
}

// TogglesFrom renders settings as checkboxes
func TogglesFrom(cfg domain.FeedbackConfig) []host.Toggle {
	return []host.Toggle{
		{Key: feedbackSoundKey, Label: notice.FeedbackSoundLabel, Value: cfg.FeedbackSound},
		{Key: resultsInWindowKey, Label: notice.ResultsWindowLabel, Value: cfg.ResultsInWindow},
	}
}

// FeedbackFrom applies checkbox values on top of base
func FeedbackFrom(base domain.FeedbackConfig, toggles []host.Toggle) domain.FeedbackConfig {
	cfg := base
	for _, t := range toggles {
		switch t.Key {
		case feedbackSoundKey:
			cfg.FeedbackSound = t.Value
		case resultsInWindowKey:
			cfg.ResultsInWindow = t.Value
		}
	}
	return cfg
}
