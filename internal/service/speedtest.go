package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/mmcdole/velocidad/internal/domain"
	"github.com/mmcdole/velocidad/internal/notice"
	"github.com/mmcdole/velocidad/internal/tone"
	"golang.org/x/sync/errgroup"
)

// SpeedTestOptions wires the orchestrator to its collaborators
type SpeedTestOptions struct {
	Factory   domain.ProviderFactory // nil when the provider failed to load
	Settings  domain.FeedbackSource
	Notifier  domain.Notifier
	Clipboard domain.Clipboard
	Tones     domain.TonePlayer
	Presenter domain.ResultPresenter // nil when no window can be shown
	Loop      tone.LoopConfig
	Logger    *slog.Logger
	Now       func() time.Time
}

// SpeedTestService orchestrates one speed test run at a time
type SpeedTestService struct {
	factory   domain.ProviderFactory
	settings  domain.FeedbackSource
	notifier  domain.Notifier
	clipboard domain.Clipboard
	tones     domain.TonePlayer
	presenter domain.ResultPresenter
	loop      tone.LoopConfig
	logger    *slog.Logger
	now       func() time.Time

	gauge  *domain.Gauge
	ctx    context.Context
	cancel context.CancelFunc
	runs   sync.WaitGroup

	mu      sync.Mutex
	closed  bool
	runDone chan struct{}
	lastErr error
}

// NewSpeedTestService creates an orchestrator whose tasks live until ctx is
// cancelled or Close is called
func NewSpeedTestService(ctx context.Context, opts SpeedTestOptions) *SpeedTestService {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	tones := opts.Tones
	if tones == nil {
		tones = tone.NullPlayer{}
	}
	settings := opts.Settings
	if settings == nil {
		settings = staticFeedback(domain.DefaultFeedbackConfig())
	}
	notifier := opts.Notifier
	if notifier == nil {
		notifier = discardNotifier{}
	}
	loop := opts.Loop
	if loop.Duration <= 0 {
		loop.Duration = tone.DefaultDuration
	}
	if loop.Interval <= 0 {
		loop.Interval = tone.DefaultInterval
	}

	runCtx, cancel := context.WithCancel(ctx)
	return &SpeedTestService{
		factory:   opts.Factory,
		settings:  settings,
		notifier:  notifier,
		clipboard: opts.Clipboard,
		tones:     tones,
		presenter: opts.Presenter,
		loop:      loop,
		logger:    logger,
		now:       now,
		gauge:     domain.NewGauge(),
		ctx:       runCtx,
		cancel:    cancel,
	}
}

// Start admits a run and returns immediately. A run already in progress
// yields the in-progress notice and domain.ErrRunInProgress.
func (s *SpeedTestService) Start() error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return domain.ErrClosed
	}
	if !s.gauge.Begin() {
		s.mu.Unlock()
		s.notifier.Notify(notice.AlreadyRunning)
		return domain.ErrRunInProgress
	}
	runDone := make(chan struct{})
	s.runDone = runDone
	s.lastErr = nil
	s.mu.Unlock()

	logger := s.logger.With("run", uuid.NewString())
	logger.Info("speed test started")

	s.notifier.Notify(notice.Starting)
	s.playTone(logger, tone.StartFrequency)

	cfg := s.settings.Feedback()

	// Runs are tracked under mu so Close never waits on a set that is
	// still growing
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		s.gauge.Reset()
		s.lastErr = domain.ErrClosed
		close(runDone)
		return domain.ErrClosed
	}

	// The tone loop and the measurement share one group: a failed
	// measurement cancels the loop, and Wait yields the run outcome.
	group, groupCtx := errgroup.WithContext(s.ctx)
	if cfg.FeedbackSound {
		group.Go(func() error {
			tone.Loop(groupCtx, s.gauge, s.tones, s.loop, logger)
			return nil
		})
	}
	group.Go(func() error {
		return s.run(groupCtx, cfg, logger)
	})

	s.runs.Add(1)
	go func() {
		defer s.runs.Done()
		err := group.Wait()

		s.mu.Lock()
		s.lastErr = err
		s.mu.Unlock()
		close(runDone)
	}()

	return nil
}

// Wait blocks until the latest run finishes and returns its outcome:
// nil, domain.ErrProviderUnavailable or a *domain.MeasurementError
func (s *SpeedTestService) Wait() error {
	s.mu.Lock()
	runDone := s.runDone
	s.mu.Unlock()

	if runDone == nil {
		return nil
	}
	<-runDone

	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastErr
}

// Close cancels any in-flight run and waits for its tasks to exit
func (s *SpeedTestService) Close() {
	s.mu.Lock()
	s.closed = true
	s.mu.Unlock()

	s.cancel()
	s.runs.Wait()
}

// Progress returns the current gauge reading
func (s *SpeedTestService) Progress() domain.GaugeSnapshot {
	return s.gauge.Snapshot()
}

// run executes the measurement sequence and the finalizer
func (s *SpeedTestService) run(ctx context.Context, cfg domain.FeedbackConfig, logger *slog.Logger) error {
	if s.factory == nil {
		logger.Warn("speed test aborted", "error", domain.ErrProviderUnavailable)
		s.notifier.Notify(notice.Unavailable)
		s.gauge.Reset()
		return domain.ErrProviderUnavailable
	}

	defer s.finish(logger)

	result, err := s.measure(ctx, logger)
	if err != nil {
		detail := err.Error()
		var me *domain.MeasurementError
		if errors.As(err, &me) {
			detail = me.Detail()
		}
		logger.Error("speed test failed", "error", err)
		s.notifier.Notify(notice.UnexpectedError(detail))
		return err
	}

	logger.Info("speed test succeeded",
		"download_mbps", result.DownloadMbps,
		"upload_mbps", result.UploadMbps,
		"server", result.Server.Name)
	s.publish(result, cfg, logger)
	return nil
}

// measure drives the provider through its phases. Provider panics are
// recovered into a MeasurementError for the phase that raised them.
func (s *SpeedTestService) measure(ctx context.Context, logger *slog.Logger) (result domain.Result, err error) {
	phase := domain.PhaseSelectServer
	defer func() {
		if r := recover(); r != nil {
			err = &domain.MeasurementError{Phase: phase, Err: fmt.Errorf("provider panic: %v", r)}
		}
	}()

	provider, err := s.factory.NewProvider()
	if err != nil {
		return domain.Result{}, &domain.MeasurementError{Phase: phase, Err: err}
	}

	s.enter(logger, phase, domain.GaugeSelect, notice.SelectServer)
	server, err := provider.SelectServer(ctx)
	if err != nil {
		return domain.Result{}, &domain.MeasurementError{Phase: phase, Err: err}
	}

	phase = domain.PhaseDownload
	s.enter(logger, phase, domain.GaugeDownload, notice.StartDownload)
	download, err := provider.MeasureDownload(ctx)
	if err != nil {
		return domain.Result{}, &domain.MeasurementError{Phase: phase, Err: err}
	}

	phase = domain.PhaseUpload
	s.enter(logger, phase, domain.GaugeUpload, notice.StartUpload)
	upload, err := provider.MeasureUpload(ctx)
	if err != nil {
		return domain.Result{}, &domain.MeasurementError{Phase: phase, Err: err}
	}

	return domain.NewResult(download, upload, server, s.now()), nil
}

// enter announces a phase and moves the gauge before its blocking call
func (s *SpeedTestService) enter(logger *slog.Logger, phase domain.Phase, value int, message string) {
	logger.Debug("entering phase", "phase", phase, "progress", value)
	s.gauge.Set(value)
	s.notifier.Notify(message)
}

// publish delivers a successful result to every sink
func (s *SpeedTestService) publish(result domain.Result, cfg domain.FeedbackConfig, logger *slog.Logger) {
	s.notifier.Notify(notice.Download(result.DownloadMbps))
	s.notifier.Notify(notice.Upload(result.UploadMbps))

	if s.clipboard != nil {
		text := notice.ClipboardText(result.DownloadMbps, result.UploadMbps)
		if err := s.clipboard.WriteText(text); err != nil {
			logger.Warn("failed to copy results", "error", err)
			s.notifier.Notify(notice.CopyFailed)
		} else {
			s.notifier.Notify(notice.Copied)
		}
	}

	if cfg.ResultsInWindow && s.presenter != nil {
		s.presenter.PresentResults(result)
	}
}

// finish always runs after a measurement attempt: gauge to 100, completion
// tone and notice, then the running flag is cleared
func (s *SpeedTestService) finish(logger *slog.Logger) {
	s.gauge.Complete()
	s.playTone(logger, tone.FinishFrequency)
	s.notifier.Notify(notice.Finished)
	s.gauge.Release()
	logger.Info("speed test finished")
}

func (s *SpeedTestService) playTone(logger *slog.Logger, frequency int) {
	if err := s.tones.Tone(s.ctx, frequency, s.loop.Duration); err != nil {
		logger.Debug("tone failed", "frequency", frequency, "error", err)
	}
}

// staticFeedback serves fixed settings
type staticFeedback domain.FeedbackConfig

func (f staticFeedback) Feedback() domain.FeedbackConfig {
	return domain.FeedbackConfig(f)
}

type discardNotifier struct{}

func (discardNotifier) Notify(string) {}
