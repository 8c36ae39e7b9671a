// Package tone plays the audible progress feedback of a speed test.
package tone

import (
	"context"
	"log/slog"
	"time"

	"github.com/mmcdole/velocidad/internal/domain"
)

// Fixed tones of a run
const (
	StartFrequency  = 400
	FinishFrequency = 1000
	DefaultDuration = 100 * time.Millisecond
	DefaultInterval = time.Second
)

// Frequency maps a gauge value to the progress tone pitch, 400Hz to 800Hz
func Frequency(value int) int {
	if value < domain.GaugeIdle {
		value = domain.GaugeIdle
	}
	if value > domain.GaugeComplete {
		value = domain.GaugeComplete
	}
	return StartFrequency + value*4
}

// progress is the read side of the gauge the loop follows
type progress interface {
	Value() int
	Done() <-chan struct{}
}

// LoopConfig controls tone length and spacing
type LoopConfig struct {
	Duration time.Duration
	Interval time.Duration
}

func (c LoopConfig) withDefaults() LoopConfig {
	if c.Duration <= 0 {
		c.Duration = DefaultDuration
	}
	if c.Interval <= 0 {
		c.Interval = DefaultInterval
	}
	return c
}

// Loop plays a tone for the current gauge value once per interval until the
// gauge completes, resets, or ctx is cancelled
func Loop(ctx context.Context, p progress, player domain.TonePlayer, cfg LoopConfig, logger *slog.Logger) {
	if logger == nil {
		logger = slog.Default()
	}
	cfg = cfg.withDefaults()
	done := p.Done()

	for {
		select {
		case <-done:
			return
		case <-ctx.Done():
			return
		default:
		}

		value := p.Value()
		if value >= domain.GaugeComplete {
			return
		}

		if err := player.Tone(ctx, Frequency(value), cfg.Duration); err != nil {
			logger.Debug("progress tone failed", "error", err, "value", value)
		}

		timer := time.NewTimer(cfg.Interval)
		select {
		case <-done:
			timer.Stop()
			return
		case <-ctx.Done():
			timer.Stop()
			return
		case <-timer.C:
		}
	}
}
