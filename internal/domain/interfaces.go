package domain

import (
	"context"
	"time"
)

// Provider measures bandwidth against a reference server. Each call blocks
// for seconds. Measurements are raw bits per second.
type Provider interface {
	SelectServer(ctx context.Context) (ServerInfo, error)
	MeasureDownload(ctx context.Context) (float64, error)
	MeasureUpload(ctx context.Context) (float64, error)
}

// ProviderFactory creates a fresh Provider for every run
type ProviderFactory interface {
	NewProvider() (Provider, error)
}

// Notifier surfaces a short message to the user (speech, screen, stdout).
// Implementations must not fail.
type Notifier interface {
	Notify(message string)
}

// Clipboard writes plain text to the system clipboard
type Clipboard interface {
	WriteText(text string) error
}

// TonePlayer plays a tone and returns once it has been issued
type TonePlayer interface {
	Tone(ctx context.Context, frequencyHz int, duration time.Duration) error
}

// ResultPresenter displays the results window. Implementations hand the
// result to whatever goroutine owns rendering.
type ResultPresenter interface {
	PresentResults(result Result)
}

// FeedbackSource returns the current feedback settings
type FeedbackSource interface {
	Feedback() FeedbackConfig
}
