// Package speech delivers notices to the user: spoken through a system
// synthesizer, printed for a screen reader, or forwarded to the TUI.
package speech

import (
	"fmt"
	"io"
	"log/slog"
	"sync"

	"github.com/mmcdole/velocidad/internal/domain"
)

// Announcer fans every notice out to its sinks in registration order
type Announcer struct {
	mu     sync.RWMutex
	sinks  []domain.Notifier
	logger *slog.Logger
}

// NewAnnouncer creates an announcer with the given sinks
func NewAnnouncer(logger *slog.Logger, sinks ...domain.Notifier) *Announcer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Announcer{sinks: sinks, logger: logger.With("component", "announcer")}
}

// Add registers another sink
func (a *Announcer) Add(sink domain.Notifier) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.sinks = append(a.sinks, sink)
}

// Notify delivers message to every sink
func (a *Announcer) Notify(message string) {
	a.mu.RLock()
	sinks := a.sinks
	a.mu.RUnlock()

	a.logger.Info("notice", "message", message)
	for _, sink := range sinks {
		sink.Notify(message)
	}
}

// LineWriter prints each notice on its own line
type LineWriter struct {
	mu  sync.Mutex
	out io.Writer
}

// NewLineWriter creates a sink writing to out
func NewLineWriter(out io.Writer) *LineWriter {
	return &LineWriter{out: out}
}

// Notify writes message followed by a newline
func (w *LineWriter) Notify(message string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	fmt.Fprintln(w.out, message)
}

// NotifierFunc adapts a function to domain.Notifier
type NotifierFunc func(message string)

// Notify calls f
func (f NotifierFunc) Notify(message string) { f(message) }
