package tui

import (
	"sync"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mmcdole/velocidad/internal/domain"
)

// bridgeBuffer is how many messages can queue before senders block
const bridgeBuffer = 64

// Bridge hands notices and results from background goroutines to the
// Bubble Tea loop. The loop drains it with WaitCmd, re-armed after each
// message.
type Bridge struct {
	ch   chan tea.Msg
	done chan struct{}
	once sync.Once
}

var (
	_ domain.Notifier        = (*Bridge)(nil)
	_ domain.ResultPresenter = (*Bridge)(nil)
)

// NewBridge creates an open bridge
func NewBridge() *Bridge {
	return &Bridge{
		ch:   make(chan tea.Msg, bridgeBuffer),
		done: make(chan struct{}),
	}
}

// Send queues msg for the UI. It blocks while the queue is full and gives
// up once the bridge is closed.
func (b *Bridge) Send(msg tea.Msg) {
	select {
	case <-b.done:
		return
	default:
	}

	select {
	case b.ch <- msg:
	case <-b.done:
	}
}

// Notify implements domain.Notifier
func (b *Bridge) Notify(text string) {
	b.Send(NoticeMsg{Text: text})
}

// PresentResults implements domain.ResultPresenter
func (b *Bridge) PresentResults(result domain.Result) {
	b.Send(ResultsReadyMsg{Result: result})
}

// OpenSettings asks the UI to show panelID
func (b *Bridge) OpenSettings(panelID string) {
	b.Send(OpenSettingsMsg{PanelID: panelID})
}

// Close stops delivery; pending and future sends are dropped
func (b *Bridge) Close() {
	b.once.Do(func() { close(b.done) })
}

// WaitCmd returns a command that yields the next queued message
func (b *Bridge) WaitCmd() tea.Cmd {
	return func() tea.Msg {
		select {
		case msg := <-b.ch:
			return msg
		case <-b.done:
			return nil
		}
	}
}
