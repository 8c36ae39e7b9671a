package tui

import (
	"github.com/mmcdole/velocidad/internal/domain"
)

// Message types for the TUI

// ErrMsg represents an error
type ErrMsg struct {
	Err     error
	Context string
}

// Error implements the error interface
func (e ErrMsg) Error() string {
	if e.Context != "" {
		return e.Context + ": " + e.Err.Error()
	}
	return e.Err.Error()
}

// NoticeMsg carries one user-facing notice from a background task
type NoticeMsg struct {
	Text string
}

// ResultsReadyMsg asks the UI to open the results window
type ResultsReadyMsg struct {
	Result domain.Result
}

// OpenSettingsMsg asks the UI to show a settings panel
type OpenSettingsMsg struct {
	PanelID string
}

// SettingsSavedMsg reports the outcome of saving a settings panel
type SettingsSavedMsg struct {
	PanelID string
	Err     error
}

// CommandDoneMsg reports that a command handler returned
type CommandDoneMsg struct {
	ID  string
	Err error
}

// TickMsg is a general tick message for animations
type TickMsg struct{}

// ClearStatusMsg clears the status bar message
type ClearStatusMsg struct{}

