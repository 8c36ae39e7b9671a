package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mmcdole/velocidad/internal/command"
	"github.com/mmcdole/velocidad/internal/host"
)

// Command factories for async operations

// RunCommandCmd invokes a registered command off the UI goroutine
func RunCommandCmd(cmd command.Command) tea.Cmd {
	return func() tea.Msg {
		return CommandDoneMsg{ID: cmd.ID, Err: cmd.Run()}
	}
}

// SaveSettingsCmd persists the toggles of a settings panel
func SaveSettingsCmd(panel host.SettingsPanel, toggles []host.Toggle) tea.Cmd {
	return func() tea.Msg {
		return SettingsSavedMsg{PanelID: panel.ID, Err: panel.Save(toggles)}
	}
}

// TickCmd returns a command that sends a tick after a delay
func TickCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		return TickMsg{}
	})
}

// ClearStatusCmd clears the status after a delay
func ClearStatusCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		return ClearStatusMsg{}
	})
}
