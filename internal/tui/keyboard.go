package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// handleKeyMsg handles keyboard input
func (m Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.State == StateHelp {
		m.State = StateIdle
		return m, nil
	}

	// Route to active modal if any
	if handled, newModel, cmd := m.routeToModal(msg); handled {
		return newModel, cmd
	}

	// Global keys
	switch {
	case key.Matches(msg, Keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, Keys.Help):
		m.State = StateHelp
		return m, nil

	case key.Matches(msg, Keys.Palette):
		m.Palette.Show(m.Host.Commands())
		return m, nil

	case key.Matches(msg, Keys.Escape):
		m.StatusMsg = ""
		m.StatusIsErr = false
		return m, nil
	}

	// Add-on gestures
	if cmd, ok := m.Host.Commands().ByGesture(msg.String()); ok {
		m.Logger.Debug("gesture invoked command", "key", msg.String(), "command", cmd.ID)
		return m, RunCommandCmd(cmd)
	}

	return m, nil
}

// routeToModal sends keys to the topmost visible modal. The results window
// sits above settings, which sits above the palette.
func (m Model) routeToModal(msg tea.KeyMsg) (bool, Model, tea.Cmd) {
	switch {
	case m.Results.IsVisible():
		m.Results.HandleKey(msg.String())
		return true, m, nil

	case m.Settings.IsVisible():
		_, sub := m.Settings.HandleKey(msg.String())
		if sub != nil {
			return true, m, SaveSettingsCmd(sub.Panel, sub.Toggles)
		}
		return true, m, nil

	case m.Palette.IsVisible():
		palette, cmd, chosen := m.Palette.Update(msg, m.Host.Commands())
		m.Palette = palette
		if chosen != nil {
			return true, m, tea.Batch(cmd, RunCommandCmd(*chosen))
		}
		return true, m, cmd
	}

	return false, m, nil
}
