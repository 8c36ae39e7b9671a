package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mmcdole/velocidad/internal/host"
	"github.com/mmcdole/velocidad/internal/notice"
	"github.com/mmcdole/velocidad/internal/tui/styles"
)

// SettingsModal shows a host settings panel as a list of checkboxes
// followed by save and cancel buttons
type SettingsModal struct {
	visible bool
	panel   host.SettingsPanel
	toggles []host.Toggle
	cursor  int // 0..len(toggles)-1 toggles, then save, then cancel
}

// SettingsSubmission is returned when the user confirms the panel
type SettingsSubmission struct {
	Panel   host.SettingsPanel
	Toggles []host.Toggle
}

// NewSettingsModal creates a hidden settings modal
func NewSettingsModal() SettingsModal {
	return SettingsModal{}
}

// Show displays the panel pre-populated with its current values
func (m *SettingsModal) Show(panel host.SettingsPanel) {
	m.visible = true
	m.panel = panel
	m.toggles = append([]host.Toggle(nil), panel.Load()...)
	m.cursor = 0
}

// Hide dismisses the modal without saving
func (m *SettingsModal) Hide() {
	m.visible = false
	m.toggles = nil
}

// IsVisible returns whether the modal is shown
func (m SettingsModal) IsVisible() bool {
	return m.visible
}

// Toggles returns the values currently shown
func (m SettingsModal) Toggles() []host.Toggle {
	return append([]host.Toggle(nil), m.toggles...)
}

// Focused returns a screen-reader friendly description of the focused control
func (m SettingsModal) Focused() string {
	switch {
	case m.cursor < len(m.toggles):
		t := m.toggles[m.cursor]
		state := "no marcado"
		if t.Value {
			state = "marcado"
		}
		return t.Label + ", casilla de verificación, " + state
	case m.cursor == m.saveIndex():
		return notice.SaveButton + ", botón"
	default:
		return "Cancelar, botón"
	}
}

func (m SettingsModal) saveIndex() int   { return len(m.toggles) }
func (m SettingsModal) cancelIndex() int { return len(m.toggles) + 1 }

// HandleKey processes a key press, returns (handled, submission).
// A non-nil submission means the user chose save; the modal hides itself.
func (m *SettingsModal) HandleKey(key string) (handled bool, submission *SettingsSubmission) {
	if !m.visible {
		return false, nil
	}

	switch key {
	case "j", "down", "tab":
		if m.cursor < m.cancelIndex() {
			m.cursor++
		}
	case "k", "up", "shift+tab":
		if m.cursor > 0 {
			m.cursor--
		}
	case " ", "space", "x":
		if m.cursor < len(m.toggles) {
			m.toggles[m.cursor].Value = !m.toggles[m.cursor].Value
		}
	case "enter":
		switch {
		case m.cursor < len(m.toggles):
			m.toggles[m.cursor].Value = !m.toggles[m.cursor].Value
		case m.cursor == m.saveIndex():
			sub := &SettingsSubmission{Panel: m.panel, Toggles: m.Toggles()}
			m.Hide()
			return true, sub
		default:
			m.Hide()
		}
	case "esc":
		m.Hide()
	}

	return true, nil // consume all keys when visible
}

// View renders the settings modal
func (m SettingsModal) View() string {
	if !m.visible {
		return ""
	}

	const width = 68

	var lines []string
	for i, t := range m.toggles {
		box := "[ ] "
		if t.Value {
			box = "[x] "
		}
		text := styles.Pad(box+t.Label, width)
		if i == m.cursor {
			lines = append(lines, styles.SelectedItemStyle.Render(text))
		} else {
			lines = append(lines, styles.NormalItemStyle.Render(text))
		}
	}

	save := styles.ButtonStyle.Render(notice.SaveButton)
	if m.cursor == m.saveIndex() {
		save = styles.FocusedButtonStyle.Render(notice.SaveButton)
	}
	cancel := styles.ButtonStyle.Render("Cancelar")
	if m.cursor == m.cancelIndex() {
		cancel = styles.FocusedButtonStyle.Render("Cancelar")
	}

	buttons := lipgloss.JoinHorizontal(lipgloss.Top, save, "  ", cancel)
	content := styles.ModalTitleStyle.Render(m.panel.Title) + "\n" +
		strings.Join(lines, "\n") + "\n\n" + buttons

	return styles.ModalStyle.Render(content)
}
