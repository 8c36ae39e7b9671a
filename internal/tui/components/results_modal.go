package components

import (
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mmcdole/velocidad/internal/domain"
	"github.com/mmcdole/velocidad/internal/notice"
	"github.com/mmcdole/velocidad/internal/tui/styles"
)

// ResultsModal is the results window: a read-only text area and a single
// close button
type ResultsModal struct {
	visible bool
	result  domain.Result
	text    textarea.Model
}

// NewResultsModal creates a hidden results modal
func NewResultsModal() ResultsModal {
	return ResultsModal{text: newResultsArea()}
}

func newResultsArea() textarea.Model {
	ta := textarea.New()
	ta.ShowLineNumbers = false
	ta.Prompt = ""
	ta.CharLimit = 0
	ta.SetWidth(44)
	ta.SetHeight(2)
	ta.Blur()
	return ta
}

// Show displays the formatted speeds of result
func (m *ResultsModal) Show(result domain.Result) {
	m.visible = true
	m.result = result
	m.text = newResultsArea()
	m.text.SetValue(notice.WindowText(result.DownloadMbps, result.UploadMbps))
}

// Hide closes the window and discards its contents
func (m *ResultsModal) Hide() {
	m.visible = false
	m.result = domain.Result{}
	m.text.Reset()
}

// IsVisible returns whether the modal is shown
func (m ResultsModal) IsVisible() bool {
	return m.visible
}

// Text returns the contents of the text area
func (m ResultsModal) Text() string {
	return m.text.Value()
}

// HandleKey processes a key press. The text area never receives input;
// the close button answers enter, space and esc.
func (m *ResultsModal) HandleKey(key string) (handled bool) {
	if !m.visible {
		return false
	}

	switch key {
	case "enter", " ", "space", "esc":
		m.Hide()
	}
	return true // consume all keys when visible
}

// View renders the results window
func (m ResultsModal) View() string {
	if !m.visible {
		return ""
	}

	button := styles.FocusedButtonStyle.Render(notice.CloseButton)
	content := lipgloss.JoinVertical(lipgloss.Left,
		styles.ModalTitleStyle.Render(notice.ResultsTitle),
		m.text.View(),
		"",
		button,
	)

	return styles.ModalStyle.Render(content)
}
