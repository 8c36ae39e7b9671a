package components

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mmcdole/velocidad/internal/command"
	"github.com/mmcdole/velocidad/internal/tui/styles"
)

// paletteSearcher ranks commands for a query
type paletteSearcher interface {
	Search(query string) []command.Match
}

// CommandPalette lets the user run any registered command by description
type CommandPalette struct {
	visible bool
	input   textinput.Model
	matches []command.Match
	cursor  int
}

// NewCommandPalette creates a hidden palette
func NewCommandPalette() CommandPalette {
	ti := textinput.New()
	ti.Placeholder = "Escribe un comando..."
	ti.CharLimit = 80
	ti.Width = 50
	ti.Prompt = ": "
	ti.PromptStyle = styles.AccentStyle
	ti.PlaceholderStyle = styles.DimStyle

	return CommandPalette{input: ti}
}

// Show opens the palette listing every command
func (p *CommandPalette) Show(src paletteSearcher) {
	p.visible = true
	p.input.SetValue("")
	p.input.Focus()
	p.matches = src.Search("")
	p.cursor = 0
}

// Hide closes the palette
func (p *CommandPalette) Hide() {
	p.visible = false
	p.input.Blur()
	p.matches = nil
}

// IsVisible returns whether the palette is shown
func (p CommandPalette) IsVisible() bool {
	return p.visible
}

// Matches returns the current ranked commands
func (p CommandPalette) Matches() []command.Match {
	return p.matches
}

// Update handles input, returns (palette, cmd, chosen). A non-nil chosen
// command means the user pressed enter on it; the palette hides itself.
func (p CommandPalette) Update(msg tea.Msg, src paletteSearcher) (CommandPalette, tea.Cmd, *command.Command) {
	if !p.visible {
		return p, nil, nil
	}

	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "enter":
			if p.cursor < len(p.matches) {
				chosen := p.matches[p.cursor].Command
				p.Hide()
				return p, nil, &chosen
			}
			return p, nil, nil
		case "esc":
			p.Hide()
			return p, nil, nil
		case "down", "ctrl+n":
			if p.cursor < len(p.matches)-1 {
				p.cursor++
			}
			return p, nil, nil
		case "up", "ctrl+p":
			if p.cursor > 0 {
				p.cursor--
			}
			return p, nil, nil
		}
	}

	var cmd tea.Cmd
	before := p.input.Value()
	p.input, cmd = p.input.Update(msg)
	if p.input.Value() != before {
		p.matches = src.Search(p.input.Value())
		p.cursor = 0
	}
	return p, cmd, nil
}

// View renders the palette
func (p CommandPalette) View() string {
	if !p.visible {
		return ""
	}

	const width = 56

	var lines []string
	for i, m := range p.matches {
		selected := i == p.cursor
		lines = append(lines, renderMatch(m, selected, width))
	}
	if len(lines) == 0 {
		lines = append(lines, styles.DimStyle.Render("Sin coincidencias"))
	}

	content := lipgloss.JoinVertical(lipgloss.Left,
		p.input.View(),
		"",
		strings.Join(lines, "\n"),
	)

	return styles.ModalStyle.Render(content)
}

// renderMatch highlights matched characters of a command description
func renderMatch(m command.Match, selected bool, width int) string {
	matched := make(map[int]bool, len(m.MatchedIndexes))
	for _, idx := range m.MatchedIndexes {
		matched[idx] = true
	}

	base := styles.NormalItemStyle
	highlight := styles.MatchHighlightStyle
	if selected {
		base = styles.SelectedItemStyle
		highlight = styles.MatchHighlightSelectedStyle
	}

	var b strings.Builder
	text := styles.Pad(m.Command.Description, width)
	for i, r := range text { // byte offsets, as reported by the matcher
		if matched[i] {
			b.WriteString(highlight.Render(string(r)))
		} else {
			b.WriteString(base.Render(string(r)))
		}
	}

	if m.Command.Gesture != "" {
		b.WriteString(" " + styles.HelpKeyStyle.Render(m.Command.Gesture))
	}
	return b.String()
}
