package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mmcdole/velocidad/internal/domain"
	"github.com/mmcdole/velocidad/internal/tui/styles"
)

// View renders the application
func (m Model) View() string {
	if !m.Ready {
		return "Cargando..."
	}

	if m.State == StateHelp {
		return m.renderHelp()
	}

	// Modals replace the main view, topmost first
	switch {
	case m.Results.IsVisible():
		return m.place(m.Results.View())
	case m.Settings.IsVisible():
		return m.place(m.Settings.View())
	case m.Palette.IsVisible():
		return m.place(m.Palette.View())
	}

	header := lipgloss.JoinVertical(lipgloss.Left,
		styles.TitleStyle.Render("velocidad"),
		m.renderGauge(),
		"",
	)

	body := m.Announcements.View()
	bodyHeight := m.Height - HeaderHeight - ChromeHeight
	if pad := bodyHeight - lipgloss.Height(body); pad > 0 && body != "" {
		body += strings.Repeat("\n", pad)
	} else if body == "" && bodyHeight > 0 {
		body = strings.Repeat("\n", bodyHeight-1)
	}

	return lipgloss.JoinVertical(lipgloss.Left, header, body, m.renderFooter())
}

func (m Model) place(modal string) string {
	return lipgloss.Place(m.Width, m.Height,
		lipgloss.Center, lipgloss.Center,
		modal)
}

// renderGauge renders the progress bar of the current run
func (m Model) renderGauge() string {
	if !m.Snapshot.Running {
		return styles.DimStyle.Render(PhaseLabel(m.Snapshot))
	}

	percent := float64(m.Snapshot.Value) / 100
	return styles.RenderSpinner(m.SpinnerFrame) + " " +
		m.Gauge.ViewAs(percent) + " " +
		styles.SubtitleStyle.Render(PhaseLabel(m.Snapshot))
}

// PhaseLabel names the phase a gauge reading belongs to
func PhaseLabel(s domain.GaugeSnapshot) string {
	if !s.Running {
		return "Listo"
	}
	switch {
	case s.Value >= domain.GaugeComplete:
		return "Finalizando"
	case s.Value >= domain.GaugeUpload:
		return "Midiendo subida"
	case s.Value >= domain.GaugeDownload:
		return "Midiendo descarga"
	default:
		return "Seleccionando servidor"
	}
}

func (m Model) renderFooter() string {
	var left string
	if m.StatusMsg != "" {
		if m.StatusIsErr {
			left = styles.ErrorStyle.Render(m.StatusMsg)
		} else {
			left = styles.SuccessStyle.Render(m.StatusMsg)
		}
	}

	var hints []string
	for _, cmd := range m.Host.Commands().All() {
		if cmd.Gesture == "" {
			continue
		}
		hints = append(hints, styles.AccentStyle.Render(cmd.Gesture)+" "+
			styles.DimStyle.Render(strings.TrimSuffix(cmd.Description, ".")))
	}
	for _, b := range Keys.ShortHelp() {
		h := b.Help()
		hints = append(hints, styles.AccentStyle.Render(h.Key)+" "+styles.DimStyle.Render(h.Desc))
	}
	right := strings.Join(hints, "  ")

	gap := m.Width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}
	return left + strings.Repeat(" ", gap) + right
}

// renderHelp renders the help screen
func (m Model) renderHelp() string {
	var b strings.Builder
	b.WriteString(styles.ModalTitleStyle.Render("AYUDA"))
	b.WriteString("\n")

	for _, cmd := range m.Host.Commands().All() {
		keyText := cmd.Gesture
		if keyText == "" {
			keyText = ":"
		}
		b.WriteString("  " + styles.HelpKeyStyle.Render(styles.Pad(keyText, 8)) +
			styles.HelpDescStyle.Render(cmd.Description) + "\n")
	}
	for _, binding := range []struct{ k, d string }{
		{Keys.Palette.Help().Key, "Paleta de comandos"},
		{Keys.Help.Help().Key, "Esta ayuda"},
		{Keys.Escape.Help().Key, "Cerrar / Cancelar"},
		{Keys.Quit.Help().Key, "Salir"},
	} {
		b.WriteString("  " + styles.HelpKeyStyle.Render(styles.Pad(binding.k, 8)) +
			styles.HelpDescStyle.Render(binding.d) + "\n")
	}
	b.WriteString("\nPulsa cualquier tecla para volver...")

	return m.place(styles.ModalStyle.Render(b.String()))
}
