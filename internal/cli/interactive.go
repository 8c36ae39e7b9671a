package cli

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/mmcdole/velocidad/internal/addon"
	"github.com/mmcdole/velocidad/internal/domain"
	"github.com/mmcdole/velocidad/internal/tui"
)

func runInteractive(cmd *cobra.Command, _ []string) error {
	bridge := tui.NewBridge()

	a, err := newApp(cmd.Context(), interactiveOptions(bridge))
	if err != nil {
		return err
	}
	defer a.Close()
	// runs before Close so pending sends cannot stall Deactivate
	defer bridge.Close()

	model := tui.NewModel(a.host, bridge, a.addon.Service(), a.logger)
	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithContext(cmd.Context()),
	)

	a.logger.Info("starting TUI")

	if _, err := p.Run(); err != nil {
		a.logger.Error("TUI error", "error", err)
		return fmt.Errorf("TUI error: %w", err)
	}
	return nil
}

// interactiveOptions wires the add-on to the TUI. The renderer owns the
// terminal, so no bell is written to it; tones need a command player.
func interactiveOptions(bridge *tui.Bridge) appOptions {
	return appOptions{
		sinks:        []domain.Notifier{bridge}, // screen log, alongside speech
		presenter:    bridge,
		openSettings: func() { bridge.OpenSettings(addon.SettingsPanelID) },
		gestures:     true,
	}
}
