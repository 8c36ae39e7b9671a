package tui

import (
	"log/slog"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/mmcdole/velocidad/internal/command"
	"github.com/mmcdole/velocidad/internal/domain"
	"github.com/mmcdole/velocidad/internal/host"
	"github.com/mmcdole/velocidad/internal/notice"
	"github.com/mmcdole/velocidad/internal/tui/components"
)

// ApplicationState represents the current state of the application
type ApplicationState int

const (
	StateIdle ApplicationState = iota
	StateHelp
)

// Layout
const (
	// title + gauge + blank line above the log
	HeaderHeight = 3
	// Vertical layout: single footer line
	ChromeHeight = 1

	GaugeWidth = 40
	tickRate   = 100 * time.Millisecond
)

// progressSource reports the gauge of the active run
type progressSource interface {
	Progress() domain.GaugeSnapshot
}

// Model is the main Bubble Tea model for the application
type Model struct {
	// Application state
	State ApplicationState
	Ready bool

	// Host surface and the channel from background tasks
	Host     *host.Host
	Bridge   *Bridge
	Progress progressSource
	Logger   *slog.Logger

	// UI Components
	Announcements components.Announcements
	Settings      components.SettingsModal
	Results       components.ResultsModal
	Palette       components.CommandPalette
	Gauge         progress.Model

	// Latest gauge reading, refreshed on every tick
	Snapshot domain.GaugeSnapshot

	// Dimensions
	Width  int
	Height int

	// UI state
	StatusMsg    string
	StatusIsErr  bool
	SpinnerFrame int
}

// NewModel creates a new application model. progress may be nil until an
// add-on is active.
func NewModel(h *host.Host, bridge *Bridge, progressSrc progressSource, logger *slog.Logger) Model {
	if logger == nil {
		logger = slog.Default()
	}
	return Model{
		State:         StateIdle,
		Host:          h,
		Bridge:        bridge,
		Progress:      progressSrc,
		Logger:        logger,
		Announcements: components.NewAnnouncements(),
		Settings:      components.NewSettingsModal(),
		Results:       components.NewResultsModal(),
		Palette:       components.NewCommandPalette(),
		Gauge: progress.New(
			progress.WithDefaultGradient(),
			progress.WithWidth(GaugeWidth),
		),
	}
}

// Init initializes the application
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.Bridge.WaitCmd(),
		TickCmd(tickRate),
	)
}

// Update handles all messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height
		m.Ready = true
		m.updateLayout()
		return m, nil

	case tea.KeyMsg:
		return m.handleKeyMsg(msg)

	case TickMsg:
		m.SpinnerFrame++
		if m.Progress != nil {
			m.Snapshot = m.Progress.Progress()
		}
		return m, TickCmd(tickRate)

	case NoticeMsg:
		m.Announcements.Add(msg.Text)
		return m, m.Bridge.WaitCmd()

	case ResultsReadyMsg:
		m.Results.Show(msg.Result)
		m.Logger.Debug("results window opened",
			"download_mbps", msg.Result.DownloadMbps,
			"upload_mbps", msg.Result.UploadMbps)
		return m, m.Bridge.WaitCmd()

	case OpenSettingsMsg:
		m.openSettings(msg.PanelID)
		return m, m.Bridge.WaitCmd()

	case SettingsSavedMsg:
		if msg.Err != nil {
			m.Logger.Error("failed to save settings", "panel", msg.PanelID, "error", msg.Err)
			m.StatusMsg = ErrMsg{Err: msg.Err, Context: "guardando configuración"}.Error()
			m.StatusIsErr = true
			return m, nil
		}
		m.Announcements.Add(notice.SettingsSaved)
		m.StatusMsg = notice.SettingsSaved
		m.StatusIsErr = false
		return m, ClearStatusCmd(3 * time.Second)

	case CommandDoneMsg:
		if msg.Err != nil {
			m.Logger.Error("command failed", "command", msg.ID, "error", msg.Err)
			m.StatusMsg = ErrMsg{Err: msg.Err, Context: msg.ID}.Error()
			m.StatusIsErr = true
			return m, ClearStatusCmd(5 * time.Second)
		}
		return m, nil

	case ErrMsg:
		m.StatusMsg = msg.Error()
		m.StatusIsErr = true
		return m, ClearStatusCmd(5 * time.Second)

	case ClearStatusMsg:
		m.StatusMsg = ""
		m.StatusIsErr = false
		return m, nil
	}

	if m.Palette.IsVisible() {
		var cmd tea.Cmd
		var chosen *command.Command
		m.Palette, cmd, chosen = m.Palette.Update(msg, m.Host.Commands())
		if chosen != nil {
			return m, tea.Batch(cmd, RunCommandCmd(*chosen))
		}
		return m, cmd
	}

	return m, nil
}

// openSettings shows a registered panel, or the first one when id is empty
func (m *Model) openSettings(id string) {
	if id == "" {
		panels := m.Host.Panels()
		if len(panels) == 0 {
			return
		}
		m.Settings.Show(panels[0])
		return
	}

	panel, err := m.Host.Panel(id)
	if err != nil {
		m.Logger.Warn("settings panel unavailable", "panel", id, "error", err)
		return
	}
	m.Settings.Show(panel)
}

// updateLayout sizes components after a resize
func (m *Model) updateLayout() {
	logHeight := m.Height - HeaderHeight - ChromeHeight
	if logHeight < 1 {
		logHeight = 1
	}
	m.Announcements.SetSize(m.Width, logHeight)

	width := GaugeWidth
	if m.Width > 0 && m.Width-4 < width {
		width = m.Width - 4
	}
	if width < 10 {
		width = 10
	}
	m.Gauge.Width = width
}
