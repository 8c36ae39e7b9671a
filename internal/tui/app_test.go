package tui

import (
	"errors"
	"sync/atomic"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmcdole/velocidad/internal/command"
	"github.com/mmcdole/velocidad/internal/domain"
	"github.com/mmcdole/velocidad/internal/host"
	"github.com/mmcdole/velocidad/internal/notice"
)

type fixedProgress domain.GaugeSnapshot

func (p fixedProgress) Progress() domain.GaugeSnapshot { return domain.GaugeSnapshot(p) }

type fixture struct {
	host   *host.Host
	bridge *Bridge
	starts atomic.Int32
	saved  [][]host.Toggle
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	f := &fixture{host: host.New(), bridge: NewBridge()}
	t.Cleanup(f.bridge.Close)

	require.NoError(t, f.host.RegisterCommand(command.Command{
		ID:          "speedtest.start",
		Description: notice.CommandDescription,
		Category:    notice.CommandCategory,
		Gesture:     "t",
		Run: func() error {
			f.starts.Add(1)
			return nil
		},
	}))
	require.NoError(t, f.host.RegisterSettingsPanel(host.SettingsPanel{
		ID:    "speedtestConfig",
		Title: notice.SettingsTitle,
		Load: func() []host.Toggle {
			return []host.Toggle{
				{Key: "feedbackSound", Label: notice.FeedbackSoundLabel},
				{Key: "resultsInWindow", Label: notice.ResultsWindowLabel, Value: true},
			}
		},
		Save: func(toggles []host.Toggle) error {
			f.saved = append(f.saved, toggles)
			return nil
		},
	}))
	return f
}

func (f *fixture) model(progress progressSource) Model {
	m := NewModel(f.host, f.bridge, progress, nil)
	next, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	return next.(Model)
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	out, ok := next.(Model)
	require.True(t, ok)
	return out, cmd
}

func runeKey(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func TestModel_GestureRunsCommand(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	m := f.model(nil)

	m, cmd := update(t, m, runeKey('t'))
	require.NotNil(t, cmd)

	msg := cmd()
	assert.Equal(t, CommandDoneMsg{ID: "speedtest.start"}, msg)
	assert.Equal(t, int32(1), f.starts.Load())

	m, _ = update(t, m, msg)
	assert.Empty(t, m.StatusMsg)
}

func TestModel_UnboundKeyIsIgnored(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	m := f.model(nil)

	_, cmd := update(t, m, runeKey('z'))
	assert.Nil(t, cmd)
	assert.Zero(t, f.starts.Load())
}

func TestModel_NoticesAreLoggedAndWaitRearmed(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	m := f.model(nil)

	m, cmd := update(t, m, NoticeMsg{Text: notice.Starting})
	require.NotNil(t, cmd)
	assert.Equal(t, notice.Starting, m.Announcements.Last())
	assert.Contains(t, m.View(), notice.Starting)

	// the re-armed wait delivers the next bridged notice
	f.bridge.Notify(notice.SelectServer)
	assert.Equal(t, NoticeMsg{Text: notice.SelectServer}, cmd())
}

func TestModel_ResultsWindow(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	m := f.model(nil)

	m, _ = update(t, m, ResultsReadyMsg{Result: domain.Result{DownloadMbps: 50, UploadMbps: 10.5}})
	require.True(t, m.Results.IsVisible())
	assert.Contains(t, m.View(), notice.ResultsTitle)

	// gestures are swallowed while the window is open
	m, cmd := update(t, m, runeKey('t'))
	assert.Nil(t, cmd)
	assert.True(t, m.Results.IsVisible())

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.False(t, m.Results.IsVisible())
	assert.Zero(t, f.starts.Load())
}

func TestModel_SettingsRoundTrip(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	m := f.model(nil)

	m, _ = update(t, m, OpenSettingsMsg{PanelID: "speedtestConfig"})
	require.True(t, m.Settings.IsVisible())
	assert.Contains(t, m.View(), notice.SettingsTitle)

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyDown})
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyDown})
	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	assert.False(t, m.Settings.IsVisible())

	msg := cmd()
	assert.Equal(t, SettingsSavedMsg{PanelID: "speedtestConfig"}, msg)
	require.Len(t, f.saved, 1)
	assert.True(t, f.saved[0][0].Value)
	assert.True(t, f.saved[0][1].Value)

	m, _ = update(t, m, msg)
	assert.Equal(t, notice.SettingsSaved, m.Announcements.Last())
	assert.False(t, m.StatusIsErr)
}

func TestModel_SettingsSaveFailure(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	m := f.model(nil)

	m, _ = update(t, m, SettingsSavedMsg{PanelID: "speedtestConfig", Err: errors.New("disk full")})
	assert.True(t, m.StatusIsErr)
	assert.Contains(t, m.StatusMsg, "disk full")
}

func TestModel_OpenSettingsUnknownPanel(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	m := f.model(nil)

	m, _ = update(t, m, OpenSettingsMsg{PanelID: "missing"})
	assert.False(t, m.Settings.IsVisible())

	m, _ = update(t, m, OpenSettingsMsg{})
	assert.True(t, m.Settings.IsVisible())
}

func TestModel_PaletteRunsChosenCommand(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	m := f.model(nil)

	m, _ = update(t, m, runeKey(':'))
	require.True(t, m.Palette.IsVisible())

	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	assert.False(t, m.Palette.IsVisible())

	var done []tea.Msg
	switch msg := cmd().(type) {
	case tea.BatchMsg:
		for _, c := range msg {
			if c != nil {
				done = append(done, c())
			}
		}
	default:
		done = append(done, msg)
	}
	assert.Contains(t, done, CommandDoneMsg{ID: "speedtest.start"})
	assert.Equal(t, int32(1), f.starts.Load())
}

func TestModel_TickSamplesGauge(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	m := f.model(fixedProgress{Value: domain.GaugeDownload, Running: true})

	m, cmd := update(t, m, TickMsg{})
	require.NotNil(t, cmd)
	assert.Equal(t, domain.GaugeSnapshot{Value: domain.GaugeDownload, Running: true}, m.Snapshot)
	assert.Contains(t, m.View(), "Midiendo descarga")
}

func TestModel_HelpAndQuit(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	m := f.model(nil)

	m, _ = update(t, m, runeKey('?'))
	assert.Equal(t, StateHelp, m.State)
	assert.Contains(t, m.View(), "AYUDA")

	m, _ = update(t, m, runeKey('x'))
	assert.Equal(t, StateIdle, m.State)

	_, cmd := update(t, m, runeKey('q'))
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}

func TestPhaseLabel(t *testing.T) {
	t.Parallel()

	tests := []struct {
		snap domain.GaugeSnapshot
		want string
	}{
		{domain.GaugeSnapshot{}, "Listo"},
		{domain.GaugeSnapshot{Value: 25, Running: true}, "Seleccionando servidor"},
		{domain.GaugeSnapshot{Value: 50, Running: true}, "Midiendo descarga"},
		{domain.GaugeSnapshot{Value: 75, Running: true}, "Midiendo subida"},
		{domain.GaugeSnapshot{Value: 100, Running: true}, "Finalizando"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.want, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, PhaseLabel(tt.snap))
		})
	}
}

func TestBridge(t *testing.T) {
	t.Parallel()

	b := NewBridge()
	b.Notify("hola")
	b.PresentResults(domain.Result{DownloadMbps: 1})
	b.OpenSettings("speedtestConfig")

	wait := b.WaitCmd()
	assert.Equal(t, NoticeMsg{Text: "hola"}, wait())
	assert.Equal(t, ResultsReadyMsg{Result: domain.Result{DownloadMbps: 1}}, wait())
	assert.Equal(t, OpenSettingsMsg{PanelID: "speedtestConfig"}, wait())

	b.Close()
	b.Close()
	assert.Nil(t, wait())

	// sends after close return immediately even with a full queue
	for i := 0; i < bridgeBuffer*2; i++ {
		b.Notify("descartado")
	}
}
