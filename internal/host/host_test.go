package host

import (
	"testing"

	"github.com/mmcdole/velocidad/internal/command"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testPanel(id string) SettingsPanel {
	return SettingsPanel{
		ID:    id,
		Title: "panel " + id,
		Load:  func() []Toggle { return []Toggle{{Key: "a", Label: "A", Value: true}} },
		Save:  func([]Toggle) error { return nil },
	}
}

func TestHost_Panels(t *testing.T) {
	t.Parallel()

	h := New()
	require.NoError(t, h.RegisterSettingsPanel(testPanel("one")))
	require.NoError(t, h.RegisterSettingsPanel(testPanel("two")))
	assert.Error(t, h.RegisterSettingsPanel(testPanel("one")))
	assert.Error(t, h.RegisterSettingsPanel(SettingsPanel{ID: "broken"}))

	p, err := h.Panel("two")
	require.NoError(t, err)
	assert.Equal(t, "panel two", p.Title)
	assert.Len(t, h.Panels(), 2)

	h.UnregisterSettingsPanel("one")
	h.UnregisterSettingsPanel("missing")
	_, err = h.Panel("one")
	assert.ErrorIs(t, err, ErrPanelNotFound)
	assert.Len(t, h.Panels(), 1)
}

func TestHost_Commands(t *testing.T) {
	t.Parallel()

	h := New()
	require.NoError(t, h.RegisterCommand(command.Command{ID: "x", Run: func() error { return nil }}))
	_, ok := h.Commands().Get("x")
	assert.True(t, ok)

	h.UnregisterCommand("x")
	_, ok = h.Commands().Get("x")
	assert.False(t, ok)
}
