package command

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func noop() error { return nil }

func newTestRegistry(t *testing.T) *Registry {
	t.Helper()
	r := NewRegistry()
	require.NoError(t, r.Register(Command{ID: "speedtest.start", Description: "Comienza la prueba de velocidad de internet.", Gesture: "t", Run: noop}))
	require.NoError(t, r.Register(Command{ID: "speedtest.settings", Description: "Abre la configuración de prueba de velocidad", Gesture: "c", Run: noop}))
	require.NoError(t, r.Register(Command{ID: "app.quit", Description: "Salir", Run: noop}))
	return r
}

func TestRegistry_RegisterValidation(t *testing.T) {
	t.Parallel()

	r := newTestRegistry(t)
	assert.ErrorIs(t, r.Register(Command{ID: "app.quit", Run: noop}), ErrDuplicate)
	assert.Error(t, r.Register(Command{ID: "", Run: noop}))
	assert.Error(t, r.Register(Command{ID: "x"}))
	assert.Len(t, r.All(), 3)
}

func TestRegistry_GetAndUnregister(t *testing.T) {
	t.Parallel()

	r := newTestRegistry(t)

	cmd, ok := r.Get("speedtest.start")
	require.True(t, ok)
	assert.Equal(t, "t", cmd.Gesture)

	r.Unregister("speedtest.start")
	r.Unregister("does.not.exist")
	_, ok = r.Get("speedtest.start")
	assert.False(t, ok)
	assert.Len(t, r.All(), 2)
}

func TestRegistry_ByGesture(t *testing.T) {
	t.Parallel()

	r := newTestRegistry(t)

	cmd, ok := r.ByGesture("c")
	require.True(t, ok)
	assert.Equal(t, "speedtest.settings", cmd.ID)

	_, ok = r.ByGesture("")
	assert.False(t, ok)
	_, ok = r.ByGesture("z")
	assert.False(t, ok)
}

func TestRegistry_Search(t *testing.T) {
	t.Parallel()

	r := newTestRegistry(t)

	all := r.Search("  ")
	require.Len(t, all, 3)
	assert.Equal(t, "speedtest.start", all[0].Command.ID)

	hits := r.Search("comienza")
	require.NotEmpty(t, hits)
	assert.Equal(t, "speedtest.start", hits[0].Command.ID)
	assert.NotEmpty(t, hits[0].MatchedIndexes)

	assert.Empty(t, r.Search("zzzz"))
}

func TestRegistry_Resolve(t *testing.T) {
	t.Parallel()

	r := newTestRegistry(t)

	tests := []struct {
		name string
		want string
	}{
		{"speedtest.start", "speedtest.start"},
		{"comienza", "speedtest.start"},
		{"CONFIGURACIÓN", "speedtest.settings"},
		{"salir", "app.quit"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			cmd, err := r.Resolve(tt.name)
			require.NoError(t, err)
			assert.Equal(t, tt.want, cmd.ID)
		})
	}

	_, err := r.Resolve("reiniciar router")
	assert.ErrorIs(t, err, ErrNotFound)
}
