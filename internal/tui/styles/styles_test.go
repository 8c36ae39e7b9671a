package styles

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPad(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		in    string
		width int
		want  string
	}{
		{"ascii", "abc", 5, "abc  "},
		{"accented counts runes", "configuración", 15, "configuración  "},
		{"exact", "Guardar", 7, "Guardar"},
		{"too long truncates", "Velocidad de subida", 10, "Velocid..."},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, Pad(tt.in, tt.width))
		})
	}
}

func TestTruncate(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "", Truncate("abc", 0))
	assert.Equal(t, "ab", Truncate("abcdef", 2))
	assert.Equal(t, "abc", Truncate("abc", 10))
	assert.Equal(t, "descar...", Truncate("descargando", 9))
}
