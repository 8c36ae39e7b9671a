package notice

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClipboardText(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		download float64
		upload   float64
		want     string
	}{
		{"whole numbers", 50, 10, "Velocidad de descarga: 50.00 Mbps. Velocidad de subida: 10.00 Mbps."},
		{"rounds to two decimals", 93.456, 11.111, "Velocidad de descarga: 93.46 Mbps. Velocidad de subida: 11.11 Mbps."},
		{"zero", 0, 0, "Velocidad de descarga: 0.00 Mbps. Velocidad de subida: 0.00 Mbps."},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, ClipboardText(tt.download, tt.upload))
		})
	}
}

func TestWindowText(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "Velocidad de descarga: 50.00 Mbps\nVelocidad de subida: 10.00 Mbps", WindowText(50, 10))
}

func TestUnexpectedError(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "Un error inesperado ocurrió: connection reset", UnexpectedError("connection reset"))
}
